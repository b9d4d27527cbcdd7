// Package stats scans a token stream for a candidate root and aggregates the
// corpus evidence that the evidence scorer consumes.
package stats

import (
	"slices"

	"MorphScanner/internal/domain"
)

// Corpus is an immutable token stream loaded once per batch.
type Corpus struct {
	tokens   []domain.Token
	lastIdx  map[int]int
	surfaces []string
}

// NewCorpus copies tokens and indexes sentence boundaries.
func NewCorpus(tokens []domain.Token) *Corpus {
	c := &Corpus{
		tokens:  slices.Clone(tokens),
		lastIdx: make(map[int]int),
	}

	seen := make(map[string]struct{})
	for _, t := range c.tokens {
		if t.SentenceID >= 0 && t.IndexInSentence >= 0 {
			if last, ok := c.lastIdx[t.SentenceID]; !ok || t.IndexInSentence > last {
				c.lastIdx[t.SentenceID] = t.IndexInSentence
			}
		}
		if _, ok := seen[t.Surface]; !ok {
			seen[t.Surface] = struct{}{}
			c.surfaces = append(c.surfaces, t.Surface)
		}
	}
	slices.Sort(c.surfaces)

	return c
}

// Len is the number of tokens.
func (c *Corpus) Len() int { return len(c.tokens) }

// Token returns the i-th token of the stream.
func (c *Corpus) Token(i int) domain.Token { return c.tokens[i] }

// Tokens returns a copy of the stream.
func (c *Corpus) Tokens() []domain.Token { return slices.Clone(c.tokens) }

// Surfaces returns the distinct surface forms in sorted order.
func (c *Corpus) Surfaces() []string { return slices.Clone(c.surfaces) }

type placement int

const (
	unpositioned placement = iota
	initial
	medial
	final
)

// position classifies a token by its index inside its sentence. Index 0 wins
// over last, so a one-word sentence counts as initial.
func (c *Corpus) position(t domain.Token) placement {
	last, known := c.lastIdx[t.SentenceID]
	if !known || t.SentenceID < 0 || t.IndexInSentence < 0 {
		return unpositioned
	}
	switch t.IndexInSentence {
	case 0:
		return initial
	case last:
		return final
	default:
		return medial
	}
}
