package stats

import (
	"strings"

	"MorphScanner/internal/segment"
)

// Matcher decides whether a token surface is an instance of a candidate root.
type Matcher interface {
	Name() string
	Matches(surface, root string) bool
}

// Containment counts every token that contains root as a substring.
//
// This is the definition earlier evidence scores were recorded against. It
// over-counts when root is a substring of an unrelated longer root; the
// aggregator reports such roots in CandidateStats.OverlappingRoots.
type Containment struct{}

// Name implements Matcher.
func (Containment) Name() string { return "containment" }

// Matches implements Matcher.
func (Containment) Matches(surface, root string) bool {
	return root != "" && strings.Contains(surface, root)
}

// Boundary counts a token only when segmentation assigns it root as its root
// morpheme, or when the token is the bare root.
type Boundary struct {
	roots map[string]string
}

// NewBoundary segments every distinct surface of corpus up front so Matches
// is a read-only lookup and safe for concurrent use.
func NewBoundary(seg *segment.Segmenter, corpus *Corpus) *Boundary {
	b := &Boundary{roots: make(map[string]string, len(corpus.surfaces))}
	for _, s := range corpus.surfaces {
		d := seg.Segment(s)
		if d.RootEntry != nil {
			b.roots[s] = d.RootEntry.Form
		}
	}
	return b
}

// Name implements Matcher.
func (*Boundary) Name() string { return "boundary" }

// Matches implements Matcher.
func (b *Boundary) Matches(surface, root string) bool {
	if root == "" {
		return false
	}
	return surface == root || b.roots[surface] == root
}
