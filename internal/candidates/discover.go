// Package candidates proposes roots worth validating by segmenting the corpus
// and counting what ends up in the root slot.
package candidates

import (
	"cmp"
	"slices"
	"unicode/utf8"

	"MorphScanner/internal/domain"
	"MorphScanner/internal/segment"
)

// Options control discovery.
type Options struct {
	// MinFrequency drops roots seen fewer times than this.
	MinFrequency int
	// IncludeResidue also proposes unknown residues of two or more letters.
	IncludeResidue bool
}

// Found is a proposed candidate with the number of tokens that produced it.
type Found struct {
	domain.Candidate
	Frequency int  `json:"frequency"`
	Declared  bool `json:"declared"`
}

// Discover segments every token and tallies root spans. Results are sorted
// by frequency, highest first, then alphabetically.
func Discover(tokens []domain.Token, seg *segment.Segmenter, opts Options) []Found {
	decomposed := make(map[string]domain.Decomposition)
	counts := make(map[string]int)
	declared := make(map[string]bool)

	for _, t := range tokens {
		d, ok := decomposed[t.Surface]
		if !ok {
			d = seg.Segment(t.Surface)
			decomposed[t.Surface] = d
		}

		switch {
		case d.RootEntry != nil:
			counts[d.RootEntry.Form]++
			declared[d.RootEntry.Form] = true
		case opts.IncludeResidue && utf8.RuneCountInString(d.UnknownResidue) >= 2:
			counts[d.UnknownResidue]++
		}
	}

	out := make([]Found, 0, len(counts))
	for root, n := range counts {
		if n < opts.MinFrequency {
			continue
		}
		role := domain.RoleRoot
		if e, ok := seg.Table().Lookup(domain.SlotRoot, root); ok && e.Role != "" {
			role = e.Role
		}
		out = append(out, Found{
			Candidate: domain.Candidate{Root: root, Role: role},
			Frequency: n,
			Declared:  declared[root],
		})
	}

	slices.SortFunc(out, func(a, b Found) int {
		if c := cmp.Compare(b.Frequency, a.Frequency); c != 0 {
			return c
		}
		return cmp.Compare(a.Root, b.Root)
	})
	return out
}

// Candidates strips the frequency information.
func Candidates(found []Found) []domain.Candidate {
	out := make([]domain.Candidate, len(found))
	for i, f := range found {
		out[i] = f.Candidate
	}
	return out
}
