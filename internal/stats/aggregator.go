package stats

import (
	"slices"
	"strings"

	"MorphScanner/internal/domain"
	"MorphScanner/internal/vocabulary"
)

// DefaultWindow is the co-occurrence span on each side of an instance.
const DefaultWindow = 3

// Options tune an Aggregator.
type Options struct {
	// Window is the number of neighbours inspected on each side; <=0 means DefaultWindow.
	Window int
	// Matcher decides what counts as an instance; nil means Containment.
	Matcher Matcher
	// KnownRoots are checked for overlap with each candidate.
	KnownRoots []string
}

// Aggregator computes CandidateStats against one corpus and one vocabulary
// snapshot. It is read-only after construction and safe for concurrent use.
type Aggregator struct {
	corpus   *Corpus
	snapshot vocabulary.Snapshot
	window   int
	matcher  Matcher
	known    []string
	// refPrefix[i] is the number of tokens before i that contain a reference root.
	refPrefix []int
}

// NewAggregator indexes reference-vocabulary hits once so every candidate
// pass costs O(N).
func NewAggregator(corpus *Corpus, snapshot vocabulary.Snapshot, opts Options) *Aggregator {
	if opts.Window <= 0 {
		opts.Window = DefaultWindow
	}
	if opts.Matcher == nil {
		opts.Matcher = Containment{}
	}

	a := &Aggregator{
		corpus:    corpus,
		snapshot:  snapshot,
		window:    opts.Window,
		matcher:   opts.Matcher,
		known:     slices.Clone(opts.KnownRoots),
		refPrefix: make([]int, corpus.Len()+1),
	}

	refRoots := snapshot.Roots()
	hitBySurface := make(map[string]bool, len(corpus.surfaces))
	for _, s := range corpus.surfaces {
		for _, r := range refRoots {
			if strings.Contains(s, r) {
				hitBySurface[s] = true
				break
			}
		}
	}
	for i, t := range corpus.tokens {
		a.refPrefix[i+1] = a.refPrefix[i]
		if hitBySurface[t.Surface] {
			a.refPrefix[i+1]++
		}
	}

	return a
}

// Window returns the effective co-occurrence window.
func (a *Aggregator) Window() int { return a.window }

// Snapshot returns the vocabulary snapshot the aggregator was built with.
func (a *Aggregator) Snapshot() vocabulary.Snapshot { return a.snapshot }

// Matcher returns the instance matcher in use.
func (a *Aggregator) Matcher() Matcher { return a.matcher }

// Aggregate scans the corpus for root.
func (a *Aggregator) Aggregate(root string) domain.CandidateStats {
	st := domain.CandidateStats{
		Root:          root,
		SectionCounts: map[domain.Section]int{},
	}
	if root == "" {
		return st
	}

	n := a.corpus.Len()
	for i, t := range a.corpus.tokens {
		if !a.matcher.Matches(t.Surface, root) {
			continue
		}

		st.TotalInstances++
		if t.Surface == root {
			st.StandaloneCount++
		}

		switch a.corpus.position(t) {
		case initial:
			st.Positions.Initial++
		case medial:
			st.Positions.Medial++
		case final:
			st.Positions.Final++
		default:
			st.Unpositioned++
		}

		st.SectionCounts[t.Section]++

		lo := max(0, i-a.window)
		hi := min(n-1, i+a.window)
		hits := a.refPrefix[hi+1] - a.refPrefix[lo]
		hits -= a.refPrefix[i+1] - a.refPrefix[i]
		if hits > 0 {
			st.CooccurrenceCount++
		}
	}
	st.AffixedCount = st.TotalInstances - st.StandaloneCount

	for _, k := range a.known {
		if k != root && strings.Contains(k, root) {
			st.OverlappingRoots = append(st.OverlappingRoots, k)
		}
	}

	return st
}

// AggregateAll runs Aggregate for each root in order.
func (a *Aggregator) AggregateAll(roots []string) []domain.CandidateStats {
	out := make([]domain.CandidateStats, len(roots))
	for i, r := range roots {
		out[i] = a.Aggregate(r)
	}
	return out
}
