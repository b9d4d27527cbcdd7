package stats

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"MorphScanner/internal/domain"
	"MorphScanner/internal/morpheme"
	"MorphScanner/internal/segment"
	"MorphScanner/internal/vocabulary"
)

// builder lays sentences out as one flat stream.
type builder struct {
	tokens   []domain.Token
	sentence int
}

func (b *builder) add(section domain.Section, words ...string) *builder {
	for i, w := range words {
		b.tokens = append(b.tokens, domain.Token{
			Surface:         w,
			Position:        len(b.tokens),
			Section:         section,
			SentenceID:      b.sentence,
			IndexInSentence: i,
		})
	}
	b.sentence++
	return b
}

func emptyVocab() vocabulary.Snapshot {
	return vocabulary.Empty()
}

func TestAggregateAffixedInstances(t *testing.T) {
	t.Parallel()

	b := (&builder{}).add(domain.SectionHerbal, "okal", "okar", "okol")
	agg := NewAggregator(NewCorpus(b.tokens), emptyVocab(), Options{})

	st := agg.Aggregate("ok")
	assert.Equal(t, 3, st.TotalInstances)
	assert.Equal(t, 0, st.StandaloneCount)
	assert.Equal(t, 3, st.AffixedCount)
	assert.Equal(t, domain.PositionCounts{Initial: 1, Medial: 1, Final: 1}, st.Positions)
	assert.Equal(t, map[domain.Section]int{domain.SectionHerbal: 3}, st.SectionCounts)
}

func TestAggregateStandaloneAcrossSections(t *testing.T) {
	t.Parallel()

	b := &builder{}
	for section, n := range map[domain.Section]int{
		domain.SectionHerbal:         15,
		domain.SectionAstronomical:   15,
		domain.SectionBiological:     10,
		domain.SectionPharmaceutical: 10,
	} {
		for i := 0; i < n; i++ {
			b.add(section, "chol", "dair", "shey")
		}
	}
	agg := NewAggregator(NewCorpus(b.tokens), emptyVocab(), Options{})

	st := agg.Aggregate("dair")
	assert.Equal(t, 50, st.TotalInstances)
	assert.Equal(t, 50, st.StandaloneCount)
	assert.Equal(t, 0, st.AffixedCount)
	assert.Equal(t, 50, st.Positions.Medial)
	assert.Equal(t, 4, st.SectionsPresent())
	assert.Equal(t, 15, st.SectionCounts[domain.SectionAstronomical])
}

func TestAggregatePositions(t *testing.T) {
	t.Parallel()

	b := (&builder{}).
		add(domain.SectionHerbal, "ol").
		add(domain.SectionHerbal, "ol", "dar", "ol").
		add(domain.SectionHerbal, "chy", "ol", "dar")
	b.tokens = append(b.tokens, domain.Token{Surface: "ol", SentenceID: -1, IndexInSentence: -1, Section: domain.SectionUnknown})

	st := NewAggregator(NewCorpus(b.tokens), emptyVocab(), Options{}).Aggregate("ol")
	assert.Equal(t, 5, st.TotalInstances)
	assert.Equal(t, domain.PositionCounts{Initial: 2, Medial: 1, Final: 1}, st.Positions)
	assert.Equal(t, 1, st.Unpositioned)
	assert.Equal(t, st.TotalInstances, st.Positions.Total()+st.Unpositioned)
}

func TestAggregateCooccurrenceCountsOncePerInstance(t *testing.T) {
	t.Parallel()

	// One instance surrounded by three reference hits still counts once.
	b := (&builder{}).add(domain.SectionHerbal, "daiin", "ol", "kee", "daiin", "ol", "x", "y", "z", "w", "kee")
	vocab := vocabulary.NewSnapshot(1, []string{"daiin", "ol"}, time.Time{})
	agg := NewAggregator(NewCorpus(b.tokens), vocab, Options{Window: 3})

	st := agg.Aggregate("kee")
	assert.Equal(t, 2, st.TotalInstances)
	assert.Equal(t, 1, st.CooccurrenceCount)
}

func TestAggregateWindowExcludesInstanceItself(t *testing.T) {
	t.Parallel()

	// "olkee" contains both the candidate and a reference root.
	b := (&builder{}).add(domain.SectionHerbal, "a", "b", "c", "d", "olkee", "e", "f", "g", "h")
	vocab := vocabulary.NewSnapshot(1, []string{"ol"}, time.Time{})

	st := NewAggregator(NewCorpus(b.tokens), vocab, Options{}).Aggregate("kee")
	assert.Equal(t, 1, st.TotalInstances)
	assert.Equal(t, 0, st.CooccurrenceCount)
}

func TestAggregateWindowSize(t *testing.T) {
	t.Parallel()

	b := (&builder{}).add(domain.SectionHerbal, "ol", "x", "x", "x", "kee")
	vocab := vocabulary.NewSnapshot(1, []string{"ol"}, time.Time{})
	corpus := NewCorpus(b.tokens)

	assert.Equal(t, 0, NewAggregator(corpus, vocab, Options{Window: 3}).Aggregate("kee").CooccurrenceCount)
	assert.Equal(t, 1, NewAggregator(corpus, vocab, Options{Window: 4}).Aggregate("kee").CooccurrenceCount)
	assert.Equal(t, DefaultWindow, NewAggregator(corpus, vocab, Options{}).Window())
}

func TestAggregateFlagsOverlappingRoots(t *testing.T) {
	t.Parallel()

	b := (&builder{}).add(domain.SectionHerbal, "dar", "dair", "daiin")
	agg := NewAggregator(NewCorpus(b.tokens), emptyVocab(), Options{
		KnownRoots: []string{"dar", "dair", "daiin", "ol"},
	})

	st := agg.Aggregate("dai")
	assert.Equal(t, 2, st.TotalInstances, "containment counts both longer roots")
	assert.Equal(t, []string{"dair", "daiin"}, st.OverlappingRoots)

	assert.Empty(t, agg.Aggregate("dar").OverlappingRoots)
}

func TestBoundaryMatcher(t *testing.T) {
	t.Parallel()

	table, err := morpheme.New([]domain.MorphemeEntry{
		{Form: "qo", Slot: domain.SlotPrefix},
		{Form: "ke", Slot: domain.SlotRoot},
		{Form: "kee", Slot: domain.SlotRoot},
		{Form: "dy", Slot: domain.SlotSuffix},
	}, nil)
	require.NoError(t, err)

	b := (&builder{}).add(domain.SectionHerbal, "qokedy", "qokeedy", "ke", "xke")
	corpus := NewCorpus(b.tokens)
	matcher := NewBoundary(segment.New(table, nil), corpus)

	contained := NewAggregator(corpus, emptyVocab(), Options{}).Aggregate("ke")
	bounded := NewAggregator(corpus, emptyVocab(), Options{Matcher: matcher}).Aggregate("ke")

	assert.Equal(t, 4, contained.TotalInstances)
	assert.Equal(t, 2, bounded.TotalInstances)
	assert.Equal(t, 1, bounded.StandaloneCount)
	assert.Equal(t, "boundary", matcher.Name())
}

func TestAggregateEmptyRootAndEmptyCorpus(t *testing.T) {
	t.Parallel()

	st := NewAggregator(NewCorpus(nil), emptyVocab(), Options{}).Aggregate("ol")
	assert.Zero(t, st.TotalInstances)
	assert.NotNil(t, st.SectionCounts)

	b := (&builder{}).add(domain.SectionHerbal, "ol")
	st = NewAggregator(NewCorpus(b.tokens), emptyVocab(), Options{}).Aggregate("")
	assert.Zero(t, st.TotalInstances)
}

func TestAggregateIsIdempotentAndConcurrentSafe(t *testing.T) {
	t.Parallel()

	b := &builder{}
	for i := 0; i < 40; i++ {
		b.add(domain.SectionBiological, "qokeedy", "ol", "shedy", "daiin", "okal")
		b.add(domain.SectionStars, "chedy", "kee", "ar", "ol")
	}
	vocab := vocabulary.NewSnapshot(2, []string{"ol", "daiin"}, time.Time{})
	agg := NewAggregator(NewCorpus(b.tokens), vocab, Options{})
	want := agg.AggregateAll([]string{"edy", "kee", "al"})

	var wg sync.WaitGroup
	results := make([][]domain.CandidateStats, 8)
	for w := range results {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[w] = agg.AggregateAll([]string{"edy", "kee", "al"})
		}()
	}
	wg.Wait()

	for _, got := range results {
		assert.Equal(t, want, got)
	}
	for _, st := range want {
		assert.Equal(t, st.TotalInstances, st.StandaloneCount+st.AffixedCount)
		assert.Equal(t, st.TotalInstances, st.Positions.Total())
	}
}
