package segment

import (
	"bytes"
	"log/slog"
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"MorphScanner/internal/domain"
	"MorphScanner/internal/morpheme"
)

func newTable(t *testing.T, prefixes, roots, suffixes []string) *morpheme.Table {
	t.Helper()

	var entries []domain.MorphemeEntry
	for _, f := range prefixes {
		entries = append(entries, domain.MorphemeEntry{Form: f, Slot: domain.SlotPrefix})
	}
	for _, f := range roots {
		entries = append(entries, domain.MorphemeEntry{Form: f, Slot: domain.SlotRoot})
	}
	for _, f := range suffixes {
		entries = append(entries, domain.MorphemeEntry{Form: f, Slot: domain.SlotSuffix})
	}
	table, err := morpheme.New(entries, morpheme.DefaultGlue)
	require.NoError(t, err)
	return table
}

func forms(chain []domain.MorphemeEntry) []string {
	out := make([]string, 0, len(chain))
	for _, e := range chain {
		out = append(out, e.Form)
	}
	return out
}

func TestSegmentPrefixOnlyAndSuffix(t *testing.T) {
	t.Parallel()

	seg := New(newTable(t, []string{"qok"}, nil, []string{"edy"}), nil)
	d := seg.Segment("qokedy")

	require.NotNil(t, d.Prefix)
	assert.Equal(t, "qok", d.Prefix.Form)
	assert.Equal(t, "", d.Root)
	assert.Equal(t, []string{"edy"}, forms(d.SuffixChain))
	assert.Empty(t, d.UnknownResidue)
	assert.Equal(t, "qokedy", d.Surface())
}

func TestSegmentFullDecomposition(t *testing.T) {
	t.Parallel()

	seg := New(newTable(t,
		[]string{"qo", "qok", "ch"},
		[]string{"ke", "kee", "dar"},
		[]string{"y", "dy", "edy", "ol"},
	), nil)

	tests := []struct {
		token    string
		prefix   string
		root     string
		suffixes []string
		residue  string
	}{
		{token: "qokeedy", prefix: "qok", root: "e", suffixes: []string{"edy"}},
		{token: "qokeey", prefix: "qok", root: "", suffixes: []string{}, residue: "eey"},
		{token: "qodary", prefix: "qo", root: "dar", suffixes: []string{"y"}},
		{token: "chdarol", prefix: "ch", root: "dar", suffixes: []string{"ol"}},
		{token: "chedarol", prefix: "ch", root: "edar", suffixes: []string{"ol"}},
		{token: "darolody", prefix: "", root: "dar", suffixes: []string{}, residue: "olody"},
		{token: "darolol", prefix: "", root: "dar", suffixes: []string{"ol", "ol"}},
		{token: "dareol", prefix: "", root: "dare", suffixes: []string{"ol"}},
	}

	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			t.Parallel()

			d := seg.Segment(tt.token)
			if tt.prefix == "" {
				assert.Nil(t, d.Prefix)
			} else {
				require.NotNil(t, d.Prefix)
				assert.Equal(t, tt.prefix, d.Prefix.Form)
			}
			assert.Equal(t, tt.root, d.Root)
			assert.Equal(t, tt.suffixes, forms(d.SuffixChain))
			assert.Equal(t, tt.residue, d.UnknownResidue)
			assert.Equal(t, tt.token, d.Surface())
		})
	}
}

func TestSegmentUnmatchedToken(t *testing.T) {
	t.Parallel()

	seg := New(newTable(t, []string{"qo"}, []string{"dar"}, []string{"dy"}), nil)
	d := seg.Segment("xyzw")

	assert.Nil(t, d.Prefix)
	assert.Nil(t, d.RootEntry)
	assert.Equal(t, "", d.Root)
	assert.Equal(t, "xyzw", d.UnknownResidue)
	assert.NotNil(t, d.SuffixChain)
	assert.Empty(t, d.SuffixChain)
}

func TestSegmentRootAfterUnexplainedMaterial(t *testing.T) {
	t.Parallel()

	seg := New(newTable(t, []string{"qo"}, []string{"dar"}, []string{"dy"}), nil)
	d := seg.Segment("qoxxdardy")

	require.NotNil(t, d.Prefix)
	assert.Equal(t, "", d.Root)
	assert.Empty(t, d.SuffixChain)
	assert.Equal(t, "xxdardy", d.UnknownResidue)
	assert.Equal(t, "qoxxdardy", d.Surface())
}

func TestSegmentSingleLetterPassesThrough(t *testing.T) {
	t.Parallel()

	seg := New(newTable(t, []string{"s"}, []string{"r"}, []string{"y"}), nil)

	d := seg.Segment("s")
	assert.Nil(t, d.Prefix)
	assert.Equal(t, "s", d.UnknownResidue)

	d = seg.Segment("y")
	assert.Empty(t, d.SuffixChain)
	assert.Equal(t, "y", d.UnknownResidue)

	d = seg.Segment("r")
	assert.Equal(t, "r", d.Root)
	require.NotNil(t, d.RootEntry)
	assert.Empty(t, d.UnknownResidue)
}

func TestSegmentLogsDiscardedRootAlternative(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelWarn}))

	seg := New(newTable(t, nil, []string{"ke", "te"}, []string{"y"}), log)
	d := seg.Segment("kety")

	assert.Equal(t, "ke", d.Root)
	assert.Equal(t, []string{"te"}, d.Alternatives)
	assert.Equal(t, "kety", d.Surface())
	assert.Contains(t, buf.String(), "ambiguous segmentation")
	assert.Contains(t, buf.String(), "discarded=[te]")
}

func TestSegmentIsDeterministic(t *testing.T) {
	t.Parallel()

	seg := New(morpheme.Default(), nil)
	for _, tok := range []string{"qokeedy", "chedy", "daiin", "okaiin", "shol", "qotchy"} {
		first := seg.Segment(tok)
		for i := 0; i < 5; i++ {
			assert.Equal(t, first, seg.Segment(tok))
		}
	}
}

func TestSegmentRoundTripProperty(t *testing.T) {
	t.Parallel()

	seg := New(morpheme.Default(), nil)
	rng := rand.New(rand.NewPCG(7, 11))
	alphabet := "acdehiklnopqrsty"

	for i := 0; i < 5000; i++ {
		n := 1 + rng.IntN(10)
		var b strings.Builder
		for j := 0; j < n; j++ {
			b.WriteByte(alphabet[rng.IntN(len(alphabet))])
		}
		tok := b.String()
		d := seg.Segment(tok)
		require.Equal(t, tok, d.Surface(), "token %q decomposed as %+v", tok, d)
	}
}

func TestSegmentAll(t *testing.T) {
	t.Parallel()

	seg := New(morpheme.Default(), nil)
	out := seg.SegmentAll([]string{"daiin", "chol"})
	require.Len(t, out, 2)
	assert.Equal(t, "daiin", out[0].Root)
	require.NotNil(t, out[1].Prefix)
	assert.Equal(t, "ch", out[1].Prefix.Form)
	assert.Equal(t, "ol", out[1].Root)
}
