package parser

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"MorphScanner/internal/config"
	"MorphScanner/internal/domain"
	"MorphScanner/internal/transcription"
)

const sampleText = `# Takahashi excerpt
<f1r.P.1;H>  qokeedy.chol  daiin
<f1r.P.2;H>  shol{&123} [ch:sh]ey
<f68r1.X.1;H> otol okal

<f75r>
qokal
`

const sampleHTML = `<html><body>
<div data-folio="f1r">
  <div class="line">qokeedy daiin</div>
  <div class="line">chol.shol</div>
  <div class="line">   </div>
</div>
<div data-folio="f103v"><p>qokain <b>otedy</b></p></div>
</body></html>`

func surfaces(tokens []domain.Token) []string {
	out := make([]string, len(tokens))
	for i, t := range tokens {
		out[i] = t.Surface
	}
	return out
}

func TestTextReaderRead(t *testing.T) {
	t.Parallel()

	tokens, err := NewTextReader().Read(context.Background(), transcription.Request{
		Name:     "sample",
		Body:     strings.NewReader(sampleText),
		Sections: transcription.DefaultSectionMap(),
	})
	if err != nil {
		t.Fatalf("Read error: %v", err)
	}

	want := []domain.Token{
		{Surface: "qokeedy", Position: 0, Section: domain.SectionHerbal, SentenceID: 0, IndexInSentence: 0, Folio: "f1r"},
		{Surface: "chol", Position: 1, Section: domain.SectionHerbal, SentenceID: 0, IndexInSentence: 1, Folio: "f1r"},
		{Surface: "daiin", Position: 2, Section: domain.SectionHerbal, SentenceID: 0, IndexInSentence: 2, Folio: "f1r"},
		{Surface: "shol", Position: 3, Section: domain.SectionHerbal, SentenceID: 1, IndexInSentence: 0, Folio: "f1r"},
		{Surface: "chey", Position: 4, Section: domain.SectionHerbal, SentenceID: 1, IndexInSentence: 1, Folio: "f1r"},
		{Surface: "otol", Position: 5, Section: domain.SectionAstronomical, SentenceID: 2, IndexInSentence: 0, Folio: "f68r1"},
		{Surface: "okal", Position: 6, Section: domain.SectionAstronomical, SentenceID: 2, IndexInSentence: 1, Folio: "f68r1"},
		{Surface: "qokal", Position: 7, Section: domain.SectionBiological, SentenceID: 3, IndexInSentence: 0, Folio: "f75r"},
	}
	if len(tokens) != len(want) {
		t.Fatalf("expected %d tokens, got %d: %v", len(want), len(tokens), surfaces(tokens))
	}
	for i := range want {
		if tokens[i] != want[i] {
			t.Fatalf("token %d: got %+v, want %+v", i, tokens[i], want[i])
		}
	}
}

func TestTextReaderWithoutMarkers(t *testing.T) {
	t.Parallel()

	tokens, err := NewTextReader().Read(context.Background(), transcription.Request{
		Name: "plain",
		Body: strings.NewReader("daiin dar\nol\n"),
	})
	if err != nil {
		t.Fatalf("Read error: %v", err)
	}
	if len(tokens) != 3 {
		t.Fatalf("expected 3 tokens, got %v", surfaces(tokens))
	}
	for _, tok := range tokens {
		if tok.Section != domain.SectionUnknown || tok.Folio != "" {
			t.Fatalf("expected unknown section without folio, got %+v", tok)
		}
	}
	if tokens[2].SentenceID != 1 || tokens[2].IndexInSentence != 0 {
		t.Fatalf("expected second line to start sentence 1, got %+v", tokens[2])
	}
}

func TestTextReaderCancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	body := strings.Repeat("daiin\n", 4096)
	_, err := NewTextReader().Read(ctx, transcription.Request{Name: "big", Body: strings.NewReader(body)})
	if err == nil {
		t.Fatal("expected context error")
	}
}

func TestSplitLoci(t *testing.T) {
	t.Parallel()

	segs := splitLoci("ab <f2v.1> cd <f3r> ef")
	if len(segs) != 3 {
		t.Fatalf("expected 3 segments, got %+v", segs)
	}
	if segs[0].folio != "" || segs[1].folio != "f2v" || segs[2].folio != "f3r" {
		t.Fatalf("unexpected folios: %+v", segs)
	}
	if strings.TrimSpace(segs[1].text) != "cd" {
		t.Fatalf("unexpected text: %q", segs[1].text)
	}
}

func TestHTMLReaderRead(t *testing.T) {
	t.Parallel()

	tokens, err := NewHTMLReader().Read(context.Background(), transcription.Request{
		Name:     "web",
		Body:     strings.NewReader(sampleHTML),
		Sections: transcription.DefaultSectionMap(),
	})
	if err != nil {
		t.Fatalf("Read error: %v", err)
	}

	got := strings.Join(surfaces(tokens), " ")
	if got != "qokeedy daiin chol shol qokain otedy" {
		t.Fatalf("unexpected surfaces: %s", got)
	}
	if tokens[2].SentenceID != 1 || tokens[2].IndexInSentence != 0 || tokens[2].Section != domain.SectionHerbal {
		t.Fatalf("unexpected third token: %+v", tokens[2])
	}
	last := tokens[len(tokens)-1]
	if last.Folio != "f103v" || last.Section != domain.SectionStars || last.SentenceID != 2 || last.Position != 5 {
		t.Fatalf("unexpected last token: %+v", last)
	}
}

func TestHTMLReaderWithoutFolios(t *testing.T) {
	t.Parallel()

	tokens, err := NewHTMLReader().Read(context.Background(), transcription.Request{
		Name: "bare",
		Body: strings.NewReader("<p>daiin ol</p><p>dar</p>"),
	})
	if err != nil {
		t.Fatalf("Read error: %v", err)
	}
	if len(tokens) != 3 || tokens[2].SentenceID != 1 || tokens[0].Section != domain.SectionUnknown {
		t.Fatalf("unexpected tokens: %+v", tokens)
	}
}

func TestStrategySourceLoad(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	textPath := filepath.Join(dir, "a.txt")
	htmlPath := filepath.Join(dir, "b.html")
	if err := os.WriteFile(textPath, []byte(sampleText), 0o644); err != nil {
		t.Fatalf("write text: %v", err)
	}
	if err := os.WriteFile(htmlPath, []byte(sampleHTML), 0o644); err != nil {
		t.Fatalf("write html: %v", err)
	}

	reg := transcription.NewRegistry()
	reg.Register(NewTextReader())
	reg.Register(NewHTMLReader())

	src := NewStrategySource(reg, []config.SourceConfig{
		{Name: "a", Format: "text", Path: textPath},
		{Name: "b", Format: "html", Path: htmlPath},
	}, transcription.DefaultSectionMap(), nil)

	tokens, err := src.Load(context.Background())
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if len(tokens) != 14 {
		t.Fatalf("expected 14 tokens, got %d", len(tokens))
	}
	for i, tok := range tokens {
		if tok.Position != i {
			t.Fatalf("token %d has position %d", i, tok.Position)
		}
	}
	// The text document has 4 sentences, so the HTML document starts at 4.
	if tokens[8].Surface != "qokeedy" || tokens[8].SentenceID != 4 {
		t.Fatalf("unexpected first html token: %+v", tokens[8])
	}
	if tokens[13].SentenceID != 6 {
		t.Fatalf("unexpected last sentence id: %+v", tokens[13])
	}
}

func TestStrategySourceErrors(t *testing.T) {
	t.Parallel()

	reg := transcription.NewRegistry()
	reg.Register(NewTextReader())

	cases := map[string]*StrategySource{
		"no registry":    NewStrategySource(nil, []config.SourceConfig{{Name: "a", Format: "text", Path: "x"}}, nil, nil),
		"no sources":     NewStrategySource(reg, nil, nil, nil),
		"unknown format": NewStrategySource(reg, []config.SourceConfig{{Name: "a", Format: "pdf", Path: "x"}}, nil, nil),
		"missing file":   NewStrategySource(reg, []config.SourceConfig{{Name: "a", Format: "text", Path: filepath.Join(t.TempDir(), "none")}}, nil, nil),
	}
	for name, src := range cases {
		if _, err := src.Load(context.Background()); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}
}
