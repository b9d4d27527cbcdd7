package parser

import (
	"context"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"MorphScanner/internal/domain"
	"MorphScanner/internal/transcription"
)

// HTMLReader extracts tokens from an HTML rendering of the transcription.
// Elements carrying data-folio set the folio; each .line element inside
// them (or each p when there are none) is a sentence.
type HTMLReader struct{}

var _ transcription.Reader = (*HTMLReader)(nil)

// NewHTMLReader builds the HTML strategy.
func NewHTMLReader() *HTMLReader {
	return &HTMLReader{}
}

// Name identifies the strategy inside the registry.
func (r *HTMLReader) Name() string {
	return "html"
}

// Read parses the document and walks folios in document order.
func (r *HTMLReader) Read(ctx context.Context, req transcription.Request) ([]domain.Token, error) {
	if req.Body == nil {
		return nil, fmt.Errorf("%s: empty body", req.Name)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(req.Body)
	if err != nil {
		return nil, fmt.Errorf("%s: parse document: %w", req.Name, err)
	}

	c := &htmlCollector{}
	folios := doc.Find("[data-folio]")
	if folios.Length() == 0 {
		c.collect(doc.Selection, "", domain.SectionUnknown)
		return c.tokens, nil
	}

	folios.EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		if err = ctx.Err(); err != nil {
			return false
		}
		folio := strings.TrimSpace(sel.AttrOr("data-folio", ""))
		c.collect(sel, folio, req.Sections.Section(folio))
		return true
	})
	if err != nil {
		return nil, err
	}

	return c.tokens, nil
}

type htmlCollector struct {
	tokens   []domain.Token
	sentence int
}

func (c *htmlCollector) collect(scope *goquery.Selection, folio string, section domain.Section) {
	lines := scope.Find(".line")
	if lines.Length() == 0 {
		lines = scope.Find("p")
	}

	lines.Each(func(_ int, line *goquery.Selection) {
		words := transcription.Words(cleanMarkup(line.Text()))
		if len(words) == 0 {
			return
		}
		for i, w := range words {
			c.tokens = append(c.tokens, domain.Token{
				Surface:         w,
				Position:        len(c.tokens),
				Section:         section,
				SentenceID:      c.sentence,
				IndexInSentence: i,
				Folio:           folio,
			})
		}
		c.sentence++
	})
}
