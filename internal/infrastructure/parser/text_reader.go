package parser

import (
	"bufio"
	"context"
	"fmt"
	"regexp"
	"strings"

	"MorphScanner/internal/domain"
	"MorphScanner/internal/transcription"
)

var (
	// locusExpr captures folio markers such as <f12r> or <f12r.P.1;H>.
	locusExpr = regexp.MustCompile(`<(f\d+[rv]?\d*)[^>]*>`)
	// altExpr keeps the first reading of [a:b] alternatives.
	altExpr    = regexp.MustCompile(`\[([^\]:]*)(?::[^\]]*)?\]`)
	markupExpr = regexp.MustCompile(`<[^>]*>|\{[^}]*\}`)
)

const maxLineBytes = 1 << 20

// TextReader reads line-oriented transcriptions. Every non-empty line is a
// sentence, and folio markers switch the active section until the next one.
type TextReader struct{}

var _ transcription.Reader = (*TextReader)(nil)

// NewTextReader builds the plain-text strategy.
func NewTextReader() *TextReader {
	return &TextReader{}
}

// Name identifies the strategy inside the registry.
func (r *TextReader) Name() string {
	return "text"
}

// Read tokenises the document line by line.
func (r *TextReader) Read(ctx context.Context, req transcription.Request) ([]domain.Token, error) {
	if req.Body == nil {
		return nil, fmt.Errorf("%s: empty body", req.Name)
	}

	var (
		tokens   []domain.Token
		folio    string
		section  = domain.SectionUnknown
		sentence int
		lineNo   int
	)

	sc := bufio.NewScanner(req.Body)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	for sc.Scan() {
		lineNo++
		if lineNo%1024 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		index := 0
		for _, seg := range splitLoci(line) {
			if seg.folio != "" {
				folio = seg.folio
				section = req.Sections.Section(folio)
			}
			for _, w := range transcription.Words(cleanMarkup(seg.text)) {
				tokens = append(tokens, domain.Token{
					Surface:         w,
					Position:        len(tokens),
					Section:         section,
					SentenceID:      sentence,
					IndexInSentence: index,
					Folio:           folio,
				})
				index++
			}
		}
		if index > 0 {
			sentence++
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("%s: read line %d: %w", req.Name, lineNo+1, err)
	}

	return tokens, nil
}

type lineSegment struct {
	folio string
	text  string
}

// splitLoci cuts a line at folio markers; each segment carries the marker
// that precedes it, if any.
func splitLoci(line string) []lineSegment {
	matches := locusExpr.FindAllStringSubmatchIndex(line, -1)
	if len(matches) == 0 {
		return []lineSegment{{text: line}}
	}

	segments := []lineSegment{{text: line[:matches[0][0]]}}
	for i, m := range matches {
		end := len(line)
		if i+1 < len(matches) {
			end = matches[i+1][0]
		}
		segments = append(segments, lineSegment{
			folio: line[m[2]:m[3]],
			text:  line[m[1]:end],
		})
	}
	return segments
}

func cleanMarkup(text string) string {
	text = altExpr.ReplaceAllString(text, "$1")
	return markupExpr.ReplaceAllString(text, " ")
}
