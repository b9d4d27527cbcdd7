// Package segment decomposes a token into prefix, root, suffix chain and
// unknown residue against a morpheme table.
package segment

import (
	"log/slog"
	"strings"
	"unicode/utf8"

	"MorphScanner/internal/domain"
	"MorphScanner/internal/morpheme"
	"MorphScanner/pkg/logger"
)

// Segmenter applies the slot rules in fixed priority: prefix, root, suffix.
type Segmenter struct {
	table  *morpheme.Table
	logger *slog.Logger
}

// New wires a table; a nil logger discards ambiguity warnings.
func New(table *morpheme.Table, log *slog.Logger) *Segmenter {
	return &Segmenter{table: table, logger: logger.OrDiscard(log)}
}

// Table returns the morpheme table in use.
func (s *Segmenter) Table() *morpheme.Table {
	return s.table
}

// Segment decomposes token. It never fails: anything it cannot account for
// ends up in UnknownResidue, and the parts always reassemble to token.
func (s *Segmenter) Segment(token string) domain.Decomposition {
	d := domain.Decomposition{Token: token, SuffixChain: []domain.MorphemeEntry{}}
	if token == "" || s.table == nil {
		d.UnknownResidue = token
		return d
	}

	if utf8.RuneCountInString(token) == 1 {
		if e, ok := s.table.Lookup(domain.SlotRoot, token); ok {
			d.Root = token
			d.RootEntry = &e
		} else {
			d.UnknownResidue = token
		}
		return d
	}

	rest := token

	if rule, alts, ok := s.table.Match(domain.SlotPrefix, func(form string) bool {
		return strings.HasPrefix(rest, form)
	}); ok {
		entry := rule.Entry
		d.Prefix = &entry
		rest = rest[len(entry.Form):]
		s.ambiguous(&d, domain.SlotPrefix, entry.Form, alts)
	}

	if rest != "" {
		if rule, alts, ok := s.table.Match(domain.SlotRoot, func(form string) bool {
			return strings.Contains(rest, form)
		}); ok {
			entry := rule.Entry
			s.ambiguous(&d, domain.SlotRoot, entry.Form, alts)

			lead := rest[:strings.Index(rest, entry.Form)]
			if lead != "" && !s.table.IsGlue(lead) {
				s.logger.Debug("root not at a morpheme boundary",
					"token", token, "root", entry.Form, "lead", lead)
				d.UnknownResidue = rest
				return d
			}
			d.Root = lead + entry.Form
			d.RootEntry = &entry
			rest = rest[len(d.Root):]
		}
	}

	var chain []domain.MorphemeEntry
	for rest != "" {
		rule, alts, ok := s.table.Match(domain.SlotSuffix, func(form string) bool {
			return strings.HasSuffix(rest, form)
		})
		if !ok {
			break
		}
		chain = append([]domain.MorphemeEntry{rule.Entry}, chain...)
		rest = rest[:len(rest)-len(rule.Entry.Form)]
		s.ambiguous(&d, domain.SlotSuffix, rule.Entry.Form, alts)
	}

	switch {
	case rest == "":
		d.SuffixChain = append(d.SuffixChain, chain...)
	case s.table.IsGlue(rest):
		// A lone connecting letter joins the root span.
		d.Root += rest
		d.SuffixChain = append(d.SuffixChain, chain...)
	default:
		// Unexplained material sits between root and suffixes; the suffixes
		// cannot be trusted, so they fold back into the residue.
		var b strings.Builder
		b.WriteString(rest)
		for _, e := range chain {
			b.WriteString(e.Form)
		}
		d.UnknownResidue = b.String()
	}

	return d
}

// SegmentAll decomposes each token in order.
func (s *Segmenter) SegmentAll(tokens []string) []domain.Decomposition {
	out := make([]domain.Decomposition, len(tokens))
	for i, tok := range tokens {
		out[i] = s.Segment(tok)
	}
	return out
}

func (s *Segmenter) ambiguous(d *domain.Decomposition, slot domain.Slot, chosen string, alts []string) {
	if len(alts) == 0 {
		return
	}
	d.Alternatives = append(d.Alternatives, alts...)
	s.logger.Warn("ambiguous segmentation",
		"token", d.Token,
		"slot", slot,
		"chosen", chosen,
		"discarded", alts,
	)
}
