package transcription

import (
	"fmt"
	"regexp"
	"strconv"

	"MorphScanner/internal/domain"
)

var folioExpr = regexp.MustCompile(`^f(\d+)([rv]\d*)?`)

// FolioRange assigns folios First..Last (inclusive, by number) to a section.
type FolioRange struct {
	First   int            `yaml:"first"`
	Last    int            `yaml:"last"`
	Section domain.Section `yaml:"section"`
}

// SectionMap resolves folio identifiers such as "f12r" or "f68v3" to sections.
type SectionMap struct {
	ranges []FolioRange
}

// DefaultRanges is the conventional division of the manuscript.
func DefaultRanges() []FolioRange {
	return []FolioRange{
		{First: 1, Last: 66, Section: domain.SectionHerbal},
		{First: 67, Last: 73, Section: domain.SectionAstronomical},
		{First: 75, Last: 84, Section: domain.SectionBiological},
		{First: 85, Last: 86, Section: domain.SectionAstronomical},
		{First: 87, Last: 102, Section: domain.SectionPharmaceutical},
		{First: 103, Last: 116, Section: domain.SectionStars},
	}
}

// NewSectionMap validates ranges. Earlier ranges win on overlap.
func NewSectionMap(ranges []FolioRange) (*SectionMap, error) {
	for _, r := range ranges {
		if r.First <= 0 || r.Last < r.First {
			return nil, fmt.Errorf("invalid folio range %d-%d", r.First, r.Last)
		}
		if domain.ParseSection(string(r.Section)) == domain.SectionUnknown {
			return nil, fmt.Errorf("folio range %d-%d: unknown section %q", r.First, r.Last, r.Section)
		}
	}
	return &SectionMap{ranges: append([]FolioRange(nil), ranges...)}, nil
}

// DefaultSectionMap uses DefaultRanges.
func DefaultSectionMap() *SectionMap {
	m, _ := NewSectionMap(DefaultRanges())
	return m
}

// Section returns the section of folio, or SectionUnknown.
func (m *SectionMap) Section(folio string) domain.Section {
	if m == nil {
		return domain.SectionUnknown
	}
	match := folioExpr.FindStringSubmatch(folio)
	if match == nil {
		return domain.SectionUnknown
	}
	n, err := strconv.Atoi(match[1])
	if err != nil {
		return domain.SectionUnknown
	}
	for _, r := range m.ranges {
		if n >= r.First && n <= r.Last {
			return r.Section
		}
	}
	return domain.SectionUnknown
}
