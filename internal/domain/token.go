package domain

// Section is a coarse stratum of the manuscript used for distribution statistics.
type Section string

const (
	SectionHerbal         Section = "herbal"
	SectionAstronomical   Section = "astronomical"
	SectionBiological     Section = "biological"
	SectionPharmaceutical Section = "pharmaceutical"
	SectionStars          Section = "stars"
	SectionUnknown        Section = "unknown"
)

// Sections lists the named strata. SectionUnknown is not one of them.
func Sections() []Section {
	return []Section{
		SectionHerbal,
		SectionAstronomical,
		SectionBiological,
		SectionPharmaceutical,
		SectionStars,
	}
}

// ParseSection maps a label to a Section, falling back to SectionUnknown.
func ParseSection(label string) Section {
	for _, s := range Sections() {
		if string(s) == label {
			return s
		}
	}
	return SectionUnknown
}

// Token is one word of the transcription as emitted by a corpus loader.
type Token struct {
	Surface         string  `json:"surface"`
	Position        int     `json:"position"`
	Section         Section `json:"section"`
	SentenceID      int     `json:"sentence_id"`
	IndexInSentence int     `json:"index_in_sentence"`
	Folio           string  `json:"folio,omitempty"`
}
