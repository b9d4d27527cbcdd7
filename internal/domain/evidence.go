package domain

// PositionCounts tallies where instances sit inside their sentence.
type PositionCounts struct {
	Initial int `json:"initial"`
	Medial  int `json:"medial"`
	Final   int `json:"final"`
}

// Total returns the number of positioned instances.
func (p PositionCounts) Total() int {
	return p.Initial + p.Medial + p.Final
}

// CandidateStats aggregates corpus evidence for one candidate root.
type CandidateStats struct {
	Root              string          `json:"root"`
	TotalInstances    int             `json:"total_instances"`
	StandaloneCount   int             `json:"standalone_count"`
	AffixedCount      int             `json:"affixed_count"`
	Positions         PositionCounts  `json:"positions"`
	Unpositioned      int             `json:"unpositioned"`
	SectionCounts     map[Section]int `json:"section_counts"`
	CooccurrenceCount int             `json:"cooccurrence_count"`
	// OverlappingRoots lists declared roots that contain Root as a proper
	// substring. Containment counting attributes their tokens to Root as well.
	OverlappingRoots []string `json:"overlapping_roots,omitempty"`
}

// SectionsPresent counts named sections with at least one instance.
func (s CandidateStats) SectionsPresent() int {
	n := 0
	for _, sec := range Sections() {
		if s.SectionCounts[sec] > 0 {
			n++
		}
	}
	return n
}

// SubScores are the five independent evidence dimensions, each 0..2.
type SubScores struct {
	Morphology   int `json:"morphology"`
	Standalone   int `json:"standalone"`
	Position     int `json:"position"`
	Distribution int `json:"distribution"`
	Cooccurrence int `json:"cooccurrence"`
}

// Sum adds the dimensions.
func (s SubScores) Sum() int {
	return s.Morphology + s.Standalone + s.Position + s.Distribution + s.Cooccurrence
}

// Classification is the discrete verdict derived from an evidence total.
type Classification string

const (
	ClassValidated Classification = "VALIDATED"
	ClassLikely    Classification = "LIKELY"
	ClassPossible  Classification = "POSSIBLE"
	ClassRejected  Classification = "REJECTED"
)

// Reason qualifies a classification that was not reached by score alone.
type Reason string

const (
	ReasonNone                  Reason = ""
	ReasonInsufficientFrequency Reason = "insufficient frequency"
)

// EvidenceScore is the automated verdict for one candidate. It is computed
// from corpus statistics only.
type EvidenceScore struct {
	Root           string         `json:"root"`
	Role           Role           `json:"role"`
	SubScores      SubScores      `json:"sub_scores"`
	Total          int            `json:"total"`
	Classification Classification `json:"classification"`
	Reason         Reason         `json:"reason,omitempty"`
}

// Annotation is a reviewer's judgment about a candidate. It is kept next to
// an EvidenceScore and never added to its total.
type Annotation struct {
	Root      string         `json:"root"`
	Reviewer  string         `json:"reviewer"`
	Note      string         `json:"note"`
	Suggested Classification `json:"suggested,omitempty"`
}
