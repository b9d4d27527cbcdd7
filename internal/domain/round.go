package domain

import "time"

// Candidate is a root submitted for validation together with its role hint.
type Candidate struct {
	Root string `json:"root"`
	Role Role   `json:"role"`
}

// RoundReport is the outcome of one validation round.
type RoundReport struct {
	ID                  string           `json:"id"`
	StartedAt           time.Time        `json:"started_at"`
	FinishedAt          time.Time        `json:"finished_at"`
	SnapshotVersion     int              `json:"snapshot_version"`
	SnapshotFingerprint string           `json:"snapshot_fingerprint"`
	Window              int              `json:"window"`
	CorpusSize          int              `json:"corpus_size"`
	Scores              []EvidenceScore  `json:"scores"`
	Stats               []CandidateStats `json:"stats"`
}

// Validated returns the roots classified VALIDATED in this round.
func (r RoundReport) Validated() []string {
	var roots []string
	for _, s := range r.Scores {
		if s.Classification == ClassValidated {
			roots = append(roots, s.Root)
		}
	}
	return roots
}

// Score looks up the score for root.
func (r RoundReport) Score(root string) (EvidenceScore, bool) {
	for _, s := range r.Scores {
		if s.Root == root {
			return s, true
		}
	}
	return EvidenceScore{}, false
}
