// Package evidence turns aggregated corpus statistics into a 0..10 evidence
// score and a classification. Scoring is a pure function of its inputs.
package evidence

import (
	"MorphScanner/internal/domain"
)

// MaxTotal is the highest reachable evidence total.
const MaxTotal = 10

// Scorer applies a fixed set of thresholds.
type Scorer struct {
	th Thresholds
}

// NewScorer builds a scorer; invalid thresholds fall back to the defaults.
func NewScorer(th Thresholds) *Scorer {
	if th.Validate() != nil {
		th = DefaultThresholds()
	}
	return &Scorer{th: th}
}

// Thresholds returns the cutoffs in use.
func (s *Scorer) Thresholds() Thresholds { return s.th }

// Score maps stats to an EvidenceScore. Candidates under the frequency floor
// are REJECTED with ReasonInsufficientFrequency whatever their sub-scores.
func (s *Scorer) Score(st domain.CandidateStats, role domain.Role) domain.EvidenceScore {
	if role == "" {
		role = domain.RoleRoot
	}

	subs := domain.SubScores{}
	if st.TotalInstances > 0 {
		subs = domain.SubScores{
			Morphology:   s.morphology(st, role),
			Standalone:   s.th.Standalone.Points(percent(st.StandaloneCount, st.TotalInstances)),
			Position:     s.th.MedialPosition.Points(percent(st.Positions.Medial, st.Positions.Total())),
			Distribution: s.distribution(st.SectionsPresent()),
			Cooccurrence: s.th.Cooccurrence.Points(percent(st.CooccurrenceCount, st.TotalInstances)),
		}
	}

	score := domain.EvidenceScore{
		Root:      st.Root,
		Role:      role,
		SubScores: subs,
		Total:     subs.Sum(),
	}

	if st.TotalInstances == 0 || st.TotalInstances < s.th.MinFrequency {
		score.Classification = domain.ClassRejected
		score.Reason = domain.ReasonInsufficientFrequency
		return score
	}

	score.Classification = s.Classify(score.Total)
	return score
}

// Classify maps a total to its band.
func (s *Scorer) Classify(total int) domain.Classification {
	switch {
	case total >= s.th.Validated:
		return domain.ClassValidated
	case total >= s.th.Likely:
		return domain.ClassLikely
	case total >= s.th.Possible:
		return domain.ClassPossible
	default:
		return domain.ClassRejected
	}
}

func (s *Scorer) morphology(st domain.CandidateStats, role domain.Role) int {
	rate := percent(st.AffixedCount, st.TotalInstances)
	if role == domain.RoleFunctionWord {
		return s.th.FunctionWordAffixation.Points(rate)
	}
	return s.th.RootAffixation.Points(rate)
}

func (s *Scorer) distribution(sections int) int {
	switch {
	case sections >= s.th.SectionsForTwo:
		return 2
	case sections >= s.th.SectionsForOne:
		return 1
	default:
		return 0
	}
}

func percent(part, whole int) float64 {
	if whole <= 0 {
		return 0
	}
	return 100 * float64(part) / float64(whole)
}
