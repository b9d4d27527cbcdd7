package evidence

import "MorphScanner/internal/domain"

// Review pairs an automated score with a reviewer's annotation. The score is
// carried as computed; the annotation never feeds into it.
type Review struct {
	Score      domain.EvidenceScore `json:"score"`
	Annotation *domain.Annotation   `json:"annotation,omitempty"`
	// Flips is set when the reviewer's suggestion differs from the automated class.
	Flips bool `json:"flips"`
}

// NewReview attaches ann to score. A nil or mismatched annotation is ignored.
func NewReview(score domain.EvidenceScore, ann *domain.Annotation) Review {
	r := Review{Score: score}
	if ann == nil || ann.Root != score.Root {
		return r
	}
	a := *ann
	r.Annotation = &a
	r.Flips = a.Suggested != "" && a.Suggested != score.Classification
	return r
}
