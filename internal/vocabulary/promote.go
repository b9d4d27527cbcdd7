package vocabulary

import (
	"errors"
	"time"

	"MorphScanner/internal/domain"
)

// ErrNotApproved is returned when Promote is called without approved roots.
var ErrNotApproved = errors.New("no roots approved for promotion")

// Rejection explains why an approved root was not merged.
type Rejection struct {
	Root   string `json:"root"`
	Reason string `json:"reason"`
}

const (
	reasonNotInRound   = "not evaluated in round"
	reasonNotValidated = "not classified VALIDATED"
	reasonAlreadyKnown = "already in vocabulary"
)

// Promote merges the approved roots that the round classified VALIDATED into
// a new snapshot with the next version. base is left untouched. When nothing
// qualifies base is returned unchanged along with the rejections.
func Promote(base Snapshot, report domain.RoundReport, approved []string, now time.Time) (Snapshot, []Rejection, error) {
	if len(approved) == 0 {
		return base, nil, ErrNotApproved
	}

	var (
		accepted   []string
		rejections []Rejection
		seen       = map[string]bool{}
	)
	for _, root := range approved {
		if seen[root] {
			continue
		}
		seen[root] = true

		score, ok := report.Score(root)
		switch {
		case !ok:
			rejections = append(rejections, Rejection{Root: root, Reason: reasonNotInRound})
		case score.Classification != domain.ClassValidated:
			rejections = append(rejections, Rejection{Root: root, Reason: reasonNotValidated + " (" + string(score.Classification) + ")"})
		case base.Contains(root):
			rejections = append(rejections, Rejection{Root: root, Reason: reasonAlreadyKnown})
		default:
			accepted = append(accepted, root)
		}
	}

	if len(accepted) == 0 {
		return base, rejections, nil
	}

	merged := append(base.Roots(), accepted...)
	return NewSnapshot(base.Version()+1, merged, now), rejections, nil
}
