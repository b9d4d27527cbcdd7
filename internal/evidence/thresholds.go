package evidence

import "fmt"

// Band maps a percentage to 0, 1 or 2 points. High earns 2 points when the
// value is strictly above it; Low earns 1 point when the value is at or
// above it. Inverted bands reward low values instead.
type Band struct {
	Low      float64 `yaml:"low"`
	High     float64 `yaml:"high"`
	Inverted bool    `yaml:"inverted"`
}

// Points scores pct (0..100) against the band.
func (b Band) Points(pct float64) int {
	if b.Inverted {
		switch {
		case pct < b.Low:
			return 2
		case pct <= b.High:
			return 1
		default:
			return 0
		}
	}
	switch {
	case pct > b.High:
		return 2
	case pct >= b.Low:
		return 1
	default:
		return 0
	}
}

func (b Band) validate() error {
	if b.Low < 0 || b.High > 100 || b.Low > b.High {
		return fmt.Errorf("band [%v, %v] must satisfy 0 <= low <= high <= 100", b.Low, b.High)
	}
	return nil
}

// Thresholds holds every cutoff the scorer uses. Analysts who disagree with
// a classification tune these rather than the scoring code.
type Thresholds struct {
	FunctionWordAffixation Band `yaml:"function_word_affixation"`
	RootAffixation         Band `yaml:"root_affixation"`
	Standalone             Band `yaml:"standalone"`
	MedialPosition         Band `yaml:"medial_position"`
	Cooccurrence           Band `yaml:"cooccurrence"`
	// SectionsForTwo and SectionsForOne are the section counts that earn 2 and 1 points.
	SectionsForTwo int `yaml:"sections_for_two"`
	SectionsForOne int `yaml:"sections_for_one"`
	// MinFrequency is the instance floor below which a candidate is rejected outright.
	MinFrequency int `yaml:"min_frequency"`
	Validated    int `yaml:"validated"`
	Likely       int `yaml:"likely"`
	Possible     int `yaml:"possible"`
}

// DefaultThresholds returns the published cutoffs.
func DefaultThresholds() Thresholds {
	return Thresholds{
		FunctionWordAffixation: Band{Low: 5, High: 15, Inverted: true},
		RootAffixation:         Band{Low: 15, High: 30},
		Standalone:             Band{Low: 60, High: 80},
		MedialPosition:         Band{Low: 50, High: 70},
		Cooccurrence:           Band{Low: 5, High: 15},
		SectionsForTwo:         4,
		SectionsForOne:         3,
		MinFrequency:           20,
		Validated:              8,
		Likely:                 6,
		Possible:               4,
	}
}

// Validate checks the cutoffs are ordered and in range.
func (t Thresholds) Validate() error {
	for name, b := range map[string]Band{
		"function_word_affixation": t.FunctionWordAffixation,
		"root_affixation":          t.RootAffixation,
		"standalone":               t.Standalone,
		"medial_position":          t.MedialPosition,
		"cooccurrence":             t.Cooccurrence,
	} {
		if err := b.validate(); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}
	if t.SectionsForOne < 1 || t.SectionsForTwo <= t.SectionsForOne {
		return fmt.Errorf("sections: need 1 <= sections_for_one < sections_for_two (got %d, %d)", t.SectionsForOne, t.SectionsForTwo)
	}
	if t.MinFrequency < 1 {
		return fmt.Errorf("min_frequency must be >= 1 (got %d)", t.MinFrequency)
	}
	if !(0 < t.Possible && t.Possible < t.Likely && t.Likely < t.Validated && t.Validated <= MaxTotal) {
		return fmt.Errorf("classification cutoffs must satisfy 0 < possible < likely < validated <= %d", MaxTotal)
	}
	return nil
}
