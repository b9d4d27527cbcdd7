package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"MorphScanner/internal/domain"
	"MorphScanner/internal/ports"
	"MorphScanner/internal/vocabulary"
	"MorphScanner/pkg/logger"
)

// ErrStaleReport is returned when the vocabulary changed after the round ran.
var ErrStaleReport = errors.New("report was produced against a different vocabulary snapshot")

// PromotionResult describes what a promotion merged and what it refused.
type PromotionResult struct {
	Snapshot   vocabulary.Snapshot    `json:"-"`
	Version    int                    `json:"version"`
	Promoted   []string               `json:"promoted"`
	Rejections []vocabulary.Rejection `json:"rejections"`
}

// Promotion merges reviewer-approved roots from a round into the vocabulary.
type Promotion struct {
	vocabulary ports.VocabularyRepository
	results    ports.ResultRepository
	logger     *slog.Logger
	now        func() time.Time
}

// NewPromotion wires the vocabulary store; results may be nil when reports
// are always passed in directly.
func NewPromotion(vocab ports.VocabularyRepository, results ports.ResultRepository, log *slog.Logger) *Promotion {
	return &Promotion{
		vocabulary: vocab,
		results:    results,
		logger:     logger.Component(log, "promotion"),
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// Run checks the report against the current snapshot and saves the merged
// snapshot when at least one approved root qualifies.
func (p *Promotion) Run(ctx context.Context, report domain.RoundReport, approved []string) (PromotionResult, error) {
	if p.vocabulary == nil {
		return PromotionResult{}, fmt.Errorf("vocabulary repository is not configured")
	}

	current, err := p.vocabulary.Latest(ctx)
	if err != nil {
		return PromotionResult{}, fmt.Errorf("load vocabulary: %w", err)
	}
	if current.Version() != report.SnapshotVersion || current.Fingerprint() != report.SnapshotFingerprint {
		return PromotionResult{}, fmt.Errorf("%w: round %s used v%d, current is v%d",
			ErrStaleReport, report.ID, report.SnapshotVersion, current.Version())
	}

	next, rejections, err := vocabulary.Promote(current, report, approved, p.now())
	if err != nil {
		return PromotionResult{}, fmt.Errorf("promote: %w", err)
	}

	for _, rej := range rejections {
		p.logger.Info("root not promoted", "round", report.ID, "root", rej.Root, "reason", rej.Reason)
	}

	result := PromotionResult{Snapshot: next, Version: next.Version(), Rejections: rejections}
	if next.Version() == current.Version() {
		return result, nil
	}

	for _, root := range next.Roots() {
		if !current.Contains(root) {
			result.Promoted = append(result.Promoted, root)
		}
	}

	if err := p.vocabulary.Save(ctx, next); err != nil {
		return PromotionResult{}, fmt.Errorf("save vocabulary v%d: %w", next.Version(), err)
	}

	p.logger.Info("vocabulary promoted",
		"round", report.ID,
		"version", next.Version(),
		"promoted", result.Promoted,
	)
	return result, nil
}

// RunByID loads a stored report before promoting from it.
func (p *Promotion) RunByID(ctx context.Context, roundID string, approved []string) (PromotionResult, error) {
	if p.results == nil {
		return PromotionResult{}, fmt.Errorf("result repository is not configured")
	}
	report, err := p.results.LoadRound(ctx, roundID)
	if err != nil {
		return PromotionResult{}, fmt.Errorf("load round: %w", err)
	}
	return p.Run(ctx, report, approved)
}
