package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"MorphScanner/internal/domain"
	"MorphScanner/internal/evidence"
	"MorphScanner/internal/ports"
	"MorphScanner/internal/segment"
	"MorphScanner/internal/stats"
	"MorphScanner/pkg/logger"
)

// Matcher names accepted by RoundOptions.
const (
	MatcherContainment = "containment"
	MatcherBoundary    = "boundary"
)

var (
	// ErrNoCandidates is returned when a round is started with nothing to evaluate.
	ErrNoCandidates = errors.New("no candidates to evaluate")
	// ErrInvalidCandidate is returned for candidates with an empty root.
	ErrInvalidCandidate = errors.New("invalid candidate")
)

// RoundDeps wires the driven adapters into a validation round.
type RoundDeps struct {
	Corpus     ports.CorpusSource
	Vocabulary ports.VocabularyRepository
	// Results is optional; when nil the report is only returned.
	Results   ports.ResultRepository
	Segmenter *segment.Segmenter
	Logger    *slog.Logger
	Now       func() time.Time
}

// RoundOptions tune aggregation and scoring.
type RoundOptions struct {
	Window     int
	Workers    int
	Thresholds evidence.Thresholds
	Matcher    string
}

// Round evaluates a batch of candidates against one corpus and one
// vocabulary snapshot. It reports newly validated roots but never merges them.
type Round struct {
	corpus     ports.CorpusSource
	vocabulary ports.VocabularyRepository
	results    ports.ResultRepository
	segmenter  *segment.Segmenter
	logger     *slog.Logger
	now        func() time.Time
	opts       RoundOptions
}

// NewRound constructs the round use case.
func NewRound(deps RoundDeps, opts RoundOptions) *Round {
	if opts.Workers < 1 {
		opts.Workers = 1
	}
	if opts.Matcher == "" {
		opts.Matcher = MatcherContainment
	}
	now := deps.Now
	if now == nil {
		now = func() time.Time { return time.Now().UTC() }
	}
	return &Round{
		corpus:     deps.Corpus,
		vocabulary: deps.Vocabulary,
		results:    deps.Results,
		segmenter:  deps.Segmenter,
		logger:     logger.Component(deps.Logger, "round"),
		now:        now,
		opts:       opts,
	}
}

// Run loads the corpus and the vocabulary snapshot once, scores every
// candidate and returns the report with results in input order.
func (r *Round) Run(ctx context.Context, candidates []domain.Candidate) (domain.RoundReport, error) {
	if r.corpus == nil || r.vocabulary == nil || r.segmenter == nil {
		return domain.RoundReport{}, fmt.Errorf("round is not fully configured")
	}
	candidates, err := r.normalize(candidates)
	if err != nil {
		return domain.RoundReport{}, err
	}

	report := domain.RoundReport{ID: uuid.NewString(), StartedAt: r.now()}
	log := r.logger.With("round", report.ID)

	tokens, err := r.corpus.Load(ctx)
	if err != nil {
		return domain.RoundReport{}, fmt.Errorf("load corpus: %w", err)
	}
	corpus := stats.NewCorpus(tokens)

	snapshot, err := r.vocabulary.Latest(ctx)
	if err != nil {
		return domain.RoundReport{}, fmt.Errorf("load vocabulary: %w", err)
	}

	matcher, err := r.matcher(corpus)
	if err != nil {
		return domain.RoundReport{}, err
	}

	agg := stats.NewAggregator(corpus, snapshot, stats.Options{
		Window:     r.opts.Window,
		Matcher:    matcher,
		KnownRoots: r.segmenter.Table().Roots(),
	})
	scorer := evidence.NewScorer(r.opts.Thresholds)

	log.Info("round started",
		"candidates", len(candidates),
		"tokens", corpus.Len(),
		"snapshot_version", snapshot.Version(),
		"matcher", matcher.Name(),
		"workers", r.opts.Workers,
	)

	report.Scores = make([]domain.EvidenceScore, len(candidates))
	report.Stats = make([]domain.CandidateStats, len(candidates))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.opts.Workers)
	for i, c := range candidates {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			st := agg.Aggregate(c.Root)
			report.Stats[i] = st
			report.Scores[i] = scorer.Score(st, c.Role)
			if len(st.OverlappingRoots) > 0 {
				log.Debug("candidate overlaps known roots", "root", c.Root, "overlaps", st.OverlappingRoots)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return domain.RoundReport{}, fmt.Errorf("evaluate candidates: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return domain.RoundReport{}, fmt.Errorf("evaluate candidates: %w", err)
	}

	report.FinishedAt = r.now()
	report.SnapshotVersion = snapshot.Version()
	report.SnapshotFingerprint = snapshot.Fingerprint()
	report.Window = agg.Window()
	report.CorpusSize = corpus.Len()

	if r.results != nil {
		if err := r.results.SaveRound(ctx, report); err != nil {
			return domain.RoundReport{}, fmt.Errorf("persist round: %w", err)
		}
	}

	log.Info("round finished",
		"validated", len(report.Validated()),
		"duration", report.FinishedAt.Sub(report.StartedAt),
	)
	return report, nil
}

// normalize drops duplicate roots (first occurrence wins) and fills in
// missing roles from the morpheme table.
func (r *Round) normalize(candidates []domain.Candidate) ([]domain.Candidate, error) {
	if len(candidates) == 0 {
		return nil, ErrNoCandidates
	}

	out := make([]domain.Candidate, 0, len(candidates))
	seen := make(map[string]bool, len(candidates))
	for _, c := range candidates {
		if c.Root == "" {
			return nil, fmt.Errorf("%w: empty root", ErrInvalidCandidate)
		}
		if seen[c.Root] {
			r.logger.Warn("duplicate candidate ignored", "root", c.Root)
			continue
		}
		seen[c.Root] = true

		if c.Role == "" {
			c.Role = domain.RoleRoot
			if entry, ok := r.segmenter.Table().Lookup(domain.SlotRoot, c.Root); ok {
				c.Role = entry.Role
			}
		}
		out = append(out, c)
	}
	return out, nil
}

func (r *Round) matcher(corpus *stats.Corpus) (stats.Matcher, error) {
	switch r.opts.Matcher {
	case MatcherContainment:
		return stats.Containment{}, nil
	case MatcherBoundary:
		return stats.NewBoundary(r.segmenter, corpus), nil
	default:
		return nil, fmt.Errorf("unknown matcher %q", r.opts.Matcher)
	}
}
