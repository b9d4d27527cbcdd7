package app

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"MorphScanner/internal/candidates"
	"MorphScanner/internal/config"
	"MorphScanner/internal/domain"
	"MorphScanner/internal/infrastructure/parser"
	"MorphScanner/internal/infrastructure/storage"
	"MorphScanner/internal/logging"
	"MorphScanner/internal/morpheme"
	"MorphScanner/internal/ports"
	"MorphScanner/internal/segment"
	"MorphScanner/internal/transcription"
	"MorphScanner/internal/usecase"
	"MorphScanner/internal/vocabulary"
)

// Application wires configs to use cases.
type Application struct {
	cfg        config.Config
	logger     *slog.Logger
	segmenter  *segment.Segmenter
	corpus     *onceSource
	vocabulary ports.VocabularyRepository
	results    ports.ResultRepository
	round      *usecase.Round
	promotion  *usecase.Promotion
	close      func() error
}

// New builds the application from configuration. Call Close when done.
func New(ctx context.Context, cfg config.Config, baseLogger *slog.Logger) (*Application, error) {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Log.Level, cfg.Log.Format)
	}

	table, err := loadTable(cfg.Morphemes)
	if err != nil {
		return nil, err
	}
	segmenter := segment.New(table, baseLogger.With("component", "segmenter"))

	sections, err := transcription.NewSectionMap(cfg.Corpus.Sections)
	if err != nil {
		return nil, fmt.Errorf("section map: %w", err)
	}

	registry := transcription.NewRegistry()
	registry.Register(parser.NewTextReader())
	registry.Register(parser.NewHTMLReader())

	source := &onceSource{
		source: parser.NewStrategySource(registry, cfg.Corpus.Sources, sections, baseLogger.With("component", "source")),
	}

	a := &Application{
		cfg:       cfg,
		logger:    baseLogger,
		segmenter: segmenter,
		corpus:    source,
		close:     func() error { return nil },
	}
	if err := a.openStorage(ctx); err != nil {
		return nil, err
	}

	a.round = usecase.NewRound(usecase.RoundDeps{
		Corpus:     source,
		Vocabulary: a.vocabulary,
		Results:    a.results,
		Segmenter:  segmenter,
		Logger:     baseLogger,
	}, usecase.RoundOptions{
		Window:     cfg.Evidence.Window,
		Workers:    cfg.Evidence.Workers,
		Thresholds: cfg.Evidence.Thresholds,
		Matcher:    cfg.Evidence.Matcher,
	})
	a.promotion = usecase.NewPromotion(a.vocabulary, a.results, baseLogger)

	return a, nil
}

func loadTable(cfg config.MorphemeConfig) (*morpheme.Table, error) {
	table := morpheme.Default()
	if cfg.TablePath != "" {
		loaded, err := morpheme.LoadFile(cfg.TablePath)
		if err != nil {
			return nil, err
		}
		table = loaded
	}
	if len(cfg.Glue) > 0 {
		withGlue, err := morpheme.New(table.Entries(), cfg.Glue)
		if err != nil {
			return nil, fmt.Errorf("morpheme glue: %w", err)
		}
		table = withGlue
	}
	return table, nil
}

func (a *Application) openStorage(ctx context.Context) error {
	switch a.cfg.Storage.Driver {
	case "sqlite":
		repo, err := storage.OpenSQLite(a.cfg.Storage.SQLitePath)
		if err != nil {
			return err
		}
		if err := repo.Migrate(ctx); err != nil {
			_ = repo.Close()
			return err
		}
		a.vocabulary, a.results, a.close = repo, repo, repo.Close
	default:
		a.vocabulary = storage.NewFileVocabularyRepository(a.cfg.Storage.VocabularyPath)
		a.results = storage.NewFileResultRepository(a.cfg.Storage.ReportDir)
	}
	return nil
}

// Close releases storage handles.
func (a *Application) Close() error {
	return a.close()
}

// Segment decomposes each token.
func (a *Application) Segment(tokens []string) []domain.Decomposition {
	return a.segmenter.SegmentAll(tokens)
}

// Discover proposes candidates from the corpus at the configured frequency floor.
func (a *Application) Discover(ctx context.Context, includeResidue bool) ([]candidates.Found, error) {
	tokens, err := a.corpus.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load corpus: %w", err)
	}
	return candidates.Discover(tokens, a.segmenter, candidates.Options{
		MinFrequency:   a.cfg.Evidence.Thresholds.MinFrequency,
		IncludeResidue: includeResidue,
	}), nil
}

// Evaluate runs one validation round.
func (a *Application) Evaluate(ctx context.Context, cands []domain.Candidate) (domain.RoundReport, error) {
	return a.round.Run(ctx, cands)
}

// Promote merges approved roots from a report file or a stored round id.
func (a *Application) Promote(ctx context.Context, report *domain.RoundReport, roundID string, approved []string) (usecase.PromotionResult, error) {
	if report != nil {
		return a.promotion.Run(ctx, *report, approved)
	}
	return a.promotion.RunByID(ctx, roundID, approved)
}

// Vocabulary returns the current reference snapshot.
func (a *Application) Vocabulary(ctx context.Context) (vocabulary.Snapshot, error) {
	return a.vocabulary.Latest(ctx)
}

// Table returns the morpheme table in use.
func (a *Application) Table() *morpheme.Table {
	return a.segmenter.Table()
}

// onceSource memoises the corpus so discovery and scoring share one load.
type onceSource struct {
	source ports.CorpusSource
	once   sync.Once
	tokens []domain.Token
	err    error
}

func (s *onceSource) Load(ctx context.Context) ([]domain.Token, error) {
	s.once.Do(func() {
		s.tokens, s.err = s.source.Load(ctx)
	})
	return s.tokens, s.err
}
