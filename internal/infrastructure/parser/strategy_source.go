package parser

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"MorphScanner/internal/config"
	"MorphScanner/internal/domain"
	"MorphScanner/internal/ports"
	"MorphScanner/internal/transcription"
)

// StrategySource implements CorpusSource via registered transcription readers.
type StrategySource struct {
	registry *transcription.Registry
	sources  []config.SourceConfig
	sections *transcription.SectionMap
	logger   *slog.Logger
}

var _ ports.CorpusSource = (*StrategySource)(nil)

// NewStrategySource wires the reader registry with config-defined documents.
func NewStrategySource(reg *transcription.Registry, sources []config.SourceConfig, sections *transcription.SectionMap, log *slog.Logger) *StrategySource {
	return &StrategySource{
		registry: reg,
		sources:  sources,
		sections: sections,
		logger:   log,
	}
}

// Load reads every configured document in order and concatenates them into
// one stream. Positions and sentence ids are renumbered to stay unique.
func (s *StrategySource) Load(ctx context.Context) ([]domain.Token, error) {
	if s.registry == nil {
		return nil, fmt.Errorf("transcription registry is not configured")
	}
	if len(s.sources) == 0 {
		return nil, fmt.Errorf("no corpus sources configured")
	}

	s.debug("load corpus", "sources", len(s.sources))

	var (
		aggregated   []domain.Token
		nextSentence int
	)
	for _, src := range s.sources {
		s.debug("process source", "source", src.Name, "format", src.Format, "path", src.Path)
		reader, err := s.registry.Resolve(src.Format)
		if err != nil {
			return nil, fmt.Errorf("source %s: %w", src.Name, err)
		}

		tokens, err := s.read(ctx, reader, src)
		if err != nil {
			return nil, fmt.Errorf("read source %s: %w", src.Name, err)
		}

		offset, sentences := len(aggregated), 0
		for i := range tokens {
			tokens[i].Position += offset
			sentences = max(sentences, tokens[i].SentenceID+1)
			tokens[i].SentenceID += nextSentence
		}
		nextSentence += sentences

		s.debug("source produced tokens", "source", src.Name, "tokens", len(tokens), "sentences", sentences)
		aggregated = append(aggregated, tokens...)
	}

	s.debug("strategy source done", "total_tokens", len(aggregated), "total_sentences", nextSentence)
	return aggregated, nil
}

func (s *StrategySource) read(ctx context.Context, reader transcription.Reader, src config.SourceConfig) ([]domain.Token, error) {
	f, err := os.Open(src.Path)
	if err != nil {
		return nil, fmt.Errorf("open: %w", err)
	}
	defer f.Close()

	return reader.Read(ctx, transcription.Request{
		Name:     src.Name,
		Body:     f,
		Sections: s.sections,
	})
}

func (s *StrategySource) debug(msg string, args ...interface{}) {
	if s.logger != nil {
		s.logger.Debug(msg, args...)
	}
}
