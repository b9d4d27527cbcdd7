package ports

import (
	"context"

	"MorphScanner/internal/domain"
	"MorphScanner/internal/vocabulary"
)

// CorpusSource loads the ordered token stream of the transcription.
type CorpusSource interface {
	Load(ctx context.Context) ([]domain.Token, error)
}

// VocabularyRepository reads and writes reference vocabulary snapshots.
type VocabularyRepository interface {
	// Latest returns the newest snapshot, or vocabulary.Empty() when none exists.
	Latest(ctx context.Context) (vocabulary.Snapshot, error)
	Save(ctx context.Context, snapshot vocabulary.Snapshot) error
}

// ResultRepository persists round reports for audit and later promotion.
type ResultRepository interface {
	SaveRound(ctx context.Context, report domain.RoundReport) error
	LoadRound(ctx context.Context, id string) (domain.RoundReport, error)
}
