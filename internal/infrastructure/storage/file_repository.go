package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"MorphScanner/internal/domain"
	"MorphScanner/internal/ports"
	"MorphScanner/internal/vocabulary"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("record not found")

// FileVocabularyRepository keeps the current snapshot in one JSON file.
type FileVocabularyRepository struct {
	path string
}

var _ ports.VocabularyRepository = (*FileVocabularyRepository)(nil)

// NewFileVocabularyRepository stores the snapshot at path.
func NewFileVocabularyRepository(path string) *FileVocabularyRepository {
	return &FileVocabularyRepository{path: path}
}

// Latest returns the stored snapshot; a missing file yields the empty version-0 snapshot.
func (r *FileVocabularyRepository) Latest(ctx context.Context) (vocabulary.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return vocabulary.Snapshot{}, err
	}

	raw, err := os.ReadFile(r.path)
	if errors.Is(err, fs.ErrNotExist) {
		return vocabulary.Empty(), nil
	}
	if err != nil {
		return vocabulary.Snapshot{}, fmt.Errorf("read vocabulary: %w", err)
	}

	var rec vocabulary.Record
	if err := json.Unmarshal(raw, &rec); err != nil {
		return vocabulary.Snapshot{}, fmt.Errorf("decode vocabulary %s: %w", r.path, err)
	}
	snap, err := vocabulary.FromRecord(rec)
	if err != nil {
		return vocabulary.Snapshot{}, fmt.Errorf("load vocabulary %s: %w", r.path, err)
	}
	return snap, nil
}

// Save replaces the stored snapshot atomically.
func (r *FileVocabularyRepository) Save(ctx context.Context, snapshot vocabulary.Snapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := writeJSONAtomic(r.path, snapshot.Record()); err != nil {
		return fmt.Errorf("write vocabulary: %w", err)
	}
	return nil
}

// FileResultRepository stores each round report as <dir>/<id>.json.
type FileResultRepository struct {
	dir string
}

var _ ports.ResultRepository = (*FileResultRepository)(nil)

// NewFileResultRepository keeps reports under dir.
func NewFileResultRepository(dir string) *FileResultRepository {
	return &FileResultRepository{dir: dir}
}

// SaveRound writes the report, replacing any earlier file with the same id.
func (r *FileResultRepository) SaveRound(ctx context.Context, report domain.RoundReport) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	path, err := r.reportPath(report.ID)
	if err != nil {
		return err
	}
	if err := writeJSONAtomic(path, report); err != nil {
		return fmt.Errorf("write round %s: %w", report.ID, err)
	}
	return nil
}

// LoadRound reads a report by id.
func (r *FileResultRepository) LoadRound(ctx context.Context, id string) (domain.RoundReport, error) {
	if err := ctx.Err(); err != nil {
		return domain.RoundReport{}, err
	}
	path, err := r.reportPath(id)
	if err != nil {
		return domain.RoundReport{}, err
	}
	report, err := ReadReport(path)
	if errors.Is(err, fs.ErrNotExist) {
		return domain.RoundReport{}, fmt.Errorf("round %s: %w", id, ErrNotFound)
	}
	return report, err
}

func (r *FileResultRepository) reportPath(id string) (string, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return "", fmt.Errorf("invalid round id %q: %w", id, err)
	}
	return filepath.Join(r.dir, parsed.String()+".json"), nil
}

// ReadReport decodes a round report written by SaveRound or by the CLI.
func ReadReport(path string) (domain.RoundReport, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return domain.RoundReport{}, fmt.Errorf("read report: %w", err)
	}
	var report domain.RoundReport
	if err := json.Unmarshal(raw, &report); err != nil {
		return domain.RoundReport{}, fmt.Errorf("decode report %s: %w", path, err)
	}
	return report, nil
}

// writeJSONAtomic writes v to a temp file in the target directory and
// renames it into place.
func writeJSONAtomic(path string, v any) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("create temp: %w", err)
	}
	defer os.Remove(tmp.Name())

	enc := json.NewEncoder(tmp)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("encode: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("sync: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("rename: %w", err)
	}
	return nil
}
