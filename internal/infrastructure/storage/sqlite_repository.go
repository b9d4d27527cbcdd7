package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	_ "modernc.org/sqlite"

	"MorphScanner/internal/domain"
	"MorphScanner/internal/ports"
	"MorphScanner/internal/vocabulary"
)

const sqliteDriver = "sqlite"

var schema = []string{
	`CREATE TABLE IF NOT EXISTS vocabulary_snapshots (
		version     INTEGER PRIMARY KEY,
		roots       TEXT NOT NULL,
		fingerprint TEXT NOT NULL,
		created_at  TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS rounds (
		id                   TEXT PRIMARY KEY,
		started_at           TEXT NOT NULL,
		finished_at          TEXT NOT NULL,
		snapshot_version     INTEGER NOT NULL,
		snapshot_fingerprint TEXT NOT NULL,
		window_size          INTEGER NOT NULL,
		corpus_size          INTEGER NOT NULL,
		stats                TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS round_scores (
		round_id       TEXT NOT NULL REFERENCES rounds(id) ON DELETE CASCADE,
		ordinal        INTEGER NOT NULL,
		root           TEXT NOT NULL,
		role           TEXT NOT NULL,
		morphology     INTEGER NOT NULL,
		standalone     INTEGER NOT NULL,
		position       INTEGER NOT NULL,
		distribution   INTEGER NOT NULL,
		cooccurrence   INTEGER NOT NULL,
		total          INTEGER NOT NULL,
		classification TEXT NOT NULL,
		reason         TEXT NOT NULL,
		PRIMARY KEY (round_id, ordinal)
	)`,
	`CREATE INDEX IF NOT EXISTS round_scores_root ON round_scores(root)`,
}

// SQLiteRepository persists vocabulary snapshots and round reports in SQLite.
type SQLiteRepository struct {
	db *sql.DB
	sb squirrel.StatementBuilderType
}

var (
	_ ports.VocabularyRepository = (*SQLiteRepository)(nil)
	_ ports.ResultRepository     = (*SQLiteRepository)(nil)
)

// OpenSQLite opens (creating if needed) the database file at path.
func OpenSQLite(path string) (*SQLiteRepository, error) {
	db, err := sql.Open(sqliteDriver, path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	// A single connection serialises writers and keeps :memory: databases shared.
	db.SetMaxOpenConns(1)
	return NewSQLiteRepository(db), nil
}

// NewSQLiteRepository wires a sql.DB implementation.
func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question),
	}
}

// Close releases the underlying database.
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

// Migrate creates the tables when they do not exist yet.
func (r *SQLiteRepository) Migrate(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `PRAGMA foreign_keys = ON`); err != nil {
		return fmt.Errorf("enable foreign keys: %w", err)
	}
	for _, stmt := range schema {
		if _, err := r.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}

// Latest returns the snapshot with the highest version, or the empty snapshot.
func (r *SQLiteRepository) Latest(ctx context.Context) (vocabulary.Snapshot, error) {
	query, args, err := r.sb.
		Select("version", "roots", "fingerprint", "created_at").
		From("vocabulary_snapshots").
		OrderBy("version DESC").
		Limit(1).
		ToSql()
	if err != nil {
		return vocabulary.Snapshot{}, fmt.Errorf("build query: %w", err)
	}

	var (
		rec            vocabulary.Record
		roots, created string
	)
	err = r.db.QueryRowContext(ctx, query, args...).Scan(&rec.Version, &roots, &rec.Fingerprint, &created)
	if errors.Is(err, sql.ErrNoRows) {
		return vocabulary.Empty(), nil
	}
	if err != nil {
		return vocabulary.Snapshot{}, fmt.Errorf("query snapshot: %w", err)
	}

	if err := json.Unmarshal([]byte(roots), &rec.Roots); err != nil {
		return vocabulary.Snapshot{}, fmt.Errorf("decode roots: %w", err)
	}
	if rec.CreatedAt, err = parseTime(created); err != nil {
		return vocabulary.Snapshot{}, err
	}

	snap, err := vocabulary.FromRecord(rec)
	if err != nil {
		return vocabulary.Snapshot{}, fmt.Errorf("load snapshot v%d: %w", rec.Version, err)
	}
	return snap, nil
}

// Save inserts a new snapshot version. Versions are never overwritten.
func (r *SQLiteRepository) Save(ctx context.Context, snapshot vocabulary.Snapshot) error {
	rec := snapshot.Record()
	roots, err := json.Marshal(rec.Roots)
	if err != nil {
		return fmt.Errorf("encode roots: %w", err)
	}

	query, args, err := r.sb.
		Insert("vocabulary_snapshots").
		Columns("version", "roots", "fingerprint", "created_at").
		Values(rec.Version, string(roots), rec.Fingerprint, formatTime(rec.CreatedAt)).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert snapshot v%d: %w", rec.Version, err)
	}
	return nil
}

// SaveRound stores the report header and its scores in one transaction.
func (r *SQLiteRepository) SaveRound(ctx context.Context, report domain.RoundReport) (err error) {
	stats, err := json.Marshal(report.Stats)
	if err != nil {
		return fmt.Errorf("encode stats: %w", err)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	header := r.sb.
		Insert("rounds").
		Columns("id", "started_at", "finished_at", "snapshot_version", "snapshot_fingerprint",
			"window_size", "corpus_size", "stats").
		Values(report.ID, formatTime(report.StartedAt), formatTime(report.FinishedAt),
			report.SnapshotVersion, report.SnapshotFingerprint, report.Window, report.CorpusSize, string(stats))
	if err = execBuilder(ctx, tx, header); err != nil {
		return fmt.Errorf("insert round %s: %w", report.ID, err)
	}

	if len(report.Scores) > 0 {
		scores := r.sb.
			Insert("round_scores").
			Columns("round_id", "ordinal", "root", "role", "morphology", "standalone", "position",
				"distribution", "cooccurrence", "total", "classification", "reason")
		for i, s := range report.Scores {
			scores = scores.Values(report.ID, i, s.Root, string(s.Role),
				s.SubScores.Morphology, s.SubScores.Standalone, s.SubScores.Position,
				s.SubScores.Distribution, s.SubScores.Cooccurrence,
				s.Total, string(s.Classification), string(s.Reason))
		}
		if err = execBuilder(ctx, tx, scores); err != nil {
			return fmt.Errorf("insert scores for %s: %w", report.ID, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit round %s: %w", report.ID, err)
	}
	return nil
}

// LoadRound rebuilds a stored report; scores keep their original order.
func (r *SQLiteRepository) LoadRound(ctx context.Context, id string) (domain.RoundReport, error) {
	query, args, err := r.sb.
		Select("id", "started_at", "finished_at", "snapshot_version", "snapshot_fingerprint",
			"window_size", "corpus_size", "stats").
		From("rounds").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return domain.RoundReport{}, fmt.Errorf("build query: %w", err)
	}

	var (
		report                   domain.RoundReport
		started, finished, stats string
	)
	err = r.db.QueryRowContext(ctx, query, args...).Scan(&report.ID, &started, &finished,
		&report.SnapshotVersion, &report.SnapshotFingerprint, &report.Window, &report.CorpusSize, &stats)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.RoundReport{}, fmt.Errorf("round %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return domain.RoundReport{}, fmt.Errorf("query round %s: %w", id, err)
	}
	if report.StartedAt, err = parseTime(started); err != nil {
		return domain.RoundReport{}, err
	}
	if report.FinishedAt, err = parseTime(finished); err != nil {
		return domain.RoundReport{}, err
	}
	if err := json.Unmarshal([]byte(stats), &report.Stats); err != nil {
		return domain.RoundReport{}, fmt.Errorf("decode stats: %w", err)
	}

	report.Scores, err = r.loadScores(ctx, id)
	if err != nil {
		return domain.RoundReport{}, err
	}
	return report, nil
}

func (r *SQLiteRepository) loadScores(ctx context.Context, id string) ([]domain.EvidenceScore, error) {
	query, args, err := r.sb.
		Select("root", "role", "morphology", "standalone", "position", "distribution",
			"cooccurrence", "total", "classification", "reason").
		From("round_scores").
		Where(squirrel.Eq{"round_id": id}).
		OrderBy("ordinal").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query scores: %w", err)
	}

	var scores []domain.EvidenceScore
	for rows.Next() {
		var s domain.EvidenceScore
		if err := rows.Scan(&s.Root, &s.Role, &s.SubScores.Morphology, &s.SubScores.Standalone,
			&s.SubScores.Position, &s.SubScores.Distribution, &s.SubScores.Cooccurrence,
			&s.Total, &s.Classification, &s.Reason); err != nil {
			_ = rows.Close()
			return nil, fmt.Errorf("scan score: %w", err)
		}
		scores = append(scores, s)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		_ = rows.Close()
		return nil, fmt.Errorf("rows iteration: %w", rowsErr)
	}

	if closeErr := rows.Close(); closeErr != nil {
		return nil, fmt.Errorf("close rows: %w", closeErr)
	}

	return scores, nil
}

func execBuilder(ctx context.Context, tx *sql.Tx, b squirrel.Sqlizer) error {
	query, args, err := b.ToSql()
	if err != nil {
		return fmt.Errorf("build statement: %w", err)
	}
	_, err = tx.ExecContext(ctx, query, args...)
	return err
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse time %q: %w", s, err)
	}
	return t, nil
}
