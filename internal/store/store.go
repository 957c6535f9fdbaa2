// Package store handles SQLite persistence for run history.
package store

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver.
)

// Run records one completed worksheet generation.
type Run struct {
	ID          int64
	CreatedAt   time.Time
	Criteria    string
	Requested   int
	Obtained    int
	Shortfall   int
	Seed        int64
	MinRating   int
	MaxRating   int
	Progressive bool
	CorpusPath  string
	OutputPath  string
}

// Store wraps SQLite access for run history.
type Store struct {
	db *sql.DB
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY,
			created_at TEXT NOT NULL,
			criteria TEXT NOT NULL,
			requested INTEGER NOT NULL,
			obtained INTEGER NOT NULL,
			shortfall INTEGER NOT NULL,
			seed INTEGER NOT NULL,
			min_rating INTEGER NOT NULL,
			max_rating INTEGER NOT NULL,
			progressive INTEGER NOT NULL,
			corpus_path TEXT NOT NULL,
			output_path TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_runs_created_at ON runs(created_at);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// InsertRun stores one generation run.
func (s *Store) InsertRun(ctx context.Context, run Run) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (created_at, criteria, requested, obtained, shortfall, seed, min_rating, max_rating, progressive, corpus_path, output_path)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.CreatedAt.Format(time.RFC3339Nano),
		run.Criteria,
		run.Requested,
		run.Obtained,
		run.Shortfall,
		run.Seed,
		run.MinRating,
		run.MaxRating,
		boolToInt(run.Progressive),
		run.CorpusPath,
		run.OutputPath,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// ListRuns returns the most recent runs, newest first.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, created_at, criteria, requested, obtained, shortfall, seed, min_rating, max_rating, progressive, corpus_path, output_path
		 FROM runs
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var runs []Run
	for rows.Next() {
		var run Run
		var createdAt string
		var progressive int
		if err := rows.Scan(&run.ID, &createdAt, &run.Criteria, &run.Requested, &run.Obtained, &run.Shortfall, &run.Seed, &run.MinRating, &run.MaxRating, &progressive, &run.CorpusPath, &run.OutputPath); err != nil {
			return nil, err
		}
		parsed, err := time.Parse(time.RFC3339Nano, createdAt)
		if err != nil {
			return nil, err
		}
		run.CreatedAt = parsed
		run.Progressive = progressive != 0
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return runs, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
