package sink

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// sqliteSink is the embedded variant of the hand-off sink, for runs on
// machines without a database server.
type sqliteSink struct {
	db *sql.DB
}

func newSQLite(path string) (Sink, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("sink: open sqlite: %w", err)
	}
	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS vehicles_km (
			spz        TEXT PRIMARY KEY,
			kilometers INTEGER NOT NULL,
			updated_at TEXT NOT NULL
		)`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sink: create vehicles_km: %w", err)
	}
	return &sqliteSink{db: db}, nil
}

func (s *sqliteSink) Save(ctx context.Context, km map[string]int) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("sink: begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM vehicles_km`); err != nil {
		return fmt.Errorf("sink: clear: %w", err)
	}
	stmt, err := tx.PrepareContext(ctx, `INSERT INTO vehicles_km (spz, kilometers, updated_at) VALUES (?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("sink: prepare: %w", err)
	}
	defer stmt.Close()

	now := time.Now().Format(time.RFC3339)
	for spz, v := range km {
		if _, err := stmt.ExecContext(ctx, spz, v, now); err != nil {
			return fmt.Errorf("sink: insert %s: %w", spz, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("sink: commit: %w", err)
	}
	return nil
}

func (s *sqliteSink) Close(ctx context.Context) error {
	return s.db.Close()
}
