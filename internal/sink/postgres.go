package sink

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
)

// pgSink writes the snapshot to Postgres using COPY inside one
// transaction. No retries; surface errors directly.
type pgSink struct {
	conn *pgx.Conn
}

func newPostgres(ctx context.Context, dsn string) (Sink, error) {
	conn, err := pgx.Connect(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("sink: connect postgres: %w", err)
	}
	if _, err := conn.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS vehicles_km (
			spz        TEXT PRIMARY KEY,
			kilometers BIGINT NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		)`); err != nil {
		_ = conn.Close(ctx)
		return nil, fmt.Errorf("sink: create vehicles_km: %w", err)
	}
	return &pgSink{conn: conn}, nil
}

func (s *pgSink) Save(ctx context.Context, km map[string]int) error {
	tx, err := s.conn.Begin(ctx)
	if err != nil {
		return fmt.Errorf("sink: begin: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `TRUNCATE vehicles_km`); err != nil {
		return fmt.Errorf("sink: truncate: %w", err)
	}

	now := time.Now()
	rows := make([][]interface{}, 0, len(km))
	for spz, v := range km {
		rows = append(rows, []interface{}{spz, v, now})
	}
	if _, err := tx.CopyFrom(ctx,
		pgx.Identifier{"vehicles_km"},
		[]string{"spz", "kilometers", "updated_at"},
		pgx.CopyFromRows(rows),
	); err != nil {
		return fmt.Errorf("sink: copy: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("sink: commit: %w", err)
	}
	return nil
}

func (s *pgSink) Close(ctx context.Context) error {
	return s.conn.Close(ctx)
}
