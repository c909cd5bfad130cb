// Package sink persists the normalized vehicle→kilometers hand-off that
// downstream consumers join on. Keys arrive already normalized (spaces
// stripped), matching the mileage index; the sink must not re-normalize.
//
// Semantics are replace-all: every run truncates the hand-off table and
// reloads it, so consumers always see one consistent snapshot. A sink
// failure is reported but does not invalidate the already-written report.
package sink

import (
	"context"
	"fmt"
)

// Sink stores one mileage snapshot.
type Sink interface {
	// Save replaces the stored snapshot with km (vehicle key → kilometers).
	Save(ctx context.Context, km map[string]int) error
	Close(ctx context.Context) error
}

// New builds a sink for the configured driver. An empty driver or "none"
// returns (nil, nil): the hand-off is simply skipped.
func New(ctx context.Context, driver, dsn string) (Sink, error) {
	switch driver {
	case "", "none":
		return nil, nil
	case "postgres":
		return newPostgres(ctx, dsn)
	case "sqlite":
		return newSQLite(dsn)
	default:
		return nil, fmt.Errorf("sink: unknown driver %q", driver)
	}
}
