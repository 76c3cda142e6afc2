package history

import (
	"context"
	"time"
)

// Repository persists delivered notifications and the poll cursor, so a
// restarted process can resume from where it left off and the daily summary
// can look back over recent changes.
type Repository interface {
	SaveRecord(ctx context.Context, rec *Record) error
	ListSince(ctx context.Context, since time.Time) ([]*Record, error)

	// LastCursor returns the most recently persisted from_date cursor, or
	// a not-found error when no cursor has been saved yet.
	LastCursor(ctx context.Context) (int64, error)
	SaveCursor(ctx context.Context, fromDate int64) error
}
