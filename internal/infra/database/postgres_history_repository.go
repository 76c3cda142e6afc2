package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"homework_status_bot/internal/domain/history"

	_ "github.com/lib/pq" // PostgreSQL driver
)

// ErrCursorNotFound is returned when no poll cursor has been persisted yet.
var ErrCursorNotFound = fmt.Errorf("poll cursor not found")

// PostgresHistoryRepository persists notification history and the poll
// cursor.
//
// Expected schema:
//
//	CREATE TABLE status_notifications (
//	    id            BIGSERIAL PRIMARY KEY,
//	    homework_name TEXT        NOT NULL,
//	    status        VARCHAR(32) NOT NULL,
//	    message       TEXT        NOT NULL,
//	    sent_at       TIMESTAMPTZ NOT NULL DEFAULT NOW()
//	);
//	CREATE TABLE poll_state (
//	    id         SMALLINT PRIMARY KEY CHECK (id = 1),
//	    from_date  BIGINT      NOT NULL,
//	    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
//	);
type PostgresHistoryRepository struct {
	db *sql.DB
}

func NewPostgresHistoryRepository(db *sql.DB) *PostgresHistoryRepository {
	return &PostgresHistoryRepository{db: db}
}

func (r *PostgresHistoryRepository) SaveRecord(ctx context.Context, rec *history.Record) error {
	query := `INSERT INTO status_notifications (homework_name, status, message)
              VALUES ($1, $2, $3)
              RETURNING id, sent_at`
	err := r.db.QueryRowContext(ctx, query, rec.HomeworkName, rec.Status, rec.Message).Scan(&rec.ID, &rec.SentAt)
	if err != nil {
		return fmt.Errorf("error saving status notification: %w", err)
	}
	return nil
}

func (r *PostgresHistoryRepository) ListSince(ctx context.Context, since time.Time) ([]*history.Record, error) {
	query := `SELECT id, homework_name, status, message, sent_at
              FROM status_notifications
              WHERE sent_at >= $1 ORDER BY sent_at`
	rows, err := r.db.QueryContext(ctx, query, since)
	if err != nil {
		return nil, fmt.Errorf("error listing status notifications: %w", err)
	}
	defer rows.Close()

	records := make([]*history.Record, 0)
	for rows.Next() {
		rec := &history.Record{}
		if err := rows.Scan(&rec.ID, &rec.HomeworkName, &rec.Status, &rec.Message, &rec.SentAt); err != nil {
			return nil, fmt.Errorf("error scanning status notification: %w", err)
		}
		records = append(records, rec)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating status notifications: %w", err)
	}
	return records, nil
}

func (r *PostgresHistoryRepository) LastCursor(ctx context.Context) (int64, error) {
	query := `SELECT from_date FROM poll_state WHERE id = 1`
	var fromDate int64
	err := r.db.QueryRowContext(ctx, query).Scan(&fromDate)
	if err != nil {
		if err == sql.ErrNoRows {
			return 0, ErrCursorNotFound
		}
		return 0, fmt.Errorf("error getting poll cursor: %w", err)
	}
	return fromDate, nil
}

func (r *PostgresHistoryRepository) SaveCursor(ctx context.Context, fromDate int64) error {
	query := `INSERT INTO poll_state (id, from_date, updated_at)
              VALUES (1, $1, NOW())
              ON CONFLICT (id) DO UPDATE SET from_date = EXCLUDED.from_date, updated_at = NOW()`
	if _, err := r.db.ExecContext(ctx, query, fromDate); err != nil {
		return fmt.Errorf("error saving poll cursor: %w", err)
	}
	return nil
}
