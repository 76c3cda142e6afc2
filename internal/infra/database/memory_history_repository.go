package database

import (
	"context"
	"sync"
	"time"

	"homework_status_bot/internal/domain/history"
)

// MemoryHistoryRepository keeps notification history and the poll cursor in
// memory. Used when DATABASE_URL is not configured, and in tests.
type MemoryHistoryRepository struct {
	mu        sync.Mutex
	records   []*history.Record
	nextID    int64
	cursor    int64
	hasCursor bool
}

func NewMemoryHistoryRepository() *MemoryHistoryRepository {
	return &MemoryHistoryRepository{nextID: 1}
}

func (r *MemoryHistoryRepository) SaveRecord(_ context.Context, rec *history.Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec.ID = r.nextID
	r.nextID++
	if rec.SentAt.IsZero() {
		rec.SentAt = time.Now()
	}
	stored := *rec
	r.records = append(r.records, &stored)
	return nil
}

func (r *MemoryHistoryRepository) ListSince(_ context.Context, since time.Time) ([]*history.Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	records := make([]*history.Record, 0)
	for _, rec := range r.records {
		if !rec.SentAt.Before(since) {
			copied := *rec
			records = append(records, &copied)
		}
	}
	return records, nil
}

func (r *MemoryHistoryRepository) LastCursor(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.hasCursor {
		return 0, ErrCursorNotFound
	}
	return r.cursor, nil
}

func (r *MemoryHistoryRepository) SaveCursor(_ context.Context, fromDate int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.cursor = fromDate
	r.hasCursor = true
	return nil
}
