package database

import (
	"context"
	"testing"
	"time"

	"homework_status_bot/internal/domain/history"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryHistoryRepository_CursorRoundTrip(t *testing.T) {
	repo := NewMemoryHistoryRepository()
	ctx := context.Background()

	_, err := repo.LastCursor(ctx)
	assert.ErrorIs(t, err, ErrCursorNotFound)

	require.NoError(t, repo.SaveCursor(ctx, 1700000000))
	cursor, err := repo.LastCursor(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1700000000), cursor)

	require.NoError(t, repo.SaveCursor(ctx, 1700000600))
	cursor, err = repo.LastCursor(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1700000600), cursor)
}

func TestMemoryHistoryRepository_ListSinceFilters(t *testing.T) {
	repo := NewMemoryHistoryRepository()
	ctx := context.Background()
	now := time.Now()

	old := &history.Record{HomeworkName: "hw0", Status: "rejected", Message: "old", SentAt: now.Add(-48 * time.Hour)}
	recent := &history.Record{HomeworkName: "hw1", Status: "approved", Message: "recent", SentAt: now.Add(-time.Hour)}
	require.NoError(t, repo.SaveRecord(ctx, old))
	require.NoError(t, repo.SaveRecord(ctx, recent))
	assert.NotZero(t, old.ID)
	assert.NotEqual(t, old.ID, recent.ID)

	records, err := repo.ListSince(ctx, now.Add(-24*time.Hour))
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "hw1", records[0].HomeworkName)
}
