package app

import (
	"context"
	"testing"
	"time"

	"homework_status_bot/internal/domain/history"
	idb "homework_status_bot/internal/infra/database"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendDailySummary_IncludesRecentChanges(t *testing.T) {
	repo := idb.NewMemoryHistoryRepository()
	ctx := context.Background()
	require.NoError(t, repo.SaveRecord(ctx, &history.Record{
		HomeworkName: "hw1", Status: "approved", Message: "m1", SentAt: time.Now().Add(-time.Hour),
	}))
	require.NoError(t, repo.SaveRecord(ctx, &history.Record{
		HomeworkName: "hw2", Status: "rejected", Message: "m2", SentAt: time.Now().Add(-2 * time.Hour),
	}))
	require.NoError(t, repo.SaveRecord(ctx, &history.Record{
		HomeworkName: "hw-old", Status: "reviewing", Message: "m0", SentAt: time.Now().Add(-30 * time.Hour),
	}))

	sender := &fakeSender{}
	s := NewSummaryService(repo, sender, testLogger())

	require.NoError(t, s.SendDailySummary(ctx))
	require.Len(t, sender.sent, 1)
	assert.Contains(t, sender.sent[0], "2")
	assert.Contains(t, sender.sent[0], "hw1: approved")
	assert.Contains(t, sender.sent[0], "hw2: rejected")
	assert.NotContains(t, sender.sent[0], "hw-old")
}

func TestSendDailySummary_QuietWhenNothingChanged(t *testing.T) {
	sender := &fakeSender{}
	s := NewSummaryService(idb.NewMemoryHistoryRepository(), sender, testLogger())

	require.NoError(t, s.SendDailySummary(context.Background()))
	assert.Empty(t, sender.sent)
}
