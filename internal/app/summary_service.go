package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"homework_status_bot/internal/domain/history"

	"github.com/sirupsen/logrus"
)

// summaryWindow is how far back the daily digest looks.
const summaryWindow = 24 * time.Hour

// SummaryService builds and sends the daily digest of status changes
// recorded in the notification history.
type SummaryService struct {
	history history.Repository
	sender  MessageSender
	logger  *logrus.Entry
}

func NewSummaryService(historyRepo history.Repository, sender MessageSender, logger *logrus.Entry) *SummaryService {
	return &SummaryService{
		history: historyRepo,
		sender:  sender,
		logger:  logger,
	}
}

// SendDailySummary sends a digest of the last 24 hours of status changes.
// When nothing changed, no message is sent.
func (s *SummaryService) SendDailySummary(ctx context.Context) error {
	records, err := s.history.ListSince(ctx, time.Now().Add(-summaryWindow))
	if err != nil {
		return fmt.Errorf("failed to list recent notifications: %w", err)
	}
	if len(records) == 0 {
		s.logger.Info("No status changes in the last 24 hours, skipping summary")
		return nil
	}

	if err := s.sender.Send(buildSummary(records)); err != nil {
		return fmt.Errorf("failed to send daily summary: %w", err)
	}
	s.logger.WithField("changes", len(records)).Info("Daily summary sent")
	return nil
}

func buildSummary(records []*history.Record) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Сводка за сутки: изменений статуса — %d.\n", len(records)))
	for _, rec := range records {
		b.WriteString(fmt.Sprintf("— %s: %s\n", rec.HomeworkName, rec.Status))
	}
	return strings.TrimRight(b.String(), "\n")
}
