package scheduler

import (
	"context"
	"time"

	"homework_status_bot/internal/app"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// SummaryScheduler runs the daily summary job on a cron schedule.
type SummaryScheduler struct {
	cronEngine *cron.Cron
	summaries  *app.SummaryService
	logger     *logrus.Entry
	cronSpec   string
}

func NewSummaryScheduler(
	summaries *app.SummaryService,
	logger *logrus.Entry,
	cronSpec string, // e.g., "0 9 * * *" (9 AM daily)
) *SummaryScheduler {
	return &SummaryScheduler{
		cronEngine: cron.New(cron.WithLocation(time.Local)), // Use server's local time for cron
		summaries:  summaries,
		logger:     logger,
		cronSpec:   cronSpec,
	}
}

func (s *SummaryScheduler) Start() {
	s.logger.Info("Starting summary scheduler...")

	_, err := s.cronEngine.AddFunc(s.cronSpec, func() {
		s.logger.Info("Cron job triggered for the daily summary.")
		ctx, cancel := context.WithTimeout(context.Background(), 1*time.Minute)
		defer cancel()
		if err := s.summaries.SendDailySummary(ctx); err != nil {
			s.logger.WithError(err).Error("Error during daily summary processing")
		}
	})
	if err != nil {
		s.logger.Fatalf("FATAL: Could not add daily summary cron job: %v", err)
	}

	s.cronEngine.Start()
	s.logger.Info("Summary scheduler started.")
}

func (s *SummaryScheduler) Stop() {
	s.logger.Info("Stopping summary scheduler...")
	ctx := s.cronEngine.Stop() // Waits for running jobs.
	<-ctx.Done()
	s.logger.Info("Summary scheduler gracefully stopped.")
}
