package app

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"homework_status_bot/internal/domain/history"
	"homework_status_bot/internal/domain/homework"
	idb "homework_status_bot/internal/infra/database" // For ErrCursorNotFound

	"github.com/sirupsen/logrus"
)

const statusUnchangedMessage = "Статус работы не изменился"

// HomeworkAPI fetches homework status events that happened after fromDate.
type HomeworkAPI interface {
	HomeworkStatuses(ctx context.Context, fromDate int64) (*homework.StatusesResponse, error)
}

// Poller runs the polling loop: fetch, interpret, notify, sleep. A single
// bad iteration never terminates the loop; only startup failures are fatal,
// and those are handled before Run is called.
type Poller struct {
	api      HomeworkAPI
	sender   MessageSender
	history  history.Repository
	logger   *logrus.Entry
	interval time.Duration

	mu     sync.Mutex // guards cursor between the loop and /status triggers
	cursor int64
}

func NewPoller(
	api HomeworkAPI,
	sender MessageSender,
	historyRepo history.Repository,
	logger *logrus.Entry,
	interval time.Duration,
) *Poller {
	return &Poller{
		api:      api,
		sender:   sender,
		history:  historyRepo,
		logger:   logger,
		interval: interval,
		cursor:   time.Now().Unix(),
	}
}

// Run polls until ctx is cancelled, sleeping a constant interval after
// every iteration regardless of outcome.
func (p *Poller) Run(ctx context.Context) {
	p.restoreCursor(ctx)
	p.logger.Infof("Polling started, interval %s", p.interval)

	for {
		p.RunOnce(ctx)
		select {
		case <-ctx.Done():
			p.logger.Info("Polling stopped")
			return
		case <-time.After(p.interval):
		}
	}
}

// RunOnce executes one polling iteration. All failures are handled here:
// converted to a human-readable message, reported best-effort, logged.
func (p *Poller) RunOnce(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()

	resp, err := p.api.HomeworkStatuses(ctx, p.cursor)
	if err != nil {
		p.reportFailure(err)
		return
	}

	raw, err := homework.CheckResponse(resp)
	if err != nil {
		if errors.Is(err, homework.ErrNoNewHomeworks) {
			p.logger.WithField("from_date", p.cursor).Info("No new homeworks, review status unchanged")
			if sendErr := p.sender.Send(statusUnchangedMessage); sendErr != nil {
				p.logger.WithError(sendErr).Error("Failed to send the status unchanged message")
			}
			return
		}
		p.reportFailure(err)
		return
	}

	hw, err := homework.DecodeHomework(raw)
	if err != nil {
		p.reportFailure(err)
		return
	}

	message, err := homework.ParseStatus(hw)
	if err != nil {
		p.reportFailure(err)
		return
	}

	if err := p.sender.Send(message); err != nil {
		// Cursor stays put so the change is fetched again next cycle.
		p.logger.WithError(err).Error("Failed to deliver the status change notification")
		return
	}

	p.recordNotification(ctx, hw, message)

	if resp.CurrentDate > 0 {
		p.cursor = resp.CurrentDate
		if err := p.history.SaveCursor(ctx, p.cursor); err != nil {
			p.logger.WithError(err).Warn("Failed to persist the poll cursor")
		}
	}
}

// restoreCursor resumes from a persisted cursor when one exists; otherwise
// the cursor stays at the process start time.
func (p *Poller) restoreCursor(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()

	saved, err := p.history.LastCursor(ctx)
	switch {
	case err == nil && saved > 0:
		p.cursor = saved
		p.logger.WithField("from_date", saved).Info("Resuming from persisted poll cursor")
	case err != nil && !errors.Is(err, idb.ErrCursorNotFound):
		p.logger.WithError(err).Warn("Could not read the persisted poll cursor, starting from now")
	}
}

func (p *Poller) reportFailure(err error) {
	p.logger.WithError(err).Error("Polling iteration failed")
	message := fmt.Sprintf("Program failure: %v", err)
	if sendErr := p.sender.Send(message); sendErr != nil {
		p.logger.WithError(sendErr).Error("Failed to deliver the failure notification")
	}
}

func (p *Poller) recordNotification(ctx context.Context, hw *homework.Homework, message string) {
	rec := &history.Record{
		HomeworkName: hw.Name,
		Status:       string(hw.Status),
		Message:      message,
	}
	if err := p.history.SaveRecord(ctx, rec); err != nil {
		p.logger.WithError(err).Warn("Failed to record the delivered notification")
	}
}
