package app

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"homework_status_bot/internal/domain/homework"
	idb "homework_status_bot/internal/infra/database"
	"homework_status_bot/internal/infra/practicum"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAPI struct {
	resp    *homework.StatusesResponse
	err     error
	gotFrom []int64
}

func (f *fakeAPI) HomeworkStatuses(_ context.Context, fromDate int64) (*homework.StatusesResponse, error) {
	f.gotFrom = append(f.gotFrom, fromDate)
	if f.err != nil {
		return nil, f.err
	}
	return f.resp, nil
}

type fakeSender struct {
	sent []string
	err  error
}

func (f *fakeSender) Send(text string) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, text)
	return nil
}

func testLogger() *logrus.Entry {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return logrus.NewEntry(log)
}

func newTestPoller(api HomeworkAPI, sender MessageSender, repo *idb.MemoryHistoryRepository) *Poller {
	return NewPoller(api, sender, repo, testLogger(), 600*time.Second)
}

func approvedResponse() *homework.StatusesResponse {
	return &homework.StatusesResponse{
		Homeworks: []json.RawMessage{
			json.RawMessage(`{"homework_name":"hw1","status":"approved"}`),
		},
		CurrentDate: 1700000000,
	}
}

func TestRunOnce_SuccessSendsVerdictAndAdvancesCursor(t *testing.T) {
	api := &fakeAPI{resp: approvedResponse()}
	sender := &fakeSender{}
	repo := idb.NewMemoryHistoryRepository()
	p := newTestPoller(api, sender, repo)

	p.RunOnce(context.Background())

	require.Len(t, sender.sent, 1)
	assert.Equal(t, `Changed review status for "hw1". Работа проверена: ревьюеру всё понравилось. Ура!`, sender.sent[0])
	assert.Equal(t, int64(1700000000), p.cursor)

	cursor, err := repo.LastCursor(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1700000000), cursor)

	records, err := repo.ListSince(context.Background(), time.Time{})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "hw1", records[0].HomeworkName)
	assert.Equal(t, "approved", records[0].Status)
}

func TestRunOnce_EmptyListSendsUnchangedAndKeepsCursor(t *testing.T) {
	api := &fakeAPI{resp: &homework.StatusesResponse{Homeworks: []json.RawMessage{}, CurrentDate: 1700000000}}
	sender := &fakeSender{}
	p := newTestPoller(api, sender, idb.NewMemoryHistoryRepository())
	before := p.cursor

	p.RunOnce(context.Background())

	require.Len(t, sender.sent, 1)
	assert.Equal(t, "Статус работы не изменился", sender.sent[0])
	assert.Equal(t, before, p.cursor)
}

func TestRunOnce_UnknownStatusReportsFailure(t *testing.T) {
	api := &fakeAPI{resp: &homework.StatusesResponse{
		Homeworks:   []json.RawMessage{json.RawMessage(`{"homework_name":"hw1","status":"lost"}`)},
		CurrentDate: 1700000000,
	}}
	sender := &fakeSender{}
	p := newTestPoller(api, sender, idb.NewMemoryHistoryRepository())
	before := p.cursor

	p.RunOnce(context.Background())

	require.Len(t, sender.sent, 1)
	assert.Contains(t, sender.sent[0], "Program failure:")
	assert.Contains(t, sender.sent[0], `"lost"`)
	assert.Equal(t, before, p.cursor, "cursor must not advance on failure")
}

func TestRunOnce_RejectionCodeReportsServiceError(t *testing.T) {
	api := &fakeAPI{resp: &homework.StatusesResponse{Code: "from_date_error"}}
	sender := &fakeSender{}
	p := newTestPoller(api, sender, idb.NewMemoryHistoryRepository())

	p.RunOnce(context.Background())

	require.Len(t, sender.sent, 1)
	assert.Contains(t, sender.sent[0], "Program failure:")
	assert.Contains(t, sender.sent[0], "from_date_error")
}

func TestRunOnce_EndpointErrorReportsFailure(t *testing.T) {
	api := &fakeAPI{err: &practicum.EndpointError{StatusCode: 503, URL: "http://api", FromDate: 42}}
	sender := &fakeSender{}
	p := newTestPoller(api, sender, idb.NewMemoryHistoryRepository())
	before := p.cursor

	p.RunOnce(context.Background())

	require.Len(t, sender.sent, 1)
	assert.Contains(t, sender.sent[0], "Program failure:")
	assert.Contains(t, sender.sent[0], "503")
	assert.Equal(t, before, p.cursor)
}

func TestRunOnce_SenderFailureDoesNotAdvanceCursorOrPanic(t *testing.T) {
	api := &fakeAPI{resp: approvedResponse()}
	sender := &fakeSender{err: fmt.Errorf("telegram is down")}
	p := newTestPoller(api, sender, idb.NewMemoryHistoryRepository())
	before := p.cursor

	assert.NotPanics(t, func() { p.RunOnce(context.Background()) })
	assert.Empty(t, sender.sent)
	assert.Equal(t, before, p.cursor)
}

func TestRestoreCursor_ResumesPersistedValue(t *testing.T) {
	repo := idb.NewMemoryHistoryRepository()
	require.NoError(t, repo.SaveCursor(context.Background(), 1690000000))
	p := newTestPoller(&fakeAPI{resp: approvedResponse()}, &fakeSender{}, repo)

	p.restoreCursor(context.Background())

	assert.Equal(t, int64(1690000000), p.cursor)
}

func TestRunOnce_UsesCursorAsFromDate(t *testing.T) {
	api := &fakeAPI{resp: approvedResponse()}
	sender := &fakeSender{}
	p := newTestPoller(api, sender, idb.NewMemoryHistoryRepository())
	initial := p.cursor

	p.RunOnce(context.Background())
	p.RunOnce(context.Background())

	require.Len(t, api.gotFrom, 2)
	assert.Equal(t, initial, api.gotFrom[0])
	assert.Equal(t, int64(1700000000), api.gotFrom[1], "second fetch uses the advanced cursor")
}
