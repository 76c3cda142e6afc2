// Package practicum implements the client for the homework statuses API.
package practicum

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"homework_status_bot/internal/domain/homework"

	"github.com/sirupsen/logrus"
)

// NetworkError is a transport-level failure: DNS, timeout, connection
// refused. URL and FromDate identify the failed request.
type NetworkError struct {
	Err      error
	URL      string
	FromDate int64
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network failure: %v (url=%s, from_date=%d)", e.Err, e.URL, e.FromDate)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// EndpointError is a non-200 answer from the endpoint.
type EndpointError struct {
	StatusCode int
	URL        string
	FromDate   int64
}

func (e *EndpointError) Error() string {
	return fmt.Sprintf("endpoint returned status %d (url=%s, from_date=%d)", e.StatusCode, e.URL, e.FromDate)
}

// Client issues requests to the single fixed homework statuses endpoint.
// It performs no retries: retries happen at the loop level via the fixed
// poll interval.
type Client struct {
	httpClient *http.Client
	endpoint   string
	token      string
	logger     *logrus.Entry
}

func NewClient(endpoint, token string, logger *logrus.Entry) *Client {
	return &Client{
		// No timeout beyond the http.Client default.
		httpClient: &http.Client{},
		endpoint:   endpoint,
		token:      token,
		logger:     logger,
	}
}

// HomeworkStatuses fetches homework status events that happened after
// fromDate (a Unix timestamp).
func (c *Client) HomeworkStatuses(ctx context.Context, fromDate int64) (*homework.StatusesResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "OAuth "+c.token)
	req.Header.Set("Accept", "application/json")

	params := url.Values{}
	params.Set("from_date", strconv.FormatInt(fromDate, 10))
	req.URL.RawQuery = params.Encode()

	c.logger.WithField("from_date", fromDate).Debug("Requesting homework statuses")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &NetworkError{Err: err, URL: c.endpoint, FromDate: fromDate}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &EndpointError{StatusCode: resp.StatusCode, URL: c.endpoint, FromDate: fromDate}
	}

	statuses := &homework.StatusesResponse{}
	if err := json.Unmarshal(body, statuses); err != nil {
		return nil, fmt.Errorf("unmarshal homework statuses response: %w", err)
	}
	return statuses, nil
}
