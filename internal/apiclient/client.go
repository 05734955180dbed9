// Package apiclient is the HTTP JSON client for the Event API.
// It covers the three operations the contract defines — list, create,
// delete — and nothing else. Transport failures, non-success statuses and
// decoding failures all surface as plain errors; the store collapses them
// into one Failed outcome per operation.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/kwahlin/daybook/internal/domain"
)

// defaultTimeout bounds every remote call. The contract itself imposes no
// timeout, but an unbounded hang would pin a request lifecycle in Requested
// forever, so the client applies one.
const defaultTimeout = 10 * time.Second

// Client talks to one Event API base URL.
type Client struct {
	baseURL string
	http    *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client, e.g. to change the
// timeout or inject a test transport.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// New returns a Client for the given base URL (e.g. "http://localhost:3001").
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: trimTrailingSlash(baseURL),
		http:    &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// List fetches all events via GET /events.
func (c *Client) List(ctx context.Context) ([]domain.Event, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/events", nil)
	if err != nil {
		return nil, fmt.Errorf("apiclient.Client.List: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("apiclient.Client.List: %w", err)
	}
	defer drainAndClose(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("apiclient.Client.List: unexpected status %d", resp.StatusCode)
	}

	var events []domain.Event
	if err := json.NewDecoder(resp.Body).Decode(&events); err != nil {
		return nil, fmt.Errorf("apiclient.Client.List: decode: %w", err)
	}
	return events, nil
}

// Create persists a new event via POST /events and returns the created
// record with its server-assigned id.
func (c *Client) Create(ctx context.Context, draft domain.EventDraft) (domain.Event, error) {
	body, err := json.Marshal(draft)
	if err != nil {
		return domain.Event{}, fmt.Errorf("apiclient.Client.Create: encode: %w", err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/events", bytes.NewReader(body))
	if err != nil {
		return domain.Event{}, fmt.Errorf("apiclient.Client.Create: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return domain.Event{}, fmt.Errorf("apiclient.Client.Create: %w", err)
	}
	defer drainAndClose(resp.Body)

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		return domain.Event{}, fmt.Errorf("apiclient.Client.Create: unexpected status %d", resp.StatusCode)
	}

	var created domain.Event
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return domain.Event{}, fmt.Errorf("apiclient.Client.Create: decode: %w", err)
	}
	return created, nil
}

// Delete removes the event with the given id via DELETE /events/{id}.
// Success is indicated by response status only. A 404 wraps
// domain.ErrNotFound so callers can tell "already gone" from other failures.
func (c *Client) Delete(ctx context.Context, id int64) error {
	req, err := c.newRequest(ctx, http.MethodDelete, "/events/"+strconv.FormatInt(id, 10), nil)
	if err != nil {
		return fmt.Errorf("apiclient.Client.Delete: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("apiclient.Client.Delete: %w", err)
	}
	defer drainAndClose(resp.Body)

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("apiclient.Client.Delete: %w", domain.ErrNotFound)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return fmt.Errorf("apiclient.Client.Delete: unexpected status %d", resp.StatusCode)
	}
	return nil
}

// newRequest builds a request against the base URL with the headers every
// call shares. Each request carries a fresh X-Request-ID so client and server
// log lines can be correlated.
func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	return req, nil
}

// drainAndClose reads the rest of a response body before closing so the
// underlying connection can be reused.
func drainAndClose(body io.ReadCloser) {
	_, _ = io.Copy(io.Discard, body)
	_ = body.Close()
}

func trimTrailingSlash(s string) string {
	for len(s) > 0 && s[len(s)-1] == '/' {
		s = s[:len(s)-1]
	}
	return s
}
