package scryfall

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

// DefaultBaseURL is the public Scryfall API endpoint.
const DefaultBaseURL = "https://api.scryfall.com"

var (
	// ErrNotFound means the API returned 404 for the requested resource
	// (typically an unknown set code).
	ErrNotFound = errors.New("scryfall: not found")
	// ErrUnavailable means the request failed at the transport level or
	// the server kept returning 5xx after all retries.
	ErrUnavailable = errors.New("scryfall: unavailable")
	// ErrProtocol means the response body could not be decoded.
	ErrProtocol = errors.New("scryfall: protocol error")
)

// Config controls a Client. Zero values fall back to defaults.
type Config struct {
	BaseURL    string
	Timeout    time.Duration
	MaxRetries int
	// RatePerSec throttles outgoing requests. Scryfall asks clients to
	// keep a 50-100ms gap between requests, so the default is 10/s.
	RatePerSec float64
}

// Client is a typed Scryfall API client. It holds no global state; create
// one per run and pass it to whatever needs the remote catalog.
type Client struct {
	baseURL    string
	http       *http.Client
	limiter    *rate.Limiter
	maxRetries int
}

func New(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}
	if cfg.RatePerSec <= 0 {
		cfg.RatePerSec = 10
	}
	return &Client{
		baseURL:    cfg.BaseURL,
		http:       &http.Client{Timeout: cfg.Timeout},
		limiter:    rate.NewLimiter(rate.Limit(cfg.RatePerSec), 1),
		maxRetries: cfg.MaxRetries,
	}
}

// ListSets fetches all known sets (code + name).
func (c *Client) ListSets(ctx context.Context) ([]SetDescriptor, error) {
	var list setList
	if err := c.getJSON(ctx, c.baseURL+"/sets", &list); err != nil {
		return nil, err
	}
	return list.Data, nil
}

// GetSet fetches the descriptor for one set code, including its card
// search endpoint. Unknown codes surface as ErrNotFound.
func (c *Client) GetSet(ctx context.Context, code string) (SetDescriptor, error) {
	var set SetDescriptor
	if err := c.getJSON(ctx, c.baseURL+"/sets/"+code, &set); err != nil {
		return SetDescriptor{}, err
	}
	return set, nil
}

// StreamCards starts a fresh paginated walk over the cards behind a set's
// search endpoint. The stream is restartable (call StreamCards again) but
// not seekable.
func (c *Client) StreamCards(searchURI string) *CardStream {
	return &CardStream{client: c, next: searchURI, hasMore: true}
}

// CardStream yields cards one at a time, fetching pages on demand by
// following the next_page cursor until has_more is false.
type CardStream struct {
	client  *Client
	next    string
	hasMore bool
	buf     []CardRecord
	pos     int
	err     error
}

// Next returns the next card. ok is false when the stream is exhausted or
// failed; check Err afterwards. A failed stream stays failed.
func (s *CardStream) Next(ctx context.Context) (CardRecord, bool) {
	if s.err != nil {
		return CardRecord{}, false
	}
	for s.pos >= len(s.buf) {
		if !s.hasMore || s.next == "" {
			return CardRecord{}, false
		}
		var page cardPage
		if err := s.client.getJSON(ctx, s.next, &page); err != nil {
			s.err = err
			return CardRecord{}, false
		}
		s.buf = page.Data
		s.pos = 0
		s.hasMore = page.HasMore
		s.next = page.NextPage
	}
	card := s.buf[s.pos]
	s.pos++
	return card, true
}

// Err reports the sticky error that terminated the stream, if any.
func (s *CardStream) Err() error {
	return s.err
}

// getJSON performs a GET with rate limiting and bounded retries on
// transport failures and 5xx responses. 404 is terminal and never retried.
func (c *Client) getJSON(ctx context.Context, url string, out interface{}) error {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(1<<uint(attempt-1)) * 500 * time.Millisecond
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return fmt.Errorf("%w: %v", ErrUnavailable, ctx.Err())
			}
		}
		if err := c.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("%w: %v", ErrUnavailable, err)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
		req.Header.Set("Accept", "application/json")

		resp, err := c.http.Do(req)
		if err != nil {
			lastErr = err
			continue
		}

		switch {
		case resp.StatusCode == http.StatusNotFound:
			resp.Body.Close()
			return fmt.Errorf("%w: GET %s", ErrNotFound, url)
		case resp.StatusCode >= 500:
			resp.Body.Close()
			lastErr = fmt.Errorf("server error: %d", resp.StatusCode)
			continue
		case resp.StatusCode != http.StatusOK:
			resp.Body.Close()
			return fmt.Errorf("%w: GET %s: status %d", ErrUnavailable, url, resp.StatusCode)
		}

		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			lastErr = err
			continue
		}
		if err := json.Unmarshal(body, out); err != nil {
			return fmt.Errorf("%w: GET %s: %v", ErrProtocol, url, err)
		}
		return nil
	}
	return fmt.Errorf("%w: GET %s after %d attempts: %v", ErrUnavailable, url, c.maxRetries+1, lastErr)
}
