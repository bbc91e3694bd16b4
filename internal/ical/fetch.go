// Package ical ingests the external booking-platform calendar feeds and
// merges them into normalized booked-date ranges. The feeds are the only
// source of truth for bookings; this package treats them as unreliable and
// degrades per feed rather than failing a whole apartment.
package ical

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"stieregg/internal/domain/daterange"
)

const (
	defaultFetchTimeout = 15 * time.Second
	// horizonMonths matches the calendar UI's navigable window.
	horizonMonths = 24
	maxFeedBytes  = 4 << 20
)

// Doer abstracts the HTTP client so tests can serve canned feeds.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Engine fetches and merges iCal feeds.
type Engine struct {
	client Doer
	logger *slog.Logger
	now    func() time.Time
}

// Option configures an Engine.
type Option func(*Engine)

// WithClient replaces the HTTP client.
func WithClient(c Doer) Option {
	return func(e *Engine) { e.client = c }
}

// WithClock replaces the time source used for the expansion horizon.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

func NewEngine(logger *slog.Logger, opts ...Option) *Engine {
	e := &Engine{
		client: &http.Client{Timeout: defaultFetchTimeout},
		logger: logger,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// BookedRanges fetches every feed concurrently, parses each into raw ranges
// and merges them into the minimal normalized set. A feed that fails to
// fetch or parse contributes nothing and is logged; the healthy feeds still
// produce a result. The return value is never nil: no bookings and no data
// are deliberately the same observable state.
func (e *Engine) BookedRanges(ctx context.Context, urls []string) []daterange.BookedRange {
	if len(urls) == 0 {
		return []daterange.BookedRange{}
	}

	window := e.window()
	perFeed := make([][]daterange.BookedRange, len(urls))
	var wg sync.WaitGroup
	for i, url := range urls {
		wg.Add(1)
		go func(i int, url string) {
			defer wg.Done()
			ranges, err := e.fetchFeed(ctx, url, window)
			if err != nil {
				e.logger.Warn("calendar feed skipped", "url", url, "error", err)
				return
			}
			perFeed[i] = ranges
		}(i, url)
	}
	wg.Wait()

	var raw []daterange.BookedRange
	for _, ranges := range perFeed {
		raw = append(raw, ranges...)
	}
	return daterange.Merge(raw)
}

func (e *Engine) fetchFeed(ctx context.Context, url string, window expandWindow) ([]daterange.BookedRange, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("ical: build request: %w", err)
	}

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ical: fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("ical: fetch: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxFeedBytes))
	if err != nil {
		return nil, fmt.Errorf("ical: read body: %w", err)
	}

	return parseFeed(body, window)
}

func (e *Engine) window() expandWindow {
	today := daterange.Normalize(e.now())
	return expandWindow{
		From:  today.AddDate(0, -1, 0),
		Until: today.AddDate(0, horizonMonths, 0),
	}
}
