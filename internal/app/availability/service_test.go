package availability

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stieregg/internal/domain/catalog"
	"stieregg/internal/domain/daterange"
)

type stubIngester struct {
	mu     sync.Mutex
	calls  map[string]int
	ranges map[string][]daterange.BookedRange
}

func newStubIngester() *stubIngester {
	return &stubIngester{
		calls:  make(map[string]int),
		ranges: make(map[string][]daterange.BookedRange),
	}
}

func (s *stubIngester) BookedRanges(ctx context.Context, urls []string) []daterange.BookedRange {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := Key(urls)
	s.calls[key]++
	if r, ok := s.ranges[key]; ok {
		return r
	}
	return []daterange.BookedRange{}
}

func (s *stubIngester) callsFor(urls []string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[Key(urls)]
}

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	cat, err := catalog.New(catalog.SiteConfig{
		DefaultSeason: "low",
		Apartments: []catalog.Apartment{
			{ID: "a1", Slug: "bergblick", CalendarURLs: []string{"https://x/a.ics", "https://x/b.ics"}},
			{ID: "a2", Slug: "gartenstudio", CalendarURLs: []string{"https://x/c.ics"}},
			{ID: "a3", Slug: "no-feeds"},
		},
	})
	require.NoError(t, err)
	return cat
}

func testService(t *testing.T, ing Ingester, clock func() time.Time) *Service {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewService(testCatalog(t), ing, NewCache(30*time.Minute, clock), logger)
}

func TestBookedRangesUnknownSlug(t *testing.T) {
	svc := testService(t, newStubIngester(), nil)
	_, err := svc.BookedRanges(context.Background(), "penthouse")
	assert.ErrorIs(t, err, catalog.ErrApartmentNotFound)
}

func TestBookedRangesUsesCacheWithinTTL(t *testing.T) {
	clock := &fakeClock{now: time.Date(2025, 8, 1, 12, 0, 0, 0, time.UTC)}
	ing := newStubIngester()
	ing.ranges[Key([]string{"https://x/a.ics", "https://x/b.ics"})] = someRanges(t)
	svc := testService(t, ing, clock.Now)

	first, err := svc.BookedRanges(context.Background(), "bergblick")
	require.NoError(t, err)
	second, err := svc.BookedRanges(context.Background(), "bergblick")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, ing.callsFor([]string{"https://x/a.ics", "https://x/b.ics"}))
}

func TestBookedRangesRefreshesAfterTTL(t *testing.T) {
	clock := &fakeClock{now: time.Date(2025, 8, 1, 12, 0, 0, 0, time.UTC)}
	ing := newStubIngester()
	svc := testService(t, ing, clock.Now)

	_, err := svc.BookedRanges(context.Background(), "bergblick")
	require.NoError(t, err)
	clock.Advance(31 * time.Minute)
	_, err = svc.BookedRanges(context.Background(), "bergblick")
	require.NoError(t, err)

	assert.Equal(t, 2, ing.callsFor([]string{"https://x/a.ics", "https://x/b.ics"}))
}

func TestBookedRangesNoFeedsConfigured(t *testing.T) {
	ing := newStubIngester()
	svc := testService(t, ing, nil)

	got, err := svc.BookedRanges(context.Background(), "no-feeds")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Empty(t, got)
	assert.Empty(t, ing.calls)
}

func TestForApartmentsCoversEveryRequestedSlug(t *testing.T) {
	ing := newStubIngester()
	ing.ranges[Key([]string{"https://x/c.ics"})] = someRanges(t)
	svc := testService(t, ing, nil)

	cat := testCatalog(t)
	got := svc.ForApartments(context.Background(), cat.Apartments())

	require.Len(t, got, 3)
	assert.Equal(t, someRanges(t), got["gartenstudio"])
	assert.Empty(t, got["bergblick"])
	assert.Empty(t, got["no-feeds"])
	for slug, ranges := range got {
		assert.NotNil(t, ranges, slug)
	}
}

func TestPrewarmFillsCache(t *testing.T) {
	clock := &fakeClock{now: time.Date(2025, 8, 1, 12, 0, 0, 0, time.UTC)}
	ing := newStubIngester()
	svc := testService(t, ing, clock.Now)

	svc.Prewarm(context.Background())

	// Interactive queries right after prewarm hit the cache.
	_, err := svc.BookedRanges(context.Background(), "bergblick")
	require.NoError(t, err)
	assert.Equal(t, 1, ing.callsFor([]string{"https://x/a.ics", "https://x/b.ics"}))
	assert.Equal(t, 1, ing.callsFor([]string{"https://x/c.ics"}))
}
