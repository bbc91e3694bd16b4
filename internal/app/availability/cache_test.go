package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stieregg/internal/domain/daterange"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time          { return c.now }
func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func someRanges(t *testing.T) []daterange.BookedRange {
	t.Helper()
	start, err := daterange.ParseDate("2025-08-01")
	require.NoError(t, err)
	end, err := daterange.ParseDate("2025-08-05")
	require.NoError(t, err)
	return []daterange.BookedRange{{Start: start, End: end}}
}

func TestKeyCanonicalizesURLSets(t *testing.T) {
	a := Key([]string{"https://x/cal.ics", "https://y/cal.ics"})
	b := Key([]string{"https://y/cal.ics", "https://x/cal.ics"})
	assert.Equal(t, a, b)

	c := Key([]string{"https://z/cal.ics"})
	assert.NotEqual(t, a, c)
}

func TestCacheHitWithinTTL(t *testing.T) {
	clock := &fakeClock{now: time.Date(2025, 8, 1, 12, 0, 0, 0, time.UTC)}
	cache := NewCache(30*time.Minute, clock.Now)
	urls := []string{"https://x/cal.ics"}

	_, ok := cache.Get(urls)
	assert.False(t, ok)

	cache.Put(urls, someRanges(t))
	clock.Advance(29 * time.Minute)

	got, ok := cache.Get(urls)
	require.True(t, ok)
	assert.Equal(t, someRanges(t), got)
}

func TestCacheExpiresAfterTTL(t *testing.T) {
	clock := &fakeClock{now: time.Date(2025, 8, 1, 12, 0, 0, 0, time.UTC)}
	cache := NewCache(30*time.Minute, clock.Now)
	urls := []string{"https://x/cal.ics"}

	cache.Put(urls, someRanges(t))
	clock.Advance(31 * time.Minute)

	_, ok := cache.Get(urls)
	assert.False(t, ok)
}

func TestCacheGetHonorsURLOrderInsensitivity(t *testing.T) {
	clock := &fakeClock{now: time.Date(2025, 8, 1, 12, 0, 0, 0, time.UTC)}
	cache := NewCache(30*time.Minute, clock.Now)

	cache.Put([]string{"https://x/cal.ics", "https://y/cal.ics"}, someRanges(t))
	got, ok := cache.Get([]string{"https://y/cal.ics", "https://x/cal.ics"})
	require.True(t, ok)
	assert.Equal(t, someRanges(t), got)
}

func TestCachePutReplacesWholesale(t *testing.T) {
	clock := &fakeClock{now: time.Date(2025, 8, 1, 12, 0, 0, 0, time.UTC)}
	cache := NewCache(30*time.Minute, clock.Now)
	urls := []string{"https://x/cal.ics"}

	cache.Put(urls, someRanges(t))
	cache.Put(urls, []daterange.BookedRange{})

	got, ok := cache.Get(urls)
	require.True(t, ok)
	assert.Empty(t, got)
}
