package availability

import (
	"sort"
	"strings"
	"sync"
	"time"

	"stieregg/internal/domain/daterange"
)

// DefaultTTL bounds how stale a served availability result may be.
const DefaultTTL = 30 * time.Minute

type cacheEntry struct {
	ranges    []daterange.BookedRange
	fetchedAt time.Time
}

// Cache is a TTL cache of merged booked ranges keyed by an apartment's
// calendar URL set. Entries are replaced wholesale on refresh; there are no
// incremental updates. Near-simultaneous refreshes for the same key are
// last-writer-wins, which is fine for read-only feeds within one TTL window.
//
// Known scaling concern: concurrent misses for the same key each trigger
// their own fetch. With a handful of apartments and a 30 minute TTL the
// duplicate in-flight fetches are harmless, so there is no single-flight
// coordination here.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]cacheEntry
	ttl     time.Duration
	now     func() time.Time
}

// NewCache builds a cache with the given TTL (DefaultTTL if non-positive)
// and clock (time.Now if nil).
func NewCache(ttl time.Duration, now func() time.Time) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if now == nil {
		now = time.Now
	}
	return &Cache{
		entries: make(map[string]cacheEntry),
		ttl:     ttl,
		now:     now,
	}
}

// Key canonicalizes a calendar URL set: sorted and joined, so reordered or
// duplicated URL lists map to the same cache slot.
func Key(urls []string) string {
	sorted := make([]string, len(urls))
	copy(sorted, urls)
	sort.Strings(sorted)
	return strings.Join(sorted, "\n")
}

// Get returns the cached ranges for the URL set, or false when the entry is
// missing or older than the TTL.
func (c *Cache) Get(urls []string) ([]daterange.BookedRange, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	entry, ok := c.entries[Key(urls)]
	if !ok {
		return nil, false
	}
	if c.now().Sub(entry.fetchedAt) > c.ttl {
		return nil, false
	}
	return entry.ranges, true
}

// Put replaces the entry for the URL set.
func (c *Cache) Put(urls []string, ranges []daterange.BookedRange) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[Key(urls)] = cacheEntry{ranges: ranges, fetchedAt: c.now()}
}
