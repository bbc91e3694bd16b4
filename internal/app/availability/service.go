// Package availability ties the apartment catalog, the feed ingestion
// engine and the TTL cache together into the query service the HTTP API and
// the terminal client consume.
package availability

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"stieregg/internal/domain/catalog"
	"stieregg/internal/domain/daterange"
)

// Ingester supplies merged booked ranges for a calendar URL set. Satisfied
// by *ical.Engine; tests substitute a stub.
type Ingester interface {
	BookedRanges(ctx context.Context, urls []string) []daterange.BookedRange
}

// Service answers availability queries per apartment slug.
type Service struct {
	catalog  *catalog.Catalog
	ingester Ingester
	cache    *Cache
	logger   *slog.Logger
}

func NewService(cat *catalog.Catalog, ing Ingester, cache *Cache, logger *slog.Logger) *Service {
	return &Service{catalog: cat, ingester: ing, cache: cache, logger: logger}
}

// BookedRanges returns the merged booked ranges for one apartment,
// refreshing the cache when the entry is missing or expired. The returned
// slice is never nil. Unknown slugs surface catalog.ErrApartmentNotFound.
func (s *Service) BookedRanges(ctx context.Context, slug string) ([]daterange.BookedRange, error) {
	apt, err := s.catalog.BySlug(slug)
	if err != nil {
		return nil, err
	}
	return s.rangesFor(ctx, apt), nil
}

func (s *Service) rangesFor(ctx context.Context, apt catalog.Apartment) []daterange.BookedRange {
	if len(apt.CalendarURLs) == 0 {
		return []daterange.BookedRange{}
	}
	if ranges, ok := s.cache.Get(apt.CalendarURLs); ok {
		return ranges
	}
	ranges := s.ingester.BookedRanges(ctx, apt.CalendarURLs)
	s.cache.Put(apt.CalendarURLs, ranges)
	return ranges
}

// ForApartments resolves booked ranges for several apartments at once, e.g.
// for a listings page filtering by stay dates. Apartments are fetched in
// parallel and independently: one apartment's feed trouble never blanks the
// others. The result maps slug to ranges for every requested apartment.
func (s *Service) ForApartments(ctx context.Context, apartments []catalog.Apartment) map[string][]daterange.BookedRange {
	out := make(map[string][]daterange.BookedRange, len(apartments))
	var (
		mu sync.Mutex
		wg sync.WaitGroup
	)
	for _, apt := range apartments {
		wg.Add(1)
		go func(apt catalog.Apartment) {
			defer wg.Done()
			ranges := s.rangesFor(ctx, apt)
			mu.Lock()
			out[apt.Slug] = ranges
			mu.Unlock()
		}(apt)
	}
	wg.Wait()
	return out
}

// Prewarm refreshes every apartment's cache entry. Run from the cron
// schedule so interactive requests mostly hit a warm cache.
func (s *Service) Prewarm(ctx context.Context) {
	started := time.Now()
	apartments := s.catalog.Apartments()
	for _, apt := range apartments {
		if len(apt.CalendarURLs) == 0 {
			continue
		}
		ranges := s.ingester.BookedRanges(ctx, apt.CalendarURLs)
		s.cache.Put(apt.CalendarURLs, ranges)
	}
	s.logger.Info("availability cache prewarmed", "apartments", len(apartments), "duration", time.Since(started))
}
