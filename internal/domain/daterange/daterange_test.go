package daterange

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := ParseDate(s)
	require.NoError(t, err)
	return d
}

func rng(t *testing.T, start, end string) BookedRange {
	t.Helper()
	return BookedRange{Start: mustDate(t, start), End: mustDate(t, end)}
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2025-08-01")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC), d)

	_, err = ParseDate("01.08.2025")
	assert.ErrorIs(t, err, ErrInvalidDate)

	_, err = ParseDate("")
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestNormalizeDropsTimeOfDay(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Zurich")
	require.NoError(t, err)
	at := time.Date(2025, 8, 1, 23, 45, 0, 0, loc)
	assert.Equal(t, time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC), Normalize(at))
}

func TestDaysBetween(t *testing.T) {
	assert.Equal(t, 4, DaysBetween(mustDate(t, "2025-08-01"), mustDate(t, "2025-08-05")))
	assert.Equal(t, -4, DaysBetween(mustDate(t, "2025-08-05"), mustDate(t, "2025-08-01")))
	assert.Equal(t, 0, DaysBetween(mustDate(t, "2025-08-01"), mustDate(t, "2025-08-01")))
}

func TestBookedRangeValidate(t *testing.T) {
	assert.NoError(t, rng(t, "2025-08-01", "2025-08-01").Validate())
	assert.ErrorIs(t, rng(t, "2025-08-05", "2025-08-01").Validate(), ErrInvalidRange)
	assert.Error(t, BookedRange{}.Validate())
}

func TestMergeCollapsesAdjacentRangesAcrossFeeds(t *testing.T) {
	// Two feeds reporting back-to-back bookings: one ends the day before
	// the other starts, so the merged calendar shows one block.
	merged := Merge([]BookedRange{
		rng(t, "2025-06-10", "2025-06-12"),
		rng(t, "2025-06-13", "2025-06-15"),
	})
	require.Len(t, merged, 1)
	assert.Equal(t, rng(t, "2025-06-10", "2025-06-15"), merged[0])
}

func TestMergeIsOrderInsensitiveAndIdempotent(t *testing.T) {
	input := []BookedRange{
		rng(t, "2025-08-20", "2025-08-25"),
		rng(t, "2025-06-13", "2025-06-15"),
		rng(t, "2025-06-10", "2025-06-12"),
		rng(t, "2025-06-11", "2025-06-14"), // duplicate booking on another feed
	}
	reversed := []BookedRange{input[3], input[2], input[1], input[0]}

	first := Merge(input)
	second := Merge(reversed)
	assert.Equal(t, first, second)

	again := Merge(first)
	assert.Equal(t, first, again)
}

func TestMergeNormalizationInvariant(t *testing.T) {
	merged := Merge([]BookedRange{
		rng(t, "2025-07-01", "2025-07-03"),
		rng(t, "2025-07-05", "2025-07-07"),
		rng(t, "2025-07-10", "2025-07-10"),
		rng(t, "2025-07-02", "2025-07-06"),
	})

	for i := range merged {
		assert.NoError(t, merged[i].Validate())
		if i == 0 {
			continue
		}
		gap := DaysBetween(merged[i-1].End, merged[i].Start)
		assert.Greater(t, gap, 1, "ranges must be sorted with at least one free day between them")
	}
}

func TestMergeSkipsInvalidAndReturnsEmptyNotNil(t *testing.T) {
	merged := Merge(nil)
	require.NotNil(t, merged)
	assert.Empty(t, merged)

	merged = Merge([]BookedRange{
		{Start: mustDate(t, "2025-08-05"), End: mustDate(t, "2025-08-01")},
		{},
	})
	require.NotNil(t, merged)
	assert.Empty(t, merged)
}
