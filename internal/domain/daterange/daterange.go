package daterange

import (
	"errors"
	"sort"
	"time"
)

var (
	ErrInvalidDate  = errors.New("daterange: invalid date")
	ErrInvalidRange = errors.New("daterange: end must not be before start")
)

// DateLayout is the wire format for calendar dates.
const DateLayout = "2006-01-02"

// Normalize truncates t to a date-only value at midnight UTC. All range
// arithmetic in this package operates on normalized dates.
func Normalize(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a YYYY-MM-DD string into a normalized date.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return Normalize(t), nil
}

// FormatDate renders a date in the YYYY-MM-DD wire format.
func FormatDate(t time.Time) string {
	return Normalize(t).Format(DateLayout)
}

// DaysBetween returns the whole-day difference between two dates after
// normalization. Negative differences are returned as-is.
func DaysBetween(from, to time.Time) int {
	return int(Normalize(to).Sub(Normalize(from)).Hours() / 24)
}

// BookedRange is an inclusive interval of calendar dates during which an
// apartment is unavailable.
type BookedRange struct {
	Start time.Time
	End   time.Time
}

func NewBookedRange(start, end time.Time) (BookedRange, error) {
	r := BookedRange{Start: Normalize(start), End: Normalize(end)}
	if err := r.Validate(); err != nil {
		return BookedRange{}, err
	}
	return r, nil
}

func (r BookedRange) Validate() error {
	if r.Start.IsZero() || r.End.IsZero() {
		return ErrInvalidRange
	}
	if r.End.Before(r.Start) {
		return ErrInvalidRange
	}
	return nil
}

// ContainsDate reports whether the (normalized) date falls inside the range,
// both ends inclusive.
func (r BookedRange) ContainsDate(t time.Time) bool {
	d := Normalize(t)
	return !d.Before(r.Start) && !d.After(r.End)
}

// Days returns the number of calendar dates covered, both ends counted.
func (r BookedRange) Days() int {
	return DaysBetween(r.Start, r.End) + 1
}

// Merge collapses raw per-feed ranges into the minimal normalized form:
// sorted ascending by start, non-overlapping, with adjacent ranges (one
// ending the day before the next begins) joined. The raw ranges are expanded
// into a set of individual dates first, so the result is identical for any
// input ordering and for duplicate bookings across feeds. Ranges failing
// validation are skipped. The result is never nil.
func Merge(ranges []BookedRange) []BookedRange {
	days := make(map[time.Time]struct{})
	for _, r := range ranges {
		r = BookedRange{Start: Normalize(r.Start), End: Normalize(r.End)}
		if r.Validate() != nil {
			continue
		}
		for d := r.Start; !d.After(r.End); d = d.AddDate(0, 0, 1) {
			days[d] = struct{}{}
		}
	}

	merged := make([]BookedRange, 0, len(days))
	if len(days) == 0 {
		return merged
	}

	sorted := make([]time.Time, 0, len(days))
	for d := range days {
		sorted = append(sorted, d)
	}
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Before(sorted[j]) })

	current := BookedRange{Start: sorted[0], End: sorted[0]}
	for _, d := range sorted[1:] {
		if d.Equal(current.End.AddDate(0, 0, 1)) {
			current.End = d
			continue
		}
		merged = append(merged, current)
		current = BookedRange{Start: d, End: d}
	}
	merged = append(merged, current)
	return merged
}
