package ical

import (
	"bytes"
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/teambition/rrule-go"

	"stieregg/internal/domain/daterange"
)

// expandWindow bounds RRULE expansion so a feed with an unbounded recurrence
// cannot blow up ingestion. It matches the calendar's navigable horizon.
type expandWindow struct {
	From  time.Time
	Until time.Time
}

const maxOccurrencesPerEvent = 1000

// parseFeed turns one iCal payload into raw booked ranges. Events missing a
// start or end instant are skipped; all instants are reduced to calendar
// dates before becoming range endpoints, so a platform exporting UTC
// timestamps cannot shift a booking by a day. Recurring events are expanded
// into one range per occurrence within the window.
func parseFeed(body []byte, window expandWindow) ([]daterange.BookedRange, error) {
	cal, err := ics.ParseCalendar(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("ical: parse calendar: %w", err)
	}

	ranges := make([]daterange.BookedRange, 0, len(cal.Events()))
	for _, ev := range cal.Events() {
		start, err := eventStart(ev)
		if err != nil {
			continue
		}
		end, err := eventEnd(ev)
		if err != nil {
			continue
		}

		r, err := daterange.NewBookedRange(start, end)
		if err != nil {
			continue
		}

		if prop := ev.GetProperty(ics.ComponentPropertyRrule); prop != nil && prop.Value != "" {
			ranges = append(ranges, expandRecurring(r, start, prop.Value, window)...)
			continue
		}
		ranges = append(ranges, r)
	}
	return ranges, nil
}

// eventStart resolves DTSTART for both timed and all-day (VALUE=DATE)
// events. Booking platforms export either form.
func eventStart(ev *ics.VEvent) (time.Time, error) {
	if t, err := ev.GetStartAt(); err == nil {
		return t, nil
	}
	return ev.GetAllDayStartAt()
}

func eventEnd(ev *ics.VEvent) (time.Time, error) {
	if t, err := ev.GetEndAt(); err == nil {
		return t, nil
	}
	return ev.GetAllDayEndAt()
}

// expandRecurring emits one booked range per occurrence of a recurring
// block. An unparseable RRULE degrades to the base occurrence alone.
func expandRecurring(base daterange.BookedRange, dtstart time.Time, rawRule string, window expandWindow) []daterange.BookedRange {
	rule, err := rrule.StrToRRule(rawRule)
	if err != nil {
		return []daterange.BookedRange{base}
	}
	rule.DTStart(dtstart)

	occurrences := rule.Between(window.From, window.Until, true)
	if len(occurrences) > maxOccurrencesPerEvent {
		occurrences = occurrences[:maxOccurrencesPerEvent]
	}

	spanDays := base.Days() - 1
	out := make([]daterange.BookedRange, 0, len(occurrences)+1)
	out = append(out, base)
	for _, occ := range occurrences {
		start := daterange.Normalize(occ)
		out = append(out, daterange.BookedRange{Start: start, End: start.AddDate(0, 0, spanDays)})
	}
	return out
}
