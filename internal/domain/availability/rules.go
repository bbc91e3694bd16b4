package availability

import (
	"time"

	"stieregg/internal/domain/catalog"
	"stieregg/internal/domain/daterange"
	"stieregg/internal/domain/seasons"
)

// IsAvailable reports whether the stay [checkIn, checkOut] is free of
// conflicts with the given booked ranges. The overlap test is inclusive on
// both ends: a checkout on the same day another booking starts is still a
// conflict, matching how the booking platforms block turnover days. An
// invalid stay (checkOut not after checkIn) is never available.
func IsAvailable(ranges []daterange.BookedRange, checkIn, checkOut time.Time) bool {
	in := daterange.Normalize(checkIn)
	out := daterange.Normalize(checkOut)
	if !out.After(in) {
		return false
	}
	for _, r := range ranges {
		if !in.After(r.End) && !out.Before(r.Start) {
			return false
		}
	}
	return true
}

// StayNights returns the whole-night length of a stay, 0 for non-positive
// differences. Both dates are normalized to midnight first so DST arithmetic
// cannot produce fractional days.
func StayNights(checkIn, checkOut time.Time) int {
	nights := daterange.DaysBetween(checkIn, checkOut)
	if nights <= 0 {
		return 0
	}
	return nights
}

// SeasonalMinNights resolves the minimum-stay requirement for a stay
// beginning at checkIn. Every season tag active on that date contributes a
// candidate value (apartment override first, then the global default for the
// tag); when overlapping season configuration makes several tags active at
// once, the smallest candidate wins. A date in no configured season falls
// back to the classifier's default tag.
func SeasonalMinNights(classifier *seasons.Classifier, apt catalog.Apartment, checkIn time.Time) int {
	tags := classifier.ActiveTags(checkIn)
	if len(tags) == 0 {
		tags = []seasons.Tag{classifier.DefaultTag()}
	}

	min := 0
	for _, tag := range tags {
		candidate := classifier.MinNightsFor(tag)
		if override, ok := apt.MinNights[tag]; ok && override > 0 {
			candidate = override
		}
		if min == 0 || candidate < min {
			min = candidate
		}
	}
	return min
}

// MeetsMinimumNights reports whether a stay satisfies the seasonal
// minimum-stay rule for its check-in date. Zero-night stays never qualify.
func MeetsMinimumNights(classifier *seasons.Classifier, apt catalog.Apartment, checkIn, checkOut time.Time) bool {
	nights := StayNights(checkIn, checkOut)
	if nights == 0 {
		return false
	}
	return nights >= SeasonalMinNights(classifier, apt, checkIn)
}
