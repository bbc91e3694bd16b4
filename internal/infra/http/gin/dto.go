package ginserver

import (
	"stieregg/internal/domain/catalog"
	"stieregg/internal/domain/daterange"
)

// BookedRangeDTO is one inclusive booked interval on the wire, dates in
// YYYY-MM-DD form.
type BookedRangeDTO struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// AvailabilityDTO is the /availability response body.
type AvailabilityDTO struct {
	Slug         string           `json:"slug"`
	BookedRanges []BookedRangeDTO `json:"bookedRanges"`
}

func mapBookedRanges(slug string, ranges []daterange.BookedRange) AvailabilityDTO {
	out := make([]BookedRangeDTO, 0, len(ranges))
	for _, r := range ranges {
		out = append(out, BookedRangeDTO{
			Start: daterange.FormatDate(r.Start),
			End:   daterange.FormatDate(r.End),
		})
	}
	return AvailabilityDTO{Slug: slug, BookedRanges: out}
}

// ApartmentDTO is the apartment record shown on listing and detail pages.
// Calendar URLs stay server-side.
type ApartmentDTO struct {
	ID           string         `json:"id"`
	Slug         string         `json:"slug"`
	Name         catalog.Text   `json:"name"`
	Description  catalog.Text   `json:"description"`
	Capacity     int            `json:"capacity"`
	Bedrooms     int            `json:"bedrooms"`
	PricePerWeek int            `json:"pricePerWeek,omitempty"`
	MinNights    map[string]int `json:"minNights,omitempty"`
}

func mapApartment(apt catalog.Apartment) ApartmentDTO {
	var minNights map[string]int
	if len(apt.MinNights) > 0 {
		minNights = make(map[string]int, len(apt.MinNights))
		for tag, n := range apt.MinNights {
			minNights[string(tag)] = n
		}
	}
	return ApartmentDTO{
		ID:           apt.ID,
		Slug:         apt.Slug,
		Name:         apt.Name,
		Description:  apt.Description,
		Capacity:     apt.Capacity,
		Bedrooms:     apt.Bedrooms,
		PricePerWeek: apt.PricePerWeek,
		MinNights:    minNights,
	}
}

// InquiryDTO is the /inquiry response: the composed mailto link plus the
// stay facts it was validated against.
type InquiryDTO struct {
	Mailto    string `json:"mailto"`
	Nights    int    `json:"nights"`
	MinNights int    `json:"minNights"`
	Available bool   `json:"available"`
}
