package ginserver

import (
	"errors"
	"net/http"
	"strconv"

	gin "github.com/gin-gonic/gin"

	appavailability "stieregg/internal/app/availability"
	"stieregg/internal/domain/availability"
	"stieregg/internal/domain/booking"
	"stieregg/internal/domain/catalog"
	"stieregg/internal/domain/daterange"
	"stieregg/internal/domain/seasons"
)

type InquiryHandler struct {
	Service    *appavailability.Service
	Catalog    *catalog.Catalog
	Classifier *seasons.Classifier
}

// Compose handles GET /api/v1/inquiry. It validates the requested stay
// against availability and the seasonal minimum-stay rule, then returns the
// prefilled mailto link the frontend opens. Malformed input gets a 400, a
// stay that fails validation a 422; neither is a server error.
func (h InquiryHandler) Compose(c *gin.Context) {
	slug := c.Query("slug")
	if slug == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing slug parameter"})
		return
	}
	apt, err := h.Catalog.BySlug(slug)
	if err != nil {
		if errors.Is(err, catalog.ErrApartmentNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "apartment not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	checkIn, err := daterange.ParseDate(c.Query("checkIn"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid checkIn date"})
		return
	}
	checkOut, err := daterange.ParseDate(c.Query("checkOut"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid checkOut date"})
		return
	}
	if !checkOut.After(checkIn) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "checkOut must be after checkIn"})
		return
	}

	guests := 0
	if raw := c.Query("guests"); raw != "" {
		guests, err = strconv.Atoi(raw)
		if err != nil || guests < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid guests count"})
			return
		}
		if apt.Capacity > 0 && guests > apt.Capacity {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "guest count exceeds capacity"})
			return
		}
	}

	ranges, err := h.Service.BookedRanges(c.Request.Context(), slug)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch availability"})
		return
	}

	nights := availability.StayNights(checkIn, checkOut)
	minNights := availability.SeasonalMinNights(h.Classifier, apt, checkIn)
	free := availability.IsAvailable(ranges, checkIn, checkOut)

	if !free {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":     "stay overlaps an existing booking",
			"available": false,
		})
		return
	}
	if nights < minNights {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":     "stay is shorter than the seasonal minimum",
			"nights":    nights,
			"minNights": minNights,
		})
		return
	}

	mailto := booking.MailtoLink(booking.Inquiry{
		Apartment: apt,
		CheckIn:   checkIn,
		CheckOut:  checkOut,
		Guests:    guests,
		GuestName: c.Query("name"),
		Locale:    c.Query("locale"),
	}, h.Catalog.ContactEmail(), h.Catalog.BaseURL())

	c.JSON(http.StatusOK, InquiryDTO{
		Mailto:    mailto,
		Nights:    nights,
		MinNights: minNights,
		Available: true,
	})
}

var _ InquiryHTTP = InquiryHandler{}
