package ginserver

import (
	"errors"
	"net/http"

	gin "github.com/gin-gonic/gin"

	appavailability "stieregg/internal/app/availability"
	"stieregg/internal/domain/catalog"
)

type AvailabilityHandler struct {
	Service *appavailability.Service
}

// BookedRanges handles GET /api/v1/availability?slug=<apartment-slug>.
func (h AvailabilityHandler) BookedRanges(c *gin.Context) {
	slug := c.Query("slug")
	if slug == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing slug parameter"})
		return
	}

	ranges, err := h.Service.BookedRanges(c.Request.Context(), slug)
	if err != nil {
		if errors.Is(err, catalog.ErrApartmentNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "apartment not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch availability"})
		return
	}

	c.JSON(http.StatusOK, mapBookedRanges(slug, ranges))
}

var _ AvailabilityHTTP = AvailabilityHandler{}
