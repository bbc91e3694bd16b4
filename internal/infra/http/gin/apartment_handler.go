package ginserver

import (
	"errors"
	"net/http"

	gin "github.com/gin-gonic/gin"

	"stieregg/internal/domain/catalog"
)

type ApartmentHandler struct {
	Catalog *catalog.Catalog
}

// List handles GET /api/v1/apartments.
func (h ApartmentHandler) List(c *gin.Context) {
	apartments := h.Catalog.Apartments()
	out := make([]ApartmentDTO, 0, len(apartments))
	for _, apt := range apartments {
		out = append(out, mapApartment(apt))
	}
	c.JSON(http.StatusOK, gin.H{"apartments": out})
}

// Get handles GET /api/v1/apartments/:slug.
func (h ApartmentHandler) Get(c *gin.Context) {
	apt, err := h.Catalog.BySlug(c.Param("slug"))
	if err != nil {
		if errors.Is(err, catalog.ErrApartmentNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "apartment not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, mapApartment(apt))
}

var _ CatalogHTTP = ApartmentHandler{}
