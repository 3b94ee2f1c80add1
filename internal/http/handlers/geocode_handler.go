// README: Destination geocoding for the globe view.
package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"voyager/internal/maps"
)

type Geocoder interface {
	Lookup(ctx context.Context, place string) (maps.Coordinates, bool)
}

type GeocodeHandler struct {
	geocoder Geocoder
}

// NewGeocodeHandler accepts a nil geocoder; every lookup then reports not found.
func NewGeocodeHandler(g Geocoder) *GeocodeHandler {
	return &GeocodeHandler{geocoder: g}
}

type geocodeResponse struct {
	Lat   float64 `json:"lat"`
	Lon   float64 `json:"lon"`
	Found bool    `json:"found"`
}

// Lookup handles GET /api/geocode?address=.
func (h *GeocodeHandler) Lookup(c *gin.Context) {
	address := strings.TrimSpace(c.Query("address"))
	if address == "" {
		writeError(c, http.StatusBadRequest, "address is required")
		return
	}
	var resp geocodeResponse
	if h.geocoder != nil {
		coords, found := h.geocoder.Lookup(c.Request.Context(), address)
		if found {
			resp = geocodeResponse{Lat: coords.Lat, Lon: coords.Lon, Found: true}
		}
	}
	writeJSON(c, http.StatusOK, resp)
}
