// README: Read-only snapshot endpoints backed by the fixture directory.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"voyager/internal/modules/fixtures"
)

type FixtureHandler struct {
	fixtures *fixtures.Service
	log      *zap.Logger
}

func NewFixtureHandler(svc *fixtures.Service, logger *zap.Logger) *FixtureHandler {
	return &FixtureHandler{fixtures: svc, log: orNop(logger)}
}

// Itinerary handles GET /api/itinerary.
func (h *FixtureHandler) Itinerary(c *gin.Context) {
	h.serve(c, fixtures.KindItinerary, "Failed to read itinerary")
}

// Feedback handles GET /api/feedback.
func (h *FixtureHandler) Feedback(c *gin.Context) {
	h.serve(c, fixtures.KindFeedback, "Failed to read feedback")
}

// Booking handles GET /api/booking.
func (h *FixtureHandler) Booking(c *gin.Context) {
	h.serve(c, fixtures.KindBooking, "Failed to read booking response")
}

func (h *FixtureHandler) serve(c *gin.Context, kind fixtures.Kind, failure string) {
	doc, err := h.fixtures.Load(kind)
	if err != nil {
		h.log.Error("fixture load failed", zap.String("kind", string(kind)), zap.Error(err))
		writeError(c, http.StatusInternalServerError, failure)
		return
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", doc)
}
