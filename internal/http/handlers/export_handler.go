// README: PDF export of a confirmed itinerary.
package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"voyager/internal/export"
	"voyager/internal/modules/travel"
)

type ExportHandler struct {
	log *zap.Logger
}

func NewExportHandler(logger *zap.Logger) *ExportHandler {
	return &ExportHandler{log: orNop(logger)}
}

type exportRequest struct {
	Itinerary *travel.TravelItinerary   `json:"itinerary"`
	Bookings  *travel.BookingSimulation `json:"bookings"`
}

// PDF handles POST /api/export/pdf.
func (h *ExportHandler) PDF(c *gin.Context) {
	var req exportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, msgInvalidBody)
		return
	}
	if req.Itinerary == nil || req.Bookings == nil {
		writeError(c, http.StatusBadRequest, "Itinerary and bookings are required")
		return
	}

	var buf bytes.Buffer
	err := export.RenderItineraryPDF(&buf, *req.Itinerary, travel.BookingResponse{Bookings: *req.Bookings})
	if errors.Is(err, export.ErrNothingToRender) {
		writeError(c, http.StatusBadRequest, "Itinerary has no days")
		return
	}
	if err != nil {
		h.log.Error("pdf export failed", zap.Error(err))
		writeError(c, http.StatusInternalServerError, msgInternal)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.Filename(*req.Itinerary)))
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}
