// README: Generation usage report from the ledger.
package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"voyager/internal/modules/travel"
	"voyager/internal/modules/usage"
)

type UsageReporter interface {
	Summary(ctx context.Context, since time.Time) ([]usage.SummaryRow, error)
}

const defaultUsageWindow = 7 * 24 * time.Hour

type UsageHandler struct {
	usage UsageReporter
	log   *zap.Logger
	now   func() time.Time
}

func NewUsageHandler(r UsageReporter, logger *zap.Logger) *UsageHandler {
	return &UsageHandler{usage: r, log: orNop(logger), now: time.Now}
}

type usageResponse struct {
	Since time.Time          `json:"since"`
	Rows  []usage.SummaryRow `json:"rows"`
}

// Summary handles GET /api/usage?since=; since is RFC 3339 or YYYY-MM-DD, default one week back.
func (h *UsageHandler) Summary(c *gin.Context) {
	since := h.now().Add(-defaultUsageWindow).UTC()
	if v := c.Query("since"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			if t, err = travel.ParseDate(v); err != nil {
				writeError(c, http.StatusBadRequest, "since must be an RFC 3339 timestamp or YYYY-MM-DD date")
				return
			}
		}
		since = t
	}
	rows, err := h.usage.Summary(c.Request.Context(), since)
	if err != nil {
		h.log.Error("usage summary failed", zap.Error(err))
		writeError(c, http.StatusInternalServerError, msgInternal)
		return
	}
	writeJSON(c, http.StatusOK, usageResponse{Since: since, Rows: rows})
}
