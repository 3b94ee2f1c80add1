// README: Base handler utilities (JSON helpers, error mapping).
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"voyager/internal/modules/travel"
)

const msgInternal = "Internal server error"

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(c *gin.Context, status int, v any) {
	c.JSON(status, v)
}

func writeError(c *gin.Context, status int, msg string) {
	writeJSON(c, status, errorResponse{Error: msg})
}

// writeTravelError maps orchestrator errors; upstream details only reach the log.
func writeTravelError(c *gin.Context, log *zap.Logger, err error) {
	var verr *travel.ValidationError
	if errors.As(err, &verr) {
		writeError(c, http.StatusBadRequest, verr.Error())
		return
	}
	log.Error("travel request failed", zap.String("path", c.FullPath()), zap.Error(err))
	writeError(c, http.StatusInternalServerError, msgInternal)
}

// present reports whether a raw envelope field carries a value.
func present(raw json.RawMessage) bool {
	return len(raw) > 0 && string(raw) != "null"
}

func orNop(logger *zap.Logger) *zap.Logger {
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}
