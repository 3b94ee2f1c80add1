// README: Planning session endpoints (create, snapshot, reset, clear).
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"voyager/internal/modules/session"
	"voyager/internal/modules/travel"
)

type SessionHandler struct {
	sessions *session.Service
	log      *zap.Logger
}

func NewSessionHandler(svc *session.Service, logger *zap.Logger) *SessionHandler {
	return &SessionHandler{sessions: svc, log: orNop(logger)}
}

type sessionCreated struct {
	SessionID string `json:"sessionId"`
}

// Create handles POST /api/sessions.
func (h *SessionHandler) Create(c *gin.Context) {
	id, err := h.sessions.Start(c.Request.Context())
	if err != nil {
		h.writeSessionError(c, err)
		return
	}
	writeJSON(c, http.StatusCreated, sessionCreated{SessionID: id})
}

// Get handles GET /api/sessions/:id.
func (h *SessionHandler) Get(c *gin.Context) {
	snap, err := h.sessions.Snapshot(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeSessionError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, snap)
}

// Reset handles POST /api/sessions/:id/reset.
func (h *SessionHandler) Reset(c *gin.Context) {
	id := c.Param("id")
	if err := h.sessions.Reset(c.Request.Context(), id); err != nil {
		h.writeSessionError(c, err)
		return
	}
	snap, err := h.sessions.Snapshot(c.Request.Context(), id)
	if err != nil {
		h.writeSessionError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, snap)
}

// Delete handles DELETE /api/sessions/:id.
func (h *SessionHandler) Delete(c *gin.Context) {
	if err := h.sessions.Clear(c.Request.Context(), c.Param("id")); err != nil {
		h.writeSessionError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *SessionHandler) writeSessionError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, session.ErrInvalidID):
		writeError(c, http.StatusBadRequest, "Invalid session id")
	case errors.Is(err, session.ErrNotFound):
		writeError(c, http.StatusNotFound, "Session not found")
	case errors.Is(err, travel.ErrInvalidTransition):
		writeError(c, http.StatusConflict, err.Error())
	default:
		h.log.Error("session request failed", zap.Error(err))
		writeError(c, http.StatusInternalServerError, msgInternal)
	}
}
