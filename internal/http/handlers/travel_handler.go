// README: Travel action router; dispatches on the action, then validates that action's fields.
package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"voyager/internal/modules/travel"
)

// Planner is the orchestrator surface the router needs.
type Planner interface {
	GenerateItinerary(ctx context.Context, prefs travel.TravelPreferences) (*travel.TravelItinerary, error)
	ReviseItinerary(ctx context.Context, itinerary travel.TravelItinerary, feedback travel.ItineraryFeedback) (*travel.TravelItinerary, error)
	SimulateBookings(ctx context.Context, itinerary travel.TravelItinerary, prefs *travel.TravelPreferences) (*travel.BookingSimulation, error)
}

// SessionRecorder mirrors results into a planning session.
type SessionRecorder interface {
	Begin(ctx context.Context, id string, ev travel.Event) error
	Fail(ctx context.Context, id string) error
	RecordPreferences(ctx context.Context, id string, prefs travel.TravelPreferences) error
	RecordItinerary(ctx context.Context, id string, it travel.TravelItinerary) error
	RecordBooking(ctx context.Context, id string, resp travel.BookingResponse) error
}

const (
	msgPrefsRequired     = "Travel preferences are required"
	msgFeedbackRequired  = "Itinerary and feedback are required"
	msgItineraryRequired = "Itinerary is required"
	msgInvalidAction     = "Invalid action"
	msgInvalidBody       = "Invalid request body"
)

type travelRequest struct {
	Action      travel.Action
	Preferences json.RawMessage
	Itinerary   json.RawMessage
	Feedback    json.RawMessage
	SessionID   string
}

// parseTravelRequest reads the envelope field by field so a field of the wrong
// type never masks the action. Non-string action or sessionId values read as empty.
func parseTravelRequest(fields map[string]json.RawMessage) travelRequest {
	return travelRequest{
		Action:      travel.Action(stringField(fields["action"])),
		Preferences: fields["preferences"],
		Itinerary:   fields["itinerary"],
		Feedback:    fields["feedback"],
		SessionID:   stringField(fields["sessionId"]),
	}
}

func stringField(raw json.RawMessage) string {
	var s string
	if json.Unmarshal(raw, &s) != nil {
		return ""
	}
	return s
}

type itineraryResponse struct {
	Itinerary *travel.TravelItinerary `json:"itinerary"`
}

type TravelHandler struct {
	planner  Planner
	sessions SessionRecorder
	log      *zap.Logger
}

// NewTravelHandler builds the router; sessions may be nil.
func NewTravelHandler(planner Planner, sessions SessionRecorder, logger *zap.Logger) *TravelHandler {
	return &TravelHandler{planner: planner, sessions: sessions, log: orNop(logger)}
}

// Handle serves POST /api/travel.
func (h *TravelHandler) Handle(c *gin.Context) {
	var fields map[string]json.RawMessage
	if err := c.ShouldBindJSON(&fields); err != nil || fields == nil {
		writeError(c, http.StatusBadRequest, msgInvalidBody)
		return
	}
	req := parseTravelRequest(fields)
	switch req.Action {
	case travel.ActionGenerate:
		h.generate(c, req)
	case travel.ActionRevise:
		h.revise(c, req)
	case travel.ActionBook:
		h.book(c, req)
	default:
		writeError(c, http.StatusBadRequest, msgInvalidAction)
	}
}

func (h *TravelHandler) generate(c *gin.Context, req travelRequest) {
	if !present(req.Preferences) {
		writeError(c, http.StatusBadRequest, msgPrefsRequired)
		return
	}
	var prefs travel.TravelPreferences
	if err := json.Unmarshal(req.Preferences, &prefs); err != nil {
		writeError(c, http.StatusBadRequest, "Invalid travel preferences")
		return
	}
	if err := prefs.Validate(); err != nil {
		writeTravelError(c, h.log, err)
		return
	}

	ctx := c.Request.Context()
	track := h.begin(ctx, req.SessionID, travel.EventGenerate)
	if track {
		h.record(req.SessionID, "preferences", h.sessions.RecordPreferences(ctx, req.SessionID, prefs))
	}
	it, err := h.planner.GenerateItinerary(ctx, prefs)
	if err != nil {
		h.fail(ctx, track, req.SessionID)
		writeTravelError(c, h.log, err)
		return
	}
	if track {
		h.record(req.SessionID, "itinerary", h.sessions.RecordItinerary(ctx, req.SessionID, *it))
	}
	writeJSON(c, http.StatusOK, itineraryResponse{Itinerary: it})
}

func (h *TravelHandler) revise(c *gin.Context, req travelRequest) {
	if !present(req.Itinerary) || !present(req.Feedback) {
		writeError(c, http.StatusBadRequest, msgFeedbackRequired)
		return
	}
	var it travel.TravelItinerary
	var fb travel.ItineraryFeedback
	if err := json.Unmarshal(req.Itinerary, &it); err != nil {
		writeError(c, http.StatusBadRequest, "Invalid itinerary")
		return
	}
	if err := json.Unmarshal(req.Feedback, &fb); err != nil {
		writeError(c, http.StatusBadRequest, "Invalid feedback")
		return
	}
	if err := fb.ValidateFor(it); err != nil {
		writeTravelError(c, h.log, err)
		return
	}

	ctx := c.Request.Context()
	track := h.begin(ctx, req.SessionID, travel.EventRevise)
	revised, err := h.planner.ReviseItinerary(ctx, it, fb)
	if err != nil {
		h.fail(ctx, track, req.SessionID)
		writeTravelError(c, h.log, err)
		return
	}
	if track {
		h.record(req.SessionID, "itinerary", h.sessions.RecordItinerary(ctx, req.SessionID, *revised))
	}
	writeJSON(c, http.StatusOK, itineraryResponse{Itinerary: revised})
}

func (h *TravelHandler) book(c *gin.Context, req travelRequest) {
	if !present(req.Itinerary) {
		writeError(c, http.StatusBadRequest, msgItineraryRequired)
		return
	}
	var it travel.TravelItinerary
	if err := json.Unmarshal(req.Itinerary, &it); err != nil {
		writeError(c, http.StatusBadRequest, "Invalid itinerary")
		return
	}
	var prefs *travel.TravelPreferences
	if present(req.Preferences) {
		prefs = new(travel.TravelPreferences)
		if err := json.Unmarshal(req.Preferences, prefs); err != nil {
			writeError(c, http.StatusBadRequest, "Invalid travel preferences")
			return
		}
	}

	ctx := c.Request.Context()
	track := h.begin(ctx, req.SessionID, travel.EventBook)
	sim, err := h.planner.SimulateBookings(ctx, it, prefs)
	if err != nil {
		h.fail(ctx, track, req.SessionID)
		writeTravelError(c, h.log, err)
		return
	}
	resp := travel.BookingResponse{Bookings: *sim}
	if track {
		h.record(req.SessionID, "booking", h.sessions.RecordBooking(ctx, req.SessionID, resp))
	}
	writeJSON(c, http.StatusOK, resp)
}

// begin opens the session step; false means results are not mirrored for this request.
func (h *TravelHandler) begin(ctx context.Context, id string, ev travel.Event) bool {
	if h.sessions == nil || id == "" {
		return false
	}
	if err := h.sessions.Begin(ctx, id, ev); err != nil {
		h.log.Warn("session not tracked", zap.String("session_id", id), zap.String("event", string(ev)), zap.Error(err))
		return false
	}
	return true
}

func (h *TravelHandler) fail(ctx context.Context, track bool, id string) {
	if track {
		h.record(id, "failure", h.sessions.Fail(context.WithoutCancel(ctx), id))
	}
}

func (h *TravelHandler) record(id, what string, err error) {
	if err != nil {
		h.log.Warn("session write failed", zap.String("session_id", id), zap.String("what", what), zap.Error(err))
	}
}
