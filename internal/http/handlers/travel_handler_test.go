// README: Router tests; the orchestrator is a testify mock so skipped calls are observable.
package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"voyager/internal/ai"
	"voyager/internal/http/handlers"
	"voyager/internal/modules/session"
	"voyager/internal/modules/travel"
)

type mockPlanner struct {
	mock.Mock
}

func (m *mockPlanner) GenerateItinerary(ctx context.Context, prefs travel.TravelPreferences) (*travel.TravelItinerary, error) {
	args := m.Called(ctx, prefs)
	it, _ := args.Get(0).(*travel.TravelItinerary)
	return it, args.Error(1)
}

func (m *mockPlanner) ReviseItinerary(ctx context.Context, it travel.TravelItinerary, fb travel.ItineraryFeedback) (*travel.TravelItinerary, error) {
	args := m.Called(ctx, it, fb)
	out, _ := args.Get(0).(*travel.TravelItinerary)
	return out, args.Error(1)
}

func (m *mockPlanner) SimulateBookings(ctx context.Context, it travel.TravelItinerary, prefs *travel.TravelPreferences) (*travel.BookingSimulation, error) {
	args := m.Called(ctx, it, prefs)
	out, _ := args.Get(0).(*travel.BookingSimulation)
	return out, args.Error(1)
}

const validPreferences = `{
  "destination": "Paris",
  "travelDates": {"arrival": "2024-06-01", "departure": "2024-06-02"},
  "personalPreferences": {
    "activities": {"likes": ["museums"], "dislikes": []},
    "dietaryRestrictions": [],
    "energyLevel": "balanced",
    "travelPace": "lots of rest",
    "budget": {"type": "total", "amount": 1500, "currency": "EUR"}
  },
  "hotelPreferences": {"type": "boutique"},
  "flightPreferences": {"class": "economy"},
  "transportationPreferences": {"preferredMethods": ["metro"], "comfortVsCost": "cost"},
  "otherInfo": {"packingHelpNeeded": false}
}`

const twoDayItinerary = `{
  "traveler": {"destination": "Paris", "travelDates": {"start": "2024-06-01", "end": "2024-06-02"}},
  "itinerary": [
    {"date": "2024-06-01", "weather": "Sunny", "activities": [{"time": "09:00", "activity": "Louvre", "cost": "€22", "transportation": "Metro"}]},
    {"date": "2024-06-02", "weather": "Rain", "activities": [{"time": "10:00", "activity": "Orsay", "cost": "€16", "transportation": "Metro"}]}
  ],
  "packingList": ["Umbrella"],
  "budgetBreakdown": {"Hotel": "€400", "Dining": "€120", "Activities": "€40", "Transportation": "€20",
    "Miscellaneous": "€20", "Total Estimated Cost": "€600"}
}`

func plannedItinerary() *travel.TravelItinerary {
	var it travel.TravelItinerary
	if err := json.Unmarshal([]byte(twoDayItinerary), &it); err != nil {
		panic(err)
	}
	return &it
}

func newTravelRouter(p handlers.Planner, sessions handlers.SessionRecorder) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := handlers.NewTravelHandler(p, sessions, nil)
	r.POST("/api/travel", h.Handle)
	return r
}

func postRaw(r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func envelope(action string, fields map[string]string) string {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, `{"action": %q`, action)
	for k, v := range fields {
		fmt.Fprintf(&buf, `, %q: %s`, k, v)
	}
	buf.WriteString("}")
	return buf.String()
}

func TestTravel_BadRequestsNeverReachPlanner(t *testing.T) {
	cases := []struct {
		name string
		body string
		want string
	}{
		{"malformed json", `{"action": "generate_itinerary"`, "Invalid request body"},
		{"unknown action", envelope("book_hotel", map[string]string{"preferences": validPreferences}), "Invalid action"},
		{"missing action", `{}`, "Invalid action"},
		{"numeric action", `{"action": 42}`, "Invalid action"},
		{"null action", `{"action": null}`, "Invalid action"},
		{"object action", `{"action": {"name": "generate_itinerary"}}`, "Invalid action"},
		{"unknown action with numeric session", `{"action": "book_hotel", "sessionId": 123}`, "Invalid action"},
		{"unknown action with odd preferences", `{"action": "book_hotel", "preferences": {"x": 1}}`, "Invalid action"},
		{"array body", `[{"action": "generate_itinerary"}]`, "Invalid request body"},
		{"null body", `null`, "Invalid request body"},
		{"generate without preferences", envelope("generate_itinerary", nil), "Travel preferences are required"},
		{"generate with null preferences", envelope("generate_itinerary", map[string]string{"preferences": "null"}), "Travel preferences are required"},
		{"feedback without feedback", envelope("get_feedback", map[string]string{"itinerary": twoDayItinerary}), "Itinerary and feedback are required"},
		{"feedback without itinerary", envelope("get_feedback", map[string]string{"feedback": `{"generalFeedback": "more food"}`}), "Itinerary and feedback are required"},
		{"bookings without itinerary", envelope("simulate_bookings", map[string]string{"preferences": validPreferences}), "Itinerary is required"},
		{"invalid energy level", envelope("generate_itinerary", map[string]string{
			"preferences": `{"destination": "Rome", "travelDates": {"arrival": "2024-06-01", "departure": "2024-06-02"},
			  "personalPreferences": {"energyLevel": "frantic", "travelPace": "lots of rest", "budget": {"type": "total", "amount": 1}}}`,
		}), "personalPreferences.energyLevel: must be one of relaxed, balanced, busy"},
		{"departure before arrival", envelope("generate_itinerary", map[string]string{
			"preferences": `{"destination": "Rome", "travelDates": {"arrival": "2024-06-05", "departure": "2024-06-02"}}`,
		}), "travelDates: departure must not be before arrival"},
		{"day index out of range", envelope("get_feedback", map[string]string{
			"itinerary": twoDayItinerary,
			"feedback":  `{"modifications": [{"type": "remove_activity", "day": 2, "details": {"activityIndex": 0}}]}`,
		}), "feedback.modifications[0].day: must reference one of the 2 itinerary days"},
		{"negative budget adjustment", envelope("get_feedback", map[string]string{
			"itinerary": twoDayItinerary,
			"feedback":  `{"budgetAdjustment": {"type": "decrease", "amount": -5, "currency": "EUR"}}`,
		}), "feedback.budgetAdjustment.amount: must not be negative"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := &mockPlanner{}
			w := postRaw(newTravelRouter(p, nil), "/api/travel", tc.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.JSONEq(t, fmt.Sprintf(`{"error": %q}`, tc.want), w.Body.String())
			p.AssertNotCalled(t, "GenerateItinerary", mock.Anything, mock.Anything)
			p.AssertNotCalled(t, "ReviseItinerary", mock.Anything, mock.Anything, mock.Anything)
			p.AssertNotCalled(t, "SimulateBookings", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestTravel_Generate(t *testing.T) {
	p := &mockPlanner{}
	p.On("GenerateItinerary", mock.Anything, mock.MatchedBy(func(prefs travel.TravelPreferences) bool {
		return prefs.Destination == "Paris" && prefs.PersonalPreferences.Budget.Amount == 1500
	})).Return(plannedItinerary(), nil).Once()

	w := postRaw(newTravelRouter(p, nil), "/api/travel", envelope("generate_itinerary", map[string]string{"preferences": validPreferences}))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Itinerary travel.TravelItinerary `json:"itinerary"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Itinerary.Itinerary, 2)
	assert.Equal(t, "€600", string(resp.Itinerary.BudgetBreakdown.TotalEstimatedCost))
	p.AssertExpectations(t)
}

func TestTravel_Revise(t *testing.T) {
	revised := plannedItinerary()
	revised.Itinerary[0].Activities[0].Activity = "Orangerie"
	p := &mockPlanner{}
	p.On("ReviseItinerary", mock.Anything, mock.Anything, mock.MatchedBy(func(fb travel.ItineraryFeedback) bool {
		return len(fb.Modifications) == 1 && fb.Modifications[0].Type == travel.ModModifyActivity
	})).Return(revised, nil).Once()

	body := envelope("get_feedback", map[string]string{
		"itinerary": twoDayItinerary,
		"feedback":  `{"modifications": [{"type": "modify_activity", "day": 0, "details": {"activityIndex": 0, "newDescription": "Orangerie"}}]}`,
	})
	w := postRaw(newTravelRouter(p, nil), "/api/travel", body)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"activity":"Orangerie"`)
	p.AssertExpectations(t)
}

func TestTravel_BookWrapsSimulation(t *testing.T) {
	sim := &travel.BookingSimulation{
		Hotels:    []travel.HotelBooking{{Name: "Hotel Le Marais", Type: "boutique", Price: 400}},
		TotalCost: 400,
	}
	p := &mockPlanner{}
	p.On("SimulateBookings", mock.Anything, mock.Anything, (*travel.TravelPreferences)(nil)).Return(sim, nil).Once()

	w := postRaw(newTravelRouter(p, nil), "/api/travel", envelope("simulate_bookings", map[string]string{"itinerary": twoDayItinerary}))
	require.Equal(t, http.StatusOK, w.Code)

	var resp travel.BookingResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 400.0, resp.Bookings.TotalCost)
	assert.Equal(t, "Hotel Le Marais", resp.Bookings.Hotels[0].Name)
	p.AssertExpectations(t)
}

func TestTravel_BookPassesPreferences(t *testing.T) {
	p := &mockPlanner{}
	p.On("SimulateBookings", mock.Anything, mock.Anything, mock.MatchedBy(func(prefs *travel.TravelPreferences) bool {
		return prefs != nil && prefs.FlightPreferences.Class == "economy"
	})).Return(&travel.BookingSimulation{Hotels: []travel.HotelBooking{{Name: "H"}}}, nil).Once()

	body := envelope("simulate_bookings", map[string]string{"itinerary": twoDayItinerary, "preferences": validPreferences})
	w := postRaw(newTravelRouter(p, nil), "/api/travel", body)
	assert.Equal(t, http.StatusOK, w.Code)
	p.AssertExpectations(t)
}

func TestTravel_ErrorMapping(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		body   string
	}{
		{"validation", &travel.ValidationError{Field: "traveler.destination", Message: "is required"},
			http.StatusBadRequest, `{"error": "traveler.destination: is required"}`},
		{"generation", fmt.Errorf("%w: itinerary has 1 days, want 2", travel.ErrGeneration),
			http.StatusInternalServerError, `{"error": "Internal server error"}`},
		{"transport", fmt.Errorf("%w: %w: dial tcp: connection refused", travel.ErrGeneration, ai.ErrTransport),
			http.StatusInternalServerError, `{"error": "Internal server error"}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := &mockPlanner{}
			p.On("SimulateBookings", mock.Anything, mock.Anything, mock.Anything).Return(nil, tc.err).Once()
			w := postRaw(newTravelRouter(p, nil), "/api/travel", envelope("simulate_bookings", map[string]string{"itinerary": twoDayItinerary}))
			assert.Equal(t, tc.status, w.Code)
			assert.JSONEq(t, tc.body, w.Body.String())
			assert.NotContains(t, w.Body.String(), "connection refused")
		})
	}
}

func TestTravel_RecordsSession(t *testing.T) {
	sessions := session.NewService(session.NewMemoryStore(time.Hour), nil)
	id, err := sessions.Start(context.Background())
	require.NoError(t, err)

	p := &mockPlanner{}
	p.On("GenerateItinerary", mock.Anything, mock.Anything).Return(plannedItinerary(), nil).Once()
	p.On("SimulateBookings", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, fmt.Errorf("%w: booking contains no flights or hotels", travel.ErrGeneration)).Once()
	r := newTravelRouter(p, sessions)

	w := postRaw(r, "/api/travel", envelope("generate_itinerary", map[string]string{
		"preferences": validPreferences, "sessionId": fmt.Sprintf("%q", id),
	}))
	require.Equal(t, http.StatusOK, w.Code)

	snap, err := sessions.Snapshot(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, travel.StateItineraryReady, snap.State)
	require.NotNil(t, snap.Itinerary)
	require.NotNil(t, snap.Preferences)
	assert.Equal(t, "Paris", snap.Preferences.Destination)

	w = postRaw(r, "/api/travel", envelope("simulate_bookings", map[string]string{
		"itinerary": twoDayItinerary, "sessionId": fmt.Sprintf("%q", id),
	}))
	require.Equal(t, http.StatusInternalServerError, w.Code)
	snap, err = sessions.Snapshot(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, travel.StateBookingFailed, snap.State)
	assert.Nil(t, snap.BookingResponse)
}

type brokenRecorder struct{}

func (brokenRecorder) Begin(context.Context, string, travel.Event) error { return errors.New("redis down") }
func (brokenRecorder) Fail(context.Context, string) error { return errors.New("redis down") }
func (brokenRecorder) RecordPreferences(context.Context, string, travel.TravelPreferences) error {
	return errors.New("redis down")
}
func (brokenRecorder) RecordItinerary(context.Context, string, travel.TravelItinerary) error {
	return errors.New("redis down")
}
func (brokenRecorder) RecordBooking(context.Context, string, travel.BookingResponse) error {
	return errors.New("redis down")
}

func TestTravel_SessionFailureDoesNotFailRequest(t *testing.T) {
	p := &mockPlanner{}
	p.On("GenerateItinerary", mock.Anything, mock.Anything).Return(plannedItinerary(), nil).Once()
	w := postRaw(newTravelRouter(p, brokenRecorder{}), "/api/travel", envelope("generate_itinerary", map[string]string{
		"preferences": validPreferences, "sessionId": `"0b6f8c3e-7d6a-4b0e-9a43-3f5d1c2e8a10"`,
	}))
	assert.Equal(t, http.StatusOK, w.Code)
	p.AssertExpectations(t)
}

func TestTravel_NonStringSessionIsIgnored(t *testing.T) {
	sessions := session.NewService(session.NewMemoryStore(time.Hour), nil)
	p := &mockPlanner{}
	p.On("GenerateItinerary", mock.Anything, mock.Anything).Return(plannedItinerary(), nil).Once()

	w := postRaw(newTravelRouter(p, sessions), "/api/travel", envelope("generate_itinerary", map[string]string{
		"preferences": validPreferences, "sessionId": "123",
	}))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"itinerary"`)
	p.AssertExpectations(t)
}
