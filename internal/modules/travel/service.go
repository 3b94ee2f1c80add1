// README: Itinerary orchestrator; turns preferences and feedback into generation calls.
package travel

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"voyager/internal/ai"
)

// Action names one orchestrator operation; it doubles as the metrics and ledger label.
type Action string

const (
	ActionGenerate Action = "generate_itinerary"
	ActionRevise   Action = "get_feedback"
	ActionBook     Action = "simulate_bookings"
)

// Outcome labels reported to observers.
const (
	OutcomeOK       = "ok"
	OutcomeInvalid  = "invalid"
	OutcomeCanceled = "canceled"
	OutcomeFailed   = "failed"
)

// OutcomeOf maps an orchestrator error onto an outcome label.
func OutcomeOf(err error) string {
	var verr *ValidationError
	switch {
	case err == nil:
		return OutcomeOK
	case errors.As(err, &verr):
		return OutcomeInvalid
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return OutcomeCanceled
	default:
		return OutcomeFailed
	}
}

// Observer is notified once per orchestrator call with its outcome.
type Observer interface {
	Observe(ctx context.Context, action Action, elapsed time.Duration, err error)
}

type Service struct {
	gen       ai.Generator
	log       *zap.Logger
	observers []Observer
}

func NewService(gen ai.Generator, logger *zap.Logger, observers ...Observer) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Service{gen: gen, log: logger}
	for _, o := range observers {
		if o != nil {
			s.observers = append(s.observers, o)
		}
	}
	return s
}

func (s *Service) observe(ctx context.Context, action Action, start time.Time, err error) {
	elapsed := time.Since(start)
	for _, o := range s.observers {
		o.Observe(ctx, action, elapsed, err)
	}
	if err != nil {
		s.log.Warn("travel action failed", zap.String("action", string(action)), zap.Duration("elapsed", elapsed), zap.Error(err))
		return
	}
	s.log.Info("travel action completed", zap.String("action", string(action)), zap.Duration("elapsed", elapsed))
}

func (s *Service) call(ctx context.Context, p ai.Prompt) ([]byte, error) {
	raw, err := s.gen.Generate(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrGeneration, err)
	}
	raw = ai.CleanJSON(raw)
	if raw == "" {
		return nil, fmt.Errorf("%w: %w", ErrGeneration, ai.ErrEmptyResponse)
	}
	return []byte(raw), nil
}

// GenerateItinerary asks for a full plan covering every day of the trip.
func (s *Service) GenerateItinerary(ctx context.Context, prefs TravelPreferences) (_ *TravelItinerary, err error) {
	defer func(start time.Time) { s.observe(ctx, ActionGenerate, start, err) }(time.Now())

	if err := prefs.Validate(); err != nil {
		return nil, err
	}
	days, err := TripDays(prefs.TravelDates)
	if err != nil {
		return nil, err
	}

	raw, err := s.call(ctx, generationPrompt(prefs, days))
	if err != nil {
		return nil, err
	}
	var it TravelItinerary
	if err := json.Unmarshal(raw, &it); err != nil {
		return nil, fmt.Errorf("%w: decode itinerary: %v", ErrGeneration, err)
	}
	if err := checkItinerary(&it, days); err != nil {
		return nil, err
	}
	fillTraveler(&it, prefs, days)
	return &it, nil
}

// ReviseItinerary requests a full replacement of itinerary reflecting feedback.
// The caller's itinerary is left untouched.
func (s *Service) ReviseItinerary(ctx context.Context, itinerary TravelItinerary, feedback ItineraryFeedback) (_ *TravelItinerary, err error) {
	defer func(start time.Time) { s.observe(ctx, ActionRevise, start, err) }(time.Now())

	current := itinerary.Clone()
	if err := feedback.ValidateFor(current); err != nil {
		return nil, err
	}
	prompt, err := revisionPrompt(current, feedback)
	if err != nil {
		return nil, err
	}

	raw, err := s.call(ctx, prompt)
	if err != nil {
		return nil, err
	}
	var revised TravelItinerary
	if err := json.Unmarshal(raw, &revised); err != nil {
		return nil, fmt.Errorf("%w: decode revised itinerary: %v", ErrGeneration, err)
	}
	expected := revisionCalendar(current)
	if err := checkItinerary(&revised, expected); err != nil {
		return nil, err
	}
	if revised.Traveler.Destination == "" {
		revised.Traveler = current.Traveler
	}
	for i := range revised.Itinerary {
		if _, err := ParseDate(revised.Itinerary[i].Date); err != nil && expected[i] != "" {
			revised.Itinerary[i].Date = expected[i]
		}
	}
	return &revised, nil
}

// revisionCalendar is the date each revised day must carry. The traveler's trip
// dates win when they span exactly the current days; otherwise each parseable day
// date is kept and unknown days are left empty.
func revisionCalendar(current TravelItinerary) []string {
	td := current.Traveler.TravelDates
	if days, err := TripDays(TravelDates{Arrival: td.Start, Departure: td.End}); err == nil && len(days) == len(current.Itinerary) {
		return days
	}
	expected := make([]string, len(current.Itinerary))
	for i, day := range current.Itinerary {
		if d, err := ParseDate(day.Date); err == nil {
			expected[i] = d.Format(dateLayout)
		}
	}
	return expected
}

// SimulateBookings asks for a plausible flight and hotel reservation for itinerary.
// prefs may be nil; the itinerary's own preference echo is used then.
func (s *Service) SimulateBookings(ctx context.Context, itinerary TravelItinerary, prefs *TravelPreferences) (_ *BookingSimulation, err error) {
	defer func(start time.Time) { s.observe(ctx, ActionBook, start, err) }(time.Now())

	if itinerary.Traveler.Destination == "" {
		return nil, invalid("itinerary.traveler.destination", "is required")
	}

	raw, err := s.call(ctx, bookingPrompt(itinerary.Clone(), prefs))
	if err != nil {
		return nil, err
	}
	sim, err := decodeBookings(raw)
	if err != nil {
		return nil, err
	}
	if err := checkBookings(sim); err != nil {
		return nil, err
	}
	return sim, nil
}

// decodeBookings accepts the simulation itself or one wrapped under "bookings".
func decodeBookings(raw []byte) (*BookingSimulation, error) {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(raw, &probe); err != nil {
		return nil, fmt.Errorf("%w: decode bookings: %v", ErrGeneration, err)
	}
	if inner, ok := probe["bookings"]; ok && len(bytes.TrimSpace(inner)) > 0 && inner[0] == '{' {
		raw = inner
	}
	var sim BookingSimulation
	if err := json.Unmarshal(raw, &sim); err != nil {
		return nil, fmt.Errorf("%w: decode bookings: %v", ErrGeneration, err)
	}
	return &sim, nil
}

// fillTraveler completes the traveler echo from what was actually submitted.
func fillTraveler(it *TravelItinerary, p TravelPreferences, days []string) {
	t := &it.Traveler
	if t.Destination == "" {
		t.Destination = p.Destination
	}
	t.TravelDates = TripDates{Start: days[0], End: days[len(days)-1]}
	for i := range it.Itinerary {
		if _, err := ParseDate(it.Itinerary[i].Date); err != nil {
			it.Itinerary[i].Date = days[i]
		}
	}
	e := &t.Preferences
	pp := p.PersonalPreferences
	if e.Likes == nil {
		e.Likes = cloneStrings(pp.Activities.Likes)
	}
	if e.Dislikes == nil {
		e.Dislikes = cloneStrings(pp.Activities.Dislikes)
	}
	if e.DietaryRestrictions == "" && len(pp.DietaryRestrictions) > 0 {
		e.DietaryRestrictions = Text(dietaryList(pp.DietaryRestrictions))
	}
	if e.EnergyLevel == "" {
		e.EnergyLevel = string(pp.EnergyLevel)
	}
	if e.TravelPace == "" {
		e.TravelPace = string(pp.TravelPace)
	}
	if e.Budget == 0 {
		e.Budget = Amount(pp.Budget.Amount)
	}
	if e.HotelPreferences.Type == "" {
		e.HotelPreferences.Type = p.HotelPreferences.Type
	}
	if e.FlightPreferences.Class == "" {
		e.FlightPreferences.Class = p.FlightPreferences.Class
	}
	if e.TransportationPreferences.ComfortVsCost == "" {
		e.TransportationPreferences = TransportationPreference{
			PreferredMethods: cloneStrings(p.TransportationPreferences.PreferredMethods),
			ComfortVsCost:    p.TransportationPreferences.ComfortVsCost,
		}
	}
	e.PackingHelpNeeded = p.OtherInfo.PackingHelpNeeded
}
