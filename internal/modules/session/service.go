// README: Session lifecycle; mirrors the client's planning state and documents server-side.
package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"voyager/internal/modules/travel"
)

var ErrInvalidID = errors.New("invalid session id")

// Snapshot is everything held for one session.
type Snapshot struct {
	ID              string                    `json:"sessionId"`
	State           travel.State              `json:"state"`
	Preferences     *travel.TravelPreferences `json:"travelPreferences,omitempty"`
	Itinerary       *travel.TravelItinerary   `json:"currentItinerary,omitempty"`
	BookingResponse *travel.BookingResponse   `json:"bookingResponse,omitempty"`
}

type Service struct {
	store Store
	log   *zap.Logger
}

func NewService(store Store, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: store, log: logger}
}

// ValidID reports whether id has the shape handed out by Start.
func ValidID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

// Start opens a new session in the idle state.
func (s *Service) Start(ctx context.Context) (string, error) {
	id := uuid.NewString()
	if err := s.store.Set(ctx, id, KeyState, travel.StateIdle); err != nil {
		return "", fmt.Errorf("start session: %w", err)
	}
	s.log.Debug("session started", zap.String("session_id", id))
	return id, nil
}

func (s *Service) state(ctx context.Context, id string) (travel.State, error) {
	if !ValidID(id) {
		return "", ErrInvalidID
	}
	var st travel.State
	ok, err := s.store.Get(ctx, id, KeyState, &st)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", ErrNotFound
	}
	return st, nil
}

func (s *Service) advance(ctx context.Context, id string, ev travel.Event) (travel.State, error) {
	st, err := s.state(ctx, id)
	if err != nil {
		return "", err
	}
	next, err := travel.NextState(st, ev)
	if err != nil {
		return st, err
	}
	if err := s.store.Set(ctx, id, KeyState, next); err != nil {
		return st, err
	}
	return next, nil
}

// Begin records that a generation call for ev started. A new plan may start from any settled
// state; it drops the previous itinerary and booking but keeps the preferences for prefill.
func (s *Service) Begin(ctx context.Context, id string, ev travel.Event) error {
	st, err := s.state(ctx, id)
	if err != nil {
		return err
	}
	if ev == travel.EventGenerate && !st.InFlight() {
		st = travel.StateIdle
	}
	next, err := travel.NextState(st, ev)
	if err != nil {
		return err
	}
	if err := s.store.Set(ctx, id, KeyState, next); err != nil {
		return err
	}
	if ev == travel.EventGenerate {
		return s.store.Delete(ctx, id, KeyCurrentItinerary, KeyBookingResponse)
	}
	return nil
}

// Fail moves an in-flight session to the matching failed state.
func (s *Service) Fail(ctx context.Context, id string) error {
	_, err := s.advance(ctx, id, travel.EventFailed)
	return err
}

func (s *Service) RecordPreferences(ctx context.Context, id string, prefs travel.TravelPreferences) error {
	if _, err := s.state(ctx, id); err != nil {
		return err
	}
	return s.store.Set(ctx, id, KeyTravelPreferences, prefs)
}

// RecordItinerary stores a generated or revised itinerary and completes the in-flight call.
func (s *Service) RecordItinerary(ctx context.Context, id string, it travel.TravelItinerary) error {
	st, err := s.state(ctx, id)
	if err != nil {
		return err
	}
	if st != travel.StateGenerating && st != travel.StateRevising {
		return fmt.Errorf("%w: itinerary recorded while %s", travel.ErrInvalidTransition, st)
	}
	if err := s.store.Set(ctx, id, KeyCurrentItinerary, it); err != nil {
		return err
	}
	_, err = s.advance(ctx, id, travel.EventSucceeded)
	return err
}

// RecordBooking stores the confirmed booking and completes the in-flight call.
func (s *Service) RecordBooking(ctx context.Context, id string, resp travel.BookingResponse) error {
	st, err := s.state(ctx, id)
	if err != nil {
		return err
	}
	if st != travel.StateBooking {
		return fmt.Errorf("%w: booking recorded while %s", travel.ErrInvalidTransition, st)
	}
	if err := s.store.Set(ctx, id, KeyBookingResponse, resp); err != nil {
		return err
	}
	_, err = s.advance(ctx, id, travel.EventSucceeded)
	return err
}

func (s *Service) Snapshot(ctx context.Context, id string) (*Snapshot, error) {
	st, err := s.state(ctx, id)
	if err != nil {
		return nil, err
	}
	snap := &Snapshot{ID: id, State: st}

	var prefs travel.TravelPreferences
	if ok, err := s.store.Get(ctx, id, KeyTravelPreferences, &prefs); err != nil {
		return nil, err
	} else if ok {
		snap.Preferences = &prefs
	}
	var it travel.TravelItinerary
	if ok, err := s.store.Get(ctx, id, KeyCurrentItinerary, &it); err != nil {
		return nil, err
	} else if ok {
		snap.Itinerary = &it
	}
	var booking travel.BookingResponse
	if ok, err := s.store.Get(ctx, id, KeyBookingResponse, &booking); err != nil {
		return nil, err
	} else if ok {
		snap.BookingResponse = &booking
	}
	return snap, nil
}

// Reset returns the session to idle for a new plan, keeping the preferences.
func (s *Service) Reset(ctx context.Context, id string) error {
	if _, err := s.advance(ctx, id, travel.EventReset); err != nil {
		return err
	}
	return s.store.Delete(ctx, id, KeyCurrentItinerary, KeyBookingResponse)
}

// Clear forgets the session entirely.
func (s *Service) Clear(ctx context.Context, id string) error {
	if !ValidID(id) {
		return ErrInvalidID
	}
	return s.store.Clear(ctx, id)
}
