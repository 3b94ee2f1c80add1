// README: Planning flow state machine shared by the session service and clients.
package travel

import (
	"errors"
	"fmt"
)

type State string

const (
	StateIdle             State = "idle"
	StateGenerating       State = "generating"
	StateGenerationFailed State = "generation-failed"
	StateItineraryReady   State = "itinerary-ready"
	StateRevising         State = "revising"
	StateRevisionFailed   State = "revision-failed"
	StateBooking          State = "booking"
	StateBookingFailed    State = "booking-failed"
	StateBookingConfirmed State = "booking-confirmed"
)

type Event string

const (
	EventGenerate  Event = "generate"
	EventRevise    Event = "revise"
	EventBook      Event = "book"
	EventSucceeded Event = "succeeded"
	EventFailed    Event = "failed"
	EventReset     Event = "reset"
)

var ErrInvalidTransition = errors.New("invalid planning state transition")

type transition struct {
	from State
	on   Event
}

var transitions = map[transition]State{
	{StateIdle, EventGenerate}:             StateGenerating,
	{StateGenerating, EventSucceeded}:      StateItineraryReady,
	{StateGenerating, EventFailed}:         StateGenerationFailed,
	{StateGenerationFailed, EventGenerate}: StateGenerating,

	{StateItineraryReady, EventRevise}:   StateRevising,
	{StateRevising, EventSucceeded}:      StateItineraryReady,
	{StateRevising, EventFailed}:         StateRevisionFailed,
	{StateRevisionFailed, EventRevise}:   StateRevising,
	{StateItineraryReady, EventBook}:     StateBooking,
	{StateBooking, EventSucceeded}:       StateBookingConfirmed,
	{StateBooking, EventFailed}:          StateBookingFailed,
	{StateBookingFailed, EventBook}:      StateBooking,
	{StateRevisionFailed, EventBook}:     StateBooking,
	{StateItineraryReady, EventGenerate}: StateGenerating,
}

// NextState applies ev to from. Reset is accepted from every state.
func NextState(from State, ev Event) (State, error) {
	if ev == EventReset {
		return StateIdle, nil
	}
	if from == "" {
		from = StateIdle
	}
	to, ok := transitions[transition{from, ev}]
	if !ok {
		return from, fmt.Errorf("%w: %s on %s", ErrInvalidTransition, from, ev)
	}
	return to, nil
}

// InFlight reports whether a generation call is outstanding in s.
func (s State) InFlight() bool {
	return s == StateGenerating || s == StateRevising || s == StateBooking
}

// EventFor maps a router action onto the event that starts it.
func EventFor(a Action) (Event, bool) {
	switch a {
	case ActionGenerate:
		return EventGenerate, true
	case ActionRevise:
		return EventRevise, true
	case ActionBook:
		return EventBook, true
	}
	return "", false
}
