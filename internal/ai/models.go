package ai

// Prompt is one generation request: a persona plus the task-specific instructions.
type Prompt struct {
	// Task names the kind of document requested (see the Task* constants). Providers use it
	// for logging; the fixture generator routes on it.
	Task string

	// System is the persona sent as the system instruction.
	System string

	// User carries the rendered request and the JSON shape to answer with.
	User string
}

const (
	TaskGenerateItinerary = "generate_itinerary"
	TaskReviseItinerary   = "revise_itinerary"
	TaskSimulateBookings  = "simulate_bookings"
)
