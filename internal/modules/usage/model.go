package usage

import (
	"context"
	"time"
)

// Event is one row of generation_events.
type Event struct {
	Action    string
	Provider  string
	Outcome   string
	Duration  time.Duration
	CallerUID string
	CreatedAt time.Time
}

// SummaryRow aggregates events per action and outcome.
type SummaryRow struct {
	Action        string  `json:"action"`
	Outcome       string  `json:"outcome"`
	Count         int64   `json:"count"`
	AvgDurationMs float64 `json:"avgDurationMs"`
}

type callerKey struct{}

// WithCaller attaches the authenticated uid so recorded events carry it.
func WithCaller(ctx context.Context, uid string) context.Context {
	return context.WithValue(ctx, callerKey{}, uid)
}

func callerFrom(ctx context.Context) string {
	uid, _ := ctx.Value(callerKey{}).(string)
	return uid
}
