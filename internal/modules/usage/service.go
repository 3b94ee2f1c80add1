package usage

import (
	"context"
	"time"

	"go.uber.org/zap"

	"voyager/internal/modules/travel"
)

const recordTimeout = 3 * time.Second

// Service records generation calls and reports on them.
type Service struct {
	store    *Store
	provider string
	log      *zap.Logger
	now      func() time.Time
}

// NewService creates a Service labelling every event with provider.
func NewService(store *Store, provider string, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: store, provider: provider, log: logger, now: time.Now}
}

// Observe implements travel.Observer. A ledger failure is logged and never surfaces to the caller.
func (s *Service) Observe(ctx context.Context, action travel.Action, elapsed time.Duration, err error) {
	e := Event{
		Action:    string(action),
		Provider:  s.provider,
		Outcome:   travel.OutcomeOf(err),
		Duration:  elapsed,
		CallerUID: callerFrom(ctx),
		CreatedAt: s.now().UTC(),
	}
	// The request may already be cancelled; the row is still written.
	wctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), recordTimeout)
	defer cancel()
	if werr := s.store.Insert(wctx, e); werr != nil {
		s.log.Warn("usage ledger write failed", zap.String("action", e.Action), zap.Error(werr))
	}
}

// Summary returns per action/outcome counts since the given time.
func (s *Service) Summary(ctx context.Context, since time.Time) ([]SummaryRow, error) {
	return s.store.Summary(ctx, since)
}

