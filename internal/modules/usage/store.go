package usage

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DB is the subset of *pgxpool.Pool the store uses.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// Store handles generation_events persistence.
type Store struct {
	db DB
}

// NewStore returns a Store backed by the given connection pool.
func NewStore(db DB) *Store {
	return &Store{db: db}
}

// Insert appends one event to the ledger.
func (s *Store) Insert(ctx context.Context, e Event) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO generation_events (action, provider, outcome, duration_ms, caller_uid, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, e.Action, e.Provider, e.Outcome, e.Duration.Milliseconds(), nullable(e.CallerUID), e.CreatedAt)
	return err
}

// Summary aggregates events created at or after since, ordered by action then outcome.
func (s *Store) Summary(ctx context.Context, since time.Time) ([]SummaryRow, error) {
	rows, err := s.db.Query(ctx, `
		SELECT action, outcome, COUNT(*), COALESCE(AVG(duration_ms), 0)::float8
		FROM generation_events
		WHERE created_at >= $1
		GROUP BY action, outcome
		ORDER BY action, outcome
	`, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []SummaryRow{}
	for rows.Next() {
		var r SummaryRow
		if err := rows.Scan(&r.Action, &r.Outcome, &r.Count, &r.AvgDurationMs); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
