// README: Booking archive backed by PostgreSQL.
package booking

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Archive outcomes.
const (
	OutcomeCompleted = "completed"
	OutcomeCancelled = "cancelled"
)

// Store archives finished booking conversations. Live dialog state never
// touches the database; only terminal records land here.
type Store struct {
	db *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

// Archive persists the terminal state of one booking conversation. Partial
// records are allowed for cancelled bookings.
func (s *Store) Archive(ctx context.Context, conversationID, outcome string, r *Record) error {
	rec := r
	if rec == nil {
		rec = &Record{}
	}
	_, err := s.db.Exec(ctx, `
        INSERT INTO bookings (
            conversation_id, outcome, origin, destination,
            start_date, end_date, budget, initial_prompt, archived_at
        ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		conversationID,
		outcome,
		rec.Origin,
		rec.Destination,
		rec.StartDate,
		rec.EndDate,
		rec.Budget,
		rec.InitialPrompt,
		time.Now().UTC(),
	)
	return err
}

// CountByOutcome reports how many archived bookings ended with the outcome.
func (s *Store) CountByOutcome(ctx context.Context, outcome string) (int64, error) {
	var n int64
	err := s.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM bookings WHERE outcome = $1`, outcome,
	).Scan(&n)
	return n, err
}
