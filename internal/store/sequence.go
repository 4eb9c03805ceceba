package store

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	entsql "entgo.io/ent/dialect/sql"
)

// sequenceCounter orders submission attempts. created_at only has
// millisecond resolution, so two attempts can share a timestamp.
type sequenceCounter struct {
	mu     sync.Mutex
	db     *sql.DB
	last   int64
	loaded bool
}

func newSequenceCounter(db *sql.DB) *sequenceCounter {
	return &sequenceCounter{db: db}
}

// Next returns the next sequence number. The first call resumes after the
// newest stored attempt.
func (sc *sequenceCounter) Next(ctx context.Context) (int64, error) {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	if !sc.loaded {
		query, args := builder().
			Select(entsql.Max("sequence")).
			From(entsql.Table("submissions")).
			Query()

		var last sql.NullInt64
		if err := sc.db.QueryRowContext(ctx, query, args...).Scan(&last); err != nil {
			return 0, fmt.Errorf("next sequence: %w", err)
		}
		sc.last = last.Int64
		sc.loaded = true
	}

	sc.last++
	return sc.last, nil
}
