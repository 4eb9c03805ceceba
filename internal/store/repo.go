package store

import (
	"context"
	"time"
)

// QueryOpts configures list queries.
type QueryOpts struct {
	Limit int // max results (0 = unlimited)
}

// OptionRecord is one stored choice of a question.
type OptionRecord struct {
	Label string
	Value int
}

// QuestionRecord is one stored question with its options in display order.
type QuestionRecord struct {
	ID       string
	Text     string
	Position int
	Options  []OptionRecord
}

// QuestionRepo persists the question bank.
type QuestionRepo interface {
	// Count returns the number of stored questions.
	Count(ctx context.Context) (int, error)

	// List returns every question ordered by position.
	List(ctx context.Context) ([]QuestionRecord, error)

	// Replace swaps the whole bank for qs in one transaction.
	Replace(ctx context.Context, qs []QuestionRecord) error

	// SeedIfEmpty stores qs only when the bank is empty. It reports whether
	// anything was written.
	SeedIfEmpty(ctx context.Context, qs []QuestionRecord) (bool, error)
}

// SubmissionEventData captures one submission attempt.
type SubmissionEventData struct {
	ID          string
	Answers     []int
	Success     bool
	Status      int
	Profile     string
	Score       float64
	Description string
	Error       string
	LatencyMs   int64
}

// SubmissionRecord is a stored submission attempt.
type SubmissionRecord struct {
	SubmissionEventData
	Sequence  int64
	Timestamp time.Time
	Total     int
}

// ProfileCount is how many successful submissions landed on a profile.
type ProfileCount struct {
	Profile string
	Count   int
}

// SubmissionRepo provides append and query access to submission attempts.
type SubmissionRepo interface {
	// Append records a submission attempt.
	Append(ctx context.Context, data SubmissionEventData) error

	// List returns attempts newest first.
	List(ctx context.Context, opts QueryOpts) ([]SubmissionRecord, error)

	// ProfileCounts tallies successful attempts per profile, most common first.
	ProfileCounts(ctx context.Context) ([]ProfileCount, error)
}
