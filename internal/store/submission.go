package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
	"github.com/google/uuid"
)

// submissionRepo implements SubmissionRepo on SQLite.
type submissionRepo struct {
	db  *sql.DB
	seq *sequenceCounter
}

func (r *submissionRepo) Append(ctx context.Context, data SubmissionEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	id := data.ID
	if id == "" {
		id = uuid.New().String()
	}

	answers, err := json.Marshal(data.Answers)
	if err != nil {
		return fmt.Errorf("marshal answers: %w", err)
	}

	total := 0
	for _, a := range data.Answers {
		total += a
	}

	query, args := builder().
		Insert("submissions").
		Columns("id", "sequence", "created_at", "answers", "total", "success",
			"status", "profile", "score", "description", "error", "latency_ms").
		Values(id, seqNum, time.Now().UTC().UnixMilli(), string(answers), total, data.Success,
			data.Status, data.Profile, data.Score, data.Description, data.Error, data.LatencyMs).
		Query()

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save submission event: %w", err)
	}
	return nil
}

func (r *submissionRepo) List(ctx context.Context, opts QueryOpts) ([]SubmissionRecord, error) {
	sel := builder().
		Select("id", "sequence", "created_at", "answers", "total", "success",
			"status", "profile", "score", "description", "error", "latency_ms").
		From(entsql.Table("submissions")).
		OrderBy(entsql.Desc("sequence"))
	if opts.Limit > 0 {
		sel = sel.Limit(opts.Limit)
	}
	query, args := sel.Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query submissions: %w", err)
	}
	defer rows.Close()

	var out []SubmissionRecord
	for rows.Next() {
		var (
			rec       SubmissionRecord
			createdAt int64
			answers   string
		)
		err := rows.Scan(&rec.ID, &rec.Sequence, &createdAt, &answers, &rec.Total, &rec.Success,
			&rec.Status, &rec.Profile, &rec.Score, &rec.Description, &rec.Error, &rec.LatencyMs)
		if err != nil {
			return nil, fmt.Errorf("scan submission: %w", err)
		}
		if err := json.Unmarshal([]byte(answers), &rec.Answers); err != nil {
			return nil, fmt.Errorf("decode answers of %s: %w", rec.ID, err)
		}
		rec.Timestamp = time.UnixMilli(createdAt).UTC()
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate submissions: %w", err)
	}
	return out, nil
}

func (r *submissionRepo) ProfileCounts(ctx context.Context) ([]ProfileCount, error) {
	query, args := builder().
		Select("profile", entsql.As(entsql.Count("*"), "total")).
		From(entsql.Table("submissions")).
		Where(entsql.EQ("success", true)).
		GroupBy("profile").
		OrderBy(entsql.Desc("total"), "profile").
		Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query profile counts: %w", err)
	}
	defer rows.Close()

	var out []ProfileCount
	for rows.Next() {
		var pc ProfileCount
		if err := rows.Scan(&pc.Profile, &pc.Count); err != nil {
			return nil, fmt.Errorf("scan profile count: %w", err)
		}
		out = append(out, pc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate profile counts: %w", err)
	}
	return out, nil
}

// ClearSubmissions deletes every recorded attempt and reports how many were removed.
// The question bank is left alone.
func (s *Store) ClearSubmissions(ctx context.Context) (int64, error) {
	query, args := builder().Delete("submissions").Query()
	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("clear submissions: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("clear submissions: %w", err)
	}
	return n, nil
}
