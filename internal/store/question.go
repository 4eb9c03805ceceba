package store

import (
	"context"
	"database/sql"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"
)

// questionRepo implements QuestionRepo on SQLite.
type questionRepo struct {
	db *sql.DB
}

func (r *questionRepo) Count(ctx context.Context) (int, error) {
	query, args := builder().
		Select(entsql.Count("*")).
		From(entsql.Table("questions")).
		Query()

	var n int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count questions: %w", err)
	}
	return n, nil
}

func (r *questionRepo) List(ctx context.Context) ([]QuestionRecord, error) {
	query, args := builder().
		Select("id", "text", "position").
		From(entsql.Table("questions")).
		OrderBy("position", "id").
		Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query questions: %w", err)
	}
	defer rows.Close()

	var out []QuestionRecord
	index := make(map[string]int)
	for rows.Next() {
		var q QuestionRecord
		if err := rows.Scan(&q.ID, &q.Text, &q.Position); err != nil {
			return nil, fmt.Errorf("scan question: %w", err)
		}
		index[q.ID] = len(out)
		out = append(out, q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate questions: %w", err)
	}
	if len(out) == 0 {
		return nil, nil
	}

	query, args = builder().
		Select("question_id", "label", "value").
		From(entsql.Table("options")).
		OrderBy("question_id", "position").
		Query()

	optRows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query options: %w", err)
	}
	defer optRows.Close()

	for optRows.Next() {
		var qid string
		var o OptionRecord
		if err := optRows.Scan(&qid, &o.Label, &o.Value); err != nil {
			return nil, fmt.Errorf("scan option: %w", err)
		}
		i, ok := index[qid]
		if !ok {
			continue
		}
		out[i].Options = append(out[i].Options, o)
	}
	if err := optRows.Err(); err != nil {
		return nil, fmt.Errorf("iterate options: %w", err)
	}
	return out, nil
}

func (r *questionRepo) Replace(ctx context.Context, qs []QuestionRecord) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	if err := replaceQuestions(ctx, tx, qs); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func (r *questionRepo) SeedIfEmpty(ctx context.Context, qs []QuestionRecord) (bool, error) {
	n, err := r.Count(ctx)
	if err != nil {
		return false, err
	}
	if n > 0 {
		return false, nil
	}
	if err := r.Replace(ctx, qs); err != nil {
		return false, fmt.Errorf("seed questions: %w", err)
	}
	return true, nil
}

func replaceQuestions(ctx context.Context, tx *sql.Tx, qs []QuestionRecord) error {
	for _, table := range []string{"options", "questions"} {
		query, args := builder().Delete(table).Query()
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}

	for _, q := range qs {
		query, args := builder().
			Insert("questions").
			Columns("id", "text", "position").
			Values(q.ID, q.Text, q.Position).
			Query()
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("insert question %s: %w", q.ID, err)
		}

		if len(q.Options) == 0 {
			continue
		}
		ins := builder().
			Insert("options").
			Columns("question_id", "position", "label", "value")
		for i, o := range q.Options {
			ins = ins.Values(q.ID, i, o.Label, o.Value)
		}
		query, args = ins.Query()
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("insert options for %s: %w", q.ID, err)
		}
	}
	return nil
}
