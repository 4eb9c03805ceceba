// Package bank loads and converts questionnaire content: the question text
// and option labels the controller itself never needs.
package bank

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/abhisek/perfil/internal/questionnaire"
	"github.com/abhisek/perfil/internal/store"
)

// Option is one choice of a question.
type Option struct {
	Label string `yaml:"label"`
	Value int    `yaml:"value"`
}

// Question is a question with its display text.
type Question struct {
	ID       string   `yaml:"id"`
	Text     string   `yaml:"text"`
	Position int      `yaml:"-"`
	Options  []Option `yaml:"options"`
}

// File is the on-disk YAML layout of a question bank.
type File struct {
	Questions []Question `yaml:"questions"`
}

// LoadFile reads a YAML question bank. Positions follow file order.
func LoadFile(path string) ([]Question, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read question bank: %w", err)
	}
	return Parse(data)
}

// Parse decodes a YAML question bank.
func Parse(data []byte) ([]Question, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse question bank: %w", err)
	}
	for i := range f.Questions {
		f.Questions[i].Position = i + 1
	}
	return f.Questions, nil
}

// Marshal encodes questions in the LoadFile layout.
func Marshal(qs []Question) ([]byte, error) {
	return yaml.Marshal(File{Questions: qs})
}

// Core projects questions onto the controller's model.
func Core(qs []Question) []questionnaire.Question {
	out := make([]questionnaire.Question, len(qs))
	for i, q := range qs {
		values := make([]int, len(q.Options))
		for j, o := range q.Options {
			values[j] = o.Value
		}
		out[i] = questionnaire.Question{ID: q.ID, Options: values}
	}
	return out
}

// ToRecords converts questions for storage.
func ToRecords(qs []Question) []store.QuestionRecord {
	out := make([]store.QuestionRecord, len(qs))
	for i, q := range qs {
		opts := make([]store.OptionRecord, len(q.Options))
		for j, o := range q.Options {
			opts[j] = store.OptionRecord{Label: o.Label, Value: o.Value}
		}
		out[i] = store.QuestionRecord{ID: q.ID, Text: q.Text, Position: q.Position, Options: opts}
	}
	return out
}

// FromRecords converts stored questions back.
func FromRecords(recs []store.QuestionRecord) []Question {
	out := make([]Question, len(recs))
	for i, r := range recs {
		opts := make([]Option, len(r.Options))
		for j, o := range r.Options {
			opts[j] = Option{Label: o.Label, Value: o.Value}
		}
		out[i] = Question{ID: r.ID, Text: r.Text, Position: r.Position, Options: opts}
	}
	return out
}

// Load returns the questions to present. A bank file, when given, wins over
// the store; an empty store is seeded with Default first.
func Load(ctx context.Context, repo store.QuestionRepo, file string) ([]Question, error) {
	if file != "" {
		return LoadFile(file)
	}

	if _, err := repo.SeedIfEmpty(ctx, ToRecords(Default())); err != nil {
		return nil, err
	}
	recs, err := repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return FromRecords(recs), nil
}
