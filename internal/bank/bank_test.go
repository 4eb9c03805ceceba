package bank

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/perfil/internal/questionnaire"
	"github.com/abhisek/perfil/internal/store"
)

const sampleYAML = `
questions:
  - id: color
    text: Favourite colour?
    options:
      - {label: Red, value: 0}
      - {label: Blue, value: 2}
  - id: pet
    text: Cat or dog?
    options:
      - {label: Cat, value: 1}
      - {label: Dog, value: 5}
`

func TestParse(t *testing.T) {
	qs, err := Parse([]byte(sampleYAML))
	require.NoError(t, err)
	require.Len(t, qs, 2)

	assert.Equal(t, "color", qs[0].ID)
	assert.Equal(t, 1, qs[0].Position)
	assert.Equal(t, 2, qs[1].Position)
	assert.Equal(t, Option{Label: "Dog", Value: 5}, qs[1].Options[1])
}

func TestParse_Invalid(t *testing.T) {
	_, err := Parse([]byte("questions: [oops"))
	require.Error(t, err)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bank.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleYAML), 0o644))

	qs, err := LoadFile(path)
	require.NoError(t, err)
	assert.Len(t, qs, 2)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestMarshalRoundTrip(t *testing.T) {
	data, err := Marshal(Default())
	require.NoError(t, err)

	back, err := Parse(data)
	require.NoError(t, err)
	assert.Equal(t, Default(), back)
}

func TestCore(t *testing.T) {
	qs, err := Parse([]byte(sampleYAML))
	require.NoError(t, err)

	assert.Equal(t, []questionnaire.Question{
		{ID: "color", Options: []int{0, 2}},
		{ID: "pet", Options: []int{1, 5}},
	}, Core(qs))
}

func TestDefault(t *testing.T) {
	qs := Default()
	require.Len(t, qs, 10)

	seen := map[string]bool{}
	for i, q := range qs {
		assert.False(t, seen[q.ID], "duplicate id %s", q.ID)
		seen[q.ID] = true
		assert.Equal(t, i+1, q.Position)
		require.Len(t, q.Options, 3, "question %s", q.ID)
		for _, o := range q.Options {
			assert.GreaterOrEqual(t, o.Value, 1)
			assert.LessOrEqual(t, o.Value, 3)
		}
	}
}

func TestRecordsRoundTrip(t *testing.T) {
	assert.Equal(t, Default(), FromRecords(ToRecords(Default())))
}

// memRepo is an in-memory store.QuestionRepo.
type memRepo struct {
	recs []store.QuestionRecord
}

func (m *memRepo) Count(context.Context) (int, error) { return len(m.recs), nil }
func (m *memRepo) List(context.Context) ([]store.QuestionRecord, error) {
	return m.recs, nil
}
func (m *memRepo) Replace(_ context.Context, qs []store.QuestionRecord) error {
	m.recs = qs
	return nil
}
func (m *memRepo) SeedIfEmpty(ctx context.Context, qs []store.QuestionRecord) (bool, error) {
	if len(m.recs) > 0 {
		return false, nil
	}
	return true, m.Replace(ctx, qs)
}

func TestLoad_SeedsEmptyStore(t *testing.T) {
	repo := &memRepo{}
	qs, err := Load(context.Background(), repo, "")
	require.NoError(t, err)
	assert.Equal(t, Default(), qs)
	assert.Len(t, repo.recs, 10)
}

func TestLoad_FileWins(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bank.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleYAML), 0o644))

	repo := &memRepo{}
	qs, err := Load(context.Background(), repo, path)
	require.NoError(t, err)
	assert.Len(t, qs, 2)
	assert.Empty(t, repo.recs, "file load must not touch the store")
}
