package scoring

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/abhisek/perfil/internal/questionnaire"
	"github.com/abhisek/perfil/internal/store"
)

// RecordingSubmitter is a decorator that stores every submission attempt.
type RecordingSubmitter struct {
	inner questionnaire.Submitter
	repo  store.SubmissionRepo
	log   zerolog.Logger
}

var _ questionnaire.Submitter = (*RecordingSubmitter)(nil)

// WithRecording wraps a Submitter with submission history.
func WithRecording(s questionnaire.Submitter, repo store.SubmissionRepo, log zerolog.Logger) *RecordingSubmitter {
	return &RecordingSubmitter{inner: s, repo: repo, log: log}
}

func (r *RecordingSubmitter) Submit(ctx context.Context, answers []int) (*questionnaire.Result, error) {
	id := RequestIDFrom(ctx)
	if id == "" {
		id = uuid.New().String()
		ctx = WithRequestID(ctx, id)
	}

	start := time.Now()
	res, err := r.inner.Submit(ctx, answers)

	data := store.SubmissionEventData{
		ID:        id,
		Answers:   append([]int(nil), answers...),
		Success:   err == nil && res != nil,
		LatencyMs: time.Since(start).Milliseconds(),
	}
	if res != nil {
		data.Profile = res.Profile
		data.Score = res.Score
		data.Description = res.Description
	}
	if err != nil {
		data.Error = err.Error()
		data.Status = StatusOf(err)
	}

	// History is best effort; the caller still gets the real outcome.
	if logErr := r.repo.Append(ctx, data); logErr != nil {
		r.log.Warn().Err(logErr).Str("request_id", id).Msg("failed to record submission")
	}

	return res, err
}
