// Package headless drives the questionnaire controller without a terminal,
// answering from a fixed script.
package headless

import (
	"context"
	"errors"
	"fmt"

	core "github.com/abhisek/perfil/internal/questionnaire"
)

// ErrStopped means the script could not get the controller to submit.
var ErrStopped = errors.New("questionnaire stopped before submitting")

// scriptedView answers question i with values[i].
type scriptedView struct {
	ids     map[string]int
	values  []int
	current int
	nav     core.NavState
	locked  bool

	lastErr    error
	diagnostic string
	target     string
}

func (v *scriptedView) Activate(index int)       { v.current = index }
func (v *scriptedView) Render(nav core.NavState) { v.nav = nav }
func (v *scriptedView) Notify(err error)         { v.lastErr = err }
func (v *scriptedView) LockSubmit(locked bool)   { v.locked = locked }
func (v *scriptedView) Diagnose(msg string)      { v.diagnostic = msg }
func (v *scriptedView) Redirect(target string)   { v.target = target }

func (v *scriptedView) Selected(questionID string) (int, bool) {
	i, ok := v.ids[questionID]
	if !ok || i >= len(v.values) {
		return 0, false
	}
	return v.values[i], true
}

// Run answers every question with values, in order, and submits. It returns
// the result URL on success. Any failure is returned as the controller's
// error; use core.UserMessage for the text a user would have seen.
func Run(ctx context.Context, questions []core.Question, values []int, sub core.Submitter, opts ...core.Option) (string, error) {
	v := &scriptedView{ids: make(map[string]int, len(questions)), values: values}
	for i, q := range questions {
		v.ids[q.ID] = i
	}

	ctrl := core.New(questions, v, sub, opts...)
	if ctrl.Phase() == core.PhaseUnavailable {
		return "", core.ErrNoQuestions
	}

	for v.nav.NextVisible {
		before := ctrl.Current()
		ctrl.OnNext()
		if v.lastErr != nil {
			return "", fmt.Errorf("question %d: %w", before+1, v.lastErr)
		}
	}

	if !ctrl.Submit(ctx) {
		if v.lastErr != nil {
			return "", v.lastErr
		}
		return "", ErrStopped
	}
	return v.target, nil
}
