package questionnaire

import "context"

// Question is one page of the questionnaire. The option values are the
// integer scores a user can pick; exactly one may be chosen.
type Question struct {
	ID      string
	Options []int
}

// HasOption reports whether v is one of the question's option values.
func (q Question) HasOption(v int) bool {
	for _, o := range q.Options {
		if o == v {
			return true
		}
	}
	return false
}

// AnswerMap records the committed choice per question ID.
type AnswerMap map[string]int

// Phase is the submission state of the controller.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseSubmitting
	PhaseDone
	PhaseUnavailable
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseSubmitting:
		return "submitting"
	case PhaseDone:
		return "done"
	case PhaseUnavailable:
		return "unavailable"
	default:
		return "unknown"
	}
}

// NavState is what the navigation chrome should show for the current cursor.
type NavState struct {
	Index         int
	Total         int
	BackEnabled   bool
	NextVisible   bool
	SubmitVisible bool
	Progress      float64 // (Index+1)/Total
}

// Result is the server's scoring outcome.
type Result struct {
	Profile     string  `json:"profile"`
	Score       float64 `json:"score"`
	Description string  `json:"description"`
}

// View is the presentation side of the questionnaire. The controller never
// renders anything itself; it only tells the view what changed.
type View interface {
	// Activate marks the question at index as the only visible one.
	Activate(index int)

	// Render redraws progress, counter and button state.
	Render(nav NavState)

	// Selected returns the checked option value of a question's inputs.
	Selected(questionID string) (int, bool)

	// Notify surfaces a failure to the user.
	Notify(err error)

	// LockSubmit disables (true) or restores (false) the submit control.
	LockSubmit(locked bool)

	// Diagnose shows the diagnostic panel. Only used when nothing was loaded.
	Diagnose(msg string)

	// Redirect leaves the questionnaire for the results view.
	Redirect(target string)
}

// Submitter sends the ordered answers to the scoring service.
type Submitter interface {
	Submit(ctx context.Context, answers []int) (*Result, error)
}

// SubmitterFunc adapts a function to Submitter.
type SubmitterFunc func(ctx context.Context, answers []int) (*Result, error)

func (f SubmitterFunc) Submit(ctx context.Context, answers []int) (*Result, error) {
	return f(ctx, answers)
}
