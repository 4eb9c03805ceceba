// Package questionnaire holds the navigation, validation and submission state
// machine of a paginated single-choice questionnaire.
//
// A Controller is driven from one goroutine (the UI event loop). The only
// work that may leave that goroutine is Request.Do, which touches no
// controller state; its outcome must be handed back through Resolve.
package questionnaire

import (
	"context"

	"github.com/rs/zerolog"
)

// DefaultResultsPath is the results view the controller redirects to.
const DefaultResultsPath = "/resultado"

// Controller owns the cursor, the committed answers and the submission flag.
type Controller struct {
	questions   []Question
	answers     AnswerMap
	current     int
	phase       Phase
	view        View
	submitter   Submitter
	resultsPath string
	log         zerolog.Logger
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger attaches a logger. The default discards everything.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Controller) { c.log = l }
}

// WithResultsPath overrides DefaultResultsPath.
func WithResultsPath(p string) Option {
	return func(c *Controller) {
		if p != "" {
			c.resultsPath = p
		}
	}
}

// New builds a controller over questions and renders the initial view. With
// zero questions the controller is unavailable: it shows the diagnostic and
// ignores every later call.
func New(questions []Question, view View, submitter Submitter, opts ...Option) *Controller {
	qs := make([]Question, len(questions))
	copy(qs, questions)

	c := &Controller{
		questions:   qs,
		answers:     make(AnswerMap),
		view:        view,
		submitter:   submitter,
		resultsPath: DefaultResultsPath,
		log:         zerolog.Nop(),
	}
	for _, o := range opts {
		o(c)
	}

	c.log.Info().Int("total", len(qs)).Msg("questionnaire loaded")

	if len(qs) == 0 {
		c.phase = PhaseUnavailable
		c.log.Error().Err(ErrNoQuestions).Msg("questionnaire unavailable")
		view.Diagnose(UserMessage(ErrNoQuestions))
		return c
	}

	c.Show(0)
	return c
}

// Total returns the number of questions.
func (c *Controller) Total() int { return len(c.questions) }

// Current returns the cursor.
func (c *Controller) Current() int { return c.current }

// Phase returns the submission state.
func (c *Controller) Phase() Phase { return c.phase }

// Questions returns the question sequence. Callers must not modify it.
func (c *Controller) Questions() []Question { return c.questions }

// Answer returns the committed answer for a question.
func (c *Controller) Answer(questionID string) (int, bool) {
	v, ok := c.answers[questionID]
	return v, ok
}

// Answers returns a copy of the committed answers.
func (c *Controller) Answers() AnswerMap {
	out := make(AnswerMap, len(c.answers))
	for k, v := range c.answers {
		out[k] = v
	}
	return out
}

// Nav returns the navigation state for the current cursor.
func (c *Controller) Nav() NavState {
	n := len(c.questions)
	if n == 0 {
		return NavState{}
	}
	last := c.current == n-1
	return NavState{
		Index:         c.current,
		Total:         n,
		BackEnabled:   c.current > 0,
		NextVisible:   !last,
		SubmitVisible: last,
		Progress:      float64(c.current+1) / float64(n),
	}
}

func (c *Controller) usable() bool {
	return c.phase != PhaseUnavailable && c.phase != PhaseDone
}

// Show makes the question at index the active one.
func (c *Controller) Show(index int) {
	if !c.usable() || index < 0 || index >= len(c.questions) {
		return
	}
	c.current = index
	c.view.Activate(index)
	c.view.Render(c.Nav())
	c.log.Debug().Int("index", index).Str("question", c.questions[index].ID).Msg("question shown")
}

// ValidateCurrent checks that the active question has a selection and, if
// so, commits it. Validation and commit are the same step.
func (c *Controller) ValidateCurrent() bool {
	if !c.usable() {
		return false
	}
	q := c.questions[c.current]
	v, ok := c.view.Selected(q.ID)
	if !ok || !q.HasOption(v) {
		return false
	}
	c.answers[q.ID] = v
	c.log.Debug().Str("question", q.ID).Int("value", v).Msg("answer committed")
	return true
}

// OnNext validates the active question and advances by one.
func (c *Controller) OnNext() {
	if !c.usable() {
		return
	}
	if !c.ValidateCurrent() {
		c.view.Notify(ErrNoSelection)
		return
	}
	if c.current < len(c.questions)-1 {
		c.Show(c.current + 1)
	}
}

// OnBack moves back one question. It never validates.
func (c *Controller) OnBack() {
	if !c.usable() {
		return
	}
	if c.current > 0 {
		c.Show(c.current - 1)
	}
}

// OnOptionChange records a selection as soon as it happens, whichever
// question is active. Unknown questions and values outside the question's
// options are ignored.
func (c *Controller) OnOptionChange(questionID string, value int) {
	if !c.usable() {
		return
	}
	for _, q := range c.questions {
		if q.ID != questionID {
			continue
		}
		if !q.HasOption(value) {
			c.log.Warn().Str("question", questionID).Int("value", value).Msg("ignored invalid option")
			return
		}
		c.answers[questionID] = value
		c.log.Debug().Str("question", questionID).Int("value", value).Msg("answer selected")
		return
	}
	c.log.Warn().Str("question", questionID).Msg("ignored selection for unknown question")
}

// Request is an in-flight submission. Do may run on any goroutine.
type Request struct {
	Answers   []int
	submitter Submitter
}

// Do performs the network round-trip.
func (r *Request) Do(ctx context.Context) (*Result, error) {
	return r.submitter.Submit(ctx, r.Answers)
}

// OnSubmit validates the last page, checks that every question has an
// answer and, if so, locks submission and returns the request to send. It
// returns nil when the submission was aborted or one is already in flight.
func (c *Controller) OnSubmit() *Request {
	if c.phase != PhaseIdle {
		return nil
	}
	if !c.ValidateCurrent() {
		c.view.Notify(ErrNoSelection)
		return nil
	}

	ordered := make([]int, 0, len(c.questions))
	for i, q := range c.questions {
		v, ok := c.answers[q.ID]
		if !ok {
			err := &UnansweredError{Index: i, QuestionID: q.ID}
			c.log.Info().Str("question", q.ID).Int("index", i).Msg("submit blocked by unanswered question")
			c.view.Notify(err)
			c.Show(i)
			return nil
		}
		ordered = append(ordered, v)
	}

	c.phase = PhaseSubmitting
	c.view.LockSubmit(true)
	c.log.Info().Ints("answers", ordered).Msg("submitting answers")
	return &Request{Answers: ordered, submitter: c.submitter}
}

// Resolve applies the outcome of a Request. A failure unlocks submission so
// the user can retry; success redirects to the results view.
func (c *Controller) Resolve(res *Result, err error) {
	if c.phase != PhaseSubmitting {
		return
	}
	if err == nil && res == nil {
		err = &ApplicationError{}
	}
	if err != nil {
		c.phase = PhaseIdle
		c.view.LockSubmit(false)
		c.log.Warn().Err(err).Msg("submission failed")
		c.view.Notify(err)
		return
	}

	c.phase = PhaseDone
	target := ResultURL(c.resultsPath, *res)
	c.log.Info().Str("profile", res.Profile).Float64("score", res.Score).Str("target", target).Msg("submission accepted")
	c.view.Redirect(target)
}

// Submit runs OnSubmit, the request and Resolve in one blocking call. It
// reports whether the controller ended up redirecting.
func (c *Controller) Submit(ctx context.Context) bool {
	req := c.OnSubmit()
	if req == nil {
		return false
	}
	res, err := req.Do(ctx)
	c.Resolve(res, err)
	return c.phase == PhaseDone
}
