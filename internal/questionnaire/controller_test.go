package questionnaire

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeView records what the controller asked the presentation to do.
type fakeView struct {
	active     int
	activated  int
	nav        NavState
	selected   map[string]int
	notices    []error
	locked     bool
	lockCalls  []bool
	diagnostic string
	redirect   string
}

func newFakeView() *fakeView {
	return &fakeView{active: -1, selected: map[string]int{}}
}

func (v *fakeView) Activate(index int) {
	v.active = index
	v.activated++
}
func (v *fakeView) Render(nav NavState) { v.nav = nav }
func (v *fakeView) Selected(id string) (int, bool) {
	val, ok := v.selected[id]
	return val, ok
}
func (v *fakeView) Notify(err error) { v.notices = append(v.notices, err) }
func (v *fakeView) LockSubmit(locked bool) {
	v.locked = locked
	v.lockCalls = append(v.lockCalls, locked)
}
func (v *fakeView) Diagnose(msg string)    { v.diagnostic = msg }
func (v *fakeView) Redirect(target string) { v.redirect = target }

// choose mimics a user checking an option: the input becomes checked and the
// change listener fires.
func (v *fakeView) choose(c *Controller, id string, val int) {
	v.selected[id] = val
	c.OnOptionChange(id, val)
}

// stubSubmitter captures submitted answers and replies with a fixed outcome.
type stubSubmitter struct {
	calls  [][]int
	result *Result
	err    error
}

func (s *stubSubmitter) Submit(_ context.Context, answers []int) (*Result, error) {
	s.calls = append(s.calls, append([]int(nil), answers...))
	return s.result, s.err
}

func threeQuestions() []Question {
	return []Question{
		{ID: "q1", Options: []int{0, 1, 2}},
		{ID: "q2", Options: []int{0, 1, 2}},
		{ID: "q3", Options: []int{0, 1, 2}},
	}
}

func TestNew_InitialNavigation(t *testing.T) {
	for n := 1; n <= 4; n++ {
		qs := make([]Question, n)
		for i := range qs {
			qs[i] = Question{ID: string(rune('a' + i)), Options: []int{1}}
		}
		v := newFakeView()
		c := New(qs, v, &stubSubmitter{})

		assert.Equal(t, 0, c.Current(), "n=%d", n)
		assert.Equal(t, 0, v.active, "n=%d", n)
		assert.False(t, v.nav.BackEnabled, "n=%d: back must be disabled", n)
		assert.Equal(t, n > 1, v.nav.NextVisible, "n=%d", n)
		assert.Equal(t, n == 1, v.nav.SubmitVisible, "n=%d", n)
		assert.InDelta(t, 1/float64(n), v.nav.Progress, 1e-9)
	}
}

func TestNew_NoQuestions(t *testing.T) {
	v := newFakeView()
	sub := &stubSubmitter{}
	c := New(nil, v, sub)

	assert.Equal(t, PhaseUnavailable, c.Phase())
	assert.Equal(t, UserMessage(ErrNoQuestions), v.diagnostic)
	assert.Equal(t, -1, v.active)

	c.OnNext()
	c.OnBack()
	c.OnOptionChange("q1", 1)
	assert.Nil(t, c.OnSubmit())
	assert.Empty(t, v.notices)
	assert.Empty(t, sub.calls)
}

func TestOnNext_WithoutSelection(t *testing.T) {
	v := newFakeView()
	c := New(threeQuestions(), v, &stubSubmitter{})

	c.OnNext()

	assert.Equal(t, 0, c.Current())
	assert.Empty(t, c.Answers())
	require.Len(t, v.notices, 1)
	assert.ErrorIs(t, v.notices[0], ErrNoSelection)
}

func TestOnNext_CommitsAndAdvances(t *testing.T) {
	v := newFakeView()
	c := New(threeQuestions(), v, &stubSubmitter{})

	// Checked input without the change listener firing: only the
	// validation commit can record it.
	v.selected["q1"] = 2
	c.OnNext()

	got, ok := c.Answer("q1")
	require.True(t, ok)
	assert.Equal(t, 2, got)
	assert.Equal(t, 1, c.Current())
	assert.True(t, v.nav.BackEnabled)
	assert.Empty(t, v.notices)
}

func TestOnNext_AtLastStays(t *testing.T) {
	v := newFakeView()
	c := New(threeQuestions(), v, &stubSubmitter{})
	c.Show(2)
	v.selected["q3"] = 1

	c.OnNext()

	assert.Equal(t, 2, c.Current())
	got, _ := c.Answer("q3")
	assert.Equal(t, 1, got)
	assert.True(t, v.nav.SubmitVisible)
	assert.False(t, v.nav.NextVisible)
}

func TestOnBack(t *testing.T) {
	v := newFakeView()
	c := New(threeQuestions(), v, &stubSubmitter{})
	c.Show(2)

	c.OnBack()
	assert.Equal(t, 1, c.Current())
	assert.Empty(t, c.Answers(), "back never commits")
	assert.Empty(t, v.notices, "back never validates")

	c.OnBack()
	c.OnBack()
	assert.Equal(t, 0, c.Current())
	assert.False(t, v.nav.BackEnabled)
}

func TestShow_OutOfRangeIgnored(t *testing.T) {
	v := newFakeView()
	c := New(threeQuestions(), v, &stubSubmitter{})
	before := v.activated

	c.Show(-1)
	c.Show(3)

	assert.Equal(t, 0, c.Current())
	assert.Equal(t, before, v.activated)
}

func TestOnOptionChange(t *testing.T) {
	v := newFakeView()
	c := New(threeQuestions(), v, &stubSubmitter{})

	// Recorded regardless of the active question.
	c.OnOptionChange("q3", 1)
	got, ok := c.Answer("q3")
	require.True(t, ok)
	assert.Equal(t, 1, got)

	// Idempotent.
	c.OnOptionChange("q3", 1)
	c.OnOptionChange("q3", 1)
	assert.Len(t, c.Answers(), 1)
	got, _ = c.Answer("q3")
	assert.Equal(t, 1, got)

	// Overwrites, never deletes.
	c.OnOptionChange("q3", 0)
	got, _ = c.Answer("q3")
	assert.Equal(t, 0, got)
}

func TestOnOptionChange_InvalidIgnored(t *testing.T) {
	v := newFakeView()
	c := New(threeQuestions(), v, &stubSubmitter{})

	c.OnOptionChange("q1", 9)
	c.OnOptionChange("nope", 1)

	assert.Empty(t, c.Answers())
}

func TestSubmit_Scenario(t *testing.T) {
	v := newFakeView()
	sub := &stubSubmitter{result: &Result{Profile: "A", Score: 7, Description: "Great fit"}}
	c := New(threeQuestions(), v, sub)

	v.choose(c, "q1", 2)
	c.OnNext()
	v.choose(c, "q2", 0)
	c.OnNext()
	v.choose(c, "q3", 1)

	ok := c.Submit(context.Background())

	require.True(t, ok)
	require.Len(t, sub.calls, 1)
	assert.Equal(t, []int{2, 0, 1}, sub.calls[0])
	assert.Equal(t, "/resultado?perfil=A&pontuacao=7&descricao=Great%20fit", v.redirect)
	assert.Equal(t, PhaseDone, c.Phase())
	assert.Equal(t, []bool{true}, v.lockCalls)
}

func TestSubmit_OrderFollowsSequence(t *testing.T) {
	v := newFakeView()
	sub := &stubSubmitter{result: &Result{Profile: "B", Score: 3}}
	c := New(threeQuestions(), v, sub)

	// Answer out of order through the eager path.
	c.OnOptionChange("q3", 2)
	c.OnOptionChange("q1", 1)
	c.OnOptionChange("q2", 0)
	c.Show(2)
	v.selected["q3"] = 2

	require.True(t, c.Submit(context.Background()))
	assert.Equal(t, []int{1, 0, 2}, sub.calls[0])
}

func TestSubmit_LastUnanswered(t *testing.T) {
	v := newFakeView()
	sub := &stubSubmitter{}
	c := New(threeQuestions(), v, sub)
	c.Show(2)

	assert.Nil(t, c.OnSubmit())
	assert.Empty(t, sub.calls)
	require.Len(t, v.notices, 1)
	assert.ErrorIs(t, v.notices[0], ErrNoSelection)
	assert.Equal(t, PhaseIdle, c.Phase())
}

func TestSubmit_EarlierUnansweredNavigates(t *testing.T) {
	v := newFakeView()
	sub := &stubSubmitter{}
	c := New(threeQuestions(), v, sub)

	v.choose(c, "q1", 1)
	c.Show(2)
	v.choose(c, "q3", 1)

	req := c.OnSubmit()

	assert.Nil(t, req)
	assert.Empty(t, sub.calls)
	assert.Equal(t, PhaseIdle, c.Phase())
	assert.Equal(t, 1, c.Current())
	assert.Equal(t, 1, v.active)
	assert.Empty(t, v.lockCalls)

	require.Len(t, v.notices, 1)
	var unanswered *UnansweredError
	require.ErrorAs(t, v.notices[0], &unanswered)
	assert.Equal(t, 1, unanswered.Index)
	assert.Equal(t, "q2", unanswered.QuestionID)
}

func TestSubmit_TransportFailureUnlocks(t *testing.T) {
	v := newFakeView()
	sub := &stubSubmitter{err: &TransportError{Status: 500}}
	c := New([]Question{{ID: "only", Options: []int{1, 2}}}, v, sub)
	v.choose(c, "only", 2)

	ok := c.Submit(context.Background())

	assert.False(t, ok)
	assert.Equal(t, PhaseIdle, c.Phase())
	assert.Equal(t, []bool{true, false}, v.lockCalls)
	assert.False(t, v.locked)
	assert.Empty(t, v.redirect)
	require.Len(t, v.notices, 1)
	assert.Equal(t, msgNetwork, UserMessage(v.notices[0]))
}

func TestSubmit_ApplicationFailureUsesServerMessage(t *testing.T) {
	v := newFakeView()
	sub := &stubSubmitter{err: &ApplicationError{Message: "invalid answers"}}
	c := New([]Question{{ID: "only", Options: []int{1}}}, v, sub)
	v.choose(c, "only", 1)

	assert.False(t, c.Submit(context.Background()))
	require.Len(t, v.notices, 1)
	assert.Equal(t, "Error: invalid answers", UserMessage(v.notices[0]))

	// The user may retry.
	sub.err = nil
	sub.result = &Result{Profile: "P", Score: 1, Description: "ok"}
	assert.True(t, c.Submit(context.Background()))
	assert.Len(t, sub.calls, 2)
}

func TestOnSubmit_InFlightGuard(t *testing.T) {
	v := newFakeView()
	sub := &stubSubmitter{}
	c := New([]Question{{ID: "only", Options: []int{1}}}, v, sub)
	v.choose(c, "only", 1)

	first := c.OnSubmit()
	require.NotNil(t, first)
	assert.Equal(t, PhaseSubmitting, c.Phase())

	assert.Nil(t, c.OnSubmit(), "second submit while in flight")
	assert.Equal(t, []bool{true}, v.lockCalls)

	c.Resolve(nil, errors.New("connection reset"))
	assert.Equal(t, PhaseIdle, c.Phase())
	assert.NotNil(t, c.OnSubmit())
}

func TestResolve_IgnoredWhenIdle(t *testing.T) {
	v := newFakeView()
	c := New(threeQuestions(), v, &stubSubmitter{})

	c.Resolve(&Result{Profile: "A"}, nil)

	assert.Empty(t, v.redirect)
	assert.Equal(t, PhaseIdle, c.Phase())
}

func TestResolve_DoneIsTerminal(t *testing.T) {
	v := newFakeView()
	sub := &stubSubmitter{result: &Result{Profile: "A", Score: 1}}
	c := New([]Question{{ID: "only", Options: []int{1}}, {ID: "two", Options: []int{1}}}, v, sub)
	v.choose(c, "only", 1)
	c.OnNext()
	v.choose(c, "two", 1)
	require.True(t, c.Submit(context.Background()))

	c.OnBack()
	assert.Equal(t, 1, c.Current())
	assert.Nil(t, c.OnSubmit())
}

func TestWithResultsPath(t *testing.T) {
	v := newFakeView()
	sub := &stubSubmitter{result: &Result{Profile: "X", Score: 2.5, Description: "a&b"}}
	c := New([]Question{{ID: "only", Options: []int{1}}}, v, sub, WithResultsPath("/results"))
	v.choose(c, "only", 1)

	require.True(t, c.Submit(context.Background()))
	assert.Equal(t, "/results?perfil=X&pontuacao=2.5&descricao=a%26b", v.redirect)
}
