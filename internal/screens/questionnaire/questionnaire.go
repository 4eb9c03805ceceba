// Package questionnaire is the terminal view of the questionnaire
// controller.
package questionnaire

import (
	"context"
	"fmt"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/rs/zerolog"

	"github.com/abhisek/perfil/internal/bank"
	core "github.com/abhisek/perfil/internal/questionnaire"
	"github.com/abhisek/perfil/internal/router"
	"github.com/abhisek/perfil/internal/screen"
	"github.com/abhisek/perfil/internal/ui/components"
	"github.com/abhisek/perfil/internal/ui/layout"
	"github.com/abhisek/perfil/internal/ui/theme"
)

// ResultFactory builds the screen shown after a successful submission.
type ResultFactory func(target string) screen.Screen

// Options configures a Screen.
type Options struct {
	Questions   []bank.Question
	Submitter   core.Submitter
	Results     ResultFactory
	ResultsPath string
	Logger      zerolog.Logger
}

// Screen shows one question at a time and implements core.View.
type Screen struct {
	questions []bank.Question
	groups    []components.RadioGroup
	index     map[string]int

	ctrl    *core.Controller
	results ResultFactory

	active     int
	nav        core.NavState
	notice     string
	diagnostic string
	locked     bool
	redirectTo string

	spinner spinner.Model
}

var (
	_ screen.Screen          = (*Screen)(nil)
	_ screen.KeyHintProvider = (*Screen)(nil)
	_ screen.StatusProvider  = (*Screen)(nil)
	_ core.View              = (*Screen)(nil)
)

// New creates the screen and its controller.
func New(opts Options) *Screen {
	s := &Screen{
		questions: opts.Questions,
		groups:    make([]components.RadioGroup, len(opts.Questions)),
		index:     make(map[string]int, len(opts.Questions)),
		results:   opts.Results,
		spinner: spinner.New(
			spinner.WithSpinner(spinner.MiniDot),
			spinner.WithStyle(lipgloss.NewStyle().Foreground(theme.Primary)),
		),
	}
	for i, q := range opts.Questions {
		choices := make([]components.Choice, len(q.Options))
		for j, o := range q.Options {
			choices[j] = components.Choice{Label: o.Label, Value: o.Value}
		}
		s.groups[i] = components.NewRadioGroup(q.Text, choices)
		s.index[q.ID] = i
	}

	s.ctrl = core.New(bank.Core(opts.Questions), s, opts.Submitter,
		core.WithLogger(opts.Logger),
		core.WithResultsPath(opts.ResultsPath),
	)
	return s
}

// Controller exposes the underlying controller.
func (s *Screen) Controller() *core.Controller { return s.ctrl }

// core.View

func (s *Screen) Activate(index int) { s.active = index }

func (s *Screen) Render(nav core.NavState) { s.nav = nav }

func (s *Screen) Selected(questionID string) (int, bool) {
	i, ok := s.index[questionID]
	if !ok {
		return 0, false
	}
	return s.groups[i].Value()
}

func (s *Screen) Notify(err error) { s.notice = core.UserMessage(err) }

func (s *Screen) LockSubmit(locked bool) { s.locked = locked }

func (s *Screen) Diagnose(msg string) { s.diagnostic = msg }

func (s *Screen) Redirect(target string) { s.redirectTo = target }

// screen.Screen

func (s *Screen) Init() tea.Cmd { return nil }

func (s *Screen) Title() string { return "Questionnaire" }

func (s *Screen) Status() string {
	if s.nav.Total == 0 {
		return ""
	}
	return fmt.Sprintf("%d / %d", s.nav.Index+1, s.nav.Total)
}

func (s *Screen) KeyHints() []layout.KeyHint {
	if s.diagnostic != "" {
		return []layout.KeyHint{{Key: "Esc", Description: "Back"}}
	}
	if s.locked {
		return []layout.KeyHint{{Key: "Ctrl+C", Description: "Quit"}}
	}
	hints := []layout.KeyHint{
		{Key: "↑↓", Description: "Move"},
		{Key: "Space/1-9", Description: "Choose"},
	}
	if s.nav.BackEnabled {
		hints = append(hints, layout.KeyHint{Key: "←", Description: "Back"})
	}
	if s.nav.NextVisible {
		hints = append(hints, layout.KeyHint{Key: "→/Enter", Description: "Next"})
	}
	if s.nav.SubmitVisible {
		hints = append(hints, layout.KeyHint{Key: "Enter", Description: "Submit"})
	}
	return hints
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case submitDoneMsg:
		s.ctrl.Resolve(msg.Result, msg.Err)
		return s, s.redirect()

	case spinner.TickMsg:
		if !s.locked {
			return s, nil
		}
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(msg)
		return s, cmd

	case tea.KeyPressMsg:
		return s, s.handleKey(msg)
	}
	return s, nil
}

func (s *Screen) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	if s.locked || s.diagnostic != "" || s.ctrl.Phase() != core.PhaseIdle {
		return nil
	}
	g := &s.groups[s.active]

	key := msg.String()
	switch key {
	case "up", "k":
		g.Up()
	case "down", "j":
		g.Down()
	case "space", " ", "x":
		s.choose(g.Cursor)
	case "1", "2", "3", "4", "5", "6", "7", "8", "9":
		s.choose(int(key[0] - '1'))
	case "left", "b", "h":
		s.notice = ""
		s.ctrl.OnBack()
	case "right", "n", "l", "tab":
		if s.nav.NextVisible {
			s.notice = ""
			s.ctrl.OnNext()
		}
	case "enter":
		s.notice = ""
		if s.nav.SubmitVisible {
			return s.submit()
		}
		s.ctrl.OnNext()
	case "s":
		if s.nav.SubmitVisible {
			s.notice = ""
			return s.submit()
		}
	}
	return nil
}

// choose checks option i of the active question and records it at once.
func (s *Screen) choose(i int) {
	g := &s.groups[s.active]
	if !g.Check(i) {
		return
	}
	s.notice = ""
	v, _ := g.Value()
	s.ctrl.OnOptionChange(s.questions[s.active].ID, v)
}

func (s *Screen) submit() tea.Cmd {
	req := s.ctrl.OnSubmit()
	if req == nil {
		return nil
	}
	// The submitter bounds the request itself.
	send := func() tea.Msg {
		res, err := req.Do(context.Background())
		return submitDoneMsg{Result: res, Err: err}
	}
	return tea.Batch(s.spinner.Tick, send)
}

func (s *Screen) redirect() tea.Cmd {
	if s.redirectTo == "" || s.results == nil {
		return nil
	}
	next := s.results(s.redirectTo)
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: next}
	}
}
