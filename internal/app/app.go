package app

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/rs/zerolog"

	"github.com/abhisek/perfil/internal/bank"
	core "github.com/abhisek/perfil/internal/questionnaire"
	"github.com/abhisek/perfil/internal/router"
	"github.com/abhisek/perfil/internal/screen"
	"github.com/abhisek/perfil/internal/screens/history"
	"github.com/abhisek/perfil/internal/screens/questionnaire"
	"github.com/abhisek/perfil/internal/screens/result"
	"github.com/abhisek/perfil/internal/screens/welcome"
	"github.com/abhisek/perfil/internal/store"
	"github.com/abhisek/perfil/internal/ui/layout"
)

// Options holds the dependencies of the TUI.
type Options struct {
	Questions   []bank.Question
	Submitter   core.Submitter
	ResultsPath string
	Logger      zerolog.Logger

	// History backs the past results screen. Nil hides it.
	History store.SubmissionRepo
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	width  int
	height int
}

// newAppModel starts on the welcome screen.
func newAppModel(opts Options) AppModel {
	var newQuestionnaire func() screen.Screen
	newResult := func(target string) screen.Screen {
		ro := result.Options{Restart: newQuestionnaire}
		if opts.History != nil {
			ro.History = func() screen.Screen { return history.New(opts.History) }
		}
		return result.New(target, ro)
	}
	newQuestionnaire = func() screen.Screen {
		return questionnaire.New(questionnaire.Options{
			Questions:   opts.Questions,
			Submitter:   opts.Submitter,
			Results:     newResult,
			ResultsPath: opts.ResultsPath,
			Logger:      opts.Logger,
		})
	}

	return AppModel{
		router: router.New(welcome.New(newQuestionnaire, len(opts.Questions))),
	}
}

func (m AppModel) Init() tea.Cmd {
	if active := m.router.Active(); active != nil {
		return active.Init()
	}
	return nil
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "esc":
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	var title, status string
	if active != nil {
		title = active.Title()
		if sp, ok := active.(screen.StatusProvider); ok {
			status = sp.Status()
		}
	}
	header := layout.RenderHeader(title, status, m.width)

	footerHints := []layout.KeyHint{
		{Key: "Ctrl+C", Description: "Quit"},
	}
	if kp, ok := active.(screen.KeyHintProvider); ok {
		if hints := kp.KeyHints(); len(hints) > 0 {
			footerHints = hints
		}
	}
	footer := layout.RenderFooter(footerHints, m.width)

	contentHeight := m.height - lipgloss.Height(header) - lipgloss.Height(footer)
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	v.SetContent(layout.RenderFrame(header, content, footer, m.width, m.height))
	return v
}

// Run starts the Bubble Tea program and blocks until it exits.
func Run(opts Options) error {
	opts.Logger.Info().Int("questions", len(opts.Questions)).Msg("starting terminal ui")
	p := tea.NewProgram(newAppModel(opts))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run program: %w", err)
	}
	return nil
}
