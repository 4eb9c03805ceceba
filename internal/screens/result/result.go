// Package result shows the scored profile a submission redirected to.
package result

import (
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	core "github.com/abhisek/perfil/internal/questionnaire"
	"github.com/abhisek/perfil/internal/router"
	"github.com/abhisek/perfil/internal/screen"
	"github.com/abhisek/perfil/internal/ui/components"
	"github.com/abhisek/perfil/internal/ui/layout"
	"github.com/abhisek/perfil/internal/ui/theme"
)

const (
	tickInterval = 30 * time.Millisecond
	slideStart   = 16 // columns the card starts to the right
	slideStep    = 2
)

type tickMsg time.Time

// Screen renders a result URL.
type Screen struct {
	target string
	result core.Result
	err    error
	offset int
	menu   components.Menu
}

var (
	_ screen.Screen          = (*Screen)(nil)
	_ screen.KeyHintProvider = (*Screen)(nil)
)

// Options are the follow-ups offered below a result.
type Options struct {
	// Restart, when non-nil, offers a fresh questionnaire.
	Restart func() screen.Screen
	// History, when non-nil, offers the list of past submissions.
	History func() screen.Screen
}

// New parses target.
func New(target string, opts Options) *Screen {
	res, err := core.ParseResultURL(target)
	s := &Screen{target: target, result: res, err: err, offset: slideStart}

	var items []components.MenuItem
	if opts.Restart != nil {
		restart := opts.Restart
		items = append(items, components.MenuItem{
			Label: "Take it again",
			Action: func() tea.Cmd {
				next := restart()
				return func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
			},
		})
	}
	if opts.History != nil {
		history := opts.History
		items = append(items, components.MenuItem{
			Label: "Past results",
			Action: func() tea.Cmd {
				next := history()
				return func() tea.Msg { return router.PushScreenMsg{Screen: next} }
			},
		})
	}
	items = append(items, components.MenuItem{Label: "Quit", Action: func() tea.Cmd { return tea.Quit }})
	s.menu = components.NewMenu(items)
	return s
}

// Target returns the URL the screen was built from.
func (s *Screen) Target() string { return s.target }

// Result returns the parsed result.
func (s *Screen) Result() core.Result { return s.result }

func (s *Screen) Init() tea.Cmd { return tick() }

func (s *Screen) Title() string { return "Your profile" }

func (s *Screen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		s.offset = max(0, s.offset-slideStep)
		if s.offset > 0 {
			return s, tick()
		}
		return s, nil

	case tea.KeyPressMsg:
		// Any key finishes the entrance before reaching the menu.
		if s.offset > 0 {
			s.offset = 0
			return s, nil
		}
		var cmd tea.Cmd
		s.menu, cmd = s.menu.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *Screen) View(width, height int) string {
	cw := components.ContentWidth(width)

	var body string
	if s.err != nil {
		body = theme.Notice.Render("Could not read the result.") + "\n\n" +
			theme.Hint.Render(s.target)
	} else {
		var b strings.Builder
		b.WriteString(theme.Title.Render(s.result.Profile))
		b.WriteString("\n\n")
		b.WriteString(theme.Highlight.Render(fmt.Sprintf("Score: %s", core.FormatScore(s.result.Score))))
		b.WriteString("\n\n")
		b.WriteString(lipgloss.NewStyle().Width(cw - 6).Foreground(theme.Text).Render(s.result.Description))
		body = b.String()
	}

	card := components.Card(body, cw)
	if s.offset > 0 {
		card = lipgloss.NewStyle().PaddingLeft(s.offset).Render(card)
	}

	content := card + "\n\n" + s.menu.View()
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
