// Package history lists past submission attempts and the profile tally.
package history

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	core "github.com/abhisek/perfil/internal/questionnaire"
	"github.com/abhisek/perfil/internal/router"
	"github.com/abhisek/perfil/internal/screen"
	"github.com/abhisek/perfil/internal/store"
	"github.com/abhisek/perfil/internal/ui/layout"
	"github.com/abhisek/perfil/internal/ui/theme"
)

const listLimit = 50

type historyLoadedMsg struct {
	Submissions []store.SubmissionRecord
	Counts      []store.ProfileCount
	Err         error
}

// HistoryScreen displays past submissions.
type HistoryScreen struct {
	repo        store.SubmissionRepo
	submissions []store.SubmissionRecord
	counts      []store.ProfileCount
	selected    int
	expanded    map[int]bool
	loaded      bool
	errMsg      string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen.
func New(repo store.SubmissionRepo) *HistoryScreen {
	return &HistoryScreen{
		repo:     repo,
		expanded: make(map[int]bool),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	repo := s.repo
	return func() tea.Msg {
		ctx := context.Background()

		subs, err := repo.List(ctx, store.QueryOpts{Limit: listLimit})
		if err != nil {
			return historyLoadedMsg{Err: err}
		}
		// The tally is a nicety; the list alone is still useful.
		counts, err := repo.ProfileCounts(ctx)
		if err != nil {
			return historyLoadedMsg{Submissions: subs}
		}
		return historyLoadedMsg{Submissions: subs, Counts: counts}
	}
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Details"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.submissions = msg.Submissions
			s.counts = msg.Counts
		}
		s.loaded = true
		return s, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < len(s.submissions)-1 {
				s.selected++
			}
		case "enter":
			s.expanded[s.selected] = !s.expanded[s.selected]
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	centered := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)
	if s.errMsg != "" {
		return centered.Foreground(theme.Error).Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return centered.Foreground(theme.TextDim).Render("\n\n  Loading history...")
	}
	if len(s.submissions) == 0 {
		return centered.Foreground(theme.TextDim).Italic(true).Render("\n\n  No submissions yet.")
	}

	var b strings.Builder
	b.WriteString("\n")

	if len(s.counts) > 0 {
		parts := make([]string, len(s.counts))
		for i, c := range s.counts {
			parts[i] = fmt.Sprintf("%s %d", c.Profile, c.Count)
		}
		b.WriteString(theme.Hint.Render("  Profiles: " + strings.Join(parts, " · ")))
		b.WriteString("\n\n")
	}

	for i, sub := range s.submissions {
		date := sub.Timestamp.Local().Format("Jan 02, 2006 15:04")

		var status string
		if sub.Success {
			status = lipgloss.NewStyle().Foreground(theme.Success).
				Render(fmt.Sprintf("%s (%s)", sub.Profile, core.FormatScore(sub.Score)))
		} else {
			status = lipgloss.NewStyle().Foreground(theme.Error).Render("failed")
		}

		line := fmt.Sprintf("  %s   total %-3d  %s", date, sub.Total, status)
		if i == s.selected {
			b.WriteString(theme.Cursor.Render("▸") + line)
		} else {
			b.WriteString(" " + line)
		}
		b.WriteString("\n")

		if s.expanded[i] {
			b.WriteString(s.renderDetails(sub))
		}
	}
	return b.String()
}

func (s *HistoryScreen) renderDetails(sub store.SubmissionRecord) string {
	dim := lipgloss.NewStyle().Foreground(theme.TextDim)
	answers := make([]string, len(sub.Answers))
	for i, a := range sub.Answers {
		answers[i] = strconv.Itoa(a)
	}

	var b strings.Builder
	b.WriteString(dim.Render("      answers: " + strings.Join(answers, ", ")))
	b.WriteString("\n")
	if sub.Success {
		b.WriteString(dim.Render("      " + sub.Description))
	} else {
		b.WriteString(dim.Render("      " + sub.Error))
	}
	b.WriteString("\n")
	b.WriteString(dim.Render(fmt.Sprintf("      %d ms  id %s", sub.LatencyMs, sub.ID)))
	b.WriteString("\n")
	return b.String()
}
