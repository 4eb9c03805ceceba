package questionnaire

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/perfil/internal/ui/components"
	"github.com/abhisek/perfil/internal/ui/theme"
)

func (s *Screen) View(width, height int) string {
	if s.diagnostic != "" {
		return s.renderDiagnostic(width, height)
	}
	if len(s.groups) == 0 {
		return ""
	}

	cw := components.ContentWidth(width)
	var b strings.Builder

	b.WriteString(components.NewStepBar(s.nav.Index, s.nav.Total, cw).View())
	b.WriteString("\n\n")

	b.WriteString(components.Card(s.groups[s.active].View(cw-6), cw))
	b.WriteString("\n")

	if s.notice != "" {
		b.WriteString(theme.Notice.Render(s.notice))
	}
	b.WriteString("\n\n")

	b.WriteString(s.renderButtons())

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, b.String())
}

func (s *Screen) renderButtons() string {
	back := components.NewButton("Back", s.nav.BackEnabled && !s.locked)
	next := components.Button{Label: "Next", Active: !s.locked, Hidden: !s.nav.NextVisible}
	submit := components.Button{
		Label:     "Submit",
		Active:    !s.locked,
		Hidden:    !s.nav.SubmitVisible,
		Busy:      s.locked,
		BusyLabel: s.spinner.View() + " Submitting...",
	}

	parts := []string{back.View()}
	for _, btn := range []components.Button{next, submit} {
		if v := btn.View(); v != "" {
			parts = append(parts, "  ", v)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Center, parts...)
}

func (s *Screen) renderDiagnostic(width, height int) string {
	panel := theme.Diagnostic.Render(s.diagnostic + "\n\n" +
		theme.Hint.Render("Check the question bank file or run `perfil questions import`."))
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, panel)
}
