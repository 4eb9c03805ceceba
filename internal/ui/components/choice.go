package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/perfil/internal/ui/theme"
)

// Choice is one option of a RadioGroup.
type Choice struct {
	Label string
	Value int
}

// RadioGroup is a single-select option list. Cursor is where the user is
// pointing; Checked is the picked option, or -1.
type RadioGroup struct {
	Prompt  string
	Choices []Choice
	Cursor  int
	Checked int
}

// NewRadioGroup creates a group with nothing checked.
func NewRadioGroup(prompt string, choices []Choice) RadioGroup {
	return RadioGroup{Prompt: prompt, Choices: choices, Checked: -1}
}

// Up moves the cursor up.
func (g *RadioGroup) Up() {
	if g.Cursor > 0 {
		g.Cursor--
	}
}

// Down moves the cursor down.
func (g *RadioGroup) Down() {
	if g.Cursor < len(g.Choices)-1 {
		g.Cursor++
	}
}

// Check picks option i and moves the cursor onto it. Out-of-range i is ignored.
func (g *RadioGroup) Check(i int) bool {
	if i < 0 || i >= len(g.Choices) {
		return false
	}
	g.Checked = i
	g.Cursor = i
	return true
}

// CheckValue picks the first option carrying v.
func (g *RadioGroup) CheckValue(v int) bool {
	for i, c := range g.Choices {
		if c.Value == v {
			return g.Check(i)
		}
	}
	return false
}

// Value returns the checked option's value.
func (g RadioGroup) Value() (int, bool) {
	if g.Checked < 0 || g.Checked >= len(g.Choices) {
		return 0, false
	}
	return g.Choices[g.Checked].Value, true
}

// View renders the prompt and options.
func (g RadioGroup) View(width int) string {
	var b strings.Builder

	prompt := lipgloss.NewStyle().
		Foreground(theme.Text).
		Bold(true).
		Width(width).
		Render(g.Prompt)
	b.WriteString(prompt)
	b.WriteString("\n\n")

	for i, c := range g.Choices {
		mark := "( )"
		if i == g.Checked {
			mark = "(•)"
		}
		prefix := "  "
		if i == g.Cursor {
			prefix = "▸ "
		}
		line := fmt.Sprintf("%s%s %d. %s", prefix, mark, i+1, c.Label)

		switch {
		case i == g.Cursor:
			b.WriteString(theme.Cursor.Render(line))
		case i == g.Checked:
			b.WriteString(theme.Checked.Render(line))
		default:
			b.WriteString(theme.Unchecked.Render(line))
		}
		b.WriteString("\n")
	}
	return b.String()
}
