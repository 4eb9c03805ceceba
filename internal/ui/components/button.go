package components

import (
	"github.com/abhisek/perfil/internal/ui/theme"
)

// Button is a styled button. Hidden buttons render as nothing.
type Button struct {
	Label     string
	Active    bool
	Hidden    bool
	Busy      bool
	BusyLabel string
}

// NewButton creates a new button.
func NewButton(label string, active bool) Button {
	return Button{Label: label, Active: active}
}

// View renders the button.
func (b Button) View() string {
	switch {
	case b.Hidden:
		return ""
	case b.Busy:
		label := b.BusyLabel
		if label == "" {
			label = b.Label
		}
		return theme.ButtonBusy.Render(label)
	case b.Active:
		return theme.ButtonActive.Render("▸ " + b.Label)
	default:
		return theme.ButtonInactive.Render(b.Label)
	}
}
