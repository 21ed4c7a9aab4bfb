package tui

import (
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/mark3labs/campus/internal/tui/theme"
)

// ButtonState represents the visual state of a button.
type ButtonState int

const (
	ButtonNormal   ButtonState = iota // Normal state (enabled)
	ButtonDisabled                    // Disabled state (grayed out)
	ButtonFocused                     // Focused/highlighted state
)

// Button represents a single button in the button bar.
type Button struct {
	Label string
	State ButtonState
}

// ButtonBar manages a set of buttons with consistent styling.
type ButtonBar struct {
	buttons []Button
	width   int
}

// NewButtonBar creates a new button bar with the given buttons.
func NewButtonBar(buttons []Button) *ButtonBar {
	return &ButtonBar{
		buttons: buttons,
		width:   60,
	}
}

// SetWidth updates the width for the button bar.
func (b *ButtonBar) SetWidth(width int) {
	b.width = width
}

// Render renders the button bar centered in its width.
func (b *ButtonBar) Render() string {
	if len(b.buttons) == 0 {
		return ""
	}

	s := theme.Current().S()
	rendered := make([]string, 0, len(b.buttons))
	for _, btn := range b.buttons {
		switch btn.State {
		case ButtonDisabled:
			rendered = append(rendered, s.ButtonDisabled.Render(btn.Label))
		case ButtonFocused:
			rendered = append(rendered, s.ButtonFocused.Render(btn.Label))
		default:
			rendered = append(rendered, s.ButtonNormal.Render(btn.Label))
		}
	}

	return lipgloss.Place(b.width, 1, lipgloss.Center, lipgloss.Center, strings.Join(rendered, ""))
}

// wizardButtons builds the Back / Next / Create set of the create wizard.
// The primary action of the active step is focused.
func wizardButtons(canBack, canNext, canCreate, terminal, busy bool) []Button {
	state := func(enabled, primary bool) ButtonState {
		switch {
		case !enabled:
			return ButtonDisabled
		case primary:
			return ButtonFocused
		default:
			return ButtonNormal
		}
	}

	createLabel := "Create"
	if busy {
		createLabel = "Creating…"
	}

	return []Button{
		{Label: "← Back", State: state(canBack, false)},
		{Label: "Next →", State: state(canNext, !terminal)},
		{Label: createLabel, State: state(canCreate, terminal)},
	}
}
