package tui

import (
	"github.com/mark3labs/campus/internal/tui/theme"
)

// Standard key representations for consistent hints across the app.
const (
	KeyUpDown   = "↑/↓"
	KeyLeftRt   = "←/→"
	KeyEnter    = "enter"
	KeyEsc      = "esc"
	KeyTab      = "tab"
	KeyCtrlC    = "ctrl+c"
	KeyCtrlN    = "ctrl+n"
	KeyCtrlP    = "ctrl+p"
	KeyCtrlS    = "ctrl+s"
	KeyCtrlA    = "ctrl+a"
	KeyCtrlD    = "ctrl+d"
	KeyCtrlU    = "ctrl+u"
	KeyCtrlE    = "ctrl+e"
	KeyCtrlY    = "ctrl+y"
	KeyN        = "n"
	KeyPgUpDown = "pgup/pgdn"
)

// RenderHint renders a single key-description pair.
// Example: RenderHint("enter", "select") -> "enter select"
func RenderHint(key, desc string) string {
	s := theme.Current().S()
	return s.HintKey.Render(key) + " " + s.HintDesc.Render(desc)
}

// RenderHintBar renders a hint bar with multiple key-description pairs.
// Pairs are separated by " . ".
// Example: RenderHintBar("up/down", "scroll", "esc", "back")
// Returns: "up/down scroll . esc back"
func RenderHintBar(pairs ...string) string {
	if len(pairs) == 0 || len(pairs)%2 != 0 {
		return ""
	}

	s := theme.Current().S()
	var result string

	for i := 0; i < len(pairs); i += 2 {
		if i > 0 {
			result += " " + s.HintSeparator.Render(".") + " "
		}
		result += s.HintKey.Render(pairs[i]) + " " + s.HintDesc.Render(pairs[i+1])
	}

	return result
}

// HintWizard returns the navigation hints of the create wizard.
func HintWizard(terminal bool) []string {
	if terminal {
		return []string{KeyCtrlP, "back", KeyCtrlS, "create", KeyEsc, "cancel"}
	}
	return []string{KeyTab, "next field", KeyCtrlP, "back", KeyCtrlN, "next", KeyEsc, "cancel"}
}

// HintList returns hints for the school list.
func HintList() string {
	return RenderHintBar(KeyUpDown, "select", KeyEnter, "open", KeyN, "new school", KeyCtrlC, "quit")
}

// HintDetail returns hints for the school detail view.
func HintDetail(cardOpen bool) string {
	if cardOpen {
		return RenderHintBar(KeyPgUpDown, "scroll", KeyEsc, "close")
	}
	return RenderHintBar(KeyUpDown, "scholarship", KeyEnter, "open", KeyEsc, "back")
}
