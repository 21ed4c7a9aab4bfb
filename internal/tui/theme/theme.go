// Package theme holds the TUI color palette and the pre-built styles
// derived from it.
package theme

import (
	"sync"

	"charm.land/lipgloss/v2"
)

// Theme defines the color palette for the TUI.
type Theme struct {
	Name   string
	IsDark bool

	// Semantic colors
	Primary   string // lipgloss.Color takes a hex string
	Secondary string

	// Background hierarchy (dark→light)
	BgBase     string
	BgMantle   string
	BgSurface0 string
	BgSurface1 string

	// Foreground hierarchy (dim→bright)
	FgMuted  string
	FgSubtle string
	FgBase   string
	FgBright string

	// Borders
	BorderDefault string
	BorderFocused string

	// Status colors
	Success string
	Warning string
	Error   string
	Info    string

	// Lazy-built styles
	styles     *Styles
	stylesOnce sync.Once
}

var (
	currentMu sync.RWMutex
	current   = NewCatppuccinMocha()
)

// Current returns the active theme.
func Current() *Theme {
	currentMu.RLock()
	defer currentMu.RUnlock()
	return current
}

// SetCurrent replaces the active theme.
func SetCurrent(t *Theme) {
	currentMu.Lock()
	defer currentMu.Unlock()
	current = t
}

// S returns the pre-built styles for this theme.
// Styles are lazily initialized on first call.
func (t *Theme) S() *Styles {
	t.stylesOnce.Do(func() {
		t.styles = t.buildStyles()
	})
	return t.styles
}

func (t *Theme) buildStyles() *Styles {
	c := lipgloss.Color
	return &Styles{
		HeaderTitle: lipgloss.NewStyle().Foreground(c(t.Primary)).Bold(true),
		Breadcrumb:  lipgloss.NewStyle().Foreground(c(t.FgSubtle)),

		StepCompletedID:    lipgloss.NewStyle().Foreground(c(t.Primary)),
		StepCompletedLabel: lipgloss.NewStyle().Foreground(c(t.FgSubtle)),
		StepActiveID:       lipgloss.NewStyle().Foreground(c(t.Secondary)).Bold(true),
		StepActiveLabel:    lipgloss.NewStyle().Foreground(c(t.Secondary)).Bold(true),
		StepUpcomingID:     lipgloss.NewStyle().Foreground(c(t.FgMuted)),
		StepUpcomingLabel:  lipgloss.NewStyle().Foreground(c(t.FgMuted)),
		StepBarDone:        lipgloss.NewStyle().Foreground(c(t.Primary)),
		StepBarActive:      lipgloss.NewStyle().Foreground(c(t.Secondary)),
		StepBarTodo:        lipgloss.NewStyle().Foreground(c(t.BgSurface1)),

		FieldLabel:        lipgloss.NewStyle().Foreground(c(t.FgSubtle)),
		FieldLabelFocused: lipgloss.NewStyle().Foreground(c(t.Secondary)).Bold(true),
		FieldError:        lipgloss.NewStyle().Foreground(c(t.Error)).Bold(true),
		InputBox: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(c(t.BorderDefault)).
			Padding(0, 1),
		InputBoxFocused: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(c(t.BorderFocused)).
			Padding(0, 1),
		InputBoxError: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(c(t.Error)).
			Padding(0, 1),

		ButtonNormal: lipgloss.NewStyle().
			Foreground(c(t.FgBase)).
			Background(c(t.BgSurface0)).
			Padding(0, 2).
			MarginLeft(1).
			MarginRight(1),
		ButtonDisabled: lipgloss.NewStyle().
			Foreground(c(t.FgMuted)).
			Background(c(t.BgMantle)).
			Padding(0, 2).
			MarginLeft(1).
			MarginRight(1),
		ButtonFocused: lipgloss.NewStyle().
			Foreground(c(t.BgBase)).
			Background(c(t.Secondary)).
			Bold(true).
			Padding(0, 2).
			MarginLeft(1).
			MarginRight(1),

		HintKey:       lipgloss.NewStyle().Foreground(c(t.FgSubtle)).Bold(true),
		HintDesc:      lipgloss.NewStyle().Foreground(c(t.FgMuted)),
		HintSeparator: lipgloss.NewStyle().Foreground(c(t.BgSurface1)),

		ToastSuccess: lipgloss.NewStyle().
			Foreground(c(t.BgBase)).
			Background(c(t.Success)).
			Padding(0, 1).
			Bold(true),
		ToastError: lipgloss.NewStyle().
			Foreground(c(t.BgBase)).
			Background(c(t.Error)).
			Padding(0, 1).
			Bold(true),

		Card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(c(t.BorderDefault)).
			Padding(0, 1),
		CardActive: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(c(t.BorderFocused)).
			Padding(0, 1),
		SectionTitle: lipgloss.NewStyle().Foreground(c(t.Primary)).Bold(true).MarginTop(1),
		Muted:        lipgloss.NewStyle().Foreground(c(t.FgMuted)),
		Text:         lipgloss.NewStyle().Foreground(c(t.FgBase)),
		Selected:     lipgloss.NewStyle().Foreground(c(t.Secondary)).Bold(true),
		Spinner:      lipgloss.NewStyle().Foreground(c(t.Primary)),
	}
}
