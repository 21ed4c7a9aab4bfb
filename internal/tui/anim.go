package tui

import (
	"strings"
	"time"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/mark3labs/campus/internal/tui/theme"
)

// Spinner wraps bubbles spinner with convenience methods
type Spinner struct {
	model spinner.Model
}

// NewSpinner creates a new spinner with the given style
func NewSpinner(style spinner.Spinner) Spinner {
	t := theme.Current()
	s := spinner.New(
		spinner.WithSpinner(style),
		spinner.WithStyle(lipgloss.NewStyle().Foreground(lipgloss.Color(t.Primary))),
	)
	return Spinner{model: s}
}

// NewDefaultSpinner creates a spinner with MiniDot style
func NewDefaultSpinner() Spinner {
	return NewSpinner(spinner.MiniDot)
}

// Update handles spinner tick messages
func (s *Spinner) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	s.model, cmd = s.model.Update(msg)
	return cmd
}

// View renders the current spinner frame
func (s *Spinner) View() string {
	return s.model.View()
}

// Tick returns the tick command to start animation
func (s *Spinner) Tick() tea.Cmd {
	return s.model.Tick
}

// GradientSpinnerMsg is sent on each gradient spinner tick
type GradientSpinnerMsg struct{}

// GradientSpinner renders an animated gradient bar followed by a label.
// It keeps ticking only while active.
type GradientSpinner struct {
	frame  int
	size   int
	colorA string
	colorB string
	label  string
	active bool
}

// NewGradientSpinner creates a gradient spinner with default size
func NewGradientSpinner(colorA, colorB string) GradientSpinner {
	return GradientSpinner{
		size:   12,
		colorA: colorA,
		colorB: colorB,
	}
}

// Start activates the spinner and returns its first tick. Starting an
// active spinner only updates the label.
func (g *GradientSpinner) Start(label string) tea.Cmd {
	g.label = label
	if g.active {
		return nil
	}
	g.active = true
	g.frame = 0
	return g.Tick()
}

// SetLabel replaces the text shown after the bar.
func (g *GradientSpinner) SetLabel(label string) {
	g.label = label
}

// Stop deactivates the spinner; the pending tick is dropped.
func (g *GradientSpinner) Stop() {
	g.active = false
}

// IsActive returns whether the spinner is animating
func (g *GradientSpinner) IsActive() bool {
	return g.active
}

// View renders the gradient spinner as an animated string
func (g *GradientSpinner) View() string {
	var b strings.Builder
	for i := 0; i < g.size; i++ {
		// Position in gradient shifted by frame for animation
		pos := float64((i+g.frame)%g.size) / float64(g.size)
		colorHex := theme.InterpolateColor(g.colorA, g.colorB, pos)
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(colorHex)).Render("▪"))
	}

	if g.label != "" {
		t := theme.Current()
		labelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(t.FgBase))
		return b.String() + " " + labelStyle.Render(g.label)
	}
	return b.String()
}

// Tick returns a command that sends a GradientSpinnerMsg after 80ms
func (g *GradientSpinner) Tick() tea.Cmd {
	return tea.Tick(80*time.Millisecond, func(t time.Time) tea.Msg {
		return GradientSpinnerMsg{}
	})
}

// Update handles gradient spinner tick messages and advances animation
func (g *GradientSpinner) Update(msg tea.Msg) tea.Cmd {
	if _, ok := msg.(GradientSpinnerMsg); !ok || !g.active {
		return nil
	}
	g.frame++
	if g.frame >= g.size {
		g.frame = 0
	}
	return g.Tick()
}
