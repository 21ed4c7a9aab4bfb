package tui

import (
	"context"
	"fmt"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/mark3labs/campus/internal/school"
	"github.com/mark3labs/campus/internal/tui/theme"
)

type schoolsLoadedMsg struct {
	schools []school.School
	err     error
}

// SchoolList is the /schools page.
type SchoolList struct {
	ctx     context.Context
	schools Schools
	items   []school.School
	cursor  int
	loaded  bool
	err     error
	spinner Spinner
	width   int
	height  int
}

// NewSchoolList creates the list page.
func NewSchoolList(ctx context.Context, schools Schools) *SchoolList {
	return &SchoolList{ctx: ctx, schools: schools, spinner: NewDefaultSpinner()}
}

func (l *SchoolList) Init() tea.Cmd {
	ctx, schools := l.ctx, l.schools
	load := func() tea.Msg {
		list, err := schools.List(ctx)
		return schoolsLoadedMsg{schools: list, err: err}
	}
	return tea.Batch(load, l.spinner.Tick())
}

func (l *SchoolList) Title() string {
	return ""
}

func (l *SchoolList) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		if l.loaded {
			return nil
		}
		return l.spinner.Update(msg)

	case schoolsLoadedMsg:
		l.loaded = true
		l.items = msg.schools
		l.err = msg.err
		if l.cursor >= len(l.items) {
			l.cursor = 0
		}
		return nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "up", "k":
			if l.cursor > 0 {
				l.cursor--
			}
		case "down", "j":
			if l.cursor < len(l.items)-1 {
				l.cursor++
			}
		case "enter":
			if l.cursor < len(l.items) {
				return Navigate(PathSchools + "/" + l.items[l.cursor].ID)
			}
		case "n":
			return Navigate(PathNewSchool)
		}
	}
	return nil
}

func (l *SchoolList) SetSize(width, height int) {
	l.width = width
	l.height = height
}

func (l *SchoolList) Hints() string {
	return HintList()
}

func (l *SchoolList) View() string {
	st := theme.Current().S()
	switch {
	case !l.loaded:
		return l.spinner.View() + " " + st.Muted.Render("Loading schools…")
	case l.err != nil:
		return st.FieldError.Render("✗ Could not load schools: " + l.err.Error())
	case len(l.items) == 0:
		return st.Muted.Render("No schools yet. Press n to create one.")
	}

	lines := make([]string, 0, len(l.items))
	for i, s := range l.items {
		prefix := "  "
		nameStyle := st.Text
		if i == l.cursor {
			prefix = st.Selected.Render("▸ ")
			nameStyle = st.Selected
		}
		meta := st.Muted.Render(fmt.Sprintf("%s · %s · %d locations", s.Short, s.Country, len(s.Locations)))
		lines = append(lines, prefix+nameStyle.Render(s.Name)+"  "+meta)
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}
