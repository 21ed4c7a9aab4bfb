package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/mark3labs/campus/internal/logger"
	"github.com/mark3labs/campus/internal/school"
	"github.com/mark3labs/campus/internal/tui/theme"
)

type schoolLoadedMsg struct {
	id     string
	school school.School
	err    error
}

// SchoolDetail is the /schools/{id} page. Scholarships are listed as cards;
// enter expands the active card and esc closes it.
type SchoolDetail struct {
	ctx      context.Context
	schools  Schools
	id       string
	school   school.School
	loaded   bool
	err      error
	cursor   int
	open     bool
	viewport viewport.Model
	width    int
	height   int
}

// NewSchoolDetail creates the detail page for id.
func NewSchoolDetail(ctx context.Context, schools Schools, id string) *SchoolDetail {
	vp := viewport.New()
	vp.MouseWheelEnabled = true
	return &SchoolDetail{ctx: ctx, schools: schools, id: id, viewport: vp}
}

func (d *SchoolDetail) Init() tea.Cmd {
	ctx, schools, id := d.ctx, d.schools, d.id
	return func() tea.Msg {
		s, err := schools.Get(ctx, id)
		return schoolLoadedMsg{id: id, school: s, err: err}
	}
}

// Title is the school name once loaded.
func (d *SchoolDetail) Title() string {
	if !d.loaded || d.err != nil {
		return ""
	}
	return d.school.Name
}

func (d *SchoolDetail) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case schoolLoadedMsg:
		if msg.id != d.id {
			return nil
		}
		if errors.Is(msg.err, school.ErrNotFound) {
			logger.Info("School %s not found, redirecting", d.id)
			return tea.Batch(ShowToast(ToastError, "School not found"), Navigate(PathSchools))
		}
		d.loaded = true
		d.school = msg.school
		d.err = msg.err
		return nil

	case tea.KeyPressMsg:
		if d.open {
			switch msg.String() {
			case "esc":
				d.open = false
				return nil
			}
			var cmd tea.Cmd
			d.viewport, cmd = d.viewport.Update(msg)
			return cmd
		}

		switch msg.String() {
		case "up", "k":
			if d.cursor > 0 {
				d.cursor--
			}
		case "down", "j":
			if d.cursor < len(d.school.Scholarships)-1 {
				d.cursor++
			}
		case "enter":
			if d.cursor < len(d.school.Scholarships) {
				d.openCard()
			}
		case "esc":
			return Navigate(PathSchools)
		}
	}
	return nil
}

// CardOpen reports whether a scholarship card is expanded.
func (d *SchoolDetail) CardOpen() bool {
	return d.open
}

func (d *SchoolDetail) openCard() {
	s := d.school.Scholarships[d.cursor]
	var b strings.Builder
	if s.Description != "" {
		b.WriteString(s.Description + "\n")
	}
	if s.URL != "" {
		fmt.Fprintf(&b, "\n[Apply](%s)\n", s.URL)
	}
	d.viewport.SetContent(renderMarkdown(b.String(), d.width-4))
	d.viewport.GotoTop()
	d.open = true
}

func (d *SchoolDetail) SetSize(width, height int) {
	d.width = width
	d.height = height
	d.viewport.SetWidth(width - 4)
	vh := height / 2
	if vh < 3 {
		vh = 3
	}
	d.viewport.SetHeight(vh)
}

func (d *SchoolDetail) Hints() string {
	return HintDetail(d.open)
}

func (d *SchoolDetail) View() string {
	st := theme.Current().S()
	switch {
	case !d.loaded:
		return st.Muted.Render("Loading school…")
	case d.err != nil:
		return st.FieldError.Render("✗ Could not load school: " + d.err.Error())
	}

	s := d.school
	country := s.Country
	if c, ok := school.LookupCountry(s.Country); ok {
		country = c.Name
	}
	sections := []string{
		lipgloss.JoinHorizontal(lipgloss.Top, colorSwatch(s.Color), " ", st.Text.Render(s.Short+" · "+country)),
		st.Muted.Render(fmt.Sprintf("/%s · created %s", s.Slug, s.CreatedAt.Format("2006-01-02"))),
	}

	sections = append(sections, st.SectionTitle.Render("Locations"))
	for _, l := range s.Locations {
		sections = append(sections, "  "+st.Text.Render(l.Name)+st.Muted.Render("  "+l.Address))
	}

	sections = append(sections, st.SectionTitle.Render("Programs"))
	for _, p := range s.Programs {
		line := "  " + st.Text.Render(p.Name)
		if p.Description != "" {
			line += st.Muted.Render("  " + p.Description)
		}
		sections = append(sections, line)
	}

	if len(s.Galleries) > 0 {
		sections = append(sections, st.SectionTitle.Render("Galleries"))
		for _, g := range s.Galleries {
			sections = append(sections, "  "+st.Text.Render(g.Name)+st.Muted.Render(fmt.Sprintf("  %d images", len(g.Images))))
		}
	}

	sections = append(sections, st.SectionTitle.Render("Scholarships"))
	if len(s.Scholarships) == 0 {
		sections = append(sections, st.Muted.Render("  No scholarships."))
	}
	for i, sc := range s.Scholarships {
		if i == d.cursor && d.open {
			card := lipgloss.JoinVertical(lipgloss.Left, st.Selected.Render(sc.Name), d.viewport.View())
			sections = append(sections, st.CardActive.Width(d.width-2).Render(card))
			continue
		}
		prefix := "  "
		style := st.Text
		if i == d.cursor {
			prefix = st.Selected.Render("▸ ")
			style = st.Selected
		}
		sections = append(sections, prefix+style.Render(sc.Name))
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}
