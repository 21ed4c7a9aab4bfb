package tui

import (
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/mark3labs/campus/internal/school"
	"github.com/mark3labs/campus/internal/tui/theme"
	"github.com/mark3labs/campus/internal/wizard"
)

// infoField describes one text input of the school information step.
type infoField struct {
	field       string
	label       string
	placeholder string
	charLimit   int
	image       bool
}

var infoFields = []infoField{
	{school.FieldLogo, "Logo", "Image URL or local file (ctrl+u uploads)", 1024, true},
	{school.FieldBackground, "Background", "Image URL or local file (ctrl+u uploads)", 1024, true},
	{school.FieldName, "Name", "e.g. Hanoi University of Science", school.MaxNameLength, false},
	{school.FieldShort, "Short name", "e.g. HUS", school.MaxShortLength, false},
	{school.FieldColor, "Brand color", school.DefaultColor, 7, false},
}

const labelWidth = 14

// infoStep edits the school information: images, names, color and country.
type infoStep struct {
	inputs    []textinput.Model
	countries []school.Country
	country   int // -1 when none is selected
	focus     int // len(inputs) is the country selector
	focused   bool
	errs      wizard.FieldErrors
	width     int
	height    int
}

func newInfoStep() *infoStep {
	inputs := make([]textinput.Model, len(infoFields))
	for i, f := range infoFields {
		ti := textinput.New()
		ti.Prompt = "› "
		ti.Placeholder = f.placeholder
		ti.CharLimit = f.charLimit
		inputs[i] = ti
	}
	inputs[len(inputs)-1].SetValue(school.DefaultColor)

	return &infoStep{
		inputs:    inputs,
		countries: school.Countries(),
		country:   -1,
	}
}

func (s *infoStep) Init() tea.Cmd {
	return textinput.Blink
}

func (s *infoStep) countryFocused() bool {
	return s.focus == len(s.inputs)
}

func (s *infoStep) fieldAt(i int) string {
	if i == len(s.inputs) {
		return school.FieldCountry
	}
	return infoFields[i].field
}

func (s *infoStep) Update(msg tea.Msg) tea.Cmd {
	if !s.focused {
		return nil
	}

	if msg, ok := msg.(tea.KeyPressMsg); ok {
		switch msg.String() {
		case "tab", "enter", "down":
			return s.move(1)
		case "shift+tab", "up":
			return s.move(-1)
		case "ctrl+u":
			if s.countryFocused() || !infoFields[s.focus].image {
				return nil
			}
			value := strings.TrimSpace(s.inputs[s.focus].Value())
			if value == "" || isRemote(value) {
				return nil
			}
			return requestUpload(infoFields[s.focus].field, []string{value})
		}

		if s.countryFocused() {
			switch msg.String() {
			case "left":
				s.cycleCountry(-1)
			case "right", "space":
				s.cycleCountry(1)
			}
			return nil
		}

		delete(s.errs, s.fieldAt(s.focus))
	}

	if s.countryFocused() {
		return nil
	}
	if paste, ok := msg.(tea.PasteMsg); ok {
		delete(s.errs, s.fieldAt(s.focus))
		msg = tea.PasteMsg{Content: collapseNewlines(SanitizePaste(paste.Content))}
	}
	var cmd tea.Cmd
	s.inputs[s.focus], cmd = s.inputs[s.focus].Update(msg)
	return cmd
}

func (s *infoStep) move(delta int) tea.Cmd {
	n := len(s.inputs) + 1
	return s.focusIndex((s.focus + delta + n) % n)
}

func (s *infoStep) cycleCountry(delta int) {
	n := len(s.countries)
	if s.country < 0 {
		if delta > 0 {
			s.country = 0
		} else {
			s.country = n - 1
		}
	} else {
		s.country = (s.country + delta + n) % n
	}
	delete(s.errs, school.FieldCountry)
}

func (s *infoStep) focusIndex(i int) tea.Cmd {
	for j := range s.inputs {
		s.inputs[j].Blur()
	}
	s.focus = i
	s.focused = true
	if s.countryFocused() {
		return nil
	}
	return s.inputs[i].Focus()
}

func (s *infoStep) Focus(field string) tea.Cmd {
	for i := 0; i <= len(s.inputs); i++ {
		if s.fieldAt(i) == field {
			return s.focusIndex(i)
		}
	}
	return s.focusIndex(0)
}

func (s *infoStep) Blur() {
	s.focused = false
	for i := range s.inputs {
		s.inputs[i].Blur()
	}
}

func (s *infoStep) SetErrors(errs wizard.FieldErrors) {
	s.errs = errs
}

func (s *infoStep) Load(f school.FormData) {
	values := []string{f.Logo, f.Background, f.Name, f.Short, f.Color}
	for i, v := range values {
		s.inputs[i].SetValue(v)
	}
	s.country = -1
	if c, ok := school.LookupCountry(f.Country); ok {
		for i := range s.countries {
			if s.countries[i].Code == c.Code {
				s.country = i
			}
		}
	}
}

func (s *infoStep) Apply(f *school.FormData) {
	f.Logo = strings.TrimSpace(s.inputs[0].Value())
	f.Background = strings.TrimSpace(s.inputs[1].Value())
	f.Name = strings.TrimSpace(s.inputs[2].Value())
	f.Short = strings.TrimSpace(s.inputs[3].Value())
	f.Color = strings.TrimSpace(s.inputs[4].Value())
	f.Country = ""
	if s.country >= 0 {
		f.Country = s.countries[s.country].Name
	}
}

func (s *infoStep) ApplyUpload(target string, paths, urls []string) {
	for i, f := range infoFields {
		if f.field != target {
			continue
		}
		refs := replaceUploaded([]string{strings.TrimSpace(s.inputs[i].Value())}, paths, urls)
		s.inputs[i].SetValue(refs[0])
		delete(s.errs, target)
	}
}

func (s *infoStep) SetSize(width, height int) {
	s.width = width
	s.height = height
	inputWidth := width - labelWidth - 4
	if inputWidth < 10 {
		inputWidth = 10
	}
	for i := range s.inputs {
		s.inputs[i].SetWidth(inputWidth)
	}
}

func (s *infoStep) Hints() []string {
	if s.countryFocused() {
		return []string{KeyLeftRt, "country"}
	}
	if infoFields[s.focus].image {
		return []string{KeyCtrlU, "upload"}
	}
	return nil
}

func (s *infoStep) View() string {
	st := theme.Current().S()
	var rows []string

	label := func(i int, text string) string {
		style := st.FieldLabel
		if s.focused && s.focus == i {
			style = st.FieldLabelFocused
		}
		return style.Width(labelWidth).Render(text)
	}
	errLine := func(field string) {
		if msg := s.errs[field]; msg != "" {
			rows = append(rows, lipgloss.NewStyle().PaddingLeft(labelWidth).Render(st.FieldError.Render("✗ "+msg)))
		}
	}

	for i, f := range infoFields {
		value := s.inputs[i].View()
		if f.field == school.FieldColor {
			value += "  " + colorSwatch(s.inputs[i].Value())
		}
		rows = append(rows, label(i, f.label)+value)
		errLine(f.field)
	}

	country := st.Muted.Render("‹ choose a country ›")
	if s.country >= 0 {
		c := s.countries[s.country]
		country = st.Text.Render("‹ "+c.Name+" ›") + " " + st.Muted.Render(c.Flag)
	}
	rows = append(rows, label(len(s.inputs), "Country")+country)
	errLine(school.FieldCountry)

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// colorSwatch renders a small sample of a hex color, or nothing when the
// value is not a valid color yet.
func colorSwatch(hex string) string {
	hex = strings.TrimSpace(hex)
	if len(hex) != 7 || hex[0] != '#' {
		return ""
	}
	return lipgloss.NewStyle().
		Background(lipgloss.Color(hex)).
		Foreground(lipgloss.Color(theme.ContrastText(hex))).
		Padding(0, 1).
		Render(strings.ToUpper(hex))
}
