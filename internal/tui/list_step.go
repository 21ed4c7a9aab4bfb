package tui

import (
	"fmt"
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/mark3labs/campus/internal/school"
	"github.com/mark3labs/campus/internal/tui/theme"
	"github.com/mark3labs/campus/internal/wizard"
)

// Column kinds of a collection editor.
const (
	colText     = iota
	colImage    // single image, ctrl+u uploads
	colImages   // comma separated images, ctrl+u uploads
	colMarkdown // ctrl+e opens $EDITOR
)

type listColumn struct {
	key         string
	label       string
	placeholder string
	kind        int
}

// listRow is one item of the collection. id is stable across deletions so
// async results find their row.
type listRow struct {
	id     int
	inputs []textinput.Model
	text   map[string]string // full multi-line text of markdown cells
}

// listStep is a collection editor used by the locations, programs,
// galleries and scholarships steps.
type listStep struct {
	field    string
	noun     string
	intro    string
	columns  []listColumn
	minRows  int
	rows     []listRow
	nextID   int
	row, col int
	focused  bool
	err      string
	width    int
	height   int

	load  func(f school.FormData) []map[string]string
	apply func(f *school.FormData, items []map[string]string)
}

func newLocationsStep() *listStep {
	return newListStep(&listStep{
		field: school.FieldLocations,
		noun:  "Location",
		intro: "Add every campus of the school.",
		columns: []listColumn{
			{key: "name", label: "Name", placeholder: "e.g. Main campus"},
			{key: "address", label: "Address", placeholder: "Street, district, city"},
			{key: "images", label: "Images", placeholder: "Comma separated URLs or files", kind: colImages},
		},
		minRows: 1,
		load: func(f school.FormData) []map[string]string {
			var items []map[string]string
			for _, l := range f.Locations {
				items = append(items, map[string]string{"name": l.Name, "address": l.Address, "images": strings.Join(l.Images, ", ")})
			}
			return items
		},
		apply: func(f *school.FormData, items []map[string]string) {
			f.Locations = nil
			for _, it := range items {
				f.Locations = append(f.Locations, school.Location{Name: it["name"], Address: it["address"], Images: splitList(it["images"])})
			}
		},
	})
}

func newProgramsStep() *listStep {
	return newListStep(&listStep{
		field: school.FieldPrograms,
		noun:  "Program",
		intro: "Add the study programs offered by the school.",
		columns: []listColumn{
			{key: "name", label: "Name", placeholder: "e.g. Computer Science"},
			{key: "description", label: "Description", placeholder: "Short summary"},
			{key: "cover", label: "Cover", placeholder: "Image URL or file", kind: colImage},
		},
		minRows: 1,
		load: func(f school.FormData) []map[string]string {
			var items []map[string]string
			for _, p := range f.Programs {
				items = append(items, map[string]string{"name": p.Name, "description": p.Description, "cover": p.Cover})
			}
			return items
		},
		apply: func(f *school.FormData, items []map[string]string) {
			f.Programs = nil
			for _, it := range items {
				f.Programs = append(f.Programs, school.Program{Name: it["name"], Description: it["description"], Cover: it["cover"]})
			}
		},
	})
}

func newGalleriesStep() *listStep {
	return newListStep(&listStep{
		field: school.FieldGalleries,
		noun:  "Gallery",
		intro: "Galleries are optional. Press ctrl+a to add one.",
		columns: []listColumn{
			{key: "name", label: "Name", placeholder: "e.g. Campus life"},
			{key: "description", label: "Description", placeholder: "Optional"},
			{key: "images", label: "Images", placeholder: "Comma separated URLs or files", kind: colImages},
		},
		load: func(f school.FormData) []map[string]string {
			var items []map[string]string
			for _, g := range f.Galleries {
				items = append(items, map[string]string{"name": g.Name, "description": g.Description, "images": strings.Join(g.Images, ", ")})
			}
			return items
		},
		apply: func(f *school.FormData, items []map[string]string) {
			f.Galleries = nil
			for _, it := range items {
				f.Galleries = append(f.Galleries, school.Gallery{Name: it["name"], Description: it["description"], Images: splitList(it["images"])})
			}
		},
	})
}

func newScholarshipsStep() *listStep {
	return newListStep(&listStep{
		field: school.FieldScholarships,
		noun:  "Scholarship",
		intro: "Scholarships are optional. Press ctrl+a to add one.",
		columns: []listColumn{
			{key: "name", label: "Name", placeholder: "e.g. Excellence Award"},
			{key: "description", label: "Description", placeholder: "Markdown (ctrl+e opens $EDITOR)", kind: colMarkdown},
			{key: "cover", label: "Cover", placeholder: "Image URL or file", kind: colImage},
			{key: "url", label: "Link", placeholder: "https://"},
		},
		load: func(f school.FormData) []map[string]string {
			var items []map[string]string
			for _, s := range f.Scholarships {
				items = append(items, map[string]string{"name": s.Name, "description": s.Description, "cover": s.Cover, "url": s.URL})
			}
			return items
		},
		apply: func(f *school.FormData, items []map[string]string) {
			f.Scholarships = nil
			for _, it := range items {
				f.Scholarships = append(f.Scholarships, school.Scholarship{Name: it["name"], Description: it["description"], Cover: it["cover"], URL: it["url"]})
			}
		},
	})
}

func newListStep(s *listStep) *listStep {
	for len(s.rows) < s.minRows {
		s.addRow(nil)
	}
	return s
}

func (s *listStep) addRow(values map[string]string) {
	inputs := make([]textinput.Model, len(s.columns))
	for i, c := range s.columns {
		ti := textinput.New()
		ti.Prompt = "› "
		ti.Placeholder = c.placeholder
		ti.CharLimit = 2048
		if c.kind == colMarkdown {
			ti.CharLimit = 0
		}
		if s.width > 0 {
			ti.SetWidth(s.inputWidth())
		}
		inputs[i] = ti
	}
	s.rows = append(s.rows, listRow{id: s.nextID, inputs: inputs, text: map[string]string{}})
	s.nextID++

	r := len(s.rows) - 1
	for c, col := range s.columns {
		s.setCell(r, c, values[col.key])
	}
}

// setCell sets a cell value. Markdown cells keep the full text and show it
// on a single line.
func (s *listStep) setCell(r, c int, value string) {
	if s.columns[c].kind == colMarkdown {
		s.rows[r].text[s.columns[c].key] = value
		value = flatten(value)
	}
	s.rows[r].inputs[c].SetValue(value)
}

// cell returns a cell value. A markdown cell returns its full text unless
// it was retyped inline.
func (s *listStep) cell(r, c int) string {
	v := s.rows[r].inputs[c].Value()
	if t, ok := s.rows[r].text[s.columns[c].key]; ok && flatten(t) == v {
		return t
	}
	return v
}

func flatten(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func (s *listStep) Init() tea.Cmd {
	return textinput.Blink
}

func (s *listStep) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case editorDoneMsg:
		if r, c, ok := s.cellFor(msg.target); ok {
			s.setCell(r, c, msg.content)
		}
		return nil
	}

	if !s.focused {
		return nil
	}

	if msg, ok := msg.(tea.KeyPressMsg); ok {
		switch msg.String() {
		case "tab", "enter":
			return s.move(1)
		case "shift+tab":
			return s.move(-1)
		case "down":
			return s.moveRow(1)
		case "up":
			return s.moveRow(-1)
		case "ctrl+a":
			s.addRow(nil)
			s.err = ""
			s.row, s.col = len(s.rows)-1, 0
			return s.focusCurrent()
		case "ctrl+d":
			return s.deleteRow()
		case "ctrl+u":
			return s.upload()
		case "ctrl+e":
			if s.current() != nil && s.columns[s.col].kind == colMarkdown {
				return openEditor(s.target(s.row, s.col), s.cell(s.row, s.col))
			}
			return nil
		}
		s.err = ""
	}
	if paste, ok := msg.(tea.PasteMsg); ok {
		return s.paste(paste.Content)
	}

	in := s.current()
	if in == nil {
		return nil
	}
	var cmd tea.Cmd
	*in, cmd = in.Update(msg)
	return cmd
}

// paste inserts sanitized text into the focused cell. Multi-line text
// pasted into an empty markdown cell keeps its lines.
func (s *listStep) paste(content string) tea.Cmd {
	in := s.current()
	if in == nil {
		return nil
	}
	s.err = ""
	content = SanitizePaste(content)
	if s.columns[s.col].kind == colMarkdown && in.Value() == "" && strings.Contains(content, "\n") {
		s.setCell(s.row, s.col, content)
		return nil
	}
	var cmd tea.Cmd
	*in, cmd = in.Update(tea.PasteMsg{Content: collapseNewlines(content)})
	return cmd
}

func (s *listStep) current() *textinput.Model {
	if s.row < 0 || s.row >= len(s.rows) {
		return nil
	}
	return &s.rows[s.row].inputs[s.col]
}

// target identifies a cell by stable row id and column key.
func (s *listStep) target(row, col int) string {
	return fmt.Sprintf("%d:%s", s.rows[row].id, s.columns[col].key)
}

func (s *listStep) cellFor(target string) (int, int, bool) {
	for r := range s.rows {
		for c := range s.columns {
			if s.target(r, c) == target {
				return r, c, true
			}
		}
	}
	return 0, 0, false
}

func (s *listStep) move(delta int) tea.Cmd {
	if len(s.rows) == 0 {
		return nil
	}
	n := len(s.rows) * len(s.columns)
	pos := (s.row*len(s.columns) + s.col + delta + n) % n
	s.row, s.col = pos/len(s.columns), pos%len(s.columns)
	return s.focusCurrent()
}

func (s *listStep) moveRow(delta int) tea.Cmd {
	if len(s.rows) == 0 {
		return nil
	}
	s.row = (s.row + delta + len(s.rows)) % len(s.rows)
	return s.focusCurrent()
}

func (s *listStep) deleteRow() tea.Cmd {
	if len(s.rows) == 0 {
		return nil
	}
	s.rows = append(s.rows[:s.row], s.rows[s.row+1:]...)
	for len(s.rows) < s.minRows {
		s.addRow(nil)
	}
	if s.row >= len(s.rows) {
		s.row = len(s.rows) - 1
	}
	if s.row < 0 {
		s.row = 0
	}
	return s.focusCurrent()
}

func (s *listStep) upload() tea.Cmd {
	in := s.current()
	if in == nil {
		return nil
	}
	kind := s.columns[s.col].kind
	if kind != colImage && kind != colImages {
		return nil
	}
	paths := localPaths(splitList(in.Value()))
	if len(paths) == 0 {
		return nil
	}
	if kind == colImage {
		paths = paths[:1]
	}
	return requestUpload(s.target(s.row, s.col), paths)
}

func (s *listStep) blurAll() {
	for r := range s.rows {
		for c := range s.rows[r].inputs {
			s.rows[r].inputs[c].Blur()
		}
	}
}

func (s *listStep) focusCurrent() tea.Cmd {
	s.blurAll()
	s.focused = true
	if in := s.current(); in != nil {
		return in.Focus()
	}
	return nil
}

func (s *listStep) Focus(string) tea.Cmd {
	if s.row >= len(s.rows) {
		s.row, s.col = 0, 0
	}
	return s.focusCurrent()
}

func (s *listStep) Blur() {
	s.focused = false
	s.blurAll()
}

func (s *listStep) SetErrors(errs wizard.FieldErrors) {
	s.err = errs[s.field]
}

func (s *listStep) Load(f school.FormData) {
	s.rows = nil
	for _, values := range s.load(f) {
		s.addRow(values)
	}
	for len(s.rows) < s.minRows {
		s.addRow(nil)
	}
	s.row, s.col = 0, 0
}

// items returns the non-blank rows as column key -> trimmed value.
func (s *listStep) items() []map[string]string {
	var items []map[string]string
	for ri := range s.rows {
		item := make(map[string]string, len(s.columns))
		blank := true
		for c, col := range s.columns {
			v := strings.TrimSpace(s.cell(ri, c))
			item[col.key] = v
			if v != "" {
				blank = false
			}
		}
		if !blank {
			items = append(items, item)
		}
	}
	return items
}

func (s *listStep) Apply(f *school.FormData) {
	s.apply(f, s.items())
}

func (s *listStep) ApplyUpload(target string, paths, urls []string) {
	r, c, ok := s.cellFor(target)
	if !ok {
		return
	}
	refs := replaceUploaded(splitList(s.cell(r, c)), paths, urls)
	s.setCell(r, c, strings.Join(refs, ", "))
}

func (s *listStep) inputWidth() int {
	w := s.width - labelWidth - 6
	if w < 10 {
		w = 10
	}
	return w
}

func (s *listStep) SetSize(width, height int) {
	s.width = width
	s.height = height
	for r := range s.rows {
		for c := range s.rows[r].inputs {
			s.rows[r].inputs[c].SetWidth(s.inputWidth())
		}
	}
}

func (s *listStep) Hints() []string {
	hints := []string{KeyCtrlA, "add", KeyCtrlD, "remove"}
	if len(s.rows) == 0 {
		return hints[:2]
	}
	switch s.columns[s.col].kind {
	case colImage, colImages:
		hints = append(hints, KeyCtrlU, "upload")
	case colMarkdown:
		hints = append(hints, KeyCtrlE, "editor")
	}
	return hints
}

func (s *listStep) View() string {
	st := theme.Current().S()
	lines := []string{st.Muted.Render(s.intro)}
	if s.err != "" {
		lines = append(lines, st.FieldError.Render("✗ "+s.err))
	}

	if len(s.rows) == 0 {
		lines = append(lines, "", st.Muted.Render(fmt.Sprintf("No %s added.", strings.ToLower(s.noun))))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	// Show a window of rows that keeps the focused one visible.
	block := len(s.columns) + 2
	visible := 1
	if s.height > 0 {
		visible = (s.height - len(lines)) / block
	}
	if visible < 1 {
		visible = 1
	}
	start := 0
	if s.row >= visible {
		start = s.row - visible + 1
	}
	end := start + visible
	if end > len(s.rows) || s.height == 0 {
		end = len(s.rows)
	}

	if start > 0 {
		lines = append(lines, st.Muted.Render(fmt.Sprintf("↑ %d more", start)))
	}
	for r := start; r < end; r++ {
		title := st.SectionTitle.Render(fmt.Sprintf("%s %d", s.noun, r+1))
		if s.focused && r == s.row {
			title = st.Selected.Render("▸ ") + title
		}
		lines = append(lines, title)
		for c, col := range s.columns {
			style := st.FieldLabel
			if s.focused && r == s.row && c == s.col {
				style = st.FieldLabelFocused
			}
			lines = append(lines, "  "+style.Width(labelWidth).Render(col.label)+s.rows[r].inputs[c].View())
		}
	}
	if end < len(s.rows) {
		lines = append(lines, st.Muted.Render(fmt.Sprintf("↓ %d more", len(s.rows)-end)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}
