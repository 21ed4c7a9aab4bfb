package tui

import (
	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/mark3labs/campus/internal/school"
	"github.com/mark3labs/campus/internal/tui/theme"
	"github.com/mark3labs/campus/internal/wizard"
)

// previewStep shows the captured draft before it is submitted.
type previewStep struct {
	viewport viewport.Model
	draft    school.FormData
	hasDraft bool
	raw      bool
	width    int
	height   int
}

func newPreviewStep() *previewStep {
	vp := viewport.New()
	vp.MouseWheelEnabled = true
	return &previewStep{viewport: vp}
}

// SetDraft replaces the previewed draft.
func (p *previewStep) SetDraft(draft school.FormData) {
	p.draft = draft
	p.hasDraft = true
	p.refresh()
	p.viewport.GotoTop()
}

func (p *previewStep) refresh() {
	if !p.hasDraft {
		p.viewport.SetContent(theme.Current().S().Muted.Render("Nothing to preview yet."))
		return
	}
	if p.raw {
		p.viewport.SetContent(syntaxHighlight(schoolYAML(p.draft), "school.yaml"))
		return
	}
	p.viewport.SetContent(renderMarkdown(schoolMarkdown(p.draft), p.width))
}

func (p *previewStep) Init() tea.Cmd {
	return nil
}

func (p *previewStep) Update(msg tea.Msg) tea.Cmd {
	if msg, ok := msg.(tea.KeyPressMsg); ok && msg.String() == "ctrl+y" {
		p.raw = !p.raw
		p.refresh()
		return nil
	}
	var cmd tea.Cmd
	p.viewport, cmd = p.viewport.Update(msg)
	return cmd
}

func (p *previewStep) View() string {
	mode := "Formatted"
	if p.raw {
		mode = "YAML"
	}
	st := theme.Current().S()
	return lipgloss.JoinVertical(lipgloss.Left,
		st.Muted.Render("Review the information below, then create the school. View: "+mode),
		p.viewport.View(),
	)
}

func (p *previewStep) SetSize(width, height int) {
	p.width = width
	p.height = height
	p.viewport.SetWidth(width)
	vh := height - 1
	if vh < 3 {
		vh = 3
	}
	p.viewport.SetHeight(vh)
	p.refresh()
}

func (p *previewStep) Focus(string) tea.Cmd         { return nil }
func (p *previewStep) Blur()                        {}
func (p *previewStep) SetErrors(wizard.FieldErrors) {}
func (p *previewStep) Load(school.FormData)         {}
func (p *previewStep) Apply(*school.FormData)       {}

func (p *previewStep) ApplyUpload(string, []string, []string) {}

func (p *previewStep) Hints() []string {
	return []string{KeyCtrlY, "toggle yaml", KeyPgUpDown, "scroll"}
}
