package tui

import (
	"os"
	"strings"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/editor"
	"github.com/mark3labs/campus/internal/school"
	"github.com/mark3labs/campus/internal/wizard"
)

// stepView renders the body of one wizard step and edits its part of the
// form. Steps never touch the draft; the controller snapshots them through
// Apply.
type stepView interface {
	Init() tea.Cmd
	Update(msg tea.Msg) tea.Cmd
	View() string
	SetSize(width, height int)

	// Focus focuses field, or the first input when field is empty or unknown.
	Focus(field string) tea.Cmd
	Blur()
	SetErrors(errs wizard.FieldErrors)

	// Load fills the inputs from f; Apply writes them back.
	Load(f school.FormData)
	Apply(f *school.FormData)

	// ApplyUpload replaces uploaded local paths of target with their URLs.
	ApplyUpload(target string, paths, urls []string)
	Hints() []string
}

// newStepViews returns the step renderer lookup table, indexed like
// school.Steps().
func newStepViews() []stepView {
	return []stepView{
		newInfoStep(),
		newLocationsStep(),
		newProgramsStep(),
		newGalleriesStep(),
		newScholarshipsStep(),
		newPreviewStep(),
	}
}

// uploadRequestMsg asks the wizard to upload local image files for target.
type uploadRequestMsg struct {
	target string
	paths  []string
}

func requestUpload(target string, paths []string) tea.Cmd {
	return func() tea.Msg {
		return uploadRequestMsg{target: target, paths: paths}
	}
}

// editorDoneMsg carries content edited in the external editor.
type editorDoneMsg struct {
	target  string
	content string
}

// openEditor opens content in $EDITOR and reports the edited text.
func openEditor(target, content string) tea.Cmd {
	tmpfile, err := os.CreateTemp("", "campus_*.md")
	if err != nil {
		return nil
	}
	if _, err := tmpfile.WriteString(content); err != nil {
		_ = tmpfile.Close()
		_ = os.Remove(tmpfile.Name())
		return nil
	}
	_ = tmpfile.Close()

	cmd, err := editor.Command("campus", tmpfile.Name())
	if err != nil {
		_ = os.Remove(tmpfile.Name())
		return nil
	}

	return tea.ExecProcess(cmd, func(err error) tea.Msg {
		defer func() { _ = os.Remove(tmpfile.Name()) }()
		if err != nil {
			return ShowToastMsg{Text: "Editor failed: " + err.Error(), Kind: ToastError}
		}
		data, err := os.ReadFile(tmpfile.Name())
		if err != nil {
			return ShowToastMsg{Text: "Reading edited text failed", Kind: ToastError}
		}
		return editorDoneMsg{target: target, content: strings.TrimRight(string(data), "\n")}
	})
}

// splitList splits a comma separated input into trimmed non-empty items.
func splitList(s string) []string {
	var out []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

// isRemote reports whether an image reference is already a URL.
func isRemote(ref string) bool {
	return strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") || strings.HasPrefix(ref, "file://")
}

// localPaths returns the image references that still need uploading.
func localPaths(refs []string) []string {
	var out []string
	for _, r := range refs {
		if !isRemote(r) {
			out = append(out, r)
		}
	}
	return out
}

// replaceUploaded swaps each uploaded path in refs with its URL. Failed
// uploads (empty URL) keep their path so they can be retried.
func replaceUploaded(refs, paths, urls []string) []string {
	done := make(map[string]string, len(paths))
	for i, p := range paths {
		if i < len(urls) && urls[i] != "" {
			done[p] = urls[i]
		}
	}
	out := make([]string, len(refs))
	for i, r := range refs {
		if u, ok := done[r]; ok {
			out[i] = u
			continue
		}
		out[i] = r
	}
	return out
}
