package tui

import (
	"context"
	"errors"
	"fmt"
	"sort"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/mark3labs/campus/internal/logger"
	"github.com/mark3labs/campus/internal/school"
	"github.com/mark3labs/campus/internal/tui/theme"
	"github.com/mark3labs/campus/internal/upload"
	"github.com/mark3labs/campus/internal/wizard"
)

// submitDoneMsg is sent when a submission settles.
type submitDoneMsg struct {
	err error
}

// uploadProgressMsg carries one progress report of the running batch.
type uploadProgressMsg struct {
	batch    int
	progress upload.Progress
	ch       <-chan upload.Progress
}

// uploadDoneMsg is sent when an upload batch finishes.
type uploadDoneMsg struct {
	batch  int
	step   int
	target string
	paths  []string
	urls   []string
	err    error
}

// CreateWizard is the school creation page.
type CreateWizard struct {
	ctx      context.Context
	ctrl     *wizard.Controller[school.FormData]
	steps    []stepView
	preview  *previewStep
	outbox   *outbox
	disabler *wizard.Disabler
	uploader *upload.Uploader

	submitting bool
	uploading  bool
	batch      int
	release    func()
	progress   map[int]upload.Progress
	batchSize  int
	status     string
	busy       GradientSpinner

	width  int
	height int
}

// NewCreateWizard creates the wizard page prefilled with initial.
func NewCreateWizard(ctx context.Context, deps Deps, initial school.FormData) (*CreateWizard, error) {
	w := &CreateWizard{
		ctx:      ctx,
		steps:    newStepViews(),
		outbox:   &outbox{},
		disabler: wizard.NewDisabler(nil),
		busy:     NewGradientSpinner(theme.Current().Primary, theme.Current().Secondary),
	}
	w.preview = w.steps[len(w.steps)-1].(*previewStep)

	for _, s := range w.steps {
		s.Load(initial)
	}

	if deps.Bucket != nil {
		w.uploader = upload.NewUploader(deps.Bucket, w.disabler, deps.UploadConcurrency)
	}

	ctrl, err := wizard.New(wizard.Config[school.FormData]{
		Steps:     school.Steps(),
		Values:    w.values,
		Validator: school.Validator{},
		Creator:   deps.Schools,
		Notifier:  w.outbox,
		Navigator: w.outbox,
		Disabler:  w.disabler,
	})
	if err != nil {
		return nil, fmt.Errorf("creating wizard: %w", err)
	}
	w.ctrl = ctrl
	return w, nil
}

// values snapshots the step inputs into a fresh form.
func (w *CreateWizard) values() school.FormData {
	f := school.NewFormData()
	for _, s := range w.steps {
		s.Apply(&f)
	}
	return f
}

// Controller returns the underlying step controller.
func (w *CreateWizard) Controller() *wizard.Controller[school.FormData] {
	return w.ctrl
}

func (w *CreateWizard) active() stepView {
	return w.steps[w.ctrl.Current()]
}

func (w *CreateWizard) Init() tea.Cmd {
	cmds := make([]tea.Cmd, 0, len(w.steps)+1)
	for _, s := range w.steps {
		cmds = append(cmds, s.Init())
	}
	cmds = append(cmds, w.active().Focus(""))
	return tea.Batch(cmds...)
}

// Title is empty so the heading falls back to the nav label.
func (w *CreateWizard) Title() string {
	return ""
}

func (w *CreateWizard) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		switch msg.String() {
		case "ctrl+n":
			return w.next()
		case "ctrl+p":
			return w.previous()
		case "ctrl+s":
			return w.submit()
		case "esc":
			if w.submitting || w.uploading {
				return nil
			}
			return Navigate(PathSchools)
		}

	case GradientSpinnerMsg:
		return w.busy.Update(msg)

	case submitDoneMsg:
		w.submitting = false
		w.busy.Stop()
		w.status = ""
		var verr *wizard.ValidationError
		if errors.As(msg.err, &verr) {
			w.status = verr.Error()
		}
		if msg.err != nil {
			logger.Debug("Submission settled with error: %v", msg.err)
		}
		return tea.Batch(w.outbox.cmds()...)

	case uploadRequestMsg:
		return w.startUpload(msg)

	case uploadProgressMsg:
		// Reports buffered past the end of their batch are drained and dropped.
		if w.uploading && msg.batch == w.batch {
			w.progress[msg.progress.Index] = msg.progress
			w.busy.SetLabel(w.uploadStatus())
		}
		return waitForProgress(msg.batch, msg.ch)

	case uploadDoneMsg:
		if !w.uploading || msg.batch != w.batch {
			return nil
		}
		w.steps[msg.step].ApplyUpload(msg.target, msg.paths, msg.urls)
		w.uploading = false
		w.progress = nil
		w.busy.Stop()
		// Navigation resumes only once the URLs are in the form.
		if w.release != nil {
			w.release()
			w.release = nil
		}
		if msg.err != nil {
			logger.Warn("Upload of %d files failed: %v", len(msg.paths), msg.err)
			return ShowToast(ToastError, "Some images could not be uploaded")
		}
		return ShowToast(ToastSuccess, fmt.Sprintf("Uploaded %d images", len(msg.paths)))
	}

	return w.active().Update(msg)
}

// next validates the active step and advances on success. Failing fields
// are shown inline and the first one is focused.
func (w *CreateWizard) next() tea.Cmd {
	if w.submitting || w.uploading {
		return nil
	}
	from := w.ctrl.Current()
	err := w.ctrl.GoNext(w.ctx)

	var verr *wizard.ValidationError
	switch {
	case errors.As(err, &verr):
		step := w.steps[from]
		step.SetErrors(verr.Fields)
		return step.Focus(verr.FirstField())
	case err != nil:
		logger.Debug("Next refused: %v", err)
		return nil
	}

	return w.enter(from)
}

func (w *CreateWizard) previous() tea.Cmd {
	if w.submitting || w.uploading {
		return nil
	}
	from := w.ctrl.Current()
	if err := w.ctrl.GoPrevious(); err != nil {
		logger.Debug("Previous refused: %v", err)
		return nil
	}
	return w.enter(from)
}

// enter moves focus from the step at index from to the active step.
func (w *CreateWizard) enter(from int) tea.Cmd {
	to := w.ctrl.Current()
	if to == from {
		return nil
	}
	w.steps[from].Blur()
	w.steps[from].SetErrors(nil)
	w.status = ""

	if w.ctrl.IsTerminal() {
		if draft, ok := w.ctrl.Draft(); ok {
			w.preview.SetDraft(draft)
		}
	}
	return w.active().Focus("")
}

// submit runs the submission off the UI loop. Notifications collected by
// the outbox are replayed when it settles.
func (w *CreateWizard) submit() tea.Cmd {
	if w.submitting || !w.ctrl.CanSubmit() {
		return nil
	}
	w.submitting = true
	w.status = ""
	ctrl, ctx := w.ctrl, w.ctx
	run := func() tea.Msg {
		return submitDoneMsg{err: ctrl.Submit(ctx)}
	}
	return tea.Batch(run, w.busy.Start("Creating school…"))
}

// startUpload uploads a batch while holding the Disabler. The hold is
// released when the batch result has been applied to the owning step.
func (w *CreateWizard) startUpload(req uploadRequestMsg) tea.Cmd {
	if w.uploader == nil {
		return ShowToast(ToastError, "Image uploads are not configured")
	}
	if w.uploading || w.submitting {
		return nil
	}

	w.release = w.disabler.Raise()
	w.uploading = true
	w.batch++
	w.progress = make(map[int]upload.Progress, len(req.paths))
	w.batchSize = len(req.paths)

	ch := make(chan upload.Progress, 64)
	step := w.ctrl.Current()
	uploader, ctx, batch := w.uploader, w.ctx, w.batch

	run := func() tea.Msg {
		urls, err := uploader.Upload(ctx, req.paths, func(p upload.Progress) {
			select {
			case ch <- p:
			default: // Drop progress the UI has not caught up with
			}
		})
		close(ch)
		return uploadDoneMsg{batch: batch, step: step, target: req.target, paths: req.paths, urls: urls, err: err}
	}

	return tea.Batch(run, waitForProgress(batch, ch), w.busy.Start(w.uploadStatus()))
}

// waitForProgress listens for the next progress report of a batch.
func waitForProgress(batch int, ch <-chan upload.Progress) tea.Cmd {
	return func() tea.Msg {
		p, ok := <-ch
		if !ok {
			return nil
		}
		return uploadProgressMsg{batch: batch, progress: p, ch: ch}
	}
}

// uploadStatus summarizes the running batch.
func (w *CreateWizard) uploadStatus() string {
	var written, total int64
	done := 0
	keys := make([]int, 0, len(w.progress))
	for k := range w.progress {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	for _, k := range keys {
		p := w.progress[k]
		written += p.Written
		total += p.Total
		if p.Done {
			done++
		}
	}
	pct := 0
	if total > 0 {
		pct = int(written * 100 / total)
	}
	return fmt.Sprintf("Uploading %d/%d images… %d%%", done, w.batchSize, pct)
}

func (w *CreateWizard) SetSize(width, height int) {
	w.width = width
	w.height = height
	for _, s := range w.steps {
		s.SetSize(width, w.bodyHeight())
	}
}

// bodyHeight is the height left for the step body after the stepper,
// step header, status line and buttons.
func (w *CreateWizard) bodyHeight() int {
	h := w.height - 3 - 3 - 1 - 2
	if h < 3 {
		h = 3
	}
	return h
}

func (w *CreateWizard) Hints() string {
	pairs := w.active().Hints()
	pairs = append(pairs, HintWizard(w.ctrl.IsTerminal())...)
	return RenderHintBar(pairs...)
}

func (w *CreateWizard) View() string {
	st := theme.Current().S()
	steps := w.ctrl.Steps()
	current := w.ctrl.Current()
	step := steps[current]

	header := lipgloss.JoinVertical(lipgloss.Left,
		st.HeaderTitle.Render(step.Label),
		st.Muted.Render(fmt.Sprintf("%s of %d", step.ID, len(steps))),
	)

	body := lipgloss.NewStyle().Height(w.bodyHeight()).MaxHeight(w.bodyHeight()).Render(w.active().View())

	status := ""
	switch {
	case w.uploading || w.submitting:
		status = w.busy.View()
	case w.ctrl.Busy():
		status = st.Spinner.Render("Creating school…")
	case w.status != "":
		status = st.FieldError.Render(w.status)
	}

	bar := NewButtonBar(wizardButtons(
		w.ctrl.CanGoPrevious(),
		w.ctrl.CanGoNext(),
		w.ctrl.CanSubmit() && !w.submitting,
		w.ctrl.IsTerminal(),
		w.submitting,
	))
	bar.SetWidth(w.width)

	return lipgloss.JoinVertical(lipgloss.Left,
		renderStepper(steps, w.ctrl.Statuses(), w.width),
		"",
		header,
		"",
		body,
		status,
		bar.Render(),
	)
}
