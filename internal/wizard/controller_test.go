package wizard

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

// form is a map-backed form used by the controller tests.
type form struct {
	mu     sync.Mutex
	values map[string]string
}

func newForm(steps []Step) *form {
	f := &form{values: make(map[string]string)}
	for _, field := range AllFields(steps) {
		f.values[field] = "ok"
	}
	return f
}

func (f *form) set(field, value string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.values[field] = value
}

func (f *form) snapshot() map[string]string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make(map[string]string, len(f.values))
	for k, v := range f.values {
		out[k] = v
	}
	return out
}

// requiredValidator reports every empty field among the requested ones.
type requiredValidator struct {
	mu    sync.Mutex
	calls [][]string
	gate  chan struct{} // When set, validation blocks until closed
}

func (v *requiredValidator) ValidateFields(ctx context.Context, values map[string]string, fields []string) FieldErrors {
	v.mu.Lock()
	v.calls = append(v.calls, fields)
	gate := v.gate
	v.mu.Unlock()

	if gate != nil {
		<-gate
	}

	errs := FieldErrors{}
	for _, f := range fields {
		if values[f] == "" {
			errs[f] = "is required"
		}
	}
	return errs
}

type stubCreator struct {
	mu     sync.Mutex
	result Result
	err    error
	calls  int
	gate   chan struct{}
}

func (c *stubCreator) Create(ctx context.Context, draft map[string]string) (Result, error) {
	c.mu.Lock()
	c.calls++
	gate := c.gate
	c.mu.Unlock()

	if gate != nil {
		<-gate
	}
	return c.result, c.err
}

func (c *stubCreator) callCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls
}

type recorder struct {
	mu        sync.Mutex
	successes []string
	errors    []string
	paths     []string
}

func (r *recorder) Success(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.successes = append(r.successes, msg)
}

func (r *recorder) Error(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.errors = append(r.errors, msg)
}

func (r *recorder) GoTo(path string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.paths = append(r.paths, path)
}

func sixSteps() []Step {
	return []Step{
		{ID: "Step 1", Label: "Information", Fields: []string{"logo", "background", "name", "short", "color", "country"}},
		{ID: "Step 2", Label: "Locations", Fields: []string{"locations"}},
		{ID: "Step 3", Label: "Programs", Fields: []string{"programs"}},
		{ID: "Step 4", Label: "Galleries", Fields: []string{"galleries"}},
		{ID: "Step 5", Label: "Scholarships", Fields: []string{"scholarships"}},
		{ID: "Step 6", Label: "Confirm"},
	}
}

type harness struct {
	ctrl      *Controller[map[string]string]
	form      *form
	validator *requiredValidator
	creator   *stubCreator
	rec       *recorder
	disabler  *Disabler
}

func newHarness(t *testing.T, steps []Step) *harness {
	t.Helper()
	h := &harness{
		form:      newForm(steps),
		validator: &requiredValidator{},
		creator:   &stubCreator{result: Succeeded("abc123")},
		rec:       &recorder{},
		disabler:  NewDisabler(nil),
	}
	ctrl, err := New(Config[map[string]string]{
		Steps:     steps,
		Values:    h.form.snapshot,
		Validator: h.validator,
		Creator:   h.creator,
		Notifier:  h.rec,
		Navigator: h.rec,
		Disabler:  h.disabler,
	})
	require.NoError(t, err)
	h.ctrl = ctrl
	return h
}

func (h *harness) advanceTo(t *testing.T, index int) {
	t.Helper()
	for h.ctrl.Current() < index {
		require.NoError(t, h.ctrl.GoNext(context.Background()))
	}
}

func TestNew_RequiresCollaborators(t *testing.T) {
	_, err := New(Config[map[string]string]{})
	require.Error(t, err)

	_, err = New(Config[map[string]string]{Steps: sixSteps()})
	require.Error(t, err)

	f := newForm(sixSteps())
	_, err = New(Config[map[string]string]{Steps: sixSteps(), Values: f.snapshot})
	require.Error(t, err)

	_, err = New(Config[map[string]string]{Steps: sixSteps(), Values: f.snapshot, Validator: &requiredValidator{}})
	require.Error(t, err)
}

func TestGoNext_SequentialScenario(t *testing.T) {
	h := newHarness(t, sixSteps())
	ctx := context.Background()

	for want := 1; want <= 5; want++ {
		require.NoError(t, h.ctrl.GoNext(ctx))
		require.Equal(t, want, h.ctrl.Current())
		require.Equal(t, want-1, h.ctrl.Previous())
		require.Equal(t, DirectionForward, h.ctrl.Direction())

		_, captured := h.ctrl.Draft()
		require.Equal(t, want == 5, captured, "draft must be captured exactly at the 4 -> 5 transition")
	}

	// Each step validated exactly its own fields.
	for i, call := range h.validator.calls {
		require.Equal(t, sixSteps()[i].Fields, call)
	}
}

func TestGoNext_InvalidLeavesStateUnchanged(t *testing.T) {
	steps := sixSteps()
	for i := 0; i <= len(steps)-2; i++ {
		h := newHarness(t, steps)
		h.advanceTo(t, i)

		h.form.set(steps[i].Fields[0], "")
		draftBefore, hadDraft := h.ctrl.Draft()

		err := h.ctrl.GoNext(context.Background())

		var verr *ValidationError
		require.ErrorAs(t, err, &verr, "step %d", i)
		require.Equal(t, steps[i].Fields[0], verr.FirstField())
		require.Equal(t, i, h.ctrl.Current())
		require.Equal(t, steps[i].Fields[0], h.ctrl.FocusField())
		require.Contains(t, h.ctrl.FieldErrors(), steps[i].Fields[0])

		draftAfter, hasDraft := h.ctrl.Draft()
		require.Equal(t, hadDraft, hasDraft)
		require.Empty(t, cmp.Diff(draftBefore, draftAfter))
	}
}

func TestGoNext_FocusFollowsDeclaredOrder(t *testing.T) {
	h := newHarness(t, sixSteps())
	h.form.set("country", "")
	h.form.set("name", "")

	err := h.ctrl.GoNext(context.Background())
	require.Error(t, err)
	require.Equal(t, "name", h.ctrl.FocusField())

	h.form.set("name", "Hanoi University")
	h.form.set("country", "Vietnam")
	require.NoError(t, h.ctrl.GoNext(context.Background()))
	require.Empty(t, h.ctrl.FieldErrors())
	require.Empty(t, h.ctrl.FocusField())
}

func TestGoNext_NoopAtLastStep(t *testing.T) {
	h := newHarness(t, sixSteps())
	h.advanceTo(t, 5)

	require.NoError(t, h.ctrl.GoNext(context.Background()))
	require.Equal(t, 5, h.ctrl.Current())
	require.True(t, h.ctrl.IsTerminal())
	require.False(t, h.ctrl.CanGoNext())
}

func TestGoPrevious(t *testing.T) {
	t.Run("decrements by one from every index", func(t *testing.T) {
		for i := 1; i <= 5; i++ {
			h := newHarness(t, sixSteps())
			h.advanceTo(t, i)

			// Validation state must not matter going back.
			for _, f := range AllFields(sixSteps()) {
				h.form.set(f, "")
			}

			require.NoError(t, h.ctrl.GoPrevious())
			require.Equal(t, i-1, h.ctrl.Current())
			require.Equal(t, DirectionBackward, h.ctrl.Direction())
		}
	})

	t.Run("no-op at first step", func(t *testing.T) {
		h := newHarness(t, sixSteps())
		require.NoError(t, h.ctrl.GoPrevious())
		require.Equal(t, 0, h.ctrl.Current())
		require.False(t, h.ctrl.CanGoPrevious())
	})
}

func TestDraft_IsUnionOfDeclaredFields(t *testing.T) {
	steps := sixSteps()
	h := newHarness(t, steps)
	h.advanceTo(t, 5)

	draft, ok := h.ctrl.Draft()
	require.True(t, ok)

	keys := make([]string, 0, len(draft))
	for k := range draft {
		keys = append(keys, k)
	}
	want := AllFields(steps)
	sort.Strings(keys)
	sort.Strings(want)
	require.Empty(t, cmp.Diff(want, keys))
}

func TestDraft_NotAffectedByLaterFormEdits(t *testing.T) {
	h := newHarness(t, sixSteps())
	h.advanceTo(t, 5)

	h.form.set("name", "changed after capture")

	draft, ok := h.ctrl.Draft()
	require.True(t, ok)
	require.Equal(t, "ok", draft["name"])
}

func TestGoNext_ConcurrentCallsAdvanceOnce(t *testing.T) {
	h := newHarness(t, sixSteps())
	gate := make(chan struct{})
	h.validator.gate = gate

	done := make(chan error, 1)
	go func() {
		done <- h.ctrl.GoNext(context.Background())
	}()

	require.Eventually(t, func() bool {
		h.validator.mu.Lock()
		defer h.validator.mu.Unlock()
		return len(h.validator.calls) == 1
	}, time.Second, 5*time.Millisecond)

	require.ErrorIs(t, h.ctrl.GoNext(context.Background()), ErrInFlight)
	require.ErrorIs(t, h.ctrl.GoPrevious(), ErrInFlight)
	require.False(t, h.ctrl.CanGoNext())

	close(gate)
	require.NoError(t, <-done)
	require.Equal(t, 1, h.ctrl.Current())
}

func TestGoNext_DisablerRaisedDuringValidation(t *testing.T) {
	h := newHarness(t, sixSteps())
	h.advanceTo(t, 4)
	gate := make(chan struct{})
	h.validator.gate = gate

	done := make(chan error, 1)
	go func() {
		done <- h.ctrl.GoNext(context.Background())
	}()

	require.Eventually(t, func() bool {
		h.validator.mu.Lock()
		defer h.validator.mu.Unlock()
		return len(h.validator.calls) == 5
	}, time.Second, 5*time.Millisecond)

	release := h.disabler.Raise()
	close(gate)
	require.ErrorIs(t, <-done, ErrBusy)
	require.Equal(t, 4, h.ctrl.Current())
	_, ok := h.ctrl.Draft()
	require.False(t, ok, "no draft is captured when the step does not advance")

	release()
	h.validator.mu.Lock()
	h.validator.gate = nil
	h.validator.mu.Unlock()
	require.NoError(t, h.ctrl.GoNext(context.Background()))
	require.Equal(t, 5, h.ctrl.Current())
}

func TestGoNext_CancelledContext(t *testing.T) {
	h := newHarness(t, sixSteps())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.ErrorIs(t, h.ctrl.GoNext(ctx), context.Canceled)
	require.Equal(t, 0, h.ctrl.Current())
}

func TestNavigation_DisabledWhileChildHoldsDisabler(t *testing.T) {
	h := newHarness(t, sixSteps())
	h.advanceTo(t, 2)

	release := h.disabler.Raise()
	require.True(t, h.ctrl.NavigationDisabled())
	require.ErrorIs(t, h.ctrl.GoNext(context.Background()), ErrBusy)
	require.ErrorIs(t, h.ctrl.GoPrevious(), ErrBusy)
	require.Equal(t, 2, h.ctrl.Current())

	release()
	require.False(t, h.ctrl.NavigationDisabled())
	require.NoError(t, h.ctrl.GoPrevious())
	require.Equal(t, 1, h.ctrl.Current())
}

func TestSubmit_Success(t *testing.T) {
	h := newHarness(t, sixSteps())
	h.advanceTo(t, 5)

	require.NoError(t, h.ctrl.Submit(context.Background()))

	require.Equal(t, []string{DefaultSuccessMessage}, h.rec.successes)
	require.Empty(t, h.rec.errors)
	require.Equal(t, []string{"/schools/abc123"}, h.rec.paths)
	require.False(t, h.ctrl.Busy())

	// The draft is consumed by a successful submission.
	_, ok := h.ctrl.Draft()
	require.False(t, ok)
	require.ErrorIs(t, h.ctrl.Submit(context.Background()), ErrNoDraft)
	require.Equal(t, 1, h.creator.callCount())
}

func TestSubmit_Failures(t *testing.T) {
	tests := []struct {
		name        string
		result      Result
		err         error
		wantMessage string
		wantErr     error
	}{
		{
			name:        "string error is shown as is",
			result:      Failed("Duplicate name"),
			wantMessage: "Duplicate name",
			wantErr:     ErrRejected,
		},
		{
			name:        "structured error falls back to generic message",
			result:      FailedFields(map[string]string{"name": "too short"}),
			wantMessage: DefaultFailureMessage,
			wantErr:     ErrRejected,
		},
		{
			name:        "failure without payload falls back to generic message",
			result:      Result{},
			wantMessage: DefaultFailureMessage,
			wantErr:     ErrRejected,
		},
		{
			name:        "success without id is a failure",
			result:      Result{Success: true},
			wantMessage: DefaultFailureMessage,
			wantErr:     ErrRejected,
		},
		{
			name:        "creator exception is converted to generic message",
			err:         errors.New("connection reset"),
			wantMessage: DefaultFailureMessage,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, sixSteps())
			h.creator.result = tt.result
			h.creator.err = tt.err
			h.advanceTo(t, 5)

			err := h.ctrl.Submit(context.Background())
			require.Error(t, err)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			}
			if tt.err != nil {
				require.ErrorIs(t, err, tt.err)
			}

			require.Equal(t, []string{tt.wantMessage}, h.rec.errors)
			require.Empty(t, h.rec.successes)
			require.Empty(t, h.rec.paths)
			require.Equal(t, 5, h.ctrl.Current(), "wizard stays on the terminal step")
			require.False(t, h.ctrl.Busy(), "busy flag must be cleared")

			// The draft is kept for a retry.
			_, ok := h.ctrl.Draft()
			require.True(t, ok)
			require.True(t, h.ctrl.CanSubmit())
		})
	}
}

func TestSubmit_RetryAfterFailure(t *testing.T) {
	h := newHarness(t, sixSteps())
	h.creator.result = Failed("Duplicate name")
	h.advanceTo(t, 5)

	require.Error(t, h.ctrl.Submit(context.Background()))

	h.creator.mu.Lock()
	h.creator.result = Succeeded("xyz")
	h.creator.mu.Unlock()

	require.NoError(t, h.ctrl.Submit(context.Background()))
	require.Equal(t, []string{"/schools/xyz"}, h.rec.paths)
	require.Equal(t, 2, h.creator.callCount())
}

func TestSubmit_RevalidatesWholeDraft(t *testing.T) {
	steps := sixSteps()
	h := newHarness(t, steps)
	h.advanceTo(t, 4)

	// Invalidate a field of an earlier step through the values source; the
	// penultimate step only validates its own fields, so capture succeeds.
	h.form.set("logo", "")
	require.NoError(t, h.ctrl.GoNext(context.Background()))

	err := h.ctrl.Submit(context.Background())
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.Equal(t, "logo", verr.FirstField())
	require.Equal(t, 0, h.creator.callCount())
	require.Equal(t, []string{DefaultFailureMessage}, h.rec.errors)
	require.False(t, h.ctrl.Busy())
}

func TestSubmit_OnlyFromTerminalStep(t *testing.T) {
	h := newHarness(t, sixSteps())
	h.advanceTo(t, 3)

	require.ErrorIs(t, h.ctrl.Submit(context.Background()), ErrNotTerminal)
	require.Equal(t, 0, h.creator.callCount())
}

func TestSubmit_WithoutDraft(t *testing.T) {
	h := newHarness(t, []Step{{ID: "Only", Label: "Confirm"}})

	require.True(t, h.ctrl.IsTerminal())
	require.ErrorIs(t, h.ctrl.Submit(context.Background()), ErrNoDraft)
}

func TestSubmit_BusyBlocksNavigationAndSecondSubmit(t *testing.T) {
	h := newHarness(t, sixSteps())
	gate := make(chan struct{})
	h.creator.gate = gate
	h.advanceTo(t, 5)

	done := make(chan error, 1)
	go func() {
		done <- h.ctrl.Submit(context.Background())
	}()

	require.Eventually(t, h.ctrl.Busy, time.Second, 5*time.Millisecond)

	require.ErrorIs(t, h.ctrl.Submit(context.Background()), ErrBusy)
	require.ErrorIs(t, h.ctrl.GoNext(context.Background()), ErrBusy)
	require.ErrorIs(t, h.ctrl.GoPrevious(), ErrBusy)
	require.Equal(t, 5, h.ctrl.Current())
	require.False(t, h.ctrl.CanSubmit())

	close(gate)
	require.NoError(t, <-done)
	require.False(t, h.ctrl.Busy())
	require.Equal(t, 1, h.creator.callCount())
}

func TestStatuses(t *testing.T) {
	h := newHarness(t, sixSteps())
	h.advanceTo(t, 2)

	require.Equal(t, []Status{
		StatusCompleted, StatusCompleted, StatusActive,
		StatusUpcoming, StatusUpcoming, StatusUpcoming,
	}, h.ctrl.Statuses())
	require.Equal(t, StatusActive, h.ctrl.Status(2))
	require.Equal(t, "completed", h.ctrl.Status(0).String())
}

func TestAllFields_DeduplicatesInOrder(t *testing.T) {
	steps := []Step{
		{ID: "a", Fields: []string{"x", "y"}},
		{ID: "b", Fields: []string{"y", "z"}},
		{ID: "c"},
	}
	require.Equal(t, []string{"x", "y", "z"}, AllFields(steps))
}
