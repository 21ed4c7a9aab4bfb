package wizard

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/felixgeelhaar/statekit"
	"github.com/mark3labs/campus/internal/logger"
)

// ErrRejected is returned by Submit when the creation endpoint answered with
// a failure result.
var ErrRejected = errors.New("creation rejected")

// Default notification messages.
const (
	DefaultSuccessMessage = "School created successfully"
	DefaultFailureMessage = "Something went wrong while creating the school"
)

// Validator validates a subset of form fields.
//
// ValidateFields must only inspect the named fields and returns an empty map
// when all of them are valid.
type Validator[T any] interface {
	ValidateFields(ctx context.Context, values T, fields []string) FieldErrors
}

// Creator is the creation endpoint that consumes the captured draft.
// A returned error is treated as an unexpected failure (network, storage).
type Creator[T any] interface {
	Create(ctx context.Context, draft T) (Result, error)
}

// Notifier surfaces fire-and-forget notifications to the user.
type Notifier interface {
	Success(message string)
	Error(message string)
}

// Navigator performs imperative navigation to a path.
type Navigator interface {
	GoTo(path string)
}

// Config holds the collaborators of a Controller.
type Config[T any] struct {
	Steps []Step

	// Values returns a snapshot of the current form values. The snapshot must
	// not share mutable state with the form, since it may become the draft.
	Values func() T

	Validator Validator[T]
	Creator   Creator[T]
	Notifier  Notifier  // Optional
	Navigator Navigator // Optional
	Disabler  *Disabler // Optional, shared with child widgets

	SuccessMessage string              // Defaults to DefaultSuccessMessage
	FailureMessage string              // Defaults to DefaultFailureMessage
	Redirect       func(string) string // Defaults to "/schools/{id}"
}

// Controller drives a step wizard session.
// All methods are safe for concurrent use.
type Controller[T any] struct {
	mu  sync.Mutex
	cfg Config[T]

	current  int
	previous int

	draft    T
	hasDraft bool

	validating bool
	errs       FieldErrors
	errOrder   []string

	submission *statekit.Interpreter[submissionContext]
}

// New creates a Controller positioned on the first step.
func New[T any](cfg Config[T]) (*Controller[T], error) {
	if len(cfg.Steps) == 0 {
		return nil, fmt.Errorf("wizard requires at least one step")
	}
	if cfg.Values == nil {
		return nil, fmt.Errorf("wizard requires a values source")
	}
	if cfg.Validator == nil {
		return nil, fmt.Errorf("wizard requires a validator")
	}
	if cfg.Creator == nil {
		return nil, fmt.Errorf("wizard requires a creator")
	}
	if cfg.Notifier == nil {
		cfg.Notifier = nopNotifier{}
	}
	if cfg.Navigator == nil {
		cfg.Navigator = nopNavigator{}
	}
	if cfg.SuccessMessage == "" {
		cfg.SuccessMessage = DefaultSuccessMessage
	}
	if cfg.FailureMessage == "" {
		cfg.FailureMessage = DefaultFailureMessage
	}
	if cfg.Redirect == nil {
		cfg.Redirect = SchoolPath
	}

	steps := make([]Step, len(cfg.Steps))
	copy(steps, cfg.Steps)
	cfg.Steps = steps

	submission, err := buildSubmissionMachine()
	if err != nil {
		return nil, err
	}

	return &Controller[T]{
		cfg:        cfg,
		submission: submission,
	}, nil
}

// SchoolPath returns the detail path of a created school.
func SchoolPath(id string) string {
	return "/schools/" + id
}

// GoNext validates the active step and advances to the next one.
//
// On invalid fields the index and draft are unchanged and a
// *ValidationError is returned. Leaving the penultimate step captures the
// form values into the draft. At the last step GoNext is a no-op.
func (c *Controller[T]) GoNext(ctx context.Context) error {
	c.mu.Lock()
	if c.busyLocked() {
		c.mu.Unlock()
		transitionsTotal.WithLabelValues("next", "busy").Inc()
		return ErrBusy
	}
	if c.validating {
		c.mu.Unlock()
		transitionsTotal.WithLabelValues("next", "busy").Inc()
		return ErrInFlight
	}
	last := len(c.cfg.Steps) - 1
	if c.current >= last {
		c.mu.Unlock()
		transitionsTotal.WithLabelValues("next", "noop").Inc()
		return nil
	}
	c.validating = true
	index := c.current
	step := c.cfg.Steps[index]
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		c.validating = false
		c.mu.Unlock()
	}()

	values := c.cfg.Values()
	errs := c.cfg.Validator.ValidateFields(ctx, values, step.Fields)
	if err := ctx.Err(); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	// A child may have raised the Disabler while validation ran.
	if c.busyLocked() {
		transitionsTotal.WithLabelValues("next", "busy").Inc()
		return ErrBusy
	}

	if len(errs) > 0 {
		c.errs = errs
		c.errOrder = errs.ordered(step.Fields)
		transitionsTotal.WithLabelValues("next", "invalid").Inc()
		logger.Debug("Step %q blocked by %d invalid fields", step.ID, len(errs))
		return &ValidationError{Step: step.ID, Fields: copyErrors(errs), order: c.errOrder}
	}

	c.errs = nil
	c.errOrder = nil

	if index == last-1 {
		c.draft = values
		c.hasDraft = true
		logger.Debug("Draft captured at step %q", step.ID)
	}

	c.previous = index
	c.current = index + 1
	transitionsTotal.WithLabelValues("next", "advanced").Inc()
	logger.Debug("Wizard advanced %d -> %d", c.previous, c.current)
	return nil
}

// GoPrevious moves back one step without validation. At the first step it
// is a no-op.
func (c *Controller[T]) GoPrevious() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.busyLocked() {
		transitionsTotal.WithLabelValues("previous", "busy").Inc()
		return ErrBusy
	}
	if c.validating {
		transitionsTotal.WithLabelValues("previous", "busy").Inc()
		return ErrInFlight
	}
	if c.current == 0 {
		transitionsTotal.WithLabelValues("previous", "noop").Inc()
		return nil
	}

	c.errs = nil
	c.errOrder = nil
	c.previous = c.current
	c.current--
	transitionsTotal.WithLabelValues("previous", "advanced").Inc()
	logger.Debug("Wizard moved back %d -> %d", c.previous, c.current)
	return nil
}

// Submit sends the captured draft to the creation endpoint.
//
// It is only allowed from the terminal step and only once at a time. The
// outcome is surfaced through the Notifier; on success the Navigator is sent
// to the created resource. The busy flag is cleared on every path.
func (c *Controller[T]) Submit(ctx context.Context) error {
	c.mu.Lock()
	if c.current != len(c.cfg.Steps)-1 {
		c.mu.Unlock()
		return ErrNotTerminal
	}
	if c.isSubmittingLocked() {
		c.mu.Unlock()
		return ErrBusy
	}
	if !c.hasDraft {
		c.mu.Unlock()
		return ErrNoDraft
	}
	c.submission.Send(statekit.Event{Type: eventSubmit})
	draft := c.draft
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		c.submission.Send(statekit.Event{Type: eventSettled})
		c.mu.Unlock()
	}()

	fields := AllFields(c.cfg.Steps)
	if errs := c.cfg.Validator.ValidateFields(ctx, draft, fields); len(errs) > 0 {
		submissionsTotal.WithLabelValues("invalid").Inc()
		order := errs.ordered(fields)
		logger.Warn("Draft failed validation before submit: %v", order)
		c.cfg.Notifier.Error(c.cfg.FailureMessage)
		return &ValidationError{Step: c.cfg.Steps[len(c.cfg.Steps)-1].ID, Fields: copyErrors(errs), order: order}
	}

	start := time.Now()
	res, err := c.cfg.Creator.Create(ctx, draft)
	submissionSeconds.Observe(time.Since(start).Seconds())

	if err != nil {
		submissionsTotal.WithLabelValues("error").Inc()
		logger.Error("Create failed: %v", err)
		c.cfg.Notifier.Error(c.cfg.FailureMessage)
		return fmt.Errorf("submitting draft: %w", err)
	}

	if !res.Success {
		submissionsTotal.WithLabelValues("rejected").Inc()
		message := c.cfg.FailureMessage
		if res.Error != nil && res.Error.Message != "" {
			message = res.Error.Message
		} else if res.Error != nil {
			logger.Warn("Create rejected with field errors: %v", res.Error.Fields)
		}
		c.cfg.Notifier.Error(message)
		return fmt.Errorf("%w: %s", ErrRejected, message)
	}

	if res.ID == "" {
		submissionsTotal.WithLabelValues("error").Inc()
		logger.Error("Create reported success without an id")
		c.cfg.Notifier.Error(c.cfg.FailureMessage)
		return fmt.Errorf("%w: missing id in successful result", ErrRejected)
	}

	submissionsTotal.WithLabelValues("created").Inc()

	c.mu.Lock()
	var zero T
	c.draft = zero
	c.hasDraft = false
	c.mu.Unlock()

	c.cfg.Notifier.Success(c.cfg.SuccessMessage)
	c.cfg.Navigator.GoTo(c.cfg.Redirect(res.ID))
	return nil
}

// Current returns the active step index.
func (c *Controller[T]) Current() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// Previous returns the index that was active before the last transition.
func (c *Controller[T]) Previous() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.previous
}

// Direction returns the direction of the last transition.
func (c *Controller[T]) Direction() Direction {
	c.mu.Lock()
	defer c.mu.Unlock()
	return directionOf(c.previous, c.current)
}

// Steps returns a copy of the configured steps.
func (c *Controller[T]) Steps() []Step {
	steps := make([]Step, len(c.cfg.Steps))
	copy(steps, c.cfg.Steps)
	return steps
}

// Len returns the number of steps.
func (c *Controller[T]) Len() int {
	return len(c.cfg.Steps)
}

// Step returns the step at index.
func (c *Controller[T]) Step(index int) Step {
	return c.cfg.Steps[index]
}

// ActiveStep returns the active step.
func (c *Controller[T]) ActiveStep() Step {
	return c.cfg.Steps[c.Current()]
}

// Status classifies the step at index against the active step.
func (c *Controller[T]) Status(index int) Status {
	return Classify(index, c.Current())
}

// Statuses classifies every step against the active step.
func (c *Controller[T]) Statuses() []Status {
	current := c.Current()
	out := make([]Status, len(c.cfg.Steps))
	for i := range c.cfg.Steps {
		out[i] = Classify(i, current)
	}
	return out
}

// IsTerminal reports whether the active step is the last one.
func (c *Controller[T]) IsTerminal() bool {
	return c.Current() == len(c.cfg.Steps)-1
}

// Draft returns the captured draft and whether one exists.
func (c *Controller[T]) Draft() (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.draft, c.hasDraft
}

// FieldErrors returns the failing fields of the last GoNext.
func (c *Controller[T]) FieldErrors() FieldErrors {
	c.mu.Lock()
	defer c.mu.Unlock()
	return copyErrors(c.errs)
}

// FocusField returns the first failing field of the last GoNext, in the
// order the step declares its fields.
func (c *Controller[T]) FocusField() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.errOrder) == 0 {
		return ""
	}
	return c.errOrder[0]
}

// Busy reports whether a submission is in flight.
func (c *Controller[T]) Busy() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.isSubmittingLocked()
}

// NavigationDisabled reports whether GoNext/GoPrevious are currently refused.
func (c *Controller[T]) NavigationDisabled() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.busyLocked()
}

// CanGoPrevious reports whether GoPrevious would move the index.
func (c *Controller[T]) CanGoPrevious() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current > 0 && !c.busyLocked() && !c.validating
}

// CanGoNext reports whether GoNext may move the index (subject to validation).
func (c *Controller[T]) CanGoNext() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current < len(c.cfg.Steps)-1 && !c.busyLocked() && !c.validating
}

// CanSubmit reports whether Submit would be accepted.
func (c *Controller[T]) CanSubmit() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current == len(c.cfg.Steps)-1 && c.hasDraft && !c.isSubmittingLocked()
}

// Disabler returns the shared disabled handle (may be nil).
func (c *Controller[T]) Disabler() *Disabler {
	return c.cfg.Disabler
}

func (c *Controller[T]) isSubmittingLocked() bool {
	return string(c.submission.State().Value) == submissionSubmitting
}

func (c *Controller[T]) busyLocked() bool {
	return c.isSubmittingLocked() || c.cfg.Disabler.Raised()
}

func copyErrors(errs FieldErrors) FieldErrors {
	if len(errs) == 0 {
		return nil
	}
	out := make(FieldErrors, len(errs))
	for k, v := range errs {
		out[k] = v
	}
	return out
}

type nopNotifier struct{}

func (nopNotifier) Success(string) {}
func (nopNotifier) Error(string)   {}

type nopNavigator struct{}

func (nopNavigator) GoTo(string) {}
