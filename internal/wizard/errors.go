package wizard

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrBusy is returned when navigation or submission is attempted while a
	// submission is in flight or a child operation holds the Disabler.
	ErrBusy = errors.New("wizard is busy")

	// ErrInFlight is returned when GoNext is called while a previous GoNext
	// is still validating.
	ErrInFlight = errors.New("step transition already in progress")

	// ErrNotTerminal is returned when Submit is called before the last step.
	ErrNotTerminal = errors.New("submit is only allowed from the last step")

	// ErrNoDraft is returned when Submit is called before a draft was captured.
	ErrNoDraft = errors.New("no draft captured")
)

// FieldErrors maps a form field name to its validation message.
type FieldErrors map[string]string

// ValidationError is returned by GoNext when the active step has invalid fields.
type ValidationError struct {
	Step   string
	Fields FieldErrors
	order  []string
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.order))
	for _, f := range e.order {
		parts = append(parts, fmt.Sprintf("%s: %s", f, e.Fields[f]))
	}
	return fmt.Sprintf("step %q has invalid fields (%s)", e.Step, strings.Join(parts, "; "))
}

// FirstField returns the first failing field in declared order.
func (e *ValidationError) FirstField() string {
	if len(e.order) == 0 {
		return ""
	}
	return e.order[0]
}

// ordered returns the keys of errs that appear in fields, in the order of fields.
// Keys not declared in fields are appended in sorted order so none are lost.
func (errs FieldErrors) ordered(fields []string) []string {
	out := make([]string, 0, len(errs))
	seen := make(map[string]bool, len(errs))
	for _, f := range fields {
		if _, ok := errs[f]; ok {
			out = append(out, f)
			seen[f] = true
		}
	}
	var rest []string
	for f := range errs {
		if !seen[f] {
			rest = append(rest, f)
		}
	}
	sort.Strings(rest)
	return append(out, rest...)
}
