package wizard

import (
	"fmt"

	"github.com/felixgeelhaar/statekit"
)

// Submission lifecycle states.
const (
	submissionIdle       = "idle"
	submissionSubmitting = "submitting"
)

// Submission lifecycle events.
const (
	eventSubmit  = "SUBMIT"
	eventSettled = "SETTLED"
)

// submissionContext is the statekit context for the submission machine.
// The machine carries no data; the controller owns the draft.
type submissionContext struct{}

// buildSubmissionMachine constructs the idle -> submitting -> idle lifecycle.
func buildSubmissionMachine() (*statekit.Interpreter[submissionContext], error) {
	machine, err := statekit.NewMachine[submissionContext]("wizard-submission").
		WithInitial(submissionIdle).
		WithContext(submissionContext{}).
		State(submissionIdle).
		On(eventSubmit).Target(submissionSubmitting).Done().
		State(submissionSubmitting).
		On(eventSettled).Target(submissionIdle).Done().
		Build()
	if err != nil {
		return nil, fmt.Errorf("building submission machine: %w", err)
	}

	interp := statekit.NewInterpreter(machine)
	interp.Start()
	return interp, nil
}
