// Package wizard implements the step wizard controller used by multi-step
// creation forms.
//
// A [Controller] owns the active step index, the captured draft and the busy
// flag. Steps advance only when the fields declared by the active step pass
// validation, regress only through [Controller.GoPrevious], and the draft is
// submitted once from the terminal step through a [Creator].
package wizard

// Step describes one page of the wizard.
type Step struct {
	ID     string   // Short identifier shown above the label (e.g. "Step 1")
	Label  string   // Human readable step name
	Fields []string // Form fields validated before leaving the step (may be empty)
}

// Status classifies a step relative to the active step.
type Status int

const (
	StatusUpcoming  Status = iota // index > current
	StatusActive                  // index == current
	StatusCompleted               // index < current
)

// String returns the string representation of a step status.
func (s Status) String() string {
	switch s {
	case StatusUpcoming:
		return "upcoming"
	case StatusActive:
		return "active"
	case StatusCompleted:
		return "completed"
	default:
		return "unknown"
	}
}

// Classify returns the status of the step at index when current is active.
func Classify(index, current int) Status {
	switch {
	case index < current:
		return StatusCompleted
	case index == current:
		return StatusActive
	default:
		return StatusUpcoming
	}
}

// Direction is the direction of the last transition.
// It only drives presentation (slide direction), never behavior.
type Direction int

const (
	DirectionNone Direction = iota
	DirectionForward
	DirectionBackward
)

func directionOf(previous, current int) Direction {
	switch {
	case current > previous:
		return DirectionForward
	case current < previous:
		return DirectionBackward
	default:
		return DirectionNone
	}
}

// AllFields returns the union of fields declared across steps, in declaration
// order and without duplicates.
func AllFields(steps []Step) []string {
	seen := make(map[string]bool)
	var fields []string
	for _, step := range steps {
		for _, f := range step.Fields {
			if seen[f] {
				continue
			}
			seen[f] = true
			fields = append(fields, f)
		}
	}
	return fields
}
