package pipeline

import "math"

// Status is the state of a project's current stage instance.
type Status string

const (
	StatusToPlan          Status = "to_plan"
	StatusPlanned         Status = "planned"
	StatusCanceled        Status = "canceled"
	StatusWaitingFeedback Status = "waiting_feedback"
	StatusValidated       Status = "validated"
	StatusFailed          Status = "failed"
)

// statusLabels / statusColors are presentation lookups only, no rule reads them.
var statusLabels = map[Status]string{
	StatusToPlan:          "To plan",
	StatusPlanned:         "Planned",
	StatusCanceled:        "Canceled",
	StatusWaitingFeedback: "Waiting feedback",
	StatusValidated:       "Validated",
	StatusFailed:          "Failed",
}

var statusColors = map[Status]string{
	StatusToPlan:          "#9e9e9e",
	StatusPlanned:         "#1976d2",
	StatusCanceled:        "#757575",
	StatusWaitingFeedback: "#f9a825",
	StatusValidated:       "#2e7d32",
	StatusFailed:          "#c62828",
}

func (s Status) Label() string { return statusLabels[s] }
func (s Status) Color() string { return statusColors[s] }

func IsValidStatus(s Status) bool {
	_, ok := statusLabels[s]
	return ok
}

// Allowed status moves for a stage instance. Validated, Failed and Canceled
// are terminal: advancing the project to the next stage is a separate action.
var statusTransitions = map[Status]map[Status]bool{
	StatusToPlan:          {StatusPlanned: true, StatusCanceled: true},
	StatusPlanned:         {StatusWaitingFeedback: true, StatusValidated: true, StatusFailed: true, StatusCanceled: true},
	StatusWaitingFeedback: {StatusValidated: true, StatusFailed: true, StatusCanceled: true},
	StatusValidated:       {},
	StatusFailed:          {},
	StatusCanceled:        {},
}

func CanTransition(current, to Status) bool {
	nexts, ok := statusTransitions[current]
	if !ok {
		return false
	}
	return nexts[to]
}

// CanAdvance reports whether a project whose current stage holds the given
// status is eligible for the move-to-next-stage action.
func CanAdvance(s Status) bool {
	return s == StatusValidated || s == StatusWaitingFeedback
}

// Progress is the completion percentage of a pipeline, rounded to the
// nearest integer. A pipeline with no steps is 0% complete.
func Progress(completed, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(completed) / float64(total) * 100))
}
