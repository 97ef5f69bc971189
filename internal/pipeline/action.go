package pipeline

// StatusAction is one of the four user intents that settle a stage instance.
// Each intent is its own type so that new per-action side effects (say, a
// notification on failure) never overload a shared generic call; a type
// switch over StatusAction is checked for exhaustiveness where it matters.
type StatusAction interface {
	StepID() int
	// Verb is the wire name of the action, also used in notification copy.
	Verb() string
}

type MarkWaitingFeedback struct{ ID int }
type MarkValidated struct{ ID int }
type MarkFailed struct{ ID int }
type MarkCanceled struct{ ID int }

func (a MarkWaitingFeedback) StepID() int { return a.ID }
func (a MarkValidated) StepID() int       { return a.ID }
func (a MarkFailed) StepID() int          { return a.ID }
func (a MarkCanceled) StepID() int        { return a.ID }

func (MarkWaitingFeedback) Verb() string { return "waiting_feedback" }
func (MarkValidated) Verb() string       { return "validated" }
func (MarkFailed) Verb() string          { return "failed" }
func (MarkCanceled) Verb() string        { return "canceled" }

// TargetStatus maps an action to the status it sets.
func TargetStatus(a StatusAction) Status {
	switch a.(type) {
	case MarkWaitingFeedback:
		return StatusWaitingFeedback
	case MarkValidated:
		return StatusValidated
	case MarkFailed:
		return StatusFailed
	case MarkCanceled:
		return StatusCanceled
	}
	return ""
}

// TransitionRequest asks the server to move a project's current stage
// pointer. It lives only for the duration of the call.
type TransitionRequest struct {
	ProjectID int    `json:"project_id"`
	FromStage Stage  `json:"from_stage"`
	ToStage   Stage  `json:"to_stage"`
	Notes     string `json:"notes,omitempty"`
}
