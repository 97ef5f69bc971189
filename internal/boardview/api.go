package boardview

import (
	"context"
	"time"

	"freetrack/internal/pipeline"
)

// Snapshot is the server's view of one user's board: every in-flight
// project's card plus the stage order the server rendered them in. The
// client renders in registry order regardless; a disagreeing echo is a data
// quality concern, not an error.
type Snapshot struct {
	Cards []*pipeline.Card `json:"cards"`
	Order []pipeline.Stage `json:"order"`
}

// PipelineAPI is the board's only external boundary. Implementations talk to
// the tracker server; tests substitute fakes. Every call takes the owning
// view's context so tearing the view down cancels whatever is in flight.
type PipelineAPI interface {
	FetchBoard(ctx context.Context, userID int) (*Snapshot, error)
	RequestTransition(ctx context.Context, req pipeline.TransitionRequest) error
	SetStepStatus(ctx context.Context, action pipeline.StatusAction) error
	ScheduleStep(ctx context.Context, stepID int, at time.Time) error
}

// Notifier surfaces transient user-facing messages. The server never sees
// these; they are the view's only failure channel.
type Notifier interface {
	Success(msg string)
	Error(msg string)
}

// NopNotifier drops every message.
type NopNotifier struct{}

func (NopNotifier) Success(string) {}
func (NopNotifier) Error(string)   {}
