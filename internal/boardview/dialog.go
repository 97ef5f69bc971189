package boardview

import (
	"sync/atomic"
	"time"

	"freetrack/internal/pipeline"
)

// Dialog is the controller behind one status-change modal. One dialog serves
// one step; its in-flight guard makes a double-click a no-op instead of a
// duplicate request. No optimistic update here: the board refreshes only
// after the server confirmed.
type Dialog struct {
	view     *View
	inFlight atomic.Bool
	closed   atomic.Bool
}

func NewDialog(view *View) *Dialog {
	return &Dialog{view: view}
}

// Closed reports whether a successful action already dismissed the dialog.
func (d *Dialog) Closed() bool {
	return d.closed.Load()
}

var successCopy = map[string]string{
	pipeline.MarkWaitingFeedback{}.Verb(): "Step marked as waiting for feedback",
	pipeline.MarkValidated{}.Verb():       "Step validated",
	pipeline.MarkFailed{}.Verb():          "Step marked as failed",
	pipeline.MarkCanceled{}.Verb():        "Step canceled",
}

// Resolve submits the status action. While a call is in flight (or after the
// dialog closed on success) further calls do nothing. On failure the guard
// resets so the user can retry manually.
func (d *Dialog) Resolve(action pipeline.StatusAction) error {
	if d.closed.Load() || !d.inFlight.CompareAndSwap(false, true) {
		return nil
	}
	err := d.view.api.SetStepStatus(d.view.ctx, action)
	if err != nil {
		d.inFlight.Store(false)
		d.view.notify.Error("The change could not be saved")
		return err
	}
	d.closed.Store(true)
	d.view.notify.Success(successCopy[action.Verb()])
	d.view.refresh()
	return nil
}

// Schedule plans the step for a date, moving it to Planned. Same guard and
// outcome handling as Resolve.
func (d *Dialog) Schedule(stepID int, at time.Time) error {
	if d.closed.Load() || !d.inFlight.CompareAndSwap(false, true) {
		return nil
	}
	err := d.view.api.ScheduleStep(d.view.ctx, stepID, at)
	if err != nil {
		d.inFlight.Store(false)
		d.view.notify.Error("The change could not be saved")
		return err
	}
	d.closed.Store(true)
	d.view.notify.Success("Step scheduled")
	d.view.refresh()
	return nil
}
