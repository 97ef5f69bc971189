package boardview

import (
	"context"
	"errors"
	"sync"

	"freetrack/internal/pipeline"
)

// ErrNotEligible is returned by AdvanceToNextStage when the card's current
// step is not settled positively yet.
var ErrNotEligible = errors.New("current step is not validated or waiting feedback")

// View owns one user's board between a fetch and the next. The board it
// holds is a disposable cache: every confirmed mutation is followed by a
// full re-fetch that replaces it wholesale, so the optimistic splice applied
// during a drag never survives past the next server response.
type View struct {
	api    PipelineAPI
	notify Notifier
	userID int

	ctx    context.Context
	cancel context.CancelFunc

	mu      sync.Mutex
	board   *pipeline.Board
	loading bool
}

// NewView builds a view for the given user. The parent context scopes every
// call the view will ever make; Close cancels the derived context so a late
// response cannot touch a torn-down view.
func NewView(parent context.Context, api PipelineAPI, notify Notifier, userID int) *View {
	if notify == nil {
		notify = NopNotifier{}
	}
	ctx, cancel := context.WithCancel(parent)
	return &View{
		api:    api,
		notify: notify,
		userID: userID,
		ctx:    ctx,
		cancel: cancel,
	}
}

// Close tears the view down: all in-flight calls are canceled and no further
// response may mutate the board.
func (v *View) Close() {
	v.cancel()
}

// Board returns the current board, which may be nil before the first
// successful Load.
func (v *View) Board() *pipeline.Board {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.board
}

// Loading reports whether the initial snapshot fetch is still in flight.
func (v *View) Loading() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.loading
}

// Load fetches the snapshot and projects it into a fresh board. On failure
// the last-known board is kept (or stays nil) and the user is notified; a
// retry is manual.
func (v *View) Load() error {
	v.mu.Lock()
	v.loading = true
	v.mu.Unlock()

	snap, err := v.api.FetchBoard(v.ctx, v.userID)

	v.mu.Lock()
	defer v.mu.Unlock()
	v.loading = false
	if err != nil {
		v.notify.Error("Could not load the board")
		return err
	}
	if snap == nil {
		snap = &Snapshot{}
	}
	v.board = pipeline.Project(snap.Cards)
	return nil
}

// refresh replaces the board with a fresh projection of the server snapshot.
// No loading indicator: refreshes happen behind an action the user already
// sees feedback for.
func (v *View) refresh() {
	snap, err := v.api.FetchBoard(v.ctx, v.userID)
	if err != nil {
		v.notify.Error("Could not refresh the board")
		return
	}
	if snap == nil {
		snap = &Snapshot{}
	}
	v.mu.Lock()
	v.board = pipeline.Project(snap.Cards)
	v.mu.Unlock()
}

// MoveCard handles a card drop. A drop inside its own column is a pure
// visual reorder: the column list is spliced locally and the server is never
// called, since ordering within a column carries no meaning. A drop on
// another column is always treated as a stage transition attempt, adjacent
// or not; legality is the server's call. The card is spliced into the target
// column optimistically, then the board is re-fetched whatever the server
// answered, which is also how a rejected move gets reverted.
func (v *View) MoveCard(card *pipeline.Card, from, to pipeline.Stage, previousIndex, currentIndex int) error {
	if card == nil {
		return nil
	}

	v.mu.Lock()
	if v.board == nil {
		v.mu.Unlock()
		return nil
	}
	if from == to {
		if c := v.board.Remove(from, previousIndex); c != nil {
			v.board.Insert(from, currentIndex, c)
		}
		v.mu.Unlock()
		return nil
	}
	if c := v.board.Remove(from, previousIndex); c != nil {
		v.board.Insert(to, currentIndex, c)
	}
	v.mu.Unlock()

	err := v.api.RequestTransition(v.ctx, pipeline.TransitionRequest{
		ProjectID: card.ProjectID,
		FromStage: from,
		ToStage:   to,
	})
	if err != nil {
		v.notify.Error("The move was refused, the board has been restored")
	}
	v.refresh()
	return err
}

// AdvanceToNextStage is the menu action that pushes a card one stage
// forward. Unlike a drag, this path checks eligibility before calling the
// server: the action is only offered for a settled current step. No
// optimistic splice either, the card moves when the refreshed snapshot
// says so.
func (v *View) AdvanceToNextStage(card *pipeline.Card) error {
	if card == nil {
		return nil
	}
	if !pipeline.CanAdvance(card.Status) {
		v.notify.Error("Validate the current step before advancing")
		return ErrNotEligible
	}
	next := pipeline.NextStage(card.Stage)
	if next == "" {
		return nil
	}
	err := v.api.RequestTransition(v.ctx, pipeline.TransitionRequest{
		ProjectID: card.ProjectID,
		FromStage: card.Stage,
		ToStage:   next,
	})
	if err != nil {
		v.notify.Error("The move was refused, the board has been restored")
	}
	v.refresh()
	return err
}
