package boardview

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"freetrack/internal/pipeline"
)

type fakeAPI struct {
	mu            sync.Mutex
	snapshot      *Snapshot
	fetchErr      error
	transitionErr error
	statusErr     error

	fetchCalls    int
	lastFetchCtx  context.Context
	transitions   []pipeline.TransitionRequest
	statusActions []pipeline.StatusAction
	scheduled     []int

	onStatus func() // invoked from inside SetStepStatus, before returning
}

func (f *fakeAPI) FetchBoard(ctx context.Context, userID int) (*Snapshot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fetchCalls++
	f.lastFetchCtx = ctx
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	return f.snapshot, nil
}

func (f *fakeAPI) RequestTransition(ctx context.Context, req pipeline.TransitionRequest) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.transitions = append(f.transitions, req)
	return f.transitionErr
}

func (f *fakeAPI) SetStepStatus(ctx context.Context, action pipeline.StatusAction) error {
	f.mu.Lock()
	f.statusActions = append(f.statusActions, action)
	hook := f.onStatus
	err := f.statusErr
	f.mu.Unlock()
	if hook != nil {
		hook()
	}
	return err
}

func (f *fakeAPI) ScheduleStep(ctx context.Context, stepID int, at time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.scheduled = append(f.scheduled, stepID)
	return nil
}

type recordingNotifier struct {
	mu        sync.Mutex
	successes []string
	errors    []string
}

func (n *recordingNotifier) Success(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.successes = append(n.successes, msg)
}

func (n *recordingNotifier) Error(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.errors = append(n.errors, msg)
}

func testCard(projectID int, stage pipeline.Stage) *pipeline.Card {
	return &pipeline.Card{
		ProjectID:  projectID,
		Role:       "Fullstack developer",
		ClientName: "Northwind",
		Stage:      stage,
		Status:     pipeline.StatusPlanned,
		TotalSteps: 7,
	}
}

func newLoadedView(t *testing.T, api *fakeAPI, notify Notifier) *View {
	t.Helper()
	v := NewView(context.Background(), api, notify, 42)
	t.Cleanup(v.Close)
	if err := v.Load(); err != nil {
		t.Fatalf("Load: %v", err)
	}
	return v
}

func TestReorderInsideColumnNeverCallsServer(t *testing.T) {
	api := &fakeAPI{snapshot: &Snapshot{Cards: []*pipeline.Card{
		testCard(1, pipeline.StagePositioning),
		testCard(2, pipeline.StagePositioning),
	}}}
	v := newLoadedView(t, api, nil)
	fetchesBefore := api.fetchCalls

	if err := v.MoveCard(v.Board().Columns[pipeline.StagePositioning][0], pipeline.StagePositioning, pipeline.StagePositioning, 0, 1); err != nil {
		t.Fatalf("MoveCard: %v", err)
	}
	if len(api.transitions) != 0 {
		t.Fatalf("reorder issued %d transition requests", len(api.transitions))
	}
	if api.fetchCalls != fetchesBefore {
		t.Error("reorder must not trigger a re-fetch")
	}
	col := v.Board().Columns[pipeline.StagePositioning]
	if col[0].ProjectID != 2 || col[1].ProjectID != 1 {
		t.Errorf("column order after reorder: %d, %d", col[0].ProjectID, col[1].ProjectID)
	}
}

func TestCrossColumnMoveIssuesExactlyOneTransition(t *testing.T) {
	api := &fakeAPI{snapshot: &Snapshot{Cards: []*pipeline.Card{
		testCard(7, pipeline.StageTechnicalTest),
	}}}
	v := newLoadedView(t, api, nil)
	fetchesBefore := api.fetchCalls

	card := v.Board().Columns[pipeline.StageTechnicalTest][0]
	// The next snapshot is what the server says after the move.
	moved := testCard(7, pipeline.StageTechnicalInterview)
	api.mu.Lock()
	api.snapshot = &Snapshot{Cards: []*pipeline.Card{moved}}
	api.mu.Unlock()

	if err := v.MoveCard(card, pipeline.StageTechnicalTest, pipeline.StageTechnicalInterview, 0, 0); err != nil {
		t.Fatalf("MoveCard: %v", err)
	}
	if len(api.transitions) != 1 {
		t.Fatalf("got %d transition requests, want 1", len(api.transitions))
	}
	req := api.transitions[0]
	if req.ProjectID != 7 || req.FromStage != pipeline.StageTechnicalTest || req.ToStage != pipeline.StageTechnicalInterview {
		t.Errorf("unexpected request %+v", req)
	}
	if api.fetchCalls != fetchesBefore+1 {
		t.Errorf("expected one re-fetch after the move, got %d", api.fetchCalls-fetchesBefore)
	}
	// The re-fetched snapshot fully replaces the board.
	if stage, _ := v.Board().Find(7); stage != pipeline.StageTechnicalInterview {
		t.Errorf("card sits in %s after refresh", stage)
	}
	if got := v.Board().Columns[pipeline.StageTechnicalInterview][0]; got != moved {
		t.Error("board was patched instead of rebuilt from the snapshot")
	}
}

func TestRejectedMoveIsRevertedByRefetch(t *testing.T) {
	api := &fakeAPI{
		snapshot: &Snapshot{Cards: []*pipeline.Card{
			testCard(3, pipeline.StageSalesInterview),
		}},
		transitionErr: errors.New("transition refused"),
	}
	notify := &recordingNotifier{}
	v := newLoadedView(t, api, notify)

	card := v.Board().Columns[pipeline.StageSalesInterview][0]
	err := v.MoveCard(card, pipeline.StageSalesInterview, pipeline.StageValidation, 0, 0)
	if err == nil {
		t.Fatal("expected the refused transition to surface an error")
	}
	if len(notify.errors) != 1 {
		t.Fatalf("got %d error notices, want 1", len(notify.errors))
	}
	// The optimistic splice was overwritten by the unchanged server snapshot.
	if stage, _ := v.Board().Find(3); stage != pipeline.StageSalesInterview {
		t.Errorf("card not restored, sits in %s", stage)
	}
	if len(v.Board().Columns[pipeline.StageValidation]) != 0 {
		t.Error("optimistic card survived the re-fetch")
	}
}

func TestLoadFailureKeepsLastKnownBoard(t *testing.T) {
	api := &fakeAPI{snapshot: &Snapshot{Cards: []*pipeline.Card{
		testCard(1, pipeline.StageInitialContact),
	}}}
	notify := &recordingNotifier{}
	v := newLoadedView(t, api, notify)

	api.mu.Lock()
	api.fetchErr = errors.New("network down")
	api.mu.Unlock()
	if err := v.Load(); err == nil {
		t.Fatal("expected Load to fail")
	}
	if v.Loading() {
		t.Error("loading flag stuck after failure")
	}
	if v.Board() == nil || len(v.Board().Columns[pipeline.StageInitialContact]) != 1 {
		t.Error("last-known board was discarded on fetch failure")
	}
	if len(notify.errors) != 1 {
		t.Errorf("got %d error notices, want 1", len(notify.errors))
	}
}

func TestAdvanceToNextStageGate(t *testing.T) {
	cases := []struct {
		status   pipeline.Status
		eligible bool
	}{
		{pipeline.StatusValidated, true},
		{pipeline.StatusWaitingFeedback, true},
		{pipeline.StatusToPlan, false},
		{pipeline.StatusPlanned, false},
		{pipeline.StatusFailed, false},
		{pipeline.StatusCanceled, false},
	}
	for _, tc := range cases {
		t.Run(string(tc.status), func(t *testing.T) {
			c := testCard(1, pipeline.StageTechnicalTest)
			c.Status = tc.status
			api := &fakeAPI{snapshot: &Snapshot{Cards: []*pipeline.Card{c}}}
			v := newLoadedView(t, api, nil)

			err := v.AdvanceToNextStage(c)
			if tc.eligible {
				if err != nil {
					t.Fatalf("AdvanceToNextStage: %v", err)
				}
				if len(api.transitions) != 1 || api.transitions[0].ToStage != pipeline.StageTechnicalInterview {
					t.Errorf("transitions: %+v", api.transitions)
				}
			} else {
				if !errors.Is(err, ErrNotEligible) {
					t.Fatalf("err = %v, want ErrNotEligible", err)
				}
				if len(api.transitions) != 0 {
					t.Error("ineligible card still issued a transition")
				}
			}
		})
	}
}

func TestAdvanceAtLastStageIsNoop(t *testing.T) {
	c := testCard(1, pipeline.StageValidation)
	c.Status = pipeline.StatusValidated
	api := &fakeAPI{snapshot: &Snapshot{Cards: []*pipeline.Card{c}}}
	v := newLoadedView(t, api, nil)

	if err := v.AdvanceToNextStage(c); err != nil {
		t.Fatalf("AdvanceToNextStage: %v", err)
	}
	if len(api.transitions) != 0 {
		t.Error("last stage advanced somewhere")
	}
}

func TestCloseCancelsPendingWork(t *testing.T) {
	api := &fakeAPI{snapshot: &Snapshot{}}
	v := NewView(context.Background(), api, nil, 42)
	if err := v.Load(); err != nil {
		t.Fatalf("Load: %v", err)
	}
	v.Close()
	if err := v.Load(); err == nil {
		t.Fatal("Load after Close must fail with the canceled context")
	}
	if api.lastFetchCtx.Err() == nil {
		t.Error("view context not canceled after Close")
	}
}
