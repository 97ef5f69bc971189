package pipeline

import "testing"

func TestProgressRounding(t *testing.T) {
	cases := []struct {
		name      string
		completed int
		total     int
		want      int
	}{
		{"two of seven rounds up", 2, 7, 29},
		{"zero total is zero", 0, 0, 0},
		{"negative total is zero", 3, -1, 0},
		{"all done", 7, 7, 100},
		{"none done", 0, 7, 0},
		{"half of six", 3, 6, 50},
		{"one of three rounds down", 1, 3, 33},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Progress(tc.completed, tc.total); got != tc.want {
				t.Errorf("Progress(%d, %d) = %d, want %d", tc.completed, tc.total, got, tc.want)
			}
		})
	}
}

func TestCanAdvance(t *testing.T) {
	eligible := map[Status]bool{
		StatusValidated:       true,
		StatusWaitingFeedback: true,
		StatusToPlan:          false,
		StatusPlanned:         false,
		StatusFailed:          false,
		StatusCanceled:        false,
	}
	for status, want := range eligible {
		if got := CanAdvance(status); got != want {
			t.Errorf("CanAdvance(%s) = %v, want %v", status, got, want)
		}
	}
}

func TestStatusTransitions(t *testing.T) {
	cases := []struct {
		from, to Status
		ok       bool
	}{
		{StatusToPlan, StatusPlanned, true},
		{StatusToPlan, StatusCanceled, true},
		{StatusToPlan, StatusValidated, false},
		{StatusPlanned, StatusWaitingFeedback, true},
		{StatusPlanned, StatusValidated, true},
		{StatusPlanned, StatusFailed, true},
		{StatusPlanned, StatusCanceled, true},
		{StatusWaitingFeedback, StatusValidated, true},
		{StatusWaitingFeedback, StatusFailed, true},
		{StatusWaitingFeedback, StatusPlanned, false},
		{StatusValidated, StatusFailed, false},
		{StatusFailed, StatusPlanned, false},
		{StatusCanceled, StatusPlanned, false},
		{Status("bogus"), StatusPlanned, false},
	}
	for _, tc := range cases {
		if got := CanTransition(tc.from, tc.to); got != tc.ok {
			t.Errorf("CanTransition(%s, %s) = %v, want %v", tc.from, tc.to, got, tc.ok)
		}
	}
}

func TestStatusLookups(t *testing.T) {
	for s := range statusLabels {
		if s.Label() == "" {
			t.Errorf("status %s has no label", s)
		}
		if s.Color() == "" {
			t.Errorf("status %s has no color", s)
		}
	}
	if IsValidStatus(Status("archived")) {
		t.Error("unknown status reported valid")
	}
}

func TestStageOrder(t *testing.T) {
	if len(Stages) != 7 {
		t.Fatalf("expected 7 stages, got %d", len(Stages))
	}
	if StageIndex(StageInitialContact) != 0 {
		t.Error("Initial Contact must open the pipeline")
	}
	if StageIndex(StageValidation) != len(Stages)-1 {
		t.Error("Validation must close the pipeline")
	}
	if got := NextStage(StageTechnicalTest); got != StageTechnicalInterview {
		t.Errorf("NextStage(Technical Test) = %q", got)
	}
	if got := NextStage(StageValidation); got != "" {
		t.Errorf("NextStage after last stage = %q, want empty", got)
	}
	if StageIndex(Stage("Coffee Chat")) != -1 {
		t.Error("unknown stage must index to -1")
	}
}
