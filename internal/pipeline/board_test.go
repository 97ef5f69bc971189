package pipeline

import "testing"

func card(projectID int, stage Stage) *Card {
	return &Card{
		ProjectID:  projectID,
		Role:       "Backend developer",
		ClientName: "Acme",
		Stage:      stage,
		Status:     StatusPlanned,
		TotalSteps: 7,
	}
}

func TestProjectEveryStageGetsAColumn(t *testing.T) {
	b := Project([]*Card{
		card(1, StageTechnicalTest),
		card(2, StageInitialContact),
	})
	if len(b.Order) != len(Stages) {
		t.Fatalf("order has %d stages, want %d", len(b.Order), len(Stages))
	}
	for _, s := range Stages {
		col, ok := b.Columns[s]
		if !ok {
			t.Fatalf("missing column for %s", s)
		}
		if col == nil {
			t.Fatalf("column for %s is nil, want empty slice", s)
		}
	}
	if len(b.Columns[StageTechnicalTest]) != 1 {
		t.Errorf("Technical Test column has %d cards", len(b.Columns[StageTechnicalTest]))
	}
	if len(b.Columns[StageManagerInterview]) != 0 {
		t.Errorf("empty stage rendered %d cards", len(b.Columns[StageManagerInterview]))
	}
}

func TestProjectDropsUnknownStages(t *testing.T) {
	b := Project([]*Card{
		card(1, Stage("Trial Week")),
		card(2, StagePositioning),
		nil,
	})
	total := 0
	for _, s := range b.Order {
		total += len(b.Columns[s])
	}
	if total != 1 {
		t.Fatalf("board holds %d cards, want 1", total)
	}
	if stage, _ := b.Find(1); stage != "" {
		t.Errorf("card with unknown stage surfaced in column %s", stage)
	}
}

func TestProjectPreservesInputOrderWithinColumn(t *testing.T) {
	b := Project([]*Card{
		card(3, StageSalesInterview),
		card(1, StageSalesInterview),
		card(2, StageSalesInterview),
	})
	col := b.Columns[StageSalesInterview]
	want := []int{3, 1, 2}
	for i, id := range want {
		if col[i].ProjectID != id {
			t.Fatalf("column order %v at %d = %d, want %d", want, i, col[i].ProjectID, id)
		}
	}
}

func TestBoardRemoveInsert(t *testing.T) {
	b := Project([]*Card{
		card(1, StageTechnicalTest),
		card(2, StageTechnicalTest),
	})
	c := b.Remove(StageTechnicalTest, 0)
	if c == nil || c.ProjectID != 1 {
		t.Fatalf("Remove returned %+v", c)
	}
	b.Insert(StageTechnicalInterview, 5, c) // index past end clamps
	if stage, idx := b.Find(1); stage != StageTechnicalInterview || idx != 0 {
		t.Errorf("card landed at %s[%d]", stage, idx)
	}
	if b.Remove(StageManagerInterview, 0) != nil {
		t.Error("Remove from empty column should return nil")
	}
	b.Insert(Stage("nowhere"), 0, c) // no panic, no effect
	if _, idx := b.Find(1); idx != 0 {
		t.Error("Insert into unknown stage must be a no-op")
	}
}

func TestCardProgress(t *testing.T) {
	c := card(1, StageValidation)
	c.CompletedSteps = 2
	if got := c.Progress(); got != 29 {
		t.Errorf("Progress() = %d, want 29", got)
	}
}
