package pipeline

import "time"

// Card is a project's current position in the pipeline, with the
// denormalized display fields the board needs. The server owns every field;
// a board is a disposable projection rebuilt from the latest snapshot.
type Card struct {
	ProjectID      int        `json:"project_id"`
	Role           string     `json:"role"`
	ClientName     string     `json:"client_name"`
	DailyRate      int        `json:"daily_rate"`
	WorkMode       string     `json:"work_mode"`
	TechStack      string     `json:"tech_stack"`
	Stage          Stage      `json:"stage"`
	Status         Status     `json:"status"`
	StageDate      *time.Time `json:"stage_date,omitempty"`
	TotalSteps     int        `json:"total_steps"`
	CompletedSteps int        `json:"completed_steps"`
	FailedSteps    int        `json:"failed_steps"`
	Notes          string     `json:"notes"`
}

// Progress is the card's completion percentage.
func (c Card) Progress() int {
	return Progress(c.CompletedSteps, c.TotalSteps)
}

// Board groups cards into one column per canonical stage.
type Board struct {
	Order   []Stage           `json:"order"`
	Columns map[Stage][]*Card `json:"columns"`
}

// Project builds a board from any set of cards. Every canonical stage gets a
// column, empty or not, so each stage is always a valid drop target. Cards
// carrying a stage name outside the registry are dropped rather than
// breaking the board.
func Project(cards []*Card) *Board {
	b := &Board{
		Order:   append([]Stage(nil), Stages...),
		Columns: make(map[Stage][]*Card, len(Stages)),
	}
	for _, s := range Stages {
		b.Columns[s] = []*Card{}
	}
	for _, c := range cards {
		if c == nil || !IsValidStage(c.Stage) {
			continue
		}
		b.Columns[c.Stage] = append(b.Columns[c.Stage], c)
	}
	return b
}

// Find returns the column and index holding the given project, or ("", -1).
func (b *Board) Find(projectID int) (Stage, int) {
	for _, s := range b.Order {
		for i, c := range b.Columns[s] {
			if c.ProjectID == projectID {
				return s, i
			}
		}
	}
	return "", -1
}

// Remove takes the card at index i out of the stage's column. Out-of-range
// indexes are clamped so a stale index from a concurrent refresh cannot
// panic the caller.
func (b *Board) Remove(stage Stage, i int) *Card {
	col := b.Columns[stage]
	if len(col) == 0 {
		return nil
	}
	if i < 0 {
		i = 0
	}
	if i >= len(col) {
		i = len(col) - 1
	}
	c := col[i]
	b.Columns[stage] = append(col[:i:i], col[i+1:]...)
	return c
}

// Insert places the card into the stage's column at index i, clamped to the
// column bounds. Unknown stages are ignored.
func (b *Board) Insert(stage Stage, i int, c *Card) {
	if c == nil || !IsValidStage(stage) {
		return
	}
	col := b.Columns[stage]
	if i < 0 {
		i = 0
	}
	if i > len(col) {
		i = len(col)
	}
	col = append(col, nil)
	copy(col[i+1:], col[i:])
	col[i] = c
	b.Columns[stage] = col
}
