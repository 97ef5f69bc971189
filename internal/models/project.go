package models

import (
	"time"

	"freetrack/internal/pipeline"
)

// Work modes.
const (
	WorkModeRemote = "remote"
	WorkModeHybrid = "hybrid"
	WorkModeOnsite = "onsite"
)

var ValidWorkModes = map[string]bool{
	WorkModeRemote: true,
	WorkModeHybrid: true,
	WorkModeOnsite: true,
}

// Project is one mission opportunity moving through the interview pipeline.
// CurrentStage is the project's position on the board; the per-stage detail
// lives in its interview steps.
type Project struct {
	ID           int            `json:"id"`
	OwnerID      int            `json:"owner_id"`
	ClientID     int            `json:"client_id"`
	SourceID     *int           `json:"source_id,omitempty"`
	Role         string         `json:"role"`
	DailyRate    int            `json:"daily_rate"`
	WorkMode     string         `json:"work_mode"`
	TechStack    string         `json:"tech_stack"`
	CurrentStage pipeline.Stage `json:"current_stage"`
	Notes        string         `json:"notes"`
	CreatedAt    time.Time      `json:"created_at"`
}
