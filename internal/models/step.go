package models

import (
	"time"

	"freetrack/internal/pipeline"
)

// InterviewStep is one stage instance of a project's pipeline. A project
// owns exactly one step per canonical stage, created up front with status
// to_plan.
type InterviewStep struct {
	ID          int             `json:"id"`
	ProjectID   int             `json:"project_id"`
	Stage       pipeline.Stage  `json:"stage"`
	Status      pipeline.Status `json:"status"`
	ScheduledAt *time.Time      `json:"scheduled_at,omitempty"`
	Notes       string          `json:"notes"`
	CreatedAt   time.Time       `json:"created_at"`
}
