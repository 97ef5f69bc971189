package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"freetrack/internal/models"
	"freetrack/internal/pipeline"
)

type StepRepository struct {
	db *sql.DB
}

func NewStepRepository(db *sql.DB) *StepRepository {
	return &StepRepository{db: db}
}

const stepColumns = `id, project_id, stage_name, status, scheduled_at, notes, created_at`

func scanStep(s interface{ Scan(...any) error }) (*models.InterviewStep, error) {
	var st models.InterviewStep
	err := s.Scan(&st.ID, &st.ProjectID, &st.Stage, &st.Status, &st.ScheduledAt, &st.Notes, &st.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &st, nil
}

// CreateForProject inserts one step per canonical stage, all to_plan, inside
// a single transaction so a project never ends up with a partial pipeline.
func (r *StepRepository) CreateForProject(projectID int) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("create steps: %w", err)
	}
	defer tx.Rollback()

	const q = `
                INSERT INTO interview_steps (project_id, stage_name, status, notes, created_at)
                VALUES ($1, $2, $3, '', $4)
        `
	now := time.Now()
	for _, stage := range pipeline.Stages {
		if _, err := tx.Exec(q, projectID, stage, pipeline.StatusToPlan, now); err != nil {
			return fmt.Errorf("create step %s: %w", stage, err)
		}
	}
	return tx.Commit()
}

func (r *StepRepository) GetByID(id int) (*models.InterviewStep, error) {
	st, err := scanStep(r.db.QueryRow(`SELECT `+stepColumns+` FROM interview_steps WHERE id=$1`, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get step: %w", err)
	}
	return st, nil
}

func (r *StepRepository) GetByProjectAndStage(projectID int, stage pipeline.Stage) (*models.InterviewStep, error) {
	const q = `SELECT ` + stepColumns + ` FROM interview_steps WHERE project_id=$1 AND stage_name=$2`
	st, err := scanStep(r.db.QueryRow(q, projectID, stage))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get step by stage: %w", err)
	}
	return st, nil
}

func (r *StepRepository) ListByProject(projectID int) ([]*models.InterviewStep, error) {
	const q = `SELECT ` + stepColumns + ` FROM interview_steps WHERE project_id=$1 ORDER BY id`
	rows, err := r.db.Query(q, projectID)
	if err != nil {
		return nil, fmt.Errorf("list steps: %w", err)
	}
	defer rows.Close()

	var res []*models.InterviewStep
	for rows.Next() {
		st, err := scanStep(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, st)
	}
	return res, rows.Err()
}

func (r *StepRepository) UpdateStatus(id int, status pipeline.Status) error {
	const q = `UPDATE interview_steps SET status=$1 WHERE id=$2`
	if _, err := r.db.Exec(q, status, id); err != nil {
		return fmt.Errorf("update step status: %w", err)
	}
	return nil
}

func (r *StepRepository) UpdateSchedule(id int, at time.Time) error {
	const q = `UPDATE interview_steps SET status=$1, scheduled_at=$2 WHERE id=$3`
	if _, err := r.db.Exec(q, pipeline.StatusPlanned, at, id); err != nil {
		return fmt.Errorf("schedule step: %w", err)
	}
	return nil
}

func (r *StepRepository) UpdateNotes(id int, notes string) error {
	const q = `UPDATE interview_steps SET notes=$1 WHERE id=$2`
	if _, err := r.db.Exec(q, notes, id); err != nil {
		return fmt.Errorf("update step notes: %w", err)
	}
	return nil
}
