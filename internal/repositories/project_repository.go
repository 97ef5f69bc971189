package repositories

import (
	"database/sql"
	"fmt"

	"freetrack/internal/models"
	"freetrack/internal/pipeline"
)

type ProjectRepository struct {
	db *sql.DB
}

func NewProjectRepository(db *sql.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

const projectColumns = `id, owner_id, client_id, source_id, role, daily_rate, work_mode, tech_stack, current_stage, notes, created_at`

func scanProject(s interface{ Scan(...any) error }) (*models.Project, error) {
	var p models.Project
	err := s.Scan(
		&p.ID, &p.OwnerID, &p.ClientID, &p.SourceID, &p.Role, &p.DailyRate,
		&p.WorkMode, &p.TechStack, &p.CurrentStage, &p.Notes, &p.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProjectRepository) Create(project *models.Project) (int64, error) {
	const q = `
                INSERT INTO projects (owner_id, client_id, source_id, role, daily_rate, work_mode, tech_stack, current_stage, notes, created_at)
                VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
                RETURNING id
        `
	var id int64
	err := r.db.QueryRow(q,
		project.OwnerID, project.ClientID, project.SourceID, project.Role, project.DailyRate,
		project.WorkMode, project.TechStack, project.CurrentStage, project.Notes, project.CreatedAt,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("create project: %w", err)
	}
	return id, nil
}

func (r *ProjectRepository) Update(project *models.Project) error {
	const q = `
                UPDATE projects
                SET client_id=$1, source_id=$2, role=$3, daily_rate=$4, work_mode=$5, tech_stack=$6, notes=$7
                WHERE id=$8
        `
	_, err := r.db.Exec(q,
		project.ClientID, project.SourceID, project.Role, project.DailyRate,
		project.WorkMode, project.TechStack, project.Notes, project.ID,
	)
	if err != nil {
		return fmt.Errorf("update project: %w", err)
	}
	return nil
}

func (r *ProjectRepository) UpdateCurrentStage(id int, stage pipeline.Stage) error {
	const q = `UPDATE projects SET current_stage=$1 WHERE id=$2`
	if _, err := r.db.Exec(q, stage, id); err != nil {
		return fmt.Errorf("update project stage: %w", err)
	}
	return nil
}

func (r *ProjectRepository) GetByID(id int) (*models.Project, error) {
	p, err := scanProject(r.db.QueryRow(`SELECT `+projectColumns+` FROM projects WHERE id=$1`, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get project: %w", err)
	}
	return p, nil
}

func (r *ProjectRepository) Delete(id int) error {
	if _, err := r.db.Exec(`DELETE FROM projects WHERE id=$1`, id); err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	return nil
}

func (r *ProjectRepository) ListByOwner(ownerID, limit, offset int) ([]*models.Project, error) {
	const q = `SELECT ` + projectColumns + ` FROM projects WHERE owner_id=$1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	return r.queryMany(q, ownerID, limit, offset)
}

// Filter narrows the owner's projects by current stage and/or the status of
// the current stage's step. Empty filter values are ignored.
func (r *ProjectRepository) Filter(ownerID int, stage pipeline.Stage, status pipeline.Status, limit, offset int) ([]*models.Project, error) {
	const q = `
                SELECT ` + projectColumns + `
                FROM projects p
                WHERE p.owner_id=$1
                  AND ($2='' OR p.current_stage=$2)
                  AND ($3='' OR EXISTS (
                        SELECT 1 FROM interview_steps s
                        WHERE s.project_id=p.id AND s.stage_name=p.current_stage AND s.status=$3
                  ))
                ORDER BY p.created_at DESC
                LIMIT $4 OFFSET $5
        `
	return r.queryMany(q, ownerID, string(stage), string(status), limit, offset)
}

func (r *ProjectRepository) queryMany(q string, args ...any) ([]*models.Project, error) {
	rows, err := r.db.Query(q, args...)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()

	var res []*models.Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, p)
	}
	return res, rows.Err()
}

// BoardCards builds one card per project of the owner: display fields from
// the project and its client, current step status and date, plus the
// step-outcome aggregates. One round trip for the whole board.
func (r *ProjectRepository) BoardCards(ownerID int) ([]*pipeline.Card, error) {
	const q = `
                SELECT
                        p.id, p.role, c.name, p.daily_rate, p.work_mode, p.tech_stack,
                        p.current_stage, cur.status, cur.scheduled_at, p.notes,
                        (SELECT COUNT(*) FROM interview_steps s WHERE s.project_id = p.id)                            AS total_steps,
                        (SELECT COUNT(*) FROM interview_steps s WHERE s.project_id = p.id AND s.status = 'validated') AS completed_steps,
                        (SELECT COUNT(*) FROM interview_steps s WHERE s.project_id = p.id AND s.status = 'failed')    AS failed_steps
                FROM projects p
                JOIN clients c ON c.id = p.client_id
                JOIN interview_steps cur ON cur.project_id = p.id AND cur.stage_name = p.current_stage
                WHERE p.owner_id = $1
                ORDER BY p.created_at DESC
        `
	rows, err := r.db.Query(q, ownerID)
	if err != nil {
		return nil, fmt.Errorf("board cards: %w", err)
	}
	defer rows.Close()

	var cards []*pipeline.Card
	for rows.Next() {
		var card pipeline.Card
		err := rows.Scan(
			&card.ProjectID, &card.Role, &card.ClientName, &card.DailyRate, &card.WorkMode, &card.TechStack,
			&card.Stage, &card.Status, &card.StageDate, &card.Notes,
			&card.TotalSteps, &card.CompletedSteps, &card.FailedSteps,
		)
		if err != nil {
			return nil, err
		}
		cards = append(cards, &card)
	}
	return cards, rows.Err()
}

// StageCounts returns how many of the owner's projects sit in each stage.
func (r *ProjectRepository) StageCounts(ownerID int) (map[pipeline.Stage]int, error) {
	const q = `SELECT current_stage, COUNT(*) FROM projects WHERE owner_id=$1 GROUP BY current_stage`
	rows, err := r.db.Query(q, ownerID)
	if err != nil {
		return nil, fmt.Errorf("stage counts: %w", err)
	}
	defer rows.Close()

	res := make(map[pipeline.Stage]int)
	for rows.Next() {
		var stage pipeline.Stage
		var n int
		if err := rows.Scan(&stage, &n); err != nil {
			return nil, err
		}
		res[stage] = n
	}
	return res, rows.Err()
}
