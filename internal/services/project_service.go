package services

import (
	"errors"
	"strings"
	"time"

	"freetrack/internal/models"
	"freetrack/internal/pipeline"
	"freetrack/internal/repositories"
)

type ProjectService struct {
	Repo       *repositories.ProjectRepository
	StepRepo   *repositories.StepRepository
	ClientRepo *repositories.ClientRepository
	SourceRepo *repositories.SourceRepository
}

func NewProjectService(
	repo *repositories.ProjectRepository,
	stepRepo *repositories.StepRepository,
	clientRepo *repositories.ClientRepository,
	sourceRepo *repositories.SourceRepository,
) *ProjectService {
	return &ProjectService{Repo: repo, StepRepo: stepRepo, ClientRepo: clientRepo, SourceRepo: sourceRepo}
}

// Create registers a mission and opens its full pipeline: one step per
// stage, all to plan, with the project pointing at the first stage.
func (s *ProjectService) Create(project *models.Project) error {
	if strings.TrimSpace(project.Role) == "" {
		return errors.New("role is required")
	}
	if project.WorkMode == "" {
		project.WorkMode = models.WorkModeRemote
	}
	if !models.ValidWorkModes[project.WorkMode] {
		return errors.New("invalid work mode")
	}

	client, err := s.ClientRepo.GetByID(project.ClientID)
	if err != nil {
		return err
	}
	if client == nil || client.OwnerID != project.OwnerID {
		return errors.New("client not found")
	}
	if project.SourceID != nil {
		source, err := s.SourceRepo.GetByID(*project.SourceID)
		if err != nil {
			return err
		}
		if source == nil || source.OwnerID != project.OwnerID {
			return errors.New("source not found")
		}
	}

	project.CurrentStage = pipeline.Stages[0]
	if project.CreatedAt.IsZero() {
		project.CreatedAt = time.Now()
	}

	id, err := s.Repo.Create(project)
	if err != nil {
		return err
	}
	project.ID = int(id)

	if err := s.StepRepo.CreateForProject(project.ID); err != nil {
		_ = s.Repo.Delete(project.ID) // best-effort rollback
		return err
	}
	return nil
}

func (s *ProjectService) Update(project *models.Project) error {
	if strings.TrimSpace(project.Role) == "" {
		return errors.New("role is required")
	}
	if !models.ValidWorkModes[project.WorkMode] {
		return errors.New("invalid work mode")
	}
	return s.Repo.Update(project)
}

func (s *ProjectService) GetByID(id int) (*models.Project, error) {
	return s.Repo.GetByID(id)
}

func (s *ProjectService) Delete(id int) error {
	return s.Repo.Delete(id)
}

func (s *ProjectService) List(ownerID, limit, offset int) ([]*models.Project, error) {
	return s.Repo.ListByOwner(ownerID, limit, offset)
}

func (s *ProjectService) Filter(ownerID int, stage pipeline.Stage, status pipeline.Status, limit, offset int) ([]*models.Project, error) {
	if stage != "" && !pipeline.IsValidStage(stage) {
		return nil, errors.New("unknown stage")
	}
	if status != "" && !pipeline.IsValidStatus(status) {
		return nil, errors.New("unknown status")
	}
	return s.Repo.Filter(ownerID, stage, status, limit, offset)
}

func (s *ProjectService) Steps(projectID int) ([]*models.InterviewStep, error) {
	return s.StepRepo.ListByProject(projectID)
}
