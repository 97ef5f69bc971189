package services

import (
	"fmt"

	"freetrack/internal/pdf"
	"freetrack/internal/pipeline"
	"freetrack/internal/repositories"
)

type ReportService struct {
	ProjectRepo *repositories.ProjectRepository
	StepRepo    *repositories.StepRepository
	ClientRepo  *repositories.ClientRepository
	PDF         pdf.Generator
}

func NewReportService(
	projectRepo *repositories.ProjectRepository,
	stepRepo *repositories.StepRepository,
	clientRepo *repositories.ClientRepository,
	pdfGen pdf.Generator,
) *ReportService {
	return &ReportService{ProjectRepo: projectRepo, StepRepo: stepRepo, ClientRepo: clientRepo, PDF: pdfGen}
}

type StageSummary struct {
	Stage    pipeline.Stage `json:"stage"`
	Projects int            `json:"projects"`
}

type Summary struct {
	Stages          []StageSummary `json:"stages"`
	TotalProjects   int            `json:"total_projects"`
	AverageProgress int            `json:"average_progress"`
}

// GetSummary aggregates the owner's pipeline: how many projects sit in each
// stage (in pipeline order) and the mean completion percentage.
func (s *ReportService) GetSummary(ownerID int) (*Summary, error) {
	counts, err := s.ProjectRepo.StageCounts(ownerID)
	if err != nil {
		return nil, err
	}
	summary := &Summary{}
	for _, stage := range pipeline.Stages {
		n := counts[stage]
		summary.Stages = append(summary.Stages, StageSummary{Stage: stage, Projects: n})
		summary.TotalProjects += n
	}

	cards, err := s.ProjectRepo.BoardCards(ownerID)
	if err != nil {
		return nil, err
	}
	if len(cards) > 0 {
		total := 0
		for _, c := range cards {
			total += c.Progress()
		}
		summary.AverageProgress = total / len(cards)
	}
	return summary, nil
}

// PipelineReport renders the project's pipeline to a PDF and returns the
// file path.
func (s *ReportService) PipelineReport(ownerID, projectID int) (string, error) {
	project, err := s.ProjectRepo.GetByID(projectID)
	if err != nil {
		return "", err
	}
	if project == nil || project.OwnerID != ownerID {
		return "", ErrNotFound
	}
	client, err := s.ClientRepo.GetByID(project.ClientID)
	if err != nil {
		return "", err
	}
	clientName := ""
	if client != nil {
		clientName = client.Name
	}

	steps, err := s.StepRepo.ListByProject(projectID)
	if err != nil {
		return "", err
	}
	data := pdf.ReportData{
		Role:       project.Role,
		ClientName: clientName,
		DailyRate:  project.DailyRate,
		WorkMode:   project.WorkMode,
		TechStack:  project.TechStack,
		Filename:   fmt.Sprintf("pipeline_project_%d.pdf", projectID),
	}
	completed := 0
	for _, step := range steps {
		if step.Status == pipeline.StatusValidated {
			completed++
		}
		data.Steps = append(data.Steps, pdf.ReportStep{
			Stage:       step.Stage,
			Status:      step.Status,
			ScheduledAt: step.ScheduledAt,
			Notes:       step.Notes,
		})
	}
	data.Progress = pipeline.Progress(completed, len(steps))

	return s.PDF.GeneratePipelineReport(data)
}
