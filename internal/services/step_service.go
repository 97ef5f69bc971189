package services

import (
	"errors"
	"log"
	"time"

	"freetrack/internal/models"
	"freetrack/internal/pipeline"
)

// The server is the authority over pipeline moves: the board UI lets a card
// be dropped anywhere and relies on these rules to refuse what the pipeline
// does not allow.
var (
	ErrNotFound          = errors.New("not found")
	ErrUnknownStage      = errors.New("unknown stage")
	ErrStaleStage        = errors.New("project is no longer in the requested stage")
	ErrNotEligible       = errors.New("current step must be validated or waiting feedback before advancing")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrNotSchedulable    = errors.New("only an open step can be scheduled")
)

type projectStore interface {
	GetByID(id int) (*models.Project, error)
	UpdateCurrentStage(id int, stage pipeline.Stage) error
	BoardCards(ownerID int) ([]*pipeline.Card, error)
}

type stepStore interface {
	GetByID(id int) (*models.InterviewStep, error)
	GetByProjectAndStage(projectID int, stage pipeline.Stage) (*models.InterviewStep, error)
	UpdateStatus(id int, status pipeline.Status) error
	UpdateSchedule(id int, at time.Time) error
	UpdateNotes(id int, notes string) error
}

type clientNamer interface {
	GetByID(id int) (*models.Client, error)
}

type accountMailer interface {
	GetByID(id int) (*models.User, error)
}

type StepService struct {
	Projects projectStore
	Steps    stepStore
	Clients  clientNamer
	Users    accountMailer

	// optional integrations
	Email    EmailService
	Telegram *TelegramNotifier
}

func NewStepService(projects projectStore, steps stepStore, clients clientNamer, users accountMailer) *StepService {
	return &StepService{Projects: projects, Steps: steps, Clients: clients, Users: users}
}

// Board returns every card of the owner's in-flight projects.
func (s *StepService) Board(ownerID int) ([]*pipeline.Card, error) {
	return s.Projects.BoardCards(ownerID)
}

// Transition moves a project's current stage pointer. Backward moves are
// always accepted (revisiting a stage); a forward move requires the current
// stage's step to be settled positively first.
func (s *StepService) Transition(ownerID int, req pipeline.TransitionRequest) error {
	project, err := s.Projects.GetByID(req.ProjectID)
	if err != nil {
		return err
	}
	if project == nil || project.OwnerID != ownerID {
		return ErrNotFound
	}
	if !pipeline.IsValidStage(req.ToStage) {
		return ErrUnknownStage
	}
	if req.FromStage != project.CurrentStage {
		return ErrStaleStage
	}
	if req.FromStage == req.ToStage {
		return nil
	}

	if pipeline.StageIndex(req.ToStage) > pipeline.StageIndex(req.FromStage) {
		current, err := s.Steps.GetByProjectAndStage(project.ID, project.CurrentStage)
		if err != nil {
			return err
		}
		if current == nil {
			return ErrNotFound
		}
		if !pipeline.CanAdvance(current.Status) {
			return ErrNotEligible
		}
	}

	if err := s.Projects.UpdateCurrentStage(project.ID, req.ToStage); err != nil {
		return err
	}
	if req.Notes != "" {
		target, err := s.Steps.GetByProjectAndStage(project.ID, req.ToStage)
		if err == nil && target != nil {
			if err := s.Steps.UpdateNotes(target.ID, req.Notes); err != nil {
				log.Printf("[step][transition] notes update failed for project=%d: %v", project.ID, err)
			}
		}
	}
	return nil
}

// Apply settles a step with one of the four status actions. Each action is
// its own intent: the failed branch mails the account, and settled outcomes
// go out over Telegram when the integration is configured.
func (s *StepService) Apply(ownerID int, action pipeline.StatusAction) (*models.InterviewStep, error) {
	step, project, err := s.ownedStep(ownerID, action.StepID())
	if err != nil {
		return nil, err
	}

	target := pipeline.TargetStatus(action)
	if target == "" {
		return nil, ErrInvalidTransition
	}
	if !pipeline.CanTransition(step.Status, target) {
		return nil, ErrInvalidTransition
	}
	if err := s.Steps.UpdateStatus(step.ID, target); err != nil {
		return nil, err
	}
	step.Status = target

	s.notifyOutcome(project, step)
	return step, nil
}

// Schedule dates a step and marks it planned. Re-planning an already
// planned step just moves the date.
func (s *StepService) Schedule(ownerID, stepID int, at time.Time) (*models.InterviewStep, error) {
	step, _, err := s.ownedStep(ownerID, stepID)
	if err != nil {
		return nil, err
	}
	if step.Status != pipeline.StatusToPlan && step.Status != pipeline.StatusPlanned {
		return nil, ErrNotSchedulable
	}
	if err := s.Steps.UpdateSchedule(step.ID, at); err != nil {
		return nil, err
	}
	step.Status = pipeline.StatusPlanned
	step.ScheduledAt = &at
	return step, nil
}

func (s *StepService) ownedStep(ownerID, stepID int) (*models.InterviewStep, *models.Project, error) {
	step, err := s.Steps.GetByID(stepID)
	if err != nil {
		return nil, nil, err
	}
	if step == nil {
		return nil, nil, ErrNotFound
	}
	project, err := s.Projects.GetByID(step.ProjectID)
	if err != nil {
		return nil, nil, err
	}
	if project == nil || project.OwnerID != ownerID {
		return nil, nil, ErrNotFound
	}
	return step, project, nil
}

func (s *StepService) notifyOutcome(project *models.Project, step *models.InterviewStep) {
	if step.Status != pipeline.StatusFailed && step.Status != pipeline.StatusValidated {
		return
	}

	clientName := ""
	if client, err := s.Clients.GetByID(project.ClientID); err == nil && client != nil {
		clientName = client.Name
	}

	if step.Status == pipeline.StatusFailed && s.Email != nil {
		if user, err := s.Users.GetByID(project.OwnerID); err == nil && user != nil {
			if err := s.Email.SendStepFailedEmail(user.Email, project.Role, clientName, string(step.Stage)); err != nil {
				log.Printf("[step][notify] email for step=%d failed: %v", step.ID, err)
			}
		}
	}
	s.Telegram.NotifyStepOutcome(project.Role, clientName, step.Stage, step.Status)
}
