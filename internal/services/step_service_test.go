package services

import (
	"errors"
	"testing"
	"time"

	"freetrack/internal/models"
	"freetrack/internal/pipeline"
)

type fakeProjects struct {
	projects map[int]*models.Project
	stageSet []pipeline.Stage
}

func (f *fakeProjects) GetByID(id int) (*models.Project, error) {
	return f.projects[id], nil
}

func (f *fakeProjects) UpdateCurrentStage(id int, stage pipeline.Stage) error {
	f.stageSet = append(f.stageSet, stage)
	f.projects[id].CurrentStage = stage
	return nil
}

func (f *fakeProjects) BoardCards(ownerID int) ([]*pipeline.Card, error) {
	return nil, nil
}

type fakeSteps struct {
	steps     map[int]*models.InterviewStep
	statusSet []pipeline.Status
}

func (f *fakeSteps) GetByID(id int) (*models.InterviewStep, error) {
	return f.steps[id], nil
}

func (f *fakeSteps) GetByProjectAndStage(projectID int, stage pipeline.Stage) (*models.InterviewStep, error) {
	for _, s := range f.steps {
		if s.ProjectID == projectID && s.Stage == stage {
			return s, nil
		}
	}
	return nil, nil
}

func (f *fakeSteps) UpdateStatus(id int, status pipeline.Status) error {
	f.statusSet = append(f.statusSet, status)
	f.steps[id].Status = status
	return nil
}

func (f *fakeSteps) UpdateSchedule(id int, at time.Time) error {
	f.steps[id].Status = pipeline.StatusPlanned
	f.steps[id].ScheduledAt = &at
	return nil
}

func (f *fakeSteps) UpdateNotes(id int, notes string) error {
	f.steps[id].Notes = notes
	return nil
}

type fakeClients struct{}

func (fakeClients) GetByID(id int) (*models.Client, error) {
	return &models.Client{ID: id, Name: "Acme"}, nil
}

type fakeUsers struct{}

func (fakeUsers) GetByID(id int) (*models.User, error) {
	return &models.User{ID: id, Email: "dev@example.com"}, nil
}

type fakeEmail struct {
	failed []string
}

func (f *fakeEmail) SendWelcomeEmail(email, fullName string) error { return nil }

func (f *fakeEmail) SendStepFailedEmail(email, role, clientName, stage string) error {
	f.failed = append(f.failed, stage)
	return nil
}

const ownerID = 42

func newStepFixture(stage pipeline.Stage, status pipeline.Status) (*StepService, *fakeProjects, *fakeSteps) {
	projects := &fakeProjects{projects: map[int]*models.Project{
		1: {ID: 1, OwnerID: ownerID, ClientID: 3, Role: "Go developer", CurrentStage: stage},
	}}
	steps := &fakeSteps{steps: map[int]*models.InterviewStep{
		10: {ID: 10, ProjectID: 1, Stage: stage, Status: status},
	}}
	svc := NewStepService(projects, steps, fakeClients{}, fakeUsers{})
	return svc, projects, steps
}

func TestTransitionForwardRequiresSettledStep(t *testing.T) {
	cases := []struct {
		status  pipeline.Status
		wantErr error
	}{
		{pipeline.StatusValidated, nil},
		{pipeline.StatusWaitingFeedback, nil},
		{pipeline.StatusToPlan, ErrNotEligible},
		{pipeline.StatusPlanned, ErrNotEligible},
		{pipeline.StatusFailed, ErrNotEligible},
		{pipeline.StatusCanceled, ErrNotEligible},
	}
	for _, tc := range cases {
		t.Run(string(tc.status), func(t *testing.T) {
			svc, projects, _ := newStepFixture(pipeline.StageTechnicalTest, tc.status)
			err := svc.Transition(ownerID, pipeline.TransitionRequest{
				ProjectID: 1,
				FromStage: pipeline.StageTechnicalTest,
				ToStage:   pipeline.StageTechnicalInterview,
			})
			if !errors.Is(err, tc.wantErr) && err != tc.wantErr {
				t.Fatalf("Transition() err = %v, want %v", err, tc.wantErr)
			}
			if tc.wantErr == nil && projects.projects[1].CurrentStage != pipeline.StageTechnicalInterview {
				t.Error("stage pointer not advanced")
			}
			if tc.wantErr != nil && len(projects.stageSet) != 0 {
				t.Error("stage pointer moved despite rejection")
			}
		})
	}
}

func TestTransitionBackwardAlwaysAllowed(t *testing.T) {
	svc, projects, _ := newStepFixture(pipeline.StageTechnicalTest, pipeline.StatusFailed)
	err := svc.Transition(ownerID, pipeline.TransitionRequest{
		ProjectID: 1,
		FromStage: pipeline.StageTechnicalTest,
		ToStage:   pipeline.StageSalesInterview,
	})
	if err != nil {
		t.Fatalf("backward move refused: %v", err)
	}
	if projects.projects[1].CurrentStage != pipeline.StageSalesInterview {
		t.Error("stage pointer not moved")
	}
}

func TestTransitionRejectsStaleAndUnknown(t *testing.T) {
	svc, _, _ := newStepFixture(pipeline.StageTechnicalTest, pipeline.StatusValidated)

	err := svc.Transition(ownerID, pipeline.TransitionRequest{
		ProjectID: 1, FromStage: pipeline.StagePositioning, ToStage: pipeline.StageTechnicalInterview,
	})
	if !errors.Is(err, ErrStaleStage) {
		t.Errorf("stale from stage: err = %v", err)
	}

	err = svc.Transition(ownerID, pipeline.TransitionRequest{
		ProjectID: 1, FromStage: pipeline.StageTechnicalTest, ToStage: pipeline.Stage("Trial Week"),
	})
	if !errors.Is(err, ErrUnknownStage) {
		t.Errorf("unknown to stage: err = %v", err)
	}

	err = svc.Transition(99, pipeline.TransitionRequest{
		ProjectID: 1, FromStage: pipeline.StageTechnicalTest, ToStage: pipeline.StageTechnicalInterview,
	})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("foreign owner: err = %v", err)
	}
}

func TestTransitionSameStageIsNoop(t *testing.T) {
	svc, projects, _ := newStepFixture(pipeline.StageTechnicalTest, pipeline.StatusToPlan)
	err := svc.Transition(ownerID, pipeline.TransitionRequest{
		ProjectID: 1, FromStage: pipeline.StageTechnicalTest, ToStage: pipeline.StageTechnicalTest,
	})
	if err != nil {
		t.Fatalf("same-stage request must be accepted: %v", err)
	}
	if len(projects.stageSet) != 0 {
		t.Error("same-stage request wrote the stage pointer")
	}
}

func TestApplyChecksTransitionTable(t *testing.T) {
	svc, _, steps := newStepFixture(pipeline.StageSalesInterview, pipeline.StatusPlanned)

	step, err := svc.Apply(ownerID, pipeline.MarkValidated{ID: 10})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if step.Status != pipeline.StatusValidated {
		t.Errorf("status = %s", step.Status)
	}

	// Validated is terminal for the stage instance.
	if _, err := svc.Apply(ownerID, pipeline.MarkFailed{ID: 10}); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("terminal step accepted another action: err = %v", err)
	}
	if len(steps.statusSet) != 1 {
		t.Errorf("%d status writes, want 1", len(steps.statusSet))
	}
}

func TestApplyFailedSendsEmail(t *testing.T) {
	svc, _, _ := newStepFixture(pipeline.StageManagerInterview, pipeline.StatusWaitingFeedback)
	mail := &fakeEmail{}
	svc.Email = mail

	if _, err := svc.Apply(ownerID, pipeline.MarkFailed{ID: 10}); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if len(mail.failed) != 1 || mail.failed[0] != string(pipeline.StageManagerInterview) {
		t.Errorf("failure emails: %v", mail.failed)
	}

	// Validation does not mail.
	svc2, _, _ := newStepFixture(pipeline.StageManagerInterview, pipeline.StatusWaitingFeedback)
	svc2.Email = mail
	if _, err := svc2.Apply(ownerID, pipeline.MarkValidated{ID: 10}); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if len(mail.failed) != 1 {
		t.Error("validation must not send a failure email")
	}
}

func TestSchedule(t *testing.T) {
	svc, _, _ := newStepFixture(pipeline.StageTechnicalTest, pipeline.StatusToPlan)
	at := time.Date(2026, 4, 2, 10, 0, 0, 0, time.UTC)

	step, err := svc.Schedule(ownerID, 10, at)
	if err != nil {
		t.Fatalf("Schedule: %v", err)
	}
	if step.Status != pipeline.StatusPlanned || step.ScheduledAt == nil || !step.ScheduledAt.Equal(at) {
		t.Errorf("step after schedule: %+v", step)
	}

	// Re-planning moves the date.
	later := at.Add(48 * time.Hour)
	if _, err := svc.Schedule(ownerID, 10, later); err != nil {
		t.Fatalf("re-schedule: %v", err)
	}

	// A settled step cannot be scheduled.
	svc2, _, _ := newStepFixture(pipeline.StageTechnicalTest, pipeline.StatusValidated)
	if _, err := svc2.Schedule(ownerID, 10, at); !errors.Is(err, ErrNotSchedulable) {
		t.Errorf("settled step scheduled: err = %v", err)
	}
}
