package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"freetrack/internal/models"
	"freetrack/internal/pipeline"
	"freetrack/internal/services"
)

type ProjectHandler struct {
	Service     *services.ProjectService
	StepService *services.StepService
}

func NewProjectHandler(service *services.ProjectService, stepService *services.StepService) *ProjectHandler {
	return &ProjectHandler{Service: service, StepService: stepService}
}

type projectRequest struct {
	ClientID  int    `json:"client_id" binding:"required"`
	SourceID  *int   `json:"source_id"`
	Role      string `json:"role" binding:"required"`
	DailyRate int    `json:"daily_rate"`
	WorkMode  string `json:"work_mode"`
	TechStack string `json:"tech_stack"`
	Notes     string `json:"notes"`
}

// Create godoc
// @Summary Create a mission and open its pipeline
// @Tags projects
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body projectRequest true "project"
// @Success 201 {object} models.Project
// @Router /projects [post]
func (h *ProjectHandler) Create(c *gin.Context) {
	var req projectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	project := &models.Project{
		OwnerID:   currentUserID(c),
		ClientID:  req.ClientID,
		SourceID:  req.SourceID,
		Role:      req.Role,
		DailyRate: req.DailyRate,
		WorkMode:  req.WorkMode,
		TechStack: req.TechStack,
		Notes:     req.Notes,
		CreatedAt: time.Now(),
	}
	if err := h.Service.Create(project); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, project)
}

func (h *ProjectHandler) Update(c *gin.Context) {
	existing, ok := h.ownedProject(c)
	if !ok {
		return
	}
	var req projectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	existing.ClientID = req.ClientID
	existing.SourceID = req.SourceID
	existing.Role = req.Role
	existing.DailyRate = req.DailyRate
	if req.WorkMode != "" {
		existing.WorkMode = req.WorkMode
	}
	existing.TechStack = req.TechStack
	existing.Notes = req.Notes

	if err := h.Service.Update(existing); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, existing)
}

func (h *ProjectHandler) GetByID(c *gin.Context) {
	project, ok := h.ownedProject(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, project)
}

func (h *ProjectHandler) Delete(c *gin.Context) {
	project, ok := h.ownedProject(c)
	if !ok {
		return
	}
	if err := h.Service.Delete(project.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "project deleted"})
}

// List godoc
// @Summary List the caller's projects
// @Tags projects
// @Produce json
// @Security BearerAuth
// @Param stage query string false "filter by current stage"
// @Param status query string false "filter by current step status"
// @Success 200 {array} models.Project
// @Router /projects [get]
func (h *ProjectHandler) List(c *gin.Context) {
	limit, offset := pageParams(c)
	ownerID := currentUserID(c)

	stage := pipeline.Stage(c.Query("stage"))
	status := pipeline.Status(c.Query("status"))
	if stage != "" || status != "" {
		projects, err := h.Service.Filter(ownerID, stage, status, limit, offset)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, projects)
		return
	}
	projects, err := h.Service.List(ownerID, limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, projects)
}

// Steps godoc
// @Summary List a project's interview steps in pipeline order
// @Tags projects
// @Produce json
// @Security BearerAuth
// @Param id path int true "project id"
// @Success 200 {array} models.InterviewStep
// @Router /projects/{id}/steps [get]
func (h *ProjectHandler) Steps(c *gin.Context) {
	project, ok := h.ownedProject(c)
	if !ok {
		return
	}
	steps, err := h.Service.Steps(project.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, steps)
}

type transitionRequest struct {
	FromStage pipeline.Stage `json:"from_stage" binding:"required"`
	ToStage   pipeline.Stage `json:"to_stage" binding:"required"`
	Notes     string         `json:"notes"`
}

// Transition godoc
// @Summary Move a project's current stage pointer
// @Tags projects
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "project id"
// @Param body body transitionRequest true "transition"
// @Success 200 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /projects/{id}/transition [post]
func (h *ProjectHandler) Transition(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	var req transitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err = h.StepService.Transition(currentUserID(c), pipeline.TransitionRequest{
		ProjectID: id,
		FromStage: req.FromStage,
		ToStage:   req.ToStage,
		Notes:     req.Notes,
	})
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"message": "transition applied"})
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "project not found"})
	case errors.Is(err, services.ErrUnknownStage):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrStaleStage), errors.Is(err, services.ErrNotEligible):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

func (h *ProjectHandler) ownedProject(c *gin.Context) (*models.Project, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return nil, false
	}
	project, err := h.Service.GetByID(id)
	if err != nil || project == nil || project.OwnerID != currentUserID(c) {
		c.JSON(http.StatusNotFound, gin.H{"error": "project not found"})
		return nil, false
	}
	return project, true
}
