package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"freetrack/internal/pipeline"
	"freetrack/internal/services"
)

type StepHandler struct {
	Service *services.StepService
}

func NewStepHandler(service *services.StepService) *StepHandler {
	return &StepHandler{Service: service}
}

// Each status change has its own endpoint. They all funnel into the same
// transition table, but keeping four verbs lets a verb grow its own side
// effects without touching the others.

// MarkWaitingFeedback godoc
// @Summary Mark a step as waiting for feedback
// @Tags steps
// @Produce json
// @Security BearerAuth
// @Param id path int true "step id"
// @Success 200 {object} models.InterviewStep
// @Failure 409 {object} map[string]string
// @Router /steps/{id}/waiting-feedback [post]
func (h *StepHandler) MarkWaitingFeedback(c *gin.Context) {
	h.apply(c, func(id int) pipeline.StatusAction { return pipeline.MarkWaitingFeedback{ID: id} })
}

// Validate godoc
// @Summary Validate a step
// @Tags steps
// @Produce json
// @Security BearerAuth
// @Param id path int true "step id"
// @Success 200 {object} models.InterviewStep
// @Failure 409 {object} map[string]string
// @Router /steps/{id}/validate [post]
func (h *StepHandler) Validate(c *gin.Context) {
	h.apply(c, func(id int) pipeline.StatusAction { return pipeline.MarkValidated{ID: id} })
}

// Fail godoc
// @Summary Mark a step as failed
// @Tags steps
// @Produce json
// @Security BearerAuth
// @Param id path int true "step id"
// @Success 200 {object} models.InterviewStep
// @Failure 409 {object} map[string]string
// @Router /steps/{id}/fail [post]
func (h *StepHandler) Fail(c *gin.Context) {
	h.apply(c, func(id int) pipeline.StatusAction { return pipeline.MarkFailed{ID: id} })
}

// Cancel godoc
// @Summary Cancel a step
// @Tags steps
// @Produce json
// @Security BearerAuth
// @Param id path int true "step id"
// @Success 200 {object} models.InterviewStep
// @Failure 409 {object} map[string]string
// @Router /steps/{id}/cancel [post]
func (h *StepHandler) Cancel(c *gin.Context) {
	h.apply(c, func(id int) pipeline.StatusAction { return pipeline.MarkCanceled{ID: id} })
}

func (h *StepHandler) apply(c *gin.Context, action func(id int) pipeline.StatusAction) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	step, err := h.Service.Apply(currentUserID(c), action(id))
	switch {
	case err == nil:
		c.JSON(http.StatusOK, step)
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "step not found"})
	case errors.Is(err, services.ErrInvalidTransition):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

type scheduleRequest struct {
	DateTime time.Time `json:"datetime" binding:"required"`
}

// Schedule godoc
// @Summary Plan a step for a date
// @Tags steps
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "step id"
// @Param body body scheduleRequest true "schedule"
// @Success 200 {object} models.InterviewStep
// @Failure 409 {object} map[string]string
// @Router /steps/{id}/schedule [post]
func (h *StepHandler) Schedule(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	var req scheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	step, err := h.Service.Schedule(currentUserID(c), id, req.DateTime)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, step)
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "step not found"})
	case errors.Is(err, services.ErrNotSchedulable):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
