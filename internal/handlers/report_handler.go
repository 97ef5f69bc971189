package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"freetrack/internal/services"
)

type ReportHandler struct {
	Service *services.ReportService
}

func NewReportHandler(service *services.ReportService) *ReportHandler {
	return &ReportHandler{Service: service}
}

// GetSummary godoc
// @Summary Pipeline summary across the caller's projects
// @Tags reports
// @Produce json
// @Security BearerAuth
// @Success 200 {object} services.Summary
// @Router /reports/summary [get]
func (h *ReportHandler) GetSummary(c *gin.Context) {
	summary, err := h.Service.GetSummary(currentUserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, summary)
}

// ProjectReport godoc
// @Summary Download a project's pipeline report as PDF
// @Tags reports
// @Produce application/pdf
// @Security BearerAuth
// @Param id path int true "project id"
// @Success 200 {file} file
// @Router /projects/{id}/report.pdf [get]
func (h *ReportHandler) ProjectReport(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	path, err := h.Service.PipelineReport(currentUserID(c), id)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "project not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.FileAttachment(path, "pipeline_report.pdf")
}
