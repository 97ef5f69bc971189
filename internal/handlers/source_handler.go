package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"freetrack/internal/models"
	"freetrack/internal/services"
)

type SourceHandler struct {
	Service *services.SourceService
}

func NewSourceHandler(service *services.SourceService) *SourceHandler {
	return &SourceHandler{Service: service}
}

type sourceRequest struct {
	Name string `json:"name" binding:"required"`
	Kind string `json:"kind"`
	Link string `json:"link"`
}

// Create godoc
// @Summary Create a source
// @Tags sources
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body sourceRequest true "source"
// @Success 201 {object} models.Source
// @Router /sources [post]
func (h *SourceHandler) Create(c *gin.Context) {
	var req sourceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	source := &models.Source{
		OwnerID:   currentUserID(c),
		Name:      req.Name,
		Kind:      req.Kind,
		Link:      req.Link,
		CreatedAt: time.Now(),
	}
	id, err := h.Service.Create(source)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	source.ID = int(id)
	c.JSON(http.StatusCreated, source)
}

func (h *SourceHandler) Update(c *gin.Context) {
	existing, ok := h.ownedSource(c)
	if !ok {
		return
	}
	var req sourceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	existing.Name = req.Name
	existing.Kind = req.Kind
	existing.Link = req.Link

	if err := h.Service.Update(existing); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, existing)
}

func (h *SourceHandler) GetByID(c *gin.Context) {
	source, ok := h.ownedSource(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, source)
}

func (h *SourceHandler) Delete(c *gin.Context) {
	source, ok := h.ownedSource(c)
	if !ok {
		return
	}
	if err := h.Service.Delete(source.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "source deleted"})
}

func (h *SourceHandler) List(c *gin.Context) {
	limit, offset := pageParams(c)
	sources, err := h.Service.List(currentUserID(c), limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, sources)
}

func (h *SourceHandler) ownedSource(c *gin.Context) (*models.Source, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return nil, false
	}
	source, err := h.Service.GetByID(id)
	if err != nil || source == nil || source.OwnerID != currentUserID(c) {
		c.JSON(http.StatusNotFound, gin.H{"error": "source not found"})
		return nil, false
	}
	return source, true
}
