package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"freetrack/internal/models"
	"freetrack/internal/services"
)

type ClientHandler struct {
	Service *services.ClientService
}

func NewClientHandler(service *services.ClientService) *ClientHandler {
	return &ClientHandler{Service: service}
}

type clientRequest struct {
	Name    string `json:"name" binding:"required"`
	City    string `json:"city"`
	Website string `json:"website"`
	Notes   string `json:"notes"`
}

// Create godoc
// @Summary Create a client
// @Tags clients
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body clientRequest true "client"
// @Success 201 {object} models.Client
// @Router /clients [post]
func (h *ClientHandler) Create(c *gin.Context) {
	var req clientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	client := &models.Client{
		OwnerID:   currentUserID(c),
		Name:      req.Name,
		City:      req.City,
		Website:   req.Website,
		Notes:     req.Notes,
		CreatedAt: time.Now(),
	}
	id, err := h.Service.Create(client)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	client.ID = int(id)
	c.JSON(http.StatusCreated, client)
}

func (h *ClientHandler) Update(c *gin.Context) {
	existing, ok := h.ownedClient(c)
	if !ok {
		return
	}
	var req clientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	existing.Name = req.Name
	existing.City = req.City
	existing.Website = req.Website
	existing.Notes = req.Notes

	if err := h.Service.Update(existing); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, existing)
}

func (h *ClientHandler) GetByID(c *gin.Context) {
	client, ok := h.ownedClient(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, client)
}

func (h *ClientHandler) Delete(c *gin.Context) {
	client, ok := h.ownedClient(c)
	if !ok {
		return
	}
	if err := h.Service.Delete(client.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "client deleted"})
}

// List godoc
// @Summary List the caller's clients
// @Tags clients
// @Produce json
// @Security BearerAuth
// @Param page query int false "page"
// @Param size query int false "page size"
// @Param name query string false "name filter"
// @Success 200 {array} models.Client
// @Router /clients [get]
func (h *ClientHandler) List(c *gin.Context) {
	ownerID := currentUserID(c)
	if name := c.Query("name"); name != "" {
		clients, err := h.Service.FindByName(ownerID, name)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, clients)
		return
	}
	limit, offset := pageParams(c)
	clients, err := h.Service.List(ownerID, limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, clients)
}

func (h *ClientHandler) ownedClient(c *gin.Context) (*models.Client, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return nil, false
	}
	client, err := h.Service.GetByID(id)
	if err != nil || client == nil || client.OwnerID != currentUserID(c) {
		c.JSON(http.StatusNotFound, gin.H{"error": "client not found"})
		return nil, false
	}
	return client, true
}
