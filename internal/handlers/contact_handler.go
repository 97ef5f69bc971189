package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"freetrack/internal/models"
	"freetrack/internal/services"
)

type ContactHandler struct {
	Service *services.ContactService
}

func NewContactHandler(service *services.ContactService) *ContactHandler {
	return &ContactHandler{Service: service}
}

type contactRequest struct {
	ClientID  int    `json:"client_id" binding:"required"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Role      string `json:"role"`
	Notes     string `json:"notes"`
}

// Create godoc
// @Summary Create a contact
// @Tags contacts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body contactRequest true "contact"
// @Success 201 {object} models.Contact
// @Router /contacts [post]
func (h *ContactHandler) Create(c *gin.Context) {
	var req contactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	contact := &models.Contact{
		OwnerID:   currentUserID(c),
		ClientID:  req.ClientID,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
		Role:      req.Role,
		Notes:     req.Notes,
		CreatedAt: time.Now(),
	}
	id, err := h.Service.Create(contact)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	contact.ID = int(id)
	c.JSON(http.StatusCreated, contact)
}

func (h *ContactHandler) Update(c *gin.Context) {
	existing, ok := h.ownedContact(c)
	if !ok {
		return
	}
	var req contactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	existing.ClientID = req.ClientID
	existing.FirstName = req.FirstName
	existing.LastName = req.LastName
	existing.Email = req.Email
	existing.Phone = req.Phone
	existing.Role = req.Role
	existing.Notes = req.Notes

	if err := h.Service.Update(existing); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, existing)
}

func (h *ContactHandler) GetByID(c *gin.Context) {
	contact, ok := h.ownedContact(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, contact)
}

func (h *ContactHandler) Delete(c *gin.Context) {
	contact, ok := h.ownedContact(c)
	if !ok {
		return
	}
	if err := h.Service.Delete(contact.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "contact deleted"})
}

// List godoc
// @Summary List the caller's contacts
// @Tags contacts
// @Produce json
// @Security BearerAuth
// @Param page query int false "page"
// @Param size query int false "page size"
// @Param name query string false "name filter"
// @Success 200 {array} models.Contact
// @Router /contacts [get]
func (h *ContactHandler) List(c *gin.Context) {
	ownerID := currentUserID(c)
	if name := c.Query("name"); name != "" {
		contacts, err := h.Service.FindByName(ownerID, name)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, contacts)
		return
	}
	limit, offset := pageParams(c)
	contacts, err := h.Service.List(ownerID, limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, contacts)
}

func (h *ContactHandler) ownedContact(c *gin.Context) (*models.Contact, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return nil, false
	}
	contact, err := h.Service.GetByID(id)
	if err != nil || contact == nil || contact.OwnerID != currentUserID(c) {
		c.JSON(http.StatusNotFound, gin.H{"error": "contact not found"})
		return nil, false
	}
	return contact, true
}
