package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"freetrack/internal/pipeline"
	"freetrack/internal/services"
)

type BoardHandler struct {
	Service *services.StepService
}

func NewBoardHandler(service *services.StepService) *BoardHandler {
	return &BoardHandler{Service: service}
}

type boardResponse struct {
	Cards []*pipeline.Card `json:"cards"`
	Order []pipeline.Stage `json:"order"`
}

// Get godoc
// @Summary Snapshot of the caller's kanban board
// @Description One card per in-flight project plus the canonical stage order.
// @Tags board
// @Produce json
// @Security BearerAuth
// @Success 200 {object} boardResponse
// @Router /board [get]
func (h *BoardHandler) Get(c *gin.Context) {
	cards, err := h.Service.Board(currentUserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if cards == nil {
		cards = []*pipeline.Card{}
	}
	c.JSON(http.StatusOK, boardResponse{Cards: cards, Order: pipeline.Stages})
}
