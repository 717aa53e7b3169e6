package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/geevapp/geev/internal/middleware"
	"github.com/geevapp/geev/internal/services"
)

// GiveawayHandler handles giveaway-related HTTP requests
type GiveawayHandler struct {
	giveawayService services.GiveawayService
}

// NewGiveawayHandler creates a new GiveawayHandler
func NewGiveawayHandler(giveawayService services.GiveawayService) *GiveawayHandler {
	return &GiveawayHandler{
		giveawayService: giveawayService,
	}
}

// CreateGiveawayRequest is the body for POST /giveaways
type CreateGiveawayRequest struct {
	Token           string `json:"token" binding:"required"`
	Amount          int64  `json:"amount" binding:"required"`
	Title           string `json:"title" binding:"required,max=120"`
	DurationSeconds int64  `json:"duration_seconds" binding:"required"`
}

// CreateGiveaway handles POST /giveaways
func (h *GiveawayHandler) CreateGiveaway(c *gin.Context) {
	var request CreateGiveawayRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	id, err := h.giveawayService.CreateGiveaway(
		c.Request.Context(),
		middleware.Actor(c),
		request.Token,
		request.Amount,
		request.Title,
		time.Duration(request.DurationSeconds)*time.Second,
	)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

// EnterGiveaway handles POST /giveaways/:id/enter
func (h *GiveawayHandler) EnterGiveaway(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.giveawayService.EnterGiveaway(c.Request.Context(), middleware.Actor(c), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"entered": true})
}

// PickWinner handles POST /giveaways/:id/pick-winner
func (h *GiveawayHandler) PickWinner(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	winner, err := h.giveawayService.PickWinner(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"winner": winner})
}

// DistributePrize handles POST /giveaways/:id/distribute
func (h *GiveawayHandler) DistributePrize(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.giveawayService.DistributePrize(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"distributed": true})
}

// GetGiveaway handles GET /giveaways/:id
func (h *GiveawayHandler) GetGiveaway(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	giveaway, err := h.giveawayService.GetGiveaway(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, giveaway)
}

// ListGiveaways handles GET /giveaways
func (h *GiveawayHandler) ListGiveaways(c *gin.Context) {
	page, limit := pagination(c)
	giveaways, err := h.giveawayService.ListGiveaways(c.Request.Context(), page, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, giveaways)
}

// ListParticipants handles GET /giveaways/:id/participants
func (h *GiveawayHandler) ListParticipants(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	page, limit := pagination(c)
	entries, err := h.giveawayService.ListParticipants(c.Request.Context(), id, page, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}
