package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/geevapp/geev/internal/services"
)

// EventHandler exposes the recent event feed
type EventHandler struct {
	eventService *services.EventService
}

// NewEventHandler creates a new EventHandler
func NewEventHandler(eventService *services.EventService) *EventHandler {
	return &EventHandler{
		eventService: eventService,
	}
}

// ListEvents handles GET /events
func (h *EventHandler) ListEvents(c *gin.Context) {
	page, limit := pagination(c)
	events, err := h.eventService.Recent(c.Request.Context(), page, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, events)
}
