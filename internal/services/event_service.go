package services

import (
	"context"

	"github.com/google/uuid"
	"golang.org/x/exp/slog"

	"github.com/geevapp/geev/internal/models"
	"github.com/geevapp/geev/internal/repositories"
)

// EventService persists fire-and-forget event records for an external
// indexer. Emission failures are logged, never propagated: a lost event must
// not abort a fund movement that already happened.
type EventService struct {
	eventRepo repositories.EventRepository
}

// NewEventService creates a new EventService
func NewEventService(eventRepo repositories.EventRepository) *EventService {
	return &EventService{eventRepo: eventRepo}
}

// Emit records one event.
func (s *EventService) Emit(ctx context.Context, eventType string, payload map[string]interface{}) {
	event := &models.Event{
		ID:      uuid.NewString(),
		Type:    eventType,
		Payload: payload,
	}
	if err := s.eventRepo.Create(ctx, event); err != nil {
		slog.Error("Failed to persist event", "error", err, "type", eventType)
	}
}

// Recent returns the most recent events.
func (s *EventService) Recent(ctx context.Context, page, limit int) ([]*models.Event, error) {
	return s.eventRepo.FindRecent(ctx, page, limit)
}
