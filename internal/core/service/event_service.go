package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/vidtube/user-service/internal/core/domain"
	"github.com/vidtube/user-service/internal/core/ports"
)

type eventService struct {
	eventRepo ports.EventRepository
	log       zerolog.Logger
}

// NewEventService returns an EventService that appends account events to the
// audit trail.
func NewEventService(eventRepo ports.EventRepository, log zerolog.Logger) ports.EventService {
	return &eventService{eventRepo: eventRepo, log: log}
}

// Record persists a single account event.
func (s *eventService) Record(ctx context.Context, in ports.AccountEventInput) error {
	event := &domain.AccountEvent{
		Username:  in.Username,
		Action:    in.Action,
		Timestamp: in.Timestamp,
		RequestID: in.RequestID,
	}

	if err := s.eventRepo.InsertEvent(ctx, event); err != nil {
		return fmt.Errorf("record account event: %w", err)
	}

	s.log.Debug().
		Str("username", in.Username).
		Str("action", string(in.Action)).
		Msg("account event recorded")

	return nil
}
