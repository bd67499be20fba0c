package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/sportsclub/portal/internal/core/domain"
	"github.com/sportsclub/portal/internal/core/ports"
)

type EventService struct {
	events ports.EventRepository
	sports ports.SportRepository
	log    zerolog.Logger
}

func NewEventService(events ports.EventRepository, sports ports.SportRepository, log zerolog.Logger) *EventService {
	return &EventService{events: events, sports: sports, log: log}
}

// List returns events by date with their sport attached. An event whose sport
// was deleted is returned without one.
func (s *EventService) List(ctx context.Context) ([]*domain.Event, error) {
	events, err := s.events.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	sports, err := s.sports.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}

	byID := make(map[string]*domain.Sport, len(sports))
	for _, sp := range sports {
		byID[sp.ID] = sp
	}
	for _, e := range events {
		e.Sport = byID[e.SportID]
	}
	return events, nil
}

func (s *EventService) Create(ctx context.Context, in ports.CreateEventInput) (*domain.Event, error) {
	ve := &domain.ValidationError{}
	if strings.TrimSpace(in.Title) == "" {
		ve.Add("title", "title is required")
	}
	if in.Date.IsZero() {
		ve.Add("date", "date is required")
	}
	if strings.TrimSpace(in.Time) == "" {
		ve.Add("time", "time is required")
	}
	if strings.TrimSpace(in.Venue) == "" {
		ve.Add("venue", "venue is required")
	}
	if in.SportID == "" {
		ve.Add("sport_id", "sport_id is required")
	}
	if err := ve.OrNil(); err != nil {
		return nil, err
	}

	sport, err := s.sports.FindByID(ctx, in.SportID)
	if err != nil {
		return nil, err
	}

	event, err := s.events.Create(ctx, &domain.Event{
		Title:       strings.TrimSpace(in.Title),
		Description: in.Description,
		Date:        in.Date.UTC(),
		Time:        in.Time,
		Venue:       strings.TrimSpace(in.Venue),
		SportID:     sport.ID,
		CreatedAt:   time.Now().UTC(),
	})
	if err != nil {
		return nil, err
	}
	event.Sport = sport

	s.log.Info().Str("event_id", event.ID).Str("sport", sport.Name).Msg("event created")
	return event, nil
}

func (s *EventService) Delete(ctx context.Context, id string) error {
	if err := s.events.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info().Str("event_id", id).Msg("event deleted")
	return nil
}
