package ports

import (
	"context"
	"time"

	"github.com/sportsclub/portal/internal/core/domain"
)

type SportService interface {
	List(ctx context.Context) ([]*domain.Sport, error)
	Create(ctx context.Context, name string, maxPlayers int) (*domain.Sport, error)
	Delete(ctx context.Context, id string) error
}

// CreateEventInput carries a new event.
type CreateEventInput struct {
	Title       string
	Description string
	Date        time.Time
	Time        string
	Venue       string
	SportID     string
}

type EventService interface {
	List(ctx context.Context) ([]*domain.Event, error)
	Create(ctx context.Context, input CreateEventInput) (*domain.Event, error)
	Delete(ctx context.Context, id string) error
}
