package ports

import (
	"context"

	"github.com/sportsclub/portal/internal/core/domain"
)

// SportRepository persists sports. Names are unique.
type SportRepository interface {
	Create(ctx context.Context, s *domain.Sport) (*domain.Sport, error)
	FindByID(ctx context.Context, id string) (*domain.Sport, error)
	FindByName(ctx context.Context, name string) (*domain.Sport, error)
	List(ctx context.Context) ([]*domain.Sport, error)
	Delete(ctx context.Context, id string) error
}

// EventRepository persists club events.
type EventRepository interface {
	Create(ctx context.Context, e *domain.Event) (*domain.Event, error)
	// List returns events ordered by date ascending.
	List(ctx context.Context) ([]*domain.Event, error)
	Delete(ctx context.Context, id string) error
}
