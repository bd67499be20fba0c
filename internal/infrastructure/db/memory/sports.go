package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/sportsclub/portal/internal/core/domain"
)

type SportRepository struct {
	mu   sync.RWMutex
	byID map[string]*domain.Sport
}

func NewSportRepository() *SportRepository {
	return &SportRepository{byID: make(map[string]*domain.Sport)}
}

func (r *SportRepository) Create(_ context.Context, s *domain.Sport) (*domain.Sport, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.byID {
		if strings.EqualFold(existing.Name, s.Name) {
			return nil, domain.ErrSportExists
		}
	}
	stored := *s
	stored.ID = uuid.NewString()
	r.byID[stored.ID] = &stored
	out := stored
	return &out, nil
}

func (r *SportRepository) FindByID(_ context.Context, id string) (*domain.Sport, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrSportNotFound
	}
	out := *s
	return &out, nil
}

func (r *SportRepository) FindByName(_ context.Context, name string) (*domain.Sport, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, s := range r.byID {
		if strings.EqualFold(s.Name, name) {
			out := *s
			return &out, nil
		}
	}
	return nil, domain.ErrSportNotFound
}

func (r *SportRepository) List(_ context.Context) ([]*domain.Sport, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*domain.Sport, 0, len(r.byID))
	for _, s := range r.byID {
		c := *s
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool {
		return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name)
	})
	return out, nil
}

func (r *SportRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[id]; !ok {
		return domain.ErrSportNotFound
	}
	delete(r.byID, id)
	return nil
}

type EventRepository struct {
	mu   sync.RWMutex
	byID map[string]*domain.Event
}

func NewEventRepository() *EventRepository {
	return &EventRepository{byID: make(map[string]*domain.Event)}
}

func (r *EventRepository) Create(_ context.Context, e *domain.Event) (*domain.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *e
	stored.ID = uuid.NewString()
	r.byID[stored.ID] = &stored
	out := stored
	return &out, nil
}

func (r *EventRepository) List(_ context.Context) ([]*domain.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*domain.Event, 0, len(r.byID))
	for _, e := range r.byID {
		c := *e
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

func (r *EventRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[id]; !ok {
		return domain.ErrEventNotFound
	}
	delete(r.byID, id)
	return nil
}
