package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/sportsclub/portal/internal/core/domain"
	"github.com/sportsclub/portal/internal/core/ports"
)

type RegistrationRepository struct {
	mu    sync.RWMutex
	byID  map[string]*domain.Registration
	order []string
}

func NewRegistrationRepository() *RegistrationRepository {
	return &RegistrationRepository{byID: make(map[string]*domain.Registration)}
}

func cloneRegistration(r *domain.Registration) *domain.Registration {
	c := *r
	return &c
}

func (r *RegistrationRepository) Create(_ context.Context, reg *domain.Registration) (*domain.Registration, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.byID {
		if existing.UserID == reg.UserID && existing.SportID == reg.SportID {
			return nil, domain.ErrDuplicateRegistration
		}
	}
	stored := cloneRegistration(reg)
	stored.ID = uuid.NewString()
	r.byID[stored.ID] = stored
	r.order = append(r.order, stored.ID)
	return cloneRegistration(stored), nil
}

func (r *RegistrationRepository) FindByID(_ context.Context, id string) (*domain.Registration, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	reg, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrRegistrationNotFound
	}
	return cloneRegistration(reg), nil
}

func (r *RegistrationRepository) List(_ context.Context, f ports.ListRegistrationsFilter) ([]*domain.Registration, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	// newest first, like the Mongo sort on created_at desc
	var matched []*domain.Registration
	for i := len(r.order) - 1; i >= 0; i-- {
		reg := r.byID[r.order[i]]
		if f.UserID != "" && reg.UserID != f.UserID {
			continue
		}
		if f.SportID != "" && reg.SportID != f.SportID {
			continue
		}
		if f.Status != "" && reg.Status != f.Status {
			continue
		}
		matched = append(matched, cloneRegistration(reg))
	}

	total := int64(len(matched))
	limit := f.Limit
	if limit <= 0 {
		limit = len(matched)
	}
	skip := (f.Page - 1) * limit
	if skip < 0 {
		skip = 0
	}
	if skip > len(matched) {
		return []*domain.Registration{}, total, nil
	}
	end := skip + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[skip:end], total, nil
}

func (r *RegistrationRepository) ListByStatus(_ context.Context, status domain.RegistrationStatus) ([]*domain.Registration, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*domain.Registration, 0)
	for _, id := range r.order {
		if reg := r.byID[id]; reg.Status == status {
			out = append(out, cloneRegistration(reg))
		}
	}
	return out, nil
}

func (r *RegistrationRepository) UpdateStatus(_ context.Context, id string, status domain.RegistrationStatus, at time.Time) (*domain.Registration, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	reg, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrRegistrationNotFound
	}
	reg.Status = status
	reg.UpdatedAt = at
	return cloneRegistration(reg), nil
}

// Count returns the number of registrations for (userID, sportID).
func (r *RegistrationRepository) Count(userID, sportID string) int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n := 0
	for _, reg := range r.byID {
		if reg.UserID == userID && reg.SportID == sportID {
			n++
		}
	}
	return n
}

// HistoryRepository records status changes in memory.
type HistoryRepository struct {
	mu      sync.Mutex
	entries []domain.RegistrationHistoryEntry
	err     error
}

func NewHistoryRepository() *HistoryRepository {
	return &HistoryRepository{}
}

// FailWith makes subsequent Insert calls return err.
func (h *HistoryRepository) FailWith(err error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.err = err
}

func (h *HistoryRepository) Insert(_ context.Context, e *domain.RegistrationHistoryEntry) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.err != nil {
		return h.err
	}
	h.entries = append(h.entries, *e)
	return nil
}

func (h *HistoryRepository) Entries() []domain.RegistrationHistoryEntry {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]domain.RegistrationHistoryEntry, len(h.entries))
	copy(out, h.entries)
	return out
}
