package ports

import (
	"context"
	"time"

	"github.com/sportsclub/portal/internal/core/domain"
)

// ListRegistrationsFilter carries the query parameters for listing registrations.
type ListRegistrationsFilter struct {
	UserID  string // empty = no filter (admin); non-empty = scoped to one student
	SportID string
	Status  domain.RegistrationStatus
	Page    int // 1-based
	Limit   int
}

// RegistrationRepository persists registrations. Create returns
// domain.ErrDuplicateRegistration when (UserID, SportID) already exists; the
// check is the store's unique index, not a prior read.
type RegistrationRepository interface {
	Create(ctx context.Context, r *domain.Registration) (*domain.Registration, error)
	FindByID(ctx context.Context, id string) (*domain.Registration, error)
	List(ctx context.Context, filter ListRegistrationsFilter) ([]*domain.Registration, int64, error)
	ListByStatus(ctx context.Context, status domain.RegistrationStatus) ([]*domain.Registration, error)
	UpdateStatus(ctx context.Context, id string, status domain.RegistrationStatus, at time.Time) (*domain.Registration, error)
}

// RegistrationHistoryRepository stores the audit trail of status changes.
type RegistrationHistoryRepository interface {
	Insert(ctx context.Context, entry *domain.RegistrationHistoryEntry) error
}
