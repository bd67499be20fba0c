package ports

import (
	"context"

	"github.com/sportsclub/portal/internal/core/domain"
)

// SubmitRegistrationInput carries the applicant form. SportID is preferred;
// SportName is accepted as a lookup fallback for older clients.
type SubmitRegistrationInput struct {
	SportID       string
	SportName     string
	FullName      string
	Year          string
	Branch        string
	Age           int
	Address       string
	ContactNumber string
}

// ListRegistrationsInput carries the list endpoint query.
type ListRegistrationsInput struct {
	SportID string
	Status  string
	Page    int
	Limit   int
}

// ListRegistrationsResult is one page of registrations.
type ListRegistrationsResult struct {
	Items      []*domain.Registration
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// RegistrationService is the registration workflow. Authorization for
// SetStatus (admin only) is enforced at the HTTP boundary.
type RegistrationService interface {
	Submit(ctx context.Context, actor *domain.Identity, input SubmitRegistrationInput) (*domain.Registration, error)
	Get(ctx context.Context, actor *domain.Identity, id string) (*domain.Registration, error)
	List(ctx context.Context, actor *domain.Identity, input ListRegistrationsInput) (*ListRegistrationsResult, error)
	SetStatus(ctx context.Context, actor *domain.Identity, id, status string) (*domain.Registration, error)
	Teams(ctx context.Context) ([]domain.Team, error)
}
