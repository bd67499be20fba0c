package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/sportsclub/portal/internal/api/metrics"
	"github.com/sportsclub/portal/internal/core/domain"
	"github.com/sportsclub/portal/internal/core/ports"
)

const (
	defaultListLimit = 20
	maxListLimit     = 100
)

// RegistrationService runs the registration workflow.
type RegistrationService struct {
	registrations ports.RegistrationRepository
	history       ports.RegistrationHistoryRepository
	users         ports.UserRepository
	sports        ports.SportRepository
	log           zerolog.Logger
	now           func() time.Time
}

func NewRegistrationService(
	registrations ports.RegistrationRepository,
	history ports.RegistrationHistoryRepository,
	users ports.UserRepository,
	sports ports.SportRepository,
	log zerolog.Logger,
) *RegistrationService {
	return &RegistrationService{
		registrations: registrations,
		history:       history,
		users:         users,
		sports:        sports,
		log:           log,
		now:           time.Now,
	}
}

// Submit creates a pending registration for the calling student. A second
// submission for the same sport fails with domain.ErrDuplicateRegistration.
func (s *RegistrationService) Submit(ctx context.Context, actor *domain.Identity, in ports.SubmitRegistrationInput) (*domain.Registration, error) {
	if actor == nil {
		return nil, domain.ErrUnauthenticated
	}
	if err := validateSubmission(in); err != nil {
		return nil, err
	}

	sport, err := s.resolveSport(ctx, in)
	if err != nil {
		return nil, err
	}

	user, err := s.users.FindByID(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	reg, err := s.registrations.Create(ctx, &domain.Registration{
		UserID:        user.ID,
		SportID:       sport.ID,
		Sport:         sport.Name,
		FullName:      strings.TrimSpace(in.FullName),
		Year:          in.Year,
		Branch:        in.Branch,
		Age:           in.Age,
		Address:       strings.TrimSpace(in.Address),
		ContactNumber: in.ContactNumber,
		Email:         user.Email,
		ProfilePic:    user.ProfilePic,
		Status:        domain.RegistrationPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	})
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateRegistration) {
			s.log.Info().Str("user_id", user.ID).Str("sport", sport.Name).Msg("duplicate registration rejected")
		}
		return nil, err
	}

	metrics.RegistrationsSubmittedTotal.WithLabelValues(sport.Name).Inc()
	s.log.Info().Str("registration_id", reg.ID).Str("user_id", user.ID).Str("sport", sport.Name).Msg("registration submitted")
	return reg, nil
}

// resolveSport prefers the id reference and falls back to a name lookup.
func (s *RegistrationService) resolveSport(ctx context.Context, in ports.SubmitRegistrationInput) (*domain.Sport, error) {
	if in.SportID != "" {
		return s.sports.FindByID(ctx, in.SportID)
	}
	return s.sports.FindByName(ctx, strings.TrimSpace(in.SportName))
}

func validateSubmission(in ports.SubmitRegistrationInput) error {
	ve := &domain.ValidationError{}
	if in.SportID == "" && strings.TrimSpace(in.SportName) == "" {
		ve.Add("sport", "sport is required")
	}
	if strings.TrimSpace(in.FullName) == "" {
		ve.Add("full_name", "full_name is required")
	}
	if !contains(domain.RegistrationYears, in.Year) {
		ve.Add("year", "year must be one of: "+strings.Join(domain.RegistrationYears, ", "))
	}
	if !contains(domain.RegistrationBranches, in.Branch) {
		ve.Add("branch", "branch must be one of: "+strings.Join(domain.RegistrationBranches, ", "))
	}
	if in.Age < 16 || in.Age > 30 {
		ve.Add("age", "age must be between 16 and 30")
	}
	if strings.TrimSpace(in.Address) == "" {
		ve.Add("address", "address is required")
	}
	return ve.OrNil()
}

func contains(values []string, v string) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}

// Get returns a registration to its owner or to an admin.
func (s *RegistrationService) Get(ctx context.Context, actor *domain.Identity, id string) (*domain.Registration, error) {
	reg, err := s.registrations.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.CanAccessUser(reg.UserID) {
		return nil, domain.ErrForbidden
	}
	return reg, nil
}

// List returns every registration to admins and only their own to students.
func (s *RegistrationService) List(ctx context.Context, actor *domain.Identity, in ports.ListRegistrationsInput) (*ports.ListRegistrationsResult, error) {
	if actor == nil {
		return nil, domain.ErrUnauthenticated
	}

	filter := ports.ListRegistrationsFilter{SportID: in.SportID, Page: in.Page, Limit: in.Limit}
	if !actor.IsAdmin() {
		filter.UserID = actor.UserID
	}
	if in.Status != "" {
		st, err := domain.ParseRegistrationStatus(in.Status)
		if err != nil {
			return nil, err
		}
		filter.Status = st
	}
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit <= 0 {
		filter.Limit = defaultListLimit
	}
	if filter.Limit > maxListLimit {
		filter.Limit = maxListLimit
	}

	items, total, err := s.registrations.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list registrations: %w", err)
	}

	totalPages := int((total + int64(filter.Limit) - 1) / int64(filter.Limit))
	return &ports.ListRegistrationsResult{
		Items:      items,
		Total:      total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages,
	}, nil
}

// SetStatus moves a registration to status. The caller's admin role is
// checked by the HTTP layer before this runs.
func (s *RegistrationService) SetStatus(ctx context.Context, actor *domain.Identity, id, status string) (*domain.Registration, error) {
	next, err := domain.ParseRegistrationStatus(status)
	if err != nil {
		return nil, err
	}

	current, err := s.registrations.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !current.Status.CanTransitionTo(next) {
		return nil, fmt.Errorf("%w: from %s to %s", domain.ErrInvalidStatus, current.Status, next)
	}
	if current.Status == next {
		return current, nil
	}

	now := s.now().UTC()
	updated, err := s.registrations.UpdateStatus(ctx, id, next, now)
	if err != nil {
		return nil, err
	}

	actorID := ""
	if actor != nil {
		actorID = actor.UserID
	}
	entry := &domain.RegistrationHistoryEntry{
		RegistrationID: id,
		From:           current.Status,
		To:             next,
		ActorID:        actorID,
		ChangedAt:      now,
	}
	if err := s.history.Insert(ctx, entry); err != nil {
		s.log.Warn().Err(err).Str("registration_id", id).Msg("failed to insert status history")
	}

	metrics.RegistrationStatusChangesTotal.WithLabelValues(string(current.Status), string(next)).Inc()
	s.log.Info().
		Str("registration_id", id).
		Str("from", string(current.Status)).
		Str("to", string(next)).
		Str("actor_id", actorID).
		Msg("registration status changed")

	return updated, nil
}

// Teams groups accepted registrations by sport, including sports with no
// accepted players yet.
func (s *RegistrationService) Teams(ctx context.Context) ([]domain.Team, error) {
	sports, err := s.sports.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("teams: %w", err)
	}
	accepted, err := s.registrations.ListByStatus(ctx, domain.RegistrationAccepted)
	if err != nil {
		return nil, fmt.Errorf("teams: %w", err)
	}

	teams := make([]domain.Team, len(sports))
	index := make(map[string]int, len(sports))
	for i, sp := range sports {
		teams[i] = domain.Team{SportID: sp.ID, Name: sp.Name, MaxPlayers: sp.MaxPlayers, Players: []domain.TeamPlayer{}}
		index[sp.ID] = i
	}

	for _, reg := range accepted {
		i, ok := index[reg.SportID]
		if !ok {
			continue
		}
		teams[i].Players = append(teams[i].Players, domain.TeamPlayer{
			Name:       reg.FullName,
			Age:        reg.Age,
			Branch:     reg.Branch,
			ProfilePic: reg.ProfilePic,
		})
	}
	for i := range teams {
		teams[i].Full = teams[i].MaxPlayers > 0 && len(teams[i].Players) >= teams[i].MaxPlayers
	}
	return teams, nil
}
