package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sportsclub/portal/internal/core/domain"
	"github.com/sportsclub/portal/internal/core/ports"
)

func form(sportID string) ports.SubmitRegistrationInput {
	return ports.SubmitRegistrationInput{
		SportID:  sportID,
		FullName: "Alice Applicant",
		Year:     "2nd Year",
		Branch:   "Computer Science",
		Age:      20,
		Address:  "Hall 4, Room 12",
	}
}

func TestRegistrationService_Submit(t *testing.T) {
	f := newFixture()
	alice := f.seedUser(t, "alice", "alice@example.com", domain.RoleStudent)
	football := f.seedSport(t, "Football", 11)

	reg, err := f.registration.Submit(context.Background(), alice, form(football.ID))
	require.NoError(t, err)

	assert.NotEmpty(t, reg.ID)
	assert.Equal(t, alice.UserID, reg.UserID)
	assert.Equal(t, football.ID, reg.SportID)
	assert.Equal(t, "Football", reg.Sport)
	assert.Equal(t, domain.RegistrationPending, reg.Status)
	assert.Equal(t, "alice@example.com", reg.Email)
	assert.Equal(t, "/uploads/alice.png", reg.ProfilePic)
	assert.False(t, reg.CreatedAt.IsZero())
}

func TestRegistrationService_Submit_BySportName(t *testing.T) {
	f := newFixture()
	alice := f.seedUser(t, "alice", "alice@example.com", domain.RoleStudent)
	cricket := f.seedSport(t, "Cricket", 11)

	in := form("")
	in.SportName = "cricket"
	reg, err := f.registration.Submit(context.Background(), alice, in)
	require.NoError(t, err)
	assert.Equal(t, cricket.ID, reg.SportID)

	in.SportName = "Quidditch"
	_, err = f.registration.Submit(context.Background(), alice, in)
	assert.ErrorIs(t, err, domain.ErrSportNotFound)
}

func TestRegistrationService_Submit_Duplicate(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	bob := f.seedUser(t, "bob", "bob@example.com", domain.RoleStudent)
	football := f.seedSport(t, "Football", 11)

	_, err := f.registration.Submit(ctx, bob, form(football.ID))
	require.NoError(t, err)

	_, err = f.registration.Submit(ctx, bob, form(football.ID))
	assert.ErrorIs(t, err, domain.ErrDuplicateRegistration)
	assert.Equal(t, 1, f.registrations.Count(bob.UserID, football.ID))
}

func TestRegistrationService_Submit_ConcurrentDuplicates(t *testing.T) {
	f := newFixture()
	bob := f.seedUser(t, "bob", "bob@example.com", domain.RoleStudent)
	football := f.seedSport(t, "Football", 11)

	const attempts = 8
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
		conflicts int
	)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.registration.Submit(context.Background(), bob, form(football.ID))
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				successes++
			case errors.Is(err, domain.ErrDuplicateRegistration):
				conflicts++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, successes)
	assert.Equal(t, attempts-1, conflicts)
	assert.Equal(t, 1, f.registrations.Count(bob.UserID, football.ID))
}

func TestRegistrationService_Submit_Validation(t *testing.T) {
	f := newFixture()
	alice := f.seedUser(t, "alice", "alice@example.com", domain.RoleStudent)

	_, err := f.registration.Submit(context.Background(), alice, ports.SubmitRegistrationInput{Year: "5th Year", Age: 40})

	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	for _, field := range []string{"sport", "full_name", "year", "branch", "age", "address"} {
		assert.Contains(t, ve.Fields, field)
	}
}

func TestRegistrationService_Submit_UnknownUser(t *testing.T) {
	f := newFixture()
	football := f.seedSport(t, "Football", 11)
	ghost := &domain.Identity{UserID: "ghost", Role: domain.RoleStudent}

	_, err := f.registration.Submit(context.Background(), ghost, form(football.ID))
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestRegistrationService_Get_OwnerOrAdmin(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	alice := f.seedUser(t, "alice", "alice@example.com", domain.RoleStudent)
	bob := f.seedUser(t, "bob", "bob@example.com", domain.RoleStudent)
	admin := f.seedUser(t, "root", "root@example.com", domain.RoleAdmin)
	football := f.seedSport(t, "Football", 11)

	reg, err := f.registration.Submit(ctx, alice, form(football.ID))
	require.NoError(t, err)

	_, err = f.registration.Get(ctx, alice, reg.ID)
	assert.NoError(t, err)
	_, err = f.registration.Get(ctx, admin, reg.ID)
	assert.NoError(t, err)
	_, err = f.registration.Get(ctx, bob, reg.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)
	_, err = f.registration.Get(ctx, admin, "missing")
	assert.ErrorIs(t, err, domain.ErrRegistrationNotFound)
}

func TestRegistrationService_List_ScopesStudents(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	alice := f.seedUser(t, "alice", "alice@example.com", domain.RoleStudent)
	bob := f.seedUser(t, "bob", "bob@example.com", domain.RoleStudent)
	admin := f.seedUser(t, "root", "root@example.com", domain.RoleAdmin)
	football := f.seedSport(t, "Football", 11)
	chess := f.seedSport(t, "Chess", 2)

	_, err := f.registration.Submit(ctx, alice, form(football.ID))
	require.NoError(t, err)
	_, err = f.registration.Submit(ctx, alice, form(chess.ID))
	require.NoError(t, err)
	_, err = f.registration.Submit(ctx, bob, form(chess.ID))
	require.NoError(t, err)

	res, err := f.registration.List(ctx, bob, ports.ListRegistrationsInput{})
	require.NoError(t, err)
	assert.EqualValues(t, 1, res.Total)
	assert.Equal(t, bob.UserID, res.Items[0].UserID)

	res, err = f.registration.List(ctx, admin, ports.ListRegistrationsInput{})
	require.NoError(t, err)
	assert.EqualValues(t, 3, res.Total)
	assert.Equal(t, defaultListLimit, res.Limit)

	res, err = f.registration.List(ctx, admin, ports.ListRegistrationsInput{SportID: chess.ID, Limit: 1, Page: 2})
	require.NoError(t, err)
	assert.EqualValues(t, 2, res.Total)
	assert.Equal(t, 2, res.TotalPages)
	assert.Len(t, res.Items, 1)

	res, err = f.registration.List(ctx, admin, ports.ListRegistrationsInput{Limit: 1000})
	require.NoError(t, err)
	assert.Equal(t, maxListLimit, res.Limit)

	_, err = f.registration.List(ctx, admin, ports.ListRegistrationsInput{Status: "approved"})
	assert.ErrorIs(t, err, domain.ErrInvalidStatus)
}

func TestRegistrationService_SetStatus(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	alice := f.seedUser(t, "alice", "alice@example.com", domain.RoleStudent)
	admin := f.seedUser(t, "root", "root@example.com", domain.RoleAdmin)
	football := f.seedSport(t, "Football", 11)

	reg, err := f.registration.Submit(ctx, alice, form(football.ID))
	require.NoError(t, err)

	updated, err := f.registration.SetStatus(ctx, admin, reg.ID, "accepted")
	require.NoError(t, err)
	assert.Equal(t, domain.RegistrationAccepted, updated.Status)

	// admin override back to rejected, then a same-status no-op
	_, err = f.registration.SetStatus(ctx, admin, reg.ID, "rejected")
	require.NoError(t, err)
	again, err := f.registration.SetStatus(ctx, admin, reg.ID, "rejected")
	require.NoError(t, err)
	assert.Equal(t, domain.RegistrationRejected, again.Status)

	entries := f.history.Entries()
	require.Len(t, entries, 2, "no-op must not be recorded")
	assert.Equal(t, domain.RegistrationPending, entries[0].From)
	assert.Equal(t, domain.RegistrationAccepted, entries[0].To)
	assert.Equal(t, admin.UserID, entries[0].ActorID)

	_, err = f.registration.SetStatus(ctx, admin, reg.ID, "approved")
	assert.ErrorIs(t, err, domain.ErrInvalidStatus)
	_, err = f.registration.SetStatus(ctx, admin, "missing", "accepted")
	assert.ErrorIs(t, err, domain.ErrRegistrationNotFound)
}

func TestRegistrationService_SetStatus_HistoryFailureIsNotFatal(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	alice := f.seedUser(t, "alice", "alice@example.com", domain.RoleStudent)
	admin := f.seedUser(t, "root", "root@example.com", domain.RoleAdmin)
	football := f.seedSport(t, "Football", 11)

	reg, err := f.registration.Submit(ctx, alice, form(football.ID))
	require.NoError(t, err)

	f.history.FailWith(errors.New("audit store unavailable"))
	updated, err := f.registration.SetStatus(ctx, admin, reg.ID, "accepted")
	require.NoError(t, err)
	assert.Equal(t, domain.RegistrationAccepted, updated.Status)
}

func TestRegistrationService_Teams(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	alice := f.seedUser(t, "alice", "alice@example.com", domain.RoleStudent)
	bob := f.seedUser(t, "bob", "bob@example.com", domain.RoleStudent)
	admin := f.seedUser(t, "root", "root@example.com", domain.RoleAdmin)
	chess := f.seedSport(t, "Chess", 1)
	f.seedSport(t, "Tennis", 2)

	regA, err := f.registration.Submit(ctx, alice, form(chess.ID))
	require.NoError(t, err)
	_, err = f.registration.Submit(ctx, bob, form(chess.ID))
	require.NoError(t, err)
	_, err = f.registration.SetStatus(ctx, admin, regA.ID, "accepted")
	require.NoError(t, err)

	teams, err := f.registration.Teams(ctx)
	require.NoError(t, err)
	require.Len(t, teams, 2)

	assert.Equal(t, "Chess", teams[0].Name)
	require.Len(t, teams[0].Players, 1)
	assert.Equal(t, "Alice Applicant", teams[0].Players[0].Name)
	assert.True(t, teams[0].Full)

	assert.Equal(t, "Tennis", teams[1].Name)
	assert.Empty(t, teams[1].Players)
	assert.NotNil(t, teams[1].Players)
	assert.False(t, teams[1].Full)
}
