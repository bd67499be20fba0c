package domain

import (
	"errors"
	"fmt"
	"time"
)

// RegistrationStatus represents the lifecycle state of a sport registration.
type RegistrationStatus string

const (
	RegistrationPending  RegistrationStatus = "pending"
	RegistrationAccepted RegistrationStatus = "accepted"
	RegistrationRejected RegistrationStatus = "rejected"
)

// validTransitions defines the admin-driven state machine. Once created, a
// registration may be moved between any of the three states.
var validTransitions = map[RegistrationStatus][]RegistrationStatus{
	RegistrationPending:  {RegistrationAccepted, RegistrationRejected},
	RegistrationAccepted: {RegistrationRejected, RegistrationPending},
	RegistrationRejected: {RegistrationAccepted, RegistrationPending},
}

var ErrRegistrationNotFound = errors.New("registration not found")
var ErrDuplicateRegistration = errors.New("already registered for this sport")
var ErrInvalidStatus = errors.New("invalid status value")

// ParseRegistrationStatus validates s against the known statuses.
func ParseRegistrationStatus(s string) (RegistrationStatus, error) {
	st := RegistrationStatus(s)
	if _, ok := validTransitions[st]; !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
	}
	return st, nil
}

// CanTransitionTo reports whether a transition from current status to next is
// valid. Re-applying the current status is a no-op and always allowed.
func (s RegistrationStatus) CanTransitionTo(next RegistrationStatus) bool {
	if s == next {
		_, known := validTransitions[s]
		return known
	}
	for _, allowed := range validTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Academic years accepted on a registration form.
var RegistrationYears = []string{"1st Year", "2nd Year", "3rd Year", "4th Year"}

// Branches accepted on a registration form.
var RegistrationBranches = []string{"Computer Science", "Mechanical", "Electrical", "Civil", "Chemical"}

// Registration is one student's claim on one sport. At most one exists per
// (UserID, SportID) pair; the store enforces this with a unique index.
type Registration struct {
	ID            string             `json:"id"`
	UserID        string             `json:"user_id"`
	SportID       string             `json:"sport_id"`
	Sport         string             `json:"sport"`
	FullName      string             `json:"full_name"`
	Year          string             `json:"year"`
	Branch        string             `json:"branch"`
	Age           int                `json:"age"`
	Address       string             `json:"address"`
	ContactNumber string             `json:"contact_number,omitempty"`
	Email         string             `json:"email"`
	ProfilePic    string             `json:"profile_pic,omitempty"`
	Status        RegistrationStatus `json:"status"`
	CreatedAt     time.Time          `json:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at"`
}

// RegistrationHistoryEntry records a single admin status change.
type RegistrationHistoryEntry struct {
	RegistrationID string
	From           RegistrationStatus
	To             RegistrationStatus
	ActorID        string
	ChangedAt      time.Time
}

// TeamPlayer is the public view of an accepted registration.
type TeamPlayer struct {
	Name       string `json:"name"`
	Age        int    `json:"age"`
	Branch     string `json:"branch"`
	ProfilePic string `json:"profile_pic"`
}

// Team groups the accepted players of one sport. Capacity is advisory: Full
// is informational and never blocks a registration.
type Team struct {
	SportID    string       `json:"sport_id"`
	Name       string       `json:"name"`
	MaxPlayers int          `json:"max_players"`
	Full       bool         `json:"full"`
	Players    []TeamPlayer `json:"players"`
}
