package domain

import (
	"errors"
	"time"
)

// Role is the authorization role embedded in a user's session token.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleStudent Role = "student"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleStudent
}

// UserStatus is the admin approval state of a student account.
type UserStatus string

const (
	UserPending  UserStatus = "pending"
	UserAccepted UserStatus = "accepted"
	UserRejected UserStatus = "rejected"
)

var ErrUserNotFound = errors.New("user not found")
var ErrUserExists = errors.New("user already exists")
var ErrInvalidCredentials = errors.New("invalid email or password")
var ErrTooManyAttempts = errors.New("too many failed login attempts")

// User models an account in the credential store. PasswordHash never leaves
// the service boundary.
type User struct {
	ID            string     `json:"id"`
	FullName      string     `json:"fullname"`
	Email         string     `json:"email"`
	PasswordHash  string     `json:"-"`
	Role          Role       `json:"role"`
	Status        UserStatus `json:"status"`
	Age           int        `json:"age,omitempty"`
	Department    string     `json:"department,omitempty"`
	Sport         string     `json:"sport,omitempty"`
	ContactNumber string     `json:"contact_number,omitempty"`
	ProfilePic    string     `json:"profile_pic,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// UserUpdate carries a partial profile update. Nil fields are left untouched.
type UserUpdate struct {
	FullName      *string
	Email         *string
	PasswordHash  *string
	Age           *int
	Department    *string
	Sport         *string
	ContactNumber *string
	ProfilePic    *string
	Status        *UserStatus
	UpdatedAt     time.Time
}

// Apply copies the non-nil fields of upd onto u.
func (upd UserUpdate) Apply(u *User) {
	if upd.FullName != nil {
		u.FullName = *upd.FullName
	}
	if upd.Email != nil {
		u.Email = *upd.Email
	}
	if upd.PasswordHash != nil {
		u.PasswordHash = *upd.PasswordHash
	}
	if upd.Age != nil {
		u.Age = *upd.Age
	}
	if upd.Department != nil {
		u.Department = *upd.Department
	}
	if upd.Sport != nil {
		u.Sport = *upd.Sport
	}
	if upd.ContactNumber != nil {
		u.ContactNumber = *upd.ContactNumber
	}
	if upd.ProfilePic != nil {
		u.ProfilePic = *upd.ProfilePic
	}
	if upd.Status != nil {
		u.Status = *upd.Status
	}
	if !upd.UpdatedAt.IsZero() {
		u.UpdatedAt = upd.UpdatedAt
	}
}
