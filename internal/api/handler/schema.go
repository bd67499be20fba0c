package handler

import (
	"time"

	"github.com/sportsclub/portal/internal/core/domain"
)

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

// --- Auth ---

type registerRequest struct {
	FullName      string `json:"fullname"       validate:"required,max=100"`
	Email         string `json:"email"          validate:"required,email"`
	Password      string `json:"password"       validate:"required,max=72"`
	Age           int    `json:"age"            validate:"omitempty,min=16,max=30"`
	Department    string `json:"department"`
	Sport         string `json:"sport"`
	ContactNumber string `json:"contact_number"`
	ProfilePic    string `json:"profile_pic"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type userSummary struct {
	ID       string            `json:"id"`
	FullName string            `json:"fullname"`
	Email    string            `json:"email"`
	Role     domain.Role       `json:"role"`
	Status   domain.UserStatus `json:"status"`
}

type loginResponse struct {
	Token     string      `json:"token"`
	ExpiresAt time.Time   `json:"expires_at"`
	User      userSummary `json:"user"`
}

type userResponse struct {
	Message string       `json:"message,omitempty"`
	User    *domain.User `json:"user"`
}

// --- Users ---

type updateProfileRequest struct {
	FullName      *string `json:"fullname"       validate:"omitempty,min=1,max=100"`
	Email         *string `json:"email"          validate:"omitempty,email"`
	Password      *string `json:"password"       validate:"omitempty,min=1,max=72"`
	Age           *int    `json:"age"            validate:"omitempty,min=16,max=30"`
	Department    *string `json:"department"`
	Sport         *string `json:"sport"`
	ContactNumber *string `json:"contact_number"`
	ProfilePic    *string `json:"profile_pic"`
}

type statusRequest struct {
	Status string `json:"status" validate:"required"`
}

// --- Registrations ---

type submitRegistrationRequest struct {
	SportID       string `json:"sport_id"       validate:"required_without=Sport"`
	Sport         string `json:"sport"          validate:"required_without=SportID"`
	FullName      string `json:"full_name"      validate:"required,max=100"`
	Year          string `json:"year"           validate:"required,oneof='1st Year' '2nd Year' '3rd Year' '4th Year'"`
	Branch        string `json:"branch"         validate:"required,oneof='Computer Science' 'Mechanical' 'Electrical' 'Civil' 'Chemical'"`
	Age           int    `json:"age"            validate:"required,min=16,max=30"`
	Address       string `json:"address"        validate:"required"`
	ContactNumber string `json:"contact_number"`
}

type listRegistrationsQuery struct {
	SportID string `query:"sport_id"`
	Status  string `query:"status"`
	Page    int    `query:"page"`
	Limit   int    `query:"limit"`
}

type registrationListResponse struct {
	Items      []*domain.Registration `json:"items"`
	Total      int64                  `json:"total"`
	Page       int                    `json:"page"`
	Limit      int                    `json:"limit"`
	TotalPages int                    `json:"total_pages"`
}

// --- Sports & events ---

type createSportRequest struct {
	Name       string `json:"name"        validate:"required,max=50"`
	MaxPlayers int    `json:"max_players" validate:"required,gt=0"`
}

type createEventRequest struct {
	Title       string    `json:"title"       validate:"required,max=200"`
	Description string    `json:"description"`
	Date        time.Time `json:"date"        validate:"required"`
	Time        string    `json:"time"        validate:"required"`
	Venue       string    `json:"venue"       validate:"required"`
	SportID     string    `json:"sport_id"    validate:"required"`
}

type messageResponse struct {
	Message string `json:"message"`
}
