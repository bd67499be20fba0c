package domain

import (
	"errors"
	"time"
)

var ErrEventNotFound = errors.New("event not found")

// Event is a scheduled club event tied to a sport.
type Event struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Date        time.Time `json:"date"`
	Time        string    `json:"time"`
	Venue       string    `json:"venue"`
	SportID     string    `json:"sport_id"`
	Sport       *Sport    `json:"sport,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}
