package domain

import (
	"errors"
	"time"
)

var ErrSportNotFound = errors.New("sport not found")
var ErrSportExists = errors.New("sport already exists")

// Sport is a reference entity; MaxPlayers is displayed but not enforced.
type Sport struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	MaxPlayers int       `json:"max_players"`
	CreatedAt  time.Time `json:"created_at"`
}
