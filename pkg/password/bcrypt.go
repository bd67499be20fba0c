// Package password hashes and verifies account secrets with bcrypt.
package password

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// DefaultCost matches the work factor the portal has always used for stored hashes.
const DefaultCost = 10

// MaxBytes is the longest secret bcrypt accepts.
const MaxBytes = 72

var (
	ErrEmptyPassword   = errors.New("password must not be empty")
	ErrPasswordTooLong = errors.New("password exceeds 72 bytes")
	ErrAlreadyHashed   = errors.New("value is already a password hash")
)

// Check reports whether secret can be hashed. It returns ErrEmptyPassword,
// ErrPasswordTooLong or ErrAlreadyHashed.
func Check(secret string) error {
	switch {
	case secret == "":
		return ErrEmptyPassword
	case len(secret) > MaxBytes:
		return ErrPasswordTooLong
	case IsHash(secret):
		return ErrAlreadyHashed
	}
	return nil
}

// Hasher hashes secrets and checks a secret against a stored hash.
type Hasher interface {
	Hash(secret string) (string, error)
	// Verify returns (false, nil) on mismatch. A non-nil error means the
	// primitive itself failed, e.g. the stored hash is corrupt.
	Verify(secret, hash string) (bool, error)
}

// Bcrypt is a Hasher with an adaptive work factor and a random salt per hash.
type Bcrypt struct {
	cost int
}

// NewBcrypt returns a Bcrypt hasher. Out-of-range costs fall back to DefaultCost.
func NewBcrypt(cost int) *Bcrypt {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultCost
	}
	return &Bcrypt{cost: cost}
}

// Cost returns the configured work factor.
func (b *Bcrypt) Cost() int { return b.cost }

func (b *Bcrypt) Hash(secret string) (string, error) {
	if err := Check(secret); err != nil {
		return "", err
	}
	h, err := bcrypt.GenerateFromPassword([]byte(secret), b.cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(h), nil
}

func (b *Bcrypt) Verify(secret, hash string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(secret))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, fmt.Errorf("verify password: %w", err)
	}
}

// IsHash reports whether s is already a bcrypt hash.
func IsHash(s string) bool {
	_, err := bcrypt.Cost([]byte(s))
	return err == nil
}
