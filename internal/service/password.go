package service

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// ErrPasswordTooLong is returned for passwords bcrypt would silently reject.
var ErrPasswordTooLong = bcrypt.ErrPasswordTooLong

// PasswordHasher produces salted one-way digests and checks passwords
// against them.
type PasswordHasher interface {
	Hash(password string) (string, error)
	// Verify reports whether password matches digest. An empty digest still
	// costs one full comparison and always reports false.
	Verify(password, digest string) bool
}

type bcryptHasher struct {
	cost int
	// dummy is compared against when there is no stored digest, so an
	// unknown account takes as long to reject as a wrong password.
	dummy []byte
}

// NewBcryptHasher returns a bcrypt hasher. The salt is embedded in each digest.
func NewBcryptHasher(cost int) PasswordHasher {
	if cost < bcrypt.MinCost {
		cost = bcrypt.DefaultCost
	}
	dummy, err := bcrypt.GenerateFromPassword([]byte("tasklist-unknown-account"), cost)
	if err != nil {
		// Only fails for a cost above bcrypt.MaxCost.
		dummy = []byte("$2a$10$")
	}
	return &bcryptHasher{cost: cost, dummy: dummy}
}

func (h *bcryptHasher) Hash(password string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", ErrPasswordTooLong
		}
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(digest), nil
}

func (h *bcryptHasher) Verify(password, digest string) bool {
	if digest == "" {
		_ = bcrypt.CompareHashAndPassword(h.dummy, []byte(password))
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(password)) == nil
}
