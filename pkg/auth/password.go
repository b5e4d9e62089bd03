package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// PasswordHasher defines the credential hashing collaborator used by the
// user service. Implementations must never retain the plaintext.
type PasswordHasher interface {
	// Hash generates a one-way hash for the given plaintext password.
	Hash(password string) (string, error)
	// Verify reports whether the plaintext password matches the stored hash.
	Verify(password, hashedPassword string) bool
}

// BcryptHasher implements PasswordHasher using bcrypt.
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher creates a BcryptHasher with the default bcrypt cost.
func NewBcryptHasher() *BcryptHasher {
	return &BcryptHasher{cost: bcrypt.DefaultCost}
}

// Hash generates a bcrypt hash for the given password.
func (h *BcryptHasher) Hash(password string) (string, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashedPassword), nil
}

// Verify compares the provided password with an existing bcrypt hash.
func (h *BcryptHasher) Verify(password, hashedPassword string) bool {
	// CompareHashAndPassword returns nil on a match and
	// bcrypt.ErrMismatchedHashAndPassword otherwise.
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password)) == nil
}
