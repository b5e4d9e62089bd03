package domain

import "time"

// User represents a registered account in the movie ranker.
// The password is stored only as a bcrypt hash and is never serialized.
type User struct {
	ID           int64     `db:"id" json:"id"`
	Username     string    `db:"username" json:"username"` // Unique username
	PasswordHash string    `db:"password_hash" json:"-"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// NewUser creates a new User instance with a pre-hashed password.
func NewUser(username, passwordHash string) *User {
	now := time.Now().UTC()
	return &User{
		Username:     username,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// RegisterRequest is the request body for user registration.
type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=20"`
	Password string `json:"password" validate:"required,min=3,max=255"`
}

// LoginRequest is the request body for user login.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// UserPatch carries a partial profile update. Nil fields are left untouched;
// blank strings are treated as absent, matching the update semantics of the
// other entities.
type UserPatch struct {
	Username *string `json:"username,omitempty" validate:"omitempty,min=3,max=20"`
	Password *string `json:"password,omitempty" validate:"omitempty,min=3,max=255"`
}
