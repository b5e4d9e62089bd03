package util

import "errors"

// Common application-specific errors.
var (
	ErrNotFound           = errors.New("resource not found")
	ErrInvalidInput       = errors.New("invalid input provided")
	ErrUserNotFound       = errors.New("user not found")
	ErrMovieNotFound      = errors.New("movie not found")
	ErrRatingNotFound     = errors.New("rating not found")
	ErrDuplicateEntry     = errors.New("duplicate entry")
	ErrDuplicateUsername  = errors.New("username is already taken")
	ErrDuplicateMovieName = errors.New("a movie with this name already exists")
	ErrInvalidCredentials = errors.New("invalid password")
)

// IsError reports whether err matches the target sentinel error.
func IsError(err, target error) bool {
	return errors.Is(err, target)
}
