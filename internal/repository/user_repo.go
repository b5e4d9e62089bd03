package repository

import (
	"context"

	"movie-ranker/internal/domain"
)

// UserRepository defines the interface for user data operations.
type UserRepository interface {
	// CreateUser adds a new user using the provided DBExecutor.
	CreateUser(ctx context.Context, q DBExecutor, user *domain.User) error
	// GetUserByID retrieves a user by their ID.
	GetUserByID(ctx context.Context, q DBExecutor, id int64) (*domain.User, error)
	// GetUserByUsername retrieves a user by exact username.
	GetUserByUsername(ctx context.Context, q DBExecutor, username string) (*domain.User, error)
	// ListUsers retrieves all users.
	ListUsers(ctx context.Context, q DBExecutor) ([]domain.User, error)
	// SearchUsersByUsername retrieves users whose username contains the
	// fragment, case-insensitively.
	SearchUsersByUsername(ctx context.Context, q DBExecutor, fragment string) ([]domain.User, error)
	// UpdateUser persists changed username/password_hash fields.
	UpdateUser(ctx context.Context, q DBExecutor, user *domain.User) error
	// DeleteUser removes the user row. Dependent rows are removed by the
	// service as explicit cascade steps in the same transaction.
	DeleteUser(ctx context.Context, q DBExecutor, id int64) error
}

// FollowRepository defines the interface for the user follow graph, stored
// as a plain (follower, followed) edge table.
type FollowRepository interface {
	// AddFollow inserts a follow edge. Inserting an existing edge is a no-op,
	// so the operation is idempotent by membership.
	AddFollow(ctx context.Context, q DBExecutor, userID, followedUserID int64) error
	// RemoveFollow deletes a follow edge. Removing an absent edge is a no-op.
	RemoveFollow(ctx context.Context, q DBExecutor, userID, followedUserID int64) error
	// ListFollowing retrieves the users followed by the given user.
	ListFollowing(ctx context.Context, q DBExecutor, userID int64) ([]domain.User, error)
	// DeleteEdgesForUser removes all edges where the user appears on either
	// side, used when the user is deleted.
	DeleteEdgesForUser(ctx context.Context, q DBExecutor, userID int64) error
}
