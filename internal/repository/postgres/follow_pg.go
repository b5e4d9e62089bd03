package postgres

import (
	"context"
	"fmt"

	"movie-ranker/internal/domain"
	"movie-ranker/internal/repository"

	"github.com/jmoiron/sqlx"
)

// FollowRepository implements repository.FollowRepository for PostgreSQL.
// Follow edges live in the user_follows table with a composite primary key,
// so membership (not insert count) defines the relation.
type FollowRepository struct{}

// NewFollowRepository creates a new FollowRepository.
func NewFollowRepository(db *sqlx.DB) repository.FollowRepository {
	return &FollowRepository{}
}

// AddFollow inserts a follow edge. ON CONFLICT DO NOTHING makes re-following
// an already followed user a no-op.
func (r *FollowRepository) AddFollow(ctx context.Context, q repository.DBExecutor, userID, followedUserID int64) error {
	query := `INSERT INTO user_follows (user_id, followed_user_id)
              VALUES ($1, $2) ON CONFLICT (user_id, followed_user_id) DO NOTHING`
	if _, err := q.ExecContext(ctx, query, userID, followedUserID); err != nil {
		return fmt.Errorf("failed to add follow edge %d -> %d: %w", userID, followedUserID, err)
	}
	return nil
}

// RemoveFollow deletes a follow edge. Removing an absent edge is a no-op.
func (r *FollowRepository) RemoveFollow(ctx context.Context, q repository.DBExecutor, userID, followedUserID int64) error {
	query := `DELETE FROM user_follows WHERE user_id = $1 AND followed_user_id = $2`
	if _, err := q.ExecContext(ctx, query, userID, followedUserID); err != nil {
		return fmt.Errorf("failed to remove follow edge %d -> %d: %w", userID, followedUserID, err)
	}
	return nil
}

// ListFollowing retrieves the users followed by the given user.
func (r *FollowRepository) ListFollowing(ctx context.Context, q repository.DBExecutor, userID int64) ([]domain.User, error) {
	users := []domain.User{}
	query := `SELECT u.id, u.username, u.password_hash, u.created_at, u.updated_at
              FROM users u
              JOIN user_follows f ON f.followed_user_id = u.id
              WHERE f.user_id = $1`
	if err := q.SelectContext(ctx, &users, query, userID); err != nil {
		return nil, fmt.Errorf("failed to list following for user %d: %w", userID, err)
	}
	return users, nil
}

// DeleteEdgesForUser removes all edges touching the user on either side.
func (r *FollowRepository) DeleteEdgesForUser(ctx context.Context, q repository.DBExecutor, userID int64) error {
	query := `DELETE FROM user_follows WHERE user_id = $1 OR followed_user_id = $1`
	if _, err := q.ExecContext(ctx, query, userID); err != nil {
		return fmt.Errorf("failed to delete follow edges for user %d: %w", userID, err)
	}
	return nil
}
