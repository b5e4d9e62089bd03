package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"movie-ranker/internal/domain"
	"movie-ranker/internal/repository"
	"movie-ranker/internal/util"

	"github.com/jmoiron/sqlx"
)

// RatingRepository implements repository.RatingRepository for PostgreSQL.
type RatingRepository struct{}

// NewRatingRepository creates a new RatingRepository.
func NewRatingRepository(db *sqlx.DB) repository.RatingRepository {
	return &RatingRepository{}
}

// UpsertRating inserts or overwrites the rating for the (user, movie) pair in
// a single statement guarded by the unique index on (user_id, movie_id).
// The existing row keeps its id and created_at; only value, comment and
// updated_at change on the conflict path.
func (r *RatingRepository) UpsertRating(ctx context.Context, q repository.DBExecutor, rating *domain.Rating) error {
	query := `INSERT INTO ratings (user_id, movie_id, rating, comment, created_at)
              VALUES ($1, $2, $3, $4, $5)
              ON CONFLICT (user_id, movie_id) DO UPDATE
              SET rating = EXCLUDED.rating, comment = EXCLUDED.comment, updated_at = EXCLUDED.created_at
              RETURNING id, created_at, updated_at`
	err := q.QueryRowContext(ctx, query,
		rating.UserID, rating.MovieID, rating.Rating, rating.Comment, rating.CreatedAt,
	).Scan(&rating.ID, &rating.CreatedAt, &rating.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert rating for user %d, movie %d: %w", rating.UserID, rating.MovieID, err)
	}
	return nil
}

// GetRatingByID retrieves a rating by its ID.
func (r *RatingRepository) GetRatingByID(ctx context.Context, q repository.DBExecutor, id int64) (*domain.Rating, error) {
	var rating domain.Rating
	query := `SELECT id, user_id, movie_id, rating, comment, created_at, updated_at FROM ratings WHERE id = $1`
	err := q.GetContext(ctx, &rating, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, util.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get rating by ID %d: %w", id, err)
	}
	return &rating, nil
}

// GetRatingByUserAndMovie retrieves the rating for the composite (user, movie) key.
func (r *RatingRepository) GetRatingByUserAndMovie(ctx context.Context, q repository.DBExecutor, userID, movieID int64) (*domain.Rating, error) {
	var rating domain.Rating
	query := `SELECT id, user_id, movie_id, rating, comment, created_at, updated_at FROM ratings
              WHERE user_id = $1 AND movie_id = $2`
	err := q.GetContext(ctx, &rating, query, userID, movieID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, util.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get rating for user %d, movie %d: %w", userID, movieID, err)
	}
	return &rating, nil
}

// ListRatingViewsByMovieID retrieves the flattened rating projections for a
// movie, joining the rater's username so callers do not resolve users
// separately.
func (r *RatingRepository) ListRatingViewsByMovieID(ctx context.Context, q repository.DBExecutor, movieID int64) ([]domain.RatingView, error) {
	views := []domain.RatingView{}
	query := `SELECT r.id, r.user_id, u.username, r.movie_id, r.rating, r.comment, r.created_at, r.updated_at
              FROM ratings r
              JOIN users u ON u.id = r.user_id
              WHERE r.movie_id = $1
              ORDER BY r.created_at`
	if err := q.SelectContext(ctx, &views, query, movieID); err != nil {
		return nil, fmt.Errorf("failed to list ratings for movie %d: %w", movieID, err)
	}
	return views, nil
}

// ListRatingsByUserID retrieves all ratings authored by a user.
func (r *RatingRepository) ListRatingsByUserID(ctx context.Context, q repository.DBExecutor, userID int64) ([]domain.Rating, error) {
	ratings := []domain.Rating{}
	query := `SELECT id, user_id, movie_id, rating, comment, created_at, updated_at FROM ratings
              WHERE user_id = $1 ORDER BY created_at`
	if err := q.SelectContext(ctx, &ratings, query, userID); err != nil {
		return nil, fmt.Errorf("failed to list ratings for user %d: %w", userID, err)
	}
	return ratings, nil
}

// DeleteRating removes a single rating by ID.
func (r *RatingRepository) DeleteRating(ctx context.Context, q repository.DBExecutor, id int64) error {
	result, err := q.ExecContext(ctx, `DELETE FROM ratings WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete rating %d: %w", id, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected after deleting rating %d: %w", id, err)
	}
	if rowsAffected == 0 {
		return util.ErrNotFound
	}
	return nil
}

// DeleteRatingsByUserID removes all ratings authored by a user.
func (r *RatingRepository) DeleteRatingsByUserID(ctx context.Context, q repository.DBExecutor, userID int64) error {
	if _, err := q.ExecContext(ctx, `DELETE FROM ratings WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("failed to delete ratings for user %d: %w", userID, err)
	}
	return nil
}

// DeleteRatingsByMovieID removes all ratings referencing a movie.
func (r *RatingRepository) DeleteRatingsByMovieID(ctx context.Context, q repository.DBExecutor, movieID int64) error {
	if _, err := q.ExecContext(ctx, `DELETE FROM ratings WHERE movie_id = $1`, movieID); err != nil {
		return fmt.Errorf("failed to delete ratings for movie %d: %w", movieID, err)
	}
	return nil
}

// TopRatedMovies retrieves per-movie average ratings, best first.
func (r *RatingRepository) TopRatedMovies(ctx context.Context, q repository.DBExecutor) ([]domain.MovieAverage, error) {
	rows := []domain.MovieAverage{}
	query := `SELECT movie_id, AVG(rating) AS average_rating, COUNT(*) AS rating_count
              FROM ratings GROUP BY movie_id ORDER BY average_rating DESC, movie_id`
	if err := q.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("failed to list top rated movies: %w", err)
	}
	return rows, nil
}
