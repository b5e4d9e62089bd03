package repository

import (
	"context"

	"movie-ranker/internal/domain"
)

// RatingRepository defines the interface for rating data operations.
type RatingRepository interface {
	// UpsertRating inserts a rating for (rating.UserID, rating.MovieID) or,
	// if one already exists, overwrites its value and comment in place. The
	// write is a single conditional statement guarded by the unique index on
	// the pair, so two concurrent calls cannot both insert. On return the
	// rating carries the persisted ID, CreatedAt and UpdatedAt.
	UpsertRating(ctx context.Context, q DBExecutor, rating *domain.Rating) error
	// GetRatingByID retrieves a rating by its ID.
	GetRatingByID(ctx context.Context, q DBExecutor, id int64) (*domain.Rating, error)
	// GetRatingByUserAndMovie retrieves the rating for the composite
	// (user, movie) key.
	GetRatingByUserAndMovie(ctx context.Context, q DBExecutor, userID, movieID int64) (*domain.Rating, error)
	// ListRatingViewsByMovieID retrieves the flattened rating projections for
	// a movie, including the rater's username.
	ListRatingViewsByMovieID(ctx context.Context, q DBExecutor, movieID int64) ([]domain.RatingView, error)
	// ListRatingsByUserID retrieves all ratings authored by a user.
	ListRatingsByUserID(ctx context.Context, q DBExecutor, userID int64) ([]domain.Rating, error)
	// DeleteRating removes a single rating by ID.
	DeleteRating(ctx context.Context, q DBExecutor, id int64) error
	// DeleteRatingsByUserID removes all ratings authored by a user (cascade
	// step of user deletion).
	DeleteRatingsByUserID(ctx context.Context, q DBExecutor, userID int64) error
	// DeleteRatingsByMovieID removes all ratings referencing a movie (cascade
	// step of movie deletion).
	DeleteRatingsByMovieID(ctx context.Context, q DBExecutor, movieID int64) error
	// TopRatedMovies retrieves per-movie average ratings ordered best first.
	TopRatedMovies(ctx context.Context, q DBExecutor) ([]domain.MovieAverage, error)
}
