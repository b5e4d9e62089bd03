package repository

import (
	"context"

	"movie-ranker/internal/domain"
)

// MovieRepository defines the interface for movie catalog data operations.
type MovieRepository interface {
	// CreateMovie adds a new movie using the provided DBExecutor.
	CreateMovie(ctx context.Context, q DBExecutor, movie *domain.Movie) error
	// GetMovieByID retrieves a movie by its ID.
	GetMovieByID(ctx context.Context, q DBExecutor, id int64) (*domain.Movie, error)
	// GetMovieByName retrieves a movie by case-insensitive exact name match.
	GetMovieByName(ctx context.Context, q DBExecutor, name string) (*domain.Movie, error)
	// ListMovies retrieves the whole catalog.
	ListMovies(ctx context.Context, q DBExecutor) ([]domain.Movie, error)
	// SearchMoviesByName retrieves movies whose name contains the fragment,
	// case-insensitively.
	SearchMoviesByName(ctx context.Context, q DBExecutor, fragment string) ([]domain.Movie, error)
	// GetMoviesByYear retrieves movies released in the given year.
	GetMoviesByYear(ctx context.Context, q DBExecutor, year int) ([]domain.Movie, error)
	// GetMoviesByYearRange retrieves movies released between the given years,
	// inclusive.
	GetMoviesByYearRange(ctx context.Context, q DBExecutor, fromYear, toYear int) ([]domain.Movie, error)
	// GetMoviesByGenre retrieves movies with a case-insensitive exact match
	// against any of their genre tags.
	GetMoviesByGenre(ctx context.Context, q DBExecutor, genre string) ([]domain.Movie, error)
	// UpdateMovie persists all mutable movie fields.
	UpdateMovie(ctx context.Context, q DBExecutor, movie *domain.Movie) error
	// DeleteMovie removes the movie row.
	DeleteMovie(ctx context.Context, q DBExecutor, id int64) error
}
