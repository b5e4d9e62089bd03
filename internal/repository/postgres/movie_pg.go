package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"movie-ranker/internal/domain"
	"movie-ranker/internal/repository"
	"movie-ranker/internal/util"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// MovieRepository implements repository.MovieRepository for PostgreSQL.
type MovieRepository struct{}

// NewMovieRepository creates a new MovieRepository.
func NewMovieRepository(db *sqlx.DB) repository.MovieRepository {
	return &MovieRepository{}
}

const movieColumns = `id, name, release_year, description, duration_minutes, genres, poster_url, created_at, updated_at`

// CreateMovie inserts a new movie using the provided DBExecutor.
func (r *MovieRepository) CreateMovie(ctx context.Context, q repository.DBExecutor, movie *domain.Movie) error {
	query := `INSERT INTO movies (name, release_year, description, duration_minutes, genres, poster_url, created_at, updated_at)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`
	err := q.QueryRowContext(ctx, query,
		movie.Name, movie.ReleaseYear, movie.Description, movie.DurationMinutes,
		pq.Array([]string(movie.Genres)), movie.PosterURL, movie.CreatedAt, movie.UpdatedAt,
	).Scan(&movie.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return util.ErrDuplicateMovieName
		}
		return fmt.Errorf("failed to create movie: %w", err)
	}
	return nil
}

// GetMovieByID retrieves a movie by its ID using the provided DBExecutor.
func (r *MovieRepository) GetMovieByID(ctx context.Context, q repository.DBExecutor, id int64) (*domain.Movie, error) {
	var movie domain.Movie
	query := `SELECT ` + movieColumns + ` FROM movies WHERE id = $1`
	err := q.GetContext(ctx, &movie, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, util.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get movie by ID %d: %w", id, err)
	}
	return &movie, nil
}

// GetMovieByName retrieves a movie by case-insensitive exact name match.
func (r *MovieRepository) GetMovieByName(ctx context.Context, q repository.DBExecutor, name string) (*domain.Movie, error) {
	var movie domain.Movie
	query := `SELECT ` + movieColumns + ` FROM movies WHERE LOWER(name) = LOWER($1)`
	err := q.GetContext(ctx, &movie, query, name)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, util.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get movie by name '%s': %w", name, err)
	}
	return &movie, nil
}

// ListMovies retrieves the whole catalog.
func (r *MovieRepository) ListMovies(ctx context.Context, q repository.DBExecutor) ([]domain.Movie, error) {
	movies := []domain.Movie{}
	query := `SELECT ` + movieColumns + ` FROM movies ORDER BY id`
	if err := q.SelectContext(ctx, &movies, query); err != nil {
		return nil, fmt.Errorf("failed to list movies: %w", err)
	}
	return movies, nil
}

// SearchMoviesByName retrieves movies matching the fragment case-insensitively.
func (r *MovieRepository) SearchMoviesByName(ctx context.Context, q repository.DBExecutor, fragment string) ([]domain.Movie, error) {
	movies := []domain.Movie{}
	query := `SELECT ` + movieColumns + ` FROM movies WHERE name ILIKE '%' || $1 || '%' ORDER BY name`
	if err := q.SelectContext(ctx, &movies, query, fragment); err != nil {
		return nil, fmt.Errorf("failed to search movies by name '%s': %w", fragment, err)
	}
	return movies, nil
}

// GetMoviesByYear retrieves movies released in the given year.
func (r *MovieRepository) GetMoviesByYear(ctx context.Context, q repository.DBExecutor, year int) ([]domain.Movie, error) {
	movies := []domain.Movie{}
	query := `SELECT ` + movieColumns + ` FROM movies WHERE release_year = $1 ORDER BY name`
	if err := q.SelectContext(ctx, &movies, query, year); err != nil {
		return nil, fmt.Errorf("failed to get movies by year %d: %w", year, err)
	}
	return movies, nil
}

// GetMoviesByYearRange retrieves movies released between the given years, inclusive.
func (r *MovieRepository) GetMoviesByYearRange(ctx context.Context, q repository.DBExecutor, fromYear, toYear int) ([]domain.Movie, error) {
	movies := []domain.Movie{}
	query := `SELECT ` + movieColumns + ` FROM movies WHERE release_year BETWEEN $1 AND $2 ORDER BY release_year, name`
	if err := q.SelectContext(ctx, &movies, query, fromYear, toYear); err != nil {
		return nil, fmt.Errorf("failed to get movies by year range %d-%d: %w", fromYear, toYear, err)
	}
	return movies, nil
}

// GetMoviesByGenre retrieves movies with a case-insensitive exact match
// against any of their genre tags.
func (r *MovieRepository) GetMoviesByGenre(ctx context.Context, q repository.DBExecutor, genre string) ([]domain.Movie, error) {
	movies := []domain.Movie{}
	query := `SELECT ` + movieColumns + ` FROM movies
              WHERE EXISTS (SELECT 1 FROM unnest(genres) g WHERE LOWER(g) = LOWER($1))
              ORDER BY name`
	if err := q.SelectContext(ctx, &movies, query, genre); err != nil {
		return nil, fmt.Errorf("failed to get movies by genre '%s': %w", genre, err)
	}
	return movies, nil
}

// UpdateMovie persists all mutable movie fields.
func (r *MovieRepository) UpdateMovie(ctx context.Context, q repository.DBExecutor, movie *domain.Movie) error {
	query := `UPDATE movies SET name = $1, release_year = $2, description = $3,
              duration_minutes = $4, genres = $5, poster_url = $6, updated_at = $7 WHERE id = $8`
	result, err := q.ExecContext(ctx, query,
		movie.Name, movie.ReleaseYear, movie.Description, movie.DurationMinutes,
		pq.Array([]string(movie.Genres)), movie.PosterURL, movie.UpdatedAt, movie.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return util.ErrDuplicateMovieName
		}
		return fmt.Errorf("failed to update movie %d: %w", movie.ID, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected after updating movie %d: %w", movie.ID, err)
	}
	if rowsAffected == 0 {
		return util.ErrNotFound
	}
	return nil
}

// DeleteMovie removes the movie row.
func (r *MovieRepository) DeleteMovie(ctx context.Context, q repository.DBExecutor, id int64) error {
	result, err := q.ExecContext(ctx, `DELETE FROM movies WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete movie %d: %w", id, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected after deleting movie %d: %w", id, err)
	}
	if rowsAffected == 0 {
		return util.ErrNotFound
	}
	return nil
}
