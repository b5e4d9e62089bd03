package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"movie-ranker/internal/domain"
	"movie-ranker/internal/repository"
	"movie-ranker/internal/util"
	"movie-ranker/pkg/db"
)

// MovieService defines the interface for movie catalog business logic.
type MovieService interface {
	AddMovie(ctx context.Context, req domain.CreateMovieRequest) (*domain.Movie, error)
	GetMovieByID(ctx context.Context, id int64) (*domain.Movie, error)
	ListMovies(ctx context.Context) ([]domain.Movie, error)
	SearchMoviesByName(ctx context.Context, fragment string) ([]domain.Movie, error)
	GetMoviesByYear(ctx context.Context, year int) ([]domain.Movie, error)
	GetMoviesByYearRange(ctx context.Context, fromYear, toYear int) ([]domain.Movie, error)
	GetMoviesByGenre(ctx context.Context, genre string) ([]domain.Movie, error)
	UpdateMovie(ctx context.Context, id int64, patch domain.MoviePatch) (*domain.Movie, error)
	DeleteMovie(ctx context.Context, id int64) (bool, error)
}

// movieService implements the MovieService interface.
type movieService struct {
	dbBeginner db.DBTxBeginner
	dbExecutor repository.DBExecutor
	movieRepo  repository.MovieRepository
	ratingRepo repository.RatingRepository
	beginTx    db.BeginTxFunc
	commitTx   db.CommitTxFunc
	rollbackTx db.RollbackTxFunc
}

// NewMovieService creates a new instance of MovieService.
func NewMovieService(
	dbBeginner db.DBTxBeginner,
	dbExecutor repository.DBExecutor,
	movieRepo repository.MovieRepository,
	ratingRepo repository.RatingRepository,
	beginTx db.BeginTxFunc,
	commitTx db.CommitTxFunc,
	rollbackTx db.RollbackTxFunc,
) MovieService {
	return &movieService{
		dbBeginner: dbBeginner,
		dbExecutor: dbExecutor,
		movieRepo:  movieRepo,
		ratingRepo: ratingRepo,
		beginTx:    beginTx,
		commitTx:   commitTx,
		rollbackTx: rollbackTx,
	}
}

// AddMovie adds a movie to the catalog after checking that no other movie
// holds the same name under case-insensitive comparison. The unique index on
// LOWER(name) backstops the check against concurrent inserts.
func (s *movieService) AddMovie(ctx context.Context, req domain.CreateMovieRequest) (*domain.Movie, error) {
	txController, err := s.beginTx(ctx, s.dbBeginner)
	if err != nil {
		return nil, fmt.Errorf("add movie: failed to begin transaction: %w", err)
	}
	defer s.rollbackTx(txController)

	txExecutor, ok := txController.(repository.DBExecutor)
	if !ok {
		return nil, fmt.Errorf("add movie: transaction controller does not implement DBExecutor")
	}

	_, err = s.movieRepo.GetMovieByName(ctx, txExecutor, req.Name)
	if err == nil {
		return nil, util.ErrDuplicateMovieName
	}
	if !errors.Is(err, util.ErrNotFound) {
		return nil, fmt.Errorf("add movie: failed to check existing movie: %w", err)
	}

	movie := domain.NewMovie(req)
	if err := s.movieRepo.CreateMovie(ctx, txExecutor, movie); err != nil {
		return nil, fmt.Errorf("add movie: failed to create movie: %w", err)
	}

	if err := s.commitTx(txController); err != nil {
		return nil, fmt.Errorf("add movie: failed to commit transaction: %w", err)
	}

	return movie, nil
}

// GetMovieByID retrieves a single movie.
func (s *movieService) GetMovieByID(ctx context.Context, id int64) (*domain.Movie, error) {
	movie, err := s.movieRepo.GetMovieByID(ctx, s.dbExecutor, id)
	if err != nil {
		if errors.Is(err, util.ErrNotFound) {
			return nil, util.ErrMovieNotFound
		}
		return nil, fmt.Errorf("get movie: failed to get movie %d: %w", id, err)
	}
	return movie, nil
}

// ListMovies retrieves the whole catalog.
func (s *movieService) ListMovies(ctx context.Context) ([]domain.Movie, error) {
	movies, err := s.movieRepo.ListMovies(ctx, s.dbExecutor)
	if err != nil {
		return nil, fmt.Errorf("list movies: %w", err)
	}
	return movies, nil
}

// SearchMoviesByName retrieves movies whose name contains the fragment,
// case-insensitively. An empty result is not an error.
func (s *movieService) SearchMoviesByName(ctx context.Context, fragment string) ([]domain.Movie, error) {
	movies, err := s.movieRepo.SearchMoviesByName(ctx, s.dbExecutor, fragment)
	if err != nil {
		return nil, fmt.Errorf("search movies: %w", err)
	}
	return movies, nil
}

// GetMoviesByYear retrieves movies released in the given year.
func (s *movieService) GetMoviesByYear(ctx context.Context, year int) ([]domain.Movie, error) {
	movies, err := s.movieRepo.GetMoviesByYear(ctx, s.dbExecutor, year)
	if err != nil {
		return nil, fmt.Errorf("get movies by year: %w", err)
	}
	return movies, nil
}

// GetMoviesByYearRange retrieves movies released between the given years,
// inclusive.
func (s *movieService) GetMoviesByYearRange(ctx context.Context, fromYear, toYear int) ([]domain.Movie, error) {
	if fromYear > toYear {
		return nil, util.ErrInvalidInput
	}
	movies, err := s.movieRepo.GetMoviesByYearRange(ctx, s.dbExecutor, fromYear, toYear)
	if err != nil {
		return nil, fmt.Errorf("get movies by year range: %w", err)
	}
	return movies, nil
}

// GetMoviesByGenre retrieves movies carrying the genre tag, matched
// case-insensitively against any tag in the list.
func (s *movieService) GetMoviesByGenre(ctx context.Context, genre string) ([]domain.Movie, error) {
	movies, err := s.movieRepo.GetMoviesByGenre(ctx, s.dbExecutor, genre)
	if err != nil {
		return nil, fmt.Errorf("get movies by genre: %w", err)
	}
	return movies, nil
}

// UpdateMovie applies a partial update. Each nil field is left untouched and
// a blank name is treated as absent. A name change is compared
// case-insensitively against the stored name before the duplicate check so
// that re-casing a movie's own name never conflicts with itself.
func (s *movieService) UpdateMovie(ctx context.Context, id int64, patch domain.MoviePatch) (*domain.Movie, error) {
	txController, err := s.beginTx(ctx, s.dbBeginner)
	if err != nil {
		return nil, fmt.Errorf("update movie: failed to begin transaction: %w", err)
	}
	defer s.rollbackTx(txController)

	txExecutor, ok := txController.(repository.DBExecutor)
	if !ok {
		return nil, fmt.Errorf("update movie: transaction controller does not implement DBExecutor")
	}

	movie, err := s.movieRepo.GetMovieByID(ctx, txExecutor, id)
	if err != nil {
		if errors.Is(err, util.ErrNotFound) {
			return nil, util.ErrMovieNotFound
		}
		return nil, fmt.Errorf("update movie: failed to get movie %d: %w", id, err)
	}

	if patch.Name != nil && strings.TrimSpace(*patch.Name) != "" {
		if !strings.EqualFold(*patch.Name, movie.Name) {
			_, err := s.movieRepo.GetMovieByName(ctx, txExecutor, *patch.Name)
			if err == nil {
				return nil, util.ErrDuplicateMovieName
			}
			if !errors.Is(err, util.ErrNotFound) {
				return nil, fmt.Errorf("update movie: failed to check name '%s': %w", *patch.Name, err)
			}
		}
		movie.Name = *patch.Name
	}
	if patch.ReleaseYear != nil {
		movie.ReleaseYear = *patch.ReleaseYear
	}
	if patch.Description != nil {
		movie.Description = *patch.Description
	}
	if patch.DurationMinutes != nil {
		movie.DurationMinutes = patch.DurationMinutes
	}
	if patch.Genres != nil {
		movie.Genres = patch.Genres
	}
	if patch.PosterURL != nil {
		movie.PosterURL = *patch.PosterURL
	}

	movie.UpdatedAt = time.Now().UTC()
	if err := s.movieRepo.UpdateMovie(ctx, txExecutor, movie); err != nil {
		return nil, fmt.Errorf("update movie: failed to update movie %d: %w", id, err)
	}

	if err := s.commitTx(txController); err != nil {
		return nil, fmt.Errorf("update movie: failed to commit transaction: %w", err)
	}

	return movie, nil
}

// DeleteMovie removes the movie together with all ratings referencing it, in
// one transaction. It returns false when the movie does not exist.
func (s *movieService) DeleteMovie(ctx context.Context, id int64) (bool, error) {
	txController, err := s.beginTx(ctx, s.dbBeginner)
	if err != nil {
		return false, fmt.Errorf("delete movie: failed to begin transaction: %w", err)
	}
	defer s.rollbackTx(txController)

	txExecutor, ok := txController.(repository.DBExecutor)
	if !ok {
		return false, fmt.Errorf("delete movie: transaction controller does not implement DBExecutor")
	}

	_, err = s.movieRepo.GetMovieByID(ctx, txExecutor, id)
	if err != nil {
		if errors.Is(err, util.ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("delete movie: failed to get movie %d: %w", id, err)
	}

	if err := s.ratingRepo.DeleteRatingsByMovieID(ctx, txExecutor, id); err != nil {
		return false, fmt.Errorf("delete movie: %w", err)
	}
	if err := s.movieRepo.DeleteMovie(ctx, txExecutor, id); err != nil {
		return false, fmt.Errorf("delete movie: failed to delete movie %d: %w", id, err)
	}

	if err := s.commitTx(txController); err != nil {
		return false, fmt.Errorf("delete movie: failed to commit transaction: %w", err)
	}

	return true, nil
}
