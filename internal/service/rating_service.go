package service

import (
	"context"
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"movie-ranker/internal/domain"
	"movie-ranker/internal/repository"
	"movie-ranker/internal/util"
	"movie-ranker/pkg/db"

	"github.com/shopspring/decimal"
)

// RatingService defines the interface for rating upsert and aggregation
// business logic.
type RatingService interface {
	Rate(ctx context.Context, userID, movieID int64, value int, comment string) (*domain.Rating, error)
	RatingsForMovie(ctx context.Context, movieID int64) (*domain.MovieRatings, error)
	RatingsForUser(ctx context.Context, userID int64) ([]domain.Rating, error)
	RatingFor(ctx context.Context, userID, movieID int64) (*domain.Rating, error)
	TopRatedMovies(ctx context.Context) ([]domain.MovieAverage, error)
	DeleteRating(ctx context.Context, id int64) (bool, error)
}

// ratingService implements the RatingService interface.
type ratingService struct {
	dbBeginner db.DBTxBeginner
	dbExecutor repository.DBExecutor
	userRepo   repository.UserRepository
	movieRepo  repository.MovieRepository
	ratingRepo repository.RatingRepository
	beginTx    db.BeginTxFunc
	commitTx   db.CommitTxFunc
	rollbackTx db.RollbackTxFunc
}

// NewRatingService creates a new instance of RatingService.
func NewRatingService(
	dbBeginner db.DBTxBeginner,
	dbExecutor repository.DBExecutor,
	userRepo repository.UserRepository,
	movieRepo repository.MovieRepository,
	ratingRepo repository.RatingRepository,
	beginTx db.BeginTxFunc,
	commitTx db.CommitTxFunc,
	rollbackTx db.RollbackTxFunc,
) RatingService {
	return &ratingService{
		dbBeginner: dbBeginner,
		dbExecutor: dbExecutor,
		userRepo:   userRepo,
		movieRepo:  movieRepo,
		ratingRepo: ratingRepo,
		beginTx:    beginTx,
		commitTx:   commitTx,
		rollbackTx: rollbackTx,
	}
}

// Rate records the user's rating of a movie. A first rating creates the
// record; a repeat rating for the same (user, movie) pair overwrites value
// and comment on the existing record, keeping its id and creation timestamp
// and refreshing the update timestamp. Validation runs before any lookup.
func (s *ratingService) Rate(ctx context.Context, userID, movieID int64, value int, comment string) (*domain.Rating, error) {
	if value < domain.MinRatingValue || value > domain.MaxRatingValue {
		return nil, util.ErrInvalidInput
	}
	if utf8.RuneCountInString(comment) > domain.MaxCommentLength {
		return nil, util.ErrInvalidInput
	}

	txController, err := s.beginTx(ctx, s.dbBeginner)
	if err != nil {
		return nil, fmt.Errorf("rate: failed to begin transaction: %w", err)
	}
	defer s.rollbackTx(txController)

	txExecutor, ok := txController.(repository.DBExecutor)
	if !ok {
		return nil, fmt.Errorf("rate: transaction controller does not implement DBExecutor")
	}

	if _, err := s.userRepo.GetUserByID(ctx, txExecutor, userID); err != nil {
		if errors.Is(err, util.ErrNotFound) {
			return nil, util.ErrUserNotFound
		}
		return nil, fmt.Errorf("rate: failed to get user %d: %w", userID, err)
	}
	if _, err := s.movieRepo.GetMovieByID(ctx, txExecutor, movieID); err != nil {
		if errors.Is(err, util.ErrNotFound) {
			return nil, util.ErrMovieNotFound
		}
		return nil, fmt.Errorf("rate: failed to get movie %d: %w", movieID, err)
	}

	rating := &domain.Rating{
		UserID:    userID,
		MovieID:   movieID,
		Rating:    value,
		Comment:   comment,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.ratingRepo.UpsertRating(ctx, txExecutor, rating); err != nil {
		return nil, fmt.Errorf("rate: %w", err)
	}

	if err := s.commitTx(txController); err != nil {
		return nil, fmt.Errorf("rate: failed to commit transaction: %w", err)
	}

	return rating, nil
}

// RatingsForMovie retrieves the flattened rating views for a movie together
// with their count and arithmetic mean. The average is computed over the
// live rating set at call time, never cached, so it always reflects the
// latest Rate and DeleteRating calls. It is nil when the movie has no
// ratings.
func (s *ratingService) RatingsForMovie(ctx context.Context, movieID int64) (*domain.MovieRatings, error) {
	views, err := s.ratingRepo.ListRatingViewsByMovieID(ctx, s.dbExecutor, movieID)
	if err != nil {
		return nil, fmt.Errorf("ratings for movie: %w", err)
	}

	result := &domain.MovieRatings{
		Ratings: views,
		Count:   int64(len(views)),
	}
	if len(views) > 0 {
		values := make([]decimal.Decimal, len(views))
		for i, v := range views {
			values[i] = decimal.NewFromInt(int64(v.Rating))
		}
		average := decimal.Avg(values[0], values[1:]...).InexactFloat64()
		result.Average = &average
	}
	return result, nil
}

// RatingsForUser retrieves all ratings authored by the user, in no
// particular order.
func (s *ratingService) RatingsForUser(ctx context.Context, userID int64) ([]domain.Rating, error) {
	ratings, err := s.ratingRepo.ListRatingsByUserID(ctx, s.dbExecutor, userID)
	if err != nil {
		return nil, fmt.Errorf("ratings for user: %w", err)
	}
	return ratings, nil
}

// RatingFor retrieves the rating for the (user, movie) pair.
func (s *ratingService) RatingFor(ctx context.Context, userID, movieID int64) (*domain.Rating, error) {
	rating, err := s.ratingRepo.GetRatingByUserAndMovie(ctx, s.dbExecutor, userID, movieID)
	if err != nil {
		if errors.Is(err, util.ErrNotFound) {
			return nil, util.ErrRatingNotFound
		}
		return nil, fmt.Errorf("rating for: failed to get rating for user %d, movie %d: %w", userID, movieID, err)
	}
	return rating, nil
}

// TopRatedMovies retrieves per-movie average ratings ordered best first.
func (s *ratingService) TopRatedMovies(ctx context.Context) ([]domain.MovieAverage, error) {
	rows, err := s.ratingRepo.TopRatedMovies(ctx, s.dbExecutor)
	if err != nil {
		return nil, fmt.Errorf("top rated movies: %w", err)
	}
	return rows, nil
}

// DeleteRating removes a single rating by its id. Deleting a rating never
// cascades to the owning user or movie. It returns false when the rating
// does not exist.
func (s *ratingService) DeleteRating(ctx context.Context, id int64) (bool, error) {
	if err := s.ratingRepo.DeleteRating(ctx, s.dbExecutor, id); err != nil {
		if errors.Is(err, util.ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("delete rating: %w", err)
	}
	return true, nil
}
