package service

import (
	"context"
	"testing"

	"movie-ranker/internal/domain"
	"movie-ranker/internal/util"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newMovieServiceForTest(movieRepo *MockMovieRepository, ratingRepo *MockRatingRepository) MovieService {
	_, beginTx, commitTx, rollbackTx := newTxHarness()
	return NewMovieService(nil, new(MockDBExecutor), movieRepo, ratingRepo, beginTx, commitTx, rollbackTx)
}

func TestAddMovie(t *testing.T) {
	ctx := context.Background()
	req := domain.CreateMovieRequest{
		Name:        "Heat",
		ReleaseYear: 1995,
		Genres:      []string{"Crime", "Thriller"},
	}

	t.Run("SuccessfulAdd", func(t *testing.T) {
		movieRepo := new(MockMovieRepository)
		svc := newMovieServiceForTest(movieRepo, new(MockRatingRepository))

		movieRepo.On("GetMovieByName", ctx, mock.Anything, "Heat").Return(nil, util.ErrNotFound)
		movieRepo.On("CreateMovie", ctx, mock.Anything, mock.AnythingOfType("*domain.Movie")).
			Run(func(args mock.Arguments) {
				args.Get(2).(*domain.Movie).ID = 7
			}).Return(nil)

		movie, err := svc.AddMovie(ctx, req)
		require.NoError(t, err)
		assert.Equal(t, int64(7), movie.ID)
		assert.Equal(t, "Heat", movie.Name)
		assert.Equal(t, pq.StringArray{"Crime", "Thriller"}, movie.Genres)
		movieRepo.AssertExpectations(t)
	})

	t.Run("DuplicateName", func(t *testing.T) {
		movieRepo := new(MockMovieRepository)
		svc := newMovieServiceForTest(movieRepo, new(MockRatingRepository))

		// GetMovieByName matches case-insensitively, so "heat" collides.
		movieRepo.On("GetMovieByName", ctx, mock.Anything, "heat").
			Return(&domain.Movie{ID: 7, Name: "Heat"}, nil)

		dup := req
		dup.Name = "heat"
		movie, err := svc.AddMovie(ctx, dup)
		assert.Nil(t, movie)
		assert.ErrorIs(t, err, util.ErrDuplicateMovieName)
		movieRepo.AssertNotCalled(t, "CreateMovie", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestGetMoviesByYearRange(t *testing.T) {
	ctx := context.Background()

	t.Run("InvertedRangeIsRejected", func(t *testing.T) {
		movieRepo := new(MockMovieRepository)
		svc := newMovieServiceForTest(movieRepo, new(MockRatingRepository))

		movies, err := svc.GetMoviesByYearRange(ctx, 2000, 1990)
		assert.Nil(t, movies)
		assert.ErrorIs(t, err, util.ErrInvalidInput)
		movieRepo.AssertNotCalled(t, "GetMoviesByYearRange", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("SingleYearRange", func(t *testing.T) {
		movieRepo := new(MockMovieRepository)
		svc := newMovieServiceForTest(movieRepo, new(MockRatingRepository))

		movieRepo.On("GetMoviesByYearRange", ctx, mock.Anything, 1995, 1995).
			Return([]domain.Movie{{ID: 7, Name: "Heat", ReleaseYear: 1995}}, nil)

		movies, err := svc.GetMoviesByYearRange(ctx, 1995, 1995)
		require.NoError(t, err)
		assert.Len(t, movies, 1)
	})
}

func TestUpdateMovie(t *testing.T) {
	ctx := context.Background()
	strPtr := func(s string) *string { return &s }
	intPtr := func(n int) *int { return &n }

	t.Run("MovieNotFound", func(t *testing.T) {
		movieRepo := new(MockMovieRepository)
		svc := newMovieServiceForTest(movieRepo, new(MockRatingRepository))
		movieRepo.On("GetMovieByID", ctx, mock.Anything, int64(9)).Return(nil, util.ErrNotFound)

		movie, err := svc.UpdateMovie(ctx, 9, domain.MoviePatch{Name: strPtr("Heat")})
		assert.Nil(t, movie)
		assert.ErrorIs(t, err, util.ErrMovieNotFound)
	})

	t.Run("RenameToTakenName", func(t *testing.T) {
		movieRepo := new(MockMovieRepository)
		svc := newMovieServiceForTest(movieRepo, new(MockRatingRepository))

		movieRepo.On("GetMovieByID", ctx, mock.Anything, int64(7)).
			Return(&domain.Movie{ID: 7, Name: "Heat"}, nil)
		movieRepo.On("GetMovieByName", ctx, mock.Anything, "Ronin").
			Return(&domain.Movie{ID: 8, Name: "Ronin"}, nil)

		movie, err := svc.UpdateMovie(ctx, 7, domain.MoviePatch{Name: strPtr("Ronin")})
		assert.Nil(t, movie)
		assert.ErrorIs(t, err, util.ErrDuplicateMovieName)
		movieRepo.AssertNotCalled(t, "UpdateMovie", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("RecasingOwnNameSkipsDuplicateCheck", func(t *testing.T) {
		movieRepo := new(MockMovieRepository)
		svc := newMovieServiceForTest(movieRepo, new(MockRatingRepository))

		movieRepo.On("GetMovieByID", ctx, mock.Anything, int64(7)).
			Return(&domain.Movie{ID: 7, Name: "heat"}, nil)
		movieRepo.On("UpdateMovie", ctx, mock.Anything, mock.AnythingOfType("*domain.Movie")).Return(nil)

		movie, err := svc.UpdateMovie(ctx, 7, domain.MoviePatch{Name: strPtr("Heat")})
		require.NoError(t, err)
		assert.Equal(t, "Heat", movie.Name)
		movieRepo.AssertNotCalled(t, "GetMovieByName", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("PartialPatchLeavesOtherFieldsIntact", func(t *testing.T) {
		movieRepo := new(MockMovieRepository)
		svc := newMovieServiceForTest(movieRepo, new(MockRatingRepository))

		stored := &domain.Movie{
			ID:              7,
			Name:            "Heat",
			ReleaseYear:     1995,
			Description:     "A heist crew and a detective.",
			DurationMinutes: intPtr(170),
			Genres:          pq.StringArray{"Crime"},
		}
		movieRepo.On("GetMovieByID", ctx, mock.Anything, int64(7)).Return(stored, nil)
		movieRepo.On("UpdateMovie", ctx, mock.Anything, mock.AnythingOfType("*domain.Movie")).Return(nil)

		movie, err := svc.UpdateMovie(ctx, 7, domain.MoviePatch{
			ReleaseYear: intPtr(1996),
			Genres:      []string{"Crime", "Drama"},
		})
		require.NoError(t, err)
		assert.Equal(t, "Heat", movie.Name)
		assert.Equal(t, 1996, movie.ReleaseYear)
		assert.Equal(t, "A heist crew and a detective.", movie.Description)
		assert.Equal(t, 170, *movie.DurationMinutes)
		assert.Equal(t, pq.StringArray{"Crime", "Drama"}, movie.Genres)
	})
}

func TestDeleteMovie(t *testing.T) {
	ctx := context.Background()

	t.Run("CascadesRatings", func(t *testing.T) {
		movieRepo := new(MockMovieRepository)
		ratingRepo := new(MockRatingRepository)
		svc := newMovieServiceForTest(movieRepo, ratingRepo)

		movieRepo.On("GetMovieByID", ctx, mock.Anything, int64(7)).
			Return(&domain.Movie{ID: 7, Name: "Heat"}, nil)
		ratingRepo.On("DeleteRatingsByMovieID", ctx, mock.Anything, int64(7)).Return(nil)
		movieRepo.On("DeleteMovie", ctx, mock.Anything, int64(7)).Return(nil)

		deleted, err := svc.DeleteMovie(ctx, 7)
		require.NoError(t, err)
		assert.True(t, deleted)
		ratingRepo.AssertExpectations(t)
		movieRepo.AssertExpectations(t)
	})

	t.Run("MissingMovieReturnsFalse", func(t *testing.T) {
		movieRepo := new(MockMovieRepository)
		ratingRepo := new(MockRatingRepository)
		svc := newMovieServiceForTest(movieRepo, ratingRepo)

		movieRepo.On("GetMovieByID", ctx, mock.Anything, int64(9)).Return(nil, util.ErrNotFound)

		deleted, err := svc.DeleteMovie(ctx, 9)
		require.NoError(t, err)
		assert.False(t, deleted)
		ratingRepo.AssertNotCalled(t, "DeleteRatingsByMovieID", mock.Anything, mock.Anything, mock.Anything)
	})
}
