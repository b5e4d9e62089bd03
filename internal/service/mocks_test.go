package service

import (
	"context"
	"database/sql"

	"movie-ranker/internal/domain"
	"movie-ranker/internal/repository"
	"movie-ranker/pkg/db"

	"github.com/stretchr/testify/mock"
)

// MockDBExecutor is a mock implementation of repository.DBExecutor.
type MockDBExecutor struct {
	mock.Mock
}

func (m *MockDBExecutor) GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error {
	argsCalled := m.Called(ctx, dest, query, args)
	return argsCalled.Error(0)
}

func (m *MockDBExecutor) SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error {
	argsCalled := m.Called(ctx, dest, query, args)
	return argsCalled.Error(0)
}

func (m *MockDBExecutor) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	argsCalled := m.Called(ctx, query, args)
	return argsCalled.Get(0).(sql.Result), argsCalled.Error(1)
}

func (m *MockDBExecutor) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	m.Called(ctx, query, args)
	return &sql.Row{}
}

// MockTxController stands in for *sqlx.Tx in service tests. It also
// satisfies repository.DBExecutor by embedding MockDBExecutor so that the
// services' type assertion on the transaction controller succeeds.
type MockTxController struct {
	MockDBExecutor
}

func (m *MockTxController) Commit() error   { return nil }
func (m *MockTxController) Rollback() error { return nil }

// newTxHarness returns a mock transaction controller plus begin/commit/
// rollback functions that hand it to the service under test.
func newTxHarness() (*MockTxController, db.BeginTxFunc, db.CommitTxFunc, db.RollbackTxFunc) {
	tx := new(MockTxController)
	beginTx := func(ctx context.Context, _ db.DBTxBeginner) (db.TxController, error) {
		return tx, nil
	}
	commitTx := func(db.TxController) error { return nil }
	rollbackTx := func(db.TxController) {}
	return tx, beginTx, commitTx, rollbackTx
}

// MockUserRepository is a mock implementation of repository.UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) CreateUser(ctx context.Context, q repository.DBExecutor, user *domain.User) error {
	args := m.Called(ctx, q, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetUserByID(ctx context.Context, q repository.DBExecutor, id int64) (*domain.User, error) {
	args := m.Called(ctx, q, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) GetUserByUsername(ctx context.Context, q repository.DBExecutor, username string) (*domain.User, error) {
	args := m.Called(ctx, q, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) ListUsers(ctx context.Context, q repository.DBExecutor) ([]domain.User, error) {
	args := m.Called(ctx, q)
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *MockUserRepository) SearchUsersByUsername(ctx context.Context, q repository.DBExecutor, fragment string) ([]domain.User, error) {
	args := m.Called(ctx, q, fragment)
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *MockUserRepository) UpdateUser(ctx context.Context, q repository.DBExecutor, user *domain.User) error {
	args := m.Called(ctx, q, user)
	return args.Error(0)
}

func (m *MockUserRepository) DeleteUser(ctx context.Context, q repository.DBExecutor, id int64) error {
	args := m.Called(ctx, q, id)
	return args.Error(0)
}

// MockFollowRepository is a mock implementation of repository.FollowRepository.
type MockFollowRepository struct {
	mock.Mock
}

func (m *MockFollowRepository) AddFollow(ctx context.Context, q repository.DBExecutor, userID, followedUserID int64) error {
	args := m.Called(ctx, q, userID, followedUserID)
	return args.Error(0)
}

func (m *MockFollowRepository) RemoveFollow(ctx context.Context, q repository.DBExecutor, userID, followedUserID int64) error {
	args := m.Called(ctx, q, userID, followedUserID)
	return args.Error(0)
}

func (m *MockFollowRepository) ListFollowing(ctx context.Context, q repository.DBExecutor, userID int64) ([]domain.User, error) {
	args := m.Called(ctx, q, userID)
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *MockFollowRepository) DeleteEdgesForUser(ctx context.Context, q repository.DBExecutor, userID int64) error {
	args := m.Called(ctx, q, userID)
	return args.Error(0)
}

// MockMovieRepository is a mock implementation of repository.MovieRepository.
type MockMovieRepository struct {
	mock.Mock
}

func (m *MockMovieRepository) CreateMovie(ctx context.Context, q repository.DBExecutor, movie *domain.Movie) error {
	args := m.Called(ctx, q, movie)
	return args.Error(0)
}

func (m *MockMovieRepository) GetMovieByID(ctx context.Context, q repository.DBExecutor, id int64) (*domain.Movie, error) {
	args := m.Called(ctx, q, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Movie), args.Error(1)
}

func (m *MockMovieRepository) GetMovieByName(ctx context.Context, q repository.DBExecutor, name string) (*domain.Movie, error) {
	args := m.Called(ctx, q, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Movie), args.Error(1)
}

func (m *MockMovieRepository) ListMovies(ctx context.Context, q repository.DBExecutor) ([]domain.Movie, error) {
	args := m.Called(ctx, q)
	return args.Get(0).([]domain.Movie), args.Error(1)
}

func (m *MockMovieRepository) SearchMoviesByName(ctx context.Context, q repository.DBExecutor, fragment string) ([]domain.Movie, error) {
	args := m.Called(ctx, q, fragment)
	return args.Get(0).([]domain.Movie), args.Error(1)
}

func (m *MockMovieRepository) GetMoviesByYear(ctx context.Context, q repository.DBExecutor, year int) ([]domain.Movie, error) {
	args := m.Called(ctx, q, year)
	return args.Get(0).([]domain.Movie), args.Error(1)
}

func (m *MockMovieRepository) GetMoviesByYearRange(ctx context.Context, q repository.DBExecutor, fromYear, toYear int) ([]domain.Movie, error) {
	args := m.Called(ctx, q, fromYear, toYear)
	return args.Get(0).([]domain.Movie), args.Error(1)
}

func (m *MockMovieRepository) GetMoviesByGenre(ctx context.Context, q repository.DBExecutor, genre string) ([]domain.Movie, error) {
	args := m.Called(ctx, q, genre)
	return args.Get(0).([]domain.Movie), args.Error(1)
}

func (m *MockMovieRepository) UpdateMovie(ctx context.Context, q repository.DBExecutor, movie *domain.Movie) error {
	args := m.Called(ctx, q, movie)
	return args.Error(0)
}

func (m *MockMovieRepository) DeleteMovie(ctx context.Context, q repository.DBExecutor, id int64) error {
	args := m.Called(ctx, q, id)
	return args.Error(0)
}

// MockRatingRepository is a mock implementation of repository.RatingRepository.
type MockRatingRepository struct {
	mock.Mock
}

func (m *MockRatingRepository) UpsertRating(ctx context.Context, q repository.DBExecutor, rating *domain.Rating) error {
	args := m.Called(ctx, q, rating)
	return args.Error(0)
}

func (m *MockRatingRepository) GetRatingByID(ctx context.Context, q repository.DBExecutor, id int64) (*domain.Rating, error) {
	args := m.Called(ctx, q, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rating), args.Error(1)
}

func (m *MockRatingRepository) GetRatingByUserAndMovie(ctx context.Context, q repository.DBExecutor, userID, movieID int64) (*domain.Rating, error) {
	args := m.Called(ctx, q, userID, movieID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rating), args.Error(1)
}

func (m *MockRatingRepository) ListRatingViewsByMovieID(ctx context.Context, q repository.DBExecutor, movieID int64) ([]domain.RatingView, error) {
	args := m.Called(ctx, q, movieID)
	return args.Get(0).([]domain.RatingView), args.Error(1)
}

func (m *MockRatingRepository) ListRatingsByUserID(ctx context.Context, q repository.DBExecutor, userID int64) ([]domain.Rating, error) {
	args := m.Called(ctx, q, userID)
	return args.Get(0).([]domain.Rating), args.Error(1)
}

func (m *MockRatingRepository) DeleteRating(ctx context.Context, q repository.DBExecutor, id int64) error {
	args := m.Called(ctx, q, id)
	return args.Error(0)
}

func (m *MockRatingRepository) DeleteRatingsByUserID(ctx context.Context, q repository.DBExecutor, userID int64) error {
	args := m.Called(ctx, q, userID)
	return args.Error(0)
}

func (m *MockRatingRepository) DeleteRatingsByMovieID(ctx context.Context, q repository.DBExecutor, movieID int64) error {
	args := m.Called(ctx, q, movieID)
	return args.Error(0)
}

func (m *MockRatingRepository) TopRatedMovies(ctx context.Context, q repository.DBExecutor) ([]domain.MovieAverage, error) {
	args := m.Called(ctx, q)
	return args.Get(0).([]domain.MovieAverage), args.Error(1)
}

// fakeHasher is a deterministic stand-in for the bcrypt hasher so tests can
// assert on stored hashes without paying bcrypt cost.
type fakeHasher struct{}

func (fakeHasher) Hash(password string) (string, error) {
	return "hashed:" + password, nil
}

func (fakeHasher) Verify(password, hashedPassword string) bool {
	return hashedPassword == "hashed:"+password
}
