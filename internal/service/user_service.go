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
	"movie-ranker/pkg/auth"
	"movie-ranker/pkg/db"
)

// UserService defines the interface for user identity and follow-graph
// business logic.
type UserService interface {
	Register(ctx context.Context, username, password string) (*domain.User, error)
	Login(ctx context.Context, username, password string) (*domain.User, error)
	GetUserByID(ctx context.Context, id int64) (*domain.User, error)
	GetUserByUsername(ctx context.Context, username string) (*domain.User, error)
	ListUsers(ctx context.Context) ([]domain.User, error)
	SearchUsers(ctx context.Context, fragment string) ([]domain.User, error)
	UpdateProfile(ctx context.Context, id int64, patch domain.UserPatch) (*domain.User, error)
	DeleteUser(ctx context.Context, id int64) (bool, error)
	DeleteUserByUsername(ctx context.Context, username string) (bool, error)
	Follow(ctx context.Context, userID, followedUserID int64) (*domain.User, error)
	Unfollow(ctx context.Context, userID, followedUserID int64) (*domain.User, error)
	ListFollowing(ctx context.Context, userID int64) ([]domain.User, error)
}

// userService implements the UserService interface.
type userService struct {
	dbBeginner db.DBTxBeginner
	dbExecutor repository.DBExecutor
	userRepo   repository.UserRepository
	followRepo repository.FollowRepository
	ratingRepo repository.RatingRepository
	hasher     auth.PasswordHasher
	beginTx    db.BeginTxFunc
	commitTx   db.CommitTxFunc
	rollbackTx db.RollbackTxFunc
}

// NewUserService creates a new instance of UserService.
func NewUserService(
	dbBeginner db.DBTxBeginner,
	dbExecutor repository.DBExecutor,
	userRepo repository.UserRepository,
	followRepo repository.FollowRepository,
	ratingRepo repository.RatingRepository,
	hasher auth.PasswordHasher,
	beginTx db.BeginTxFunc,
	commitTx db.CommitTxFunc,
	rollbackTx db.RollbackTxFunc,
) UserService {
	return &userService{
		dbBeginner: dbBeginner,
		dbExecutor: dbExecutor,
		userRepo:   userRepo,
		followRepo: followRepo,
		ratingRepo: ratingRepo,
		hasher:     hasher,
		beginTx:    beginTx,
		commitTx:   commitTx,
		rollbackTx: rollbackTx,
	}
}

// Register creates a new user after checking username uniqueness and hashing
// the password. The uniqueness check is an exact string comparison; the
// unique index on users.username backstops it against concurrent registrations.
func (s *userService) Register(ctx context.Context, username, password string) (*domain.User, error) {
	txController, err := s.beginTx(ctx, s.dbBeginner)
	if err != nil {
		return nil, fmt.Errorf("register: failed to begin transaction: %w", err)
	}
	defer s.rollbackTx(txController)

	txExecutor, ok := txController.(repository.DBExecutor)
	if !ok {
		return nil, fmt.Errorf("register: transaction controller does not implement DBExecutor")
	}

	_, err = s.userRepo.GetUserByUsername(ctx, txExecutor, username)
	if err == nil {
		return nil, util.ErrDuplicateUsername
	}
	if !errors.Is(err, util.ErrNotFound) {
		return nil, fmt.Errorf("register: failed to check existing user: %w", err)
	}

	passwordHash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}

	user := domain.NewUser(username, passwordHash)
	if err := s.userRepo.CreateUser(ctx, txExecutor, user); err != nil {
		return nil, fmt.Errorf("register: failed to create user: %w", err)
	}

	if err := s.commitTx(txController); err != nil {
		return nil, fmt.Errorf("register: failed to commit transaction: %w", err)
	}

	return user, nil
}

// Login verifies the user's credentials and returns the stored user.
func (s *userService) Login(ctx context.Context, username, password string) (*domain.User, error) {
	user, err := s.userRepo.GetUserByUsername(ctx, s.dbExecutor, username)
	if err != nil {
		if errors.Is(err, util.ErrNotFound) {
			return nil, util.ErrUserNotFound
		}
		return nil, fmt.Errorf("login: failed to get user '%s': %w", username, err)
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return nil, util.ErrInvalidCredentials
	}

	return user, nil
}

// GetUserByID retrieves a single user.
func (s *userService) GetUserByID(ctx context.Context, id int64) (*domain.User, error) {
	user, err := s.userRepo.GetUserByID(ctx, s.dbExecutor, id)
	if err != nil {
		if errors.Is(err, util.ErrNotFound) {
			return nil, util.ErrUserNotFound
		}
		return nil, fmt.Errorf("get user: failed to get user %d: %w", id, err)
	}
	return user, nil
}

// GetUserByUsername retrieves a single user by exact username.
func (s *userService) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	user, err := s.userRepo.GetUserByUsername(ctx, s.dbExecutor, username)
	if err != nil {
		if errors.Is(err, util.ErrNotFound) {
			return nil, util.ErrUserNotFound
		}
		return nil, fmt.Errorf("get user: failed to get user '%s': %w", username, err)
	}
	return user, nil
}

// ListUsers retrieves all users.
func (s *userService) ListUsers(ctx context.Context) ([]domain.User, error) {
	users, err := s.userRepo.ListUsers(ctx, s.dbExecutor)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// SearchUsers retrieves users whose username contains the fragment,
// case-insensitively. An empty result is not an error.
func (s *userService) SearchUsers(ctx context.Context, fragment string) ([]domain.User, error) {
	users, err := s.userRepo.SearchUsersByUsername(ctx, s.dbExecutor, fragment)
	if err != nil {
		return nil, fmt.Errorf("search users: %w", err)
	}
	return users, nil
}

// UpdateProfile applies a partial update to the user's username and password.
// Nil or blank fields are left unchanged. A changed username is checked for
// uniqueness before being applied.
func (s *userService) UpdateProfile(ctx context.Context, id int64, patch domain.UserPatch) (*domain.User, error) {
	txController, err := s.beginTx(ctx, s.dbBeginner)
	if err != nil {
		return nil, fmt.Errorf("update profile: failed to begin transaction: %w", err)
	}
	defer s.rollbackTx(txController)

	txExecutor, ok := txController.(repository.DBExecutor)
	if !ok {
		return nil, fmt.Errorf("update profile: transaction controller does not implement DBExecutor")
	}

	user, err := s.userRepo.GetUserByID(ctx, txExecutor, id)
	if err != nil {
		if errors.Is(err, util.ErrNotFound) {
			return nil, util.ErrUserNotFound
		}
		return nil, fmt.Errorf("update profile: failed to get user %d: %w", id, err)
	}

	if patch.Username != nil && strings.TrimSpace(*patch.Username) != "" && *patch.Username != user.Username {
		_, err := s.userRepo.GetUserByUsername(ctx, txExecutor, *patch.Username)
		if err == nil {
			return nil, util.ErrDuplicateUsername
		}
		if !errors.Is(err, util.ErrNotFound) {
			return nil, fmt.Errorf("update profile: failed to check username '%s': %w", *patch.Username, err)
		}
		user.Username = *patch.Username
	}

	if patch.Password != nil && strings.TrimSpace(*patch.Password) != "" {
		passwordHash, err := s.hasher.Hash(*patch.Password)
		if err != nil {
			return nil, fmt.Errorf("update profile: %w", err)
		}
		user.PasswordHash = passwordHash
	}

	user.UpdatedAt = time.Now().UTC()
	if err := s.userRepo.UpdateUser(ctx, txExecutor, user); err != nil {
		return nil, fmt.Errorf("update profile: failed to update user %d: %w", id, err)
	}

	if err := s.commitTx(txController); err != nil {
		return nil, fmt.Errorf("update profile: failed to commit transaction: %w", err)
	}

	return user, nil
}

// DeleteUser removes the user along with all ratings they authored and every
// follow edge touching them, in one transaction. It returns false when the
// user does not exist.
func (s *userService) DeleteUser(ctx context.Context, id int64) (bool, error) {
	txController, err := s.beginTx(ctx, s.dbBeginner)
	if err != nil {
		return false, fmt.Errorf("delete user: failed to begin transaction: %w", err)
	}
	defer s.rollbackTx(txController)

	txExecutor, ok := txController.(repository.DBExecutor)
	if !ok {
		return false, fmt.Errorf("delete user: transaction controller does not implement DBExecutor")
	}

	_, err = s.userRepo.GetUserByID(ctx, txExecutor, id)
	if err != nil {
		if errors.Is(err, util.ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("delete user: failed to get user %d: %w", id, err)
	}

	if err := s.ratingRepo.DeleteRatingsByUserID(ctx, txExecutor, id); err != nil {
		return false, fmt.Errorf("delete user: %w", err)
	}
	if err := s.followRepo.DeleteEdgesForUser(ctx, txExecutor, id); err != nil {
		return false, fmt.Errorf("delete user: %w", err)
	}
	if err := s.userRepo.DeleteUser(ctx, txExecutor, id); err != nil {
		return false, fmt.Errorf("delete user: failed to delete user %d: %w", id, err)
	}

	if err := s.commitTx(txController); err != nil {
		return false, fmt.Errorf("delete user: failed to commit transaction: %w", err)
	}

	return true, nil
}

// DeleteUserByUsername resolves the username and deletes the user with the
// same cascade semantics as DeleteUser.
func (s *userService) DeleteUserByUsername(ctx context.Context, username string) (bool, error) {
	user, err := s.userRepo.GetUserByUsername(ctx, s.dbExecutor, username)
	if err != nil {
		if errors.Is(err, util.ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("delete user: failed to get user '%s': %w", username, err)
	}
	return s.DeleteUser(ctx, user.ID)
}

// Follow adds followedUserID to userID's following set. Both users must
// exist. Following an already followed user is a no-op; self-follow is
// permitted.
func (s *userService) Follow(ctx context.Context, userID, followedUserID int64) (*domain.User, error) {
	txController, err := s.beginTx(ctx, s.dbBeginner)
	if err != nil {
		return nil, fmt.Errorf("follow: failed to begin transaction: %w", err)
	}
	defer s.rollbackTx(txController)

	txExecutor, ok := txController.(repository.DBExecutor)
	if !ok {
		return nil, fmt.Errorf("follow: transaction controller does not implement DBExecutor")
	}

	user, err := s.resolveFollowPair(ctx, txExecutor, userID, followedUserID)
	if err != nil {
		return nil, err
	}

	if err := s.followRepo.AddFollow(ctx, txExecutor, userID, followedUserID); err != nil {
		return nil, fmt.Errorf("follow: %w", err)
	}

	if err := s.commitTx(txController); err != nil {
		return nil, fmt.Errorf("follow: failed to commit transaction: %w", err)
	}

	return user, nil
}

// Unfollow removes followedUserID from userID's following set. Both users
// must exist; removing an absent edge still succeeds.
func (s *userService) Unfollow(ctx context.Context, userID, followedUserID int64) (*domain.User, error) {
	txController, err := s.beginTx(ctx, s.dbBeginner)
	if err != nil {
		return nil, fmt.Errorf("unfollow: failed to begin transaction: %w", err)
	}
	defer s.rollbackTx(txController)

	txExecutor, ok := txController.(repository.DBExecutor)
	if !ok {
		return nil, fmt.Errorf("unfollow: transaction controller does not implement DBExecutor")
	}

	user, err := s.resolveFollowPair(ctx, txExecutor, userID, followedUserID)
	if err != nil {
		return nil, err
	}

	if err := s.followRepo.RemoveFollow(ctx, txExecutor, userID, followedUserID); err != nil {
		return nil, fmt.Errorf("unfollow: %w", err)
	}

	if err := s.commitTx(txController); err != nil {
		return nil, fmt.Errorf("unfollow: failed to commit transaction: %w", err)
	}

	return user, nil
}

// resolveFollowPair checks that both ends of a follow edge exist and returns
// the follower.
func (s *userService) resolveFollowPair(ctx context.Context, q repository.DBExecutor, userID, followedUserID int64) (*domain.User, error) {
	user, err := s.userRepo.GetUserByID(ctx, q, userID)
	if err != nil {
		if errors.Is(err, util.ErrNotFound) {
			return nil, util.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user %d: %w", userID, err)
	}
	if followedUserID != userID {
		if _, err := s.userRepo.GetUserByID(ctx, q, followedUserID); err != nil {
			if errors.Is(err, util.ErrNotFound) {
				return nil, util.ErrUserNotFound
			}
			return nil, fmt.Errorf("failed to get user %d: %w", followedUserID, err)
		}
	}
	return user, nil
}

// ListFollowing retrieves the users followed by the given user, in no
// particular order.
func (s *userService) ListFollowing(ctx context.Context, userID int64) ([]domain.User, error) {
	if _, err := s.userRepo.GetUserByID(ctx, s.dbExecutor, userID); err != nil {
		if errors.Is(err, util.ErrNotFound) {
			return nil, util.ErrUserNotFound
		}
		return nil, fmt.Errorf("list following: failed to get user %d: %w", userID, err)
	}

	users, err := s.followRepo.ListFollowing(ctx, s.dbExecutor, userID)
	if err != nil {
		return nil, fmt.Errorf("list following: %w", err)
	}
	return users, nil
}
