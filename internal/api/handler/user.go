package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"movie-ranker/internal/domain"
	"movie-ranker/internal/service"
	"movie-ranker/internal/util"
)

// UserHandler handles HTTP requests for user accounts and authentication.
type UserHandler struct {
	service  service.UserService
	logger   *slog.Logger
	validate *validator.Validate
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(svc service.UserService, logger *slog.Logger, validate *validator.Validate) *UserHandler {
	return &UserHandler{
		service:  svc,
		logger:   logger,
		validate: validate,
	}
}

// Register handles user registration.
// POST /api/auth/register
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req domain.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(h.logger, w, util.ErrInvalidInput)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		respondWithJSON(h.logger, w, http.StatusBadRequest, map[string]string{"message": "Validation failed: " + err.Error()})
		return
	}

	user, err := h.service.Register(r.Context(), req.Username, req.Password)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}

	respondWithJSON(h.logger, w, http.StatusCreated, map[string]interface{}{
		"message":  "User registered successfully",
		"username": user.Username,
		"user":     user,
	})
}

// Login handles user authentication.
// POST /api/auth/login
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req domain.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(h.logger, w, util.ErrInvalidInput)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		respondWithJSON(h.logger, w, http.StatusBadRequest, map[string]string{"message": "Validation failed: " + err.Error()})
		return
	}

	user, err := h.service.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}

	respondWithJSON(h.logger, w, http.StatusOK, map[string]interface{}{
		"message":  "Login successful",
		"username": user.Username,
	})
}

// ListUsers returns all registered users.
// GET /api/auth/users
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.service.ListUsers(r.Context())
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}
	respondWithJSON(h.logger, w, http.StatusOK, users)
}

// GetUserByID returns a single user.
// GET /api/auth/users/{id}
func (h *UserHandler) GetUserByID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondWithError(h.logger, w, util.ErrInvalidInput)
		return
	}

	user, err := h.service.GetUserByID(r.Context(), id)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}
	respondWithJSON(h.logger, w, http.StatusOK, user)
}

// GetUserByUsername returns a single user by exact username.
// GET /api/auth/users/username/{username}
func (h *UserHandler) GetUserByUsername(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")

	user, err := h.service.GetUserByUsername(r.Context(), username)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}
	respondWithJSON(h.logger, w, http.StatusOK, user)
}

// UpdateProfile applies a partial profile update.
// PUT /api/auth/users/{id}
func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondWithError(h.logger, w, util.ErrInvalidInput)
		return
	}

	var patch domain.UserPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		respondWithError(h.logger, w, util.ErrInvalidInput)
		return
	}
	if err := h.validate.Struct(patch); err != nil {
		respondWithJSON(h.logger, w, http.StatusBadRequest, map[string]string{"message": "Validation failed: " + err.Error()})
		return
	}

	user, err := h.service.UpdateProfile(r.Context(), id, patch)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}

	respondWithJSON(h.logger, w, http.StatusOK, map[string]interface{}{
		"message": "User updated successfully",
		"user":    user,
	})
}

// DeleteUser removes a user and everything they own.
// DELETE /api/auth/users/{id}
func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondWithError(h.logger, w, util.ErrInvalidInput)
		return
	}

	deleted, err := h.service.DeleteUser(r.Context(), id)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}
	if !deleted {
		respondWithError(h.logger, w, util.ErrUserNotFound)
		return
	}

	respondWithJSON(h.logger, w, http.StatusOK, map[string]string{"message": "User deleted successfully"})
}

// DeleteUserByUsername removes a user resolved by username.
// DELETE /api/auth/users/username/{username}
func (h *UserHandler) DeleteUserByUsername(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")

	deleted, err := h.service.DeleteUserByUsername(r.Context(), username)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}
	if !deleted {
		respondWithError(h.logger, w, util.ErrUserNotFound)
		return
	}

	respondWithJSON(h.logger, w, http.StatusOK, map[string]string{"message": "User deleted successfully"})
}
