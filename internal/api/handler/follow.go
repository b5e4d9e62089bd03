package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"movie-ranker/internal/service"
	"movie-ranker/internal/util"
)

// FollowHandler handles HTTP requests for the user follow graph.
type FollowHandler struct {
	service service.UserService
	logger  *slog.Logger
}

// NewFollowHandler creates a new FollowHandler.
func NewFollowHandler(svc service.UserService, logger *slog.Logger) *FollowHandler {
	return &FollowHandler{
		service: svc,
		logger:  logger,
	}
}

func followParams(r *http.Request) (int64, int64, error) {
	userID, err := strconv.ParseInt(chi.URLParam(r, "userId"), 10, 64)
	if err != nil {
		return 0, 0, util.ErrInvalidInput
	}
	followedUserID, err := strconv.ParseInt(chi.URLParam(r, "followedUserId"), 10, 64)
	if err != nil {
		return 0, 0, util.ErrInvalidInput
	}
	return userID, followedUserID, nil
}

// Follow adds a user to another user's following set.
// POST /api/follows/{userId}/follow/{followedUserId}
func (h *FollowHandler) Follow(w http.ResponseWriter, r *http.Request) {
	userID, followedUserID, err := followParams(r)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}

	user, err := h.service.Follow(r.Context(), userID, followedUserID)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}

	respondWithJSON(h.logger, w, http.StatusOK, map[string]interface{}{
		"message": "User followed successfully",
		"user":    user,
	})
}

// Unfollow removes a user from another user's following set.
// DELETE /api/follows/{userId}/follow/{followedUserId}
func (h *FollowHandler) Unfollow(w http.ResponseWriter, r *http.Request) {
	userID, followedUserID, err := followParams(r)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}

	user, err := h.service.Unfollow(r.Context(), userID, followedUserID)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}

	respondWithJSON(h.logger, w, http.StatusOK, map[string]interface{}{
		"message": "User unfollowed successfully",
		"user":    user,
	})
}

// ListFollowing returns the users the given user follows.
// GET /api/follows/{userId}/following
func (h *FollowHandler) ListFollowing(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(chi.URLParam(r, "userId"), 10, 64)
	if err != nil {
		respondWithError(h.logger, w, util.ErrInvalidInput)
		return
	}

	following, err := h.service.ListFollowing(r.Context(), userID)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}

	respondWithJSON(h.logger, w, http.StatusOK, map[string]interface{}{
		"following": following,
		"count":     len(following),
	})
}

// SearchUsers returns users whose username contains the query fragment.
// GET /api/follows/search?username=
func (h *FollowHandler) SearchUsers(w http.ResponseWriter, r *http.Request) {
	fragment := r.URL.Query().Get("username")

	users, err := h.service.SearchUsers(r.Context(), fragment)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}
	respondWithJSON(h.logger, w, http.StatusOK, users)
}
