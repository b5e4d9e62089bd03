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

// RatingHandler handles HTTP requests for movie ratings.
type RatingHandler struct {
	service  service.RatingService
	logger   *slog.Logger
	validate *validator.Validate
}

// NewRatingHandler creates a new RatingHandler.
func NewRatingHandler(svc service.RatingService, logger *slog.Logger, validate *validator.Validate) *RatingHandler {
	return &RatingHandler{
		service:  svc,
		logger:   logger,
		validate: validate,
	}
}

// Rate creates or overwrites the caller's rating of a movie.
// POST /api/ratings
func (h *RatingHandler) Rate(w http.ResponseWriter, r *http.Request) {
	var req domain.RateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(h.logger, w, util.ErrInvalidInput)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		respondWithJSON(h.logger, w, http.StatusBadRequest, map[string]string{"message": "Validation failed: " + err.Error()})
		return
	}

	rating, err := h.service.Rate(r.Context(), req.UserID, req.MovieID, req.Rating, req.Comment)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}

	respondWithJSON(h.logger, w, http.StatusOK, map[string]interface{}{
		"message": "Rating saved successfully",
		"rating":  rating,
	})
}

// RatingsByMovie returns all ratings for a movie with their live average and
// count.
// GET /api/ratings/movie/{movieId}
func (h *RatingHandler) RatingsByMovie(w http.ResponseWriter, r *http.Request) {
	movieID, err := strconv.ParseInt(chi.URLParam(r, "movieId"), 10, 64)
	if err != nil {
		respondWithError(h.logger, w, util.ErrInvalidInput)
		return
	}

	result, err := h.service.RatingsForMovie(r.Context(), movieID)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}
	respondWithJSON(h.logger, w, http.StatusOK, result)
}

// RatingsByUser returns all ratings authored by a user.
// GET /api/ratings/user/{userId}
func (h *RatingHandler) RatingsByUser(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(chi.URLParam(r, "userId"), 10, 64)
	if err != nil {
		respondWithError(h.logger, w, util.ErrInvalidInput)
		return
	}

	ratings, err := h.service.RatingsForUser(r.Context(), userID)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}
	respondWithJSON(h.logger, w, http.StatusOK, ratings)
}

// RatingByUserAndMovie returns the rating for a (user, movie) pair.
// GET /api/ratings/user/{userId}/movie/{movieId}
func (h *RatingHandler) RatingByUserAndMovie(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(chi.URLParam(r, "userId"), 10, 64)
	if err != nil {
		respondWithError(h.logger, w, util.ErrInvalidInput)
		return
	}
	movieID, err := strconv.ParseInt(chi.URLParam(r, "movieId"), 10, 64)
	if err != nil {
		respondWithError(h.logger, w, util.ErrInvalidInput)
		return
	}

	rating, err := h.service.RatingFor(r.Context(), userID, movieID)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}
	respondWithJSON(h.logger, w, http.StatusOK, rating)
}

// TopRatedMovies returns per-movie averages, best first.
// GET /api/ratings/top
func (h *RatingHandler) TopRatedMovies(w http.ResponseWriter, r *http.Request) {
	rows, err := h.service.TopRatedMovies(r.Context())
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}
	respondWithJSON(h.logger, w, http.StatusOK, rows)
}

// DeleteRating removes a single rating.
// DELETE /api/ratings/{id}
func (h *RatingHandler) DeleteRating(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondWithError(h.logger, w, util.ErrInvalidInput)
		return
	}

	deleted, err := h.service.DeleteRating(r.Context(), id)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}
	if !deleted {
		respondWithError(h.logger, w, util.ErrRatingNotFound)
		return
	}

	respondWithJSON(h.logger, w, http.StatusOK, map[string]string{"message": "Rating deleted successfully"})
}
