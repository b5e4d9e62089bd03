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

// MovieHandler handles HTTP requests for the movie catalog.
type MovieHandler struct {
	service  service.MovieService
	logger   *slog.Logger
	validate *validator.Validate
}

// NewMovieHandler creates a new MovieHandler.
func NewMovieHandler(svc service.MovieService, logger *slog.Logger, validate *validator.Validate) *MovieHandler {
	return &MovieHandler{
		service:  svc,
		logger:   logger,
		validate: validate,
	}
}

// AddMovie adds a movie to the catalog.
// POST /api/movies
func (h *MovieHandler) AddMovie(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateMovieRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(h.logger, w, util.ErrInvalidInput)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		respondWithJSON(h.logger, w, http.StatusBadRequest, map[string]string{"message": "Validation failed: " + err.Error()})
		return
	}

	movie, err := h.service.AddMovie(r.Context(), req)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}

	respondWithJSON(h.logger, w, http.StatusCreated, map[string]interface{}{
		"message": "Movie added successfully",
		"movie":   movie,
	})
}

// ListMovies returns the whole catalog.
// GET /api/movies
func (h *MovieHandler) ListMovies(w http.ResponseWriter, r *http.Request) {
	movies, err := h.service.ListMovies(r.Context())
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}
	respondWithJSON(h.logger, w, http.StatusOK, movies)
}

// GetMovieByID returns a single movie.
// GET /api/movies/{id}
func (h *MovieHandler) GetMovieByID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondWithError(h.logger, w, util.ErrInvalidInput)
		return
	}

	movie, err := h.service.GetMovieByID(r.Context(), id)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}
	respondWithJSON(h.logger, w, http.StatusOK, movie)
}

// SearchMovies returns movies whose name contains the query fragment.
// GET /api/movies/search?name=
func (h *MovieHandler) SearchMovies(w http.ResponseWriter, r *http.Request) {
	fragment := r.URL.Query().Get("name")

	movies, err := h.service.SearchMoviesByName(r.Context(), fragment)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}
	respondWithJSON(h.logger, w, http.StatusOK, movies)
}

// GetMoviesByYear returns movies released in a year.
// GET /api/movies/year/{year}
func (h *MovieHandler) GetMoviesByYear(w http.ResponseWriter, r *http.Request) {
	year, err := strconv.Atoi(chi.URLParam(r, "year"))
	if err != nil {
		respondWithError(h.logger, w, util.ErrInvalidInput)
		return
	}

	movies, err := h.service.GetMoviesByYear(r.Context(), year)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}
	respondWithJSON(h.logger, w, http.StatusOK, movies)
}

// GetMoviesByYearRange returns movies released between two years, inclusive.
// GET /api/movies/years?from=&to=
func (h *MovieHandler) GetMoviesByYearRange(w http.ResponseWriter, r *http.Request) {
	fromYear, err := strconv.Atoi(r.URL.Query().Get("from"))
	if err != nil {
		respondWithError(h.logger, w, util.ErrInvalidInput)
		return
	}
	toYear, err := strconv.Atoi(r.URL.Query().Get("to"))
	if err != nil {
		respondWithError(h.logger, w, util.ErrInvalidInput)
		return
	}

	movies, err := h.service.GetMoviesByYearRange(r.Context(), fromYear, toYear)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}
	respondWithJSON(h.logger, w, http.StatusOK, movies)
}

// GetMoviesByGenre returns movies carrying the genre tag.
// GET /api/movies/genre/{genre}
func (h *MovieHandler) GetMoviesByGenre(w http.ResponseWriter, r *http.Request) {
	genre := chi.URLParam(r, "genre")

	movies, err := h.service.GetMoviesByGenre(r.Context(), genre)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}
	respondWithJSON(h.logger, w, http.StatusOK, movies)
}

// UpdateMovie applies a partial update to a movie.
// PUT /api/movies/{id}
func (h *MovieHandler) UpdateMovie(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondWithError(h.logger, w, util.ErrInvalidInput)
		return
	}

	var patch domain.MoviePatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		respondWithError(h.logger, w, util.ErrInvalidInput)
		return
	}
	if err := h.validate.Struct(patch); err != nil {
		respondWithJSON(h.logger, w, http.StatusBadRequest, map[string]string{"message": "Validation failed: " + err.Error()})
		return
	}

	movie, err := h.service.UpdateMovie(r.Context(), id, patch)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}

	respondWithJSON(h.logger, w, http.StatusOK, map[string]interface{}{
		"message": "Movie updated successfully",
		"movie":   movie,
	})
}

// DeleteMovie removes a movie and its ratings.
// DELETE /api/movies/{id}
func (h *MovieHandler) DeleteMovie(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondWithError(h.logger, w, util.ErrInvalidInput)
		return
	}

	deleted, err := h.service.DeleteMovie(r.Context(), id)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}
	if !deleted {
		respondWithError(h.logger, w, util.ErrMovieNotFound)
		return
	}

	respondWithJSON(h.logger, w, http.StatusOK, map[string]string{"message": "Movie deleted successfully"})
}
