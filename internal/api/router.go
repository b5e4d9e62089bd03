package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"movie-ranker/internal/api/handler"
)

// NewRouter sets up and returns a new HTTP router.
func NewRouter(
	userHandler *handler.UserHandler,
	movieHandler *handler.MovieHandler,
	ratingHandler *handler.RatingHandler,
	followHandler *handler.FollowHandler,
	logger *slog.Logger,
) http.Handler {
	r := chi.NewRouter()

	// Global middlewares
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(handler.DefaultTimeout))

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	r.Route("/api", func(r chi.Router) {
		// User accounts and authentication
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", userHandler.Register)
			r.Post("/login", userHandler.Login)
			r.Get("/users", userHandler.ListUsers)
			r.Get("/users/{id}", userHandler.GetUserByID)
			r.Put("/users/{id}", userHandler.UpdateProfile)
			r.Delete("/users/{id}", userHandler.DeleteUser)
			r.Get("/users/username/{username}", userHandler.GetUserByUsername)
			r.Delete("/users/username/{username}", userHandler.DeleteUserByUsername)
		})

		// Movie catalog
		r.Route("/movies", func(r chi.Router) {
			r.Get("/", movieHandler.ListMovies)
			r.Post("/", movieHandler.AddMovie)
			r.Get("/search", movieHandler.SearchMovies)
			r.Get("/years", movieHandler.GetMoviesByYearRange)
			r.Get("/year/{year}", movieHandler.GetMoviesByYear)
			r.Get("/genre/{genre}", movieHandler.GetMoviesByGenre)
			r.Get("/{id}", movieHandler.GetMovieByID)
			r.Put("/{id}", movieHandler.UpdateMovie)
			r.Delete("/{id}", movieHandler.DeleteMovie)
		})

		// Ratings
		r.Route("/ratings", func(r chi.Router) {
			r.Post("/", ratingHandler.Rate)
			r.Get("/top", ratingHandler.TopRatedMovies)
			r.Get("/movie/{movieId}", ratingHandler.RatingsByMovie)
			r.Get("/user/{userId}", ratingHandler.RatingsByUser)
			r.Get("/user/{userId}/movie/{movieId}", ratingHandler.RatingByUserAndMovie)
			r.Delete("/{id}", ratingHandler.DeleteRating)
		})

		// Follow graph
		r.Route("/follows", func(r chi.Router) {
			r.Post("/{userId}/follow/{followedUserId}", followHandler.Follow)
			r.Delete("/{userId}/follow/{followedUserId}", followHandler.Unfollow)
			r.Get("/{userId}/following", followHandler.ListFollowing)
			r.Get("/search", followHandler.SearchUsers)
		})
	})

	return r
}
