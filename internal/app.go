package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"

	router "movie-ranker/internal/api"
	"movie-ranker/internal/api/handler"
	"movie-ranker/internal/config"
	"movie-ranker/internal/repository"
	"movie-ranker/internal/repository/postgres"
	"movie-ranker/internal/service"
	"movie-ranker/internal/util"
	"movie-ranker/pkg/auth"
	"movie-ranker/pkg/db"
)

// Application holds all the initialized components of the application.
type Application struct {
	Config *config.AppConfig
	Logger *slog.Logger
	DB     *sqlx.DB

	// Repositories
	UserRepository   repository.UserRepository
	FollowRepository repository.FollowRepository
	MovieRepository  repository.MovieRepository
	RatingRepository repository.RatingRepository

	// Services
	UserService   service.UserService
	MovieService  service.MovieService
	RatingService service.RatingService

	// HTTP API
	HTTPHandler http.Handler
}

// NewApplication creates a new Application instance.
func NewApplication() *Application {
	return &Application{}
}

// Initialize initializes all application components.
func (app *Application) Initialize(ctx context.Context) error {
	// 1. Load Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	app.Config = cfg

	// 2. Initialize Logger
	util.InitLogger()
	app.Logger = util.GetLogger()
	app.Logger.Info("Application configuration loaded successfully.")

	// 3. Connect to Database
	database, err := db.NewPostgresDB(app.Config.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	app.DB = database
	app.Logger.Info("Database connection established.")

	// 4. Initialize Repositories
	app.UserRepository = postgres.NewUserRepository(app.DB)
	app.FollowRepository = postgres.NewFollowRepository(app.DB)
	app.MovieRepository = postgres.NewMovieRepository(app.DB)
	app.RatingRepository = postgres.NewRatingRepository(app.DB)
	app.Logger.Info("Repositories initialized.")

	// 5. Initialize Services
	hasher := auth.NewBcryptHasher()
	app.UserService = service.NewUserService(
		app.DB, // This is the DBTxBeginner
		app.DB, // This is the DBExecutor
		app.UserRepository,
		app.FollowRepository,
		app.RatingRepository,
		hasher,
		db.BeginTx,
		db.CommitTx,
		db.RollbackTx,
	)
	app.MovieService = service.NewMovieService(
		app.DB,
		app.DB,
		app.MovieRepository,
		app.RatingRepository,
		db.BeginTx,
		db.CommitTx,
		db.RollbackTx,
	)
	app.RatingService = service.NewRatingService(
		app.DB,
		app.DB,
		app.UserRepository,
		app.MovieRepository,
		app.RatingRepository,
		db.BeginTx,
		db.CommitTx,
		db.RollbackTx,
	)
	app.Logger.Info("Services initialized.")

	// 6. Initialize HTTP Handlers and Router
	validate := validator.New()
	userHandler := handler.NewUserHandler(app.UserService, app.Logger, validate)
	movieHandler := handler.NewMovieHandler(app.MovieService, app.Logger, validate)
	ratingHandler := handler.NewRatingHandler(app.RatingService, app.Logger, validate)
	followHandler := handler.NewFollowHandler(app.UserService, app.Logger)
	app.HTTPHandler = router.NewRouter(userHandler, movieHandler, ratingHandler, followHandler, app.Logger)
	app.Logger.Info("HTTP router and handlers initialized.")

	return nil
}

// Shutdown gracefully shuts down application resources.
func (app *Application) Shutdown(ctx context.Context) error {
	app.Logger.Info("Shutting down application...")
	if app.DB != nil {
		if err := app.DB.Close(); err != nil {
			app.Logger.Error("Failed to close database connection", "error", err)
			return fmt.Errorf("failed to close database connection: %w", err)
		}
		app.Logger.Info("Database connection closed.")
	}
	app.Logger.Info("Application shut down gracefully.")
	return nil
}
