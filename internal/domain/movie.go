package domain

import (
	"time"

	"github.com/lib/pq"
)

// Movie represents an entry in the movie catalog. Movie names are unique
// case-insensitively across the catalog.
type Movie struct {
	ID              int64          `db:"id" json:"id"`
	Name            string         `db:"name" json:"name"`
	ReleaseYear     int            `db:"release_year" json:"release_year"`
	Description     string         `db:"description" json:"description,omitempty"`
	DurationMinutes *int           `db:"duration_minutes" json:"duration_minutes,omitempty"`
	Genres          pq.StringArray `db:"genres" json:"genres"` // Order-preserving, duplicates allowed
	PosterURL       string         `db:"poster_url" json:"poster_url,omitempty"`
	CreatedAt       time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time      `db:"updated_at" json:"updated_at"`
}

// CreateMovieRequest is the request body for adding a movie to the catalog.
type CreateMovieRequest struct {
	Name            string   `json:"name" validate:"required,min=1,max=255"`
	ReleaseYear     int      `json:"release_year" validate:"required,gte=1888"`
	Description     string   `json:"description,omitempty"`
	DurationMinutes *int     `json:"duration_minutes,omitempty" validate:"omitempty,gte=1"`
	Genres          []string `json:"genres,omitempty"`
	PosterURL       string   `json:"poster_url,omitempty" validate:"omitempty,max=1000"`
}

// NewMovie builds a Movie from a create request.
func NewMovie(req CreateMovieRequest) *Movie {
	now := time.Now().UTC()
	return &Movie{
		Name:            req.Name,
		ReleaseYear:     req.ReleaseYear,
		Description:     req.Description,
		DurationMinutes: req.DurationMinutes,
		Genres:          req.Genres,
		PosterURL:       req.PosterURL,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

// MoviePatch carries a partial movie update. Each nil field is left
// untouched; a blank name is treated as absent.
type MoviePatch struct {
	Name            *string  `json:"name,omitempty" validate:"omitempty,min=1,max=255"`
	ReleaseYear     *int     `json:"release_year,omitempty" validate:"omitempty,gte=1888"`
	Description     *string  `json:"description,omitempty"`
	DurationMinutes *int     `json:"duration_minutes,omitempty" validate:"omitempty,gte=1"`
	Genres          []string `json:"genres,omitempty"`
	PosterURL       *string  `json:"poster_url,omitempty" validate:"omitempty,max=1000"`
}
