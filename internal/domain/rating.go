package domain

import "time"

// Rating value boundaries and comment length limit.
const (
	MinRatingValue   = 1
	MaxRatingValue   = 5
	MaxCommentLength = 1000
)

// Rating represents a single user's rating of a single movie.
// At most one Rating exists per (user, movie) pair; re-rating the same movie
// overwrites the existing record in place.
type Rating struct {
	ID        int64      `db:"id" json:"id"`
	UserID    int64      `db:"user_id" json:"user_id"`
	MovieID   int64      `db:"movie_id" json:"movie_id"`
	Rating    int        `db:"rating" json:"rating"` // Value in [1,5]
	Comment   string     `db:"comment" json:"comment,omitempty"`
	CreatedAt time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt *time.Time `db:"updated_at" json:"updated_at,omitempty"` // Nil until the first overwrite
}

// RateRequest is the request body for rating a movie. The same endpoint
// creates a new rating or overwrites an existing one for the (user, movie)
// pair; callers never supply a rating id.
type RateRequest struct {
	UserID  int64  `json:"user_id" validate:"required"`
	MovieID int64  `json:"movie_id" validate:"required"`
	Rating  int    `json:"rating" validate:"required,gte=1,lte=5"`
	Comment string `json:"comment,omitempty" validate:"omitempty,max=1000"`
}

// RatingView is the flattened projection returned for movie rating listings.
// It carries the rater's username so callers do not need to resolve users
// separately.
type RatingView struct {
	ID        int64      `db:"id" json:"id"`
	UserID    int64      `db:"user_id" json:"user_id"`
	Username  string     `db:"username" json:"username"`
	MovieID   int64      `db:"movie_id" json:"movie_id"`
	Rating    int        `db:"rating" json:"rating"`
	Comment   string     `db:"comment" json:"comment,omitempty"`
	CreatedAt time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt *time.Time `db:"updated_at" json:"updated_at,omitempty"`
}

// MovieRatings aggregates all ratings for a movie. Average is nil when the
// movie has no ratings.
type MovieRatings struct {
	Ratings []RatingView `json:"ratings"`
	Average *float64     `json:"average_rating"`
	Count   int64        `json:"total_ratings"`
}

// MovieAverage is one row of the top-rated movies ranking.
type MovieAverage struct {
	MovieID       int64   `db:"movie_id" json:"movie_id"`
	AverageRating float64 `db:"average_rating" json:"average_rating"`
	RatingCount   int64   `db:"rating_count" json:"rating_count"`
}
