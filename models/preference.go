package models

import "time"

// MediaTypeMovie is the default media type for preference records.
const MediaTypeMovie = "movie"

// PreferenceRecord is a persisted per-user movie/show reference. Both the
// likes and my-list tables store this shape; the denormalized display fields
// let catalog pages render without a round trip to the upstream API.
type PreferenceRecord struct {
	ID           int64     `json:"id"`
	UserID       int64     `json:"user_id"`
	MovieID      int64     `json:"movie_id"`
	Title        string    `json:"movie_title"`
	PosterPath   string    `json:"movie_poster_path,omitempty"`
	BackdropPath string    `json:"movie_backdrop_path,omitempty"`
	Overview     string    `json:"movie_overview,omitempty"`
	ReleaseDate  string    `json:"movie_release_date,omitempty"`
	MediaType    string    `json:"media_type"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// PreferenceUpsert is the request payload for adding a like or a list entry.
type PreferenceUpsert struct {
	MovieID      int64  `json:"movie_id" validate:"required"`
	Title        string `json:"movie_title" validate:"required,max=255"`
	PosterPath   string `json:"movie_poster_path" validate:"omitempty"`
	BackdropPath string `json:"movie_backdrop_path" validate:"omitempty"`
	Overview     string `json:"movie_overview" validate:"omitempty"`
	ReleaseDate  string `json:"movie_release_date" validate:"omitempty"`
	MediaType    string `json:"media_type" validate:"omitempty,oneof=movie tv"`
}
