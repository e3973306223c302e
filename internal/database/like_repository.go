package database

import (
	"database/sql"
	"fmt"
	"time"

	"reelhouse/models"
)

// LikeRepository persists which movies a user has liked. Liking is a
// toggleable rating: repeated upserts of the same (user, movie) pair collapse
// into one row with refreshed display fields.
type LikeRepository struct {
	db *sql.DB
}

// NewLikeRepository creates a repository over the user_movie_likes table.
func NewLikeRepository(db *sql.DB) *LikeRepository {
	return &LikeRepository{db: db}
}

// Upsert inserts the like, or refreshes its denormalized fields when the
// (user, movie) pair already exists. The UNIQUE(user_id, movie_id) constraint
// makes concurrent duplicate upserts converge on a single row.
func (r *LikeRepository) Upsert(userID int64, input models.PreferenceUpsert) (models.PreferenceRecord, error) {
	mediaType := input.MediaType
	if mediaType == "" {
		mediaType = models.MediaTypeMovie
	}
	now := time.Now().UTC()

	_, err := r.db.Exec(`
		INSERT INTO user_movie_likes (
			user_id, movie_id, movie_title, movie_poster_path,
			movie_backdrop_path, movie_overview, movie_release_date,
			media_type, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (user_id, movie_id) DO UPDATE SET
			movie_title = excluded.movie_title,
			movie_poster_path = excluded.movie_poster_path,
			movie_backdrop_path = excluded.movie_backdrop_path,
			movie_overview = excluded.movie_overview,
			movie_release_date = excluded.movie_release_date,
			media_type = excluded.media_type,
			updated_at = excluded.updated_at`,
		userID, input.MovieID, input.Title, input.PosterPath,
		input.BackdropPath, input.Overview, input.ReleaseDate,
		mediaType, now, now,
	)
	if err != nil {
		return models.PreferenceRecord{}, fmt.Errorf("upsert like: %w", err)
	}

	return r.get(userID, input.MovieID)
}

// Exists reports whether the user has liked the movie.
func (r *LikeRepository) Exists(userID, movieID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(
		`SELECT EXISTS (SELECT 1 FROM user_movie_likes WHERE user_id = ? AND movie_id = ?)`,
		userID, movieID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check like: %w", err)
	}
	return exists, nil
}

// Delete removes the like and reports whether a row was actually deleted.
func (r *LikeRepository) Delete(userID, movieID int64) (bool, error) {
	res, err := r.db.Exec(
		`DELETE FROM user_movie_likes WHERE user_id = ? AND movie_id = ?`,
		userID, movieID,
	)
	if err != nil {
		return false, fmt.Errorf("delete like: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete like: %w", err)
	}
	return affected > 0, nil
}

// ListByUser returns the user's likes, newest first.
func (r *LikeRepository) ListByUser(userID int64) ([]models.PreferenceRecord, error) {
	records, err := queryPreferenceRecords(r.db,
		`SELECT `+preferenceColumns+` FROM user_movie_likes
		 WHERE user_id = ? ORDER BY created_at DESC, id DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list likes: %w", err)
	}
	return records, nil
}

func (r *LikeRepository) get(userID, movieID int64) (models.PreferenceRecord, error) {
	row := r.db.QueryRow(
		`SELECT `+preferenceColumns+` FROM user_movie_likes WHERE user_id = ? AND movie_id = ?`,
		userID, movieID,
	)
	rec, err := scanPreferenceRecord(row)
	if err != nil {
		return models.PreferenceRecord{}, fmt.Errorf("fetch like: %w", err)
	}
	return rec, nil
}
