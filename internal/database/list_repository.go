package database

import (
	"database/sql"
	"fmt"
	"time"

	"reelhouse/models"
)

// ListRepository persists a user's "my list" membership. Unlike likes, a
// duplicate add is a caller error: Insert surfaces ErrDuplicate instead of
// silently updating the existing row.
type ListRepository struct {
	db *sql.DB
}

// NewListRepository creates a repository over the user_movie_list table.
func NewListRepository(db *sql.DB) *ListRepository {
	return &ListRepository{db: db}
}

// Insert adds the movie to the user's list. Returns ErrDuplicate when the
// (user, movie) pair is already present; the existing row is left untouched.
func (r *ListRepository) Insert(userID int64, input models.PreferenceUpsert) (models.PreferenceRecord, error) {
	mediaType := input.MediaType
	if mediaType == "" {
		mediaType = models.MediaTypeMovie
	}
	now := time.Now().UTC()

	res, err := r.db.Exec(`
		INSERT INTO user_movie_list (
			user_id, movie_id, movie_title, movie_poster_path,
			movie_backdrop_path, movie_overview, movie_release_date,
			media_type, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		userID, input.MovieID, input.Title, input.PosterPath,
		input.BackdropPath, input.Overview, input.ReleaseDate,
		mediaType, now, now,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return models.PreferenceRecord{}, ErrDuplicate
		}
		return models.PreferenceRecord{}, fmt.Errorf("insert list entry: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return models.PreferenceRecord{}, fmt.Errorf("insert list entry: %w", err)
	}

	return r.get(id)
}

// Exists reports whether the movie is in the user's list.
func (r *ListRepository) Exists(userID, movieID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(
		`SELECT EXISTS (SELECT 1 FROM user_movie_list WHERE user_id = ? AND movie_id = ?)`,
		userID, movieID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check list entry: %w", err)
	}
	return exists, nil
}

// Delete removes the list entry and reports whether a row was actually deleted.
func (r *ListRepository) Delete(userID, movieID int64) (bool, error) {
	res, err := r.db.Exec(
		`DELETE FROM user_movie_list WHERE user_id = ? AND movie_id = ?`,
		userID, movieID,
	)
	if err != nil {
		return false, fmt.Errorf("delete list entry: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete list entry: %w", err)
	}
	return affected > 0, nil
}

// ListByUser returns the user's list entries, newest first.
func (r *ListRepository) ListByUser(userID int64) ([]models.PreferenceRecord, error) {
	records, err := queryPreferenceRecords(r.db,
		`SELECT `+preferenceColumns+` FROM user_movie_list
		 WHERE user_id = ? ORDER BY created_at DESC, id DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	return records, nil
}

func (r *ListRepository) get(id int64) (models.PreferenceRecord, error) {
	row := r.db.QueryRow(
		`SELECT `+preferenceColumns+` FROM user_movie_list WHERE id = ?`, id,
	)
	rec, err := scanPreferenceRecord(row)
	if err != nil {
		return models.PreferenceRecord{}, fmt.Errorf("fetch list entry: %w", err)
	}
	return rec, nil
}
