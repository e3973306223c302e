package database

import (
	"database/sql"
	"errors"

	"github.com/mattn/go-sqlite3"

	"reelhouse/models"
)

// ErrDuplicate reports that the (user_id, movie_id) pair already exists in
// the table. It is raised by the sqlite UNIQUE constraint, not by an
// application-level existence check, so two concurrent inserts of the same
// pair resolve to exactly one row and one ErrDuplicate.
var ErrDuplicate = errors.New("record already exists")

const preferenceColumns = `id, user_id, movie_id, movie_title, movie_poster_path,
	movie_backdrop_path, movie_overview, movie_release_date, media_type,
	created_at, updated_at`

func scanPreferenceRecord(row interface{ Scan(...any) error }) (models.PreferenceRecord, error) {
	var rec models.PreferenceRecord
	err := row.Scan(
		&rec.ID,
		&rec.UserID,
		&rec.MovieID,
		&rec.Title,
		&rec.PosterPath,
		&rec.BackdropPath,
		&rec.Overview,
		&rec.ReleaseDate,
		&rec.MediaType,
		&rec.CreatedAt,
		&rec.UpdatedAt,
	)
	return rec, err
}

func queryPreferenceRecords(db *sql.DB, query string, args ...any) ([]models.PreferenceRecord, error) {
	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := make([]models.PreferenceRecord, 0)
	for rows.Next() {
		rec, err := scanPreferenceRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

func isUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
			sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}
	return false
}
