package store

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
)

const (
	createUser = `INSERT INTO users (email, password_hash)
    VALUES ($1, $2)
    RETURNING user_id, email, password_hash, created_at, is_active;`

	findUserByEmail = `SELECT user_id, email, password_hash, created_at, is_active
    FROM users
    WHERE email = $1;`

	getSession = `SELECT id, user_id, started_at, ended_at, title, notes, deleted, last_modified_at
		FROM sessions
		WHERE user_id = $1 AND id = $2;`
	insertSession = `INSERT INTO sessions (id, user_id, started_at, ended_at, title, notes, deleted, last_modified_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);`
	updateSession = `UPDATE sessions
		SET started_at = $1, ended_at = $2, title = $3, notes = $4, deleted = $5, last_modified_at = $6
		WHERE user_id = $7 AND id = $8;`
	sessionExists = `SELECT EXISTS (SELECT 1 FROM sessions WHERE user_id = $1 AND id = $2);`

	getTrackPoint = `SELECT id, user_id, session_id, ts, lat, lon, acc, speed, heading, deleted, last_modified_at
		FROM track_points
		WHERE user_id = $1 AND id = $2;`
	insertTrackPoint = `INSERT INTO track_points (id, user_id, session_id, ts, lat, lon, acc, speed, heading, deleted, last_modified_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);`
	updateTrackPoint = `UPDATE track_points
		SET session_id = $1, ts = $2, lat = $3, lon = $4, acc = $5, speed = $6, heading = $7, deleted = $8, last_modified_at = $9
		WHERE user_id = $10 AND id = $11;`

	getCatch = `SELECT id, user_id, session_id, ts, species, length, weight, notes, lat, lon, deleted, last_modified_at
		FROM catches
		WHERE user_id = $1 AND id = $2;`
	insertCatch = `INSERT INTO catches (id, user_id, session_id, ts, species, length, weight, notes, lat, lon, deleted, last_modified_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);`
	updateCatch = `UPDATE catches
		SET session_id = $1, ts = $2, species = $3, length = $4, weight = $5, notes = $6, lat = $7, lon = $8, deleted = $9, last_modified_at = $10
		WHERE user_id = $11 AND id = $12;`

	getPhotoMeta = `SELECT id, user_id, session_id, ts, lat, lon, s3_key, size, deleted, last_modified_at
		FROM photos
		WHERE user_id = $1 AND id = $2;`
	insertPhotoMeta = `INSERT INTO photos (id, user_id, session_id, ts, lat, lon, s3_key, size, deleted, last_modified_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);`
	updatePhotoMeta = `UPDATE photos
		SET session_id = $1, ts = $2, lat = $3, lon = $4, s3_key = $5, size = $6, deleted = $7, last_modified_at = $8
		WHERE user_id = $9 AND id = $10;`
)

// Column sets used by the dynamic download queries. Order must match the
// scan order in the corresponding repository methods.
var (
	sessionColumns    = []string{"id", "user_id", "started_at", "ended_at", "title", "notes", "deleted", "last_modified_at"}
	trackPointColumns = []string{"id", "user_id", "session_id", "ts", "lat", "lon", "acc", "speed", "heading", "deleted", "last_modified_at"}
	catchColumns      = []string{"id", "user_id", "session_id", "ts", "species", "length", "weight", "notes", "lat", "lon", "deleted", "last_modified_at"}
	photoColumns      = []string{"id", "user_id", "session_id", "ts", "lat", "lon", "s3_key", "size", "deleted", "last_modified_at"}
)

// buildSelectChangedSessionsQuery builds the paginated download query over
// the sessions table. Tombstoned sessions are excluded from downloads; a nil
// since selects from the beginning of time.
func buildSelectChangedSessionsQuery(ctx context.Context, userID int64, since *time.Time, limit uint64) (string, []any, error) {
	builder := sq.Select(sessionColumns...).
		From("sessions").
		Where(sq.Eq{"user_id": userID, "deleted": false}).
		OrderBy("last_modified_at", "id").
		Limit(limit).
		PlaceholderFormat(sq.Dollar)

	if since != nil {
		builder = builder.Where(sq.Gt{"last_modified_at": *since})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}

// buildSelectChildrenQuery builds the query that fetches the full non-deleted
// child set of the given sessions from one of the child tables.
func buildSelectChildrenQuery(ctx context.Context, table string, columns []string, userID int64, sessionIDs []string) (string, []any, error) {
	query, args, err := sq.Select(columns...).
		From(table).
		Where(sq.Eq{"user_id": userID, "session_id": sessionIDs, "deleted": false}).
		OrderBy("session_id", "ts", "id").
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}
