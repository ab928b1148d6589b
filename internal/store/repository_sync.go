package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/fishtrack/internal/logger"
	"github.com/MKhiriev/fishtrack/models"
)

// syncRepository is the SQL-backed implementation of [SyncRepository].
// It serves the download side of the sync protocol directly and hands out
// [EntityTx] transactions for the upload side, so that a whole upload batch
// is applied atomically.
//
// All methods obtain a context-scoped logger via [logger.FromContext] for
// structured, request-level tracing of database interactions.
type syncRepository struct {
	*DB
	logger *logger.Logger
}

// NewSyncRepository constructs a [SyncRepository] backed by the provided
// database connection and logger.
func NewSyncRepository(db *DB, logger *logger.Logger) SyncRepository {
	logger.Debug().Msg("creating sync repository")
	return &syncRepository{
		DB:     db,
		logger: logger,
	}
}

// Begin opens a database transaction for a single upload batch and returns
// it wrapped as an [EntityTx].
func (r *syncRepository) Begin(ctx context.Context) (EntityTx, error) {
	log := logger.FromContext(ctx)

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).
			Str("func", "syncRepository.Begin").
			Bool("retryable", r.classifyError(err) == Retryable).
			Msg("failed to begin transaction")
		return nil, fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}

	return &entityTx{tx: tx}, nil
}

// SelectChangedSessions returns the user's non-deleted sessions changed
// strictly after since, ordered by last_modified_at then id, at most limit
// rows.
func (r *syncRepository) SelectChangedSessions(ctx context.Context, userID int64, since *time.Time, limit uint64) ([]models.Session, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSelectChangedSessionsQuery(ctx, userID, since, limit)
	if err != nil {
		log.Err(err).
			Str("func", "syncRepository.SelectChangedSessions").
			Int64("user_id", userID).
			Msg("failed to create query")
		return nil, err
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "syncRepository.SelectChangedSessions").
			Int64("user_id", userID).
			Bool("retryable", r.classifyError(err) == Retryable).
			Msg("failed to execute query for getting changed sessions")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	sessions := make([]models.Session, 0, limit)

	for rows.Next() {
		var session models.Session

		scanErr := rows.Scan(
			&session.ID,
			&session.UserID,
			&session.StartedAt,
			&session.EndedAt,
			&session.Title,
			&session.Notes,
			&session.Deleted,
			&session.LastModifiedAt,
		)
		if scanErr != nil {
			log.Err(scanErr).
				Str("func", "syncRepository.SelectChangedSessions").
				Int64("user_id", userID).
				Msg("failed to scan session row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}

		sessions = append(sessions, session)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).
			Str("func", "syncRepository.SelectChangedSessions").
			Int64("user_id", userID).
			Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return sessions, nil
}

// SelectTrackPointsBySessions returns all non-deleted track points of the
// given sessions. An empty sessionIDs slice yields an empty result without
// touching the database.
func (r *syncRepository) SelectTrackPointsBySessions(ctx context.Context, userID int64, sessionIDs []string) ([]models.TrackPoint, error) {
	log := logger.FromContext(ctx)

	if len(sessionIDs) == 0 {
		return []models.TrackPoint{}, nil
	}

	query, args, err := buildSelectChildrenQuery(ctx, "track_points", trackPointColumns, userID, sessionIDs)
	if err != nil {
		log.Err(err).
			Str("func", "syncRepository.SelectTrackPointsBySessions").
			Int64("user_id", userID).
			Msg("failed to create query")
		return nil, err
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "syncRepository.SelectTrackPointsBySessions").
			Int64("user_id", userID).
			Int("sessions_count", len(sessionIDs)).
			Bool("retryable", r.classifyError(err) == Retryable).
			Msg("failed to execute query for getting track points")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	points := make([]models.TrackPoint, 0, 50)

	for rows.Next() {
		var point models.TrackPoint

		scanErr := rows.Scan(
			&point.ID,
			&point.UserID,
			&point.SessionID,
			&point.TS,
			&point.Lat,
			&point.Lon,
			&point.Acc,
			&point.Speed,
			&point.Heading,
			&point.Deleted,
			&point.LastModifiedAt,
		)
		if scanErr != nil {
			log.Err(scanErr).
				Str("func", "syncRepository.SelectTrackPointsBySessions").
				Int64("user_id", userID).
				Msg("failed to scan track point row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}

		points = append(points, point)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).
			Str("func", "syncRepository.SelectTrackPointsBySessions").
			Int64("user_id", userID).
			Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return points, nil
}

// SelectCatchesBySessions returns all non-deleted catches of the given
// sessions.
func (r *syncRepository) SelectCatchesBySessions(ctx context.Context, userID int64, sessionIDs []string) ([]models.Catch, error) {
	log := logger.FromContext(ctx)

	if len(sessionIDs) == 0 {
		return []models.Catch{}, nil
	}

	query, args, err := buildSelectChildrenQuery(ctx, "catches", catchColumns, userID, sessionIDs)
	if err != nil {
		log.Err(err).
			Str("func", "syncRepository.SelectCatchesBySessions").
			Int64("user_id", userID).
			Msg("failed to create query")
		return nil, err
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "syncRepository.SelectCatchesBySessions").
			Int64("user_id", userID).
			Int("sessions_count", len(sessionIDs)).
			Bool("retryable", r.classifyError(err) == Retryable).
			Msg("failed to execute query for getting catches")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	catches := make([]models.Catch, 0, 50)

	for rows.Next() {
		var catch models.Catch

		scanErr := rows.Scan(
			&catch.ID,
			&catch.UserID,
			&catch.SessionID,
			&catch.TS,
			&catch.Species,
			&catch.Length,
			&catch.Weight,
			&catch.Notes,
			&catch.Lat,
			&catch.Lon,
			&catch.Deleted,
			&catch.LastModifiedAt,
		)
		if scanErr != nil {
			log.Err(scanErr).
				Str("func", "syncRepository.SelectCatchesBySessions").
				Int64("user_id", userID).
				Msg("failed to scan catch row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}

		catches = append(catches, catch)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).
			Str("func", "syncRepository.SelectCatchesBySessions").
			Int64("user_id", userID).
			Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return catches, nil
}

// SelectPhotosBySessions returns all non-deleted photo metadata records of
// the given sessions.
func (r *syncRepository) SelectPhotosBySessions(ctx context.Context, userID int64, sessionIDs []string) ([]models.PhotoMeta, error) {
	log := logger.FromContext(ctx)

	if len(sessionIDs) == 0 {
		return []models.PhotoMeta{}, nil
	}

	query, args, err := buildSelectChildrenQuery(ctx, "photos", photoColumns, userID, sessionIDs)
	if err != nil {
		log.Err(err).
			Str("func", "syncRepository.SelectPhotosBySessions").
			Int64("user_id", userID).
			Msg("failed to create query")
		return nil, err
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "syncRepository.SelectPhotosBySessions").
			Int64("user_id", userID).
			Int("sessions_count", len(sessionIDs)).
			Bool("retryable", r.classifyError(err) == Retryable).
			Msg("failed to execute query for getting photo metadata")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	photos := make([]models.PhotoMeta, 0, 50)

	for rows.Next() {
		var photo models.PhotoMeta

		scanErr := rows.Scan(
			&photo.ID,
			&photo.UserID,
			&photo.SessionID,
			&photo.TS,
			&photo.Lat,
			&photo.Lon,
			&photo.StorageKey,
			&photo.Size,
			&photo.Deleted,
			&photo.LastModifiedAt,
		)
		if scanErr != nil {
			log.Err(scanErr).
				Str("func", "syncRepository.SelectPhotosBySessions").
				Int64("user_id", userID).
				Msg("failed to scan photo metadata row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}

		photos = append(photos, photo)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).
			Str("func", "syncRepository.SelectPhotosBySessions").
			Int64("user_id", userID).
			Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return photos, nil
}

// entityTx implements [EntityTx] over a single *sql.Tx.
type entityTx struct {
	tx *sql.Tx
}

func (t *entityTx) Commit() error {
	if err := t.tx.Commit(); err != nil {
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}
	return nil
}

func (t *entityTx) Rollback() error {
	return t.tx.Rollback()
}

func (t *entityTx) GetSession(ctx context.Context, userID int64, id string) (models.Session, error) {
	var session models.Session

	err := t.tx.QueryRowContext(ctx, getSession, userID, id).Scan(
		&session.ID,
		&session.UserID,
		&session.StartedAt,
		&session.EndedAt,
		&session.Title,
		&session.Notes,
		&session.Deleted,
		&session.LastModifiedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Session{}, ErrSessionNotFound
	}
	if err != nil {
		return models.Session{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return session, nil
}

func (t *entityTx) InsertSession(ctx context.Context, session models.Session) error {
	return t.exec(ctx, insertSession,
		session.ID,
		session.UserID,
		session.StartedAt,
		session.EndedAt,
		session.Title,
		session.Notes,
		session.Deleted,
		session.LastModifiedAt,
	)
}

func (t *entityTx) UpdateSession(ctx context.Context, session models.Session) error {
	return t.exec(ctx, updateSession,
		session.StartedAt,
		session.EndedAt,
		session.Title,
		session.Notes,
		session.Deleted,
		session.LastModifiedAt,
		session.UserID,
		session.ID,
	)
}

func (t *entityTx) GetTrackPoint(ctx context.Context, userID int64, id string) (models.TrackPoint, error) {
	var point models.TrackPoint

	err := t.tx.QueryRowContext(ctx, getTrackPoint, userID, id).Scan(
		&point.ID,
		&point.UserID,
		&point.SessionID,
		&point.TS,
		&point.Lat,
		&point.Lon,
		&point.Acc,
		&point.Speed,
		&point.Heading,
		&point.Deleted,
		&point.LastModifiedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return models.TrackPoint{}, ErrEntityNotFound
	}
	if err != nil {
		return models.TrackPoint{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return point, nil
}

func (t *entityTx) InsertTrackPoint(ctx context.Context, point models.TrackPoint) error {
	return t.exec(ctx, insertTrackPoint,
		point.ID,
		point.UserID,
		point.SessionID,
		point.TS,
		point.Lat,
		point.Lon,
		point.Acc,
		point.Speed,
		point.Heading,
		point.Deleted,
		point.LastModifiedAt,
	)
}

func (t *entityTx) UpdateTrackPoint(ctx context.Context, point models.TrackPoint) error {
	return t.exec(ctx, updateTrackPoint,
		point.SessionID,
		point.TS,
		point.Lat,
		point.Lon,
		point.Acc,
		point.Speed,
		point.Heading,
		point.Deleted,
		point.LastModifiedAt,
		point.UserID,
		point.ID,
	)
}

func (t *entityTx) GetCatch(ctx context.Context, userID int64, id string) (models.Catch, error) {
	var catch models.Catch

	err := t.tx.QueryRowContext(ctx, getCatch, userID, id).Scan(
		&catch.ID,
		&catch.UserID,
		&catch.SessionID,
		&catch.TS,
		&catch.Species,
		&catch.Length,
		&catch.Weight,
		&catch.Notes,
		&catch.Lat,
		&catch.Lon,
		&catch.Deleted,
		&catch.LastModifiedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Catch{}, ErrEntityNotFound
	}
	if err != nil {
		return models.Catch{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return catch, nil
}

func (t *entityTx) InsertCatch(ctx context.Context, catch models.Catch) error {
	return t.exec(ctx, insertCatch,
		catch.ID,
		catch.UserID,
		catch.SessionID,
		catch.TS,
		catch.Species,
		catch.Length,
		catch.Weight,
		catch.Notes,
		catch.Lat,
		catch.Lon,
		catch.Deleted,
		catch.LastModifiedAt,
	)
}

func (t *entityTx) UpdateCatch(ctx context.Context, catch models.Catch) error {
	return t.exec(ctx, updateCatch,
		catch.SessionID,
		catch.TS,
		catch.Species,
		catch.Length,
		catch.Weight,
		catch.Notes,
		catch.Lat,
		catch.Lon,
		catch.Deleted,
		catch.LastModifiedAt,
		catch.UserID,
		catch.ID,
	)
}

func (t *entityTx) GetPhotoMeta(ctx context.Context, userID int64, id string) (models.PhotoMeta, error) {
	var photo models.PhotoMeta

	err := t.tx.QueryRowContext(ctx, getPhotoMeta, userID, id).Scan(
		&photo.ID,
		&photo.UserID,
		&photo.SessionID,
		&photo.TS,
		&photo.Lat,
		&photo.Lon,
		&photo.StorageKey,
		&photo.Size,
		&photo.Deleted,
		&photo.LastModifiedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return models.PhotoMeta{}, ErrEntityNotFound
	}
	if err != nil {
		return models.PhotoMeta{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return photo, nil
}

func (t *entityTx) InsertPhotoMeta(ctx context.Context, photo models.PhotoMeta) error {
	return t.exec(ctx, insertPhotoMeta,
		photo.ID,
		photo.UserID,
		photo.SessionID,
		photo.TS,
		photo.Lat,
		photo.Lon,
		photo.StorageKey,
		photo.Size,
		photo.Deleted,
		photo.LastModifiedAt,
	)
}

func (t *entityTx) UpdatePhotoMeta(ctx context.Context, photo models.PhotoMeta) error {
	return t.exec(ctx, updatePhotoMeta,
		photo.SessionID,
		photo.TS,
		photo.Lat,
		photo.Lon,
		photo.StorageKey,
		photo.Size,
		photo.Deleted,
		photo.LastModifiedAt,
		photo.UserID,
		photo.ID,
	)
}

func (t *entityTx) SessionExists(ctx context.Context, userID int64, id string) (bool, error) {
	var exists bool

	err := t.tx.QueryRowContext(ctx, sessionExists, userID, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return exists, nil
}

// exec runs a DML statement and verifies that at least one row was affected.
func (t *entityTx) exec(ctx context.Context, query string, args ...any) error {
	result, err := t.tx.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrEntityNotSaved
	}

	return nil
}
