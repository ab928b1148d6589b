package store

import (
	"context"
	"io"
	"time"

	"github.com/MKhiriev/fishtrack/models"
)

type UserRepository interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	FindUserByEmail(ctx context.Context, user models.User) (models.User, error)
}

// SyncRepository provides read access to synced entities and transactional
// write access via [EntityTx] for atomic upload merges.
type SyncRepository interface {
	// Begin opens a database transaction scoped to a single upload batch.
	Begin(ctx context.Context) (EntityTx, error)

	// SelectChangedSessions returns non-deleted sessions of the given user
	// whose last_modified_at is strictly greater than since, ordered by
	// last_modified_at then id, at most limit rows.
	// A nil since selects from the beginning of time.
	SelectChangedSessions(ctx context.Context, userID int64, since *time.Time, limit uint64) ([]models.Session, error)

	// SelectTrackPointsBySessions returns all non-deleted track points that
	// belong to the given sessions of the given user.
	SelectTrackPointsBySessions(ctx context.Context, userID int64, sessionIDs []string) ([]models.TrackPoint, error)

	// SelectCatchesBySessions returns all non-deleted catches that belong to
	// the given sessions of the given user.
	SelectCatchesBySessions(ctx context.Context, userID int64, sessionIDs []string) ([]models.Catch, error)

	// SelectPhotosBySessions returns all non-deleted photo metadata records
	// that belong to the given sessions of the given user.
	SelectPhotosBySessions(ctx context.Context, userID int64, sessionIDs []string) ([]models.PhotoMeta, error)
}

// EntityTx is a single open database transaction over the synced entity
// tables. All reads and writes made through it become visible atomically on
// Commit; any error during the merge should be followed by Rollback.
//
// Get* methods return [ErrSessionNotFound] / [ErrEntityNotFound] when no row
// matches the identity, so callers can distinguish "create" from "update".
type EntityTx interface {
	GetSession(ctx context.Context, userID int64, id string) (models.Session, error)
	InsertSession(ctx context.Context, session models.Session) error
	UpdateSession(ctx context.Context, session models.Session) error

	GetTrackPoint(ctx context.Context, userID int64, id string) (models.TrackPoint, error)
	InsertTrackPoint(ctx context.Context, point models.TrackPoint) error
	UpdateTrackPoint(ctx context.Context, point models.TrackPoint) error

	GetCatch(ctx context.Context, userID int64, id string) (models.Catch, error)
	InsertCatch(ctx context.Context, catch models.Catch) error
	UpdateCatch(ctx context.Context, catch models.Catch) error

	GetPhotoMeta(ctx context.Context, userID int64, id string) (models.PhotoMeta, error)
	InsertPhotoMeta(ctx context.Context, photo models.PhotoMeta) error
	UpdatePhotoMeta(ctx context.Context, photo models.PhotoMeta) error

	// SessionExists reports whether a session with the given identity exists
	// within the transaction, including tombstoned ones.
	SessionExists(ctx context.Context, userID int64, id string) (bool, error)

	Commit() error
	Rollback() error
}

// PhotoFileStorage persists photo binaries outside the relational database.
type PhotoFileStorage interface {
	// SavePhoto streams src into the storage under the given photo ID and
	// returns the number of bytes written. Returns [ErrPhotoTooLarge] when
	// src exceeds the configured size ceiling.
	SavePhoto(ctx context.Context, photoID string, src io.Reader) (int64, error)

	// LoadPhoto opens the stored binary for the given photo ID.
	// Returns [ErrPhotoNotFound] when no such binary exists.
	LoadPhoto(ctx context.Context, photoID string) (io.ReadCloser, int64, error)

	// DeletePhoto removes the stored binary for the given photo ID.
	// Deleting a missing photo is not an error.
	DeletePhoto(ctx context.Context, photoID string) error
}

// ErrorClassificator decides whether a failed database operation is worth
// retrying.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}
