package service

import (
	"context"
	"io"

	"github.com/MKhiriev/fishtrack/models"
)

// AuthService handles account lifecycle and JWT token issuance.
type AuthService interface {
	// RegisterUser creates a new account from email and plaintext password.
	// The password is bcrypt-hashed before it reaches the store.
	RegisterUser(ctx context.Context, user models.User) (models.User, error)

	// Login verifies the credentials and returns the stored account.
	Login(ctx context.Context, user models.User) (models.User, error)

	// CreateTokenPair issues a fresh access + refresh token pair for the
	// given user.
	CreateTokenPair(ctx context.Context, user models.User) (models.TokenPair, error)

	// RefreshTokenPair exchanges a valid refresh token for a new pair.
	// Access tokens are rejected with ErrNotARefreshToken.
	RefreshTokenPair(ctx context.Context, refreshToken string) (models.TokenPair, error)

	// ParseToken validates a raw JWT string and returns its decoded form.
	// Any validation failure is normalised to ErrTokenIsExpiredOrInvalid.
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)

	// ResetPassword starts a password reset for the given email. It never
	// reveals whether the account exists.
	ResetPassword(ctx context.Context, user models.User) error
}

// SyncService is the server half of the offline-first sync protocol: it
// merges upload batches and selects changes for download.
type SyncService interface {
	// MergeUpload applies a whole upload batch atomically and reports how
	// many records were accepted and which were rejected.
	MergeUpload(ctx context.Context, userID int64, batch models.UploadBatch) (models.UploadResult, error)

	// SelectChanges returns one page of sessions changed since the request's
	// watermark, with the complete non-deleted child set of each.
	SelectChanges(ctx context.Context, userID int64, req models.DownloadRequest) (models.DownloadBatch, error)
}

// PhotoService handles the out-of-band photo binary flow: minting upload
// targets and streaming binaries in and out of the photo store.
type PhotoService interface {
	// PresignUpload mints a fresh photo ID and returns the upload target the
	// client should POST the binary to.
	PresignUpload(ctx context.Context, userID int64) (models.PresignedPhotoURL, error)

	// UploadPhoto stores the binary under the user's namespace and returns
	// the number of bytes written.
	UploadPhoto(ctx context.Context, userID int64, photoID string, src io.Reader) (int64, error)

	// DownloadPhoto opens the stored binary for streaming to the client.
	DownloadPhoto(ctx context.Context, userID int64, photoID string) (io.ReadCloser, int64, error)

	// DeletePhoto removes the stored binary. Deleting a missing photo is not
	// an error.
	DeletePhoto(ctx context.Context, userID int64, photoID string) error
}

// AppInfoService exposes build information of the running server.
type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
}
