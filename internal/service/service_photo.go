package service

import (
	"context"
	"fmt"
	"io"

	"github.com/MKhiriev/fishtrack/internal/logger"
	"github.com/MKhiriev/fishtrack/internal/store"
	"github.com/MKhiriev/fishtrack/internal/utils"
	"github.com/MKhiriev/fishtrack/models"
)

// presignExpirySeconds is how long a minted upload target stays valid, as
// reported to the client. The local file store does not enforce it.
const presignExpirySeconds = 3600

// photoService is the concrete implementation of PhotoService.
//
// Binaries live in a PhotoFileStorage under a key namespaced by account
// (<user_id>_<photo_id>), so one user can never address another's photos no
// matter what photo ID they send.
type photoService struct {
	photoFileStorage store.PhotoFileStorage
	ids              *utils.UUIDGenerator
	logger           *logger.Logger
}

// NewPhotoService constructs a PhotoService backed by the given binary
// storage.
func NewPhotoService(photoFileStorage store.PhotoFileStorage, logger *logger.Logger) PhotoService {
	return &photoService{
		photoFileStorage: photoFileStorage,
		ids:              utils.NewUUIDGenerator(),
		logger:           logger,
	}
}

// PresignUpload mints a fresh photo ID and returns the local upload target.
// The client POSTs the binary there, then references the ID in the photo
// metadata of its next sync upload.
func (p *photoService) PresignUpload(ctx context.Context, userID int64) (models.PresignedPhotoURL, error) {
	photoID := p.ids.Generate()

	logger.FromContext(ctx).Debug().
		Str("func", "photoService.PresignUpload").
		Int64("user_id", userID).
		Str("photo_id", photoID).
		Msg("minted photo upload target")

	return models.PresignedPhotoURL{
		PhotoID:   photoID,
		URL:       fmt.Sprintf("/api/photos/upload/%s", photoID),
		Method:    "POST",
		ExpiresIn: presignExpirySeconds,
	}, nil
}

// UploadPhoto streams the binary into the user's namespace of the photo
// store and returns the number of bytes written.
//
// Returns ErrInvalidDataProvided on an empty photo ID and a wrapped
// store.ErrPhotoTooLarge when the binary exceeds the configured ceiling.
func (p *photoService) UploadPhoto(ctx context.Context, userID int64, photoID string, src io.Reader) (int64, error) {
	log := logger.FromContext(ctx)

	if photoID == "" {
		return 0, ErrInvalidDataProvided
	}

	size, err := p.photoFileStorage.SavePhoto(ctx, p.storageKey(userID, photoID), src)
	if err != nil {
		log.Err(err).
			Str("func", "photoService.UploadPhoto").
			Int64("user_id", userID).
			Str("photo_id", photoID).
			Msg("photo upload failed")
		return 0, fmt.Errorf("photo upload failed: %w", err)
	}

	return size, nil
}

// DownloadPhoto opens the user's stored binary for streaming.
//
// Returns a wrapped store.ErrPhotoNotFound when the user has no binary under
// the given ID, including when the ID belongs to another account.
func (p *photoService) DownloadPhoto(ctx context.Context, userID int64, photoID string) (io.ReadCloser, int64, error) {
	log := logger.FromContext(ctx)

	if photoID == "" {
		return nil, 0, fmt.Errorf("photo download failed: %w", store.ErrPhotoNotFound)
	}

	body, size, err := p.photoFileStorage.LoadPhoto(ctx, p.storageKey(userID, photoID))
	if err != nil {
		log.Err(err).
			Str("func", "photoService.DownloadPhoto").
			Int64("user_id", userID).
			Str("photo_id", photoID).
			Msg("photo download failed")
		return nil, 0, fmt.Errorf("photo download failed: %w", err)
	}

	return body, size, nil
}

// DeletePhoto removes the user's stored binary. Deleting a missing photo is
// not an error.
func (p *photoService) DeletePhoto(ctx context.Context, userID int64, photoID string) error {
	if photoID == "" {
		return nil
	}

	if err := p.photoFileStorage.DeletePhoto(ctx, p.storageKey(userID, photoID)); err != nil {
		return fmt.Errorf("photo deletion failed: %w", err)
	}

	return nil
}

func (p *photoService) storageKey(userID int64, photoID string) string {
	return fmt.Sprintf("%d_%s", userID, photoID)
}
