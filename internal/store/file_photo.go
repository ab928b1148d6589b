package store

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/MKhiriev/fishtrack/internal/logger"
)

// photoFileStorage is the filesystem implementation of [PhotoFileStorage].
// It keeps photo binaries outside the relational database so that the
// database only holds lightweight metadata; each binary is stored as a
// single file named after its photo ID inside the configured directory.
type photoFileStorage struct {
	dir     string
	maxSize int64
	logger  *logger.Logger
}

// NewPhotoFileStorage constructs a [PhotoFileStorage] rooted at dir.
// The directory is created if it does not exist. maxSize is the per-photo
// byte ceiling enforced by SavePhoto.
func NewPhotoFileStorage(dir string, maxSize int64, log *logger.Logger) (PhotoFileStorage, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		log.Err(err).Str("func", "NewPhotoFileStorage").Msg("error creating photo upload directory")
		return nil, fmt.Errorf("error creating photo upload directory: %w", err)
	}

	log.Debug().Str("dir", dir).Int64("max_size", maxSize).Msg("creating photo file storage")
	return &photoFileStorage{
		dir:     dir,
		maxSize: maxSize,
		logger:  log,
	}, nil
}

// SavePhoto streams src into a file named after photoID. Writing goes
// through a temporary file that is renamed into place on success, so a
// partially written upload never becomes visible.
//
// Returns [ErrPhotoTooLarge] when src exceeds the configured size ceiling;
// the partial file is removed in that case.
func (p *photoFileStorage) SavePhoto(ctx context.Context, photoID string, src io.Reader) (int64, error) {
	log := logger.FromContext(ctx)

	path, err := p.photoPath(photoID)
	if err != nil {
		return 0, err
	}

	tmp, err := os.CreateTemp(p.dir, "upload-*")
	if err != nil {
		log.Err(err).
			Str("func", "photoFileStorage.SavePhoto").
			Str("photo_id", photoID).
			Msg("failed to create temporary upload file")
		return 0, fmt.Errorf("failed to create temporary upload file: %w", err)
	}
	defer os.Remove(tmp.Name())
	defer tmp.Close()

	// read one byte beyond the ceiling to detect oversized uploads
	written, err := io.Copy(tmp, io.LimitReader(src, p.maxSize+1))
	if err != nil {
		log.Err(err).
			Str("func", "photoFileStorage.SavePhoto").
			Str("photo_id", photoID).
			Msg("failed to write photo binary")
		return 0, fmt.Errorf("failed to write photo binary: %w", err)
	}
	if written > p.maxSize {
		log.Warn().
			Str("func", "photoFileStorage.SavePhoto").
			Str("photo_id", photoID).
			Int64("max_size", p.maxSize).
			Msg("photo exceeds upload size ceiling")
		return 0, ErrPhotoTooLarge
	}

	if err := tmp.Close(); err != nil {
		return 0, fmt.Errorf("failed to close temporary upload file: %w", err)
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		log.Err(err).
			Str("func", "photoFileStorage.SavePhoto").
			Str("photo_id", photoID).
			Msg("failed to move photo binary into place")
		return 0, fmt.Errorf("failed to move photo binary into place: %w", err)
	}

	log.Debug().
		Str("func", "photoFileStorage.SavePhoto").
		Str("photo_id", photoID).
		Int64("size", written).
		Msg("saved photo binary")

	return written, nil
}

// LoadPhoto opens the stored binary for photoID and reports its size.
// Returns [ErrPhotoNotFound] when no such binary exists.
func (p *photoFileStorage) LoadPhoto(ctx context.Context, photoID string) (io.ReadCloser, int64, error) {
	log := logger.FromContext(ctx)

	path, err := p.photoPath(photoID)
	if err != nil {
		return nil, 0, err
	}

	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, 0, ErrPhotoNotFound
	}
	if err != nil {
		log.Err(err).
			Str("func", "photoFileStorage.LoadPhoto").
			Str("photo_id", photoID).
			Msg("failed to open photo binary")
		return nil, 0, fmt.Errorf("failed to open photo binary: %w", err)
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, 0, fmt.Errorf("failed to stat photo binary: %w", err)
	}

	return f, info.Size(), nil
}

// DeletePhoto removes the stored binary for photoID. A missing binary is
// not an error.
func (p *photoFileStorage) DeletePhoto(ctx context.Context, photoID string) error {
	log := logger.FromContext(ctx)

	path, err := p.photoPath(photoID)
	if err != nil {
		return err
	}

	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Err(err).
			Str("func", "photoFileStorage.DeletePhoto").
			Str("photo_id", photoID).
			Msg("failed to remove photo binary")
		return fmt.Errorf("failed to remove photo binary: %w", err)
	}

	return nil
}

// photoPath resolves the file path for photoID. IDs containing path
// separators or traversal elements are rejected.
func (p *photoFileStorage) photoPath(photoID string) (string, error) {
	if photoID == "" || photoID == "." || photoID == ".." ||
		strings.ContainsAny(photoID, `/\`) || photoID != filepath.Base(photoID) {
		return "", ErrPhotoNotFound
	}

	return filepath.Join(p.dir, photoID), nil
}
