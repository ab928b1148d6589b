package http

import (
	"io"
	"net/http"
	"strconv"

	"github.com/MKhiriev/fishtrack/internal/logger"
	"github.com/MKhiriev/fishtrack/internal/utils"
	"github.com/go-chi/chi/v5"
)

// presignPhotoUpload mints a fresh photo ID and returns the upload target
// the client should POST the binary to before referencing the ID in its next
// sync upload.
func (h *Handler) presignPhotoUpload(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, found := utils.GetUserIDFromContext(ctx)
	if !found {
		log.Error().Str("func", "*Handler.presignPhotoUpload").Msg("no user ID was given")
		http.Error(w, "no user ID was given", http.StatusUnauthorized)
		return
	}

	presigned, err := h.services.PhotoService.PresignUpload(ctx, userID)
	if err != nil {
		log.Err(err).Str("func", "*Handler.presignPhotoUpload").Msg("error minting upload target")
		http.Error(w, "error minting upload target", statusFromError(err))
		return
	}

	utils.WriteJSON(w, presigned, http.StatusOK)
}

func (h *Handler) uploadPhoto(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, found := utils.GetUserIDFromContext(ctx)
	if !found {
		log.Error().Str("func", "*Handler.uploadPhoto").Msg("no user ID was given")
		http.Error(w, "no user ID was given", http.StatusUnauthorized)
		return
	}

	photoID := chi.URLParam(r, "photoID")

	size, err := h.services.PhotoService.UploadPhoto(ctx, userID, photoID, r.Body)
	if err != nil {
		log.Err(err).
			Str("func", "*Handler.uploadPhoto").
			Str("photo_id", photoID).
			Msg("error uploading photo")
		http.Error(w, "error uploading photo", statusFromError(err))
		return
	}

	utils.WriteJSON(w, map[string]any{
		"photo_id": photoID,
		"size":     size,
	}, http.StatusOK)
}

func (h *Handler) downloadPhoto(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, found := utils.GetUserIDFromContext(ctx)
	if !found {
		log.Error().Str("func", "*Handler.downloadPhoto").Msg("no user ID was given")
		http.Error(w, "no user ID was given", http.StatusUnauthorized)
		return
	}

	photoID := chi.URLParam(r, "photoID")

	body, size, err := h.services.PhotoService.DownloadPhoto(ctx, userID, photoID)
	if err != nil {
		log.Err(err).
			Str("func", "*Handler.downloadPhoto").
			Str("photo_id", photoID).
			Msg("error downloading photo")
		http.Error(w, "error downloading photo", statusFromError(err))
		return
	}
	defer body.Close()

	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("Content-Length", strconv.FormatInt(size, 10))

	if _, err := io.Copy(w, body); err != nil {
		log.Err(err).
			Str("func", "*Handler.downloadPhoto").
			Str("photo_id", photoID).
			Msg("error streaming photo body")
	}
}

func (h *Handler) deletePhoto(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, found := utils.GetUserIDFromContext(ctx)
	if !found {
		log.Error().Str("func", "*Handler.deletePhoto").Msg("no user ID was given")
		http.Error(w, "no user ID was given", http.StatusUnauthorized)
		return
	}

	photoID := chi.URLParam(r, "photoID")

	if err := h.services.PhotoService.DeletePhoto(ctx, userID, photoID); err != nil {
		log.Err(err).
			Str("func", "*Handler.deletePhoto").
			Str("photo_id", photoID).
			Msg("error deleting photo")
		http.Error(w, "error deleting photo", statusFromError(err))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
