// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/MKhiriev/fishtrack/internal/logger"
	"github.com/MKhiriev/fishtrack/internal/service"
	"github.com/MKhiriev/fishtrack/internal/utils"
	"github.com/MKhiriev/fishtrack/models"
)

// syncUp accepts an upload batch and merges it atomically. Per-record
// conflicts come back in the 200 response body; only infrastructure failures
// produce error statuses.
func (h *Handler) syncUp(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, found := utils.GetUserIDFromContext(ctx)
	if !found {
		log.Error().Str("func", "*Handler.syncUp").Msg("no user ID was given")
		http.Error(w, "no user ID was given", http.StatusUnauthorized)
		return
	}

	var batch models.UploadBatch
	if err := json.NewDecoder(r.Body).Decode(&batch); err != nil {
		log.Err(err).Str("func", "*Handler.syncUp").Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	result, err := h.services.SyncService.MergeUpload(ctx, userID, batch)
	if err != nil {
		if errors.Is(err, service.ErrRateLimited) {
			log.Err(err).Str("func", "*Handler.syncUp").Msg("upload rate limited")
			http.Error(w, "too many sync requests", http.StatusTooManyRequests)
			return
		}
		log.Err(err).Str("func", "*Handler.syncUp").Msg("error merging upload batch")
		http.Error(w, "error merging upload batch", statusFromError(err))
		return
	}

	utils.WriteJSON(w, result, http.StatusOK)
}

// syncDown returns one page of sessions changed since the client's watermark
// together with the complete non-deleted child set of each.
func (h *Handler) syncDown(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, found := utils.GetUserIDFromContext(ctx)
	if !found {
		log.Error().Str("func", "*Handler.syncDown").Msg("no user ID was given")
		http.Error(w, "no user ID was given", http.StatusUnauthorized)
		return
	}

	var request models.DownloadRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		log.Err(err).Str("func", "*Handler.syncDown").Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	batch, err := h.services.SyncService.SelectChanges(ctx, userID, request)
	if err != nil {
		log.Err(err).Str("func", "*Handler.syncDown").Msg("error selecting changes")
		http.Error(w, "error selecting changes", statusFromError(err))
		return
	}

	utils.WriteJSON(w, batch, http.StatusOK)
}
