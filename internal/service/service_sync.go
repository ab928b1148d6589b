// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/fishtrack/internal/logger"
	"github.com/MKhiriev/fishtrack/internal/store"
	"github.com/MKhiriev/fishtrack/internal/utils"
	"github.com/MKhiriev/fishtrack/models"
)

// syncService is the concrete implementation of SyncService.
//
// Uploads are merged record by record inside a single database transaction:
// each record is resolved against its stored counterpart by the conflict
// resolver, rejections are collected as conflicts, and everything accepted
// becomes visible atomically on commit. Downloads page over sessions by
// modification watermark and attach the full non-deleted child set of every
// selected session.
type syncService struct {
	syncRepository store.SyncRepository
	limiter        RateLimitPolicy
	resolver       conflictResolver
	ids            *utils.UUIDGenerator
	clock          Clock
	logger         *logger.Logger
}

// NewSyncService constructs a SyncService backed by the given repository.
// A nil limiter admits every request; a nil clock falls back to RealClock.
func NewSyncService(syncRepository store.SyncRepository, limiter RateLimitPolicy, clock Clock, logger *logger.Logger) SyncService {
	if limiter == nil {
		limiter = NewAllowAllPolicy()
	}
	if clock == nil {
		clock = RealClock{}
	}

	return &syncService{
		syncRepository: syncRepository,
		limiter:        limiter,
		resolver:       conflictResolver{clock: clock},
		ids:            utils.NewUUIDGenerator(),
		clock:          clock,
		logger:         logger,
	}
}

// MergeUpload applies one upload batch atomically.
//
// Entity order is fixed — sessions, track points, catches, photo metadata —
// so that children uploaded together with their parent session merge in the
// same call. Track points beyond MaxTrackPointsPerUpload are dropped, not
// rejected. Per-record rejections (validation failures, missing parents,
// conflict decisions) go into the result's Conflicts list and never fail the
// batch; only infrastructure errors abort the whole merge.
//
// Returns ErrRateLimited without touching the database when the configured
// policy refuses the account.
func (s *syncService) MergeUpload(ctx context.Context, userID int64, batch models.UploadBatch) (models.UploadResult, error) {
	log := logger.FromContext(ctx)

	if !s.limiter.Allow(userID) {
		log.Warn().
			Str("func", "syncService.MergeUpload").
			Int64("user_id", userID).
			Msg("upload refused by rate limit policy")
		return models.UploadResult{}, ErrRateLimited
	}

	points := batch.TrackPoints
	if len(points) > models.MaxTrackPointsPerUpload {
		log.Warn().
			Str("func", "syncService.MergeUpload").
			Int64("user_id", userID).
			Int("dropped", len(points)-models.MaxTrackPointsPerUpload).
			Msg("track point batch exceeds ceiling, truncating")
		points = points[:models.MaxTrackPointsPerUpload]
	}

	tx, err := s.syncRepository.Begin(ctx)
	if err != nil {
		return models.UploadResult{}, fmt.Errorf("upload merge failed: %w", err)
	}
	defer tx.Rollback()

	m := &merge{
		tx:        tx,
		userID:    userID,
		now:       s.clock.Now().UTC(),
		resolver:  s.resolver,
		ids:       s.ids,
		parents:   make(map[string]bool),
		conflicts: make([]models.ConflictRef, 0),
	}

	for _, session := range batch.Sessions {
		if err := m.mergeSession(ctx, session); err != nil {
			log.Err(err).
				Str("func", "syncService.MergeUpload").
				Int64("user_id", userID).
				Str("id", session.ID).
				Msg("session merge failed")
			return models.UploadResult{}, fmt.Errorf("upload merge failed: %w", err)
		}
	}

	for _, point := range points {
		if err := m.mergeTrackPoint(ctx, point); err != nil {
			log.Err(err).
				Str("func", "syncService.MergeUpload").
				Int64("user_id", userID).
				Str("id", point.ID).
				Msg("track point merge failed")
			return models.UploadResult{}, fmt.Errorf("upload merge failed: %w", err)
		}
	}

	for _, catch := range batch.Catches {
		if err := m.mergeCatch(ctx, catch); err != nil {
			log.Err(err).
				Str("func", "syncService.MergeUpload").
				Int64("user_id", userID).
				Str("id", catch.ID).
				Msg("catch merge failed")
			return models.UploadResult{}, fmt.Errorf("upload merge failed: %w", err)
		}
	}

	for _, photo := range batch.PhotosMeta {
		if err := m.mergePhotoMeta(ctx, photo); err != nil {
			log.Err(err).
				Str("func", "syncService.MergeUpload").
				Int64("user_id", userID).
				Str("id", photo.ID).
				Msg("photo metadata merge failed")
			return models.UploadResult{}, fmt.Errorf("upload merge failed: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		log.Err(err).
			Str("func", "syncService.MergeUpload").
			Int64("user_id", userID).
			Msg("commit failed")
		return models.UploadResult{}, fmt.Errorf("upload merge failed: %w", err)
	}

	return models.UploadResult{
		Status:          "success",
		SyncedCount:     m.synced,
		Conflicts:       m.conflicts,
		ServerTimestamp: s.clock.Now().UTC().Format(time.RFC3339),
	}, nil
}

// SelectChanges returns one page of the account's changes since the
// request's watermark.
//
// An absent or unparseable watermark selects from the beginning of time —
// a client with corrupted state falls back to a full re-download instead of
// failing. HasMore is set exactly when the session page is full, and in that
// case the returned server timestamp is the page boundary (the newest
// modification time in the page) rather than the processing instant, so the
// next request resumes exactly where this one stopped.
func (s *syncService) SelectChanges(ctx context.Context, userID int64, req models.DownloadRequest) (models.DownloadBatch, error) {
	log := logger.FromContext(ctx)

	var since *time.Time
	if req.LastSyncTimestamp != "" {
		parsed, err := time.Parse(time.RFC3339, req.LastSyncTimestamp)
		if err != nil {
			log.Warn().
				Str("func", "syncService.SelectChanges").
				Int64("user_id", userID).
				Str("watermark", req.LastSyncTimestamp).
				Msg("unparseable watermark, selecting from the beginning")
		} else {
			since = &parsed
		}
	}

	sessions, err := s.syncRepository.SelectChangedSessions(ctx, userID, since, models.SessionPageSize)
	if err != nil {
		return models.DownloadBatch{}, fmt.Errorf("change selection failed: %w", err)
	}

	sessionIDs := make([]string, 0, len(sessions))
	for _, session := range sessions {
		sessionIDs = append(sessionIDs, session.ID)
	}

	points, err := s.syncRepository.SelectTrackPointsBySessions(ctx, userID, sessionIDs)
	if err != nil {
		return models.DownloadBatch{}, fmt.Errorf("change selection failed: %w", err)
	}

	catches, err := s.syncRepository.SelectCatchesBySessions(ctx, userID, sessionIDs)
	if err != nil {
		return models.DownloadBatch{}, fmt.Errorf("change selection failed: %w", err)
	}

	photos, err := s.syncRepository.SelectPhotosBySessions(ctx, userID, sessionIDs)
	if err != nil {
		return models.DownloadBatch{}, fmt.Errorf("change selection failed: %w", err)
	}

	hasMore := len(sessions) == models.SessionPageSize

	// On a full page the watermark must not advance past the rows that did
	// not fit: the processing instant postdates every stored row, so using
	// it would make the strict > comparison skip the rest of the backlog.
	serverTimestamp := s.clock.Now().UTC()
	if hasMore {
		serverTimestamp = sessions[len(sessions)-1].LastModifiedAt.UTC()
	}

	return models.DownloadBatch{
		Sessions:        sessions,
		TrackPoints:     points,
		Catches:         catches,
		PhotosMeta:      photos,
		ServerTimestamp: serverTimestamp.Format(time.RFC3339),
		HasMore:         hasMore,
	}, nil
}

// merge carries the per-batch state of one upload merge: the open
// transaction, the server-assigned modification time shared by every
// accepted record, the running counters, and a cache of session IDs already
// known to exist so repeated parent checks stay cheap.
type merge struct {
	tx       store.EntityTx
	userID   int64
	now      time.Time
	resolver conflictResolver
	ids      *utils.UUIDGenerator

	parents   map[string]bool
	synced    int
	conflicts []models.ConflictRef
}

func (m *merge) reject(entity, id string) {
	m.conflicts = append(m.conflicts, models.ConflictRef{Entity: entity, ID: id})
}

// rejectInvalid records a validation rejection and logs which rule the entry
// violated, so validation failures are distinguishable from LWW conflicts in
// the logs.
func (m *merge) rejectInvalid(ctx context.Context, entity, id string, cause error) {
	logger.FromContext(ctx).Warn().
		Err(cause).
		Str("entity", entity).
		Str("id", id).
		Msg("upload entry failed validation")
	m.reject(entity, id)
}

// parentExists reports whether the given session exists for the user within
// the open transaction, so sessions accepted earlier in the same batch count.
// Tombstoned sessions count too: a child of a deleted trip is still owned
// data, just invisible to downloads.
func (m *merge) parentExists(ctx context.Context, sessionID string) (bool, error) {
	if m.parents[sessionID] {
		return true, nil
	}

	exists, err := m.tx.SessionExists(ctx, m.userID, sessionID)
	if err != nil {
		return false, err
	}
	if exists {
		m.parents[sessionID] = true
	}

	return exists, nil
}

func (m *merge) mergeSession(ctx context.Context, session models.Session) error {
	switch {
	case session.ID == "":
		m.rejectInvalid(ctx, models.EntitySession, session.ID, ErrValidationNoID)
		return nil
	case session.StartedAt.IsZero():
		m.rejectInvalid(ctx, models.EntitySession, session.ID, ErrValidationNoStartedAt)
		return nil
	}

	existing, err := m.tx.GetSession(ctx, m.userID, session.ID)
	found := err == nil
	if err != nil && !errors.Is(err, store.ErrSessionNotFound) {
		return err
	}

	session.UserID = m.userID
	session.LastModifiedAt = m.now

	switch m.resolver.Resolve(found, existing.Deleted, existing.LastModifiedAt) {
	case AcceptNew:
		if err := m.tx.InsertSession(ctx, session); err != nil {
			return err
		}
	case AcceptUpdate:
		if err := m.tx.UpdateSession(ctx, session); err != nil {
			return err
		}
	default:
		m.reject(models.EntitySession, session.ID)
		return nil
	}

	m.synced++
	m.parents[session.ID] = true

	return nil
}

func (m *merge) mergeTrackPoint(ctx context.Context, point models.TrackPoint) error {
	if point.SessionID == "" {
		m.rejectInvalid(ctx, models.EntityTrackPoint, point.ID, ErrValidationNoSessionID)
		return nil
	}
	if point.ID == "" {
		point.ID = m.ids.Generate()
	}

	exists, err := m.parentExists(ctx, point.SessionID)
	if err != nil {
		return err
	}
	if !exists {
		m.reject(models.EntityTrackPoint, point.ID)
		return nil
	}

	existing, err := m.tx.GetTrackPoint(ctx, m.userID, point.ID)
	found := err == nil
	if err != nil && !errors.Is(err, store.ErrEntityNotFound) {
		return err
	}

	point.UserID = m.userID
	point.LastModifiedAt = m.now

	switch m.resolver.Resolve(found, existing.Deleted, existing.LastModifiedAt) {
	case AcceptNew:
		if err := m.tx.InsertTrackPoint(ctx, point); err != nil {
			return err
		}
	case AcceptUpdate:
		if err := m.tx.UpdateTrackPoint(ctx, point); err != nil {
			return err
		}
	default:
		m.reject(models.EntityTrackPoint, point.ID)
		return nil
	}

	m.synced++

	return nil
}

func (m *merge) mergeCatch(ctx context.Context, catch models.Catch) error {
	switch {
	case catch.SessionID == "":
		m.rejectInvalid(ctx, models.EntityCatch, catch.ID, ErrValidationNoSessionID)
		return nil
	case catch.Species == "":
		m.rejectInvalid(ctx, models.EntityCatch, catch.ID, ErrValidationNoSpecies)
		return nil
	}
	if catch.ID == "" {
		catch.ID = m.ids.Generate()
	}

	exists, err := m.parentExists(ctx, catch.SessionID)
	if err != nil {
		return err
	}
	if !exists {
		m.reject(models.EntityCatch, catch.ID)
		return nil
	}

	existing, err := m.tx.GetCatch(ctx, m.userID, catch.ID)
	found := err == nil
	if err != nil && !errors.Is(err, store.ErrEntityNotFound) {
		return err
	}

	catch.UserID = m.userID
	catch.LastModifiedAt = m.now

	switch m.resolver.Resolve(found, existing.Deleted, existing.LastModifiedAt) {
	case AcceptNew:
		if err := m.tx.InsertCatch(ctx, catch); err != nil {
			return err
		}
	case AcceptUpdate:
		if err := m.tx.UpdateCatch(ctx, catch); err != nil {
			return err
		}
	default:
		m.reject(models.EntityCatch, catch.ID)
		return nil
	}

	m.synced++

	return nil
}

// mergePhotoMeta merges one photo metadata record. Unlike track points and
// catches, a photo must arrive with an ID: the presigned-url endpoint minted
// it before the binary was uploaded, so a missing one is a client bug.
func (m *merge) mergePhotoMeta(ctx context.Context, photo models.PhotoMeta) error {
	switch {
	case photo.ID == "":
		m.rejectInvalid(ctx, models.EntityPhoto, photo.ID, ErrValidationNoID)
		return nil
	case photo.SessionID == "":
		m.rejectInvalid(ctx, models.EntityPhoto, photo.ID, ErrValidationNoSessionID)
		return nil
	}

	exists, err := m.parentExists(ctx, photo.SessionID)
	if err != nil {
		return err
	}
	if !exists {
		m.reject(models.EntityPhoto, photo.ID)
		return nil
	}

	existing, err := m.tx.GetPhotoMeta(ctx, m.userID, photo.ID)
	found := err == nil
	if err != nil && !errors.Is(err, store.ErrEntityNotFound) {
		return err
	}

	photo.UserID = m.userID
	photo.LastModifiedAt = m.now

	switch m.resolver.Resolve(found, existing.Deleted, existing.LastModifiedAt) {
	case AcceptNew:
		if err := m.tx.InsertPhotoMeta(ctx, photo); err != nil {
			return err
		}
	case AcceptUpdate:
		if err := m.tx.UpdatePhotoMeta(ctx, photo); err != nil {
			return err
		}
	default:
		m.reject(models.EntityPhoto, photo.ID)
		return nil
	}

	m.synced++

	return nil
}
