// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// Entity type labels used in conflict descriptors. The wire values are part
// of the protocol contract with the mobile client.
const (
	EntitySession    = "session"
	EntityTrackPoint = "track_point"
	EntityCatch      = "catch"
	EntityPhoto      = "photo"
)

// MaxTrackPointsPerUpload is the hard ceiling on track points accepted in a
// single upload call. Excess entries are silently dropped, not rejected.
const MaxTrackPointsPerUpload = 500

// SessionPageSize is the maximum number of sessions returned by a single
// download call. When a response carries exactly this many sessions,
// HasMore is set and the client is expected to call again with the returned
// server timestamp as its new watermark.
const SessionPageSize = 100

// UploadBatch is the client → server half of a synchronization round-trip:
// every record the client created or modified since its last sync, grouped
// by entity type. Within each slice the client's ordering is preserved.
type UploadBatch struct {
	// LastSyncTimestamp is informational on upload; the merge itself does
	// not filter by it.
	LastSyncTimestamp string `json:"last_sync_timestamp,omitempty"`

	Sessions    []Session    `json:"sessions"`
	TrackPoints []TrackPoint `json:"track_points"`
	Catches     []Catch      `json:"catches"`
	PhotosMeta  []PhotoMeta  `json:"photos_meta"`
}

// ConflictRef identifies a single rejected record in an upload response.
type ConflictRef struct {
	// Entity is one of the Entity* constants.
	Entity string `json:"entity"`

	// ID is the identity of the rejected record.
	ID string `json:"id"`
}

// UploadResult summarizes an upload merge for the client.
type UploadResult struct {
	Status string `json:"status"`

	// SyncedCount is the number of records actually applied.
	SyncedCount int `json:"synced_count"`

	// Conflicts lists rejected records in processing order. Conflicts are
	// non-fatal: the rest of the batch is still applied.
	Conflicts []ConflictRef `json:"conflicts"`

	// ServerTimestamp is the instant the merge completed, RFC 3339 UTC
	// with a trailing "Z".
	ServerTimestamp string `json:"server_timestamp"`
}

// DownloadRequest asks the server for every change visible to the account
// since the given watermark.
type DownloadRequest struct {
	// LastSyncTimestamp is the watermark: the server timestamp returned by
	// the previous download. Absent or unparseable means "from the
	// beginning".
	LastSyncTimestamp string `json:"last_sync_timestamp,omitempty"`
}

// DownloadBatch is the server → client half of a synchronization
// round-trip. For every session selected by the watermark its complete
// non-deleted child set is included, whether or not the children themselves
// changed.
type DownloadBatch struct {
	Sessions    []Session    `json:"sessions"`
	TrackPoints []TrackPoint `json:"track_points"`
	Catches     []Catch      `json:"catches"`
	PhotosMeta  []PhotoMeta  `json:"photos_meta"`

	// ServerTimestamp is the instant of computation; the client stores it
	// as its next watermark.
	ServerTimestamp string `json:"server_timestamp"`

	// HasMore is true exactly when Sessions is a full page, signaling the
	// client to re-request with the new watermark.
	HasMore bool `json:"has_more"`
}
