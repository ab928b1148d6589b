// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import "time"

// Decision is the outcome of resolving one uploaded record against its
// stored counterpart.
type Decision int

const (
	// AcceptNew means no stored record exists; the upload is inserted.
	AcceptNew Decision = iota

	// AcceptUpdate means the stored record loses last-write-wins; the
	// upload overwrites it.
	AcceptUpdate

	// RejectConflict means the stored record carries a modification time in
	// the server's future, so its origin clock cannot be trusted against
	// ours. The upload is rejected and reported back to the client.
	RejectConflict

	// RejectDeleted means the stored record is a tombstone. Tombstones are
	// immutable; no upload may resurrect one.
	RejectDeleted
)

// conflictResolver implements last-write-wins with a clock-skew guard.
//
// Because last_modified_at is always assigned by this server, a stored value
// ahead of the server clock indicates skew or tampering; such records are
// protected from overwrite instead of silently losing data.
type conflictResolver struct {
	clock Clock
}

// Resolve decides what to do with an uploaded record given the state of its
// stored counterpart. found reports whether a stored record exists; deleted
// and lastModified describe it when it does.
func (r conflictResolver) Resolve(found, deleted bool, lastModified time.Time) Decision {
	if !found {
		return AcceptNew
	}
	if deleted {
		return RejectDeleted
	}
	if lastModified.After(r.clock.Now()) {
		return RejectConflict
	}

	return AcceptUpdate
}
