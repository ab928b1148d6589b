package models

import "time"

// Session is a single fishing trip recorded by the mobile client.
// It is the root entity of the sync protocol: track points, catches and
// photo metadata all hang off a session via SessionID.
type Session struct {
	// ID is the globally unique identifier of the session. It may be
	// minted by the client while offline and is stable for the record's
	// lifetime.
	ID string `json:"id"`

	// UserID is the owning account. It is never taken from the payload;
	// the server fills it from the authenticated request context.
	UserID int64 `json:"-"`

	// StartedAt is when the trip began (event time, not modification time).
	StartedAt time.Time `json:"started_at"`

	// EndedAt is when the trip ended. Nil while the session is still open.
	EndedAt *time.Time `json:"ended_at,omitempty"`

	Title string `json:"title,omitempty"`
	Notes string `json:"notes,omitempty"`

	// Deleted marks the record as a tombstone. Clients may set it on
	// upload to propagate a deletion; the server never resurrects a
	// tombstoned record.
	Deleted bool `json:"deleted,omitempty"`

	// LastModifiedAt is the server-assigned time of the last accepted
	// write. It is the sole versioning signal of the protocol and is
	// strictly server-controlled.
	LastModifiedAt time.Time `json:"-"`
}

// TableName returns the name of the database table
// associated with the Session model.
func (s Session) TableName() string {
	return "sessions"
}
