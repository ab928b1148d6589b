package models

import "time"

// TrackPoint is a single GPS fix captured while a session is active.
// Points arrive in large batches; the upload path caps them at
// MaxTrackPointsPerUpload per call.
type TrackPoint struct {
	// ID may be empty on upload — the server mints one in that case.
	ID        string `json:"id,omitempty"`
	SessionID string `json:"session_id"`

	// UserID is the owning account, filled from the request context.
	UserID int64 `json:"-"`

	// TS is the unix timestamp (seconds) the fix was taken.
	TS int64 `json:"ts"`

	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`

	// Acc is the reported horizontal accuracy in meters, if known.
	Acc     *float64 `json:"acc,omitempty"`
	Speed   *float64 `json:"speed,omitempty"`
	Heading *float64 `json:"heading,omitempty"`

	Deleted bool `json:"deleted,omitempty"`

	LastModifiedAt time.Time `json:"-"`
}

// TableName returns the name of the database table
// associated with the TrackPoint model.
func (t TrackPoint) TableName() string {
	return "track_points"
}
