package models

import "time"

// Catch is a fish caught during a session.
type Catch struct {
	// ID may be empty on upload — the server mints one in that case.
	ID        string `json:"id,omitempty"`
	SessionID string `json:"session_id"`

	// UserID is the owning account, filled from the request context.
	UserID int64 `json:"-"`

	// TS is the unix timestamp (seconds) of the catch.
	TS int64 `json:"ts"`

	// Species is the only required descriptive field.
	Species string `json:"species"`

	Length *float64 `json:"length,omitempty"`
	Weight *float64 `json:"weight,omitempty"`
	Notes  string   `json:"notes,omitempty"`
	Lat    *float64 `json:"lat,omitempty"`
	Lon    *float64 `json:"lon,omitempty"`

	Deleted bool `json:"deleted,omitempty"`

	LastModifiedAt time.Time `json:"-"`
}

// TableName returns the name of the database table
// associated with the Catch model.
func (c Catch) TableName() string {
	return "catches"
}
