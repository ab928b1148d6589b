package models

import "time"

// PhotoMeta describes a photo taken during a session. Only metadata flows
// through the sync protocol — the binary payload is uploaded out-of-band to
// the photo object store and referenced here by StorageKey.
type PhotoMeta struct {
	// ID is required on upload: it is minted by the presigned-url endpoint
	// before the binary is uploaded, so the client always knows it.
	ID        string `json:"id"`
	SessionID string `json:"session_id"`

	// UserID is the owning account, filled from the request context.
	UserID int64 `json:"-"`

	// TS is the unix timestamp (seconds) the photo was taken.
	TS int64 `json:"ts"`

	Lat *float64 `json:"lat,omitempty"`
	Lon *float64 `json:"lon,omitempty"`

	// StorageKey is the object-store key of the binary payload.
	StorageKey string `json:"s3_key,omitempty"`

	// Size is the payload size in bytes as reported by the client.
	Size int64 `json:"size,omitempty"`

	Deleted bool `json:"deleted,omitempty"`

	LastModifiedAt time.Time `json:"-"`
}

// TableName returns the name of the database table
// associated with the PhotoMeta model.
func (p PhotoMeta) TableName() string {
	return "photos"
}

// PresignedPhotoURL is the response body of the presigned-url endpoint.
// The server mints a fresh photo ID and tells the client where to PUT the
// binary; with the local file store the URL points back at the upload
// endpoint of this server.
type PresignedPhotoURL struct {
	PhotoID   string `json:"photo_id"`
	URL       string `json:"url"`
	Method    string `json:"method"`
	ExpiresIn int64  `json:"expires_in"`
}
