package models

import "time"

// User represents an account entity used for authentication and authorization.
// It contains identity attributes and credential-related data.
// Sensitive fields must never be exposed outside trusted boundaries.
type User struct {
	// UserID is the internal unique identifier of the user.
	// It is not exposed via JSON and is used only at the persistence layer.
	UserID int64 `json:"-"`

	// Email is the unique account identifier used during authentication.
	Email string `json:"email"`

	// Password carries the plaintext credential on register/login requests
	// only. It is never persisted; the store keeps PasswordHash.
	Password string `json:"password,omitempty"`

	// PasswordHash is the bcrypt hash of the password. Never exposed via
	// JSON.
	PasswordHash string `json:"-"`

	// CreatedAt is the timestamp when the user account was created.
	// Used for auditing and lifecycle management.
	CreatedAt time.Time `json:"created_at"`

	// IsActive allows an account to be disabled without deleting its data.
	IsActive bool `json:"-"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}
