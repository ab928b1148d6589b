package service

import "errors"

var (
	ErrInvalidDataProvided = errors.New("invalid data provided")
	ErrWrongPassword       = errors.New("wrong password")

	ErrTokenCreationFailed     = errors.New("token creation failed")
	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")
	ErrNotARefreshToken        = errors.New("provided token is not a refresh token")

	// ErrRateLimited is returned by the upload merger when the configured
	// rate-limit policy refuses the account.
	ErrRateLimited = errors.New("too many sync requests")

	ErrVersionIsNotSpecified = errors.New("application version is not specified")

	// Per-entry validation sentinels. These never fail a whole upload batch;
	// the offending entry is rejected into the conflicts list.
	ErrValidationNoID        = errors.New("entity identity is missing")
	ErrValidationNoSessionID = errors.New("parent session id is missing")
	ErrValidationNoSpecies   = errors.New("catch species is missing")
	ErrValidationNoStartedAt = errors.New("session start time is missing")
)
