package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/fishtrack/internal/service"
	"github.com/MKhiriev/fishtrack/internal/store"
)

var errorStatusMap = map[error]int{
	service.ErrInvalidDataProvided:     http.StatusBadRequest,
	service.ErrWrongPassword:           http.StatusUnauthorized,
	service.ErrTokenIsExpiredOrInvalid: http.StatusUnauthorized,
	service.ErrNotARefreshToken:        http.StatusUnauthorized,
	service.ErrRateLimited:             http.StatusTooManyRequests,
	service.ErrVersionIsNotSpecified:   http.StatusBadRequest,

	store.ErrEmailAlreadyExists: http.StatusConflict,
	store.ErrNoUserWasFound:     http.StatusNotFound,
	store.ErrSessionNotFound:    http.StatusNotFound,
	store.ErrEntityNotFound:     http.StatusNotFound,
	store.ErrEntityNotSaved:     http.StatusInternalServerError,
	store.ErrPhotoNotFound:      http.StatusNotFound,
	store.ErrPhotoTooLarge:      http.StatusBadRequest,

	store.ErrBuildingSQLQuery:     http.StatusInternalServerError,
	store.ErrExecutingQuery:       http.StatusInternalServerError,
	store.ErrBeginningTransaction: http.StatusInternalServerError,
	store.ErrCommitingTransaction: http.StatusInternalServerError,
	store.ErrExecutingStatement:   http.StatusInternalServerError,
	store.ErrScanningRow:          http.StatusInternalServerError,
	store.ErrScanningRows:         http.StatusInternalServerError,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}
