// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/MKhiriev/fishtrack/internal/logger"
	"github.com/MKhiriev/fishtrack/internal/service"
	"github.com/MKhiriev/fishtrack/internal/store"
	"github.com/MKhiriev/fishtrack/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ─────────────────────────────────────────────
// Mock AuthService
// ─────────────────────────────────────────────

// mockAuthService implements service.AuthService for unit tests.
// Each method field can be overridden per test case.
type mockAuthService struct {
	registerUserFn     func(ctx context.Context, user models.User) (models.User, error)
	loginFn            func(ctx context.Context, user models.User) (models.User, error)
	createTokenPairFn  func(ctx context.Context, user models.User) (models.TokenPair, error)
	refreshTokenPairFn func(ctx context.Context, refreshToken string) (models.TokenPair, error)
	parseTokenFn       func(ctx context.Context, tokenString string) (models.Token, error)
	resetPasswordFn    func(ctx context.Context, user models.User) error
}

func (m *mockAuthService) RegisterUser(ctx context.Context, user models.User) (models.User, error) {
	return m.registerUserFn(ctx, user)
}

func (m *mockAuthService) Login(ctx context.Context, user models.User) (models.User, error) {
	return m.loginFn(ctx, user)
}

func (m *mockAuthService) CreateTokenPair(ctx context.Context, user models.User) (models.TokenPair, error) {
	return m.createTokenPairFn(ctx, user)
}

func (m *mockAuthService) RefreshTokenPair(ctx context.Context, refreshToken string) (models.TokenPair, error) {
	return m.refreshTokenPairFn(ctx, refreshToken)
}

func (m *mockAuthService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	return m.parseTokenFn(ctx, tokenString)
}

func (m *mockAuthService) ResetPassword(ctx context.Context, user models.User) error {
	if m.resetPasswordFn != nil {
		return m.resetPasswordFn(ctx, user)
	}
	return nil
}

// ─────────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────────

// newHandlerWithAuth builds a Handler with the given AuthService mock.
func newHandlerWithAuth(t *testing.T, auth service.AuthService) *Handler {
	t.Helper()
	svcs := &service.Services{
		AuthService: auth,
	}
	return NewHandler(svcs, logger.Nop())
}

// userBody serialises a models.User to a JSON request body string.
func userBody(t *testing.T, u models.User) string {
	t.Helper()
	b, err := json.Marshal(u)
	require.NoError(t, err)
	return string(b)
}

// stubTokenPair is a convenience token pair fixture.
var stubTokenPair = models.TokenPair{
	AccessToken:  "signed.access.token",
	RefreshToken: "signed.refresh.token",
	TokenType:    "Bearer",
}

// validUser is a convenience fixture used across multiple tests.
var validUser = models.User{
	Email:    "angler@example.com",
	Password: "secret",
}

func decodeTokenPair(t *testing.T, rec *httptest.ResponseRecorder) models.TokenPair {
	t.Helper()
	var pair models.TokenPair
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &pair))
	return pair
}

// ─────────────────────────────────────────────
// register
// ─────────────────────────────────────────────

func TestRegister_Success(t *testing.T) {
	auth := &mockAuthService{
		registerUserFn: func(_ context.Context, u models.User) (models.User, error) {
			u.UserID = 7
			return u, nil
		},
		createTokenPairFn: func(_ context.Context, _ models.User) (models.TokenPair, error) {
			return stubTokenPair, nil
		},
	}

	h := newHandlerWithAuth(t, auth)
	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader(userBody(t, validUser)))
	rec := httptest.NewRecorder()

	h.register(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, stubTokenPair, decodeTokenPair(t, rec))
}

func TestRegister_InvalidJSON(t *testing.T) {
	h := newHandlerWithAuth(t, &mockAuthService{})

	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader("{invalid json}"))
	rec := httptest.NewRecorder()

	h.register(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid JSON was passed")
}

func TestRegister_EmailTaken(t *testing.T) {
	auth := &mockAuthService{
		registerUserFn: func(_ context.Context, _ models.User) (models.User, error) {
			return models.User{}, store.ErrEmailAlreadyExists
		},
	}

	h := newHandlerWithAuth(t, auth)
	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader(userBody(t, validUser)))
	rec := httptest.NewRecorder()

	h.register(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestRegister_InvalidData(t *testing.T) {
	auth := &mockAuthService{
		registerUserFn: func(_ context.Context, _ models.User) (models.User, error) {
			return models.User{}, service.ErrInvalidDataProvided
		},
	}

	h := newHandlerWithAuth(t, auth)
	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader(userBody(t, models.User{})))
	rec := httptest.NewRecorder()

	h.register(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

// ─────────────────────────────────────────────
// login
// ─────────────────────────────────────────────

func TestLogin_Success(t *testing.T) {
	auth := &mockAuthService{
		loginFn: func(_ context.Context, _ models.User) (models.User, error) {
			return models.User{UserID: 7, Email: validUser.Email}, nil
		},
		createTokenPairFn: func(_ context.Context, u models.User) (models.TokenPair, error) {
			assert.Equal(t, int64(7), u.UserID)
			return stubTokenPair, nil
		},
	}

	h := newHandlerWithAuth(t, auth)
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(userBody(t, validUser)))
	rec := httptest.NewRecorder()

	h.login(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, stubTokenPair, decodeTokenPair(t, rec))
}

func TestLogin_WrongPassword(t *testing.T) {
	auth := &mockAuthService{
		loginFn: func(_ context.Context, _ models.User) (models.User, error) {
			return models.User{}, service.ErrWrongPassword
		},
	}

	h := newHandlerWithAuth(t, auth)
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(userBody(t, validUser)))
	rec := httptest.NewRecorder()

	h.login(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLogin_UnknownUser(t *testing.T) {
	auth := &mockAuthService{
		loginFn: func(_ context.Context, _ models.User) (models.User, error) {
			return models.User{}, store.ErrNoUserWasFound
		},
	}

	h := newHandlerWithAuth(t, auth)
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(userBody(t, validUser)))
	rec := httptest.NewRecorder()

	h.login(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

// ─────────────────────────────────────────────
// refresh
// ─────────────────────────────────────────────

func TestRefresh_Success(t *testing.T) {
	auth := &mockAuthService{
		refreshTokenPairFn: func(_ context.Context, refreshToken string) (models.TokenPair, error) {
			assert.Equal(t, "signed.refresh.token", refreshToken)
			return stubTokenPair, nil
		},
	}

	h := newHandlerWithAuth(t, auth)
	req := httptest.NewRequest(http.MethodPost, "/api/auth/refresh",
		strings.NewReader(`{"refresh_token":"signed.refresh.token"}`))
	rec := httptest.NewRecorder()

	h.refresh(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, stubTokenPair, decodeTokenPair(t, rec))
}

func TestRefresh_NotARefreshToken(t *testing.T) {
	auth := &mockAuthService{
		refreshTokenPairFn: func(_ context.Context, _ string) (models.TokenPair, error) {
			return models.TokenPair{}, service.ErrNotARefreshToken
		},
	}

	h := newHandlerWithAuth(t, auth)
	req := httptest.NewRequest(http.MethodPost, "/api/auth/refresh",
		strings.NewReader(`{"refresh_token":"signed.access.token"}`))
	rec := httptest.NewRecorder()

	h.refresh(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRefresh_ExpiredToken(t *testing.T) {
	auth := &mockAuthService{
		refreshTokenPairFn: func(_ context.Context, _ string) (models.TokenPair, error) {
			return models.TokenPair{}, service.ErrTokenIsExpiredOrInvalid
		},
	}

	h := newHandlerWithAuth(t, auth)
	req := httptest.NewRequest(http.MethodPost, "/api/auth/refresh",
		strings.NewReader(`{"refresh_token":"old.token"}`))
	rec := httptest.NewRecorder()

	h.refresh(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

// ─────────────────────────────────────────────
// password reset
// ─────────────────────────────────────────────

func TestPasswordReset_NeutralAnswer(t *testing.T) {
	tests := []struct {
		name    string
		resetFn func(ctx context.Context, user models.User) error
	}{
		{name: "KnownEmail", resetFn: func(context.Context, models.User) error { return nil }},
		{name: "LookupFailure", resetFn: func(context.Context, models.User) error { return errors.New("smtp down") }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHandlerWithAuth(t, &mockAuthService{resetPasswordFn: tt.resetFn})
			req := httptest.NewRequest(http.MethodPost, "/api/auth/password-reset",
				strings.NewReader(`{"email":"angler@example.com"}`))
			rec := httptest.NewRecorder()

			h.passwordReset(rec, req)

			// The answer must not leak whether the account exists or the
			// reset could actually be started.
			assert.Equal(t, http.StatusOK, rec.Code)
			assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
		})
	}
}

func TestPasswordReset_InvalidJSON(t *testing.T) {
	h := newHandlerWithAuth(t, &mockAuthService{})
	req := httptest.NewRequest(http.MethodPost, "/api/auth/password-reset", strings.NewReader("{"))
	rec := httptest.NewRecorder()

	h.passwordReset(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
