package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/fishtrack/internal/config"
	"github.com/MKhiriev/fishtrack/internal/logger"
	"github.com/MKhiriev/fishtrack/internal/store"
	"github.com/MKhiriev/fishtrack/internal/utils"
	"github.com/MKhiriev/fishtrack/models"
	"golang.org/x/crypto/bcrypt"
)

// authService is the concrete implementation of AuthService.
// It handles registration, credential verification and JWT token lifecycle
// using a UserRepository for persistence and bcrypt for password hashing.
type authService struct {
	// userRepository is the data-access layer used to create and look up users.
	userRepository store.UserRepository

	// tokenSignKey is the HMAC secret used to sign and verify JWT tokens.
	tokenSignKey string

	// tokenIssuer is the "iss" claim embedded in every issued JWT.
	// Tokens whose issuer does not match this value are rejected during parsing.
	tokenIssuer string

	// accessTokenDuration controls how long a newly issued access token
	// remains valid.
	accessTokenDuration time.Duration

	// refreshTokenDuration controls how long a newly issued refresh token
	// remains valid.
	refreshTokenDuration time.Duration

	// logger is the structured logger used for diagnostic and error output.
	logger *logger.Logger
}

// NewAuthService constructs a new AuthService wired to the given
// UserRepository and populated with security parameters from cfg.
//
// The returned service is safe for concurrent use; all state is read-only
// after construction.
func NewAuthService(userRepository store.UserRepository, cfg config.App, logger *logger.Logger) AuthService {
	return &authService{
		userRepository:       userRepository,
		tokenSignKey:         cfg.TokenSignKey,
		tokenIssuer:          cfg.TokenIssuer,
		accessTokenDuration:  cfg.AccessTokenDuration,
		refreshTokenDuration: cfg.RefreshTokenDuration,
		logger:               logger,
	}
}

// RegisterUser creates a new user account.
//
// It validates that both Email and Password are non-empty, replaces the
// plaintext password with its bcrypt hash, and delegates persistence to the
// UserRepository.
//
// Returns the persisted user (with a server-assigned UserID) or:
//   - ErrInvalidDataProvided if Email or Password is empty.
//   - A wrapped storage error if the repository call fails (e.g. email
//     already taken — see store.ErrEmailAlreadyExists).
func (a *authService) RegisterUser(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	if user.Email == "" || user.Password == "" {
		log.Error().Str("email", user.Email).Msg("invalid user data provided")
		return models.User{}, ErrInvalidDataProvided
	}

	if err := a.hashPassword(&user); err != nil {
		log.Err(err).Str("email", user.Email).Msg("password hashing failed")
		return models.User{}, fmt.Errorf("password hashing failed: %w", err)
	}

	registeredUser, err := a.userRepository.CreateUser(ctx, user)
	if err != nil {
		log.Err(err).Str("email", user.Email).Msg("user creation ended with error")
		return models.User{}, fmt.Errorf("user creation ended with error: %w", err)
	}

	return registeredUser, nil
}

// Login authenticates an existing user.
//
// It validates that both Email and Password are non-empty, looks up the
// account by email, and compares the supplied password against the stored
// bcrypt hash.
//
// Returns the authenticated user record or:
//   - ErrInvalidDataProvided if Email or Password is empty.
//   - A wrapped storage error if the repository lookup fails (e.g. user not
//     found — see store.ErrNoUserWasFound).
//   - ErrWrongPassword if the password does not match or the account is
//     disabled.
func (a *authService) Login(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	if user.Email == "" || user.Password == "" {
		log.Error().Str("email", user.Email).Msg("invalid user data provided")
		return models.User{}, ErrInvalidDataProvided
	}

	foundUser, err := a.userRepository.FindUserByEmail(ctx, user)
	if err != nil {
		log.Err(err).Str("email", user.Email).Msg("user search by email failed")
		return models.User{}, fmt.Errorf("user search by email failed: %w", err)
	}

	if !foundUser.IsActive {
		log.Error().Int64("id", foundUser.UserID).Msg("account is disabled")
		return models.User{}, ErrWrongPassword
	}

	if err := bcrypt.CompareHashAndPassword([]byte(foundUser.PasswordHash), []byte(user.Password)); err != nil {
		log.Error().
			Int64("id", foundUser.UserID).
			Str("email", foundUser.Email).
			Msg("wrong password")
		return models.User{}, ErrWrongPassword
	}

	return foundUser, nil
}

// CreateTokenPair issues a signed access + refresh token pair for the given
// user.
//
// Both tokens are signed with the configured tokenSignKey and carry the
// configured tokenIssuer as the "iss" claim; the access token expires after
// accessTokenDuration and the refresh token after refreshTokenDuration.
//
// Returns the pair on success or a wrapped ErrTokenCreationFailed if JWT
// generation fails.
func (a *authService) CreateTokenPair(ctx context.Context, user models.User) (models.TokenPair, error) {
	accessToken, err := utils.GenerateJWTToken(a.tokenIssuer, user.UserID, models.TokenTypeAccess, a.accessTokenDuration, a.tokenSignKey)
	if err != nil {
		return models.TokenPair{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	refreshToken, err := utils.GenerateJWTToken(a.tokenIssuer, user.UserID, models.TokenTypeRefresh, a.refreshTokenDuration, a.tokenSignKey)
	if err != nil {
		return models.TokenPair{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return models.TokenPair{
		AccessToken:  accessToken.SignedString,
		RefreshToken: refreshToken.SignedString,
		TokenType:    "Bearer",
	}, nil
}

// RefreshTokenPair exchanges a valid refresh token for a new token pair.
//
// The supplied token must validate and carry the "refresh" type claim, so
// that an access token can never be used to mint new credentials.
//
// Returns the new pair or:
//   - ErrTokenIsExpiredOrInvalid if the token fails validation.
//   - ErrNotARefreshToken if the token is of the wrong kind.
func (a *authService) RefreshTokenPair(ctx context.Context, refreshToken string) (models.TokenPair, error) {
	log := logger.FromContext(ctx)

	token, err := a.ParseToken(ctx, refreshToken)
	if err != nil {
		log.Err(err).Msg("refresh token validation failed")
		return models.TokenPair{}, err
	}

	if token.TokenType != models.TokenTypeRefresh {
		log.Error().Str("typ", token.TokenType).Msg("wrong token kind on refresh")
		return models.TokenPair{}, ErrNotARefreshToken
	}

	return a.CreateTokenPair(ctx, models.User{UserID: token.UserID})
}

// ParseToken validates and parses a raw JWT string.
//
// It delegates to utils.ValidateAndParseJWTToken, verifying the signature and
// the issuer claim. Any validation failure (expired, wrong issuer, malformed)
// is normalised to ErrTokenIsExpiredOrInvalid so that callers do not need to
// inspect low-level JWT errors.
func (a *authService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	token, err := utils.ValidateAndParseJWTToken(tokenString, a.tokenSignKey, a.tokenIssuer)
	if err != nil {
		return models.Token{}, ErrTokenIsExpiredOrInvalid
	}

	return token, nil
}

// ResetPassword starts a password reset for the account with the given
// email. The outcome is deliberately neutral: whether or not the account
// exists, the caller gets the same answer, so the endpoint cannot be used to
// probe for registered emails.
func (a *authService) ResetPassword(ctx context.Context, user models.User) error {
	log := logger.FromContext(ctx)

	if user.Email == "" {
		return nil
	}

	if _, err := a.userRepository.FindUserByEmail(ctx, user); err != nil {
		if errors.Is(err, store.ErrNoUserWasFound) {
			log.Info().Msg("password reset requested for unknown email")
			return nil
		}
		log.Err(err).Msg("password reset lookup failed")
		return nil
	}

	// TODO: enqueue the reset email once an outbound mail transport exists.
	log.Info().Msg("password reset requested")

	return nil
}

// hashPassword replaces the plaintext Password in user with its bcrypt hash.
// The plaintext is cleared so it never travels further down the stack.
func (a *authService) hashPassword(user *models.User) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user.PasswordHash = string(hash)
	user.Password = ""

	return nil
}
