// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container for the
// fishtrack server. It aggregates all sub-configurations and is populated by
// merging values from environment variables, command-line flags, and an
// optional JSON file.
//
// Struct tags:
//   - envPrefix — prefix applied to all nested env tag lookups (caarlos0/env).
//   - env       — direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds application-level settings such as token parameters and
	// the application version.
	App App `envPrefix:"APP_"`

	// Storage holds configuration for all persistence backends: the
	// relational entity store and the photo object store.
	Storage Storage `envPrefix:"STORAGE_"`

	// Server holds network address and timeout settings for the HTTP
	// server.
	Server Server `envPrefix:"SERVER_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// When non-empty, the file is parsed and merged behind the values
	// already loaded from environment variables and flags.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds application-level configuration values that control security,
// token lifecycle, and versioning.
type App struct {
	// TokenSignKey is the secret key used to sign and verify JWT tokens.
	// Must be kept confidential.
	// Env: APP_TOKEN_SIGN_KEY
	TokenSignKey string `env:"TOKEN_SIGN_KEY"`

	// TokenIssuer is the "iss" claim embedded in every issued JWT.
	// Tokens whose issuer does not match this value are rejected during
	// parsing.
	// Env: APP_TOKEN_ISSUER
	TokenIssuer string `env:"TOKEN_ISSUER"`

	// AccessTokenDuration specifies how long an access token remains valid
	// after issuance (e.g. "30m").
	// Env: APP_ACCESS_TOKEN_DURATION
	AccessTokenDuration time.Duration `env:"ACCESS_TOKEN_DURATION"`

	// RefreshTokenDuration specifies how long a refresh token remains
	// valid after issuance (e.g. "168h" for a week).
	// Env: APP_REFRESH_TOKEN_DURATION
	RefreshTokenDuration time.Duration `env:"REFRESH_TOKEN_DURATION"`

	// Version is the semantic version string of the running application
	// (e.g. "0.3.0"). Exposed via the health endpoint.
	// Env: APP_VERSION
	Version string `env:"VERSION"`
}

// Storage groups the configuration for all storage backends used by the
// server.
type Storage struct {
	// DB holds the relational database connection settings.
	DB DB `envPrefix:"DB_"`

	// Photos holds the file-system storage settings for photo binaries.
	Photos Photos `envPrefix:"PHOTOS_"`
}

// DB holds connection settings for the relational entity store.
type DB struct {
	// DSN is the Data Source Name used to open the database connection.
	// A "postgres://" scheme selects the PostgreSQL backend; anything else
	// is treated as a SQLite file path (the development default).
	// Env: STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI"`
}

// Photos holds file-system settings for the photo binary store.
type Photos struct {
	// UploadDir is the directory where uploaded photo binaries are stored
	// and served from.
	// Env: STORAGE_PHOTOS_UPLOAD_DIR
	UploadDir string `env:"UPLOAD_DIR"`

	// MaxUploadSize is the per-photo byte ceiling enforced on upload.
	// Env: STORAGE_PHOTOS_MAX_UPLOAD_SIZE
	MaxUploadSize int64 `env:"MAX_UPLOAD_SIZE"`
}

// Server holds network and timeout settings for the inbound transport layer.
type Server struct {
	// HTTPAddress is the TCP address on which the HTTP server listens,
	// in "host:port" format (e.g. "0.0.0.0:8080").
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout is the maximum duration allowed for a single inbound
	// request before the server cancels it (e.g. "30s", "1m").
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Fallbacks applied by applyDefaults when no source provided a value.
const (
	defaultDSN                  = "fishtrack.db"
	defaultHTTPAddress          = ":8080"
	defaultTokenIssuer          = "fishtrack"
	defaultAccessTokenDuration  = 30 * time.Minute
	defaultRefreshTokenDuration = 7 * 24 * time.Hour
	defaultUploadDir            = "uploads"
	defaultMaxUploadSize        = 5 << 20 // 5 MiB
)

// GetStructuredConfig loads, merges, and validates the application
// configuration from all available sources in the following priority order
// (earlier sources win for non-zero fields):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON file (path resolved from sources 1 and 2)
//
// Returns a fully populated *StructuredConfig or an error if any source
// fails to load or the final config fails validation.
func GetStructuredConfig() (*StructuredConfig, error) {
	cfg, err := newConfigBuilder().
		withEnv().
		withFlags().
		withJSON().
		build()
	if err != nil {
		return nil, err
	}

	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyDefaults fills in development fallbacks for fields no configuration
// source provided. The token sign key deliberately has no default.
func (cfg *StructuredConfig) applyDefaults() {
	if cfg.Storage.DB.DSN == "" {
		cfg.Storage.DB.DSN = defaultDSN
	}
	if cfg.Storage.Photos.UploadDir == "" {
		cfg.Storage.Photos.UploadDir = defaultUploadDir
	}
	if cfg.Storage.Photos.MaxUploadSize == 0 {
		cfg.Storage.Photos.MaxUploadSize = defaultMaxUploadSize
	}
	if cfg.Server.HTTPAddress == "" {
		cfg.Server.HTTPAddress = defaultHTTPAddress
	}
	if cfg.App.TokenIssuer == "" {
		cfg.App.TokenIssuer = defaultTokenIssuer
	}
	if cfg.App.AccessTokenDuration == 0 {
		cfg.App.AccessTokenDuration = defaultAccessTokenDuration
	}
	if cfg.App.RefreshTokenDuration == 0 {
		cfg.App.RefreshTokenDuration = defaultRefreshTokenDuration
	}
}
