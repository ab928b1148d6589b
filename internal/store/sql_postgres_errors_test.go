package store

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

// ─────────────────────────────────────────────
// ClassifyPgError
// ─────────────────────────────────────────────

func TestClassifyPgError(t *testing.T) {
	tests := []struct {
		name string
		code string
		want ErrorClassification
	}{
		{name: "connection exception", code: pgerrcode.ConnectionException, want: Retryable},
		{name: "connection does not exist", code: pgerrcode.ConnectionDoesNotExist, want: Retryable},
		{name: "connection failure", code: pgerrcode.ConnectionFailure, want: Retryable},
		{name: "transaction rollback", code: pgerrcode.TransactionRollback, want: Retryable},
		{name: "serialization failure", code: pgerrcode.SerializationFailure, want: Retryable},
		{name: "deadlock detected", code: pgerrcode.DeadlockDetected, want: Retryable},
		{name: "cannot connect now", code: pgerrcode.CannotConnectNow, want: Retryable},
		{name: "data exception", code: pgerrcode.DataException, want: NonRetryable},
		{name: "not null violation", code: pgerrcode.NotNullViolation, want: NonRetryable},
		{name: "foreign key violation", code: pgerrcode.ForeignKeyViolation, want: NonRetryable},
		{name: "unique violation", code: pgerrcode.UniqueViolation, want: NonRetryable},
		{name: "syntax error", code: pgerrcode.SyntaxError, want: NonRetryable},
		{name: "undefined table", code: pgerrcode.UndefinedTable, want: NonRetryable},
		{name: "unknown code defaults to non-retryable", code: "P0001", want: NonRetryable},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			got := ClassifyPgError(&pgconn.PgError{Code: tt.code})

			assert.Equal(t, tt.want, got)
		})
	}
}

// ─────────────────────────────────────────────
// PostgresErrorClassifier.Classify
// ─────────────────────────────────────────────

func TestClassify_NilError(t *testing.T) {
	c := NewPostgresErrorClassifier()

	assert.Equal(t, NonRetryable, c.Classify(nil))
}

func TestClassify_NonPostgresError(t *testing.T) {
	c := NewPostgresErrorClassifier()

	assert.Equal(t, NonRetryable, c.Classify(errors.New("dial tcp: i/o timeout")))
}

func TestClassify_WrappedPgError(t *testing.T) {
	c := NewPostgresErrorClassifier()
	pgErr := &pgconn.PgError{Code: pgerrcode.DeadlockDetected}
	wrapped := fmt.Errorf("%w: %w", ErrExecutingQuery, pgErr)

	assert.Equal(t, Retryable, c.Classify(wrapped))
}

// ─────────────────────────────────────────────
// DB.classifyError
// ─────────────────────────────────────────────

func TestClassifyError_NoClassifierDefaultsToNonRetryable(t *testing.T) {
	db := &DB{}

	got := db.classifyError(&pgconn.PgError{Code: pgerrcode.ConnectionFailure})

	assert.Equal(t, NonRetryable, got)
}

func TestClassifyError_DelegatesToClassifier(t *testing.T) {
	db := &DB{errorClassificator: NewPostgresErrorClassifier()}

	assert.Equal(t, Retryable, db.classifyError(&pgconn.PgError{Code: pgerrcode.SerializationFailure}))
	assert.Equal(t, NonRetryable, db.classifyError(errors.New("context canceled")))
}
