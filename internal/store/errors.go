package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrEmailAlreadyExists is returned when an attempt to register a new user
	// fails because a user with the same email already exists in the database.
	ErrEmailAlreadyExists = errors.New("email already exists")

	// ErrNoUserWasFound is returned when a query expected to match at least one
	// user record produces an empty result set.
	ErrNoUserWasFound = errors.New("no user was found")

	// ErrSessionNotFound is returned when a query or update targets a fishing
	// session (identified by id and user_id) that does not exist in the
	// database.
	ErrSessionNotFound = errors.New("session was not found")

	// ErrEntityNotFound is returned when a lookup of a synced entity record
	// (track point, catch, photo metadata) by its identity produces no rows.
	ErrEntityNotFound = errors.New("entity was not found")

	// ErrEntityNotSaved is returned when an INSERT or UPDATE of a synced
	// entity completes without error but the number of affected rows is zero,
	// indicating that no data was actually persisted.
	ErrEntityNotSaved = errors.New("entity was not saved")

	// ErrPhotoNotFound is returned when a photo binary requested for download
	// does not exist in the file storage.
	ErrPhotoNotFound = errors.New("photo file was not found")

	// ErrPhotoTooLarge is returned when an uploaded photo binary exceeds the
	// configured per-photo size ceiling.
	ErrPhotoTooLarge = errors.New("photo file is too large")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails (e.g. invalid argument count or unsupported type).
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT or similar
	// read-only query against the database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrBeginningTransaction is returned when the database driver cannot
	// start a new transaction.
	ErrBeginningTransaction = errors.New("failed to begin transaction")

	// ErrCommitingTransaction is returned when committing an open transaction
	// fails. The transaction is considered rolled back at this point.
	ErrCommitingTransaction = errors.New("failed to commit transaction")

	// ErrExecutingStatement is returned when executing a DML statement
	// (INSERT, UPDATE, DELETE) fails.
	ErrExecutingStatement = errors.New("failed to executing statement")

	// ErrScanningRow is returned when scanning column values from a single
	// result row into a destination struct fails.
	ErrScanningRow = errors.New("failed to scan row")

	// ErrScanningRows is returned when scanning column values during
	// multi-row iteration fails, typically mid-result-set.
	ErrScanningRows = errors.New("failed to scan rows")
)
