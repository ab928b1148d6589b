package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/MKhiriev/fishtrack/internal/logger"
	"github.com/MKhiriev/fishtrack/models"
)

func newTestSyncRepo(t *testing.T) (*syncRepository, sqlmock.Sqlmock, *sql.DB) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	l := logger.NewLogger("test")
	repo := &syncRepository{
		DB:     &DB{DB: db, logger: l},
		logger: l,
	}
	return repo, mock, db
}

func TestBegin_Success(t *testing.T) {
	repo, mock, db := newTestSyncRepo(t)
	defer db.Close()

	mock.ExpectBegin()

	tx, err := repo.Begin(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tx == nil {
		t.Fatal("expected transaction, got nil")
	}
}

func TestBegin_Error(t *testing.T) {
	repo, mock, db := newTestSyncRepo(t)
	defer db.Close()

	mock.ExpectBegin().WillReturnError(errors.New("db down"))

	_, err := repo.Begin(context.Background())
	if !errors.Is(err, ErrBeginningTransaction) {
		t.Fatalf("expected ErrBeginningTransaction, got %v", err)
	}
}

func TestEntityTx_GetSession_NotFound(t *testing.T) {
	repo, mock, db := newTestSyncRepo(t)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT id, user_id, started_at").
		WithArgs(int64(7), "missing").
		WillReturnRows(sqlmock.NewRows(sessionColumns))

	tx, err := repo.Begin(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err = tx.GetSession(context.Background(), 7, "missing")
	if !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestEntityTx_GetSession_Success(t *testing.T) {
	repo, mock, db := newTestSyncRepo(t)
	defer db.Close()

	now := time.Now()
	rows := sqlmock.NewRows(sessionColumns).
		AddRow("s1", int64(7), now, nil, "Morning trip", "", false, now)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT id, user_id, started_at").
		WithArgs(int64(7), "s1").
		WillReturnRows(rows)

	tx, err := repo.Begin(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	session, err := tx.GetSession(context.Background(), 7, "s1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if session.ID != "s1" || session.UserID != 7 || session.Title != "Morning trip" {
		t.Errorf("unexpected session: %+v", session)
	}
	if session.EndedAt != nil {
		t.Errorf("expected open session, got ended at %v", session.EndedAt)
	}
}

func TestEntityTx_InsertAndCommit(t *testing.T) {
	repo, mock, db := newTestSyncRepo(t)
	defer db.Close()

	now := time.Now()
	session := models.Session{
		ID:             "s1",
		UserID:         7,
		StartedAt:      now,
		Title:          "Morning trip",
		LastModifiedAt: now,
	}

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO sessions").
		WithArgs(session.ID, session.UserID, session.StartedAt, nil, session.Title, "", false, session.LastModifiedAt).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	tx, err := repo.Begin(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := tx.InsertSession(context.Background(), session); err != nil {
		t.Fatalf("unexpected insert error: %v", err)
	}
	if err := tx.Commit(); err != nil {
		t.Fatalf("unexpected commit error: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestEntityTx_UpdateSession_NoRowsAffected(t *testing.T) {
	repo, mock, db := newTestSyncRepo(t)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE sessions").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	tx, err := repo.Begin(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	err = tx.UpdateSession(context.Background(), models.Session{ID: "s1", UserID: 7})
	if !errors.Is(err, ErrEntityNotSaved) {
		t.Fatalf("expected ErrEntityNotSaved, got %v", err)
	}

	if err := tx.Rollback(); err != nil {
		t.Fatalf("unexpected rollback error: %v", err)
	}
}

func TestEntityTx_RollbackOnInsertError(t *testing.T) {
	repo, mock, db := newTestSyncRepo(t)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO track_points").
		WillReturnError(errors.New("constraint violation"))
	mock.ExpectRollback()

	tx, err := repo.Begin(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	err = tx.InsertTrackPoint(context.Background(), models.TrackPoint{ID: "tp1", UserID: 7, SessionID: "s1"})
	if !errors.Is(err, ErrExecutingStatement) {
		t.Fatalf("expected ErrExecutingStatement, got %v", err)
	}

	if err := tx.Rollback(); err != nil {
		t.Fatalf("unexpected rollback error: %v", err)
	}
}

func TestEntityTx_SessionExists(t *testing.T) {
	repo, mock, db := newTestSyncRepo(t)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT EXISTS").
		WithArgs(int64(7), "s1").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	tx, err := repo.Begin(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	exists, err := tx.SessionExists(context.Background(), 7, "s1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !exists {
		t.Error("expected session to exist")
	}
}

func TestSelectChangedSessions_Success(t *testing.T) {
	repo, mock, db := newTestSyncRepo(t)
	defer db.Close()

	now := time.Now()
	rows := sqlmock.NewRows(sessionColumns).
		AddRow("s1", int64(7), now, nil, "First", "", false, now).
		AddRow("s2", int64(7), now, now, "Second", "notes", false, now)

	mock.ExpectQuery("SELECT id, user_id, started_at").
		WillReturnRows(rows)

	sessions, err := repo.SelectChangedSessions(context.Background(), 7, nil, 100)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sessions) != 2 {
		t.Fatalf("expected 2 sessions, got %d", len(sessions))
	}
	if sessions[0].ID != "s1" || sessions[1].ID != "s2" {
		t.Errorf("unexpected session order: %+v", sessions)
	}
}

func TestSelectChangedSessions_QueryError(t *testing.T) {
	repo, mock, db := newTestSyncRepo(t)
	defer db.Close()

	mock.ExpectQuery("SELECT id, user_id, started_at").
		WillReturnError(errors.New("db failure"))

	_, err := repo.SelectChangedSessions(context.Background(), 7, nil, 100)
	if !errors.Is(err, ErrExecutingQuery) {
		t.Fatalf("expected ErrExecutingQuery, got %v", err)
	}
}

func TestSelectTrackPointsBySessions_EmptySessionList(t *testing.T) {
	repo, _, db := newTestSyncRepo(t)
	defer db.Close()

	points, err := repo.SelectTrackPointsBySessions(context.Background(), 7, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(points) != 0 {
		t.Errorf("expected empty result, got %d points", len(points))
	}
}

func TestSelectCatchesBySessions_Success(t *testing.T) {
	repo, mock, db := newTestSyncRepo(t)
	defer db.Close()

	now := time.Now()
	length := 42.5
	rows := sqlmock.NewRows(catchColumns).
		AddRow("c1", int64(7), "s1", int64(1700000000000), "pike", length, nil, "", nil, nil, false, now)

	mock.ExpectQuery("SELECT id, user_id, session_id").
		WillReturnRows(rows)

	catches, err := repo.SelectCatchesBySessions(context.Background(), 7, []string{"s1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(catches) != 1 {
		t.Fatalf("expected 1 catch, got %d", len(catches))
	}
	if catches[0].Species != "pike" {
		t.Errorf("expected species pike, got %s", catches[0].Species)
	}
	if catches[0].Length == nil || *catches[0].Length != length {
		t.Errorf("expected length %v, got %v", length, catches[0].Length)
	}
}
