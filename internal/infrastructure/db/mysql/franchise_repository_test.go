package mysql

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/rs/zerolog"

	"github.com/pizzahub/pizza-service/internal/core/domain"
)

func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func TestFranchiseRepository_Delete_Commits(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewFranchiseRepository(db, zerolog.Nop())

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM store WHERE franchiseId=?`).
		WithArgs(int64(4)).WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(`DELETE FROM userRole WHERE objectId=?`).
		WithArgs(int64(4)).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM franchise WHERE id=?`).
		WithArgs(int64(4)).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	if err := repo.Delete(context.Background(), 4); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

// A failure in the middle of the cascade rolls the whole unit back: the
// franchise row is never touched and the caller sees the delete sentinel.
func TestFranchiseRepository_Delete_RollsBackMidCascade(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewFranchiseRepository(db, zerolog.Nop())

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM store WHERE franchiseId=?`).
		WithArgs(int64(4)).WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(`DELETE FROM userRole WHERE objectId=?`).
		WithArgs(int64(4)).WillReturnError(errors.New("driver: bad connection"))
	mock.ExpectRollback()

	err := repo.Delete(context.Background(), 4)
	if !errors.Is(err, domain.ErrFranchiseDelete) {
		t.Fatalf("expected ErrFranchiseDelete, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expected rollback without reaching the franchise row: %v", err)
	}
}

func TestFranchiseRepository_Delete_RollsBackOnFirstStep(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewFranchiseRepository(db, zerolog.Nop())

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM store WHERE franchiseId=?`).
		WithArgs(int64(4)).WillReturnError(errors.New("lock wait timeout"))
	mock.ExpectRollback()

	if err := repo.Delete(context.Background(), 4); !errors.Is(err, domain.ErrFranchiseDelete) {
		t.Fatalf("expected ErrFranchiseDelete, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestWithTx(t *testing.T) {
	t.Run("commits on success", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectBegin()
		mock.ExpectCommit()

		if err := withTx(context.Background(), db, func(*sql.Tx) error { return nil }); err != nil {
			t.Fatalf("withTx returned error: %v", err)
		}
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Fatalf("unmet expectations: %v", err)
		}
	})

	t.Run("rolls back on error", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectBegin()
		mock.ExpectRollback()

		boom := errors.New("boom")
		if err := withTx(context.Background(), db, func(*sql.Tx) error { return boom }); !errors.Is(err, boom) {
			t.Fatalf("expected fn error back, got %v", err)
		}
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Fatalf("unmet expectations: %v", err)
		}
	})
}
