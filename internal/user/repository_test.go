package user

import (
	"context"
	"io"
	"log/slog"
	"regexp"
	"testing"

	"starwars-catalog/internal/shared/database"
	"starwars-catalog/internal/shared/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var userRowColumns = []string{"id", "email", "password", "is_active"}

func newTestRepository(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	return NewRepository(database.New(sqlDB), slog.New(slog.NewTextHandler(io.Discard, nil))), mock
}

func TestRepositoryRejectsDuplicateEmail(t *testing.T) {
	repo, mock := newTestRepository(t)
	insert := regexp.QuoteMeta("INSERT INTO users (email, password, is_active)")

	mock.ExpectQuery(insert).
		WithArgs("a@b.com", "hash", true).
		WillReturnRows(sqlmock.NewRows(userRowColumns).AddRow(1, "a@b.com", "hash", true))
	mock.ExpectQuery(insert).
		WithArgs("a@b.com", "other", true).
		WillReturnError(&pq.Error{Code: "23505", Constraint: "users_email_key"})

	ctx := context.Background()
	first, err := repo.Create(ctx, User{Email: "a@b.com", Password: "hash", IsActive: true}, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, first.ID)

	_, err = repo.Create(ctx, User{Email: "a@b.com", Password: "other", IsActive: true}, nil)
	require.Error(t, err)
	assert.Equal(t, errors.ErrorTypeConflict, errors.GetType(err))
	assert.Contains(t, err.Error(), "users_email_key")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepositoryGetByIDNotFound(t *testing.T) {
	repo, mock := newTestRepository(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE id = $1")).
		WithArgs(3).
		WillReturnRows(sqlmock.NewRows(userRowColumns))

	_, err := repo.GetByID(context.Background(), 3)
	assert.Equal(t, errors.ErrorTypeNotFound, errors.GetType(err))
}

func TestRepositorySetActive(t *testing.T) {
	repo, mock := newTestRepository(t)

	mock.ExpectQuery(regexp.QuoteMeta("UPDATE users SET is_active = $2 WHERE id = $1")).
		WithArgs(1, false).
		WillReturnRows(sqlmock.NewRows(userRowColumns).AddRow(1, "a@b.com", "hash", false))

	u, err := repo.SetActive(context.Background(), 1, false)
	require.NoError(t, err)
	assert.False(t, u.IsActive)
}

func TestRepositoryDelete(t *testing.T) {
	repo, mock := newTestRepository(t)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM users WHERE id = $1")).
		WithArgs(1).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Delete(context.Background(), 1))
	assert.NoError(t, mock.ExpectationsWereMet())
}
