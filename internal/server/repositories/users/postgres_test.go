package users

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/recetario/internal/common"
	"github.com/dmitrijs2005/recetario/internal/server/models"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewPostgresRepository(db), mock
}

const insertQuery = `(?s)^INSERT\s+INTO\s+users\s*\(username,\s*email,\s*hashed_password\)\s*VALUES\s*\(\$1,\s*\$2,\s*\$3\)\s*RETURNING\s+id,\s*created_at$`

func TestCreate_Success(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	mock.ExpectQuery(insertQuery).
		WithArgs("alice", "alice@example.com", "hash").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(int64(42), now))

	got, err := repo.Create(context.Background(), &models.User{Username: "alice", Email: "alice@example.com", HashedPassword: "hash"})
	require.NoError(t, err)
	assert.Equal(t, int64(42), got.ID)
	assert.Equal(t, now, got.CreatedAt)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_Errors(t *testing.T) {
	tests := []struct {
		name    string
		dbErr   error
		wantIs  error
		wantMsg string
	}{
		{name: "duplicate", dbErr: &pgconn.PgError{Code: "23505"}, wantIs: common.ErrorAlreadyExists},
		{name: "other", dbErr: errors.New("db down"), wantMsg: "db error: db down"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newRepoWithMock(t)
			mock.ExpectQuery(insertQuery).WillReturnError(tt.dbErr)

			_, err := repo.Create(context.Background(), &models.User{Username: "alice"})
			require.Error(t, err)
			if tt.wantIs != nil {
				assert.ErrorIs(t, err, tt.wantIs)
			}
			if tt.wantMsg != "" {
				assert.EqualError(t, err, tt.wantMsg)
			}
		})
	}
}

func TestGetByUsername(t *testing.T) {
	q := `(?s)^SELECT\s+id,\s*username,\s*email,\s*hashed_password,\s*created_at\s+FROM\s+users\s+WHERE\s+username\s*=\s*\$1$`
	cols := []string{"id", "username", "email", "hashed_password", "created_at"}

	t.Run("found", func(t *testing.T) {
		repo, mock := newRepoWithMock(t)
		mock.ExpectQuery(q).WithArgs("alice").
			WillReturnRows(sqlmock.NewRows(cols).AddRow(int64(1), "alice", "a@x", "hash", time.Now()))

		got, err := repo.GetByUsername(context.Background(), "alice")
		require.NoError(t, err)
		assert.Equal(t, int64(1), got.ID)
		assert.Equal(t, "hash", got.HashedPassword)
	})

	t.Run("not found", func(t *testing.T) {
		repo, mock := newRepoWithMock(t)
		mock.ExpectQuery(q).WithArgs("ghost").WillReturnError(sql.ErrNoRows)

		_, err := repo.GetByUsername(context.Background(), "ghost")
		assert.ErrorIs(t, err, common.ErrorNotFound)
	})
}

func TestGetByID(t *testing.T) {
	q := `(?s)^SELECT\s+id,.*FROM\s+users\s+WHERE\s+id\s*=\s*\$1$`

	t.Run("found", func(t *testing.T) {
		repo, mock := newRepoWithMock(t)
		mock.ExpectQuery(q).WithArgs(int64(7)).
			WillReturnRows(sqlmock.NewRows([]string{"id", "username", "email", "hashed_password", "created_at"}).
				AddRow(int64(7), "bob", "b@x", "h", time.Now()))

		got, err := repo.GetByID(context.Background(), 7)
		require.NoError(t, err)
		assert.Equal(t, "bob", got.Username)
	})

	t.Run("db error", func(t *testing.T) {
		repo, mock := newRepoWithMock(t)
		mock.ExpectQuery(q).WithArgs(int64(7)).WillReturnError(errors.New("boom"))

		_, err := repo.GetByID(context.Background(), 7)
		require.Error(t, err)
		assert.NotErrorIs(t, err, common.ErrorNotFound)
	})
}
