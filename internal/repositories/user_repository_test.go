package repository_test

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/aaravmahajanofficial/storefront/internal/models"
	repository "github.com/aaravmahajanofficial/storefront/internal/repositories"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return db, mock
}

func TestNewUserRepo(t *testing.T) {
	db, _ := newMockDB(t)

	repo := repository.NewUserRepo(db)
	assert.NotNil(t, repo, "NewUserRepo should return a non-nil repository")
}

func TestUserRepository(t *testing.T) {
	ctx := context.Background()
	userColumns := []string{"id", "username", "email", "password", "created_at", "updated_at"}

	t.Run("CreateUser_Success", func(t *testing.T) {
		// Arrange
		db, mock := newMockDB(t)
		repo := repository.NewUserRepo(db)

		user := &models.User{Username: "testuser", Email: "test@example.com", Password: "hashedpassword"}
		now := time.Now()
		newID := uuid.New()

		mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO users(username, email, password, created_at, updated_at)")).
			WithArgs(user.Username, user.Email, user.Password).
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(newID.String(), now, now))

		// Act
		err := repo.CreateUser(ctx, user)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, newID, user.ID)
		assert.WithinDuration(t, now, user.CreatedAt, time.Second)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("CreateUser_Error", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := repository.NewUserRepo(db)
		dbError := errors.New("database insertion error")

		mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO users")).WillReturnError(dbError)

		err := repo.CreateUser(ctx, &models.User{Username: "u", Email: "e@example.com", Password: "p"})

		assert.ErrorIs(t, err, dbError)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("GetUserByEmail_Found", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := repository.NewUserRepo(db)
		id := uuid.New()
		now := time.Now()

		mock.ExpectQuery(regexp.QuoteMeta("FROM users")).
			WithArgs("test@example.com").
			WillReturnRows(sqlmock.NewRows(userColumns).AddRow(id.String(), "testuser", "test@example.com", "hash", now, now))

		user, err := repo.GetUserByEmail(ctx, "test@example.com")

		require.NoError(t, err)
		assert.Equal(t, id, user.ID)
		assert.Equal(t, "hash", user.Password)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("GetUserByEmail_NotFound", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := repository.NewUserRepo(db)

		mock.ExpectQuery(regexp.QuoteMeta("FROM users")).WithArgs("ghost@example.com").WillReturnError(sql.ErrNoRows)

		user, err := repo.GetUserByEmail(ctx, "ghost@example.com")

		assert.Nil(t, user)
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})

	t.Run("GetUserById_Found", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := repository.NewUserRepo(db)
		id := uuid.New()
		now := time.Now()

		mock.ExpectQuery(regexp.QuoteMeta("WHERE id = $1")).
			WithArgs(id).
			WillReturnRows(sqlmock.NewRows([]string{"id", "username", "email", "created_at", "updated_at"}).
				AddRow(id.String(), "testuser", "test@example.com", now, now))

		user, err := repo.GetUserById(ctx, id)

		require.NoError(t, err)
		assert.Equal(t, "testuser", user.Username)
		assert.Empty(t, user.Password)
	})

	t.Run("GetUserById_NotFound", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := repository.NewUserRepo(db)
		id := uuid.New()

		mock.ExpectQuery(regexp.QuoteMeta("WHERE id = $1")).WithArgs(id).WillReturnError(sql.ErrNoRows)

		user, err := repo.GetUserById(ctx, id)

		assert.Nil(t, user)
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})
}
