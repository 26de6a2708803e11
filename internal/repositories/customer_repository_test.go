package repository_test

import (
	"context"
	"database/sql"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	repository "github.com/aaravmahajanofficial/storefront/internal/repositories"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var customerColumns = []string{"id", "user_id", "name", "email"}

func TestCustomerRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("GetOrCreateByUserID_InsertsOnce", func(t *testing.T) {
		// Arrange
		db, mock := newMockDB(t)
		repo := repository.NewCustomerRepo(db)
		userID := uuid.New()

		mock.ExpectExec(regexp.QuoteMeta("ON CONFLICT (user_id) DO NOTHING")).
			WithArgs(userID).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery(regexp.QuoteMeta("FROM customers WHERE user_id = $1")).
			WithArgs(userID).
			WillReturnRows(sqlmock.NewRows(customerColumns).AddRow(int64(4), userID.String(), "", nil))

		// Act
		customer, err := repo.GetOrCreateByUserID(ctx, userID)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, int64(4), customer.ID)
		assert.Equal(t, userID, *customer.UserID)
		assert.Nil(t, customer.Email)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("FindByUserID_NotFound", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := repository.NewCustomerRepo(db)
		userID := uuid.New()

		mock.ExpectQuery(regexp.QuoteMeta("FROM customers WHERE user_id = $1")).WithArgs(userID).WillReturnError(sql.ErrNoRows)

		customer, err := repo.FindByUserID(ctx, userID)

		assert.Nil(t, customer)
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})

	t.Run("FindByOrderID_Found", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := repository.NewCustomerRepo(db)

		mock.ExpectQuery(regexp.QuoteMeta("JOIN orders o ON o.customer_id = c.id")).
			WithArgs(int64(9)).
			WillReturnRows(sqlmock.NewRows(customerColumns).AddRow(int64(4), nil, "Ann", "ann@example.com"))

		customer, err := repo.FindByOrderID(ctx, 9)

		require.NoError(t, err)
		assert.Equal(t, "Ann", customer.Name)
		assert.Equal(t, "ann@example.com", *customer.Email)
		assert.Nil(t, customer.UserID)
	})

	t.Run("UpdateContact_Missing", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := repository.NewCustomerRepo(db)

		mock.ExpectExec(regexp.QuoteMeta("UPDATE customers")).
			WithArgs("Ann", "", int64(4)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.UpdateContact(ctx, 4, "Ann", "")

		assert.ErrorIs(t, err, repository.ErrNotFound)
	})

	t.Run("UpdateContact_Success", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := repository.NewCustomerRepo(db)

		mock.ExpectExec(regexp.QuoteMeta("UPDATE customers")).
			WithArgs("Ann", "ann@example.com", int64(4)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.UpdateContact(ctx, 4, "Ann", "ann@example.com"))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
