package repository_test

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/aaravmahajanofficial/storefront/internal/models"
	repository "github.com/aaravmahajanofficial/storefront/internal/repositories"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func expectLikeLock(mock sqlmock.Sqlmock, userID uuid.UUID, productID int64) {
	mock.ExpectExec(regexp.QuoteMeta("SELECT pg_advisory_xact_lock(hashtext($1))")).
		WithArgs(fmt.Sprintf("likes:%s:%d", userID, productID)).
		WillReturnResult(sqlmock.NewResult(0, 1))
}

func TestInteractionRepository_ToggleLike(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("CreatesMissingLike", func(t *testing.T) {
		// Arrange
		db, mock := newMockDB(t)
		repo := repository.NewInteractionRepo(db)

		mock.ExpectBegin()
		expectLikeLock(mock, userID, 3)
		mock.ExpectExec(regexp.QuoteMeta("DELETE FROM likes WHERE user_id = $1 AND product_id = $2")).
			WithArgs(userID, int64(3)).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO likes (user_id, product_id)")).
			WithArgs(userID, int64(3)).
			WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectCommit()

		// Act
		liked, err := repo.ToggleLike(ctx, userID, 3)

		// Assert
		require.NoError(t, err)
		assert.True(t, liked)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("RemovesExistingLike", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := repository.NewInteractionRepo(db)

		mock.ExpectBegin()
		expectLikeLock(mock, userID, 3)
		mock.ExpectExec(regexp.QuoteMeta("DELETE FROM likes")).
			WithArgs(userID, int64(3)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		liked, err := repo.ToggleLike(ctx, userID, 3)

		require.NoError(t, err)
		assert.False(t, liked)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("LockFailureRollsBack", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := repository.NewInteractionRepo(db)
		lockErr := errors.New("canceling statement due to lock timeout")

		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta("pg_advisory_xact_lock")).WillReturnError(lockErr)
		mock.ExpectRollback()

		liked, err := repo.ToggleLike(ctx, userID, 3)

		assert.False(t, liked)
		assert.ErrorIs(t, err, lockErr)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("UnknownProduct", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := repository.NewInteractionRepo(db)

		mock.ExpectBegin()
		expectLikeLock(mock, userID, 404)
		mock.ExpectExec(regexp.QuoteMeta("DELETE FROM likes")).
			WithArgs(userID, int64(404)).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO likes")).
			WithArgs(userID, int64(404)).
			WillReturnError(&pq.Error{Code: "23503"})
		mock.ExpectRollback()

		liked, err := repo.ToggleLike(ctx, userID, 404)

		assert.False(t, liked)
		assert.ErrorIs(t, err, repository.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestInteractionRepository_Comments(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("CreateComment_UsesCustomer", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := repository.NewInteractionRepo(db)
		now := time.Now()

		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO customers (user_id)")).
			WithArgs(userID).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery(regexp.QuoteMeta("FROM customers WHERE user_id = $1")).
			WithArgs(userID).
			WillReturnRows(sqlmock.NewRows(customerColumns).AddRow(int64(4), userID.String(), "Ann", "ann@example.com"))
		mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO comments (product_id, customer_id, text, created_at)")).
			WithArgs(int64(3), int64(4), "Lovely fabric").
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(int64(12), now))
		mock.ExpectCommit()

		comment := &models.Comment{ProductID: 3, Text: "Lovely fabric"}
		err := repo.CreateComment(ctx, userID, comment)

		require.NoError(t, err)
		assert.Equal(t, int64(12), comment.ID)
		require.NotNil(t, comment.CustomerID)
		assert.Equal(t, int64(4), *comment.CustomerID)
		assert.Equal(t, "Ann", comment.Author)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("CreateComment_UnknownProduct", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := repository.NewInteractionRepo(db)

		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO customers (user_id)")).
			WithArgs(userID).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery(regexp.QuoteMeta("FROM customers WHERE user_id = $1")).
			WithArgs(userID).
			WillReturnRows(sqlmock.NewRows(customerColumns).AddRow(int64(4), userID.String(), "", nil))
		mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO comments")).
			WillReturnError(&pq.Error{Code: "23503"})
		mock.ExpectRollback()

		err := repo.CreateComment(ctx, userID, &models.Comment{ProductID: 404, Text: "hi"})

		assert.ErrorIs(t, err, repository.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("ListComments", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := repository.NewInteractionRepo(db)

		mock.ExpectQuery(regexp.QuoteMeta("FROM comments cm")).
			WithArgs(int64(3)).
			WillReturnRows(sqlmock.NewRows([]string{"id", "product_id", "customer_id", "name", "text", "created_at"}).
				AddRow(int64(2), int64(3), int64(4), "Ann", "second", time.Now()).
				AddRow(int64(1), int64(3), nil, "", "first", time.Now().Add(-time.Hour)))

		comments, err := repo.ListComments(ctx, 3)

		require.NoError(t, err)
		require.Len(t, comments, 2)
		assert.Equal(t, "Ann", comments[0].Author)
		assert.Nil(t, comments[1].CustomerID)
	})

	t.Run("ListLikedProducts_Empty", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := repository.NewInteractionRepo(db)

		mock.ExpectQuery(regexp.QuoteMeta("FROM likes l")).
			WithArgs(userID).
			WillReturnRows(sqlmock.NewRows(productRowColumns))

		products, err := repo.ListLikedProducts(ctx, userID)

		require.NoError(t, err)
		assert.Empty(t, products)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
