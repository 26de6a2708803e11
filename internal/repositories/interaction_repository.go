package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/aaravmahajanofficial/storefront/internal/models"
	"github.com/aaravmahajanofficial/storefront/internal/utils"
	"github.com/google/uuid"
)

type InteractionRepository interface {
	ToggleLike(ctx context.Context, userID uuid.UUID, productID int64) (bool, error)
	ListLikedProducts(ctx context.Context, userID uuid.UUID) ([]*models.Product, error)
	CreateComment(ctx context.Context, userID uuid.UUID, comment *models.Comment) error
	ListComments(ctx context.Context, productID int64) ([]*models.Comment, error)
}

type interactionRepository struct {
	DB *sql.DB
}

func NewInteractionRepo(db *sql.DB) InteractionRepository {
	return &interactionRepository{DB: db}
}

// ToggleLike removes the like if it exists and creates it otherwise. It reports
// whether the product is liked afterwards.
func (r *interactionRepository) ToggleLike(ctx context.Context, userID uuid.UUID, productID int64) (bool, error) {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	var liked bool

	err := withTx(dbCtx, r.DB, func(tx *sql.Tx) error {

		// serialises toggles of the same pair, including the first one when no row exists yet
		lockKey := fmt.Sprintf("likes:%s:%d", userID, productID)
		if _, err := tx.ExecContext(dbCtx, `SELECT pg_advisory_xact_lock(hashtext($1))`, lockKey); err != nil {
			return fmt.Errorf("failed to lock like: %w", err)
		}

		result, err := tx.ExecContext(dbCtx, `DELETE FROM likes WHERE user_id = $1 AND product_id = $2`, userID, productID)
		if err != nil {
			return fmt.Errorf("failed to delete like: %w", err)
		}

		deleted, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to get deleted rows: %w", err)
		}

		if deleted > 0 {
			liked = false
			return nil
		}

		insert := `INSERT INTO likes (user_id, product_id) VALUES ($1, $2) ON CONFLICT (user_id, product_id) DO NOTHING`
		if _, err := tx.ExecContext(dbCtx, insert, userID, productID); err != nil {
			return fmt.Errorf("failed to create like: %w", err)
		}

		liked = true
		return nil
	})
	if err != nil {
		if IsForeignKeyViolation(err) {
			return false, ErrNotFound
		}
		return false, err
	}

	return liked, nil
}

func (r *interactionRepository) ListLikedProducts(ctx context.Context, userID uuid.UUID) ([]*models.Product, error) {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		SELECT ` + productColumns + `
		FROM likes l
		JOIN products p ON p.id = l.product_id
		WHERE l.user_id = $1
		ORDER BY l.id DESC`

	rows, err := r.DB.QueryContext(dbCtx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list liked products: %w", err)
	}

	products, err := scanProducts(rows)
	if err != nil {
		return nil, err
	}

	if err := attachPhotos(dbCtx, r.DB, products); err != nil {
		return nil, err
	}

	return products, nil
}

// CreateComment stores the comment under the user's customer, creating the customer if needed.
func (r *interactionRepository) CreateComment(ctx context.Context, userID uuid.UUID, comment *models.Comment) error {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	err := withTx(dbCtx, r.DB, func(tx *sql.Tx) error {

		customer, err := getOrCreateCustomer(dbCtx, tx, userID)
		if err != nil {
			return err
		}

		query := `
			INSERT INTO comments (product_id, customer_id, text, created_at)
			VALUES ($1, $2, $3, NOW())
			RETURNING id, created_at`

		if err := tx.QueryRowContext(dbCtx, query, comment.ProductID, customer.ID, comment.Text).Scan(&comment.ID, &comment.CreatedAt); err != nil {
			return fmt.Errorf("failed to create comment: %w", err)
		}

		comment.CustomerID = &customer.ID
		comment.Author = customer.Name
		return nil
	})
	if err != nil {
		if IsForeignKeyViolation(err) {
			return ErrNotFound
		}
		return err
	}

	return nil
}

// ListComments returns the product's comments, newest first.
func (r *interactionRepository) ListComments(ctx context.Context, productID int64) ([]*models.Comment, error) {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		SELECT cm.id, cm.product_id, cm.customer_id, COALESCE(c.name, ''), cm.text, cm.created_at
		FROM comments cm
		LEFT JOIN customers c ON c.id = cm.customer_id
		WHERE cm.product_id = $1
		ORDER BY cm.created_at DESC, cm.id DESC`

	rows, err := r.DB.QueryContext(dbCtx, query, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	defer rows.Close()

	comments := []*models.Comment{}
	for rows.Next() {
		c := &models.Comment{}
		if err := rows.Scan(&c.ID, &c.ProductID, &c.CustomerID, &c.Author, &c.Text, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan comment: %w", err)
		}
		comments = append(comments, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating comments: %w", err)
	}

	return comments, nil
}
