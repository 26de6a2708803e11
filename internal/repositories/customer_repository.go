package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/aaravmahajanofficial/storefront/internal/models"
	"github.com/aaravmahajanofficial/storefront/internal/utils"
	"github.com/google/uuid"
)

type CustomerRepository interface {
	GetOrCreateByUserID(ctx context.Context, userID uuid.UUID) (*models.Customer, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) (*models.Customer, error)
	FindByOrderID(ctx context.Context, orderID int64) (*models.Customer, error)
	UpdateContact(ctx context.Context, customerID int64, name, email string) error
}

type customerRepository struct {
	DB *sql.DB
}

func NewCustomerRepo(db *sql.DB) CustomerRepository {
	return &customerRepository{DB: db}
}

const customerColumns = `id, user_id, name, email`

func scanCustomer(row interface{ Scan(dest ...any) error }) (*models.Customer, error) {
	customer := &models.Customer{}
	if err := row.Scan(&customer.ID, &customer.UserID, &customer.Name, &customer.Email); err != nil {
		return nil, err
	}
	return customer, nil
}

// getOrCreateCustomer never inserts a second row for the same user, even under concurrent callers.
func getOrCreateCustomer(ctx context.Context, q queryer, userID uuid.UUID) (*models.Customer, error) {

	insert := `INSERT INTO customers (user_id) VALUES ($1) ON CONFLICT (user_id) DO NOTHING`
	if _, err := q.ExecContext(ctx, insert, userID); err != nil {
		return nil, fmt.Errorf("failed to create customer: %w", err)
	}

	query := `SELECT ` + customerColumns + ` FROM customers WHERE user_id = $1`
	customer, err := scanCustomer(q.QueryRowContext(ctx, query, userID))
	if err != nil {
		return nil, fmt.Errorf("failed to load customer: %w", err)
	}

	return customer, nil
}

func (r *customerRepository) GetOrCreateByUserID(ctx context.Context, userID uuid.UUID) (*models.Customer, error) {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	return getOrCreateCustomer(dbCtx, r.DB, userID)
}

func (r *customerRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*models.Customer, error) {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `SELECT ` + customerColumns + ` FROM customers WHERE user_id = $1`

	customer, err := scanCustomer(r.DB.QueryRowContext(dbCtx, query, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get customer: %w", err)
	}

	return customer, nil
}

func (r *customerRepository) FindByOrderID(ctx context.Context, orderID int64) (*models.Customer, error) {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		SELECT c.id, c.user_id, c.name, c.email
		FROM customers c
		JOIN orders o ON o.customer_id = c.id
		WHERE o.id = $1`

	customer, err := scanCustomer(r.DB.QueryRowContext(dbCtx, query, orderID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get customer for order: %w", err)
	}

	return customer, nil
}

// UpdateContact overwrites only the non-empty fields.
func (r *customerRepository) UpdateContact(ctx context.Context, customerID int64, name, email string) error {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		UPDATE customers
		SET name = COALESCE(NULLIF($1, ''), name),
			email = COALESCE(NULLIF($2, ''), email)
		WHERE id = $3`

	result, err := r.DB.ExecContext(dbCtx, query, name, email, customerID)
	if err != nil {
		return fmt.Errorf("failed to update customer: %w", err)
	}

	updatedRows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get updated rows: %w", err)
	}

	if updatedRows == 0 {
		return ErrNotFound
	}

	return nil
}
