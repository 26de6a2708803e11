package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/aaravmahajanofficial/storefront/internal/models"
	"github.com/aaravmahajanofficial/storefront/internal/utils"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type OrderRepository interface {
	GetActiveOrder(ctx context.Context, userID uuid.UUID) (*models.Order, error)
	GetOrderByID(ctx context.Context, id int64) (*models.Order, error)
	FindLinesByOrder(ctx context.Context, orderID int64) ([]models.CartLine, error)
	ApplyLineDelta(ctx context.Context, userID uuid.UUID, productID int64, action models.CartAction) (*models.OrderProduct, error)
	CompleteOrder(ctx context.Context, orderID int64, quantity int, total decimal.Decimal) error
	SaveShippingAddress(ctx context.Context, address *models.ShippingAddress) error
}

type orderRepository struct {
	DB *sql.DB
}

func NewOrderRepo(db *sql.DB) OrderRepository {
	return &orderRepository{DB: db}
}

const orderColumns = `o.id, o.customer_id, o.created_at, o.is_completed`

const orderProductColumns = `id, order_id, product_id, quantity, added_at`

func scanOrder(row interface{ Scan(dest ...any) error }) (*models.Order, error) {
	order := &models.Order{}
	if err := row.Scan(&order.ID, &order.CustomerID, &order.CreatedAt, &order.IsCompleted); err != nil {
		return nil, err
	}
	return order, nil
}

func scanOrderProduct(row interface{ Scan(dest ...any) error }) (*models.OrderProduct, error) {
	line := &models.OrderProduct{}
	if err := row.Scan(&line.ID, &line.OrderID, &line.ProductID, &line.Quantity, &line.AddedAt); err != nil {
		return nil, err
	}
	return line, nil
}

// GetActiveOrder only reads; a user without an open order gets ErrNotFound.
func (r *orderRepository) GetActiveOrder(ctx context.Context, userID uuid.UUID) (*models.Order, error) {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		SELECT ` + orderColumns + `
		FROM orders o
		JOIN customers c ON c.id = o.customer_id
		WHERE c.user_id = $1 AND o.is_completed = FALSE`

	order, err := scanOrder(r.DB.QueryRowContext(dbCtx, query, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get active order: %w", err)
	}

	return order, nil
}

func (r *orderRepository) GetOrderByID(ctx context.Context, id int64) (*models.Order, error) {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `SELECT ` + orderColumns + ` FROM orders o WHERE o.id = $1`

	order, err := scanOrder(r.DB.QueryRowContext(dbCtx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	return order, nil
}

// FindLinesByOrder joins every line with the product's current title, price and first photo.
func (r *orderRepository) FindLinesByOrder(ctx context.Context, orderID int64) ([]models.CartLine, error) {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		SELECT op.id, op.product_id, p.title, p.slug, p.price, op.quantity, op.added_at,
			COALESCE((SELECT g.image FROM galleries g WHERE g.product_id = p.id ORDER BY g.id LIMIT 1), '')
		FROM order_products op
		JOIN products p ON p.id = op.product_id
		WHERE op.order_id = $1
		ORDER BY op.added_at, op.id`

	rows, err := r.DB.QueryContext(dbCtx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to query order lines: %w", err)
	}
	defer rows.Close()

	lines := []models.CartLine{}
	for rows.Next() {
		var line models.CartLine
		if err := rows.Scan(&line.OrderProductID, &line.ProductID, &line.Title, &line.Slug, &line.Price, &line.Quantity, &line.AddedAt, &line.Image); err != nil {
			return nil, fmt.Errorf("failed to scan order line: %w", err)
		}
		if line.Image == "" {
			line.Image = models.PlaceholderPhotoURL
		}
		lines = append(lines, line)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating order lines: %w", err)
	}

	return lines, nil
}

// ApplyLineDelta resolves the customer and the active order, locks the order row and
// moves the product's line quantity by one in the action's direction, all in one
// transaction. The returned line is nil when the line no longer exists.
func (r *orderRepository) ApplyLineDelta(ctx context.Context, userID uuid.UUID, productID int64, action models.CartAction) (*models.OrderProduct, error) {

	if !action.Valid() {
		return nil, fmt.Errorf("unsupported cart action %q", action)
	}

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	var line *models.OrderProduct

	err := withTx(dbCtx, r.DB, func(tx *sql.Tx) error {

		customer, err := getOrCreateCustomer(dbCtx, tx, userID)
		if err != nil {
			return err
		}

		order, err := lockActiveOrder(dbCtx, tx, customer.ID)
		if err != nil {
			return err
		}

		switch action {
		case models.CartActionAdd:
			line, err = incrementLine(dbCtx, tx, order.ID, productID)
		case models.CartActionRemove:
			line, err = decrementLine(dbCtx, tx, order.ID, productID)
		}

		return err
	})
	if err != nil {
		if IsForeignKeyViolation(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return line, nil
}

// lockActiveOrder returns the customer's open order, creating it if needed, and holds
// its row lock until the transaction ends.
func lockActiveOrder(ctx context.Context, tx *sql.Tx, customerID int64) (*models.Order, error) {

	insert := `
		INSERT INTO orders (customer_id, created_at, is_completed)
		VALUES ($1, NOW(), FALSE)
		ON CONFLICT (customer_id) WHERE is_completed = FALSE DO NOTHING`

	if _, err := tx.ExecContext(ctx, insert, customerID); err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	query := `
		SELECT ` + orderColumns + `
		FROM orders o
		WHERE o.customer_id = $1 AND o.is_completed = FALSE
		FOR UPDATE`

	order, err := scanOrder(tx.QueryRowContext(ctx, query, customerID))
	if err != nil {
		return nil, fmt.Errorf("failed to lock active order: %w", err)
	}

	return order, nil
}

func incrementLine(ctx context.Context, tx *sql.Tx, orderID, productID int64) (*models.OrderProduct, error) {

	query := `
		INSERT INTO order_products (order_id, product_id, quantity, added_at)
		VALUES ($1, $2, 1, NOW())
		ON CONFLICT (order_id, product_id)
		DO UPDATE SET quantity = order_products.quantity + 1
		RETURNING ` + orderProductColumns

	line, err := scanOrderProduct(tx.QueryRowContext(ctx, query, orderID, productID))
	if err != nil {
		return nil, fmt.Errorf("failed to add order line: %w", err)
	}

	return line, nil
}

// decrementLine never leaves a line below one: the last unit deletes the row and an
// absent line stays absent.
func decrementLine(ctx context.Context, tx *sql.Tx, orderID, productID int64) (*models.OrderProduct, error) {

	update := `
		UPDATE order_products
		SET quantity = quantity - 1
		WHERE order_id = $1 AND product_id = $2 AND quantity > 1
		RETURNING ` + orderProductColumns

	line, err := scanOrderProduct(tx.QueryRowContext(ctx, update, orderID, productID))
	if err == nil {
		return line, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("failed to decrement order line: %w", err)
	}

	del := `DELETE FROM order_products WHERE order_id = $1 AND product_id = $2`
	if _, err := tx.ExecContext(ctx, del, orderID, productID); err != nil {
		return nil, fmt.Errorf("failed to delete order line: %w", err)
	}

	return nil, nil
}

// CompleteOrder closes the order only if its lines still add up to the charged
// quantity and total at current prices. The order row stays locked from the
// check to the update, so no cart mutation can slip in between.
func (r *orderRepository) CompleteOrder(ctx context.Context, orderID int64, quantity int, total decimal.Decimal) error {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	return withTx(dbCtx, r.DB, func(tx *sql.Tx) error {

		lock := `SELECT ` + orderColumns + ` FROM orders o WHERE o.id = $1 AND o.is_completed = FALSE FOR UPDATE`

		if _, err := scanOrder(tx.QueryRowContext(dbCtx, lock, orderID)); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrOrderFinished
			}
			return fmt.Errorf("failed to lock order: %w", err)
		}

		totals := `
			SELECT COALESCE(SUM(op.quantity), 0), COALESCE(SUM(p.price * op.quantity), 0)
			FROM order_products op
			JOIN products p ON p.id = op.product_id
			WHERE op.order_id = $1`

		var currentQuantity int
		var currentTotal decimal.Decimal
		if err := tx.QueryRowContext(dbCtx, totals, orderID).Scan(&currentQuantity, &currentTotal); err != nil {
			return fmt.Errorf("failed to total order: %w", err)
		}

		if currentQuantity != quantity || !currentTotal.Equal(total) {
			return ErrCartChanged
		}

		if _, err := tx.ExecContext(dbCtx, `UPDATE orders SET is_completed = TRUE WHERE id = $1`, orderID); err != nil {
			return fmt.Errorf("failed to complete order: %w", err)
		}

		return nil
	})
}

func (r *orderRepository) SaveShippingAddress(ctx context.Context, address *models.ShippingAddress) error {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		INSERT INTO shipping_addresses (customer_id, order_id, city, street, address, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		RETURNING id, created_at`

	err := r.DB.QueryRowContext(dbCtx, query, address.CustomerID, address.OrderID, address.City, address.Street, address.Address).
		Scan(&address.ID, &address.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to save shipping address: %w", err)
	}

	return nil
}
