package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CartAction string

const (
	CartActionAdd    CartAction = "add"
	CartActionRemove CartAction = "remove"
)

// Delta is the quantity change applied by the action, zero when the action is unknown.
func (a CartAction) Delta() int {
	switch a {
	case CartActionAdd:
		return 1
	case CartActionRemove:
		return -1
	default:
		return 0
	}
}

func (a CartAction) Valid() bool {
	return a.Delta() != 0
}

type Customer struct {
	ID     int64      `json:"id"`
	UserID *uuid.UUID `json:"user_id,omitempty"`
	Name   string     `json:"name"`
	Email  *string    `json:"email,omitempty"`
}

// Order is a cart while IsCompleted is false and a checked-out order afterwards.
type Order struct {
	ID          int64     `json:"id"`
	CustomerID  *int64    `json:"customer_id,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	IsCompleted bool      `json:"is_completed"`
}

type OrderProduct struct {
	ID        int64     `json:"id"`
	OrderID   int64     `json:"order_id"`
	ProductID int64     `json:"product_id"`
	Quantity  int       `json:"quantity"`
	AddedAt   time.Time `json:"added_at"`
}

// CartLine is an order line joined with the product's current display data.
type CartLine struct {
	OrderProductID int64           `json:"order_product_id"`
	ProductID      int64           `json:"product_id"`
	Title          string          `json:"title"`
	Slug           string          `json:"slug"`
	Price          decimal.Decimal `json:"price"`
	Image          string          `json:"image"`
	Quantity       int             `json:"quantity"`
	AddedAt        time.Time       `json:"added_at"`
	Total          decimal.Decimal `json:"total"`
}

type CartData struct {
	Products          []CartLine      `json:"products"`
	Order             *Order          `json:"order"`
	CartTotalPrice    decimal.Decimal `json:"cart_total_price"`
	CartTotalQuantity int             `json:"cart_total_quantity"`
}

// NewCartData computes line and cart totals from the current line prices.
func NewCartData(order *Order, lines []CartLine) *CartData {
	if lines == nil {
		lines = []CartLine{}
	}

	for i := range lines {
		lines[i].Total = LineTotal(lines[i].Price, lines[i].Quantity)
	}

	price, quantity := CartTotals(lines)

	return &CartData{
		Products:          lines,
		Order:             order,
		CartTotalPrice:    price,
		CartTotalQuantity: quantity,
	}
}

// EmptyCart is the read model of a user without an active order.
func EmptyCart() *CartData {
	return NewCartData(nil, nil)
}

func (c *CartData) IsEmpty() bool {
	return len(c.Products) == 0
}

func LineTotal(price decimal.Decimal, quantity int) decimal.Decimal {
	return price.Mul(decimal.NewFromInt(int64(quantity)))
}

func CartTotals(lines []CartLine) (decimal.Decimal, int) {
	total := decimal.Zero
	quantity := 0

	for _, line := range lines {
		total = total.Add(LineTotal(line.Price, line.Quantity))
		quantity += line.Quantity
	}

	return total, quantity
}

// MinorUnits converts an amount to integer cents, rounding half away from zero.
func MinorUnits(amount decimal.Decimal) int64 {
	return amount.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}

type ShippingAddress struct {
	ID         int64     `json:"id"`
	CustomerID *int64    `json:"customer_id,omitempty"`
	OrderID    *int64    `json:"order_id,omitempty"`
	City       string    `json:"city"`
	Street     string    `json:"street"`
	Address    string    `json:"address"`
	CreatedAt  time.Time `json:"created_at"`
}

type CheckoutRequest struct {
	Name    string `json:"name" validate:"omitempty,max=50"`
	Email   string `json:"email" validate:"omitempty,email"`
	City    string `json:"city" validate:"required_with=Street Address,max=255"`
	Street  string `json:"street" validate:"required_with=City Address,max=255"`
	Address string `json:"address" validate:"required_with=City Street,max=255"`
}

func (r *CheckoutRequest) HasShippingAddress() bool {
	return r.City != "" && r.Street != "" && r.Address != ""
}

type CheckoutResponse struct {
	OrderID       int64           `json:"order_id"`
	SessionID     string          `json:"session_id"`
	RedirectURL   string          `json:"redirect_url"`
	TotalPrice    decimal.Decimal `json:"total_price"`
	TotalQuantity int             `json:"total_quantity"`
}

// OrderConfirmation is what the customer is told once the payment gateway reports a paid session.
type OrderConfirmation struct {
	OrderID     int64
	SessionID   string
	Name        string
	Email       string
	AmountTotal int64
	Currency    string
}
