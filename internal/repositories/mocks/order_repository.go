package mocks

import (
	"context"

	"github.com/aaravmahajanofficial/storefront/internal/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

type OrderRepository struct {
	mock.Mock
}

func (m *OrderRepository) GetActiveOrder(ctx context.Context, userID uuid.UUID) (*models.Order, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Order), args.Error(1)
}

func (m *OrderRepository) GetOrderByID(ctx context.Context, id int64) (*models.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Order), args.Error(1)
}

func (m *OrderRepository) FindLinesByOrder(ctx context.Context, orderID int64) ([]models.CartLine, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.CartLine), args.Error(1)
}

func (m *OrderRepository) ApplyLineDelta(ctx context.Context, userID uuid.UUID, productID int64, action models.CartAction) (*models.OrderProduct, error) {
	args := m.Called(ctx, userID, productID, action)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.OrderProduct), args.Error(1)
}

func (m *OrderRepository) CompleteOrder(ctx context.Context, orderID int64, quantity int, total decimal.Decimal) error {
	args := m.Called(ctx, orderID, quantity, total)
	return args.Error(0)
}

func (m *OrderRepository) SaveShippingAddress(ctx context.Context, address *models.ShippingAddress) error {
	args := m.Called(ctx, address)
	return args.Error(0)
}
