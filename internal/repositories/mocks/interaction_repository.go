package mocks

import (
	"context"

	"github.com/aaravmahajanofficial/storefront/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type InteractionRepository struct {
	mock.Mock
}

func (m *InteractionRepository) ToggleLike(ctx context.Context, userID uuid.UUID, productID int64) (bool, error) {
	args := m.Called(ctx, userID, productID)
	return args.Bool(0), args.Error(1)
}

func (m *InteractionRepository) ListLikedProducts(ctx context.Context, userID uuid.UUID) ([]*models.Product, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Product), args.Error(1)
}

func (m *InteractionRepository) CreateComment(ctx context.Context, userID uuid.UUID, comment *models.Comment) error {
	args := m.Called(ctx, userID, comment)
	return args.Error(0)
}

func (m *InteractionRepository) ListComments(ctx context.Context, productID int64) ([]*models.Comment, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Comment), args.Error(1)
}
