package service

import (
	"context"
	stdErrors "errors"
	"log/slog"

	"github.com/aaravmahajanofficial/storefront/internal/config"
	"github.com/aaravmahajanofficial/storefront/internal/errors"
	"github.com/aaravmahajanofficial/storefront/internal/metrics"
	"github.com/aaravmahajanofficial/storefront/internal/models"
	repository "github.com/aaravmahajanofficial/storefront/internal/repositories"
	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
)

type CartService interface {
	ModifyCart(ctx context.Context, userID uuid.UUID, productID int64, action models.CartAction) error
	GetCartData(ctx context.Context, userID uuid.UUID) (*models.CartData, error)
}

type cartService struct {
	orders  repository.OrderRepository
	catalog repository.CatalogRepository
	retry   config.CartConfig
}

func NewCartService(orders repository.OrderRepository, catalog repository.CatalogRepository, retry config.CartConfig) CartService {
	return &cartService{orders: orders, catalog: catalog, retry: retry}
}

func (s *cartService) newBackOff(ctx context.Context) backoff.BackOff {
	eb := backoff.NewExponentialBackOff()
	eb.InitialInterval = s.retry.InitialDelay
	eb.MaxInterval = s.retry.MaxDelay
	eb.MaxElapsedTime = 0

	return backoff.WithContext(backoff.WithMaxRetries(eb, s.retry.MaxRetries), ctx)
}

// ModifyCart adds or removes one unit of the product in the user's active cart.
// Removing a product that is not in the cart changes nothing.
func (s *cartService) ModifyCart(ctx context.Context, userID uuid.UUID, productID int64, action models.CartAction) error {

	ctx, span := tracer.Start(ctx, "CartService.ModifyCart")
	span.SetAttributes(attribute.Int64("product.id", productID), attribute.String("cart.action", string(action)))
	var err error
	defer func() { endSpan(span, err) }()

	if userID == uuid.Nil {
		err = errors.AuthorizationError("Authentication required")
		return err
	}

	if !action.Valid() {
		err = errors.AddValidationError("action", "must be one of [add remove]")
		return err
	}

	if _, err = s.catalog.GetProductByID(ctx, productID); err != nil {
		if stdErrors.Is(err, repository.ErrNotFound) {
			return errors.NotFoundError("Product not found").WithError(err)
		}
		return errors.DatabaseError("Failed to fetch product").WithError(err)
	}

	attempt := 0
	err = backoff.Retry(func() error {
		attempt++
		if attempt > 1 {
			metrics.ObserveCartRetry()
		}

		_, applyErr := s.orders.ApplyLineDelta(ctx, userID, productID, action)
		if applyErr == nil || repository.IsRetryable(applyErr) {
			return applyErr
		}

		return backoff.Permanent(applyErr)
	}, s.newBackOff(ctx))

	if err != nil {
		metrics.ObserveCartMutation(string(action), "error")

		switch {
		case stdErrors.Is(err, repository.ErrNotFound):
			return errors.NotFoundError("Product not found").WithError(err)
		case repository.IsRetryable(err):
			slog.Warn("Cart mutation kept conflicting",
				slog.String("userID", userID.String()),
				slog.Int64("productID", productID),
				slog.Int("attempts", attempt),
			)
			return errors.ConflictError("Cart was modified concurrently, please retry").WithError(err)
		default:
			return errors.DatabaseError("Failed to update cart").WithError(err)
		}
	}

	metrics.ObserveCartMutation(string(action), "ok")
	return nil
}

// GetCartData never creates rows; a user without an active order gets an empty cart.
func (s *cartService) GetCartData(ctx context.Context, userID uuid.UUID) (*models.CartData, error) {

	ctx, span := tracer.Start(ctx, "CartService.GetCartData")
	var err error
	defer func() { endSpan(span, err) }()

	if userID == uuid.Nil {
		err = errors.AuthorizationError("Authentication required")
		return nil, err
	}

	order, err := s.orders.GetActiveOrder(ctx, userID)
	if err != nil {
		if stdErrors.Is(err, repository.ErrNotFound) {
			err = nil
			return models.EmptyCart(), nil
		}
		return nil, errors.DatabaseError("Failed to fetch cart").WithError(err)
	}

	lines, err := s.orders.FindLinesByOrder(ctx, order.ID)
	if err != nil {
		return nil, errors.DatabaseError("Failed to fetch cart items").WithError(err)
	}

	return models.NewCartData(order, lines), nil
}
