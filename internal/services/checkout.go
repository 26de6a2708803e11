package service

import (
	"context"
	stdErrors "errors"
	"log/slog"
	"strconv"

	"github.com/aaravmahajanofficial/storefront/internal/config"
	"github.com/aaravmahajanofficial/storefront/internal/errors"
	"github.com/aaravmahajanofficial/storefront/internal/metrics"
	"github.com/aaravmahajanofficial/storefront/internal/models"
	repository "github.com/aaravmahajanofficial/storefront/internal/repositories"
	"github.com/aaravmahajanofficial/storefront/pkg/stripe"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
)

type CheckoutService interface {
	FinalizeCheckout(ctx context.Context, userID uuid.UUID, req *models.CheckoutRequest) (*models.CheckoutResponse, error)
	HandleWebhook(ctx context.Context, payload []byte, signature string) error
}

type checkoutService struct {
	cart      CartService
	orders    repository.OrderRepository
	customers repository.CustomerRepository
	payments  stripe.Client
	notifier  NotificationService
	cfg       config.Stripe
}

func NewCheckoutService(cart CartService, orders repository.OrderRepository, customers repository.CustomerRepository,
	payments stripe.Client, notifier NotificationService, cfg config.Stripe) CheckoutService {
	return &checkoutService{
		cart:      cart,
		orders:    orders,
		customers: customers,
		payments:  payments,
		notifier:  notifier,
		cfg:       cfg,
	}
}

// FinalizeCheckout opens a payment session for the whole cart as one aggregate
// line and completes the order only once the session exists.
func (s *checkoutService) FinalizeCheckout(ctx context.Context, userID uuid.UUID, req *models.CheckoutRequest) (*models.CheckoutResponse, error) {

	ctx, span := tracer.Start(ctx, "CheckoutService.FinalizeCheckout")
	var err error
	defer func() { endSpan(span, err) }()

	if userID == uuid.Nil {
		err = errors.AuthorizationError("Authentication required")
		return nil, err
	}

	if req == nil {
		req = &models.CheckoutRequest{}
	}

	cart, err := s.cart.GetCartData(ctx, userID)
	if err != nil {
		return nil, err
	}

	if cart.IsEmpty() || cart.Order == nil {
		err = errors.ValidationError("Cart is empty")
		return nil, err
	}

	order := cart.Order
	span.SetAttributes(attribute.Int64("order.id", order.ID), attribute.Int("cart.quantity", cart.CartTotalQuantity))

	if err = s.saveCheckoutDetails(ctx, userID, order, req); err != nil {
		return nil, err
	}

	session, err := s.payments.CreateCheckoutSession(ctx, &stripe.CheckoutSessionParams{
		Currency:          s.cfg.Currency,
		ProductName:       s.cfg.ProductName,
		UnitAmount:        models.MinorUnits(cart.CartTotalPrice),
		Quantity:          int64(cart.CartTotalQuantity),
		SuccessURL:        s.cfg.SuccessURL,
		CancelURL:         s.cfg.CancelURL,
		ClientReferenceID: strconv.FormatInt(order.ID, 10),
		CustomerEmail:     req.Email,
	})
	if err != nil {
		metrics.ObserveCheckoutSession("failed")
		return nil, errors.ThirdPartyError("Failed to create payment session").WithError(err)
	}

	if err = s.orders.CompleteOrder(ctx, order.ID, cart.CartTotalQuantity, cart.CartTotalPrice); err != nil {
		s.expireSession(ctx, order.ID, session.ID)

		switch {
		case stdErrors.Is(err, repository.ErrCartChanged):
			metrics.ObserveCheckoutSession("stale")
			return nil, errors.ConflictError("Cart changed during checkout, please retry").WithError(err)
		case stdErrors.Is(err, repository.ErrOrderFinished):
			metrics.ObserveCheckoutSession("orphaned")
			return nil, errors.ConflictError("Order was already checked out").WithError(err)
		default:
			metrics.ObserveCheckoutSession("orphaned")
			return nil, errors.DatabaseError("Failed to complete order").WithError(err)
		}
	}

	metrics.ObserveCheckoutSession("created")

	return &models.CheckoutResponse{
		OrderID:       order.ID,
		SessionID:     session.ID,
		RedirectURL:   session.URL,
		TotalPrice:    cart.CartTotalPrice,
		TotalQuantity: cart.CartTotalQuantity,
	}, nil
}

// expireSession voids a session whose order could not be completed. The
// caller already reports the failure, so a failed expiry is only logged.
func (s *checkoutService) expireSession(ctx context.Context, orderID int64, sessionID string) {
	if err := s.payments.ExpireCheckoutSession(ctx, sessionID); err != nil {
		slog.Warn("Failed to expire checkout session",
			slog.Int64("orderID", orderID),
			slog.String("sessionID", sessionID),
			slog.String("error", err.Error()),
		)
	}
}

func (s *checkoutService) saveCheckoutDetails(ctx context.Context, userID uuid.UUID, order *models.Order, req *models.CheckoutRequest) error {

	if req.Name == "" && req.Email == "" && !req.HasShippingAddress() {
		return nil
	}

	customer, err := s.customers.FindByUserID(ctx, userID)
	if err != nil {
		return errors.DatabaseError("Failed to fetch customer").WithError(err)
	}

	if req.Name != "" || req.Email != "" {
		if err := s.customers.UpdateContact(ctx, customer.ID, req.Name, req.Email); err != nil {
			return errors.DatabaseError("Failed to update customer").WithError(err)
		}
	}

	if req.HasShippingAddress() {
		address := &models.ShippingAddress{
			CustomerID: &customer.ID,
			OrderID:    &order.ID,
			City:       req.City,
			Street:     req.Street,
			Address:    req.Address,
		}
		if err := s.orders.SaveShippingAddress(ctx, address); err != nil {
			return errors.DatabaseError("Failed to save shipping address").WithError(err)
		}
	}

	return nil
}

// HandleWebhook verifies a gateway callback and confirms paid orders by email.
// Other event types are acknowledged and ignored.
func (s *checkoutService) HandleWebhook(ctx context.Context, payload []byte, signature string) error {

	ctx, span := tracer.Start(ctx, "CheckoutService.HandleWebhook")
	var err error
	defer func() { endSpan(span, err) }()

	event, err := s.payments.VerifyWebhookSignature(payload, signature)
	if err != nil {
		return errors.BadRequestError("Webhook signature verification failed").WithError(err)
	}

	span.SetAttributes(attribute.String("event.type", string(event.Type)))

	if event.Type != stripe.EventCheckoutSessionCompleted {
		slog.Debug("Ignoring webhook event", slog.String("type", string(event.Type)))
		return nil
	}

	session, err := stripe.CheckoutSessionFromEvent(event)
	if err != nil {
		return errors.BadRequestError("Malformed checkout session").WithError(err)
	}

	orderID, err := strconv.ParseInt(session.ClientReferenceID, 10, 64)
	if err != nil {
		return errors.BadRequestError("Checkout session has no order reference").WithError(err)
	}

	order, err := s.orders.GetOrderByID(ctx, orderID)
	if err != nil {
		if stdErrors.Is(err, repository.ErrNotFound) {
			return errors.NotFoundError("Order not found").WithError(err)
		}
		return errors.DatabaseError("Failed to fetch order").WithError(err)
	}

	// a non-2xx answer makes the gateway redeliver once checkout has committed
	if !order.IsCompleted {
		err = errors.ConflictError("Order is not checked out yet")
		return err
	}

	customer, err := s.customers.FindByOrderID(ctx, orderID)
	if err != nil {
		if stdErrors.Is(err, repository.ErrNotFound) {
			return errors.NotFoundError("Order not found").WithError(err)
		}
		return errors.DatabaseError("Failed to fetch order customer").WithError(err)
	}

	email := session.CustomerEmail
	if customer.Email != nil && *customer.Email != "" {
		email = *customer.Email
	}

	if email == "" {
		slog.Warn("Paid order has no email, skipping confirmation", slog.Int64("orderID", orderID))
		return nil
	}

	err = s.notifier.SendOrderConfirmation(ctx, &models.OrderConfirmation{
		OrderID:     orderID,
		SessionID:   session.ID,
		Name:        customer.Name,
		Email:       email,
		AmountTotal: session.AmountTotal,
		Currency:    session.Currency,
	})
	if err != nil {
		return errors.ThirdPartyError("Failed to send order confirmation").WithError(err)
	}

	return nil
}
