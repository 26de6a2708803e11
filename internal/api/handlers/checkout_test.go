package handlers_test

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aaravmahajanofficial/storefront/internal/api/handlers"
	appErrors "github.com/aaravmahajanofficial/storefront/internal/errors"
	"github.com/aaravmahajanofficial/storefront/internal/models"
	"github.com/aaravmahajanofficial/storefront/internal/services/mocks"
	"github.com/aaravmahajanofficial/storefront/internal/testutils"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestCheckoutHandler_Checkout(t *testing.T) {

	t.Run("Success - Empty Body", func(t *testing.T) {

		// Arrange
		mockCheckoutService := mocks.NewMockCheckoutService(t)
		checkoutHandler := handlers.NewCheckoutHandler(mockCheckoutService)
		userID := uuid.New()
		mockCheckoutService.On("FinalizeCheckout", mock.Anything, userID, &models.CheckoutRequest{}).
			Return(&models.CheckoutResponse{OrderID: 1, SessionID: "cs_1", RedirectURL: "https://pay", TotalPrice: decimal.NewFromInt(10), TotalQuantity: 1}, nil).Once()

		req := testutils.CreateTestRequestWithContext(http.MethodPost, "/api/v1/checkout", nil, userID, nil)
		w := httptest.NewRecorder()

		// Act
		checkoutHandler.Checkout()(w, req)

		// Assert
		assert.Equal(t, http.StatusOK, w.Code)
		var got models.CheckoutResponse
		decodeResponse(t, w, &got)
		assert.Equal(t, "https://pay", got.RedirectURL)
	})

	t.Run("Failure - Partial Address", func(t *testing.T) {

		checkoutHandler := handlers.NewCheckoutHandler(mocks.NewMockCheckoutService(t))
		req := testutils.CreateTestRequestWithContext(http.MethodPost, "/api/v1/checkout",
			bytes.NewReader([]byte(`{"city":"Oslo"}`)), uuid.New(), nil)
		w := httptest.NewRecorder()

		checkoutHandler.Checkout()(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Failure - Empty Cart", func(t *testing.T) {

		mockCheckoutService := mocks.NewMockCheckoutService(t)
		checkoutHandler := handlers.NewCheckoutHandler(mockCheckoutService)
		mockCheckoutService.On("FinalizeCheckout", mock.Anything, mock.Anything, mock.Anything).
			Return(nil, appErrors.ValidationError("Cart is empty")).Once()

		req := testutils.CreateTestRequestWithContext(http.MethodPost, "/api/v1/checkout", nil, uuid.New(), nil)
		w := httptest.NewRecorder()

		checkoutHandler.Checkout()(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Failure - Anonymous", func(t *testing.T) {

		checkoutHandler := handlers.NewCheckoutHandler(mocks.NewMockCheckoutService(t))
		req := testutils.CreateTestRequestWithoutContext(http.MethodPost, "/api/v1/checkout", nil, nil)
		w := httptest.NewRecorder()

		checkoutHandler.Checkout()(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestCheckoutHandler_Webhook(t *testing.T) {

	payload := []byte(`{"type":"checkout.session.completed"}`)

	t.Run("Success - Processed", func(t *testing.T) {

		mockCheckoutService := mocks.NewMockCheckoutService(t)
		checkoutHandler := handlers.NewCheckoutHandler(mockCheckoutService)
		mockCheckoutService.On("HandleWebhook", mock.Anything, payload, "t=1,v1=abc").Return(nil).Once()

		req := testutils.CreateTestRequestWithoutContext(http.MethodPost, "/api/v1/payments/webhook", bytes.NewReader(payload), nil)
		req.Header.Set("Stripe-Signature", "t=1,v1=abc")
		w := httptest.NewRecorder()

		checkoutHandler.HandleStripeWebhook()(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Failure - Missing Signature", func(t *testing.T) {

		checkoutHandler := handlers.NewCheckoutHandler(mocks.NewMockCheckoutService(t))
		req := testutils.CreateTestRequestWithoutContext(http.MethodPost, "/api/v1/payments/webhook", bytes.NewReader(payload), nil)
		w := httptest.NewRecorder()

		checkoutHandler.HandleStripeWebhook()(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Failure - Rejected Signature", func(t *testing.T) {

		mockCheckoutService := mocks.NewMockCheckoutService(t)
		checkoutHandler := handlers.NewCheckoutHandler(mockCheckoutService)
		mockCheckoutService.On("HandleWebhook", mock.Anything, payload, "forged").
			Return(appErrors.BadRequestError("Webhook signature verification failed")).Once()

		req := testutils.CreateTestRequestWithoutContext(http.MethodPost, "/api/v1/payments/webhook", bytes.NewReader(payload), nil)
		req.Header.Set("Stripe-Signature", "forged")
		w := httptest.NewRecorder()

		checkoutHandler.HandleStripeWebhook()(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
