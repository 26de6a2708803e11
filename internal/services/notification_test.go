package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/aaravmahajanofficial/storefront/internal/models"
	service "github.com/aaravmahajanofficial/storefront/internal/services"
	"github.com/aaravmahajanofficial/storefront/pkg/sendgrid"
	"github.com/aaravmahajanofficial/storefront/pkg/sendgrid/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestNotificationService_SendOrderConfirmation(t *testing.T) {

	ctx := context.Background()
	confirmation := &models.OrderConfirmation{
		OrderID:     7,
		SessionID:   "cs_1",
		Name:        "Ann <admin>",
		Email:       "ann@example.com",
		AmountTotal: 2499,
		Currency:    "usd",
	}

	t.Run("Success - Mail Content", func(t *testing.T) {

		// Arrange
		emailService := new(mocks.EmailService)
		notificationService := service.NewNotificationService(emailService)

		var sent *sendgrid.EmailMessage
		emailService.On("Send", mock.Anything, mock.AnythingOfType("*sendgrid.EmailMessage")).
			Run(func(args mock.Arguments) { sent = args.Get(1).(*sendgrid.EmailMessage) }).
			Return(nil).Once()

		// Act
		err := notificationService.SendOrderConfirmation(ctx, confirmation)

		// Assert
		require.NoError(t, err)
		require.NotNil(t, sent)
		assert.Equal(t, "ann@example.com", sent.To)
		assert.Equal(t, "Order #7 confirmed", sent.Subject)
		assert.Contains(t, sent.Content, "24.99 USD")
		assert.Contains(t, sent.HTMLContent, "Hello Ann &lt;admin&gt;")
		assert.NotContains(t, sent.HTMLContent, "<admin>")
	})

	t.Run("Failure - No Recipient", func(t *testing.T) {

		emailService := new(mocks.EmailService)
		notificationService := service.NewNotificationService(emailService)

		err := notificationService.SendOrderConfirmation(ctx, &models.OrderConfirmation{OrderID: 8})

		assert.Error(t, err)
		emailService.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
	})

	t.Run("Failure - Provider Error", func(t *testing.T) {

		emailService := new(mocks.EmailService)
		notificationService := service.NewNotificationService(emailService)
		providerErr := errors.New("401 unauthorized")
		emailService.On("Send", mock.Anything, mock.Anything).Return(providerErr).Once()

		err := notificationService.SendOrderConfirmation(ctx, confirmation)

		assert.ErrorIs(t, err, providerErr)
	})
}
