package health

import (
	"errors"
	"testing"

	"github.com/aaravmahajanofficial/storefront/internal/config"
	stripeMocks "github.com/aaravmahajanofficial/storefront/pkg/stripe/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestStripeCheck(t *testing.T) {
	t.Run("Healthy", func(t *testing.T) {
		client := new(stripeMocks.Client)
		client.On("Ping", mock.Anything).Return(nil).Once()

		err := stripeCheck(&Endpoints{StripeClient: client})(t.Context())

		assert.NoError(t, err)
		client.AssertExpectations(t)
	})

	t.Run("Gateway Error", func(t *testing.T) {
		client := new(stripeMocks.Client)
		client.On("Ping", mock.Anything).Return(errors.New("invalid api key")).Once()

		err := stripeCheck(&Endpoints{StripeClient: client})(t.Context())

		assert.ErrorContains(t, err, "failed to connect to stripe")
	})

	t.Run("Not Initialized", func(t *testing.T) {
		err := stripeCheck(&Endpoints{})(t.Context())

		assert.EqualError(t, err, "stripe client is not initialized")
	})
}

func TestNewHealthHandler(t *testing.T) {
	cfg := &config.Config{}
	cfg.Otel.ServiceName = "storefront"

	h, err := NewHealthHandler(cfg, &Endpoints{})

	require.NoError(t, err)
	assert.NotNil(t, h)
}
