package models_test

import (
	"testing"

	"github.com/aaravmahajanofficial/storefront/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestCartAction(t *testing.T) {
	assert.Equal(t, 1, models.CartActionAdd.Delta())
	assert.Equal(t, -1, models.CartActionRemove.Delta())
	assert.Zero(t, models.CartAction("clear").Delta())

	assert.True(t, models.CartActionAdd.Valid())
	assert.False(t, models.CartAction("").Valid())
}

func TestNewCartData(t *testing.T) {
	lines := []models.CartLine{
		{ProductID: 1, Price: decimal.RequireFromString("10.15"), Quantity: 2},
		{ProductID: 2, Price: decimal.RequireFromString("0.10"), Quantity: 3},
	}

	cart := models.NewCartData(&models.Order{ID: 7}, lines)

	assert.Equal(t, "20.3", cart.Products[0].Total.String())
	assert.Equal(t, "0.3", cart.Products[1].Total.String())
	assert.True(t, decimal.RequireFromString("20.60").Equal(cart.CartTotalPrice))
	assert.Equal(t, 5, cart.CartTotalQuantity)
	assert.False(t, cart.IsEmpty())
}

func TestEmptyCart(t *testing.T) {
	cart := models.EmptyCart()

	assert.NotNil(t, cart.Products)
	assert.Nil(t, cart.Order)
	assert.True(t, cart.CartTotalPrice.IsZero())
	assert.Zero(t, cart.CartTotalQuantity)
	assert.True(t, cart.IsEmpty())
}

func TestMinorUnits(t *testing.T) {
	tests := []struct {
		amount string
		want   int64
	}{
		{"24.99", 2499},
		{"0", 0},
		{"10", 1000},
		{"0.005", 1},
		{"1.004", 100},
		{"199.995", 20000},
	}

	for _, tt := range tests {
		t.Run(tt.amount, func(t *testing.T) {
			assert.Equal(t, tt.want, models.MinorUnits(decimal.RequireFromString(tt.amount)))
		})
	}
}

func TestLineTotal(t *testing.T) {
	assert.Equal(t, "39.96", models.LineTotal(decimal.RequireFromString("9.99"), 4).String())
	assert.True(t, models.LineTotal(decimal.RequireFromString("9.99"), 0).IsZero())
}

func TestCheckoutRequestHasShippingAddress(t *testing.T) {
	assert.True(t, (&models.CheckoutRequest{City: "Paris", Street: "Rue X", Address: "12"}).HasShippingAddress())
	assert.False(t, (&models.CheckoutRequest{City: "Paris", Street: "Rue X"}).HasShippingAddress())
	assert.False(t, (&models.CheckoutRequest{Name: "Ann"}).HasShippingAddress())
}
