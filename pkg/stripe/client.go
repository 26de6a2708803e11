package stripe

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/aaravmahajanofficial/storefront/internal/config"
	"github.com/stripe/stripe-go/v81"
	"github.com/stripe/stripe-go/v81/balance"
	"github.com/stripe/stripe-go/v81/checkout/session"
	"github.com/stripe/stripe-go/v81/webhook"
)

type Event = stripe.Event

const EventCheckoutSessionCompleted = stripe.EventTypeCheckoutSessionCompleted

// CheckoutSessionParams describes a single-line checkout priced in minor units.
type CheckoutSessionParams struct {
	Currency          string
	ProductName       string
	UnitAmount        int64
	Quantity          int64
	SuccessURL        string
	CancelURL         string
	ClientReferenceID string
	CustomerEmail     string
}

type CheckoutSession struct {
	ID                string
	URL               string
	ClientReferenceID string
	CustomerEmail     string
	AmountTotal       int64
	Currency          string
}

// CheckoutSessionFromEvent decodes the checkout session carried by a webhook event.
func CheckoutSessionFromEvent(event Event) (*CheckoutSession, error) {
	if event.Data == nil {
		return nil, errors.New("event carries no data")
	}

	var sess stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &sess); err != nil {
		return nil, fmt.Errorf("failed to decode checkout session: %w", err)
	}

	out := &CheckoutSession{
		ID:                sess.ID,
		URL:               sess.URL,
		ClientReferenceID: sess.ClientReferenceID,
		CustomerEmail:     sess.CustomerEmail,
		AmountTotal:       sess.AmountTotal,
		Currency:          string(sess.Currency),
	}

	if out.CustomerEmail == "" && sess.CustomerDetails != nil {
		out.CustomerEmail = sess.CustomerDetails.Email
	}

	return out, nil
}

// Client is the payment gateway used by checkout.
type Client interface {
	CreateCheckoutSession(ctx context.Context, params *CheckoutSessionParams) (*CheckoutSession, error)
	ExpireCheckoutSession(ctx context.Context, sessionID string) error
	VerifyWebhookSignature(payload []byte, signature string) (Event, error)
	Ping(ctx context.Context) error
}

type stripeClient struct {
	webhookSecret string
}

func NewStripeClient(cfg config.Stripe) Client {
	stripe.Key = cfg.APIKey

	return &stripeClient{webhookSecret: cfg.WebhookSecret}
}

func (s *stripeClient) CreateCheckoutSession(ctx context.Context, params *CheckoutSessionParams) (*CheckoutSession, error) {

	sessionParams := &stripe.CheckoutSessionParams{
		Params: stripe.Params{Context: ctx},
		Mode:   stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency: stripe.String(params.Currency),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(params.ProductName),
					},
					UnitAmount: stripe.Int64(params.UnitAmount),
				},
				Quantity: stripe.Int64(params.Quantity),
			},
		},
		SuccessURL:        stripe.String(params.SuccessURL),
		CancelURL:         stripe.String(params.CancelURL),
		ClientReferenceID: stripe.String(params.ClientReferenceID),
	}

	if params.CustomerEmail != "" {
		sessionParams.CustomerEmail = stripe.String(params.CustomerEmail)
	}

	sess, err := session.New(sessionParams)
	if err != nil {
		return nil, err
	}

	return &CheckoutSession{ID: sess.ID, URL: sess.URL}, nil
}

// ExpireCheckoutSession voids an open session so it can no longer be paid.
func (s *stripeClient) ExpireCheckoutSession(ctx context.Context, sessionID string) error {
	_, err := session.Expire(sessionID, &stripe.CheckoutSessionExpireParams{Params: stripe.Params{Context: ctx}})
	return err
}

func (s *stripeClient) VerifyWebhookSignature(payload []byte, signature string) (Event, error) {
	if s.webhookSecret == "" {
		return Event{}, errors.New("webhook secret not configured")
	}

	return webhook.ConstructEvent(payload, signature, s.webhookSecret)
}

// Ping reads the account balance to prove the API key works.
func (s *stripeClient) Ping(ctx context.Context) error {
	_, err := balance.Get(&stripe.BalanceParams{Params: stripe.Params{Context: ctx}})
	return err
}
