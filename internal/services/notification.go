package service

import (
	"context"
	"fmt"
	"html"
	"log/slog"
	"strings"

	"github.com/aaravmahajanofficial/storefront/internal/models"
	"github.com/aaravmahajanofficial/storefront/pkg/sendgrid"
	"github.com/shopspring/decimal"
)

type NotificationService interface {
	SendOrderConfirmation(ctx context.Context, confirmation *models.OrderConfirmation) error
}

type notificationService struct {
	emailService sendgrid.EmailService
}

func NewNotificationService(emailService sendgrid.EmailService) NotificationService {
	return &notificationService{emailService: emailService}
}

func formatAmount(minor int64, currency string) string {
	return fmt.Sprintf("%s %s", decimal.New(minor, -2).StringFixed(2), strings.ToUpper(currency))
}

func (n *notificationService) SendOrderConfirmation(ctx context.Context, confirmation *models.OrderConfirmation) error {

	ctx, span := tracer.Start(ctx, "NotificationService.SendOrderConfirmation")
	var err error
	defer func() { endSpan(span, err) }()

	if confirmation.Email == "" {
		err = fmt.Errorf("order %d has no recipient email", confirmation.OrderID)
		return err
	}

	greeting := "Hello"
	if confirmation.Name != "" {
		greeting = "Hello " + confirmation.Name
	}

	amount := formatAmount(confirmation.AmountTotal, confirmation.Currency)

	msg := &sendgrid.EmailMessage{
		To:      confirmation.Email,
		ToName:  confirmation.Name,
		Subject: fmt.Sprintf("Order #%d confirmed", confirmation.OrderID),
		Content: fmt.Sprintf("%s,\n\nwe received your payment of %s for order #%d.\nPayment reference: %s\n",
			greeting, amount, confirmation.OrderID, confirmation.SessionID),
		HTMLContent: fmt.Sprintf("<p>%s,</p><p>we received your payment of <strong>%s</strong> for order #%d.</p><p>Payment reference: %s</p>",
			html.EscapeString(greeting), amount, confirmation.OrderID, html.EscapeString(confirmation.SessionID)),
	}

	if err = n.emailService.Send(ctx, msg); err != nil {
		slog.Error("Failed to send order confirmation",
			slog.Int64("orderID", confirmation.OrderID),
			slog.String("error", err.Error()),
		)
		return fmt.Errorf("failed to send email: %w", err)
	}

	slog.Info("Order confirmation sent", slog.Int64("orderID", confirmation.OrderID))
	return nil
}
