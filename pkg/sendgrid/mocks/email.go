package mocks

import (
	"context"

	"github.com/aaravmahajanofficial/storefront/pkg/sendgrid"
	sg "github.com/sendgrid/sendgrid-go"
	"github.com/stretchr/testify/mock"
)

type EmailService struct {
	mock.Mock
}

func (m *EmailService) Send(ctx context.Context, msg *sendgrid.EmailMessage) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

func (m *EmailService) GetSendGridClient() *sg.Client {
	args := m.Called()
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).(*sg.Client)
}
