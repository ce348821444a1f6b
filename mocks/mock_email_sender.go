package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockEmailSender is a mock implementation of port.EmailSender.
type MockEmailSender struct {
	mock.Mock
}

func (m *MockEmailSender) SendProposalReadyEmail(ctx context.Context, toEmail, toName string, proposalID uuid.UUID) error {
	args := m.Called(ctx, toEmail, toName, proposalID)
	return args.Error(0)
}
