package mocks

import (
	"context"
	"io"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"brushquote/internal/domain"
)

// MockProposalService is a mock implementation of service.ProposalService.
type MockProposalService struct {
	mock.Mock
}

func (m *MockProposalService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Proposal, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Proposal), args.Error(1)
}

func (m *MockProposalService) List(ctx context.Context, offset, limit int) ([]domain.Proposal, int, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Proposal), args.Int(1), args.Error(2)
}

func (m *MockProposalService) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProposalService) ExportCSV(ctx context.Context, id uuid.UUID, w io.Writer) (string, error) {
	args := m.Called(ctx, id, w)
	return args.String(0), args.Error(1)
}

func (m *MockProposalService) ExportXLSX(ctx context.Context, id uuid.UUID, w io.Writer) (string, error) {
	args := m.Called(ctx, id, w)
	return args.String(0), args.Error(1)
}

func (m *MockProposalService) GenerateProposal(ctx context.Context, p *domain.Proposal, maxAttempts int) {
	m.Called(ctx, p, maxAttempts)
}
