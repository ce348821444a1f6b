package port

import (
	"context"

	"github.com/google/uuid"

	"brushquote/internal/domain"
)

// ProposalRepository persists proposal draft records.
type ProposalRepository interface {
	Create(ctx context.Context, p *domain.Proposal) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Proposal, error)
	List(ctx context.Context, offset, limit int) ([]domain.Proposal, int, error)
	// ClaimQueued atomically moves up to limit pending drafts to processing
	// and returns them, so concurrent workers never double-generate.
	ClaimQueued(ctx context.Context, limit int) ([]domain.Proposal, error)
	UpdateGeneration(ctx context.Context, p *domain.Proposal) error
	Delete(ctx context.Context, id uuid.UUID) error
}
