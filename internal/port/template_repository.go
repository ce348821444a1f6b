package port

import (
	"context"

	"github.com/google/uuid"

	"brushquote/internal/domain"
)

// ProposalTemplateRepository persists proposal form templates.
type ProposalTemplateRepository interface {
	Create(ctx context.Context, tpl *domain.ProposalTemplate) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.ProposalTemplate, error)
	List(ctx context.Context, offset, limit int) ([]domain.ProposalTemplate, int, error)
	Update(ctx context.Context, tpl *domain.ProposalTemplate) error
	Delete(ctx context.Context, id uuid.UUID) error
}
