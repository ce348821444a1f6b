package port

import (
	"context"

	"github.com/google/uuid"

	"brushquote/internal/domain"
)

// UploadRepository persists metadata for file-upload field attachments.
type UploadRepository interface {
	Create(ctx context.Context, up *domain.Upload) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Upload, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.FileStatus) error
	Delete(ctx context.Context, id uuid.UUID) error
}
