package service

import (
	"context"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/google/uuid"

	"brushquote/internal/config"
	"brushquote/internal/domain"
	"brushquote/internal/port"
)

// UploadFileInput is the DTO for attaching a file to a file-upload field.
type UploadFileInput struct {
	OriginalName string
	ContentType  string
	Size         int64
	Body         io.Reader
}

// UploadService handles attachments for file-upload fields: validation,
// blob storage, metadata, and presigned download links.
type UploadService interface {
	Upload(ctx context.Context, input *UploadFileInput) (*domain.Upload, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Upload, error)
	GetDownloadURL(ctx context.Context, id uuid.UUID) (string, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type uploadService struct {
	uploadRepo port.UploadRepository
	storage    port.ObjectStorage
	cfg        *config.S3Config
}

// NewUploadService creates a new UploadService implementation.
func NewUploadService(uploadRepo port.UploadRepository, storage port.ObjectStorage, cfg *config.S3Config) UploadService {
	return &uploadService{
		uploadRepo: uploadRepo,
		storage:    storage,
		cfg:        cfg,
	}
}

// resolveFileType matches the declared content type first, then the
// filename extension, since browsers are inconsistent about both.
func resolveFileType(originalName, contentType string) (domain.FileType, bool) {
	if ft, ok := domain.AllowedContentTypes[contentType]; ok {
		return ft, true
	}
	if idx := strings.LastIndex(originalName, "."); idx >= 0 {
		ext := strings.ToLower(originalName[idx+1:])
		if ft, ok := domain.AllowedExtensions[ext]; ok {
			return ft, true
		}
	}
	return "", false
}

func (s *uploadService) Upload(ctx context.Context, input *UploadFileInput) (*domain.Upload, error) {
	fileType, ok := resolveFileType(input.OriginalName, input.ContentType)
	if !ok {
		return nil, domain.ErrUnsupportedFileType
	}
	if input.Size > s.cfg.MaxFileSizeMB*1024*1024 {
		return nil, domain.ErrFileTooLarge
	}

	id := uuid.New()
	fileName := fmt.Sprintf("%s.%s", id, fileType)
	key := fmt.Sprintf("attachments/%s", fileName)

	up := &domain.Upload{
		ID:           id,
		FileName:     fileName,
		OriginalName: input.OriginalName,
		FileType:     fileType,
		FileSize:     input.Size,
		S3Bucket:     s.cfg.Bucket,
		S3Key:        key,
		ContentType:  domain.AllowedFileTypes[fileType],
		Status:       domain.FileStatusPending,
	}
	if err := s.uploadRepo.Create(ctx, up); err != nil {
		return nil, fmt.Errorf("uploadService.Upload: creating metadata: %w", err)
	}

	_, err := s.storage.Upload(ctx, port.UploadInput{
		Bucket:      up.S3Bucket,
		Key:         up.S3Key,
		Body:        input.Body,
		ContentType: up.ContentType,
	})
	if err != nil {
		log.Printf("uploadService.Upload: storage upload failed for %s: %v", up.ID, err)
		if uerr := s.uploadRepo.UpdateStatus(ctx, up.ID, domain.FileStatusFailed); uerr != nil {
			log.Printf("uploadService.Upload: failed to mark %s failed: %v", up.ID, uerr)
		}
		return nil, domain.ErrUploadFailed
	}

	if err := s.uploadRepo.UpdateStatus(ctx, up.ID, domain.FileStatusUploaded); err != nil {
		return nil, fmt.Errorf("uploadService.Upload: updating status: %w", err)
	}
	up.Status = domain.FileStatusUploaded
	return up, nil
}

func (s *uploadService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Upload, error) {
	return s.uploadRepo.GetByID(ctx, id)
}

func (s *uploadService) GetDownloadURL(ctx context.Context, id uuid.UUID) (string, error) {
	up, err := s.uploadRepo.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	url, err := s.storage.GetPresignedURL(ctx, up.S3Bucket, up.S3Key, s.cfg.PresignExpiry)
	if err != nil {
		return "", fmt.Errorf("uploadService.GetDownloadURL: %w", err)
	}
	return url, nil
}

func (s *uploadService) Delete(ctx context.Context, id uuid.UUID) error {
	up, err := s.uploadRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.storage.Delete(ctx, up.S3Bucket, up.S3Key); err != nil {
		log.Printf("uploadService.Delete: storage delete failed for %s: %v", id, err)
	}
	return s.uploadRepo.UpdateStatus(ctx, id, domain.FileStatusDeleted)
}
