package service_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"brushquote/internal/config"
	"brushquote/internal/domain"
	"brushquote/internal/port"
	"brushquote/internal/service"
	"brushquote/mocks"
)

func uploadTestConfig() *config.S3Config {
	return &config.S3Config{
		Bucket:        "brushquote-uploads",
		MaxFileSizeMB: 1,
		PresignExpiry: 3600,
	}
}

func TestUploadService_Upload(t *testing.T) {
	repo := new(mocks.MockUploadRepo)
	storage := new(mocks.MockObjectStorage)

	repo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Upload")).Return(nil)
	storage.On("Upload", mock.Anything, mock.MatchedBy(func(input port.UploadInput) bool {
		return input.Bucket == "brushquote-uploads" && strings.HasPrefix(input.Key, "attachments/")
	})).Return(&port.UploadOutput{Location: "s3://x"}, nil)
	repo.On("UpdateStatus", mock.Anything, mock.Anything, domain.FileStatusUploaded).Return(nil)

	svc := service.NewUploadService(repo, storage, uploadTestConfig())

	up, err := svc.Upload(context.Background(), &service.UploadFileInput{
		OriginalName: "site-photo.jpg",
		ContentType:  "image/jpeg",
		Size:         512 * 1024,
		Body:         strings.NewReader("fake jpeg bytes"),
	})

	require.NoError(t, err)
	assert.Equal(t, domain.FileTypeJPG, up.FileType)
	assert.Equal(t, domain.FileStatusUploaded, up.Status)
	assert.Equal(t, "image/jpeg", up.ContentType)
	assert.Equal(t, "site-photo.jpg", up.OriginalName)
	assert.True(t, strings.HasPrefix(up.S3Key, "attachments/"))
	repo.AssertExpectations(t)
	storage.AssertExpectations(t)
}

func TestUploadService_Upload_ExtensionFallback(t *testing.T) {
	repo := new(mocks.MockUploadRepo)
	storage := new(mocks.MockObjectStorage)

	repo.On("Create", mock.Anything, mock.Anything).Return(nil)
	storage.On("Upload", mock.Anything, mock.Anything).Return(&port.UploadOutput{}, nil)
	repo.On("UpdateStatus", mock.Anything, mock.Anything, domain.FileStatusUploaded).Return(nil)

	svc := service.NewUploadService(repo, storage, uploadTestConfig())

	// Browsers sometimes send a generic content type; the extension decides.
	up, err := svc.Upload(context.Background(), &service.UploadFileInput{
		OriginalName: "Floor Plan.PDF",
		ContentType:  "application/octet-stream",
		Size:         1024,
		Body:         strings.NewReader("pdf"),
	})

	require.NoError(t, err)
	assert.Equal(t, domain.FileTypePDF, up.FileType)
}

func TestUploadService_Upload_UnsupportedType(t *testing.T) {
	repo := new(mocks.MockUploadRepo)
	svc := service.NewUploadService(repo, new(mocks.MockObjectStorage), uploadTestConfig())

	_, err := svc.Upload(context.Background(), &service.UploadFileInput{
		OriginalName: "virus.exe",
		ContentType:  "application/x-msdownload",
		Size:         10,
		Body:         strings.NewReader("x"),
	})

	assert.ErrorIs(t, err, domain.ErrUnsupportedFileType)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestUploadService_Upload_FileTooLarge(t *testing.T) {
	svc := service.NewUploadService(new(mocks.MockUploadRepo), new(mocks.MockObjectStorage), uploadTestConfig())

	_, err := svc.Upload(context.Background(), &service.UploadFileInput{
		OriginalName: "huge.png",
		ContentType:  "image/png",
		Size:         2 * 1024 * 1024,
		Body:         strings.NewReader("x"),
	})

	assert.ErrorIs(t, err, domain.ErrFileTooLarge)
}

func TestUploadService_Upload_StorageFailureMarksFailed(t *testing.T) {
	repo := new(mocks.MockUploadRepo)
	storage := new(mocks.MockObjectStorage)

	repo.On("Create", mock.Anything, mock.Anything).Return(nil)
	storage.On("Upload", mock.Anything, mock.Anything).Return(nil, errors.New("s3 down"))
	repo.On("UpdateStatus", mock.Anything, mock.Anything, domain.FileStatusFailed).Return(nil)

	svc := service.NewUploadService(repo, storage, uploadTestConfig())

	_, err := svc.Upload(context.Background(), &service.UploadFileInput{
		OriginalName: "photo.png",
		ContentType:  "image/png",
		Size:         10,
		Body:         strings.NewReader("x"),
	})

	assert.ErrorIs(t, err, domain.ErrUploadFailed)
	repo.AssertCalled(t, "UpdateStatus", mock.Anything, mock.Anything, domain.FileStatusFailed)
}

func TestUploadService_GetDownloadURL(t *testing.T) {
	up := &domain.Upload{ID: uuid.New(), S3Bucket: "brushquote-uploads", S3Key: "attachments/abc.pdf"}

	repo := new(mocks.MockUploadRepo)
	storage := new(mocks.MockObjectStorage)
	repo.On("GetByID", mock.Anything, up.ID).Return(up, nil)
	storage.On("GetPresignedURL", mock.Anything, "brushquote-uploads", "attachments/abc.pdf", int64(3600)).
		Return("https://signed.example/abc", nil)

	svc := service.NewUploadService(repo, storage, uploadTestConfig())

	url, err := svc.GetDownloadURL(context.Background(), up.ID)

	require.NoError(t, err)
	assert.Equal(t, "https://signed.example/abc", url)
}

func TestUploadService_Delete_StorageErrorStillMarksDeleted(t *testing.T) {
	up := &domain.Upload{ID: uuid.New(), S3Bucket: "b", S3Key: "k"}

	repo := new(mocks.MockUploadRepo)
	storage := new(mocks.MockObjectStorage)
	repo.On("GetByID", mock.Anything, up.ID).Return(up, nil)
	storage.On("Delete", mock.Anything, "b", "k").Return(errors.New("s3 down"))
	repo.On("UpdateStatus", mock.Anything, up.ID, domain.FileStatusDeleted).Return(nil)

	svc := service.NewUploadService(repo, storage, uploadTestConfig())

	assert.NoError(t, svc.Delete(context.Background(), up.ID))
	repo.AssertCalled(t, "UpdateStatus", mock.Anything, up.ID, domain.FileStatusDeleted)
}
