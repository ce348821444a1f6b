package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"brushquote/internal/service"
)

// UploadHandler handles file-upload field attachment endpoints.
type UploadHandler struct {
	uploadService service.UploadService
}

// NewUploadHandler creates a new UploadHandler.
func NewUploadHandler(uploadService service.UploadService) *UploadHandler {
	return &UploadHandler{uploadService: uploadService}
}

// Upload handles POST /api/v1/uploads
// @Summary Upload an attachment
// @Description Upload a site photo or document (PDF, JPG, PNG) for a file-upload field
// @Tags uploads
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "File to upload (PDF, JPG, or PNG)"
// @Success 201 {object} APIResponse{data=domain.Upload} "File uploaded"
// @Failure 400 {object} APIResponse "Missing file or unsupported type"
// @Failure 413 {object} APIResponse "File too large"
// @Failure 500 {object} APIResponse "Upload failed"
// @Router /uploads [post]
func (h *UploadHandler) Upload(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "MISSING_FILE", "file field is required")
		return
	}
	defer func() { _ = file.Close() }()

	up, err := h.uploadService.Upload(c.Request.Context(), &service.UploadFileInput{
		OriginalName: header.Filename,
		ContentType:  header.Header.Get("Content-Type"),
		Size:         header.Size,
		Body:         file,
	})
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondCreated(c, up)
}

// GetByID handles GET /api/v1/uploads/:id
// @Summary Get attachment metadata and a presigned download URL
// @Tags uploads
// @Produce json
// @Param id path string true "Upload ID (UUID)"
// @Success 200 {object} APIResponse "Upload metadata with download URL"
// @Failure 404 {object} APIResponse "Upload not found"
// @Router /uploads/{id} [get]
func (h *UploadHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid upload ID")
		return
	}

	up, err := h.uploadService.GetByID(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}

	downloadURL, err := h.uploadService.GetDownloadURL(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{
		"upload":       up,
		"download_url": downloadURL,
	})
}

// Delete handles DELETE /api/v1/uploads/:id
// @Summary Delete an attachment
// @Tags uploads
// @Produce json
// @Param id path string true "Upload ID (UUID)"
// @Success 200 {object} APIResponse "Upload deleted"
// @Failure 404 {object} APIResponse "Upload not found"
// @Router /uploads/{id} [delete]
func (h *UploadHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid upload ID")
		return
	}

	if err := h.uploadService.Delete(c.Request.Context(), id); err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, gin.H{"message": "upload deleted"})
}
