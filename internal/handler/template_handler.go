package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"brushquote/internal/service"
)

// TemplateHandler handles proposal template endpoints.
type TemplateHandler struct {
	templateService service.TemplateService
}

// NewTemplateHandler creates a new TemplateHandler.
func NewTemplateHandler(templateService service.TemplateService) *TemplateHandler {
	return &TemplateHandler{templateService: templateService}
}

type templateRequest struct {
	Name        string          `json:"name" binding:"required"`
	Description string          `json:"description"`
	Fields      json.RawMessage `json:"fields" binding:"required"`
	IsActive    *bool           `json:"is_active"`
}

// Create handles POST /api/v1/templates
// @Summary Create a proposal template
// @Description Create a template with an ordered field config list
// @Tags templates
// @Accept json
// @Produce json
// @Param request body templateRequest true "Template payload"
// @Success 201 {object} APIResponse{data=domain.ProposalTemplate} "Template created"
// @Failure 400 {object} APIResponse "Invalid payload or field configs"
// @Router /templates [post]
func (h *TemplateHandler) Create(c *gin.Context) {
	var req templateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	tpl, err := h.templateService.Create(c.Request.Context(), &service.CreateTemplateInput{
		Name:        req.Name,
		Description: req.Description,
		Fields:      req.Fields,
		IsActive:    isActive,
	})
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondCreated(c, tpl)
}

// List handles GET /api/v1/templates
// @Summary List proposal templates
// @Tags templates
// @Produce json
// @Param offset query int false "Offset for pagination" default(0)
// @Param limit query int false "Limit for pagination (max 100)" default(20)
// @Success 200 {object} APIResponse{data=[]domain.ProposalTemplate,meta=PagMeta} "List of templates"
// @Router /templates [get]
func (h *TemplateHandler) List(c *gin.Context) {
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	tpls, total, err := h.templateService.List(c.Request.Context(), offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondPaginated(c, tpls, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// GetByID handles GET /api/v1/templates/:id
// @Summary Get a proposal template
// @Tags templates
// @Produce json
// @Param id path string true "Template ID (UUID)"
// @Success 200 {object} APIResponse{data=domain.ProposalTemplate} "Template"
// @Failure 404 {object} APIResponse "Template not found"
// @Router /templates/{id} [get]
func (h *TemplateHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid template ID")
		return
	}

	tpl, err := h.templateService.GetByID(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, tpl)
}

// Update handles PUT /api/v1/templates/:id
// @Summary Update a proposal template
// @Tags templates
// @Accept json
// @Produce json
// @Param id path string true "Template ID (UUID)"
// @Param request body templateRequest true "Template payload"
// @Success 200 {object} APIResponse{data=domain.ProposalTemplate} "Template updated"
// @Failure 400 {object} APIResponse "Invalid payload or field configs"
// @Failure 404 {object} APIResponse "Template not found"
// @Router /templates/{id} [put]
func (h *TemplateHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid template ID")
		return
	}

	var req templateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	tpl, err := h.templateService.Update(c.Request.Context(), &service.UpdateTemplateInput{
		ID:          id,
		Name:        req.Name,
		Description: req.Description,
		Fields:      req.Fields,
		IsActive:    isActive,
	})
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, tpl)
}

// Delete handles DELETE /api/v1/templates/:id
// @Summary Delete a proposal template
// @Tags templates
// @Produce json
// @Param id path string true "Template ID (UUID)"
// @Success 200 {object} APIResponse "Template deleted"
// @Failure 404 {object} APIResponse "Template not found"
// @Router /templates/{id} [delete]
func (h *TemplateHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid template ID")
		return
	}

	if err := h.templateService.Delete(c.Request.Context(), id); err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, gin.H{"message": "template deleted"})
}
