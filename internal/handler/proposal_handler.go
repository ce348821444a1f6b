package handler

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"brushquote/internal/service"
)

// ProposalHandler handles proposal draft endpoints.
type ProposalHandler struct {
	proposalService service.ProposalService
}

// NewProposalHandler creates a new ProposalHandler.
func NewProposalHandler(proposalService service.ProposalService) *ProposalHandler {
	return &ProposalHandler{proposalService: proposalService}
}

// GetByID handles GET /api/v1/proposals/:id
// @Summary Get a proposal draft
// @Description The status page polls this until generation_status is terminal
// @Tags proposals
// @Produce json
// @Param id path string true "Proposal ID (UUID)"
// @Success 200 {object} APIResponse{data=domain.Proposal} "Proposal"
// @Failure 404 {object} APIResponse "Proposal not found"
// @Router /proposals/{id} [get]
func (h *ProposalHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid proposal ID")
		return
	}

	p, err := h.proposalService.GetByID(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, p)
}

// List handles GET /api/v1/proposals
// @Summary List proposal drafts
// @Tags proposals
// @Produce json
// @Param offset query int false "Offset for pagination" default(0)
// @Param limit query int false "Limit for pagination (max 100)" default(20)
// @Success 200 {object} APIResponse{data=[]domain.Proposal,meta=PagMeta} "List of proposals"
// @Router /proposals [get]
func (h *ProposalHandler) List(c *gin.Context) {
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	ps, total, err := h.proposalService.List(c.Request.Context(), offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondPaginated(c, ps, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// ExportCSV handles GET /api/v1/proposals/:id/export/csv
// @Summary Export line items as CSV
// @Description Export a completed proposal's line items as a UTF-8 BOM CSV
// @Tags proposals
// @Produce text/csv
// @Param id path string true "Proposal ID (UUID)"
// @Success 200 {string} string "CSV content"
// @Failure 404 {object} APIResponse "Proposal not found"
// @Failure 409 {object} APIResponse "Proposal has not completed generation"
// @Router /proposals/{id}/export/csv [get]
func (h *ProposalHandler) ExportCSV(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid proposal ID")
		return
	}

	var buf bytes.Buffer
	filename, err := h.proposalService.ExportCSV(c.Request.Context(), id, &buf)
	if err != nil {
		HandleError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

// ExportXLSX handles GET /api/v1/proposals/:id/export/xlsx
// @Summary Export line items as an Excel workbook
// @Tags proposals
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param id path string true "Proposal ID (UUID)"
// @Success 200 {string} string "XLSX content"
// @Failure 404 {object} APIResponse "Proposal not found"
// @Failure 409 {object} APIResponse "Proposal has not completed generation"
// @Router /proposals/{id}/export/xlsx [get]
func (h *ProposalHandler) ExportXLSX(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid proposal ID")
		return
	}

	var buf bytes.Buffer
	filename, err := h.proposalService.ExportXLSX(c.Request.Context(), id, &buf)
	if err != nil {
		HandleError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}

// Delete handles DELETE /api/v1/proposals/:id
// @Summary Delete a proposal draft
// @Tags proposals
// @Produce json
// @Param id path string true "Proposal ID (UUID)"
// @Success 200 {object} APIResponse "Proposal deleted"
// @Failure 404 {object} APIResponse "Proposal not found"
// @Router /proposals/{id} [delete]
func (h *ProposalHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid proposal ID")
		return
	}

	if err := h.proposalService.Delete(c.Request.Context(), id); err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, gin.H{"message": "proposal deleted"})
}
