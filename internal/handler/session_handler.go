package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"brushquote/internal/domain"
	"brushquote/internal/service"
)

// SessionHandler handles form session endpoints: creation, value edits,
// matrix operations, mode switching, and submission.
type SessionHandler struct {
	sessionService service.SessionService
}

// NewSessionHandler creates a new SessionHandler.
func NewSessionHandler(sessionService service.SessionService) *SessionHandler {
	return &SessionHandler{sessionService: sessionService}
}

func sessionID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid session ID")
		return uuid.Nil, false
	}
	return id, true
}

// Create handles POST /api/v1/sessions
// @Summary Start a form session
// @Description Create an in-memory form session for an active template
// @Tags sessions
// @Accept json
// @Produce json
// @Param request body createSessionRequest true "Template to open"
// @Success 201 {object} APIResponse{data=service.SessionView} "Session created"
// @Failure 400 {object} APIResponse "Inactive template or invalid field configs"
// @Failure 404 {object} APIResponse "Template not found"
// @Router /sessions [post]
func (h *SessionHandler) Create(c *gin.Context) {
	var req createSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}
	templateID, err := uuid.Parse(req.TemplateID)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid template ID")
		return
	}

	view, err := h.sessionService.Create(c.Request.Context(), templateID)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondCreated(c, view)
}

type createSessionRequest struct {
	TemplateID string `json:"template_id" binding:"required"`
}

type valueRequest struct {
	Value any `json:"value"`
}

// UpdateValue handles PUT /api/v1/sessions/:id/fields/:fieldID
// @Summary Set a field value
// @Description Normalize and store a value for one field of the session
// @Tags sessions
// @Accept json
// @Produce json
// @Param id path string true "Session ID (UUID)"
// @Param fieldID path string true "Field ID"
// @Param request body valueRequest true "New value"
// @Success 200 {object} APIResponse "Value stored"
// @Failure 404 {object} APIResponse "Session or field not found"
// @Router /sessions/{id}/fields/{fieldID} [put]
func (h *SessionHandler) UpdateValue(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	var req valueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	if err := h.sessionService.UpdateValue(c.Request.Context(), id, c.Param("fieldID"), req.Value); err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, gin.H{"message": "value updated"})
}

type rowSelectionRequest struct {
	RowID    string `json:"row_id" binding:"required"`
	Selected *bool  `json:"selected" binding:"required"`
}

// SelectRow handles POST /api/v1/sessions/:id/fields/:fieldID/rows
// @Summary Select or deselect a matrix row
// @Tags sessions
// @Accept json
// @Produce json
// @Param id path string true "Session ID (UUID)"
// @Param fieldID path string true "Matrix field ID"
// @Param request body rowSelectionRequest true "Row selection"
// @Success 200 {object} APIResponse "Selection applied"
// @Failure 400 {object} APIResponse "Field is not a matrix selector"
// @Failure 404 {object} APIResponse "Session or field not found"
// @Router /sessions/{id}/fields/{fieldID}/rows [post]
func (h *SessionHandler) SelectRow(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	var req rowSelectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	if err := h.sessionService.SelectMatrixRow(c.Request.Context(), id, c.Param("fieldID"), req.RowID, *req.Selected); err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, gin.H{"message": "row selection applied"})
}

type cellRequest struct {
	RowID    string `json:"row_id" binding:"required"`
	ColumnID string `json:"column_id" binding:"required"`
	Value    any    `json:"value"`
}

// SetCell handles POST /api/v1/sessions/:id/fields/:fieldID/cells
// @Summary Set one matrix cell value
// @Tags sessions
// @Accept json
// @Produce json
// @Param id path string true "Session ID (UUID)"
// @Param fieldID path string true "Matrix field ID"
// @Param request body cellRequest true "Cell edit"
// @Success 200 {object} APIResponse "Cell updated"
// @Failure 400 {object} APIResponse "Field is not a matrix selector"
// @Failure 404 {object} APIResponse "Session or field not found"
// @Router /sessions/{id}/fields/{fieldID}/cells [post]
func (h *SessionHandler) SetCell(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	var req cellRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	if err := h.sessionService.SetMatrixCell(c.Request.Context(), id, c.Param("fieldID"), req.RowID, req.ColumnID, req.Value); err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, gin.H{"message": "cell updated"})
}

type quantityRequest struct {
	RowID string  `json:"row_id" binding:"required"`
	Delta float64 `json:"delta" binding:"required"`
}

// AdjustQuantity handles POST /api/v1/sessions/:id/fields/:fieldID/quantity
// @Summary Step a matrix row quantity
// @Description Adjust the quantity column by delta, clamped to a floor of 1
// @Tags sessions
// @Accept json
// @Produce json
// @Param id path string true "Session ID (UUID)"
// @Param fieldID path string true "Matrix field ID"
// @Param request body quantityRequest true "Quantity step"
// @Success 200 {object} APIResponse "Quantity adjusted"
// @Failure 400 {object} APIResponse "Field is not a matrix selector"
// @Failure 404 {object} APIResponse "Session or field not found"
// @Router /sessions/{id}/fields/{fieldID}/quantity [post]
func (h *SessionHandler) AdjustQuantity(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	var req quantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	if err := h.sessionService.AdjustMatrixQuantity(c.Request.Context(), id, c.Param("fieldID"), req.RowID, req.Delta); err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, gin.H{"message": "quantity adjusted"})
}

type groupRequest struct {
	GroupKey string `json:"group_key" binding:"required"`
	Selected *bool  `json:"selected"`
	Expand   *bool  `json:"expand"`
}

// SelectGroup handles POST /api/v1/sessions/:id/fields/:fieldID/groups
// @Summary Select, deselect, expand, or collapse a matrix group
// @Tags sessions
// @Accept json
// @Produce json
// @Param id path string true "Session ID (UUID)"
// @Param fieldID path string true "Matrix field ID"
// @Param request body groupRequest true "Group operation (selected and/or expand)"
// @Success 200 {object} APIResponse "Group operation applied"
// @Failure 400 {object} APIResponse "Field is not a matrix selector"
// @Failure 404 {object} APIResponse "Session or field not found"
// @Router /sessions/{id}/fields/{fieldID}/groups [post]
func (h *SessionHandler) SelectGroup(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	var req groupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}
	if req.Selected == nil && req.Expand == nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "one of selected or expand is required")
		return
	}

	fieldID := c.Param("fieldID")
	if req.Selected != nil {
		if err := h.sessionService.SelectMatrixGroup(c.Request.Context(), id, fieldID, req.GroupKey, *req.Selected); err != nil {
			HandleError(c, err)
			return
		}
	}
	if req.Expand != nil {
		if err := h.sessionService.ToggleMatrixGroup(c.Request.Context(), id, fieldID, req.GroupKey, *req.Expand); err != nil {
			HandleError(c, err)
			return
		}
	}
	RespondOK(c, gin.H{"message": "group operation applied"})
}

type modeRequest struct {
	Mode string `json:"mode" binding:"required"`
}

// SetMode handles PUT /api/v1/sessions/:id/mode
// @Summary Switch between basic and advanced mode
// @Description Mode switching only filters visibility; hidden values are retained
// @Tags sessions
// @Accept json
// @Produce json
// @Param id path string true "Session ID (UUID)"
// @Param request body modeRequest true "New mode (basic or advanced)"
// @Success 200 {object} APIResponse "Mode updated"
// @Failure 400 {object} APIResponse "Invalid mode"
// @Failure 404 {object} APIResponse "Session not found"
// @Router /sessions/{id}/mode [put]
func (h *SessionHandler) SetMode(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	var req modeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	if err := h.sessionService.SetMode(c.Request.Context(), id, domain.SessionMode(req.Mode)); err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, gin.H{"message": "mode updated"})
}

// View handles GET /api/v1/sessions/:id
// @Summary Render the session
// @Description Snapshot of visible sections, values, and matrix views
// @Tags sessions
// @Produce json
// @Param id path string true "Session ID (UUID)"
// @Success 200 {object} APIResponse{data=service.SessionView} "Session view"
// @Failure 404 {object} APIResponse "Session not found"
// @Router /sessions/{id} [get]
func (h *SessionHandler) View(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}

	view, err := h.sessionService.View(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, view)
}

// Submit handles POST /api/v1/sessions/:id/submit
// @Summary Submit the form
// @Description Validate required fields and create a pending proposal draft
// @Tags sessions
// @Produce json
// @Param id path string true "Session ID (UUID)"
// @Success 201 {object} APIResponse{data=domain.Proposal} "Proposal draft created"
// @Failure 400 {object} APIResponse "Missing required fields"
// @Failure 404 {object} APIResponse "Session not found"
// @Router /sessions/{id}/submit [post]
func (h *SessionHandler) Submit(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}

	proposal, err := h.sessionService.Submit(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondCreated(c, proposal)
}

// Close handles DELETE /api/v1/sessions/:id
// @Summary Abandon a form session
// @Tags sessions
// @Produce json
// @Param id path string true "Session ID (UUID)"
// @Success 200 {object} APIResponse "Session closed"
// @Failure 404 {object} APIResponse "Session not found"
// @Router /sessions/{id} [delete]
func (h *SessionHandler) Close(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}

	if err := h.sessionService.Close(c.Request.Context(), id); err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, gin.H{"message": "session closed"})
}
