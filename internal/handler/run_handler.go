package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"rfpflow/internal/domain"
	"rfpflow/internal/service"
)

// RunHandler handles run history endpoints.
type RunHandler struct {
	runService service.RunService
}

// NewRunHandler creates a new RunHandler.
func NewRunHandler(runService service.RunService) *RunHandler {
	return &RunHandler{runService: runService}
}

func parseRunID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid run ID")
		return uuid.Nil, false
	}
	return id, true
}

// GetByID handles GET /api/v1/runs/:id
// @Summary Get a run
// @Tags runs
// @Produce json
// @Param id path string true "Run ID"
// @Success 200 {object} APIResponse{data=domain.Run} "Stored run"
// @Failure 404 {object} APIResponse "Run not found"
// @Router /runs/{id} [get]
func (h *RunHandler) GetByID(c *gin.Context) {
	id, ok := parseRunID(c)
	if !ok {
		return
	}

	run, err := h.runService.GetRun(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, run)
}

// Export handles GET /api/v1/runs/:id/export
// @Summary Download the quote of a run
// @Tags runs
// @Produce text/csv
// @Param id path string true "Run ID"
// @Param format query string false "csv (default) or xlsx"
// @Success 200 {file} file "Quote"
// @Failure 400 {object} APIResponse "Unsupported format"
// @Failure 404 {object} APIResponse "Run not found"
// @Router /runs/{id}/export [get]
func (h *RunHandler) Export(c *gin.Context) {
	id, ok := parseRunID(c)
	if !ok {
		return
	}

	format := domain.ExportFormat(c.DefaultQuery("format", string(domain.ExportFormatCSV)))
	file, err := h.runService.ExportQuote(c.Request.Context(), id, format)
	if err != nil {
		HandleError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, file.Filename))
	c.Data(http.StatusOK, file.ContentType, file.Data)
}

// UpdateStatus handles PATCH /api/v1/admin/runs/:id/status
// @Summary Approve or decline a run
// @Tags admin
// @Accept json
// @Produce json
// @Param id path string true "Run ID"
// @Param body body service.UpdateRunStatusInput true "New status"
// @Success 200 {object} APIResponse "Status updated"
// @Failure 400 {object} APIResponse "Invalid status"
// @Failure 404 {object} APIResponse "Run not found"
// @Security BearerAuth
// @Router /admin/runs/{id}/status [patch]
func (h *RunHandler) UpdateStatus(c *gin.Context) {
	id, ok := parseRunID(c)
	if !ok {
		return
	}

	var input service.UpdateRunStatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	if err := h.runService.UpdateStatus(c.Request.Context(), id, input.Status); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"id": id, "status": input.Status})
}
