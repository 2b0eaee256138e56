package handler

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"rfpflow/internal/service"
)

// RFPHandler handles pipeline endpoints.
type RFPHandler struct {
	pipeline service.PipelineService
}

// NewRFPHandler creates a new RFPHandler.
func NewRFPHandler(pipeline service.PipelineService) *RFPHandler {
	return &RFPHandler{pipeline: pipeline}
}

// Process handles POST /api/v1/rfp/process
// @Summary Process an RFP
// @Description Run extraction, matching, pricing and composition on a tender URL or pasted text.
// @Tags rfp
// @Accept json
// @Produce json
// @Param body body service.ProcessRFPInput true "Tender URL or text"
// @Success 200 {object} APIResponse{data=domain.RunResult} "Completed run"
// @Failure 400 {object} APIResponse "No input provided"
// @Failure 422 {object} APIResponse "Catalog or pricing data inconsistent"
// @Failure 500 {object} APIResponse "Pipeline failed"
// @Router /rfp/process [post]
func (h *RFPHandler) Process(c *gin.Context) {
	var input service.ProcessRFPInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "no input provided")
		return
	}

	result, err := h.pipeline.Run(c.Request.Context(), input.Input)
	if err != nil {
		status, code, msg := MapDomainError(err)
		if status >= 500 {
			// Fatal pipeline errors surface their cause to the caller.
			requestID, _ := c.Get("request_id")
			log.Printf("[%s] pipeline failed: %v", requestID, err)
			RespondError(c, status, "PIPELINE_FAILED", err.Error())
			return
		}
		RespondError(c, status, code, msg)
		return
	}

	RespondOK(c, result)
}
