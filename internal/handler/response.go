package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"rfpflow/internal/domain"
)

// APIResponse is the standard envelope for all API responses.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *APIError   `json:"error,omitempty"`
}

// APIError holds error details in the response.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// RespondOK sends a 200 success response.
func RespondOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data})
}

// RespondCreated sends a 201 success response.
func RespondCreated(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, APIResponse{Success: true, Data: data})
}

// RespondError sends an error response with the given status code.
func RespondError(c *gin.Context, status int, code, msg string) {
	c.JSON(status, APIResponse{
		Success: false,
		Error:   &APIError{Code: code, Message: msg},
	})
}

// MapDomainError translates domain errors to HTTP status codes and error codes.
func MapDomainError(err error) (status int, code, msg string) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, "NOT_FOUND", "resource not found"
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized, "UNAUTHORIZED", "unauthorized"
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, "INVALID_CREDENTIALS", "invalid credentials"
	case errors.Is(err, domain.ErrEmptyInput):
		return http.StatusBadRequest, "VALIDATION_ERROR", "no input provided"
	case errors.Is(err, domain.ErrInvalidProduct):
		return http.StatusBadRequest, "VALIDATION_ERROR", "missing required product fields"
	case errors.Is(err, domain.ErrInvalidRunStatus):
		return http.StatusBadRequest, "INVALID_STATUS", "invalid status; allowed: pending, approved, declined"
	case errors.Is(err, domain.ErrInvalidExportFormat):
		return http.StatusBadRequest, "INVALID_FORMAT", "unsupported export format; allowed: csv, xlsx"
	case errors.Is(err, domain.ErrDuplicateSKU):
		return http.StatusConflict, "DUPLICATE_SKU", "sku already exists"
	case errors.Is(err, domain.ErrCatalogInconsistent):
		return http.StatusUnprocessableEntity, "DATA_CONSISTENCY_ERROR", err.Error()
	case errors.Is(err, domain.ErrPricingRuleMissing):
		return http.StatusUnprocessableEntity, "PRICING_RULE_MISSING", err.Error()
	case errors.Is(err, domain.ErrUploadFailed):
		return http.StatusInternalServerError, "UPLOAD_FAILED", "artifact upload to storage failed"
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR", "an internal error occurred"
	}
}

// HandleError maps a domain error and sends the appropriate error response.
func HandleError(c *gin.Context, err error) {
	status, code, msg := MapDomainError(err)
	if status >= 500 {
		requestID, _ := c.Get("request_id")
		log.Printf("[%s] internal error: %v", requestID, err)
	}
	RespondError(c, status, code, msg)
}
