package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"rfpflow/internal/service"
)

// AuthHandler handles admin authentication.
type AuthHandler struct {
	authService service.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// IssueToken handles POST /api/v1/auth/token
func (h *AuthHandler) IssueToken(c *gin.Context) {
	var input service.TokenInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	token, err := h.authService.IssueToken(c.Request.Context(), input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, token)
}
