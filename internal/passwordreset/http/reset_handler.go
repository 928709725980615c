// Package http provides HTTP handlers for password reset operations.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/addislabs/placement/internal/httputil"
	"github.com/addislabs/placement/internal/passwordreset/http/dto"

	resetUseCase "github.com/addislabs/placement/internal/passwordreset/usecase"
	customValidation "github.com/addislabs/placement/internal/validation"
)

// ResetHandler handles HTTP requests for password reset operations.
type ResetHandler struct {
	resetUseCase resetUseCase.PasswordResetUseCase
	logger       *slog.Logger
}

// NewResetHandler creates a new password reset handler with required
// dependencies.
func NewResetHandler(resetUseCase resetUseCase.PasswordResetUseCase, logger *slog.Logger) *ResetHandler {
	return &ResetHandler{
		resetUseCase: resetUseCase,
		logger:       logger,
	}
}

// RequestHandler issues a password reset for an email address.
// POST /v1/password-resets
// Returns 202 Accepted with an identical body whether or not the email is
// registered. The plain token is handed to the delivery channel by the use
// case and never appears in the response.
func (h *ResetHandler) RequestHandler(c *gin.Context) {
	var req dto.RequestResetRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	if _, err := h.resetUseCase.Request(c.Request.Context(), req.Email); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusAccepted, dto.NewRequestResetResponse())
}

// ConfirmHandler consumes a reset token and replaces the account password.
// POST /v1/password-resets/confirm
// Returns 204 No Content on success, 401 for unknown or spent tokens.
func (h *ResetHandler) ConfirmHandler(c *gin.Context) {
	var req dto.ConfirmResetRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	if err := h.resetUseCase.Confirm(c.Request.Context(), req.Token, req.NewPassword); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Data(http.StatusNoContent, "application/json", nil)
}
