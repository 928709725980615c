// Package http provides HTTP handlers for account operations.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/addislabs/placement/internal/httputil"
	"github.com/addislabs/placement/internal/user/domain"
	"github.com/addislabs/placement/internal/user/http/dto"
	userUseCase "github.com/addislabs/placement/internal/user/usecase"

	customValidation "github.com/addislabs/placement/internal/validation"
)

// UserHandler handles HTTP requests for account operations.
type UserHandler struct {
	userUseCase userUseCase.UserUseCase
	logger      *slog.Logger
}

// NewUserHandler creates a new user handler with required dependencies.
func NewUserHandler(userUseCase userUseCase.UserUseCase, logger *slog.Logger) *UserHandler {
	return &UserHandler{
		userUseCase: userUseCase,
		logger:      logger,
	}
}

// RegisterHandler creates a new account.
// POST /v1/users
// Returns 201 Created with the account representation.
func (h *UserHandler) RegisterHandler(c *gin.Context) {
	var req userUseCase.RegisterInput

	// Parse and bind JSON
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	// Call use case; input validation happens there
	user, err := h.userUseCase.Register(c.Request.Context(), req)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.MapUserToResponse(user))
}

// AuthenticateHandler verifies an email/password pair.
// POST /v1/users/authenticate
// Returns 200 OK with the account representation on success.
func (h *UserHandler) AuthenticateHandler(c *gin.Context) {
	var req dto.AuthenticateRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	user, err := h.userUseCase.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapUserToResponse(user))
}

// GetHandler retrieves an account by ID.
// GET /v1/users/:id
func (h *UserHandler) GetHandler(c *gin.Context) {
	user, err := h.userUseCase.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapUserToResponse(user))
}

// VerifyEmailHandler marks the account's email address as verified.
// POST /v1/users/:id/verify-email
// Returns 204 No Content.
func (h *UserHandler) VerifyEmailHandler(c *gin.Context) {
	if err := h.userUseCase.VerifyEmail(c.Request.Context(), c.Param("id")); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Data(http.StatusNoContent, "application/json", nil)
}

// VerifyPhoneHandler marks the account's phone number as verified.
// POST /v1/users/:id/verify-phone
// Returns 204 No Content.
func (h *UserHandler) VerifyPhoneHandler(c *gin.Context) {
	if err := h.userUseCase.VerifyPhone(c.Request.Context(), c.Param("id")); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Data(http.StatusNoContent, "application/json", nil)
}

// ChangePasswordHandler replaces the account password.
// PUT /v1/users/:id/password
// Returns 204 No Content.
func (h *UserHandler) ChangePasswordHandler(c *gin.Context) {
	var req dto.ChangePasswordRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	err := h.userUseCase.ChangePassword(
		c.Request.Context(),
		c.Param("id"),
		req.CurrentPassword,
		req.NewPassword,
	)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Data(http.StatusNoContent, "application/json", nil)
}

// SuspendHandler soft deletes an account.
// DELETE /v1/users/:id
// Returns 204 No Content. The record is kept with a suspended status.
func (h *UserHandler) SuspendHandler(c *gin.Context) {
	if err := h.userUseCase.Suspend(c.Request.Context(), c.Param("id")); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Data(http.StatusNoContent, "application/json", nil)
}

// ListHandler retrieves accounts with optional role/status filters.
// GET /v1/users?role=maid&status=active&offset=0&limit=50
func (h *UserHandler) ListHandler(c *gin.Context) {
	offset, limit, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	filter := domain.Filter{
		Limit:  limit,
		Offset: offset,
	}
	if roleStr := c.Query("role"); roleStr != "" {
		role, err := domain.ParseRole(roleStr)
		if err != nil {
			httputil.HandleValidationErrorGin(c, err, h.logger)
			return
		}
		filter.Role = role
	}
	if statusStr := c.Query("status"); statusStr != "" {
		filter.Status = domain.Status(statusStr)
	}

	users, err := h.userUseCase.List(c.Request.Context(), filter)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapUsersToListResponse(users))
}
