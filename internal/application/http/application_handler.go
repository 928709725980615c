// Package http provides HTTP handlers for job application operations.
package http

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/addislabs/placement/internal/application/domain"
	"github.com/addislabs/placement/internal/application/http/dto"
	"github.com/addislabs/placement/internal/httputil"

	applicationUseCase "github.com/addislabs/placement/internal/application/usecase"
)

// ApplicationHandler handles HTTP requests for job application operations.
type ApplicationHandler struct {
	applicationUseCase applicationUseCase.ApplicationUseCase
	logger             *slog.Logger
}

// NewApplicationHandler creates a new application handler with required dependencies.
func NewApplicationHandler(
	useCase applicationUseCase.ApplicationUseCase,
	logger *slog.Logger,
) *ApplicationHandler {
	return &ApplicationHandler{
		applicationUseCase: useCase,
		logger:             logger,
	}
}

// parseApplicationID extracts and validates the application ID path parameter.
func (h *ApplicationHandler) parseApplicationID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleValidationErrorGin(c,
			fmt.Errorf("invalid application ID format: must be a valid UUID"),
			h.logger)
		return uuid.Nil, false
	}
	return id, true
}

// SubmitHandler creates an application for an open job posting.
// POST /v1/applications
// Returns 201 Created, 409 Conflict when an active application exists.
func (h *ApplicationHandler) SubmitHandler(c *gin.Context) {
	var req applicationUseCase.SubmitApplicationInput

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	app, err := h.applicationUseCase.Submit(c.Request.Context(), req)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.MapApplicationToResponse(app))
}

// GetHandler retrieves an application by ID.
// GET /v1/applications/:id
func (h *ApplicationHandler) GetHandler(c *gin.Context) {
	id, ok := h.parseApplicationID(c)
	if !ok {
		return
	}

	app, err := h.applicationUseCase.Get(c.Request.Context(), id)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapApplicationToResponse(app))
}

// ReviewHandler marks a submitted application as reviewed.
// POST /v1/applications/:id/review
func (h *ApplicationHandler) ReviewHandler(c *gin.Context) {
	h.transition(c, h.applicationUseCase.Review)
}

// ShortlistHandler moves a reviewed application into the shortlist.
// POST /v1/applications/:id/shortlist
func (h *ApplicationHandler) ShortlistHandler(c *gin.Context) {
	h.transition(c, h.applicationUseCase.Shortlist)
}

// AcceptHandler marks a shortlisted application as accepted.
// POST /v1/applications/:id/accept
func (h *ApplicationHandler) AcceptHandler(c *gin.Context) {
	h.transition(c, h.applicationUseCase.Accept)
}

// WithdrawHandler is the worker-initiated exit from any non-terminal status.
// POST /v1/applications/:id/withdraw
func (h *ApplicationHandler) WithdrawHandler(c *gin.Context) {
	h.transition(c, h.applicationUseCase.Withdraw)
}

// transition runs a single-verb status change and returns the updated
// application. Invalid transitions map to 409 Conflict.
func (h *ApplicationHandler) transition(
	c *gin.Context,
	apply func(ctx context.Context, id uuid.UUID) (*domain.JobApplication, error),
) {
	id, ok := h.parseApplicationID(c)
	if !ok {
		return
	}

	app, err := apply(c.Request.Context(), id)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapApplicationToResponse(app))
}

// RejectHandler declines a reviewed or shortlisted application.
// POST /v1/applications/:id/reject
func (h *ApplicationHandler) RejectHandler(c *gin.Context) {
	id, ok := h.parseApplicationID(c)
	if !ok {
		return
	}

	var req dto.RejectApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}
	if err := req.Validate(); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	app, err := h.applicationUseCase.Reject(c.Request.Context(), id, req.Reason)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapApplicationToResponse(app))
}

// ListByJobHandler retrieves a job posting's applications.
// GET /v1/job-postings/:id/applications
func (h *ApplicationHandler) ListByJobHandler(c *gin.Context) {
	jobID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleValidationErrorGin(c,
			fmt.Errorf("invalid job posting ID format: must be a valid UUID"),
			h.logger)
		return
	}

	offset, limit, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	apps, total, err := h.applicationUseCase.ListByJob(c.Request.Context(), jobID, limit, offset)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapApplicationsToListResponse(apps, total))
}

// ListByMaidHandler retrieves a worker's applications.
// GET /v1/maid-profiles/:id/applications
func (h *ApplicationHandler) ListByMaidHandler(c *gin.Context) {
	maidID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleValidationErrorGin(c,
			fmt.Errorf("invalid maid profile ID format: must be a valid UUID"),
			h.logger)
		return
	}

	offset, limit, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	apps, err := h.applicationUseCase.ListByMaid(c.Request.Context(), maidID, limit, offset)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapApplicationsToListResponse(apps, len(apps)))
}

// HasAppliedHandler reports whether a worker has an active application for a job.
// GET /v1/job-postings/:id/applications/check?maid_id=...
func (h *ApplicationHandler) HasAppliedHandler(c *gin.Context) {
	jobID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleValidationErrorGin(c,
			fmt.Errorf("invalid job posting ID format: must be a valid UUID"),
			h.logger)
		return
	}

	maidID, err := uuid.Parse(c.Query("maid_id"))
	if err != nil {
		httputil.HandleValidationErrorGin(c,
			fmt.Errorf("invalid maid_id parameter: must be a valid UUID"),
			h.logger)
		return
	}

	applied, err := h.applicationUseCase.HasApplied(c.Request.Context(), jobID, maidID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.HasAppliedResponse{HasApplied: applied})
}
