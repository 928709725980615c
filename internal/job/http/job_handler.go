// Package http provides HTTP handlers for job posting operations.
package http

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/addislabs/placement/internal/httputil"
	"github.com/addislabs/placement/internal/job/domain"
	"github.com/addislabs/placement/internal/job/http/dto"

	jobUseCase "github.com/addislabs/placement/internal/job/usecase"
)

// JobHandler handles HTTP requests for job posting operations.
type JobHandler struct {
	jobUseCase jobUseCase.JobUseCase
	logger     *slog.Logger
}

// NewJobHandler creates a new job posting handler with required dependencies.
func NewJobHandler(useCase jobUseCase.JobUseCase, logger *slog.Logger) *JobHandler {
	return &JobHandler{
		jobUseCase: useCase,
		logger:     logger,
	}
}

// SaveHandler publishes a new job posting or edits an existing open one.
// PUT /v1/job-postings
func (h *JobHandler) SaveHandler(c *gin.Context) {
	var req jobUseCase.SaveJobPostingInput

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	job, err := h.jobUseCase.Save(c.Request.Context(), req)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapJobPostingToResponse(job))
}

// GetHandler retrieves a job posting by ID.
// GET /v1/job-postings/:id
func (h *JobHandler) GetHandler(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleValidationErrorGin(c,
			fmt.Errorf("invalid job posting ID format: must be a valid UUID"),
			h.logger)
		return
	}

	job, err := h.jobUseCase.Get(c.Request.Context(), id)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapJobPostingToResponse(job))
}

// SearchHandler retrieves job postings matching the query filters.
// GET /v1/job-postings?sponsor_id=...&country=AE&status=open&offset=0&limit=50
func (h *JobHandler) SearchHandler(c *gin.Context) {
	offset, limit, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	criteria := domain.JobSearchCriteria{
		Country: c.Query("country"),
		Status:  domain.JobStatus(c.Query("status")),
		Limit:   limit,
		Offset:  offset,
	}

	if sponsorID := c.Query("sponsor_id"); sponsorID != "" {
		id, err := uuid.Parse(sponsorID)
		if err != nil {
			httputil.HandleValidationErrorGin(c,
				fmt.Errorf("invalid sponsor_id parameter: must be a valid UUID"),
				h.logger)
			return
		}
		criteria.SponsorID = id
	}

	jobs, total, err := h.jobUseCase.Search(c.Request.Context(), criteria)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapJobPostingsToSearchResponse(jobs, total))
}

// CloseHandler stops a posting from accepting further applications.
// POST /v1/job-postings/:id/close
func (h *JobHandler) CloseHandler(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleValidationErrorGin(c,
			fmt.Errorf("invalid job posting ID format: must be a valid UUID"),
			h.logger)
		return
	}

	if err := h.jobUseCase.Close(c.Request.Context(), id); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Status(http.StatusNoContent)
}
