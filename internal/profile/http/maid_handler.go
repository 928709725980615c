// Package http provides HTTP handlers for profile operations.
package http

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/addislabs/placement/internal/httputil"
	"github.com/addislabs/placement/internal/profile/domain"
	"github.com/addislabs/placement/internal/profile/http/dto"

	profileUseCase "github.com/addislabs/placement/internal/profile/usecase"
)

// maxUploadBytes caps profile photo and license document uploads.
const maxUploadBytes = 5 << 20

// MaidHandler handles HTTP requests for worker profile operations.
type MaidHandler struct {
	maidUseCase profileUseCase.MaidProfileUseCase
	logger      *slog.Logger
}

// NewMaidHandler creates a new worker profile handler with required dependencies.
func NewMaidHandler(maidUseCase profileUseCase.MaidProfileUseCase, logger *slog.Logger) *MaidHandler {
	return &MaidHandler{
		maidUseCase: maidUseCase,
		logger:      logger,
	}
}

// SaveHandler creates or updates the caller's worker profile.
// PUT /v1/maid-profiles
// Returns 200 OK with the profile, including its completion percentage.
func (h *MaidHandler) SaveHandler(c *gin.Context) {
	var req profileUseCase.SaveMaidProfileInput

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	profile, err := h.maidUseCase.Save(c.Request.Context(), req)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapMaidProfileToResponse(profile))
}

// GetHandler retrieves a worker profile by ID.
// GET /v1/maid-profiles/:id
func (h *MaidHandler) GetHandler(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleValidationErrorGin(c,
			fmt.Errorf("invalid profile ID format: must be a valid UUID"),
			h.logger)
		return
	}

	profile, err := h.maidUseCase.Get(c.Request.Context(), id)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapMaidProfileToResponse(profile))
}

// GetByUserHandler retrieves the worker profile owned by an account.
// GET /v1/users/:id/maid-profile
func (h *MaidHandler) GetByUserHandler(c *gin.Context) {
	profile, err := h.maidUseCase.GetByUserID(c.Request.Context(), c.Param("id"))
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapMaidProfileToResponse(profile))
}

// SearchHandler retrieves worker profiles matching the query filters.
// GET /v1/maid-profiles?nationality=Ethiopian&verification=verified&min_experience=2&offset=0&limit=50
func (h *MaidHandler) SearchHandler(c *gin.Context) {
	offset, limit, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	criteria := domain.MaidSearchCriteria{
		Nationality:  c.Query("nationality"),
		Verification: domain.Verification(c.Query("verification")),
		Limit:        limit,
		Offset:       offset,
	}

	if minExp := c.Query("min_experience"); minExp != "" {
		years, err := strconv.Atoi(minExp)
		if err != nil || years < 0 {
			httputil.HandleValidationErrorGin(c,
				fmt.Errorf("invalid min_experience parameter: must be a non-negative integer"),
				h.logger)
			return
		}
		criteria.MinExperienceYears = years
	}

	profiles, total, err := h.maidUseCase.Search(c.Request.Context(), criteria)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapMaidProfilesToSearchResponse(profiles, total))
}

// VerifyHandler records an admin approval.
// POST /v1/maid-profiles/:id/verify
// Returns 204 No Content, or 409 Conflict if the review was already decided.
func (h *MaidHandler) VerifyHandler(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleValidationErrorGin(c,
			fmt.Errorf("invalid profile ID format: must be a valid UUID"),
			h.logger)
		return
	}

	if err := h.maidUseCase.Verify(c.Request.Context(), id); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Data(http.StatusNoContent, "application/json", nil)
}

// RejectHandler records an admin rejection.
// POST /v1/maid-profiles/:id/reject
// Returns 204 No Content, or 409 Conflict if the review was already decided.
func (h *MaidHandler) RejectHandler(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleValidationErrorGin(c,
			fmt.Errorf("invalid profile ID format: must be a valid UUID"),
			h.logger)
		return
	}

	if err := h.maidUseCase.Reject(c.Request.Context(), id); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Data(http.StatusNoContent, "application/json", nil)
}

// AttachPhotoHandler stores the raw request body as the profile photo.
// PUT /v1/maid-profiles/:id/photo
// The Content-Type header determines the stored object's type.
func (h *MaidHandler) AttachPhotoHandler(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleValidationErrorGin(c,
			fmt.Errorf("invalid profile ID format: must be a valid UUID"),
			h.logger)
		return
	}

	data, contentType, err := readUpload(c)
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	profile, err := h.maidUseCase.AttachPhoto(c.Request.Context(), id, data, contentType)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapMaidProfileToResponse(profile))
}

// readUpload reads a size-capped raw upload body and its content type.
func readUpload(c *gin.Context) ([]byte, string, error) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadBytes)

	data, err := c.GetRawData()
	if err != nil {
		return nil, "", fmt.Errorf("failed to read upload body: %w", err)
	}
	if len(data) == 0 {
		return nil, "", fmt.Errorf("upload body cannot be empty")
	}

	contentType := c.ContentType()
	if contentType == "" {
		return nil, "", fmt.Errorf("content type is required")
	}

	return data, contentType, nil
}
