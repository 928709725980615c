package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/addislabs/placement/internal/httputil"
	"github.com/addislabs/placement/internal/profile/http/dto"

	profileUseCase "github.com/addislabs/placement/internal/profile/usecase"
)

// AgencyHandler handles HTTP requests for agency profile operations.
// Agency profiles are addressed by the owning account ID.
type AgencyHandler struct {
	agencyUseCase profileUseCase.AgencyProfileUseCase
	logger        *slog.Logger
}

// NewAgencyHandler creates a new agency profile handler with required dependencies.
func NewAgencyHandler(
	agencyUseCase profileUseCase.AgencyProfileUseCase,
	logger *slog.Logger,
) *AgencyHandler {
	return &AgencyHandler{
		agencyUseCase: agencyUseCase,
		logger:        logger,
	}
}

// SaveHandler creates or updates the caller's agency profile.
// PUT /v1/agency-profiles
func (h *AgencyHandler) SaveHandler(c *gin.Context) {
	var req profileUseCase.SaveAgencyProfileInput

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	profile, err := h.agencyUseCase.Save(c.Request.Context(), req)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapAgencyProfileToResponse(profile))
}

// GetHandler retrieves an agency profile by the owning account ID.
// GET /v1/agency-profiles/:id
func (h *AgencyHandler) GetHandler(c *gin.Context) {
	profile, err := h.agencyUseCase.GetByUserID(c.Request.Context(), c.Param("id"))
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapAgencyProfileToResponse(profile))
}

// ListHandler retrieves agency profiles with pagination support.
// GET /v1/agency-profiles?offset=0&limit=50
func (h *AgencyHandler) ListHandler(c *gin.Context) {
	offset, limit, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	profiles, err := h.agencyUseCase.List(c.Request.Context(), limit, offset)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapAgencyProfilesToListResponse(profiles))
}

// VerifyHandler records an admin approval.
// POST /v1/agency-profiles/:id/verify
func (h *AgencyHandler) VerifyHandler(c *gin.Context) {
	if err := h.agencyUseCase.Verify(c.Request.Context(), c.Param("id")); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Data(http.StatusNoContent, "application/json", nil)
}

// RejectHandler records an admin rejection.
// POST /v1/agency-profiles/:id/reject
func (h *AgencyHandler) RejectHandler(c *gin.Context) {
	if err := h.agencyUseCase.Reject(c.Request.Context(), c.Param("id")); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Data(http.StatusNoContent, "application/json", nil)
}

// AttachLicenseHandler stores the raw request body as the agency license document.
// PUT /v1/agency-profiles/:id/license
func (h *AgencyHandler) AttachLicenseHandler(c *gin.Context) {
	data, contentType, err := readUpload(c)
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	profile, err := h.agencyUseCase.AttachLicense(c.Request.Context(), c.Param("id"), data, contentType)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapAgencyProfileToResponse(profile))
}
