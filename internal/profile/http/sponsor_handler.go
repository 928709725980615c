package http

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/addislabs/placement/internal/httputil"
	"github.com/addislabs/placement/internal/profile/http/dto"

	profileUseCase "github.com/addislabs/placement/internal/profile/usecase"
)

// SponsorHandler handles HTTP requests for sponsor profile operations.
type SponsorHandler struct {
	sponsorUseCase profileUseCase.SponsorProfileUseCase
	logger         *slog.Logger
}

// NewSponsorHandler creates a new sponsor profile handler with required dependencies.
func NewSponsorHandler(
	sponsorUseCase profileUseCase.SponsorProfileUseCase,
	logger *slog.Logger,
) *SponsorHandler {
	return &SponsorHandler{
		sponsorUseCase: sponsorUseCase,
		logger:         logger,
	}
}

// SaveHandler creates or updates the caller's sponsor profile.
// PUT /v1/sponsor-profiles
func (h *SponsorHandler) SaveHandler(c *gin.Context) {
	var req profileUseCase.SaveSponsorProfileInput

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	profile, err := h.sponsorUseCase.Save(c.Request.Context(), req)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapSponsorProfileToResponse(profile))
}

// GetByUserHandler retrieves the sponsor profile owned by an account.
// GET /v1/users/:id/sponsor-profile
func (h *SponsorHandler) GetByUserHandler(c *gin.Context) {
	profile, err := h.sponsorUseCase.GetByUserID(c.Request.Context(), c.Param("id"))
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapSponsorProfileToResponse(profile))
}

// VerifyHandler records an admin approval.
// POST /v1/sponsor-profiles/:id/verify
func (h *SponsorHandler) VerifyHandler(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleValidationErrorGin(c,
			fmt.Errorf("invalid profile ID format: must be a valid UUID"),
			h.logger)
		return
	}

	if err := h.sponsorUseCase.Verify(c.Request.Context(), id); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Data(http.StatusNoContent, "application/json", nil)
}

// RejectHandler records an admin rejection.
// POST /v1/sponsor-profiles/:id/reject
func (h *SponsorHandler) RejectHandler(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleValidationErrorGin(c,
			fmt.Errorf("invalid profile ID format: must be a valid UUID"),
			h.logger)
		return
	}

	if err := h.sponsorUseCase.Reject(c.Request.Context(), id); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Data(http.StatusNoContent, "application/json", nil)
}

// ListFavoritesHandler retrieves the sponsor's favorite worker profile IDs.
// GET /v1/sponsor-profiles/:id/favorites
func (h *SponsorHandler) ListFavoritesHandler(c *gin.Context) {
	sponsorID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleValidationErrorGin(c,
			fmt.Errorf("invalid profile ID format: must be a valid UUID"),
			h.logger)
		return
	}

	maidIDs, err := h.sponsorUseCase.GetFavoriteMaidIDs(c.Request.Context(), sponsorID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	data := make([]string, 0, len(maidIDs))
	for _, id := range maidIDs {
		data = append(data, id.String())
	}

	c.JSON(http.StatusOK, dto.FavoriteMaidIDsResponse{Data: data})
}

// AddFavoriteHandler records a worker on the sponsor's favorite list.
// PUT /v1/sponsor-profiles/:id/favorites/:maid_id
// Returns 204 No Content. Adding the same worker twice is a no-op.
func (h *SponsorHandler) AddFavoriteHandler(c *gin.Context) {
	sponsorID, maidID, ok := h.parseFavoriteIDs(c)
	if !ok {
		return
	}

	if err := h.sponsorUseCase.AddFavorite(c.Request.Context(), sponsorID, maidID); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Data(http.StatusNoContent, "application/json", nil)
}

// RemoveFavoriteHandler removes a worker from the sponsor's favorite list.
// DELETE /v1/sponsor-profiles/:id/favorites/:maid_id
// Returns 204 No Content.
func (h *SponsorHandler) RemoveFavoriteHandler(c *gin.Context) {
	sponsorID, maidID, ok := h.parseFavoriteIDs(c)
	if !ok {
		return
	}

	if err := h.sponsorUseCase.RemoveFavorite(c.Request.Context(), sponsorID, maidID); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Data(http.StatusNoContent, "application/json", nil)
}

func (h *SponsorHandler) parseFavoriteIDs(c *gin.Context) (sponsorID, maidID uuid.UUID, ok bool) {
	sponsorID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleValidationErrorGin(c,
			fmt.Errorf("invalid profile ID format: must be a valid UUID"),
			h.logger)
		return uuid.Nil, uuid.Nil, false
	}

	maidID, err = uuid.Parse(c.Param("maid_id"))
	if err != nil {
		httputil.HandleValidationErrorGin(c,
			fmt.Errorf("invalid maid profile ID format: must be a valid UUID"),
			h.logger)
		return uuid.Nil, uuid.Nil, false
	}

	return sponsorID, maidID, true
}
