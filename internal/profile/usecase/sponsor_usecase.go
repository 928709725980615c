package usecase

import (
	"context"
	"strings"

	validation "github.com/jellydator/validation"

	"github.com/google/uuid"

	"github.com/addislabs/placement/internal/profile/domain"

	appValidation "github.com/addislabs/placement/internal/validation"
)

// SaveSponsorProfileInput contains the editable sponsor profile fields.
type SaveSponsorProfileInput struct {
	UserID        string `json:"user_id"`
	FullName      string `json:"full_name"`
	Country       string `json:"country"`
	City          string `json:"city"`
	HouseholdSize int    `json:"household_size"`
}

// sponsorProfileUseCase implements SponsorProfileUseCase.
type sponsorProfileUseCase struct {
	sponsorRepo SponsorRepository
	maidRepo    MaidRepository
}

// NewSponsorProfileUseCase creates a new SponsorProfileUseCase with the provided dependencies.
func NewSponsorProfileUseCase(
	sponsorRepo SponsorRepository,
	maidRepo MaidRepository,
) SponsorProfileUseCase {
	return &sponsorProfileUseCase{
		sponsorRepo: sponsorRepo,
		maidRepo:    maidRepo,
	}
}

func (uc *sponsorProfileUseCase) validateSaveInput(input SaveSponsorProfileInput) error {
	err := validation.ValidateStruct(&input,
		validation.Field(&input.UserID,
			validation.Required.Error("user id is required"),
			appValidation.NotBlank,
		),
		validation.Field(&input.FullName,
			validation.Required.Error("full name is required"),
			appValidation.NotBlank,
			validation.Length(1, 255).Error("full name must be between 1 and 255 characters"),
		),
		validation.Field(&input.Country,
			validation.Required.Error("country is required"),
			appValidation.GCCCountry,
		),
		validation.Field(&input.HouseholdSize,
			validation.Min(0).Error("household size cannot be negative"),
		),
	)
	return appValidation.WrapValidationError(err)
}

// Save creates the account's profile on first call and updates it on later
// calls.
func (uc *sponsorProfileUseCase) Save(
	ctx context.Context,
	input SaveSponsorProfileInput,
) (*domain.SponsorProfile, error) {
	if err := uc.validateSaveInput(input); err != nil {
		return nil, err
	}

	profile, err := uc.sponsorRepo.GetByUserID(ctx, input.UserID)
	if err != nil {
		if !isNotFound(err) {
			return nil, err
		}
		profile = &domain.SponsorProfile{
			ID:           uuid.Must(uuid.NewV7()),
			UserID:       input.UserID,
			Verification: domain.VerificationPending,
		}
	}

	profile.FullName = strings.TrimSpace(input.FullName)
	profile.Country = strings.ToUpper(strings.TrimSpace(input.Country))
	profile.City = strings.TrimSpace(input.City)
	profile.HouseholdSize = input.HouseholdSize

	if err := uc.sponsorRepo.Upsert(ctx, profile); err != nil {
		return nil, err
	}

	return profile, nil
}

// GetByUserID retrieves the profile owned by the given account.
func (uc *sponsorProfileUseCase) GetByUserID(ctx context.Context, userID string) (*domain.SponsorProfile, error) {
	return uc.sponsorRepo.GetByUserID(ctx, userID)
}

// Verify records an admin approval for a pending profile.
func (uc *sponsorProfileUseCase) Verify(ctx context.Context, id uuid.UUID) error {
	profile, err := uc.sponsorRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := profile.Verify(); err != nil {
		return err
	}

	return uc.sponsorRepo.SetVerification(ctx, profile.ID, profile.Verification, profile.VerifiedAt)
}

// Reject records an admin rejection for a pending profile.
func (uc *sponsorProfileUseCase) Reject(ctx context.Context, id uuid.UUID) error {
	profile, err := uc.sponsorRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := profile.RejectVerification(); err != nil {
		return err
	}

	return uc.sponsorRepo.SetVerification(ctx, profile.ID, profile.Verification, profile.VerifiedAt)
}

// GetFavoriteMaidIDs retrieves the sponsor's favorite worker profile IDs.
func (uc *sponsorProfileUseCase) GetFavoriteMaidIDs(ctx context.Context, sponsorID uuid.UUID) ([]uuid.UUID, error) {
	if _, err := uc.sponsorRepo.GetByID(ctx, sponsorID); err != nil {
		return nil, err
	}
	return uc.sponsorRepo.GetFavoriteMaidIDs(ctx, sponsorID)
}

// AddFavorite records a worker on the sponsor's favorite list. The worker
// profile must exist.
func (uc *sponsorProfileUseCase) AddFavorite(ctx context.Context, sponsorID, maidID uuid.UUID) error {
	if _, err := uc.sponsorRepo.GetByID(ctx, sponsorID); err != nil {
		return err
	}
	if _, err := uc.maidRepo.GetByID(ctx, maidID); err != nil {
		return err
	}
	return uc.sponsorRepo.AddFavorite(ctx, sponsorID, maidID)
}

// RemoveFavorite removes a worker from the sponsor's favorite list.
func (uc *sponsorProfileUseCase) RemoveFavorite(ctx context.Context, sponsorID, maidID uuid.UUID) error {
	return uc.sponsorRepo.RemoveFavorite(ctx, sponsorID, maidID)
}
