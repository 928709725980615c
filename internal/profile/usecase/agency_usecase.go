package usecase

import (
	"context"
	"strings"

	validation "github.com/jellydator/validation"

	"github.com/addislabs/placement/internal/profile/domain"
	"github.com/addislabs/placement/internal/storage"

	appValidation "github.com/addislabs/placement/internal/validation"
)

// SaveAgencyProfileInput contains the editable agency profile fields.
type SaveAgencyProfileInput struct {
	UserID        string `json:"user_id"`
	AgencyName    string `json:"agency_name"`
	LicenseNumber string `json:"license_number"`
	Country       string `json:"country"`
	Website       string `json:"website"`
}

// agencyProfileUseCase implements AgencyProfileUseCase.
type agencyProfileUseCase struct {
	agencyRepo    AgencyRepository
	documentStore storage.DocumentStore
}

// NewAgencyProfileUseCase creates a new AgencyProfileUseCase with the provided dependencies.
func NewAgencyProfileUseCase(
	agencyRepo AgencyRepository,
	documentStore storage.DocumentStore,
) AgencyProfileUseCase {
	return &agencyProfileUseCase{
		agencyRepo:    agencyRepo,
		documentStore: documentStore,
	}
}

func (uc *agencyProfileUseCase) validateSaveInput(input SaveAgencyProfileInput) error {
	err := validation.ValidateStruct(&input,
		validation.Field(&input.UserID,
			validation.Required.Error("user id is required"),
			appValidation.NotBlank,
		),
		validation.Field(&input.AgencyName,
			validation.Required.Error("agency name is required"),
			appValidation.NotBlank,
			validation.Length(1, 255).Error("agency name must be between 1 and 255 characters"),
		),
		validation.Field(&input.LicenseNumber,
			validation.Required.Error("license number is required"),
			appValidation.NotBlank,
		),
		validation.Field(&input.Country,
			validation.Required.Error("country is required"),
			appValidation.GCCCountry,
		),
	)
	return appValidation.WrapValidationError(err)
}

// Save creates the account's profile on first call and updates it on later
// calls.
func (uc *agencyProfileUseCase) Save(
	ctx context.Context,
	input SaveAgencyProfileInput,
) (*domain.AgencyProfile, error) {
	if err := uc.validateSaveInput(input); err != nil {
		return nil, err
	}

	profile, err := uc.agencyRepo.GetByUserID(ctx, input.UserID)
	if err != nil {
		if !isNotFound(err) {
			return nil, err
		}
		profile = &domain.AgencyProfile{
			UserID:       input.UserID,
			Verification: domain.VerificationPending,
		}
	}

	profile.AgencyName = strings.TrimSpace(input.AgencyName)
	profile.LicenseNumber = strings.TrimSpace(input.LicenseNumber)
	profile.Country = strings.ToUpper(strings.TrimSpace(input.Country))
	profile.Website = strings.TrimSpace(input.Website)

	if err := uc.agencyRepo.Upsert(ctx, profile); err != nil {
		return nil, err
	}

	return profile, nil
}

// GetByUserID retrieves the profile owned by the given account.
func (uc *agencyProfileUseCase) GetByUserID(ctx context.Context, userID string) (*domain.AgencyProfile, error) {
	return uc.agencyRepo.GetByUserID(ctx, userID)
}

// List retrieves agency profiles, most recent first.
func (uc *agencyProfileUseCase) List(ctx context.Context, limit, offset int) ([]*domain.AgencyProfile, error) {
	return uc.agencyRepo.List(ctx, limit, offset)
}

// Verify records an admin approval for a pending profile.
func (uc *agencyProfileUseCase) Verify(ctx context.Context, userID string) error {
	profile, err := uc.agencyRepo.GetByUserID(ctx, userID)
	if err != nil {
		return err
	}

	if err := profile.Verify(); err != nil {
		return err
	}

	return uc.agencyRepo.SetVerification(ctx, profile.UserID, profile.Verification, profile.VerifiedAt)
}

// Reject records an admin rejection for a pending profile.
func (uc *agencyProfileUseCase) Reject(ctx context.Context, userID string) error {
	profile, err := uc.agencyRepo.GetByUserID(ctx, userID)
	if err != nil {
		return err
	}

	if err := profile.RejectVerification(); err != nil {
		return err
	}

	return uc.agencyRepo.SetVerification(ctx, profile.UserID, profile.Verification, profile.VerifiedAt)
}

// AttachLicense stores the agency license document and records its URL on
// the profile.
func (uc *agencyProfileUseCase) AttachLicense(
	ctx context.Context,
	userID string,
	data []byte,
	contentType string,
) (*domain.AgencyProfile, error) {
	profile, err := uc.agencyRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	key := documentKey("agency-licenses", profile.UserID, contentType)
	storedKey, err := uc.documentStore.Save(ctx, key, data, contentType)
	if err != nil {
		return nil, err
	}

	profile.LicenseURL = storedKey
	if err := uc.agencyRepo.Upsert(ctx, profile); err != nil {
		return nil, err
	}

	return profile, nil
}
