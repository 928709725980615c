// Package usecase implements business logic orchestration for profile operations.
package usecase

import (
	"context"
	"fmt"
	"mime"
	"strings"
	"time"

	validation "github.com/jellydator/validation"

	"github.com/google/uuid"

	"github.com/addislabs/placement/internal/profile/domain"
	"github.com/addislabs/placement/internal/storage"

	apperrors "github.com/addislabs/placement/internal/errors"
	appValidation "github.com/addislabs/placement/internal/validation"
)

// isNotFound distinguishes a missing profile from an infrastructure failure
// on the create-or-update path.
func isNotFound(err error) bool {
	return apperrors.Is(err, apperrors.ErrNotFound)
}

// SaveMaidProfileInput contains the editable worker profile fields.
type SaveMaidProfileInput struct {
	UserID          string    `json:"user_id"`
	FullName        string    `json:"full_name"`
	Nationality     string    `json:"nationality"`
	Languages       []string  `json:"languages"`
	Skills          []string  `json:"skills"`
	ExperienceYears int       `json:"experience_years"`
	DateOfBirth     time.Time `json:"date_of_birth"`
	Bio             string    `json:"bio"`
}

// maidProfileUseCase implements MaidProfileUseCase.
type maidProfileUseCase struct {
	maidRepo      MaidRepository
	documentStore storage.DocumentStore
}

// NewMaidProfileUseCase creates a new MaidProfileUseCase with the provided dependencies.
func NewMaidProfileUseCase(
	maidRepo MaidRepository,
	documentStore storage.DocumentStore,
) MaidProfileUseCase {
	return &maidProfileUseCase{
		maidRepo:      maidRepo,
		documentStore: documentStore,
	}
}

func (uc *maidProfileUseCase) validateSaveInput(input SaveMaidProfileInput) error {
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
		validation.Field(&input.ExperienceYears,
			validation.Min(0).Error("experience years cannot be negative"),
			validation.Max(60).Error("experience years is too large"),
		),
		validation.Field(&input.Bio,
			validation.Length(0, 2000).Error("bio must be at most 2000 characters"),
		),
	)
	return appValidation.WrapValidationError(err)
}

// Save creates the account's profile on first call and updates it on later
// calls. Verification state is never touched by edits.
func (uc *maidProfileUseCase) Save(
	ctx context.Context,
	input SaveMaidProfileInput,
) (*domain.MaidProfile, error) {
	if err := uc.validateSaveInput(input); err != nil {
		return nil, err
	}

	profile, err := uc.maidRepo.GetByUserID(ctx, input.UserID)
	if err != nil {
		if !isNotFound(err) {
			return nil, err
		}
		profile = &domain.MaidProfile{
			ID:           uuid.Must(uuid.NewV7()),
			UserID:       input.UserID,
			Verification: domain.VerificationPending,
		}
	}

	profile.FullName = strings.TrimSpace(input.FullName)
	profile.Nationality = strings.TrimSpace(input.Nationality)
	profile.Languages = input.Languages
	profile.Skills = input.Skills
	profile.ExperienceYears = input.ExperienceYears
	profile.DateOfBirth = input.DateOfBirth
	profile.Bio = strings.TrimSpace(input.Bio)

	if err := uc.maidRepo.Upsert(ctx, profile); err != nil {
		return nil, err
	}

	return profile, nil
}

// Get retrieves a profile by its primary key.
func (uc *maidProfileUseCase) Get(ctx context.Context, id uuid.UUID) (*domain.MaidProfile, error) {
	return uc.maidRepo.GetByID(ctx, id)
}

// GetByUserID retrieves the profile owned by the given account.
func (uc *maidProfileUseCase) GetByUserID(ctx context.Context, userID string) (*domain.MaidProfile, error) {
	return uc.maidRepo.GetByUserID(ctx, userID)
}

// Search retrieves profiles matching the criteria along with the total match
// count for pagination.
func (uc *maidProfileUseCase) Search(
	ctx context.Context,
	criteria domain.MaidSearchCriteria,
) ([]*domain.MaidProfile, int, error) {
	profiles, err := uc.maidRepo.Search(ctx, criteria)
	if err != nil {
		return nil, 0, err
	}

	count, err := uc.maidRepo.Count(ctx, criteria)
	if err != nil {
		return nil, 0, err
	}

	return profiles, count, nil
}

// Verify records an admin approval for a pending profile.
func (uc *maidProfileUseCase) Verify(ctx context.Context, id uuid.UUID) error {
	profile, err := uc.maidRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := profile.Verify(); err != nil {
		return err
	}

	return uc.maidRepo.SetVerification(ctx, profile.ID, profile.Verification, profile.VerifiedAt)
}

// Reject records an admin rejection for a pending profile.
func (uc *maidProfileUseCase) Reject(ctx context.Context, id uuid.UUID) error {
	profile, err := uc.maidRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := profile.RejectVerification(); err != nil {
		return err
	}

	return uc.maidRepo.SetVerification(ctx, profile.ID, profile.Verification, profile.VerifiedAt)
}

// AttachPhoto stores the profile photo in the document store and records its
// URL on the profile.
func (uc *maidProfileUseCase) AttachPhoto(
	ctx context.Context,
	id uuid.UUID,
	data []byte,
	contentType string,
) (*domain.MaidProfile, error) {
	profile, err := uc.maidRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	key := documentKey("maid-photos", profile.ID.String(), contentType)
	storedKey, err := uc.documentStore.Save(ctx, key, data, contentType)
	if err != nil {
		return nil, err
	}

	profile.PhotoURL = storedKey
	if err := uc.maidRepo.Upsert(ctx, profile); err != nil {
		return nil, err
	}

	return profile, nil
}

// documentKey builds a stable object key from the owning entity and the
// upload's content type. Re-uploading replaces the previous object.
func documentKey(prefix, id, contentType string) string {
	ext := ".bin"
	if exts, err := mime.ExtensionsByType(contentType); err == nil && len(exts) > 0 {
		ext = exts[0]
	}
	return fmt.Sprintf("%s/%s%s", prefix, id, ext)
}
