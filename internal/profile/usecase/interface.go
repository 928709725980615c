// Package usecase defines business logic interfaces for profile operations.
package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/addislabs/placement/internal/profile/domain"
)

// MaidRepository defines persistence operations for worker profiles.
// Implementations must support transaction-aware operations via context propagation.
type MaidRepository interface {
	// Upsert inserts the profile or replaces its mutable fields when the
	// primary key already exists.
	Upsert(ctx context.Context, profile *domain.MaidProfile) error

	// GetByID retrieves a profile by its primary key.
	// Returns ErrMaidProfileNotFound if not found.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.MaidProfile, error)

	// GetByUserID retrieves the profile owned by the given account.
	// Returns ErrMaidProfileNotFound if not found.
	GetByUserID(ctx context.Context, userID string) (*domain.MaidProfile, error)

	// Search retrieves profiles matching the criteria, most recent first.
	Search(ctx context.Context, criteria domain.MaidSearchCriteria) ([]*domain.MaidProfile, error)

	// Count reports how many profiles match the criteria.
	Count(ctx context.Context, criteria domain.MaidSearchCriteria) (int, error)

	// SetVerification records the outcome of an admin review.
	SetVerification(ctx context.Context, id uuid.UUID, verification domain.Verification, verifiedAt *time.Time) error
}

// SponsorRepository defines persistence operations for sponsor profiles and
// the sponsor's favorite worker list.
type SponsorRepository interface {
	Upsert(ctx context.Context, profile *domain.SponsorProfile) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.SponsorProfile, error)
	GetByUserID(ctx context.Context, userID string) (*domain.SponsorProfile, error)
	SetVerification(ctx context.Context, id uuid.UUID, verification domain.Verification, verifiedAt *time.Time) error

	// GetFavoriteMaidIDs retrieves the worker profile IDs the sponsor has favorited.
	GetFavoriteMaidIDs(ctx context.Context, sponsorID uuid.UUID) ([]uuid.UUID, error)

	// AddFavorite records a worker on the sponsor's favorite list. Idempotent.
	AddFavorite(ctx context.Context, sponsorID, maidID uuid.UUID) error

	// RemoveFavorite removes a worker from the sponsor's favorite list.
	// Returns ErrFavoriteNotFound if the worker was not favorited.
	RemoveFavorite(ctx context.Context, sponsorID, maidID uuid.UUID) error
}

// AgencyRepository defines persistence operations for agency profiles,
// keyed by the owning account ID.
type AgencyRepository interface {
	Upsert(ctx context.Context, profile *domain.AgencyProfile) error
	GetByUserID(ctx context.Context, userID string) (*domain.AgencyProfile, error)
	List(ctx context.Context, limit, offset int) ([]*domain.AgencyProfile, error)
	SetVerification(ctx context.Context, userID string, verification domain.Verification, verifiedAt *time.Time) error
}

// MaidProfileUseCase defines business logic operations for worker profiles.
type MaidProfileUseCase interface {
	// Save creates the account's profile on first call and updates it on
	// later calls. New profiles start with a pending verification.
	Save(ctx context.Context, input SaveMaidProfileInput) (*domain.MaidProfile, error)

	// Get retrieves a profile by its primary key.
	Get(ctx context.Context, id uuid.UUID) (*domain.MaidProfile, error)

	// GetByUserID retrieves the profile owned by the given account.
	GetByUserID(ctx context.Context, userID string) (*domain.MaidProfile, error)

	// Search retrieves profiles matching the criteria along with the total
	// match count for pagination.
	Search(ctx context.Context, criteria domain.MaidSearchCriteria) ([]*domain.MaidProfile, int, error)

	// Verify records an admin approval. Only pending profiles can be verified.
	Verify(ctx context.Context, id uuid.UUID) error

	// Reject records an admin rejection. Only pending profiles can be rejected.
	Reject(ctx context.Context, id uuid.UUID) error

	// AttachPhoto stores the profile photo in the document store and records
	// its URL on the profile.
	AttachPhoto(ctx context.Context, id uuid.UUID, data []byte, contentType string) (*domain.MaidProfile, error)
}

// SponsorProfileUseCase defines business logic operations for sponsor profiles.
type SponsorProfileUseCase interface {
	Save(ctx context.Context, input SaveSponsorProfileInput) (*domain.SponsorProfile, error)
	GetByUserID(ctx context.Context, userID string) (*domain.SponsorProfile, error)
	Verify(ctx context.Context, id uuid.UUID) error
	Reject(ctx context.Context, id uuid.UUID) error

	// GetFavoriteMaidIDs retrieves the sponsor's favorite worker profile IDs.
	GetFavoriteMaidIDs(ctx context.Context, sponsorID uuid.UUID) ([]uuid.UUID, error)

	// AddFavorite records a worker on the sponsor's favorite list after
	// checking the worker profile exists.
	AddFavorite(ctx context.Context, sponsorID, maidID uuid.UUID) error

	// RemoveFavorite removes a worker from the sponsor's favorite list.
	RemoveFavorite(ctx context.Context, sponsorID, maidID uuid.UUID) error
}

// AgencyProfileUseCase defines business logic operations for agency profiles.
type AgencyProfileUseCase interface {
	Save(ctx context.Context, input SaveAgencyProfileInput) (*domain.AgencyProfile, error)
	GetByUserID(ctx context.Context, userID string) (*domain.AgencyProfile, error)
	List(ctx context.Context, limit, offset int) ([]*domain.AgencyProfile, error)
	Verify(ctx context.Context, userID string) error
	Reject(ctx context.Context, userID string) error

	// AttachLicense stores the agency license document and records its URL
	// on the profile.
	AttachLicense(ctx context.Context, userID string, data []byte, contentType string) (*domain.AgencyProfile, error)
}
