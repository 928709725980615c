package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "github.com/addislabs/placement/internal/errors"
	"github.com/addislabs/placement/internal/profile/domain"
)

// mockAgencyRepository is a mock implementation of AgencyRepository for testing.
type mockAgencyRepository struct {
	mock.Mock
}

func (m *mockAgencyRepository) Upsert(ctx context.Context, profile *domain.AgencyProfile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

func (m *mockAgencyRepository) GetByUserID(ctx context.Context, userID string) (*domain.AgencyProfile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AgencyProfile), args.Error(1)
}

func (m *mockAgencyRepository) List(ctx context.Context, limit, offset int) ([]*domain.AgencyProfile, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.AgencyProfile), args.Error(1)
}

func (m *mockAgencyRepository) SetVerification(
	ctx context.Context,
	userID string,
	verification domain.Verification,
	verifiedAt *time.Time,
) error {
	args := m.Called(ctx, userID, verification, verifiedAt)
	return args.Error(0)
}

func validAgencyInput() SaveAgencyProfileInput {
	return SaveAgencyProfileInput{
		UserID:        "uid-003",
		AgencyName:    "Addis Placement PLC",
		LicenseNumber: "ETH-2024-0042",
		Country:       "sa",
		Website:       "https://addisplacement.example.com",
	}
}

func TestAgencyProfileUseCase_Save(t *testing.T) {
	ctx := context.Background()

	t.Run("Success_CreateNewProfile", func(t *testing.T) {
		mockRepo := &mockAgencyRepository{}
		mockStore := &mockDocumentStore{}

		mockRepo.On("GetByUserID", ctx, "uid-003").
			Return(nil, domain.ErrAgencyProfileNotFound).
			Once()
		mockRepo.On("Upsert", ctx, mock.MatchedBy(func(p *domain.AgencyProfile) bool {
			return p.UserID == "uid-003" &&
				p.Country == "SA" &&
				p.Verification == domain.VerificationPending
		})).
			Return(nil).
			Once()

		uc := NewAgencyProfileUseCase(mockRepo, mockStore)
		profile, err := uc.Save(ctx, validAgencyInput())

		require.NoError(t, err)
		assert.Equal(t, "Addis Placement PLC", profile.AgencyName)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Error_MissingLicenseNumber", func(t *testing.T) {
		mockRepo := &mockAgencyRepository{}
		mockStore := &mockDocumentStore{}

		input := validAgencyInput()
		input.LicenseNumber = ""

		uc := NewAgencyProfileUseCase(mockRepo, mockStore)
		_, err := uc.Save(ctx, input)

		assert.True(t, apperrors.Is(err, apperrors.ErrInvalidInput))
	})
}

func TestAgencyProfileUseCase_Verify(t *testing.T) {
	ctx := context.Background()

	t.Run("Success_VerifyPendingProfile", func(t *testing.T) {
		mockRepo := &mockAgencyRepository{}
		mockStore := &mockDocumentStore{}

		profile := &domain.AgencyProfile{UserID: "uid-003", Verification: domain.VerificationPending}

		mockRepo.On("GetByUserID", ctx, "uid-003").
			Return(profile, nil).
			Once()
		mockRepo.On("SetVerification", ctx, "uid-003", domain.VerificationVerified, mock.AnythingOfType("*time.Time")).
			Return(nil).
			Once()

		uc := NewAgencyProfileUseCase(mockRepo, mockStore)
		require.NoError(t, uc.Verify(ctx, "uid-003"))
		mockRepo.AssertExpectations(t)
	})

	t.Run("Error_AlreadyDecided", func(t *testing.T) {
		mockRepo := &mockAgencyRepository{}
		mockStore := &mockDocumentStore{}

		profile := &domain.AgencyProfile{UserID: "uid-003", Verification: domain.VerificationVerified}

		mockRepo.On("GetByUserID", ctx, "uid-003").
			Return(profile, nil).
			Once()

		uc := NewAgencyProfileUseCase(mockRepo, mockStore)
		assert.ErrorIs(t, uc.Verify(ctx, "uid-003"), domain.ErrVerificationDecided)
	})
}

func TestAgencyProfileUseCase_AttachLicense(t *testing.T) {
	ctx := context.Background()

	t.Run("Success_AttachLicense", func(t *testing.T) {
		mockRepo := &mockAgencyRepository{}
		mockStore := &mockDocumentStore{}

		profile := &domain.AgencyProfile{UserID: "uid-003"}
		data := []byte("fake-pdf-bytes")

		mockRepo.On("GetByUserID", ctx, "uid-003").
			Return(profile, nil).
			Once()
		mockStore.On("Save", ctx, "agency-licenses/uid-003.pdf", data, "application/pdf").
			Return("agency-licenses/uid-003.pdf", nil).
			Once()
		mockRepo.On("Upsert", ctx, mock.MatchedBy(func(p *domain.AgencyProfile) bool {
			return p.LicenseURL == "agency-licenses/uid-003.pdf"
		})).
			Return(nil).
			Once()

		uc := NewAgencyProfileUseCase(mockRepo, mockStore)
		updated, err := uc.AttachLicense(ctx, "uid-003", data, "application/pdf")

		require.NoError(t, err)
		assert.Equal(t, "agency-licenses/uid-003.pdf", updated.LicenseURL)
		mockStore.AssertExpectations(t)
	})
}
