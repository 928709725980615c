package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/addislabs/placement/internal/database"
	"github.com/addislabs/placement/internal/database/mocks"
	"github.com/addislabs/placement/internal/passwordreset/domain"
	resetService "github.com/addislabs/placement/internal/passwordreset/service"

	apperrors "github.com/addislabs/placement/internal/errors"
	userDomain "github.com/addislabs/placement/internal/user/domain"
)

// mockResetRepository is a mock implementation of ResetRepository for testing.
type mockResetRepository struct {
	mock.Mock
}

func (m *mockResetRepository) Create(ctx context.Context, reset *domain.PasswordReset) error {
	args := m.Called(ctx, reset)
	return args.Error(0)
}

func (m *mockResetRepository) GetByTokenHash(ctx context.Context, tokenHash string) (*domain.PasswordReset, error) {
	args := m.Called(ctx, tokenHash)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PasswordReset), args.Error(1)
}

func (m *mockResetRepository) Update(ctx context.Context, reset *domain.PasswordReset) error {
	args := m.Called(ctx, reset)
	return args.Error(0)
}

func (m *mockResetRepository) CancelPending(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *mockResetRepository) DeleteExpired(ctx context.Context, olderThan time.Time, dryRun bool) (int64, error) {
	args := m.Called(ctx, olderThan, dryRun)
	return args.Get(0).(int64), args.Error(1)
}

// mockUserStore is a mock implementation of UserStore for testing.
type mockUserStore struct {
	mock.Mock
}

func (m *mockUserStore) GetByEmail(ctx context.Context, email string) (*userDomain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*userDomain.User), args.Error(1)
}

func (m *mockUserStore) GetByID(ctx context.Context, id string) (*userDomain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*userDomain.User), args.Error(1)
}

func (m *mockUserStore) Update(ctx context.Context, user *userDomain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

// mockTokenService is a mock implementation of TokenService for testing.
type mockTokenService struct {
	mock.Mock
}

func (m *mockTokenService) Generate() (string, string, error) {
	args := m.Called()
	return args.String(0), args.String(1), args.Error(2)
}

func (m *mockTokenService) Hash(plain string) string {
	args := m.Called(plain)
	return args.String(0)
}

// mockResetNotifier is a mock implementation of ResetNotifier for testing.
type mockResetNotifier struct {
	mock.Mock
}

func (m *mockResetNotifier) NotifyResetRequested(ctx context.Context, email, token string) error {
	args := m.Called(ctx, email, token)
	return args.Error(0)
}

// mockPasswordService is a mock implementation of PasswordService for testing.
type mockPasswordService struct {
	mock.Mock
}

func (m *mockPasswordService) HashPassword(plainPassword string) (string, error) {
	args := m.Called(plainPassword)
	return args.String(0), args.Error(1)
}

func (m *mockPasswordService) ComparePassword(plainPassword string, hashedPassword string) bool {
	args := m.Called(plainPassword, hashedPassword)
	return args.Bool(0)
}

func passthroughTxManager(t *testing.T) database.TxManager {
	txManager := mocks.NewMockTxManager(t)
	txManager.EXPECT().
		WithTx(mock.Anything, mock.Anything).
		RunAndReturn(func(ctx context.Context, fn func(context.Context) error) error {
			return fn(ctx)
		}).
		Maybe()
	return txManager
}

func activeUser() *userDomain.User {
	return &userDomain.User{
		ID:           "user-123",
		Email:        "almaz@example.com",
		PasswordHash: "$argon2id$old",
		Status:       userDomain.StatusActive,
	}
}

func TestPasswordResetUseCase_Request(t *testing.T) {
	t.Run("issues a token and cancels prior pending resets", func(t *testing.T) {
		resetRepo := &mockResetRepository{}
		users := &mockUserStore{}
		tokens := &mockTokenService{}
		notifier := &mockResetNotifier{}
		uc := NewPasswordResetUseCase(resetRepo, users, tokens, &mockPasswordService{}, notifier, passthroughTxManager(t), time.Hour)

		user := activeUser()
		users.On("GetByEmail", mock.Anything, "almaz@example.com").Return(user, nil)
		tokens.On("Generate").Return("plain-token", "hashed-token", nil)
		resetRepo.On("CancelPending", mock.Anything, "user-123").Return(nil)
		resetRepo.On("Create", mock.Anything, mock.MatchedBy(func(r *domain.PasswordReset) bool {
			return r.UserID == "user-123" &&
				r.Email == "almaz@example.com" &&
				r.TokenHash == "hashed-token" &&
				r.Status == domain.StatusPending &&
				r.ExpiresAt.After(time.Now().UTC())
		})).Return(nil)
		notifier.On("NotifyResetRequested", mock.Anything, "almaz@example.com", "plain-token").Return(nil)

		token, err := uc.Request(context.Background(), " Almaz@Example.com ")
		require.NoError(t, err)
		assert.Equal(t, "plain-token", token)
		resetRepo.AssertExpectations(t)
		notifier.AssertExpectations(t)
	})

	t.Run("delivers the plain token, not the stored hash", func(t *testing.T) {
		resetRepo := &mockResetRepository{}
		users := &mockUserStore{}
		notifier := &mockResetNotifier{}
		tokens := resetService.NewTokenService()
		uc := NewPasswordResetUseCase(resetRepo, users, tokens, &mockPasswordService{}, notifier, passthroughTxManager(t), time.Hour)

		users.On("GetByEmail", mock.Anything, "almaz@example.com").Return(activeUser(), nil)
		resetRepo.On("CancelPending", mock.Anything, "user-123").Return(nil)

		var storedHash string
		resetRepo.On("Create", mock.Anything, mock.MatchedBy(func(r *domain.PasswordReset) bool {
			storedHash = r.TokenHash
			return true
		})).Return(nil)

		var delivered string
		notifier.On("NotifyResetRequested", mock.Anything, "almaz@example.com", mock.MatchedBy(func(token string) bool {
			delivered = token
			return token != ""
		})).Return(nil)

		token, err := uc.Request(context.Background(), "almaz@example.com")
		require.NoError(t, err)

		// The recipient gets the token the confirm endpoint will accept: its
		// hash is what the repository stored.
		assert.Equal(t, token, delivered)
		assert.NotEqual(t, storedHash, delivered)
		assert.Equal(t, storedHash, tokens.Hash(delivered))
	})

	t.Run("fails when delivery fails", func(t *testing.T) {
		resetRepo := &mockResetRepository{}
		users := &mockUserStore{}
		tokens := &mockTokenService{}
		notifier := &mockResetNotifier{}
		uc := NewPasswordResetUseCase(resetRepo, users, tokens, &mockPasswordService{}, notifier, passthroughTxManager(t), time.Hour)

		users.On("GetByEmail", mock.Anything, "almaz@example.com").Return(activeUser(), nil)
		tokens.On("Generate").Return("plain-token", "hashed-token", nil)
		resetRepo.On("CancelPending", mock.Anything, "user-123").Return(nil)
		resetRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
		notifier.On("NotifyResetRequested", mock.Anything, "almaz@example.com", "plain-token").
			Return(assert.AnError)

		_, err := uc.Request(context.Background(), "almaz@example.com")
		assert.ErrorContains(t, err, "failed to deliver reset token")
	})

	t.Run("unknown email succeeds with an empty token", func(t *testing.T) {
		resetRepo := &mockResetRepository{}
		users := &mockUserStore{}
		tokens := &mockTokenService{}
		uc := NewPasswordResetUseCase(resetRepo, users, tokens, &mockPasswordService{}, &mockResetNotifier{}, passthroughTxManager(t), time.Hour)

		users.On("GetByEmail", mock.Anything, "ghost@example.com").
			Return(nil, userDomain.ErrUserNotFound)

		token, err := uc.Request(context.Background(), "ghost@example.com")
		require.NoError(t, err)
		assert.Empty(t, token)
		tokens.AssertNotCalled(t, "Generate")
		resetRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("suspended account succeeds with an empty token", func(t *testing.T) {
		resetRepo := &mockResetRepository{}
		users := &mockUserStore{}
		tokens := &mockTokenService{}
		uc := NewPasswordResetUseCase(resetRepo, users, tokens, &mockPasswordService{}, &mockResetNotifier{}, passthroughTxManager(t), time.Hour)

		suspended := activeUser()
		suspended.Status = userDomain.StatusSuspended
		users.On("GetByEmail", mock.Anything, "almaz@example.com").Return(suspended, nil)

		token, err := uc.Request(context.Background(), "almaz@example.com")
		require.NoError(t, err)
		assert.Empty(t, token)
		tokens.AssertNotCalled(t, "Generate")
	})

	t.Run("fails with an invalid email", func(t *testing.T) {
		uc := NewPasswordResetUseCase(&mockResetRepository{}, &mockUserStore{}, &mockTokenService{}, &mockPasswordService{}, &mockResetNotifier{}, passthroughTxManager(t), time.Hour)

		_, err := uc.Request(context.Background(), "not-an-email")
		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	})
}

func TestPasswordResetUseCase_Confirm(t *testing.T) {
	const newPassword = "N3w!Password"

	t.Run("consumes the reset and replaces the password", func(t *testing.T) {
		resetRepo := &mockResetRepository{}
		users := &mockUserStore{}
		tokens := &mockTokenService{}
		passwords := &mockPasswordService{}
		uc := NewPasswordResetUseCase(resetRepo, users, tokens, passwords, &mockResetNotifier{}, passthroughTxManager(t), time.Hour)

		reset := domain.NewPasswordReset("user-123", "almaz@example.com", "hashed-token", time.Hour)
		tokens.On("Hash", "plain-token").Return("hashed-token")
		resetRepo.On("GetByTokenHash", mock.Anything, "hashed-token").Return(reset, nil)
		users.On("GetByID", mock.Anything, "user-123").Return(activeUser(), nil)
		passwords.On("HashPassword", newPassword).Return("$argon2id$new", nil)
		users.On("Update", mock.Anything, mock.MatchedBy(func(u *userDomain.User) bool {
			return u.PasswordHash == "$argon2id$new"
		})).Return(nil)
		resetRepo.On("Update", mock.Anything, mock.MatchedBy(func(r *domain.PasswordReset) bool {
			return r.Status == domain.StatusUsed && r.UsedAt != nil
		})).Return(nil)

		err := uc.Confirm(context.Background(), "plain-token", newPassword)
		require.NoError(t, err)
		resetRepo.AssertExpectations(t)
		users.AssertExpectations(t)
	})

	t.Run("fails with an unknown token", func(t *testing.T) {
		resetRepo := &mockResetRepository{}
		tokens := &mockTokenService{}
		uc := NewPasswordResetUseCase(resetRepo, &mockUserStore{}, tokens, &mockPasswordService{}, &mockResetNotifier{}, passthroughTxManager(t), time.Hour)

		tokens.On("Hash", "bogus").Return("bogus-hash")
		resetRepo.On("GetByTokenHash", mock.Anything, "bogus-hash").
			Return(nil, domain.ErrResetNotFound)

		err := uc.Confirm(context.Background(), "bogus", newPassword)
		assert.ErrorIs(t, err, domain.ErrInvalidResetToken)
		assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
	})

	t.Run("fails with an expired reset and leaves the password untouched", func(t *testing.T) {
		resetRepo := &mockResetRepository{}
		users := &mockUserStore{}
		tokens := &mockTokenService{}
		uc := NewPasswordResetUseCase(resetRepo, users, tokens, &mockPasswordService{}, &mockResetNotifier{}, passthroughTxManager(t), time.Hour)

		expired := domain.NewPasswordReset("user-123", "almaz@example.com", "hashed-token", -time.Minute)
		tokens.On("Hash", "plain-token").Return("hashed-token")
		resetRepo.On("GetByTokenHash", mock.Anything, "hashed-token").Return(expired, nil)

		err := uc.Confirm(context.Background(), "plain-token", newPassword)
		assert.ErrorIs(t, err, domain.ErrInvalidResetToken)
		users.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("fails with a blank token", func(t *testing.T) {
		tokens := &mockTokenService{}
		uc := NewPasswordResetUseCase(&mockResetRepository{}, &mockUserStore{}, tokens, &mockPasswordService{}, &mockResetNotifier{}, passthroughTxManager(t), time.Hour)

		err := uc.Confirm(context.Background(), "  ", newPassword)
		assert.ErrorIs(t, err, domain.ErrInvalidResetToken)
		tokens.AssertNotCalled(t, "Hash", mock.Anything)
	})

	t.Run("fails with a weak password", func(t *testing.T) {
		resetRepo := &mockResetRepository{}
		uc := NewPasswordResetUseCase(resetRepo, &mockUserStore{}, &mockTokenService{}, &mockPasswordService{}, &mockResetNotifier{}, passthroughTxManager(t), time.Hour)

		err := uc.Confirm(context.Background(), "plain-token", "weak")
		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
		resetRepo.AssertNotCalled(t, "GetByTokenHash", mock.Anything, mock.Anything)
	})
}

func TestPasswordResetUseCase_CleanExpired(t *testing.T) {
	resetRepo := &mockResetRepository{}
	uc := NewPasswordResetUseCase(resetRepo, &mockUserStore{}, &mockTokenService{}, &mockPasswordService{}, &mockResetNotifier{}, passthroughTxManager(t), time.Hour)

	cutoff := time.Now().UTC().Add(-30 * 24 * time.Hour)
	resetRepo.On("DeleteExpired", mock.Anything, cutoff, false).Return(int64(4), nil)

	deleted, err := uc.CleanExpired(context.Background(), cutoff, false)
	require.NoError(t, err)
	assert.Equal(t, int64(4), deleted)

	resetRepo.On("DeleteExpired", mock.Anything, cutoff, true).Return(int64(4), nil)

	counted, err := uc.CleanExpired(context.Background(), cutoff, true)
	require.NoError(t, err)
	assert.Equal(t, int64(4), counted)
}
