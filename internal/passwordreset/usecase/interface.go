// Package usecase defines business logic interfaces for password resets.
package usecase

import (
	"context"
	"time"

	"github.com/addislabs/placement/internal/passwordreset/domain"

	userDomain "github.com/addislabs/placement/internal/user/domain"
)

// ResetRepository defines persistence operations for password resets.
// Implementations must support transaction-aware operations via context
// propagation.
type ResetRepository interface {
	// Create stores a new password reset.
	Create(ctx context.Context, reset *domain.PasswordReset) error

	// GetByTokenHash retrieves a reset by its token hash. Returns
	// ErrResetNotFound if not found.
	GetByTokenHash(ctx context.Context, tokenHash string) (*domain.PasswordReset, error)

	// Update persists the reset's status and used timestamp.
	Update(ctx context.Context, reset *domain.PasswordReset) error

	// CancelPending marks all of a user's pending resets as cancelled.
	CancelPending(ctx context.Context, userID string) error

	// DeleteExpired hard-deletes resets that expired before the cutoff and
	// reports how many rows were removed. With dryRun it only counts the
	// matching rows.
	DeleteExpired(ctx context.Context, olderThan time.Time, dryRun bool) (int64, error)
}

// UserStore is the slice of account persistence the reset flow needs.
type UserStore interface {
	// GetByEmail retrieves a user by email. Returns ErrUserNotFound if not
	// found.
	GetByEmail(ctx context.Context, email string) (*userDomain.User, error)

	// GetByID retrieves a user by ID. Returns ErrUserNotFound if not found.
	GetByID(ctx context.Context, id string) (*userDomain.User, error)

	// Update modifies an existing user.
	Update(ctx context.Context, user *userDomain.User) error
}

// ResetNotifier delivers freshly issued reset tokens to account owners. The
// plain token exists only for the duration of the call; implementations own
// the delivery channel (mail, SMS, log).
type ResetNotifier interface {
	// NotifyResetRequested delivers the plain token for the reset issued to
	// the given email address.
	NotifyResetRequested(ctx context.Context, email, token string) error
}

// PasswordResetUseCase defines business logic operations for password resets.
type PasswordResetUseCase interface {
	// Request issues a new reset for the account with the given email and
	// returns the plain token exactly once. Any prior pending resets for the
	// account are cancelled. When no active account matches the email the
	// call succeeds with an empty token so callers cannot enumerate
	// registered addresses.
	Request(ctx context.Context, email string) (string, error)

	// Confirm consumes the reset identified by the plain token and replaces
	// the account password. Returns ErrInvalidResetToken for unknown,
	// expired, used or cancelled tokens.
	Confirm(ctx context.Context, token, newPassword string) error

	// CleanExpired removes resets that expired before the cutoff and
	// reports how many were deleted. With dryRun it reports the count
	// without deleting.
	CleanExpired(ctx context.Context, olderThan time.Time, dryRun bool) (int64, error)
}
