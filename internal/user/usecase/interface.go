// Package usecase defines business logic interfaces for account operations.
package usecase

import (
	"context"

	"github.com/addislabs/placement/internal/user/domain"
)

// UserRepository defines persistence operations for accounts.
// Implementations must support transaction-aware operations via context propagation.
type UserRepository interface {
	// Create stores a new user. Returns ErrUserAlreadyExists when the email
	// is already taken.
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user by ID. Returns ErrUserNotFound if not found.
	GetByID(ctx context.Context, id string) (*domain.User, error)

	// GetByEmail retrieves a user by email. Returns ErrUserNotFound if not found.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// EmailExists reports whether a user with the given email exists.
	EmailExists(ctx context.Context, email string) (bool, error)

	// Update modifies an existing user.
	Update(ctx context.Context, user *domain.User) error

	// Suspend soft deletes a user by marking the account suspended.
	Suspend(ctx context.Context, id string) error

	// List retrieves users matching the filter, most recent first.
	List(ctx context.Context, filter domain.Filter) ([]*domain.User, error)
}

// UserUseCase defines business logic operations for managing accounts.
type UserUseCase interface {
	// Register creates a new account with a hashed password.
	// Returns ErrUserAlreadyExists when the email is already taken.
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)

	// Authenticate verifies an email/password pair.
	//
	// Returns ErrInvalidCredentials for both unknown emails and wrong
	// passwords so callers cannot distinguish the two, and ErrUserSuspended
	// for suspended accounts.
	Authenticate(ctx context.Context, email, password string) (*domain.User, error)

	// Get retrieves an account by ID.
	Get(ctx context.Context, id string) (*domain.User, error)

	// VerifyEmail marks the account's email address as verified.
	VerifyEmail(ctx context.Context, id string) error

	// VerifyPhone marks the account's phone number as verified.
	VerifyPhone(ctx context.Context, id string) error

	// ChangePassword replaces the account password after verifying the
	// current one.
	ChangePassword(ctx context.Context, id, currentPassword, newPassword string) error

	// Suspend soft deletes an account. Application history referencing the
	// account is preserved.
	Suspend(ctx context.Context, id string) error

	// List retrieves accounts matching the filter.
	List(ctx context.Context, filter domain.Filter) ([]*domain.User, error)
}
