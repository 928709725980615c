// Package domain defines the core user domain entities and types.
package domain

import (
	"time"

	"github.com/addislabs/placement/internal/errors"
)

// Role identifies which side of the marketplace an account belongs to.
type Role string

// Supported account roles.
const (
	RoleMaid    Role = "maid"
	RoleSponsor Role = "sponsor"
	RoleAgency  Role = "agency"
	RoleAdmin   Role = "admin"
)

// ParseRole converts a string to a Role. Returns ErrInvalidRole for
// unrecognized values.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleMaid, RoleSponsor, RoleAgency, RoleAdmin:
		return Role(s), nil
	default:
		return "", ErrInvalidRole
	}
}

// Status represents the account lifecycle state. Accounts are suspended
// (soft deleted) rather than removed, preserving referential integrity with
// application history.
type Status string

// Supported account statuses.
const (
	StatusActive    Status = "active"
	StatusSuspended Status = "suspended"
)

// User represents an account in the marketplace.
//
// The ID is a string rather than a native UUID: accounts created through the
// external identity provider carry its UID format, and the column type must
// accept both.
type User struct {
	ID            string
	Email         string
	PhoneNumber   string
	PasswordHash  string
	Role          Role
	Status        Status
	EmailVerified bool
	PhoneVerified bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// IsActive reports whether the account may authenticate and act.
func (u *User) IsActive() bool {
	return u.Status == StatusActive
}

// Domain-specific errors for user operations.
var (
	// ErrUserNotFound indicates the requested user does not exist.
	ErrUserNotFound = errors.Wrap(errors.ErrNotFound, "user not found")

	// ErrUserAlreadyExists indicates a user with the same email already exists.
	ErrUserAlreadyExists = errors.Wrap(errors.ErrConflict, "user already exists")

	// ErrInvalidRole indicates an unrecognized role string.
	ErrInvalidRole = errors.Wrap(errors.ErrInvalidInput, "invalid role")

	// ErrInvalidCredentials indicates the email/password pair does not match.
	ErrInvalidCredentials = errors.Wrap(errors.ErrUnauthorized, "invalid credentials")

	// ErrUserSuspended indicates the account is suspended and may not act.
	ErrUserSuspended = errors.Wrap(errors.ErrForbidden, "user is suspended")
)
