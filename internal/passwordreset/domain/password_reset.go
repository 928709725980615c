// Package domain defines the password reset aggregate. Reset tokens are
// stored only as SHA-256 hashes; the plain token is handed to the caller
// once and never persisted.
package domain

import (
	"time"

	"github.com/google/uuid"

	apperrors "github.com/addislabs/placement/internal/errors"
)

// ResetStatus represents the lifecycle status of a password reset.
type ResetStatus string

const (
	// StatusPending means the reset can still be confirmed.
	StatusPending ResetStatus = "pending"
	// StatusUsed means the reset was confirmed and consumed.
	StatusUsed ResetStatus = "used"
	// StatusCancelled means a newer reset superseded this one.
	StatusCancelled ResetStatus = "cancelled"
	// StatusExpired means the reset outlived its window.
	StatusExpired ResetStatus = "expired"
)

// Password reset errors.
var (
	ErrResetNotFound     = apperrors.Wrap(apperrors.ErrNotFound, "password reset not found")
	ErrInvalidResetToken = apperrors.Wrap(apperrors.ErrUnauthorized, "reset token is invalid or expired")
)

// PasswordReset represents one password reset request.
type PasswordReset struct {
	ID        uuid.UUID   `json:"id"`
	UserID    string      `json:"user_id"`
	Email     string      `json:"email"`
	TokenHash string      `json:"-"`
	Status    ResetStatus `json:"status"`
	ExpiresAt time.Time   `json:"expires_at"`
	UsedAt    *time.Time  `json:"used_at"`
	CreatedAt time.Time   `json:"created_at"`
}

// NewPasswordReset creates a pending reset that expires after ttl.
func NewPasswordReset(userID, email, tokenHash string, ttl time.Duration) *PasswordReset {
	now := time.Now().UTC()
	return &PasswordReset{
		ID:        uuid.Must(uuid.NewV7()),
		UserID:    userID,
		Email:     email,
		TokenHash: tokenHash,
		Status:    StatusPending,
		ExpiresAt: now.Add(ttl),
		CreatedAt: now,
	}
}

// IsExpired reports whether the reset's window has passed.
func (p *PasswordReset) IsExpired(now time.Time) bool {
	return now.After(p.ExpiresAt)
}

// Consume marks a pending, unexpired reset as used. Any other state
// yields ErrInvalidResetToken so callers cannot tell which check failed.
func (p *PasswordReset) Consume(now time.Time) error {
	if p.Status != StatusPending || p.IsExpired(now) {
		return ErrInvalidResetToken
	}
	usedAt := now.UTC()
	p.Status = StatusUsed
	p.UsedAt = &usedAt
	return nil
}
