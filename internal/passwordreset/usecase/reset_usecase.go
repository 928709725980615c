// Package usecase implements the password reset business logic.
package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	validation "github.com/jellydator/validation"

	"github.com/addislabs/placement/internal/database"
	"github.com/addislabs/placement/internal/passwordreset/domain"
	resetService "github.com/addislabs/placement/internal/passwordreset/service"

	apperrors "github.com/addislabs/placement/internal/errors"
	userService "github.com/addislabs/placement/internal/user/service"
	appValidation "github.com/addislabs/placement/internal/validation"
)

// passwordResetUseCase implements PasswordResetUseCase.
type passwordResetUseCase struct {
	resetRepo       ResetRepository
	users           UserStore
	tokens          resetService.TokenService
	passwordService userService.PasswordService
	notifier        ResetNotifier
	txManager       database.TxManager
	tokenTTL        time.Duration
}

// NewPasswordResetUseCase creates a new PasswordResetUseCase with the
// provided dependencies.
func NewPasswordResetUseCase(
	resetRepo ResetRepository,
	users UserStore,
	tokens resetService.TokenService,
	passwordService userService.PasswordService,
	notifier ResetNotifier,
	txManager database.TxManager,
	tokenTTL time.Duration,
) PasswordResetUseCase {
	return &passwordResetUseCase{
		resetRepo:       resetRepo,
		users:           users,
		tokens:          tokens,
		passwordService: passwordService,
		notifier:        notifier,
		txManager:       txManager,
		tokenTTL:        tokenTTL,
	}
}

// Request issues a new reset token for the account with the given email.
func (uc *passwordResetUseCase) Request(ctx context.Context, email string) (string, error) {
	err := validation.Validate(email,
		validation.Required.Error("email is required"),
		appValidation.Email,
	)
	if err != nil {
		return "", appValidation.WrapValidationError(err)
	}

	user, err := uc.users.GetByEmail(ctx, strings.TrimSpace(strings.ToLower(email)))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			// Unknown addresses succeed silently so the endpoint cannot be
			// used to enumerate accounts.
			return "", nil
		}
		return "", err
	}
	if !user.IsActive() {
		return "", nil
	}

	plain, hash, err := uc.tokens.Generate()
	if err != nil {
		return "", apperrors.Wrap(err, "failed to generate reset token")
	}

	reset := domain.NewPasswordReset(user.ID, user.Email, hash, uc.tokenTTL)

	// Cancelling and creating in one transaction keeps at most one
	// actionable reset per account.
	err = uc.txManager.WithTx(ctx, func(ctx context.Context) error {
		if err := uc.resetRepo.CancelPending(ctx, user.ID); err != nil {
			return err
		}
		return uc.resetRepo.Create(ctx, reset)
	})
	if err != nil {
		return "", err
	}

	if err := uc.notifier.NotifyResetRequested(ctx, user.Email, plain); err != nil {
		return "", apperrors.Wrap(err, "failed to deliver reset token")
	}

	return plain, nil
}

// Confirm consumes a reset token and replaces the account password.
func (uc *passwordResetUseCase) Confirm(ctx context.Context, token, newPassword string) error {
	if strings.TrimSpace(token) == "" {
		return domain.ErrInvalidResetToken
	}
	if err := uc.validateNewPassword(newPassword); err != nil {
		return err
	}

	hash := uc.tokens.Hash(token)

	return uc.txManager.WithTx(ctx, func(ctx context.Context) error {
		reset, err := uc.resetRepo.GetByTokenHash(ctx, hash)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return domain.ErrInvalidResetToken
			}
			return err
		}

		if err := reset.Consume(time.Now().UTC()); err != nil {
			return err
		}

		user, err := uc.users.GetByID(ctx, reset.UserID)
		if err != nil {
			return err
		}

		hashedPassword, err := uc.passwordService.HashPassword(newPassword)
		if err != nil {
			return err
		}
		user.PasswordHash = hashedPassword

		if err := uc.users.Update(ctx, user); err != nil {
			return err
		}
		return uc.resetRepo.Update(ctx, reset)
	})
}

func (uc *passwordResetUseCase) validateNewPassword(password string) error {
	err := validation.Validate(password,
		validation.Required.Error("password is required"),
		validation.Length(8, 128).Error("password must be between 8 and 128 characters"),
		appValidation.PasswordStrength{
			MinLength:      8,
			RequireUpper:   true,
			RequireLower:   true,
			RequireNumber:  true,
			RequireSpecial: true,
		},
	)
	return appValidation.WrapValidationError(err)
}

// CleanExpired removes resets that expired before the cutoff.
func (uc *passwordResetUseCase) CleanExpired(
	ctx context.Context,
	olderThan time.Time,
	dryRun bool,
) (int64, error) {
	return uc.resetRepo.DeleteExpired(ctx, olderThan, dryRun)
}
