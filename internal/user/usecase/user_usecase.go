// Package usecase implements the account business logic.
package usecase

import (
	"context"
	"strings"

	validation "github.com/jellydator/validation"

	"github.com/google/uuid"

	"github.com/addislabs/placement/internal/user/domain"
	userService "github.com/addislabs/placement/internal/user/service"

	appValidation "github.com/addislabs/placement/internal/validation"
)

// RegisterInput contains the input data for account registration.
type RegisterInput struct {
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number"`
	Password    string `json:"password"`
	Role        string `json:"role"`
}

// userUseCase implements UserUseCase.
type userUseCase struct {
	userRepo        UserRepository
	passwordService userService.PasswordService
}

// NewUserUseCase creates a new UserUseCase with the provided dependencies.
func NewUserUseCase(
	userRepo UserRepository,
	passwordService userService.PasswordService,
) UserUseCase {
	return &userUseCase{
		userRepo:        userRepo,
		passwordService: passwordService,
	}
}

func (uc *userUseCase) validateRegisterInput(input RegisterInput) error {
	err := validation.ValidateStruct(&input,
		validation.Field(&input.Email,
			validation.Required.Error("email is required"),
			appValidation.NotBlank,
			appValidation.Email,
			validation.Length(5, 255).Error("email must be between 5 and 255 characters"),
		),
		validation.Field(&input.PhoneNumber,
			validation.Required.Error("phone number is required"),
			appValidation.PhoneNumber,
		),
		validation.Field(&input.Password,
			validation.Required.Error("password is required"),
			validation.Length(8, 128).Error("password must be between 8 and 128 characters"),
			appValidation.PasswordStrength{
				MinLength:      8,
				RequireUpper:   true,
				RequireLower:   true,
				RequireNumber:  true,
				RequireSpecial: true,
			},
		),
		validation.Field(&input.Role,
			validation.Required.Error("role is required"),
		),
	)
	return appValidation.WrapValidationError(err)
}

// Register creates a new account with a hashed password.
func (uc *userUseCase) Register(ctx context.Context, input RegisterInput) (*domain.User, error) {
	// Validate input
	if err := uc.validateRegisterInput(input); err != nil {
		return nil, err
	}

	role, err := domain.ParseRole(input.Role)
	if err != nil {
		return nil, err
	}

	email := strings.TrimSpace(strings.ToLower(input.Email))

	// Pre-check for a friendlier conflict; the unique index is the authority.
	exists, err := uc.userRepo.EmailExists(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrUserAlreadyExists
	}

	// Hash the password
	hashedPassword, err := uc.passwordService.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		ID:           uuid.Must(uuid.NewV7()).String(),
		Email:        email,
		PhoneNumber:  strings.TrimSpace(input.PhoneNumber),
		PasswordHash: hashedPassword,
		Role:         role,
		Status:       domain.StatusActive,
	}

	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// Authenticate verifies an email/password pair.
func (uc *userUseCase) Authenticate(
	ctx context.Context,
	email, password string,
) (*domain.User, error) {
	user, err := uc.userRepo.GetByEmail(ctx, strings.TrimSpace(strings.ToLower(email)))
	if err != nil {
		// An unknown email and a wrong password look the same to the caller.
		return nil, domain.ErrInvalidCredentials
	}

	if !uc.passwordService.ComparePassword(password, user.PasswordHash) {
		return nil, domain.ErrInvalidCredentials
	}

	if !user.IsActive() {
		return nil, domain.ErrUserSuspended
	}

	return user, nil
}

// Get retrieves an account by ID.
func (uc *userUseCase) Get(ctx context.Context, id string) (*domain.User, error) {
	return uc.userRepo.GetByID(ctx, id)
}

// VerifyEmail marks the account's email address as verified.
func (uc *userUseCase) VerifyEmail(ctx context.Context, id string) error {
	user, err := uc.userRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	user.EmailVerified = true

	return uc.userRepo.Update(ctx, user)
}

// VerifyPhone marks the account's phone number as verified.
func (uc *userUseCase) VerifyPhone(ctx context.Context, id string) error {
	user, err := uc.userRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	user.PhoneVerified = true

	return uc.userRepo.Update(ctx, user)
}

// ChangePassword replaces the account password after verifying the current one.
func (uc *userUseCase) ChangePassword(
	ctx context.Context,
	id, currentPassword, newPassword string,
) error {
	if err := uc.validateNewPassword(newPassword); err != nil {
		return err
	}

	user, err := uc.userRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if !uc.passwordService.ComparePassword(currentPassword, user.PasswordHash) {
		return domain.ErrInvalidCredentials
	}

	hashedPassword, err := uc.passwordService.HashPassword(newPassword)
	if err != nil {
		return err
	}

	user.PasswordHash = hashedPassword

	return uc.userRepo.Update(ctx, user)
}

func (uc *userUseCase) validateNewPassword(password string) error {
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

// Suspend soft deletes an account.
func (uc *userUseCase) Suspend(ctx context.Context, id string) error {
	if _, err := uc.userRepo.GetByID(ctx, id); err != nil {
		return err
	}
	return uc.userRepo.Suspend(ctx, id)
}

// List retrieves accounts matching the filter.
func (uc *userUseCase) List(
	ctx context.Context,
	filter domain.Filter,
) ([]*domain.User, error) {
	return uc.userRepo.List(ctx, filter)
}
