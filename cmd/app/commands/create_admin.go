package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	userDomain "github.com/addislabs/placement/internal/user/domain"
	userUsecase "github.com/addislabs/placement/internal/user/usecase"
)

// RunCreateAdmin creates a new administrator account. The password is hashed
// before storage and never written to the output. Supports both text and JSON
// output formats.
//
// Requirements: Database must be migrated and accessible.
func RunCreateAdmin(
	ctx context.Context,
	userUseCase userUsecase.UserUseCase,
	logger *slog.Logger,
	writer io.Writer,
	email string,
	phoneNumber string,
	password string,
	format string,
) error {
	logger.Info("creating admin account",
		slog.String("email", email),
	)

	user, err := userUseCase.Register(ctx, userUsecase.RegisterInput{
		Email:       email,
		PhoneNumber: phoneNumber,
		Password:    password,
		Role:        string(userDomain.RoleAdmin),
	})
	if err != nil {
		return fmt.Errorf("failed to create admin account: %w", err)
	}

	if format == "json" {
		outputCreateAdminJSON(writer, user)
	} else {
		outputCreateAdminText(writer, user)
	}

	logger.Info("admin account created",
		slog.String("user_id", user.ID),
	)

	return nil
}

// outputCreateAdminText outputs the result in human-readable text format.
func outputCreateAdminText(writer io.Writer, user *userDomain.User) {
	fmt.Fprintln(writer, "Admin account created successfully!")
	fmt.Fprintf(writer, "ID:    %s\n", user.ID)
	fmt.Fprintf(writer, "Email: %s\n", user.Email)
	fmt.Fprintf(writer, "Role:  %s\n", user.Role)
}

// outputCreateAdminJSON outputs the result in JSON format for machine consumption.
func outputCreateAdminJSON(writer io.Writer, user *userDomain.User) {
	result := map[string]interface{}{
		"id":    user.ID,
		"email": user.Email,
		"role":  string(user.Role),
	}

	jsonBytes, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		fmt.Fprintf(writer, "failed to marshal JSON: %v\n", err)
		return
	}

	fmt.Fprintln(writer, string(jsonBytes))
}
