// Package dto provides data transfer objects for account HTTP request and response handling.
package dto

import (
	validation "github.com/jellydator/validation"
)

// AuthenticateRequest contains the parameters for verifying credentials.
type AuthenticateRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate checks if the authenticate request is valid.
func (r *AuthenticateRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Email, validation.Required),
		validation.Field(&r.Password, validation.Required),
	)
}

// ChangePasswordRequest contains the parameters for replacing an account password.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// Validate checks if the change password request is valid.
func (r *ChangePasswordRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.CurrentPassword, validation.Required),
		validation.Field(&r.NewPassword, validation.Required),
	)
}
