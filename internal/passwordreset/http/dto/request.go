// Package dto provides data transfer objects for password reset HTTP request
// and response handling.
package dto

import (
	validation "github.com/jellydator/validation"
)

// RequestResetRequest contains the parameters for requesting a password reset.
type RequestResetRequest struct {
	Email string `json:"email"`
}

// Validate checks if the reset request is valid.
func (r *RequestResetRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Email, validation.Required),
	)
}

// ConfirmResetRequest contains the parameters for consuming a reset token.
type ConfirmResetRequest struct {
	Token       string `json:"token"`
	NewPassword string `json:"new_password"`
}

// Validate checks if the confirm request is valid.
func (r *ConfirmResetRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Token, validation.Required),
		validation.Field(&r.NewPassword, validation.Required),
	)
}
