// Package dto defines data transfer objects for the job application HTTP API.
package dto

import (
	validation "github.com/jellydator/validation"

	appValidation "github.com/addislabs/placement/internal/validation"
)

// RejectApplicationRequest carries the reason a sponsor declined an application.
type RejectApplicationRequest struct {
	Reason string `json:"reason"`
}

// Validate validates the reject request.
func (r RejectApplicationRequest) Validate() error {
	err := validation.ValidateStruct(&r,
		validation.Field(&r.Reason,
			validation.Required.Error("reason is required"),
			validation.Length(1, 1000).Error("reason must be between 1 and 1000 characters"),
		),
	)
	return appValidation.WrapValidationError(err)
}
