// Package dto provides data transfer objects for the token HTTP layer.
package dto

import (
	"time"

	validation "github.com/jellydator/validation"

	appValidation "github.com/syter/media/internal/validation"
)

// CreateTokenRequest represents the API request for creating a token.
type CreateTokenRequest struct {
	Name      string     `json:"name"`
	ExpiresAt *time.Time `json:"expires_at"`
}

// Validate validates the CreateTokenRequest.
func (r *CreateTokenRequest) Validate() error {
	err := validation.ValidateStruct(r,
		validation.Field(&r.Name,
			validation.Required.Error("name is required"),
			appValidation.NotBlank,
			validation.Length(1, 64).Error("name must be between 1 and 64 characters"),
		),
	)
	return appValidation.WrapValidationError(err)
}

// ChangePermissionsRequest represents the API request for replacing the
// permission bitset of a target token.
type ChangePermissionsRequest struct {
	TargetToken string `json:"target_token"`
	Permissions int    `json:"permissions"`
}

// Validate validates the ChangePermissionsRequest.
func (r *ChangePermissionsRequest) Validate() error {
	err := validation.ValidateStruct(r,
		validation.Field(&r.TargetToken,
			validation.Required.Error("target_token is required"),
			appValidation.NotBlank,
		),
		validation.Field(&r.Permissions,
			validation.Min(0).Error("permissions must not be negative"),
		),
	)
	return appValidation.WrapValidationError(err)
}
