// Package dto provides data transfer objects for the media HTTP layer.
package dto

import (
	validation "github.com/jellydator/validation"

	appValidation "github.com/syter/media/internal/validation"
)

// UploadMediaItemRequest represents the metadata fields of a multipart upload.
// The file part is handled separately by the handler.
type UploadMediaItemRequest struct {
	Title       *string
	Description *string
}

// Validate validates the UploadMediaItemRequest.
func (r *UploadMediaItemRequest) Validate() error {
	err := validation.ValidateStruct(r,
		validation.Field(&r.Title,
			validation.Length(0, 64).Error("title must be at most 64 characters"),
		),
		validation.Field(&r.Description,
			validation.Length(0, 512).Error("description must be at most 512 characters"),
		),
	)
	return appValidation.WrapValidationError(err)
}

// ModifyMediaItemRequest represents the API request for replacing an item's
// metadata. Both fields are always applied; omitting one clears the stored
// value.
type ModifyMediaItemRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
}

// Validate validates the ModifyMediaItemRequest.
func (r *ModifyMediaItemRequest) Validate() error {
	err := validation.ValidateStruct(r,
		validation.Field(&r.Title,
			validation.Length(0, 64).Error("title must be at most 64 characters"),
		),
		validation.Field(&r.Description,
			validation.Length(0, 512).Error("description must be at most 512 characters"),
		),
	)
	return appValidation.WrapValidationError(err)
}
