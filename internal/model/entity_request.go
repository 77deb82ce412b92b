package model

import "strings"

// EntityCreateRequest is the payload accepted by POST /entities.
type EntityCreateRequest struct {
	Name        string `json:"name" validate:"required,max=255"`
	Description string `json:"description,omitempty" validate:"max=4000"`
}

// Validate rejects a missing or blank name and over-length fields
// (name > 255, description > 4000 characters). The payload itself is left
// untouched so the stored values match the input exactly.
func (r *EntityCreateRequest) Validate() error {
	trimmed := *r
	trimmed.Name = strings.TrimSpace(trimmed.Name)
	return FormatValidationError(GetValidator().Struct(trimmed))
}

// ToEntity builds an unsaved Entity from the payload.
func (r *EntityCreateRequest) ToEntity() *Entity {
	return &Entity{Name: r.Name, Description: r.Description}
}
