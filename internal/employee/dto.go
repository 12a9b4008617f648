package employee

import (
	"github.com/sobrinN/DASH.rh/internal"
	"github.com/sobrinN/DASH.rh/internal/core/common/validation"
)

// CreateEmployeeDTO carries the fields a client may set on creation. The
// company id is never part of the payload; it comes from the session.
type CreateEmployeeDTO struct {
	Name       string  `json:"name"`
	Email      *string `json:"email"`
	Phone      *string `json:"phone"`
	Position   string  `json:"position"`
	Department *string `json:"department"`
	Stage      string  `json:"stage"`
	Notes      *string `json:"notes"`
}

// UpdateEmployeeDTO uses pointers so absent fields keep their stored values.
type UpdateEmployeeDTO struct {
	Name       *string `json:"name"`
	Email      *string `json:"email"`
	Phone      *string `json:"phone"`
	Position   *string `json:"position"`
	Department *string `json:"department"`
	Stage      *string `json:"stage"`
	Notes      *string `json:"notes"`
}

func (d *CreateEmployeeDTO) Validate() *internal.AppError {
	v := validation.NewValidator()
	v.Field("name", d.Name).Required().MaxLength(255)
	v.Field("position", d.Position).Required().MaxLength(255)
	v.Field("stage", d.Stage).OneOf(internal.ErrCodeInvalidStage, Stages...)
	return v.Validate()
}

func (d *UpdateEmployeeDTO) Validate() *internal.AppError {
	v := validation.NewValidator()
	if d.Name != nil {
		v.Field("name", d.Name).Required().MaxLength(255)
	}
	if d.Position != nil {
		v.Field("position", d.Position).Required().MaxLength(255)
	}
	if d.Stage != nil {
		v.Field("stage", *d.Stage).OneOf(internal.ErrCodeInvalidStage, Stages...)
	}
	return v.Validate()
}
