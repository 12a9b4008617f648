package talentrequest

import (
	"encoding/json"

	"github.com/sobrinN/DASH.rh/internal"
)

type CreateTalentRequestDTO struct {
	FormData json.RawMessage `json:"form_data"`
	Status   string          `json:"status"`
}

type UpdateTalentRequestDTO struct {
	Status *string `json:"status"`
}

func (d *CreateTalentRequestDTO) Validate() *internal.AppError {
	if len(d.FormData) == 0 || string(d.FormData) == "null" {
		return internal.NewValidationError("form_data is required", internal.ErrCodeValidationFailed)
	}
	if !json.Valid(d.FormData) {
		return internal.NewValidationError("form_data must be valid JSON", internal.ErrCodeValidationFailed)
	}
	if d.Status != "" && !isValidStatus(d.Status) {
		return internal.NewValidationError("status must be one of: pending, active, closed", internal.ErrCodeInvalidStatus)
	}
	return nil
}

func (d *UpdateTalentRequestDTO) Validate() *internal.AppError {
	if d.Status != nil && !isValidStatus(*d.Status) {
		return internal.NewValidationError("status must be one of: pending, active, closed", internal.ErrCodeInvalidStatus)
	}
	return nil
}

func isValidStatus(status string) bool {
	for _, s := range Statuses {
		if s == status {
			return true
		}
	}
	return false
}
