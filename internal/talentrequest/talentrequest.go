package talentrequest

import (
	"encoding/json"
	"time"

	talentRequestDatamodel "github.com/sobrinN/DASH.rh/internal/core/datamodel/talentrequest"
)

// Talent request lifecycle statuses.
const (
	StatusPending = "pending"
	StatusActive  = "active"
	StatusClosed  = "closed"
)

var Statuses = []string{StatusPending, StatusActive, StatusClosed}

// TalentRequest is a structured hiring-request form submitted by a company.
// FormData is an arbitrary JSON document produced by the multi-step wizard on
// the client; the server stores it opaquely.
type TalentRequest struct {
	ID        string          `json:"id"`
	CompanyID string          `json:"company_id"`
	FormData  json.RawMessage `json:"form_data"`
	Status    string          `json:"status"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// Repository defines the data access methods for talent requests, all scoped
// by company id.
type Repository interface {
	Create(tr *TalentRequest) error
	GetByCompanyID(companyID string) ([]*TalentRequest, error)
	GetByID(id, companyID string) (*TalentRequest, error)
	UpdateStatus(id, companyID, status string) error
	Delete(id, companyID string) error
}

func ToDataModel(tr *TalentRequest) *talentRequestDatamodel.TalentRequest {
	return &talentRequestDatamodel.TalentRequest{
		ID:        tr.ID,
		CompanyID: tr.CompanyID,
		FormData:  string(tr.FormData),
		Status:    tr.Status,
		CreatedAt: tr.CreatedAt,
		UpdatedAt: tr.UpdatedAt,
	}
}

func FromDataModel(dm *talentRequestDatamodel.TalentRequest) *TalentRequest {
	return &TalentRequest{
		ID:        dm.ID,
		CompanyID: dm.CompanyID,
		FormData:  json.RawMessage(dm.FormData),
		Status:    dm.Status,
		CreatedAt: dm.CreatedAt,
		UpdatedAt: dm.UpdatedAt,
	}
}
