package company

import (
	"time"

	companyDatamodel "github.com/sobrinN/DASH.rh/internal/core/datamodel/company"
)

const (
	PlanFree = "free"
	PlanPro  = "pro"
)

// Company is a tenant: every employee and talent request belongs to exactly
// one of these, and each user owns at most one.
type Company struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	OwnerID   string    `json:"owner_id"`
	Plan      string    `json:"plan"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (c *Company) IsFree() bool {
	return c.Plan == PlanFree
}

func IsValidPlan(plan string) bool {
	return plan == PlanFree || plan == PlanPro
}

// Repository defines the data access methods for companies.
type Repository interface {
	GetByOwnerID(ownerID string) (*Company, error)
	UpdateName(ownerID, name string) error
	UpdatePlan(ownerID, plan string) error
}

func ToDataModel(c *Company) *companyDatamodel.Company {
	return &companyDatamodel.Company{
		ID:        c.ID,
		Name:      c.Name,
		OwnerID:   c.OwnerID,
		Plan:      c.Plan,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func FromDataModel(c *companyDatamodel.Company) *Company {
	return &Company{
		ID:        c.ID,
		Name:      c.Name,
		OwnerID:   c.OwnerID,
		Plan:      c.Plan,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
