package employee

import (
	"time"

	employeeDatamodel "github.com/sobrinN/DASH.rh/internal/core/datamodel/employee"
)

// Hiring pipeline stages, in board order.
const (
	StageCaptacao   = "captacao"
	StageEntrevista = "entrevista"
	StageTeste      = "teste"
	StageContratado = "contratado"
)

var Stages = []string{StageCaptacao, StageEntrevista, StageTeste, StageContratado}

// Employee is a quota-bound resource: it belongs to exactly one company and
// counts against the free-plan ceiling. CompanyID is set at creation from the
// caller's session and never changes.
type Employee struct {
	ID         string    `json:"id"`
	CompanyID  string    `json:"company_id"`
	Name       string    `json:"name"`
	Email      *string   `json:"email"`
	Phone      *string   `json:"phone"`
	Position   string    `json:"position"`
	Department *string   `json:"department"`
	Stage      string    `json:"stage"`
	Notes      *string   `json:"notes"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Repository defines the data access methods for employees. Every method is
// scoped by company id; there is deliberately no lookup by bare employee id.
type Repository interface {
	// CreateWithLimit inserts the employee only if the company's current
	// count is below limit, atomically. limit < 0 means unlimited.
	CreateWithLimit(emp *Employee, limit int) error
	GetByCompanyID(companyID string) ([]*Employee, error)
	GetByID(id, companyID string) (*Employee, error)
	Update(emp *Employee) error
	Delete(id, companyID string) error
	CountByCompanyID(companyID string) (int64, error)
}

func ToDataModel(e *Employee) *employeeDatamodel.Employee {
	return &employeeDatamodel.Employee{
		ID:         e.ID,
		CompanyID:  e.CompanyID,
		Name:       e.Name,
		Email:      e.Email,
		Phone:      e.Phone,
		Position:   e.Position,
		Department: e.Department,
		Stage:      e.Stage,
		Notes:      e.Notes,
		CreatedAt:  e.CreatedAt,
		UpdatedAt:  e.UpdatedAt,
	}
}

func FromDataModel(dm *employeeDatamodel.Employee) *Employee {
	return &Employee{
		ID:         dm.ID,
		CompanyID:  dm.CompanyID,
		Name:       dm.Name,
		Email:      dm.Email,
		Phone:      dm.Phone,
		Position:   dm.Position,
		Department: dm.Department,
		Stage:      dm.Stage,
		Notes:      dm.Notes,
		CreatedAt:  dm.CreatedAt,
		UpdatedAt:  dm.UpdatedAt,
	}
}
