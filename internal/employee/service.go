package employee

import (
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/sobrinN/DASH.rh/internal"
	"github.com/sobrinN/DASH.rh/internal/company"
)

// Service handles employee business logic. Every operation takes the caller's
// resolved company, never a company id from request input.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// ListForCompany returns the company's employees, newest first.
func (s *Service) ListForCompany(comp *company.Company) ([]*Employee, error) {
	employees, err := s.repo.GetByCompanyID(comp.ID)
	if err != nil {
		s.logger.Error("failed to list employees", "error", err, "company_id", comp.ID)
		return nil, internal.NewInternalError("failed to list employees", err)
	}
	return employees, nil
}

// Create adds an employee to the company, subject to the plan quota. The
// count check and insert run as one atomic unit in the repository, so the
// free-tier ceiling holds under concurrent creation attempts.
func (s *Service) Create(comp *company.Company, dto CreateEmployeeDTO) (*Employee, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	stage := dto.Stage
	if stage == "" {
		stage = StageCaptacao
	}

	now := time.Now()
	emp := &Employee{
		ID:         uuid.NewString(),
		CompanyID:  comp.ID,
		Name:       dto.Name,
		Email:      dto.Email,
		Phone:      dto.Phone,
		Position:   dto.Position,
		Department: dto.Department,
		Stage:      stage,
		Notes:      dto.Notes,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.repo.CreateWithLimit(emp, PlanLimit(comp)); err != nil {
		if appErr, ok := internal.IsAppError(err); ok {
			if appErr.Code == internal.ErrCodeQuotaExceeded {
				s.logger.Info("employee creation denied by quota",
					"company_id", comp.ID,
					"plan", comp.Plan)
			}
			return nil, err
		}
		s.logger.Error("failed to create employee", "error", err, "company_id", comp.ID)
		return nil, internal.NewInternalError("failed to create employee", err)
	}

	s.logger.Info("employee created",
		"employee_id", emp.ID,
		"company_id", comp.ID,
		"stage", emp.Stage)

	return emp, nil
}

// Update mutates an employee owned by the company. An id belonging to a
// different company is reported as not found.
func (s *Service) Update(comp *company.Company, id string, dto UpdateEmployeeDTO) (*Employee, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	emp, err := s.repo.GetByID(id, comp.ID)
	if err != nil {
		return nil, err
	}

	if dto.Name != nil {
		emp.Name = *dto.Name
	}
	if dto.Email != nil {
		emp.Email = dto.Email
	}
	if dto.Phone != nil {
		emp.Phone = dto.Phone
	}
	if dto.Position != nil {
		emp.Position = *dto.Position
	}
	if dto.Department != nil {
		emp.Department = dto.Department
	}
	if dto.Stage != nil {
		emp.Stage = *dto.Stage
	}
	if dto.Notes != nil {
		emp.Notes = dto.Notes
	}
	emp.UpdatedAt = time.Now()

	if err := s.repo.Update(emp); err != nil {
		s.logger.Error("failed to update employee", "error", err, "employee_id", id, "company_id", comp.ID)
		return nil, internal.NewInternalError("failed to update employee", err)
	}

	return emp, nil
}

// Delete removes an employee owned by the company.
func (s *Service) Delete(comp *company.Company, id string) error {
	if _, err := s.repo.GetByID(id, comp.ID); err != nil {
		return err
	}

	if err := s.repo.Delete(id, comp.ID); err != nil {
		s.logger.Error("failed to delete employee", "error", err, "employee_id", id, "company_id", comp.ID)
		return internal.NewInternalError("failed to delete employee", err)
	}

	s.logger.Info("employee deleted", "employee_id", id, "company_id", comp.ID)
	return nil
}
