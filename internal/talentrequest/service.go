package talentrequest

import (
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/sobrinN/DASH.rh/internal"
	"github.com/sobrinN/DASH.rh/internal/company"
)

// Service handles talent-request business logic, always scoped to the
// caller's resolved company.
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

func (s *Service) ListForCompany(comp *company.Company) ([]*TalentRequest, error) {
	requests, err := s.repo.GetByCompanyID(comp.ID)
	if err != nil {
		s.logger.Error("failed to list talent requests", "error", err, "company_id", comp.ID)
		return nil, internal.NewInternalError("failed to list talent requests", err)
	}
	return requests, nil
}

func (s *Service) Create(comp *company.Company, dto CreateTalentRequestDTO) (*TalentRequest, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	status := dto.Status
	if status == "" {
		status = StatusPending
	}

	now := time.Now()
	tr := &TalentRequest{
		ID:        uuid.NewString(),
		CompanyID: comp.ID,
		FormData:  dto.FormData,
		Status:    status,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(tr); err != nil {
		s.logger.Error("failed to create talent request", "error", err, "company_id", comp.ID)
		return nil, internal.NewInternalError("failed to create talent request", err)
	}

	s.logger.Info("talent request created", "request_id", tr.ID, "company_id", comp.ID)
	return tr, nil
}

func (s *Service) UpdateStatus(comp *company.Company, id string, dto UpdateTalentRequestDTO) (*TalentRequest, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	if _, err := s.repo.GetByID(id, comp.ID); err != nil {
		return nil, err
	}

	if dto.Status != nil {
		if err := s.repo.UpdateStatus(id, comp.ID, *dto.Status); err != nil {
			s.logger.Error("failed to update talent request", "error", err, "request_id", id, "company_id", comp.ID)
			return nil, internal.NewInternalError("failed to update talent request", err)
		}
	}

	return s.repo.GetByID(id, comp.ID)
}

func (s *Service) Delete(comp *company.Company, id string) error {
	if _, err := s.repo.GetByID(id, comp.ID); err != nil {
		return err
	}

	if err := s.repo.Delete(id, comp.ID); err != nil {
		s.logger.Error("failed to delete talent request", "error", err, "request_id", id, "company_id", comp.ID)
		return internal.NewInternalError("failed to delete talent request", err)
	}

	return nil
}
