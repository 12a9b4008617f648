package company

import (
	"log/slog"
	"strings"

	"github.com/sobrinN/DASH.rh/internal"
)

// Service implements the company registry operations. Every mutation is keyed
// by the owning user id resolved from the caller's session, never by a
// client-supplied company id.
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

// GetByOwner returns the company owned by userID.
func (s *Service) GetByOwner(userID string) (*Company, error) {
	c, err := s.repo.GetByOwnerID(userID)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// Rename updates the display name of the caller's company. Blank or
// whitespace-only names are rejected.
func (s *Service) Rename(userID, name string) (*Company, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, internal.NewValidationError("company name is required", internal.ErrCodeValidationFailed)
	}

	if err := s.repo.UpdateName(userID, name); err != nil {
		s.logger.Error("failed to rename company", "error", err, "user_id", userID)
		return nil, err
	}

	return s.repo.GetByOwnerID(userID)
}

// ChangePlan switches the caller's company between the free and pro tiers.
// Setting the current plan again is a no-op, not an error.
func (s *Service) ChangePlan(userID, plan string) (*Company, error) {
	if !IsValidPlan(plan) {
		return nil, internal.NewValidationError("plan must be one of: free, pro", internal.ErrCodeInvalidPlan)
	}

	if err := s.repo.UpdatePlan(userID, plan); err != nil {
		s.logger.Error("failed to change company plan", "error", err, "user_id", userID, "plan", plan)
		return nil, err
	}

	s.logger.Info("company plan changed", "user_id", userID, "plan", plan)

	return s.repo.GetByOwnerID(userID)
}
