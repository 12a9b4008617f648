package sqlite

import (
	"errors"
	"time"

	"github.com/sobrinN/DASH.rh/internal"
	talentRequestDatamodel "github.com/sobrinN/DASH.rh/internal/core/datamodel/talentrequest"
	"github.com/sobrinN/DASH.rh/internal/talentrequest"
	"gorm.io/gorm"
)

// TalentRequestRepository implements the talentrequest.Repository interface
// using GORM.
type TalentRequestRepository struct {
	db *gorm.DB
}

func NewTalentRequestRepository(db *gorm.DB) talentrequest.Repository {
	return &TalentRequestRepository{db: db}
}

func (r *TalentRequestRepository) Create(tr *talentrequest.TalentRequest) error {
	return r.db.Create(talentrequest.ToDataModel(tr)).Error
}

func (r *TalentRequestRepository) GetByCompanyID(companyID string) ([]*talentrequest.TalentRequest, error) {
	var dms []*talentRequestDatamodel.TalentRequest
	err := r.db.Where("company_id = ?", companyID).
		Order("created_at DESC").
		Find(&dms).Error
	if err != nil {
		return nil, err
	}

	requests := make([]*talentrequest.TalentRequest, len(dms))
	for i, dm := range dms {
		requests[i] = talentrequest.FromDataModel(dm)
	}
	return requests, nil
}

func (r *TalentRequestRepository) GetByID(id, companyID string) (*talentrequest.TalentRequest, error) {
	var dm talentRequestDatamodel.TalentRequest
	err := r.db.Where("id = ? AND company_id = ?", id, companyID).First(&dm).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrTalentRequestNotFound
		}
		return nil, err
	}
	return talentrequest.FromDataModel(&dm), nil
}

func (r *TalentRequestRepository) UpdateStatus(id, companyID, status string) error {
	res := r.db.Model(&talentRequestDatamodel.TalentRequest{}).
		Where("id = ? AND company_id = ?", id, companyID).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_at": time.Now(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return internal.ErrTalentRequestNotFound
	}
	return nil
}

func (r *TalentRequestRepository) Delete(id, companyID string) error {
	res := r.db.Where("id = ? AND company_id = ?", id, companyID).
		Delete(&talentRequestDatamodel.TalentRequest{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return internal.ErrTalentRequestNotFound
	}
	return nil
}
