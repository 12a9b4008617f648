package sqlite

import (
	"errors"
	"time"

	"github.com/sobrinN/DASH.rh/internal"
	"github.com/sobrinN/DASH.rh/internal/company"
	companyDatamodel "github.com/sobrinN/DASH.rh/internal/core/datamodel/company"
	"gorm.io/gorm"
)

// CompanyRepository implements the company.Repository interface using GORM.
type CompanyRepository struct {
	db *gorm.DB
}

func NewCompanyRepository(db *gorm.DB) company.Repository {
	return &CompanyRepository{db: db}
}

// GetByOwnerID looks up the single company owned by a user. The owner_id
// column carries a unique index, so at most one row can match.
func (r *CompanyRepository) GetByOwnerID(ownerID string) (*company.Company, error) {
	var dm companyDatamodel.Company
	err := r.db.Where("owner_id = ?", ownerID).First(&dm).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrCompanyNotFound
		}
		return nil, err
	}
	return company.FromDataModel(&dm), nil
}

func (r *CompanyRepository) UpdateName(ownerID, name string) error {
	res := r.db.Model(&companyDatamodel.Company{}).
		Where("owner_id = ?", ownerID).
		Updates(map[string]interface{}{
			"name":       name,
			"updated_at": time.Now(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return internal.ErrCompanyNotFound
	}
	return nil
}

func (r *CompanyRepository) UpdatePlan(ownerID, plan string) error {
	res := r.db.Model(&companyDatamodel.Company{}).
		Where("owner_id = ?", ownerID).
		Updates(map[string]interface{}{
			"plan":       plan,
			"updated_at": time.Now(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return internal.ErrCompanyNotFound
	}
	return nil
}
