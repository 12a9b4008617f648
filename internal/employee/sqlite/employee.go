package sqlite

import (
	"errors"
	"fmt"

	"github.com/sobrinN/DASH.rh/internal"
	employeeDatamodel "github.com/sobrinN/DASH.rh/internal/core/datamodel/employee"
	"github.com/sobrinN/DASH.rh/internal/employee"
	"gorm.io/gorm"
)

// EmployeeRepository implements the employee.Repository interface using GORM.
type EmployeeRepository struct {
	db *gorm.DB
}

func NewEmployeeRepository(db *gorm.DB) employee.Repository {
	return &EmployeeRepository{db: db}
}

// CreateWithLimit counts the company's employees and inserts the new row in
// one write transaction. The count re-runs inside the transaction, so two
// concurrent creates against a free company at 19 cannot both commit: sqlite
// serializes writers, and on postgres the SELECT ... FOR UPDATE on the
// company row serializes creates for the same tenant.
func (r *EmployeeRepository) CreateWithLimit(emp *employee.Employee, limit int) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if limit >= 0 {
			if tx.Dialector.Name() == "postgres" {
				var lockedID string
				if err := tx.Raw("SELECT id FROM companies WHERE id = ? FOR UPDATE", emp.CompanyID).Scan(&lockedID).Error; err != nil {
					return fmt.Errorf("lock company row: %w", err)
				}
			}

			var count int64
			if err := tx.Model(&employeeDatamodel.Employee{}).
				Where("company_id = ?", emp.CompanyID).
				Count(&count).Error; err != nil {
				return err
			}
			if count >= int64(limit) {
				return internal.ErrQuotaExceeded
			}
		}

		return tx.Create(employee.ToDataModel(emp)).Error
	})
}

func (r *EmployeeRepository) GetByCompanyID(companyID string) ([]*employee.Employee, error) {
	var dms []*employeeDatamodel.Employee
	err := r.db.Where("company_id = ?", companyID).
		Order("created_at DESC").
		Find(&dms).Error
	if err != nil {
		return nil, err
	}

	employees := make([]*employee.Employee, len(dms))
	for i, dm := range dms {
		employees[i] = employee.FromDataModel(dm)
	}
	return employees, nil
}

// GetByID filters by company id as well, so an id owned by another tenant is
// indistinguishable from a missing one.
func (r *EmployeeRepository) GetByID(id, companyID string) (*employee.Employee, error) {
	var dm employeeDatamodel.Employee
	err := r.db.Where("id = ? AND company_id = ?", id, companyID).First(&dm).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrEmployeeNotFound
		}
		return nil, err
	}
	return employee.FromDataModel(&dm), nil
}

func (r *EmployeeRepository) Update(emp *employee.Employee) error {
	res := r.db.Model(&employeeDatamodel.Employee{}).
		Where("id = ? AND company_id = ?", emp.ID, emp.CompanyID).
		Updates(map[string]interface{}{
			"name":       emp.Name,
			"email":      emp.Email,
			"phone":      emp.Phone,
			"position":   emp.Position,
			"department": emp.Department,
			"stage":      emp.Stage,
			"notes":      emp.Notes,
			"updated_at": emp.UpdatedAt,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return internal.ErrEmployeeNotFound
	}
	return nil
}

func (r *EmployeeRepository) Delete(id, companyID string) error {
	res := r.db.Where("id = ? AND company_id = ?", id, companyID).
		Delete(&employeeDatamodel.Employee{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return internal.ErrEmployeeNotFound
	}
	return nil
}

func (r *EmployeeRepository) CountByCompanyID(companyID string) (int64, error) {
	var count int64
	err := r.db.Model(&employeeDatamodel.Employee{}).
		Where("company_id = ?", companyID).
		Count(&count).Error
	return count, err
}
