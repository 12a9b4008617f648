package employee

import "time"

type Employee struct {
	ID         string    `gorm:"primaryKey"`
	CompanyID  string    `gorm:"column:company_id;index;not null"`
	Name       string    `gorm:"column:name;not null"`
	Email      *string   `gorm:"column:email"`
	Phone      *string   `gorm:"column:phone"`
	Position   string    `gorm:"column:position;not null"`
	Department *string   `gorm:"column:department"`
	Stage      string    `gorm:"column:stage;not null;default:captacao"`
	Notes      *string   `gorm:"column:notes"`
	CreatedAt  time.Time `gorm:"column:created_at"`
	UpdatedAt  time.Time `gorm:"column:updated_at"`
}

func (Employee) TableName() string {
	return "employees"
}
