package talentrequest

import "time"

type TalentRequest struct {
	ID        string    `gorm:"primaryKey"`
	CompanyID string    `gorm:"column:company_id;index;not null"`
	FormData  string    `gorm:"column:form_data;not null"`
	Status    string    `gorm:"column:status;not null;default:pending"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (TalentRequest) TableName() string {
	return "talent_requests"
}
