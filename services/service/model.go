package service

import "time"

// WebService is an external client system that submits content for
// moderation. It authenticates with API keys owned by this record.
type WebService struct {
	ID               string    `gorm:"column:service_id;primaryKey"`
	Name             string    `gorm:"column:name;not null"`
	Description      string    `gorm:"column:description"`
	ContactEmail     string    `gorm:"column:contact_email;not null"`
	RegistrationDate time.Time `gorm:"column:registration_date;autoCreateTime"`
	IsActive         bool      `gorm:"column:is_active;default:true"`
}

// TableName sets the table name for the WebService model.
func (WebService) TableName() string { return "web_services" }
