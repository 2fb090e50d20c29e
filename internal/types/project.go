package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Project struct {
	ID             uuid.UUID     `gorm:"type:uuid;primaryKey" json:"id"`
	OrganizationID uuid.UUID     `gorm:"type:uuid;not null;index" json:"organization_id"`
	Organization   *Organization `gorm:"foreignKey:OrganizationID;references:ID" json:"organization,omitempty"`
	ClientID       uuid.UUID     `gorm:"type:uuid;not null;index" json:"client_id"`
	Client         *Client       `gorm:"foreignKey:ClientID;references:ID" json:"client,omitempty"`
	Name           string        `gorm:"column:name;not null" json:"name"`
	SiteAddress    string        `gorm:"column:site_address" json:"site_address"`
	ReportDate     time.Time     `gorm:"column:report_date" json:"report_date"`

	CreatedAt time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Project) TableName() string { return "project" }

func (p *Project) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
