package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// SimulatedMemberSet is a synthetically generated DFT dataset used for
// demonstration. Report pages derived from it are always watermarked and the
// data never feeds real compliance determinations.
type SimulatedMemberSet struct {
	ID        uuid.UUID          `gorm:"type:uuid;primaryKey" json:"id"`
	ProjectID uuid.UUID          `gorm:"type:uuid;not null;index" json:"project_id"`
	Project   *Project           `gorm:"constraint:OnDelete:CASCADE;foreignKey:ProjectID;references:ID" json:"project,omitempty"`
	Label     string             `gorm:"column:label;not null" json:"label"`
	Members   []*SimulatedMember `gorm:"foreignKey:SetID;references:ID" json:"members,omitempty"`

	CreatedAt time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (SimulatedMemberSet) TableName() string { return "simulated_member_set" }

func (s *SimulatedMemberSet) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

type SimulatedMember struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	SetID       uuid.UUID      `gorm:"type:uuid;not null;index" json:"set_id"`
	Reference   string         `gorm:"column:reference;not null" json:"reference"`
	RequiredDFT *float64       `gorm:"column:required_dft" json:"required_dft,omitempty"`
	Readings    datatypes.JSON `gorm:"column:readings;type:jsonb" json:"readings"`

	CreatedAt time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (SimulatedMember) TableName() string { return "simulated_member" }

func (s *SimulatedMember) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
