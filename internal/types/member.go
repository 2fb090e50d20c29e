package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Member is a structural steel member under inspection. RequiredDFT is the
// specified minimum dry film thickness in microns; nil when the coating spec
// does not state one.
type Member struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ProjectID   uuid.UUID `gorm:"type:uuid;not null;index" json:"project_id"`
	Project     *Project  `gorm:"constraint:OnDelete:CASCADE;foreignKey:ProjectID;references:ID" json:"project,omitempty"`
	Reference   string    `gorm:"column:reference;not null" json:"reference"`
	Description string    `gorm:"column:description" json:"description"`
	RequiredDFT *float64  `gorm:"column:required_dft" json:"required_dft,omitempty"`

	CreatedAt time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Member) TableName() string { return "member" }

func (m *Member) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
