package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	InspectionStatusPassed         = "passed"
	InspectionStatusRepairRequired = "repair_required"
	InspectionStatusPending        = "pending"
)

type Inspection struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ProjectID   uuid.UUID `gorm:"type:uuid;not null;index" json:"project_id"`
	Project     *Project  `gorm:"constraint:OnDelete:CASCADE;foreignKey:ProjectID;references:ID" json:"project,omitempty"`
	MemberID    uuid.UUID `gorm:"type:uuid;not null;index" json:"member_id"`
	Member      *Member   `gorm:"foreignKey:MemberID;references:ID" json:"member,omitempty"`
	InspectedAt time.Time `gorm:"column:inspected_at;not null" json:"inspected_at"`
	Location    string    `gorm:"column:location" json:"location"`
	Status      string    `gorm:"column:status;not null;default:'pending'" json:"status"`

	// Environmental readings taken at the time of inspection, all optional.
	AmbientTemp      *float64 `gorm:"column:ambient_temp" json:"ambient_temp,omitempty"`
	SteelTemp        *float64 `gorm:"column:steel_temp" json:"steel_temp,omitempty"`
	DewPoint         *float64 `gorm:"column:dew_point" json:"dew_point,omitempty"`
	RelativeHumidity *float64 `gorm:"column:relative_humidity" json:"relative_humidity,omitempty"`

	DFTBatch *DFTBatch `gorm:"foreignKey:InspectionID;references:ID" json:"dft_batch,omitempty"`

	CreatedAt time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Inspection) TableName() string { return "inspection" }

func (i *Inspection) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// DFTBatch is one set of dry film thickness gauge readings (microns) taken
// during a single inspection.
type DFTBatch struct {
	ID           uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	InspectionID uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex" json:"inspection_id"`
	Readings     datatypes.JSON `gorm:"column:readings;type:jsonb" json:"readings"`

	CreatedAt time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (DFTBatch) TableName() string { return "dft_batch" }

func (b *DFTBatch) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}
