package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	NCRStatusOpen   = "open"
	NCRStatusClosed = "closed"
)

// NCR is a non-conformance report raised against an inspected member.
type NCR struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	ProjectID   uuid.UUID  `gorm:"type:uuid;not null;index" json:"project_id"`
	Project     *Project   `gorm:"constraint:OnDelete:CASCADE;foreignKey:ProjectID;references:ID" json:"project,omitempty"`
	MemberID    *uuid.UUID `gorm:"type:uuid;index" json:"member_id,omitempty"`
	Member      *Member    `gorm:"foreignKey:MemberID;references:ID" json:"member,omitempty"`
	Reference   string     `gorm:"column:reference;not null" json:"reference"`
	Description string     `gorm:"column:description" json:"description"`
	Status      string     `gorm:"column:status;not null;default:'open'" json:"status"`
	RaisedAt    time.Time  `gorm:"column:raised_at;not null" json:"raised_at"`
	ClosedAt    *time.Time `gorm:"column:closed_at" json:"closed_at,omitempty"`

	CreatedAt time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (NCR) TableName() string { return "ncr" }

func (n *NCR) BeforeCreate(tx *gorm.DB) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	return nil
}
