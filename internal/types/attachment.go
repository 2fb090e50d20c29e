package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	AttachmentSourcePDF   = "pdf"
	AttachmentSourceImage = "image"
)

// Conversion states for the derived single-page PDF of an image attachment.
// PDF attachments stay at "none"; image attachments start at "pending" and
// move to "ready" or "failed" once normalization has run.
const (
	ConversionNone    = "none"
	ConversionPending = "pending"
	ConversionReady   = "ready"
	ConversionFailed  = "failed"
)

// Attachment is one file appended to the audit pack. SequenceNumber defines
// merge order among active attachments for a project; gaps are allowed and
// soft deletes never renumber the survivors. A partial unique index keeps
// the number unique within a project's active set.
type Attachment struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ProjectID uuid.UUID `gorm:"type:uuid;not null;index;index:uidx_attachment_active_seq,unique,where:is_active,priority:1" json:"project_id"`
	Project   *Project  `gorm:"constraint:OnDelete:CASCADE;foreignKey:ProjectID;references:ID" json:"project,omitempty"`

	SequenceNumber int    `gorm:"column:sequence_number;not null;index:uidx_attachment_active_seq,unique,where:is_active,priority:2" json:"sequence_number"`
	SourceType     string `gorm:"column:source_type;not null" json:"source_type"`
	MimeType       string `gorm:"column:mime_type;not null" json:"mime_type"`
	OriginalName   string `gorm:"column:original_name;not null" json:"original_name"`
	StorageKey     string `gorm:"column:storage_key;not null" json:"storage_key"`

	ConvertedKey    *string `gorm:"column:converted_key" json:"converted_key,omitempty"`
	ConversionState string  `gorm:"column:conversion_state;not null;default:'none'" json:"conversion_state"`

	DisplayTitle     *string `gorm:"column:display_title" json:"display_title,omitempty"`
	AppendixCategory *string `gorm:"column:appendix_category" json:"appendix_category,omitempty"`

	IsActive bool `gorm:"column:is_active;not null;default:true" json:"is_active"`

	UploadedBy   uuid.UUID `gorm:"type:uuid;column:uploaded_by" json:"uploaded_by"`
	UploaderName string    `gorm:"column:uploader_name" json:"uploader_name"`
	UploadedAt   time.Time `gorm:"column:uploaded_at;not null" json:"uploaded_at"`

	CreatedAt time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Attachment) TableName() string { return "attachment" }

func (a *Attachment) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// Title resolves the human label shown on divider pages: the display title
// when set, otherwise the original filename with its extension stripped.
func (a *Attachment) Title() string {
	if a.DisplayTitle != nil && *a.DisplayTitle != "" {
		return *a.DisplayTitle
	}
	name := a.OriginalName
	for i := len(name) - 1; i >= 0; i-- {
		if name[i] == '.' {
			return name[:i]
		}
		if name[i] == '/' || name[i] == '\\' {
			break
		}
	}
	return name
}
