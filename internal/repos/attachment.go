package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Chris-github01/3rd-Party-Inspection-sub000/internal/logger"
	"github.com/Chris-github01/3rd-Party-Inspection-sub000/internal/types"
)

type AttachmentRepo interface {
	Create(ctx context.Context, tx *gorm.DB, attachment *types.Attachment) (*types.Attachment, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Attachment, error)
	GetActiveByProjectID(ctx context.Context, tx *gorm.DB, projectID uuid.UUID) ([]*types.Attachment, error)
	GetActiveByProjectIDForUpdate(ctx context.Context, tx *gorm.DB, projectID uuid.UUID) ([]*types.Attachment, error)
	SetSequence(ctx context.Context, tx *gorm.DB, id uuid.UUID, sequence int) error
	Deactivate(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
	SetConversion(ctx context.Context, tx *gorm.DB, id uuid.UUID, state string, convertedKey *string) error
	UpdateMetadata(ctx context.Context, tx *gorm.DB, id uuid.UUID, fields map[string]interface{}) error
}

type attachmentRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAttachmentRepo(db *gorm.DB, baseLog *logger.Logger) AttachmentRepo {
	return &attachmentRepo{db: db, log: baseLog.With("repo", "AttachmentRepo")}
}

// withRowLock adds FOR UPDATE on dialects that support it. The sqlite test
// driver falls back to its single-writer semantics.
func withRowLock(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "postgres" {
		return tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return tx
}

func (r *attachmentRepo) Create(ctx context.Context, tx *gorm.DB, attachment *types.Attachment) (*types.Attachment, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if err := transaction.WithContext(ctx).Create(attachment).Error; err != nil {
		return nil, err
	}
	return attachment, nil
}

func (r *attachmentRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Attachment, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var result types.Attachment
	if err := transaction.WithContext(ctx).
		Where("id = ?", id).
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *attachmentRepo) GetActiveByProjectID(ctx context.Context, tx *gorm.DB, projectID uuid.UUID) ([]*types.Attachment, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.Attachment
	if err := transaction.WithContext(ctx).
		Where("project_id = ? AND is_active = ?", projectID, true).
		Order("sequence_number ASC, id ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// GetActiveByProjectIDForUpdate reads the active set with row locks so a
// sequence swap serializes against concurrent mutations on the same project.
func (r *attachmentRepo) GetActiveByProjectIDForUpdate(ctx context.Context, tx *gorm.DB, projectID uuid.UUID) ([]*types.Attachment, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.Attachment
	if err := withRowLock(transaction.WithContext(ctx)).
		Where("project_id = ? AND is_active = ?", projectID, true).
		Order("sequence_number ASC, id ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *attachmentRepo) SetSequence(ctx context.Context, tx *gorm.DB, id uuid.UUID, sequence int) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(ctx).
		Model(&types.Attachment{}).
		Where("id = ?", id).
		Update("sequence_number", sequence).Error
}

func (r *attachmentRepo) Deactivate(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(ctx).
		Model(&types.Attachment{}).
		Where("id = ?", id).
		Update("is_active", false).Error
}

func (r *attachmentRepo) SetConversion(ctx context.Context, tx *gorm.DB, id uuid.UUID, state string, convertedKey *string) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(ctx).
		Model(&types.Attachment{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"conversion_state": state,
			"converted_key":    convertedKey,
		}).Error
}

func (r *attachmentRepo) UpdateMetadata(ctx context.Context, tx *gorm.DB, id uuid.UUID, fields map[string]interface{}) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(fields) == 0 {
		return nil
	}
	return transaction.WithContext(ctx).
		Model(&types.Attachment{}).
		Where("id = ?", id).
		Updates(fields).Error
}
