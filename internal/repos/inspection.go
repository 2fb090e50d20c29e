package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Chris-github01/3rd-Party-Inspection-sub000/internal/logger"
	"github.com/Chris-github01/3rd-Party-Inspection-sub000/internal/types"
)

type InspectionRepo interface {
	Create(ctx context.Context, tx *gorm.DB, inspections []*types.Inspection) ([]*types.Inspection, error)
	GetByProjectID(ctx context.Context, tx *gorm.DB, projectID uuid.UUID) ([]*types.Inspection, error)
}

type inspectionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewInspectionRepo(db *gorm.DB, baseLog *logger.Logger) InspectionRepo {
	return &inspectionRepo{db: db, log: baseLog.With("repo", "InspectionRepo")}
}

func (r *inspectionRepo) Create(ctx context.Context, tx *gorm.DB, inspections []*types.Inspection) ([]*types.Inspection, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(inspections) == 0 {
		return []*types.Inspection{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&inspections).Error; err != nil {
		return nil, err
	}
	return inspections, nil
}

// GetByProjectID returns inspections with member and DFT batch preloaded,
// ordered by inspection time ascending (ties broken by id for a stable report
// row order).
func (r *inspectionRepo) GetByProjectID(ctx context.Context, tx *gorm.DB, projectID uuid.UUID) ([]*types.Inspection, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.Inspection
	if err := transaction.WithContext(ctx).
		Preload("Member").
		Preload("DFTBatch").
		Where("project_id = ?", projectID).
		Order("inspected_at ASC, id ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
