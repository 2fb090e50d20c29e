package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Chris-github01/3rd-Party-Inspection-sub000/internal/logger"
	"github.com/Chris-github01/3rd-Party-Inspection-sub000/internal/types"
)

type NCRRepo interface {
	Create(ctx context.Context, tx *gorm.DB, ncrs []*types.NCR) ([]*types.NCR, error)
	GetByProjectID(ctx context.Context, tx *gorm.DB, projectID uuid.UUID) ([]*types.NCR, error)
}

type ncrRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewNCRRepo(db *gorm.DB, baseLog *logger.Logger) NCRRepo {
	return &ncrRepo{db: db, log: baseLog.With("repo", "NCRRepo")}
}

func (r *ncrRepo) Create(ctx context.Context, tx *gorm.DB, ncrs []*types.NCR) ([]*types.NCR, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(ncrs) == 0 {
		return []*types.NCR{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&ncrs).Error; err != nil {
		return nil, err
	}
	return ncrs, nil
}

func (r *ncrRepo) GetByProjectID(ctx context.Context, tx *gorm.DB, projectID uuid.UUID) ([]*types.NCR, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.NCR
	if err := transaction.WithContext(ctx).
		Preload("Member").
		Where("project_id = ?", projectID).
		Order("raised_at ASC, id ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
