package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Chris-github01/3rd-Party-Inspection-sub000/internal/logger"
	"github.com/Chris-github01/3rd-Party-Inspection-sub000/internal/types"
)

type SimulatedSetRepo interface {
	Create(ctx context.Context, tx *gorm.DB, sets []*types.SimulatedMemberSet) ([]*types.SimulatedMemberSet, error)
	GetByProjectID(ctx context.Context, tx *gorm.DB, projectID uuid.UUID) ([]*types.SimulatedMemberSet, error)
}

type simulatedSetRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewSimulatedSetRepo(db *gorm.DB, baseLog *logger.Logger) SimulatedSetRepo {
	return &simulatedSetRepo{db: db, log: baseLog.With("repo", "SimulatedSetRepo")}
}

func (r *simulatedSetRepo) Create(ctx context.Context, tx *gorm.DB, sets []*types.SimulatedMemberSet) ([]*types.SimulatedMemberSet, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(sets) == 0 {
		return []*types.SimulatedMemberSet{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&sets).Error; err != nil {
		return nil, err
	}
	return sets, nil
}

func (r *simulatedSetRepo) GetByProjectID(ctx context.Context, tx *gorm.DB, projectID uuid.UUID) ([]*types.SimulatedMemberSet, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.SimulatedMemberSet
	if err := transaction.WithContext(ctx).
		Preload("Members", func(db *gorm.DB) *gorm.DB {
			return db.Order("reference ASC")
		}).
		Where("project_id = ?", projectID).
		Order("label ASC, id ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
