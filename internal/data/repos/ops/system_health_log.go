package ops

import (
	"context"

	"gorm.io/gorm"

	types "github.com/campuscore/campuscore-backend/internal/domain"
	"github.com/campuscore/campuscore-backend/internal/platform/logger"
)

type SystemHealthLogRepo interface {
	Create(ctx context.Context, tx *gorm.DB, logs []*types.SystemHealthLog) ([]*types.SystemHealthLog, error)
	GetLatest(ctx context.Context, tx *gorm.DB, limit int) ([]*types.SystemHealthLog, error)
}

type systemHealthLogRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewSystemHealthLogRepo(db *gorm.DB, baseLog *logger.Logger) SystemHealthLogRepo {
	repoLog := baseLog.With("repo", "SystemHealthLogRepo")
	return &systemHealthLogRepo{db: db, log: repoLog}
}

func (r *systemHealthLogRepo) Create(ctx context.Context, tx *gorm.DB, logs []*types.SystemHealthLog) ([]*types.SystemHealthLog, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(logs) == 0 {
		return []*types.SystemHealthLog{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}

func (r *systemHealthLogRepo) GetLatest(ctx context.Context, tx *gorm.DB, limit int) ([]*types.SystemHealthLog, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if limit <= 0 {
		limit = 10
	}

	var results []*types.SystemHealthLog
	if err := transaction.WithContext(ctx).
		Order("timestamp desc").
		Limit(limit).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
