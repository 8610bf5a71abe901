package feed

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/campuscore/campuscore-backend/internal/domain"
	"github.com/campuscore/campuscore-backend/internal/platform/logger"
)

type NewsEventRepo interface {
	Create(ctx context.Context, tx *gorm.DB, events []*types.NewsEvent) ([]*types.NewsEvent, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, eventIDs []uuid.UUID) ([]*types.NewsEvent, error)
	// List returns entries newest-first; eventType filters when non-empty.
	List(ctx context.Context, tx *gorm.DB, eventType string) ([]*types.NewsEvent, error)
	Update(ctx context.Context, tx *gorm.DB, event *types.NewsEvent) error
	FullDeleteByIDs(ctx context.Context, tx *gorm.DB, eventIDs []uuid.UUID) error
}

type newsEventRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewNewsEventRepo(db *gorm.DB, baseLog *logger.Logger) NewsEventRepo {
	repoLog := baseLog.With("repo", "NewsEventRepo")
	return &newsEventRepo{db: db, log: repoLog}
}

func (r *newsEventRepo) Create(ctx context.Context, tx *gorm.DB, events []*types.NewsEvent) ([]*types.NewsEvent, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(events) == 0 {
		return []*types.NewsEvent{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

func (r *newsEventRepo) GetByIDs(ctx context.Context, tx *gorm.DB, eventIDs []uuid.UUID) ([]*types.NewsEvent, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.NewsEvent
	if len(eventIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("id IN ?", eventIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *newsEventRepo) List(ctx context.Context, tx *gorm.DB, eventType string) ([]*types.NewsEvent, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	q := transaction.WithContext(ctx)
	if eventType != "" {
		q = q.Where("type = ?", eventType)
	}

	var results []*types.NewsEvent
	if err := q.Order("date desc").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *newsEventRepo) Update(ctx context.Context, tx *gorm.DB, event *types.NewsEvent) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(ctx).
		Model(&types.NewsEvent{}).
		Where("id = ?", event.ID).
		Updates(map[string]any{
			"title":       event.Title,
			"description": event.Description,
			"type":        event.Type,
			"start_date":  event.StartDate,
			"end_date":    event.EndDate,
		}).Error
}

func (r *newsEventRepo) FullDeleteByIDs(ctx context.Context, tx *gorm.DB, eventIDs []uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(eventIDs) == 0 {
		return nil
	}

	return transaction.WithContext(ctx).
		Unscoped().
		Where("id IN ?", eventIDs).
		Delete(&types.NewsEvent{}).Error
}
