package repository

import (
	"time"

	"github.com/evigdia/evigdia-backend/internal/domain"
	"gorm.io/gorm"
)

// ActivityRepository handles activity logs, post views and search queries
type ActivityRepository interface {
	WithTx(tx *gorm.DB) ActivityRepository
	CreateLog(log *domain.ActivityLog) error
	ListLogs(page, limit int, activityType domain.ActivityType) ([]*domain.ActivityLog, int64, error)
	MarkProcessed(ids []uint64) error

	CreateView(view *domain.PostView) error
	CountViewsSince(postID uint64, since time.Time) (int64, error)

	CreateSearchQuery(query *domain.SearchQuery) error
	TopSearchQueries(limit int, since time.Time) ([]string, error)
}

type activityRepository struct {
	db *gorm.DB
}

// NewActivityRepository creates a new ActivityRepository
func NewActivityRepository(db *gorm.DB) ActivityRepository {
	return &activityRepository{db: db}
}

func (r *activityRepository) WithTx(tx *gorm.DB) ActivityRepository {
	return &activityRepository{db: tx}
}

func (r *activityRepository) CreateLog(log *domain.ActivityLog) error {
	return r.db.Create(log).Error
}

func (r *activityRepository) ListLogs(page, limit int, activityType domain.ActivityType) ([]*domain.ActivityLog, int64, error) {
	var logs []*domain.ActivityLog
	var total int64

	query := r.db.Model(&domain.ActivityLog{})
	if activityType != "" {
		query = query.Where("activity_type = ?", activityType)
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	offset := (page - 1) * limit
	if err := query.Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&logs).Error; err != nil {
		return nil, 0, err
	}
	return logs, total, nil
}

func (r *activityRepository) MarkProcessed(ids []uint64) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.Model(&domain.ActivityLog{}).
		Where("id IN ?", ids).
		Update("is_processed", true).Error
}

func (r *activityRepository) CreateView(view *domain.PostView) error {
	return r.db.Create(view).Error
}

func (r *activityRepository) CountViewsSince(postID uint64, since time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&domain.PostView{}).
		Where("post_id = ? AND viewed_at >= ?", postID, since).
		Count(&count).Error
	return count, err
}

func (r *activityRepository) CreateSearchQuery(query *domain.SearchQuery) error {
	return r.db.Create(query).Error
}

func (r *activityRepository) TopSearchQueries(limit int, since time.Time) ([]string, error) {
	var queries []string
	err := r.db.Model(&domain.SearchQuery{}).
		Where("created_at >= ?", since).
		Select("query").
		Group("query").
		Order("COUNT(*) DESC").
		Limit(limit).
		Pluck("query", &queries).Error
	return queries, err
}
