package service

import (
	"time"

	"github.com/evigdia/evigdia-backend/internal/common"
	"github.com/evigdia/evigdia-backend/internal/domain"
	"github.com/evigdia/evigdia-backend/internal/repository"
)

// ActivityService exposes the activity log for admin review
type ActivityService struct {
	activities repository.ActivityRepository
}

// NewActivityService creates a new ActivityService
func NewActivityService(activities repository.ActivityRepository) *ActivityService {
	return &ActivityService{activities: activities}
}

// List returns activity log entries, newest first, optionally filtered by kind
func (s *ActivityService) List(page, limit int, rawType string) ([]*domain.ActivityLog, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 200 {
		limit = 50
	}
	activityType := domain.ActivityType(rawType)
	if activityType != "" && !domain.ValidActivityType(activityType) {
		return nil, 0, common.ErrInvalidInput
	}
	return s.activities.ListLogs(page, limit, activityType)
}

// MarkProcessed flags the given entries as reviewed
func (s *ActivityService) MarkProcessed(ids []uint64) error {
	if len(ids) == 0 {
		return common.ErrInvalidInput
	}
	return s.activities.MarkProcessed(ids)
}

// TopSearches returns the most frequent search terms of the past days
func (s *ActivityService) TopSearches(limit, days int) ([]string, error) {
	if limit < 1 || limit > 50 {
		limit = 10
	}
	if days < 1 {
		days = 7
	}
	since := time.Now().AddDate(0, 0, -days)
	return s.activities.TopSearchQueries(limit, since)
}
