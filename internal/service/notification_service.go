package service

import (
	"errors"
	"math"

	"github.com/evigdia/evigdia-backend/internal/common"
	"github.com/evigdia/evigdia-backend/internal/domain"
	"github.com/evigdia/evigdia-backend/internal/repository"
	"gorm.io/gorm"
)

// NotificationService handles notification business logic
type NotificationService struct {
	repo repository.NotificationRepository
}

// NewNotificationService creates a new NotificationService
func NewNotificationService(repo repository.NotificationRepository) *NotificationService {
	return &NotificationService{repo: repo}
}

// List returns paginated notifications for a user
func (s *NotificationService) List(userID uint64, page, limit int, unreadOnly bool) (*domain.NotificationListResponse, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	notifications, total, err := s.repo.ListByUser(userID, page, limit, unreadOnly)
	if err != nil {
		return nil, err
	}
	unread, err := s.repo.UnreadCount(userID)
	if err != nil {
		return nil, err
	}

	items := make([]domain.Notification, len(notifications))
	for i, n := range notifications {
		items[i] = *n
	}
	totalPages := int(math.Ceil(float64(total) / float64(limit)))

	return &domain.NotificationListResponse{
		Items:       items,
		Total:       total,
		UnreadCount: unread,
		Page:        page,
		Limit:       limit,
		TotalPages:  totalPages,
	}, nil
}

// Summary returns the unread notification count for a user
func (s *NotificationService) Summary(userID uint64) (*domain.NotificationSummaryResponse, error) {
	unread, err := s.repo.UnreadCount(userID)
	if err != nil {
		return nil, err
	}
	return &domain.NotificationSummaryResponse{TotalUnread: unread}, nil
}

// MarkRead marks one of the user's notifications as read
func (s *NotificationService) MarkRead(userID, notificationID uint64) error {
	err := s.repo.MarkRead(notificationID, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return common.ErrNotFound
	}
	return err
}

// MarkAllRead marks all of the user's notifications as read
func (s *NotificationService) MarkAllRead(userID uint64) error {
	return s.repo.MarkAllRead(userID)
}

// Delete removes one of the user's notifications
func (s *NotificationService) Delete(userID, notificationID uint64) error {
	err := s.repo.Delete(notificationID, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return common.ErrNotFound
	}
	return err
}

// ListAdmin returns paginated admin notifications
func (s *NotificationService) ListAdmin(page, limit int, unreadOnly bool) ([]*domain.AdminNotification, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return s.repo.ListAdmin(page, limit, unreadOnly)
}

// AdminSummary returns the unread admin notification count
func (s *NotificationService) AdminSummary() (*domain.NotificationSummaryResponse, error) {
	unread, err := s.repo.AdminUnreadCount()
	if err != nil {
		return nil, err
	}
	return &domain.NotificationSummaryResponse{TotalUnread: unread}, nil
}

// MarkAdminRead marks an admin notification as read
func (s *NotificationService) MarkAdminRead(notificationID uint64) error {
	err := s.repo.MarkAdminRead(notificationID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return common.ErrNotFound
	}
	return err
}

// MarkAllAdminRead marks every admin notification as read
func (s *NotificationService) MarkAllAdminRead() error {
	return s.repo.MarkAllAdminRead()
}
