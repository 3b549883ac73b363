package repository

import (
	"github.com/evigdia/evigdia-backend/internal/domain"
	"gorm.io/gorm"
)

// NotificationRepository handles user and admin notification data access
type NotificationRepository interface {
	WithTx(tx *gorm.DB) NotificationRepository

	Create(notification *domain.Notification) error
	ListByUser(userID uint64, page, limit int, unreadOnly bool) ([]*domain.Notification, int64, error)
	UnreadCount(userID uint64) (int64, error)
	MarkRead(id, userID uint64) error
	MarkAllRead(userID uint64) error
	Delete(id, userID uint64) error

	CreateAdmin(notification *domain.AdminNotification) error
	ListAdmin(page, limit int, unreadOnly bool) ([]*domain.AdminNotification, int64, error)
	AdminUnreadCount() (int64, error)
	MarkAdminRead(id uint64) error
	MarkAllAdminRead() error
}

type notificationRepository struct {
	db *gorm.DB
}

// NewNotificationRepository creates a new NotificationRepository
func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) WithTx(tx *gorm.DB) NotificationRepository {
	return &notificationRepository{db: tx}
}

func (r *notificationRepository) Create(notification *domain.Notification) error {
	return r.db.Create(notification).Error
}

func (r *notificationRepository) ListByUser(userID uint64, page, limit int, unreadOnly bool) ([]*domain.Notification, int64, error) {
	var notifications []*domain.Notification
	var total int64

	query := r.db.Model(&domain.Notification{}).Where("user_id = ?", userID)
	if unreadOnly {
		query = query.Where("is_read = ?", false)
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	offset := (page - 1) * limit
	if err := query.Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&notifications).Error; err != nil {
		return nil, 0, err
	}
	return notifications, total, nil
}

func (r *notificationRepository) UnreadCount(userID uint64) (int64, error) {
	var count int64
	err := r.db.Model(&domain.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&count).Error
	return count, err
}

func (r *notificationRepository) MarkRead(id, userID uint64) error {
	result := r.db.Model(&domain.Notification{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("is_read", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *notificationRepository) MarkAllRead(userID uint64) error {
	return r.db.Model(&domain.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Update("is_read", true).Error
}

func (r *notificationRepository) Delete(id, userID uint64) error {
	result := r.db.Where("id = ? AND user_id = ?", id, userID).
		Delete(&domain.Notification{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *notificationRepository) CreateAdmin(notification *domain.AdminNotification) error {
	return r.db.Create(notification).Error
}

func (r *notificationRepository) ListAdmin(page, limit int, unreadOnly bool) ([]*domain.AdminNotification, int64, error) {
	var notifications []*domain.AdminNotification
	var total int64

	query := r.db.Model(&domain.AdminNotification{})
	if unreadOnly {
		query = query.Where("is_read = ?", false)
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	offset := (page - 1) * limit
	if err := query.Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&notifications).Error; err != nil {
		return nil, 0, err
	}
	return notifications, total, nil
}

func (r *notificationRepository) AdminUnreadCount() (int64, error) {
	var count int64
	err := r.db.Model(&domain.AdminNotification{}).
		Where("is_read = ?", false).
		Count(&count).Error
	return count, err
}

func (r *notificationRepository) MarkAdminRead(id uint64) error {
	result := r.db.Model(&domain.AdminNotification{}).
		Where("id = ?", id).
		Update("is_read", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *notificationRepository) MarkAllAdminRead() error {
	return r.db.Model(&domain.AdminNotification{}).
		Where("is_read = ?", false).
		Update("is_read", true).Error
}
