package repository

import (
	"errors"

	"github.com/evigdia/evigdia-backend/internal/domain"
	"gorm.io/gorm"
)

// SubscriptionRepository handles newsletter subscription data access
type SubscriptionRepository interface {
	WithTx(tx *gorm.DB) SubscriptionRepository
	FindByEmail(email string) (*domain.Subscription, error)
	FindByToken(token string) (*domain.Subscription, error)
	FindByConfirmationToken(token string) (*domain.Subscription, error)
	Create(subscription *domain.Subscription) error
	Update(subscription *domain.Subscription) error
	ListActive(page, limit int) ([]*domain.Subscription, int64, error)
	CountActive() (int64, error)
}

type subscriptionRepository struct {
	db *gorm.DB
}

// NewSubscriptionRepository creates a new SubscriptionRepository
func NewSubscriptionRepository(db *gorm.DB) SubscriptionRepository {
	return &subscriptionRepository{db: db}
}

func (r *subscriptionRepository) WithTx(tx *gorm.DB) SubscriptionRepository {
	return &subscriptionRepository{db: tx}
}

func (r *subscriptionRepository) FindByEmail(email string) (*domain.Subscription, error) {
	var subscription domain.Subscription
	err := r.db.Where("email = ?", email).First(&subscription).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &subscription, nil
}

func (r *subscriptionRepository) FindByToken(token string) (*domain.Subscription, error) {
	var subscription domain.Subscription
	err := r.db.Where("token = ?", token).First(&subscription).Error
	return &subscription, err
}

func (r *subscriptionRepository) FindByConfirmationToken(token string) (*domain.Subscription, error) {
	var subscription domain.Subscription
	err := r.db.Where("confirmation_token = ?", token).First(&subscription).Error
	return &subscription, err
}

func (r *subscriptionRepository) Create(subscription *domain.Subscription) error {
	return r.db.Create(subscription).Error
}

func (r *subscriptionRepository) Update(subscription *domain.Subscription) error {
	return r.db.Save(subscription).Error
}

func (r *subscriptionRepository) ListActive(page, limit int) ([]*domain.Subscription, int64, error) {
	var subscriptions []*domain.Subscription
	var total int64

	query := r.db.Model(&domain.Subscription{}).
		Where("is_active = ? AND is_confirmed = ?", true, true)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	offset := (page - 1) * limit
	if err := query.Order("subscribed_at DESC").
		Offset(offset).Limit(limit).
		Find(&subscriptions).Error; err != nil {
		return nil, 0, err
	}
	return subscriptions, total, nil
}

func (r *subscriptionRepository) CountActive() (int64, error) {
	var count int64
	err := r.db.Model(&domain.Subscription{}).
		Where("is_active = ? AND is_confirmed = ?", true, true).
		Count(&count).Error
	return count, err
}
