package repository

import (
	"github.com/evigdia/evigdia-backend/internal/domain"
	"gorm.io/gorm"
)

// PricingRepository handles subscription price data access
type PricingRepository interface {
	FindByPlan(planType domain.PlanType) (*domain.SubscriptionPrice, error)
	ListActive() ([]*domain.SubscriptionPrice, error)
	Save(price *domain.SubscriptionPrice) error
	Create(price *domain.SubscriptionPrice) error
}

type pricingRepository struct {
	db *gorm.DB
}

// NewPricingRepository creates a new PricingRepository
func NewPricingRepository(db *gorm.DB) PricingRepository {
	return &pricingRepository{db: db}
}

func (r *pricingRepository) FindByPlan(planType domain.PlanType) (*domain.SubscriptionPrice, error) {
	var price domain.SubscriptionPrice
	err := r.db.Where("plan_type = ?", planType).First(&price).Error
	return &price, err
}

func (r *pricingRepository) ListActive() ([]*domain.SubscriptionPrice, error) {
	var prices []*domain.SubscriptionPrice
	err := r.db.Where("is_active = ?", true).
		Order("plan_type ASC").
		Find(&prices).Error
	return prices, err
}

func (r *pricingRepository) Save(price *domain.SubscriptionPrice) error {
	return r.db.Save(price).Error
}

func (r *pricingRepository) Create(price *domain.SubscriptionPrice) error {
	return r.db.Create(price).Error
}
