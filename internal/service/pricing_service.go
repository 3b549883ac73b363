package service

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/evigdia/evigdia-backend/internal/common"
	"github.com/evigdia/evigdia-backend/internal/domain"
	"github.com/evigdia/evigdia-backend/internal/repository"
	"github.com/evigdia/evigdia-backend/pkg/cache"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// PriceRequest is the admin payload for setting a plan's price
type PriceRequest struct {
	PriceUSD    float64 `json:"price_usd" binding:"required,gt=0"`
	Description string  `json:"description" binding:"max=255"`
	IsActive    *bool   `json:"is_active"`
}

// PricingService handles subscription plan pricing
type PricingService struct {
	prices repository.PricingRepository
	cache  cache.Service
}

// NewPricingService creates a new PricingService
func NewPricingService(prices repository.PricingRepository, cacheService cache.Service) *PricingService {
	return &PricingService{prices: prices, cache: cacheService}
}

// ListActive returns active plan prices, served from cache when possible
func (s *PricingService) ListActive(ctx context.Context) ([]*domain.SubscriptionPrice, error) {
	if s.cache != nil && s.cache.IsAvailable() {
		if data, err := s.cache.GetPricing(ctx); err == nil {
			var cached []*domain.SubscriptionPrice
			if err := json.Unmarshal(data, &cached); err == nil {
				return cached, nil
			}
		}
	}

	prices, err := s.prices.ListActive()
	if err != nil {
		return nil, err
	}

	if s.cache != nil && s.cache.IsAvailable() {
		if err := s.cache.SetPricing(ctx, prices); err != nil {
			log.Warn().Err(err).Msg("failed to cache pricing")
		}
	}
	return prices, nil
}

// Get returns one plan's price
func (s *PricingService) Get(planType domain.PlanType) (*domain.SubscriptionPrice, error) {
	switch planType {
	case domain.PlanMonthly, domain.PlanYearly:
	default:
		return nil, common.ErrInvalidInput
	}
	price, err := s.prices.FindByPlan(planType)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrNotFound
		}
		return nil, err
	}
	return price, nil
}

// Set updates (or creates) one plan's price
func (s *PricingService) Set(ctx context.Context, planType domain.PlanType, req *PriceRequest) (*domain.SubscriptionPrice, error) {
	switch planType {
	case domain.PlanMonthly, domain.PlanYearly:
	default:
		return nil, common.ErrInvalidInput
	}

	price, err := s.prices.FindByPlan(planType)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		price = &domain.SubscriptionPrice{PlanType: planType, IsActive: true}
		err = nil
	}
	if err != nil {
		return nil, err
	}

	price.PriceUSD = req.PriceUSD
	price.Description = req.Description
	if req.IsActive != nil {
		price.IsActive = *req.IsActive
	}

	if price.ID == 0 {
		err = s.prices.Create(price)
	} else {
		err = s.prices.Save(price)
	}
	if err != nil {
		return nil, err
	}

	if s.cache != nil && s.cache.IsAvailable() {
		if err := s.cache.InvalidatePricing(ctx); err != nil {
			log.Warn().Err(err).Msg("failed to invalidate pricing cache")
		}
	}
	return price, nil
}
