package service

import (
	"context"
	"testing"

	"github.com/evigdia/evigdia-backend/internal/common"
	"github.com/evigdia/evigdia-backend/internal/domain"
	"github.com/evigdia/evigdia-backend/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupPricingService(t *testing.T) *PricingService {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.SubscriptionPrice{}))
	return NewPricingService(repository.NewPricingRepository(db), nil)
}

func TestSetPriceCreatesPlan(t *testing.T) {
	svc := setupPricingService(t)

	price, err := svc.Set(context.Background(), domain.PlanMonthly, &PriceRequest{PriceUSD: 9.99, Description: "Billed monthly"})
	require.NoError(t, err)
	assert.True(t, price.IsActive)

	got, err := svc.Get(domain.PlanMonthly)
	require.NoError(t, err)
	assert.Equal(t, 9.99, got.PriceUSD)
}

func TestSetPriceUpdatesExisting(t *testing.T) {
	svc := setupPricingService(t)

	_, err := svc.Set(context.Background(), domain.PlanYearly, &PriceRequest{PriceUSD: 99.99})
	require.NoError(t, err)
	inactive := false
	updated, err := svc.Set(context.Background(), domain.PlanYearly, &PriceRequest{PriceUSD: 89.99, IsActive: &inactive})
	require.NoError(t, err)
	assert.Equal(t, 89.99, updated.PriceUSD)
	assert.False(t, updated.IsActive)

	active, err := svc.ListActive(context.Background())
	require.NoError(t, err)
	assert.Empty(t, active)
}

func TestPriceUnknownPlan(t *testing.T) {
	svc := setupPricingService(t)

	_, err := svc.Get(domain.PlanType("weekly"))
	assert.ErrorIs(t, err, common.ErrInvalidInput)
	_, err = svc.Set(context.Background(), domain.PlanType("weekly"), &PriceRequest{PriceUSD: 1})
	assert.ErrorIs(t, err, common.ErrInvalidInput)
	_, err = svc.Get(domain.PlanMonthly)
	assert.ErrorIs(t, err, common.ErrNotFound)
}
