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

func setupOfferingService(t *testing.T) *OfferingService {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.User{}, &domain.Service{}))
	return NewOfferingService(repository.NewServiceRepository(db), nil)
}

func TestCreateOffering(t *testing.T) {
	svc := setupOfferingService(t)

	offering, err := svc.Create(context.Background(), 1, &OfferingRequest{
		Title:       "Custom Development",
		Description: "We build tailored desktop tooling for creative workflows.",
	})
	require.NoError(t, err)

	assert.Equal(t, "custom-development", offering.Slug)
	assert.Equal(t, domain.ServiceDraft, offering.Status)
	assert.Equal(t, "Custom Development", offering.MetaTitle)
	assert.NotEmpty(t, offering.MetaDescription)
}

func TestCreateOfferingSlugCollision(t *testing.T) {
	svc := setupOfferingService(t)

	_, err := svc.Create(context.Background(), 1, &OfferingRequest{Title: "Consulting", Description: "a"})
	require.NoError(t, err)
	second, err := svc.Create(context.Background(), 1, &OfferingRequest{Title: "Consulting", Description: "b"})
	require.NoError(t, err)
	assert.Equal(t, "consulting-2", second.Slug)
}

func TestCreateOfferingRejectsUnknownStatus(t *testing.T) {
	svc := setupOfferingService(t)
	_, err := svc.Create(context.Background(), 1, &OfferingRequest{Title: "X", Description: "y", Status: "retired"})
	assert.ErrorIs(t, err, common.ErrInvalidInput)
}

func TestUpdateOfferingReslugsOnTitleChange(t *testing.T) {
	svc := setupOfferingService(t)

	offering, err := svc.Create(context.Background(), 1, &OfferingRequest{Title: "Before", Description: "d"})
	require.NoError(t, err)

	updated, err := svc.Update(context.Background(), offering.ID, &OfferingRequest{
		Title:       "After",
		Description: "d",
		Status:      string(domain.ServicePublished),
	})
	require.NoError(t, err)
	assert.Equal(t, "after", updated.Slug)
	assert.Equal(t, domain.ServicePublished, updated.Status)
}

func TestListPublishedFiltersDrafts(t *testing.T) {
	svc := setupOfferingService(t)

	_, err := svc.Create(context.Background(), 1, &OfferingRequest{Title: "Draft Work", Description: "d"})
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), 1, &OfferingRequest{
		Title:       "Live Work",
		Description: "d",
		Status:      string(domain.ServicePublished),
	})
	require.NoError(t, err)

	published, err := svc.ListPublished(context.Background())
	require.NoError(t, err)
	require.Len(t, published, 1)
	assert.Equal(t, "Live Work", published[0].Title)
}

func TestDeleteOffering(t *testing.T) {
	svc := setupOfferingService(t)

	offering, err := svc.Create(context.Background(), 1, &OfferingRequest{Title: "Gone", Description: "d"})
	require.NoError(t, err)
	require.NoError(t, svc.Delete(context.Background(), offering.ID))

	_, err = svc.GetBySlug("gone")
	assert.ErrorIs(t, err, common.ErrServiceNotFound)
	assert.ErrorIs(t, svc.Delete(context.Background(), offering.ID), common.ErrServiceNotFound)
}
