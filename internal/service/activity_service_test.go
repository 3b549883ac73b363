package service

import (
	"testing"

	"github.com/evigdia/evigdia-backend/internal/common"
	"github.com/evigdia/evigdia-backend/internal/domain"
	"github.com/evigdia/evigdia-backend/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupActivityService(t *testing.T) (*gorm.DB, *ActivityService) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.ActivityLog{}, &domain.PostView{}, &domain.SearchQuery{}))
	return db, NewActivityService(repository.NewActivityRepository(db))
}

func TestActivityListFiltersByType(t *testing.T) {
	db, svc := setupActivityService(t)
	for _, kind := range []domain.ActivityType{domain.ActivityComment, domain.ActivityLike, domain.ActivityLike} {
		require.NoError(t, db.Create(&domain.ActivityLog{ActivityType: kind, Metadata: domain.JSONMap{}}).Error)
	}

	likes, total, err := svc.List(1, 50, "like")
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, likes, 2)

	all, total, err := svc.List(1, 50, "")
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, all, 3)

	_, _, err = svc.List(1, 50, "bogus")
	assert.ErrorIs(t, err, common.ErrInvalidInput)
}

func TestActivityMarkProcessed(t *testing.T) {
	db, svc := setupActivityService(t)
	first := &domain.ActivityLog{ActivityType: domain.ActivityShare, Metadata: domain.JSONMap{}}
	second := &domain.ActivityLog{ActivityType: domain.ActivityShare, Metadata: domain.JSONMap{}}
	require.NoError(t, db.Create(first).Error)
	require.NoError(t, db.Create(second).Error)

	require.NoError(t, svc.MarkProcessed([]uint64{first.ID}))

	var processed int64
	require.NoError(t, db.Model(&domain.ActivityLog{}).Where("is_processed = ?", true).Count(&processed).Error)
	assert.Equal(t, int64(1), processed)

	assert.ErrorIs(t, svc.MarkProcessed(nil), common.ErrInvalidInput)
}

func TestTopSearches(t *testing.T) {
	db, svc := setupActivityService(t)
	for _, q := range []string{"gophers", "gophers", "indexes"} {
		require.NoError(t, db.Create(&domain.SearchQuery{Query: q}).Error)
	}

	terms, err := svc.TopSearches(10, 7)
	require.NoError(t, err)
	require.Len(t, terms, 2)
	assert.Equal(t, "gophers", terms[0])
}
