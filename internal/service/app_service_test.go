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

func setupAppService(t *testing.T) (*gorm.DB, *AppService) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.AppManager{}, &domain.GlobalAppControl{}))
	return db, NewAppService(repository.NewAppRepository(db), nil)
}

func boolPtr(b bool) *bool { return &b }

func TestAppStatus(t *testing.T) {
	db, svc := setupAppService(t)
	require.NoError(t, db.Create(&domain.AppManager{
		AppType:       domain.AppGeneral,
		IsActive:      true,
		LatestVersion: "2.1.0",
		WebsiteURL:    "https://example.com",
	}).Error)

	status, err := svc.Status(context.Background(), domain.AppGeneral)
	require.NoError(t, err)
	assert.True(t, status.IsActive)
	assert.False(t, status.RequiresUpdate)
	assert.Equal(t, "2.1.0", status.LatestVersion)
}

func TestAppStatusUnknownType(t *testing.T) {
	_, svc := setupAppService(t)
	_, err := svc.Status(context.Background(), "bogus")
	assert.ErrorIs(t, err, common.ErrInvalidInput)
}

func TestGlobalShutdownOverridesModuleFlags(t *testing.T) {
	db, svc := setupAppService(t)
	require.NoError(t, db.Create(&domain.AppManager{
		AppType:         domain.AppPayment,
		IsActive:        true,
		ShutdownMessage: "module message",
	}).Error)
	require.NoError(t, db.Create(&domain.GlobalAppControl{
		GlobalShutdown:  true,
		ShutdownMessage: "maintenance in progress",
	}).Error)

	status, err := svc.Status(context.Background(), domain.AppPayment)
	require.NoError(t, err)
	assert.False(t, status.IsActive)
	assert.Equal(t, "maintenance in progress", status.ShutdownMessage)
}

func TestGlobalUpdateModeForcesUpdate(t *testing.T) {
	db, svc := setupAppService(t)
	require.NoError(t, db.Create(&domain.AppManager{AppType: domain.AppUser, IsActive: true}).Error)
	require.NoError(t, db.Create(&domain.GlobalAppControl{GlobalUpdateMode: true, UpdateMessage: "please update"}).Error)

	status, err := svc.Status(context.Background(), domain.AppUser)
	require.NoError(t, err)
	assert.True(t, status.IsActive)
	assert.True(t, status.RequiresUpdate)
	assert.Equal(t, "please update", status.UpdateMessage)
}

func TestGlobalShutdownKeepsModuleMessageWhenUnset(t *testing.T) {
	db, svc := setupAppService(t)
	require.NoError(t, db.Create(&domain.AppManager{
		AppType:         domain.AppProfile,
		IsActive:        true,
		ShutdownMessage: "module message",
	}).Error)
	require.NoError(t, db.Create(&domain.GlobalAppControl{GlobalShutdown: true}).Error)

	status, err := svc.Status(context.Background(), domain.AppProfile)
	require.NoError(t, err)
	assert.False(t, status.IsActive)
	assert.Equal(t, "module message", status.ShutdownMessage)
}

func TestUpdateManagerPatchesOnlyGivenFields(t *testing.T) {
	db, svc := setupAppService(t)
	require.NoError(t, db.Create(&domain.AppManager{
		AppType:       domain.AppMorphpix,
		IsActive:      true,
		LatestVersion: "1.0.0",
	}).Error)

	updated, err := svc.UpdateManager(context.Background(), domain.AppMorphpix, &AppControlRequest{
		RequiresUpdate: boolPtr(true),
	})
	require.NoError(t, err)
	assert.True(t, updated.IsActive)
	assert.True(t, updated.RequiresUpdate)
	assert.Equal(t, "1.0.0", updated.LatestVersion)
}

func TestUpdateGlobalControlCreatesSingleton(t *testing.T) {
	db, svc := setupAppService(t)

	control, err := svc.UpdateGlobalControl(context.Background(), &GlobalControlRequest{
		GlobalShutdown: boolPtr(true),
	})
	require.NoError(t, err)
	assert.True(t, control.GlobalShutdown)

	var count int64
	db.Model(&domain.GlobalAppControl{}).Count(&count)
	assert.Equal(t, int64(1), count)
}
