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

// AppControlRequest is the admin payload for updating a module's flags
type AppControlRequest struct {
	IsActive        *bool   `json:"is_active"`
	RequiresUpdate  *bool   `json:"requires_update"`
	ShutdownMessage *string `json:"shutdown_message"`
	UpdateMessage   *string `json:"update_message"`
	WebsiteURL      *string `json:"website_url"`
	LatestVersion   *string `json:"latest_version"`
}

// GlobalControlRequest is the admin payload for the global overrides
type GlobalControlRequest struct {
	GlobalShutdown    *bool   `json:"global_shutdown"`
	GlobalUpdateMode  *bool   `json:"global_update_mode"`
	ShutdownMessage   *string `json:"shutdown_message"`
	UpdateMessage     *string `json:"update_message"`
	MaintenanceWindow *string `json:"maintenance_window"`
}

// AppService resolves the remote control status served to desktop
// clients. Global overrides win over per-module flags.
type AppService struct {
	apps  repository.AppRepository
	cache cache.Service
}

// NewAppService creates a new AppService
func NewAppService(apps repository.AppRepository, cacheService cache.Service) *AppService {
	return &AppService{apps: apps, cache: cacheService}
}

// Status returns the effective status of one app module
func (s *AppService) Status(ctx context.Context, appType domain.AppType) (*domain.AppStatusResponse, error) {
	if !domain.ValidAppType(appType) {
		return nil, common.ErrInvalidInput
	}

	if s.cache != nil && s.cache.IsAvailable() {
		if data, err := s.cache.GetAppStatus(ctx, string(appType)); err == nil {
			var cached domain.AppStatusResponse
			if err := json.Unmarshal(data, &cached); err == nil {
				return &cached, nil
			}
		}
	}

	manager, err := s.apps.FindByType(appType)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrNotFound
		}
		return nil, err
	}
	global, err := s.apps.GetGlobalControl()
	if err != nil {
		return nil, err
	}

	status := resolveStatus(manager, global)

	if s.cache != nil && s.cache.IsAvailable() {
		if err := s.cache.SetAppStatus(ctx, string(appType), status); err != nil {
			log.Warn().Err(err).Str("app_type", string(appType)).Msg("failed to cache app status")
		}
	}
	return status, nil
}

// resolveStatus merges the global overrides into a module's flags
func resolveStatus(manager *domain.AppManager, global *domain.GlobalAppControl) *domain.AppStatusResponse {
	status := &domain.AppStatusResponse{
		AppType:         manager.AppType,
		IsActive:        manager.IsActive,
		RequiresUpdate:  manager.RequiresUpdate,
		ShutdownMessage: manager.ShutdownMessage,
		UpdateMessage:   manager.UpdateMessage,
		WebsiteURL:      manager.WebsiteURL,
		LatestVersion:   manager.LatestVersion,
	}
	if global.GlobalShutdown {
		status.IsActive = false
		if global.ShutdownMessage != "" {
			status.ShutdownMessage = global.ShutdownMessage
		}
	}
	if global.GlobalUpdateMode {
		status.RequiresUpdate = true
		if global.UpdateMessage != "" {
			status.UpdateMessage = global.UpdateMessage
		}
	}
	return status
}

// ListManagers returns all per-module control rows
func (s *AppService) ListManagers() ([]*domain.AppManager, error) {
	return s.apps.ListManagers()
}

// GlobalControl returns the global override row
func (s *AppService) GlobalControl() (*domain.GlobalAppControl, error) {
	return s.apps.GetGlobalControl()
}

// UpdateManager applies an admin's changes to one module's flags
func (s *AppService) UpdateManager(ctx context.Context, appType domain.AppType, req *AppControlRequest) (*domain.AppManager, error) {
	if !domain.ValidAppType(appType) {
		return nil, common.ErrInvalidInput
	}
	manager, err := s.apps.FindByType(appType)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrNotFound
		}
		return nil, err
	}

	if req.IsActive != nil {
		manager.IsActive = *req.IsActive
	}
	if req.RequiresUpdate != nil {
		manager.RequiresUpdate = *req.RequiresUpdate
	}
	if req.ShutdownMessage != nil {
		manager.ShutdownMessage = *req.ShutdownMessage
	}
	if req.UpdateMessage != nil {
		manager.UpdateMessage = *req.UpdateMessage
	}
	if req.WebsiteURL != nil {
		manager.WebsiteURL = *req.WebsiteURL
	}
	if req.LatestVersion != nil {
		manager.LatestVersion = *req.LatestVersion
	}

	if err := s.apps.UpdateManager(manager); err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return manager, nil
}

// UpdateGlobalControl applies an admin's changes to the global overrides
func (s *AppService) UpdateGlobalControl(ctx context.Context, req *GlobalControlRequest) (*domain.GlobalAppControl, error) {
	global, err := s.apps.GetGlobalControl()
	if err != nil {
		return nil, err
	}

	if req.GlobalShutdown != nil {
		global.GlobalShutdown = *req.GlobalShutdown
	}
	if req.GlobalUpdateMode != nil {
		global.GlobalUpdateMode = *req.GlobalUpdateMode
	}
	if req.ShutdownMessage != nil {
		global.ShutdownMessage = *req.ShutdownMessage
	}
	if req.UpdateMessage != nil {
		global.UpdateMessage = *req.UpdateMessage
	}
	if req.MaintenanceWindow != nil {
		global.MaintenanceWindow = *req.MaintenanceWindow
	}

	if err := s.apps.SaveGlobalControl(global); err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return global, nil
}

func (s *AppService) invalidate(ctx context.Context) {
	if s.cache == nil || !s.cache.IsAvailable() {
		return
	}
	if err := s.cache.InvalidateAppStatus(ctx); err != nil {
		log.Warn().Err(err).Msg("failed to invalidate app status cache")
	}
}
