package repository

import (
	"errors"

	"github.com/evigdia/evigdia-backend/internal/domain"
	"gorm.io/gorm"
)

// AppRepository handles desktop app control data access
type AppRepository interface {
	FindByType(appType domain.AppType) (*domain.AppManager, error)
	ListManagers() ([]*domain.AppManager, error)
	UpdateManager(manager *domain.AppManager) error
	CreateManager(manager *domain.AppManager) error

	GetGlobalControl() (*domain.GlobalAppControl, error)
	SaveGlobalControl(control *domain.GlobalAppControl) error
}

type appRepository struct {
	db *gorm.DB
}

// NewAppRepository creates a new AppRepository
func NewAppRepository(db *gorm.DB) AppRepository {
	return &appRepository{db: db}
}

func (r *appRepository) FindByType(appType domain.AppType) (*domain.AppManager, error) {
	var manager domain.AppManager
	err := r.db.Where("app_type = ?", appType).First(&manager).Error
	return &manager, err
}

func (r *appRepository) ListManagers() ([]*domain.AppManager, error) {
	var managers []*domain.AppManager
	err := r.db.Order("app_type ASC").Find(&managers).Error
	return managers, err
}

func (r *appRepository) UpdateManager(manager *domain.AppManager) error {
	return r.db.Save(manager).Error
}

func (r *appRepository) CreateManager(manager *domain.AppManager) error {
	return r.db.Create(manager).Error
}

// GetGlobalControl returns the singleton row, creating it on first use
func (r *appRepository) GetGlobalControl() (*domain.GlobalAppControl, error) {
	var control domain.GlobalAppControl
	err := r.db.Order("id ASC").First(&control).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		control = domain.GlobalAppControl{}
		if err := r.db.Create(&control).Error; err != nil {
			return nil, err
		}
		return &control, nil
	}
	if err != nil {
		return nil, err
	}
	return &control, nil
}

func (r *appRepository) SaveGlobalControl(control *domain.GlobalAppControl) error {
	return r.db.Save(control).Error
}
