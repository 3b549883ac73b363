package repository

import (
	"github.com/evigdia/evigdia-backend/internal/domain"
	"gorm.io/gorm"
)

// ServiceRepository handles service offering data access
type ServiceRepository interface {
	FindByID(id uint64) (*domain.Service, error)
	FindBySlug(slug string) (*domain.Service, error)
	List(page, limit int, status domain.ServiceStatus) ([]*domain.Service, int64, error)
	Create(service *domain.Service) error
	Update(service *domain.Service) error
	Delete(id uint64) error
	SlugExists(slug string, excludeID uint64) (bool, error)
}

type serviceRepository struct {
	db *gorm.DB
}

// NewServiceRepository creates a new ServiceRepository
func NewServiceRepository(db *gorm.DB) ServiceRepository {
	return &serviceRepository{db: db}
}

func (r *serviceRepository) FindByID(id uint64) (*domain.Service, error) {
	var service domain.Service
	err := r.db.Where("id = ?", id).First(&service).Error
	return &service, err
}

func (r *serviceRepository) FindBySlug(slug string) (*domain.Service, error) {
	var service domain.Service
	err := r.db.Where("slug = ?", slug).First(&service).Error
	return &service, err
}

func (r *serviceRepository) List(page, limit int, status domain.ServiceStatus) ([]*domain.Service, int64, error) {
	var services []*domain.Service
	var total int64

	query := r.db.Model(&domain.Service{})
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	offset := (page - 1) * limit
	if err := query.Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&services).Error; err != nil {
		return nil, 0, err
	}
	return services, total, nil
}

func (r *serviceRepository) Create(service *domain.Service) error {
	return r.db.Create(service).Error
}

func (r *serviceRepository) Update(service *domain.Service) error {
	return r.db.Save(service).Error
}

func (r *serviceRepository) Delete(id uint64) error {
	return r.db.Delete(&domain.Service{}, id).Error
}

func (r *serviceRepository) SlugExists(slug string, excludeID uint64) (bool, error) {
	var count int64
	query := r.db.Model(&domain.Service{}).Where("slug = ?", slug)
	if excludeID != 0 {
		query = query.Where("id != ?", excludeID)
	}
	err := query.Count(&count).Error
	return count > 0, err
}
