package repository

import (
	"errors"

	"github.com/evigdia/evigdia-backend/internal/common"
	"github.com/evigdia/evigdia-backend/internal/domain"
	"gorm.io/gorm"
)

// TaxonomyRepository handles categories and tags
type TaxonomyRepository interface {
	ListCategories(activeOnly bool) ([]*domain.Category, error)
	FindCategoryBySlug(slug string) (*domain.Category, error)
	FindOrCreateCategories(names []string) ([]*domain.Category, error)

	ListTags(activeOnly bool) ([]*domain.Tag, error)
	FindTagBySlug(slug string) (*domain.Tag, error)
	FindOrCreateTags(names []string) ([]*domain.Tag, error)
}

type taxonomyRepository struct {
	db *gorm.DB
}

// NewTaxonomyRepository creates a new TaxonomyRepository
func NewTaxonomyRepository(db *gorm.DB) TaxonomyRepository {
	return &taxonomyRepository{db: db}
}

func (r *taxonomyRepository) ListCategories(activeOnly bool) ([]*domain.Category, error) {
	var categories []*domain.Category
	query := r.db.Order("name ASC")
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}
	err := query.Find(&categories).Error
	return categories, err
}

func (r *taxonomyRepository) FindCategoryBySlug(slug string) (*domain.Category, error) {
	var category domain.Category
	err := r.db.Where("slug = ?", slug).First(&category).Error
	return &category, err
}

func (r *taxonomyRepository) FindOrCreateCategories(names []string) ([]*domain.Category, error) {
	categories := make([]*domain.Category, 0, len(names))
	for _, name := range names {
		if name == "" {
			continue
		}
		var category domain.Category
		err := r.db.Where("name = ?", name).First(&category).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			category = domain.Category{Name: name, Slug: common.Slugify(name), IsActive: true}
			if err := r.db.Create(&category).Error; err != nil {
				return nil, err
			}
		} else if err != nil {
			return nil, err
		}
		categories = append(categories, &category)
	}
	return categories, nil
}

func (r *taxonomyRepository) ListTags(activeOnly bool) ([]*domain.Tag, error) {
	var tags []*domain.Tag
	query := r.db.Order("name ASC")
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}
	err := query.Find(&tags).Error
	return tags, err
}

func (r *taxonomyRepository) FindTagBySlug(slug string) (*domain.Tag, error) {
	var tag domain.Tag
	err := r.db.Where("slug = ?", slug).First(&tag).Error
	return &tag, err
}

func (r *taxonomyRepository) FindOrCreateTags(names []string) ([]*domain.Tag, error) {
	tags := make([]*domain.Tag, 0, len(names))
	for _, name := range names {
		if name == "" {
			continue
		}
		var tag domain.Tag
		err := r.db.Where("name = ?", name).First(&tag).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			tag = domain.Tag{Name: name, Slug: common.Slugify(name), IsActive: true}
			if err := r.db.Create(&tag).Error; err != nil {
				return nil, err
			}
		} else if err != nil {
			return nil, err
		}
		tags = append(tags, &tag)
	}
	return tags, nil
}
