package repository

import (
	"time"

	"github.com/evigdia/evigdia-backend/internal/domain"
	"gorm.io/gorm"
)

// ContactRepository handles contact submission data access
type ContactRepository interface {
	Create(submission *domain.ContactSubmission) error
	FindByID(id uint64) (*domain.ContactSubmission, error)
	List(page, limit int, unprocessedOnly bool) ([]*domain.ContactSubmission, int64, error)
	MarkProcessed(id, processorID uint64) error
	Delete(id uint64) error
}

type contactRepository struct {
	db *gorm.DB
}

// NewContactRepository creates a new ContactRepository
func NewContactRepository(db *gorm.DB) ContactRepository {
	return &contactRepository{db: db}
}

func (r *contactRepository) Create(submission *domain.ContactSubmission) error {
	return r.db.Create(submission).Error
}

func (r *contactRepository) FindByID(id uint64) (*domain.ContactSubmission, error) {
	var submission domain.ContactSubmission
	err := r.db.Where("id = ?", id).First(&submission).Error
	return &submission, err
}

func (r *contactRepository) List(page, limit int, unprocessedOnly bool) ([]*domain.ContactSubmission, int64, error) {
	var submissions []*domain.ContactSubmission
	var total int64

	query := r.db.Model(&domain.ContactSubmission{})
	if unprocessedOnly {
		query = query.Where("is_processed = ?", false)
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	offset := (page - 1) * limit
	if err := query.Order("submitted_at DESC").
		Offset(offset).Limit(limit).
		Find(&submissions).Error; err != nil {
		return nil, 0, err
	}
	return submissions, total, nil
}

func (r *contactRepository) MarkProcessed(id, processorID uint64) error {
	now := time.Now()
	result := r.db.Model(&domain.ContactSubmission{}).
		Where("id = ? AND is_processed = ?", id, false).
		Updates(map[string]interface{}{
			"is_processed":    true,
			"processed_at":    now,
			"processed_by_id": processorID,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *contactRepository) Delete(id uint64) error {
	result := r.db.Delete(&domain.ContactSubmission{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
