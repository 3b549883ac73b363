package repository

import (
	"github.com/evigdia/evigdia-backend/internal/domain"
	"gorm.io/gorm"
)

// SyndicationRepository handles cross-platform publication records
type SyndicationRepository interface {
	WithTx(tx *gorm.DB) SyndicationRepository
	FindByID(id uint64) (*domain.ContentSyndication, error)
	ListByPost(postID uint64) ([]*domain.ContentSyndication, error)
	Create(syndication *domain.ContentSyndication) error
	Update(syndication *domain.ContentSyndication) error
	Delete(id uint64) error
	ClearCanonical(postID uint64, exceptID uint64) error
}

type syndicationRepository struct {
	db *gorm.DB
}

// NewSyndicationRepository creates a new SyndicationRepository
func NewSyndicationRepository(db *gorm.DB) SyndicationRepository {
	return &syndicationRepository{db: db}
}

func (r *syndicationRepository) WithTx(tx *gorm.DB) SyndicationRepository {
	return &syndicationRepository{db: tx}
}

func (r *syndicationRepository) FindByID(id uint64) (*domain.ContentSyndication, error) {
	var syndication domain.ContentSyndication
	err := r.db.Where("id = ?", id).First(&syndication).Error
	return &syndication, err
}

func (r *syndicationRepository) ListByPost(postID uint64) ([]*domain.ContentSyndication, error) {
	var syndications []*domain.ContentSyndication
	err := r.db.Where("post_id = ?", postID).
		Order("is_canonical DESC, created_at ASC").
		Find(&syndications).Error
	return syndications, err
}

func (r *syndicationRepository) Create(syndication *domain.ContentSyndication) error {
	return r.db.Create(syndication).Error
}

func (r *syndicationRepository) Update(syndication *domain.ContentSyndication) error {
	return r.db.Save(syndication).Error
}

func (r *syndicationRepository) Delete(id uint64) error {
	return r.db.Delete(&domain.ContentSyndication{}, id).Error
}

// ClearCanonical drops the canonical flag from every other syndication of
// the post. Used inside the transaction that promotes a new canonical.
func (r *syndicationRepository) ClearCanonical(postID uint64, exceptID uint64) error {
	return r.db.Model(&domain.ContentSyndication{}).
		Where("post_id = ? AND id != ? AND is_canonical = ?", postID, exceptID, true).
		Update("is_canonical", false).Error
}
