package repository

import (
	"errors"
	"time"

	"github.com/evigdia/evigdia-backend/internal/domain"
	"gorm.io/gorm"
)

// SharingRepository handles social platforms, share tracking and shareable links
type SharingRepository interface {
	WithTx(tx *gorm.DB) SharingRepository

	ListPlatforms(activeOnly bool) ([]*domain.SocialPlatform, error)
	FindPlatform(id uint64) (*domain.SocialPlatform, error)
	FindPlatformByName(name string) (*domain.SocialPlatform, error)

	CreateShare(share *domain.ShareTracking) error
	FindShare(id uint64) (*domain.ShareTracking, error)
	ListSharesByPost(postID uint64, page, limit int) ([]*domain.ShareTracking, int64, error)
	IncrementClickback(id uint64) error
	CountSharesByPost(postID uint64) (int64, error)

	CreateLink(link *domain.ShareableLink) error
	FindLinkByToken(token string) (*domain.ShareableLink, error)
	IncrementLinkUse(id uint64) error
	DeactivateExpiredLinks(now time.Time) (int64, error)
}

type sharingRepository struct {
	db *gorm.DB
}

// NewSharingRepository creates a new SharingRepository
func NewSharingRepository(db *gorm.DB) SharingRepository {
	return &sharingRepository{db: db}
}

func (r *sharingRepository) WithTx(tx *gorm.DB) SharingRepository {
	return &sharingRepository{db: tx}
}

func (r *sharingRepository) ListPlatforms(activeOnly bool) ([]*domain.SocialPlatform, error) {
	var platforms []*domain.SocialPlatform
	query := r.db.Order("order_num ASC, id ASC")
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}
	err := query.Find(&platforms).Error
	return platforms, err
}

func (r *sharingRepository) FindPlatform(id uint64) (*domain.SocialPlatform, error) {
	var platform domain.SocialPlatform
	err := r.db.Where("id = ?", id).First(&platform).Error
	return &platform, err
}

func (r *sharingRepository) FindPlatformByName(name string) (*domain.SocialPlatform, error) {
	var platform domain.SocialPlatform
	err := r.db.Where("name = ?", name).First(&platform).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &platform, nil
}

func (r *sharingRepository) CreateShare(share *domain.ShareTracking) error {
	return r.db.Create(share).Error
}

func (r *sharingRepository) FindShare(id uint64) (*domain.ShareTracking, error) {
	var share domain.ShareTracking
	err := r.db.Preload("Platform").Where("id = ?", id).First(&share).Error
	return &share, err
}

func (r *sharingRepository) ListSharesByPost(postID uint64, page, limit int) ([]*domain.ShareTracking, int64, error) {
	var shares []*domain.ShareTracking
	var total int64

	query := r.db.Model(&domain.ShareTracking{}).Where("post_id = ?", postID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	offset := (page - 1) * limit
	if err := query.Preload("Platform").
		Order("shared_at DESC").
		Offset(offset).Limit(limit).
		Find(&shares).Error; err != nil {
		return nil, 0, err
	}
	return shares, total, nil
}

func (r *sharingRepository) IncrementClickback(id uint64) error {
	return r.db.Model(&domain.ShareTracking{}).Where("id = ?", id).
		UpdateColumn("clickback_count", gorm.Expr("clickback_count + 1")).Error
}

func (r *sharingRepository) CountSharesByPost(postID uint64) (int64, error) {
	var count int64
	err := r.db.Model(&domain.ShareTracking{}).
		Where("post_id = ?", postID).
		Count(&count).Error
	return count, err
}

func (r *sharingRepository) CreateLink(link *domain.ShareableLink) error {
	return r.db.Create(link).Error
}

func (r *sharingRepository) FindLinkByToken(token string) (*domain.ShareableLink, error) {
	var link domain.ShareableLink
	err := r.db.Where("token = ?", token).First(&link).Error
	return &link, err
}

func (r *sharingRepository) IncrementLinkUse(id uint64) error {
	return r.db.Model(&domain.ShareableLink{}).Where("id = ?", id).
		UpdateColumn("use_count", gorm.Expr("use_count + 1")).Error
}

func (r *sharingRepository) DeactivateExpiredLinks(now time.Time) (int64, error) {
	result := r.db.Model(&domain.ShareableLink{}).
		Where("is_active = ? AND expiration IS NOT NULL AND expiration <= ?", true, now).
		Update("is_active", false)
	return result.RowsAffected, result.Error
}
