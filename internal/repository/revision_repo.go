package repository

import (
	"github.com/evigdia/evigdia-backend/internal/domain"
	"gorm.io/gorm"
)

// RevisionRepository handles post revision data access
type RevisionRepository interface {
	WithTx(tx *gorm.DB) RevisionRepository
	Create(rev *domain.PostRevision) error
	FindByPost(postID uint64, page, limit int) ([]*domain.PostRevision, int64, error)
	FindByPostAndNumber(postID uint64, number uint) (*domain.PostRevision, error)
	NextNumber(postID uint64) (uint, error)
	CountByPost(postID uint64) (int64, error)
}

type revisionRepository struct {
	db *gorm.DB
}

// NewRevisionRepository creates a new RevisionRepository
func NewRevisionRepository(db *gorm.DB) RevisionRepository {
	return &revisionRepository{db: db}
}

func (r *revisionRepository) WithTx(tx *gorm.DB) RevisionRepository {
	return &revisionRepository{db: tx}
}

func (r *revisionRepository) Create(rev *domain.PostRevision) error {
	return r.db.Create(rev).Error
}

func (r *revisionRepository) FindByPost(postID uint64, page, limit int) ([]*domain.PostRevision, int64, error) {
	var revs []*domain.PostRevision
	var total int64

	query := r.db.Model(&domain.PostRevision{}).Where("post_id = ?", postID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	offset := (page - 1) * limit
	if err := query.Order("revision_number DESC").
		Offset(offset).Limit(limit).
		Find(&revs).Error; err != nil {
		return nil, 0, err
	}
	return revs, total, nil
}

func (r *revisionRepository) FindByPostAndNumber(postID uint64, number uint) (*domain.PostRevision, error) {
	var rev domain.PostRevision
	err := r.db.Where("post_id = ? AND revision_number = ?", postID, number).
		First(&rev).Error
	return &rev, err
}

// NextNumber returns MAX(revision_number)+1 for the post. Callers that
// need this to be race safe must hold the post row lock first.
func (r *revisionRepository) NextNumber(postID uint64) (uint, error) {
	var max uint
	err := r.db.Model(&domain.PostRevision{}).
		Where("post_id = ?", postID).
		Select("COALESCE(MAX(revision_number), 0)").
		Scan(&max).Error
	return max + 1, err
}

func (r *revisionRepository) CountByPost(postID uint64) (int64, error) {
	var count int64
	err := r.db.Model(&domain.PostRevision{}).
		Where("post_id = ?", postID).
		Count(&count).Error
	return count, err
}
