package repository

import (
	"github.com/evigdia/evigdia-backend/internal/domain"
	"gorm.io/gorm"
)

// CommentRepository handles comment data access
type CommentRepository interface {
	WithTx(tx *gorm.DB) CommentRepository
	FindByID(id uint64) (*domain.Comment, error)
	FindByPost(postID uint64, page, limit int, approvedOnly bool) ([]*domain.Comment, int64, error)
	Create(comment *domain.Comment) error
	Update(comment *domain.Comment) error
	Delete(id uint64) error
	Approve(id uint64) error
	MarkSpam(id uint64) error
}

type commentRepository struct {
	db *gorm.DB
}

// NewCommentRepository creates a new CommentRepository
func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) WithTx(tx *gorm.DB) CommentRepository {
	return &commentRepository{db: tx}
}

func (r *commentRepository) FindByID(id uint64) (*domain.Comment, error) {
	var comment domain.Comment
	err := r.db.Preload("User").Where("id = ?", id).First(&comment).Error
	return &comment, err
}

func (r *commentRepository) FindByPost(postID uint64, page, limit int, approvedOnly bool) ([]*domain.Comment, int64, error) {
	var comments []*domain.Comment
	var total int64

	query := r.db.Model(&domain.Comment{}).
		Where("post_id = ? AND is_spam = ?", postID, false)
	if approvedOnly {
		query = query.Where("is_approved = ?", true)
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	offset := (page - 1) * limit
	if err := query.Preload("User").
		Order("created_at ASC").
		Offset(offset).Limit(limit).
		Find(&comments).Error; err != nil {
		return nil, 0, err
	}
	return comments, total, nil
}

func (r *commentRepository) Create(comment *domain.Comment) error {
	return r.db.Create(comment).Error
}

func (r *commentRepository) Update(comment *domain.Comment) error {
	return r.db.Save(comment).Error
}

func (r *commentRepository) Delete(id uint64) error {
	return r.db.Delete(&domain.Comment{}, id).Error
}

func (r *commentRepository) Approve(id uint64) error {
	return r.db.Model(&domain.Comment{}).Where("id = ?", id).
		Update("is_approved", true).Error
}

func (r *commentRepository) MarkSpam(id uint64) error {
	return r.db.Model(&domain.Comment{}).Where("id = ?", id).
		Updates(map[string]interface{}{"is_spam": true, "is_approved": false}).Error
}
