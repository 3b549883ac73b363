package repository

import (
	"time"

	"github.com/evigdia/evigdia-backend/internal/domain"
	"gorm.io/gorm"
)

// PostFilter narrows post listings
type PostFilter struct {
	Status       domain.PostStatus
	AuthorID     uint64
	CategorySlug string
	TagSlug      string
	Search       string
}

// PostRepository handles blog post data access
type PostRepository interface {
	WithTx(tx *gorm.DB) PostRepository
	FindByID(id uint64) (*domain.BlogPost, error)
	FindByIDForUpdate(id uint64) (*domain.BlogPost, error)
	FindBySlug(slug string) (*domain.BlogPost, error)
	List(page, limit int, filter PostFilter) ([]*domain.BlogPost, int64, error)
	ListScheduledDue(now time.Time) ([]*domain.BlogPost, error)
	Create(post *domain.BlogPost) error
	Update(post *domain.BlogPost) error
	UpdateColumns(id uint64, values map[string]interface{}) error
	Delete(id uint64) error
	IncrementViewCount(id uint64) error
	IncrementCommentCount(id uint64, delta int) error
	IncrementLikeCount(id uint64, delta int) error
	Touch(id uint64) error
	SlugExists(slug string, excludeID uint64) (bool, error)
	ReplaceCategories(post *domain.BlogPost, categories []*domain.Category) error
	ReplaceTags(post *domain.BlogPost, tags []*domain.Tag) error
}

type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new PostRepository
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) WithTx(tx *gorm.DB) PostRepository {
	return &postRepository{db: tx}
}

func (r *postRepository) FindByID(id uint64) (*domain.BlogPost, error) {
	var post domain.BlogPost
	err := r.db.Preload("Author").Preload("Categories").Preload("Tags").
		Where("id = ? AND status != ?", id, domain.PostStatusDeleted).
		First(&post).Error
	return &post, err
}

// FindByIDForUpdate locks the post row for the duration of the enclosing
// transaction. Callers must be inside db.Transaction.
func (r *postRepository) FindByIDForUpdate(id uint64) (*domain.BlogPost, error) {
	var post domain.BlogPost
	err := forUpdate(r.db).
		Where("id = ? AND status != ?", id, domain.PostStatusDeleted).
		First(&post).Error
	return &post, err
}

func (r *postRepository) FindBySlug(slug string) (*domain.BlogPost, error) {
	var post domain.BlogPost
	err := r.db.Preload("Author").Preload("Categories").Preload("Tags").
		Where("slug = ? AND status != ?", slug, domain.PostStatusDeleted).
		First(&post).Error
	return &post, err
}

func (r *postRepository) List(page, limit int, filter PostFilter) ([]*domain.BlogPost, int64, error) {
	var posts []*domain.BlogPost
	var total int64

	query := r.db.Model(&domain.BlogPost{}).Where("blog_posts.status != ?", domain.PostStatusDeleted)
	if filter.Status != "" {
		query = query.Where("blog_posts.status = ?", filter.Status)
	}
	if filter.AuthorID != 0 {
		query = query.Where("blog_posts.author_id = ?", filter.AuthorID)
	}
	if filter.CategorySlug != "" {
		query = query.Joins("JOIN post_categories bpc ON bpc.blog_post_id = blog_posts.id").
			Joins("JOIN blog_categories bc ON bc.id = bpc.category_id").
			Where("bc.slug = ?", filter.CategorySlug)
	}
	if filter.TagSlug != "" {
		query = query.Joins("JOIN post_tags bpt ON bpt.blog_post_id = blog_posts.id").
			Joins("JOIN blog_tags bt ON bt.id = bpt.tag_id").
			Where("bt.slug = ?", filter.TagSlug)
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		query = query.Where("blog_posts.title LIKE ? OR blog_posts.excerpt LIKE ?", like, like)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	offset := (page - 1) * limit
	if err := query.Preload("Author").Preload("Categories").Preload("Tags").
		Order("blog_posts.published_at DESC, blog_posts.id DESC").
		Offset(offset).Limit(limit).
		Find(&posts).Error; err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

func (r *postRepository) ListScheduledDue(now time.Time) ([]*domain.BlogPost, error) {
	var posts []*domain.BlogPost
	err := r.db.Where("status = ? AND scheduled_at IS NOT NULL AND scheduled_at <= ?",
		domain.PostStatusScheduled, now).
		Find(&posts).Error
	return posts, err
}

func (r *postRepository) Create(post *domain.BlogPost) error {
	return r.db.Create(post).Error
}

func (r *postRepository) Update(post *domain.BlogPost) error {
	return r.db.Save(post).Error
}

func (r *postRepository) UpdateColumns(id uint64, values map[string]interface{}) error {
	return r.db.Model(&domain.BlogPost{}).Where("id = ?", id).Updates(values).Error
}

func (r *postRepository) Delete(id uint64) error {
	return r.db.Model(&domain.BlogPost{}).Where("id = ?", id).
		Update("status", domain.PostStatusDeleted).Error
}

func (r *postRepository) IncrementViewCount(id uint64) error {
	return r.db.Model(&domain.BlogPost{}).Where("id = ?", id).
		UpdateColumn("view_count", gorm.Expr("view_count + 1")).Error
}

func (r *postRepository) IncrementCommentCount(id uint64, delta int) error {
	return r.db.Model(&domain.BlogPost{}).Where("id = ?", id).
		UpdateColumn("comment_count", gorm.Expr("comment_count + ?", delta)).Error
}

func (r *postRepository) IncrementLikeCount(id uint64, delta int) error {
	return r.db.Model(&domain.BlogPost{}).Where("id = ?", id).
		UpdateColumn("like_count", gorm.Expr("like_count + ?", delta)).Error
}

// Touch bumps updated_at without changing any content column
func (r *postRepository) Touch(id uint64) error {
	return r.db.Model(&domain.BlogPost{}).Where("id = ?", id).
		UpdateColumn("updated_at", time.Now()).Error
}

func (r *postRepository) SlugExists(slug string, excludeID uint64) (bool, error) {
	var count int64
	query := r.db.Model(&domain.BlogPost{}).Where("slug = ?", slug)
	if excludeID != 0 {
		query = query.Where("id != ?", excludeID)
	}
	err := query.Count(&count).Error
	return count > 0, err
}

func (r *postRepository) ReplaceCategories(post *domain.BlogPost, categories []*domain.Category) error {
	return r.db.Model(post).Association("Categories").Replace(categories)
}

func (r *postRepository) ReplaceTags(post *domain.BlogPost, tags []*domain.Tag) error {
	return r.db.Model(post).Association("Tags").Replace(tags)
}
