package repository

import (
	"errors"

	"github.com/evigdia/evigdia-backend/internal/domain"
	"gorm.io/gorm"
)

// ReactionRepository handles likes, reactions and favorites
type ReactionRepository interface {
	WithTx(tx *gorm.DB) ReactionRepository

	FindLike(userID, postID uint64) (*domain.Like, error)
	CreateLike(like *domain.Like) error
	DeleteLike(userID, postID uint64) error

	FindPostReaction(userID, postID uint64) (*domain.PostReaction, error)
	UpsertPostReaction(reaction *domain.PostReaction) error
	DeletePostReaction(userID, postID uint64) error
	CountPostReactions(postID uint64) (map[domain.ReactionKind]int64, error)

	FindCommentReaction(userID, commentID uint64) (*domain.CommentReaction, error)
	UpsertCommentReaction(reaction *domain.CommentReaction) error
	DeleteCommentReaction(userID, commentID uint64) error

	FindFavorite(userID, postID uint64) (*domain.Favorite, error)
	CreateFavorite(favorite *domain.Favorite) error
	DeleteFavorite(userID, postID uint64) error
	ListFavorites(userID uint64, page, limit int) ([]*domain.Favorite, int64, error)
}

type reactionRepository struct {
	db *gorm.DB
}

// NewReactionRepository creates a new ReactionRepository
func NewReactionRepository(db *gorm.DB) ReactionRepository {
	return &reactionRepository{db: db}
}

func (r *reactionRepository) WithTx(tx *gorm.DB) ReactionRepository {
	return &reactionRepository{db: tx}
}

func (r *reactionRepository) FindLike(userID, postID uint64) (*domain.Like, error) {
	var like domain.Like
	err := r.db.Where("user_id = ? AND post_id = ?", userID, postID).First(&like).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &like, nil
}

func (r *reactionRepository) CreateLike(like *domain.Like) error {
	return r.db.Create(like).Error
}

func (r *reactionRepository) DeleteLike(userID, postID uint64) error {
	return r.db.Where("user_id = ? AND post_id = ?", userID, postID).
		Delete(&domain.Like{}).Error
}

func (r *reactionRepository) FindPostReaction(userID, postID uint64) (*domain.PostReaction, error) {
	var reaction domain.PostReaction
	err := r.db.Where("user_id = ? AND post_id = ?", userID, postID).First(&reaction).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &reaction, nil
}

// UpsertPostReaction replaces the user's existing reaction kind on the post
func (r *reactionRepository) UpsertPostReaction(reaction *domain.PostReaction) error {
	existing, err := r.FindPostReaction(reaction.UserID, reaction.PostID)
	if err != nil {
		return err
	}
	if existing != nil {
		return r.db.Model(existing).Update("reaction", reaction.Reaction).Error
	}
	return r.db.Create(reaction).Error
}

func (r *reactionRepository) DeletePostReaction(userID, postID uint64) error {
	return r.db.Where("user_id = ? AND post_id = ?", userID, postID).
		Delete(&domain.PostReaction{}).Error
}

func (r *reactionRepository) CountPostReactions(postID uint64) (map[domain.ReactionKind]int64, error) {
	type row struct {
		Reaction domain.ReactionKind
		Count    int64
	}
	var rows []row
	err := r.db.Model(&domain.PostReaction{}).
		Select("reaction, COUNT(*) as count").
		Where("post_id = ?", postID).
		Group("reaction").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	counts := make(map[domain.ReactionKind]int64, len(rows))
	for _, row := range rows {
		counts[row.Reaction] = row.Count
	}
	return counts, nil
}

func (r *reactionRepository) FindCommentReaction(userID, commentID uint64) (*domain.CommentReaction, error) {
	var reaction domain.CommentReaction
	err := r.db.Where("user_id = ? AND comment_id = ?", userID, commentID).First(&reaction).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &reaction, nil
}

func (r *reactionRepository) UpsertCommentReaction(reaction *domain.CommentReaction) error {
	existing, err := r.FindCommentReaction(reaction.UserID, reaction.CommentID)
	if err != nil {
		return err
	}
	if existing != nil {
		return r.db.Model(existing).Update("reaction", reaction.Reaction).Error
	}
	return r.db.Create(reaction).Error
}

func (r *reactionRepository) DeleteCommentReaction(userID, commentID uint64) error {
	return r.db.Where("user_id = ? AND comment_id = ?", userID, commentID).
		Delete(&domain.CommentReaction{}).Error
}

func (r *reactionRepository) FindFavorite(userID, postID uint64) (*domain.Favorite, error) {
	var favorite domain.Favorite
	err := r.db.Where("user_id = ? AND post_id = ?", userID, postID).First(&favorite).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &favorite, nil
}

func (r *reactionRepository) CreateFavorite(favorite *domain.Favorite) error {
	return r.db.Create(favorite).Error
}

func (r *reactionRepository) DeleteFavorite(userID, postID uint64) error {
	return r.db.Where("user_id = ? AND post_id = ?", userID, postID).
		Delete(&domain.Favorite{}).Error
}

func (r *reactionRepository) ListFavorites(userID uint64, page, limit int) ([]*domain.Favorite, int64, error) {
	var favorites []*domain.Favorite
	var total int64

	query := r.db.Model(&domain.Favorite{}).Where("user_id = ?", userID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	offset := (page - 1) * limit
	if err := query.Preload("Post").
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&favorites).Error; err != nil {
		return nil, 0, err
	}
	return favorites, total, nil
}
