package domain

import "time"

// ReactionKind is a post-level reaction variant
type ReactionKind string

// Post reaction kinds
const (
	ReactionLike       ReactionKind = "like"
	ReactionLove       ReactionKind = "love"
	ReactionLaugh      ReactionKind = "laugh"
	ReactionWow        ReactionKind = "wow"
	ReactionSad        ReactionKind = "sad"
	ReactionAngry      ReactionKind = "angry"
	ReactionThumbsUp   ReactionKind = "thumbs_up"
	ReactionThumbsDown ReactionKind = "thumbs_down"
	ReactionCheckmark  ReactionKind = "checkmark"
	ReactionStar       ReactionKind = "star"
)

// ValidReactionKind reports whether k is a known post reaction
func ValidReactionKind(k ReactionKind) bool {
	switch k {
	case ReactionLike, ReactionLove, ReactionLaugh, ReactionWow, ReactionSad,
		ReactionAngry, ReactionThumbsUp, ReactionThumbsDown, ReactionCheckmark, ReactionStar:
		return true
	}
	return false
}

// CommentReactionKind is a comment-level reaction variant
type CommentReactionKind string

// Comment reaction kinds
const (
	CommentReactionLike    CommentReactionKind = "like"
	CommentReactionDislike CommentReactionKind = "dislike"
	CommentReactionLaugh   CommentReactionKind = "laugh"
	CommentReactionHeart   CommentReactionKind = "heart"
)

// ValidCommentReactionKind reports whether k is a known comment reaction
func ValidCommentReactionKind(k CommentReactionKind) bool {
	switch k {
	case CommentReactionLike, CommentReactionDislike, CommentReactionLaugh, CommentReactionHeart:
		return true
	}
	return false
}

// Comment is a user or guest comment on a post
type Comment struct {
	ID       uint64  `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	PostID   uint64  `gorm:"column:post_id;index" json:"post_id"`
	UserID   *uint64 `gorm:"column:user_id;index" json:"user_id,omitempty"`
	ParentID *uint64 `gorm:"column:parent_id;index" json:"parent_id,omitempty"`

	// Guest identity when UserID is nil
	GuestName  string `gorm:"column:guest_name;type:varchar(100)" json:"guest_name,omitempty"`
	GuestEmail string `gorm:"column:guest_email;type:varchar(255)" json:"-"`

	Content    string `gorm:"column:content;type:text" json:"content"`
	IsApproved bool   `gorm:"column:is_approved;default:false;index" json:"is_approved"`
	IsSpam     bool   `gorm:"column:is_spam;default:false" json:"is_spam"`

	IPAddress string `gorm:"column:ip_address;type:varchar(45)" json:"-"`
	UserAgent string `gorm:"column:user_agent;type:varchar(255)" json:"-"`
	Referrer  string `gorm:"column:referrer;type:varchar(500)" json:"-"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime;index" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Comment) TableName() string { return "blog_comments" }

// DisplayName returns the commenter's visible name
func (c *Comment) DisplayName() string {
	if c.User != nil {
		return c.User.DisplayName()
	}
	if c.GuestName != "" {
		return c.GuestName
	}
	return "Anonymous"
}

// IsReply reports whether the comment answers another comment
func (c *Comment) IsReply() bool { return c.ParentID != nil }

// Like marks a post as liked by a user. One row per (user, post).
type Like struct {
	ID        uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	UserID    uint64    `gorm:"column:user_id;uniqueIndex:idx_likes_user_post" json:"user_id"`
	PostID    uint64    `gorm:"column:post_id;uniqueIndex:idx_likes_user_post;index" json:"post_id"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Like) TableName() string { return "blog_likes" }

// PostReaction is a typed reaction to a post. One row per (user, post).
type PostReaction struct {
	ID        uint64       `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	UserID    uint64       `gorm:"column:user_id;uniqueIndex:idx_post_reactions_user_post" json:"user_id"`
	PostID    uint64       `gorm:"column:post_id;uniqueIndex:idx_post_reactions_user_post;index" json:"post_id"`
	Reaction  ReactionKind `gorm:"column:reaction;type:varchar(20)" json:"reaction"`
	CreatedAt time.Time    `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (PostReaction) TableName() string { return "blog_post_reactions" }

// CommentReaction is a typed reaction to a comment. One row per (user, comment).
type CommentReaction struct {
	ID        uint64              `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	UserID    uint64              `gorm:"column:user_id;uniqueIndex:idx_comment_reactions_user_comment" json:"user_id"`
	CommentID uint64              `gorm:"column:comment_id;uniqueIndex:idx_comment_reactions_user_comment;index" json:"comment_id"`
	Reaction  CommentReactionKind `gorm:"column:reaction;type:varchar(10)" json:"reaction"`
	CreatedAt time.Time           `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (CommentReaction) TableName() string { return "blog_comment_reactions" }

// Favorite bookmarks a post for a user. One row per (user, post).
type Favorite struct {
	ID        uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	UserID    uint64    `gorm:"column:user_id;uniqueIndex:idx_favorites_user_post" json:"user_id"`
	PostID    uint64    `gorm:"column:post_id;uniqueIndex:idx_favorites_user_post;index" json:"post_id"`
	Post      *BlogPost `gorm:"foreignKey:PostID" json:"post,omitempty"`
	Notes     string    `gorm:"column:notes;type:text" json:"notes,omitempty"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Favorite) TableName() string { return "blog_favorites" }
