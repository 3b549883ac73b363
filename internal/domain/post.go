package domain

import (
	"time"
)

// PostStatus is the lifecycle state of a blog post
type PostStatus string

// Post lifecycle states. Deleted rows are retained but excluded from
// every read path.
const (
	PostStatusDraft     PostStatus = "draft"
	PostStatusPublished PostStatus = "published"
	PostStatusArchived  PostStatus = "archived"
	PostStatusScheduled PostStatus = "scheduled"
	PostStatusDeleted   PostStatus = "deleted"
)

// BlogPost is an owned, versioned piece of content
type BlogPost struct {
	ID       uint64 `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	AuthorID uint64 `gorm:"column:author_id;index" json:"author_id"`
	Author   *User  `gorm:"foreignKey:AuthorID" json:"author,omitempty"`

	Title   string `gorm:"column:title;type:varchar(255)" json:"title"`
	Slug    string `gorm:"column:slug;type:varchar(300);uniqueIndex" json:"slug"`
	Excerpt string `gorm:"column:excerpt;type:varchar(500)" json:"excerpt"`
	Content string `gorm:"column:content;type:mediumtext" json:"content"`

	Status        PostStatus `gorm:"column:status;type:varchar(10);default:'draft';index:idx_posts_status_published" json:"status"`
	IsFeatured    bool       `gorm:"column:is_featured;default:false;index" json:"is_featured"`
	IsPinned      bool       `gorm:"column:is_pinned;default:false" json:"is_pinned"`
	AllowComments bool       `gorm:"column:allow_comments;default:true" json:"allow_comments"`

	PublishedAt *time.Time `gorm:"column:published_at;index:idx_posts_status_published" json:"published_at,omitempty"`
	ScheduledAt *time.Time `gorm:"column:scheduled_at" json:"scheduled_at,omitempty"`

	FeaturedImageURL string `gorm:"column:featured_image_url;type:varchar(500)" json:"featured_image_url,omitempty"`
	FeaturedImageAlt string `gorm:"column:featured_image_alt;type:varchar(255)" json:"featured_image_alt,omitempty"`

	MetaTitle       string `gorm:"column:meta_title;type:varchar(70)" json:"meta_title,omitempty"`
	MetaDescription string `gorm:"column:meta_description;type:varchar(160)" json:"meta_description,omitempty"`
	MetaKeywords    string `gorm:"column:meta_keywords;type:varchar(255)" json:"meta_keywords,omitempty"`
	CanonicalURL    string `gorm:"column:canonical_url;type:varchar(500)" json:"canonical_url,omitempty"`

	ReadingTime int `gorm:"column:reading_time;default:0" json:"reading_time"`
	WordCount   int `gorm:"column:word_count;default:0" json:"word_count"`

	// Denormalized counters. Mutated only through atomic SQL increments,
	// never read-modify-write.
	ViewCount    uint `gorm:"column:view_count;default:0" json:"view_count"`
	CommentCount uint `gorm:"column:comment_count;default:0" json:"comment_count"`
	LikeCount    uint `gorm:"column:like_count;default:0" json:"like_count"`

	Categories []Category `gorm:"many2many:post_categories" json:"categories,omitempty"`
	Tags       []Tag      `gorm:"many2many:post_tags" json:"tags,omitempty"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (BlogPost) TableName() string { return "blog_posts" }

// Permalink builds the public URL of a post
func (p *BlogPost) Permalink(baseURL string) string {
	return baseURL + "/blog/" + p.Slug
}

// IsPublic reports whether the post is visible to unauthenticated readers
func (p *BlogPost) IsPublic(now time.Time) bool {
	return p.Status == PostStatusPublished &&
		p.PublishedAt != nil &&
		!p.PublishedAt.After(now)
}

// PostRevision is an immutable snapshot of a post's editable fields.
// (post_id, revision_number) is unique; numbers are contiguous from 1.
type PostRevision struct {
	ID             uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	PostID         uint64    `gorm:"column:post_id;uniqueIndex:idx_revisions_post_number" json:"post_id"`
	RevisionNumber uint      `gorm:"column:revision_number;uniqueIndex:idx_revisions_post_number" json:"revision_number"`
	Title          string    `gorm:"column:title;type:varchar(255)" json:"title"`
	Content        string    `gorm:"column:content;type:mediumtext" json:"content"`
	Excerpt        string    `gorm:"column:excerpt;type:varchar(500)" json:"excerpt"`
	EditorID       uint64    `gorm:"column:editor_id" json:"editor_id"`
	ChangeSummary  string    `gorm:"column:change_summary;type:text" json:"change_summary"`
	RevisionNotes  string    `gorm:"column:revision_notes;type:text" json:"revision_notes"`
	CreatedAt      time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (PostRevision) TableName() string { return "blog_post_revisions" }

// Category groups posts
type Category struct {
	ID          uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Name        string    `gorm:"column:name;type:varchar(100);uniqueIndex" json:"name"`
	Slug        string    `gorm:"column:slug;type:varchar(150);uniqueIndex" json:"slug"`
	Description *string   `gorm:"column:description;type:text" json:"description,omitempty"`
	Icon        string    `gorm:"column:icon;type:varchar(50)" json:"icon,omitempty"`
	IsActive    bool      `gorm:"column:is_active;default:true" json:"is_active"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Category) TableName() string { return "blog_categories" }

// Tag labels posts
type Tag struct {
	ID        uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"column:name;type:varchar(100);uniqueIndex" json:"name"`
	Slug      string    `gorm:"column:slug;type:varchar(150);uniqueIndex" json:"slug"`
	IsActive  bool      `gorm:"column:is_active;default:true" json:"is_active"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Tag) TableName() string { return "blog_tags" }
