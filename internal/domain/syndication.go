package domain

import "time"

// ContentSyndication records a copy of a post published on an external
// platform. (post_id, platform_name) is unique; at most one row per
// pair may be canonical at any time.
type ContentSyndication struct {
	ID           uint64     `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	PostID       uint64     `gorm:"column:post_id;uniqueIndex:idx_syndications_post_platform" json:"post_id"`
	PlatformName string     `gorm:"column:platform_name;type:varchar(100);uniqueIndex:idx_syndications_post_platform" json:"platform_name"`
	URL          string     `gorm:"column:url;type:varchar(500)" json:"url"`
	PublishedAt  *time.Time `gorm:"column:published_at" json:"published_at,omitempty"`
	IsCanonical  bool       `gorm:"column:is_canonical;default:false" json:"is_canonical"`
	Metadata     JSONMap    `gorm:"column:metadata;type:json" json:"metadata"`
	CreatedAt    time.Time  `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (ContentSyndication) TableName() string { return "blog_content_syndications" }
