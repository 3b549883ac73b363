package domain

import "time"

// ShareMethod is the channel through which content was shared
type ShareMethod string

// Share methods
const (
	ShareMethodSocial ShareMethod = "social"
	ShareMethodEmail  ShareMethod = "email"
	ShareMethodLink   ShareMethod = "link"
	ShareMethodEmbed  ShareMethod = "embed"
)

// ValidShareMethod reports whether m is a known share method
func ValidShareMethod(m ShareMethod) bool {
	switch m {
	case ShareMethodSocial, ShareMethodEmail, ShareMethodLink, ShareMethodEmbed:
		return true
	}
	return false
}

// SocialPlatform is a supported sharing destination
type SocialPlatform struct {
	ID           uint64 `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Name         string `gorm:"column:name;type:varchar(50);uniqueIndex" json:"name"`
	BaseShareURL string `gorm:"column:base_share_url;type:varchar(500)" json:"base_share_url"`
	IconClass    string `gorm:"column:icon_class;type:varchar(50)" json:"icon_class,omitempty"`
	IsActive     bool   `gorm:"column:is_active;default:true" json:"is_active"`
	OrderNum     uint   `gorm:"column:order_num;default:0" json:"order_num"`
}

func (SocialPlatform) TableName() string { return "blog_social_platforms" }

// ShareTracking records one share of a post.
// PlatformID nil means direct link sharing.
type ShareTracking struct {
	ID         uint64      `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	PostID     uint64      `gorm:"column:post_id;index:idx_shares_post_platform" json:"post_id"`
	PlatformID *uint64     `gorm:"column:platform_id;index:idx_shares_post_platform" json:"platform_id,omitempty"`
	UserID     *uint64     `gorm:"column:user_id;index" json:"user_id,omitempty"`
	Method     ShareMethod `gorm:"column:share_method;type:varchar(20);default:'social'" json:"share_method"`

	IPAddress string `gorm:"column:ip_address;type:varchar(45)" json:"-"`
	UserAgent string `gorm:"column:user_agent;type:varchar(255)" json:"-"`
	Referrer  string `gorm:"column:referrer;type:varchar(500)" json:"-"`

	ClickbackCount uint    `gorm:"column:clickback_count;default:0" json:"clickback_count"`
	Metadata       JSONMap `gorm:"column:metadata;type:json" json:"metadata"`

	Platform *SocialPlatform `gorm:"foreignKey:PlatformID" json:"platform,omitempty"`

	SharedAt time.Time `gorm:"column:shared_at;autoCreateTime;index" json:"shared_at"`
}

func (ShareTracking) TableName() string { return "blog_share_trackings" }

// PlatformName returns the sharing destination name, "direct" when none
func (s *ShareTracking) PlatformName() string {
	if s.Platform != nil {
		return s.Platform.Name
	}
	return "direct"
}

// ShareableLink is a unique, optionally expiring share URL for a post
type ShareableLink struct {
	ID         uint64     `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	PostID     uint64     `gorm:"column:post_id;index" json:"post_id"`
	CreatorID  *uint64    `gorm:"column:creator_id" json:"creator_id,omitempty"`
	Token      string     `gorm:"column:token;type:varchar(50);uniqueIndex" json:"token"`
	Expiration *time.Time `gorm:"column:expiration" json:"expiration,omitempty"`
	MaxUses    *uint      `gorm:"column:max_uses" json:"max_uses,omitempty"`
	UseCount   uint       `gorm:"column:use_count;default:0" json:"use_count"`
	Notes      string     `gorm:"column:notes;type:text" json:"notes,omitempty"`
	IsActive   bool       `gorm:"column:is_active;default:true" json:"is_active"`
	CreatedAt  time.Time  `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (ShareableLink) TableName() string { return "blog_shareable_links" }

// IsExpired reports whether the link can no longer be used
func (l *ShareableLink) IsExpired(now time.Time) bool {
	if l.Expiration != nil && now.After(*l.Expiration) {
		return true
	}
	if l.MaxUses != nil && l.UseCount >= *l.MaxUses {
		return true
	}
	return !l.IsActive
}
