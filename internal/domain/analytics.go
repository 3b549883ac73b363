package domain

import "time"

// ActivityType is the kind of a tracked engagement activity
type ActivityType string

// Activity log kinds
const (
	ActivityPostView ActivityType = "post_view"
	ActivityComment  ActivityType = "comment"
	ActivityLike     ActivityType = "like"
	ActivityDislike  ActivityType = "dislike"
	ActivityFavorite ActivityType = "favorite"
	ActivityShare    ActivityType = "share"
	ActivityRead     ActivityType = "read"
	ActivitySearch   ActivityType = "search"
)

// ValidActivityType reports whether t is a known activity kind
func ValidActivityType(t ActivityType) bool {
	switch t {
	case ActivityPostView, ActivityComment, ActivityLike, ActivityDislike,
		ActivityFavorite, ActivityShare, ActivityRead, ActivitySearch:
		return true
	}
	return false
}

// ActivityLog is an append-only record of an engagement event,
// reviewed by admins. Only IsProcessed is ever mutated.
type ActivityLog struct {
	ID           uint64       `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	ActivityType ActivityType `gorm:"column:activity_type;type:varchar(20);index" json:"activity_type"`
	UserID       *uint64      `gorm:"column:user_id;index" json:"user_id,omitempty"`
	PostID       *uint64      `gorm:"column:post_id;index" json:"post_id,omitempty"`
	IPAddress    *string      `gorm:"column:ip_address;type:varchar(45)" json:"ip_address,omitempty"`
	Metadata     JSONMap      `gorm:"column:metadata;type:json" json:"metadata"`
	IsProcessed  bool         `gorm:"column:is_processed;default:false;index" json:"is_processed"`
	CreatedAt    time.Time    `gorm:"column:created_at;autoCreateTime;index" json:"created_at"`
}

func (ActivityLog) TableName() string { return "blog_activity_logs" }

// PostView records a single view of a post
type PostView struct {
	ID        uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	PostID    uint64    `gorm:"column:post_id;index" json:"post_id"`
	UserID    *uint64   `gorm:"column:user_id;index" json:"user_id,omitempty"`
	IPAddress string    `gorm:"column:ip_address;type:varchar(45)" json:"ip_address"`
	UserAgent string    `gorm:"column:user_agent;type:varchar(255)" json:"user_agent,omitempty"`
	Referrer  string    `gorm:"column:referrer;type:varchar(500)" json:"referrer,omitempty"`
	TimeSpent uint      `gorm:"column:time_spent;default:0" json:"time_spent"`
	ViewedAt  time.Time `gorm:"column:viewed_at;autoCreateTime;index" json:"viewed_at"`
}

func (PostView) TableName() string { return "blog_post_views" }

// SearchQuery records a content search for analytics
type SearchQuery struct {
	ID           uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Query        string    `gorm:"column:query;type:varchar(255)" json:"query"`
	UserID       *uint64   `gorm:"column:user_id;index" json:"user_id,omitempty"`
	IPAddress    *string   `gorm:"column:ip_address;type:varchar(45)" json:"ip_address,omitempty"`
	ResultsCount int       `gorm:"column:results_count;default:0" json:"results_count"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (SearchQuery) TableName() string { return "blog_search_queries" }
