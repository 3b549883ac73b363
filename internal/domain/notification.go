package domain

import "time"

// NotificationType is the kind of a user-facing notification
type NotificationType string

// User notification kinds
const (
	NotifyComment    NotificationType = "comment"
	NotifyReply      NotificationType = "reply"
	NotifyPostUpdate NotificationType = "post_update"
	NotifyNewPost    NotificationType = "new_post"
	NotifyLike       NotificationType = "like"
	NotifyFavorite   NotificationType = "favorite"
	NotifyView       NotificationType = "view"
)

// AdminNotificationType is the kind of an admin-facing notification
type AdminNotificationType string

// Admin notification kinds
const (
	AdminNotifyPostView     AdminNotificationType = "post_view"
	AdminNotifyComment      AdminNotificationType = "comment"
	AdminNotifyReaction     AdminNotificationType = "reaction"
	AdminNotifyFavorite     AdminNotificationType = "favorite"
	AdminNotifySearch       AdminNotificationType = "search"
	AdminNotifySubscription AdminNotificationType = "subscription"
	AdminNotifyShare        AdminNotificationType = "share"
	AdminNotifyContact      AdminNotificationType = "contact"
)

// Notification is surfaced to a content owner when another actor
// engages with their content. Terminal state is IsRead = true.
type Notification struct {
	ID            uint64           `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	UserID        uint64           `gorm:"column:user_id;index" json:"user_id"`
	Type          NotificationType `gorm:"column:notification_type;type:varchar(20);index" json:"notification_type"`
	Message       string           `gorm:"column:message;type:varchar(255)" json:"message"`
	TargetURL     string           `gorm:"column:target_url;type:varchar(500)" json:"target_url,omitempty"`
	RelatedPostID *uint64          `gorm:"column:related_post_id" json:"related_post_id,omitempty"`
	IsRead        bool             `gorm:"column:is_read;default:false;index" json:"is_read"`
	CreatedAt     time.Time        `gorm:"column:created_at;autoCreateTime;index" json:"created_at"`
}

func (Notification) TableName() string { return "blog_notifications" }

// AdminNotification summarizes a tracked event for administrators
type AdminNotification struct {
	ID                 uint64                `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Type               AdminNotificationType `gorm:"column:notification_type;type:varchar(20);index" json:"notification_type"`
	Title              string                `gorm:"column:title;type:varchar(255)" json:"title"`
	Message            string                `gorm:"column:message;type:text" json:"message"`
	RelatedObjectID    *uint64               `gorm:"column:related_object_id" json:"related_object_id,omitempty"`
	RelatedContentType string                `gorm:"column:related_content_type;type:varchar(100)" json:"related_content_type,omitempty"`
	Metadata           JSONMap               `gorm:"column:metadata;type:json" json:"metadata"`
	IsRead             bool                  `gorm:"column:is_read;default:false;index" json:"is_read"`
	CreatedAt          time.Time             `gorm:"column:created_at;autoCreateTime;index" json:"created_at"`
}

func (AdminNotification) TableName() string { return "blog_admin_notifications" }

// NotificationListResponse is the paginated notification list payload
type NotificationListResponse struct {
	Items       []Notification `json:"items"`
	Total       int64          `json:"total"`
	UnreadCount int64          `json:"unread_count"`
	Page        int            `json:"page"`
	Limit       int            `json:"limit"`
	TotalPages  int            `json:"total_pages"`
}

// NotificationSummaryResponse is the unread count payload
type NotificationSummaryResponse struct {
	TotalUnread int64 `json:"total_unread"`
}
