package domain

import "time"

// Subscription is a newsletter subscription. Token identifies the
// subscriber in unsubscribe links; ConfirmationToken single-use
// confirms the address.
type Subscription struct {
	ID                uint64     `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Email             string     `gorm:"column:email;type:varchar(255);uniqueIndex" json:"email"`
	UserID            *uint64    `gorm:"column:user_id" json:"user_id,omitempty"`
	Token             string     `gorm:"column:token;type:varchar(100);uniqueIndex" json:"token"`
	ConfirmationToken string     `gorm:"column:confirmation_token;type:varchar(100)" json:"-"`
	IsConfirmed       bool       `gorm:"column:is_confirmed;default:false" json:"is_confirmed"`
	IsActive          bool       `gorm:"column:is_active;default:true" json:"is_active"`
	IPAddress         *string    `gorm:"column:ip_address;type:varchar(45)" json:"-"`
	Preferences       JSONMap    `gorm:"column:preferences;type:json" json:"preferences"`
	SubscribedAt      time.Time  `gorm:"column:subscribed_at;autoCreateTime" json:"subscribed_at"`
	UnsubscribedAt    *time.Time `gorm:"column:unsubscribed_at" json:"unsubscribed_at,omitempty"`
	UpdatedAt         time.Time  `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Subscription) TableName() string { return "blog_subscriptions" }
