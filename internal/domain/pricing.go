package domain

import "time"

// PlanType is a subscription billing interval
type PlanType string

// Plan types
const (
	PlanMonthly PlanType = "monthly"
	PlanYearly  PlanType = "yearly"
)

// SubscriptionPrice is the current price of a billing plan
type SubscriptionPrice struct {
	ID          uint64   `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	PlanType    PlanType `gorm:"column:plan_type;type:varchar(10);uniqueIndex" json:"plan_type"`
	PriceUSD    float64  `gorm:"column:price_usd;type:decimal(8,2)" json:"price_usd"`
	Description string   `gorm:"column:description;type:varchar(255)" json:"description,omitempty"`
	IsActive    bool     `gorm:"column:is_active;default:true" json:"is_active"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (SubscriptionPrice) TableName() string { return "subscription_prices" }
