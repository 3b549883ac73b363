package domain

import "time"

// ServiceStatus is the lifecycle state of a service offering
type ServiceStatus string

// Service statuses
const (
	ServiceDraft      ServiceStatus = "draft"
	ServicePublished  ServiceStatus = "published"
	ServiceArchived   ServiceStatus = "archived"
	ServicePending    ServiceStatus = "pending"
	ServiceInProgress ServiceStatus = "in_progress"
	ServiceCompleted  ServiceStatus = "completed"
)

// Service is a service offering shown on the site
type Service struct {
	ID             uint64        `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Title          string        `gorm:"column:title;type:varchar(255)" json:"title"`
	Subtitle       string        `gorm:"column:subtitle;type:varchar(255)" json:"subtitle,omitempty"`
	Slug           string        `gorm:"column:slug;type:varchar(255);uniqueIndex" json:"slug"`
	Description    string        `gorm:"column:description;type:text" json:"description"`
	SubDescription string        `gorm:"column:sub_description;type:text" json:"sub_description,omitempty"`
	Status         ServiceStatus `gorm:"column:status;type:varchar(20);default:'draft';index" json:"status"`

	MetaTitle       string `gorm:"column:meta_title;type:varchar(255)" json:"meta_title,omitempty"`
	MetaDescription string `gorm:"column:meta_description;type:varchar(500)" json:"meta_description,omitempty"`

	CreatedByID *uint64 `gorm:"column:created_by_id;index" json:"created_by_id,omitempty"`
	CreatedBy   *User   `gorm:"foreignKey:CreatedByID" json:"created_by,omitempty"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Service) TableName() string { return "services" }

// IsPublic reports whether the service is visible to anonymous readers
func (s *Service) IsPublic() bool {
	return s.Status == ServicePublished
}
