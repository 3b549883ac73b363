package domain

import "time"

// ContactMethod is how the submitter prefers to be reached
type ContactMethod string

// Preferred contact methods
const (
	ContactByEmail  ContactMethod = "email"
	ContactByPhone  ContactMethod = "phone"
	ContactByEither ContactMethod = "either"
)

// UrgencyLevel classifies a contact submission
type UrgencyLevel string

// Urgency levels
const (
	UrgencyLow      UrgencyLevel = "low"
	UrgencyMedium   UrgencyLevel = "medium"
	UrgencyHigh     UrgencyLevel = "high"
	UrgencyCritical UrgencyLevel = "critical"
)

// ContactSubmission is a contact-form intake record
type ContactSubmission struct {
	ID          uint64 `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	FullName    string `gorm:"column:full_name;type:varchar(255)" json:"full_name"`
	Email       string `gorm:"column:email;type:varchar(255);index" json:"email"`
	PhoneNumber string `gorm:"column:phone_number;type:varchar(20)" json:"phone_number,omitempty"`

	Subject                string        `gorm:"column:subject;type:varchar(255)" json:"subject"`
	PreferredContactMethod ContactMethod `gorm:"column:preferred_contact_method;type:varchar(10);default:'email'" json:"preferred_contact_method"`
	UrgencyLevel           UrgencyLevel  `gorm:"column:urgency_level;type:varchar(10)" json:"urgency_level,omitempty"`
	MessageContent         string        `gorm:"column:message_content;type:text" json:"message_content"`
	PrivacyPolicyAccepted  bool          `gorm:"column:privacy_policy_accepted;default:false" json:"privacy_policy_accepted"`

	IPAddress       *string `gorm:"column:ip_address;type:varchar(45)" json:"-"`
	UserAgent       string  `gorm:"column:user_agent;type:text" json:"-"`
	ReferrerURL     string  `gorm:"column:referrer_url;type:varchar(500)" json:"-"`
	BrowserLanguage string  `gorm:"column:browser_language;type:varchar(10)" json:"-"`

	IsProcessed   bool       `gorm:"column:is_processed;default:false;index" json:"is_processed"`
	ProcessedAt   *time.Time `gorm:"column:processed_at" json:"processed_at,omitempty"`
	ProcessedByID *uint64    `gorm:"column:processed_by_id" json:"processed_by_id,omitempty"`

	SubmittedAt time.Time `gorm:"column:submitted_at;autoCreateTime;index" json:"submitted_at"`
}

func (ContactSubmission) TableName() string { return "contact_submissions" }
