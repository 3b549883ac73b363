package domain

import "time"

// AppType identifies a managed desktop application module
type AppType string

// Managed app modules
const (
	AppGeneral    AppType = "general"
	AppIndividual AppType = "individual"
	AppPayment    AppType = "payment"
	AppUser       AppType = "user"
	AppProfile    AppType = "profile"
	AppMorphpix   AppType = "morphpix"
)

// ValidAppType reports whether t is a known app module
func ValidAppType(t AppType) bool {
	switch t {
	case AppGeneral, AppIndividual, AppPayment, AppUser, AppProfile, AppMorphpix:
		return true
	}
	return false
}

// AppManager is the per-module remote control row for the desktop app
type AppManager struct {
	ID             uint64  `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	AppType        AppType `gorm:"column:app_type;type:varchar(20);uniqueIndex" json:"app_type"`
	IsActive       bool    `gorm:"column:is_active;default:true" json:"is_active"`
	RequiresUpdate bool    `gorm:"column:requires_update;default:false" json:"requires_update"`

	ShutdownMessage string `gorm:"column:shutdown_message;type:text" json:"shutdown_message,omitempty"`
	UpdateMessage   string `gorm:"column:update_message;type:text" json:"update_message,omitempty"`
	WebsiteURL      string `gorm:"column:website_url;type:varchar(500)" json:"website_url,omitempty"`
	LatestVersion   string `gorm:"column:latest_version;type:varchar(20)" json:"latest_version,omitempty"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (AppManager) TableName() string { return "app_managers" }

// GlobalAppControl is a singleton row of overrides that apply to every module.
// A global shutdown or forced update wins over the per-module flags.
type GlobalAppControl struct {
	ID                uint64 `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	GlobalShutdown    bool   `gorm:"column:global_shutdown;default:false" json:"global_shutdown"`
	GlobalUpdateMode  bool   `gorm:"column:global_update_mode;default:false" json:"global_update_mode"`
	ShutdownMessage   string `gorm:"column:shutdown_message;type:text" json:"shutdown_message,omitempty"`
	UpdateMessage     string `gorm:"column:update_message;type:text" json:"update_message,omitempty"`
	MaintenanceWindow string `gorm:"column:maintenance_window;type:varchar(255)" json:"maintenance_window,omitempty"`

	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (GlobalAppControl) TableName() string { return "global_app_controls" }

// AppStatusResponse is the payload returned to desktop clients
type AppStatusResponse struct {
	AppType         AppType `json:"app_type"`
	IsActive        bool    `json:"is_active"`
	RequiresUpdate  bool    `json:"requires_update"`
	ShutdownMessage string  `json:"shutdown_message,omitempty"`
	UpdateMessage   string  `json:"update_message,omitempty"`
	WebsiteURL      string  `json:"website_url,omitempty"`
	LatestVersion   string  `json:"latest_version,omitempty"`
}
