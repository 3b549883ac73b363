package domain

import "time"

// AdminLevel is the minimum level granting admin privileges
const AdminLevel = 10

// User represents an account
type User struct {
	ID        uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Username  string    `gorm:"column:username;type:varchar(50);uniqueIndex" json:"username"`
	Email     string    `gorm:"column:email;type:varchar(255);uniqueIndex" json:"email"`
	Password  string    `gorm:"column:password;type:varchar(255)" json:"-"`
	Nickname  string    `gorm:"column:nickname;type:varchar(100)" json:"nickname"`
	Level     int       `gorm:"column:level;default:1" json:"level"`
	Status    string    `gorm:"column:status;type:varchar(20);default:'active'" json:"status"`
	AvatarURL *string   `gorm:"column:avatar_url;type:varchar(500)" json:"avatar_url,omitempty"`
	Bio       *string   `gorm:"column:bio;type:text" json:"bio,omitempty"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (User) TableName() string { return "users" }

// IsAdmin reports whether the user has admin privileges
func (u *User) IsAdmin() bool { return u.Level >= AdminLevel }

// DisplayName returns the nickname, falling back to the username
func (u *User) DisplayName() string {
	if u.Nickname != "" {
		return u.Nickname
	}
	return u.Username
}
