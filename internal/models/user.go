package models

import (
	"time"

	"gorm.io/gorm"
)

// User represents a system user: a field agent, a county supervisor or a manager.
type User struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Username    string         `gorm:"uniqueIndex;size:100;not null" json:"username"`
	Password    string         `gorm:"size:255" json:"-"` // bcrypt hash
	Email       string         `gorm:"size:255" json:"email"`
	FirstName   string         `gorm:"size:100" json:"first_name"`
	LastName    string         `gorm:"size:100" json:"last_name"`
	PhoneNumber string         `gorm:"size:15" json:"phone_number"`
	Role        string         `gorm:"size:20;default:agent" json:"role"` // agent, supervisor, manager
	County      string         `gorm:"size:50;index" json:"county"`
	Sublocation string         `gorm:"size:50" json:"sublocation"`
	EmployeeID  string         `gorm:"uniqueIndex;size:20" json:"employee_id"`
	IsActive    bool           `gorm:"default:true" json:"is_active"`
	LastLogin   *time.Time     `json:"last_login"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (User) TableName() string { return "users" }

// FullName returns "first last", falling back to the username.
func (u *User) FullName() string {
	if u.FirstName == "" && u.LastName == "" {
		return u.Username
	}
	if u.FirstName == "" {
		return u.LastName
	}
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}
