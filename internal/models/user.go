package models

import (
	"time"

	"gorm.io/gorm"
)

type UserRole string

const (
	RoleUser  UserRole = "USER"
	RoleAdmin UserRole = "ADMIN"
)

type User struct {
	ID             uint64         `gorm:"primarykey" json:"id"`
	Username       string         `gorm:"type:varchar(50);uniqueIndex;not null" json:"username"`
	Email          string         `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	PasswordHash   string         `gorm:"type:varchar(255);not null" json:"-"`
	FullName       string         `gorm:"type:varchar(100)" json:"full_name"`
	Phone          string         `gorm:"type:varchar(30)" json:"phone"`
	ProfilePicture string         `gorm:"type:varchar(255)" json:"profile_picture"`
	Role           UserRole       `gorm:"type:varchar(20);not null;default:'USER'" json:"role"`
	Active         bool           `gorm:"not null;default:true" json:"active"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	OwnedTeams    []Team       `gorm:"foreignKey:OwnerID" json:"-"`
	Memberships   []TeamMember `gorm:"foreignKey:UserID" json:"-"`
	CreatedTasks  []Task       `gorm:"foreignKey:CreatorID" json:"-"`
	AssignedTasks []Task       `gorm:"foreignKey:AssigneeID" json:"-"`
}
