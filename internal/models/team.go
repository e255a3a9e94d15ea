package models

import (
	"time"

	"gorm.io/gorm"
)

type Team struct {
	ID          uint64         `gorm:"primarykey" json:"id"`
	Name        string         `gorm:"type:varchar(255);not null" json:"name"`
	Description string         `gorm:"type:text" json:"description"`
	OwnerID     uint64         `gorm:"not null" json:"owner_id"`
	Active      bool           `gorm:"not null;default:true" json:"active"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Owner    User         `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
	Members  []TeamMember `gorm:"foreignKey:TeamID" json:"members,omitempty"`
	Projects []Project    `gorm:"foreignKey:TeamID" json:"projects,omitempty"`
}
