package models

import (
	"time"

	"gorm.io/gorm"
)

type Comment struct {
	ID        uint64         `gorm:"primarykey" json:"id"`
	Content   string         `gorm:"type:text;not null" json:"content"`
	TaskID    uint64         `gorm:"not null;index" json:"task_id"`
	AuthorID  uint64         `gorm:"not null" json:"author_id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Task   Task `gorm:"foreignKey:TaskID" json:"task,omitempty"`
	Author User `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
}
