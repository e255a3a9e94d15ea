package models

import (
	"time"

	"gorm.io/gorm"
)

type Attachment struct {
	ID           uint64         `gorm:"primarykey" json:"id"`
	Filename     string         `gorm:"type:varchar(255);not null" json:"filename"`
	FilePath     string         `gorm:"type:varchar(512);not null" json:"file_path"`
	FileType     string         `gorm:"type:varchar(100)" json:"file_type"`
	FileSize     int64          `json:"file_size"`
	TaskID       uint64         `gorm:"not null;index" json:"task_id"`
	UploadedByID uint64         `gorm:"not null" json:"uploaded_by_id"`
	UploadedAt   time.Time      `gorm:"autoCreateTime" json:"uploaded_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Task       Task `gorm:"foreignKey:TaskID" json:"task,omitempty"`
	UploadedBy User `gorm:"foreignKey:UploadedByID" json:"uploaded_by,omitempty"`
}
