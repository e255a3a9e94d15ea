package models

import (
	"time"

	"gorm.io/gorm"
)

type TaskStatus string

const (
	TaskStatusOpen       TaskStatus = "OPEN"
	TaskStatusInProgress TaskStatus = "IN_PROGRESS"
	TaskStatusCompleted  TaskStatus = "COMPLETED"
	TaskStatusCancelled  TaskStatus = "CANCELLED"
)

type TaskPriority string

const (
	TaskPriorityLow    TaskPriority = "LOW"
	TaskPriorityMedium TaskPriority = "MEDIUM"
	TaskPriorityHigh   TaskPriority = "HIGH"
	TaskPriorityUrgent TaskPriority = "URGENT"
)

type Task struct {
	ID          uint64         `gorm:"primarykey" json:"id"`
	Title       string         `gorm:"not null" json:"title"`
	Description string         `gorm:"type:text" json:"description"`
	ProjectID   *uint64        `gorm:"index" json:"project_id"`
	CreatorID   uint64         `gorm:"not null" json:"creator_id"`
	AssigneeID  *uint64        `gorm:"index" json:"assignee_id"`
	Status      TaskStatus     `gorm:"type:varchar(20);not null;default:'OPEN'" json:"status"`
	Priority    TaskPriority   `gorm:"type:varchar(20);not null;default:'MEDIUM'" json:"priority"`
	DueDate     *time.Time     `json:"due_date"`
	CompletedAt *time.Time     `json:"completed_at"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Project     *Project     `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	Creator     User         `gorm:"foreignKey:CreatorID" json:"creator,omitempty"`
	Assignee    *User        `gorm:"foreignKey:AssigneeID" json:"assignee,omitempty"`
	Comments    []Comment    `gorm:"foreignKey:TaskID" json:"comments,omitempty"`
	Attachments []Attachment `gorm:"foreignKey:TaskID" json:"attachments,omitempty"`
}
