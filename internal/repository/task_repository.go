package repository

import (
	"strings"

	"github.com/tmihalic/workboard-api/internal/models"
	"gorm.io/gorm"
)

// GormTaskRepository is a GORM implementation of TaskRepository
type GormTaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &GormTaskRepository{db: db}
}

// Create creates a new task
func (r *GormTaskRepository) Create(task *models.Task) error {
	return r.db.Create(task).Error
}

// FindByID finds a task by ID with optional preloading
func (r *GormTaskRepository) FindByID(id uint64, preload ...string) (*models.Task, error) {
	var task models.Task
	query := r.db

	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.First(&task, id).Error; err != nil {
		return nil, err
	}

	return &task, nil
}

// List retrieves tasks matching the filter
func (r *GormTaskRepository) List(filter TaskFilter) ([]models.Task, error) {
	var tasks []models.Task

	query := r.db.Model(&models.Task{})

	if filter.Status != nil {
		query = query.Where("tasks.status = ?", *filter.Status)
	}
	if filter.ActorID != nil {
		query = query.Where("tasks.creator_id = ? OR tasks.assignee_id = ?", *filter.ActorID, *filter.ActorID)
	}
	if filter.Keyword != "" {
		pattern := "%" + strings.ToLower(filter.Keyword) + "%"
		query = query.Where("LOWER(tasks.title) LIKE ? OR LOWER(tasks.description) LIKE ?", pattern, pattern)
	}

	if err := query.
		Order("tasks.created_at DESC").
		Preload("Creator").
		Preload("Assignee").
		Preload("Project").
		Preload("Comments").
		Preload("Attachments").
		Find(&tasks).Error; err != nil {
		return nil, err
	}

	return tasks, nil
}

// Update updates a task
func (r *GormTaskRepository) Update(task *models.Task) error {
	return r.db.Save(task).Error
}

// Delete deletes a task together with its comments and attachments
func (r *GormTaskRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("task_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}

		if err := tx.Where("task_id = ?", id).Delete(&models.Attachment{}).Error; err != nil {
			return err
		}

		return tx.Delete(&models.Task{}, id).Error
	})
}
