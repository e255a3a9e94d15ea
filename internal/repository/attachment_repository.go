package repository

import (
	"github.com/tmihalic/workboard-api/internal/models"
	"gorm.io/gorm"
)

// GormAttachmentRepository is a GORM implementation of AttachmentRepository
type GormAttachmentRepository struct {
	db *gorm.DB
}

// NewAttachmentRepository creates a new AttachmentRepository
func NewAttachmentRepository(db *gorm.DB) AttachmentRepository {
	return &GormAttachmentRepository{db: db}
}

// Create records a new attachment
func (r *GormAttachmentRepository) Create(attachment *models.Attachment) error {
	return r.db.Create(attachment).Error
}

// FindByID finds an attachment by ID
func (r *GormAttachmentRepository) FindByID(id uint64) (*models.Attachment, error) {
	var attachment models.Attachment
	if err := r.db.Preload("UploadedBy").First(&attachment, id).Error; err != nil {
		return nil, err
	}
	return &attachment, nil
}

// ListByTaskID lists attachments on a task
func (r *GormAttachmentRepository) ListByTaskID(taskID uint64) ([]models.Attachment, error) {
	var attachments []models.Attachment
	if err := r.db.Preload("UploadedBy").
		Where("task_id = ?", taskID).
		Order("uploaded_at DESC").
		Find(&attachments).Error; err != nil {
		return nil, err
	}
	return attachments, nil
}

// Delete deletes an attachment
func (r *GormAttachmentRepository) Delete(id uint64) error {
	return r.db.Delete(&models.Attachment{}, id).Error
}
