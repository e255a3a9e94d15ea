package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/tmihalic/workboard-api/internal/models"
	"github.com/tmihalic/workboard-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrAttachmentNotFound     = errors.New("attachment not found")
	ErrAttachmentNameRequired = errors.New("attachment filename cannot be empty")
)

// AttachmentService manages attachment metadata. File bytes are handled by
// an external storage collaborator; only the metadata is modeled here.
type AttachmentService struct {
	attachmentRepo repository.AttachmentRepository
	taskRepo       repository.TaskRepository
}

// NewAttachmentService creates a new AttachmentService.
func NewAttachmentService(attachmentRepo repository.AttachmentRepository, taskRepo repository.TaskRepository) *AttachmentService {
	return &AttachmentService{
		attachmentRepo: attachmentRepo,
		taskRepo:       taskRepo,
	}
}

// AddAttachmentInput describes an uploaded file's metadata.
type AddAttachmentInput struct {
	Filename string
	FileType string
	FileSize int64
}

// AddAttachment records attachment metadata on a task. The storage path is
// assigned server-side and the uploader is always the actor.
func (s *AttachmentService) AddAttachment(taskID uint64, input AddAttachmentInput, actor *models.User) (*models.Attachment, error) {
	if strings.TrimSpace(input.Filename) == "" {
		return nil, ErrAttachmentNameRequired
	}

	if _, err := s.taskRepo.FindByID(taskID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	attachment := &models.Attachment{
		Filename:     input.Filename,
		FilePath:     fmt.Sprintf("uploads/%d/%s-%s", taskID, uuid.New().String(), input.Filename),
		FileType:     input.FileType,
		FileSize:     input.FileSize,
		TaskID:       taskID,
		UploadedByID: actor.ID,
	}

	if err := s.attachmentRepo.Create(attachment); err != nil {
		return nil, fmt.Errorf("failed to create attachment: %w", err)
	}

	return s.attachmentRepo.FindByID(attachment.ID)
}

// ListAttachmentsByTask returns a task's attachments.
func (s *AttachmentService) ListAttachmentsByTask(taskID uint64) ([]models.Attachment, error) {
	attachments, err := s.attachmentRepo.ListByTaskID(taskID)
	if err != nil {
		return nil, fmt.Errorf("failed to list attachments: %w", err)
	}
	return attachments, nil
}

// DeleteAttachment removes attachment metadata.
func (s *AttachmentService) DeleteAttachment(id uint64) error {
	if _, err := s.attachmentRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAttachmentNotFound
		}
		return fmt.Errorf("failed to find attachment: %w", err)
	}

	if err := s.attachmentRepo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete attachment: %w", err)
	}

	return nil
}
