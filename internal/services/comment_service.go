package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tmihalic/workboard-api/internal/models"
	"github.com/tmihalic/workboard-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrCommentNotFound        = errors.New("comment not found")
	ErrCommentContentRequired = errors.New("comment content cannot be empty")
)

// CommentService handles the append-only discussion attached to a task.
type CommentService struct {
	commentRepo repository.CommentRepository
	taskRepo    repository.TaskRepository
}

// NewCommentService creates a new CommentService.
func NewCommentService(commentRepo repository.CommentRepository, taskRepo repository.TaskRepository) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		taskRepo:    taskRepo,
	}
}

// AddComment appends a comment to a task. The author is always the actor.
func (s *CommentService) AddComment(taskID uint64, content string, actor *models.User) (*models.Comment, error) {
	if strings.TrimSpace(content) == "" {
		return nil, ErrCommentContentRequired
	}

	if _, err := s.taskRepo.FindByID(taskID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	comment := &models.Comment{
		Content:  content,
		TaskID:   taskID,
		AuthorID: actor.ID,
	}

	if err := s.commentRepo.Create(comment); err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}

	return s.commentRepo.FindByID(comment.ID)
}

// ListCommentsByTask returns a task's comments, most recent first.
func (s *CommentService) ListCommentsByTask(taskID uint64) ([]models.Comment, error) {
	comments, err := s.commentRepo.ListByTaskID(taskID)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	return comments, nil
}

// DeleteComment removes a comment. Any authenticated actor may delete any
// comment; there is no author check.
func (s *CommentService) DeleteComment(id uint64) error {
	if _, err := s.commentRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCommentNotFound
		}
		return fmt.Errorf("failed to find comment: %w", err)
	}

	if err := s.commentRepo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}

	return nil
}
