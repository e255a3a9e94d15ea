package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/tmihalic/workboard-api/internal/constants"
	"github.com/tmihalic/workboard-api/internal/models"
	"github.com/tmihalic/workboard-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrTaskNotFound           = errors.New("task not found")
	ErrTitleRequired          = errors.New("title is required")
	ErrTitleEmpty             = errors.New("title cannot be empty")
	ErrAIServiceNotConfigured = errors.New("AI service is not configured")
	ErrAINoTasksGenerated     = errors.New("AI did not generate any tasks")
	ErrAINoValidTasks         = errors.New("no valid tasks could be created from AI output")
)

// taskPreloads are the relations loaded for full task views.
var taskPreloads = []string{"Creator", "Assignee", "Project", "Comments", "Attachments"}

// TaskService handles the task lifecycle, assignment and search.
type TaskService struct {
	taskRepo    repository.TaskRepository
	projectRepo repository.ProjectRepository
	userRepo    repository.UserRepository
	aiService   *AIService
}

// NewTaskService creates a new TaskService
func NewTaskService(taskRepo repository.TaskRepository, projectRepo repository.ProjectRepository, userRepo repository.UserRepository, aiService *AIService) *TaskService {
	return &TaskService{
		taskRepo:    taskRepo,
		projectRepo: projectRepo,
		userRepo:    userRepo,
		aiService:   aiService,
	}
}

// CreateTaskInput represents input for creating a task
type CreateTaskInput struct {
	Title       string
	Description string
	ProjectID   *uint64
	AssigneeID  *uint64
	Status      models.TaskStatus
	Priority    models.TaskPriority
	DueDate     *time.Time
}

// CreateTask creates a new task. The creator is always the actor and is not
// settable by the request.
func (s *TaskService) CreateTask(input CreateTaskInput, actor *models.User) (*models.Task, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, ErrTitleRequired
	}

	if input.ProjectID != nil {
		if _, err := s.projectRepo.FindByID(*input.ProjectID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrProjectNotFound
			}
			return nil, fmt.Errorf("failed to find project: %w", err)
		}
	}

	if input.AssigneeID != nil {
		if _, err := s.userRepo.FindByID(*input.AssigneeID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrUserNotFound
			}
			return nil, fmt.Errorf("failed to find assignee: %w", err)
		}
	}

	if input.Status == "" {
		input.Status = models.TaskStatusOpen
	}
	if input.Priority == "" {
		input.Priority = models.TaskPriorityMedium
	}

	task := &models.Task{
		Title:       input.Title,
		Description: input.Description,
		ProjectID:   input.ProjectID,
		CreatorID:   actor.ID,
		AssigneeID:  input.AssigneeID,
		Status:      input.Status,
		Priority:    input.Priority,
		DueDate:     input.DueDate,
	}

	if err := s.taskRepo.Create(task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return s.taskRepo.FindByID(task.ID, taskPreloads...)
}

// GetTask returns a task with related data
func (s *TaskService) GetTask(taskID uint64) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(taskID, taskPreloads...)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	return task, nil
}

// ListTasks returns all tasks
func (s *TaskService) ListTasks() ([]models.Task, error) {
	tasks, err := s.taskRepo.List(repository.TaskFilter{})
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

// ListTasksByStatus returns tasks in the given status
func (s *TaskService) ListTasksByStatus(status models.TaskStatus) ([]models.Task, error) {
	tasks, err := s.taskRepo.List(repository.TaskFilter{Status: &status})
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

// ListTasksForActor returns the tasks the actor created or is assigned to.
// A task matching both appears once.
func (s *TaskService) ListTasksForActor(actor *models.User) ([]models.Task, error) {
	tasks, err := s.taskRepo.List(repository.TaskFilter{ActorID: &actor.ID})
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

// SearchTasks matches tasks whose title or description contains the keyword,
// case-insensitively. An empty keyword matches everything.
func (s *TaskService) SearchTasks(keyword string) ([]models.Task, error) {
	tasks, err := s.taskRepo.List(repository.TaskFilter{Keyword: keyword})
	if err != nil {
		return nil, fmt.Errorf("failed to search tasks: %w", err)
	}
	return tasks, nil
}

// UpdateTaskInput represents a partial task update. Nil fields are left unchanged.
type UpdateTaskInput struct {
	Title       *string
	Description *string
	Status      *models.TaskStatus
	Priority    *models.TaskPriority
	DueDate     *time.Time
	AssigneeID  *uint64
}

// UpdateTask applies a partial update. Any status may follow any other; a
// transition into COMPLETED stamps CompletedAt, and CompletedAt is never
// cleared when the status later moves away.
func (s *TaskService) UpdateTask(taskID uint64, input UpdateTaskInput) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	if input.Title != nil {
		if strings.TrimSpace(*input.Title) == "" {
			return nil, ErrTitleEmpty
		}
		task.Title = *input.Title
	}
	if input.Description != nil {
		task.Description = *input.Description
	}
	if input.Status != nil {
		task.Status = *input.Status
		if *input.Status == models.TaskStatusCompleted {
			now := time.Now()
			task.CompletedAt = &now
		}
	}
	if input.Priority != nil {
		task.Priority = *input.Priority
	}
	if input.DueDate != nil {
		task.DueDate = input.DueDate
	}
	if input.AssigneeID != nil {
		assignee, err := s.userRepo.FindByID(*input.AssigneeID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrUserNotFound
			}
			return nil, fmt.Errorf("failed to find assignee: %w", err)
		}
		task.AssigneeID = &assignee.ID
	}

	if err := s.taskRepo.Update(task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	return s.taskRepo.FindByID(task.ID, taskPreloads...)
}

// AssignTask assigns a task to a user, replacing any existing assignee.
func (s *TaskService) AssignTask(taskID, assigneeID uint64) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	assignee, err := s.userRepo.FindByID(assigneeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find assignee: %w", err)
	}

	task.AssigneeID = &assignee.ID

	if err := s.taskRepo.Update(task); err != nil {
		return nil, fmt.Errorf("failed to assign task: %w", err)
	}

	return s.taskRepo.FindByID(task.ID, taskPreloads...)
}

// MarkCompleted forces a task into COMPLETED and stamps CompletedAt,
// regardless of the current status.
func (s *TaskService) MarkCompleted(taskID uint64) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	now := time.Now()
	task.Status = models.TaskStatusCompleted
	task.CompletedAt = &now

	if err := s.taskRepo.Update(task); err != nil {
		return nil, fmt.Errorf("failed to complete task: %w", err)
	}

	return s.taskRepo.FindByID(task.ID, taskPreloads...)
}

// DeleteTask deletes a task and all of its comments and attachments.
func (s *TaskService) DeleteTask(taskID uint64) error {
	if _, err := s.taskRepo.FindByID(taskID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTaskNotFound
		}
		return fmt.Errorf("failed to find task: %w", err)
	}

	if err := s.taskRepo.Delete(taskID); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	return nil
}

// GenerateTasksInput represents input for AI task generation
type GenerateTasksInput struct {
	Text string
}

// GenerateTasks uses AI to extract task suggestions from free text. The
// suggestions are returned to the caller, never persisted.
func (s *TaskService) GenerateTasks(ctx context.Context, input GenerateTasksInput) ([]GeneratedTask, error) {
	if s.aiService == nil {
		return nil, ErrAIServiceNotConfigured
	}

	aiTasks, err := s.aiService.GenerateTasksFromText(ctx, input.Text)
	if err != nil {
		return nil, fmt.Errorf("failed to generate tasks: %w", err)
	}

	if len(aiTasks) == 0 {
		return nil, ErrAINoTasksGenerated
	}
	if len(aiTasks) > constants.MaxGeneratedTasks {
		return nil, fmt.Errorf("AI generated too many tasks (max %d)", constants.MaxGeneratedTasks)
	}

	validTasks := make([]GeneratedTask, 0, len(aiTasks))
	cutoff := time.Now().Add(-24 * time.Hour)
	for _, aiTask := range aiTasks {
		if strings.TrimSpace(aiTask.Title) == "" {
			continue
		}

		if aiTask.Priority == "" {
			aiTask.Priority = models.TaskPriorityMedium
		}

		if aiTask.DueDate != nil && aiTask.DueDate.Before(cutoff) {
			aiTask.DueDate = nil
		}

		validTasks = append(validTasks, aiTask)
	}

	if len(validTasks) == 0 {
		return nil, ErrAINoValidTasks
	}

	return validTasks, nil
}
