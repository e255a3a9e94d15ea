package dto

import (
	"time"

	"github.com/tmihalic/workboard-api/internal/models"
)

// TaskResponse represents a task in API responses
type TaskResponse struct {
	ID              uint64              `json:"id"`
	Title           string              `json:"title"`
	Description     string              `json:"description"`
	ProjectID       *uint64             `json:"project_id"`
	ProjectName     string              `json:"project_name,omitempty"`
	Creator         *UserResponse       `json:"creator,omitempty"`
	Assignee        *UserResponse       `json:"assignee,omitempty"`
	Status          models.TaskStatus   `json:"status"`
	Priority        models.TaskPriority `json:"priority"`
	DueDate         *time.Time          `json:"due_date"`
	CompletedAt     *time.Time          `json:"completed_at"`
	CommentCount    int                 `json:"comment_count"`
	AttachmentCount int                 `json:"attachment_count"`
	CreatedAt       time.Time           `json:"created_at"`
	UpdatedAt       time.Time           `json:"updated_at"`
}

// ToTaskResponse converts a Task model to TaskResponse. Comment and
// attachment counts are the sizes of the loaded owned collections; absent
// nested entities (project-less tasks, unassigned tasks) are tolerated.
func ToTaskResponse(task *models.Task) *TaskResponse {
	if task == nil {
		return nil
	}

	response := &TaskResponse{
		ID:              task.ID,
		Title:           task.Title,
		Description:     task.Description,
		ProjectID:       task.ProjectID,
		Status:          task.Status,
		Priority:        task.Priority,
		DueDate:         task.DueDate,
		CompletedAt:     task.CompletedAt,
		CommentCount:    len(task.Comments),
		AttachmentCount: len(task.Attachments),
		CreatedAt:       task.CreatedAt,
		UpdatedAt:       task.UpdatedAt,
	}

	if task.Project != nil {
		response.ProjectName = task.Project.Name
	}

	// Include creator if preloaded
	if task.Creator.ID != 0 {
		response.Creator = ToUserResponse(&task.Creator)
	}

	if task.Assignee != nil {
		response.Assignee = ToUserResponse(task.Assignee)
	}

	return response
}

// ToTaskResponses converts a slice of Task models
func ToTaskResponses(tasks []models.Task) []TaskResponse {
	responses := make([]TaskResponse, len(tasks))
	for i := range tasks {
		responses[i] = *ToTaskResponse(&tasks[i])
	}
	return responses
}
