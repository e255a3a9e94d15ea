package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/tmihalic/workboard-api/internal/dto"
	apierrors "github.com/tmihalic/workboard-api/internal/errors"
	"github.com/tmihalic/workboard-api/internal/middleware"
	"github.com/tmihalic/workboard-api/internal/models"
	"github.com/tmihalic/workboard-api/internal/services"
)

// TaskHandler coordinates task-related HTTP handlers.
type TaskHandler struct {
	taskService *services.TaskService
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(taskService *services.TaskService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
	}
}

// CreateTask creates a new task. The actor becomes the creator.
func (h *TaskHandler) CreateTask(c *gin.Context) {
	actor, exists := middleware.GetActor(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type CreateTaskRequest struct {
		Title       string              `json:"title" binding:"required"`
		Description string              `json:"description"`
		ProjectID   *uint64             `json:"project_id"`
		AssigneeID  *uint64             `json:"assignee_id"`
		Status      models.TaskStatus   `json:"status"`
		Priority    models.TaskPriority `json:"priority"`
		DueDate     *time.Time          `json:"due_date"`
	}

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	task, err := h.taskService.CreateTask(services.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		ProjectID:   req.ProjectID,
		AssigneeID:  req.AssigneeID,
		Status:      req.Status,
		Priority:    req.Priority,
		DueDate:     req.DueDate,
	}, actor)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToTaskResponse(task))
}

// GetTask returns a task with its relations.
func (h *TaskHandler) GetTask(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid task ID")
		return
	}

	task, err := h.taskService.GetTask(id)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskResponse(task))
}

// ListTasks returns tasks, optionally filtered by ?status= or ?search=.
func (h *TaskHandler) ListTasks(c *gin.Context) {
	if keyword := c.Query("search"); keyword != "" {
		tasks, err := h.taskService.SearchTasks(keyword)
		if err != nil {
			apierrors.InternalError(c, "Failed to search tasks")
			return
		}
		c.JSON(http.StatusOK, dto.ToTaskResponses(tasks))
		return
	}

	if statusParam := c.Query("status"); statusParam != "" {
		status := models.TaskStatus(statusParam)
		switch status {
		case models.TaskStatusOpen, models.TaskStatusInProgress,
			models.TaskStatusCompleted, models.TaskStatusCancelled:
		default:
			apierrors.BadRequest(c, "Invalid task status")
			return
		}

		tasks, err := h.taskService.ListTasksByStatus(status)
		if err != nil {
			apierrors.InternalError(c, "Failed to list tasks")
			return
		}
		c.JSON(http.StatusOK, dto.ToTaskResponses(tasks))
		return
	}

	tasks, err := h.taskService.ListTasks()
	if err != nil {
		apierrors.InternalError(c, "Failed to list tasks")
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskResponses(tasks))
}

// ListMyTasks returns the tasks the actor created or is assigned to.
func (h *TaskHandler) ListMyTasks(c *gin.Context) {
	actor, exists := middleware.GetActor(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	tasks, err := h.taskService.ListTasksForActor(actor)
	if err != nil {
		apierrors.InternalError(c, "Failed to list tasks")
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskResponses(tasks))
}

// UpdateTask applies a partial update to a task.
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid task ID")
		return
	}

	type UpdateTaskRequest struct {
		Title       *string              `json:"title"`
		Description *string              `json:"description"`
		Status      *models.TaskStatus   `json:"status"`
		Priority    *models.TaskPriority `json:"priority"`
		DueDate     *time.Time           `json:"due_date"`
		AssigneeID  *uint64              `json:"assignee_id"`
	}

	var req UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	task, err := h.taskService.UpdateTask(id, services.UpdateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Priority:    req.Priority,
		DueDate:     req.DueDate,
		AssigneeID:  req.AssigneeID,
	})
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskResponse(task))
}

// AssignTask assigns a task to a user, replacing any existing assignee.
func (h *TaskHandler) AssignTask(c *gin.Context) {
	taskID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid task ID")
		return
	}

	assigneeID, err := strconv.ParseUint(c.Param("assignee_id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid assignee ID")
		return
	}

	task, err := h.taskService.AssignTask(taskID, assigneeID)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskResponse(task))
}

// CompleteTask marks a task as completed.
func (h *TaskHandler) CompleteTask(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid task ID")
		return
	}

	task, err := h.taskService.MarkCompleted(id)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskResponse(task))
}

// DeleteTask removes a task together with its comments and attachments.
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid task ID")
		return
	}

	if err := h.taskService.DeleteTask(id); err != nil {
		respondTaskError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// GenerateTasks extracts task suggestions from free text using AI. The
// suggestions are returned to the caller, never persisted.
func (h *TaskHandler) GenerateTasks(c *gin.Context) {
	type GenerateTasksRequest struct {
		Text string `json:"text" binding:"required"`
	}

	var req GenerateTasksRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	tasks, err := h.taskService.GenerateTasks(c.Request.Context(), services.GenerateTasksInput{
		Text: req.Text,
	})
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"tasks": tasks,
	})
}

func respondTaskError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrTaskNotFound),
		errors.Is(err, services.ErrProjectNotFound),
		errors.Is(err, services.ErrUserNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrTitleRequired),
		errors.Is(err, services.ErrTitleEmpty):
		apierrors.Validation(c, err.Error())
	case errors.Is(err, services.ErrAIServiceNotConfigured):
		apierrors.InternalError(c, err.Error())
	case errors.Is(err, services.ErrAINoTasksGenerated),
		errors.Is(err, services.ErrAINoValidTasks):
		apierrors.Validation(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
