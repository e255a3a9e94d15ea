package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/tmihalic/workboard-api/internal/dto"
	apierrors "github.com/tmihalic/workboard-api/internal/errors"
	"github.com/tmihalic/workboard-api/internal/middleware"
	"github.com/tmihalic/workboard-api/internal/services"
)

// CommentHandler coordinates comment-related HTTP handlers.
type CommentHandler struct {
	commentService *services.CommentService
}

// NewCommentHandler creates a new CommentHandler.
func NewCommentHandler(commentService *services.CommentService) *CommentHandler {
	return &CommentHandler{
		commentService: commentService,
	}
}

// AddComment appends a comment to a task. The actor becomes the author.
func (h *CommentHandler) AddComment(c *gin.Context) {
	actor, exists := middleware.GetActor(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	taskID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid task ID")
		return
	}

	type AddCommentRequest struct {
		Content string `json:"content" binding:"required"`
	}

	var req AddCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	comment, err := h.commentService.AddComment(taskID, req.Content, actor)
	if err != nil {
		respondCommentError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToCommentResponse(comment))
}

// ListComments returns a task's comments, most recent first.
func (h *CommentHandler) ListComments(c *gin.Context) {
	taskID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid task ID")
		return
	}

	comments, err := h.commentService.ListCommentsByTask(taskID)
	if err != nil {
		apierrors.InternalError(c, "Failed to list comments")
		return
	}

	c.JSON(http.StatusOK, dto.ToCommentResponses(comments))
}

// DeleteComment removes a comment.
func (h *CommentHandler) DeleteComment(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid comment ID")
		return
	}

	if err := h.commentService.DeleteComment(id); err != nil {
		respondCommentError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func respondCommentError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrCommentNotFound),
		errors.Is(err, services.ErrTaskNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrCommentContentRequired):
		apierrors.Validation(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
