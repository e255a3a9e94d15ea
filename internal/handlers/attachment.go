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

// AttachmentHandler coordinates attachment-related HTTP handlers.
type AttachmentHandler struct {
	attachmentService *services.AttachmentService
}

// NewAttachmentHandler creates a new AttachmentHandler.
func NewAttachmentHandler(attachmentService *services.AttachmentService) *AttachmentHandler {
	return &AttachmentHandler{
		attachmentService: attachmentService,
	}
}

// AddAttachment records attachment metadata on a task. The actor becomes
// the uploader.
func (h *AttachmentHandler) AddAttachment(c *gin.Context) {
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

	type AddAttachmentRequest struct {
		Filename string `json:"filename" binding:"required"`
		FileType string `json:"file_type"`
		FileSize int64  `json:"file_size"`
	}

	var req AddAttachmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	attachment, err := h.attachmentService.AddAttachment(taskID, services.AddAttachmentInput{
		Filename: req.Filename,
		FileType: req.FileType,
		FileSize: req.FileSize,
	}, actor)
	if err != nil {
		respondAttachmentError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToAttachmentResponse(attachment))
}

// ListAttachments returns a task's attachments.
func (h *AttachmentHandler) ListAttachments(c *gin.Context) {
	taskID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid task ID")
		return
	}

	attachments, err := h.attachmentService.ListAttachmentsByTask(taskID)
	if err != nil {
		apierrors.InternalError(c, "Failed to list attachments")
		return
	}

	c.JSON(http.StatusOK, dto.ToAttachmentResponses(attachments))
}

// DeleteAttachment removes attachment metadata.
func (h *AttachmentHandler) DeleteAttachment(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid attachment ID")
		return
	}

	if err := h.attachmentService.DeleteAttachment(id); err != nil {
		respondAttachmentError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func respondAttachmentError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrAttachmentNotFound),
		errors.Is(err, services.ErrTaskNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrAttachmentNameRequired):
		apierrors.Validation(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
