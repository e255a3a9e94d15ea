package dto

import (
	"time"

	"github.com/tmihalic/workboard-api/internal/models"
)

// AttachmentResponse represents attachment metadata in API responses
type AttachmentResponse struct {
	ID         uint64        `json:"id"`
	Filename   string        `json:"filename"`
	FilePath   string        `json:"file_path"`
	FileType   string        `json:"file_type"`
	FileSize   int64         `json:"file_size"`
	TaskID     uint64        `json:"task_id"`
	UploadedBy *UserResponse `json:"uploaded_by,omitempty"`
	UploadedAt time.Time     `json:"uploaded_at"`
}

// ToAttachmentResponse converts an Attachment model to AttachmentResponse
func ToAttachmentResponse(attachment *models.Attachment) *AttachmentResponse {
	if attachment == nil {
		return nil
	}

	response := &AttachmentResponse{
		ID:         attachment.ID,
		Filename:   attachment.Filename,
		FilePath:   attachment.FilePath,
		FileType:   attachment.FileType,
		FileSize:   attachment.FileSize,
		TaskID:     attachment.TaskID,
		UploadedAt: attachment.UploadedAt,
	}

	if attachment.UploadedBy.ID != 0 {
		response.UploadedBy = ToUserResponse(&attachment.UploadedBy)
	}

	return response
}

// ToAttachmentResponses converts a slice of Attachment models
func ToAttachmentResponses(attachments []models.Attachment) []AttachmentResponse {
	responses := make([]AttachmentResponse, len(attachments))
	for i := range attachments {
		responses[i] = *ToAttachmentResponse(&attachments[i])
	}
	return responses
}
