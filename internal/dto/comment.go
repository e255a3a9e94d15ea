package dto

import (
	"time"

	"github.com/tmihalic/workboard-api/internal/models"
)

// CommentResponse represents a comment in API responses
type CommentResponse struct {
	ID        uint64        `json:"id"`
	Content   string        `json:"content"`
	TaskID    uint64        `json:"task_id"`
	Author    *UserResponse `json:"author,omitempty"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// ToCommentResponse converts a Comment model to CommentResponse
func ToCommentResponse(comment *models.Comment) *CommentResponse {
	if comment == nil {
		return nil
	}

	response := &CommentResponse{
		ID:        comment.ID,
		Content:   comment.Content,
		TaskID:    comment.TaskID,
		CreatedAt: comment.CreatedAt,
		UpdatedAt: comment.UpdatedAt,
	}

	// Include author if preloaded
	if comment.Author.ID != 0 {
		response.Author = ToUserResponse(&comment.Author)
	}

	return response
}

// ToCommentResponses converts a slice of Comment models
func ToCommentResponses(comments []models.Comment) []CommentResponse {
	responses := make([]CommentResponse, len(comments))
	for i := range comments {
		responses[i] = *ToCommentResponse(&comments[i])
	}
	return responses
}
