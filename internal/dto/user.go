package dto

import (
	"time"

	"github.com/tmihalic/workboard-api/internal/models"
)

// UserResponse represents a user in API responses. Credential material is
// never projected.
type UserResponse struct {
	ID             uint64          `json:"id"`
	Username       string          `json:"username"`
	Email          string          `json:"email"`
	FullName       string          `json:"full_name,omitempty"`
	Phone          string          `json:"phone,omitempty"`
	ProfilePicture string          `json:"profile_picture,omitempty"`
	Role           models.UserRole `json:"role"`
	Active         bool            `json:"active"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// ToUserResponse converts a User model to UserResponse. Nil in, nil out.
func ToUserResponse(user *models.User) *UserResponse {
	if user == nil {
		return nil
	}

	return &UserResponse{
		ID:             user.ID,
		Username:       user.Username,
		Email:          user.Email,
		FullName:       user.FullName,
		Phone:          user.Phone,
		ProfilePicture: user.ProfilePicture,
		Role:           user.Role,
		Active:         user.Active,
		CreatedAt:      user.CreatedAt,
		UpdatedAt:      user.UpdatedAt,
	}
}

// ToUserResponses converts a slice of User models
func ToUserResponses(users []models.User) []UserResponse {
	responses := make([]UserResponse, len(users))
	for i := range users {
		responses[i] = *ToUserResponse(&users[i])
	}
	return responses
}
