package dto

import (
	"time"

	"github.com/tmihalic/workboard-api/internal/models"
)

// TeamResponse represents a team in API responses
type TeamResponse struct {
	ID           uint64         `json:"id"`
	Name         string         `json:"name"`
	Description  string         `json:"description"`
	Owner        *UserResponse  `json:"owner,omitempty"`
	Members      []UserResponse `json:"members,omitempty"`
	MemberCount  int            `json:"member_count"`
	ProjectCount int            `json:"project_count"`
	Active       bool           `json:"active"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

// ToTeamResponse converts a Team model to TeamResponse. Member and project
// counts are derived from the loaded relations.
func ToTeamResponse(team *models.Team) *TeamResponse {
	if team == nil {
		return nil
	}

	response := &TeamResponse{
		ID:           team.ID,
		Name:         team.Name,
		Description:  team.Description,
		MemberCount:  len(team.Members),
		ProjectCount: len(team.Projects),
		Active:       team.Active,
		CreatedAt:    team.CreatedAt,
		UpdatedAt:    team.UpdatedAt,
	}

	// Include owner if preloaded
	if team.Owner.ID != 0 {
		response.Owner = ToUserResponse(&team.Owner)
	}

	if len(team.Members) > 0 {
		response.Members = make([]UserResponse, 0, len(team.Members))
		for i := range team.Members {
			if team.Members[i].User.ID == 0 {
				continue
			}
			response.Members = append(response.Members, *ToUserResponse(&team.Members[i].User))
		}
	}

	return response
}

// ToTeamResponses converts a slice of Team models
func ToTeamResponses(teams []models.Team) []TeamResponse {
	responses := make([]TeamResponse, len(teams))
	for i := range teams {
		responses[i] = *ToTeamResponse(&teams[i])
	}
	return responses
}
