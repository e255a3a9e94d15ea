package dto

import (
	"time"

	"github.com/tmihalic/workboard-api/internal/models"
)

// ProjectResponse represents a project in API responses
type ProjectResponse struct {
	ID          uint64               `json:"id"`
	Name        string               `json:"name"`
	Description string               `json:"description"`
	TeamID      uint64               `json:"team_id"`
	TeamName    string               `json:"team_name,omitempty"`
	Status      models.ProjectStatus `json:"status"`
	TaskCount   int                  `json:"task_count"`
	StartDate   *time.Time           `json:"start_date"`
	EndDate     *time.Time           `json:"end_date"`
	CreatedAt   time.Time            `json:"created_at"`
	UpdatedAt   time.Time            `json:"updated_at"`
}

// ToProjectResponse converts a Project model to ProjectResponse
func ToProjectResponse(project *models.Project) *ProjectResponse {
	if project == nil {
		return nil
	}

	response := &ProjectResponse{
		ID:          project.ID,
		Name:        project.Name,
		Description: project.Description,
		TeamID:      project.TeamID,
		Status:      project.Status,
		TaskCount:   len(project.Tasks),
		StartDate:   project.StartDate,
		EndDate:     project.EndDate,
		CreatedAt:   project.CreatedAt,
		UpdatedAt:   project.UpdatedAt,
	}

	// Include team name if preloaded
	if project.Team.ID != 0 {
		response.TeamName = project.Team.Name
	}

	return response
}

// ToProjectResponses converts a slice of Project models
func ToProjectResponses(projects []models.Project) []ProjectResponse {
	responses := make([]ProjectResponse, len(projects))
	for i := range projects {
		responses[i] = *ToProjectResponse(&projects[i])
	}
	return responses
}
