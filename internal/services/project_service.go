package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/tmihalic/workboard-api/internal/models"
	"github.com/tmihalic/workboard-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrProjectNotFound     = errors.New("project not found")
	ErrProjectNameRequired = errors.New("project name cannot be empty")
)

// projectPreloads are the relations loaded for full project views.
var projectPreloads = []string{"Team", "Tasks"}

// ProjectService provides project CRUD scoped to a team. Mutations require
// an authenticated actor but no team-ownership check at this layer.
type ProjectService struct {
	projectRepo repository.ProjectRepository
	teamRepo    repository.TeamRepository
}

// NewProjectService creates a new ProjectService.
func NewProjectService(projectRepo repository.ProjectRepository, teamRepo repository.TeamRepository) *ProjectService {
	return &ProjectService{
		projectRepo: projectRepo,
		teamRepo:    teamRepo,
	}
}

// CreateProjectInput represents parameters to create a new project.
type CreateProjectInput struct {
	Name        string
	Description string
	TeamID      uint64
	Status      models.ProjectStatus
	StartDate   *time.Time
	EndDate     *time.Time
}

// CreateProject creates a project under an existing team.
func (s *ProjectService) CreateProject(input CreateProjectInput) (*models.Project, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, ErrProjectNameRequired
	}

	if _, err := s.teamRepo.FindByID(input.TeamID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to find team: %w", err)
	}

	if input.Status == "" {
		input.Status = models.ProjectStatusActive
	}

	project := &models.Project{
		Name:        input.Name,
		Description: input.Description,
		TeamID:      input.TeamID,
		Status:      input.Status,
		StartDate:   input.StartDate,
		EndDate:     input.EndDate,
	}

	if err := s.projectRepo.Create(project); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	return s.projectRepo.FindByID(project.ID, projectPreloads...)
}

// GetProject returns a project with its team and tasks.
func (s *ProjectService) GetProject(id uint64) (*models.Project, error) {
	project, err := s.projectRepo.FindByID(id, projectPreloads...)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}

	return project, nil
}

// ListProjects returns all projects.
func (s *ProjectService) ListProjects() ([]models.Project, error) {
	projects, err := s.projectRepo.List()
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	return projects, nil
}

// ListProjectsByTeam returns the projects owned by a team.
func (s *ProjectService) ListProjectsByTeam(teamID uint64) ([]models.Project, error) {
	projects, err := s.projectRepo.ListByTeamID(teamID)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	return projects, nil
}

// UpdateProjectInput represents a partial project update. Nil fields are left unchanged.
type UpdateProjectInput struct {
	Name        *string
	Description *string
	Status      *models.ProjectStatus
	StartDate   *time.Time
	EndDate     *time.Time
}

// UpdateProject applies a partial update to a project.
func (s *ProjectService) UpdateProject(id uint64, input UpdateProjectInput) (*models.Project, error) {
	project, err := s.projectRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}

	if input.Name != nil {
		if strings.TrimSpace(*input.Name) == "" {
			return nil, ErrProjectNameRequired
		}
		project.Name = *input.Name
	}
	if input.Description != nil {
		project.Description = *input.Description
	}
	if input.Status != nil {
		project.Status = *input.Status
	}
	if input.StartDate != nil {
		project.StartDate = input.StartDate
	}
	if input.EndDate != nil {
		project.EndDate = input.EndDate
	}

	if err := s.projectRepo.Update(project); err != nil {
		return nil, fmt.Errorf("failed to update project: %w", err)
	}

	return s.projectRepo.FindByID(project.ID, projectPreloads...)
}

// DeleteProject removes a project.
func (s *ProjectService) DeleteProject(id uint64) error {
	if _, err := s.projectRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProjectNotFound
		}
		return fmt.Errorf("failed to find project: %w", err)
	}

	if err := s.projectRepo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}

	return nil
}
