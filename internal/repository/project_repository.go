package repository

import (
	"github.com/tmihalic/workboard-api/internal/models"
	"gorm.io/gorm"
)

// GormProjectRepository is a GORM implementation of ProjectRepository
type GormProjectRepository struct {
	db *gorm.DB
}

// NewProjectRepository creates a new ProjectRepository
func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &GormProjectRepository{db: db}
}

// Create creates a new project
func (r *GormProjectRepository) Create(project *models.Project) error {
	return r.db.Create(project).Error
}

// FindByID finds a project by ID with optional preloading
func (r *GormProjectRepository) FindByID(id uint64, preload ...string) (*models.Project, error) {
	var project models.Project
	query := r.db

	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.First(&project, id).Error; err != nil {
		return nil, err
	}

	return &project, nil
}

// List returns all projects
func (r *GormProjectRepository) List() ([]models.Project, error) {
	var projects []models.Project
	if err := r.db.
		Preload("Team").
		Preload("Tasks").
		Find(&projects).Error; err != nil {
		return nil, err
	}
	return projects, nil
}

// ListByTeamID returns projects owned by a team
func (r *GormProjectRepository) ListByTeamID(teamID uint64) ([]models.Project, error) {
	var projects []models.Project
	if err := r.db.
		Where("team_id = ?", teamID).
		Preload("Team").
		Preload("Tasks").
		Find(&projects).Error; err != nil {
		return nil, err
	}
	return projects, nil
}

// Update updates a project
func (r *GormProjectRepository) Update(project *models.Project) error {
	return r.db.Save(project).Error
}

// Delete deletes a project
func (r *GormProjectRepository) Delete(id uint64) error {
	return r.db.Delete(&models.Project{}, id).Error
}
