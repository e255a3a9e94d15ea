package repository

import (
	"github.com/tmihalic/workboard-api/internal/models"
	"gorm.io/gorm"
)

// GormTeamRepository is a GORM implementation of TeamRepository
type GormTeamRepository struct {
	db *gorm.DB
}

// NewTeamRepository creates a new TeamRepository
func NewTeamRepository(db *gorm.DB) TeamRepository {
	return &GormTeamRepository{db: db}
}

// CreateWithOwner creates a team and the owner's membership in one transaction
func (r *GormTeamRepository) CreateWithOwner(team *models.Team, member *models.TeamMember) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(team).Error; err != nil {
			return err
		}

		member.TeamID = team.ID
		return tx.Create(member).Error
	})
}

// FindByID finds a team by ID with optional preloading
func (r *GormTeamRepository) FindByID(id uint64, preload ...string) (*models.Team, error) {
	var team models.Team
	query := r.db

	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.First(&team, id).Error; err != nil {
		return nil, err
	}

	return &team, nil
}

// List returns all teams
func (r *GormTeamRepository) List() ([]models.Team, error) {
	var teams []models.Team
	if err := r.db.
		Preload("Owner").
		Preload("Members").
		Preload("Members.User").
		Preload("Projects").
		Find(&teams).Error; err != nil {
		return nil, err
	}
	return teams, nil
}

// ListByMemberID returns teams the user is a member of
func (r *GormTeamRepository) ListByMemberID(userID uint64) ([]models.Team, error) {
	var teams []models.Team
	if err := r.db.
		Joins("JOIN team_members ON team_members.team_id = teams.id").
		Where("team_members.user_id = ?", userID).
		Preload("Owner").
		Preload("Members").
		Preload("Members.User").
		Preload("Projects").
		Find(&teams).Error; err != nil {
		return nil, err
	}
	return teams, nil
}

// Update updates a team
func (r *GormTeamRepository) Update(team *models.Team) error {
	return r.db.Save(team).Error
}

// Delete deletes a team and all of its membership rows in a transaction
func (r *GormTeamRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("team_id = ?", id).Delete(&models.TeamMember{}).Error; err != nil {
			return err
		}

		return tx.Delete(&models.Team{}, id).Error
	})
}

// AddMember adds a member to a team
func (r *GormTeamRepository) AddMember(member *models.TeamMember) error {
	return r.db.Create(member).Error
}

// RemoveMember removes a member from a team
func (r *GormTeamRepository) RemoveMember(teamID, userID uint64) error {
	return r.db.Where("team_id = ? AND user_id = ?", teamID, userID).
		Delete(&models.TeamMember{}).Error
}

// FindMember finds a specific team membership
func (r *GormTeamRepository) FindMember(teamID, userID uint64) (*models.TeamMember, error) {
	var member models.TeamMember
	if err := r.db.Where("team_id = ? AND user_id = ?", teamID, userID).
		First(&member).Error; err != nil {
		return nil, err
	}
	return &member, nil
}

// ListMembers lists all members of a team
func (r *GormTeamRepository) ListMembers(teamID uint64) ([]models.TeamMember, error) {
	var members []models.TeamMember
	if err := r.db.Preload("User").
		Where("team_id = ?", teamID).
		Find(&members).Error; err != nil {
		return nil, err
	}
	return members, nil
}
