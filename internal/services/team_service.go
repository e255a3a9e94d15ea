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
	ErrTeamNotFound      = errors.New("team not found")
	ErrTeamNameRequired  = errors.New("team name cannot be empty")
	ErrNotTeamOwner      = errors.New("only the team owner can perform this action")
	ErrCannotRemoveOwner = errors.New("cannot remove the team owner from members")
)

// teamPreloads are the relations loaded for full team views.
var teamPreloads = []string{"Owner", "Members", "Members.User", "Projects"}

// TeamService handles team membership and ownership authority.
type TeamService struct {
	teamRepo repository.TeamRepository
	userRepo repository.UserRepository
}

// NewTeamService creates a new TeamService.
func NewTeamService(teamRepo repository.TeamRepository, userRepo repository.UserRepository) *TeamService {
	return &TeamService{
		teamRepo: teamRepo,
		userRepo: userRepo,
	}
}

// CreateTeamInput represents parameters to create a new team.
type CreateTeamInput struct {
	Name        string
	Description string
}

// CreateTeam creates a team owned by the actor. The owner becomes the first
// member in the same transaction, so owner ∈ members holds from the start.
func (s *TeamService) CreateTeam(input CreateTeamInput, actor *models.User) (*models.Team, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, ErrTeamNameRequired
	}

	team := &models.Team{
		Name:        input.Name,
		Description: input.Description,
		OwnerID:     actor.ID,
		Active:      true,
	}

	member := &models.TeamMember{
		UserID:   actor.ID,
		JoinedAt: time.Now(),
	}

	if err := s.teamRepo.CreateWithOwner(team, member); err != nil {
		return nil, fmt.Errorf("failed to create team: %w", err)
	}

	return s.teamRepo.FindByID(team.ID, teamPreloads...)
}

// GetTeam returns a team with its owner, members and projects.
func (s *TeamService) GetTeam(id uint64) (*models.Team, error) {
	team, err := s.teamRepo.FindByID(id, teamPreloads...)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to find team: %w", err)
	}

	return team, nil
}

// ListTeams returns all teams.
func (s *TeamService) ListTeams() ([]models.Team, error) {
	teams, err := s.teamRepo.List()
	if err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}
	return teams, nil
}

// ListTeamsForMember returns the teams a user is a member of.
func (s *TeamService) ListTeamsForMember(userID uint64) ([]models.Team, error) {
	teams, err := s.teamRepo.ListByMemberID(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}
	return teams, nil
}

// UpdateTeamInput represents a partial team update. Nil fields are left unchanged.
type UpdateTeamInput struct {
	Name        *string
	Description *string
	Active      *bool
}

// UpdateTeam applies a partial update. Only the owner may mutate a team.
func (s *TeamService) UpdateTeam(id uint64, input UpdateTeamInput, actor *models.User) (*models.Team, error) {
	team, err := s.teamRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to find team: %w", err)
	}

	if team.OwnerID != actor.ID {
		return nil, ErrNotTeamOwner
	}

	if input.Name != nil {
		if strings.TrimSpace(*input.Name) == "" {
			return nil, ErrTeamNameRequired
		}
		team.Name = *input.Name
	}
	if input.Description != nil {
		team.Description = *input.Description
	}
	if input.Active != nil {
		team.Active = *input.Active
	}

	if err := s.teamRepo.Update(team); err != nil {
		return nil, fmt.Errorf("failed to update team: %w", err)
	}

	return s.teamRepo.FindByID(team.ID, teamPreloads...)
}

// DeleteTeam removes a team and its membership rows. Only the owner may delete.
func (s *TeamService) DeleteTeam(id uint64, actor *models.User) error {
	team, err := s.teamRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTeamNotFound
		}
		return fmt.Errorf("failed to find team: %w", err)
	}

	if team.OwnerID != actor.ID {
		return ErrNotTeamOwner
	}

	if err := s.teamRepo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete team: %w", err)
	}

	return nil
}

// AddMember adds a user to the team. Adding an existing member is a no-op.
func (s *TeamService) AddMember(teamID, userID uint64, actor *models.User) (*models.Team, error) {
	team, err := s.teamRepo.FindByID(teamID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to find team: %w", err)
	}

	if team.OwnerID != actor.ID {
		return nil, ErrNotTeamOwner
	}

	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if _, err := s.teamRepo.FindMember(teamID, user.ID); err == nil {
		// Already a member, set semantics
		return s.teamRepo.FindByID(teamID, teamPreloads...)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check membership: %w", err)
	}

	member := &models.TeamMember{
		TeamID:   teamID,
		UserID:   user.ID,
		JoinedAt: time.Now(),
	}

	if err := s.teamRepo.AddMember(member); err != nil {
		return nil, fmt.Errorf("failed to add member: %w", err)
	}

	return s.teamRepo.FindByID(teamID, teamPreloads...)
}

// RemoveMember removes a user from the team. The owner can never be removed;
// removing a user who is not a member succeeds without effect.
func (s *TeamService) RemoveMember(teamID, userID uint64, actor *models.User) (*models.Team, error) {
	team, err := s.teamRepo.FindByID(teamID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to find team: %w", err)
	}

	if team.OwnerID != actor.ID {
		return nil, ErrNotTeamOwner
	}

	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if user.ID == team.OwnerID {
		return nil, ErrCannotRemoveOwner
	}

	if err := s.teamRepo.RemoveMember(teamID, user.ID); err != nil {
		return nil, fmt.Errorf("failed to remove member: %w", err)
	}

	return s.teamRepo.FindByID(teamID, teamPreloads...)
}
