package repository

import (
	"github.com/tmihalic/workboard-api/internal/models"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindActiveByID finds a user by ID, excluding deactivated accounts
	FindActiveByID(id uint64) (*models.User, error)

	// FindByUsername finds a user by username
	FindByUsername(username string) (*models.User, error)

	// FindByEmail finds a user by email
	FindByEmail(email string) (*models.User, error)

	// List returns all users
	List() ([]models.User, error)

	// Update updates a user
	Update(user *models.User) error
}

// TeamRepository defines the interface for team data access
type TeamRepository interface {
	// CreateWithOwner creates a team and the owner's membership atomically
	CreateWithOwner(team *models.Team, member *models.TeamMember) error

	// FindByID finds a team by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Team, error)

	// List returns all teams
	List() ([]models.Team, error)

	// ListByMemberID returns teams the user is a member of
	ListByMemberID(userID uint64) ([]models.Team, error)

	// Update updates a team
	Update(team *models.Team) error

	// Delete deletes a team and its membership rows
	Delete(id uint64) error

	// AddMember adds a member to a team
	AddMember(member *models.TeamMember) error

	// RemoveMember removes a member from a team
	RemoveMember(teamID, userID uint64) error

	// FindMember finds a specific team membership
	FindMember(teamID, userID uint64) (*models.TeamMember, error)

	// ListMembers lists all members of a team
	ListMembers(teamID uint64) ([]models.TeamMember, error)
}

// ProjectRepository defines the interface for project data access
type ProjectRepository interface {
	// Create creates a new project
	Create(project *models.Project) error

	// FindByID finds a project by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Project, error)

	// List returns all projects
	List() ([]models.Project, error)

	// ListByTeamID returns projects owned by a team
	ListByTeamID(teamID uint64) ([]models.Project, error)

	// Update updates a project
	Update(project *models.Project) error

	// Delete deletes a project
	Delete(id uint64) error
}

// TaskFilter holds filtering options for listing tasks
type TaskFilter struct {
	Status  *models.TaskStatus
	ActorID *uint64 // matches tasks created by or assigned to the user
	Keyword string  // case-insensitive substring match on title or description
}

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// Create creates a new task
	Create(task *models.Task) error

	// FindByID finds a task by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Task, error)

	// List retrieves tasks matching the filter
	List(filter TaskFilter) ([]models.Task, error)

	// Update updates a task
	Update(task *models.Task) error

	// Delete deletes a task and its owned comments and attachments
	Delete(id uint64) error
}

// CommentRepository defines the interface for comment data access
type CommentRepository interface {
	// Create creates a new comment
	Create(comment *models.Comment) error

	// FindByID finds a comment by ID
	FindByID(id uint64) (*models.Comment, error)

	// ListByTaskID lists comments on a task, most recent first
	ListByTaskID(taskID uint64) ([]models.Comment, error)

	// Delete deletes a comment
	Delete(id uint64) error
}

// AttachmentRepository defines the interface for attachment metadata access
type AttachmentRepository interface {
	// Create records a new attachment
	Create(attachment *models.Attachment) error

	// FindByID finds an attachment by ID
	FindByID(id uint64) (*models.Attachment, error)

	// ListByTaskID lists attachments on a task
	ListByTaskID(taskID uint64) ([]models.Attachment, error)

	// Delete deletes an attachment
	Delete(id uint64) error
}
