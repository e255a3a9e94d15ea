package constants

// Context keys
const (
	ContextKeyUserID = "user_id"
	ContextKeyActor  = "current_user"
)

// Validation limits
const (
	MinPasswordLength = 8
	MaxUsernameLength = 50
)

// AI task generation
const (
	MaxGeneratedTasks = 20
)
