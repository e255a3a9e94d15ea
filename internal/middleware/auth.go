package middleware

import (
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/tmihalic/workboard-api/internal/constants"
	apierrors "github.com/tmihalic/workboard-api/internal/errors"
	"github.com/tmihalic/workboard-api/internal/models"
	"github.com/tmihalic/workboard-api/internal/services"
)

// RequireAuth checks if the user is authenticated via session and resolves
// the session user id to an active User entity. The resolved actor is stored
// in the context and passed explicitly into service calls.
func RequireAuth(authService *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		userID := session.Get(constants.ContextKeyUserID)

		if userID == nil {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		id, ok := toUint64(userID)
		if !ok {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		actor, err := authService.ResolveActor(id)
		if err != nil {
			apierrors.Unauthorized(c, "No active user for this session")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyUserID, actor.ID)
		c.Set(constants.ContextKeyActor, actor)
		c.Next()
	}
}

// GetActor retrieves the resolved actor from the context
func GetActor(c *gin.Context) (*models.User, bool) {
	value, exists := c.Get(constants.ContextKeyActor)
	if !exists {
		return nil, false
	}

	actor, ok := value.(*models.User)
	if !ok {
		return nil, false
	}
	return actor, true
}

// GetUserID retrieves the current user ID from context
func GetUserID(c *gin.Context) (uint64, bool) {
	userID, exists := c.Get(constants.ContextKeyUserID)
	if !exists {
		return 0, false
	}
	return toUint64(userID)
}

func toUint64(value any) (uint64, bool) {
	switch v := value.(type) {
	case uint64:
		return v, true
	case uint:
		return uint64(v), true
	case int64:
		if v < 0 {
			return 0, false
		}
		return uint64(v), true
	case int:
		if v < 0 {
			return 0, false
		}
		return uint64(v), true
	default:
		return 0, false
	}
}
