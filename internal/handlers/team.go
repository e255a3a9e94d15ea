package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/tmihalic/workboard-api/internal/dto"
	apierrors "github.com/tmihalic/workboard-api/internal/errors"
	"github.com/tmihalic/workboard-api/internal/middleware"
	"github.com/tmihalic/workboard-api/internal/services"
)

// TeamHandler coordinates team-related HTTP handlers.
type TeamHandler struct {
	teamService *services.TeamService
}

// NewTeamHandler creates a new TeamHandler.
func NewTeamHandler(teamService *services.TeamService) *TeamHandler {
	return &TeamHandler{
		teamService: teamService,
	}
}

// CreateTeam creates a new team owned by the actor.
func (h *TeamHandler) CreateTeam(c *gin.Context) {
	actor, exists := middleware.GetActor(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type CreateTeamRequest struct {
		Name        string `json:"name" binding:"required"`
		Description string `json:"description"`
	}

	var req CreateTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	team, err := h.teamService.CreateTeam(services.CreateTeamInput{
		Name:        req.Name,
		Description: req.Description,
	}, actor)
	if err != nil {
		respondTeamError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToTeamResponse(team))
}

// GetTeam returns a team by ID.
func (h *TeamHandler) GetTeam(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid team ID")
		return
	}

	team, err := h.teamService.GetTeam(id)
	if err != nil {
		respondTeamError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTeamResponse(team))
}

// ListTeams returns all teams.
func (h *TeamHandler) ListTeams(c *gin.Context) {
	teams, err := h.teamService.ListTeams()
	if err != nil {
		apierrors.InternalError(c, "Failed to list teams")
		return
	}

	c.JSON(http.StatusOK, dto.ToTeamResponses(teams))
}

// ListMyTeams returns the teams the actor is a member of.
func (h *TeamHandler) ListMyTeams(c *gin.Context) {
	actor, exists := middleware.GetActor(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	teams, err := h.teamService.ListTeamsForMember(actor.ID)
	if err != nil {
		apierrors.InternalError(c, "Failed to list teams")
		return
	}

	c.JSON(http.StatusOK, dto.ToTeamResponses(teams))
}

// UpdateTeam applies a partial update. Owner only.
func (h *TeamHandler) UpdateTeam(c *gin.Context) {
	actor, exists := middleware.GetActor(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid team ID")
		return
	}

	type UpdateTeamRequest struct {
		Name        *string `json:"name"`
		Description *string `json:"description"`
		Active      *bool   `json:"active"`
	}

	var req UpdateTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	team, err := h.teamService.UpdateTeam(id, services.UpdateTeamInput{
		Name:        req.Name,
		Description: req.Description,
		Active:      req.Active,
	}, actor)
	if err != nil {
		respondTeamError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTeamResponse(team))
}

// DeleteTeam removes a team. Owner only.
func (h *TeamHandler) DeleteTeam(c *gin.Context) {
	actor, exists := middleware.GetActor(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid team ID")
		return
	}

	if err := h.teamService.DeleteTeam(id, actor); err != nil {
		respondTeamError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// AddMember adds a user to a team. Owner only; adding an existing member is
// a no-op success.
func (h *TeamHandler) AddMember(c *gin.Context) {
	actor, exists := middleware.GetActor(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	teamID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid team ID")
		return
	}

	userID, err := strconv.ParseUint(c.Param("user_id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid user ID")
		return
	}

	team, err := h.teamService.AddMember(teamID, userID, actor)
	if err != nil {
		respondTeamError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTeamResponse(team))
}

// RemoveMember removes a user from a team. Owner only; the owner cannot be
// removed.
func (h *TeamHandler) RemoveMember(c *gin.Context) {
	actor, exists := middleware.GetActor(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	teamID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid team ID")
		return
	}

	userID, err := strconv.ParseUint(c.Param("user_id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid user ID")
		return
	}

	team, err := h.teamService.RemoveMember(teamID, userID, actor)
	if err != nil {
		respondTeamError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTeamResponse(team))
}

func respondTeamError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrTeamNotFound),
		errors.Is(err, services.ErrUserNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrNotTeamOwner):
		apierrors.Forbidden(c, err.Error())
	case errors.Is(err, services.ErrTeamNameRequired),
		errors.Is(err, services.ErrCannotRemoveOwner):
		apierrors.Validation(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
