package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/tmihalic/workboard-api/internal/dto"
	apierrors "github.com/tmihalic/workboard-api/internal/errors"
	"github.com/tmihalic/workboard-api/internal/models"
	"github.com/tmihalic/workboard-api/internal/services"
)

// ProjectHandler coordinates project-related HTTP handlers.
type ProjectHandler struct {
	projectService *services.ProjectService
}

// NewProjectHandler creates a new ProjectHandler.
func NewProjectHandler(projectService *services.ProjectService) *ProjectHandler {
	return &ProjectHandler{
		projectService: projectService,
	}
}

// CreateProject creates a new project under a team.
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	type CreateProjectRequest struct {
		Name        string               `json:"name" binding:"required"`
		Description string               `json:"description"`
		TeamID      uint64               `json:"team_id" binding:"required"`
		Status      models.ProjectStatus `json:"status"`
		StartDate   *time.Time           `json:"start_date"`
		EndDate     *time.Time           `json:"end_date"`
	}

	var req CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	project, err := h.projectService.CreateProject(services.CreateProjectInput{
		Name:        req.Name,
		Description: req.Description,
		TeamID:      req.TeamID,
		Status:      req.Status,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
	})
	if err != nil {
		respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToProjectResponse(project))
}

// GetProject returns a project by ID.
func (h *ProjectHandler) GetProject(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid project ID")
		return
	}

	project, err := h.projectService.GetProject(id)
	if err != nil {
		respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToProjectResponse(project))
}

// ListProjects returns all projects.
func (h *ProjectHandler) ListProjects(c *gin.Context) {
	projects, err := h.projectService.ListProjects()
	if err != nil {
		apierrors.InternalError(c, "Failed to list projects")
		return
	}

	c.JSON(http.StatusOK, dto.ToProjectResponses(projects))
}

// ListProjectsByTeam returns the projects owned by a team.
func (h *ProjectHandler) ListProjectsByTeam(c *gin.Context) {
	teamID, err := strconv.ParseUint(c.Param("team_id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid team ID")
		return
	}

	projects, err := h.projectService.ListProjectsByTeam(teamID)
	if err != nil {
		apierrors.InternalError(c, "Failed to list projects")
		return
	}

	c.JSON(http.StatusOK, dto.ToProjectResponses(projects))
}

// UpdateProject applies a partial update to a project.
func (h *ProjectHandler) UpdateProject(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid project ID")
		return
	}

	type UpdateProjectRequest struct {
		Name        *string               `json:"name"`
		Description *string               `json:"description"`
		Status      *models.ProjectStatus `json:"status"`
		StartDate   *time.Time            `json:"start_date"`
		EndDate     *time.Time            `json:"end_date"`
	}

	var req UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	project, err := h.projectService.UpdateProject(id, services.UpdateProjectInput{
		Name:        req.Name,
		Description: req.Description,
		Status:      req.Status,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
	})
	if err != nil {
		respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToProjectResponse(project))
}

// DeleteProject removes a project.
func (h *ProjectHandler) DeleteProject(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid project ID")
		return
	}

	if err := h.projectService.DeleteProject(id); err != nil {
		respondProjectError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func respondProjectError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrProjectNotFound),
		errors.Is(err, services.ErrTeamNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrProjectNameRequired):
		apierrors.Validation(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
