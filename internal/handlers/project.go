package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/project-management-api/internal/dto"
	apierrors "github.com/yukikurage/project-management-api/internal/errors"
	"github.com/yukikurage/project-management-api/internal/models"
	"github.com/yukikurage/project-management-api/internal/services"
)

// ProjectHandler handles project endpoints.
type ProjectHandler struct {
	projectService *services.ProjectService
}

// NewProjectHandler creates a new ProjectHandler.
func NewProjectHandler(projectService *services.ProjectService) *ProjectHandler {
	return &ProjectHandler{
		projectService: projectService,
	}
}

// CreateProject handles POST /addprojects.
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	var req dto.ProjectRequest
	if !bindJSON(c, &req) {
		return
	}

	project, err := h.projectService.CreateProject(c.Request.Context(), services.ProjectInput{
		Name:        req.ProjectName,
		Manager:     req.ProjectManager,
		Tags:        req.ProjectTags.Strings(),
		Deadline:    req.Deadline.Time,
		Priority:    models.Priority(req.Priority),
		Image:       req.Image,
		Description: req.Description,
	})
	if err != nil {
		respondProjectError(c, err, "Unable to create project")
		return
	}

	c.JSON(http.StatusCreated, project)
}

// ListProjects handles GET /getprojects.
func (h *ProjectHandler) ListProjects(c *gin.Context) {
	projects, err := h.projectService.ListProjects(c.Request.Context())
	if err != nil {
		respondProjectError(c, err, "Unable to fetch projects")
		return
	}

	c.JSON(http.StatusOK, projects)
}

// GetProject handles GET /projects/:id.
func (h *ProjectHandler) GetProject(c *gin.Context) {
	project, err := h.projectService.GetProject(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondProjectError(c, err, "Unable to fetch project")
		return
	}

	c.JSON(http.StatusOK, project)
}

// UpdateProject handles PUT /updateprojects/:id. Fields missing from the
// body keep their stored values.
func (h *ProjectHandler) UpdateProject(c *gin.Context) {
	var req dto.UpdateProjectRequest
	if !bindJSON(c, &req) {
		return
	}

	patch := services.ProjectPatch{
		Name:        req.ProjectName,
		Manager:     req.ProjectManager,
		Tags:        stringsPtr(req.ProjectTags),
		Deadline:    timePtr(req.Deadline),
		Image:       req.Image,
		Description: req.Description,
	}
	if req.Priority != nil {
		priority := models.Priority(*req.Priority)
		patch.Priority = &priority
	}

	project, err := h.projectService.UpdateProject(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		respondProjectError(c, err, "Unable to update project")
		return
	}

	c.JSON(http.StatusOK, project)
}

// DeleteProject handles DELETE /deleteprojects/:id.
func (h *ProjectHandler) DeleteProject(c *gin.Context) {
	if err := h.projectService.DeleteProject(c.Request.Context(), c.Param("id")); err != nil {
		respondProjectError(c, err, "Unable to delete project")
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Project deleted successfully"})
}

func respondProjectError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, services.ErrProjectNotFound):
		apierrors.NotFound(c, "Project not found")
	case errors.Is(err, services.ErrInvalidImage):
		apierrors.BadRequestWithDetails(c, "Invalid request body", map[string]string{"image": "datauri_or_url"})
	default:
		internalError(c, fallback, err)
	}
}
