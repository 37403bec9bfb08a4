package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/project-management-api/internal/dto"
	apierrors "github.com/yukikurage/project-management-api/internal/errors"
	"github.com/yukikurage/project-management-api/internal/services"
)

// TaskHandler handles task endpoints.
type TaskHandler struct {
	taskService *services.TaskService
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(taskService *services.TaskService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
	}
}

// CreateTask handles POST /tasks and POST /addtasks. The referenced
// project must exist.
func (h *TaskHandler) CreateTask(c *gin.Context) {
	var req dto.TaskRequest
	if !bindJSON(c, &req) {
		return
	}

	task, err := h.taskService.CreateTask(c.Request.Context(), services.TaskInput{
		Name:        req.TaskName,
		Assignees:   req.TaskAssignees.Strings(),
		ProjectID:   req.ProjectID,
		Tags:        req.TaskTags.Strings(),
		Deadline:    req.Deadline.Time,
		Image:       req.Image,
		Description: req.Description,
	})
	if err != nil {
		respondTaskError(c, err, "Unable to create task")
		return
	}

	c.JSON(http.StatusOK, task)
}

// ListTasks handles GET /gettasks.
func (h *TaskHandler) ListTasks(c *gin.Context) {
	tasks, err := h.taskService.ListTasks(c.Request.Context())
	if err != nil {
		respondTaskError(c, err, "Unable to fetch tasks")
		return
	}

	c.JSON(http.StatusOK, tasks)
}

// ListProjectTasks handles GET /projects/:id/tasks. An unknown project
// yields an empty list.
func (h *TaskHandler) ListProjectTasks(c *gin.Context) {
	tasks, err := h.taskService.ListProjectTasks(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondTaskError(c, err, "Unable to fetch tasks")
		return
	}

	c.JSON(http.StatusOK, tasks)
}

// UpdateTask handles PUT /updatetasks/:id.
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	var req dto.UpdateTaskRequest
	if !bindJSON(c, &req) {
		return
	}

	task, err := h.taskService.UpdateTask(c.Request.Context(), c.Param("id"), services.TaskPatch{
		Name:        req.TaskName,
		Assignees:   stringsPtr(req.TaskAssignees),
		ProjectID:   req.ProjectID,
		Tags:        stringsPtr(req.TaskTags),
		Deadline:    timePtr(req.Deadline),
		Image:       req.Image,
		Description: req.Description,
	})
	if err != nil {
		respondTaskError(c, err, "Unable to update task")
		return
	}

	c.JSON(http.StatusOK, task)
}

// DeleteTask handles DELETE /deletetasks/:id.
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	if err := h.taskService.DeleteTask(c.Request.Context(), c.Param("id")); err != nil {
		respondTaskError(c, err, "Unable to delete task")
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Task deleted successfully"})
}

// GenerateTasks handles POST /projects/:id/tasks/generate. Drafts are
// returned for review and are not stored.
func (h *TaskHandler) GenerateTasks(c *gin.Context) {
	var req dto.GenerateTasksRequest
	if !bindJSON(c, &req) {
		return
	}

	generated, err := h.taskService.GenerateTasks(c.Request.Context(), services.GenerateTasksInput{
		ProjectID: c.Param("id"),
		Text:      req.Text,
	})
	if err != nil {
		respondTaskError(c, err, "Failed to generate tasks")
		return
	}

	drafts := make([]dto.TaskDraft, len(generated))
	for i, g := range generated {
		drafts[i] = dto.TaskDraft{
			TaskName:    g.TaskName,
			Description: g.Description,
			Deadline:    g.Deadline,
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"tasks": drafts,
	})
}

func respondTaskError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, services.ErrTaskNotFound):
		apierrors.NotFound(c, "Task not found")
	case errors.Is(err, services.ErrProjectNotFound):
		apierrors.NotFound(c, "Project not found")
	case errors.Is(err, services.ErrInvalidImage):
		apierrors.BadRequestWithDetails(c, "Invalid request body", map[string]string{"image": "datauri_or_url"})
	case errors.Is(err, services.ErrAIServiceNotConfigured):
		apierrors.ServiceUnavailable(c, "AI service is not configured")
	case errors.Is(err, services.ErrAINoTasksGenerated),
		errors.Is(err, services.ErrAINoValidTasks):
		internalError(c, err.Error(), err)
	default:
		internalError(c, fallback, err)
	}
}
