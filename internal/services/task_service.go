package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/yukikurage/project-management-api/internal/constants"
	"github.com/yukikurage/project-management-api/internal/models"
	"github.com/yukikurage/project-management-api/internal/repository"
	"github.com/yukikurage/project-management-api/internal/storage"
)

var (
	ErrTaskNotFound           = errors.New("task not found")
	ErrAIServiceNotConfigured = errors.New("AI service is not configured")
	ErrAINoTasksGenerated     = errors.New("AI did not generate any tasks")
	ErrAINoValidTasks         = errors.New("no valid tasks could be created from AI output")
)

// TaskService handles task business logic
type TaskService struct {
	taskRepo    repository.TaskRepository
	projectRepo repository.ProjectRepository
	images      storage.ImageStore
	aiService   *AIService
}

// NewTaskService creates a new TaskService. aiService may be nil.
func NewTaskService(taskRepo repository.TaskRepository, projectRepo repository.ProjectRepository, images storage.ImageStore, aiService *AIService) *TaskService {
	return &TaskService{
		taskRepo:    taskRepo,
		projectRepo: projectRepo,
		images:      images,
		aiService:   aiService,
	}
}

// TaskInput represents a validated task body
type TaskInput struct {
	Name        string
	Assignees   []string
	ProjectID   string
	Tags        []string
	Deadline    time.Time
	Image       string
	Description string
}

// TaskPatch carries the fields of a partial update; nil means unchanged.
type TaskPatch struct {
	Name        *string
	Assignees   *[]string
	ProjectID   *string
	Tags        *[]string
	Deadline    *time.Time
	Image       *string
	Description *string
}

// CreateTask stores a task under an existing project. Nothing is written
// when the project is missing.
func (s *TaskService) CreateTask(ctx context.Context, input TaskInput) (*models.Task, error) {
	projectID := strings.TrimSpace(input.ProjectID)
	if err := s.ensureProject(ctx, projectID); err != nil {
		return nil, err
	}

	image, err := storeImage(ctx, s.images, input.Image)
	if err != nil {
		return nil, err
	}

	task := &models.Task{
		Name:        strings.TrimSpace(input.Name),
		Assignees:   nonNil(input.Assignees),
		ProjectID:   projectID,
		Tags:        nonNil(input.Tags),
		Deadline:    input.Deadline,
		Image:       image,
		Description: input.Description,
	}
	if err := s.taskRepo.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}
	return task, nil
}

func (s *TaskService) ListTasks(ctx context.Context) ([]models.Task, error) {
	tasks, err := s.taskRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

// ListProjectTasks returns the tasks of a project; an unknown project simply
// has none.
func (s *TaskService) ListProjectTasks(ctx context.Context, projectID string) ([]models.Task, error) {
	tasks, err := s.taskRepo.ListByProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list project tasks: %w", err)
	}
	return tasks, nil
}

func (s *TaskService) GetTask(ctx context.Context, id string) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	return task, nil
}

// UpdateTask applies patch to the stored task. Moving a task to another
// project requires that project to exist.
func (s *TaskService) UpdateTask(ctx context.Context, id string, patch TaskPatch) (*models.Task, error) {
	task, err := s.GetTask(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.ProjectID != nil {
		projectID := strings.TrimSpace(*patch.ProjectID)
		if projectID != task.ProjectID {
			if err := s.ensureProject(ctx, projectID); err != nil {
				return nil, err
			}
			task.ProjectID = projectID
		}
	}
	if patch.Name != nil {
		task.Name = strings.TrimSpace(*patch.Name)
	}
	if patch.Assignees != nil {
		task.Assignees = nonNil(*patch.Assignees)
	}
	if patch.Tags != nil {
		task.Tags = nonNil(*patch.Tags)
	}
	if patch.Deadline != nil {
		task.Deadline = *patch.Deadline
	}
	if patch.Image != nil {
		image, err := storeImage(ctx, s.images, *patch.Image)
		if err != nil {
			return nil, err
		}
		task.Image = image
	}
	if patch.Description != nil {
		task.Description = *patch.Description
	}

	if err := s.taskRepo.Update(ctx, task); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to update task: %w", err)
	}
	return task, nil
}

func (s *TaskService) DeleteTask(ctx context.Context, id string) error {
	if err := s.taskRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrTaskNotFound
		}
		return fmt.Errorf("failed to delete task: %w", err)
	}
	return nil
}

// GenerateTasksInput represents input for AI task generation
type GenerateTasksInput struct {
	ProjectID string
	Text      string
}

// GenerateTasks drafts tasks for a project from free text. Drafts are not
// stored; past deadlines are cleared and at most
// constants.MaxGeneratedTaskDrafts drafts are returned.
func (s *TaskService) GenerateTasks(ctx context.Context, input GenerateTasksInput) ([]GeneratedTask, error) {
	if s.aiService == nil {
		return nil, ErrAIServiceNotConfigured
	}

	project, err := s.projectRepo.FindByID(ctx, input.ProjectID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}

	aiTasks, err := s.aiService.GenerateTasksForProject(ctx, project, input.Text)
	if err != nil {
		return nil, fmt.Errorf("failed to generate tasks: %w", err)
	}
	if len(aiTasks) == 0 {
		return nil, ErrAINoTasksGenerated
	}

	validTasks := make([]GeneratedTask, 0, len(aiTasks))
	today := time.Now().UTC().Format(constants.DeadlineLayout)
	for _, aiTask := range aiTasks {
		if strings.TrimSpace(aiTask.TaskName) == "" {
			continue
		}
		if aiTask.Deadline != "" {
			if _, err := time.Parse(constants.DeadlineLayout, aiTask.Deadline); err != nil || aiTask.Deadline < today {
				aiTask.Deadline = ""
			}
		}
		validTasks = append(validTasks, aiTask)
		if len(validTasks) == constants.MaxGeneratedTaskDrafts {
			break
		}
	}

	if len(validTasks) == 0 {
		return nil, ErrAINoValidTasks
	}
	return validTasks, nil
}

func (s *TaskService) ensureProject(ctx context.Context, projectID string) error {
	if projectID == "" {
		return ErrProjectNotFound
	}
	if _, err := s.projectRepo.FindByID(ctx, projectID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrProjectNotFound
		}
		return fmt.Errorf("failed to find project: %w", err)
	}
	return nil
}
