package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/yukikurage/project-management-api/internal/models"
	"github.com/yukikurage/project-management-api/internal/repository"
	"github.com/yukikurage/project-management-api/internal/storage"
)

var (
	ErrProjectNotFound = errors.New("project not found")
	ErrInvalidImage    = errors.New("invalid image")
)

// ProjectService handles project business logic
type ProjectService struct {
	projectRepo repository.ProjectRepository
	images      storage.ImageStore
}

// NewProjectService creates a new ProjectService
func NewProjectService(projectRepo repository.ProjectRepository, images storage.ImageStore) *ProjectService {
	return &ProjectService{
		projectRepo: projectRepo,
		images:      images,
	}
}

// ProjectInput represents a validated project body
type ProjectInput struct {
	Name        string
	Manager     string
	Tags        []string
	Deadline    time.Time
	Priority    models.Priority
	Image       string
	Description string
}

// ProjectPatch carries the fields of a partial update; nil means unchanged.
type ProjectPatch struct {
	Name        *string
	Manager     *string
	Tags        *[]string
	Deadline    *time.Time
	Priority    *models.Priority
	Image       *string
	Description *string
}

func (s *ProjectService) CreateProject(ctx context.Context, input ProjectInput) (*models.Project, error) {
	image, err := storeImage(ctx, s.images, input.Image)
	if err != nil {
		return nil, err
	}

	project := &models.Project{
		Name:        strings.TrimSpace(input.Name),
		Manager:     strings.TrimSpace(input.Manager),
		Tags:        nonNil(input.Tags),
		Deadline:    input.Deadline,
		Priority:    input.Priority,
		Image:       image,
		Description: input.Description,
	}
	if err := s.projectRepo.Create(ctx, project); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}
	return project, nil
}

func (s *ProjectService) ListProjects(ctx context.Context) ([]models.Project, error) {
	projects, err := s.projectRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	return projects, nil
}

func (s *ProjectService) GetProject(ctx context.Context, id string) (*models.Project, error) {
	project, err := s.projectRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}
	return project, nil
}

// UpdateProject applies patch to the stored project and returns the result.
func (s *ProjectService) UpdateProject(ctx context.Context, id string, patch ProjectPatch) (*models.Project, error) {
	project, err := s.GetProject(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Name != nil {
		project.Name = strings.TrimSpace(*patch.Name)
	}
	if patch.Manager != nil {
		project.Manager = strings.TrimSpace(*patch.Manager)
	}
	if patch.Tags != nil {
		project.Tags = nonNil(*patch.Tags)
	}
	if patch.Deadline != nil {
		project.Deadline = *patch.Deadline
	}
	if patch.Priority != nil {
		project.Priority = *patch.Priority
	}
	if patch.Image != nil {
		image, err := storeImage(ctx, s.images, *patch.Image)
		if err != nil {
			return nil, err
		}
		project.Image = image
	}
	if patch.Description != nil {
		project.Description = *patch.Description
	}

	if err := s.projectRepo.Update(ctx, project); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to update project: %w", err)
	}
	return project, nil
}

// DeleteProject removes the project and its tasks.
func (s *ProjectService) DeleteProject(ctx context.Context, id string) error {
	if err := s.projectRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrProjectNotFound
		}
		return fmt.Errorf("failed to delete project: %w", err)
	}
	return nil
}

func storeImage(ctx context.Context, images storage.ImageStore, image string) (string, error) {
	stored, err := images.Store(ctx, image)
	if err != nil {
		if errors.Is(err, storage.ErrInvalidImage) || errors.Is(err, storage.ErrUnsupportedImage) {
			return "", fmt.Errorf("%w: %v", ErrInvalidImage, err)
		}
		return "", fmt.Errorf("failed to store image: %w", err)
	}
	return stored, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
