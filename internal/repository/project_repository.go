package repository

import (
	"context"

	"github.com/yukikurage/project-management-api/internal/models"
	"gorm.io/gorm"
)

// GormProjectRepository is a GORM implementation of ProjectRepository
type GormProjectRepository struct {
	db *gorm.DB
}

// NewProjectRepository creates a new ProjectRepository
func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &GormProjectRepository{db: db}
}

func (r *GormProjectRepository) Create(ctx context.Context, project *models.Project) error {
	return translateError(r.db.WithContext(ctx).Create(project).Error)
}

func (r *GormProjectRepository) FindByID(ctx context.Context, id string) (*models.Project, error) {
	var project models.Project
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&project).Error; err != nil {
		return nil, translateError(err)
	}
	return &project, nil
}

func (r *GormProjectRepository) List(ctx context.Context) ([]models.Project, error) {
	projects := []models.Project{}
	if err := r.db.WithContext(ctx).Order("created_at ASC, id ASC").Find(&projects).Error; err != nil {
		return nil, err
	}
	return projects, nil
}

// Update writes every column of project back, returning ErrNotFound when no
// row carries its ID.
func (r *GormProjectRepository) Update(ctx context.Context, project *models.Project) error {
	result := r.db.WithContext(ctx).Model(project).Select("*").Omit("id", "created_at").Updates(project)
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete deletes a project and its tasks in a transaction
func (r *GormProjectRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("project_id = ?", id).Delete(&models.Task{}).Error; err != nil {
			return err
		}

		result := tx.Where("id = ?", id).Delete(&models.Project{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}
