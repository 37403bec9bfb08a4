package database

import (
	"fmt"

	"github.com/yukikurage/project-management-api/internal/models"
	"gorm.io/gorm"
)

// indexes lists the lookup indexes the API relies on. Each one is declared on
// its model; EnsureIndexes recreates any that an older schema is missing.
var indexes = []struct {
	model any
	name  string
}{
	{&models.Task{}, "idx_tasks_project_id"},
	{&models.User{}, "idx_users_role"},
}

func EnsureIndexes(db *gorm.DB) error {
	migrator := db.Migrator()
	for _, idx := range indexes {
		if migrator.HasIndex(idx.model, idx.name) {
			continue
		}
		if err := migrator.CreateIndex(idx.model, idx.name); err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}
	}
	return nil
}
