package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/yukikurage/project-management-api/internal/auth"
	"github.com/yukikurage/project-management-api/internal/config"
	"github.com/yukikurage/project-management-api/internal/models"
	"github.com/yukikurage/project-management-api/internal/repository"
	"github.com/yukikurage/project-management-api/internal/storage"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type testEnv struct {
	db       *gorm.DB
	tokens   *auth.TokenService
	auth     *AuthService
	projects *ProjectService
	tasks    *TaskService
}

func setupTestEnv(t *testing.T, ai *AIService) testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Project{}, &models.Task{}))

	userRepo := repository.NewUserRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	images := storage.NewInlineImageStore()
	tokens := auth.NewTokenService(config.JWTConfig{Secret: "service-test-secret", Expiration: 12 * time.Hour})

	return testEnv{
		db:       db,
		tokens:   tokens,
		auth:     NewAuthService(userRepo, tokens, auth.NewInMemoryRevocationStore()),
		projects: NewProjectService(projectRepo, images),
		tasks:    NewTaskService(taskRepo, projectRepo, images, ai),
	}
}

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}
