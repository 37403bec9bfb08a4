package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/project-management-api/internal/auth"
	"github.com/yukikurage/project-management-api/internal/config"
	"github.com/yukikurage/project-management-api/internal/dto"
	"github.com/yukikurage/project-management-api/internal/middleware"
	"github.com/yukikurage/project-management-api/internal/models"
	"github.com/yukikurage/project-management-api/internal/repository"
	"github.com/yukikurage/project-management-api/internal/services"
	"github.com/yukikurage/project-management-api/internal/storage"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
	dto.RegisterValidators()
}

type testEnv struct {
	db     *gorm.DB
	tokens *auth.TokenService
	router *gin.Engine
}

func newTestDB(t *testing.T) *gorm.DB {
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
	return db
}

// newTestRouter wires handlers over db the same way the server does, with
// resource routes left public.
func newTestRouter(db *gorm.DB, tokens *auth.TokenService, ai *services.AIService) *gin.Engine {
	userRepo := repository.NewUserRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	images := storage.NewInlineImageStore()

	authService := services.NewAuthService(userRepo, tokens, auth.NewInMemoryRevocationStore())
	authHandler := NewAuthHandler(authService)
	userHandler := NewUserHandler(authService)
	projectHandler := NewProjectHandler(services.NewProjectService(projectRepo, images))
	taskHandler := NewTaskHandler(services.NewTaskService(taskRepo, projectRepo, images, ai))

	r := gin.New()
	r.GET("/", Root)
	r.GET("/health", Health)
	r.POST("/register", authHandler.Register)
	r.POST("/login", authHandler.Login)
	r.GET("/me", middleware.RequireAuth(authService), authHandler.GetCurrentUser)
	r.POST("/logout", middleware.RequireAuth(authService), authHandler.Logout)
	r.GET("/users", userHandler.ListUsers)

	r.POST("/addprojects", projectHandler.CreateProject)
	r.GET("/getprojects", projectHandler.ListProjects)
	r.GET("/projects/:id", projectHandler.GetProject)
	r.PUT("/updateprojects/:id", projectHandler.UpdateProject)
	r.DELETE("/deleteprojects/:id", projectHandler.DeleteProject)

	r.POST("/tasks", taskHandler.CreateTask)
	r.POST("/addtasks", taskHandler.CreateTask)
	r.GET("/gettasks", taskHandler.ListTasks)
	r.GET("/projects/:id/tasks", taskHandler.ListProjectTasks)
	r.POST("/projects/:id/tasks/generate", taskHandler.GenerateTasks)
	r.PUT("/updatetasks/:id", taskHandler.UpdateTask)
	r.DELETE("/deletetasks/:id", taskHandler.DeleteTask)
	return r
}

func setupTestEnv(t *testing.T) testEnv {
	t.Helper()

	db := newTestDB(t)
	tokens := auth.NewTokenService(config.JWTConfig{Secret: "handler-test-secret", Expiration: 12 * time.Hour})
	return testEnv{
		db:     db,
		tokens: tokens,
		router: newTestRouter(db, tokens, nil),
	}
}

func (e testEnv) do(t *testing.T, method, path string, body any, headers ...string) *httptest.ResponseRecorder {
	t.Helper()
	return doJSON(t, e.router, method, path, body, headers...)
}

// doJSON sends body as JSON; headers are name/value pairs.
func doJSON(t *testing.T, r http.Handler, method, path string, body any, headers ...string) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		req = httptest.NewRequest(method, path, bytes.NewReader(raw))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v))
	return v
}

func (e testEnv) createProject(t *testing.T, name string) models.Project {
	t.Helper()
	w := e.do(t, http.MethodPost, "/addprojects", map[string]any{
		"projectName":    name,
		"projectManager": "alice",
		"deadline":       "2025-01-01",
		"projectTags":    []string{"backend"},
		"priority":       "high",
		"description":    "first project",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decode[models.Project](t, w)
}

func (e testEnv) createTask(t *testing.T, projectID, name string) models.Task {
	t.Helper()
	w := e.do(t, http.MethodPost, "/tasks", taskBody(projectID, name))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	return decode[models.Task](t, w)
}

func taskBody(projectID, name string) map[string]any {
	return map[string]any{
		"taskName":      name,
		"taskAssignees": []string{"bob"},
		"projectId":     projectID,
		"deadline":      "2025-02-01",
		"description":   "do the thing",
	}
}

func (e testEnv) assertCounts(t *testing.T, projects, tasks int64) {
	t.Helper()

	var n int64
	require.NoError(t, e.db.Model(&models.Project{}).Count(&n).Error)
	assert.Equal(t, projects, n, "project count")
	require.NoError(t, e.db.Model(&models.Task{}).Count(&n).Error)
	assert.Equal(t, tasks, n, "task count")
}
