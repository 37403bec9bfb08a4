package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/project-management-api/internal/models"
)

func TestTaskService_CreateTask(t *testing.T) {
	env := setupTestEnv(t, nil)
	ctx := context.Background()

	project, err := env.projects.CreateProject(ctx, sampleProject())
	require.NoError(t, err)

	t.Run("existing project", func(t *testing.T) {
		task, err := env.tasks.CreateTask(ctx, TaskInput{
			Name:        "T1",
			Assignees:   []string{"bob"},
			ProjectID:   project.ID,
			Deadline:    date("2024-12-20"),
			Description: "write it",
		})
		require.NoError(t, err)
		assert.NotEmpty(t, task.ID)
		assert.Equal(t, project.ID, task.ProjectID)
		assert.Equal(t, []string{}, task.Tags)
	})

	t.Run("missing project writes nothing", func(t *testing.T) {
		before, err := env.tasks.ListTasks(ctx)
		require.NoError(t, err)

		_, err = env.tasks.CreateTask(ctx, TaskInput{
			Name: "T2", Assignees: []string{"bob"}, ProjectID: "000000000000000000000000", Deadline: date("2025-01-01"), Description: "d",
		})
		assert.ErrorIs(t, err, ErrProjectNotFound)

		after, err := env.tasks.ListTasks(ctx)
		require.NoError(t, err)
		assert.Len(t, after, len(before))
	})
}

func TestTaskService_ListProjectTasks(t *testing.T) {
	env := setupTestEnv(t, nil)
	ctx := context.Background()

	p1, err := env.projects.CreateProject(ctx, sampleProject())
	require.NoError(t, err)
	p2, err := env.projects.CreateProject(ctx, sampleProject())
	require.NoError(t, err)

	for i, pid := range []string{p1.ID, p1.ID, p2.ID} {
		_, err := env.tasks.CreateTask(ctx, TaskInput{
			Name: []string{"a", "b", "c"}[i], Assignees: []string{"bob"}, ProjectID: pid, Deadline: date("2025-01-01"), Description: "d",
		})
		require.NoError(t, err)
	}

	tasks, err := env.tasks.ListProjectTasks(ctx, p1.ID)
	require.NoError(t, err)
	assert.Len(t, tasks, 2)
	for _, task := range tasks {
		assert.Equal(t, p1.ID, task.ProjectID)
	}

	none, err := env.tasks.ListProjectTasks(ctx, "unknown")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestTaskService_UpdateTask(t *testing.T) {
	env := setupTestEnv(t, nil)
	ctx := context.Background()

	p1, err := env.projects.CreateProject(ctx, sampleProject())
	require.NoError(t, err)
	p2, err := env.projects.CreateProject(ctx, sampleProject())
	require.NoError(t, err)
	task, err := env.tasks.CreateTask(ctx, TaskInput{
		Name: "T1", Assignees: []string{"bob"}, ProjectID: p1.ID, Deadline: date("2025-01-01"), Description: "d",
	})
	require.NoError(t, err)

	assignees := []string{"bob", "eve"}
	updated, err := env.tasks.UpdateTask(ctx, task.ID, TaskPatch{Assignees: &assignees, ProjectID: &p2.ID})
	require.NoError(t, err)
	assert.Equal(t, assignees, updated.Assignees)
	assert.Equal(t, p2.ID, updated.ProjectID)
	assert.Equal(t, "T1", updated.Name)

	missing := "000000000000000000000000"
	_, err = env.tasks.UpdateTask(ctx, task.ID, TaskPatch{ProjectID: &missing})
	assert.ErrorIs(t, err, ErrProjectNotFound)

	stored, err := env.tasks.GetTask(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, p2.ID, stored.ProjectID, "failed update leaves the task untouched")

	name := "x"
	_, err = env.tasks.UpdateTask(ctx, "missing", TaskPatch{Name: &name})
	assert.ErrorIs(t, err, ErrTaskNotFound)
}

func TestTaskService_DeleteTask(t *testing.T) {
	env := setupTestEnv(t, nil)
	ctx := context.Background()

	project, err := env.projects.CreateProject(ctx, sampleProject())
	require.NoError(t, err)
	task, err := env.tasks.CreateTask(ctx, TaskInput{
		Name: "T1", Assignees: []string{"bob"}, ProjectID: project.ID, Deadline: date("2025-01-01"), Description: "d",
	})
	require.NoError(t, err)

	require.NoError(t, env.tasks.DeleteTask(ctx, task.ID))
	assert.ErrorIs(t, env.tasks.DeleteTask(ctx, task.ID), ErrTaskNotFound)

	var count int64
	require.NoError(t, env.db.Model(&models.Task{}).Count(&count).Error)
	assert.Zero(t, count)
}
