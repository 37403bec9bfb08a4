package commands

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/project-management-api/internal/config"
	"github.com/yukikurage/project-management-api/internal/models"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestRootCommand_HasSubcommands(t *testing.T) {
	names := make([]string, 0, len(rootCmd.Commands()))
	for _, c := range rootCmd.Commands() {
		names = append(names, c.Name())
	}
	assert.Contains(t, names, "serve")
	assert.Contains(t, names, "migrate")
	assert.NotNil(t, rootCmd.PersistentFlags().Lookup("config"))
}

func TestMigrateCommand_SQLite(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "pm.db")
	t.Setenv("PM_DATABASE_DRIVER", "sqlite")
	t.Setenv("PM_DATABASE_DSN", dbPath)
	t.Setenv("PM_LOG_OUTPUT", "stderr")

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"migrate"})
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	require.NoError(t, Execute())

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	defer sqlDB.Close()

	assert.True(t, db.Migrator().HasTable(&models.User{}))
	assert.True(t, db.Migrator().HasTable(&models.Project{}))
	assert.True(t, db.Migrator().HasTable(&models.Task{}))
	assert.True(t, db.Migrator().HasIndex(&models.Task{}, "idx_tasks_project_id"))
}

func TestMigrateCommand_IgnoresRedis(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "pm.db")
	t.Setenv("PM_DATABASE_DRIVER", "sqlite")
	t.Setenv("PM_DATABASE_DSN", dbPath)
	t.Setenv("PM_LOG_OUTPUT", "stderr")
	t.Setenv("PM_REDIS_ENABLED", "true")
	t.Setenv("PM_REDIS_HOST", "127.0.0.1")
	t.Setenv("PM_REDIS_PORT", "1")

	rootCmd.SetArgs([]string{"migrate"})
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	require.NoError(t, Execute())
}

func TestOpenStores_RedisUnreachable(t *testing.T) {
	cfg := &config.Config{
		Database: config.DatabaseConfig{Driver: config.DriverSQLite, DSN: filepath.Join(t.TempDir(), "pm.db")},
		Redis:    config.RedisConfig{Enabled: true, Host: "127.0.0.1", Port: 1},
	}

	_, err := openStores(context.Background(), cfg, zap.NewNop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "redis")
}

func TestMigrateCommand_BadConfigFile(t *testing.T) {
	rootCmd.SetArgs([]string{"migrate", "--config", filepath.Join(t.TempDir(), "missing.toml")})
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		configFile = ""
	})

	err := Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load config")
}
