package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/yukikurage/project-management-api/internal/config"
)

var configFile string

// rootCmd serves the API when called without a subcommand.
var rootCmd = &cobra.Command{
	Use:   "project-management-api",
	Short: "Project and task management REST API",
	Long: `project-management-api serves the project/task REST API.

Configuration is read from config.toml (., ./config or /app) or the file
given with --config, and PM_* environment variables override it.`,
	RunE:          runServe,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the command tree. Called by main.main().
func Execute() error {
	return rootCmd.Execute()
}

// SetVersionInfo sets the version reported by --version.
func SetVersionInfo(version, commit, date string) {
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date)
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "path to a TOML config file")
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadFile(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}
