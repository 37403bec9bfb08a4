package commands

import (
	"context"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema and indexes, then exit",
	Long: `migrate brings the configured database up to date.

SQL drivers (mysql, postgres, sqlite) get the users, projects and tasks
tables plus their indexes; mongo gets its collection indexes.`,
	Args: cobra.NoArgs,
	RunE: runMigrate,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	log := newLogger(cfg)
	defer func() { _ = log.Sync() }()

	st, err := openDatabase(cmd.Context(), cfg, log)
	if err != nil {
		log.Error("Migration failed", zap.Error(err))
		return err
	}
	log.Info("Migration completed", zap.String("driver", cfg.Database.Driver))
	return st.close(context.Background())
}
