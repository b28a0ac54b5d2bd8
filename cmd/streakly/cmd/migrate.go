package cmd

import (
	"database/sql"

	"github.com/spf13/cobra"
	"github.com/streakly/streakly/internal/config"
	"github.com/streakly/streakly/internal/db"
	"github.com/streakly/streakly/internal/logger"
)

func MigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Database migrations",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return migrate(db.RunMigrations)
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "down",
		Short: "Roll back the most recent migration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return migrate(db.MigrateDown)
		},
	})

	return cmd
}

func migrate(run func(*sql.DB, string) error) error {
	cfg := config.Load()

	logger.Init(cfg.IsDevelopment(), cfg.SentryDSN, "migrate")
	defer logger.Flush()

	database, err := db.Init(cfg.DBDriver, cfg.DBConnection)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close(database) }()

	return run(database.DB, cfg.DBDriver)
}
