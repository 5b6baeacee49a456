package main

import (
	"fmt"
	"os"

	"go-hospital-encounter/cmd/bootstrap"
	"go-hospital-encounter/config"
	"go-hospital-encounter/internal/infrastructure/database"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "hospital-encounter",
		Short: "Clinical encounter API server",
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			// Initialize application with all dependencies
			app, err := bootstrap.New()
			if err != nil {
				return err
			}

			// Run the application
			app.Run()
			return nil
		},
	}
}

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
	}

	// migrate up
	upCmd := &cobra.Command{
		Use:   "up",
		Short: "Apply pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, _ := cmd.Flags().GetString("dir")
			return withMigrator(dir, func(m *database.Migrator) error {
				return m.Up()
			})
		},
	}
	upCmd.Flags().String("dir", "", "Path to migrations directory (defaults to MIGRATIONS_PATH)")
	cmd.AddCommand(upCmd)

	// migrate down
	downCmd := &cobra.Command{
		Use:   "down",
		Short: "Roll back applied migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, _ := cmd.Flags().GetString("dir")
			steps, _ := cmd.Flags().GetInt("steps")
			return withMigrator(dir, func(m *database.Migrator) error {
				return m.Down(steps)
			})
		},
	}
	downCmd.Flags().String("dir", "", "Path to migrations directory (defaults to MIGRATIONS_PATH)")
	downCmd.Flags().Int("steps", 1, "Number of migrations to roll back")
	cmd.AddCommand(downCmd)

	return cmd
}

func withMigrator(dir string, run func(m *database.Migrator) error) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	bootstrap.SetupLogger(cfg.Log)

	if dir == "" {
		dir = cfg.Migrations.Path
	}

	migrator, err := database.NewMigrator(cfg.DB, dir)
	if err != nil {
		return err
	}
	defer migrator.Close()

	if err := run(migrator); err != nil {
		logrus.Errorf("Migration failed: %v", err)
		return err
	}
	return nil
}
