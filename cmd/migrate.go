package cmd

import (
	"fmt"

	"github.com/jerricksforjesus/JerricksJesus-sub000/internal/database"
	"github.com/jerricksforjesus/JerricksJesus-sub000/internal/models"
	"github.com/jerricksforjesus/JerricksJesus-sub000/pkg/config"
	"github.com/spf13/cobra"
)

// migrateCmd runs GORM auto migration for all models
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database migrations",
	Long: `Apply the database schema for the Congregation Media API.

Uses GORM auto migration to create or update the tables for videos,
the worship playlist mirror, the YouTube channel connection, and the
background job queue.`,
	RunE: runMigrate,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}

func runMigrate(cmd *cobra.Command, args []string) error {
	cfg, err := config.GetConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	db, err := database.Initialize(cfg.Database.Path, cfg.Database.LogQueries)
	if err != nil {
		return fmt.Errorf("initializing database: %w", err)
	}
	defer db.Close()

	if err := db.AutoMigrate(allModels()...); err != nil {
		return err
	}

	fmt.Println("Migrations applied")
	return nil
}

// allModels lists every persisted model, shared by migrate and serve
func allModels() []any {
	return []any{
		&models.Video{},
		&models.WorshipVideo{},
		&models.YoutubeAuth{},
		&models.SyncState{},
		&models.Job{},
	}
}
