package cli

import (
	"context"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/crackit360/crackit360-api/internal/config"
	"github.com/crackit360/crackit360-api/internal/container"
)

// NewMigrateCmd creates or updates every table.
func NewMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := container.Bootstrap(cmd.Context()); err != nil {
				return err
			}
			return migrate(cmd.Context(), config.DB)
		},
	}
}

func migrate(ctx context.Context, db *gorm.DB) error {
	if err := db.WithContext(ctx).AutoMigrate(container.Models()...); err != nil {
		return err
	}
	config.WithContext(ctx).Info("Migrations applied")
	return nil
}
