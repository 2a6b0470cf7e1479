package cli

import (
	"context"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/crackit360/crackit360-api/internal/config"
	"github.com/crackit360/crackit360-api/internal/container"
	"github.com/crackit360/crackit360-api/internal/discussion"
)

// NewReconcileCmd recomputes discussion counters from the vote and reply rows.
func NewReconcileCmd() *cobra.Command {
	var discussionID string

	cmd := &cobra.Command{
		Use:   "reconcile",
		Short: "Recompute discussion vote and reply counters",
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := container.Bootstrap(cmd.Context()); err != nil {
				return err
			}
			return reconcile(cmd.Context(), config.DB, discussionID)
		},
	}
	cmd.Flags().StringVar(&discussionID, "discussion", "", "reconcile a single discussion id")
	return cmd
}

func reconcile(ctx context.Context, db *gorm.DB, discussionID string) error {
	log := config.WithContext(ctx)
	svc := discussion.NewService(discussion.NewRepository(db))

	if discussionID != "" {
		stats, err := svc.ReconcileStats(ctx, discussionID)
		if err != nil {
			return err
		}
		log.WithFields(logrus.Fields{
			"discussion_id": discussionID,
			"upvotes":       stats.Upvotes,
			"downvotes":     stats.Downvotes,
			"replies":       stats.Replies,
		}).Info("Discussion reconciled")
		return nil
	}

	n, err := svc.ReconcileAll(ctx)
	if err != nil {
		return err
	}
	log.WithField("discussions", n).Info("Discussions reconciled")
	return nil
}
