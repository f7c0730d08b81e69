package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/JakeFAU/blog-summarizer/internal/health"
)

func newTestMongoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "test-mongo",
		Short: "Opens a fresh MongoDB connection and pings it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, func(appInstance App) error {
				if err := appInstance.ProbeMongo(cmd.Context()); err != nil {
					return fmt.Errorf("MongoDB connection failed: %w%s", err, health.Hint(err))
				}
				fmt.Fprintln(cmd.OutOrStdout(), "MongoDB connection successful")
				return nil
			})
		},
	}
}
