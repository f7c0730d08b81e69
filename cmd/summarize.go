package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newSummarizeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "summarize <url>",
		Short: "Summarizes one blog post and prints the result as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(appInstance App) error {
				result, err := appInstance.Summarize(cmd.Context(), args[0])
				if err != nil {
					appInstance.Logger().Error("summarize failed", zap.String("url", args[0]), zap.Error(err))
					return err
				}
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				if err := enc.Encode(result); err != nil {
					return fmt.Errorf("encode result: %w", err)
				}
				return nil
			})
		},
	}
}
