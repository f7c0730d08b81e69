// Package cmd defines the CLI commands for the blog-summarizer executable.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/JakeFAU/blog-summarizer/internal/config"
	"github.com/JakeFAU/blog-summarizer/internal/pipeline"
	"github.com/JakeFAU/blog-summarizer/internal/server"
)

var cfgFile string

type appKeyType string

const appKey appKeyType = "app"

// App is the slice of the server application the commands drive. Tests swap
// in a fake through newApp.
type App interface {
	Run(ctx context.Context) error
	Close(ctx context.Context)
	Summarize(ctx context.Context, rawURL string) (pipeline.Result, error)
	ProbeMongo(ctx context.Context) error
	Logger() *zap.Logger
}

// newApp is the application factory.
var newApp = func(ctx context.Context, path string) (App, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	app, err := server.Build(ctx, &cfg)
	if err != nil {
		return nil, err
	}
	return app, nil
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "blog-summarizer",
		Short: "Summarizes blog posts in English and Urdu.",
		Long: `blog-summarizer fetches a blog post, extracts its text, writes a short
summary with an Urdu rendering, and stores the results in Postgres and MongoDB.`,
		SilenceUsage: true,

		// Builds the application once config is known and hands it to the subcommand.
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			appInstance, err := newApp(cmd.Context(), cfgFile)
			if err != nil {
				return fmt.Errorf("failed to initialize application services: %w", err)
			}
			cmd.SetContext(context.WithValue(cmd.Context(), appKey, appInstance))
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (YAML); env vars override it")

	cmd.AddCommand(newServeCmd())
	cmd.AddCommand(newSummarizeCmd())
	cmd.AddCommand(newTestMongoCmd())
	return cmd
}

func resolveApp(ctx context.Context) (App, error) {
	appInstance, ok := ctx.Value(appKey).(App)
	if !ok || appInstance == nil {
		return nil, errors.New("application services not initialized")
	}
	return appInstance, nil
}

// withApp runs fn against the application and closes it afterwards, also
// when fn fails. Cobra skips post-run hooks after a RunE error.
func withApp(cmd *cobra.Command, fn func(App) error) error {
	appInstance, err := resolveApp(cmd.Context())
	if err != nil {
		return err
	}
	defer appInstance.Close(context.WithoutCancel(cmd.Context()))
	return fn(appInstance)
}

// Execute is the main entry point.
func Execute() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
