// Package server builds the summarizer's dependency graph and runs it.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"cloud.google.com/go/pubsub"
	"cloud.google.com/go/storage"
	"go.uber.org/zap"

	"github.com/JakeFAU/blog-summarizer/internal/api"
	"github.com/JakeFAU/blog-summarizer/internal/blog"
	"github.com/JakeFAU/blog-summarizer/internal/clock/system"
	"github.com/JakeFAU/blog-summarizer/internal/config"
	"github.com/JakeFAU/blog-summarizer/internal/extract"
	collyfetcher "github.com/JakeFAU/blog-summarizer/internal/fetcher/colly"
	headlessfetcher "github.com/JakeFAU/blog-summarizer/internal/fetcher/headless"
	"github.com/JakeFAU/blog-summarizer/internal/fetcher/ratelimit"
	"github.com/JakeFAU/blog-summarizer/internal/hash/sha256"
	"github.com/JakeFAU/blog-summarizer/internal/health"
	"github.com/JakeFAU/blog-summarizer/internal/id/uuid"
	"github.com/JakeFAU/blog-summarizer/internal/llm"
	"github.com/JakeFAU/blog-summarizer/internal/logging"
	"github.com/JakeFAU/blog-summarizer/internal/metrics"
	"github.com/JakeFAU/blog-summarizer/internal/pipeline"
	memorypublisher "github.com/JakeFAU/blog-summarizer/internal/publisher/memory"
	gcppublisher "github.com/JakeFAU/blog-summarizer/internal/publisher/pubsub"
	gcsstorage "github.com/JakeFAU/blog-summarizer/internal/storage/gcs"
	localstorage "github.com/JakeFAU/blog-summarizer/internal/storage/local"
	memorystorage "github.com/JakeFAU/blog-summarizer/internal/storage/memory"
	mongostore "github.com/JakeFAU/blog-summarizer/internal/storage/mongo"
	pgstore "github.com/JakeFAU/blog-summarizer/internal/storage/postgres"
	"github.com/JakeFAU/blog-summarizer/internal/summarize"
	"github.com/JakeFAU/blog-summarizer/internal/telemetry"
	"github.com/JakeFAU/blog-summarizer/internal/translate"
)

const shutdownTimeout = 10 * time.Second

// App contains the application's dependencies.
type App struct {
	cfg            *config.Config
	logger         *zap.Logger
	apiServer      *api.Server
	pipeline       *pipeline.Service
	probe          api.MongoProbe
	headless       *headlessfetcher.Fetcher
	summaries      *pgstore.SummaryStore
	archive        *mongostore.ArchiveStore
	pubsubClient   *pubsub.Client
	publisher      *gcppublisher.Publisher
	storage        *storage.Client
	tracerShutdown func(context.Context) error
}

// NewApp creates an App with the given configuration.
func NewApp(cfg *config.Config, logger *zap.Logger) *App {
	logger.Info("creating application",
		zap.Int("server_port", cfg.Server.Port),
		zap.String("fetch_mode", cfg.Fetch.Mode),
		zap.String("summarizer_mode", cfg.Summarizer.Mode),
		zap.String("translator_mode", cfg.Translator.Mode),
		zap.String("snapshot_backend", cfg.Snapshot.Backend),
	)
	return &App{cfg: cfg, logger: logger}
}

// Logger returns the application logger.
func (a *App) Logger() *zap.Logger {
	return a.logger
}

// Summarize runs the pipeline once, for CLI use.
func (a *App) Summarize(ctx context.Context, rawURL string) (pipeline.Result, error) {
	return a.pipeline.Summarize(ctx, rawURL)
}

// ProbeMongo runs the throwaway connection check used by /api/test-mongo.
func (a *App) ProbeMongo(ctx context.Context) error {
	return a.probe(ctx)
}

// Handler returns the HTTP handler.
func (a *App) Handler() http.Handler {
	return a.apiServer.Handler()
}

// Run serves HTTP and blocks until the context is canceled or a signal arrives.
// In-flight requests get shutdownTimeout to finish. Callers Close the App afterwards.
func (a *App) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", a.cfg.Server.Port),
		Handler:           a.apiServer.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		a.logger.Info("http server started", zap.Int("port", a.cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.logger.Error("http server error", zap.Error(err))
			serveErr <- err
			stop()
		}
	}()

	<-ctx.Done()
	a.logger.Info("shutdown initiated")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("server shutdown error", zap.Error(err))
	}

	select {
	case err := <-serveErr:
		return fmt.Errorf("http server: %w", err)
	default:
		return nil
	}
}

// Close releases every client the App opened. It is safe on a partially built App.
func (a *App) Close(ctx context.Context) {
	a.closeInfrastructure(ctx)
	a.closeObservability(ctx)
	a.logger.Info("shutdown complete")
}

func (a *App) closeInfrastructure(ctx context.Context) {
	if a.summaries != nil {
		a.summaries.Close()
	}
	if a.archive != nil {
		if err := a.archive.Close(ctx); err != nil {
			a.logger.Warn("mongo disconnect failed", zap.Error(err))
		}
	}
	if a.publisher != nil {
		a.publisher.Close()
	}
	if a.pubsubClient != nil {
		if err := a.pubsubClient.Close(); err != nil {
			a.logger.Warn("pubsub client close failed", zap.Error(err))
		}
	}
	if a.storage != nil {
		if err := a.storage.Close(); err != nil {
			a.logger.Warn("gcs client close failed", zap.Error(err))
		}
	}
	if a.headless != nil {
		a.headless.Close()
	}
}

func (a *App) closeObservability(ctx context.Context) {
	if a.tracerShutdown != nil {
		if err := a.tracerShutdown(ctx); err != nil {
			a.logger.Warn("tracer shutdown failed", zap.Error(err))
		}
	}
	//nolint:errcheck // Sync on stderr returns EINVAL on some platforms.
	a.logger.Sync()
}

// Build creates the application's dependencies. Store clients that fail to
// build are replaced by stand-ins so the service still starts and reports
// the cause on /api/health and on each summarize call.
func Build(ctx context.Context, cfg *config.Config) (*App, error) {
	logger, err := logging.New(cfg.Logging.Development, cfg.Telemetry.ServiceName)
	if err != nil {
		return nil, fmt.Errorf("logger init failed: %w", err)
	}
	zap.ReplaceGlobals(logger)

	app := NewApp(cfg, logger)

	tp, err := telemetry.InitTracerProvider(ctx, cfg.Telemetry.ServiceName)
	if err != nil {
		return nil, fmt.Errorf("tracer init failed: %w", err)
	}
	app.tracerShutdown = tp.Shutdown
	metrics.Init()

	app.logger.Info("building application dependencies")
	fetcher, err := setupFetcher(app)
	if err != nil {
		app.Close(ctx)
		return nil, err
	}
	client := setupLLM(app)
	summaries, archive := setupStores(ctx, app)

	snapshots, err := setupSnapshots(ctx, app)
	if err != nil {
		app.Close(ctx)
		return nil, err
	}
	publisher, err := setupPublisher(ctx, app)
	if err != nil {
		app.Close(ctx)
		return nil, err
	}

	var hasher blog.Hasher
	if snapshots != nil {
		hasher = sha256.New()
	}
	app.pipeline, err = pipeline.New(pipeline.Dependencies{
		Fetcher:    fetcher,
		Extractor:  extract.New(cfg.Extract.Mode),
		Summarizer: summarize.New(cfg.Summarizer.Mode, client),
		Translator: translate.New(cfg.Translator.Mode, client),
		Summaries:  summaries,
		Archive:    archive,
		Snapshots:  snapshots,
		Publisher:  publisher,
		Hasher:     hasher,
		Clock:      system.New(),
	}, pipeline.Options{
		MissingEnv:          cfg.MissingEnv,
		SnapshotPrefix:      cfg.Snapshot.Prefix,
		SnapshotContentType: cfg.Snapshot.ContentType,
		Topic:               cfg.PubSub.TopicName,
	}, logger)
	if err != nil {
		app.Close(ctx)
		return nil, fmt.Errorf("pipeline init failed: %w", err)
	}

	mongoCfg := mongoConfig(cfg)
	app.probe = func(ctx context.Context) error {
		return mongostore.Probe(ctx, mongoCfg)
	}
	checker := health.NewChecker(cfg.MissingEnv, summaries, archive, 0, logger)

	app.apiServer = api.NewServer(
		app.pipeline,
		checker,
		app.probe,
		uuid.New(),
		system.New(),
		api.Options{RequestTimeout: cfg.Server.RequestTimeout},
		logger,
	)
	return app, nil
}

func setupFetcher(app *App) (blog.Fetcher, error) {
	fetcher, err := baseFetcher(app)
	if err != nil {
		return nil, err
	}
	if app.cfg.Fetch.RPS > 0 {
		app.logger.Info("per-host fetch limiter enabled",
			zap.Float64("rps", app.cfg.Fetch.RPS),
			zap.Int("burst", app.cfg.Fetch.Burst),
		)
	}
	return ratelimit.Wrap(fetcher, ratelimit.Config{RPS: app.cfg.Fetch.RPS, Burst: app.cfg.Fetch.Burst}), nil
}

func baseFetcher(app *App) (blog.Fetcher, error) {
	cfg := app.cfg.Fetch
	if cfg.Mode == "headless" {
		fetcher, err := headlessfetcher.NewChromedp(headlessfetcher.Config{
			MaxParallel:       2,
			UserAgent:         cfg.UserAgent,
			NavigationTimeout: cfg.Timeout,
			SettleDelay:       500 * time.Millisecond,
			BlockImages:       true,
		})
		if err != nil {
			return nil, fmt.Errorf("headless fetcher init failed: %w", err)
		}
		app.headless = fetcher
		app.logger.Info("using headless fetcher", zap.Duration("timeout", cfg.Timeout))
		return fetcher, nil
	}
	app.logger.Info("using colly fetcher", zap.Duration("timeout", cfg.Timeout))
	return collyfetcher.New(collyfetcher.Config{
		UserAgent: cfg.UserAgent,
		Timeout:   cfg.Timeout,
	}), nil
}

// setupLLM returns a client even when no key is set; the missing key then
// surfaces per request through MissingEnv.
func setupLLM(app *App) llm.Client {
	if !app.cfg.UsesLLM() {
		return llm.Unconfigured{}
	}
	client, err := llm.NewOpenAI(llm.Config{
		APIKey:  app.cfg.LLM.APIKey,
		BaseURL: app.cfg.LLM.BaseURL,
		Model:   app.cfg.LLM.Model,
		Timeout: app.cfg.LLM.Timeout,
	})
	if err != nil {
		app.logger.Warn("llm client unavailable", zap.Error(err))
		return llm.Unconfigured{}
	}
	app.logger.Info("llm client initialized", zap.String("model", app.cfg.LLM.Model))
	return client
}

func setupStores(ctx context.Context, app *App) (blog.SummaryStore, blog.ArchiveStore) {
	var summaries blog.SummaryStore
	var archive blog.ArchiveStore

	if app.cfg.Supabase.DSN == "" {
		app.logger.Warn("no supabase DSN configured")
		summaries = pipeline.UnavailableStore{Err: pgstore.ErrNotConfigured}
	} else {
		store, err := pgstore.NewSummaryStore(ctx, pgstore.Config{
			DSN:             app.cfg.Supabase.DSN,
			Table:           app.cfg.Supabase.Table,
			MaxConns:        app.cfg.Supabase.MaxConns,
			MaxConnLifetime: app.cfg.Supabase.MaxConnLifetime,
		})
		if err != nil {
			app.logger.Error("summary store init failed", zap.Error(err))
			summaries = pipeline.UnavailableStore{Err: err}
		} else {
			app.summaries = store
			summaries = store
			app.logger.Info("summary store initialized", zap.String("table", app.cfg.Supabase.Table))
		}
	}

	if app.cfg.Mongo.URI == "" {
		app.logger.Warn("no mongo URI configured")
		archive = pipeline.UnavailableStore{Err: mongostore.ErrNotConnected}
	} else {
		store, err := mongostore.NewArchiveStore(ctx, mongoConfig(app.cfg))
		if err != nil {
			app.logger.Error("archive store init failed", zap.Error(err))
			archive = pipeline.UnavailableStore{Err: err}
		} else {
			app.archive = store
			archive = store
			app.logger.Info("archive store initialized",
				zap.String("database", app.cfg.Mongo.Database),
				zap.String("collection", app.cfg.Mongo.Collection),
			)
		}
	}
	return summaries, archive
}

func mongoConfig(cfg *config.Config) mongostore.Config {
	return mongostore.Config{
		URI:                    cfg.Mongo.URI,
		Database:               cfg.Mongo.Database,
		Collection:             cfg.Mongo.Collection,
		MaxPoolSize:            cfg.Mongo.MaxPoolSize,
		ServerSelectionTimeout: cfg.Mongo.ServerSelectionTimeout,
		SocketTimeout:          cfg.Mongo.SocketTimeout,
	}
}

func setupSnapshots(ctx context.Context, app *App) (blog.BlobStore, error) {
	switch app.cfg.Snapshot.Backend {
	case "none":
		app.logger.Info("raw html snapshots disabled")
		return nil, nil
	case "gcs":
		client, err := gcsstorage.NewClient(ctx)
		if err != nil {
			return nil, fmt.Errorf("gcs client init failed: %w", err)
		}
		app.storage = client
		store, err := gcsstorage.New(client, gcsstorage.Config{Bucket: app.cfg.Snapshot.Bucket})
		if err != nil {
			return nil, fmt.Errorf("gcs blob store init failed: %w", err)
		}
		app.logger.Info("using GCS snapshot backend", zap.String("bucket", app.cfg.Snapshot.Bucket))
		return store, nil
	case "local":
		store, err := localstorage.New(localstorage.Config{BaseDir: app.cfg.Snapshot.BaseDir})
		if err != nil {
			return nil, fmt.Errorf("local blob store init failed: %w", err)
		}
		app.logger.Info("using local snapshot backend", zap.String("path", app.cfg.Snapshot.BaseDir))
		return store, nil
	default:
		app.logger.Warn("using in-memory snapshot backend, snapshots are kept until restart")
		return memorystorage.NewBlobStore(), nil
	}
}

func setupPublisher(ctx context.Context, app *App) (blog.Publisher, error) {
	cfg := app.cfg.PubSub
	backend := cfg.Backend
	if backend == "" {
		backend = "none"
		if cfg.ProjectID != "" {
			backend = "gcp"
		}
	}
	if cfg.TopicName == "" {
		backend = "none"
	}
	switch backend {
	case "none":
		app.logger.Info("summary notifications disabled")
		return nil, nil
	case "memory":
		app.logger.Warn("using in-memory publisher, messages are kept until restart")
		return memorypublisher.New(), nil
	}
	client, err := pubsub.NewClient(ctx, app.cfg.PubSub.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("pubsub client init failed: %w", err)
	}
	app.pubsubClient = client
	app.publisher = gcppublisher.New(client)
	app.logger.Info("Pub/Sub publisher initialized",
		zap.String("project", app.cfg.PubSub.ProjectID),
		zap.String("topic", app.cfg.PubSub.TopicName),
	)
	return app.publisher, nil
}
