package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JakeFAU/blog-summarizer/internal/config"
	"github.com/JakeFAU/blog-summarizer/internal/health"
	"github.com/JakeFAU/blog-summarizer/internal/pipeline"
	memorypublisher "github.com/JakeFAU/blog-summarizer/internal/publisher/memory"
)

func testConfig() *config.Config {
	return &config.Config{
		Server:     config.ServerConfig{Port: 0, RequestTimeout: 5 * time.Second},
		Fetch:      config.FetchConfig{Mode: "http", UserAgent: "test-agent", Timeout: time.Second},
		Extract:    config.ExtractConfig{Mode: "regex"},
		Summarizer: config.SummarizerConfig{Mode: config.ModeStatic},
		Translator: config.TranslatorConfig{Mode: config.ModeDictionary},
		Supabase:   config.SupabaseConfig{Table: "summaries"},
		Mongo:      config.MongoConfig{Database: "blog_summarizer", Collection: "blog_posts"},
		Snapshot:   config.SnapshotConfig{Backend: "none"},
		PubSub:     config.PubSubConfig{TopicName: "blog-summaries"},
		Telemetry:  config.TelemetryConfig{ServiceName: "blog-summarizer-test"},
	}
}

func TestBuildWithoutStoresStillServes(t *testing.T) {
	app, err := Build(context.Background(), testConfig())
	require.NoError(t, err)
	t.Cleanup(func() { app.Close(context.Background()) })

	rec := httptest.NewRecorder()
	app.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/health", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var report health.Report
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
	assert.Equal(t, "missing: "+config.EnvSupabaseDSN+", "+config.EnvMongoURI, report.Env)
	assert.Equal(t, "error: environment variable not set", report.Mongo)
	assert.Equal(t, "error: environment variable not set", report.Supabase)
}

func TestBuildPipelineReportsMissingConfig(t *testing.T) {
	app, err := Build(context.Background(), testConfig())
	require.NoError(t, err)
	t.Cleanup(func() { app.Close(context.Background()) })

	_, err = app.Summarize(context.Background(), "https://example.com/post")
	var cfgErr *pipeline.ConfigError
	require.True(t, errors.As(err, &cfgErr), "got %v", err)
	assert.Equal(t, http.StatusInternalServerError, pipeline.StatusCode(err))
}

func TestBuildMongoProbeWithoutURI(t *testing.T) {
	app, err := Build(context.Background(), testConfig())
	require.NoError(t, err)
	t.Cleanup(func() { app.Close(context.Background()) })

	require.Error(t, app.ProbeMongo(context.Background()))

	rec := httptest.NewRecorder()
	app.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/test-mongo", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), `"success":false`)
}

func TestBuildRejectsBadLocalSnapshotDir(t *testing.T) {
	file := filepath.Join(t.TempDir(), "not-a-dir")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o600))
	cfg := testConfig()
	cfg.Snapshot = config.SnapshotConfig{Backend: "local", BaseDir: file}

	_, err := Build(context.Background(), cfg)
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "local blob store"), "got %v", err)
}

func TestSetupPublisherDisabledWithoutProject(t *testing.T) {
	app, err := Build(context.Background(), testConfig())
	require.NoError(t, err)
	t.Cleanup(func() { app.Close(context.Background()) })

	pub, err := setupPublisher(context.Background(), app)
	require.NoError(t, err)
	assert.Nil(t, pub)
}

func TestSetupPublisherMemoryWhenAsked(t *testing.T) {
	cfg := testConfig()
	cfg.PubSub.Backend = "memory"
	app, err := Build(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { app.Close(context.Background()) })

	pub, err := setupPublisher(context.Background(), app)
	require.NoError(t, err)
	_, ok := pub.(*memorypublisher.Publisher)
	assert.True(t, ok, "expected in-memory publisher, got %T", pub)
}

func TestSetupSnapshotsDefaultsToNone(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)
	app, err := Build(context.Background(), testConfig())
	require.NoError(t, err)
	t.Cleanup(func() { app.Close(context.Background()) })

	app.cfg.Snapshot = cfg.Snapshot
	store, err := setupSnapshots(context.Background(), app)
	require.NoError(t, err)
	assert.Nil(t, store)
}

func TestSetupStoresUsesStandIns(t *testing.T) {
	app, err := Build(context.Background(), testConfig())
	require.NoError(t, err)
	t.Cleanup(func() { app.Close(context.Background()) })

	summaries, archive := setupStores(context.Background(), app)
	require.ErrorIs(t, summaries.Ping(context.Background()), pipeline.ErrStoreUnavailable)
	require.ErrorIs(t, archive.Ping(context.Background()), pipeline.ErrStoreUnavailable)
}

func TestRunStopsOnCancel(t *testing.T) {
	app, err := Build(context.Background(), testConfig())
	require.NoError(t, err)
	t.Cleanup(func() { app.Close(context.Background()) })

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.Run(ctx) }()
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
