package cmd

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/JakeFAU/blog-summarizer/internal/pipeline"
)

type fakeApp struct {
	result   pipeline.Result
	err      error
	probeErr error
	ran      bool
	closed   bool
	gotURL   string
}

func (f *fakeApp) Run(context.Context) error {
	f.ran = true
	return f.err
}

func (f *fakeApp) Close(context.Context)            { f.closed = true }
func (f *fakeApp) Logger() *zap.Logger              { return zap.NewNop() }
func (f *fakeApp) ProbeMongo(context.Context) error { return f.probeErr }

func (f *fakeApp) Summarize(_ context.Context, rawURL string) (pipeline.Result, error) {
	f.gotURL = rawURL
	return f.result, f.err
}

// withFakeApp swaps the factory; tests using it must not run in parallel.
func withFakeApp(t *testing.T, app *fakeApp) {
	t.Helper()
	orig := newApp
	newApp = func(context.Context, string) (App, error) { return app, nil }
	t.Cleanup(func() { newApp = orig })
}

func execute(args ...string) (string, error) {
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestSummarizeCommandPrintsJSON(t *testing.T) {
	app := &fakeApp{result: pipeline.Result{Title: "Foo", Summary: "Hello.", SummaryUrdu: "ہیلو."}}
	withFakeApp(t, app)

	out, err := execute("summarize", "https://example.com/post")
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/post", app.gotURL)
	assert.Contains(t, out, `"title": "Foo"`)
	assert.Contains(t, out, `"summary_urdu": "ہیلو."`)
	assert.True(t, app.closed)
}

func TestSummarizeCommandNeedsURL(t *testing.T) {
	withFakeApp(t, &fakeApp{})

	_, err := execute("summarize")
	require.Error(t, err)
}

func TestSummarizeCommandReturnsPipelineError(t *testing.T) {
	app := &fakeApp{err: &pipeline.ConfigError{Missing: []string{"SUMMARIZER_MONGO_URI"}}}
	withFakeApp(t, app)

	_, err := execute("summarize", "https://example.com")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Missing environment variables: SUMMARIZER_MONGO_URI")
	assert.True(t, app.closed, "app must be closed when the command fails")
}

func TestTestMongoCommand(t *testing.T) {
	withFakeApp(t, &fakeApp{})
	out, err := execute("test-mongo")
	require.NoError(t, err)
	assert.Contains(t, out, "MongoDB connection successful")

	failing := &fakeApp{probeErr: errors.New("server selection timeout")}
	withFakeApp(t, failing)
	_, err = execute("test-mongo")
	require.Error(t, err)
	assert.True(t, strings.HasSuffix(err.Error(), "(Connection timeout - check network access)"), "got %v", err)
	assert.True(t, failing.closed)
}

func TestServeCommandClosesAppOnRunError(t *testing.T) {
	app := &fakeApp{err: errors.New("listen tcp :8080: address already in use")}
	withFakeApp(t, app)

	_, err := execute("serve")
	require.Error(t, err)
	assert.True(t, app.ran)
	assert.True(t, app.closed)
}

func TestServeCommandRunsApp(t *testing.T) {
	app := &fakeApp{}
	withFakeApp(t, app)

	_, err := execute("serve")
	require.NoError(t, err)
	assert.True(t, app.ran)
	assert.True(t, app.closed)
}

func TestFactoryErrorStopsCommand(t *testing.T) {
	orig := newApp
	newApp = func(context.Context, string) (App, error) { return nil, errors.New("boom") }
	t.Cleanup(func() { newApp = orig })

	_, err := execute("serve")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to initialize application services: boom")
}

func TestResolveAppWithoutApp(t *testing.T) {
	_, err := resolveApp(context.Background())
	require.Error(t, err)
}
