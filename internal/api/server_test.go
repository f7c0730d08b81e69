package api

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/JakeFAU/blog-summarizer/internal/blog"
	"github.com/JakeFAU/blog-summarizer/internal/clock/system"
	"github.com/JakeFAU/blog-summarizer/internal/extract"
	"github.com/JakeFAU/blog-summarizer/internal/health"
	"github.com/JakeFAU/blog-summarizer/internal/pipeline"
	"github.com/JakeFAU/blog-summarizer/internal/storage/mongo"
	"github.com/JakeFAU/blog-summarizer/internal/summarize"
	"github.com/JakeFAU/blog-summarizer/internal/translate"
)

const samplePage = `<html><title>Foo</title><body><script>bad()</script><p>Hello. World!</p></body></html>`

func TestSummarize_EmptyBodyObjectIs400(t *testing.T) {
	t.Parallel()

	srv, _ := newTestServer(t, nil)
	rec := do(srv, http.MethodPost, "/api/summarize", `{}`)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.JSONEq(t, `{"error":"No URL provided"}`, rec.Body.String())
	require.Equal(t, "application/json", rec.Header().Get("Content-Type"))
}

func TestSummarize_MissingConfigIs500(t *testing.T) {
	t.Parallel()

	srv, _ := newTestServer(t, []string{"SUMMARIZER_SUPABASE_DSN", "SUMMARIZER_MONGO_URI"})
	rec := do(srv, http.MethodPost, "/api/summarize", `{"url":"https://example.com"}`)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.JSONEq(t, `{"error":"Missing environment variables: SUMMARIZER_SUPABASE_DSN, SUMMARIZER_MONGO_URI"}`, rec.Body.String())
}

func TestSummarize_MalformedJSONIs500(t *testing.T) {
	t.Parallel()

	srv, _ := newTestServer(t, nil)
	rec := do(srv, http.MethodPost, "/api/summarize", `{invalid`)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.Contains(t, rec.Body.String(), "invalid JSON body")
}

func TestSummarize_Succeeds(t *testing.T) {
	t.Parallel()

	srv, fetcher := newTestServer(t, nil)
	rec := do(srv, http.MethodPost, "/api/summarize", `{"url":"https://example.com/post"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"title":"Foo","summary":"Foo Hello. World!","summary_urdu":"Foo Hello. World!"}`, rec.Body.String())
	require.Equal(t, "https://example.com/post", fetcher.lastURL)
}

func TestSummarize_StatusMapping(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		body string
		err  error
		code int
		want string
	}{
		{"ok", samplePage, nil, http.StatusOK, ""},
		{"script only", "<script>x()</script>", nil, http.StatusUnprocessableEntity, "Could not extract text"},
		{"fetch failure", "", errors.New("dial tcp: connection refused"), http.StatusInternalServerError, pipeline.FetchFailedMessage},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			srv, fetcher := newTestServer(t, nil)
			fetcher.body = tc.body
			fetcher.err = tc.err
			rec := do(srv, http.MethodPost, "/api/summarize", `{"url":"https://example.com"}`)
			require.Equal(t, tc.code, rec.Code)
			if tc.want != "" {
				require.JSONEq(t, fmt.Sprintf(`{"error":%q}`, tc.want), rec.Body.String())
			}
		})
	}
}

func TestSummarize_TimeoutIs500JSON(t *testing.T) {
	t.Parallel()

	slow := &slowSummarizer{delay: 200 * time.Millisecond, done: make(chan struct{})}
	srv := NewServer(slow, nil, nil, fixedID("req"), system.New(), Options{RequestTimeout: 50 * time.Millisecond}, zap.NewNop())
	rec := do(srv, http.MethodPost, "/api/summarize", `{"url":"https://example.com"}`)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	require.JSONEq(t, `{"error":"request timed out"}`, rec.Body.String())

	select {
	case <-slow.done:
	case <-time.After(2 * time.Second):
		t.Fatal("summarize run did not finish after the client was answered")
	}
}

func TestSummarize_FastRunBeatsTimeout(t *testing.T) {
	t.Parallel()

	slow := &slowSummarizer{result: pipeline.Result{Title: "T", Summary: "S.", SummaryUrdu: "S."}, done: make(chan struct{})}
	srv := NewServer(slow, nil, nil, fixedID("req"), system.New(), Options{RequestTimeout: time.Second}, zap.NewNop())
	rec := do(srv, http.MethodPost, "/api/summarize", `{"url":"https://example.com"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"title":"T","summary":"S.","summary_urdu":"S."}`, rec.Body.String())
}

func TestSummarize_PanicWithTimeoutIs500(t *testing.T) {
	t.Parallel()

	srv := NewServer(panicSummarizer{}, nil, nil, nil, system.New(), Options{RequestTimeout: time.Second}, zap.NewNop())
	rec := do(srv, http.MethodPost, "/api/summarize", `{"url":"https://example.com"}`)
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.JSONEq(t, `{"error":"internal server error"}`, rec.Body.String())
}

func TestSummarize_OversizedBodyIs500(t *testing.T) {
	t.Parallel()

	srv, fetcher := newTestServer(t, nil)
	body := `{"url":"https://example.com/` + strings.Repeat("a", maxBodyBytes) + `"}`
	rec := do(srv, http.MethodPost, "/api/summarize", body)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.Contains(t, rec.Body.String(), "invalid JSON body")
	require.Contains(t, rec.Body.String(), "request body too large")
	require.Empty(t, fetcher.lastURL)
}

func TestHealth_NotCutByRequestTimeout(t *testing.T) {
	t.Parallel()

	checker := slowChecker{delay: 200 * time.Millisecond}
	srv := NewServer(nil, checker, nil, nil, system.New(), Options{RequestTimeout: 50 * time.Millisecond}, zap.NewNop())
	rec := do(srv, http.MethodGet, "/api/health", "")

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	require.JSONEq(t, `{"env":"ok","mongo":"ok","supabase":"ok"}`, rec.Body.String())
}

func TestHealth_AlwaysOK(t *testing.T) {
	t.Parallel()

	checker := health.NewChecker(
		func() []string { return []string{"SUMMARIZER_MONGO_URI"} },
		stubPinger{err: errors.New("ping postgres: i/o timeout")},
		stubPinger{},
		time.Second,
		zap.NewNop(),
	)
	srv := NewServer(nil, checker, nil, nil, system.Fixed(time.Unix(0, 0)), Options{}, zap.NewNop())
	rec := do(srv, http.MethodGet, "/api/health", "")

	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{
		"env": "missing: SUMMARIZER_MONGO_URI",
		"mongo": "error: environment variable not set",
		"supabase": "error: ping postgres: i/o timeout (Connection timeout - check network access)"
	}`, rec.Body.String())
}

func TestTestMongo(t *testing.T) {
	t.Parallel()

	at := system.Fixed(time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC))
	cases := []struct {
		name  string
		probe MongoProbe
		code  int
		want  string
	}{
		{
			"success",
			func(context.Context) error { return nil },
			http.StatusOK,
			`{"success":true,"message":"MongoDB connection successful","timestamp":"2024-05-01T12:00:00.000Z"}`,
		},
		{
			"ping failure",
			func(context.Context) error { return errors.New("server selection timeout") },
			http.StatusOK,
			`{"success":false,"message":"MongoDB connection failed","timestamp":"2024-05-01T12:00:00.000Z"}`,
		},
		{
			"setup failure",
			func(context.Context) error { return fmt.Errorf("%w: error parsing uri", mongo.ErrClientSetup) },
			http.StatusInternalServerError,
			`{"success":false,"error":"mongo client setup failed: error parsing uri","timestamp":"2024-05-01T12:00:00.000Z"}`,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			srv := NewServer(nil, nil, tc.probe, nil, at, Options{}, zap.NewNop())
			rec := do(srv, http.MethodGet, "/api/test-mongo", "")
			require.Equal(t, tc.code, rec.Code)
			require.JSONEq(t, tc.want, rec.Body.String())
		})
	}
}

func TestRequestIDMiddleware(t *testing.T) {
	t.Parallel()

	srv := NewServer(nil, nil, nil, fixedID("req-1"), system.New(), Options{}, zap.NewNop())
	rec := do(srv, http.MethodGet, "/healthz", "")
	require.Equal(t, "req-1", rec.Header().Get("X-Request-ID"))

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("X-Request-ID", "upstream")
	rec = httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	require.Equal(t, "upstream", rec.Header().Get("X-Request-ID"))
}

func TestRecoverMiddleware(t *testing.T) {
	t.Parallel()

	srv := NewServer(panicSummarizer{}, nil, nil, nil, system.New(), Options{}, zap.NewNop())
	rec := do(srv, http.MethodPost, "/api/summarize", `{"url":"https://example.com"}`)
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.JSONEq(t, `{"error":"internal server error"}`, rec.Body.String())
}

func TestMetricsEndpoint(t *testing.T) {
	t.Parallel()

	srv := NewServer(nil, nil, nil, nil, system.New(), Options{RequestTimeout: time.Second}, zap.NewNop())
	_ = do(srv, http.MethodGet, "/healthz", "")
	rec := do(srv, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "http_requests_total")
}

func TestResponseWriterHijackBehavior(t *testing.T) {
	t.Parallel()

	rw := &responseWriter{ResponseWriter: httptest.NewRecorder()}
	if _, _, err := rw.Hijack(); err == nil || err.Error() != "hijacker not supported" {
		t.Fatalf("expected unsupported hijacker error, got %v", err)
	}

	h := &hijackableRecorder{ResponseRecorder: httptest.NewRecorder()}
	rw = &responseWriter{ResponseWriter: h}
	conn, buf, err := rw.Hijack()
	if err != nil {
		t.Fatalf("expected successful hijack, got %v", err)
	}
	if err := conn.Close(); err != nil {
		t.Fatalf("close hijacked conn: %v", err)
	}
	if err := h.CloseClient(); err != nil {
		t.Fatalf("close hijacked client: %v", err)
	}
	if buf == nil {
		t.Fatal("expected buf to be non-nil")
	}
}

// --- helpers/fakes ---

func do(srv *Server, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
	}
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	return rec
}

func newTestServer(t *testing.T, missing []string) (*Server, *fakeFetcher) {
	t.Helper()
	fetcher := &fakeFetcher{body: samplePage}
	svc, err := pipeline.New(pipeline.Dependencies{
		Fetcher:    fetcher,
		Extractor:  extract.NewRegex(),
		Summarizer: summarize.NewStatic(),
		Translator: translate.NewDictionary(),
		Summaries:  okStore{},
		Archive:    okStore{},
		Clock:      system.New(),
	}, pipeline.Options{MissingEnv: func() []string { return missing }}, zap.NewNop())
	require.NoError(t, err)
	return NewServer(svc, nil, nil, fixedID("req"), system.New(), Options{}, zap.NewNop()), fetcher
}

type fakeFetcher struct {
	body    string
	err     error
	lastURL string
}

func (f *fakeFetcher) Fetch(_ context.Context, req blog.FetchRequest) (blog.FetchResponse, error) {
	f.lastURL = req.URL
	if f.err != nil {
		return blog.FetchResponse{}, f.err
	}
	return blog.FetchResponse{URL: req.URL, StatusCode: http.StatusOK, Body: []byte(f.body)}, nil
}

type okStore struct{}

func (okStore) SaveSummary(context.Context, blog.SummaryRecord) error   { return nil }
func (okStore) SaveBlogPost(context.Context, blog.BlogPostRecord) error { return nil }
func (okStore) Ping(context.Context) error                              { return nil }

type stubPinger struct{ err error }

func (s stubPinger) Ping(context.Context) error { return s.err }

type fixedID string

func (f fixedID) NewID() (string, error) { return string(f), nil }

type slowSummarizer struct {
	delay  time.Duration
	result pipeline.Result
	done   chan struct{}
}

func (s *slowSummarizer) Summarize(context.Context, string) (pipeline.Result, error) {
	defer close(s.done)
	time.Sleep(s.delay)
	return s.result, nil
}

type slowChecker struct{ delay time.Duration }

func (c slowChecker) Check(context.Context) health.Report {
	time.Sleep(c.delay)
	return health.Report{Env: health.StatusOK, Mongo: health.StatusOK, Supabase: health.StatusOK}
}

type panicSummarizer struct{}

func (panicSummarizer) Summarize(context.Context, string) (pipeline.Result, error) {
	panic("boom")
}

type hijackableRecorder struct {
	*httptest.ResponseRecorder
	client net.Conn
}

func (h *hijackableRecorder) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	server, client := net.Pipe()
	h.client = client
	return server, bufio.NewReadWriter(bufio.NewReader(client), bufio.NewWriter(client)), nil
}

func (h *hijackableRecorder) CloseClient() error {
	if h.client != nil {
		if err := h.client.Close(); err != nil {
			return fmt.Errorf("close hijacker client: %w", err)
		}
	}
	return nil
}

