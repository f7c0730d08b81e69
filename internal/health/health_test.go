package health

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JakeFAU/blog-summarizer/internal/config"
)

type stubPinger struct {
	err   error
	block bool
}

func (s stubPinger) Ping(ctx context.Context) error {
	if s.block {
		<-ctx.Done()
		return ctx.Err()
	}
	return s.err
}

func TestCheckAllHealthy(t *testing.T) {
	t.Parallel()

	c := NewChecker(func() []string { return nil }, stubPinger{}, stubPinger{}, time.Second, nil)
	require.Equal(t, Report{Env: "ok", Mongo: "ok", Supabase: "ok"}, c.Check(context.Background()))
}

func TestCheckMissingEnv(t *testing.T) {
	t.Parallel()

	missing := []string{config.EnvSupabaseDSN, config.EnvMongoURI}
	c := NewChecker(func() []string { return missing }, stubPinger{}, stubPinger{}, time.Second, nil)
	report := c.Check(context.Background())

	assert.Equal(t, "missing: SUMMARIZER_SUPABASE_DSN, SUMMARIZER_MONGO_URI", report.Env)
	assert.Equal(t, "error: environment variable not set", report.Mongo)
	assert.Equal(t, "error: environment variable not set", report.Supabase)
}

func TestCheckReportsPingErrorsWithHints(t *testing.T) {
	t.Parallel()

	c := NewChecker(nil,
		stubPinger{err: errors.New("ping postgres: FATAL: password authentication failed for user \"postgres\"")},
		stubPinger{block: true},
		20*time.Millisecond,
		nil,
	)
	report := c.Check(context.Background())

	assert.Equal(t, "ok", report.Env)
	assert.Equal(t, "error: context deadline exceeded (Connection timeout - check network access)", report.Mongo)
	assert.Contains(t, report.Supabase, "(Authentication failed - check credentials)")
}

func TestCheckNilClients(t *testing.T) {
	t.Parallel()

	report := NewChecker(nil, nil, nil, 0, nil).Check(context.Background())
	assert.Equal(t, "error: client not configured", report.Mongo)
	assert.Equal(t, "error: client not configured", report.Supabase)
}

func TestHint(t *testing.T) {
	t.Parallel()

	cases := []struct {
		err  error
		want string
	}{
		{nil, ""},
		{errors.New("connection() error occurred during connection handshake: remote error: tls: internal error"), " (SSL/TLS configuration issue)"},
		{errors.New("SSL routines:ssl3_read_bytes:tlsv1 alert internal error"), " (SSL/TLS configuration issue)"},
		{errors.New("x509: certificate signed by unknown authority"), " (SSL/TLS configuration issue)"},
		{errors.New("server selection timeout"), " (Connection timeout - check network access)"},
		{errors.New("connection(): auth error: sasl conversation error: unable to authenticate using mechanism \"SCRAM-SHA-1\": (AtlasError) bad auth : authentication failed"), " (Authentication failed - check credentials)"},
		{errors.New("no such host"), ""},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Hint(tc.err), "%v", tc.err)
	}
}
