// Package health reports configuration and store connectivity at call time.
package health

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/JakeFAU/blog-summarizer/internal/blog"
	"github.com/JakeFAU/blog-summarizer/internal/config"
)

// StatusOK is reported for a healthy component.
const StatusOK = "ok"

const defaultTimeout = 10 * time.Second

// Report is the health body. It is always returned with 200; callers read the fields.
type Report struct {
	Env      string `json:"env"`
	Mongo    string `json:"mongo"`
	Supabase string `json:"supabase"`
}

// Pinger is satisfied by both stores.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Checker pings both stores and lists missing settings.
type Checker struct {
	missingEnv func() []string
	supabase   Pinger
	mongo      Pinger
	timeout    time.Duration
	logger     *zap.Logger
}

var (
	_ Pinger = blog.SummaryStore(nil)
	_ Pinger = blog.ArchiveStore(nil)
)

// NewChecker wires a Checker. A zero timeout uses 10s per ping.
func NewChecker(missingEnv func() []string, supabase, mongo Pinger, timeout time.Duration, logger *zap.Logger) *Checker {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Checker{
		missingEnv: missingEnv,
		supabase:   supabase,
		mongo:      mongo,
		timeout:    timeout,
		logger:     logger.Named("health"),
	}
}

// Check never fails; every problem is folded into the report strings.
func (c *Checker) Check(ctx context.Context) Report {
	var missing []string
	if c.missingEnv != nil {
		missing = c.missingEnv()
	}
	report := Report{Env: StatusOK}
	if len(missing) > 0 {
		report.Env = "missing: " + strings.Join(missing, ", ")
	}

	report.Mongo = c.ping(ctx, "mongo", c.mongo, contains(missing, config.EnvMongoURI))
	report.Supabase = c.ping(ctx, "supabase", c.supabase, contains(missing, config.EnvSupabaseDSN))
	return report
}

func (c *Checker) ping(ctx context.Context, name string, p Pinger, unset bool) string {
	if unset {
		return "error: environment variable not set"
	}
	if p == nil {
		return "error: client not configured"
	}
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	if err := p.Ping(ctx); err != nil {
		c.logger.Warn("health ping failed", zap.String("store", name), zap.Error(err))
		return "error: " + err.Error() + Hint(err)
	}
	return StatusOK
}

// Hint suggests a cause for common connection failures, or returns "".
func Hint(err error) string {
	if err == nil {
		return ""
	}
	lower := strings.ToLower(err.Error())
	switch {
	case strings.Contains(lower, "ssl") || strings.Contains(lower, "tls") || strings.Contains(lower, "x509"):
		return " (SSL/TLS configuration issue)"
	case strings.Contains(lower, "timeout") || strings.Contains(lower, "deadline exceeded"):
		return " (Connection timeout - check network access)"
	case strings.Contains(lower, "authentication"):
		return " (Authentication failed - check credentials)"
	default:
		return ""
	}
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
