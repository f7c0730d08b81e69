// Package ratelimit spaces out fetches to the same host with a token bucket per host.
package ratelimit

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/JakeFAU/blog-summarizer/internal/blog"
	"github.com/JakeFAU/blog-summarizer/internal/metrics"
)

// Config holds rate limiter configuration. A non-positive RPS disables limiting.
type Config struct {
	RPS   float64
	Burst int
}

// defaultMaxHosts is the host count above which idle buckets are dropped.
const defaultMaxHosts = 1024

// Limiter manages per-host token buckets. A bucket that has refilled to its
// burst behaves exactly like a new one, so such buckets are dropped once the
// map grows past maxHosts.
type Limiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	rate     rate.Limit
	burst    int
	maxHosts int
}

// New creates a Limiter.
func New(cfg Config) *Limiter {
	r := rate.Limit(cfg.RPS)
	if cfg.RPS <= 0 {
		r = rate.Inf
	}
	burst := cfg.Burst
	if burst <= 0 {
		burst = 1
	}
	return &Limiter{
		limiters: make(map[string]*rate.Limiter),
		rate:     r,
		burst:    burst,
		maxHosts: defaultMaxHosts,
	}
}

// Wait blocks until rawURL's host may be fetched or ctx ends.
func (l *Limiter) Wait(ctx context.Context, rawURL string) error {
	if l.rate == rate.Inf {
		return nil
	}
	limiter := l.limiterFor(metrics.SanitizeSite(rawURL))

	start := time.Now()
	if err := limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait: %w", err)
	}
	if waited := time.Since(start); waited > time.Millisecond {
		metrics.ObserveRateLimitDelay(waited)
	}
	return nil
}

func (l *Limiter) limiterFor(host string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	if limiter, ok := l.limiters[host]; ok {
		return limiter
	}
	if len(l.limiters) >= l.maxHosts {
		l.evictIdleLocked(time.Now())
	}
	limiter := rate.NewLimiter(l.rate, l.burst)
	l.limiters[host] = limiter
	return limiter
}

// evictIdleLocked drops every bucket that is full at now. Callers hold l.mu.
func (l *Limiter) evictIdleLocked(now time.Time) {
	full := float64(l.burst)
	for host, limiter := range l.limiters {
		if limiter.TokensAt(now) >= full {
			delete(l.limiters, host)
		}
	}
}

func (l *Limiter) hosts() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.limiters)
}

// Fetcher waits on a Limiter before delegating to the wrapped fetcher.
type Fetcher struct {
	next    blog.Fetcher
	limiter *Limiter
}

// Wrap returns next unchanged when limiting is disabled.
func Wrap(next blog.Fetcher, cfg Config) blog.Fetcher {
	if cfg.RPS <= 0 {
		return next
	}
	return &Fetcher{next: next, limiter: New(cfg)}
}

// Fetch implements blog.Fetcher.
func (f *Fetcher) Fetch(ctx context.Context, request blog.FetchRequest) (blog.FetchResponse, error) {
	if err := f.limiter.Wait(ctx, request.URL); err != nil {
		return blog.FetchResponse{}, err
	}
	return f.next.Fetch(ctx, request)
}
