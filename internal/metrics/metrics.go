// Package metrics exposes Prometheus collectors for the summarizer service.
package metrics

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	summarizeRequestsTotal     *prometheus.CounterVec
	stageDurationSeconds       *prometheus.HistogramVec
	storeWriteFailuresTotal    *prometheus.CounterVec
	sideEffectFailuresTotal    *prometheus.CounterVec
	fetchedBytesTotal          prometheus.Counter
	rateLimitDelaySeconds      prometheus.Histogram
	httpRequestsTotal          *prometheus.CounterVec
	httpRequestDurationSeconds *prometheus.HistogramVec

	once sync.Once
)

// Init initializes the Prometheus metrics collectors.
// It is safe to call this function multiple times.
func Init() {
	once.Do(func() {
		summarizeRequestsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "summarizer_requests_total",
				Help: "Total number of summarize pipeline runs, labeled by outcome.",
			},
			[]string{"outcome"},
		)

		stageDurationSeconds = promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "summarizer_stage_duration_seconds",
				Help:    "Histogram of pipeline stage latencies, labeled by stage.",
				Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 30},
			},
			[]string{"stage"},
		)

		storeWriteFailuresTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "summarizer_store_write_failures_total",
				Help: "Total number of failed record writes, labeled by store.",
			},
			[]string{"store"},
		)

		sideEffectFailuresTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "summarizer_side_effect_failures_total",
				Help: "Best-effort work that failed without failing the request, labeled by kind.",
			},
			[]string{"kind"},
		)

		// Hosts come from user input, so these two carry no site label.
		fetchedBytesTotal = promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "summarizer_fetched_bytes_total",
				Help: "Total number of HTML bytes fetched.",
			},
		)

		rateLimitDelaySeconds = promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "summarizer_rate_limit_delay_seconds",
				Help:    "Time spent waiting on the per-host fetch limiter.",
				Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 2, 5},
			},
		)

		httpRequestsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests, labeled by method and code.",
			},
			[]string{"method", "code"},
		)

		httpRequestDurationSeconds = promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "Histogram of HTTP request latencies, labeled by method and route.",
				Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 30},
			},
			[]string{"method", "route"},
		)
	})
}

// SanitizeSite sanitizes a URL to extract a lowercase hostname.
// Its result must not be used as a label value for user-submitted URLs.
// It returns "unknown" if the URL is invalid.
func SanitizeSite(rawURL string) string {
	if !strings.HasPrefix(rawURL, "http") {
		rawURL = "http://" + rawURL
	}
	u, err := url.Parse(rawURL)
	if err != nil || u.Hostname() == "" {
		return "unknown"
	}
	return strings.ToLower(u.Hostname())
}

// Handler returns an http.Handler for exposing Prometheus metrics.
func Handler() http.Handler {
	return promhttp.Handler()
}

// ObserveOutcome counts one finished pipeline run.
func ObserveOutcome(outcome string) {
	Init()
	summarizeRequestsTotal.WithLabelValues(outcome).Inc()
}

// ObserveStage records how long a pipeline stage took, whether or not it succeeded.
func ObserveStage(stage string, duration time.Duration) {
	Init()
	stageDurationSeconds.WithLabelValues(stage).Observe(duration.Seconds())
}

// ObserveStoreWriteFailure counts a failed write to the named store.
func ObserveStoreWriteFailure(store string) {
	Init()
	storeWriteFailuresTotal.WithLabelValues(store).Inc()
}

// ObserveSideEffectFailure counts a failed snapshot or notification.
func ObserveSideEffectFailure(kind string) {
	Init()
	sideEffectFailuresTotal.WithLabelValues(kind).Inc()
}

// ObserveFetch adds the size of a fetched page.
func ObserveFetch(bytesFetched int) {
	Init()
	if bytesFetched > 0 {
		fetchedBytesTotal.Add(float64(bytesFetched))
	}
}

// ObserveRateLimitDelay records a non-trivial wait imposed by the fetch limiter.
func ObserveRateLimitDelay(delay time.Duration) {
	Init()
	rateLimitDelaySeconds.Observe(delay.Seconds())
}

// ObserveHTTPRequest increments the HTTP request metrics.
func ObserveHTTPRequest(method, route string, code int, duration time.Duration) {
	Init()
	httpRequestsTotal.WithLabelValues(method, strconv.Itoa(code)).Inc()
	httpRequestDurationSeconds.WithLabelValues(method, route).Observe(duration.Seconds())
}
