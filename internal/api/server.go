package api

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/JakeFAU/blog-summarizer/internal/blog"
	"github.com/JakeFAU/blog-summarizer/internal/health"
	"github.com/JakeFAU/blog-summarizer/internal/metrics"
	"github.com/JakeFAU/blog-summarizer/internal/pipeline"
	"github.com/JakeFAU/blog-summarizer/internal/storage/mongo"
)

// Summarizer runs the pipeline for one URL.
type Summarizer interface {
	Summarize(ctx context.Context, rawURL string) (pipeline.Result, error)
}

// HealthChecker builds the /api/health report.
type HealthChecker interface {
	Check(ctx context.Context) health.Report
}

// MongoProbe opens a throwaway connection and pings it.
type MongoProbe func(ctx context.Context) error

// maxBodyBytes caps the summarize request body.
const maxBodyBytes = 64 << 10

// errRequestTimeout answers a client whose summarize run outlived RequestTimeout.
var errRequestTimeout = errors.New("request timed out")

// Options configure a Server.
type Options struct {
	// RequestTimeout bounds how long a summarize client waits. A run that
	// outlives it is answered with a 500 and keeps going in the background.
	// Health and diagnostics routes are not limited.
	RequestTimeout time.Duration
}

// Server wires HTTP handlers to the pipeline and diagnostics.
type Server struct {
	router     chi.Router
	summarizer Summarizer
	health     HealthChecker
	probe      MongoProbe
	idGen      blog.IDGenerator
	clock      blog.Clock
	timeout    time.Duration
	logger     *zap.Logger
}

// NewServer constructs a Server with middleware and routes.
func NewServer(
	summarizer Summarizer,
	checker HealthChecker,
	probe MongoProbe,
	idGen blog.IDGenerator,
	clock blog.Clock,
	opts Options,
	logger *zap.Logger,
) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		summarizer: summarizer,
		health:     checker,
		probe:      probe,
		idGen:      idGen,
		clock:      clock,
		timeout:    opts.RequestTimeout,
		logger:     logger.Named("api"),
	}
	r := chi.NewRouter()
	r.Use(s.requestIDMiddleware)
	r.Use(s.loggingMiddleware)
	r.Use(s.recoverMiddleware)
	r.Use(metrics.Middleware)

	r.Get("/healthz", s.healthz)
	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Post("/summarize", s.summarize)
		r.Get("/health", s.healthReport)
		r.Get("/test-mongo", s.testMongo)
	})

	s.router = r
	return s
}

// Handler returns the Router for use with http.Server.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) healthz(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type summarizeRequest struct {
	URL string `json:"url"`
}

func (s *Server) summarize(w http.ResponseWriter, r *http.Request) {
	var req summarizeRequest
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.logger.Warn("invalid summarize body", zap.String("request_id", requestID(r.Context())), zap.Error(err))
		s.writeError(w, http.StatusInternalServerError, fmt.Sprintf("invalid JSON body: %v", err))
		return
	}
	result, err := s.runSummarize(r.Context(), req.URL)
	if err != nil {
		s.writeError(w, pipeline.StatusCode(err), err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, result)
}

type summarizeOutcome struct {
	result pipeline.Result
	err    error
}

// runSummarize stops waiting after the request timeout. The run itself keeps
// going on its detached context so both stores still get written.
func (s *Server) runSummarize(ctx context.Context, rawURL string) (pipeline.Result, error) {
	if s.timeout <= 0 {
		return s.summarizer.Summarize(ctx, rawURL)
	}
	done := make(chan summarizeOutcome, 1)
	go func() {
		defer func() {
			if rec := recover(); rec != nil {
				s.logger.Error("panic recovered",
					zap.String("request_id", requestID(ctx)),
					zap.Any("panic", rec),
					zap.Stack("stack"),
				)
				done <- summarizeOutcome{err: errors.New("internal server error")}
			}
		}()
		result, err := s.summarizer.Summarize(ctx, rawURL)
		done <- summarizeOutcome{result: result, err: err}
	}()

	timer := time.NewTimer(s.timeout)
	defer timer.Stop()
	select {
	case out := <-done:
		return out.result, out.err
	case <-timer.C:
		s.logger.Warn("summarize outlived request timeout",
			zap.String("request_id", requestID(ctx)),
			zap.String("url", rawURL),
			zap.Duration("timeout", s.timeout),
		)
		return pipeline.Result{}, errRequestTimeout
	}
}

func (s *Server) healthReport(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.health.Check(r.Context()))
}

type probeResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message,omitempty"`
	Error     string `json:"error,omitempty"`
	Timestamp string `json:"timestamp"`
}

func (s *Server) testMongo(w http.ResponseWriter, r *http.Request) {
	timestamp := s.clock.Now().UTC().Format("2006-01-02T15:04:05.000Z07:00")
	err := s.probe(r.Context())
	switch {
	case err == nil:
		s.logger.Info("mongo probe succeeded")
		s.writeJSON(w, http.StatusOK, probeResponse{Success: true, Message: "MongoDB connection successful", Timestamp: timestamp})
	case errors.Is(err, mongo.ErrClientSetup):
		s.logger.Error("mongo probe could not start", zap.Error(err))
		s.writeJSON(w, http.StatusInternalServerError, probeResponse{Error: err.Error(), Timestamp: timestamp})
	default:
		s.logger.Warn("mongo probe failed", zap.Error(err), zap.String("hint", health.Hint(err)))
		s.writeJSON(w, http.StatusOK, probeResponse{Message: "MongoDB connection failed", Timestamp: timestamp})
	}
}

type requestIDKey struct{}

func requestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

func (s *Server) newRequestID() string {
	if s.idGen != nil {
		if id, err := s.idGen.NewID(); err == nil {
			return id
		}
	}
	return fmt.Sprintf("req-%d", time.Now().UnixNano())
}

func (s *Server) requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqID := r.Header.Get("X-Request-ID")
		if reqID == "" {
			reqID = s.newRequestID()
		}
		ctx := context.WithValue(r.Context(), requestIDKey{}, reqID)
		w.Header().Set("X-Request-ID", reqID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := &responseWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(ww, r)
		s.logger.Info("request completed",
			zap.String("request_id", requestID(r.Context())),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.status),
			zap.Duration("duration", time.Since(start)),
		)
	})
}

func (s *Server) recoverMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				s.logger.Error("panic recovered",
					zap.String("request_id", requestID(r.Context())),
					zap.Any("panic", rec),
					zap.Stack("stack"),
				)
				s.writeError(w, http.StatusInternalServerError, "internal server error")
			}
		}()
		next.ServeHTTP(w, r)
	})
}

type responseWriter struct {
	http.ResponseWriter
	status int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.status = code
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	n, err := rw.ResponseWriter.Write(b)
	if err != nil {
		return n, fmt.Errorf("write response: %w", err)
	}
	return n, nil
}

func (rw *responseWriter) Flush() {
	if f, ok := rw.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func (rw *responseWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	if h, ok := rw.ResponseWriter.(http.Hijacker); ok {
		conn, buf, err := h.Hijack()
		if err != nil {
			return nil, nil, fmt.Errorf("hijack connection: %w", err)
		}
		return conn, buf, nil
	}
	return nil, nil, errors.New("hijacker not supported")
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Error("write JSON failed", zap.Error(err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, map[string]string{"error": msg})
}
