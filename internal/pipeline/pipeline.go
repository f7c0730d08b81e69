// Package pipeline runs one blog URL through fetch, extract, summarize,
// translate, and the two store writes. Every step is synchronous and the first
// failure ends the run; there are no retries and no compensating writes, so a
// failed archive write leaves the summary row in place.
package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/url"
	"path"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/JakeFAU/blog-summarizer/internal/blog"
	"github.com/JakeFAU/blog-summarizer/internal/metrics"
	"github.com/JakeFAU/blog-summarizer/internal/telemetry"
)

// Stage names used for spans, metrics, and ServiceError.
const (
	StageFetch     = "fetch"
	StageExtract   = "extract"
	StageSummarize = "summarize"
	StageTranslate = "translate"
	StagePersistA  = "persist_supabase"
	StagePersistB  = "persist_mongo"
)

// Dependencies are the collaborators a Service drives. Snapshots and
// Publisher are optional; the rest are required.
type Dependencies struct {
	Fetcher    blog.Fetcher
	Extractor  blog.Extractor
	Summarizer blog.Summarizer
	Translator blog.Translator
	Summaries  blog.SummaryStore
	Archive    blog.ArchiveStore
	Snapshots  blog.BlobStore
	Publisher  blog.Publisher
	Hasher     blog.Hasher
	Clock      blog.Clock
}

// Options tune a Service.
type Options struct {
	// MissingEnv lists unset required settings. It runs at the start of every request.
	MissingEnv          func() []string
	SnapshotPrefix      string
	SnapshotContentType string
	Topic               string
}

// Result is what a successful run returns to the caller.
type Result struct {
	Title       string `json:"title"`
	Summary     string `json:"summary"`
	SummaryUrdu string `json:"summary_urdu"`
}

// Service executes the summarize pipeline.
type Service struct {
	deps   Dependencies
	opts   Options
	logger *zap.Logger
	tracer trace.Tracer
}

// New validates deps and returns a Service.
func New(deps Dependencies, opts Options, logger *zap.Logger) (*Service, error) {
	switch {
	case deps.Fetcher == nil:
		return nil, errors.New("pipeline: fetcher is required")
	case deps.Extractor == nil:
		return nil, errors.New("pipeline: extractor is required")
	case deps.Summarizer == nil:
		return nil, errors.New("pipeline: summarizer is required")
	case deps.Translator == nil:
		return nil, errors.New("pipeline: translator is required")
	case deps.Summaries == nil:
		return nil, errors.New("pipeline: summary store is required")
	case deps.Archive == nil:
		return nil, errors.New("pipeline: archive store is required")
	case deps.Clock == nil:
		return nil, errors.New("pipeline: clock is required")
	case deps.Snapshots != nil && deps.Hasher == nil:
		return nil, errors.New("pipeline: hasher is required when snapshots are enabled")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.SnapshotContentType == "" {
		opts.SnapshotContentType = "text/html; charset=utf-8"
	}
	return &Service{
		deps:   deps,
		opts:   opts,
		logger: logger.Named("pipeline"),
		tracer: telemetry.Tracer(),
	}, nil
}

// Summarize runs the pipeline for rawURL. The caller's cancellation is
// ignored once the run starts so a dropped client cannot leave one store
// written and the other not; values such as trace context are kept.
func (s *Service) Summarize(ctx context.Context, rawURL string) (Result, error) {
	ctx, span := s.tracer.Start(context.WithoutCancel(ctx), "pipeline.summarize")
	defer span.End()

	start := time.Now()
	result, err := s.run(ctx, strings.TrimSpace(rawURL))
	metrics.ObserveOutcome(outcome(err))
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return Result{}, err
	}
	s.logger.Info("summary stored",
		zap.String("url", rawURL),
		zap.String("title", result.Title),
		zap.Duration("duration", time.Since(start)),
	)
	return result, nil
}

func (s *Service) run(ctx context.Context, rawURL string) (Result, error) {
	if s.opts.MissingEnv != nil {
		if missing := s.opts.MissingEnv(); len(missing) > 0 {
			s.logger.Error("required configuration missing", zap.Strings("missing", missing))
			return Result{}, &ConfigError{Missing: missing}
		}
	}
	if rawURL == "" {
		return Result{}, errNoURL
	}

	page, err := s.fetch(ctx, rawURL)
	if err != nil {
		return Result{}, err
	}
	s.snapshot(ctx, rawURL, page.Body)

	var content blog.Content
	_ = s.stage(ctx, StageExtract, func(context.Context) error {
		content = s.deps.Extractor.Extract(string(page.Body))
		return nil
	})
	if content.Text == "" {
		s.logger.Warn("no text extracted", zap.String("url", rawURL), zap.Int("bytes", len(page.Body)))
		return Result{}, errNoText
	}

	var summary blog.Summary
	if err := s.stage(ctx, StageSummarize, func(ctx context.Context) error {
		var err error
		summary, err = s.deps.Summarizer.Summarize(ctx, content)
		return err
	}); err != nil {
		s.logger.Error("summarize failed", zap.String("url", rawURL), zap.Error(err))
		return Result{}, &ServiceError{Stage: "Summarize", Err: err}
	}
	if summary.Title == "" {
		summary.Title = content.Title
	}

	var urdu string
	if err := s.stage(ctx, StageTranslate, func(ctx context.Context) error {
		var err error
		urdu, err = s.deps.Translator.Translate(ctx, summary.Text)
		return err
	}); err != nil {
		s.logger.Error("translate failed", zap.String("url", rawURL), zap.Error(err))
		return Result{}, &ServiceError{Stage: "Translate", Err: err}
	}

	result := Result{Title: summary.Title, Summary: summary.Text, SummaryUrdu: urdu}
	if err := s.persist(ctx, rawURL, content, result); err != nil {
		return Result{}, err
	}
	s.notify(ctx, rawURL, result.Title)
	return result, nil
}

func (s *Service) fetch(ctx context.Context, rawURL string) (blog.FetchResponse, error) {
	var page blog.FetchResponse
	err := s.stage(ctx, StageFetch, func(ctx context.Context) error {
		var err error
		page, err = s.deps.Fetcher.Fetch(ctx, blog.FetchRequest{URL: rawURL})
		return err
	})
	if err != nil {
		s.logger.Warn("fetch failed", zap.String("url", rawURL), zap.Error(err))
		return blog.FetchResponse{}, &FetchError{URL: rawURL, Err: err}
	}
	metrics.ObserveFetch(len(page.Body))
	s.logger.Debug("page fetched",
		zap.String("url", rawURL),
		zap.Int("status", page.StatusCode),
		zap.Int("bytes", len(page.Body)),
		zap.Bool("headless", page.UsedHeadless),
		zap.Duration("duration", page.Duration),
	)
	return page, nil
}

func (s *Service) persist(ctx context.Context, rawURL string, content blog.Content, result Result) error {
	if err := s.stage(ctx, StagePersistA, func(ctx context.Context) error {
		return s.deps.Summaries.SaveSummary(ctx, blog.SummaryRecord{
			URL:         rawURL,
			Title:       result.Title,
			Summary:     result.Summary,
			SummaryUrdu: result.SummaryUrdu,
		})
	}); err != nil {
		metrics.ObserveStoreWriteFailure(StoreSupabase)
		s.logger.Error("summary write failed", zap.String("url", rawURL), zap.Error(err))
		return &PersistError{Store: StoreSupabase, Err: err}
	}

	if err := s.stage(ctx, StagePersistB, func(ctx context.Context) error {
		return s.deps.Archive.SaveBlogPost(ctx, blog.BlogPostRecord{
			URL:       rawURL,
			Title:     result.Title,
			FullText:  content.Text,
			CreatedAt: s.deps.Clock.Now(),
		})
	}); err != nil {
		metrics.ObserveStoreWriteFailure(StoreMongo)
		// The summary row is already committed and stays.
		s.logger.Error("archive write failed after summary write",
			zap.String("url", rawURL),
			zap.Error(err),
		)
		return &PersistError{Store: StoreMongo, Err: err}
	}
	return nil
}

// snapshot keeps the raw page under <prefix>/<host>/<sha256>.html. Failures are logged only.
func (s *Service) snapshot(ctx context.Context, rawURL string, body []byte) {
	if s.deps.Snapshots == nil {
		return
	}
	key, err := s.snapshotKey(rawURL, body)
	if err == nil {
		var uri string
		uri, err = s.deps.Snapshots.PutObject(ctx, key, s.opts.SnapshotContentType, bytes.NewReader(body))
		if err == nil {
			s.logger.Debug("snapshot stored", zap.String("url", rawURL), zap.String("uri", uri))
			return
		}
	}
	metrics.ObserveSideEffectFailure("snapshot")
	s.logger.Warn("snapshot failed", zap.String("url", rawURL), zap.Error(err))
}

func (s *Service) snapshotKey(rawURL string, body []byte) (string, error) {
	sum, err := s.deps.Hasher.Hash(body)
	if err != nil {
		return "", fmt.Errorf("hash body: %w", err)
	}
	host := "unknown"
	if u, err := url.Parse(rawURL); err == nil && u.Hostname() != "" {
		host = strings.ToLower(u.Hostname())
	}
	return path.Join(s.opts.SnapshotPrefix, host, sum+".html"), nil
}

// notify announces a stored summary. Failures are logged only.
func (s *Service) notify(ctx context.Context, rawURL, title string) {
	if s.deps.Publisher == nil || s.opts.Topic == "" {
		return
	}
	id, err := s.deps.Publisher.Publish(ctx, s.opts.Topic, blog.Notification{
		URL:       rawURL,
		Title:     title,
		CreatedAt: s.deps.Clock.Now(),
	})
	if err != nil {
		metrics.ObserveSideEffectFailure("notify")
		s.logger.Warn("notification failed", zap.String("url", rawURL), zap.Error(err))
		return
	}
	s.logger.Debug("notification published", zap.String("url", rawURL), zap.String("message_id", id))
}

// stage times fn, wraps it in a span, and records any error on the span.
func (s *Service) stage(ctx context.Context, name string, fn func(context.Context) error) error {
	ctx, span := s.tracer.Start(ctx, "pipeline."+name, trace.WithAttributes(attribute.String("stage", name)))
	defer span.End()

	start := time.Now()
	err := fn(ctx)
	metrics.ObserveStage(name, time.Since(start))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return err
}
