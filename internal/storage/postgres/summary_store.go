// Package postgres persists summary records to the Supabase Postgres database.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/JakeFAU/blog-summarizer/internal/blog"
)

// DefaultTable holds one row per summarized post.
const DefaultTable = "summaries"

var validTableName = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// ErrNotConfigured is returned by a nil or closed store.
var ErrNotConfigured = errors.New("summary store is not configured")

// Config controls the Postgres connection pool used for summary rows.
type Config struct {
	DSN             string
	Table           string
	MaxConns        int32
	MaxConnLifetime time.Duration
}

type pool interface {
	Exec(context.Context, string, ...any) (pgconn.CommandTag, error)
	Ping(context.Context) error
	Close()
}

// SummaryStore writes summary rows into Postgres.
type SummaryStore struct {
	pool  pool
	table string
}

// NewSummaryStore creates a pool from cfg. The pool connects lazily, so a bad
// password surfaces on the first write or ping rather than here.
func NewSummaryStore(ctx context.Context, cfg Config) (*SummaryStore, error) {
	if cfg.DSN == "" {
		return nil, fmt.Errorf("supabase.dsn is required")
	}
	table, err := tableName(cfg.Table)
	if err != nil {
		return nil, err
	}
	poolCfg, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("parse postgres dsn: %w", err)
	}
	if cfg.MaxConns > 0 {
		poolCfg.MaxConns = cfg.MaxConns
	}
	if cfg.MaxConnLifetime > 0 {
		poolCfg.MaxConnLifetime = cfg.MaxConnLifetime
	}
	p, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	return &SummaryStore{pool: p, table: table}, nil
}

// NewSummaryStoreWithPool constructs a store from an existing pool (primarily for testing).
func NewSummaryStoreWithPool(p pool, table string) (*SummaryStore, error) {
	if p == nil {
		return nil, fmt.Errorf("pool is required")
	}
	table, err := tableName(table)
	if err != nil {
		return nil, err
	}
	return &SummaryStore{pool: p, table: table}, nil
}

func tableName(table string) (string, error) {
	if table == "" {
		table = DefaultTable
	}
	if !validTableName.MatchString(table) {
		return "", fmt.Errorf("invalid table name %q", table)
	}
	return table, nil
}

// Close releases the underlying pool resources.
func (s *SummaryStore) Close() {
	if s == nil || s.pool == nil {
		return
	}
	s.pool.Close()
}

// SaveSummary inserts one row. Rows are never updated, so repeated submissions
// of the same URL produce repeated rows.
func (s *SummaryStore) SaveSummary(ctx context.Context, record blog.SummaryRecord) error {
	if s == nil || s.pool == nil {
		return ErrNotConfigured
	}
	query := fmt.Sprintf(`
INSERT INTO %s (
	url,
	title,
	summary,
	summary_urdu
) VALUES (
	$1,$2,$3,$4
)`, s.table)

	if _, err := s.pool.Exec(ctx, query, record.URL, record.Title, record.Summary, record.SummaryUrdu); err != nil {
		return fmt.Errorf("insert summary: %w", err)
	}
	return nil
}

// Ping checks connectivity and that the summaries table is readable.
func (s *SummaryStore) Ping(ctx context.Context) error {
	if s == nil || s.pool == nil {
		return ErrNotConfigured
	}
	if err := s.pool.Ping(ctx); err != nil {
		return fmt.Errorf("ping postgres: %w", err)
	}
	if _, err := s.pool.Exec(ctx, fmt.Sprintf("SELECT 1 FROM %s LIMIT 1", s.table)); err != nil {
		return fmt.Errorf("query %s: %w", s.table, err)
	}
	return nil
}
