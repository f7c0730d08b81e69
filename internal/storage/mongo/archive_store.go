// Package mongo archives the full text of summarized posts in MongoDB.
package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/JakeFAU/blog-summarizer/internal/blog"
)

// Defaults for the archive location.
const (
	DefaultDatabase   = "blog_summarizer"
	DefaultCollection = "blog_posts"
)

// ErrNotConnected is returned when the archive has no live client.
var ErrNotConnected = errors.New("mongo client is not connected")

// ErrClientSetup marks failures to build a client, as opposed to failures to reach the server.
var ErrClientSetup = errors.New("mongo client setup failed")

// Config controls the Mongo client and archive location.
type Config struct {
	URI                    string
	Database               string
	Collection             string
	MaxPoolSize            uint64
	ServerSelectionTimeout time.Duration
	SocketTimeout          time.Duration
}

type inserter interface {
	InsertOne(ctx context.Context, document interface{}, opts ...*options.InsertOneOptions) (*mongo.InsertOneResult, error)
}

type session interface {
	Ping(ctx context.Context, rp *readpref.ReadPref) error
	Disconnect(ctx context.Context) error
}

// ArchiveStore inserts blog post documents into a collection.
type ArchiveStore struct {
	client     session
	collection inserter
}

// NewArchiveStore builds one shared client. The driver connects lazily, so an
// unreachable cluster is reported by SaveBlogPost or Ping, not here.
func NewArchiveStore(ctx context.Context, cfg Config) (*ArchiveStore, error) {
	client, err := connect(ctx, cfg)
	if err != nil {
		return nil, err
	}
	cfg = withDefaults(cfg)
	return &ArchiveStore{
		client:     client,
		collection: client.Database(cfg.Database).Collection(cfg.Collection),
	}, nil
}

// NewArchiveStoreWith wires explicit collaborators (primarily for testing).
func NewArchiveStoreWith(client session, collection inserter) *ArchiveStore {
	return &ArchiveStore{client: client, collection: collection}
}

// SaveBlogPost inserts one document.
func (s *ArchiveStore) SaveBlogPost(ctx context.Context, record blog.BlogPostRecord) error {
	if s == nil || s.collection == nil {
		return ErrNotConnected
	}
	if _, err := s.collection.InsertOne(ctx, record); err != nil {
		return fmt.Errorf("insert blog post: %w", err)
	}
	return nil
}

// Ping checks the primary is reachable.
func (s *ArchiveStore) Ping(ctx context.Context) error {
	if s == nil || s.client == nil {
		return ErrNotConnected
	}
	if err := s.client.Ping(ctx, readpref.Primary()); err != nil {
		return fmt.Errorf("ping mongo: %w", err)
	}
	return nil
}

// Close disconnects the shared client.
func (s *ArchiveStore) Close(ctx context.Context) error {
	if s == nil || s.client == nil {
		return nil
	}
	if err := s.client.Disconnect(ctx); err != nil {
		return fmt.Errorf("disconnect mongo: %w", err)
	}
	return nil
}

// Probe opens a fresh client, pings it, and disconnects. Errors wrapping
// ErrClientSetup mean the probe could not be attempted at all.
func Probe(ctx context.Context, cfg Config) error {
	client, err := connect(ctx, cfg)
	if err != nil {
		return err
	}
	pingErr := client.Ping(ctx, readpref.Primary())
	if err := client.Disconnect(context.WithoutCancel(ctx)); err != nil && pingErr == nil {
		return fmt.Errorf("disconnect mongo: %w", err)
	}
	if pingErr != nil {
		return fmt.Errorf("ping mongo: %w", pingErr)
	}
	return nil
}

func connect(ctx context.Context, cfg Config) (*mongo.Client, error) {
	if cfg.URI == "" {
		return nil, fmt.Errorf("%w: mongo.uri is required", ErrClientSetup)
	}
	client, err := mongo.Connect(ctx, clientOptions(cfg))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrClientSetup, err)
	}
	return client, nil
}

func clientOptions(cfg Config) *options.ClientOptions {
	opts := options.Client().ApplyURI(cfg.URI)
	if cfg.MaxPoolSize > 0 {
		opts.SetMaxPoolSize(cfg.MaxPoolSize)
	}
	if cfg.ServerSelectionTimeout > 0 {
		opts.SetServerSelectionTimeout(cfg.ServerSelectionTimeout)
	}
	if cfg.SocketTimeout > 0 {
		opts.SetSocketTimeout(cfg.SocketTimeout)
	}
	return opts
}

func withDefaults(cfg Config) Config {
	if cfg.Database == "" {
		cfg.Database = DefaultDatabase
	}
	if cfg.Collection == "" {
		cfg.Collection = DefaultCollection
	}
	return cfg
}
