// Package gcs keeps raw page snapshots in a Google Cloud Storage bucket.
package gcs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"cloud.google.com/go/storage"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

// Config names the snapshot bucket.
type Config struct {
	Bucket string
}

// BlobStore uploads snapshots to one bucket. Keys name their content by hash,
// so uploads only create objects and an existing object counts as stored.
type BlobStore struct {
	client *storage.Client
	bucket *storage.BucketHandle
	name   string
}

// NewClient creates a storage client using Application Default Credentials
// unless opts say otherwise.
func NewClient(ctx context.Context, opts ...option.ClientOption) (*storage.Client, error) {
	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create gcs client: %w", err)
	}
	return client, nil
}

// New binds the store to a bucket. The bucket is not checked until the first upload.
func New(client *storage.Client, cfg Config) (*BlobStore, error) {
	if client == nil {
		return nil, errors.New("storage client is required")
	}
	if strings.TrimSpace(cfg.Bucket) == "" {
		return nil, errors.New("snapshot bucket is required")
	}
	return &BlobStore{
		client: client,
		bucket: client.Bucket(cfg.Bucket),
		name:   cfg.Bucket,
	}, nil
}

// PutObject uploads the snapshot under key unless it is already there, and
// returns its gs:// URI either way.
func (s *BlobStore) PutObject(ctx context.Context, key string, contentType string, r io.Reader) (string, error) {
	if strings.TrimSpace(key) == "" {
		return "", errors.New("snapshot key is required")
	}
	uri := fmt.Sprintf("gs://%s/%s", s.name, key)

	w := s.bucket.Object(key).If(storage.Conditions{DoesNotExist: true}).NewWriter(ctx)
	// Pages are small; send each in a single request.
	w.ChunkSize = 0
	if contentType != "" {
		w.ContentType = contentType
	}
	if _, err := io.Copy(w, r); err != nil {
		if closeErr := w.Close(); closeErr != nil && !alreadyStored(closeErr) {
			return "", fmt.Errorf("upload snapshot %s: %w (close: %v)", key, err, closeErr)
		}
		return "", fmt.Errorf("upload snapshot %s: %w", key, err)
	}
	if err := w.Close(); err != nil {
		if alreadyStored(err) {
			return uri, nil
		}
		return "", fmt.Errorf("finish snapshot %s: %w", key, err)
	}
	return uri, nil
}

// alreadyStored reports a failed DoesNotExist precondition.
func alreadyStored(err error) bool {
	var apiErr *googleapi.Error
	return errors.As(err, &apiErr) && apiErr.Code == http.StatusPreconditionFailed
}

// Close releases the client.
func (s *BlobStore) Close() error {
	return s.client.Close()
}
