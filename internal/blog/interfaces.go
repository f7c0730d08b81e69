package blog

import (
	"context"
	"io"
	"time"
)

// Fetcher retrieves the raw HTML of a URL.
type Fetcher interface {
	Fetch(ctx context.Context, request FetchRequest) (FetchResponse, error)
}

// Extractor turns raw HTML into a title and normalized text.
type Extractor interface {
	Extract(html string) Content
}

// Summarizer condenses extracted text.
type Summarizer interface {
	Summarize(ctx context.Context, content Content) (Summary, error)
}

// Translator renders English text in Urdu.
type Translator interface {
	Translate(ctx context.Context, text string) (string, error)
}

// SummaryStore persists summary records (store A).
type SummaryStore interface {
	SaveSummary(ctx context.Context, record SummaryRecord) error
	Ping(ctx context.Context) error
}

// ArchiveStore persists full-text records (store B).
type ArchiveStore interface {
	SaveBlogPost(ctx context.Context, record BlogPostRecord) error
	Ping(ctx context.Context) error
}

// BlobStore writes raw artifacts and returns a URI.
type BlobStore interface {
	PutObject(ctx context.Context, path string, contentType string, data io.Reader) (string, error)
}

// Publisher pushes notifications to Pub/Sub (or similar).
type Publisher interface {
	Publish(ctx context.Context, topic string, payload any) (string, error)
}

// Hasher computes digests for snapshot keys.
type Hasher interface {
	Hash(data []byte) (string, error)
}

// Clock returns the current time (useful for testing).
type Clock interface {
	Now() time.Time
}

// IDGenerator produces unique identifiers.
type IDGenerator interface {
	NewID() (string, error)
}
