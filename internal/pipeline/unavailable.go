package pipeline

import (
	"context"
	"fmt"

	"github.com/JakeFAU/blog-summarizer/internal/blog"
)

// UnavailableStore stands in for a store whose client failed to build, so the
// service still starts and reports the cause on every use.
type UnavailableStore struct {
	Err error
}

var (
	_ blog.SummaryStore = UnavailableStore{}
	_ blog.ArchiveStore = UnavailableStore{}
)

func (u UnavailableStore) err() error {
	return fmt.Errorf("%w: %v", ErrStoreUnavailable, u.Err)
}

// SaveSummary always fails.
func (u UnavailableStore) SaveSummary(context.Context, blog.SummaryRecord) error { return u.err() }

// SaveBlogPost always fails.
func (u UnavailableStore) SaveBlogPost(context.Context, blog.BlogPostRecord) error { return u.err() }

// Ping always fails.
func (u UnavailableStore) Ping(context.Context) error { return u.err() }
