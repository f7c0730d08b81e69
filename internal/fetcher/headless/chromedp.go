// Package headless renders blog pages in headless Chrome before extraction.
// Use it for blogs that build their article body client-side.
package headless

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/chromedp/cdproto/emulation"
	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"

	"github.com/JakeFAU/blog-summarizer/internal/blog"
)

const (
	defaultNavTimeout  = 10 * time.Second
	defaultSettleDelay = 500 * time.Millisecond
)

// Config controls the behavior of the headless fetcher.
type Config struct {
	// MaxParallel caps concurrent browser tabs; zero means unlimited.
	MaxParallel       int
	UserAgent         string
	NavigationTimeout time.Duration
	// SettleDelay is how long scripts may keep rendering after <body> is ready.
	SettleDelay time.Duration
	// BlockImages stops images from loading; they never carry article text.
	BlockImages bool
}

// Fetcher implements blog.Fetcher using chromedp and headless Chrome. One
// browser process serves every fetch; each fetch gets its own tab.
type Fetcher struct {
	cfg           Config
	slots         chan struct{}
	allocCancel   context.CancelFunc
	browser       context.Context
	browserCancel context.CancelFunc

	startMu sync.Mutex
	started bool
}

// NewChromedp prepares the allocator and the shared browser context. Chrome
// launches on the first fetch and stays up until Close.
func NewChromedp(cfg Config) (*Fetcher, error) {
	if cfg.MaxParallel < 0 {
		return nil, fmt.Errorf("max parallel must be >= 0")
	}
	if cfg.NavigationTimeout <= 0 {
		cfg.NavigationTimeout = defaultNavTimeout
	}
	if cfg.SettleDelay < 0 {
		cfg.SettleDelay = 0
	}
	var slots chan struct{}
	if cfg.MaxParallel > 0 {
		slots = make(chan struct{}, cfg.MaxParallel)
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", "new"),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("mute-audio", true),
		chromedp.Flag("enable-automation", false),
	)
	if cfg.BlockImages {
		opts = append(opts, chromedp.Flag("blink-settings", "imagesEnabled=false"))
	}
	allocCtx, allocCancel := chromedp.NewExecAllocator(context.Background(), opts...)
	browser, browserCancel := chromedp.NewContext(allocCtx)

	return &Fetcher{
		cfg:           cfg,
		slots:         slots,
		allocCancel:   allocCancel,
		browser:       browser,
		browserCancel: browserCancel,
	}, nil
}

// Close shuts the browser down.
func (f *Fetcher) Close() {
	f.browserCancel()
	f.allocCancel()
}

// ensureBrowser launches Chrome once. A failed launch is retried by the next fetch.
func (f *Fetcher) ensureBrowser() error {
	f.startMu.Lock()
	defer f.startMu.Unlock()
	if f.started {
		return nil
	}
	if err := f.browser.Err(); err != nil {
		return fmt.Errorf("headless browser closed: %w", err)
	}
	if err := chromedp.Run(f.browser); err != nil {
		return fmt.Errorf("launch headless browser: %w", err)
	}
	f.started = true
	return nil
}

// Fetch loads the page in a fresh tab and returns the rendered DOM. The status
// comes from the main document response; a non-2xx status is an error.
func (f *Fetcher) Fetch(ctx context.Context, request blog.FetchRequest) (blog.FetchResponse, error) {
	if err := f.acquire(ctx); err != nil {
		return blog.FetchResponse{}, err
	}
	defer f.release()

	if err := f.ensureBrowser(); err != nil {
		return blog.FetchResponse{}, err
	}
	tabCtx, tabCancel := chromedp.NewContext(f.browser)
	defer tabCancel()
	tabCtx, cancel := context.WithTimeout(tabCtx, f.cfg.NavigationTimeout)
	defer cancel()
	// The caller's deadline still applies to the tab.
	stop := context.AfterFunc(ctx, cancel)
	defer stop()

	doc := &documentResponse{}
	chromedp.ListenTarget(tabCtx, doc.listen)

	start := time.Now()
	html, location, err := f.render(tabCtx, request)
	if err != nil {
		return blog.FetchResponse{}, err
	}

	status, headers, finalURL := doc.result(request.URL, location)
	if status < 200 || status > 299 {
		return blog.FetchResponse{}, fmt.Errorf("headless fetch %s: unexpected status %d", finalURL, status)
	}
	return blog.FetchResponse{
		URL:          finalURL,
		StatusCode:   status,
		Headers:      headers,
		Body:         []byte(html),
		Duration:     time.Since(start),
		UsedHeadless: true,
	}, nil
}

func (f *Fetcher) render(ctx context.Context, request blog.FetchRequest) (html, location string, err error) {
	actions := []chromedp.Action{
		f.prepareTab(request.Headers),
		chromedp.Navigate(request.URL),
		chromedp.WaitReady("body", chromedp.ByQuery),
	}
	if f.cfg.SettleDelay > 0 {
		actions = append(actions, chromedp.Sleep(f.cfg.SettleDelay))
	}
	actions = append(actions,
		chromedp.Location(&location),
		chromedp.OuterHTML("html", &html, chromedp.ByQuery),
	)
	if err := chromedp.Run(ctx, actions...); err != nil {
		return "", "", fmt.Errorf("chromedp run: %w", err)
	}
	return html, location, nil
}

func (f *Fetcher) prepareTab(headers http.Header) chromedp.Action {
	return chromedp.ActionFunc(func(ctx context.Context) error {
		if err := network.Enable().Do(ctx); err != nil {
			return fmt.Errorf("enable network domain: %w", err)
		}
		if f.cfg.UserAgent != "" {
			if err := emulation.SetUserAgentOverride(f.cfg.UserAgent).Do(ctx); err != nil {
				return fmt.Errorf("set user-agent: %w", err)
			}
		}
		if len(headers) > 0 {
			if err := network.SetExtraHTTPHeaders(networkHeaders(headers)).Do(ctx); err != nil {
				return fmt.Errorf("set extra headers: %w", err)
			}
		}
		return nil
	})
}

func (f *Fetcher) acquire(ctx context.Context) error {
	if f.slots == nil {
		return nil
	}
	select {
	case f.slots <- struct{}{}:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("headless slot wait canceled: %w", ctx.Err())
	}
}

func (f *Fetcher) release() {
	if f.slots == nil {
		return
	}
	select {
	case <-f.slots:
	default:
	}
}

// documentResponse keeps the first document response of a tab. Later document
// responses belong to iframes and are ignored.
type documentResponse struct {
	mu      sync.Mutex
	seen    bool
	status  int
	headers http.Header
	url     string
}

func (d *documentResponse) listen(ev any) {
	event, ok := ev.(*network.EventResponseReceived)
	if !ok || event.Type != network.ResourceTypeDocument || event.Response == nil {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.seen {
		return
	}
	d.seen = true
	d.status = int(event.Response.Status)
	d.url = event.Response.URL
	d.headers = httpHeaders(event.Response.Headers)
}

// result falls back to the tab location, then the requested URL, and assumes
// 200 when no document response was observed (e.g. served from cache).
func (d *documentResponse) result(requestURL, location string) (int, http.Header, string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	status, headers, url := d.status, d.headers.Clone(), d.url
	if url == "" {
		url = location
	}
	if url == "" {
		url = requestURL
	}
	if status == 0 {
		status = http.StatusOK
	}
	if headers == nil {
		headers = http.Header{}
	}
	return status, headers, url
}

func httpHeaders(src network.Headers) http.Header {
	headers := make(http.Header, len(src))
	for key, value := range src {
		switch v := value.(type) {
		case string:
			// CDP folds repeated headers into one newline-separated value.
			for _, line := range strings.Split(v, "\n") {
				headers.Add(key, line)
			}
		default:
			headers.Add(key, fmt.Sprint(v))
		}
	}
	return headers
}

// networkHeaders joins repeated values; CDP accepts one string per header.
func networkHeaders(h http.Header) network.Headers {
	headers := make(network.Headers, len(h))
	for key, values := range h {
		if len(values) > 0 {
			headers[key] = strings.Join(values, ", ")
		}
	}
	return headers
}
