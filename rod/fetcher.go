// Package rod implements siteinv.Fetcher with headless Chrome, for sites whose
// links only exist after JavaScript runs.
package rod

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fwojciec/siteinv"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"
)

// DefaultFetchTimeout bounds a single rendered fetch. Rendering waits for the
// load event, so it is longer than the plain HTTP timeout.
const DefaultFetchTimeout = 60 * time.Second

// Ensure Fetcher implements siteinv.Fetcher at compile time.
var _ siteinv.Fetcher = (*Fetcher)(nil)

// serializeJS returns the rendered document, open shadow roots included, and
// the content type the browser assigned to it.
const serializeJS = `() => {
	const roots = [];
	const collect = (root) => {
		for (const el of root.querySelectorAll('*')) {
			if (el.shadowRoot) {
				roots.push(el.shadowRoot);
				collect(el.shadowRoot);
			}
		}
	};
	collect(document);
	const el = document.documentElement;
	let html = el ? el.outerHTML : '';
	if (el && typeof el.getHTML === 'function') {
		html = '<html>' + el.getHTML({ shadowRoots: roots }) + '</html>';
	}
	return { html: html, contentType: document.contentType || '' };
}`

// Fetcher retrieves rendered resources using Chrome browser automation.
// Fetcher is safe for concurrent use by multiple goroutines.
type Fetcher struct {
	manager      *BrowserManager
	timeout      time.Duration
	recycleAfter int
	closed       atomic.Bool
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithFetchTimeout sets the timeout for a single fetch.
// Defaults to DefaultFetchTimeout (60s) if not specified.
func WithFetchTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithBrowserRecycling sets how many pages the browser renders before it is
// replaced. Defaults to DefaultRecycleAfter.
func WithBrowserRecycling(n int) Option {
	return func(f *Fetcher) {
		f.recycleAfter = n
	}
}

// NewFetcher creates a new Fetcher that launches a headless Chrome browser.
// Close must be called when the Fetcher is no longer needed.
//
// Returns an error if Chrome/Chromium cannot be found or launched.
func NewFetcher(opts ...Option) (*Fetcher, error) {
	f := &Fetcher{timeout: DefaultFetchTimeout, recycleAfter: DefaultRecycleAfter}
	for _, opt := range opts {
		opt(f)
	}

	manager, err := NewBrowserManager(WithRecycleAfter(f.recycleAfter))
	if err != nil {
		return nil, err
	}
	f.manager = manager
	return f, nil
}

// Fetch navigates to the URL, waits for the load event, and returns the
// rendered DOM. A non-2xx status of the main document is an error.
func (f *Fetcher) Fetch(ctx context.Context, url string) (*siteinv.Response, error) {
	if f.closed.Load() {
		return nil, siteinv.Errorf(siteinv.EINVALID, "fetcher is closed")
	}

	// Check context before starting
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	page, release, err := f.manager.OpenPage()
	if err != nil {
		return nil, err
	}
	defer release()

	// Set context for all subsequent operations
	page = page.Context(ctx)

	doc := watchDocument(page)

	if err := page.Navigate(url); err != nil {
		return nil, err
	}
	if err := page.WaitLoad(); err != nil {
		return nil, err
	}

	status, mimeType := doc.result()
	if status != 0 && (status < 200 || status > 299) {
		return nil, fmt.Errorf("HTTP %d for %s", status, url)
	}

	res, err := page.Eval(serializeJS)
	if err != nil {
		return nil, err
	}
	if mimeType == "" {
		mimeType = res.Value.Get("contentType").Str()
	}
	if status == 0 {
		status = 200
	}

	return &siteinv.Response{
		URL:         url,
		StatusCode:  status,
		ContentType: mimeType,
		Body:        res.Value.Get("html").Str(),
	}, nil
}

// Close releases browser resources. Close is safe to call multiple times.
func (f *Fetcher) Close() error {
	if !f.closed.CompareAndSwap(false, true) {
		return nil
	}
	return f.manager.Close()
}

// LauncherPID returns the process ID of the browser launcher.
// This method exists for testing purposes to verify proper cleanup.
func (f *Fetcher) LauncherPID() int {
	return f.manager.LauncherPID()
}

// documentWatch records the response of the first main-document request
// issued by a page.
type documentWatch struct {
	mu       sync.Mutex
	status   int
	mimeType string
}

func watchDocument(page *rod.Page) *documentWatch {
	w := &documentWatch{}
	go page.EachEvent(func(e *proto.NetworkResponseReceived) bool {
		if e.Type != proto.NetworkResourceTypeDocument || e.Response == nil {
			return false
		}
		w.mu.Lock()
		w.status = e.Response.Status
		w.mimeType = e.Response.MIMEType
		w.mu.Unlock()
		return true
	})()
	return w
}

func (w *documentWatch) result() (int, string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.status, w.mimeType
}
