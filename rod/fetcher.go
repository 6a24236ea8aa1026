// Package rod implements page fetching with headless Chrome via go-rod.
// The listing site renders parts of its pages with JavaScript, so a plain
// HTTP client would miss content a browser sees.
package rod

import (
	"context"
	"fmt"
	"sync"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/jmbacasno/mangago"
)

// DefaultMaxPages is the number of fetches before the browser is recycled.
// Chrome accumulates memory over long hydration runs and never returns to
// its baseline even with proper page cleanup, so the browser is restarted
// periodically.
const DefaultMaxPages = 75

// Ensure Fetcher implements mangago.Fetcher at compile time.
var _ mangago.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves rendered HTML from URLs using Chrome browser
// automation, recycling the browser after maxPages fetches.
// Fetcher is safe for concurrent use by multiple goroutines.
type Fetcher struct {
	mu        sync.Mutex
	browser   *rod.Browser
	launcher  *launcher.Launcher
	pageCount int
	maxPages  int
	closed    bool
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithMaxPages sets the number of fetches before the browser is recycled.
// Defaults to DefaultMaxPages.
func WithMaxPages(n int) Option {
	return func(f *Fetcher) {
		f.maxPages = n
	}
}

// NewFetcher creates a Fetcher backed by a freshly launched headless
// Chrome. Close must be called when the Fetcher is no longer needed.
//
// Returns an error if Chrome/Chromium cannot be found or launched.
func NewFetcher(opts ...Option) (*Fetcher, error) {
	f := &Fetcher{maxPages: DefaultMaxPages}
	for _, opt := range opts {
		opt(f)
	}

	if err := f.launch(); err != nil {
		return nil, err
	}

	return f, nil
}

// Fetch navigates to the URL, waits for the load event, and returns the
// rendered HTML. The context controls timeout and cancellation.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	browser, err := f.acquire()
	if err != nil {
		return "", err
	}

	page, err := browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return "", err
	}
	defer page.Close()

	page = page.Context(ctx)

	if err := page.Navigate(url); err != nil {
		return "", err
	}

	if err := page.WaitLoad(); err != nil {
		return "", err
	}

	return page.HTML()
}

// Close releases browser resources. Close is safe to call multiple times.
func (f *Fetcher) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return nil
	}
	f.closed = true

	return f.shutdown()
}

// acquire returns the current browser, recycling it first when the fetch
// count has reached maxPages.
func (f *Fetcher) acquire() (*rod.Browser, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return nil, mangago.Errorf(mangago.EINTERNAL, "fetcher is closed")
	}

	if f.pageCount >= f.maxPages {
		f.recycle()
	}
	f.pageCount++

	return f.browser, nil
}

// launch starts a new browser instance with stability flags.
// Must be called with mu held (or before the Fetcher is shared).
func (f *Fetcher) launch() error {
	lnchr := launcher.New().
		Set("disable-background-timer-throttling").
		Set("disable-backgrounding-occluded-windows").
		Set("disable-renderer-backgrounding").
		Set("disable-dev-shm-usage").
		Leakless(true).
		Headless(true)

	u, err := lnchr.Launch()
	if err != nil {
		return fmt.Errorf("launching browser: %w", err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		lnchr.Kill()
		return fmt.Errorf("connecting to browser: %w", err)
	}

	f.browser = browser
	f.launcher = lnchr
	f.pageCount = 0
	return nil
}

// recycle swaps in a fresh browser. If the new launch fails the old
// browser is kept so fetching can continue. Must be called with mu held.
func (f *Fetcher) recycle() {
	oldBrowser := f.browser
	oldLauncher := f.launcher

	if err := f.launch(); err != nil {
		f.browser = oldBrowser
		f.launcher = oldLauncher
		return
	}

	if oldBrowser != nil {
		_ = oldBrowser.Close()
	}
	if oldLauncher != nil {
		oldLauncher.Kill()
	}
}

// shutdown closes the browser and kills the launcher.
// Must be called with mu held.
func (f *Fetcher) shutdown() error {
	var err error
	if f.browser != nil {
		err = f.browser.Close()
		f.browser = nil
	}
	if f.launcher != nil {
		f.launcher.Kill()
		f.launcher = nil
	}
	return err
}
