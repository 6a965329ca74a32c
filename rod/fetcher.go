// Package rod implements pagesnap.Fetcher with a headless Chrome browser,
// so the snapshot sees the DOM after client-side rendering.
package rod

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fwojciec/pagesnap"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// DefaultFetchTimeout bounds navigation plus the readiness wait.
const DefaultFetchTimeout = 30 * time.Second

// DefaultSettle is how long the DOM must stay unchanged under WaitStable.
const DefaultSettle = time.Second

// DefaultDelay is the fixed wait used by WaitTime.
const DefaultDelay = 3 * time.Second

// WaitStrategy decides when a rendered page is ready to be read.
type WaitStrategy string

// WaitStrategy values.
const (
	// WaitLoad waits for the window load event.
	WaitLoad WaitStrategy = "load"
	// WaitStable waits for load, network idle and an unchanged DOM.
	WaitStable WaitStrategy = "stable"
	// WaitElement waits until a selector matches.
	WaitElement WaitStrategy = "element"
	// WaitTime waits for load and then a fixed delay.
	WaitTime WaitStrategy = "time"
)

// Ensure Fetcher implements pagesnap.Fetcher at compile time.
var _ pagesnap.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves rendered HTML using Chrome browser automation.
// Fetcher is safe for concurrent use by multiple goroutines.
type Fetcher struct {
	browser  *rod.Browser
	launcher *launcher.Launcher
	mu       sync.Mutex
	closed   atomic.Bool

	timeout  time.Duration
	strategy WaitStrategy
	target   string
	settle   time.Duration
	delay    time.Duration
	ready    time.Duration
	headless bool
	logger   *slog.Logger
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithFetchTimeout bounds each Fetch call.
// Defaults to DefaultFetchTimeout if not specified.
func WithFetchTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithWaitStrategy sets the readiness strategy. target is the selector
// for WaitElement and is ignored otherwise. Defaults to WaitStable.
func WithWaitStrategy(s WaitStrategy, target string) Option {
	return func(f *Fetcher) {
		f.strategy = s
		f.target = target
	}
}

// WithSettle sets the DOM stability window used by WaitStable.
func WithSettle(d time.Duration) Option {
	return func(f *Fetcher) {
		f.settle = d
	}
}

// WithDelay sets the fixed delay used by WaitTime.
func WithDelay(d time.Duration) Option {
	return func(f *Fetcher) {
		f.delay = d
	}
}

// WithReadyTimeout bounds the readiness wait inside the fetch timeout.
// When it expires the page is read as it is. Defaults to two thirds of
// the fetch timeout.
func WithReadyTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.ready = d
	}
}

// WithLogger sets the logger that reports pages read before they were ready.
func WithLogger(logger *slog.Logger) Option {
	return func(f *Fetcher) {
		f.logger = logger
	}
}

// WithHeadless controls whether the browser window is hidden. Defaults to true.
func WithHeadless(headless bool) Option {
	return func(f *Fetcher) {
		f.headless = headless
	}
}

// NewFetcher creates a new Fetcher that launches a Chrome browser.
// Close must be called when the Fetcher is no longer needed.
//
// Returns an error if Chrome/Chromium cannot be found or launched,
// or if the wait strategy is misconfigured.
func NewFetcher(opts ...Option) (*Fetcher, error) {
	f := &Fetcher{
		timeout:  DefaultFetchTimeout,
		strategy: WaitStable,
		settle:   DefaultSettle,
		delay:    DefaultDelay,
		headless: true,
		logger:   slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(f)
	}
	if f.ready == 0 {
		f.ready = f.timeout * 2 / 3
	}

	if err := f.validate(); err != nil {
		return nil, err
	}

	if err := f.launch(); err != nil {
		return nil, err
	}

	return f, nil
}

func (f *Fetcher) validate() error {
	if f.ready < 0 || f.ready >= f.timeout {
		return pagesnap.Errorf(pagesnap.EINVALID, "ready timeout %s must be shorter than fetch timeout %s", f.ready, f.timeout)
	}
	switch f.strategy {
	case WaitLoad, WaitStable, WaitTime:
	case WaitElement:
		if f.target == "" {
			return pagesnap.Errorf(pagesnap.EINVALID, "wait target is required for element strategy")
		}
	default:
		return pagesnap.Errorf(pagesnap.EINVALID, "unknown wait strategy %q", f.strategy)
	}
	return nil
}

// launch starts the browser with stability flags.
func (f *Fetcher) launch() error {
	l := launcher.New().
		Set("disable-background-timer-throttling").
		Set("disable-backgrounding-occluded-windows").
		Set("disable-renderer-backgrounding").
		Set("disable-dev-shm-usage").
		Leakless(true).
		Headless(f.headless)

	u, err := l.Launch()
	if err != nil {
		return fmt.Errorf("launching browser: %w", err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		l.Kill() // Clean up launched process on connection failure
		return fmt.Errorf("connecting to browser: %w", err)
	}

	f.browser = browser
	f.launcher = l
	return nil
}

// Fetch navigates to the URL, waits until the page is ready and returns
// the serialized document along with the final URL.
func (f *Fetcher) Fetch(ctx context.Context, url string) (*pagesnap.Page, error) {
	if f.closed.Load() {
		return nil, pagesnap.Errorf(pagesnap.EINVALID, "fetcher is closed")
	}

	// Check context before starting
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	f.mu.Lock()
	browser := f.browser
	f.mu.Unlock()
	if browser == nil {
		return nil, pagesnap.Errorf(pagesnap.EINVALID, "fetcher is closed")
	}

	page, err := browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, fmt.Errorf("creating page: %w", err)
	}
	defer page.Close()

	// Set context for all subsequent operations
	page = page.Context(ctx)

	if err := page.Navigate(url); err != nil {
		return nil, ctxErr(ctx, fmt.Errorf("navigating to %s: %w", url, err))
	}

	// Readiness is best effort: a page that never settles is still read.
	if err := f.wait(ctx, page); err != nil {
		if ctx.Err() != nil {
			return nil, ctxErr(ctx, err)
		}
		f.logger.Warn("reading page before it was ready",
			"url", url,
			"wait", string(f.strategy),
			"err", err,
		)
	}

	html, err := page.HTML()
	if err != nil {
		return nil, ctxErr(ctx, fmt.Errorf("reading document: %w", err))
	}

	finalURL := url
	if info, err := page.Info(); err == nil && info.URL != "" {
		finalURL = info.URL
	}

	return &pagesnap.Page{URL: finalURL, HTML: html}, nil
}

// wait applies the readiness strategy within the ready timeout.
func (f *Fetcher) wait(ctx context.Context, page *rod.Page) error {
	ctx, cancel := context.WithTimeout(ctx, f.ready)
	defer cancel()
	page = page.Context(ctx)

	switch f.strategy {
	case WaitLoad:
		if err := page.WaitLoad(); err != nil {
			return fmt.Errorf("waiting for page load: %w", err)
		}
	case WaitStable:
		if err := page.WaitStable(f.settle); err != nil {
			return fmt.Errorf("waiting for page to settle: %w", err)
		}
	case WaitElement:
		if _, err := page.Element(f.target); err != nil {
			return fmt.Errorf("waiting for element %q: %w", f.target, err)
		}
	case WaitTime:
		if err := page.WaitLoad(); err != nil {
			return fmt.Errorf("waiting for page load: %w", err)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(f.delay):
		}
	}
	return nil
}

// ctxErr prefers the context error so callers can match
// context.Canceled and context.DeadlineExceeded.
func ctxErr(ctx context.Context, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return fmt.Errorf("%v: %w", err, ctxErr)
	}
	return err
}

// Close releases browser resources. Close is safe to call multiple times.
func (f *Fetcher) Close() error {
	if !f.closed.CompareAndSwap(false, true) {
		return nil
	}

	f.mu.Lock()
	defer f.mu.Unlock()

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

// LauncherPID returns the process ID of the browser launcher.
// This method exists for testing purposes to verify proper cleanup.
func (f *Fetcher) LauncherPID() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.launcher == nil {
		return 0
	}
	return f.launcher.PID()
}
