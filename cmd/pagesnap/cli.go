package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/fwojciec/pagesnap"
	"github.com/fwojciec/pagesnap/fs"
	"github.com/fwojciec/pagesnap/goquery"
	"github.com/fwojciec/pagesnap/htmltomarkdown"
	snaphttp "github.com/fwojciec/pagesnap/http"
	"github.com/fwojciec/pagesnap/readability"
	"github.com/fwojciec/pagesnap/rod"
	snapslog "github.com/fwojciec/pagesnap/slog"
	"github.com/fwojciec/pagesnap/snapshot"
	"github.com/fwojciec/pagesnap/trafilatura"
	"github.com/fwojciec/pagesnap/tty"
)

// Dependencies holds the process streams a command runs against.
type Dependencies struct {
	Ctx    context.Context
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// SnapCmd takes one snapshot of the page named on the command line.
type SnapCmd struct {
	CLI *CLI
}

// Run wires the services selected by the flags and runs the snapshot.
func (c *SnapCmd) Run(deps *Dependencies) error {
	selectors := c.selectors()
	if err := selectors.Validate(); err != nil {
		return err
	}

	logger := slog.New(slog.DiscardHandler)
	if c.CLI.Verbose {
		logger = slog.New(slog.NewTextHandler(deps.Stderr, nil))
	}

	fetcher, err := c.fetcher(deps.Stderr, logger)
	if err != nil {
		return err
	}
	defer fetcher.Close()

	target := c.target()
	AnnounceStart(deps.Stderr, c.source(), c.CLI.Wait, c.CLI.Delay)

	s := &snapshot.Snapshotter{
		Fetcher:      snapslog.NewLoggingFetcher(fetcher, logger),
		Extractor:    snapslog.NewLoggingExtractor(goquery.NewExtractor(goquery.WithSelectors(selectors)), logger),
		Artifacts:    fs.NewWriter(c.CLI.OutDir),
		Console:      tty.NewConsole(deps.Stdout),
		Notifier:     tty.NewNotifier(deps.Stdin, deps.Stderr, c.CLI.Pause),
		Logger:       logger,
		ArtifactName: c.CLI.Name,
		Quiet:        c.CLI.Quiet,
		RetryDelays:  snapshot.DefaultRetryDelays(c.CLI.Retries),
	}

	if c.CLI.Markdown {
		pageURL := c.pageURL(target)
		var domain string
		if pageURL != nil {
			domain = pageURL.Scheme + "://" + pageURL.Host
		}
		s.Converter = htmltomarkdown.NewConverter(htmltomarkdown.WithDomain(domain))
		s.Reader = c.reader(pageURL)
	}

	_, err = s.Run(deps.Ctx, target)
	return err
}

// AnnounceStart tells the user how long a fixed-delay browser wait takes
// before anything is read.
func AnnounceStart(w io.Writer, source, wait string, delay time.Duration) {
	if source == "browser" && rod.WaitStrategy(wait) == rod.WaitTime {
		fmt.Fprintf(w, "Extraction will begin in %s...\n", delay)
	}
}

// NormalizeTarget adds an https scheme to a bare host such as
// femibyjojo.com, which the browser would otherwise reject.
func NormalizeTarget(target string) string {
	if target == "" || strings.Contains(target, "://") {
		return target
	}
	scheme, _, _ := strings.Cut(target, ":")
	switch strings.ToLower(scheme) {
	case "about", "data", "blob", "chrome":
		return target
	}
	return "https://" + target
}

// target is the address passed to the fetcher.
func (c *SnapCmd) target() string {
	if c.source() == "file" {
		return c.CLI.URL
	}
	return NormalizeTarget(c.CLI.URL)
}

// selectors overlays the selector flags on the defaults.
func (c *SnapCmd) selectors() pagesnap.Selectors {
	s := pagesnap.DefaultSelectors()
	override := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	override(&s.Header, c.CLI.HeaderSelector)
	override(&s.Navigation, c.CLI.NavSelector)
	override(&s.Main, c.CLI.MainSelector)
	override(&s.Footer, c.CLI.FooterSelector)
	override(&s.Sections, c.CLI.SectionSelector)
	override(&s.Buttons, c.CLI.ButtonSelector)
	return s
}

// source resolves --source=auto against the target.
func (c *SnapCmd) source() string {
	if c.CLI.Source != "auto" && c.CLI.Source != "" {
		return c.CLI.Source
	}
	if fs.IsFileTarget(c.CLI.URL) {
		return "file"
	}
	return "browser"
}

func (c *SnapCmd) fetcher(stderr io.Writer, logger *slog.Logger) (pagesnap.Fetcher, error) {
	switch c.source() {
	case "file":
		f := fs.NewFetcher()
		f.BaseURL = c.CLI.BaseURL
		return f, nil
	case "http":
		return snaphttp.NewFetcher(snaphttp.WithTimeout(c.CLI.Timeout)), nil
	}

	f, err := rod.NewFetcher(
		rod.WithFetchTimeout(c.CLI.Timeout),
		rod.WithWaitStrategy(rod.WaitStrategy(c.CLI.Wait), c.CLI.WaitTarget),
		rod.WithSettle(c.CLI.Settle),
		rod.WithDelay(c.CLI.Delay),
		rod.WithLogger(logger),
	)
	if pagesnap.ErrorCode(err) == pagesnap.EINVALID {
		return nil, err
	} else if err != nil {
		fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed")
		return nil, fmt.Errorf("failed to start browser: %w", err)
	}
	return f, nil
}

// pageURL returns the web address the page is resolved against, or nil
// for local files without --base-url.
func (c *SnapCmd) pageURL(target string) *url.URL {
	raw := target
	if c.source() == "file" {
		raw = c.CLI.BaseURL
	}
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return nil
	}
	return u
}

func (c *SnapCmd) reader(pageURL *url.URL) pagesnap.Reader {
	if c.CLI.Reader == "trafilatura" {
		return trafilatura.NewReader(trafilatura.WithPageURL(pageURL))
	}
	return readability.NewReader(readability.WithPageURL(pageURL))
}
