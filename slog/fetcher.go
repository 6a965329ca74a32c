// Package slog provides logging decorators for pagesnap services.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/pagesnap"
)

// Ensure LoggingFetcher implements pagesnap.Fetcher.
var _ pagesnap.Fetcher = (*LoggingFetcher)(nil)

// LoggingFetcher wraps a Fetcher with debug logging.
type LoggingFetcher struct {
	next   pagesnap.Fetcher
	logger *slog.Logger
}

// NewLoggingFetcher creates a new LoggingFetcher.
func NewLoggingFetcher(next pagesnap.Fetcher, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

// Fetch logs the URL being fetched and delegates to the wrapped fetcher.
func (f *LoggingFetcher) Fetch(ctx context.Context, url string) (page *pagesnap.Page, err error) {
	defer func(begin time.Time) {
		attrs := []any{"url", url}
		if page != nil {
			attrs = append(attrs, "final", page.URL, "bytes", len(page.HTML))
		}
		attrs = append(attrs, "duration", time.Since(begin), "err", err)
		f.logger.Info("fetch", attrs...)
	}(time.Now())
	return f.next.Fetch(ctx, url)
}

// Close delegates to the wrapped fetcher.
func (f *LoggingFetcher) Close() error {
	return f.next.Close()
}
