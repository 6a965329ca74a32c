package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/pagesnap"
)

// Ensure LoggingExtractor implements pagesnap.Extractor.
var _ pagesnap.Extractor = (*LoggingExtractor)(nil)

// LoggingExtractor wraps an Extractor and logs which landmarks were found.
type LoggingExtractor struct {
	next   pagesnap.Extractor
	logger *slog.Logger
}

// NewLoggingExtractor creates a new LoggingExtractor.
func NewLoggingExtractor(next pagesnap.Extractor, logger *slog.Logger) *LoggingExtractor {
	return &LoggingExtractor{next: next, logger: logger}
}

// Extract delegates to the wrapped extractor and logs the outcome.
func (e *LoggingExtractor) Extract(page *pagesnap.Page) (result *pagesnap.ExtractionResult, err error) {
	defer func(begin time.Time) {
		attrs := []any{}
		if page != nil {
			attrs = append(attrs, "url", page.URL)
		}
		if result != nil {
			attrs = append(attrs,
				"header", found(result.Header),
				"navigation", found(result.Navigation),
				"main", found(result.MainContent),
				"footer", found(result.Footer),
				"sections", len(result.AllSections),
			)
		}
		attrs = append(attrs, "duration", time.Since(begin), "err", err)
		e.logger.Info("extract", attrs...)
	}(time.Now())
	return e.next.Extract(page)
}

func found(landmark string) bool {
	return landmark != pagesnap.NotFound
}
