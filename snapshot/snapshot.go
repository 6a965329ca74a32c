// Package snapshot runs the page snapshot: it reads a document once,
// builds the extraction record, saves it and mirrors it to the console.
package snapshot

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/pagesnap"
	"github.com/google/uuid"
)

// Snapshotter coordinates a single snapshot run.
// Fetcher, Extractor, Artifacts, Console and Notifier are required.
type Snapshotter struct {
	Fetcher   pagesnap.Fetcher
	Extractor pagesnap.Extractor
	Artifacts pagesnap.ArtifactWriter
	Console   pagesnap.Console
	Notifier  pagesnap.Notifier

	// Converter, when set, saves the main content as a Markdown companion.
	Converter pagesnap.Converter

	// Reader locates main content for the companion when the main
	// landmark is missing. Optional.
	Reader pagesnap.Reader

	// Logger receives structured progress logs. Defaults to discarding.
	Logger *slog.Logger

	// ArtifactName defaults to pagesnap.DefaultArtifactName.
	ArtifactName string

	// Quiet skips mirroring the full document markup to the console.
	Quiet bool

	// RetryDelays holds one backoff delay per fetch retry. Nil means no retries.
	RetryDelays []time.Duration
}

// Result describes a completed run.
type Result struct {
	Extraction   *pagesnap.ExtractionResult
	Path         string
	MarkdownPath string
	// Digest is the xxhash of the saved JSON; equal digests mean
	// byte-identical artifacts.
	Digest string
}

// Run snapshots the page at url.
func (s *Snapshotter) Run(ctx context.Context, url string) (*Result, error) {
	if err := s.validate(); err != nil {
		return nil, err
	}
	if url == "" {
		return nil, pagesnap.Errorf(pagesnap.EINVALID, "URL required")
	}

	logger := s.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	logger = logger.With("run", uuid.NewString())

	name := s.ArtifactName
	if name == "" {
		name = pagesnap.DefaultArtifactName
	}

	page, err := fetchWithRetry(ctx, s.Fetcher, url, s.RetryDelays, logger)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", url, err)
	}

	extraction, err := s.Extractor.Extract(page)
	if err != nil {
		return nil, fmt.Errorf("extracting %s: %w", page.URL, err)
	}

	data, err := pagesnap.Encode(extraction)
	if err != nil {
		return nil, fmt.Errorf("encoding result: %w", err)
	}

	path, err := s.Artifacts.Save(ctx, name, data)
	if err != nil {
		return nil, fmt.Errorf("saving %s: %w", name, err)
	}

	result := &Result{
		Extraction: extraction,
		Path:       path,
		Digest:     fmt.Sprintf("%016x", xxhash.Sum64(data)),
	}

	logger.Info("snapshot saved",
		"url", page.URL,
		"path", path,
		"bytes", len(data),
		"digest", result.Digest,
		"sections", len(extraction.AllSections),
		"links", len(extraction.Links),
		"images", len(extraction.Images),
		"buttons", len(extraction.Buttons),
	)

	if s.Converter != nil {
		result.MarkdownPath, err = s.saveMarkdown(ctx, name, page, extraction, logger)
		if err != nil {
			return nil, err
		}
	}

	if err := s.Console.Log(pagesnap.ContentBanner, string(data)); err != nil {
		return nil, fmt.Errorf("writing console: %w", err)
	}
	if !s.Quiet {
		if err := s.Console.Log("\n"+pagesnap.HTMLBanner, page.HTML); err != nil {
			return nil, fmt.Errorf("writing console: %w", err)
		}
	}

	if err := s.Notifier.Notify(pagesnap.Acknowledgement(name)); err != nil {
		return nil, fmt.Errorf("acknowledging: %w", err)
	}

	return result, nil
}

// saveMarkdown converts the main content and saves it next to the JSON
// artifact. Returns an empty path when no main content is available.
func (s *Snapshotter) saveMarkdown(ctx context.Context, name string, page *pagesnap.Page, extraction *pagesnap.ExtractionResult, logger *slog.Logger) (string, error) {
	content := extraction.MainContent
	if content == pagesnap.NotFound {
		content = ""
		if s.Reader != nil {
			article, err := s.Reader.Read(page.HTML)
			if err != nil {
				return "", fmt.Errorf("reading main content: %w", err)
			}
			content = article.ContentHTML
		}
	}
	if strings.TrimSpace(content) == "" {
		logger.Warn("no main content for markdown companion", "url", page.URL)
		return "", nil
	}

	markdown, err := s.Converter.Convert(content)
	if err != nil {
		return "", fmt.Errorf("converting main content: %w", err)
	}

	mdName := strings.TrimSuffix(name, filepath.Ext(name)) + ".md"
	path, err := s.Artifacts.Save(ctx, mdName, []byte(markdown))
	if err != nil {
		return "", fmt.Errorf("saving %s: %w", mdName, err)
	}
	logger.Info("markdown saved", "path", path, "bytes", len(markdown))
	return path, nil
}

func (s *Snapshotter) validate() error {
	switch {
	case s.Fetcher == nil:
		return pagesnap.Errorf(pagesnap.EINVALID, "fetcher required")
	case s.Extractor == nil:
		return pagesnap.Errorf(pagesnap.EINVALID, "extractor required")
	case s.Artifacts == nil:
		return pagesnap.Errorf(pagesnap.EINVALID, "artifact writer required")
	case s.Console == nil:
		return pagesnap.Errorf(pagesnap.EINVALID, "console required")
	case s.Notifier == nil:
		return pagesnap.Errorf(pagesnap.EINVALID, "notifier required")
	}
	return nil
}
