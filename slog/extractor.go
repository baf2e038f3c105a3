package slog

import (
	"log/slog"
	"time"

	scraper "github.com/NakaSato/datadog-scraper"
)

// Ensure LoggingExtractor implements scraper.Extractor.
var _ scraper.Extractor = (*LoggingExtractor)(nil)

// LoggingExtractor wraps an Extractor with per-page logging.
type LoggingExtractor struct {
	next   scraper.Extractor
	logger *slog.Logger
}

// NewLoggingExtractor creates a new LoggingExtractor.
func NewLoggingExtractor(next scraper.Extractor, logger *slog.Logger) *LoggingExtractor {
	return &LoggingExtractor{next: next, logger: logger}
}

// Extract delegates to the wrapped extractor and logs the outcome.
func (e *LoggingExtractor) Extract(pageURL, html string) (*scraper.ExtractResult, error) {
	begin := time.Now()
	res, err := e.next.Extract(pageURL, html)
	if err != nil {
		e.logger.Error("extract",
			"url", pageURL,
			"duration", time.Since(begin),
			"err", err,
		)
		return nil, err
	}
	e.logger.Info("extract",
		"url", pageURL,
		"title", res.Title,
		"bytes", len(res.BodyText),
		"headings", len(res.Headings),
		"code_blocks", len(res.CodeBlocks),
		"duration", time.Since(begin),
	)
	return res, nil
}
