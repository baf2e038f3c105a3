package slog_test

import (
	"bytes"
	"log/slog"
	"testing"

	scraper "github.com/NakaSato/datadog-scraper"
	"github.com/NakaSato/datadog-scraper/mock"
	ddslog "github.com/NakaSato/datadog-scraper/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingExtractor_Extract(t *testing.T) {
	t.Parallel()

	t.Run("logs extraction summary", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Extractor{
			ExtractFn: func(pageURL, html string) (*scraper.ExtractResult, error) {
				return &scraper.ExtractResult{
					Title:    "Metrics API",
					BodyText: "body",
					Headings: []scraper.Heading{{Level: 1, Text: "Metrics API"}},
				}, nil
			},
		}

		extractor := ddslog.NewLoggingExtractor(inner, logger)
		res, err := extractor.Extract("https://docs.example.com/api", "<html></html>")

		require.NoError(t, err)
		assert.Equal(t, "Metrics API", res.Title)
		output := buf.String()
		assert.Contains(t, output, "extract")
		assert.Contains(t, output, "url=https://docs.example.com/api")
		assert.Contains(t, output, "title=\"Metrics API\"")
		assert.Contains(t, output, "headings=1")
	})

	t.Run("logs error on failure", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Extractor{
			ExtractFn: func(pageURL, html string) (*scraper.ExtractResult, error) {
				return nil, scraper.Errorf(scraper.EPARSE, "bad markup")
			},
		}

		extractor := ddslog.NewLoggingExtractor(inner, logger)
		_, err := extractor.Extract("https://docs.example.com/api", "junk")

		require.Error(t, err)
		assert.Contains(t, buf.String(), "level=ERROR")
	})
}
