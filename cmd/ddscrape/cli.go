package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	scraper "github.com/NakaSato/datadog-scraper"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx       context.Context
	Stdout    io.Writer
	Stderr    io.Writer
	Logger    *slog.Logger
	Fetcher   scraper.Fetcher
	Links     scraper.LinkExtractor
	Extractor scraper.Extractor
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Scrape  ScrapeCmd `cmd:"" default:"withargs" help:"Crawl a documentation site and export its content"`
	Verbose bool      `short:"v" help:"Enable debug logging"`
}

// ScrapeCmd is the "scrape" subcommand.
type ScrapeCmd struct {
	URL         string        `arg:"" help:"Seed URL to crawl"`
	MaxDepth    int           `short:"d" default:"2" help:"Maximum crawl depth from the seed"`
	Delay       time.Duration `default:"500ms" help:"Minimum delay between fetches"`
	Out         string        `short:"o" default:"scraped_docs" help:"Output directory for exported files"`
	Concurrency int           `short:"c" default:"5" help:"Concurrent extraction limit"`
	Timeout     time.Duration `default:"10s" help:"HTTP request timeout"`
}
