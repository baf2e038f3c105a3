package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"github.com/NakaSato/datadog-scraper/goquery"
	ddhttp "github.com/NakaSato/datadog-scraper/http"
	ddslog "github.com/NakaSato/datadog-scraper/slog"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct{}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("ddscrape"),
		kong.Description("Recursively crawl a documentation site and export its content."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no URL specified. Run 'ddscrape --help' for usage")
	}

	if args[0] == "help" || args[0] == "--help" || args[0] == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	level := slog.LevelInfo
	if !cli.Verbose {
		level = slog.LevelWarn
	}
	deps.Logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	fetcher := ddhttp.NewFetcher(ddhttp.WithTimeout(cli.Scrape.Timeout))
	deps.Fetcher = ddslog.NewLoggingFetcher(fetcher, deps.Logger)
	defer deps.Fetcher.Close()

	deps.Links = goquery.NewLinkExtractor()
	deps.Extractor = ddslog.NewLoggingExtractor(goquery.NewExtractor(), deps.Logger)

	return kongCtx.Run(deps)
}
