package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/jmbacasno/mangago"
	"github.com/jmbacasno/mangago/fs"
	"github.com/jmbacasno/mangago/goquery"
	"github.com/jmbacasno/mangago/rod"
	"github.com/jmbacasno/mangago/scrape"
)

// requestsPerSecond is the polite fetch rate against the listing site.
const requestsPerSecond = 1.0

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
	// Initialize dependencies struct for Kong binding
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	// Create Kong parser with dependency binding
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("mangago"),
		kong.Description("Export Mangago.me reading lists as JSON or CSV."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	// Handle help flags using Kong
	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'mangago --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	// Parse arguments first to know which command and its flags
	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	// Both commands fetch pages, so both need a browser-backed scraper.
	if cmd == "export" || cmd == "info" {
		fetcher, err := rod.NewFetcher()
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed")
			return fmt.Errorf("failed to start browser: %w", err)
		}
		defer fetcher.Close()

		timeout := cli.Info.Timeout
		verbose := cli.Info.Verbose
		concurrency := 0
		if cmd == "export" {
			timeout = cli.Export.Timeout
			verbose = cli.Export.Verbose
			concurrency = cli.Export.Concurrency
		}

		var f mangago.Fetcher = fetcher
		if verbose {
			logger := slog.New(slog.NewTextHandler(stderr, nil))
			f = rod.NewLoggingFetcher(fetcher, logger)
		}

		deps.Scraper = &scrape.Scraper{
			Fetcher:     f,
			Parser:      goquery.NewParser(),
			Limiter:     scrape.NewLimiter(requestsPerSecond),
			Timeout:     timeout,
			Concurrency: concurrency,
		}
	}

	if cmd == "export" {
		deps.Writer = newWriter(cli.Export.Format, cli.Export.Out)
	}

	return kongCtx.Run(deps)
}

// newWriter picks the export writer for the requested format. Files land in
// a per-format subdirectory of the output directory.
func newWriter(format string, out string) mangago.ListWriter {
	switch format {
	case "csv":
		return fs.NewCSVWriter(filepath.Join(out, "csv"))
	default:
		return fs.NewJSONWriter(filepath.Join(out, "json"))
	}
}
