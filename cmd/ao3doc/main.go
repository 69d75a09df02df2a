package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/ao3doc"
	"github.com/fwojciec/ao3doc/goquery"
	"github.com/fwojciec/ao3doc/htmltomarkdown"
	ao3http "github.com/fwojciec/ao3doc/http"
	"github.com/fwojciec/ao3doc/rod"
	"github.com/fwojciec/ao3doc/scrape"
	aoslog "github.com/fwojciec/ao3doc/slog"
	"github.com/fwojciec/ao3doc/sqlite"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path. Set before calling Run().
	DBPath string

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Fetcher replaces the HTTP and browser fetchers when set.
	Fetcher ao3doc.Fetcher

	// Services for end-to-end testing.
	WorkService ao3doc.WorkService
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
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
		kong.Name("ao3doc"),
		kong.Description("Scrape Archive of Our Own works into structured documents"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'ao3doc --help' to see available commands")
	}

	if cmd := args[0]; cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	logger := slog.New(slog.DiscardHandler)
	if cli.Verbose {
		logger = slog.New(slog.NewTextHandler(stderr, nil))
	}
	deps.Logger = logger
	deps.BaseURL = cli.BaseURL

	m.DB = sqlite.NewDB(m.DBPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set AO3DOC_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
	}
	defer m.Close()

	m.WorkService = sqlite.NewWorkService(m.DB)
	deps.Works = aoslog.NewLoggingWorkService(m.WorkService, logger)

	if selected := kongCtx.Selected(); selected != nil && selected.Name == "fetch" {
		scraper, closeFn, err := m.newScraper(cli, logger, stderr)
		if err != nil {
			return err
		}
		defer closeFn()
		deps.Scraper = scraper
	}

	return kongCtx.Run(deps)
}

// newScraper wires the fetcher and parser for the fetch command.
func (m *Main) newScraper(cli *CLI, logger *slog.Logger, stderr io.Writer) (*scrape.Scraper, func() error, error) {
	registry := goquery.DefaultRegistry()
	if cli.Fetch.Selectors != "" {
		r, err := loadSelectors(cli.Fetch.Selectors)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to load selectors from %q: %w", cli.Fetch.Selectors, err)
		}
		registry = r
	}

	fetcher := m.Fetcher
	switch {
	case fetcher != nil:
	case cli.Fetch.Browser:
		f, err := rod.NewFetcher(rod.WithFetchTimeout(cli.Fetch.Timeout))
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed")
			return nil, nil, fmt.Errorf("failed to start browser: %w", err)
		}
		fetcher = f
	default:
		fetcher = ao3http.NewFetcher(ao3http.WithTimeout(cli.Fetch.Timeout))
	}

	parser := goquery.NewParser(
		goquery.WithRegistry(registry),
		goquery.WithConverter(htmltomarkdown.NewConverter()),
	)

	scraper := &scrape.Scraper{
		Fetcher:     aoslog.NewLoggingFetcher(fetcher, logger),
		Parser:      aoslog.NewLoggingParser(parser, logger),
		BaseURL:     cli.BaseURL,
		Concurrency: cli.Fetch.Concurrency,
	}
	return scraper, fetcher.Close, nil
}

func defaultDBPath() string {
	if path := os.Getenv("AO3DOC_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "ao3doc.db"
	}
	dir := filepath.Join(home, ".ao3doc")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "ao3doc.db")
}
