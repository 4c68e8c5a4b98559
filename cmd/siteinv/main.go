package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/siteinv"
	"github.com/fwojciec/siteinv/crawl"
	"github.com/fwojciec/siteinv/goquery"
	siteinvhttp "github.com/fwojciec/siteinv/http"
	"github.com/fwojciec/siteinv/rod"
	sislog "github.com/fwojciec/siteinv/slog"
	"github.com/fwojciec/siteinv/sqlite"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path. Set before calling Run(); --db overrides it.
	DBPath string

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Services for end-to-end testing. When set, Run uses them instead of
	// opening the database or starting a fetcher.
	Reports siteinv.ReportStore
	Fetcher siteinv.Fetcher
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
		kong.Name("siteinv"),
		kong.Description("Inventory the files reachable on a single website"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'siteinv --help' to see available commands")
	}

	if args[0] == "help" || args[0] == "--help" || args[0] == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	cmd := strings.Fields(kongCtx.Command())[0]

	deps.Logger = newLogger(stderr, cli.Verbose)

	if cli.DB != "" {
		m.DBPath = cli.DB
	}

	// Only commands that read or write saved reports touch the database.
	if cmd != "crawl" || cli.Crawl.Save {
		if m.Reports == nil {
			m.DB = sqlite.NewDB(m.DBPath)
			if err := m.DB.Open(); err != nil {
				fmt.Fprintf(stderr, "Hint: Set SITEINV_DB or --db to use a different database path\n")
				return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
			}
			defer m.Close()
			m.Reports = sqlite.NewReportStore(m.DB)
		}
		deps.Reports = sislog.NewLoggingReportStore(m.Reports, deps.Logger)
	}

	if cmd == "crawl" {
		timeout := cli.Crawl.Timeout
		if timeout <= 0 {
			timeout = crawl.DefaultFetchTimeout
			if cli.Crawl.Render {
				timeout = rod.DefaultFetchTimeout
			}
		}

		fetcher := m.Fetcher
		if fetcher == nil {
			if cli.Crawl.Render {
				rodFetcher, err := rod.NewFetcher(rod.WithFetchTimeout(timeout))
				if err != nil {
					fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed")
					return fmt.Errorf("failed to start browser: %w", err)
				}
				fetcher = rodFetcher
			} else {
				fetcher = siteinvhttp.NewFetcher(siteinvhttp.WithTimeout(timeout))
			}
			defer fetcher.Close()
		}

		deps.Crawler = &crawl.Crawler{
			Fetcher:      sislog.NewLoggingFetcher(fetcher, deps.Logger),
			Extractor:    sislog.NewLoggingLinkExtractor(goquery.NewLinkExtractor(), deps.Logger),
			FetchTimeout: timeout,
		}
	}

	return kongCtx.Run(deps)
}

// newLogger returns a text logger on w. Verbose output includes every fetch;
// otherwise only warnings and errors are shown.
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func defaultDBPath() string {
	if path := os.Getenv("SITEINV_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "siteinv.db"
	}
	dir := filepath.Join(home, ".siteinv")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "siteinv.db")
}
