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
	"github.com/fwojciec/capdata"
	"github.com/fwojciec/capdata/crawl"
	"github.com/fwojciec/capdata/fs"
	"github.com/fwojciec/capdata/goquery"
	caphttp "github.com/fwojciec/capdata/http"
	"github.com/fwojciec/capdata/matchr"
	"github.com/fwojciec/capdata/postgres"
	"github.com/fwojciec/capdata/rod"
	capslog "github.com/fwojciec/capdata/slog"
	"github.com/fwojciec/capdata/sqlite"
	"github.com/fwojciec/capdata/yaml"
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
	// Fetcher replaces the HTTP or browser fetcher when set. Set before
	// calling Run(). Main does not close it.
	Fetcher capdata.Fetcher

	closers []io.Closer
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Close releases everything opened by Run, most recent first.
func (m *Main) Close() error {
	var first error
	for i := len(m.closers) - 1; i >= 0; i-- {
		if err := m.closers[i].Close(); err != nil && first == nil {
			first = err
		}
	}
	m.closers = nil
	return first
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
		kong.Name("capscrape"),
		kong.Description("Scrape NFL team salary cap pages into tabular datasets"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'capscrape --help' to see available commands")
	}
	if args[0] == "help" || args[0] == "--help" || args[0] == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	defer m.Close()

	logger, err := m.openLogger(stderr, cli.LogLevel, cli.LogFile)
	if err != nil {
		return err
	}
	deps.Logger = logger

	cfg := capdata.DefaultConfig()
	if cli.Config != "" {
		if cfg, err = yaml.LoadConfig(cli.Config); err != nil {
			fmt.Fprintln(stderr, "Hint: Set CAPSCRAPE_CONFIG or --config to a valid YAML file")
			return fmt.Errorf("failed to load config %q: %w", cli.Config, err)
		}
	}
	deps.Config = cfg

	var flags FetchFlags
	switch kongCtx.Command() {
	case "scrape":
		flags = cli.Scrape.FetchFlags
	case "teams":
		flags = cli.Teams.FetchFlags
	}

	fetcher, err := m.openFetcher(flags)
	if err != nil {
		return err
	}

	links, err := goquery.NewLinkDiscoverer(cfg.RootURL, cfg.Links)
	if err != nil {
		return err
	}

	deps.Crawler = &crawl.Crawler{
		Config:  cfg,
		Fetcher: capslog.NewLoggingFetcher(fetcher, logger),
		Links:   capslog.NewLoggingLinkDiscoverer(links, logger),
		Locator: capslog.NewLoggingLocator(goquery.NewLocator(cfg.Selectors), logger),
		Auditor: matchr.NewAuditor(cfg.Columns),
		Logger:  logger,
	}

	if kongCtx.Command() == "scrape" {
		if deps.Writer, err = m.openWriters(ctx, &cli.Scrape, logger); err != nil {
			return err
		}
	}

	return kongCtx.Run(deps)
}

func (m *Main) openFetcher(flags FetchFlags) (capdata.Fetcher, error) {
	if m.Fetcher != nil {
		return m.Fetcher, nil
	}

	if flags.Browser {
		f, err := rod.NewFetcher(rod.WithFetchTimeout(flags.Timeout))
		if err != nil {
			return nil, fmt.Errorf("failed to start browser (Chrome or Chromium must be installed): %w", err)
		}
		m.closers = append(m.closers, f)
		return f, nil
	}

	opts := []caphttp.Option{caphttp.WithTimeout(flags.Timeout)}
	if flags.UserAgent != "" {
		opts = append(opts, caphttp.WithUserAgent(flags.UserAgent))
	}
	f := caphttp.NewFetcher(opts...)
	m.closers = append(m.closers, f)
	return f, nil
}

// openWriters returns the file store plus any database sinks the flags ask for.
func (m *Main) openWriters(ctx context.Context, c *ScrapeCmd, logger *slog.Logger) (capdata.DatasetWriter, error) {
	out, err := filepath.Abs(c.Out)
	if err != nil {
		return nil, err
	}
	store := fs.NewDatasetStore(filepath.Dir(out), filepath.Base(out), fs.WithFormat(fs.Format(c.Format)))
	writers := crawl.MultiWriter{capslog.NewLoggingWriter("files", store, logger)}

	if c.DB != "" {
		db := sqlite.NewDB(c.DB)
		if err := db.Open(); err != nil {
			return nil, fmt.Errorf("failed to open database at %q: %w", c.DB, err)
		}
		m.closers = append(m.closers, db)
		writers = append(writers, capslog.NewLoggingWriter("sqlite", sqlite.NewDatasetWriter(db), logger))
	}

	if c.Postgres != "" {
		db := postgres.NewDB(c.Postgres)
		if err := db.Open(ctx); err != nil {
			return nil, fmt.Errorf("failed to open postgres database: %w", err)
		}
		m.closers = append(m.closers, db)
		writers = append(writers, capslog.NewLoggingWriter("postgres", postgres.NewDatasetWriter(db), logger))
	}

	return writers, nil
}
