package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	"golang.org/x/time/rate"

	"github.com/gigarip/gigarip"
	"github.com/gigarip/gigarip/browser"
	"github.com/gigarip/gigarip/download"
	"github.com/gigarip/gigarip/fs"
	"github.com/gigarip/gigarip/goquery"
	gighttp "github.com/gigarip/gigarip/http"
	"github.com/gigarip/gigarip/imaging"
	gigslog "github.com/gigarip/gigarip/slog"
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
type Main struct {
	// Runner overrides the constructed runner. Set by end-to-end tests.
	Runner *download.Runner
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Run executes the CLI with the given arguments. Per-identifier
// failures are reported on stderr and processing continues; Run
// returns an error only when nothing succeeded.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("gigarip"),
		kong.Description("Download a zoomable tiled image at full resolution."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Vars{"tile_host": gigarip.DefaultTileHost},
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 1 && (args[0] == "help" || args[0] == "--help" || args[0] == "-h") {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	if _, err := parser.Parse(args); err != nil {
		return err
	}

	level := slog.LevelInfo
	if cli.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	runner := m.Runner
	if runner == nil {
		runner = buildRunner(cli, logger)
	}
	if runner.Progress == nil {
		runner.Progress = progressPrinter(stdout)
	}
	defer func() { _ = runner.Pages.Close() }()

	// Prerequisites are checked once; a failure here aborts the whole
	// run rather than a single session.
	if err := runner.Preflight(); err != nil {
		return fmt.Errorf("preflight: %s", gigarip.ErrorMessage(err))
	}

	urls := cli.URLs
	if len(urls) == 0 {
		urls = defaultSources
	}

	var succeeded int
	for _, url := range urls {
		session, err := runner.Download(ctx, url)
		if err != nil {
			fmt.Fprintf(stderr, "error: %s: %s\n", url, gigarip.ErrorMessage(err))
			continue
		}
		succeeded++
		fmt.Fprintf(stdout, "Saved %s (%d tiles at zoom %d)\n",
			session.OutputPath, session.Grid.Tiles(), session.Zoom)
	}

	if succeeded == 0 {
		return fmt.Errorf("no image could be downloaded (%d attempted)", len(urls))
	}
	return nil
}

// buildRunner wires the production collaborators from CLI options.
func buildRunner(cli *CLI, logger *slog.Logger) *download.Runner {
	cfg := gigarip.Config{
		TempDir:   cli.Temp,
		OutputDir: cli.Out,
		MaxZoom:   cli.MaxZoom,
		TileHost:  cli.TileHost,
	}
	if cfg.TempDir == "" {
		cfg.TempDir = os.TempDir()
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = "."
	}

	runner := &download.Runner{
		Pages:      gigslog.NewLoggingPageFetcher(gighttp.NewPageFetcher(), logger),
		Extractor:  goquery.NewExtractor(),
		Tiles:      gigslog.NewLoggingTileFetcher(gighttp.NewTileFetcher(cfg.TileHost), logger),
		Store:      fs.NewStore(cfg.TempDir, cfg.OutputDir),
		Compositor: imaging.NewCompositor(),
		Config:     cfg,
		Workers:    cli.Workers,
		Logger:     logger,
	}

	if cli.Rate > 0 {
		runner.Limiter = rate.NewLimiter(rate.Limit(cli.Rate), 1)
	}
	if !cli.NoTag {
		runner.Tagger = fs.NewTagger()
	}
	if !cli.NoReveal {
		runner.Revealer = browser.NewRevealer()
	}

	return runner
}

// progressPrinter reports session milestones on stdout.
func progressPrinter(stdout io.Writer) download.ProgressFunc {
	return func(event download.ProgressEvent) {
		switch event.Type {
		case download.ProgressIdentified:
			fmt.Fprintf(stdout, "  %s → %s\n", event.Session.SourceURL, event.Session.PermaID)
		case download.ProgressZoomFound:
			fmt.Fprintf(stdout, "  zoom level %d\n", event.Zoom)
		case download.ProgressRowCompleted:
			fmt.Fprintf(stdout, "  row %d complete\n", event.Row)
		case download.ProgressAssembled:
			fmt.Fprintf(stdout, "  assembled %s\n", event.Path)
		}
	}
}
