package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/go-pkgz/lgr"
	"github.com/jessevdk/go-flags"
	"golang.org/x/sync/errgroup"

	"github.com/umputun/newsdesk/pkg/backend"
	"github.com/umputun/newsdesk/pkg/companies"
	"github.com/umputun/newsdesk/pkg/config"
	"github.com/umputun/newsdesk/pkg/domain"
	"github.com/umputun/newsdesk/pkg/monitor"
	"github.com/umputun/newsdesk/pkg/present"
	"github.com/umputun/newsdesk/pkg/report"
	"github.com/umputun/newsdesk/pkg/tui"
	"github.com/umputun/newsdesk/server"
)

// Opts with all CLI options
type Opts struct {
	Config  string `short:"c" long:"config" env:"CONFIG" description:"configuration file, defaults are used if not set"`
	Listen  string `short:"l" long:"listen" env:"LISTEN" description:"listen address, overrides config"`
	Backend string `short:"b" long:"backend" env:"BACKEND_URL" description:"news service url, overrides config"`
	TUI     bool   `long:"tui" description:"run terminal ui instead of web server"`

	// one-shot mode
	Companies []string `long:"company" description:"fetch news for company and print it, repeatable"`
	Force     bool     `long:"force" description:"bypass news service cache"`
	Sort      string   `long:"sort" default:"date" choice:"date" choice:"company" choice:"summary" choice:"sentiment" description:"sort column"`

	// Common options
	Debug   bool `long:"dbg" env:"DEBUG" description:"debug mode"`
	Version bool `short:"V" long:"version" description:"show version info"`
	NoColor bool `long:"no-color" env:"NO_COLOR" description:"disable color output"`
}

var revision = "unknown"

// errFetchFailed is returned by one-shot runs ending with a failed outcome
var errFetchFailed = errors.New("fetch failed")

const readyDelay = 500 * time.Millisecond

func main() {
	var opts Opts
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	if opts.Version {
		fmt.Printf("Version: %s\nGolang: %s\n", revision, runtime.Version())
		os.Exit(0)
	}

	color.NoColor = color.NoColor || opts.NoColor
	// terminal ui and one-shot output own the terminal, logs go only in debug mode
	setupLog(opts.Debug, opts.TUI || len(opts.Companies) > 0)

	log.Printf("[INFO] starting newsdesk version %s", revision)

	ctx, cancel := context.WithCancel(context.Background())

	// handle termination signals
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		<-sigChan
		log.Print("[INFO] termination signal received")
		cancel()
	}()

	err := run(ctx, opts, os.Stdout)
	cancel()

	if err != nil {
		if !errors.Is(err, errFetchFailed) {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}
		log.Printf("[ERROR] %v", err)
		os.Exit(1)
	}

	log.Print("[INFO] shutdown complete")
}

// run wires components and starts one of the modes: one-shot report, terminal ui or web server
func run(ctx context.Context, opts Opts, out io.Writer) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	client := backend.NewClient(backend.Params{
		URL:        cfg.Backend.URL,
		FetchPath:  cfg.Backend.FetchPath,
		HealthPath: cfg.Backend.HealthPath,
		Timeout:    cfg.Backend.Timeout,
	})
	orch := monitor.New(client)
	orch.DiscardStale = cfg.Monitor.DiscardStale

	switch {
	case len(opts.Companies) > 0:
		if err := waitReady(ctx, cfg, client); err != nil {
			return err
		}
		return runOnce(ctx, orch, opts, report.New(out, cfg.UI.DateFormat, opts.NoColor))
	case opts.TUI:
		if err := waitReady(ctx, cfg, client); err != nil {
			return err
		}
		return tui.Run(ctx, orch, companies.New(cfg.UI.DefaultCompanies...), cfg.UI.DateFormat)
	}

	srv := server.New(cfg, orch, client, companies.New(cfg.UI.DefaultCompanies...), revision, opts.Debug)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return srv.Run(gctx) })
	g.Go(func() error {
		// the ui is usable without the news service, unavailability is only reported
		if err := waitReady(gctx, cfg, client); err != nil {
			log.Printf("[WARN] %v", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}

// loadConfig reads the config file if set and applies command line overrides
func loadConfig(opts Opts) (*config.Config, error) {
	cfg := config.Default()
	if opts.Config != "" {
		var err error
		if cfg, err = config.Load(opts.Config); err != nil {
			return nil, err
		}
	}
	if opts.Listen != "" {
		cfg.Server.Listen = opts.Listen
	}
	if opts.Backend != "" {
		cfg.Backend.URL = opts.Backend
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func waitReady(ctx context.Context, cfg *config.Config, hc backend.HealthChecker) error {
	if !cfg.Backend.WaitReady {
		return nil
	}
	log.Printf("[INFO] waiting for news service at %s", cfg.Backend.URL)
	return backend.WaitReady(ctx, hc, cfg.Backend.WaitAttempts, readyDelay)
}

// runOnce fetches news for companies from the command line and prints them
func runOnce(ctx context.Context, mon *monitor.Orchestrator, opts Opts, printer *report.Printer) error {
	key, ok := domain.ParseSortKey(opts.Sort)
	if !ok {
		return fmt.Errorf("unknown sort key %q", opts.Sort)
	}
	spec := domain.DefaultSortSpec
	if key != spec.Key {
		spec = present.Toggle(spec, key)
	}

	outcome := mon.FetchNews(ctx, opts.Companies, opts.Force)
	if err := printer.Print(outcome, spec); err != nil {
		return fmt.Errorf("print news: %w", err)
	}
	if f, ok := outcome.(domain.Failed); ok {
		return fmt.Errorf("%w: %s", errFetchFailed, f.Message)
	}
	return nil
}

func setupLog(dbg, quiet bool) {
	logOpts := []lgr.Option{lgr.Msec, lgr.LevelBraces}
	if quiet {
		logOpts = []lgr.Option{lgr.Out(io.Discard), lgr.Err(io.Discard)}
	}
	if dbg {
		logOpts = []lgr.Option{lgr.Debug, lgr.Msec, lgr.LevelBraces, lgr.StackTraceOnError}
	}

	colorizer := lgr.Mapper{
		ErrorFunc:  func(s string) string { return color.New(color.FgHiRed).Sprint(s) },
		WarnFunc:   func(s string) string { return color.New(color.FgRed).Sprint(s) },
		InfoFunc:   func(s string) string { return color.New(color.FgYellow).Sprint(s) },
		DebugFunc:  func(s string) string { return color.New(color.FgWhite).Sprint(s) },
		CallerFunc: func(s string) string { return color.New(color.FgBlue).Sprint(s) },
		TimeFunc:   func(s string) string { return color.New(color.FgCyan).Sprint(s) },
	}
	logOpts = append(logOpts, lgr.Map(colorizer))
	lgr.SetupStdLogger(logOpts...)
	lgr.Setup(logOpts...)
}
