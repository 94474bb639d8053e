// Copyright 2026 The Clogs Authors
// SPDX-License-Identifier: Apache-2.0

// clogs-dashboard is the terminal uptime dashboard for a Clogs
// backend.
//
// Interactive mode (default) lists every container grouped by service
// with a heartbeat bar of its recent states, refreshing on the
// configured poll cadence.
//
// One-shot mode (--once) fetches every history, renders each series a
// single time at the current time, writes it as text, JSON, or CBOR,
// and exits. Useful for scripts and for piping into other tools.
//
// With --file, histories come from a local JSONC fixture instead of
// the API, which is how the dashboard runs without a backend.
package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/url"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/clogs-dev/clogs/lib/backend"
	"github.com/clogs-dev/clogs/lib/cli"
	"github.com/clogs-dev/clogs/lib/clock"
	"github.com/clogs-dev/clogs/lib/config"
	"github.com/clogs-dev/clogs/lib/dashboard"
	"github.com/clogs-dev/clogs/lib/export"
	"github.com/clogs-dev/clogs/lib/fixture"
	"github.com/clogs-dev/clogs/lib/process"
	"github.com/clogs-dev/clogs/lib/timeline"
	"github.com/clogs-dev/clogs/lib/tui"
	"github.com/clogs-dev/clogs/lib/version"
)

const defaultTextWidth = 100

func main() {
	if err := run(); err != nil {
		process.Fatal(err)
	}
}

type flags struct {
	configPath string
	filePath   string
	containers []string
	once       bool
	format     string
	width      int
	logOutput  string
}

func run() error {
	var options flags
	var showVersion bool

	flagSet := pflag.NewFlagSet("clogs-dashboard", pflag.ContinueOnError)
	flagSet.StringVar(&options.configPath, "config", "", "YAML config file (default: $"+config.EnvVar+", else built-in defaults)")
	flagSet.StringVar(&options.filePath, "file", "", "read histories from a JSONC fixture instead of the API")
	flagSet.StringArrayVar(&options.containers, "container", nil, "show only this container ID or name (repeatable)")
	flagSet.BoolVar(&options.once, "once", false, "render every series once and exit")
	flagSet.StringVar(&options.format, "format", string(export.FormatText), "output format with --once: text, json, or cbor")
	flagSet.IntVar(&options.width, "width", 0, "line width of --once text output (default: terminal width)")
	flagSet.StringVar(&options.logOutput, "log-output", "", "also write JSON log records to this file (default: log.output from the config)")
	flagSet.BoolVar(&showVersion, "version", false, "print version information and exit")
	flagSet.BoolP("help", "h", false, "show help")

	if err := flagSet.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			printHelp(flagSet)
			return nil
		}
		return cli.Validation("%w", err)
	}
	if help, _ := flagSet.GetBool("help"); help {
		printHelp(flagSet)
		return nil
	}
	if showVersion {
		version.Print(os.Stdout, "clogs-dashboard")
		return nil
	}
	if args := flagSet.Args(); len(args) > 0 {
		return cli.Validation("unexpected argument: %s", args[0])
	}

	cfg, err := loadConfig(options.configPath)
	if err != nil {
		return err
	}
	if options.logOutput == "" {
		options.logOutput = cfg.Log.Output
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if options.once {
		return runOnce(ctx, cfg, options)
	}
	return runDashboard(ctx, cfg, options)
}

func printHelp(flagSet *pflag.FlagSet) {
	fmt.Fprintf(os.Stderr, `Clogs dashboard: container uptime timelines in the terminal.

Connects to the backend API named by api.base_url in the config and
shows every container's recent states as a heartbeat bar. Without a
config file, the built-in defaults target http://localhost:8080/api.

Usage:
  clogs-dashboard [flags]

Examples:
  # Interactive dashboard against the configured backend
  clogs-dashboard --config clogs.yaml

  # Offline, from a fixture file
  clogs-dashboard --file testdata/uptime.jsonc

  # One container's series as JSON, once
  clogs-dashboard --once --format json --container web-1

Keys:
  ↑/↓ select  ←/→ inspect buckets  / filter  w window  Enter logs  r refresh  q quit

Flags:
`)
	flagSet.SetOutput(os.Stderr)
	flagSet.PrintDefaults()
}

// loadConfig reads --config, else the file named by CLOGS_CONFIG, else
// falls back to the defaults.
func loadConfig(path string) (*config.Config, error) {
	var cfg *config.Config
	var err error
	switch {
	case path != "":
		cfg, err = config.LoadFile(path)
	case os.Getenv(config.EnvVar) != "":
		cfg, err = config.Load()
	default:
		cfg = config.Default()
	}
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, cli.NotFound("%w", err)
		}
		return nil, cli.Validation("%w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, cli.Validation("invalid config: %w", err)
	}
	return cfg, nil
}

// newSource returns the fixture provider for --file, otherwise an API
// client.
func newSource(cfg *config.Config, filePath string, clk clock.Clock, logger *slog.Logger) (dashboard.Source, error) {
	if filePath != "" {
		if _, err := os.Stat(filePath); err != nil {
			return nil, cli.NotFound("fixture: %w", err)
		}
		return fixture.New(filePath), nil
	}
	client, err := backend.NewClient(backend.Config{
		BaseURL: cfg.API.BaseURL,
		Timeout: cfg.API.Timeout(),
		Clock:   clk,
		Logger:  logger,
	})
	if err != nil {
		return nil, cli.Validation("%w", err)
	}
	return client, nil
}

func newBoard(cfg *config.Config) (*timeline.Board, error) {
	board, err := timeline.NewBoard(timeline.Options{
		BucketWidth: cfg.Timeline.BucketWidth(),
		Lookback:    cfg.Timeline.Lookback(),
	})
	if err != nil {
		return nil, cli.Validation("%w", err)
	}
	return board, nil
}

func logLevel(cfg *config.Config) (slog.Level, error) {
	level, err := cfg.Log.SlogLevel()
	if err != nil {
		return level, cli.Validation("%w", err)
	}
	return level, nil
}

func newTheme(cfg *config.Config) tui.Theme {
	return tui.DefaultTheme.WithStateColors(cfg.Theme.StateColors, cfg.Theme.DefaultColor)
}

// runOnce renders every subject a single time and writes the result
// to stdout. Subjects that fail are reported in the output and make
// the command exit with the transient code.
func runOnce(ctx context.Context, cfg *config.Config, options flags) error {
	format, err := export.ParseFormat(options.format)
	if err != nil {
		return cli.Validation("%w", err)
	}
	level, err := logLevel(cfg)
	if err != nil {
		return err
	}
	logger := cli.NewCommandLogger(level)

	clk := clock.Real()
	source, err := newSource(cfg, options.filePath, clk, logger)
	if err != nil {
		return err
	}
	board, err := newBoard(cfg)
	if err != nil {
		return err
	}
	timeSource, err := timeline.NewTimeSource(clk, cfg.Timeline.TickInterval())
	if err != nil {
		return cli.Validation("%w", err)
	}
	now := timeSource.Advance(clk.Now())

	subjects, err := export.Subjects(ctx, source, options.containers)
	if err != nil {
		return classifyFetchError(err)
	}
	if len(options.containers) > 0 && len(subjects) == 1 {
		return cli.NotFound("no container matches %v", options.containers)
	}
	document := export.Collect(ctx, source, board, subjects, now)

	width := options.width
	if format == export.FormatText {
		lipgloss.SetColorProfile(termenv.NewOutput(os.Stdout).EnvColorProfile())
		if width <= 0 {
			width = terminalWidth(os.Stdout)
		}
	}
	if err := export.Write(os.Stdout, format, document, newTheme(cfg), width); err != nil {
		return cli.Internal("writing output: %w", err)
	}

	if failed := document.Failed(); failed > 0 {
		for _, subject := range document.Subjects {
			if subject.Error != "" {
				logger.Warn("subject not rendered", "subject", subject.Name, "error", subject.Error)
			}
		}
		return cli.Transient("%d of %d subjects could not be rendered", failed, len(document.Subjects))
	}
	return nil
}

func terminalWidth(file *os.File) int {
	if !term.IsTerminal(int(file.Fd())) {
		return defaultTextWidth
	}
	width, _, err := term.GetSize(int(file.Fd()))
	if err != nil || width <= 0 {
		return defaultTextWidth
	}
	return width
}

// classifyFetchError maps a backend or fixture failure to an exit
// category.
func classifyFetchError(err error) error {
	var urlErr *url.Error
	switch {
	case backend.IsNotFound(err), errors.Is(err, fs.ErrNotExist):
		return cli.NotFound("%w", err)
	case backend.IsTransient(err), errors.Is(err, context.DeadlineExceeded), errors.As(err, &urlErr):
		return cli.Transient("%w", err)
	}
	return cli.Internal("%w", err)
}

// runDashboard runs the interactive TUI. Background logging goes to
// the status bar instead of stderr, which would corrupt the alt
// screen; --log-output captures every record to a file as well.
func runDashboard(ctx context.Context, cfg *config.Config, options flags) error {
	level, err := logLevel(cfg)
	if err != nil {
		return err
	}
	tuiHandler := dashboard.NewTUILogHandler(max(level, slog.LevelWarn))

	var handler slog.Handler = tuiHandler
	if options.logOutput != "" {
		fileHandler, closeFile, err := openFileLogHandler(options.logOutput, level)
		if err != nil {
			return cli.Validation("cannot open log file %s: %w", options.logOutput, err)
		}
		defer closeFile()
		handler = fanoutHandler{tuiHandler, fileHandler}
	}
	logger := slog.New(handler)

	clk := clock.Real()
	source, err := newSource(cfg, options.filePath, clk, logger)
	if err != nil {
		return err
	}
	board, err := newBoard(cfg)
	if err != nil {
		return err
	}
	timeSource, err := timeline.NewTimeSource(clk, cfg.Timeline.TickInterval())
	if err != nil {
		return cli.Validation("%w", err)
	}
	go timeSource.Run(ctx)

	theme := newTheme(cfg)
	model, err := dashboard.NewModel(ctx, dashboard.Options{
		Source:         source,
		Board:          board,
		TimeSource:     timeSource,
		Clock:          clk,
		Theme:          &theme,
		DataInterval:   cfg.Polling.DataInterval(),
		HealthInterval: cfg.Polling.HealthInterval(),
		Containers:     options.containers,
		Logger:         logger,
	})
	if err != nil {
		return cli.Internal("%w", err)
	}

	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx))
	tuiHandler.SetProgram(program)

	if _, err := program.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return err
	}
	return nil
}
