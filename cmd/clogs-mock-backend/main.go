// Copyright 2026 The Clogs Authors
// SPDX-License-Identifier: Apache-2.0

// clogs-mock-backend serves a simulated Clogs backend API over HTTP.
//
// Every simulated container flips between running, stopped, and
// restarting on a seeded schedule, so the dashboard has live histories
// to render without Docker. The same seed reproduces the same fleet.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/pflag"

	"github.com/clogs-dev/clogs/lib/cli"
	"github.com/clogs-dev/clogs/lib/clock"
	"github.com/clogs-dev/clogs/lib/mockbackend"
	"github.com/clogs-dev/clogs/lib/process"
	"github.com/clogs-dev/clogs/lib/version"
)

const shutdownTimeout = 5 * time.Second

func main() {
	if err := run(); err != nil {
		process.Fatal(err)
	}
}

func run() error {
	var (
		listenAddress string
		containers    int
		seed          int64
		verbose       bool
		showVersion   bool
	)

	flagSet := pflag.NewFlagSet("clogs-mock-backend", pflag.ContinueOnError)
	flagSet.StringVar(&listenAddress, "listen", "127.0.0.1:8080", "address to serve the API on")
	flagSet.IntVar(&containers, "containers", 8, "number of simulated containers")
	flagSet.Int64Var(&seed, "seed", 1, "seed for the simulated state schedule")
	flagSet.BoolVarP(&verbose, "verbose", "v", false, "log at debug level")
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
		version.Print(os.Stdout, "clogs-mock-backend")
		return nil
	}
	if args := flagSet.Args(); len(args) > 0 {
		return cli.Validation("unexpected argument: %s", args[0])
	}

	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	logger := cli.NewCommandLogger(level)

	simulator, err := mockbackend.NewSimulator(mockbackend.SimulatorConfig{
		Containers: containers,
		Seed:       seed,
		Clock:      clock.Real(),
	})
	if err != nil {
		return cli.Validation("%w", err)
	}

	listener, err := net.Listen("tcp", listenAddress)
	if err != nil {
		return cli.Transient("listening on %s: %w", listenAddress, err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return serve(ctx, listener, mockbackend.NewHandler(simulator, logger), logger)
}

// serve runs the HTTP server on listener until ctx is cancelled, then
// drains in-flight requests for up to shutdownTimeout.
func serve(ctx context.Context, listener net.Listener, handler http.Handler, logger *slog.Logger) error {
	server := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ErrorLog:          slog.NewLogLogger(logger.Handler(), slog.LevelWarn),
	}

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- server.Serve(listener)
	}()
	logger.Info("mock backend listening",
		"address", listener.Addr().String(),
		"api", "http://"+listener.Addr().String()+mockbackend.PathPrefix,
	)

	select {
	case err := <-serveErr:
		return cli.Internal("serving: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return cli.Internal("shutting down: %w", err)
	}
	if err := <-serveErr; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return cli.Internal("serving: %w", err)
	}
	return nil
}

func printHelp(flagSet *pflag.FlagSet) {
	fmt.Fprintf(os.Stderr, `Clogs mock backend: a simulated container fleet behind the Clogs API.

Usage:
  clogs-mock-backend [flags]

Examples:
  # Serve eight containers on the default address
  clogs-mock-backend

  # A larger, different fleet
  clogs-mock-backend --containers 20 --seed 42 --listen :9090

Flags:
`)
	flagSet.PrintDefaults()
}
