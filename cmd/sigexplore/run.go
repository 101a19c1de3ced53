package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/cwbudde/algo-sigexplore/explorer"
	"github.com/cwbudde/algo-sigexplore/internal/config"
	"github.com/cwbudde/algo-sigexplore/internal/logging"
	"github.com/cwbudde/algo-sigexplore/internal/metrics"
	"github.com/cwbudde/algo-sigexplore/internal/session"
)

type cliOptions struct {
	configPath  string
	format      string
	spectrum    string
	out         string
	metricsAddr string
	logLevel    string
	logFormat   string
	watch       bool
}

func parseFlags(args []string, stderr io.Writer) (cliOptions, error) {
	var o cliOptions

	fs := flag.NewFlagSet("sigexplore", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&o.configPath, "config", "", "parameter file (toml, yaml or json); defaults apply when empty")
	fs.StringVar(&o.format, "format", formatTable, "output format: table or csv")
	fs.StringVar(&o.spectrum, "spectrum", "", "also print the amplitude spectrum of a view: pure, displayed or filtered")
	fs.StringVar(&o.out, "out", "", "write output to this file instead of stdout")
	fs.StringVar(&o.metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address in watch mode")
	fs.StringVar(&o.logLevel, "log-level", "", "log level override: debug, info, warn, error")
	fs.StringVar(&o.logFormat, "log-format", "", "log format override: text or json")
	fs.BoolVar(&o.watch, "watch", false, "recompute whenever the parameter file changes")
	fs.Usage = func() {
		_, _ = fmt.Fprintf(stderr, "Usage: sigexplore [flags]\n\n")
		_, _ = fmt.Fprintf(stderr, "Recomputes the pure, displayed and filtered views of a harmonic signal.\n\n")
		_, _ = fmt.Fprintf(stderr, "Flags:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return o, err
	}
	if fs.NArg() > 0 {
		return o, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	if o.format != formatTable && o.format != formatCSV {
		return o, fmt.Errorf("unknown format %q (want %s or %s)", o.format, formatTable, formatCSV)
	}
	if o.spectrum != "" {
		if _, err := selectView(explorer.Views{}, o.spectrum); err != nil {
			return o, err
		}
	}
	if o.watch && o.configPath == "" {
		return o, errors.New("-watch requires -config")
	}
	return o, nil
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}

	var (
		cfg     *config.Config
		watcher *config.Watcher
	)
	if opts.watch {
		watcher, err = config.NewWatcher(opts.configPath)
		if err != nil {
			return err
		}
		defer watcher.Close()
		cfg = watcher.Initial()
	} else {
		cfg, err = config.Load(opts.configPath)
		if err != nil {
			return err
		}
	}
	applyOverrides(cfg, opts)

	logger, logCloser, err := logging.New(cfg.Logging(), stderr)
	if err != nil {
		return err
	}
	defer logCloser.Close()

	out := stdout
	if opts.out != "" {
		f, err := os.Create(opts.out)
		if err != nil {
			return fmt.Errorf("create output: %w", err)
		}
		defer f.Close()
		out = f
	}

	grid, err := cfg.SampleGrid()
	if err != nil {
		return err
	}
	ctrlOpts, err := cfg.ControllerOptions()
	if err != nil {
		return err
	}
	ctrlOpts = append(ctrlOpts, explorer.WithLogger(logger.With("component", "explorer")))

	var collector *metrics.Collector
	if opts.watch && cfg.Metrics.Addr != "" {
		collector = metrics.New(metrics.WithRuntimeMetrics())
		ctrlOpts = append(ctrlOpts, explorer.WithObserver(collector))
	}

	ctrl, err := explorer.New(grid, ctrlOpts...)
	if err != nil {
		return err
	}

	r := &renderer{w: out, format: opts.format, spectrum: opts.spectrum, ctrl: ctrl}

	if !opts.watch {
		st := cfg.State()
		v, err := ctrl.RecomputeState(st)
		if err != nil {
			return err
		}
		return r.render(st, v)
	}

	logger.Info("watching parameter file", "path", opts.configPath)
	return watch(ctx, watcher, cfg, ctrl, r, collector, logger)
}

func applyOverrides(cfg *config.Config, opts cliOptions) {
	if opts.logLevel != "" {
		cfg.Log.Level = opts.logLevel
	}
	if opts.logFormat != "" {
		cfg.Log.Format = opts.logFormat
	}
	if opts.metricsAddr != "" {
		cfg.Metrics.Addr = opts.metricsAddr
	}
}

func watch(
	ctx context.Context,
	watcher *config.Watcher,
	initial *config.Config,
	ctrl *explorer.Controller,
	r *renderer,
	collector *metrics.Collector,
	logger *slog.Logger,
) error {
	loop := session.New(ctrl, func(st explorer.State, v explorer.Views, err error) {
		if err != nil {
			logger.Error("recompute failed", "error", err)
			return
		}
		if err := r.render(st, v); err != nil {
			logger.Error("render failed", "error", err)
		}
	}, session.WithLogger(logger))

	g, gctx := errgroup.WithContext(ctx)

	if collector != nil {
		g.Go(func() error {
			return serveMetrics(gctx, initial.Metrics.Addr, collector.Handler(), logger)
		})
	}

	g.Go(func() error { return loop.Run(gctx) })

	g.Go(func() error {
		defer loop.Close()
		if err := loop.Submit(gctx, initial.State()); err != nil {
			return err
		}
		return watcher.Run(gctx, func(ch config.Change) {
			if ch.Err != nil {
				logger.Error("parameter file rejected", "file", ch.Event.Name, "error", ch.Err)
				return
			}
			if ch.Config.Grid != initial.Grid || ch.Config.Seed != initial.Seed {
				logger.Warn("grid and seed changes take effect after restart", "file", ch.Event.Name)
			}
			if err := loop.Submit(gctx, ch.Config.State()); err != nil {
				logger.Debug("submit skipped", "error", err)
			}
		})
	})

	err := g.Wait()
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func serveMetrics(ctx context.Context, addr string, h http.Handler, logger *slog.Logger) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", h)
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		logger.Info("serving metrics", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("metrics server shutdown", "error", err)
		}
		return nil
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("metrics server: %w", err)
	}
}
