// assettrack is a live client for an asset-location tracking server.
//
// It keeps one WebSocket connection to the server, mirrors the snapshots
// the server pushes, and submits check-ins. Three modes:
//
//	tui      interactive terminal view with hover focus and a check-in form (default)
//	watch    print every snapshot to stdout as json, xml or text
//	checkin  submit one check-in from --id/--lat/--lng and exit
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/pflag"

	"github.com/theoremus-urban-solutions/assettrack/config"
	"github.com/theoremus-urban-solutions/assettrack/connection"
	"github.com/theoremus-urban-solutions/assettrack/internal"
	"github.com/theoremus-urban-solutions/assettrack/metrics"
	"github.com/theoremus-urban-solutions/assettrack/tracking"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

type options struct {
	configPath  string
	server      string
	url         string
	mode        string
	format      string
	id          string
	lat         string
	lng         string
	timeout     time.Duration
	metricsAddr string
	logLevel    string
	logOutput   string
}

func parseFlags(args []string) (*options, error) {
	var o options
	flagSet := pflag.NewFlagSet("assettrack", pflag.ContinueOnError)
	flagSet.StringVar(&o.configPath, "config", "", "path to config.yml (default: search config.yml, ./config/config.yml)")
	flagSet.StringVar(&o.server, "server", "", "server name from config servers[]")
	flagSet.StringVar(&o.url, "url", "", "WebSocket URL (overrides config)")
	flagSet.StringVar(&o.mode, "mode", "tui", "tui|watch|checkin")
	flagSet.StringVar(&o.format, "format", "text", "watch output format: json|xml|text")
	flagSet.StringVar(&o.id, "id", "", "check-in asset id")
	flagSet.StringVar(&o.lat, "lat", "", "check-in latitude")
	flagSet.StringVar(&o.lng, "lng", "", "check-in longitude")
	flagSet.DurationVar(&o.timeout, "timeout", 10*time.Second, "checkin: how long to wait for the connection to open")
	flagSet.StringVar(&o.metricsAddr, "metrics-addr", "", "serve /metrics and /api/health on this address (overrides config)")
	flagSet.StringVar(&o.logLevel, "log-level", "", "debug|info|warn|error (overrides config)")
	flagSet.StringVar(&o.logOutput, "log-output", "", "append log records to this file (overrides config)")

	if err := flagSet.Parse(args); err != nil {
		return nil, err
	}
	switch o.mode {
	case "tui", "watch", "checkin":
	default:
		return nil, fmt.Errorf("unknown mode %q", o.mode)
	}
	return &o, nil
}

// loadConfig falls back to defaults when no config file was asked for and none was found
func loadConfig(o *options) (*config.AppConfig, error) {
	cfg, err := config.LoadAppConfig(o.configPath)
	if err != nil {
		if o.configPath != "" || !config.IsNotExist(err) {
			return nil, fmt.Errorf("load config: %w", err)
		}
		cfg = config.Default()
	}
	if o.logLevel != "" {
		cfg.Logging.Level = o.logLevel
	}
	if o.logOutput != "" {
		cfg.Logging.File = o.logOutput
	}
	if o.metricsAddr != "" {
		cfg.Metrics.Listen = o.metricsAddr
	}
	return cfg, nil
}

// resolveURL picks the endpoint: --url, then the named or first server entry, then server.url
func resolveURL(cfg *config.AppConfig, o *options) string {
	if o.url != "" {
		return o.url
	}
	return cfg.SelectServer(o.server).URL
}

// logWriter keeps log records off the terminal while the TUI owns it
func logWriter(cfg config.LoggingConfig, mode string) (io.Writer, func(), error) {
	if cfg.File != "" {
		f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		return f, func() { _ = f.Close() }, nil
	}
	if mode == "tui" {
		return io.Discard, func() {}, nil
	}
	return os.Stderr, func() {}, nil
}

func run(args []string) error {
	o, err := parseFlags(args)
	if err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}
	cfg, err := loadConfig(o)
	if err != nil {
		return err
	}

	w, closeLog, err := logWriter(cfg.Logging, o.mode)
	if err != nil {
		return err
	}
	defer closeLog()
	logger := internal.InitLogging(cfg.Logging, w)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	reg := prometheus.NewRegistry()
	m := metrics.New(reg)

	url := resolveURL(cfg, o)
	mgr := connection.New(url, cfg.ConnectionSettings(), logger)
	defer mgr.Close()
	client := tracking.NewClient(mgr, tracking.WithLogger(logger), tracking.WithMetrics(m))

	if cfg.Metrics.Listen != "" {
		srv := metrics.NewServer(cfg.Metrics.Listen, reg, healthFunc(client, mgr), logger)
		srv.Start()
		defer shutdown(srv, logger)
	}

	logger.Info("starting", "mode", o.mode, "url", url, "session", mgr.Session())
	switch o.mode {
	case "watch":
		return runWatch(ctx, mgr, client, o.format, os.Stdout)
	case "checkin":
		return runCheckin(ctx, mgr, client, o, os.Stdout)
	default:
		return runTUI(ctx, mgr, client)
	}
}

func healthFunc(client *tracking.Client, mgr *connection.Manager) func() metrics.Health {
	return func() metrics.Health {
		status := "ok"
		if !mgr.IsOpen() {
			status = "degraded"
		}
		return metrics.Health{
			Status:     status,
			Connection: mgr.State().String(),
			Assets:     len(client.Snapshot()),
			Snapshots:  client.Generation(),
		}
	}
}

func shutdown(srv *metrics.Server, logger *slog.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Warn("shutdown incomplete", "error", err)
	}
}
