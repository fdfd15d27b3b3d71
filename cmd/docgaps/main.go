package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"docgaps/internal/app"
	"docgaps/internal/config"
	"docgaps/internal/session"
)

var (
	configPath  = flag.String("config", "./docgaps.toml", "Path to config file")
	report      = flag.String("r", "", "Write the audit results to this path as well")
	quiet       = flag.Bool("q", false, "Suppress audit console output")
	interactive = flag.Bool("i", false, "Step through each missing docstring interactively")
	showBody    = flag.Bool("show-body", false, "Show full function bodies instead of signatures in -i mode")
	watch       = flag.Bool("watch", false, "Re-audit on file changes until interrupted")
	trends      = flag.Bool("trends", false, "Print the recorded audit history trend")
	since       = flag.Duration("since", 0, "Limit -trends to the given lookback window")
	verbose     = flag.Bool("verbose", false, "Enable verbose logging")
	version     = flag.Bool("version", false, "Print version and exit")
)

const VERSION = "1.0.0"

// Exit statuses: 0 clean, 1 missing docstrings found (CI gating), 2
// operational error.
func main() {
	flag.Parse()

	if *version {
		fmt.Printf("docgaps v%s\n", VERSION)
		os.Exit(0)
	}

	logLevel := slog.LevelInfo
	if *verbose {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "path", *configPath, "error", err)
		os.Exit(2)
	}
	if flag.NArg() > 0 {
		cfg.ScanPaths = flag.Args()
	}

	reportPath := cfg.ReportPath
	if *report != "" {
		reportPath = *report
	}

	application, err := app.New(cfg)
	if err != nil {
		slog.Error("failed to initialize", "error", err)
		os.Exit(2)
	}
	defer application.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch {
	case *trends:
		var cutoff time.Time
		if *since > 0 {
			cutoff = time.Now().Add(-*since)
		}
		out, err := application.Trends(cutoff)
		if err != nil {
			slog.Error("failed to load trends", "error", err)
			os.Exit(2)
		}
		fmt.Print(out)

	case *watch:
		if _, err := application.Audit(reportPath, *quiet); err != nil {
			slog.Error("initial audit failed", "error", err)
			os.Exit(2)
		}
		if err := application.Watch(ctx); err != nil {
			slog.Error("watch mode failed", "error", err)
			os.Exit(2)
		}

	case *interactive:
		prompter := session.NewTermPrompter(os.Stdin, os.Stdout)
		if err := application.Interactive(ctx, prompter, *showBody); err != nil {
			slog.Error("interactive session failed", "error", err)
			os.Exit(2)
		}

	default:
		reg, err := application.Audit(reportPath, *quiet)
		if err != nil {
			slog.Error("audit failed", "error", err)
			os.Exit(2)
		}
		if len(reg.Targets) > 0 {
			os.Exit(1)
		}
	}
}
