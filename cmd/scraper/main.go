package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"insider-flow/internal/interfaces"
	"insider-flow/internal/logger"
	"insider-flow/internal/pipeline"
	"insider-flow/internal/priceapi"
	"insider-flow/internal/report"
	"insider-flow/internal/runlog"
	"insider-flow/internal/source"
	"insider-flow/internal/store"

	"github.com/joho/godotenv"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	outputPath := flag.String("output", "", "override output path from config")
	noEmail := flag.Bool("no-email", false, "skip email delivery even when configured")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := store.LoadConfig(*configPath)
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}
	if *outputPath != "" {
		cfg.Output.Path = *outputPath
	}

	if err := logger.Init(); err != nil {
		fmt.Printf("Error initializing logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Shutdown(context.Background())

	ctx := context.Background()

	if v := os.Getenv("INSIDER_LOG_RETENTION_DAYS"); v != "" {
		var n int
		fmt.Sscanf(v, "%d", &n)
		_ = runlog.CompressOlder(n)
	}

	sources, err := source.Build(cfg)
	if err != nil {
		logger.ErrorWithErr(ctx, "building trade sources", err)
		os.Exit(1)
	}

	var history interfaces.PriceHistory
	if cfg.Pricing.Enabled {
		history = priceapi.NewClient(cfg.Pricing.BaseURL, cfg.SourceTimeout(), cfg.Pricing.RequestsPerSecond)
	}

	runner := pipeline.New(cfg, sources, history)

	started := time.Now()
	result := runner.Run(ctx)

	if err := runner.Persist(result.Trades); err != nil {
		logger.ErrorWithErr(ctx, "persisting trades", err)
		os.Exit(1)
	}

	_ = runlog.Append(runlog.Entry{
		Collected:  result.Collected,
		Dropped:    result.Dropped,
		Duplicates: result.Duplicates,
		Emitted:    len(result.Trades),
		DurationMs: time.Since(started).Milliseconds(),
		Sources:    result.PerSource,
	})

	logger.Info(ctx, "run complete",
		"collected", result.Collected,
		"emitted", len(result.Trades),
		"duplicates", result.Duplicates,
		"output", cfg.Output.Path)

	if cfg.Email.Enabled && !*noEmail {
		html, err := report.Render(result.Trades, time.Now())
		if err != nil {
			logger.ErrorWithErr(ctx, "rendering report", err)
			return
		}
		subject := fmt.Sprintf("Insider Trading Report - %s (%d trades)",
			time.Now().Format("2006-01-02"), len(result.Trades))
		mailer := report.NewMailer(cfg.Email.SMTPHost, cfg.Email.SMTPPort)
		if err := mailer.Send(ctx, subject, html); err != nil {
			// Email failure never fails the run; the JSON output is already
			// on disk.
			logger.ErrorWithErr(ctx, "sending report email", err)
		}
	}
}
