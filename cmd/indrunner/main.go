package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"

	"cedears-engine/config"
	"cedears-engine/internal/logger"
	"cedears-engine/internal/markethours"
	"cedears-engine/internal/metrics"
	"cedears-engine/internal/provider"
	"cedears-engine/internal/runner"
	"cedears-engine/internal/store/sqlite"
	"cedears-engine/internal/watchlist"
)

func main() {
	once := flag.Bool("once", false, "run one batch immediately and exit")
	flag.Parse()

	// Optional .env for local runs; the file is absent in production.
	_ = godotenv.Load()

	cfg := config.Load()
	slogger := logger.Init("indrunner", slog.LevelInfo)
	symbols := cfg.ParseWatchlist()
	slogger.Info("starting", "watchlist", len(symbols), "cron", cfg.CronSpec)

	met := metrics.New()
	metrics.Serve(cfg.MetricsAddr)

	store, err := sqlite.New(cfg.SQLitePath)
	if err != nil {
		log.Fatalf("[indrunner] sqlite init failed: %v", err)
	}
	defer store.Close()

	r := runner.New(runner.Deps{
		Source:      watchlist.NewStatic(symbols),
		Price:       provider.WithRetry(provider.NewYahoo(nil), 30*time.Second),
		Store:       store,
		Logger:      slogger,
		Metrics:     met,
		HistoryDays: cfg.HistoryDays,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	retention := time.Duration(cfg.RetentionDays) * 24 * time.Hour
	batch := func() {
		processed, err := r.Run(ctx)
		if err != nil {
			slogger.Error("batch run failed", "err", err)
			return
		}
		slogger.Info("batch complete", "processed", processed)
		if _, err := r.Cleanup(ctx, retention); err != nil {
			slogger.Error("retention cleanup failed", "err", err)
		}
	}

	if *once {
		batch()
		return
	}

	c := cron.New()
	scheduled := func() {
		// The cron spec already restricts to weekdays; this also
		// skips exchange holidays.
		if !markethours.IsTradingDay(time.Now()) {
			slogger.Info("skipping batch, not a trading day")
			return
		}
		batch()
	}
	if _, err := c.AddFunc(cfg.CronSpec, scheduled); err != nil {
		log.Fatalf("[indrunner] invalid cron spec %q: %v", cfg.CronSpec, err)
	}
	c.Start()

	<-ctx.Done()
	<-c.Stop().Done()
}
