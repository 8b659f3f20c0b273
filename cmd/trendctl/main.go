package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"cedears-engine/config"
	"cedears-engine/internal/predictor"
	"cedears-engine/internal/provider"
	"cedears-engine/internal/store/redis"
	"cedears-engine/internal/store/sqlite"
)

func main() {
	symbol := flag.String("symbol", "", "predict a single symbol")
	portfolio := flag.Bool("portfolio", false, "analyze the configured watchlist as a portfolio")
	timeframe := flag.String("timeframe", predictor.DefaultTimeframe, "prediction timeframe")
	noCache := flag.Bool("no-cache", false, "bypass the prediction cache")
	noScenarios := flag.Bool("no-scenarios", false, "omit scenario generation")
	flag.Parse()

	if (*symbol == "" && !*portfolio) || (*symbol != "" && *portfolio) {
		fmt.Fprintln(os.Stderr, "usage: trendctl -symbol AAPL | trendctl -portfolio")
		os.Exit(2)
	}

	_ = godotenv.Load()
	cfg := config.Load()

	// Predictions go to stdout; keep logs on stderr.
	logr := slog.New(slog.NewJSONHandler(os.Stderr, nil))

	store, err := sqlite.New(cfg.SQLitePath)
	if err != nil {
		logr.Error("sqlite init failed", "err", err)
		os.Exit(1)
	}
	defer store.Close()

	deps := predictor.Deps{
		Price:  provider.WithRetry(provider.NewYahoo(nil), 30*time.Second),
		Store:  store,
		Logger: logr,
	}

	// The cache is optional for a one-shot run.
	cache, err := redis.New(redis.CacheConfig{Addr: cfg.RedisAddr, Password: cfg.RedisPassword})
	if err != nil {
		logr.Warn("redis unavailable, running uncached", "err", err)
	} else {
		deps.Cache = cache
		defer cache.Close()
	}

	svc := predictor.New(deps)

	opts := predictor.DefaultOptions()
	opts.CacheTTL = time.Duration(cfg.CacheTTLMinutes) * time.Minute
	if *noCache {
		opts.UseCache = false
	}
	if *noScenarios {
		opts.IncludeScenarios = false
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	var out any
	if *portfolio {
		out, err = svc.AnalyzePortfolioTrends(ctx, cfg.ParseWatchlist(), opts)
	} else {
		out, err = svc.PredictTrend(ctx, strings.ToUpper(*symbol), *timeframe, opts)
	}
	if err != nil {
		logr.Error("prediction failed", "err", err)
		os.Exit(1)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		logr.Error("encode failed", "err", err)
		os.Exit(1)
	}
}
