// Package metrics exposes Prometheus metrics for the trend engine.
package metrics

import (
	"log"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics for the engine.
type Metrics struct {
	// Batch indicator runner
	SymbolsProcessed prometheus.Counter
	SymbolsSkipped   prometheus.Counter
	SymbolsFailed    prometheus.Counter
	CalcDur          prometheus.Histogram

	// Prediction service
	PredictionsTotal *prometheus.CounterVec // labels: direction
	PredictDur       prometheus.Histogram
	CacheHits        prometheus.Counter
	CacheMisses      prometheus.Counter
	CollectFailures  *prometheus.CounterVec // labels: source

	// Persistence
	SQLiteCommitDur  prometheus.Histogram
	RetentionDeleted prometheus.Counter
}

// New registers and returns all engine metrics.
func New() *Metrics {
	m := &Metrics{
		SymbolsProcessed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "trendengine_symbols_processed_total",
			Help: "Symbols successfully processed by the batch indicator runner",
		}),
		SymbolsSkipped: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "trendengine_symbols_skipped_total",
			Help: "Symbols skipped for insufficient price history",
		}),
		SymbolsFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "trendengine_symbols_failed_total",
			Help: "Symbols that failed during the batch run",
		}),
		CalcDur: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "trendengine_indicator_calc_duration_seconds",
			Help:    "Full indicator set calculation latency per symbol",
			Buckets: prometheus.DefBuckets,
		}),

		PredictionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "trendengine_predictions_total",
			Help: "Trend predictions produced (by direction)",
		}, []string{"direction"}),
		PredictDur: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "trendengine_predict_duration_seconds",
			Help:    "End-to-end prediction latency per symbol",
			Buckets: prometheus.DefBuckets,
		}),
		CacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "trendengine_prediction_cache_hits_total",
			Help: "Prediction cache hits",
		}),
		CacheMisses: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "trendengine_prediction_cache_misses_total",
			Help: "Prediction cache misses",
		}),
		CollectFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "trendengine_collect_failures_total",
			Help: "Collection sub-steps that failed and yielded a null input",
		}, []string{"source"}),

		SQLiteCommitDur: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "trendengine_sqlite_commit_duration_seconds",
			Help:    "SQLite indicator batch commit latency",
			Buckets: prometheus.DefBuckets,
		}),
		RetentionDeleted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "trendengine_retention_deleted_total",
			Help: "Indicator rows deleted by retention cleanup",
		}),
	}

	prometheus.MustRegister(
		m.SymbolsProcessed,
		m.SymbolsSkipped,
		m.SymbolsFailed,
		m.CalcDur,
		m.PredictionsTotal,
		m.PredictDur,
		m.CacheHits,
		m.CacheMisses,
		m.CollectFailures,
		m.SQLiteCommitDur,
		m.RetentionDeleted,
	)

	return m
}

// Serve starts the /metrics HTTP listener in a background goroutine.
func Serve(addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	go func() {
		srv := &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 10 * time.Second,
		}
		log.Printf("[metrics] listening on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("[metrics] server error: %v", err)
		}
	}()
}
