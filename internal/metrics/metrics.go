// Package metrics exposes the relayer's Prometheus metrics server,
// adapted directly from the teacher's geth metrics server shape
// (zeta-chain-evm/metrics/geth.go): an http.Server wrapped in a
// ctx-cancellable select loop, swapped from the geth default registry
// to a relayer-owned one.
package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"cosmossdk.io/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the relayer's counters and gauges.
type Metrics struct {
	registry *prometheus.Registry

	BatchesSubmitted prometheus.Counter
	BatchesSkipped   *prometheus.CounterVec
	TickDuration     prometheus.Histogram
	FeeDecisions     *prometheus.CounterVec
}

// New constructs and registers the relayer's metrics on a fresh
// registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()

	m := &Metrics{
		registry: reg,
		BatchesSubmitted: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "relayer_batches_submitted_total",
			Help: "Number of batches successfully submitted to Ethereum.",
		}),
		BatchesSkipped: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "relayer_batches_skipped_total",
			Help: "Number of candidate batches skipped, by reason.",
		}, []string{"reason"}),
		TickDuration: promauto.With(reg).NewHistogram(prometheus.HistogramOpts{
			Name:    "relayer_tick_duration_seconds",
			Help:    "Duration of one main loop relay pass.",
			Buckets: prometheus.DefBuckets,
		}),
		FeeDecisions: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "relayer_fee_manager_decisions_total",
			Help: "Fee Manager CanSendBatch outcomes, by mode and result.",
		}, []string{"mode", "result"}),
	}

	return m
}

// StartServer starts the metrics HTTP server on addr, shutting down
// gracefully when ctx is cancelled.
func (m *Metrics) StartServer(ctx context.Context, logger log.Logger, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}))

	server := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)

	go func() {
		logger.Info("starting metrics server...", "address", addr)
		err := server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			err = nil
		}
		errCh <- err
	}()

	select {
	case <-ctx.Done():
		logger.Info("stopping metrics server...", "address", addr)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("metrics server shutdown error", "err", err)
			return err
		}
		return nil
	case err := <-errCh:
		if err != nil {
			logger.Error("metrics server failed", "err", err)
		}
		return err
	}
}
