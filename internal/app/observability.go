package app

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	scanDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "docgaps_scan_seconds",
		Help:    "Time spent scanning the configured paths.",
		Buckets: prometheus.DefBuckets,
	})

	missingTotal = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "docgaps_missing_total",
		Help: "Missing docstrings found by the most recent scan.",
	})

	filesTotal = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "docgaps_files_total",
		Help: "Files parsed by the most recent scan.",
	})

	insertedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "docgaps_docstrings_inserted_total",
		Help: "Docstrings inserted since process start.",
	})

	rescanTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "docgaps_rescans_total",
		Help: "Watch-mode rescans triggered by file changes.",
	})
)

type ObservabilityServer struct {
	addr   string
	server *http.Server
}

func NewObservabilityServer(addr string) *ObservabilityServer {
	return &ObservabilityServer{addr: addr}
}

func (s *ObservabilityServer) Start() {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "up"})
	})

	s.server = &http.Server{Addr: s.addr, Handler: mux}

	slog.Info("observability server starting", "addr", s.addr)
	go func() {
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("observability server failed", "error", err)
		}
	}()
}

func (s *ObservabilityServer) Stop(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}
