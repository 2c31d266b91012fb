package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/katalvlaran/pathviz/runner"
)

// serveMetrics exposes a fresh registry on addr and returns the runner
// metrics bound to it plus a shutdown func. An empty addr disables metrics.
func serveMetrics(addr string, logger *slog.Logger) (*runner.Metrics, func()) {
	if addr == "" {
		return nil, func() {}
	}
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := runner.NewMetrics(reg)

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server failed", slog.String("addr", addr), slog.String("error", err.Error()))
		}
	}()
	logger.Info("metrics listening", slog.String("addr", addr))

	return m, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	}
}

// metricsAddr picks the flag over the config file.
func (a *app) metricsAddr(flag string) string {
	if flag != "" {
		return flag
	}
	if a.cfg.Metrics.Enabled {
		return a.cfg.Metrics.Addr
	}
	return ""
}
