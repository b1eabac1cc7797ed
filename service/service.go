// Package service exposes the healthz and metrics endpoints used when the
// harness runs long repeat-mode campaigns under supervision. One-shot runs
// never start it; there is nothing to scrape before the process exits.
package service

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/ethereum/go-ethereum/log"

	"github.com/fwlab/gauntlet/metrics"
)

const (
	HealthzHost = "0.0.0.0"
	HealthzPort = "8080"

	MetricsHost = "0.0.0.0"
	MetricsPort = "7300"

	shutdownGrace = 5 * time.Second
)

// StatusFunc reports whether the campaign is healthy enough to answer
// liveness probes. A nil func means "always healthy".
type StatusFunc func() bool

// Service owns the two listeners for a supervised repeat-mode run.
type Service struct {
	log     log.Logger
	healthz *HealthzServer
	metrics *MetricsServer
}

// New creates the service. status feeds the healthz endpoint.
func New(logger log.Logger, status StatusFunc) *Service {
	if logger == nil {
		logger = log.New()
	}
	return &Service{
		log:     logger,
		healthz: &HealthzServer{status: status},
		metrics: &MetricsServer{},
	}
}

// Start brings both listeners up in the background. Listener errors are
// logged and counted; they never abort the campaign itself.
func (s *Service) Start(ctx context.Context) {
	go func() {
		addr := net.JoinHostPort(HealthzHost, HealthzPort)
		s.log.Info("Starting healthz server", "addr", addr)
		if err := s.healthz.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log.Error("Healthz server failed", "err", err)
			metrics.RecordError("healthz server failed")
		}
	}()

	go func() {
		addr := net.JoinHostPort(MetricsHost, MetricsPort)
		s.log.Info("Starting metrics server", "addr", addr)
		if err := s.metrics.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log.Error("Metrics server failed", "err", err)
			metrics.RecordError("metrics server failed")
		}
	}()
}

// Shutdown stops both listeners, waiting briefly for in-flight scrapes.
func (s *Service) Shutdown() {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()

	if err := s.healthz.Shutdown(ctx); err != nil {
		s.log.Error("Healthz shutdown failed", "err", err)
	}
	if err := s.metrics.Shutdown(ctx); err != nil {
		s.log.Error("Metrics shutdown failed", "err", err)
	}
	s.log.Info("Service stopped")
}
