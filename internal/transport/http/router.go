// Package httptransport assembles the HTTP surface: middleware stack, health
// probes, metrics, and the domain routes. It stays free of business logic so
// transport concerns remain isolated.
package httptransport

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"clinica/internal/diagnosis"
	patienthandler "clinica/internal/patient/handler"
	"clinica/internal/platform/health"
	"clinica/internal/platform/middleware"
)

// Config carries the handlers the router mounts.
type Config struct {
	Patients       *patienthandler.Handler
	Diagnoses      *diagnosis.Handler
	Health         *health.Handler
	RequestTimeout time.Duration
}

// NewRouter wires all public endpoints with middleware.
func NewRouter(cfg Config, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(logger))
	timeout := cfg.RequestTimeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	r.Use(middleware.Timeout(timeout))
	r.Use(middleware.ContentTypeJSON)

	if cfg.Health != nil {
		cfg.Health.Register(r)
	}
	r.Handle("/metrics", promhttp.Handler())

	cfg.Patients.Register(r)
	if cfg.Diagnoses != nil {
		cfg.Diagnoses.Register(r)
	}

	return r
}
