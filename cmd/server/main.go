package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"

	"clinica/internal/diagnosis"
	patienthandler "clinica/internal/patient/handler"
	patientmetrics "clinica/internal/patient/metrics"
	patientservice "clinica/internal/patient/service"
	patientstore "clinica/internal/patient/store"
	"clinica/internal/platform/config"
	"clinica/internal/platform/health"
	"clinica/internal/platform/httpserver"
	"clinica/internal/platform/logger"
	"clinica/internal/platform/tracing"
	"clinica/internal/seeder"
	httptransport "clinica/internal/transport/http"
)

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in the internal service packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New()

	log.Info("initializing clinica",
		"addr", cfg.Addr,
		"environment", cfg.Environment,
	)

	patients := patientstore.NewInMemory()
	diagnoses := diagnosis.NewInMemoryStore()

	if cfg.SeedDemoData {
		if err := seeder.New(patients, diagnoses, log).SeedAll(context.Background()); err != nil {
			log.Error("seeding failed", "error", err)
			os.Exit(1)
		}
	}

	m := patientmetrics.New()
	svc := patientservice.New(patients,
		patientservice.WithLogger(log),
		patientservice.WithMetrics(m),
		patientservice.WithTracer(tracing.New("clinica/patient")),
	)

	healthHandler := health.New(cfg.Environment)
	router := httptransport.NewRouter(httptransport.Config{
		Patients:       patienthandler.New(svc, log, m),
		Diagnoses:      diagnosis.NewHandler(diagnoses, log),
		Health:         healthHandler,
		RequestTimeout: cfg.RequestTimeout,
	}, log)

	srv := httpserver.New(cfg.Addr, router)

	log.Info("starting http server", "addr", cfg.Addr)

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown on SIGINT
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit

	log.Info("shutting down server gracefully")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
		os.Exit(1)
	}

	log.Info("server stopped")
}
