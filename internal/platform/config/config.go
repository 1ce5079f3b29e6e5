package config

import (
	"os"
	"time"
)

// Server captures HTTP server level configuration.
type Server struct {
	Addr            string
	Environment     string
	ShutdownTimeout time.Duration
	RequestTimeout  time.Duration
	SeedDemoData    bool
}

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() Server {
	addr := os.Getenv("CLINICA_ADDR")
	if addr == "" {
		addr = ":3001"
	}

	env := os.Getenv("CLINICA_ENV")
	if env == "" {
		env = "development"
	}

	shutdown := 10 * time.Second
	if s := os.Getenv("CLINICA_SHUTDOWN_TIMEOUT"); s != "" {
		if d, err := time.ParseDuration(s); err == nil {
			shutdown = d
		}
	}

	requestTimeout := 30 * time.Second
	if s := os.Getenv("CLINICA_REQUEST_TIMEOUT"); s != "" {
		if d, err := time.ParseDuration(s); err == nil {
			requestTimeout = d
		}
	}

	// Seeding defaults on: the service is pure in-memory state and useless
	// without its initial dataset.
	seed := os.Getenv("CLINICA_SEED") != "false"

	return Server{
		Addr:            addr,
		Environment:     env,
		ShutdownTimeout: shutdown,
		RequestTimeout:  requestTimeout,
		SeedDemoData:    seed,
	}
}
