/*
main.go - HTTP server entry point

PURPOSE:
  Runs the payments engine as a long-lived service: CSV batches and single
  events arrive over HTTP, account snapshots and the diagnostics trail are
  served back out.

CONFIGURATION (environment, optionally via .env):
  PORT          HTTP port (default 8080)
  AUDIT_DB      SQLite path for the audit trail (default in-memory sink)
  CORS_ORIGINS  Comma-separated allowed origins (default none)
  LOG_LEVEL     debug|info|warn|error (default info)

GRACEFUL SHUTDOWN:
  On SIGINT/SIGTERM: stop accepting connections, wait up to 30s for active
  requests, close the audit store, exit.

SEE ALSO:
  - api/server.go: router configuration
  - cmd/engine/main.go: one-shot batch mode
*/
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/warp/payments-engine/api"
	"github.com/warp/payments-engine/audit"
	"github.com/warp/payments-engine/store/sqlite"
)

func main() {
	// Missing .env is fine; plain environment still applies.
	_ = godotenv.Load()

	logger := newLogger(os.Getenv("LOG_LEVEL"))
	defer logger.Sync()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	var sink audit.Sink
	if path := os.Getenv("AUDIT_DB"); path != "" {
		store, err := sqlite.New(path)
		if err != nil {
			logger.Fatal("failed to open audit store", zap.Error(err))
		}
		defer store.Close()
		sink = store
	} else {
		sink = audit.NewMemory()
	}

	var origins []string
	if raw := os.Getenv("CORS_ORIGINS"); raw != "" {
		for _, o := range strings.Split(raw, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
	}

	handler := api.NewHandler(logger, sink)
	srv := &http.Server{
		Addr:    ":" + port,
		Handler: api.NewRouter(handler, origins),
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", zap.String("addr", srv.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("shutdown error", zap.Error(err))
		}
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server failed", zap.Error(err))
		}
	}
}

func newLogger(level string) *zap.Logger {
	cfg := zap.NewProductionConfig()
	switch strings.ToLower(level) {
	case "debug":
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	case "warn":
		cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	case "error":
		cfg.Level = zap.NewAtomicLevelAt(zapcore.ErrorLevel)
	}

	logger, err := cfg.Build()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build logger: %v\n", err)
		os.Exit(1)
	}
	return logger
}
