/*
main.go - Batch entry point

PURPOSE:
  Reads a transactions CSV, runs it through the engine, and writes the
  final account report to stdout. Diagnostics go to stderr so the report
  stays pipeable.

USAGE:
  engine [flags] <transactions.csv>

FLAGS:
  -audit-db   Optional SQLite path for the event audit trail
  -v          Enable debug logging (per-event outcomes)

EXAMPLES:
  engine transactions.csv > accounts.csv
  engine -v -audit-db=./audit.db transactions.csv

SEE ALSO:
  - cmd/server/main.go: HTTP mode
*/
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/warp/payments-engine/audit"
	"github.com/warp/payments-engine/csvio"
	"github.com/warp/payments-engine/engine"
	"github.com/warp/payments-engine/store/sqlite"
)

func main() {
	auditDB := flag.String("audit-db", "", "SQLite path for the event audit trail")
	verbose := flag.Bool("v", false, "enable debug logging")
	flag.Parse()

	if flag.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "usage: engine [flags] <transactions.csv>")
		flag.PrintDefaults()
		os.Exit(2)
	}

	logger := newLogger(*verbose)
	defer logger.Sync()

	if err := run(flag.Arg(0), *auditDB, logger); err != nil {
		logger.Fatal("run failed", zap.Error(err))
	}
}

func run(inputPath, auditDB string, logger *zap.Logger) error {
	in, err := os.Open(inputPath)
	if err != nil {
		return fmt.Errorf("failed to open input: %w", err)
	}
	defer in.Close()

	var sink audit.Sink
	if auditDB != "" {
		store, err := sqlite.New(auditDB)
		if err != nil {
			return fmt.Errorf("failed to open audit store: %w", err)
		}
		defer store.Close()
		sink = store
	}

	proc := engine.NewProcessor(engine.WithLogger(logger), engine.WithAudit(sink))
	ledger := engine.NewLedger()

	snaps, err := proc.Run(context.Background(), ledger, csvio.NewReader(in))
	if err != nil {
		return err
	}

	stats := proc.Stats()
	logger.Debug("run complete",
		zap.Uint64("events", stats.Events()),
		zap.Uint64("applied", stats.Applied),
		zap.Uint64("rejected", stats.Structural),
		zap.Uint64("ignored", stats.Ignored),
		zap.Int("accounts", len(snaps)),
	)

	return csvio.WriteAccounts(os.Stdout, snaps)
}

// newLogger builds a console logger on stderr; stdout belongs to the report.
func newLogger(verbose bool) *zap.Logger {
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}

	logger, err := cfg.Build()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build logger: %v\n", err)
		os.Exit(1)
	}
	return logger
}
