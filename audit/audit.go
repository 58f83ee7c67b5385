/*
Package audit collects per-event processing outcomes for diagnostics.

PURPOSE:
  The engine's only failure channel is a sequence of per-event rejections;
  nothing ever halts a run. This package is where those outcomes land.
  Entries are append-only: there is no update and no delete.

  The ledger itself is an in-memory accumulator over one input sequence
  and is deliberately NOT persisted. Only this diagnostics trail may
  outlive a run (see store/sqlite).

IMPLEMENTATIONS:
  - Memory (this package): for tests and single-shot CLI runs
  - store/sqlite: durable trail for the server mode
*/
package audit

import (
	"context"
	"sync"
	"time"
)

// Outcome classifies what the processor did with one event.
type Outcome string

const (
	OutcomeApplied  Outcome = "applied"  // ledger state changed
	OutcomeRejected Outcome = "rejected" // structural error, event dropped
	OutcomeIgnored  Outcome = "ignored"  // business no-op, state untouched
)

// Entry is one recorded outcome. Amount is the 4dp rendering for fund
// movements and empty for dispute-lifecycle events.
type Entry struct {
	ID         string
	Seq        uint64
	Kind       string
	Client     uint16
	Tx         uint32
	Amount     string
	Outcome    Outcome
	Reason     string
	RecordedAt time.Time
}

// Sink receives outcomes. Append-only.
type Sink interface {
	// Record appends one entry.
	Record(ctx context.Context, e Entry) error

	// Entries returns recorded entries in append order. limit <= 0 means
	// all; otherwise the most recent limit entries.
	Entries(ctx context.Context, limit int) ([]Entry, error)
}

// =============================================================================
// MEMORY SINK
// =============================================================================

// Memory is an in-memory Sink.
type Memory struct {
	mu      sync.RWMutex
	entries []Entry
}

var _ Sink = (*Memory)(nil)

func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) Record(_ context.Context, e Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, e)
	return nil
}

func (m *Memory) Entries(_ context.Context, limit int) ([]Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	src := m.entries
	if limit > 0 && len(src) > limit {
		src = src[len(src)-limit:]
	}
	out := make([]Entry, len(src))
	copy(out, src)
	return out, nil
}
