/*
processor.go - Sequential event dispatch

PURPOSE:
  The Processor is the event router. It consumes one validated event at a
  time, enforces global admission (a locked account rejects everything,
  including dispute traffic against its own transactions), dispatches to
  the matching handler with an exhaustive switch, and carries on to the
  next event no matter what happened. One bad event never aborts a stream.

ORDERING:
  Input order is semantically significant - a dispute arriving before its
  deposit is invalid - so dispatch is strictly sequential. The Ledger is
  touched by exactly one handler at a time by construction; no locking is
  needed inside the engine.

DIAGNOSTICS:
  Every outcome is classified (applied / rejected / ignored), counted,
  logged, and optionally mirrored to an audit sink. Sink failures are
  logged and swallowed: diagnostics must never break processing.

SEE ALSO:
  - errors.go: outcome classification
  - audit: the diagnostics sink interface
*/
package engine

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/warp/payments-engine/audit"
)

// Stats counts per-event outcomes over a processor's lifetime.
type Stats struct {
	Applied    uint64 // events that changed ledger state
	Structural uint64 // malformed input, dropped with a recorded error
	Ignored    uint64 // business no-ops, discarded silently
}

// Events is the total number of events seen.
func (s Stats) Events() uint64 { return s.Applied + s.Structural + s.Ignored }

// Processor dispatches events against a Ledger. Not safe for concurrent
// use; callers owning shared state must serialize (see api.Handler).
type Processor struct {
	log   *zap.Logger
	sink  audit.Sink
	seq   uint64
	stats Stats
}

// Option configures a Processor.
type Option func(*Processor)

// WithLogger sets the structured logger. Defaults to a nop logger.
func WithLogger(log *zap.Logger) Option {
	return func(p *Processor) {
		if log != nil {
			p.log = log
		}
	}
}

// WithAudit mirrors every outcome to sink. A nil sink disables mirroring.
func WithAudit(sink audit.Sink) Option {
	return func(p *Processor) { p.sink = sink }
}

func NewProcessor(opts ...Option) *Processor {
	p := &Processor{log: zap.NewNop()}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Stats returns the outcome counters accumulated so far.
func (p *Processor) Stats() Stats { return p.stats }

// Process validates and dispatches a single event. The returned error is
// nil when the event was applied, satisfies IsIgnored for business no-ops
// and IsStructural for malformed input. Callers may inspect it for
// diagnostics but never need to stop on it.
func (p *Processor) Process(ctx context.Context, l *Ledger, ev Event) error {
	p.seq++
	err := p.dispatch(l, ev)

	fields := []zap.Field{
		zap.Uint64("seq", p.seq),
		zap.String("kind", ev.Kind.String()),
		zap.Uint16("client", uint16(ev.Client)),
		zap.Uint32("tx", uint32(ev.Tx)),
	}

	switch {
	case err == nil:
		p.stats.Applied++
		p.log.Debug("event applied", fields...)
		p.record(ctx, ev, audit.OutcomeApplied, "")
	case IsIgnored(err):
		p.stats.Ignored++
		p.log.Debug("event ignored", append(fields, zap.Error(err))...)
		p.record(ctx, ev, audit.OutcomeIgnored, err.Error())
	default:
		p.stats.Structural++
		p.log.Error("event rejected", append(fields, zap.Error(err))...)
		p.record(ctx, ev, audit.OutcomeRejected, err.Error())
	}
	return err
}

// dispatch applies admission rules, then routes by kind.
func (p *Processor) dispatch(l *Ledger, ev Event) error {
	// Admission: a chargeback freezes the account against every further
	// event kind, dispute lifecycle included.
	if l.GetOrCreateAccount(ev.Client).Locked {
		return ErrAccountLocked
	}

	switch ev.Kind {
	case EventDeposit:
		return applyDeposit(l, ev.Client, ev.Tx, ev.Amount)
	case EventWithdrawal:
		return applyWithdrawal(l, ev.Client, ev.Tx, ev.Amount)
	case EventDispute:
		return applyDispute(l, ev.Client, ev.Tx)
	case EventResolve:
		return applyResolve(l, ev.Client, ev.Tx)
	case EventChargeback:
		return applyChargeback(l, ev.Client, ev.Tx)
	default:
		return ErrUnknownEventKind
	}
}

// Run drains src into l and returns the final snapshots sorted by client
// id. Malformed source elements are counted as structural rejections and
// skipped; only source exhaustion (io.EOF) or context cancellation ends
// the run.
func (p *Processor) Run(ctx context.Context, l *Ledger, src EventSource) ([]AccountSnapshot, error) {
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		ev, err := src.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			p.seq++
			p.stats.Structural++
			p.log.Error("malformed event skipped", zap.Uint64("seq", p.seq), zap.Error(err))
			p.record(ctx, Event{}, audit.OutcomeRejected, err.Error())
			continue
		}

		// Per-event failures are already classified and recorded.
		_ = p.Process(ctx, l, ev)
	}
	return l.Snapshots(), nil
}

func (p *Processor) record(ctx context.Context, ev Event, outcome audit.Outcome, reason string) {
	if p.sink == nil {
		return
	}

	entry := audit.Entry{
		ID:         uuid.NewString(),
		Seq:        p.seq,
		Kind:       ev.Kind.String(),
		Client:     uint16(ev.Client),
		Tx:         uint32(ev.Tx),
		Outcome:    outcome,
		Reason:     reason,
		RecordedAt: time.Now().UTC(),
	}
	if ev.Kind == EventDeposit || ev.Kind == EventWithdrawal {
		entry.Amount = ev.Amount.String()
	}

	if err := p.sink.Record(ctx, entry); err != nil {
		p.log.Warn("audit sink write failed", zap.Uint64("seq", p.seq), zap.Error(err))
	}
}
