package engine_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/warp/payments-engine/engine"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

func money(t *testing.T, s string) engine.Money {
	t.Helper()
	m, err := engine.ParseMoney(s)
	require.NoError(t, err)
	return m
}

func deposit(client engine.ClientID, tx engine.TxID, amount string) func(*testing.T) engine.Event {
	return func(t *testing.T) engine.Event {
		return engine.Event{Kind: engine.EventDeposit, Client: client, Tx: tx, Amount: money(t, amount)}
	}
}

func withdrawal(client engine.ClientID, tx engine.TxID, amount string) func(*testing.T) engine.Event {
	return func(t *testing.T) engine.Event {
		return engine.Event{Kind: engine.EventWithdrawal, Client: client, Tx: tx, Amount: money(t, amount)}
	}
}

func dispute(client engine.ClientID, tx engine.TxID) func(*testing.T) engine.Event {
	return func(t *testing.T) engine.Event {
		return engine.Event{Kind: engine.EventDispute, Client: client, Tx: tx}
	}
}

func resolve(client engine.ClientID, tx engine.TxID) func(*testing.T) engine.Event {
	return func(t *testing.T) engine.Event {
		return engine.Event{Kind: engine.EventResolve, Client: client, Tx: tx}
	}
}

func chargeback(client engine.ClientID, tx engine.TxID) func(*testing.T) engine.Event {
	return func(t *testing.T) engine.Event {
		return engine.Event{Kind: engine.EventChargeback, Client: client, Tx: tx}
	}
}

// processAll feeds events through a fresh processor in order, collecting
// per-event errors. The stream never aborts; that's the point.
func processAll(t *testing.T, l *engine.Ledger, events ...func(*testing.T) engine.Event) []error {
	t.Helper()
	p := engine.NewProcessor()
	errs := make([]error, 0, len(events))
	for _, mk := range events {
		errs = append(errs, p.Process(context.Background(), l, mk(t)))
	}
	return errs
}

func snapshot(t *testing.T, l *engine.Ledger, client engine.ClientID) engine.AccountSnapshot {
	t.Helper()
	snap, ok := l.Account(client)
	require.True(t, ok, "account %d should exist", client)
	return snap
}
