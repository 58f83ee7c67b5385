package engine

import "fmt"

// applyDispute moves a deposit's amount from available to held and marks
// the record Disputed. The amount comes from the referenced record, never
// from the event.
//
// Preconditions, each a silent no-op when violated: the record exists, it
// belongs to the disputing client, it is a deposit, and it is in the
// Normal state.
//
// Available MAY be driven negative: the deposited funds can already have
// been withdrawn by the time the dispute arrives, and the hold simulates
// that pre-existing debt. Both legs of the transfer are computed before
// either is written, so the account never holds a half-applied dispute.
func applyDispute(l *Ledger, client ClientID, tx TxID) error {
	rec, ok := l.Record(tx)
	if !ok {
		return fmt.Errorf("dispute: %w: tx %d", ErrTransactionNotFound, tx)
	}
	if rec.Client != client {
		return fmt.Errorf("dispute tx %d: %w", tx, ErrClientMismatch)
	}
	if rec.Kind != TxDeposit {
		return fmt.Errorf("dispute tx %d: %w: withdrawals have no reversible hold", tx, ErrNotDisputable)
	}
	if rec.Status != TxNormal {
		return fmt.Errorf("dispute tx %d: %w: status %s", tx, ErrNotDisputable, rec.Status)
	}

	acc := l.GetOrCreateAccount(client)
	available, err := acc.Available.Sub(rec.Amount)
	if err != nil {
		return fmt.Errorf("dispute tx %d: %w", tx, err)
	}
	held, err := acc.Held.Add(rec.Amount)
	if err != nil {
		return fmt.Errorf("dispute tx %d: %w", tx, err)
	}

	acc.Available = available
	acc.Held = held
	rec.Status = TxDisputed
	return nil
}
