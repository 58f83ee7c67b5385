package engine

import "fmt"

// applyResolve settles a dispute in the client's favor: held funds move
// back to available and the record becomes Resolved, terminal for further
// disputes.
//
// Preconditions mirror applyDispute except the record must currently be
// Disputed. A held balance that no longer covers the disputed amount
// leaves everything untouched; the record stays Disputed.
func applyResolve(l *Ledger, client ClientID, tx TxID) error {
	rec, ok := l.Record(tx)
	if !ok {
		return fmt.Errorf("resolve: %w: tx %d", ErrTransactionNotFound, tx)
	}
	if rec.Client != client {
		return fmt.Errorf("resolve tx %d: %w", tx, ErrClientMismatch)
	}
	if rec.Kind != TxDeposit {
		return fmt.Errorf("resolve tx %d: %w", tx, ErrNotDisputable)
	}
	if rec.Status != TxDisputed {
		return fmt.Errorf("resolve tx %d: %w: status %s", tx, ErrNotDisputed, rec.Status)
	}

	acc := l.GetOrCreateAccount(client)
	if !acc.Held.GreaterThanOrEqual(rec.Amount) {
		return fmt.Errorf("resolve tx %d: %w", tx, ErrHeldShortfall)
	}

	held, err := acc.Held.Sub(rec.Amount)
	if err != nil {
		return fmt.Errorf("resolve tx %d: %w", tx, err)
	}
	available, err := acc.Available.Add(rec.Amount)
	if err != nil {
		return fmt.Errorf("resolve tx %d: %w", tx, err)
	}

	acc.Held = held
	acc.Available = available
	rec.Status = TxResolved
	return nil
}
