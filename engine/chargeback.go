package engine

import "fmt"

// applyChargeback settles a dispute against the client: the held amount is
// permanently removed from the account's total (it does NOT return to
// available - this models an irreversible reversal to the payer) and the
// account is frozen. The record becomes ChargedBack, terminal.
//
// Preconditions match applyResolve, including the held-coverage guard.
func applyChargeback(l *Ledger, client ClientID, tx TxID) error {
	rec, ok := l.Record(tx)
	if !ok {
		return fmt.Errorf("chargeback: %w: tx %d", ErrTransactionNotFound, tx)
	}
	if rec.Client != client {
		return fmt.Errorf("chargeback tx %d: %w", tx, ErrClientMismatch)
	}
	if rec.Kind != TxDeposit {
		return fmt.Errorf("chargeback tx %d: %w", tx, ErrNotDisputable)
	}
	if rec.Status != TxDisputed {
		return fmt.Errorf("chargeback tx %d: %w: status %s", tx, ErrNotDisputed, rec.Status)
	}

	acc := l.GetOrCreateAccount(client)
	if !acc.Held.GreaterThanOrEqual(rec.Amount) {
		return fmt.Errorf("chargeback tx %d: %w", tx, ErrHeldShortfall)
	}

	held, err := acc.Held.Sub(rec.Amount)
	if err != nil {
		return fmt.Errorf("chargeback tx %d: %w", tx, err)
	}

	acc.Held = held
	acc.Locked = true
	rec.Status = TxChargedBack
	return nil
}
