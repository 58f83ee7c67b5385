package engine

import "fmt"

// applyWithdrawal debits available funds when they cover the amount.
// Available never goes negative here: a shortfall leaves the balance
// untouched and the event is reported as an ignored instruction.
//
// The record is retained either way, matching deposit bookkeeping, but a
// withdrawal record is never dispute-eligible (see applyDispute).
func applyWithdrawal(l *Ledger, client ClientID, tx TxID, amount Money) error {
	if _, exists := l.Record(tx); exists {
		return fmt.Errorf("withdrawal: %w: tx %d", ErrDuplicateTransaction, tx)
	}

	acc := l.GetOrCreateAccount(client)
	covered := acc.Available.GreaterThanOrEqual(amount)
	if covered {
		next, err := acc.Available.Sub(amount)
		if err != nil {
			return fmt.Errorf("withdrawal tx %d: %w", tx, err)
		}
		acc.Available = next
	}

	if err := l.InsertRecord(TransactionRecord{
		Tx:     tx,
		Client: client,
		Amount: amount,
		Kind:   TxWithdrawal,
		Status: TxNormal,
	}); err != nil {
		return err
	}

	if !covered {
		return fmt.Errorf("%w: client %d tx %d", ErrInsufficientFunds, client, tx)
	}
	return nil
}
