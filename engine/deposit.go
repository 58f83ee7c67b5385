package engine

import "fmt"

// applyDeposit credits available funds and retains a Normal record for
// later disputes. Admission (lock check) has already happened in the
// processor by the time this runs.
//
// A reused transaction id is a structural error: the event is dropped and
// the first occurrence's effect stands. Nothing is applied twice.
func applyDeposit(l *Ledger, client ClientID, tx TxID, amount Money) error {
	if _, exists := l.Record(tx); exists {
		return fmt.Errorf("deposit: %w: tx %d", ErrDuplicateTransaction, tx)
	}

	acc := l.GetOrCreateAccount(client)
	next, err := acc.Available.Add(amount)
	if err != nil {
		// No record is inserted on overflow; the id stays free.
		return fmt.Errorf("deposit tx %d: %w", tx, err)
	}
	acc.Available = next

	return l.InsertRecord(TransactionRecord{
		Tx:     tx,
		Client: client,
		Amount: amount,
		Kind:   TxDeposit,
		Status: TxNormal,
	})
}
