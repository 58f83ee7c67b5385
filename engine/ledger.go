/*
ledger.go - Owned tables of accounts and transaction records

PURPOSE:
  The Ledger is the single shared mutable resource of the engine. It owns
  two tables - client id -> Account and transaction id -> TransactionRecord -
  and exposes the lookups and inserts handlers need. It validates nothing:
  all policy lives in the handlers; the Ledger is a passive store.

INVARIANTS:
  1. Accounts and records are never deleted. A locked account persists in
     the final report with its last valid balances.
  2. Entries are created once and mutated in place by exactly one handler
     at a time (dispatch is strictly sequential).
  3. InsertRecord rejects duplicate transaction ids; the first write wins.

SEE ALSO:
  - processor.go: sequential dispatch over the Ledger
  - deposit.go .. chargeback.go: the only mutators
*/
package engine

import (
	"fmt"
	"sort"
)

// Ledger owns the account and transaction tables for one processing run.
// It is not safe for concurrent use; the processor serializes all access.
type Ledger struct {
	accounts map[ClientID]*Account
	records  map[TxID]*TransactionRecord
}

func NewLedger() *Ledger {
	return &Ledger{
		accounts: make(map[ClientID]*Account),
		records:  make(map[TxID]*TransactionRecord),
	}
}

// GetOrCreateAccount returns the account for client, inserting a zeroed,
// unlocked account on first reference. Idempotent.
func (l *Ledger) GetOrCreateAccount(client ClientID) *Account {
	acc, ok := l.accounts[client]
	if !ok {
		acc = newAccount(client)
		l.accounts[client] = acc
	}
	return acc
}

// Record returns the transaction record for tx, or ok=false if unseen.
func (l *Ledger) Record(tx TxID) (*TransactionRecord, bool) {
	rec, ok := l.records[tx]
	return rec, ok
}

// InsertRecord stores a new transaction record. Fails with
// ErrDuplicateTransaction if the id is already present; the existing
// record is left untouched.
func (l *Ledger) InsertRecord(rec TransactionRecord) error {
	if _, exists := l.records[rec.Tx]; exists {
		return fmt.Errorf("%w: tx %d", ErrDuplicateTransaction, rec.Tx)
	}
	r := rec
	l.records[rec.Tx] = &r
	return nil
}

// Account returns a read-only snapshot for client, or ok=false if the
// client has never been seen.
func (l *Ledger) Account(client ClientID) (AccountSnapshot, bool) {
	acc, ok := l.accounts[client]
	if !ok {
		return AccountSnapshot{}, false
	}
	return acc.Snapshot(), true
}

// Snapshots returns every account's snapshot in ascending client id order.
// Deterministic output for the report writer.
func (l *Ledger) Snapshots() []AccountSnapshot {
	snaps := make([]AccountSnapshot, 0, len(l.accounts))
	for _, acc := range l.accounts {
		snaps = append(snaps, acc.Snapshot())
	}
	sort.Slice(snaps, func(i, j int) bool { return snaps[i].Client < snaps[j].Client })
	return snaps
}
