package engine

// Account is the per-client aggregate of balances and lock status.
// Accounts are created lazily, zeroed, and never deleted. Mutation happens
// only inside handlers, through the Ledger.
type Account struct {
	Client    ClientID
	Available Money
	Held      Money
	Locked    bool
}

func newAccount(client ClientID) *Account {
	return &Account{Client: client}
}

// Total is the client's full accounted balance: available + held.
func (a *Account) Total() Money {
	return a.Available + a.Held
}

// Snapshot returns a read-only copy for reporting.
func (a *Account) Snapshot() AccountSnapshot {
	return AccountSnapshot{
		Client:    a.Client,
		Available: a.Available,
		Held:      a.Held,
		Total:     a.Total(),
		Locked:    a.Locked,
	}
}

// AccountSnapshot is the report-facing view of an account.
type AccountSnapshot struct {
	Client    ClientID
	Available Money
	Held      Money
	Total     Money
	Locked    bool
}
