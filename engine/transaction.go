package engine

// TxKind distinguishes the two fund-moving transactions. Only deposits are
// ever dispute-eligible; a withdrawal has no reversible hold.
type TxKind uint8

const (
	TxDeposit TxKind = iota + 1
	TxWithdrawal
)

func (k TxKind) String() string {
	if k == TxWithdrawal {
		return "withdrawal"
	}
	return "deposit"
}

// TxStatus is the dispute lifecycle of a transaction record.
//
//	Normal   --dispute-->   Disputed
//	Disputed --resolve-->   Resolved
//	Disputed --chargeback-> ChargedBack
//
// Resolved and ChargedBack are terminal. Any other transition is a silent
// no-op, never a fatal error.
type TxStatus uint8

const (
	TxNormal TxStatus = iota + 1
	TxDisputed
	TxResolved
	TxChargedBack
)

func (s TxStatus) String() string {
	switch s {
	case TxNormal:
		return "normal"
	case TxDisputed:
		return "disputed"
	case TxResolved:
		return "resolved"
	case TxChargedBack:
		return "charged_back"
	default:
		return "unknown"
	}
}

// TransactionRecord is the retained history of a deposit or withdrawal.
// Amount and identity are immutable after creation; only Status advances.
// Records are never deleted.
type TransactionRecord struct {
	Tx     TxID
	Client ClientID
	Amount Money
	Kind   TxKind
	Status TxStatus
}
