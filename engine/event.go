package engine

import (
	"fmt"
	"strings"
)

// ClientID identifies an account holder.
type ClientID uint16

// TxID identifies a deposit or withdrawal. Globally unique across clients.
type TxID uint32

// EventKind is the closed set of instructions the engine understands.
type EventKind uint8

const (
	EventDeposit EventKind = iota + 1
	EventWithdrawal
	EventDispute
	EventResolve
	EventChargeback
)

func (k EventKind) String() string {
	switch k {
	case EventDeposit:
		return "deposit"
	case EventWithdrawal:
		return "withdrawal"
	case EventDispute:
		return "dispute"
	case EventResolve:
		return "resolve"
	case EventChargeback:
		return "chargeback"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(k))
	}
}

// ParseEventKind maps the wire name of an event kind, case-insensitively.
func ParseEventKind(s string) (EventKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "deposit":
		return EventDeposit, nil
	case "withdrawal":
		return EventWithdrawal, nil
	case "dispute":
		return EventDispute, nil
	case "resolve":
		return EventResolve, nil
	case "chargeback":
		return EventChargeback, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownEventKind, s)
	}
}

// Event is one validated instruction from the upstream reader.
// Amount is meaningful for deposits and withdrawals only.
type Event struct {
	Kind   EventKind
	Client ClientID
	Tx     TxID
	Amount Money
}

// EventSource yields events one at a time in input order. Next returns
// io.EOF when the sequence is exhausted. Any other error describes a single
// malformed element; the source remains usable for the following events.
type EventSource interface {
	Next() (Event, error)
}
