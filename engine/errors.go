/*
errors.go - Centralized error types for the payments engine

PURPOSE:
  All engine errors in one place for consistency and discoverability.
  Every per-event failure falls into one of two classes:

  1. Structural errors - malformed or adversarial input (duplicate
     transaction ids, arithmetic overflow, unknown event kinds). The event
     is dropped, the error is recorded, processing continues.
  2. Business no-ops - instructions that arrive late or against the wrong
     state (dispute of an unknown transaction, withdrawal beyond available
     funds, anything against a locked account). These are silently ignored
     transitions; state is left unchanged.

  No error in either class is fatal to a run. The processor consumes every
  event in its input and always yields a final snapshot.

USAGE:
  Handlers wrap sentinels with context:

    return fmt.Errorf("%w: tx %d", ErrDuplicateTransaction, tx)

  Callers classify with errors.Is via IsStructural / IsIgnored.
*/
package engine

import "errors"

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrDuplicateTransaction is returned when a deposit or withdrawal
	// reuses a transaction id. The first occurrence's effect stands.
	ErrDuplicateTransaction = errors.New("duplicate transaction id")

	// ErrAmountOverflow is returned when arithmetic would exceed the
	// representable range. Wraparound is never allowed.
	ErrAmountOverflow = errors.New("amount overflow")

	// ErrInvalidAmount is returned by ParseMoney for empty or
	// non-numeric input.
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrUnknownEventKind is returned for an event kind the dispatcher
	// does not recognize.
	ErrUnknownEventKind = errors.New("unknown event kind")

	// ErrAccountLocked is returned when any event targets an account
	// frozen by a chargeback.
	ErrAccountLocked = errors.New("account locked")

	// ErrInsufficientFunds is returned when a withdrawal exceeds the
	// available balance.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrTransactionNotFound is returned when a dispute, resolve or
	// chargeback references an unseen transaction id.
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrClientMismatch is returned when the referenced transaction
	// belongs to a different client.
	ErrClientMismatch = errors.New("transaction belongs to another client")

	// ErrNotDisputable is returned when a dispute targets a withdrawal
	// or a transaction that is not in the Normal state.
	ErrNotDisputable = errors.New("transaction cannot be disputed")

	// ErrNotDisputed is returned when a resolve or chargeback targets a
	// transaction that is not under dispute.
	ErrNotDisputed = errors.New("transaction is not under dispute")

	// ErrHeldShortfall is returned when held funds do not cover the
	// disputed amount being resolved or charged back.
	ErrHeldShortfall = errors.New("held funds below disputed amount")
)

// =============================================================================
// CLASSIFICATION
// =============================================================================

// IsStructural reports whether err indicates malformed or adversarial input.
// Structural failures are logged as errors and land in the audit trail.
func IsStructural(err error) bool {
	return errors.Is(err, ErrDuplicateTransaction) ||
		errors.Is(err, ErrAmountOverflow) ||
		errors.Is(err, ErrInvalidAmount) ||
		errors.Is(err, ErrUnknownEventKind)
}

// IsIgnored reports whether err is a business no-op: a late or invalid
// instruction that is discarded without touching state.
func IsIgnored(err error) bool {
	return errors.Is(err, ErrAccountLocked) ||
		errors.Is(err, ErrInsufficientFunds) ||
		errors.Is(err, ErrTransactionNotFound) ||
		errors.Is(err, ErrClientMismatch) ||
		errors.Is(err, ErrNotDisputable) ||
		errors.Is(err, ErrNotDisputed) ||
		errors.Is(err, ErrHeldShortfall)
}
