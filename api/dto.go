/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  JSON structures for API communication, decoupled from the engine's
  internal types. Monetary fields are strings at four fractional digits;
  clients should never see binary floating point.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

SEE ALSO:
  - handlers.go: Uses these types
*/
package api

import (
	"github.com/warp/payments-engine/audit"
	"github.com/warp/payments-engine/engine"
)

// AccountDTO is an account snapshot in API responses.
type AccountDTO struct {
	Client    uint16 `json:"client"`
	Available string `json:"available"`
	Held      string `json:"held"`
	Total     string `json:"total"`
	Locked    bool   `json:"locked"`
}

func accountDTO(s engine.AccountSnapshot) AccountDTO {
	return AccountDTO{
		Client:    uint16(s.Client),
		Available: s.Available.String(),
		Held:      s.Held.String(),
		Total:     s.Total.String(),
		Locked:    s.Locked,
	}
}

// SubmitEventRequest is a single transaction event submitted as JSON.
// Amount is required for deposit and withdrawal, ignored otherwise.
type SubmitEventRequest struct {
	Type   string `json:"type"`
	Client uint16 `json:"client"`
	Tx     uint32 `json:"tx"`
	Amount string `json:"amount,omitempty"`
}

// EventOutcomeDTO reports what the engine did with a submitted event.
type EventOutcomeDTO struct {
	Outcome string `json:"outcome"` // applied | ignored | rejected
	Reason  string `json:"reason,omitempty"`
}

// ProcessSummaryDTO summarizes one CSV batch.
type ProcessSummaryDTO struct {
	Events   uint64 `json:"events"`
	Applied  uint64 `json:"applied"`
	Rejected uint64 `json:"rejected"`
	Ignored  uint64 `json:"ignored"`
	Accounts int    `json:"accounts"`
}

// AuditEntryDTO is one diagnostics trail entry.
type AuditEntryDTO struct {
	ID         string `json:"id"`
	Seq        uint64 `json:"seq"`
	Kind       string `json:"kind"`
	Client     uint16 `json:"client"`
	Tx         uint32 `json:"tx"`
	Amount     string `json:"amount,omitempty"`
	Outcome    string `json:"outcome"`
	Reason     string `json:"reason,omitempty"`
	RecordedAt string `json:"recorded_at"`
}

func auditEntryDTO(e audit.Entry) AuditEntryDTO {
	return AuditEntryDTO{
		ID:         e.ID,
		Seq:        e.Seq,
		Kind:       e.Kind,
		Client:     e.Client,
		Tx:         e.Tx,
		Amount:     e.Amount,
		Outcome:    string(e.Outcome),
		Reason:     e.Reason,
		RecordedAt: e.RecordedAt.Format(timeLayout),
	}
}

// ErrorResponse is the JSON error envelope.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}
