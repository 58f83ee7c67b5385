/*
handlers.go - HTTP handlers for the payments engine

PURPOSE:
  Exposes the engine over REST. Handles HTTP request/response and JSON
  serialization, and delegates everything else to the engine.

ENDPOINTS:
  POST /api/transactions      Process a CSV batch (body: transactions CSV)
  POST /api/events            Process a single JSON event
  GET  /api/accounts          All account snapshots
  GET  /api/accounts/{client} One account snapshot
  GET  /api/report            Final report as text/csv
  GET  /api/audit             Diagnostics trail (?limit=N, default 100)
  POST /api/reset             Start a fresh ledger

CONCURRENCY:
  Event order is semantically significant, so every state-touching request
  takes the handler mutex. There is exactly one logical event queue; event
  N+1 never starts before event N's mutation commits.

ERROR HANDLING:
  - 400: malformed request body
  - 404: unknown client
  - 422: structurally invalid event (duplicate tx id, overflow)
  - 500: internal errors
  Business no-ops are NOT errors: the event is acknowledged with outcome
  "ignored", matching the engine's discard semantics.

SEE ALSO:
  - dto.go: request/response shapes
  - server.go: router and middleware
*/
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/warp/payments-engine/audit"
	"github.com/warp/payments-engine/csvio"
	"github.com/warp/payments-engine/engine"
)

const timeLayout = time.RFC3339Nano

// Handler holds the engine state behind one mutex.
type Handler struct {
	mu     sync.Mutex
	ledger *engine.Ledger
	proc   *engine.Processor
	sink   audit.Sink
	log    *zap.Logger
}

// NewHandler creates a handler with a fresh ledger. sink may be nil to
// disable the diagnostics trail.
func NewHandler(log *zap.Logger, sink audit.Sink) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{
		ledger: engine.NewLedger(),
		proc:   engine.NewProcessor(engine.WithLogger(log), engine.WithAudit(sink)),
		sink:   sink,
		log:    log,
	}
}

// =============================================================================
// PROCESSING
// =============================================================================

// ProcessTransactions streams a CSV batch from the request body into the
// ledger and returns a summary of outcomes for that batch.
func (h *Handler) ProcessTransactions(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()

	before := h.proc.Stats()
	if _, err := h.proc.Run(r.Context(), h.ledger, csvio.NewReader(r.Body)); err != nil {
		writeError(w, http.StatusInternalServerError, "Processing aborted", err)
		return
	}
	after := h.proc.Stats()

	writeJSON(w, http.StatusOK, ProcessSummaryDTO{
		Events:   after.Events() - before.Events(),
		Applied:  after.Applied - before.Applied,
		Rejected: after.Structural - before.Structural,
		Ignored:  after.Ignored - before.Ignored,
		Accounts: len(h.ledger.Snapshots()),
	})
}

// SubmitEvent processes one JSON event.
func (h *Handler) SubmitEvent(w http.ResponseWriter, r *http.Request) {
	var req SubmitEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	ev, err := eventFromRequest(req)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid event", err)
		return
	}

	h.mu.Lock()
	err = h.proc.Process(r.Context(), h.ledger, ev)
	h.mu.Unlock()

	switch {
	case err == nil:
		writeJSON(w, http.StatusCreated, EventOutcomeDTO{Outcome: "applied"})
	case engine.IsIgnored(err):
		writeJSON(w, http.StatusOK, EventOutcomeDTO{Outcome: "ignored", Reason: err.Error()})
	default:
		writeJSON(w, http.StatusUnprocessableEntity, EventOutcomeDTO{Outcome: "rejected", Reason: err.Error()})
	}
}

func eventFromRequest(req SubmitEventRequest) (engine.Event, error) {
	kind, err := engine.ParseEventKind(req.Type)
	if err != nil {
		return engine.Event{}, err
	}

	ev := engine.Event{
		Kind:   kind,
		Client: engine.ClientID(req.Client),
		Tx:     engine.TxID(req.Tx),
	}
	if kind == engine.EventDeposit || kind == engine.EventWithdrawal {
		amount, err := engine.ParseMoney(req.Amount)
		if err != nil {
			return engine.Event{}, err
		}
		if amount.IsNegative() {
			return engine.Event{}, errors.New("amount must be non-negative")
		}
		ev.Amount = amount
	}
	return ev, nil
}

// =============================================================================
// ACCOUNTS & REPORTING
// =============================================================================

// ListAccounts returns every account snapshot, ascending client id.
func (h *Handler) ListAccounts(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	snaps := h.ledger.Snapshots()
	h.mu.Unlock()

	dtos := make([]AccountDTO, len(snaps))
	for i, s := range snaps {
		dtos[i] = accountDTO(s)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// GetAccount returns one account snapshot.
func (h *Handler) GetAccount(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(chi.URLParam(r, "client"), 10, 16)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid client id", err)
		return
	}

	h.mu.Lock()
	snap, ok := h.ledger.Account(engine.ClientID(id))
	h.mu.Unlock()

	if !ok {
		writeError(w, http.StatusNotFound, "Account not found", nil)
		return
	}
	writeJSON(w, http.StatusOK, accountDTO(snap))
}

// Report streams the final account report as CSV.
func (h *Handler) Report(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	snaps := h.ledger.Snapshots()
	h.mu.Unlock()

	w.Header().Set("Content-Type", "text/csv")
	if err := csvio.WriteAccounts(w, snaps); err != nil {
		h.log.Error("report write failed", zap.Error(err))
	}
}

// =============================================================================
// DIAGNOSTICS & ADMIN
// =============================================================================

// AuditEntries returns the most recent diagnostics trail entries.
func (h *Handler) AuditEntries(w http.ResponseWriter, r *http.Request) {
	if h.sink == nil {
		writeJSON(w, http.StatusOK, []AuditEntryDTO{})
		return
	}

	limit := 100
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "Invalid limit", err)
			return
		}
		limit = n
	}

	entries, err := h.sink.Entries(r.Context(), limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to read audit trail", err)
		return
	}

	dtos := make([]AuditEntryDTO, len(entries))
	for i, e := range entries {
		dtos[i] = auditEntryDTO(e)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// Reset discards the ledger and starts fresh. The audit trail is kept.
func (h *Handler) Reset(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	h.ledger = engine.NewLedger()
	h.proc = engine.NewProcessor(engine.WithLogger(h.log), engine.WithAudit(h.sink))
	h.mu.Unlock()

	h.log.Info("ledger reset")
	writeJSON(w, http.StatusOK, map[string]string{"status": "reset"})
}

// =============================================================================
// RESPONSE HELPERS
// =============================================================================

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}
