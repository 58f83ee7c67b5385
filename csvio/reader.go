/*
reader.go - CSV event source

PURPOSE:
  Streams `type,client,tx,amount` rows into validated engine.Events. The
  engine never re-parses text; everything malformed is caught here and
  surfaced as a *RowError so the caller can skip the row and keep going.

INPUT FORMAT:
  type,client,tx,amount
  deposit,1,10,1.25
  dispute,1,10,

  - fields are trimmed, the type is case-insensitive
  - rows may omit trailing fields (amount is blank for the dispute
    lifecycle events)
  - amount is required for deposit and withdrawal and must parse at 4dp

SEE ALSO:
  - writer.go: the report side of the boundary
  - engine/event.go: the EventSource contract
*/
package csvio

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/warp/payments-engine/engine"
)

// RowError describes one malformed input row. The stream remains usable
// for the rows that follow.
type RowError struct {
	Line int
	Err  error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("row %d: %v", e.Line, e.Err)
}

func (e *RowError) Unwrap() error { return e.Err }

// Reader is a streaming engine.EventSource over CSV input.
type Reader struct {
	csv  *csv.Reader
	line int
}

var _ engine.EventSource = (*Reader)(nil)

// NewReader wraps r. The first row is treated as the header when its first
// field is "type".
func NewReader(r io.Reader) *Reader {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // dispute rows legitimately carry fewer fields
	cr.TrimLeadingSpace = true
	return &Reader{csv: cr}
}

// Next returns the next validated event, io.EOF at end of input, or a
// *RowError for a malformed row.
func (r *Reader) Next() (engine.Event, error) {
	for {
		fields, err := r.csv.Read()
		if err == io.EOF {
			return engine.Event{}, io.EOF
		}
		r.line++
		if err != nil {
			return engine.Event{}, &RowError{Line: r.line, Err: err}
		}

		for i := range fields {
			fields[i] = strings.TrimSpace(fields[i])
		}

		// Header row.
		if r.line == 1 && strings.EqualFold(fields[0], "type") {
			continue
		}

		ev, err := r.parseRow(fields)
		if err != nil {
			return engine.Event{}, &RowError{Line: r.line, Err: err}
		}
		return ev, nil
	}
}

func (r *Reader) parseRow(fields []string) (engine.Event, error) {
	if len(fields) < 3 {
		return engine.Event{}, fmt.Errorf("expected at least type,client,tx; got %d fields", len(fields))
	}

	kind, err := engine.ParseEventKind(fields[0])
	if err != nil {
		return engine.Event{}, err
	}

	client, err := strconv.ParseUint(fields[1], 10, 16)
	if err != nil {
		return engine.Event{}, fmt.Errorf("invalid client id %q", fields[1])
	}
	tx, err := strconv.ParseUint(fields[2], 10, 32)
	if err != nil {
		return engine.Event{}, fmt.Errorf("invalid transaction id %q", fields[2])
	}

	ev := engine.Event{
		Kind:   kind,
		Client: engine.ClientID(client),
		Tx:     engine.TxID(tx),
	}

	switch kind {
	case engine.EventDeposit, engine.EventWithdrawal:
		if len(fields) < 4 || fields[3] == "" {
			return engine.Event{}, fmt.Errorf("%s missing amount for client %d tx %d", kind, client, tx)
		}
		amount, err := engine.ParseMoney(fields[3])
		if err != nil {
			return engine.Event{}, err
		}
		if amount.IsNegative() {
			return engine.Event{}, fmt.Errorf("negative amount %q for client %d tx %d", fields[3], client, tx)
		}
		ev.Amount = amount
	}

	return ev, nil
}
