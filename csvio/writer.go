package csvio

import (
	"encoding/csv"
	"io"
	"sort"
	"strconv"

	"github.com/warp/payments-engine/engine"
)

// WriteAccounts renders the final account snapshots as CSV:
//
//	client,available,held,total,locked
//	1,1.5000,0.0000,1.5000,false
//
// Rows are emitted in ascending client id order regardless of the order
// they arrive in; monetary fields carry exactly four fractional digits.
func WriteAccounts(w io.Writer, snaps []engine.AccountSnapshot) error {
	sorted := make([]engine.AccountSnapshot, len(snaps))
	copy(sorted, snaps)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Client < sorted[j].Client })

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"client", "available", "held", "total", "locked"}); err != nil {
		return err
	}
	for _, s := range sorted {
		row := []string{
			strconv.FormatUint(uint64(s.Client), 10),
			s.Available.String(),
			s.Held.String(),
			s.Total.String(),
			strconv.FormatBool(s.Locked),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
