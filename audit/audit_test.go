package audit_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/payments-engine/audit"
)

func seedEntries(t *testing.T, sink audit.Sink, n int) {
	t.Helper()
	for i := 1; i <= n; i++ {
		err := sink.Record(context.Background(), audit.Entry{
			ID:         fmt.Sprintf("id-%d", i),
			Seq:        uint64(i),
			Kind:       "deposit",
			Client:     1,
			Tx:         uint32(i),
			Outcome:    audit.OutcomeApplied,
			RecordedAt: time.Now().UTC(),
		})
		require.NoError(t, err)
	}
}

func TestMemory_AppendOrderPreserved(t *testing.T) {
	sink := audit.NewMemory()
	seedEntries(t, sink, 3)

	entries, err := sink.Entries(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	for i, e := range entries {
		assert.Equal(t, uint64(i+1), e.Seq)
	}
}

func TestMemory_LimitReturnsMostRecent(t *testing.T) {
	sink := audit.NewMemory()
	seedEntries(t, sink, 5)

	entries, err := sink.Entries(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, uint64(4), entries[0].Seq)
	assert.Equal(t, uint64(5), entries[1].Seq)
}

func TestMemory_EntriesReturnsCopy(t *testing.T) {
	sink := audit.NewMemory()
	seedEntries(t, sink, 1)

	entries, err := sink.Entries(context.Background(), 0)
	require.NoError(t, err)
	entries[0].Reason = "mutated"

	fresh, err := sink.Entries(context.Background(), 0)
	require.NoError(t, err)
	assert.Empty(t, fresh[0].Reason)
}
