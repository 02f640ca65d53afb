package automation

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memJournal struct {
	entries []Entry
	err     error
}

func (j *memJournal) Append(ctx context.Context, e Entry) error {
	if j.err != nil {
		return j.err
	}
	j.entries = append(j.entries, e)
	return nil
}

func TestRecorder_JournalsMutations(t *testing.T) {
	ctx := context.Background()
	sim := newTestSim()
	j := &memJournal{}
	rec := NewRecorder(sim, j, WithSession("s-1"))

	require.NoError(t, rec.InsertSetup(ctx, "NexximLNA", NewArgs("New")))
	require.NoError(t, rec.EditSetup(ctx, "New", NewArgs("New").Prop("A", 1)))
	require.NoError(t, rec.InsertFrequencySweep(ctx, "New", NewArgs("Sweep")))
	require.NoError(t, rec.AssignBoundary(ctx, BoundarySink, NewArgs("Snk")))
	require.NoError(t, rec.AutoIdentifyNets(ctx))

	_, err := rec.Ports(ctx)
	require.NoError(t, err)

	methods := make([]string, len(j.entries))
	for i, e := range j.entries {
		methods[i] = e.Method
		assert.Equal(t, "s-1", e.Session)
	}
	assert.Equal(t, []string{"InsertSetup", "EditSetup", "InsertFrequencySweep", "AssignBoundary", "AutoIdentifyNets"}, methods)
	assert.Equal(t, "Sink", j.entries[3].Target)
}

func TestRecorder_SkipsFailedCalls(t *testing.T) {
	ctx := context.Background()
	j := &memJournal{}
	rec := NewRecorder(newTestSim(), j)

	err := rec.EditSetup(ctx, "Missing", NewArgs("Missing"))
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Empty(t, j.entries)
}

func TestRecorder_JournalError(t *testing.T) {
	j := &memJournal{err: errors.New("disk full")}
	rec := NewRecorder(newTestSim(), j)

	err := rec.AutoIdentifyNets(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "journal AutoIdentifyNets")
}

func TestRecorder_DefaultSessionIsUUIDv7(t *testing.T) {
	rec := NewRecorder(newTestSim(), &memJournal{})
	id, err := uuid.Parse(rec.Session())
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(7), id.Version())
}
