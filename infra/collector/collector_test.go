package collector

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/quentinv/battrace/infra/power"
	"github.com/quentinv/battrace/infra/samplelog"
	"github.com/quentinv/battrace/internal/eventbus"
)

func TestCollector_RecordsAndPublishes(t *testing.T) {
	store, err := samplelog.NewCSVStore(filepath.Join(t.TempDir(), "log.csv"))
	require.NoError(t, err)

	base := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	clock := base
	src := power.NewSimSource(80, 1).WithClock(func() time.Time { return clock })

	bus := eventbus.NewTyped[eventbus.SampleRecorded]()
	defer bus.Close()
	sub := bus.Subscribe()

	c := New(src, store, bus, 50*time.Millisecond, nil)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- c.Run(ctx) }()

	select {
	case ev := <-sub:
		require.Equal(t, 80.0, ev.Sample.Percentage)
	case <-time.After(2 * time.Second):
		t.Fatal("no sample event")
	}
	cancel()
	require.ErrorIs(t, <-done, context.Canceled)

	snap, err := store.Snapshot(context.Background(), samplelog.Query{})
	require.NoError(t, err)
	require.NotEmpty(t, snap.Samples)
}

type failingSource struct{}

func (failingSource) Read(context.Context) (power.Reading, error) {
	return power.Reading{}, context.DeadlineExceeded
}

func TestCollector_SurvivesReadErrors(t *testing.T) {
	store, err := samplelog.NewCSVStore(filepath.Join(t.TempDir(), "log.csv"))
	require.NoError(t, err)

	c := New(failingSource{}, store, nil, 10*time.Millisecond, nil)
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	require.ErrorIs(t, c.Run(ctx), context.DeadlineExceeded)

	snap, err := store.Snapshot(context.Background(), samplelog.Query{})
	require.NoError(t, err)
	require.Empty(t, snap.Samples)
}
