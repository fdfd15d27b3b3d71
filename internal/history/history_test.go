package history

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "audits.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestSaveAndLoadSnapshots(t *testing.T) {
	store := openTestStore(t)

	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, store.SaveSnapshot(Snapshot{
		RunID: "run-1", Timestamp: base, FileCount: 10, MissingCount: 7,
	}))
	require.NoError(t, store.SaveSnapshot(Snapshot{
		RunID: "run-2", Timestamp: base.Add(time.Hour), FileCount: 10, MissingCount: 3, InsertedCount: 4,
	}))

	snapshots, err := store.LoadSnapshots(time.Time{})
	require.NoError(t, err)
	require.Len(t, snapshots, 2)
	require.Equal(t, "run-1", snapshots[0].RunID)
	require.Equal(t, 7, snapshots[0].MissingCount)
	require.Equal(t, 4, snapshots[1].InsertedCount)
	require.True(t, snapshots[0].Timestamp.Equal(base))
}

func TestSaveSnapshotUpsertsByRunID(t *testing.T) {
	store := openTestStore(t)

	require.NoError(t, store.SaveSnapshot(Snapshot{RunID: "run-1", MissingCount: 5}))
	require.NoError(t, store.SaveSnapshot(Snapshot{RunID: "run-1", MissingCount: 2, InsertedCount: 3}))

	snapshots, err := store.LoadSnapshots(time.Time{})
	require.NoError(t, err)
	require.Len(t, snapshots, 1)
	require.Equal(t, 2, snapshots[0].MissingCount)
}

func TestLoadSnapshotsSince(t *testing.T) {
	store := openTestStore(t)

	old := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	recent := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, store.SaveSnapshot(Snapshot{RunID: "old", Timestamp: old}))
	require.NoError(t, store.SaveSnapshot(Snapshot{RunID: "new", Timestamp: recent}))

	snapshots, err := store.LoadSnapshots(recent.Add(-time.Hour))
	require.NoError(t, err)
	require.Len(t, snapshots, 1)
	require.Equal(t, "new", snapshots[0].RunID)
}

func TestSnapshotRequiresRunID(t *testing.T) {
	store := openTestStore(t)
	require.Error(t, store.SaveSnapshot(Snapshot{}))
}

func TestOpenRejectsDirectory(t *testing.T) {
	_, err := Open(t.TempDir())
	require.Error(t, err)
}

func TestComputeTrend(t *testing.T) {
	snaps := []Snapshot{
		{RunID: "a", MissingCount: 9, Timestamp: time.Now().Add(-2 * time.Hour)},
		{RunID: "b", MissingCount: 4, Timestamp: time.Now()},
	}

	trend := ComputeTrend(snaps)
	require.Equal(t, -5, trend.Delta)
	require.True(t, strings.Contains(trend.String(), "down by 5"))
}

func TestTrendWithoutHistory(t *testing.T) {
	trend := ComputeTrend(nil)
	require.Contains(t, trend.String(), "No audit history")
}
