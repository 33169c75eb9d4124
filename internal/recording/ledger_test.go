package recording

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shoppingk/jitsi-session-keeper/internal/model"
)

func TestStartAndStopRecording(t *testing.T) {
	ledger := NewLedger(10*time.Millisecond, nil)
	defer ledger.Close()

	rec, err := ledger.Start("room-1", "Daily Standup", "male-admin-1")
	require.NoError(t, err)
	assert.NotEmpty(t, rec.ID)
	assert.Equal(t, "room-1", rec.RoomID)
	assert.Equal(t, "Daily Standup", rec.RoomName)
	assert.Equal(t, "male-admin-1", rec.CreatedBy)
	assert.False(t, rec.IsProcessing)
	assert.Nil(t, rec.EndTime)
	assert.True(t, ledger.IsActive("room-1"))

	stopped, err := ledger.Stop("room-1")
	require.NoError(t, err)
	require.NotNil(t, stopped.EndTime)
	assert.GreaterOrEqual(t, stopped.Duration, int64(0))
	assert.Equal(t, stopped.EndTime.Sub(stopped.StartTime).Milliseconds(), stopped.Duration)
	assert.True(t, stopped.IsProcessing)
	assert.False(t, ledger.IsActive("room-1"))
}

func TestDoubleStartIsRejected(t *testing.T) {
	ledger := NewLedger(time.Minute, nil)
	defer ledger.Close()

	first, err := ledger.Start("room-1", "Standup", "u1")
	require.NoError(t, err)

	_, err = ledger.Start("room-1", "Standup again", "u2")
	assert.ErrorIs(t, err, model.ErrRecordingActive)

	// The original recording stays active and stoppable.
	active := ledger.ActiveFor("room-1")
	require.NotNil(t, active)
	assert.Equal(t, first.ID, active.ID)
}

func TestStopWithoutActiveRecording(t *testing.T) {
	ledger := NewLedger(time.Minute, nil)
	defer ledger.Close()

	_, err := ledger.Stop("room-1")
	assert.ErrorIs(t, err, model.ErrRecordingNotFound)
}

func TestProcessingCompletesAfterDelay(t *testing.T) {
	ledger := NewLedger(10*time.Millisecond, nil)
	defer ledger.Close()

	rec, err := ledger.Start("room-1", "Standup", "u1")
	require.NoError(t, err)
	_, err = ledger.Stop("room-1")
	require.NoError(t, err)

	assert.Eventually(t, func() bool {
		list := ledger.List("")
		return len(list) == 1 && !list[0].IsProcessing && list[0].FileURL != ""
	}, time.Second, 5*time.Millisecond)

	list := ledger.List("")
	assert.Equal(t, fmt.Sprintf("recordings/%s.mp4", rec.ID), list[0].FileURL)
}

func TestCloseCancelsPendingCompletion(t *testing.T) {
	ledger := NewLedger(20*time.Millisecond, nil)

	_, err := ledger.Start("room-1", "Standup", "u1")
	require.NoError(t, err)
	_, err = ledger.Stop("room-1")
	require.NoError(t, err)

	ledger.Close()
	time.Sleep(60 * time.Millisecond)

	list := ledger.List("")
	require.Len(t, list, 1)
	assert.True(t, list[0].IsProcessing, "completion must not fire after Close")
	assert.Empty(t, list[0].FileURL)
}

func TestListFiltersByCreator(t *testing.T) {
	ledger := NewLedger(time.Minute, nil)
	defer ledger.Close()

	_, err := ledger.Start("room-1", "A", "alice")
	require.NoError(t, err)
	_, err = ledger.Start("room-2", "B", "bob")
	require.NoError(t, err)
	_, err = ledger.Start("room-3", "C", "alice")
	require.NoError(t, err)

	all := ledger.List("")
	require.Len(t, all, 3)
	// Insertion order.
	assert.Equal(t, "room-1", all[0].RoomID)
	assert.Equal(t, "room-3", all[2].RoomID)

	mine := ledger.List("alice")
	require.Len(t, mine, 2)
	for _, rec := range mine {
		assert.Equal(t, "alice", rec.CreatedBy)
	}

	assert.Empty(t, ledger.List("nobody"))
}

func TestActiveForUnknownRoom(t *testing.T) {
	ledger := NewLedger(time.Minute, nil)
	defer ledger.Close()

	assert.Nil(t, ledger.ActiveFor("room-1"))
	assert.False(t, ledger.IsActive("room-1"))
}

func TestDownloadLifecycle(t *testing.T) {
	ledger := NewLedger(10*time.Millisecond, nil)
	defer ledger.Close()

	_, _, err := ledger.Download("rec_unknown")
	assert.ErrorIs(t, err, model.ErrRecordingNotFound)

	rec, err := ledger.Start("room-1", "Standup", "u1")
	require.NoError(t, err)

	// Not downloadable while running (no file yet).
	_, _, err = ledger.Download(rec.ID)
	assert.ErrorIs(t, err, model.ErrRecordingNotReady)

	_, err = ledger.Stop("room-1")
	require.NoError(t, err)

	// Not downloadable while processing.
	_, _, err = ledger.Download(rec.ID)
	assert.ErrorIs(t, err, model.ErrRecordingNotReady)

	assert.Eventually(t, func() bool {
		_, _, err := ledger.Download(rec.ID)
		return err == nil
	}, time.Second, 5*time.Millisecond)

	fileURL, filename, err := ledger.Download(rec.ID)
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("recordings/%s.mp4", rec.ID), fileURL)
	assert.Equal(t, fmt.Sprintf("Standup_%s.mp4", rec.StartTime.Format("2006-01-02")), filename)
}

func TestRecordingIDsAreUnique(t *testing.T) {
	ledger := NewLedger(time.Minute, nil)
	defer ledger.Close()

	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		rec, err := ledger.Start(fmt.Sprintf("room-%d", i), "Room", "u1")
		require.NoError(t, err)
		assert.False(t, seen[rec.ID], "duplicate recording id %s", rec.ID)
		seen[rec.ID] = true
	}
}
