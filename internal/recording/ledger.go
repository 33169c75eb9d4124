// Package recording keeps the in-memory bookkeeping of simulated meeting
// recordings: the full history, the active-by-room index, and the delayed
// processing completion. No media is captured anywhere.
package recording

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/shoppingk/jitsi-session-keeper/internal/model"
)

// Ledger tracks recordings for the lifetime of the process. All methods are
// safe for concurrent use.
type Ledger struct {
	mu         sync.Mutex
	recordings []*model.Recording
	active     map[string]*model.Recording // roomID -> in-progress recording
	timers     map[string]*time.Timer      // recordingID -> pending completion
	closed     bool

	processingDelay time.Duration
	now             func() time.Time
	log             *zap.Logger
}

// NewLedger creates a recording ledger. processingDelay is how long a
// stopped recording stays in the processing state before completion.
func NewLedger(processingDelay time.Duration, log *zap.Logger) *Ledger {
	if log == nil {
		log = zap.NewNop()
	}
	return &Ledger{
		active:          make(map[string]*model.Recording),
		timers:          make(map[string]*time.Timer),
		processingDelay: processingDelay,
		now:             time.Now,
		log:             log,
	}
}

// newRecordingID derives a unique recording ID from the current time plus a
// random suffix.
func (l *Ledger) newRecordingID() string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:9]
	return fmt.Sprintf("rec_%d_%s", l.now().UnixMilli(), suffix)
}

// Start begins a recording for a room and inserts it into the active index.
// Starting while the room already has an active recording is rejected with
// ErrRecordingActive: overwriting the index entry would orphan the running
// recording with no way to ever stop it.
func (l *Ledger) Start(roomID, roomName, userID string) (*model.Recording, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, exists := l.active[roomID]; exists {
		return nil, fmt.Errorf("%w: %s", model.ErrRecordingActive, roomID)
	}

	rec := &model.Recording{
		ID:        l.newRecordingID(),
		RoomID:    roomID,
		RoomName:  roomName,
		StartTime: l.now(),
		CreatedBy: userID,
	}

	l.recordings = append(l.recordings, rec)
	l.active[roomID] = rec

	l.log.Info("recording started",
		zap.String("recording_id", rec.ID),
		zap.String("room_id", roomID),
		zap.String("room_name", roomName))

	out := *rec
	return &out, nil
}

// Stop ends the active recording of a room: stamps the end time and the
// duration in milliseconds, flips it into the processing state, and
// schedules the delayed completion. ErrRecordingNotFound when the room has
// no active recording.
func (l *Ledger) Stop(roomID string) (*model.Recording, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	rec, ok := l.active[roomID]
	if !ok {
		return nil, fmt.Errorf("%w: no active recording for room %s", model.ErrRecordingNotFound, roomID)
	}

	end := l.now()
	rec.EndTime = &end
	rec.Duration = end.Sub(rec.StartTime).Milliseconds()
	rec.IsProcessing = true
	delete(l.active, roomID)

	// Simulated background processing. The timer is tracked so Close can
	// cancel it; a discarded ledger must not fire stale completions.
	id := rec.ID
	l.timers[id] = time.AfterFunc(l.processingDelay, func() {
		l.complete(id)
	})

	l.log.Info("recording stopped",
		zap.String("recording_id", rec.ID),
		zap.String("room_id", roomID),
		zap.Int64("duration_ms", rec.Duration))

	out := *rec
	return &out, nil
}

// complete finishes the simulated processing of a stopped recording.
func (l *Ledger) complete(recordingID string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return
	}
	delete(l.timers, recordingID)

	for _, rec := range l.recordings {
		if rec.ID == recordingID {
			rec.IsProcessing = false
			rec.FileURL = fmt.Sprintf("recordings/%s.mp4", rec.ID)
			l.log.Info("recording processed",
				zap.String("recording_id", rec.ID),
				zap.String("file_url", rec.FileURL))
			return
		}
	}
}

// List returns recordings in insertion order: all of them when userID is
// empty (the admin view), otherwise only those created by that user.
func (l *Ledger) List(userID string) []model.Recording {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]model.Recording, 0, len(l.recordings))
	for _, rec := range l.recordings {
		if userID != "" && rec.CreatedBy != userID {
			continue
		}
		out = append(out, *rec)
	}
	return out
}

// IsActive reports whether a room has an in-progress recording.
func (l *Ledger) IsActive(roomID string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	_, ok := l.active[roomID]
	return ok
}

// ActiveFor returns the in-progress recording of a room, or nil.
func (l *Ledger) ActiveFor(roomID string) *model.Recording {
	l.mu.Lock()
	defer l.mu.Unlock()

	rec, ok := l.active[roomID]
	if !ok {
		return nil
	}
	out := *rec
	return &out
}

// Download returns the file URL and a download filename for a completed
// recording. Recordings that are unknown, still processing, or without a
// file yet are not downloadable.
func (l *Ledger) Download(recordingID string) (fileURL, filename string, err error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, rec := range l.recordings {
		if rec.ID != recordingID {
			continue
		}
		if rec.IsProcessing || rec.FileURL == "" {
			return "", "", fmt.Errorf("%w: %s", model.ErrRecordingNotReady, recordingID)
		}
		name := fmt.Sprintf("%s_%s.mp4", rec.RoomName, rec.StartTime.Format("2006-01-02"))
		return rec.FileURL, name, nil
	}

	return "", "", fmt.Errorf("%w: %s", model.ErrRecordingNotFound, recordingID)
}

// Close cancels all pending processing completions. After Close the ledger
// is read-only in practice; pending recordings stay in the processing state
// forever.
func (l *Ledger) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.closed = true
	for id, timer := range l.timers {
		timer.Stop()
		delete(l.timers, id)
	}
}
