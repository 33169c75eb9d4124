package conference

import (
	"errors"
	"sync"
)

// SimulatedWidget is an in-process Widget used by tests and local
// development. It mimics the hosted widget's observable behavior: Join fires
// the joined event, Hangup fires the left event, and commands after Dispose
// are rejected.
type SimulatedWidget struct {
	mu       sync.Mutex
	cfg      Config
	joined   bool
	disposed bool
	audioOn  bool
	videoOn  bool
	handlers map[Event][]func()
}

// NewSimulatedWidget creates an idle simulated widget.
func NewSimulatedWidget() *SimulatedWidget {
	return &SimulatedWidget{
		handlers: make(map[Event][]func()),
	}
}

var errDisposed = errors.New("widget disposed")

// Join stores the configuration and emits the joined event.
func (w *SimulatedWidget) Join(cfg Config) error {
	w.mu.Lock()
	if w.disposed {
		w.mu.Unlock()
		return errDisposed
	}
	w.cfg = cfg
	w.joined = true
	w.audioOn = !cfg.StartWithAudioMuted
	w.videoOn = !cfg.StartWithVideoMuted
	w.mu.Unlock()

	w.emit(EventJoined)
	return nil
}

// On registers an event handler.
func (w *SimulatedWidget) On(event Event, fn func()) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.handlers[event] = append(w.handlers[event], fn)
}

// ToggleAudio flips the microphone state.
func (w *SimulatedWidget) ToggleAudio() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.disposed {
		return errDisposed
	}
	w.audioOn = !w.audioOn
	return nil
}

// ToggleVideo flips the camera state.
func (w *SimulatedWidget) ToggleVideo() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.disposed {
		return errDisposed
	}
	w.videoOn = !w.videoOn
	return nil
}

// Hangup leaves the conference and emits the left event.
func (w *SimulatedWidget) Hangup() error {
	w.mu.Lock()
	if w.disposed {
		w.mu.Unlock()
		return errDisposed
	}
	w.joined = false
	w.mu.Unlock()

	w.emit(EventLeft)
	return nil
}

// Dispose tears the widget down. Further commands fail.
func (w *SimulatedWidget) Dispose() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.disposed = true
	w.joined = false
	w.handlers = make(map[Event][]func())
}

// Joined reports whether the widget is currently in a conference.
func (w *SimulatedWidget) Joined() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.joined
}

// AudioEnabled reports the microphone state.
func (w *SimulatedWidget) AudioEnabled() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.audioOn
}

// VideoEnabled reports the camera state.
func (w *SimulatedWidget) VideoEnabled() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.videoOn
}

func (w *SimulatedWidget) emit(event Event) {
	w.mu.Lock()
	fns := append([]func(){}, w.handlers[event]...)
	w.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}
