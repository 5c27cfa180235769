package game

import "time"

// TimeProvider abstracts the wall clock so engines are testable with a
// controlled time source
type TimeProvider interface {
	Now() time.Time
}

// SystemTime is the production TimeProvider backed by time.Now
type SystemTime struct{}

// Now returns the current time with monotonic clock reading
func (SystemTime) Now() time.Time {
	return time.Now()
}

// PausableClock provides pausable game time with pause duration tracking.
// While paused, Now is frozen at the pause point; resumed time excludes
// the paused span so timers never charge the player for pause screens.
type PausableClock struct {
	provider TimeProvider

	paused          bool
	pauseStart      time.Time
	totalPausedTime time.Duration
}

// NewPausableClock creates a running clock on the given provider
func NewPausableClock(provider TimeProvider) *PausableClock {
	return &PausableClock{provider: provider}
}

// Now returns current game time (affected by pause)
func (pc *PausableClock) Now() time.Time {
	if pc.paused {
		return pc.pauseStart.Add(-pc.totalPausedTime)
	}
	return pc.provider.Now().Add(-pc.totalPausedTime)
}

// Pause stops game time advancement. No-op if already paused.
func (pc *PausableClock) Pause() {
	if pc.paused {
		return
	}
	pc.paused = true
	pc.pauseStart = pc.provider.Now()
}

// Resume continues game time advancement. No-op if not paused.
func (pc *PausableClock) Resume() {
	if !pc.paused {
		return
	}
	pc.paused = false
	pc.totalPausedTime += pc.provider.Now().Sub(pc.pauseStart)
	pc.pauseStart = time.Time{}
}

// Paused reports whether game time is currently frozen
func (pc *PausableClock) Paused() bool {
	return pc.paused
}
