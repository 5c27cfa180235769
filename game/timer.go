package game

import (
	"time"

	"github.com/kettleram/cookie-crunch/events"
)

// tickWarningThreshold is when the timer starts requesting warning ticks
const tickWarningThreshold = 10 * time.Second

// TimerEngine counts the session clock down by wall-clock delta each
// Update tick. A zero time limit is the unlimited sentinel (practice
// mode): the engine never activates and TimerExpired is never published.
type TimerEngine struct {
	bus   *events.Bus
	clock *PausableClock

	remaining time.Duration
	unlimited bool
	active    bool
	expired   bool
	warned    bool
	lastTick  time.Time
}

// NewTimerEngine creates a stopped engine with the configured limit
func NewTimerEngine(bus *events.Bus, clock *PausableClock, limit time.Duration) *TimerEngine {
	return &TimerEngine{
		bus:       bus,
		clock:     clock,
		remaining: limit,
		unlimited: limit == 0,
	}
}

// Start activates the countdown. No-op when unlimited or expired.
func (te *TimerEngine) Start() {
	if te.unlimited || te.expired {
		return
	}
	te.active = true
	te.lastTick = te.clock.Now()
}

// Pause suspends the countdown, keeping the remaining time
func (te *TimerEngine) Pause() {
	te.active = false
}

// Resume continues the countdown. No-op when unlimited or expired.
func (te *TimerEngine) Resume() {
	if te.unlimited || te.expired || te.active {
		return
	}
	te.active = true
	te.lastTick = te.clock.Now()
}

// Update advances the countdown by the elapsed game-clock delta,
// clamping at zero. Publishes TimerUpdated every tick while active and
// TimerExpired exactly once on reaching zero.
func (te *TimerEngine) Update() {
	if !te.active {
		return
	}

	now := te.clock.Now()
	te.remaining -= now.Sub(te.lastTick)
	te.lastTick = now

	if te.remaining <= 0 {
		te.remaining = 0
		te.active = false
		te.expired = true
		te.bus.Publish(events.EventTimerUpdated, &events.TimerUpdatedPayload{RemainingTime: 0})
		te.bus.Publish(events.EventTimerExpired, nil)
		return
	}

	if !te.warned && te.remaining <= tickWarningThreshold {
		te.warned = true
		te.bus.Publish(events.EventSoundRequest, &events.SoundRequestPayload{Sound: events.SoundTick})
	}
	te.bus.Publish(events.EventTimerUpdated, &events.TimerUpdatedPayload{RemainingTime: te.remaining})
}

// Remaining returns the time left on the clock
func (te *TimerEngine) Remaining() time.Duration {
	return te.remaining
}

// Active reports whether the countdown is running
func (te *TimerEngine) Active() bool {
	return te.active
}

// Unlimited reports whether the engine is the practice-mode no-op
func (te *TimerEngine) Unlimited() bool {
	return te.unlimited
}
