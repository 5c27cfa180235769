package game

import (
	"testing"
	"time"

	"github.com/kettleram/cookie-crunch/events"
)

func TestThreeWrongAnswersDepleteLives(t *testing.T) {
	bus := events.NewBus()

	var counts []int
	depleted := 0
	bus.Subscribe(events.EventLivesUpdated, func(ev events.Event) {
		counts = append(counts, ev.Payload.(*events.LivesUpdatedPayload).RemainingLives)
	})
	bus.Subscribe(events.EventLivesDepleted, func(events.Event) { depleted++ })

	le := NewLivesEngine(bus, 3)
	le.Attach()

	for i := 0; i < 3; i++ {
		bus.Publish(events.EventAnswerSubmitted, &events.AnswerSubmittedPayload{IsCorrect: false})
	}

	want := []int{2, 1, 0}
	if len(counts) != len(want) {
		t.Fatalf("lives updates = %v, want %v", counts, want)
	}
	for i := range want {
		if counts[i] != want[i] {
			t.Fatalf("lives updates = %v, want %v", counts, want)
		}
	}
	if depleted != 1 {
		t.Fatalf("LivesDepleted published %d times, want 1", depleted)
	}

	// Floor clamp: further losses are no-ops
	le.LoseLife()
	if le.Remaining() != 0 || depleted != 1 {
		t.Fatalf("lives went below zero or re-depleted: %d / %d", le.Remaining(), depleted)
	}
}

func TestCorrectAnswerCostsNoLife(t *testing.T) {
	bus := events.NewBus()
	le := NewLivesEngine(bus, 3)
	le.Attach()

	bus.Publish(events.EventAnswerSubmitted, &events.AnswerSubmittedPayload{IsCorrect: true})
	if le.Remaining() != 3 {
		t.Fatalf("correct answer cost a life: %d", le.Remaining())
	}
}

func TestUnlimitedLivesSentinel(t *testing.T) {
	bus := events.NewBus()
	fired := false
	bus.Subscribe(events.EventLivesDepleted, func(events.Event) { fired = true })

	le := NewLivesEngine(bus, 0)
	if !le.Unlimited() {
		t.Fatal("zero lives should mean unlimited")
	}
	for i := 0; i < 10; i++ {
		le.LoseLife()
	}
	if fired {
		t.Fatal("unlimited engine published LivesDepleted")
	}
}

func TestTimerCountsDownByWallClockDelta(t *testing.T) {
	bus := events.NewBus()
	provider := NewMockTimeProvider(time.Unix(0, 0))
	clock := NewPausableClock(provider)

	var updates []time.Duration
	expired := 0
	bus.Subscribe(events.EventTimerUpdated, func(ev events.Event) {
		updates = append(updates, ev.Payload.(*events.TimerUpdatedPayload).RemainingTime)
	})
	bus.Subscribe(events.EventTimerExpired, func(events.Event) { expired++ })

	te := NewTimerEngine(bus, clock, 30*time.Second)
	te.Start()

	provider.Advance(10 * time.Second)
	te.Update()
	if len(updates) != 1 || updates[0] != 20*time.Second {
		t.Fatalf("updates = %v, want [20s]", updates)
	}

	provider.Advance(25 * time.Second)
	te.Update()
	if expired != 1 {
		t.Fatalf("TimerExpired published %d times, want 1", expired)
	}
	if updates[len(updates)-1] != 0 {
		t.Fatalf("final update = %v, want 0 (clamped)", updates[len(updates)-1])
	}
	if te.Active() {
		t.Fatal("timer still active after expiry")
	}

	// Deactivated: further ticks publish nothing
	provider.Advance(time.Minute)
	te.Update()
	te.Resume()
	te.Update()
	if expired != 1 {
		t.Fatalf("expired timer fired again: %d", expired)
	}
}

func TestZeroLimitTimerNeverActivates(t *testing.T) {
	bus := events.NewBus()
	provider := NewMockTimeProvider(time.Unix(0, 0))
	clock := NewPausableClock(provider)

	fired := false
	bus.Subscribe(events.EventTimerExpired, func(events.Event) { fired = true })
	bus.Subscribe(events.EventTimerUpdated, func(events.Event) { fired = true })

	te := NewTimerEngine(bus, clock, 0)
	te.Start()
	te.Resume()
	for i := 0; i < 100; i++ {
		provider.Advance(time.Hour)
		te.Update()
	}
	if fired || te.Active() {
		t.Fatal("unlimited timer activated")
	}
}

func TestTimerPauseResume(t *testing.T) {
	bus := events.NewBus()
	provider := NewMockTimeProvider(time.Unix(0, 0))
	clock := NewPausableClock(provider)

	te := NewTimerEngine(bus, clock, time.Minute)
	te.Start()

	provider.Advance(10 * time.Second)
	te.Update()
	te.Pause()

	provider.Advance(30 * time.Second)
	te.Update() // paused: no change
	if te.Remaining() != 50*time.Second {
		t.Fatalf("remaining = %v, want 50s", te.Remaining())
	}

	te.Resume()
	provider.Advance(5 * time.Second)
	te.Update()
	if te.Remaining() != 45*time.Second {
		t.Fatalf("remaining = %v after resume, want 45s", te.Remaining())
	}
}

func TestTimerWarningSoundFiresOnce(t *testing.T) {
	bus := events.NewBus()
	provider := NewMockTimeProvider(time.Unix(0, 0))
	clock := NewPausableClock(provider)

	ticks := 0
	bus.Subscribe(events.EventSoundRequest, func(ev events.Event) {
		if ev.Payload.(*events.SoundRequestPayload).Sound == events.SoundTick {
			ticks++
		}
	})

	te := NewTimerEngine(bus, clock, 15*time.Second)
	te.Start()

	for i := 0; i < 10; i++ {
		provider.Advance(time.Second)
		te.Update()
	}
	if ticks != 1 {
		t.Fatalf("warning sound fired %d times, want 1", ticks)
	}
}
