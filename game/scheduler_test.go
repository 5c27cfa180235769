package game

import (
	"testing"
	"time"
)

func TestPausableClockFreezesDuringPause(t *testing.T) {
	provider := NewMockTimeProvider(time.Unix(0, 0))
	clock := NewPausableClock(provider)

	provider.Advance(10 * time.Second)
	if got := clock.Now(); got != time.Unix(10, 0) {
		t.Fatalf("clock now = %v, want +10s", got)
	}

	clock.Pause()
	frozen := clock.Now()
	provider.Advance(time.Hour)
	if clock.Now() != frozen {
		t.Fatal("clock advanced while paused")
	}

	clock.Resume()
	provider.Advance(5 * time.Second)
	if got := clock.Now(); got != frozen.Add(5*time.Second) {
		t.Fatalf("clock now = %v, want %v", got, frozen.Add(5*time.Second))
	}

	// Redundant pause/resume calls are no-ops
	clock.Resume()
	clock.Pause()
	clock.Pause()
	clock.Resume()
	clock.Resume()
}

func TestTaskFiresAtDueTime(t *testing.T) {
	provider := NewMockTimeProvider(time.Unix(0, 0))
	clock := NewPausableClock(provider)
	tq := NewTaskQueue(clock)

	fired := 0
	tq.Schedule(time.Second, func() { fired++ })

	tq.Update()
	if fired != 0 {
		t.Fatal("task fired before its delay elapsed")
	}

	provider.Advance(time.Second)
	tq.Update()
	if fired != 1 {
		t.Fatalf("task fired %d times, want 1", fired)
	}

	tq.Update()
	if fired != 1 || tq.Pending() != 0 {
		t.Fatal("fired task was not removed")
	}
}

func TestInvalidateCancelsOutstandingTasks(t *testing.T) {
	provider := NewMockTimeProvider(time.Unix(0, 0))
	clock := NewPausableClock(provider)
	tq := NewTaskQueue(clock)

	fired := false
	tq.Schedule(time.Second, func() { fired = true })
	tq.Invalidate()

	provider.Advance(time.Minute)
	tq.Update()
	if fired {
		t.Fatal("stale-generation task ran")
	}
}

func TestTaskInvalidatingMidUpdateSkipsLaterTasks(t *testing.T) {
	provider := NewMockTimeProvider(time.Unix(0, 0))
	clock := NewPausableClock(provider)
	tq := NewTaskQueue(clock)

	var ran []string
	tq.Schedule(time.Second, func() {
		ran = append(ran, "first")
		tq.Invalidate()
	})
	tq.Schedule(time.Second, func() { ran = append(ran, "second") })

	provider.Advance(2 * time.Second)
	tq.Update()

	if len(ran) != 1 || ran[0] != "first" {
		t.Fatalf("expected only the first task to run, got %v", ran)
	}
}

func TestTaskScheduledDuringUpdateWaitsForNextTick(t *testing.T) {
	provider := NewMockTimeProvider(time.Unix(0, 0))
	clock := NewPausableClock(provider)
	tq := NewTaskQueue(clock)

	chained := false
	tq.Schedule(0, func() {
		tq.Schedule(0, func() { chained = true })
	})

	tq.Update()
	if chained {
		t.Fatal("chained task ran in the same update")
	}
	tq.Update()
	if !chained {
		t.Fatal("chained task never ran")
	}
}

func TestPausedClockDefersTasks(t *testing.T) {
	provider := NewMockTimeProvider(time.Unix(0, 0))
	clock := NewPausableClock(provider)
	tq := NewTaskQueue(clock)

	fired := false
	tq.Schedule(time.Second, func() { fired = true })

	clock.Pause()
	provider.Advance(time.Minute)
	tq.Update()
	if fired {
		t.Fatal("task fired while the game clock was paused")
	}

	clock.Resume()
	provider.Advance(time.Second)
	tq.Update()
	if !fired {
		t.Fatal("task did not fire after resume")
	}
}
