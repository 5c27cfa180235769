package events

import (
	"testing"
)

func TestPublishInvokesInRegistrationOrder(t *testing.T) {
	bus := NewBus()
	var order []int

	bus.Subscribe(EventScoreUpdated, func(Event) { order = append(order, 1) })
	bus.Subscribe(EventScoreUpdated, func(Event) { order = append(order, 2) })
	bus.Subscribe(EventScoreUpdated, func(Event) { order = append(order, 3) })

	bus.Publish(EventScoreUpdated, nil)

	if len(order) != 3 {
		t.Fatalf("expected 3 invocations, got %d", len(order))
	}
	for i, v := range order {
		if v != i+1 {
			t.Fatalf("out-of-order invocation: %v", order)
		}
	}
}

func TestSubscribeThenCancelYieldsZeroInvocations(t *testing.T) {
	bus := NewBus()
	calls := 0

	sub := bus.Subscribe(EventCookieDropped, func(Event) { calls++ })
	sub.Cancel()

	bus.Publish(EventCookieDropped, &CookieDroppedPayload{MonsterID: 1})

	if calls != 0 {
		t.Fatalf("cancelled handler invoked %d times", calls)
	}
	if bus.HandlerCount(EventCookieDropped) != 0 {
		t.Fatalf("handler table not empty after cancel")
	}
}

func TestCancelIsIdempotent(t *testing.T) {
	bus := NewBus()
	calls := 0

	sub := bus.Subscribe(EventCookieDropped, func(Event) { calls++ })
	keep := bus.Subscribe(EventCookieDropped, func(Event) { calls++ })

	sub.Cancel()
	sub.Cancel()
	bus.Clear()
	sub.Cancel()
	keep.Cancel() // table already cleared, must not panic

	bus.Publish(EventCookieDropped, nil)
	if calls != 0 {
		t.Fatalf("expected no invocations after teardown, got %d", calls)
	}
}

func TestPanickingHandlerDoesNotBlockOthers(t *testing.T) {
	bus := NewBus()
	ran := false

	bus.Subscribe(EventAnswerSubmitted, func(Event) { panic("boom") })
	bus.Subscribe(EventAnswerSubmitted, func(Event) { ran = true })

	bus.Publish(EventAnswerSubmitted, &AnswerSubmittedPayload{IsCorrect: true})

	if !ran {
		t.Fatal("handler after panicking handler did not run")
	}
}

func TestReentrantPublishDuringDispatch(t *testing.T) {
	bus := NewBus()
	var got []EventType

	bus.Subscribe(EventAnswerSubmitted, func(Event) {
		got = append(got, EventAnswerSubmitted)
		bus.Publish(EventScoreUpdated, nil)
	})
	bus.Subscribe(EventScoreUpdated, func(Event) {
		got = append(got, EventScoreUpdated)
	})
	bus.Subscribe(EventAnswerSubmitted, func(Event) {
		got = append(got, EventAnswerSubmitted)
	})

	bus.Publish(EventAnswerSubmitted, nil)

	want := []EventType{EventAnswerSubmitted, EventScoreUpdated, EventAnswerSubmitted}
	if len(got) != len(want) {
		t.Fatalf("expected %d dispatches, got %d: %v", len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("dispatch order mismatch at %d: got %v", i, got)
		}
	}
}

func TestCancelDuringDispatchPreservesSnapshot(t *testing.T) {
	bus := NewBus()
	var secondRan bool
	var first *Subscription

	first = bus.Subscribe(EventTimerUpdated, func(Event) {
		first.Cancel()
	})
	bus.Subscribe(EventTimerUpdated, func(Event) { secondRan = true })

	bus.Publish(EventTimerUpdated, nil)

	if !secondRan {
		t.Fatal("second handler skipped after in-dispatch cancel")
	}
	if bus.HandlerCount(EventTimerUpdated) != 1 {
		t.Fatalf("expected 1 remaining handler, got %d", bus.HandlerCount(EventTimerUpdated))
	}
}

func TestSubscriptionSetCancelAll(t *testing.T) {
	bus := NewBus()
	calls := 0

	var ss SubscriptionSet
	ss.Subscribe(bus, EventLivesUpdated, func(Event) { calls++ })
	ss.Subscribe(bus, EventTimerUpdated, func(Event) { calls++ })

	ss.CancelAll()
	ss.CancelAll()

	bus.Publish(EventLivesUpdated, nil)
	bus.Publish(EventTimerUpdated, nil)

	if calls != 0 {
		t.Fatalf("handlers ran after CancelAll: %d", calls)
	}
}

func TestEventTypeNames(t *testing.T) {
	for et := EventType(0); et < eventTypeCount; et++ {
		if et.Name() == "Unknown" {
			t.Fatalf("event type %d missing registry name", et)
		}
		back, ok := TypeByName(et.Name())
		if !ok || back != et {
			t.Fatalf("round-trip failed for %s", et.Name())
		}
	}
}
