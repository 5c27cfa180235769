package events

import (
	"log"
	"time"
)

// Handler processes a single published event
// Called synchronously during the dispatch phase
type Handler func(Event)

// Bus dispatches events to registered handlers
//
// Architecture:
//   - Single-threaded dispatch, no locking
//   - Multiple handlers can register for the same event type
//   - Handlers are invoked in registration order
//   - Copy-on-write handler lists: a handler may subscribe, cancel, or
//     publish during dispatch without corrupting the in-flight iteration
type Bus struct {
	handlers map[EventType][]handlerEntry
	nextID   uint64
}

type handlerEntry struct {
	id uint64
	fn Handler
}

// Subscription identifies one registered handler for cancellation.
// Go funcs are not comparable, so removal goes through this token.
type Subscription struct {
	bus *Bus
	typ EventType
	id  uint64
}

// NewBus creates an empty bus
func NewBus() *Bus {
	return &Bus{
		handlers: make(map[EventType][]handlerEntry),
	}
}

// Subscribe registers a handler for the given event type and returns its
// cancellation token
func (b *Bus) Subscribe(t EventType, h Handler) *Subscription {
	b.nextID++
	entry := handlerEntry{id: b.nextID, fn: h}

	prev := b.handlers[t]
	next := make([]handlerEntry, len(prev), len(prev)+1)
	copy(next, prev)
	b.handlers[t] = append(next, entry)

	return &Subscription{bus: b, typ: t, id: entry.id}
}

// Cancel removes the subscribed handler. Idempotent: cancelling twice, or
// after Clear, is a no-op. Safe to call during dispatch.
func (s *Subscription) Cancel() {
	if s == nil || s.bus == nil {
		return
	}
	b := s.bus
	s.bus = nil

	prev := b.handlers[s.typ]
	for i, entry := range prev {
		if entry.id == s.id {
			next := make([]handlerEntry, 0, len(prev)-1)
			next = append(next, prev[:i]...)
			next = append(next, prev[i+1:]...)
			if len(next) == 0 {
				delete(b.handlers, s.typ)
			} else {
				b.handlers[s.typ] = next
			}
			return
		}
	}
}

// Publish synchronously invokes all handlers registered for the event type,
// in registration order. A panicking handler is logged and skipped; the
// remaining handlers still run.
func (b *Bus) Publish(t EventType, payload any) {
	ev := Event{
		Type:      t,
		Payload:   payload,
		Timestamp: time.Now(),
	}

	// The slice header is a stable snapshot: mutation always swaps in a
	// fresh slice, so reentrant subscribe/cancel cannot shift entries
	// under this loop.
	for _, entry := range b.handlers[t] {
		b.invoke(entry.fn, ev)
	}
}

func (b *Bus) invoke(h Handler, ev Event) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("events: %s handler panic: %v", ev.Type.Name(), r)
		}
	}()
	h(ev)
}

// Clear drops the entire subscriber table. Outstanding subscriptions
// become no-op tokens.
func (b *Bus) Clear() {
	b.handlers = make(map[EventType][]handlerEntry)
}

// HandlerCount returns the number of handlers registered for the given type
func (b *Bus) HandlerCount(t EventType) int {
	return len(b.handlers[t])
}

// SubscriptionSet collects subscriptions owned by one component so its
// teardown cancels everything it registered. Guards against the
// duplicate-handler-on-re-entry defect: Enter paths subscribe through the
// set, Exit paths call CancelAll.
type SubscriptionSet struct {
	subs []*Subscription
}

// Subscribe registers on the bus and tracks the subscription
func (ss *SubscriptionSet) Subscribe(b *Bus, t EventType, h Handler) {
	ss.subs = append(ss.subs, b.Subscribe(t, h))
}

// CancelAll cancels every tracked subscription. Idempotent.
func (ss *SubscriptionSet) CancelAll() {
	for _, s := range ss.subs {
		s.Cancel()
	}
	ss.subs = ss.subs[:0]
}
