package game

import "github.com/kettleram/cookie-crunch/events"

// LivesEngine tracks remaining lives. A starting count of zero is the
// unlimited sentinel (practice mode): LoseLife becomes a no-op and
// LivesDepleted is never published.
type LivesEngine struct {
	bus  *events.Bus
	subs events.SubscriptionSet

	lives     int
	unlimited bool
	depleted  bool
}

// NewLivesEngine creates an engine with the configured life count
func NewLivesEngine(bus *events.Bus, lives int) *LivesEngine {
	return &LivesEngine{
		bus:       bus,
		lives:     lives,
		unlimited: lives == 0,
	}
}

// Attach subscribes to answer verdicts; a wrong answer costs one life
func (le *LivesEngine) Attach() {
	le.subs.Subscribe(le.bus, events.EventAnswerSubmitted, le.onAnswerSubmitted)
}

// Detach cancels all subscriptions. Idempotent.
func (le *LivesEngine) Detach() {
	le.subs.CancelAll()
}

func (le *LivesEngine) onAnswerSubmitted(ev events.Event) {
	p, ok := ev.Payload.(*events.AnswerSubmittedPayload)
	if !ok {
		return
	}
	if !p.IsCorrect {
		le.LoseLife()
	}
}

// LoseLife decrements the count, floor-clamped at zero. The transition
// to zero publishes LivesDepleted exactly once.
func (le *LivesEngine) LoseLife() {
	if le.unlimited || le.lives == 0 {
		return
	}
	le.lives--
	le.bus.Publish(events.EventLivesUpdated, &events.LivesUpdatedPayload{RemainingLives: le.lives})

	if le.lives == 0 && !le.depleted {
		le.depleted = true
		le.bus.Publish(events.EventLivesDepleted, nil)
	}
}

// Remaining returns the current life count
func (le *LivesEngine) Remaining() int {
	return le.lives
}

// Unlimited reports whether the engine is the practice-mode no-op
func (le *LivesEngine) Unlimited() bool {
	return le.unlimited
}
