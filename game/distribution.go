package game

import (
	"log"
	"time"

	"github.com/kettleram/cookie-crunch/events"
)

// distributionPhase tracks the per-question validator lifecycle
type distributionPhase int

const (
	phaseIdle distributionPhase = iota
	phaseCollecting
	phaseSubmitted
)

// Validator enforces the distribution rule: give cookies to exactly
// divisor distinct monsters, each ending with exactly quotient cookies.
//
// Drops are validated incrementally. Selecting more monsters than the
// divisor allows fails immediately. A per-monster over-count does not;
// counts are judged strictly at submit time.
type Validator struct {
	bus        *events.Bus
	clock      *PausableClock
	subs       events.SubscriptionSet
	maxMonster int

	phase    distributionPhase
	divisor  int
	quotient int

	cookieCounts  map[int]int // monsterID -> cookies received
	questionStart time.Time
}

// NewValidator creates a detached validator. Attach wires it to the bus.
func NewValidator(bus *events.Bus, clock *PausableClock, maxMonsters int) *Validator {
	return &Validator{
		bus:        bus,
		clock:      clock,
		maxMonster: maxMonsters - 1,
		phase:      phaseIdle,
	}
}

// Attach subscribes to question and drop events
func (v *Validator) Attach() {
	v.subs.Subscribe(v.bus, events.EventQuestionGenerated, v.onQuestionGenerated)
	v.subs.Subscribe(v.bus, events.EventCookieDropped, v.onCookieDropped)
}

// Detach cancels all subscriptions. Idempotent.
func (v *Validator) Detach() {
	v.subs.CancelAll()
	v.phase = phaseIdle
}

func (v *Validator) onQuestionGenerated(ev events.Event) {
	p, ok := ev.Payload.(*events.QuestionGeneratedPayload)
	if !ok {
		return
	}
	v.divisor = p.Divisor
	v.quotient = p.Quotient
	v.cookieCounts = make(map[int]int, p.Divisor)
	v.phase = phaseCollecting
	v.questionStart = v.clock.Now()
}

func (v *Validator) onCookieDropped(ev events.Event) {
	p, ok := ev.Payload.(*events.CookieDroppedPayload)
	if !ok {
		return
	}
	v.HandleDrop(p.MonsterID)
}

// HandleDrop applies one cookie drop. Dropping on a new monster once
// divisor monsters already hold cookies is an over-selection: the answer
// fails immediately, without waiting for submit.
func (v *Validator) HandleDrop(monsterID int) {
	if v.phase != phaseCollecting {
		return
	}
	if monsterID < 0 || monsterID > v.maxMonster {
		log.Printf("game: drop on unknown monster %d ignored", monsterID)
		return
	}

	if _, has := v.cookieCounts[monsterID]; !has && len(v.cookieCounts) >= v.divisor {
		v.publishVerdict(false, -1)
		return
	}

	v.cookieCounts[monsterID]++
	v.bus.Publish(events.EventSoundRequest, &events.SoundRequestPayload{Sound: events.SoundDrop})
}

// Submit evaluates the distribution. Correct iff exactly divisor
// monsters hold cookies and every one holds exactly quotient. Calling
// again after the verdict is out is a no-op.
func (v *Validator) Submit() {
	if v.phase != phaseCollecting {
		return
	}

	if len(v.cookieCounts) != v.divisor {
		v.publishVerdict(false, v.uniformCount())
		return
	}
	for _, count := range v.cookieCounts {
		if count != v.quotient {
			v.publishVerdict(false, v.uniformCount())
			return
		}
	}
	v.publishVerdict(true, v.quotient)
}

// uniformCount returns the shared per-monster count when every chosen
// monster holds the same number of cookies, -1 otherwise
func (v *Validator) uniformCount() int {
	answer := -1
	for _, count := range v.cookieCounts {
		if answer == -1 {
			answer = count
		} else if count != answer {
			return -1
		}
	}
	return answer
}

func (v *Validator) publishVerdict(correct bool, submitted int) {
	v.phase = phaseSubmitted

	sound := events.SoundWrong
	if correct {
		sound = events.SoundCorrect
	}
	v.bus.Publish(events.EventSoundRequest, &events.SoundRequestPayload{Sound: sound})

	v.bus.Publish(events.EventAnswerSubmitted, &events.AnswerSubmittedPayload{
		IsCorrect:       correct,
		SubmittedAnswer: submitted,
		CorrectAnswer:   v.quotient,
		TimeTaken:       v.clock.Now().Sub(v.questionStart),
	})
}

// CookieCount returns the cookies currently held by a monster
func (v *Validator) CookieCount(monsterID int) int {
	return v.cookieCounts[monsterID]
}

// ChosenMonsters returns how many distinct monsters hold cookies
func (v *Validator) ChosenMonsters() int {
	return len(v.cookieCounts)
}

// Collecting reports whether drops are currently accepted
func (v *Validator) Collecting() bool {
	return v.phase == phaseCollecting
}
