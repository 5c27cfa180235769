package game

import (
	"errors"
	"fmt"
	"log"
	"math/rand"

	"github.com/kettleram/cookie-crunch/config"
	"github.com/kettleram/cookie-crunch/events"
)

// Question is one division problem: hand out Dividend cookies so that
// Divisor monsters end with Quotient cookies each.
// Immutable once published.
type Question struct {
	Dividend int
	Divisor  int
	Quotient int
}

// QuestionKey identifies a question for uniqueness tracking
type QuestionKey struct {
	Dividend int
	Divisor  int
}

// Key returns the uniqueness key for the question
func (q Question) Key() QuestionKey {
	return QuestionKey{Dividend: q.Dividend, Divisor: q.Divisor}
}

var (
	// ErrNoViableDivisor means no allowed divisor admits a quotient in
	// [1, MaxQuotient] within the configured dividend range
	ErrNoViableDivisor = errors.New("no allowed divisor fits the dividend range")

	// ErrQueueExhausted means the curated queue has no more questions
	ErrQueueExhausted = errors.New("submitted question queue exhausted")
)

// Generator produces the next question, preferring an operator-curated
// queue (test mode) and falling back to constrained randomization.
type Generator struct {
	bus *events.Bus
	cfg config.Config
	rng *rand.Rand

	queue []Question
}

// NewGenerator creates a generator on the given bus and configuration.
// rng is injected so tests can seed it.
func NewGenerator(bus *events.Bus, cfg config.Config, rng *rand.Rand) *Generator {
	return &Generator{bus: bus, cfg: cfg, rng: rng}
}

// ValidateQuestion checks an operator-submitted question against the
// session constraints. The returned error carries the rejection reason.
func ValidateQuestion(cfg config.Config, q Question) error {
	if q.Divisor < 1 {
		return fmt.Errorf("divisor %d must be at least 1", q.Divisor)
	}
	if q.Dividend != q.Divisor*q.Quotient {
		return fmt.Errorf("%d does not divide evenly by %d", q.Dividend, q.Divisor)
	}
	if q.Quotient < 1 || q.Quotient > config.MaxQuotient {
		return fmt.Errorf("cookies per monster %d outside [1,%d]", q.Quotient, config.MaxQuotient)
	}
	if q.Dividend < cfg.MinDividend || q.Dividend > cfg.MaxDividend {
		return fmt.Errorf("cookie total %d outside [%d,%d]", q.Dividend, cfg.MinDividend, cfg.MaxDividend)
	}
	allowed := false
	for _, d := range cfg.AllowedDivisors {
		if d == q.Divisor {
			allowed = true
			break
		}
	}
	if !allowed {
		return fmt.Errorf("divisor %d not in allowed set %v", q.Divisor, cfg.AllowedDivisors)
	}
	return nil
}

// SubmitQueue installs the curated question sequence, rejecting any
// entry that violates the session constraints
func (g *Generator) SubmitQueue(questions []Question) error {
	for i, q := range questions {
		if err := ValidateQuestion(g.cfg, q); err != nil {
			return fmt.Errorf("question %d: %w", i+1, err)
		}
	}
	g.queue = append([]Question(nil), questions...)
	return nil
}

// HasSubmittedQueue reports whether curated questions remain
func (g *Generator) HasSubmittedQueue() bool {
	return len(g.queue) > 0
}

// NextFromQueue pops the front of the curated sequence
func (g *Generator) NextFromQueue() (Question, error) {
	if len(g.queue) == 0 {
		return Question{}, ErrQueueExhausted
	}
	q := g.queue[0]
	g.queue = g.queue[1:]
	return q, nil
}

// Next produces the next question, from the queue when available,
// otherwise by constrained randomization, records it in used, and
// publishes QuestionGenerated.
func (g *Generator) Next(used map[QuestionKey]bool) (Question, error) {
	var q Question
	var err error
	if g.HasSubmittedQueue() {
		q, err = g.NextFromQueue()
	} else {
		q, err = g.GenerateRandom(used)
	}
	if err != nil {
		return Question{}, err
	}

	used[q.Key()] = true
	g.bus.Publish(events.EventQuestionGenerated, &events.QuestionGeneratedPayload{
		Dividend: q.Dividend,
		Divisor:  q.Divisor,
		Quotient: q.Quotient,
	})
	return q, nil
}

// GenerateRandom picks a divisor uniformly from the allowed set, then a
// quotient uniformly from the range that keeps the dividend within
// bounds. Retries up to the budget to avoid a (dividend, divisor) pair
// already in used; when the budget runs out the used set is cleared and
// the last pair accepted, so a repeat is possible but generation never
// fails on a busy session.
func (g *Generator) GenerateRandom(used map[QuestionKey]bool) (Question, error) {
	viable := g.viableDivisors()
	if len(viable) == 0 {
		return Question{}, ErrNoViableDivisor
	}

	var q Question
	for attempt := 0; attempt < config.GenerationRetryBudget; attempt++ {
		q = g.roll(viable)
		if !used[q.Key()] {
			return q, nil
		}
	}

	log.Printf("game: unique question retry budget exhausted, clearing %d used entries", len(used))
	for k := range used {
		delete(used, k)
	}
	return q, nil
}

func (g *Generator) roll(viable []int) Question {
	divisor := viable[g.rng.Intn(len(viable))]
	lo, hi := g.quotientRange(divisor)
	quotient := lo + g.rng.Intn(hi-lo+1)
	return Question{
		Dividend: divisor * quotient,
		Divisor:  divisor,
		Quotient: quotient,
	}
}

// quotientRange returns the inclusive quotient bounds for a divisor:
// [ceil(minDividend/divisor), min(MaxQuotient, maxDividend/divisor)],
// floored at 1
func (g *Generator) quotientRange(divisor int) (int, int) {
	lo := (g.cfg.MinDividend + divisor - 1) / divisor
	if lo < 1 {
		lo = 1
	}
	hi := g.cfg.MaxDividend / divisor
	if hi > config.MaxQuotient {
		hi = config.MaxQuotient
	}
	return lo, hi
}

func (g *Generator) viableDivisors() []int {
	viable := make([]int, 0, len(g.cfg.AllowedDivisors))
	for _, d := range g.cfg.AllowedDivisors {
		if lo, hi := g.quotientRange(d); lo <= hi {
			viable = append(viable, d)
		}
	}
	return viable
}
