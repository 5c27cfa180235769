package game

import (
	"math"
	"time"

	"github.com/kettleram/cookie-crunch/config"
	"github.com/kettleram/cookie-crunch/events"
)

// ScoreEngine accumulates points, tracks answer accuracy, and applies the
// accuracy-driven multiplier. Consumes AnswerSubmitted when attached;
// publishes ScoreUpdated after every change.
type ScoreEngine struct {
	bus  *events.Bus
	cfg  config.Config
	subs events.SubscriptionSet

	score          int
	correctAnswers int
	totalQuestions int
}

// NewScoreEngine creates a zeroed engine
func NewScoreEngine(bus *events.Bus, cfg config.Config) *ScoreEngine {
	return &ScoreEngine{bus: bus, cfg: cfg}
}

// Attach subscribes to answer verdicts
func (se *ScoreEngine) Attach() {
	se.subs.Subscribe(se.bus, events.EventAnswerSubmitted, se.onAnswerSubmitted)
}

// Detach cancels all subscriptions. Idempotent.
func (se *ScoreEngine) Detach() {
	se.subs.CancelAll()
}

func (se *ScoreEngine) onAnswerSubmitted(ev events.Event) {
	p, ok := ev.Payload.(*events.AnswerSubmittedPayload)
	if !ok {
		return
	}
	if p.IsCorrect {
		se.AddAnswerScore(se.cfg.PointsPerCorrectAnswer, p.TimeTaken)
	} else {
		se.AddWrongAnswer()
	}
}

// AddRoundScore adds flat points with no multiplier
func (se *ScoreEngine) AddRoundScore(points int) {
	se.score += points
	se.publish(1.0)
}

// AddAnswerScore records a correct answer worth basePoints, multiplied by
// the accuracy ladder. Answers inside the fast-answer threshold earn the
// configured bonus on top.
func (se *ScoreEngine) AddAnswerScore(basePoints int, timeTaken time.Duration) {
	se.correctAnswers++
	se.totalQuestions++

	multiplier := Multiplier(se.Accuracy())
	points := int(math.Round(float64(basePoints) * multiplier))
	if timeTaken > 0 && timeTaken <= se.cfg.FastAnswerThreshold {
		points += se.cfg.FastAnswerBonus
	}
	se.score += points
	se.publish(multiplier)
}

// AddWrongAnswer records a missed question. No points.
func (se *ScoreEngine) AddWrongAnswer() {
	se.totalQuestions++
	se.publish(1.0)
}

func (se *ScoreEngine) publish(multiplier float64) {
	se.bus.Publish(events.EventScoreUpdated, &events.ScoreUpdatedPayload{
		NewScore:       se.score,
		TotalQuestions: se.totalQuestions,
		CorrectAnswers: se.correctAnswers,
		Multiplier:     multiplier,
	})
}

// Accuracy returns correct/total, 0 before any answer
func (se *ScoreEngine) Accuracy() float64 {
	if se.totalQuestions == 0 {
		return 0
	}
	return float64(se.correctAnswers) / float64(se.totalQuestions)
}

// Score returns the accumulated total
func (se *ScoreEngine) Score() int {
	return se.score
}

// Totals returns correct and total answer counts
func (se *ScoreEngine) Totals() (correct, total int) {
	return se.correctAnswers, se.totalQuestions
}

// Multiplier maps running accuracy to the score multiplier ladder
func Multiplier(accuracy float64) float64 {
	switch {
	case accuracy >= 1.0:
		return 2.0
	case accuracy > 0.8:
		return 1.5
	default:
		return 1.0
	}
}

// Grade maps final accuracy to a letter grade
func Grade(accuracy float64) string {
	switch {
	case accuracy >= 0.95:
		return "A+"
	case accuracy >= 0.9:
		return "A"
	case accuracy >= 0.85:
		return "B+"
	case accuracy >= 0.8:
		return "B"
	case accuracy >= 0.75:
		return "C+"
	case accuracy >= 0.7:
		return "C"
	case accuracy >= 0.6:
		return "D"
	default:
		return "F"
	}
}
