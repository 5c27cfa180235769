package events

import "time"

// SoundType selects a clip for EventSoundRequest
type SoundType int

const (
	SoundCorrect SoundType = iota // Answer verified correct
	SoundWrong                    // Wrong answer or over-selection buzz
	SoundDrop                     // Cookie landing on a monster
	SoundTick                     // Timer warning under ten seconds
	SoundGameOver                 // Session ended
	SoundTypeCount
)

// QuestionGeneratedPayload carries the active question.
// Invariant: Dividend == Divisor * Quotient.
type QuestionGeneratedPayload struct {
	Dividend int
	Divisor  int
	Quotient int
}

// CookieDroppedPayload identifies the receiving monster
type CookieDroppedPayload struct {
	MonsterID int
}

// AnswerSubmittedPayload carries the verdict for one question
type AnswerSubmittedPayload struct {
	IsCorrect       bool
	SubmittedAnswer int // cookies per chosen monster, -1 when indeterminate
	CorrectAnswer   int // the quotient
	TimeTaken       time.Duration
}

// ScoreUpdatedPayload carries the running score state
type ScoreUpdatedPayload struct {
	NewScore       int
	TotalQuestions int
	CorrectAnswers int
	Multiplier     float64
}

// LivesUpdatedPayload carries the remaining life count
type LivesUpdatedPayload struct {
	RemainingLives int
}

// TimerUpdatedPayload carries the remaining session time
type TimerUpdatedPayload struct {
	RemainingTime time.Duration
}

// GameOverPayload carries the final session results
type GameOverPayload struct {
	FinalScore   int
	Accuracy     float64
	Grade        string
	HighScore    int
	NewHighScore bool
	Practice     bool
}

// SoundRequestPayload selects the clip to play
type SoundRequestPayload struct {
	Sound SoundType
}
