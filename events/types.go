package events

import (
	"time"
)

// EventType identifies a game event kind
type EventType int

const (
	// EventQuestionGenerated announces the active division question
	// Trigger: QuestionGenerator (queue pop or random generation)
	// Consumer: DistributionValidator, render, audio | Payload: *QuestionGeneratedPayload
	EventQuestionGenerated EventType = iota

	// EventCookieDropped signals a cookie landing on a monster
	// Trigger: input layer (drag/drop or keyboard)
	// Consumer: DistributionValidator | Payload: *CookieDroppedPayload
	EventCookieDropped

	// EventAnswerSubmitted carries the verdict for the current question
	// Trigger: DistributionValidator on submit or over-selection
	// Consumer: ScoreEngine, LivesEngine, Session, render | Payload: *AnswerSubmittedPayload
	EventAnswerSubmitted

	// EventScoreUpdated signals a change in the running score
	// Trigger: ScoreEngine
	// Consumer: render | Payload: *ScoreUpdatedPayload
	EventScoreUpdated

	// EventLivesUpdated signals a change in remaining lives
	// Trigger: LivesEngine
	// Consumer: render | Payload: *LivesUpdatedPayload
	EventLivesUpdated

	// EventLivesDepleted signals the last life was lost
	// Trigger: LivesEngine reaching zero
	// Consumer: Session (termination) | Payload: nil
	EventLivesDepleted

	// EventTimerUpdated carries remaining time, published every tick while active
	// Trigger: TimerEngine
	// Consumer: render | Payload: *TimerUpdatedPayload
	EventTimerUpdated

	// EventTimerExpired signals the session clock reached zero, published once
	// Trigger: TimerEngine
	// Consumer: Session (termination) | Payload: nil
	EventTimerExpired

	// EventQuestionAdvanced signals the board should clear for the next question
	// Trigger: Session after the post-answer feedback delay
	// Consumer: render | Payload: nil
	EventQuestionAdvanced

	// EventGameOver carries the final session results
	// Trigger: Session teardown
	// Consumer: flow driver, render | Payload: *GameOverPayload
	EventGameOver

	// EventSoundRequest asks the audio layer to play a clip
	// Trigger: any engine
	// Consumer: audio | Payload: *SoundRequestPayload
	EventSoundRequest

	eventTypeCount
)

// Event is a single published notification
type Event struct {
	Type      EventType
	Payload   any
	Timestamp time.Time
}
