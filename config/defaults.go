package config

import "time"

// Session Shape
const (
	// DefaultTotalQuestions is the number of questions per session
	DefaultTotalQuestions = 10

	// DefaultMaxMonsters is the number of monsters on the board,
	// the upper bound for any divisor
	DefaultMaxMonsters = 6
)

// Failure Model
const (
	// DefaultTestTimeLimit is the test-mode session clock
	DefaultTestTimeLimit = 3 * time.Minute

	// DefaultTestLives is the test-mode life count
	DefaultTestLives = 3
)

// Scoring
const (
	// DefaultPointsPerAnswer is the base score for a correct answer
	DefaultPointsPerAnswer = 100

	// DefaultFastAnswerBonus is added when the answer lands within
	// the fast-answer threshold
	DefaultFastAnswerBonus = 25

	// DefaultFastAnswerThreshold is the cut-off for the speed bonus
	DefaultFastAnswerThreshold = 10 * time.Second
)

// Question Constraints
const (
	// DefaultMinDividend is the smallest cookie total handed out
	DefaultMinDividend = 4

	// DefaultMaxDividend is the largest cookie total handed out
	DefaultMaxDividend = 20

	// MaxQuotient caps cookies-per-monster for gameplay balance
	MaxQuotient = 6
)

// Pacing
const (
	// FeedbackDelay is how long answer feedback stays on screen before
	// the next question appears
	FeedbackDelay = 1500 * time.Millisecond

	// GenerationRetryBudget bounds the search for an unused question
	// before the used set is cleared and a repeat accepted
	GenerationRetryBudget = 50
)
