package flow

import (
	"github.com/kettleram/cookie-crunch/events"
	"github.com/kettleram/cookie-crunch/game"
)

// StateKind enumerates the game flow states
type StateKind int

const (
	StateMainMenu StateKind = iota
	StateQuestionSubmission
	StateLoading
	StateGameplay
	StateGameOver
	StatePracticeComplete
)

var stateNames = map[StateKind]string{
	StateMainMenu:           "MainMenu",
	StateQuestionSubmission: "QuestionSubmission",
	StateLoading:            "Loading",
	StateGameplay:           "Gameplay",
	StateGameOver:           "GameOver",
	StatePracticeComplete:   "PracticeComplete",
}

func (k StateKind) String() string {
	if name, ok := stateNames[k]; ok {
		return name
	}
	return "Unknown"
}

// State is a tagged variant: Kind selects which payload fields are live.
//   - Loading, Gameplay: Practice, Queue
//   - GameOver, PracticeComplete: Result
type State struct {
	Kind     StateKind
	Practice bool
	Queue    []game.Question
	Result   *events.GameOverPayload
}

// InputKind enumerates the state machine inputs
type InputKind int

const (
	// InputSelectPractice starts an untimed, unlimited-lives run
	InputSelectPractice InputKind = iota
	// InputSelectTest opens the question submission form
	InputSelectTest
	// InputSubmitQuestions carries the curated queue into a test run
	InputSubmitQuestions
	// InputBack returns to the menu, aborting a run in progress
	InputBack
	// InputLoadingDone moves from Loading into Gameplay
	InputLoadingDone
	// InputSessionEnded carries the results out of Gameplay
	InputSessionEnded
	// InputRetry restarts in the same mode from a results screen
	InputRetry
	// InputToMenu leaves a results screen for the menu
	InputToMenu
)

var inputNames = map[InputKind]string{
	InputSelectPractice:  "SelectPractice",
	InputSelectTest:      "SelectTest",
	InputSubmitQuestions: "SubmitQuestions",
	InputBack:            "Back",
	InputLoadingDone:     "LoadingDone",
	InputSessionEnded:    "SessionEnded",
	InputRetry:           "Retry",
	InputToMenu:          "ToMenu",
}

func (k InputKind) String() string {
	if name, ok := inputNames[k]; ok {
		return name
	}
	return "Unknown"
}

// Input feeds one signal into the transition function
type Input struct {
	Kind   InputKind
	Queue  []game.Question          // SubmitQuestions
	Result *events.GameOverPayload  // SessionEnded
}

// CommandKind enumerates the side effects a transition requests
type CommandKind int

const (
	// CmdShowScreen asks the presenter to display the new state
	CmdShowScreen CommandKind = iota
	// CmdStartSession builds and starts a gameplay session
	CmdStartSession
	// CmdStopSession tears the current session down
	CmdStopSession
)

// Command is one side effect for the driver to execute, in order
type Command struct {
	Kind CommandKind
}
