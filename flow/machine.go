package flow

import (
	"errors"
	"fmt"
)

// ErrInvalidTransition marks a (state, input) pair outside the table.
// Reaching it at runtime is a programming defect, not a player error.
var ErrInvalidTransition = errors.New("invalid game flow transition")

// Transition is the pure flow function: no I/O, no subscriptions, only
// the next state and the commands the driver must execute. Keeping the
// side effects out of here makes every path table-testable.
func Transition(s State, in Input) (State, []Command, error) {
	switch s.Kind {

	case StateMainMenu:
		switch in.Kind {
		case InputSelectPractice:
			return State{Kind: StateLoading, Practice: true},
				[]Command{{Kind: CmdShowScreen}}, nil
		case InputSelectTest:
			return State{Kind: StateQuestionSubmission},
				[]Command{{Kind: CmdShowScreen}}, nil
		}

	case StateQuestionSubmission:
		switch in.Kind {
		case InputSubmitQuestions:
			if len(in.Queue) == 0 {
				return s, nil, fmt.Errorf("%w: %s without questions", ErrInvalidTransition, in.Kind)
			}
			return State{Kind: StateLoading, Practice: false, Queue: in.Queue},
				[]Command{{Kind: CmdShowScreen}}, nil
		case InputBack:
			return State{Kind: StateMainMenu},
				[]Command{{Kind: CmdShowScreen}}, nil
		}

	case StateLoading:
		if in.Kind == InputLoadingDone {
			return State{Kind: StateGameplay, Practice: s.Practice, Queue: s.Queue},
				[]Command{{Kind: CmdStartSession}, {Kind: CmdShowScreen}}, nil
		}

	case StateGameplay:
		switch in.Kind {
		case InputSessionEnded:
			kind := StateGameOver
			if s.Practice {
				kind = StatePracticeComplete
			}
			return State{Kind: kind, Practice: s.Practice, Result: in.Result},
				[]Command{{Kind: CmdStopSession}, {Kind: CmdShowScreen}}, nil
		case InputBack:
			return State{Kind: StateMainMenu},
				[]Command{{Kind: CmdStopSession}, {Kind: CmdShowScreen}}, nil
		}

	case StateGameOver:
		switch in.Kind {
		case InputRetry:
			return State{Kind: StateQuestionSubmission},
				[]Command{{Kind: CmdShowScreen}}, nil
		case InputToMenu:
			return State{Kind: StateMainMenu},
				[]Command{{Kind: CmdShowScreen}}, nil
		}

	case StatePracticeComplete:
		switch in.Kind {
		case InputRetry:
			return State{Kind: StateLoading, Practice: true},
				[]Command{{Kind: CmdShowScreen}}, nil
		case InputToMenu:
			return State{Kind: StateMainMenu},
				[]Command{{Kind: CmdShowScreen}}, nil
		}
	}

	return s, nil, fmt.Errorf("%w: %s in %s", ErrInvalidTransition, in.Kind, s.Kind)
}
