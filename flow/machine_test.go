package flow

import (
	"errors"
	"testing"

	"github.com/kettleram/cookie-crunch/events"
	"github.com/kettleram/cookie-crunch/game"
)

func TestTransitionTable(t *testing.T) {
	queue := []game.Question{{Dividend: 6, Divisor: 3, Quotient: 2}}
	result := &events.GameOverPayload{FinalScore: 400}

	tests := []struct {
		name     string
		from     State
		in       Input
		wantKind StateKind
		wantCmds []CommandKind
	}{
		{
			name:     "menu to practice loading",
			from:     State{Kind: StateMainMenu},
			in:       Input{Kind: InputSelectPractice},
			wantKind: StateLoading,
			wantCmds: []CommandKind{CmdShowScreen},
		},
		{
			name:     "menu to question submission",
			from:     State{Kind: StateMainMenu},
			in:       Input{Kind: InputSelectTest},
			wantKind: StateQuestionSubmission,
			wantCmds: []CommandKind{CmdShowScreen},
		},
		{
			name:     "submission to test loading",
			from:     State{Kind: StateQuestionSubmission},
			in:       Input{Kind: InputSubmitQuestions, Queue: queue},
			wantKind: StateLoading,
			wantCmds: []CommandKind{CmdShowScreen},
		},
		{
			name:     "submission back to menu",
			from:     State{Kind: StateQuestionSubmission},
			in:       Input{Kind: InputBack},
			wantKind: StateMainMenu,
			wantCmds: []CommandKind{CmdShowScreen},
		},
		{
			name:     "loading into gameplay starts session",
			from:     State{Kind: StateLoading, Practice: true},
			in:       Input{Kind: InputLoadingDone},
			wantKind: StateGameplay,
			wantCmds: []CommandKind{CmdStartSession, CmdShowScreen},
		},
		{
			name:     "test gameplay ends at game over",
			from:     State{Kind: StateGameplay, Practice: false},
			in:       Input{Kind: InputSessionEnded, Result: result},
			wantKind: StateGameOver,
			wantCmds: []CommandKind{CmdStopSession, CmdShowScreen},
		},
		{
			name:     "practice gameplay ends at practice complete",
			from:     State{Kind: StateGameplay, Practice: true},
			in:       Input{Kind: InputSessionEnded, Result: result},
			wantKind: StatePracticeComplete,
			wantCmds: []CommandKind{CmdStopSession, CmdShowScreen},
		},
		{
			name:     "abandoning gameplay stops the session",
			from:     State{Kind: StateGameplay},
			in:       Input{Kind: InputBack},
			wantKind: StateMainMenu,
			wantCmds: []CommandKind{CmdStopSession, CmdShowScreen},
		},
		{
			name:     "game over retry reopens submission",
			from:     State{Kind: StateGameOver},
			in:       Input{Kind: InputRetry},
			wantKind: StateQuestionSubmission,
			wantCmds: []CommandKind{CmdShowScreen},
		},
		{
			name:     "practice retry reloads practice",
			from:     State{Kind: StatePracticeComplete},
			in:       Input{Kind: InputRetry},
			wantKind: StateLoading,
			wantCmds: []CommandKind{CmdShowScreen},
		},
		{
			name:     "results to menu",
			from:     State{Kind: StateGameOver},
			in:       Input{Kind: InputToMenu},
			wantKind: StateMainMenu,
			wantCmds: []CommandKind{CmdShowScreen},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			next, cmds, err := Transition(tc.from, tc.in)
			if err != nil {
				t.Fatalf("transition failed: %v", err)
			}
			if next.Kind != tc.wantKind {
				t.Fatalf("next state = %s, want %s", next.Kind, tc.wantKind)
			}
			if len(cmds) != len(tc.wantCmds) {
				t.Fatalf("commands = %v, want %v", cmds, tc.wantCmds)
			}
			for i := range cmds {
				if cmds[i].Kind != tc.wantCmds[i] {
					t.Fatalf("command %d = %v, want %v", i, cmds[i].Kind, tc.wantCmds[i])
				}
			}
		})
	}
}

func TestTransitionPreservesPayloads(t *testing.T) {
	queue := []game.Question{
		{Dividend: 6, Divisor: 3, Quotient: 2},
		{Dividend: 8, Divisor: 2, Quotient: 4},
	}

	loading, _, err := Transition(State{Kind: StateQuestionSubmission},
		Input{Kind: InputSubmitQuestions, Queue: queue})
	if err != nil {
		t.Fatal(err)
	}
	if loading.Practice {
		t.Fatal("submitted queue implies test mode")
	}

	gameplay, _, err := Transition(loading, Input{Kind: InputLoadingDone})
	if err != nil {
		t.Fatal(err)
	}
	if len(gameplay.Queue) != 2 {
		t.Fatalf("queue lost across loading: %v", gameplay.Queue)
	}

	result := &events.GameOverPayload{FinalScore: 123, Accuracy: 0.5}
	over, _, err := Transition(gameplay, Input{Kind: InputSessionEnded, Result: result})
	if err != nil {
		t.Fatal(err)
	}
	if over.Result == nil || over.Result.FinalScore != 123 {
		t.Fatalf("result payload lost: %+v", over.Result)
	}
}

func TestInvalidTransitionsAreRejected(t *testing.T) {
	cases := []struct {
		from State
		in   Input
	}{
		{State{Kind: StateMainMenu}, Input{Kind: InputSubmitQuestions}},
		{State{Kind: StateMainMenu}, Input{Kind: InputSessionEnded}},
		{State{Kind: StateGameplay}, Input{Kind: InputSelectPractice}},
		{State{Kind: StateGameOver}, Input{Kind: InputSessionEnded}},
		{State{Kind: StateQuestionSubmission}, Input{Kind: InputSubmitQuestions}}, // empty queue
		{State{Kind: StateLoading}, Input{Kind: InputBack}},
	}

	for i, tc := range cases {
		next, cmds, err := Transition(tc.from, tc.in)
		if !errors.Is(err, ErrInvalidTransition) {
			t.Fatalf("case %d: expected ErrInvalidTransition, got %v", i, err)
		}
		if next.Kind != tc.from.Kind {
			t.Fatalf("case %d: rejected transition changed state to %s", i, next.Kind)
		}
		if len(cmds) != 0 {
			t.Fatalf("case %d: rejected transition returned commands %v", i, cmds)
		}
	}
}
