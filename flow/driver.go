package flow

import (
	"log"
	"math/rand"

	"github.com/kettleram/cookie-crunch/config"
	"github.com/kettleram/cookie-crunch/events"
	"github.com/kettleram/cookie-crunch/game"
)

// Presenter is the flow machine's hook into the presentation layer,
// notified whenever a new state is entered
type Presenter interface {
	ShowScreen(State)
}

// Driver owns the current flow state and executes the commands each
// transition returns: session lifecycle and presentation calls. All
// dependencies are injected; nothing here is global.
type Driver struct {
	bus       *events.Bus
	cfg       config.Config
	provider  game.TimeProvider
	store     game.HighScoreStore
	rng       *rand.Rand
	presenter Presenter

	state   State
	session *game.Session
}

// NewDriver creates a driver at the main menu
func NewDriver(bus *events.Bus, cfg config.Config, provider game.TimeProvider,
	store game.HighScoreStore, rng *rand.Rand, presenter Presenter) *Driver {
	return &Driver{
		bus:       bus,
		cfg:       cfg,
		provider:  provider,
		store:     store,
		rng:       rng,
		presenter: presenter,
		state:     State{Kind: StateMainMenu},
	}
}

// Start shows the initial screen
func (d *Driver) Start() {
	if d.presenter != nil {
		d.presenter.ShowScreen(d.state)
	}
}

// State returns the current flow state
func (d *Driver) State() State {
	return d.state
}

// Session returns the running gameplay session, nil outside Gameplay
func (d *Driver) Session() *game.Session {
	return d.session
}

// Public entry points, one per menu-driven signal

func (d *Driver) OnPracticeMode() { d.apply(Input{Kind: InputSelectPractice}) }
func (d *Driver) OnTestMode()     { d.apply(Input{Kind: InputSelectTest}) }
func (d *Driver) OnBack()         { d.apply(Input{Kind: InputBack}) }
func (d *Driver) OnRetry()        { d.apply(Input{Kind: InputRetry}) }
func (d *Driver) OnToMenu()       { d.apply(Input{Kind: InputToMenu}) }

// OnQuestionsSubmitted carries the curated queue out of the form
func (d *Driver) OnQuestionsSubmitted(questions []game.Question) {
	d.apply(Input{Kind: InputSubmitQuestions, Queue: questions})
}

// Update advances the running session by one tick
func (d *Driver) Update() {
	if d.session != nil && d.state.Kind == StateGameplay {
		d.session.Update()
	}
}

func (d *Driver) apply(in Input) {
	next, commands, err := Transition(d.state, in)
	if err != nil {
		// Late or duplicated signals land here; log and hold state
		log.Printf("flow: %v", err)
		return
	}
	d.state = next

	for _, cmd := range commands {
		switch cmd.Kind {
		case CmdStartSession:
			d.startSession(next)
		case CmdStopSession:
			d.stopSession()
		case CmdShowScreen:
			if d.presenter != nil {
				d.presenter.ShowScreen(d.state)
			}
		}
	}

	// Loading has no player interaction; it completes within the tick
	if d.state.Kind == StateLoading {
		d.apply(Input{Kind: InputLoadingDone})
	}
}

func (d *Driver) startSession(st State) {
	clock := game.NewPausableClock(d.provider)
	session, err := game.NewSession(game.SessionParams{
		Bus:       d.bus,
		Config:    d.cfg,
		Clock:     clock,
		Tasks:     game.NewTaskQueue(clock),
		Store:     d.store,
		Rand:      d.rng,
		Questions: st.Queue,
		Practice:  st.Practice,
		OnEnd: func(result *events.GameOverPayload) {
			d.apply(Input{Kind: InputSessionEnded, Result: result})
		},
	})
	if err != nil {
		log.Printf("flow: session construction failed: %v", err)
		d.apply(Input{Kind: InputBack})
		return
	}
	d.session = session
	if err := session.Start(); err != nil {
		log.Printf("flow: session start failed: %v", err)
		session.Stop()
		d.session = nil
		d.apply(Input{Kind: InputBack})
	}
}

func (d *Driver) stopSession() {
	if d.session != nil {
		d.session.Stop()
		d.session = nil
	}
}
