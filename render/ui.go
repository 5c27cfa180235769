package render

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/kettleram/cookie-crunch/config"
	"github.com/kettleram/cookie-crunch/events"
	"github.com/kettleram/cookie-crunch/flow"
	"github.com/kettleram/cookie-crunch/game"
)

// UI is the terminal presentation layer. It consumes the published event
// contract only: everything it shows arrives over the bus, and every
// player action leaves through the flow driver or a published event.
type UI struct {
	screen tcell.Screen
	bus    *events.Bus
	cfg    config.Config
	driver *flow.Driver
	subs   events.SubscriptionSet

	state flow.State

	// Gameplay HUD caches, fed by events
	question *events.QuestionGeneratedPayload
	counts   map[int]int
	verdict  *events.AnswerSubmittedPayload
	lives    int
	hasLives bool
	timeLeft string

	// Question submission form
	entries []game.Question
	input   string
	formErr string
}

// New creates the UI and subscribes it to the bus
func New(screen tcell.Screen, bus *events.Bus, cfg config.Config) *UI {
	ui := &UI{
		screen: screen,
		bus:    bus,
		cfg:    cfg,
		counts: make(map[int]int),
	}
	ui.subscribe()
	return ui
}

// BindDriver hands the UI its flow driver. Must be called before the
// first key event.
func (ui *UI) BindDriver(d *flow.Driver) {
	ui.driver = d
}

func (ui *UI) subscribe() {
	ui.subs.Subscribe(ui.bus, events.EventQuestionGenerated, func(ev events.Event) {
		if p, ok := ev.Payload.(*events.QuestionGeneratedPayload); ok {
			ui.question = p
			ui.counts = make(map[int]int)
			ui.verdict = nil
		}
	})
	ui.subs.Subscribe(ui.bus, events.EventCookieDropped, func(ev events.Event) {
		if p, ok := ev.Payload.(*events.CookieDroppedPayload); ok && ui.verdict == nil {
			ui.counts[p.MonsterID]++
		}
	})
	ui.subs.Subscribe(ui.bus, events.EventAnswerSubmitted, func(ev events.Event) {
		if p, ok := ev.Payload.(*events.AnswerSubmittedPayload); ok {
			ui.verdict = p
		}
	})
	ui.subs.Subscribe(ui.bus, events.EventQuestionAdvanced, func(events.Event) {
		ui.verdict = nil
		ui.counts = make(map[int]int)
	})
	ui.subs.Subscribe(ui.bus, events.EventLivesUpdated, func(ev events.Event) {
		if p, ok := ev.Payload.(*events.LivesUpdatedPayload); ok {
			ui.lives = p.RemainingLives
			ui.hasLives = true
		}
	})
	ui.subs.Subscribe(ui.bus, events.EventTimerUpdated, func(ev events.Event) {
		if p, ok := ev.Payload.(*events.TimerUpdatedPayload); ok {
			total := int(p.RemainingTime.Seconds())
			ui.timeLeft = fmt.Sprintf("%d:%02d", total/60, total%60)
		}
	})
}

// Close cancels the UI's subscriptions
func (ui *UI) Close() {
	ui.subs.CancelAll()
}

// ShowScreen implements flow.Presenter: caches the new state and resets
// per-screen input
func (ui *UI) ShowScreen(st flow.State) {
	ui.state = st
	switch st.Kind {
	case flow.StateQuestionSubmission:
		ui.entries = nil
		ui.input = ""
		ui.formErr = ""
	case flow.StateGameplay:
		// The first question was published while the session started;
		// only the HUD needs seeding here
		if session := ui.driver.Session(); session != nil {
			state := session.State()
			ui.lives = state.Lives
			ui.hasLives = !state.Practice
			if state.RemainingTime > 0 {
				total := int(state.RemainingTime.Seconds())
				ui.timeLeft = fmt.Sprintf("%d:%02d", total/60, total%60)
			} else {
				ui.timeLeft = ""
			}
		}
	}
}

// HandleKey processes one key event. Returns false when the player quits.
func (ui *UI) HandleKey(ev *tcell.EventKey) bool {
	if ev.Key() == tcell.KeyCtrlC {
		return false
	}

	switch ui.state.Kind {
	case flow.StateMainMenu:
		return ui.handleMenuKey(ev)
	case flow.StateQuestionSubmission:
		ui.handleFormKey(ev)
	case flow.StateGameplay:
		ui.handleGameplayKey(ev)
	case flow.StateGameOver, flow.StatePracticeComplete:
		return ui.handleResultsKey(ev)
	}
	return true
}

func (ui *UI) handleMenuKey(ev *tcell.EventKey) bool {
	if ev.Key() != tcell.KeyRune {
		return true
	}
	switch ev.Rune() {
	case 'p', 'P':
		ui.driver.OnPracticeMode()
	case 't', 'T':
		ui.driver.OnTestMode()
	case 'q', 'Q':
		return false
	}
	return true
}

func (ui *UI) handleFormKey(ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyEscape:
		ui.driver.OnBack()
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if len(ui.input) > 0 {
			ui.input = ui.input[:len(ui.input)-1]
		}
	case tcell.KeyEnter:
		ui.addFormEntry()
	case tcell.KeyRune:
		r := ev.Rune()
		switch {
		case r >= '0' && r <= '9', r == '/':
			ui.input += string(r)
		case (r == 's' || r == 'S') && ui.input == "":
			if len(ui.entries) > 0 {
				ui.driver.OnQuestionsSubmitted(ui.entries)
			} else {
				ui.formErr = "add at least one question before starting"
			}
		}
	}
}

// addFormEntry parses "dividend/divisor" and validates it against the
// session constraints
func (ui *UI) addFormEntry() {
	raw := ui.input
	ui.input = ""

	parts := strings.SplitN(raw, "/", 2)
	if len(parts) != 2 {
		ui.formErr = "enter cookies/monsters, e.g. 12/3"
		return
	}
	dividend, err1 := strconv.Atoi(parts[0])
	divisor, err2 := strconv.Atoi(parts[1])
	if err1 != nil || err2 != nil || divisor == 0 {
		ui.formErr = "enter cookies/monsters, e.g. 12/3"
		return
	}

	q := game.Question{Dividend: dividend, Divisor: divisor, Quotient: dividend / divisor}
	if err := game.ValidateQuestion(ui.cfg, q); err != nil {
		ui.formErr = err.Error()
		return
	}
	ui.entries = append(ui.entries, q)
	ui.formErr = ""
}

func (ui *UI) handleGameplayKey(ev *tcell.EventKey) {
	session := ui.driver.Session()
	if session == nil {
		return
	}

	switch ev.Key() {
	case tcell.KeyEscape:
		ui.driver.OnBack()
	case tcell.KeyEnter:
		session.Submit()
	case tcell.KeyRune:
		r := ev.Rune()
		if r >= '1' && r <= '9' {
			monster := int(r - '1')
			if monster < ui.cfg.MaxMonsters && ui.verdict == nil {
				ui.bus.Publish(events.EventCookieDropped, &events.CookieDroppedPayload{MonsterID: monster})
			}
		}
	}
}

func (ui *UI) handleResultsKey(ev *tcell.EventKey) bool {
	if ev.Key() == tcell.KeyEscape {
		ui.driver.OnToMenu()
		return true
	}
	if ev.Key() != tcell.KeyRune {
		return true
	}
	switch ev.Rune() {
	case 'r', 'R':
		ui.driver.OnRetry()
	case 'm', 'M':
		ui.driver.OnToMenu()
	case 'q', 'Q':
		return false
	}
	return true
}
