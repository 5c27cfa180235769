package game

import (
	"log"
	"math/rand"
	"time"

	"github.com/kettleram/cookie-crunch/config"
	"github.com/kettleram/cookie-crunch/events"
)

// SessionState is the mutable per-session record. Owned exclusively by
// the running Session; every other component sees changes only through
// published events.
type SessionState struct {
	QuestionNumber int
	TotalQuestions int
	Score          int
	UsedQuestions  map[QuestionKey]bool
	Lives          int
	RemainingTime  time.Duration
	Practice       bool
}

// HighScoreStore persists the single best-ever score
type HighScoreStore interface {
	HighScore() (int, error)
	// RecordHighScore applies update-if-greater and reports whether the
	// score became the new record
	RecordHighScore(score int) (bool, error)
}

// EndCallback notifies the flow layer that the session terminated
type EndCallback func(*events.GameOverPayload)

// SessionParams collects the dependencies for one gameplay session
type SessionParams struct {
	Bus       *events.Bus
	Config    config.Config
	Clock     *PausableClock
	Tasks     *TaskQueue
	Store     HighScoreStore
	Rand      *rand.Rand
	Questions []Question // curated queue for test mode, nil for practice
	Practice  bool
	OnEnd     EndCallback
}

// Session coordinates one gameplay run: question flow, validation,
// scoring, and the lives/timer failure model. Exactly one termination is
// taken even when several signals fire in the same tick.
type Session struct {
	bus   *events.Bus
	cfg   config.Config
	clock *PausableClock
	tasks *TaskQueue
	store HighScoreStore
	onEnd EndCallback

	generator *Generator
	validator *Validator
	score     *ScoreEngine
	lives     *LivesEngine
	timer     *TimerEngine
	subs      events.SubscriptionSet

	state SessionState
	ended bool
}

// NewSession builds a session and validates any curated questions.
// Call Start to begin play.
func NewSession(p SessionParams) (*Session, error) {
	s := &Session{
		bus:       p.Bus,
		cfg:       p.Config,
		clock:     p.Clock,
		tasks:     p.Tasks,
		store:     p.Store,
		onEnd:     p.OnEnd,
		generator: NewGenerator(p.Bus, p.Config, p.Rand),
		validator: NewValidator(p.Bus, p.Clock, p.Config.MaxMonsters),
		score:     NewScoreEngine(p.Bus, p.Config),
		state: SessionState{
			TotalQuestions: p.Config.TotalQuestions,
			UsedQuestions:  make(map[QuestionKey]bool),
			Lives:          p.Config.Lives(p.Practice),
			RemainingTime:  p.Config.TimeLimit(p.Practice),
			Practice:       p.Practice,
		},
	}
	s.lives = NewLivesEngine(p.Bus, s.state.Lives)
	s.timer = NewTimerEngine(p.Bus, p.Clock, s.state.RemainingTime)

	if len(p.Questions) > 0 {
		if err := s.generator.SubmitQueue(p.Questions); err != nil {
			return nil, err
		}
		if len(p.Questions) < s.state.TotalQuestions {
			s.state.TotalQuestions = len(p.Questions)
		}
	}
	return s, nil
}

// Start wires the engines to the bus, starts the clock, and publishes
// the first question. Engine handlers register before the session's own
// so score and lives are settled by the time termination is considered.
func (s *Session) Start() error {
	s.validator.Attach()
	s.score.Attach()
	s.lives.Attach()

	s.subs.Subscribe(s.bus, events.EventAnswerSubmitted, s.onAnswerSubmitted)
	s.subs.Subscribe(s.bus, events.EventLivesDepleted, func(events.Event) { s.end() })
	s.subs.Subscribe(s.bus, events.EventTimerExpired, func(events.Event) { s.end() })

	// SessionState mirrors: all mutation flows through published events
	s.subs.Subscribe(s.bus, events.EventScoreUpdated, func(ev events.Event) {
		if p, ok := ev.Payload.(*events.ScoreUpdatedPayload); ok {
			s.state.Score = p.NewScore
		}
	})
	s.subs.Subscribe(s.bus, events.EventLivesUpdated, func(ev events.Event) {
		if p, ok := ev.Payload.(*events.LivesUpdatedPayload); ok {
			s.state.Lives = p.RemainingLives
		}
	})
	s.subs.Subscribe(s.bus, events.EventTimerUpdated, func(ev events.Event) {
		if p, ok := ev.Payload.(*events.TimerUpdatedPayload); ok {
			s.state.RemainingTime = p.RemainingTime
		}
	})

	s.timer.Start()
	return s.nextQuestion()
}

// Update advances the timer and the scheduled-task queue by one tick
func (s *Session) Update() {
	if s.ended {
		return
	}
	s.timer.Update()
	s.tasks.Update()
}

// Submit evaluates the current distribution
func (s *Session) Submit() {
	s.validator.Submit()
}

// DropCookie feeds a cookie drop into the validator via the bus, the
// same path the drag layer uses
func (s *Session) DropCookie(monsterID int) {
	s.bus.Publish(events.EventCookieDropped, &events.CookieDroppedPayload{MonsterID: monsterID})
}

func (s *Session) onAnswerSubmitted(ev events.Event) {
	if s.ended {
		return
	}
	if _, ok := ev.Payload.(*events.AnswerSubmittedPayload); !ok {
		return
	}

	lastQuestion := s.state.QuestionNumber >= s.state.TotalQuestions
	s.tasks.Schedule(config.FeedbackDelay, func() {
		if lastQuestion {
			s.end()
			return
		}
		s.bus.Publish(events.EventQuestionAdvanced, nil)
		if err := s.nextQuestion(); err != nil {
			log.Printf("game: question generation failed: %v", err)
			s.end()
		}
	})
}

func (s *Session) nextQuestion() error {
	s.state.QuestionNumber++
	_, err := s.generator.Next(s.state.UsedQuestions)
	return err
}

// end terminates the session exactly once: stops the clock, cancels
// stale tasks, persists the high score, and publishes GameOver
func (s *Session) end() {
	if s.ended {
		return
	}
	s.ended = true

	s.timer.Pause()
	s.tasks.Invalidate()

	// Detach the gameplay engines so late drops and submits are inert.
	// Safe mid-dispatch: the bus snapshots handler lists.
	s.validator.Detach()
	s.score.Detach()
	s.lives.Detach()

	accuracy := s.score.Accuracy()
	final := s.score.Score()

	high, err := s.store.HighScore()
	if err != nil {
		log.Printf("game: high score read failed: %v", err)
	}
	newRecord, err := s.store.RecordHighScore(final)
	if err != nil {
		log.Printf("game: high score write failed: %v", err)
	}
	if final > high {
		high = final
	}

	payload := &events.GameOverPayload{
		FinalScore:   final,
		Accuracy:     accuracy,
		Grade:        Grade(accuracy),
		HighScore:    high,
		NewHighScore: newRecord,
		Practice:     s.state.Practice,
	}

	s.bus.Publish(events.EventSoundRequest, &events.SoundRequestPayload{Sound: events.SoundGameOver})
	s.bus.Publish(events.EventGameOver, payload)

	if s.onEnd != nil {
		s.onEnd(payload)
	}
}

// Stop tears the session down without publishing results, for the
// back-to-menu path. Safe after end.
func (s *Session) Stop() {
	s.ended = true
	s.timer.Pause()
	s.tasks.Invalidate()
	s.validator.Detach()
	s.score.Detach()
	s.lives.Detach()
	s.subs.CancelAll()
}

// State returns a copy of the session record for display
func (s *Session) State() SessionState {
	return s.state
}

// Ended reports whether a termination was taken
func (s *Session) Ended() bool {
	return s.ended
}
