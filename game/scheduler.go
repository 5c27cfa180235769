package game

import "time"

// TaskQueue runs delayed callbacks on the game clock, guarded by a
// monotonic generation counter. A task scheduled by a state that has
// since exited (Invalidate bumps the generation) silently no-ops at fire
// time, so stale feedback-delay callbacks can never act on a new
// question or a torn-down session.
type TaskQueue struct {
	clock      *PausableClock
	generation uint64
	tasks      []scheduledTask
}

type scheduledTask struct {
	due        time.Time
	generation uint64
	fn         func()
}

// NewTaskQueue creates an empty queue on the given clock
func NewTaskQueue(clock *PausableClock) *TaskQueue {
	return &TaskQueue{clock: clock}
}

// Schedule queues fn to run once delay has elapsed in game time.
// The task is bound to the current generation.
func (tq *TaskQueue) Schedule(delay time.Duration, fn func()) {
	tq.tasks = append(tq.tasks, scheduledTask{
		due:        tq.clock.Now().Add(delay),
		generation: tq.generation,
		fn:         fn,
	})
}

// Update fires all due tasks whose generation still matches, in schedule
// order. A fired task may schedule further tasks; those wait for the
// next Update. Stale-generation tasks are dropped without running.
func (tq *TaskQueue) Update() {
	if len(tq.tasks) == 0 {
		return
	}
	now := tq.clock.Now()

	var due []scheduledTask
	remaining := tq.tasks[:0]
	for _, task := range tq.tasks {
		switch {
		case task.generation != tq.generation:
			// dropped
		case !task.due.After(now):
			due = append(due, task)
		default:
			remaining = append(remaining, task)
		}
	}
	tq.tasks = remaining

	for _, task := range due {
		if task.generation == tq.generation {
			task.fn()
		}
	}
}

// Invalidate bumps the generation, cancelling every outstanding task.
// Called on state exit.
func (tq *TaskQueue) Invalidate() {
	tq.generation++
	tq.tasks = tq.tasks[:0]
}

// Pending returns the number of queued tasks
func (tq *TaskQueue) Pending() int {
	return len(tq.tasks)
}
