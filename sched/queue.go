// Package sched provides a single-threaded cooperative task queue for work
// that must run after the current callback has returned.
//
// Work deferred while a turn is running is executed in the next turn, never
// in the current one, so continuations always run after the callback that
// scheduled them has returned.
package sched

import tea "github.com/charmbracelet/bubbletea"

// Queue is owned by one goroutine. It has no locking.
type Queue struct {
	pending []func()
	running bool
	turns   uint64
}

func New() *Queue { return &Queue{} }

// Defer schedules fn for the next turn. A nil fn is ignored.
func (q *Queue) Defer(fn func()) {
	if fn == nil {
		return
	}
	q.pending = append(q.pending, fn)
}

// Len returns the number of tasks waiting for a turn.
func (q *Queue) Len() int { return len(q.pending) }

// Turns returns the number of turns executed so far.
func (q *Queue) Turns() uint64 { return q.turns }

// RunTurn executes the tasks that were pending when it was called, in FIFO
// order, and returns how many ran. Calling RunTurn from inside a task is a
// no-op.
func (q *Queue) RunTurn() int {
	if q.running || len(q.pending) == 0 {
		return 0
	}
	batch := q.pending
	q.pending = nil
	q.running = true
	defer func() { q.running = false }()

	for _, fn := range batch {
		fn()
	}
	q.turns++
	return len(batch)
}

// Drain runs turns until the queue is empty or maxTurns turns have run.
// maxTurns <= 0 means no limit. It returns the number of turns executed.
func (q *Queue) Drain(maxTurns int) int {
	n := 0
	for len(q.pending) > 0 {
		if maxTurns > 0 && n >= maxTurns {
			break
		}
		if q.RunTurn() == 0 {
			break
		}
		n++
	}
	return n
}

// TurnMsg asks a Bubble Tea host to run one queue turn.
type TurnMsg struct{}

// Cmd returns a command that delivers TurnMsg when work is pending, or nil.
// Hosts call RunTurn on TurnMsg and return Cmd again.
func (q *Queue) Cmd() tea.Cmd {
	if len(q.pending) == 0 {
		return nil
	}
	return func() tea.Msg { return TurnMsg{} }
}
