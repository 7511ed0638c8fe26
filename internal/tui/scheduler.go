package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/typewriter/internal/schedule"
)

// fireMsg delivers an engine timer through the Bubble Tea event loop.
type fireMsg struct {
	id uint64
}

// teaScheduler runs engine callbacks inside Update. After only records the
// callback and queues a tea.Tick; drain hands the queued commands to the program.
type teaScheduler struct {
	nextID uint64
	timers map[uint64]func()
	cmds   []tea.Cmd
}

var _ schedule.Scheduler = (*teaScheduler)(nil)

func newTeaScheduler() *teaScheduler {
	return &teaScheduler{timers: map[uint64]func(){}}
}

func (s *teaScheduler) After(d time.Duration, fn func()) schedule.Handle {
	if d < 0 {
		d = 0
	}
	s.nextID++
	id := s.nextID
	s.timers[id] = fn
	s.cmds = append(s.cmds, tea.Tick(d, func(time.Time) tea.Msg {
		return fireMsg{id: id}
	}))
	return teaTimer{owner: s, id: id}
}

func (s *teaScheduler) CancelAll() {
	for id := range s.timers {
		delete(s.timers, id)
	}
}

// fire runs the callback for id unless it was cancelled.
func (s *teaScheduler) fire(id uint64) {
	fn, ok := s.timers[id]
	if !ok {
		return
	}
	delete(s.timers, id)
	fn()
}

func (s *teaScheduler) pending() int {
	return len(s.timers)
}

func (s *teaScheduler) drain() tea.Cmd {
	cmds := s.cmds
	s.cmds = nil
	switch len(cmds) {
	case 0:
		return nil
	case 1:
		return cmds[0]
	default:
		return tea.Batch(cmds...)
	}
}

type teaTimer struct {
	owner *teaScheduler
	id    uint64
}

func (t teaTimer) Cancel() {
	delete(t.owner.timers, t.id)
}
