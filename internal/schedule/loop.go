package schedule

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// Loop schedules real-time callbacks and runs all of them on the goroutine
// that calls Run, so callers never need locks around the state they touch.
type Loop struct {
	queue chan func()
	done  chan struct{}
	once  sync.Once

	mu     sync.Mutex
	timers map[*loopTimer]struct{}
}

type loopTimer struct {
	loop      *Loop
	fn        func()
	timer     *time.Timer
	cancelled atomic.Bool
}

// NewLoop returns an idle loop. Callbacks are dispatched once Run starts.
func NewLoop() *Loop {
	return &Loop{
		queue:  make(chan func(), 64),
		done:   make(chan struct{}),
		timers: map[*loopTimer]struct{}{},
	}
}

// After schedules fn to run on the loop after d.
func (l *Loop) After(d time.Duration, fn func()) Handle {
	if d < 0 {
		d = 0
	}
	t := &loopTimer{loop: l, fn: fn}
	l.mu.Lock()
	l.timers[t] = struct{}{}
	l.mu.Unlock()
	t.timer = time.AfterFunc(d, func() {
		l.post(t.fire)
	})
	return t
}

// Do posts fn onto the loop. It is dropped once Run has returned.
func (l *Loop) Do(fn func()) {
	l.post(fn)
}

func (l *Loop) post(fn func()) {
	select {
	case l.queue <- fn:
	case <-l.done:
	}
}

// CancelAll cancels every pending timer.
func (l *Loop) CancelAll() {
	l.mu.Lock()
	pending := make([]*loopTimer, 0, len(l.timers))
	for t := range l.timers {
		pending = append(pending, t)
	}
	l.mu.Unlock()
	for _, t := range pending {
		t.Cancel()
	}
}

// Run dispatches callbacks until ctx is done.
func (l *Loop) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			l.CancelAll()
			l.once.Do(func() { close(l.done) })
			return ctx.Err()
		case fn := <-l.queue:
			fn()
		}
	}
}

func (t *loopTimer) fire() {
	t.loop.forget(t)
	if t.cancelled.Load() {
		return
	}
	t.fn()
}

func (t *loopTimer) Cancel() {
	if t.cancelled.Swap(true) {
		return
	}
	t.timer.Stop()
	t.loop.forget(t)
}

func (l *Loop) forget(t *loopTimer) {
	l.mu.Lock()
	delete(l.timers, t)
	l.mu.Unlock()
}
