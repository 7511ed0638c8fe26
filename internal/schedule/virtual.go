package schedule

import (
	"sort"
	"time"
)

// Virtual is a manually advanced clock. Nothing fires until Advance or
// RunUntilIdle is called, which makes timing deterministic in tests.
type Virtual struct {
	now     time.Duration
	seq     uint64
	timers  []*virtualTimer
	stalled bool
}

type virtualTimer struct {
	due       time.Duration
	seq       uint64
	fn        func()
	cancelled bool
	owner     *Virtual
}

// NewVirtual returns a virtual clock at offset zero.
func NewVirtual() *Virtual {
	return &Virtual{}
}

// Now returns the elapsed virtual time.
func (v *Virtual) Now() time.Duration {
	return v.now
}

// Pending returns the number of live timers.
func (v *Virtual) Pending() int {
	return len(v.timers)
}

// After schedules fn at now+d. Negative delays are treated as zero.
func (v *Virtual) After(d time.Duration, fn func()) Handle {
	if d < 0 {
		d = 0
	}
	v.seq++
	t := &virtualTimer{due: v.now + d, seq: v.seq, fn: fn, owner: v}
	idx := sort.Search(len(v.timers), func(i int) bool {
		other := v.timers[i]
		if other.due == t.due {
			return other.seq > t.seq
		}
		return other.due > t.due
	})
	v.timers = append(v.timers, nil)
	copy(v.timers[idx+1:], v.timers[idx:])
	v.timers[idx] = t
	return t
}

// CancelAll cancels every pending timer.
func (v *Virtual) CancelAll() {
	for _, t := range v.timers {
		t.cancelled = true
	}
	v.timers = nil
}

// MaxFiresPerInstant bounds how many timers fire without the clock moving.
// Zero-delay callbacks that keep rescheduling themselves would otherwise never
// let Advance or RunUntilIdle return.
const MaxFiresPerInstant = 1 << 20

// Advance moves the clock forward by d, firing every timer that falls due in
// the window in due order. Timers scheduled by callbacks fire in the same call
// when they fall due inside the window. When more than MaxFiresPerInstant
// timers fire at one instant the clock stops there and Stalled reports true.
func (v *Virtual) Advance(d time.Duration) {
	if d < 0 {
		d = 0
	}
	target := v.now + d
	if v.drain(target) {
		v.now = target
	}
}

// RunUntilIdle fires timers until none are left, limit virtual time has
// elapsed, or the clock stalls. It returns the elapsed virtual time.
func (v *Virtual) RunUntilIdle(limit time.Duration) time.Duration {
	start := v.now
	if !v.drain(start+limit) || len(v.timers) == 0 {
		return v.now - start
	}
	v.now = start + limit
	return limit
}

// Stalled reports whether the last Advance or RunUntilIdle stopped early
// because timers kept firing without time passing.
func (v *Virtual) Stalled() bool {
	return v.stalled
}

func (v *Virtual) drain(target time.Duration) bool {
	v.stalled = false
	fired := 0
	for len(v.timers) > 0 && v.timers[0].due <= target {
		t := v.timers[0]
		if t.due != v.now {
			fired = 0
		} else if fired >= MaxFiresPerInstant {
			v.stalled = true
			return false
		}
		v.timers = v.timers[1:]
		v.now = t.due
		fired++
		if !t.cancelled {
			t.fn()
		}
	}
	return true
}

func (t *virtualTimer) Cancel() {
	if t.cancelled {
		return
	}
	t.cancelled = true
	timers := t.owner.timers
	for i, other := range timers {
		if other == t {
			t.owner.timers = append(timers[:i], timers[i+1:]...)
			return
		}
	}
}
