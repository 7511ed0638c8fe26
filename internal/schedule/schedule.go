// Package schedule provides single-threaded delay schedulers for the typewriter engine.
package schedule

import "time"

// Handle cancels one scheduled callback. Cancel is idempotent and takes effect
// immediately: a cancelled callback never runs, even if its timer already fired.
type Handle interface {
	Cancel()
}

// Scheduler runs callbacks after a delay on a single cooperative timeline.
type Scheduler interface {
	After(d time.Duration, fn func()) Handle
	CancelAll()
}
