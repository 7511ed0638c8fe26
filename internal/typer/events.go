package typer

import (
	"fmt"
	"os"

	"github.com/verte-zerg/typewriter/internal/grapheme"
)

// EventKind identifies an engine notification.
type EventKind int

// Event kinds.
const (
	EventTypedChar EventKind = iota
	EventTyped
	EventErased
	EventCompleted
)

// String returns the event name.
func (k EventKind) String() string {
	switch k {
	case EventTypedChar:
		return "typed-char"
	case EventTyped:
		return "typed"
	case EventErased:
		return "erased"
	case EventCompleted:
		return "completed"
	default:
		return "unknown"
	}
}

// Event is delivered synchronously to observers.
// Char and Index are set for typed-char, Word for typed and erased.
type Event struct {
	Kind  EventKind
	Char  grapheme.Grapheme
	Index int
	Word  string
}

// Observer receives engine events.
type Observer func(Event)

// PanicHandler is called when an observer panics.
type PanicHandler func(ev Event, recovered any)

type subscription struct {
	id int
	fn Observer
}

type emitter struct {
	nextID  int
	subs    []subscription
	onPanic PanicHandler
}

func (em *emitter) subscribe(fn Observer) func() {
	em.nextID++
	id := em.nextID
	em.subs = append(em.subs, subscription{id: id, fn: fn})
	return func() {
		for i, s := range em.subs {
			if s.id == id {
				em.subs = append(em.subs[:i:i], em.subs[i+1:]...)
				return
			}
		}
	}
}

func (em *emitter) emit(ev Event) {
	subs := em.subs
	for _, s := range subs {
		em.deliver(s.fn, ev)
	}
}

func (em *emitter) deliver(fn Observer, ev Event) {
	defer func() {
		if r := recover(); r != nil {
			if em.onPanic != nil {
				em.onPanic(ev, r)
				return
			}
			logErrf("observer panicked on %s: %v\n", ev.Kind, r)
		}
	}()
	fn(ev)
}

// Subscribe registers fn for every event and returns its unsubscribe func.
func (e *Engine) Subscribe(fn Observer) func() {
	return e.emitter.subscribe(fn)
}

// OnTypedChar registers fn for typed-char events.
func (e *Engine) OnTypedChar(fn func(ch grapheme.Grapheme, index int)) func() {
	return e.Subscribe(func(ev Event) {
		if ev.Kind == EventTypedChar {
			fn(ev.Char, ev.Index)
		}
	})
}

// OnTyped registers fn for typed events.
func (e *Engine) OnTyped(fn func(word string)) func() {
	return e.Subscribe(func(ev Event) {
		if ev.Kind == EventTyped {
			fn(ev.Word)
		}
	})
}

// OnErased registers fn for erased events.
func (e *Engine) OnErased(fn func(word string)) func() {
	return e.Subscribe(func(ev Event) {
		if ev.Kind == EventErased {
			fn(ev.Word)
		}
	})
}

// OnCompleted registers fn for the completed event.
func (e *Engine) OnCompleted(fn func()) func() {
	return e.Subscribe(func(ev Event) {
		if ev.Kind == EventCompleted {
			fn()
		}
	})
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
