// Package typer implements the typewriter engine: a timer-driven state machine
// that types and erases a queue of words one grapheme at a time.
//
// An Engine is not safe for concurrent use. All calls, including the
// scheduler's callbacks, must come from one goroutine (see package schedule).
package typer

import (
	"time"

	"github.com/verte-zerg/typewriter/internal/generator"
	"github.com/verte-zerg/typewriter/internal/grapheme"
	"github.com/verte-zerg/typewriter/internal/queue"
	"github.com/verte-zerg/typewriter/internal/schedule"
)

type step int

const (
	stepNone step = iota
	stepPreType
	stepType
	stepPreErase
	stepErase
	stepComplete
)

// Engine animates typing and erasing of a word queue.
type Engine struct {
	cfg     Config
	texts   []string
	sched   schedule.Scheduler
	gen     *generator.Generator
	emitter emitter

	queue *queue.Queue
	phase Phase
	word  grapheme.Word
	caret int
	marks []CharMark

	repeatsRemaining int
	selectedAt       int
	lastMoved        int
	selectionMade    bool

	pending     schedule.Handle
	pendingStep step
	epoch       uint64

	running    bool
	stopped    bool
	completing bool
}

// Option customizes an Engine.
type Option func(*Engine)

// WithGenerator sets the randomness used for shuffling.
func WithGenerator(gen *generator.Generator) Option {
	return func(e *Engine) {
		e.gen = gen
	}
}

// WithPanicHandler sets the handler for panicking observers.
func WithPanicHandler(fn PanicHandler) Option {
	return func(e *Engine) {
		e.emitter.onPanic = fn
	}
}

// New validates cfg and builds an idle engine for texts. Call Start to run it.
func New(texts []string, cfg Config, sched schedule.Scheduler, opts ...Option) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	e := &Engine{
		cfg:   cfg.normalized(),
		texts: append([]string(nil), texts...),
		sched: sched,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.gen == nil {
		e.gen = generator.New()
	}
	e.init()
	return e, nil
}

func (e *Engine) init() {
	e.queue = queue.New(e.texts, e.cfg.Shuffle, e.gen)
	e.repeatsRemaining = e.cfg.Repeat
	e.phase = Idle
	e.loadWord()
	if e.cfg.InitialAction == ActionErasing {
		e.caret = len(e.word)
	}
}

func (e *Engine) loadWord() {
	e.word = e.queue.Current()
	e.marks = make([]CharMark, len(e.word))
	e.caret = 0
	e.selectedAt = -1
	e.lastMoved = -1
	e.selectionMade = false
}

// Start begins the animation. It has no effect when already running or stopped.
func (e *Engine) Start() {
	if e.stopped || e.running {
		return
	}
	e.running = true
	if e.queue.Len() == 0 {
		if e.completing {
			// Restarted by a completed observer: finish on the next tick.
			e.schedule(stepComplete)
			return
		}
		e.complete()
		return
	}
	if e.cfg.InitialAction == ActionErasing {
		e.phase = Erasing
		e.schedule(stepPreErase)
		return
	}
	e.phase = Typing
	e.schedule(stepPreType)
}

// Stop cancels pending work and freezes the engine for good.
func (e *Engine) Stop() {
	if e.stopped {
		return
	}
	e.cancelPending()
	e.epoch++
	e.stopped = true
	e.running = false
}

// Reset rebuilds the queue and initial state, restarting if the engine was running.
func (e *Engine) Reset() {
	if e.stopped {
		return
	}
	wasRunning := e.running
	e.cancelPending()
	e.epoch++
	e.running = false
	e.init()
	if wasRunning {
		e.Start()
	}
}

// Configure applies cfg. Invalid configs are rejected and leave the engine
// untouched. Changes to repeat, erase-on-complete, shuffle or initial action
// reset the run; delay and erase-style changes reschedule the pending step.
func (e *Engine) Configure(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	old := e.cfg
	e.cfg = cfg.normalized()
	if e.stopped {
		return nil
	}
	if old.resetsRun(e.cfg) {
		e.Reset()
		return nil
	}
	if e.pending != nil {
		e.schedule(e.pendingStep)
	}
	return nil
}

// SetText replaces the word list. The run resets only when the list changed.
func (e *Engine) SetText(texts []string) {
	if generator.ShallowEqual(texts, e.texts) {
		return
	}
	e.texts = append([]string(nil), texts...)
	e.Reset()
}

// MoveCaretToStart puts the caret before the first grapheme.
func (e *Engine) MoveCaretToStart() {
	e.ShiftCaret(0)
}

// MoveCaretToEnd puts the caret after the last grapheme.
func (e *Engine) MoveCaretToEnd() {
	e.ShiftCaret(len(e.word))
}

// ShiftCaret sets the caret to index, clamped to the word bounds.
func (e *Engine) ShiftCaret(index int) {
	if e.stopped {
		return
	}
	if index < 0 {
		index = 0
	}
	if index > len(e.word) {
		index = len(e.word)
	}
	e.caret = index
}

// TypeStep types the grapheme at the caret and emits typed-char. It returns
// false when the caret is already at the end of the word.
func (e *Engine) TypeStep() bool {
	if e.stopped {
		return false
	}
	return e.typeStep()
}

func (e *Engine) typeStep() bool {
	if e.caret >= len(e.word) {
		return false
	}
	idx := e.caret
	e.marks[idx] = MarkNone
	e.caret++
	e.emitter.emit(Event{Kind: EventTypedChar, Char: e.word[idx], Index: idx})
	return true
}

func (e *Engine) schedule(s step) {
	e.cancelPending()
	e.pendingStep = s
	e.pending = e.sched.After(e.delay(s), func() {
		e.pending = nil
		e.pendingStep = stepNone
		e.run(s)
	})
}

func (e *Engine) cancelPending() {
	if e.pending != nil {
		e.pending.Cancel()
		e.pending = nil
	}
	e.pendingStep = stepNone
}

func (e *Engine) delay(s step) time.Duration {
	switch s {
	case stepPreType:
		return e.cfg.PreTypeDelay
	case stepType:
		return e.cfg.TypeDelay
	case stepPreErase:
		return e.cfg.PreEraseDelay
	case stepErase:
		return e.cfg.EraseDelay
	default:
		return 0
	}
}

func (e *Engine) run(s step) {
	switch s {
	case stepPreType:
		e.phase = Typing
		e.typeTick()
	case stepType:
		e.typeTick()
	case stepPreErase:
		e.phase = Erasing
		e.eraseTick()
	case stepErase:
		e.eraseTick()
	case stepComplete:
		e.complete()
	}
}

func (e *Engine) typeTick() {
	epoch := e.epoch
	e.typeStep()
	if e.epoch != epoch {
		return
	}
	if e.caret >= len(e.word) {
		e.onTyped()
		return
	}
	e.schedule(stepType)
}

func (e *Engine) eraseTick() {
	switch e.cfg.EraseStyle {
	case EraseBackspace:
		if e.caret > 0 {
			e.caret--
			e.marks[e.caret] = MarkErased
		}
		if e.caret == 0 {
			e.finishErase()
			return
		}
	case EraseSelectBack:
		// The grapheme moved by the previous step stays selected for one step.
		if e.caret > 0 {
			if e.selectedAt >= 0 {
				e.marks[e.selectedAt] = MarkErased
				e.selectedAt = -1
			}
			if e.lastMoved >= 0 {
				e.marks[e.lastMoved] = MarkSelected
				e.selectedAt = e.lastMoved
			}
			e.caret--
			e.marks[e.caret] = MarkErased
			e.lastMoved = e.caret
		}
		if e.caret == 0 {
			e.finishErase()
			return
		}
	case EraseSelectAll:
		if e.selectionMade {
			e.finishErase()
			return
		}
		e.markPrefix(MarkSelected)
		e.selectionMade = true
	case EraseClear:
		e.markPrefix(MarkErased)
		e.finishErase()
		return
	}
	e.schedule(stepErase)
}

func (e *Engine) markPrefix(mark CharMark) {
	for i := 0; i < e.caret; i++ {
		e.marks[i] = mark
	}
	e.caret = 0
}

func (e *Engine) finishErase() {
	for i, m := range e.marks {
		if m == MarkSelected {
			e.marks[i] = MarkErased
		}
	}
	e.selectedAt = -1
	e.lastMoved = -1
	e.selectionMade = false
	e.onErased()
}

func (e *Engine) finalPass() bool {
	return e.cfg.Repeat != RepeatInfinite && e.repeatsRemaining <= 0
}

func (e *Engine) onTyped() {
	epoch := e.epoch
	e.emitter.emit(Event{Kind: EventTyped, Word: e.word.String()})
	if e.epoch != epoch {
		return
	}
	if e.queue.IsLast() && e.finalPass() && !e.cfg.EraseOnComplete {
		e.complete()
		return
	}
	e.phase = TypedPause
	e.schedule(stepPreErase)
}

func (e *Engine) onErased() {
	epoch := e.epoch
	e.emitter.emit(Event{Kind: EventErased, Word: e.word.String()})
	if e.epoch != epoch {
		return
	}
	if !e.queue.IsLast() {
		e.queue.Advance()
	} else {
		if e.finalPass() {
			e.complete()
			return
		}
		if e.cfg.Repeat != RepeatInfinite {
			e.repeatsRemaining--
		}
		e.queue.Reset()
	}
	e.loadWord()
	e.phase = ErasedPause
	e.schedule(stepPreType)
}

func (e *Engine) complete() {
	e.cancelPending()
	e.phase = Complete
	e.completing = true
	e.emitter.emit(Event{Kind: EventCompleted})
	e.completing = false
}

// Snapshot returns the current state for rendering.
func (e *Engine) Snapshot() Snapshot {
	snap := Snapshot{
		Phase:     e.phase,
		WordIndex: e.queue.Index(),
		Caret:     e.caret,
		Length:    len(e.word),
		Typed:     make([]Char, 0, e.caret),
		Pending:   make([]Char, 0, len(e.word)-e.caret),
	}
	for i, g := range e.word {
		c := Char{Text: g, Mark: e.marks[i]}
		if i < e.caret {
			snap.Typed = append(snap.Typed, c)
		} else {
			snap.Pending = append(snap.Pending, c)
		}
	}
	return snap
}

// Phase returns the current state.
func (e *Engine) Phase() Phase {
	return e.phase
}

// Caret returns the caret index within the current word.
func (e *Engine) Caret() int {
	return e.caret
}

// WordIndex returns the index of the current word in the queue.
func (e *Engine) WordIndex() int {
	return e.queue.Index()
}

// CurrentTextLength returns the grapheme count of the current word.
func (e *Engine) CurrentTextLength() int {
	return len(e.word)
}

// RepeatsRemaining returns the passes left after the current one.
func (e *Engine) RepeatsRemaining() int {
	return e.repeatsRemaining
}

// Config returns the active configuration.
func (e *Engine) Config() Config {
	return e.cfg
}

// Texts returns the words in play order.
func (e *Engine) Texts() []string {
	return e.queue.Texts()
}

// Running reports whether Start was called and the engine is not stopped.
func (e *Engine) Running() bool {
	return e.running
}
