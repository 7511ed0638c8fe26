package stats

import (
	"time"

	"github.com/verte-zerg/typewriter/internal/model"
	"github.com/verte-zerg/typewriter/internal/typer"
)

// Recorder accumulates run counters from engine events.
type Recorder struct {
	now       func() time.Time
	startedAt time.Time

	charsTyped  int
	wordsTyped  int
	wordsErased int
	completed   bool

	order []string
	words map[string]*model.WordStats
}

// NewRecorder starts a recording at now(). A nil now uses time.Now.
func NewRecorder(now func() time.Time) *Recorder {
	if now == nil {
		now = time.Now
	}
	return &Recorder{
		now:       now,
		startedAt: now(),
		words:     map[string]*model.WordStats{},
	}
}

// Observe is a typer.Observer.
func (r *Recorder) Observe(ev typer.Event) {
	switch ev.Kind {
	case typer.EventTypedChar:
		r.charsTyped++
	case typer.EventTyped:
		r.wordsTyped++
		r.entry(ev.Word).Typed++
	case typer.EventErased:
		r.wordsErased++
		r.entry(ev.Word).Erased++
	case typer.EventCompleted:
		r.completed = true
	}
}

// Completed reports whether the completed event was seen.
func (r *Recorder) Completed() bool {
	return r.completed
}

// Finish builds the run record for the given engine config and texts.
func (r *Recorder) Finish(cfg typer.Config, texts []string) (model.RunStats, []model.WordStats) {
	endedAt := r.now()
	run := model.RunStats{
		StartedAt:       r.startedAt,
		EndedAt:         endedAt,
		Texts:           append([]string(nil), texts...),
		EraseStyle:      string(cfg.EraseStyle),
		Repeat:          typer.FormatRepeat(cfg.Repeat),
		EraseOnComplete: cfg.EraseOnComplete,
		Shuffle:         cfg.Shuffle,
		CharsTyped:      r.charsTyped,
		WordsTyped:      r.wordsTyped,
		WordsErased:     r.wordsErased,
		Completed:       r.completed,
		DurationMs:      endedAt.Sub(r.startedAt).Milliseconds(),
	}
	words := make([]model.WordStats, 0, len(r.order))
	for _, w := range r.order {
		words = append(words, *r.words[w])
	}
	return run, words
}

func (r *Recorder) entry(word string) *model.WordStats {
	entry, ok := r.words[word]
	if !ok {
		entry = &model.WordStats{Word: word}
		r.words[word] = entry
		r.order = append(r.order, word)
	}
	return entry
}
