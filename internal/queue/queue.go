// Package queue holds the ordered words a typewriter cycles through.
package queue

import (
	"github.com/verte-zerg/typewriter/internal/generator"
	"github.com/verte-zerg/typewriter/internal/grapheme"
)

// Queue is an ordered, optionally shuffled list of segmented words.
type Queue struct {
	texts    []string
	words    []grapheme.Word
	index    int
	shuffled bool
}

// New segments texts and, when shuffle is set, permutes them once.
// A nil gen is replaced with a time-seeded generator.
func New(texts []string, shuffle bool, gen *generator.Generator) *Queue {
	q := &Queue{texts: append([]string(nil), texts...)}
	if shuffle && len(q.texts) > 1 {
		if gen == nil {
			gen = generator.New()
		}
		generator.Shuffle(gen, q.texts)
		q.shuffled = true
	}
	q.words = make([]grapheme.Word, len(q.texts))
	for i, text := range q.texts {
		q.words[i] = grapheme.Segment(text)
	}
	return q
}

// FromString builds a one-word queue.
func FromString(text string) *Queue {
	return New([]string{text}, false, nil)
}

// Current returns the active word. An empty queue yields an empty word.
func (q *Queue) Current() grapheme.Word {
	if len(q.words) == 0 {
		return grapheme.Word{}
	}
	return q.words[q.index]
}

// Index returns the active word index.
func (q *Queue) Index() int {
	return q.index
}

// Len returns the number of words.
func (q *Queue) Len() int {
	return len(q.words)
}

// IsLast reports whether the active word ends the pass.
func (q *Queue) IsLast() bool {
	return q.index >= len(q.words)-1
}

// Shuffled reports whether the order was permuted at construction.
func (q *Queue) Shuffled() bool {
	return q.shuffled
}

// Texts returns the words in queue order.
func (q *Queue) Texts() []string {
	return append([]string(nil), q.texts...)
}

// Advance moves to the next word, wrapping after the last one. It returns
// true when the advance completed a full pass.
func (q *Queue) Advance() bool {
	if len(q.words) == 0 {
		return true
	}
	q.index++
	if q.index >= len(q.words) {
		q.index = 0
		return true
	}
	return false
}

// Reset returns to the first word. The order is kept.
func (q *Queue) Reset() {
	q.index = 0
}
