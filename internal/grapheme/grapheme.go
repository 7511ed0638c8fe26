// Package grapheme splits text into user-perceived characters.
package grapheme

import (
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// Grapheme is one extended grapheme cluster.
type Grapheme string

// Word is an immutable sequence of graphemes.
type Word []Grapheme

// Segment splits text into extended grapheme clusters. Emoji ZWJ sequences,
// modifier sequences, flags and keycaps each yield a single Grapheme.
func Segment(text string) Word {
	if text == "" {
		return Word{}
	}
	word := make(Word, 0, len(text))
	state := -1
	rest := text
	var cluster string
	for len(rest) > 0 {
		cluster, rest, _, state = uniseg.FirstGraphemeClusterInString(rest, state)
		word = append(word, Grapheme(cluster))
	}
	return word
}

// Count returns the number of graphemes in text.
func Count(text string) int {
	return uniseg.GraphemeClusterCount(text)
}

// Len returns the grapheme count.
func (w Word) Len() int {
	return len(w)
}

// String joins the graphemes back into text.
func (w Word) String() string {
	var b strings.Builder
	for _, g := range w {
		b.WriteString(string(g))
	}
	return b.String()
}

// Width returns the monospace cell width of g.
func Width(g Grapheme) int {
	return runewidth.StringWidth(string(g))
}
