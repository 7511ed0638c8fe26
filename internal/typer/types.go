package typer

import (
	"strings"

	"github.com/verte-zerg/typewriter/internal/grapheme"
)

// Phase is the engine state.
type Phase int

// Phases.
const (
	Idle Phase = iota
	Typing
	TypedPause
	Erasing
	ErasedPause
	Complete
)

// String returns the state name.
func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Typing:
		return "typing"
	case TypedPause:
		return "typed"
	case Erasing:
		return "erasing"
	case ErasedPause:
		return "erased"
	case Complete:
		return "complete"
	default:
		return "unknown"
	}
}

// CharMark classifies a grapheme during erasing.
type CharMark int

// Marks.
const (
	MarkNone CharMark = iota
	MarkSelected
	MarkErased
)

// String returns the mark name.
func (m CharMark) String() string {
	switch m {
	case MarkNone:
		return "none"
	case MarkSelected:
		return "selected"
	case MarkErased:
		return "erased"
	default:
		return "unknown"
	}
}

// Char is one grapheme with its mark.
type Char struct {
	Text grapheme.Grapheme
	Mark CharMark
}

// Snapshot is a read-only view of the engine for renderers.
type Snapshot struct {
	Phase     Phase
	WordIndex int
	Caret     int
	Length    int
	Typed     []Char
	Pending   []Char
}

// Word returns the full current word.
func (s Snapshot) Word() string {
	return s.TypedText() + s.PendingText()
}

// TypedText returns the typed prefix as text.
func (s Snapshot) TypedText() string {
	return joinChars(s.Typed)
}

// PendingText returns the suffix as text.
func (s Snapshot) PendingText() string {
	return joinChars(s.Pending)
}

func joinChars(chars []Char) string {
	var b strings.Builder
	for _, c := range chars {
		b.WriteString(string(c.Text))
	}
	return b.String()
}
