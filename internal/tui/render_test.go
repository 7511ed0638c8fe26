package tui

import (
	"testing"

	"github.com/verte-zerg/typewriter/internal/grapheme"
	"github.com/verte-zerg/typewriter/internal/typer"
)

func chars(text string, mark typer.CharMark) []typer.Char {
	var out []typer.Char
	for _, r := range text {
		out = append(out, typer.Char{Text: grapheme.Grapheme(string(r)), Mark: mark})
	}
	return out
}

func TestBuildCellsHidesUntypedAndErased(t *testing.T) {
	snap := typer.Snapshot{
		Typed:   chars("ab", typer.MarkNone),
		Pending: append(chars("c", typer.MarkSelected), chars("d", typer.MarkErased)...),
	}
	cells := buildCells(snap, "|")
	if len(cells) != 4 {
		t.Fatalf("expected 4 cells, got %d", len(cells))
	}
	if cells[0].s != typedStyle.Render("a") {
		t.Fatalf("expected typed style for first cell")
	}
	if cells[2].s != "|" || cells[2].width != 1 {
		t.Fatalf("expected caret cell, got %+v", cells[2])
	}
	if cells[3].s != selectedStyle.Render("c") {
		t.Fatalf("expected selected style for suffix cell")
	}

	snap.Pending = chars("xyz", typer.MarkNone)
	if got := len(buildCells(snap, "")); got != 2 {
		t.Fatalf("expected untyped suffix to be hidden, got %d cells", got)
	}
}

func TestBuildCellsWideGraphemes(t *testing.T) {
	snap := typer.Snapshot{Typed: []typer.Char{{Text: "👩‍💻"}, {Text: "a"}}}
	cells := buildCells(snap, "")
	if cells[0].width != 2 || cells[1].width != 1 {
		t.Fatalf("unexpected widths: %d %d", cells[0].width, cells[1].width)
	}
}

func plainCells(text string) []styledCell {
	var out []styledCell
	for _, r := range text {
		out = append(out, styledCell{s: string(r), width: 1, isSpace: r == ' '})
	}
	return out
}

func TestWrapCellsBreaksOnSpace(t *testing.T) {
	got := wrapCells(plainCells("hello big world"), 10)
	if got != "hello big\nworld" {
		t.Fatalf("unexpected wrap: %q", got)
	}
}

func TestWrapCellsBreaksLongWord(t *testing.T) {
	got := wrapCells(plainCells("abcdefgh"), 3)
	if got != "abc\ndef\ngh" {
		t.Fatalf("unexpected wrap: %q", got)
	}
	if wrapCells(plainCells("ab"), 0) != "ab" {
		t.Fatalf("expected no wrapping for zero width")
	}
}
