package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/typewriter/internal/grapheme"
	"github.com/verte-zerg/typewriter/internal/typer"
)

var (
	typedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#101010")).Background(lipgloss.Color("#C89A3A"))
	caretStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
	footerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
)

type styledCell struct {
	s       string
	width   int
	isSpace bool
}

// buildCells lays out the typed prefix, the caret, and the selected part of
// the suffix. Untyped and erased graphemes take no space.
func buildCells(snap typer.Snapshot, caret string) []styledCell {
	out := make([]styledCell, 0, len(snap.Typed)+len(snap.Pending)+1)
	for _, c := range snap.Typed {
		out = append(out, cellFor(c.Text, typedStyle))
	}
	if caret != "" {
		out = append(out, styledCell{s: caret, width: lipgloss.Width(caret)})
	}
	for _, c := range snap.Pending {
		if c.Mark != typer.MarkSelected {
			continue
		}
		out = append(out, cellFor(c.Text, selectedStyle))
	}
	return out
}

func cellFor(g grapheme.Grapheme, style lipgloss.Style) styledCell {
	return styledCell{
		s:       style.Render(string(g)),
		width:   grapheme.Width(g),
		isSpace: g == " ",
	}
}

func renderCells(cells []styledCell) string {
	var b strings.Builder
	for _, item := range cells {
		b.WriteString(item.s)
	}
	return b.String()
}

// wrapCells breaks lines at the last space that fits, or mid-word when none does.
func wrapCells(cells []styledCell, width int) string {
	if width <= 0 {
		return renderCells(cells)
	}
	var out strings.Builder
	line := make([]styledCell, 0, len(cells))
	lineWidth := 0
	lastSpaceIdx := -1

	for i := 0; i < len(cells); {
		item := cells[i]
		if lineWidth+item.width > width && len(line) > 0 {
			if lastSpaceIdx >= 0 {
				out.WriteString(renderCells(line[:lastSpaceIdx]))
				out.WriteRune('\n')
				line = append([]styledCell{}, line[lastSpaceIdx+1:]...)
				lineWidth = lineWidthOf(line)
				lastSpaceIdx = lastSpaceIndex(line)
			} else {
				out.WriteString(renderCells(line))
				out.WriteRune('\n')
				line = line[:0]
				lineWidth = 0
				lastSpaceIdx = -1
			}
			continue
		}
		line = append(line, item)
		lineWidth += item.width
		if item.isSpace {
			lastSpaceIdx = len(line) - 1
		}
		i++
	}
	out.WriteString(renderCells(line))
	return out.String()
}

func lineWidthOf(line []styledCell) int {
	total := 0
	for _, item := range line {
		total += item.width
	}
	return total
}

func lastSpaceIndex(line []styledCell) int {
	for i := len(line) - 1; i >= 0; i-- {
		if line[i].isSpace {
			return i
		}
	}
	return -1
}
