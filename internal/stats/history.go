package stats

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"golang.org/x/term"

	"github.com/verte-zerg/typewriter/internal/model"
)

const (
	terminalWidthBackup = 80
	minTextsWidth       = 12
	historyTimeLayout   = "2006-01-02 15:04"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true)
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
)

// HistoryHeaders names the columns produced by HistoryRows.
var HistoryHeaders = []string{"Ended", "Style", "Chars", "Typed", "Erased", "Time", "Done", "Texts"}

var historyRightAlign = map[int]bool{2: true, 3: true, 4: true, 5: true}

// RenderHistory writes a run table followed by the most typed words.
func RenderHistory(w io.Writer, report Report, forceColor bool) error {
	if len(report.Runs) == 0 {
		_, err := fmt.Fprintln(w, "No runs found.")
		return err
	}
	useColor := shouldUseColor(w, forceColor)

	if err := writeTitle(w, fmt.Sprintf("Runs (%d)", len(report.Runs)), useColor); err != nil {
		return err
	}
	rows := HistoryRows(report.Runs, textsWidth(terminalWidth()))
	if err := writeTable(w, HistoryHeaders, rows, historyRightAlign, useColor); err != nil {
		return err
	}

	if len(report.TopWords) == 0 {
		return nil
	}
	if _, err := fmt.Fprintln(w); err != nil {
		return err
	}
	if err := writeTitle(w, "Top words", useColor); err != nil {
		return err
	}
	wordRows := make([][]string, 0, len(report.TopWords))
	for _, agg := range report.TopWords {
		wordRows = append(wordRows, []string{agg.Word, strconv.Itoa(agg.Typed), strconv.Itoa(agg.Erased)})
	}
	return writeTable(w, []string{"Word", "Typed", "Erased"}, wordRows, map[int]bool{1: true, 2: true}, useColor)
}

// HistoryRows formats runs as table rows. Texts are cut to textsWidth cells.
func HistoryRows(runs []model.RunAggregate, textsWidth int) [][]string {
	rows := make([][]string, 0, len(runs))
	for _, run := range runs {
		done := "no"
		if run.Completed {
			done = "yes"
		}
		rows = append(rows, []string{
			run.EndedAt.Local().Format(historyTimeLayout),
			run.EraseStyle,
			strconv.Itoa(run.CharsTyped),
			strconv.Itoa(run.WordsTyped),
			strconv.Itoa(run.WordsErased),
			formatDuration(run.DurationMs),
			done,
			runewidth.Truncate(strings.Join(run.Texts, ", "), textsWidth, "…"),
		})
	}
	return rows
}

func writeTitle(w io.Writer, title string, useColor bool) error {
	if useColor {
		title = titleStyle.Render(title)
	}
	_, err := fmt.Fprintln(w, title)
	return err
}

func writeTable(w io.Writer, headers []string, rows [][]string, rightAlign map[int]bool, useColor bool) error {
	lines := formatTable(headers, rows, rightAlign)
	for i, line := range lines {
		if i == 0 && useColor {
			line = headerStyle.Render(line)
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

func formatDuration(ms int64) string {
	d := time.Duration(ms) * time.Millisecond
	return d.Round(100 * time.Millisecond).String()
}

// textsWidth leaves room for the fixed columns of the run table.
func textsWidth(total int) int {
	fixed := len(historyTimeLayout) + 12 + 6 + 6 + 6 + 8 + 4 + len(HistoryHeaders) - 1
	width := total - fixed
	if width < minTextsWidth {
		width = minTextsWidth
	}
	return width
}

func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return terminalWidthBackup
	}
	return width
}

func shouldUseColor(w io.Writer, force bool) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if force {
		return true
	}
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(file.Fd()))
}
