package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/typewriter/internal/stats"
)

const historyTextsWidth = 48

var historyTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#C0C0C0"))

// HistoryModel browses stored runs in a table.
type HistoryModel struct {
	report stats.Report
	table  table.Model

	width  int
	height int
}

// NewHistoryModel builds the history browser for report.
func NewHistoryModel(report stats.Report) *HistoryModel {
	rows := stats.HistoryRows(report.Runs, historyTextsWidth)
	t := table.New(
		table.WithColumns(historyColumns(rows)),
		table.WithRows(toTableRows(rows)),
		table.WithFocused(true),
		table.WithHeight(10),
	)
	t.SetStyles(historyTableStyles())
	if len(rows) > 0 {
		t.SetCursor(len(rows) - 1)
	}
	return &HistoryModel{report: report, table: t}
}

// Init implements tea.Model.
func (m *HistoryModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *HistoryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table.SetWidth(msg.Width)
		m.table.SetHeight(maxInt(1, msg.Height-4))
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			return m, tea.Quit
		}
	}
	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m *HistoryModel) View() string {
	title := historyTitleStyle.Render(fmt.Sprintf("Runs (%d)", len(m.report.Runs)))
	if len(m.report.Runs) == 0 {
		return title + "\n\nNo runs found.\n" + footerStyle.Render("q quit")
	}
	return title + "\n" + m.table.View() + "\n" + footerStyle.Render(m.selectedSummary()+"  ↑/↓ move · q quit")
}

func (m *HistoryModel) selectedSummary() string {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.report.Runs) {
		return ""
	}
	run := m.report.Runs[idx]
	return fmt.Sprintf("run #%d: %d words", run.RunID, len(run.Texts))
}

func historyColumns(rows [][]string) []table.Column {
	columns := make([]table.Column, len(stats.HistoryHeaders))
	for i, title := range stats.HistoryHeaders {
		width := runewidth.StringWidth(title)
		for _, row := range rows {
			if i < len(row) {
				width = maxInt(width, runewidth.StringWidth(row[i]))
			}
		}
		columns[i] = table.Column{Title: title, Width: width}
	}
	return columns
}

func toTableRows(rows [][]string) []table.Row {
	out := make([]table.Row, len(rows))
	for i, row := range rows {
		out[i] = table.Row(row)
	}
	return out
}

func historyTableStyles() table.Styles {
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(lipgloss.Color("#4A4A4A")).
		Foreground(lipgloss.Color("#C0C0C0")).
		Bold(true).
		Padding(0, 1).
		PaddingLeft(0)
	styles.Cell = styles.Cell.
		Padding(0, 1).
		PaddingLeft(0)
	styles.Selected = styles.Cell.
		Foreground(lipgloss.Color("#F0F0F0")).
		Bold(true)
	return styles
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
