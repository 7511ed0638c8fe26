// Package tui provides the Bubble Tea typewriter player and history browser.
package tui

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/typewriter/internal/generator"
	"github.com/verte-zerg/typewriter/internal/stats"
	"github.com/verte-zerg/typewriter/internal/store"
	"github.com/verte-zerg/typewriter/internal/typer"
)

// Caret modes accepted by ParseCaretMode.
const (
	CaretBlink = "blink"
	CaretSolid = "solid"
	CaretHide  = "hide"
)

// ParseCaretMode maps a caret option to a cursor mode.
func ParseCaretMode(raw string) (cursor.Mode, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case CaretBlink:
		return cursor.CursorBlink, true
	case CaretSolid:
		return cursor.CursorStatic, true
	case CaretHide:
		return cursor.CursorHide, true
	default:
		return cursor.CursorBlink, false
	}
}

// Options configures the player.
type Options struct {
	Caret string
	// Store receives each run. Nil disables history.
	Store *store.Store
	// Generator drives shuffling. Nil uses a random seed.
	Generator *generator.Generator
}

// Model implements the Bubble Tea typewriter player.
type Model struct {
	engine   *typer.Engine
	sched    *teaScheduler
	store    *store.Store
	recorder *stats.Recorder
	saved    bool

	caret     cursor.Model
	caretMode cursor.Mode

	width  int
	height int
}

// NewModel builds a player for texts. The engine starts in Init.
func NewModel(texts []string, cfg typer.Config, opts Options) (*Model, error) {
	mode, ok := ParseCaretMode(opts.Caret)
	if opts.Caret != "" && !ok {
		return nil, fmt.Errorf("invalid caret mode %q (expected blink, solid, or hide)", opts.Caret)
	}
	sched := newTeaScheduler()
	engine, err := typer.New(texts, cfg, sched,
		typer.WithGenerator(opts.Generator),
		typer.WithPanicHandler(func(ev typer.Event, recovered any) {
			logErrf("observer panicked on %s: %v\n", ev.Kind, recovered)
		}),
	)
	if err != nil {
		return nil, err
	}
	caret := cursor.New()
	caret.Style = caretStyle.Reverse(true)
	caret.TextStyle = caretStyle
	caret.SetChar(" ")

	m := &Model{
		engine:    engine,
		sched:     sched,
		store:     opts.Store,
		recorder:  stats.NewRecorder(nil),
		caret:     caret,
		caretMode: mode,
	}
	engine.Subscribe(m.observe)
	return m, nil
}

// Engine exposes the animated engine.
func (m *Model) Engine() *typer.Engine {
	return m.engine
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	modeCmd := m.caret.SetMode(m.caretMode)
	focusCmd := m.caret.Focus()
	m.engine.Start()
	return tea.Batch(m.sched.drain(), modeCmd, focusCmd)
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case fireMsg:
		m.sched.fire(msg.id)
		return m, m.sched.drain()
	case tea.KeyMsg:
		return m.handleKey(msg)
	default:
		var cmd tea.Cmd
		m.caret, cmd = m.caret.Update(msg)
		return m, cmd
	}
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q", "esc":
		m.saveRun()
		m.engine.Stop()
		return m, tea.Quit
	case "r":
		m.saveRun()
		m.recorder = stats.NewRecorder(nil)
		m.saved = false
		m.engine.Reset()
	case "home":
		m.engine.MoveCaretToStart()
	case "end":
		m.engine.MoveCaretToEnd()
	case "left":
		m.engine.ShiftCaret(m.engine.Caret() - 1)
	case "right":
		m.engine.ShiftCaret(m.engine.Caret() + 1)
	case ".":
		m.engine.TypeStep()
	default:
		return m, nil
	}
	return m, m.sched.drain()
}

func (m *Model) observe(ev typer.Event) {
	m.recorder.Observe(ev)
	if ev.Kind == typer.EventCompleted {
		m.saveRun()
	}
}

// saveRun stores the current run once. Runs that typed nothing are skipped.
func (m *Model) saveRun() {
	if m.saved {
		return
	}
	m.saved = true
	if m.store == nil {
		return
	}
	run, words := m.recorder.Finish(m.engine.Config(), m.engine.Texts())
	if run.CharsTyped == 0 {
		return
	}
	if _, err := m.store.InsertRun(context.Background(), run, words); err != nil {
		logErrf("failed to save run: %v\n", err)
	}
}

// View implements tea.Model.
func (m *Model) View() string {
	cells := buildCells(m.engine.Snapshot(), m.caret.View())
	if m.width == 0 || m.height == 0 {
		return renderCells(cells)
	}
	contentWidth := int(float64(m.width) * 0.70)
	if contentWidth < 1 {
		contentWidth = 1
	}
	content := lipgloss.NewStyle().Width(contentWidth).Render(wrapCells(cells, contentWidth))
	footer := m.renderFooter()
	if m.height < 3 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
	}
	bodyHeight := m.height - 1
	body := lipgloss.Place(m.width, bodyHeight, lipgloss.Center, lipgloss.Center, content)
	footerLine := lipgloss.Place(m.width, 1, lipgloss.Center, lipgloss.Center, footer)
	return body + "\n" + footerLine
}

func (m *Model) renderFooter() string {
	texts := m.engine.Texts()
	segments := []string{m.engine.Phase().String()}
	if len(texts) > 0 {
		segments = append(segments, fmt.Sprintf("word %d/%d", m.engine.WordIndex()+1, len(texts)))
	}
	if m.engine.Config().Repeat == typer.RepeatInfinite {
		segments = append(segments, "repeat ∞")
	} else {
		segments = append(segments, fmt.Sprintf("repeats left %d", m.engine.RepeatsRemaining()))
	}
	segments = append(segments, "q quit · r reset · ←/→ caret · . step")
	return footerStyle.Render(strings.Join(segments, "  "))
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
