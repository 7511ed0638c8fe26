// Package player plays a typewriter run on a plain output stream.
package player

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/typewriter/internal/generator"
	"github.com/verte-zerg/typewriter/internal/schedule"
	"github.com/verte-zerg/typewriter/internal/stats"
	"github.com/verte-zerg/typewriter/internal/store"
	"github.com/verte-zerg/typewriter/internal/typer"
)

const (
	caretGlyph = "|"
	clearLine  = "\r\x1b[2K"
)

var selectedStyle = lipgloss.NewStyle().Reverse(true)

// Options configures a plain run.
type Options struct {
	Out io.Writer
	// Frames redraws the current word in place after every step. Without it
	// one line is written per typed, erased, and completed event.
	Frames bool
	// Store receives the run. Nil disables history.
	Store *store.Store
	// Generator drives shuffling. Nil uses a random seed.
	Generator *generator.Generator
}

type player struct {
	out    io.Writer
	frames bool
	engine *typer.Engine
	err    error
}

// Play animates texts until the run completes or ctx is done. An interrupted
// run is not an error.
func Play(ctx context.Context, texts []string, cfg typer.Config, opts Options) error {
	out := opts.Out
	if out == nil {
		out = os.Stdout
	}
	p := &player{out: out, frames: opts.Frames}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	loop := schedule.NewLoop()
	engine, err := typer.New(texts, cfg, redrawScheduler{inner: loop, p: p}, typer.WithGenerator(opts.Generator))
	if err != nil {
		return err
	}
	p.engine = engine
	recorder := stats.NewRecorder(nil)
	engine.Subscribe(recorder.Observe)
	engine.Subscribe(p.observe)
	engine.OnCompleted(cancel)

	loop.Do(func() {
		engine.Start()
		p.redraw()
	})
	if err := loop.Run(ctx); err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	engine.Stop()
	if p.frames {
		p.write("\n")
	}

	if opts.Store != nil {
		run, words := recorder.Finish(engine.Config(), engine.Texts())
		if run.CharsTyped > 0 {
			if _, err := opts.Store.InsertRun(context.Background(), run, words); err != nil {
				return fmt.Errorf("failed to save run: %w", err)
			}
		}
	}
	return p.err
}

func (p *player) observe(ev typer.Event) {
	if p.frames {
		return
	}
	switch ev.Kind {
	case typer.EventTyped, typer.EventErased:
		p.write(fmt.Sprintf("%s\t%s\n", ev.Kind, ev.Word))
	case typer.EventCompleted:
		p.write(ev.Kind.String() + "\n")
	}
}

func (p *player) redraw() {
	if !p.frames {
		return
	}
	p.write(clearLine + Frame(p.engine.Snapshot()))
}

// write keeps the first output error and drops later writes.
func (p *player) write(s string) {
	if p.err != nil {
		return
	}
	if _, err := io.WriteString(p.out, s); err != nil {
		p.err = err
	}
}

// Frame renders a snapshot as one line: the typed prefix, the caret, and
// the selected part of the suffix.
func Frame(snap typer.Snapshot) string {
	var b strings.Builder
	b.WriteString(snap.TypedText())
	b.WriteString(caretGlyph)
	var selected strings.Builder
	for _, c := range snap.Pending {
		if c.Mark == typer.MarkSelected {
			selected.WriteString(string(c.Text))
		}
	}
	if selected.Len() > 0 {
		b.WriteString(selectedStyle.Render(selected.String()))
	}
	return b.String()
}

// redrawScheduler redraws the frame after every engine step.
type redrawScheduler struct {
	inner schedule.Scheduler
	p     *player
}

func (s redrawScheduler) After(d time.Duration, fn func()) schedule.Handle {
	return s.inner.After(d, func() {
		fn()
		s.p.redraw()
	})
}

func (s redrawScheduler) CancelAll() {
	s.inner.CancelAll()
}
