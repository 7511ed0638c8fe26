package main

import (
	"fmt"
	"io"
	"time"

	"github.com/verte-zerg/typewriter/internal/generator"
	"github.com/verte-zerg/typewriter/internal/schedule"
	"github.com/verte-zerg/typewriter/internal/typer"
)

// writeTimeline runs the engine on a virtual clock and prints one line per
// event: the offset from start, the event name, and its detail.
func writeTimeline(w io.Writer, texts []string, cfg typer.Config, gen *generator.Generator, until time.Duration) error {
	if cfg.Repeat == typer.RepeatInfinite && cfg.PreTypeDelay == 0 && cfg.TypeDelay == 0 &&
		cfg.PreEraseDelay == 0 && cfg.EraseDelay == 0 {
		return fmt.Errorf("an endless run with every delay at 0 never advances the clock; set a delay or --repeat")
	}
	clock := schedule.NewVirtual()
	engine, err := typer.New(texts, cfg, clock, typer.WithGenerator(gen))
	if err != nil {
		return err
	}
	var writeErr error
	emit := func(offset time.Duration, name, detail string) {
		if writeErr != nil {
			return
		}
		_, writeErr = fmt.Fprintf(w, "%10s  %-10s  %s\n", offset, name, detail)
	}
	engine.Subscribe(func(ev typer.Event) {
		emit(clock.Now(), ev.Kind.String(), eventDetail(ev))
	})

	engine.Start()
	clock.RunUntilIdle(until)
	if clock.Stalled() {
		emit(clock.Now(), "stalled", fmt.Sprintf("%d steps without time passing", schedule.MaxFiresPerInstant))
	}
	if engine.Phase() != typer.Complete {
		emit(clock.Now(), "until", fmt.Sprintf("phase=%s word=%d caret=%d", engine.Phase(), engine.WordIndex(), engine.Caret()))
	}
	engine.Stop()
	return writeErr
}

func eventDetail(ev typer.Event) string {
	switch ev.Kind {
	case typer.EventTypedChar:
		return fmt.Sprintf("%q@%d", string(ev.Char), ev.Index)
	case typer.EventTyped, typer.EventErased:
		return fmt.Sprintf("%q", ev.Word)
	default:
		return ""
	}
}
