package player

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/verte-zerg/typewriter/internal/model"
	"github.com/verte-zerg/typewriter/internal/store"
	"github.com/verte-zerg/typewriter/internal/typer"
)

func fastConfig() typer.Config {
	cfg := typer.DefaultConfig()
	cfg.PreTypeDelay, cfg.TypeDelay, cfg.PreEraseDelay, cfg.EraseDelay = time.Millisecond, 0, time.Millisecond, 0
	cfg.Repeat = 0
	return cfg
}

func TestPlayWritesEventLines(t *testing.T) {
	var buf bytes.Buffer
	if err := Play(context.Background(), []string{"one", "two"}, fastConfig(), Options{Out: &buf}); err != nil {
		t.Fatalf("play: %v", err)
	}
	want := "typed\tone\nerased\tone\ntyped\ttwo\ncompleted\n"
	if buf.String() != want {
		t.Fatalf("unexpected output:\n%q\nwant\n%q", buf.String(), want)
	}
}

func TestPlayFrames(t *testing.T) {
	var buf bytes.Buffer
	if err := Play(context.Background(), []string{"ab"}, fastConfig(), Options{Out: &buf, Frames: true}); err != nil {
		t.Fatalf("play: %v", err)
	}
	out := buf.String()
	if !strings.HasSuffix(out, clearLine+"ab|\n") {
		t.Fatalf("expected final frame, got %q", out)
	}
	if !strings.Contains(out, clearLine+"a|") {
		t.Fatalf("expected intermediate frame, got %q", out)
	}
}

func TestPlayStopsOnContextAndRecords(t *testing.T) {
	st, err := store.Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})

	cfg := fastConfig()
	cfg.Repeat = typer.RepeatInfinite
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	var buf bytes.Buffer
	if err := Play(ctx, []string{"loop"}, cfg, Options{Out: &buf, Store: st}); err != nil {
		t.Fatalf("play: %v", err)
	}
	runs, err := st.ListRuns(context.Background(), model.HistoryConfig{})
	if err != nil {
		t.Fatalf("list runs: %v", err)
	}
	if len(runs) != 1 || runs[0].Completed || runs[0].CharsTyped == 0 {
		t.Fatalf("unexpected runs: %+v", runs)
	}
	if strings.Contains(buf.String(), "completed") {
		t.Fatalf("interrupted run must not complete")
	}
}

func TestFrameShowsSelection(t *testing.T) {
	snap := typer.Snapshot{
		Typed:   []typer.Char{{Text: "a"}},
		Pending: []typer.Char{{Text: "b", Mark: typer.MarkSelected}, {Text: "c", Mark: typer.MarkErased}},
	}
	if got := Frame(snap); got != "a|"+selectedStyle.Render("b") {
		t.Fatalf("unexpected frame %q", got)
	}
}

func TestPlayRejectsInvalidConfig(t *testing.T) {
	cfg := fastConfig()
	cfg.Repeat = -1
	if err := Play(context.Background(), []string{"x"}, cfg, Options{Out: &bytes.Buffer{}}); err == nil {
		t.Fatalf("expected config error")
	}
}
