package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"

	"github.com/verte-zerg/typewriter/internal/config"
	"github.com/verte-zerg/typewriter/internal/generator"
	"github.com/verte-zerg/typewriter/internal/typer"
)

func newFlagCmd(f *typerFlags, text *textFlags) *cobra.Command {
	cmd := &cobra.Command{Use: "test"}
	f.register(cmd)
	text.register(cmd)
	return cmd
}

func TestTyperFlagsDefaultsMatchEngine(t *testing.T) {
	f := newTyperFlags()
	newFlagCmd(f, &textFlags{})
	cfg, err := f.build()
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if cfg != typer.DefaultConfig() {
		t.Fatalf("expected default config, got %+v", cfg)
	}
}

func TestTyperFlagsConfigMergeKeepsChangedFlags(t *testing.T) {
	f := newTyperFlags()
	cmd := newFlagCmd(f, &textFlags{})
	if err := cmd.ParseFlags([]string{"--type-delay", "5", "--erase-style", "clear"}); err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	typeDelay := 100.0
	preType := 12.5
	style := "backspace"
	repeat := config.Repeat("3")
	f.apply(cmd, config.TyperConfig{
		TypeDelay:    &typeDelay,
		PreTypeDelay: &preType,
		EraseStyle:   &style,
		Repeat:       &repeat,
	})
	cfg, err := f.build()
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if cfg.TypeDelay != 5*time.Millisecond {
		t.Fatalf("flag must win over config, got %v", cfg.TypeDelay)
	}
	if cfg.PreTypeDelay != 12500*time.Microsecond {
		t.Fatalf("config must fill unchanged flag, got %v", cfg.PreTypeDelay)
	}
	if cfg.EraseStyle != typer.EraseClear || cfg.Repeat != 3 {
		t.Fatalf("unexpected config %+v", cfg)
	}
}

func TestTyperFlagsReportsEveryBadValue(t *testing.T) {
	f := newTyperFlags()
	cmd := newFlagCmd(f, &textFlags{})
	args := []string{"--erase-delay", "-1", "--repeat", "lots", "--initial-action", "waiting"}
	if err := cmd.ParseFlags(args); err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	_, err := f.build()
	if err == nil {
		t.Fatalf("expected error")
	}
	for _, want := range []string{"--erase-delay", "--repeat", "initial-action"} {
		if !strings.Contains(err.Error(), want) {
			t.Fatalf("expected %q in %v", want, err)
		}
	}
}

func TestResolveTextsOrder(t *testing.T) {
	gen := generator.NewSeeded(1)
	fileCfg := config.TextConfig{Words: []string{"from", "config"}}
	texts, err := resolveTexts([]string{"arg"}, fileCfg, textFlags{}, gen)
	if err != nil || len(texts) != 1 || texts[0] != "arg" {
		t.Fatalf("expected args first, got %v, %v", texts, err)
	}
	texts, err = resolveTexts(nil, fileCfg, textFlags{}, gen)
	if err != nil || len(texts) != 2 {
		t.Fatalf("expected config words, got %v, %v", texts, err)
	}

	path := filepath.Join(t.TempDir(), "en.txt")
	if err := os.WriteFile(path, []byte("alpha\nbeta\ngamma\n"), 0o644); err != nil {
		t.Fatalf("write list: %v", err)
	}
	texts, err = resolveTexts(nil, config.TextConfig{}, textFlags{wordlist: path, lang: "en", count: 4}, gen)
	if err != nil || len(texts) != 4 {
		t.Fatalf("expected 4 picked words, got %v, %v", texts, err)
	}
	if _, err := resolveTexts(nil, config.TextConfig{}, textFlags{wordlist: filepath.Join(t.TempDir(), "missing.txt"), lang: "en", count: 1}, gen); err == nil {
		t.Fatalf("expected missing list error")
	}
}

func TestWriteTimeline(t *testing.T) {
	cfg := typer.DefaultConfig()
	cfg.PreTypeDelay = 10 * time.Millisecond
	cfg.TypeDelay = 5 * time.Millisecond
	cfg.Repeat = 0
	var buf bytes.Buffer
	if err := writeTimeline(&buf, []string{"ab"}, cfg, generator.NewSeeded(1), time.Second); err != nil {
		t.Fatalf("write timeline: %v", err)
	}
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	want := [][]string{
		{"10ms", "typed-char", `"a"@0`},
		{"15ms", "typed-char", `"b"@1`},
		{"15ms", "typed", `"ab"`},
		{"15ms", "completed"},
	}
	if len(lines) != len(want) {
		t.Fatalf("unexpected timeline:\n%s", buf.String())
	}
	for i, fields := range want {
		if got := strings.Fields(lines[i]); strings.Join(got, " ") != strings.Join(fields, " ") {
			t.Fatalf("line %d: got %q want %v", i, lines[i], fields)
		}
	}
}

func TestWriteTimelineStopsAtLimit(t *testing.T) {
	var buf bytes.Buffer
	if err := writeTimeline(&buf, []string{"loop"}, typer.DefaultConfig(), generator.NewSeeded(1), time.Second); err != nil {
		t.Fatalf("write timeline: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "until") || strings.Contains(out, "completed") {
		t.Fatalf("expected run cut at the limit:\n%s", out)
	}
}

func TestWriteTimelineZeroDelays(t *testing.T) {
	cfg := typer.DefaultConfig()
	cfg.PreTypeDelay, cfg.TypeDelay, cfg.PreEraseDelay, cfg.EraseDelay = 0, 0, 0, 0

	done := make(chan error, 1)
	var buf bytes.Buffer
	go func() {
		done <- writeTimeline(&buf, []string{"a"}, cfg, generator.NewSeeded(1), time.Second)
	}()
	select {
	case err := <-done:
		if err == nil {
			t.Fatalf("expected an endless zero-delay run to be rejected")
		}
	case <-time.After(3 * time.Second):
		t.Fatalf("writeTimeline did not return with zero delays")
	}
	if buf.Len() != 0 {
		t.Fatalf("expected no output for a rejected run, got %q", buf.String())
	}

	cfg.Repeat = 2
	buf.Reset()
	if err := writeTimeline(&buf, []string{"a"}, cfg, generator.NewSeeded(1), time.Second); err != nil {
		t.Fatalf("finite zero-delay run: %v", err)
	}
	if got := strings.Count(buf.String(), "typed-char"); got != 3 || !strings.Contains(buf.String(), "completed") {
		t.Fatalf("expected three passes ending in completed:\n%s", buf.String())
	}
}

func TestImportWordList(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.txt")
	if err := os.WriteFile(src, []byte("hello\n日本\nnaïve\nworld\n"), 0o644); err != nil {
		t.Fatalf("write src: %v", err)
	}
	dst := filepath.Join(dir, "lists", "en.txt")
	if err := importWordList(src, "EN", dst, false); err != nil {
		t.Fatalf("import: %v", err)
	}
	data, err := os.ReadFile(dst)
	if err != nil {
		t.Fatalf("read dst: %v", err)
	}
	if string(data) != "hello\nnaïve\nworld\n" {
		t.Fatalf("unexpected list %q", data)
	}
	if err := importWordList(src, "en", dst, false); err == nil {
		t.Fatalf("expected error for existing list without --force")
	}
	if err := importWordList(src, "en", dst, true); err != nil {
		t.Fatalf("forced import: %v", err)
	}
}

func TestDefaultConfigTemplateDecodes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
		t.Fatalf("write template: %v", err)
	}
	cfg, err := config.LoadConfig(path)
	if err != nil {
		t.Fatalf("load template: %v", err)
	}
	if cfg.Typer.Repeat != nil || cfg.Text.Words != nil {
		t.Fatalf("template values must be commented out: %+v", cfg)
	}
}
