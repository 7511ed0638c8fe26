package config

import (
	"math"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("missing file must not fail: %v", err)
	}
	if cfg.Typer.TypeDelay != nil || cfg.Text.Words != nil {
		t.Fatalf("expected empty config, got %+v", cfg)
	}
}

func TestLoadConfigValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	data := `
[typer]
pre-type-delay = 100
type-delay = 42.5
erase-delay = nan
repeat = 3
erase-style = "select-back"
shuffle = true
caret = "solid"

[text]
words = ["hello", "👋"]
count = 5
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Typer.PreTypeDelay == nil || *cfg.Typer.PreTypeDelay != 100 {
		t.Fatalf("expected integer delay to decode as float")
	}
	if cfg.Typer.TypeDelay == nil || *cfg.Typer.TypeDelay != 42.5 {
		t.Fatalf("unexpected type-delay")
	}
	if cfg.Typer.EraseDelay == nil || !math.IsNaN(*cfg.Typer.EraseDelay) {
		t.Fatalf("expected nan to decode so validation can reject it")
	}
	if cfg.Typer.Repeat == nil || *cfg.Typer.Repeat != "3" {
		t.Fatalf("unexpected repeat %v", cfg.Typer.Repeat)
	}
	if cfg.Typer.PreEraseDelay != nil {
		t.Fatalf("unset value must stay nil")
	}
	if cfg.Typer.EraseStyle == nil || *cfg.Typer.EraseStyle != "select-back" {
		t.Fatalf("unexpected erase-style")
	}
	if len(cfg.Text.Words) != 2 || cfg.Text.Words[1] != "👋" {
		t.Fatalf("unexpected words %v", cfg.Text.Words)
	}
	if cfg.Text.Count == nil || *cfg.Text.Count != 5 {
		t.Fatalf("unexpected count")
	}
}

func TestLoadConfigRepeatString(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[typer]\nrepeat = \"infinite\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Typer.Repeat == nil || *cfg.Typer.Repeat != "infinite" {
		t.Fatalf("unexpected repeat %v", cfg.Typer.Repeat)
	}
}

func TestLoadConfigRepeatWrongType(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[typer]\nrepeat = true\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Fatalf("expected error for boolean repeat")
	}
}

func TestDefaultPathsUseXDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/cfg")
	t.Setenv("XDG_DATA_HOME", "/tmp/data")
	if DefaultConfigPath() != filepath.Join("/tmp/cfg", "typewriter", "config.toml") {
		t.Fatalf("unexpected config path %s", DefaultConfigPath())
	}
	if DefaultDBPath() != filepath.Join("/tmp/data", "typewriter", "history.db") {
		t.Fatalf("unexpected db path %s", DefaultDBPath())
	}
	if DefaultWordListPath("en") != filepath.Join("/tmp/cfg", "typewriter", "wordlists", "en.txt") {
		t.Fatalf("unexpected wordlist path %s", DefaultWordListPath("en"))
	}
}
