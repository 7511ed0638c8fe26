// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Typer TyperConfig `toml:"typer"`
	Text  TextConfig  `toml:"text"`
}

// TyperConfig maps engine and player settings. Delays are milliseconds.
type TyperConfig struct {
	PreTypeDelay    *float64 `toml:"pre-type-delay"`
	TypeDelay       *float64 `toml:"type-delay"`
	PreEraseDelay   *float64 `toml:"pre-erase-delay"`
	EraseDelay      *float64 `toml:"erase-delay"`
	Repeat          *Repeat  `toml:"repeat"`
	EraseOnComplete *bool    `toml:"erase-on-complete"`
	EraseStyle      *string  `toml:"erase-style"`
	InitialAction   *string  `toml:"initial-action"`
	Shuffle         *bool    `toml:"shuffle"`
	Caret           *string  `toml:"caret"`
}

// TextConfig maps text source settings.
type TextConfig struct {
	Words    []string `toml:"words"`
	Wordlist *string  `toml:"wordlist"`
	Lang     *string  `toml:"lang"`
	Count    *int     `toml:"count"`
}

// Repeat holds the raw repeat value, either an integer or a word such as "infinite".
type Repeat string

// UnmarshalTOML accepts both integer and string values.
func (r *Repeat) UnmarshalTOML(v any) error {
	switch value := v.(type) {
	case int64:
		*r = Repeat(strconv.FormatInt(value, 10))
	case string:
		*r = Repeat(value)
	default:
		return fmt.Errorf("repeat must be an integer or string, got %T", v)
	}
	return nil
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	return cfg, nil
}
