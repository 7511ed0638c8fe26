// Package model defines shared data structures.
package model

import "time"

// PlayConfig defines where the played text comes from and how it is shown.
type PlayConfig struct {
	Words     []string
	Wordlist  string
	Lang      string
	Count     int
	Caret     string
	Plain     bool
	NoHistory bool
}

// HistoryConfig defines filters for run history output.
type HistoryConfig struct {
	Since *time.Time
	Last  int
	Top   int
}

// RunStats captures one animation run, finished or interrupted.
type RunStats struct {
	StartedAt       time.Time
	EndedAt         time.Time
	Texts           []string
	EraseStyle      string
	Repeat          string
	EraseOnComplete bool
	Shuffle         bool
	CharsTyped      int
	WordsTyped      int
	WordsErased     int
	Completed       bool
	DurationMs      int64
}

// WordStats stores per-word counts for a run.
type WordStats struct {
	Word   string
	Typed  int
	Erased int
}

// RunAggregate summarizes a stored run for reporting.
type RunAggregate struct {
	RunID       int64
	EndedAt     time.Time
	Texts       []string
	EraseStyle  string
	CharsTyped  int
	WordsTyped  int
	WordsErased int
	Completed   bool
	DurationMs  int64
}

// WordAggregate aggregates word counts across runs.
type WordAggregate struct {
	Word   string
	Typed  int
	Erased int
}
