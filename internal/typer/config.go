package typer

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// RepeatInfinite repeats the word queue forever.
const RepeatInfinite = math.MaxInt

// EraseStyle selects how a typed word is erased.
type EraseStyle string

// Erase styles.
const (
	EraseBackspace  EraseStyle = "backspace"
	EraseSelectBack EraseStyle = "select-back"
	EraseSelectAll  EraseStyle = "select-all"
	EraseClear      EraseStyle = "clear"
)

// InitialAction selects whether the first word starts typed or untyped.
type InitialAction string

// Initial actions.
const (
	ActionTyping  InitialAction = "typing"
	ActionErasing InitialAction = "erasing"
)

// ParseEraseStyle parses a raw string into a known EraseStyle.
func ParseEraseStyle(raw string) (EraseStyle, bool) {
	switch EraseStyle(strings.ToLower(strings.TrimSpace(raw))) {
	case EraseBackspace:
		return EraseBackspace, true
	case EraseSelectBack:
		return EraseSelectBack, true
	case EraseSelectAll:
		return EraseSelectAll, true
	case EraseClear:
		return EraseClear, true
	default:
	}
	return "", false
}

// ParseInitialAction parses a raw string into a known InitialAction.
func ParseInitialAction(raw string) (InitialAction, bool) {
	switch InitialAction(strings.ToLower(strings.TrimSpace(raw))) {
	case ActionTyping:
		return ActionTyping, true
	case ActionErasing:
		return ActionErasing, true
	default:
	}
	return "", false
}

// ParseRepeat accepts "infinite" (or "inf", "forever") or a non-negative integer.
func ParseRepeat(raw string) (int, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "infinite", "inf", "forever":
		return RepeatInfinite, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("invalid repeat %q: %w", raw, err)
	}
	if n < 0 {
		return 0, fmt.Errorf("invalid repeat %d: must be >= 0", n)
	}
	return n, nil
}

// FormatRepeat is the inverse of ParseRepeat.
func FormatRepeat(n int) string {
	if n == RepeatInfinite {
		return "infinite"
	}
	return strconv.Itoa(n)
}

// maxDelayMillis is the longest delay a time.Duration can hold.
const maxDelayMillis = float64(math.MaxInt64) / float64(time.Millisecond)

// MillisToDuration converts a millisecond value, rejecting NaN, infinities,
// negative numbers and values too large for a time.Duration.
func MillisToDuration(ms float64) (time.Duration, error) {
	if math.IsNaN(ms) {
		return 0, fmt.Errorf("delay is NaN")
	}
	if math.IsInf(ms, 0) {
		return 0, fmt.Errorf("delay is infinite")
	}
	if ms < 0 {
		return 0, fmt.Errorf("delay %v must be >= 0", ms)
	}
	if ms >= maxDelayMillis {
		return 0, fmt.Errorf("delay %vms is too large (max %.0fms)", ms, maxDelayMillis)
	}
	return time.Duration(ms * float64(time.Millisecond)), nil
}

// Config holds the engine options.
type Config struct {
	PreTypeDelay    time.Duration
	TypeDelay       time.Duration
	PreEraseDelay   time.Duration
	EraseDelay      time.Duration
	Repeat          int
	EraseOnComplete bool
	EraseStyle      EraseStyle
	InitialAction   InitialAction
	Shuffle         bool
}

// DefaultConfig returns the stock timing and behavior.
func DefaultConfig() Config {
	return Config{
		PreTypeDelay:  70 * time.Millisecond,
		TypeDelay:     70 * time.Millisecond,
		PreEraseDelay: 2000 * time.Millisecond,
		EraseDelay:    250 * time.Millisecond,
		Repeat:        RepeatInfinite,
		EraseStyle:    EraseSelectAll,
		InitialAction: ActionTyping,
	}
}

// ConfigError reports one rejected option.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Validate reports every invalid option, joined into one error.
func (c Config) Validate() error {
	var errs []error
	delays := []struct {
		field string
		value time.Duration
	}{
		{"pre-type-delay", c.PreTypeDelay},
		{"type-delay", c.TypeDelay},
		{"pre-erase-delay", c.PreEraseDelay},
		{"erase-delay", c.EraseDelay},
	}
	for _, d := range delays {
		if d.value < 0 {
			errs = append(errs, &ConfigError{Field: d.field, Reason: fmt.Sprintf("%v must be >= 0", d.value)})
		}
	}
	if c.Repeat < 0 {
		errs = append(errs, &ConfigError{Field: "repeat", Reason: fmt.Sprintf("%d must be >= 0", c.Repeat)})
	}
	if _, ok := ParseEraseStyle(string(c.EraseStyle)); !ok {
		errs = append(errs, &ConfigError{Field: "erase-style", Reason: fmt.Sprintf("unknown style %q", c.EraseStyle)})
	}
	if _, ok := ParseInitialAction(string(c.InitialAction)); !ok {
		errs = append(errs, &ConfigError{Field: "initial-action", Reason: fmt.Sprintf("unknown action %q", c.InitialAction)})
	}
	return errors.Join(errs...)
}

// normalized maps accepted spellings such as " Select-Back " to the constants.
func (c Config) normalized() Config {
	c.EraseStyle, _ = ParseEraseStyle(string(c.EraseStyle))
	c.InitialAction, _ = ParseInitialAction(string(c.InitialAction))
	return c
}

func (c Config) resetsRun(other Config) bool {
	return c.Repeat != other.Repeat ||
		c.EraseOnComplete != other.EraseOnComplete ||
		c.Shuffle != other.Shuffle ||
		c.InitialAction != other.InitialAction
}
