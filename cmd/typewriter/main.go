// Package main provides the CLI entrypoint for typewriter.
package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/verte-zerg/typewriter/internal/config"
	"github.com/verte-zerg/typewriter/internal/generator"
	"github.com/verte-zerg/typewriter/internal/model"
	"github.com/verte-zerg/typewriter/internal/player"
	"github.com/verte-zerg/typewriter/internal/stats"
	"github.com/verte-zerg/typewriter/internal/store"
	"github.com/verte-zerg/typewriter/internal/tui"
	"github.com/verte-zerg/typewriter/internal/typer"
	"github.com/verte-zerg/typewriter/internal/wordlist"
)

const (
	defaultLang       = "en"
	defaultCount      = 10
	defaultCaret      = tui.CaretBlink
	defaultHistoryTop = 10
	defaultUntil      = 10 * time.Second
)

var (
	playFlags     = newTyperFlags()
	playText      textFlags
	playCaret     string
	playPlain     bool
	playNoHistory bool

	scriptFlags = newTyperFlags()
	scriptText  textFlags
	scriptUntil time.Duration

	historySince       string
	historyLast        int
	historyTop         int
	historyInteractive bool

	listsImport string
	listsLang   string
	listsForce  bool
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "typewriter [words...]",
		Short:         "Typewriter text animation",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runPlayCmd,
	}

	playFlags.register(rootCmd)
	playText.register(rootCmd)
	rootCmd.Flags().StringVar(&playCaret, "caret", defaultCaret, "caret mode: blink, solid, or hide")
	rootCmd.Flags().BoolVar(&playPlain, "plain", false, "write to stdout instead of the TUI")
	rootCmd.Flags().BoolVar(&playNoHistory, "no-history", false, "do not record the run")

	rootCmd.AddCommand(newScriptCmd())
	rootCmd.AddCommand(newHistoryCmd())
	rootCmd.AddCommand(newListsCmd())
	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

// typerFlags holds the engine options shared by play and script.
type typerFlags struct {
	preTypeDelay    float64
	typeDelay       float64
	preEraseDelay   float64
	eraseDelay      float64
	repeat          string
	eraseOnComplete bool
	eraseStyle      string
	initialAction   string
	shuffle         bool
	seed            int64
}

func newTyperFlags() *typerFlags {
	return &typerFlags{}
}

func (f *typerFlags) register(cmd *cobra.Command) {
	def := typer.DefaultConfig()
	cmd.Flags().Float64Var(&f.preTypeDelay, "pre-type-delay", durationMillis(def.PreTypeDelay), "delay before typing a word (ms)")
	cmd.Flags().Float64Var(&f.typeDelay, "type-delay", durationMillis(def.TypeDelay), "delay between typed characters (ms)")
	cmd.Flags().Float64Var(&f.preEraseDelay, "pre-erase-delay", durationMillis(def.PreEraseDelay), "delay before erasing a word (ms)")
	cmd.Flags().Float64Var(&f.eraseDelay, "erase-delay", durationMillis(def.EraseDelay), "delay between erase steps (ms)")
	cmd.Flags().StringVar(&f.repeat, "repeat", typer.FormatRepeat(def.Repeat), "extra passes over the words, or 'infinite'")
	cmd.Flags().BoolVar(&f.eraseOnComplete, "erase-on-complete", def.EraseOnComplete, "erase the last word of the last pass")
	cmd.Flags().StringVar(&f.eraseStyle, "erase-style", string(def.EraseStyle), "backspace, select-back, select-all, or clear")
	cmd.Flags().StringVar(&f.initialAction, "initial-action", string(def.InitialAction), "typing or erasing")
	cmd.Flags().BoolVar(&f.shuffle, "shuffle", def.Shuffle, "shuffle the word order once")
	cmd.Flags().Int64Var(&f.seed, "seed", 0, "random seed for shuffle and word picks (0 = random)")
}

func (f *typerFlags) apply(cmd *cobra.Command, fileCfg config.TyperConfig) {
	applyFloatConfig(cmd, "pre-type-delay", &f.preTypeDelay, fileCfg.PreTypeDelay)
	applyFloatConfig(cmd, "type-delay", &f.typeDelay, fileCfg.TypeDelay)
	applyFloatConfig(cmd, "pre-erase-delay", &f.preEraseDelay, fileCfg.PreEraseDelay)
	applyFloatConfig(cmd, "erase-delay", &f.eraseDelay, fileCfg.EraseDelay)
	if fileCfg.Repeat != nil {
		raw := string(*fileCfg.Repeat)
		applyStringConfig(cmd, "repeat", &f.repeat, &raw)
	}
	applyBoolConfig(cmd, "erase-on-complete", &f.eraseOnComplete, fileCfg.EraseOnComplete)
	applyStringConfig(cmd, "erase-style", &f.eraseStyle, fileCfg.EraseStyle)
	applyStringConfig(cmd, "initial-action", &f.initialAction, fileCfg.InitialAction)
	applyBoolConfig(cmd, "shuffle", &f.shuffle, fileCfg.Shuffle)
}

// build converts the flags into an engine config and reports every bad value.
func (f *typerFlags) build() (typer.Config, error) {
	cfg := typer.DefaultConfig()
	var errs []error
	delays := []struct {
		name   string
		value  float64
		target *time.Duration
	}{
		{"pre-type-delay", f.preTypeDelay, &cfg.PreTypeDelay},
		{"type-delay", f.typeDelay, &cfg.TypeDelay},
		{"pre-erase-delay", f.preEraseDelay, &cfg.PreEraseDelay},
		{"erase-delay", f.eraseDelay, &cfg.EraseDelay},
	}
	for _, d := range delays {
		value, err := typer.MillisToDuration(d.value)
		if err != nil {
			errs = append(errs, fmt.Errorf("--%s: %w", d.name, err))
			continue
		}
		*d.target = value
	}
	repeat, err := typer.ParseRepeat(f.repeat)
	if err != nil {
		errs = append(errs, fmt.Errorf("--repeat: %w", err))
	}
	cfg.Repeat = repeat
	cfg.EraseOnComplete = f.eraseOnComplete
	cfg.EraseStyle = typer.EraseStyle(f.eraseStyle)
	cfg.InitialAction = typer.InitialAction(f.initialAction)
	cfg.Shuffle = f.shuffle
	if err := cfg.Validate(); err != nil {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return typer.Config{}, errors.Join(errs...)
	}
	return cfg, nil
}

func (f *typerFlags) generator() *generator.Generator {
	if f.seed != 0 {
		return generator.NewSeeded(f.seed)
	}
	return generator.New()
}

// textFlags selects the played words when none are given as arguments.
type textFlags struct {
	wordlist string
	lang     string
	count    int
}

func (f *textFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.wordlist, "wordlist", "", "word list file (default: <config>/typewriter/wordlists/<lang>.txt)")
	cmd.Flags().StringVar(&f.lang, "lang", defaultLang, "word list language")
	cmd.Flags().IntVar(&f.count, "count", defaultCount, "words picked from the word list")
}

func (f *textFlags) apply(cmd *cobra.Command, fileCfg config.TextConfig) {
	applyStringConfig(cmd, "wordlist", &f.wordlist, fileCfg.Wordlist)
	applyStringConfig(cmd, "lang", &f.lang, fileCfg.Lang)
	applyIntConfig(cmd, "count", &f.count, fileCfg.Count)
}

// resolveTexts picks the words to play: arguments first, then the config
// file's words, then a random pick from the word list.
func resolveTexts(args []string, fileCfg config.TextConfig, f textFlags, gen *generator.Generator) ([]string, error) {
	if len(args) > 0 {
		return args, nil
	}
	if len(fileCfg.Words) > 0 {
		return fileCfg.Words, nil
	}
	if f.count <= 0 {
		return nil, fmt.Errorf("--count must be > 0")
	}
	path := f.wordlist
	if path == "" {
		path = config.DefaultWordListPath(f.lang)
	}
	words, err := wordlist.Load(path, f.lang)
	if err != nil {
		return nil, wordListLoadError(f.lang, path, err)
	}
	return gen.Pick(words, f.count), nil
}

func runPlayCmd(cmd *cobra.Command, args []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	playFlags.apply(cmd, fileCfg.Typer)
	playText.apply(cmd, fileCfg.Text)
	applyStringConfig(cmd, "caret", &playCaret, fileCfg.Typer.Caret)

	cfg, err := playFlags.build()
	if err != nil {
		return err
	}
	if _, ok := tui.ParseCaretMode(playCaret); !ok {
		return fmt.Errorf("invalid --caret %q (expected blink, solid, or hide)", playCaret)
	}
	gen := playFlags.generator()
	texts, err := resolveTexts(args, fileCfg.Text, playText, gen)
	if err != nil {
		return err
	}

	var st *store.Store
	if !playNoHistory {
		st, err = store.Open(config.DefaultDBPath())
		if err != nil {
			return fmt.Errorf("failed to open db: %w", err)
		}
		defer func() {
			if cerr := st.Close(); cerr != nil {
				logErrf("failed to close db: %v\n", cerr)
			}
		}()
	}

	stdoutTTY := term.IsTerminal(int(os.Stdout.Fd()))
	if playPlain || !stdoutTTY {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		return player.Play(ctx, texts, cfg, player.Options{
			Out:       cmd.OutOrStdout(),
			Frames:    stdoutTTY,
			Store:     st,
			Generator: gen,
		})
	}

	m, err := tui.NewModel(texts, cfg, tui.Options{Caret: playCaret, Store: st, Generator: gen})
	if err != nil {
		return err
	}
	program := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

func newScriptCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "script [words...]",
		Short: "Print the event timeline of a run without waiting",
		RunE:  runScriptCmd,
	}
	scriptFlags.register(cmd)
	scriptText.register(cmd)
	cmd.Flags().DurationVar(&scriptUntil, "until", defaultUntil, "virtual time limit")
	return cmd
}

func runScriptCmd(cmd *cobra.Command, args []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	scriptFlags.apply(cmd, fileCfg.Typer)
	scriptText.apply(cmd, fileCfg.Text)

	cfg, err := scriptFlags.build()
	if err != nil {
		return err
	}
	if scriptUntil <= 0 {
		return fmt.Errorf("--until must be > 0")
	}
	gen := scriptFlags.generator()
	texts, err := resolveTexts(args, fileCfg.Text, scriptText, gen)
	if err != nil {
		return err
	}
	return writeTimeline(cmd.OutOrStdout(), texts, cfg, gen, scriptUntil)
}

func newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recorded runs",
		Args:  cobra.NoArgs,
		RunE:  runHistoryCmd,
	}
	cmd.Flags().StringVar(&historySince, "since", "", "start date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&historyLast, "last", 0, "limit to last N runs")
	cmd.Flags().IntVar(&historyTop, "top", defaultHistoryTop, "number of most typed words to list")
	cmd.Flags().BoolVar(&historyInteractive, "interactive", false, "browse runs in a table")
	return cmd
}

func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	var sinceTime *time.Time
	if historySince != "" {
		parsed, err := time.ParseInLocation("2006-01-02", historySince, time.Local)
		if err != nil {
			return fmt.Errorf("invalid --since value: %w", err)
		}
		sinceTime = &parsed
	}
	if historyLast < 0 {
		return fmt.Errorf("--last must be >= 0")
	}

	cfg := model.HistoryConfig{
		Since: sinceTime,
		Last:  historyLast,
		Top:   historyTop,
	}

	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	report, err := stats.BuildReport(context.Background(), st, cfg)
	if err != nil {
		return fmt.Errorf("failed to load history: %w", err)
	}
	if !historyInteractive {
		return stats.RenderHistory(cmd.OutOrStdout(), report, false)
	}
	program := tea.NewProgram(tui.NewHistoryModel(report), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run history TUI: %w", err)
	}
	return nil
}

func newListsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lists",
		Short: "List or import word lists",
		Args:  cobra.NoArgs,
		RunE:  runListsCmd,
	}
	cmd.Flags().StringVar(&listsImport, "import", "", "word list file to import")
	cmd.Flags().StringVar(&listsLang, "lang", defaultLang, "language code of the imported list")
	cmd.Flags().BoolVar(&listsForce, "force", false, "overwrite an existing list")
	return cmd
}

func runListsCmd(cmd *cobra.Command, _ []string) error {
	wordlistDir := config.DefaultWordListDir()
	if listsImport != "" {
		return importWordList(listsImport, listsLang, config.DefaultWordListPath(listsLang), listsForce)
	}
	langs, err := wordlist.Available(wordlistDir)
	if err != nil {
		return fmt.Errorf("failed to read wordlist directory: %w", err)
	}
	if len(langs) == 0 {
		logErrf("No wordlists found in %s. Import one with: typewriter lists --import <file> --lang <code>\n", wordlistDir)
		return fmt.Errorf("no wordlists found")
	}
	for _, lang := range langs {
		if _, err := fmt.Fprintln(cmd.OutOrStdout(), lang); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func importWordList(src, lang, dst string, force bool) error {
	lang = strings.TrimSpace(strings.ToLower(lang))
	if lang == "" {
		return fmt.Errorf("--lang must not be empty")
	}
	if !force {
		if _, err := os.Stat(dst); err == nil {
			return fmt.Errorf("word list already exists: %s (use --force to overwrite)", dst)
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat word list: %w", err)
		}
	}
	words, err := wordlist.Load(src, lang)
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", src, err)
	}
	if err := writeWordList(dst, words); err != nil {
		return fmt.Errorf("failed to write %s: %w", dst, err)
	}
	logErrf("Wrote %s (%d words)\n", dst, len(words))
	return nil
}

func writeWordList(path string, words []string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create word list dir: %w", err)
	}
	tmpFile, err := os.CreateTemp(filepath.Dir(path), "wordlist-*.txt")
	if err != nil {
		return fmt.Errorf("failed to create temp word list: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath)
	}()

	writer := bufio.NewWriter(tmpFile)
	for _, word := range words {
		if _, err := fmt.Fprintln(writer, word); err != nil {
			return fmt.Errorf("failed to write word list: %w", err)
		}
	}
	if err := writer.Flush(); err != nil {
		return fmt.Errorf("failed to flush word list: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close word list: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to write word list: %w", err)
	}
	return nil
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyFloatConfig(cmd *cobra.Command, name string, target, value *float64) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	def := typer.DefaultConfig()
	return fmt.Sprintf(`# typewriter configuration
# Uncomment a value to enable it. CLI flags override config values.

[typer]
# pre-type-delay = %g        # Delay before typing a word (ms)
# type-delay = %g            # Delay between typed characters (ms)
# pre-erase-delay = %g     # Delay before erasing a word (ms)
# erase-delay = %g          # Delay between erase steps (ms)
# repeat = %q       # Extra passes over the words, or "infinite"
# erase-on-complete = false # Erase the last word of the last pass
# erase-style = %q # backspace, select-back, select-all, or clear
# initial-action = %q  # typing or erasing
# shuffle = false           # Shuffle the word order once
# caret = %q           # blink, solid, or hide

[text]
# words = ["Hello", "World"] # Words to play when none are given on the command line
# wordlist = ""              # Word list file (default: wordlists/<lang>.txt next to this file)
# lang = %q                # Word list language
# count = %d                 # Words picked from the word list
`,
		durationMillis(def.PreTypeDelay),
		durationMillis(def.TypeDelay),
		durationMillis(def.PreEraseDelay),
		durationMillis(def.EraseDelay),
		typer.FormatRepeat(def.Repeat),
		def.EraseStyle,
		def.InitialAction,
		defaultCaret,
		defaultLang,
		defaultCount,
	)
}

func durationMillis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}

func wordListLoadError(lang, path string, err error) error {
	lines := []string{
		fmt.Sprintf("failed to load word list: %v", err),
		fmt.Sprintf("expected word list at: %s", path),
		"Pass words as arguments, set [text] words in the config, or import a list:",
		fmt.Sprintf("  typewriter lists --import <file> --lang %s", lang),
	}
	return fmt.Errorf("%s", strings.Join(lines, "\n"))
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
