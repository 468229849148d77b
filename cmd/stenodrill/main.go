// Package main provides the CLI entrypoint for stenodrill.
package main

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/verte-zerg/stenodrill/internal/config"
	"github.com/verte-zerg/stenodrill/internal/diffview"
	"github.com/verte-zerg/stenodrill/internal/generator"
	"github.com/verte-zerg/stenodrill/internal/model"
	"github.com/verte-zerg/stenodrill/internal/stats"
	"github.com/verte-zerg/stenodrill/internal/tui"
	"github.com/verte-zerg/stenodrill/internal/wordlist"
)

const (
	defaultWords       = 25
	defaultCaps        = 0.2
	defaultPunct       = 0.2
	defaultFocusTop    = 8
	defaultFocusFactor = 2.0
	defaultCurveWindow = 10
	defaultAddr        = "127.0.0.1:8080"
)

const defaultPunctSet = ".,!?;:"

var (
	practiceAssignment  string
	practiceStudent     string
	practiceWords       int
	practiceCaps        float64
	practicePunct       float64
	practicePunctSet    string
	practiceWordList    string
	practiceLang        string
	practiceFocusMissed bool
	practiceFocusTop    int
	practiceFocusFactor float64
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "stenodrill",
		Short:         "Typing practice and assignment scoring",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runPracticeCmd,
	}

	rootCmd.PersistentFlags().StringVar(&dbPath, "db", config.DefaultDBPath(), "SQLite database path")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")

	rootCmd.Flags().StringVar(&practiceAssignment, "assignment", "", "type a stored assignment instead of generated text")
	rootCmd.Flags().StringVar(&practiceStudent, "student", "", "student id recorded with assignment scores (default: $USER)")
	rootCmd.Flags().IntVar(&practiceWords, "words", defaultWords, "words per generated text")
	rootCmd.Flags().Float64Var(&practiceCaps, "caps", defaultCaps, "probability of capitalized first letter (0-1)")
	rootCmd.Flags().Float64Var(&practicePunct, "punct", defaultPunct, "punctuation probability per word (0-1)")
	rootCmd.Flags().StringVar(&practicePunctSet, "punct-set", defaultPunctSet, "punctuation set")
	rootCmd.Flags().StringVar(&practiceWordList, "wordlist", "", "word list file, one word per line (default: built-in English list)")
	rootCmd.Flags().StringVar(&practiceLang, "lang", "", "filter the word list for a language (en)")
	rootCmd.Flags().BoolVar(&practiceFocusMissed, "focus-missed", false, "bias practice toward words the student recently missed")
	rootCmd.Flags().IntVar(&practiceFocusTop, "focus-top", defaultFocusTop, "number of missed words to focus on")
	rootCmd.Flags().Float64Var(&practiceFocusFactor, "focus-factor", defaultFocusFactor, "weight factor for missed words")

	rootCmd.AddCommand(newEvalCmd())
	rootCmd.AddCommand(newAssignmentCmd())
	rootCmd.AddCommand(newScoresCmd())
	rootCmd.AddCommand(newHistoryCmd())
	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

func runPracticeCmd(cmd *cobra.Command, _ []string) error {
	env, err := setup(cmd, false)
	if err != nil {
		return err
	}
	defer env.sync()

	applyIntConfig(cmd, "words", &practiceWords, env.file.Practice.Words)
	applyFloatConfig(cmd, "caps", &practiceCaps, env.file.Practice.CapsPct)
	applyFloatConfig(cmd, "punct", &practicePunct, env.file.Practice.PunctPct)
	applyStringConfig(cmd, "punct-set", &practicePunctSet, env.file.Practice.PunctSet)
	applyStringConfig(cmd, "wordlist", &practiceWordList, env.file.Practice.WordList)
	applyStringConfig(cmd, "student", &practiceStudent, env.file.Practice.Student)

	cfg := model.PracticeConfig{
		Words:        practiceWords,
		CapsPct:      practiceCaps,
		PunctPct:     practicePunct,
		PunctSet:     practicePunctSet,
		WordListPath: practiceWordList,
	}
	if err := validatePracticeConfig(cfg); err != nil {
		return err
	}

	st, closeStore, err := env.openStore()
	if err != nil {
		return err
	}
	defer closeStore()

	ctx := context.Background()
	opts := tui.Options{
		Recorder:  st,
		Logger:    env.log,
		Evaluator: env.evaluator,
		Generator: generator.New(),
		Practice: generator.Options{
			Count:    cfg.Words,
			CapsPct:  cfg.CapsPct,
			PunctPct: cfg.PunctPct,
			PunctSet: []rune(cfg.PunctSet),
		},
	}

	student := resolveStudent(practiceStudent)
	if practiceAssignment != "" {
		if student == "" {
			return fmt.Errorf("--student is required for assignments")
		}
		a, err := st.GetAssignment(ctx, practiceAssignment)
		if err != nil {
			return fmt.Errorf("failed to load assignment %q: %w", practiceAssignment, err)
		}
		opts.Assignment = &a
		opts.Student = student
	} else {
		words, err := loadPracticeWords(cfg.WordListPath, practiceLang)
		if err != nil {
			return err
		}
		opts.Words = words
		if practiceFocusMissed && student != "" {
			scores, err := st.ListScores(ctx, model.ScoreFilter{StudentID: student})
			if err != nil {
				env.log.Warn("failed to load scores for focus words", zap.Error(err))
			} else {
				opts.Focus = stats.SelectFocusWords(scores, practiceFocusTop)
				opts.FocusFactor = practiceFocusFactor
				env.log.Debug("practice focus words", zap.Int("count", len(opts.Focus)))
			}
		}
	}

	m := tui.NewModel(opts)
	program := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	if res, done := m.Result(); done && opts.Assignment != nil {
		fmt.Println(diffview.Summary(res))
	}
	return nil
}

func loadPracticeWords(path, lang string) ([]string, error) {
	words := wordlist.Default()
	if path != "" {
		loaded, err := wordlist.LoadWords(path)
		if err != nil {
			return nil, fmt.Errorf("failed to load word list: %w", err)
		}
		words = loaded
	}
	if lang == "" {
		return words, nil
	}
	filtered := wordlist.Filter(words, lang)
	if len(filtered) == 0 {
		return nil, fmt.Errorf("no %s words left in word list after filtering", lang)
	}
	return filtered, nil
}

func resolveStudent(flagValue string) string {
	if s := strings.TrimSpace(flagValue); s != "" {
		return s
	}
	return strings.TrimSpace(os.Getenv("USER"))
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
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# stenodrill configuration
# Uncomment a value to enable it. Environment variables override the file,
# CLI flags override both.

[practice]
# words = %d              # Words per generated text
# caps = %.2f             # Probability of capitalized first letter (0-1)
# punct = %.2f            # Punctuation probability per word (0-1)
# punct-set = %q      # Punctuation set
# wordlist = ""           # Word list file (default: built-in English list)
# student = ""            # Student id for assignment scores (default: $USER)

[evaluate]
# lookahead = %d           # Words scanned ahead when resynchronizing

[store]
# path = %q               # SQLite database ($%s)

[server]
# addr = %q   # HTTP listen address ($%s)

[log]
# level = "info"          # debug, info, warn, error ($%s)
# file = %q               # Rotated JSON log file
`,
		defaultWords,
		defaultCaps,
		defaultPunct,
		defaultPunctSet,
		defaultLookahead,
		config.DefaultDBPath(),
		config.EnvDBPath,
		defaultAddr,
		config.EnvAddr,
		config.EnvLogLevel,
		config.DefaultLogPath(),
	)
}

func validatePracticeConfig(cfg model.PracticeConfig) error {
	if cfg.Words <= 0 {
		return fmt.Errorf("--words must be > 0")
	}
	if cfg.CapsPct < 0 || cfg.CapsPct > 1 {
		return fmt.Errorf("--caps must be between 0 and 1")
	}
	if cfg.PunctPct < 0 || cfg.PunctPct > 1 {
		return fmt.Errorf("--punct must be between 0 and 1")
	}
	if cfg.PunctPct > 0 && cfg.PunctSet == "" {
		return fmt.Errorf("--punct-set must not be empty")
	}
	if practiceFocusTop < 0 {
		return fmt.Errorf("--focus-top must be >= 0")
	}
	if practiceFocusFactor < 0 {
		return fmt.Errorf("--focus-factor must be >= 0")
	}
	return nil
}
