package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/verte-zerg/stenodrill/internal/config"
	"github.com/verte-zerg/stenodrill/internal/evaluate"
	"github.com/verte-zerg/stenodrill/internal/logging"
	"github.com/verte-zerg/stenodrill/internal/store"
)

const defaultLookahead = evaluate.Lookahead

var (
	dbPath   string
	logLevel string
)

// runEnv is the resolved configuration shared by all commands.
type runEnv struct {
	file      config.FileConfig
	log       *zap.Logger
	evaluator evaluate.Evaluator
}

// setup loads the config file, applies environment overrides below any
// explicitly set flags and builds the logger. console mirrors logs to stderr.
func setup(cmd *cobra.Command, console bool) (*runEnv, error) {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	config.LoadEnv(&fileCfg)
	applyStringConfig(cmd, "db", &dbPath, fileCfg.Store.Path)
	applyStringConfig(cmd, "log-level", &logLevel, fileCfg.Log.Level)

	lookahead := config.IntOr(fileCfg.Evaluate.Lookahead, defaultLookahead)
	if lookahead <= 0 {
		return nil, fmt.Errorf("evaluate.lookahead must be > 0")
	}

	log, err := logging.New(logging.Options{
		Level:   logLevel,
		File:    config.StringOr(fileCfg.Log.File, config.DefaultLogPath()),
		Console: console,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to init logging: %w", err)
	}
	zap.ReplaceGlobals(log)
	log.Debug("config loaded", zap.String("db", dbPath), zap.Int("lookahead", lookahead))

	return &runEnv{
		file:      fileCfg,
		log:       log,
		evaluator: evaluate.Evaluator{Lookahead: lookahead},
	}, nil
}

func (e *runEnv) sync() {
	if err := e.log.Sync(); err != nil {
		// Best-effort flush; stderr sync fails on some terminals.
		_ = err
	}
}

// openStore opens the database and returns a close func that logs failures.
func (e *runEnv) openStore() (*store.Store, func(), error) {
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open db: %w", err)
	}
	return st, func() {
		if cerr := st.Close(); cerr != nil {
			e.log.Warn("failed to close db", zap.Error(cerr))
		}
	}, nil
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

// stdoutTerminal reports whether stdout is a terminal and its width.
func stdoutTerminal() (bool, int) {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return false, 0
	}
	width, _, err := term.GetSize(fd)
	if err != nil {
		return true, 0
	}
	return true, width
}
