// Package cli wires the cobra command tree to the presenter.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/idilsaglam/tada/internal/config"
	"github.com/idilsaglam/tada/internal/logging"
	"github.com/idilsaglam/tada/internal/model"
	"github.com/idilsaglam/tada/internal/presenter"
	"github.com/idilsaglam/tada/internal/store"
	"github.com/idilsaglam/tada/internal/store/jsonstore"
	"github.com/idilsaglam/tada/internal/store/sqlitestore"
	"github.com/idilsaglam/tada/internal/ui"
)

// Version is set at build time with -ldflags.
var Version = "dev"

// Exit codes: 0 ok, 1 error, 2 usage or validation.
const (
	ExitOK    = 0
	ExitError = 1
	ExitUsage = 2
)

// Env is the process surroundings; tests substitute every field.
type Env struct {
	Stdout, Stderr io.Writer
	Getenv         func(string) string
	// UserConfigDir and WorkDir override config file discovery.
	UserConfigDir string
	WorkDir       string
	Now           func() time.Time
}

// DefaultEnv is the real process environment.
func DefaultEnv() Env {
	return Env{Stdout: os.Stdout, Stderr: os.Stderr, Getenv: os.Getenv, Now: time.Now}
}

type usageError struct{ msg string }

func (e *usageError) Error() string { return e.msg }

func usagef(format string, a ...any) error {
	return &usageError{msg: fmt.Sprintf(format, a...)}
}

// globalFlags mirror config keys; only flags the user set override config.
type globalFlags struct {
	config    string
	data      string
	backend   string
	slot      string
	refresh   string
	theme     string
	logLevel  string
	logFormat string
	noColor   bool
}

// app is built once per invocation in PersistentPreRunE.
type app struct {
	env    Env
	flags  globalFlags
	cfg    *config.Config
	log    *log.Logger
	logOut io.Closer
	store  *store.Store
	closer io.Closer
	slot   string // path of the data file
	p      *presenter.Presenter
}

// Run executes the command line and returns an exit code.
func Run(args []string, env Env) int {
	if env.Stdout == nil {
		env.Stdout = os.Stdout
	}
	if env.Stderr == nil {
		env.Stderr = os.Stderr
	}
	if env.Now == nil {
		env.Now = time.Now
	}
	ui.SetOutput(env.Stdout, env.Stderr)

	a := &app{env: env}
	root := a.rootCmd()
	root.SetArgs(args)
	root.SetOut(env.Stdout)
	root.SetErr(env.Stderr)

	err := root.Execute()
	a.close()
	if err == nil {
		return ExitOK
	}
	ui.Fail(err.Error())
	return exitCode(err)
}

func exitCode(err error) int {
	var ue *usageError
	switch {
	case errors.As(err, &ue),
		errors.Is(err, model.ErrEmptyTitle),
		errors.Is(err, model.ErrInvalidDate),
		errors.Is(err, presenter.ErrNotFound):
		return ExitUsage
	}
	return ExitError
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "tada",
		Short: "tada - a deadline-aware task list",
		Long: `tada keeps a personal task list in one local slot and shows it
sorted by urgency: overdue first, then due today, then upcoming, then
tasks without a deadline.

Run without a subcommand to open the interactive list.`,
		Args:          noArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			switch cmd.Name() {
			case "version", "help", "completion":
				return nil
			}
			return a.setup(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runUI(cmd)
		},
	}
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &usageError{msg: err.Error()}
	})

	pf := root.PersistentFlags()
	pf.StringVar(&a.flags.config, "config", "", "config file (.toml, .yaml)")
	pf.StringVar(&a.flags.data, "data", "", "task file or database path")
	pf.StringVar(&a.flags.backend, "backend", "", "storage backend: json or sqlite")
	pf.StringVar(&a.flags.slot, "slot", "", "slot name (sqlite backend)")
	pf.StringVar(&a.flags.refresh, "refresh", "", `refresh schedule, e.g. "@every 1m"`)
	pf.StringVar(&a.flags.theme, "theme", "", "theme: classic, neon or mono")
	pf.StringVar(&a.flags.logLevel, "log-level", "", "log level: debug, info, warn, error")
	pf.StringVar(&a.flags.logFormat, "log-format", "", "log format: text, json, logfmt")
	pf.BoolVar(&a.flags.noColor, "no-color", false, "disable colors")

	root.AddCommand(
		a.addCmd(),
		a.lsCmd(),
		a.doneCmd(),
		a.rmCmd(),
		a.uiCmd(),
		a.watchCmd(),
		a.exportCmd(),
		a.versionCmd(),
	)
	return root
}

func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(config.Sources{
		File:    a.flags.config,
		UserDir: a.env.UserConfigDir,
		WorkDir: a.env.WorkDir,
		Getenv:  a.env.Getenv,
	})
	if err != nil {
		return usagef("config: %v", err)
	}
	a.applyFlags(cmd, cfg)
	if err := cfg.Validate(); err != nil {
		return usagef("config: %v", err)
	}
	a.cfg = cfg

	ui.SetColorMode(ui.ColorMode(cfg.Color))
	ui.SetTheme(cfg.Theme)

	path, err := cfg.DataPath()
	if err != nil {
		return err
	}
	a.slot = path

	var logOut io.Writer = a.env.Stderr
	if isInteractive(cmd) {
		f, err := logging.OpenFile(filepath.Dir(path))
		if err != nil {
			return err
		}
		a.logOut = f
		logOut = f
	}
	a.log = logging.New(logOut, logging.Options{
		Level:           cfg.LogLevel,
		Format:          cfg.LogFormat,
		ReportTimestamp: isInteractive(cmd),
	})

	var slot store.Slot
	switch cfg.Backend {
	case config.BackendSQLite:
		s, err := sqlitestore.Open(path, cfg.Slot)
		if err != nil {
			return err
		}
		a.closer = s
		slot = s
	default:
		s, err := jsonstore.New(path)
		if err != nil {
			return err
		}
		slot = s
	}
	a.log.Debug("store ready", "backend", cfg.Backend, "path", path)

	a.store = store.New(slot, a.log)
	a.p = presenter.New(a.store, presenter.WithClock(a.env.Now), presenter.WithLogger(a.log))
	return nil
}

func (a *app) applyFlags(cmd *cobra.Command, cfg *config.Config) {
	fl := cmd.Flags()
	set := func(name, value string, dst *string) {
		if fl.Changed(name) {
			*dst = value
		}
	}
	set("data", a.flags.data, &cfg.Data)
	set("backend", a.flags.backend, &cfg.Backend)
	set("slot", a.flags.slot, &cfg.Slot)
	set("refresh", a.flags.refresh, &cfg.Refresh)
	set("theme", a.flags.theme, &cfg.Theme)
	set("log-level", a.flags.logLevel, &cfg.LogLevel)
	set("log-format", a.flags.logFormat, &cfg.LogFormat)
	if a.flags.noColor {
		cfg.Color = "never"
	}
}

func (a *app) close() {
	if a.closer != nil {
		if err := a.closer.Close(); err != nil && a.log != nil {
			a.log.Warn("closing store", "err", err)
		}
	}
	if a.logOut != nil {
		a.logOut.Close()
	}
}

func noArgs(cmd *cobra.Command, args []string) error {
	if len(args) > 0 {
		return usagef("unknown command %q for %q", args[0], cmd.CommandPath())
	}
	return nil
}

func exactArgs(n int, usage string) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) != n {
			return usagef("usage: %s", usage)
		}
		return nil
	}
}

// isInteractive reports whether cmd takes over the terminal.
func isInteractive(cmd *cobra.Command) bool {
	return cmd.Name() == "ui" || !cmd.HasParent()
}
