package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/levelup/internal/config"
	"github.com/sandeepkv93/levelup/internal/jobs"
	"github.com/sandeepkv93/levelup/internal/logger"
	"github.com/sandeepkv93/levelup/internal/scheduler"
	"github.com/sandeepkv93/levelup/internal/storage"
	"github.com/sandeepkv93/levelup/internal/store"
	"github.com/sandeepkv93/levelup/internal/update"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

type rootFlags struct {
	dbPath    string
	stateFile string
	logFile   string
	logLevel  string
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}
	cmd := &cobra.Command{
		Use:           "levelup",
		Short:         "Gamified study planner with daily reflections",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTUI(cmd, flags)
		},
	}
	pf := cmd.PersistentFlags()
	pf.StringVar(&flags.dbPath, "db", "", "sqlite database path (default from LEVELUP_DB_PATH)")
	pf.StringVar(&flags.stateFile, "state-file", "", "profile state file (default from LEVELUP_STATE_FILE)")
	pf.StringVar(&flags.logFile, "log-file", "", "log file, empty to discard (default from LEVELUP_LOG_FILE)")
	pf.StringVar(&flags.logLevel, "log-level", "", "log level (default from LEVELUP_LOG_LEVEL)")

	cmd.AddCommand(
		newStatusCmd(flags),
		newStreakCmd(flags),
		newReportCmd(flags),
		newExportCmd(flags),
		newResetCmd(flags),
	)
	return cmd
}

// runtimeConfig layers explicitly set flags over env and .env values.
func (f *rootFlags) runtimeConfig(cmd *cobra.Command) config.RuntimeConfig {
	cfg := config.Load()
	pf := cmd.Flags()
	if pf.Changed("db") {
		cfg.DBPath = f.dbPath
	}
	if pf.Changed("state-file") {
		cfg.StateFilePath = f.stateFile
	}
	if pf.Changed("log-file") {
		cfg.LogFile = f.logFile
	}
	if pf.Changed("log-level") {
		cfg.LogLevel = f.logLevel
	}
	return cfg
}

// appEnv holds what every command opens. close releases it in reverse order.
type appEnv struct {
	cfg      config.RuntimeConfig
	log      *logrus.Logger
	repo     storage.Repository
	services *store.Services
	closers  []io.Closer
}

func openEnv(ctx context.Context, cfg config.RuntimeConfig) (*appEnv, error) {
	log, logCloser, err := logger.New(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	env := &appEnv{cfg: cfg, log: log, closers: []io.Closer{logCloser}}

	repo, err := storage.OpenSQLite(cfg.DBPath)
	if err != nil {
		_ = env.close()
		return nil, fmt.Errorf("open database %s: %w", cfg.DBPath, err)
	}
	env.repo = repo
	svc, err := store.Open(ctx, repo, store.Options{Logger: log})
	if err != nil {
		_ = repo.Close()
		_ = env.close()
		return nil, fmt.Errorf("load stores: %w", err)
	}
	env.services = svc
	env.closers = append(env.closers, svc)
	log.WithField("db", cfg.DBPath).Debug("stores opened")
	return env, nil
}

func (e *appEnv) close() error {
	var errs []error
	for i := len(e.closers) - 1; i >= 0; i-- {
		if err := e.closers[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func runTUI(cmd *cobra.Command, flags *rootFlags) error {
	cfg := flags.runtimeConfig(cmd)
	env, err := openEnv(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer env.close()

	engine := scheduler.NewEngine(cfg.SchedulerBuffer)
	engine.Start()
	defer engine.Stop()

	m := update.NewModel(update.Deps{
		Services:    env.services,
		Scheduler:   engine,
		Config:      cfg,
		Logger:      env.log,
		ProfilePath: cfg.StateFilePath,
	})
	program := tea.NewProgram(m)

	rollover, err := jobs.NewDayRollover(cfg.RolloverSpec, env.log, func() error {
		program.Send(update.DayChangedMsg{})
		return nil
	})
	if err != nil {
		return err
	}
	rollover.Start()
	defer rollover.Stop()

	env.log.Info("levelup started")
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}
	env.log.WithField("dropped_timers", engine.Dropped()).Info("levelup stopped")
	return nil
}
