package cmd

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/Tiliavir/worklog/internal/config"
	"github.com/Tiliavir/worklog/internal/logging"
	"github.com/Tiliavir/worklog/internal/storage"
	"github.com/Tiliavir/worklog/internal/worklog"
)

var (
	configPath string
	verbosity  int

	// now is the clock handed to the engine.
	now = time.Now

	cfg    config.Config
	logger *log.Logger
	store  *storage.Store
	engine *worklog.Engine
)

// errDefectsFound makes doctor exit non-zero without printing anything extra.
var errDefectsFound = errors.New("defects found")

var rootCmd = &cobra.Command{
	Use:   "wl",
	Short: "worklog: track working hours from the command line",
	Long: `wl records when you start and stop working in a plain text log
(~/.worklog by default) and tells you how much of your workday is done.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

// SetVersion sets the string printed by --version.
func SetVersion(version, commit, date string) {
	rootCmd.Version = fmt.Sprintf("%s (commit %s, built %s)", version, commit, date)
}

// Execute is the entry point called from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errDefectsFound) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(exitCode(err))
	}
}

// exitCode returns 2 for problems with the log file itself and 1 otherwise.
func exitCode(err error) int {
	var corrupt *storage.CorruptRecordError
	var write *storage.StoreWriteError
	if errors.As(err, &corrupt) || errors.As(err, &write) {
		return 2
	}
	return 1
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default $XDG_CONFIG_HOME/worklog/config)")
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "Increase log verbosity (repeatable)")

	rootCmd.AddCommand(commitCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(logCmd)
	rootCmd.AddCommand(doctorCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(exportCmd)
}

// setup loads the configuration and builds the engine shared by all commands.
func setup(cmd *cobra.Command, args []string) error {
	logger = logging.New(cmd.ErrOrStderr(), verbosity)

	c, err := config.Load(configPath, logger)
	if err != nil {
		return err
	}
	cfg = c
	logger.Debug("configuration loaded", "file", cfg.File, "log", cfg.Path,
		"target", cfg.Workday.Target, "max", cfg.Workday.Max)

	store = storage.New(cfg.Path, time.Local)
	engine = worklog.New(store, cfg.Workday,
		worklog.WithClock(now),
		worklog.WithLogger(logger),
	)
	return nil
}
