package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/viper"

	"github.com/Tiliavir/worklog/internal/model"
)

// Config is the resolved configuration handed to the engine.
type Config struct {
	// Path is the work log file.
	Path string
	// Workday holds the daily target and soft maximum.
	Workday model.Workday
	// File is the configuration file that was read, if any.
	File string
}

const (
	// DefaultLogPath is the work log location used when none is configured.
	DefaultLogPath = "~/.worklog"
	// DefaultHoursTarget is the nominal working time per day.
	DefaultHoursTarget = 8.0
	// DefaultHoursMax is the soft cap of working time per day.
	DefaultHoursMax = 10.0

	envPrefix = "WL"
)

// configTemplate is the annotated config written on first run.
const configTemplate = `; wl configuration
;
; All settings are optional; the values below are the built-in defaults.
; Every key can also be set through the environment, e.g.
; WL_WORKDAY_HOURS_TARGET=7.5

[worklog]
; Location of the work log. One "YYYY-MM-DD|HH:MM:SS|start|stop" line per entry.
path = ~/.worklog

[workday]
; Nominal working hours per day, used for remaining time and overtime.
hours_target = 8
; Soft cap of working hours per day. Must not be lower than hours_target.
hours_max = 10
`

// DefaultFilePath returns $XDG_CONFIG_HOME/worklog/config, falling back to
// ~/.config/worklog/config.
func DefaultFilePath() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "worklog", "config"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".config", "worklog", "config"), nil
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("ini")
	v.SetDefault("worklog.path", DefaultLogPath)
	v.SetDefault("workday.hours_target", DefaultHoursTarget)
	v.SetDefault("workday.hours_max", DefaultHoursMax)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads the INI configuration at path (DefaultFilePath when empty). A
// missing default file is created from an annotated template; a missing
// explicit file is an error. Environment variables override file values.
func Load(path string, logger *log.Logger) (Config, error) {
	explicit := path != ""
	if !explicit {
		p, err := DefaultFilePath()
		if err != nil {
			return Config{}, err
		}
		path = p
	}

	v := newViper()
	cfg := Config{}

	_, err := os.Stat(path)
	switch {
	case err == nil:
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("parsing config file %s: %w\nTip: delete the file to regenerate defaults", path, err)
		}
		cfg.File = path
	case errors.Is(err, os.ErrNotExist) && !explicit:
		// First run: write the annotated template so users can discover options.
		if writeErr := writeDefault(path); writeErr != nil {
			logger.Warn("could not create config file", "path", path, "err", writeErr)
		}
	case errors.Is(err, os.ErrNotExist):
		return Config{}, fmt.Errorf("config file %s does not exist", path)
	default:
		return Config{}, fmt.Errorf("reading config file %s: %w", path, err)
	}

	return resolve(v, cfg, logger)
}

func resolve(v *viper.Viper, cfg Config, logger *log.Logger) (Config, error) {
	logPath, err := ExpandHome(v.GetString("worklog.path"))
	if err != nil {
		return Config{}, err
	}
	cfg.Path = logPath

	target, err := hours(v, "workday.hours_target")
	if err != nil {
		return Config{}, err
	}
	hoursMax, err := hours(v, "workday.hours_max")
	if err != nil {
		return Config{}, err
	}
	cfg.Workday = model.Workday{Target: target, Max: hoursMax}

	if hoursMax < target {
		logger.Warn("workday.hours_max is lower than workday.hours_target", "hours_target", target, "hours_max", hoursMax)
	}
	return cfg, nil
}

func hours(v *viper.Viper, key string) (time.Duration, error) {
	raw := strings.TrimSpace(v.GetString(key))
	h, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("config key %s: %q is not a number of hours", key, raw)
	}
	if h < 0 {
		return 0, fmt.Errorf("config key %s: hours must not be negative, got %v", key, h)
	}
	return time.Duration(h * float64(time.Hour)), nil
}

// ExpandHome replaces a leading ~ with the user's home directory.
func ExpandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}

// writeDefault creates the config directory and writes the annotated default
// config template.
func writeDefault(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(configTemplate), 0o600); err != nil {
		return fmt.Errorf("writing default config: %w", err)
	}
	return nil
}
