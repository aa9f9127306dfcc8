package cmd

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/worklog/internal/model"
	"github.com/Tiliavir/worklog/internal/timecalc"
	"github.com/Tiliavir/worklog/internal/worklog"
)

var (
	commitOffset float64
	commitTime   string
	commitForce  bool
)

var commitCmd = &cobra.Command{
	Use:   "commit",
	Short: "Commit a start or stop entry to the log",
}

var commitStartCmd = &cobra.Command{
	Use:   "start",
	Short: "Start tracking",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCommit(cmd, model.Start)
	},
}

var commitStopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stop tracking",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCommit(cmd, model.Stop)
	},
}

func init() {
	commitCmd.PersistentFlags().Float64Var(&commitOffset, "offset-minutes", 0, "Offset of the start/stop time in minutes")
	commitCmd.PersistentFlags().StringVar(&commitTime, "time", "", "Commit at this time of today (HH:MM or HH:MM:SS)")
	commitCmd.PersistentFlags().BoolVarP(&commitForce, "force", "f", false, "Stop even if no session is running")

	commitCmd.AddCommand(commitStartCmd)
	commitCmd.AddCommand(commitStopCmd)
}

// commitTimestamp resolves --time and --offset-minutes against the clock.
func commitTimestamp(clock time.Time, at string, offsetMinutes float64) (time.Time, error) {
	ts := clock
	if at != "" {
		t, err := timecalc.ApplyClock(clock, at)
		if err != nil {
			return time.Time{}, err
		}
		ts = t
	}
	offset := time.Duration(offsetMinutes * float64(time.Minute))
	return ts.Add(offset).Truncate(time.Second), nil
}

func runCommit(cmd *cobra.Command, kind model.Kind) error {
	ts, err := commitTimestamp(engine.Now(), commitTime, commitOffset)
	if err != nil {
		return err
	}

	var before []model.Session
	if kind == model.Stop {
		if before, err = engine.Log(1); err != nil {
			return err
		}
	}

	rec, err := engine.CommitAt(kind, ts, commitForce)
	if errors.Is(err, worklog.ErrNotTracking) {
		return fmt.Errorf("%w (use --force to log it anyway)", err)
	}
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch kind {
	case model.Start:
		fmt.Fprintf(out, "Started tracking at %s\n", rec.Timestamp.Format(model.TimeLayout))
	case model.Stop:
		if len(before) == 1 && before[0].Open() {
			fmt.Fprintf(out, "Stopped tracking at %s. Elapsed: %s\n",
				rec.Timestamp.Format(model.TimeLayout), formatElapsed(rec.Timestamp.Sub(before[0].Start)))
		} else {
			fmt.Fprintf(out, "Stopped tracking at %s\n", rec.Timestamp.Format(model.TimeLayout))
		}
	}
	return nil
}

func formatElapsed(d time.Duration) string {
	sign := ""
	seconds := int64(d / time.Second)
	if seconds < 0 {
		sign = "-"
		seconds = -seconds
	}
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60
	if h > 0 {
		return fmt.Sprintf("%s%dh %dm %ds", sign, h, m, s)
	}
	if m > 0 {
		return fmt.Sprintf("%s%dm %ds", sign, m, s)
	}
	return fmt.Sprintf("%s%ds", sign, s)
}
