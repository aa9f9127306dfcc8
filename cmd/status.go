package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/worklog/internal/model"
	"github.com/Tiliavir/worklog/internal/render"
	"github.com/Tiliavir/worklog/internal/timecalc"
	"github.com/Tiliavir/worklog/internal/tui"
)

var (
	statusYesterday bool
	statusDate      string
	statusFmt       string
	statusFormat    string
	statusWatch     bool
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the status of today's workday",
	Args:  cobra.NoArgs,
	RunE:  runStatus,
}

func init() {
	statusCmd.Flags().BoolVar(&statusYesterday, "yesterday", false, "Show the status of yesterday instead of today")
	statusCmd.Flags().StringVar(&statusDate, "date", "", "Show the status of the given day (YYYY-MM-DD)")
	statusCmd.Flags().StringVar(&statusFmt, "fmt", "", "Custom format string, e.g. \"{status} {percentage}%\"")
	statusCmd.Flags().StringVar(&statusFormat, "format", "text", "Output format: text, json, yaml")
	statusCmd.Flags().BoolVar(&statusWatch, "watch", false, "Keep the status on screen and refresh it every second")
	statusCmd.MarkFlagsMutuallyExclusive("yesterday", "date")
	statusCmd.MarkFlagsMutuallyExclusive("watch", "yesterday")
	statusCmd.MarkFlagsMutuallyExclusive("watch", "date")
}

func runStatus(cmd *cobra.Command, args []string) error {
	format, err := render.ParseFormat(statusFormat)
	if err != nil {
		return err
	}

	if statusWatch {
		stopped, err := tui.Run(engine)
		if err != nil {
			return err
		}
		if stopped != nil {
			fmt.Fprintf(cmd.OutOrStdout(), "Stopped tracking at %s\n", stopped.Timestamp.Format(model.TimeLayout))
		}
		return nil
	}

	day := engine.Now()
	switch {
	case statusYesterday:
		day = day.AddDate(0, 0, -1)
	case statusDate != "":
		if day, err = timecalc.ParseDate(statusDate, store.Location()); err != nil {
			return err
		}
	}

	snap, err := engine.StatusOn(day)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if statusFmt != "" {
		if format != render.Text {
			return errors.New("--fmt cannot be combined with --format")
		}
		_, err := fmt.Fprintln(out, render.StatusTemplate(statusFmt, snap))
		return err
	}
	if format == render.Text {
		return render.StatusText(out, snap)
	}
	return render.Encode(out, format, render.NewStatusView(snap))
}
