package cmd

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/worklog/internal/export"
	"github.com/Tiliavir/worklog/internal/model"
	"github.com/Tiliavir/worklog/internal/timecalc"
)

var (
	exportFormat string
	exportOutput string
	exportWeek   bool
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export work sessions",
	Args:  cobra.NoArgs,
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringVar(&exportFormat, "format", "csv", "Output format: csv, json, md, sqlite")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Output file (default stdout; <log>.db for sqlite)")
	exportCmd.Flags().BoolVar(&exportWeek, "week", false, "Only export this week's sessions")
}

// sessionsInRange keeps the sessions that start within [from, to].
func sessionsInRange(sessions []model.Session, from, to time.Time) []model.Session {
	var out []model.Session
	for _, s := range sessions {
		if !s.Start.Before(from) && !s.Start.After(to) {
			out = append(out, s)
		}
	}
	return out
}

func runExport(cmd *cobra.Command, args []string) (err error) {
	format, err := export.ParseFormat(exportFormat)
	if err != nil {
		return err
	}

	sessions, err := engine.Sessions()
	if err != nil {
		return err
	}
	current := engine.Now()
	if exportWeek {
		from, to := timecalc.WeekRange(current)
		sessions = sessionsInRange(sessions, from, to)
	}
	rows := export.Rows(sessions, current)

	if format == export.SQLite {
		path := exportOutput
		if path == "" {
			path = store.Path() + ".db"
		}
		if err := export.WriteSQLite(path, rows, current); err != nil {
			return err
		}
		logger.Info("exported sessions", "count", len(rows), "database", path)
		fmt.Fprintf(cmd.OutOrStdout(), "Exported %d session(s) to %s\n", len(rows), path)
		return nil
	}

	var w io.Writer = cmd.OutOrStdout()
	if exportOutput != "" {
		f, err := os.Create(exportOutput)
		if err != nil {
			return fmt.Errorf("creating export file: %w", err)
		}
		defer func() {
			if cerr := f.Close(); cerr != nil && err == nil {
				err = cerr
			}
		}()
		w = f
	}

	switch format {
	case export.JSON:
		return export.WriteJSON(w, rows)
	case export.Markdown:
		return export.WriteMarkdown(w, sessions, current)
	default:
		return export.WriteCSV(w, rows)
	}
}
