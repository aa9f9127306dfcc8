package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/worklog/internal/model"
	"github.com/Tiliavir/worklog/internal/status"
	"github.com/Tiliavir/worklog/internal/timecalc"
)

var (
	reportWeek   string
	reportFormat string
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Show worked time per day of the week",
	Args:  cobra.NoArgs,
	RunE:  runReport,
}

func init() {
	reportCmd.Flags().StringVar(&reportWeek, "week", "", "ISO week to report, e.g. 2026-W09 (default this week)")
	reportCmd.Flags().StringVar(&reportFormat, "format", "md", "Output format: md, csv, json")
}

// dayTotal is the worked time of one calendar day.
type dayTotal struct {
	Date    time.Time
	Worked  time.Duration
	Balance time.Duration
	HasData bool
}

// weekReport aggregates the ISO week containing ref.
type weekReport struct {
	Label   string
	Days    []dayTotal
	Worked  time.Duration
	Target  time.Duration
	Balance time.Duration
}

// buildWeekReport totals sessions per day of the week containing ref. The
// target only counts for days with at least one session.
func buildWeekReport(sessions []model.Session, workday model.Workday, ref, now time.Time) weekReport {
	monday, _ := timecalc.WeekRange(ref)
	r := weekReport{Label: timecalc.ISOWeekLabel(ref)}
	for i := 0; i < 7; i++ {
		day := monday.AddDate(0, 0, i)
		snap := status.Calculate(sessions, workday, day, now)
		d := dayTotal{Date: day, Worked: snap.Elapsed, HasData: snap.HasData}
		if snap.HasData {
			d.Balance = snap.Elapsed - workday.Target
			r.Target += workday.Target
		}
		r.Days = append(r.Days, d)
		r.Worked += d.Worked
	}
	r.Balance = r.Worked - r.Target
	return r
}

func runReport(cmd *cobra.Command, args []string) error {
	sessions, err := engine.Sessions()
	if err != nil {
		return err
	}
	current := engine.Now()
	ref := current
	if reportWeek != "" {
		if ref, err = timecalc.ParseISOWeek(reportWeek, store.Location()); err != nil {
			return err
		}
	}
	r := buildWeekReport(sessions, engine.Workday(), ref, current)

	out := cmd.OutOrStdout()
	switch reportFormat {
	case "csv":
		return printReportCSV(out, r)
	case "json":
		return printReportJSON(out, r)
	case "md":
		return printReportMarkdown(out, r)
	}
	return fmt.Errorf("unknown report format %q (want md, csv or json)", reportFormat)
}

func printReportCSV(w io.Writer, r weekReport) error {
	fmt.Fprintln(w, "date,worked_minutes,balance_minutes")
	for _, d := range r.Days {
		if !d.HasData {
			continue
		}
		fmt.Fprintf(w, "%s,%d,%d\n", d.Date.Format(model.DateLayout), int64(d.Worked/time.Minute), int64(d.Balance/time.Minute))
	}
	return nil
}

type reportDayJSON struct {
	Date           string `json:"date"`
	WorkedMinutes  int64  `json:"worked_minutes"`
	BalanceMinutes int64  `json:"balance_minutes"`
}

type reportJSON struct {
	Week           string          `json:"week"`
	Days           []reportDayJSON `json:"days"`
	TotalMinutes   int64           `json:"total_minutes"`
	TargetMinutes  int64           `json:"target_minutes"`
	BalanceMinutes int64           `json:"balance_minutes"`
}

func printReportJSON(w io.Writer, r weekReport) error {
	doc := reportJSON{
		Week:           r.Label,
		Days:           []reportDayJSON{},
		TotalMinutes:   int64(r.Worked / time.Minute),
		TargetMinutes:  int64(r.Target / time.Minute),
		BalanceMinutes: int64(r.Balance / time.Minute),
	}
	for _, d := range r.Days {
		if !d.HasData {
			continue
		}
		doc.Days = append(doc.Days, reportDayJSON{
			Date:           d.Date.Format(model.DateLayout),
			WorkedMinutes:  int64(d.Worked / time.Minute),
			BalanceMinutes: int64(d.Balance / time.Minute),
		})
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("error encoding JSON: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

func printReportMarkdown(w io.Writer, r weekReport) error {
	fmt.Fprintf(w, "Week %s\n", r.Label)
	fmt.Fprintln(w, "--------------------------------")
	for _, d := range r.Days {
		label := d.Date.Format("Mon 2006-01-02")
		if !d.HasData {
			fmt.Fprintf(w, "%-20s%s\n", label, "-")
			continue
		}
		fmt.Fprintf(w, "%-20s%-10s%s\n", label, timecalc.FormatDuration(d.Worked), signed(d.Balance))
	}
	fmt.Fprintln(w, "--------------------------------")
	fmt.Fprintf(w, "%-20s%-10s%s\n", "Total", timecalc.FormatDuration(r.Worked), signed(r.Balance))
	return nil
}

// signed formats a balance with an explicit plus sign for surplus time.
func signed(d time.Duration) string {
	if d > 0 {
		return "+" + timecalc.FormatDuration(d)
	}
	return timecalc.FormatDuration(d)
}
