package render

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/Tiliavir/worklog/internal/status"
	"github.com/Tiliavir/worklog/internal/timecalc"
)

// NotAvailable is printed by templates when there is nothing to report.
const NotAvailable = "N/A"

const clockLayout = "15:04:05"

// StatusView is the serializable form of a status snapshot.
type StatusView struct {
	Date                  string  `json:"date" yaml:"date"`
	Tracking              bool    `json:"tracking" yaml:"tracking"`
	Sessions              int     `json:"sessions" yaml:"sessions"`
	Elapsed               string  `json:"elapsed" yaml:"elapsed"`
	Remaining             string  `json:"remaining" yaml:"remaining"`
	Overtime              string  `json:"overtime" yaml:"overtime"`
	UntilMax              string  `json:"until_max" yaml:"until_max"`
	PercentElapsed        float64 `json:"percent_elapsed" yaml:"percent_elapsed"`
	PercentRemaining      float64 `json:"percent_remaining" yaml:"percent_remaining"`
	PercentOvertime       float64 `json:"percent_overtime" yaml:"percent_overtime"`
	PercentOvertimeBuffer float64 `json:"percent_overtime_buffer" yaml:"percent_overtime_buffer"`
	ProjectedEnd          *string `json:"projected_end" yaml:"projected_end"`
}

// NewStatusView converts a snapshot for JSON/YAML output.
func NewStatusView(s status.Snapshot) StatusView {
	v := StatusView{
		Date:                  s.Date.Format("2006-01-02"),
		Tracking:              s.Tracking,
		Sessions:              s.Sessions,
		Elapsed:               timecalc.FormatDurationHHMMSS(s.Elapsed),
		Remaining:             timecalc.FormatDurationHHMMSS(s.Remaining),
		Overtime:              timecalc.FormatDurationHHMMSS(s.Overtime),
		UntilMax:              timecalc.FormatDurationHHMMSS(s.UntilMax),
		PercentElapsed:        float64(roundPercent(s.PercentElapsed)),
		PercentRemaining:      float64(roundPercent(s.PercentRemaining)),
		PercentOvertime:       float64(roundPercent(s.PercentOvertime)),
		PercentOvertimeBuffer: float64(roundPercent(s.PercentOvertimeBuffer)),
	}
	if s.ProjectedEnd != nil {
		end := s.ProjectedEnd.Format(time.RFC3339)
		v.ProjectedEnd = &end
	}
	return v
}

// StatusText writes the human readable status table.
func StatusText(w io.Writer, s status.Snapshot) error {
	if !s.HasData {
		_, err := fmt.Fprintf(w, "No log data available for %s.\n", s.Date.Format("2006-01-02"))
		return err
	}

	state := offStyle.Render("Tracking off")
	if s.Tracking {
		state = onStyle.Render("Tracking on")
	}
	overtime := fmt.Sprintf("%s (%3d%%)", timecalc.FormatDurationHHMMSS(s.Overtime), roundPercent(s.PercentOvertime))
	if s.Overtime > 0 {
		overtime = warnStyle.Render(overtime)
	}

	lines := [][2]string{
		{"Status", state},
		{"Total time", fmt.Sprintf("%s (%3d%%)", timecalc.FormatDurationHHMMSS(s.Elapsed), roundPercent(s.PercentElapsed))},
		{"Remaining time", fmt.Sprintf("%s (%3d%%)", timecalc.FormatDurationHHMMSS(s.Remaining), roundPercent(s.PercentRemaining))},
		{"Overtime", overtime},
	}
	if s.Workday.Max > s.Workday.Target && s.Elapsed > s.Workday.Target {
		lines = append(lines, [2]string{"Until max", timecalc.FormatDurationHHMMSS(s.UntilMax)})
	}
	if s.ProjectedEnd != nil {
		lines = append(lines, [2]string{"End of work", s.ProjectedEnd.Format(clockLayout)})
	}

	width := 0
	for _, l := range lines {
		width = max(width, len(l[0]))
	}
	var b strings.Builder
	for _, l := range lines {
		fmt.Fprintf(&b, "%s: %s\n", labelStyle.Render(fmt.Sprintf("%-*s", width+1, l[0])), l[1])
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// StatusTemplate expands {placeholder} fields in tmpl. It returns
// NotAvailable when the day has no data.
//
// Supported placeholders: status, percentage, end_of_work, total_time,
// remaining_time, remaining_time_short, percentage_remaining, overtime,
// overtime_short, percentage_overtime, percentage_overtime_max.
func StatusTemplate(tmpl string, s status.Snapshot) string {
	if !s.HasData {
		return NotAvailable
	}
	state := "off"
	if s.Tracking {
		state = "on"
	}
	endOfWork := "--:--:--"
	if s.ProjectedEnd != nil {
		endOfWork = s.ProjectedEnd.Format(clockLayout)
	}
	remaining := timecalc.FormatDurationHHMMSS(s.Remaining)
	overtime := timecalc.FormatDurationHHMMSS(s.Overtime)

	r := strings.NewReplacer(
		"{status}", state,
		"{percentage}", fmt.Sprint(roundPercent(s.PercentElapsed)),
		"{end_of_work}", endOfWork,
		"{total_time}", timecalc.FormatDurationHHMMSS(s.Elapsed),
		"{remaining_time}", remaining,
		"{remaining_time_short}", short(remaining),
		"{percentage_remaining}", fmt.Sprint(roundPercent(s.PercentRemaining)),
		"{overtime}", overtime,
		"{overtime_short}", short(overtime),
		"{percentage_overtime}", fmt.Sprint(roundPercent(s.PercentOvertime)),
		"{percentage_overtime_max}", fmt.Sprint(roundPercent(s.PercentOvertimeBuffer)),
	)
	return r.Replace(tmpl)
}

// short cuts HH:MM:SS down to HH:MM.
func short(hhmmss string) string {
	if i := strings.LastIndex(hhmmss, ":"); i > 0 {
		return hhmmss[:i]
	}
	return hhmmss
}
