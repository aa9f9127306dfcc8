package render

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/Tiliavir/worklog/internal/model"
	"github.com/Tiliavir/worklog/internal/timecalc"
)

// SessionView is the serializable form of a session.
type SessionView struct {
	Date     string  `json:"date" yaml:"date"`
	Start    string  `json:"start" yaml:"start"`
	Stop     *string `json:"stop" yaml:"stop"`
	Duration string  `json:"duration" yaml:"duration"`
	Open     bool    `json:"open" yaml:"open"`
}

// NewSessionViews converts sessions, measuring open ones up to now.
func NewSessionViews(sessions []model.Session, now time.Time) []SessionView {
	views := make([]SessionView, 0, len(sessions))
	for _, s := range sessions {
		v := SessionView{
			Date:     s.Date(),
			Start:    s.Start.Format(time.RFC3339),
			Duration: timecalc.FormatDurationHHMMSS(s.Duration(now)),
			Open:     s.Open(),
		}
		if s.Stop != nil {
			stop := s.Stop.Format(time.RFC3339)
			v.Stop = &stop
		}
		views = append(views, v)
	}
	return views
}

// SessionsText writes one line per session, in the order given.
func SessionsText(w io.Writer, sessions []model.Session, now time.Time) error {
	if len(sessions) == 0 {
		_, err := fmt.Fprintln(w, "No data available")
		return err
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", labelStyle.Render(fmt.Sprintf("%-10s  %-8s  %-8s  %-8s", "date", "start", "stop", "duration")))
	for _, s := range sessions {
		stop := "running"
		if s.Stop != nil {
			stop = s.Stop.Format(clockLayout)
		}
		line := fmt.Sprintf("%-10s  %-8s  %-8s  %s", s.Date(), s.Start.Format(clockLayout), stop, timecalc.FormatDurationHHMMSS(s.Duration(now)))
		if s.Open() {
			line = onStyle.Render(line) + dimStyle.Render("  started "+humanize.RelTime(s.Start, now, "ago", "from now"))
		}
		fmt.Fprintln(&b, line)
	}
	_, err := io.WriteString(w, b.String())
	return err
}
