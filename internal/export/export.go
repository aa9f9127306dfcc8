// Package export writes reconstructed sessions to CSV, JSON, Markdown or a
// SQLite database.
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Tiliavir/worklog/internal/model"
	"github.com/Tiliavir/worklog/internal/session"
	"github.com/Tiliavir/worklog/internal/timecalc"
)

// Format is an export target.
type Format string

const (
	CSV      Format = "csv"
	JSON     Format = "json"
	Markdown Format = "md"
	SQLite   Format = "sqlite"
)

// ParseFormat validates an export --format value.
func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case CSV, JSON, Markdown, SQLite:
		return f, nil
	}
	return "", fmt.Errorf("unknown export format %q (want csv, json, md or sqlite)", s)
}

// sessionNamespace scopes the name-based session IDs.
var sessionNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/Tiliavir/worklog/session"))

// Row is one exported session.
type Row struct {
	ID              string     `json:"id"`
	Date            string     `json:"date"`
	Start           time.Time  `json:"start"`
	Stop            *time.Time `json:"stop"`
	DurationSeconds int64      `json:"duration_seconds"`
	Open            bool       `json:"open"`
}

// SessionID derives a stable identifier from the session start, so that
// exporting the same log twice yields the same IDs.
func SessionID(start time.Time) string {
	return uuid.NewSHA1(sessionNamespace, []byte(start.UTC().Format(time.RFC3339))).String()
}

// Rows converts sessions, measuring open sessions up to now.
func Rows(sessions []model.Session, now time.Time) []Row {
	rows := make([]Row, 0, len(sessions))
	for _, s := range sessions {
		rows = append(rows, Row{
			ID:              SessionID(s.Start),
			Date:            s.Date(),
			Start:           s.Start,
			Stop:            s.Stop,
			DurationSeconds: int64(s.Duration(now) / time.Second),
			Open:            s.Open(),
		})
	}
	return rows
}

// WriteCSV writes rows with a header line.
func WriteCSV(w io.Writer, rows []Row) error {
	var b strings.Builder
	b.WriteString("id,date,start,stop,duration_minutes\n")
	for _, r := range rows {
		stop := ""
		if r.Stop != nil {
			stop = r.Stop.Format(time.RFC3339)
		}
		fmt.Fprintf(&b, "%s,%s,%s,%s,%d\n",
			csvEscape(r.ID),
			csvEscape(r.Date),
			csvEscape(r.Start.Format(time.RFC3339)),
			csvEscape(stop),
			r.DurationSeconds/60,
		)
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// csvEscape wraps a field in quotes if it contains a comma, quote, or newline.
func csvEscape(s string) string {
	if !strings.ContainsAny(s, ",\"\n\r") {
		return s
	}
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

// WriteJSON writes rows as an indented JSON array.
func WriteJSON(w io.Writer, rows []Row) error {
	data, err := json.MarshalIndent(rows, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding JSON: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

// WriteMarkdown writes sessions grouped by day as a Markdown list.
func WriteMarkdown(w io.Writer, sessions []model.Session, now time.Time) error {
	if len(sessions) == 0 {
		_, err := fmt.Fprintln(w, "No entries found.")
		return err
	}
	var b strings.Builder
	for i, day := range session.ByDay(sessions) {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "## %s (%s)\n\n", day.Date, timecalc.FormatDuration(session.Total(day.Sessions, now)))
		for _, s := range day.Sessions {
			stop := "ongoing"
			if s.Stop != nil {
				stop = s.Stop.Format("15:04")
			}
			fmt.Fprintf(&b, "- %s–%s (%s)\n", s.Start.Format("15:04"), stop, timecalc.FormatDuration(s.Duration(now)))
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}
