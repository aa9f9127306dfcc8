package render_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/Tiliavir/worklog/internal/model"
	"github.com/Tiliavir/worklog/internal/render"
	"github.com/Tiliavir/worklog/internal/status"
)

var workday = model.Workday{Target: 8 * time.Hour, Max: 10 * time.Hour}

func at(h, m, s int) time.Time {
	return time.Date(2020, 4, 8, h, m, s, 0, time.UTC)
}

func tracking() status.Snapshot {
	now := at(17, 0, 0)
	return status.Calculate([]model.Session{{Start: at(9, 10, 20)}}, workday, now, now)
}

func idle() status.Snapshot {
	stop := at(17, 0, 0)
	return status.Calculate([]model.Session{{Start: at(9, 0, 0), Stop: &stop}}, workday, stop, stop)
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    render.Format
		wantErr bool
	}{
		{"", render.Text, false},
		{"text", render.Text, false},
		{"json", render.JSON, false},
		{"yaml", render.YAML, false},
		{"xml", "", true},
	}
	for _, tt := range tests {
		got, err := render.ParseFormat(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseFormat(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseFormat(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestStatusText(t *testing.T) {
	var buf bytes.Buffer
	if err := render.StatusText(&buf, tracking()); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{"Tracking on", "07:49:40 ( 98%)", "00:10:20 (  2%)", "End of work", "17:10:20"} {
		if !strings.Contains(out, want) {
			t.Errorf("status text missing %q:\n%s", want, out)
		}
	}
}

func TestStatusTextIdle(t *testing.T) {
	var buf bytes.Buffer
	if err := render.StatusText(&buf, idle()); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.Contains(out, "Tracking off") || !strings.Contains(out, "08:00:00 (100%)") {
		t.Errorf("unexpected idle status:\n%s", out)
	}
	if strings.Contains(out, "End of work") {
		t.Errorf("idle status shows end of work:\n%s", out)
	}
}

func TestStatusTextNoData(t *testing.T) {
	var buf bytes.Buffer
	snap := status.Calculate(nil, workday, at(12, 0, 0), at(12, 0, 0))
	if err := render.StatusText(&buf, snap); err != nil {
		t.Fatal(err)
	}
	if got := buf.String(); !strings.Contains(got, "No log data available for 2020-04-08") {
		t.Errorf("got %q", got)
	}
}

func TestStatusTemplate(t *testing.T) {
	tests := []struct {
		name string
		tmpl string
		snap status.Snapshot
		want string
	}{
		{"tracking", "{status} {percentage}% {remaining_time_short} {end_of_work}", tracking(), "on 98 00:10 17:10:20"},
		{"idle", "{status} {total_time} {overtime_short} {percentage_overtime}", idle(), "off 08:00:00 00:00 0"},
		{"unknown placeholder kept", "{status} {nope}", idle(), "off {nope}"},
		{"empty log", "{status}", status.Calculate(nil, workday, at(9, 0, 0), at(9, 0, 0)), render.NotAvailable},
		{"no end while idle", "{end_of_work}", idle(), "--:--:--"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := render.StatusTemplate(tt.tmpl, tt.snap); got != tt.want {
				t.Errorf("StatusTemplate(%q) = %q, want %q", tt.tmpl, got, tt.want)
			}
		})
	}
}

func TestEncodeStatusJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := render.Encode(&buf, render.JSON, render.NewStatusView(tracking())); err != nil {
		t.Fatal(err)
	}
	var got render.StatusView
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("invalid JSON %q: %v", buf.String(), err)
	}
	if !got.Tracking || got.Elapsed != "07:49:40" || got.ProjectedEnd == nil {
		t.Errorf("decoded %+v", got)
	}
}

func TestEncodeStatusYAML(t *testing.T) {
	var buf bytes.Buffer
	if err := render.Encode(&buf, render.YAML, render.NewStatusView(idle())); err != nil {
		t.Fatal(err)
	}
	var got map[string]any
	if err := yaml.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("invalid YAML %q: %v", buf.String(), err)
	}
	if got["tracking"] != false || got["elapsed"] != "08:00:00" || got["projected_end"] != nil {
		t.Errorf("decoded %v", got)
	}
}

func TestEncodeRejectsText(t *testing.T) {
	if err := render.Encode(&bytes.Buffer{}, render.Text, 1); err == nil {
		t.Error("Encode(text) succeeded, want error")
	}
}

func TestSessionsText(t *testing.T) {
	stop := at(12, 0, 0)
	sessions := []model.Session{
		{Start: at(13, 0, 0)},
		{Start: at(9, 0, 0), Stop: &stop},
	}
	var buf bytes.Buffer
	if err := render.SessionsText(&buf, sessions, at(15, 0, 0)); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want header + 2:\n%s", len(lines), out)
	}
	if !strings.Contains(lines[1], "running") || !strings.Contains(lines[1], "02:00:00") || !strings.Contains(lines[1], "2 hours ago") {
		t.Errorf("open session line = %q", lines[1])
	}
	if !strings.Contains(lines[2], "09:00:00") || !strings.Contains(lines[2], "12:00:00") || !strings.Contains(lines[2], "03:00:00") {
		t.Errorf("closed session line = %q", lines[2])
	}
}

func TestSessionsTextEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := render.SessionsText(&buf, nil, at(9, 0, 0)); err != nil {
		t.Fatal(err)
	}
	if buf.String() != "No data available\n" {
		t.Errorf("got %q", buf.String())
	}
}

func TestNewSessionViews(t *testing.T) {
	stop := at(10, 30, 0)
	views := render.NewSessionViews([]model.Session{{Start: at(9, 0, 0), Stop: &stop}, {Start: at(11, 0, 0)}}, at(11, 15, 0))
	if len(views) != 2 {
		t.Fatalf("got %d views", len(views))
	}
	if views[0].Duration != "01:30:00" || views[0].Open || views[0].Stop == nil {
		t.Errorf("closed view = %+v", views[0])
	}
	if views[1].Duration != "00:15:00" || !views[1].Open || views[1].Stop != nil {
		t.Errorf("open view = %+v", views[1])
	}
}

func TestDefectsText(t *testing.T) {
	var buf bytes.Buffer
	if err := render.DefectsText(&buf, []model.Defect{}); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "no problems found") {
		t.Errorf("clean output = %q", buf.String())
	}

	buf.Reset()
	defects := []model.Defect{{
		Kind:   model.OrphanStop,
		Date:   "2020-04-08",
		Record: model.Record{Kind: model.Stop, Timestamp: at(17, 0, 0), Line: 3},
	}}
	if err := render.DefectsText(&buf, defects); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.Contains(out, "line 3") || !strings.Contains(out, "has no matching start") || !strings.Contains(out, "1 problem(s) found") {
		t.Errorf("defect output = %q", out)
	}
}
