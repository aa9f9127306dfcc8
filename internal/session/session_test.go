package session_test

import (
	"testing"
	"time"

	"github.com/Tiliavir/worklog/internal/model"
	"github.com/Tiliavir/worklog/internal/session"
)

func ts(day, h, m, s int) time.Time {
	return time.Date(2020, 4, day, h, m, s, 0, time.UTC)
}

func rec(kind model.Kind, t time.Time) model.Record {
	return model.Record{Kind: kind, Timestamp: t}
}

func TestReconstructAlternatingSumsPairs(t *testing.T) {
	records := []model.Record{
		rec(model.Start, ts(8, 9, 0, 0)),
		rec(model.Stop, ts(8, 12, 30, 0)),
		rec(model.Start, ts(8, 13, 15, 10)),
		rec(model.Stop, ts(8, 17, 45, 50)),
		rec(model.Start, ts(9, 8, 0, 0)),
		rec(model.Stop, ts(9, 16, 0, 1)),
	}
	res := session.Reconstruct(records)
	if len(res.Defects) != 0 {
		t.Fatalf("Defects = %v, want none", res.Defects)
	}
	if res.Open != nil {
		t.Fatalf("Open = %v, want nil", res.Open)
	}

	var manual time.Duration
	for i := 0; i < len(records); i += 2 {
		manual += records[i+1].Timestamp.Sub(records[i].Timestamp)
	}
	if got := session.Total(res.Sessions, time.Time{}); got != manual {
		t.Errorf("Total = %v, want %v", got, manual)
	}
	if len(res.Sessions) != 3 {
		t.Errorf("Sessions = %d, want 3", len(res.Sessions))
	}
}

func TestReconstructOpenSession(t *testing.T) {
	res := session.Reconstruct([]model.Record{
		rec(model.Start, ts(8, 9, 0, 0)),
		rec(model.Stop, ts(8, 12, 0, 0)),
		rec(model.Start, ts(8, 13, 0, 0)),
	})
	if res.Open == nil {
		t.Fatal("expected open session")
	}
	if !res.Open.Start.Equal(ts(8, 13, 0, 0)) {
		t.Errorf("Open.Start = %v", res.Open.Start)
	}
	if len(res.Sessions) != 1 {
		t.Errorf("Sessions = %d, want 1", len(res.Sessions))
	}
}

func TestReconstructDanglingStart(t *testing.T) {
	res := session.Reconstruct([]model.Record{
		rec(model.Start, ts(8, 9, 0, 0)),
		rec(model.Start, ts(8, 10, 0, 0)),
		rec(model.Stop, ts(8, 12, 0, 0)),
	})
	if len(res.Defects) != 1 || res.Defects[0].Kind != model.DanglingStart {
		t.Fatalf("Defects = %v, want one dangling_start", res.Defects)
	}
	if !res.Defects[0].Record.Timestamp.Equal(ts(8, 9, 0, 0)) {
		t.Errorf("dangling start at %v, want 09:00", res.Defects[0].Record.Timestamp)
	}
	if len(res.Sessions) != 1 || !res.Sessions[0].Start.Equal(ts(8, 10, 0, 0)) {
		t.Errorf("Sessions = %v, want one starting 10:00", res.Sessions)
	}
}

func TestReconstructOrphanStop(t *testing.T) {
	res := session.Reconstruct([]model.Record{rec(model.Stop, ts(8, 12, 0, 0))})
	if len(res.Defects) != 1 || res.Defects[0].Kind != model.OrphanStop {
		t.Fatalf("Defects = %v, want one orphan_stop", res.Defects)
	}
	if len(res.Sessions) != 0 || res.Open != nil {
		t.Errorf("expected no sessions, got %v open=%v", res.Sessions, res.Open)
	}
	if got := res.OnDay(ts(8, 0, 0, 0)); len(got) != 0 {
		t.Errorf("OnDay = %v, want none", got)
	}
}

func TestOnDayKeepsMidnightSessionWithStartDay(t *testing.T) {
	res := session.Reconstruct([]model.Record{
		rec(model.Start, ts(8, 22, 0, 0)),
		rec(model.Stop, ts(9, 2, 0, 0)),
	})
	if got := res.OnDay(ts(8, 0, 0, 0)); len(got) != 1 {
		t.Errorf("OnDay(8th) = %d sessions, want 1", len(got))
	}
	if got := res.OnDay(ts(9, 0, 0, 0)); len(got) != 0 {
		t.Errorf("OnDay(9th) = %d sessions, want 0", len(got))
	}
}

func TestLatest(t *testing.T) {
	res := session.Reconstruct([]model.Record{
		rec(model.Start, ts(6, 9, 0, 0)),
		rec(model.Stop, ts(6, 17, 0, 0)),
		rec(model.Start, ts(7, 9, 0, 0)),
		rec(model.Stop, ts(7, 17, 0, 0)),
		rec(model.Start, ts(8, 9, 0, 0)),
	})
	latest := res.Latest(2)
	if len(latest) != 2 {
		t.Fatalf("Latest(2) = %d sessions", len(latest))
	}
	if !latest[0].Open() || !latest[0].Start.Equal(ts(8, 9, 0, 0)) {
		t.Errorf("Latest[0] = %+v, want open session of the 8th", latest[0])
	}
	if !latest[1].Start.Equal(ts(7, 9, 0, 0)) {
		t.Errorf("Latest[1] = %+v, want session of the 7th", latest[1])
	}
	if all := res.Latest(0); len(all) != 3 {
		t.Errorf("Latest(0) = %d sessions, want 3", len(all))
	}
}

func TestByDay(t *testing.T) {
	res := session.Reconstruct([]model.Record{
		rec(model.Start, ts(7, 9, 0, 0)),
		rec(model.Stop, ts(7, 12, 0, 0)),
		rec(model.Start, ts(7, 13, 0, 0)),
		rec(model.Stop, ts(7, 17, 0, 0)),
		rec(model.Start, ts(8, 9, 0, 0)),
		rec(model.Stop, ts(8, 17, 0, 0)),
	})
	days := session.ByDay(res.All())
	if len(days) != 2 {
		t.Fatalf("ByDay = %d days, want 2", len(days))
	}
	if days[0].Date != "2020-04-07" || len(days[0].Sessions) != 2 {
		t.Errorf("days[0] = %s with %d sessions", days[0].Date, len(days[0].Sessions))
	}
	if days[1].Date != "2020-04-08" || len(days[1].Sessions) != 1 {
		t.Errorf("days[1] = %s with %d sessions", days[1].Date, len(days[1].Sessions))
	}
}
