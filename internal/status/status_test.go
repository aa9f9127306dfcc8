package status_test

import (
	"testing"
	"time"

	"github.com/Tiliavir/worklog/internal/model"
	"github.com/Tiliavir/worklog/internal/status"
)

var workday = model.Workday{Target: 8 * time.Hour, Max: 10 * time.Hour}

func at(day, h, m, s int) time.Time {
	return time.Date(2020, 4, day, h, m, s, 0, time.UTC)
}

func closed(start, stop time.Time) model.Session {
	return model.Session{Start: start, Stop: &stop}
}

func TestCalculateAfterStop(t *testing.T) {
	sessions := []model.Session{closed(at(8, 9, 0, 0), at(8, 17, 0, 0))}
	snap := status.Calculate(sessions, workday, at(8, 0, 0, 0), at(8, 17, 0, 0))

	if snap.Tracking {
		t.Error("Tracking = true, want false")
	}
	if snap.Elapsed != 8*time.Hour {
		t.Errorf("Elapsed = %v, want 8h", snap.Elapsed)
	}
	if snap.Remaining != 0 || snap.Overtime != 0 {
		t.Errorf("Remaining = %v, Overtime = %v, want 0, 0", snap.Remaining, snap.Overtime)
	}
	if snap.ProjectedEnd != nil {
		t.Errorf("ProjectedEnd = %v, want nil", snap.ProjectedEnd)
	}
	if snap.PercentElapsed != 100 {
		t.Errorf("PercentElapsed = %v, want 100", snap.PercentElapsed)
	}
}

func TestCalculateOpenSession(t *testing.T) {
	sessions := []model.Session{{Start: at(8, 9, 10, 20)}}
	now := at(8, 17, 0, 0)
	snap := status.Calculate(sessions, workday, now, now)

	if !snap.Tracking {
		t.Error("Tracking = false, want true")
	}
	if want := 7*time.Hour + 49*time.Minute + 40*time.Second; snap.Elapsed != want {
		t.Errorf("Elapsed = %v, want %v", snap.Elapsed, want)
	}
	if want := 10*time.Minute + 20*time.Second; snap.Remaining != want {
		t.Errorf("Remaining = %v, want %v", snap.Remaining, want)
	}
	if snap.Overtime != 0 {
		t.Errorf("Overtime = %v, want 0", snap.Overtime)
	}
	if snap.ProjectedEnd == nil || !snap.ProjectedEnd.Equal(at(8, 17, 10, 20)) {
		t.Errorf("ProjectedEnd = %v, want 17:10:20", snap.ProjectedEnd)
	}
}

func TestCalculateClamping(t *testing.T) {
	day := at(8, 0, 0, 0)
	for _, elapsed := range []time.Duration{0, 3 * time.Hour, 8 * time.Hour, 9*time.Hour + 30*time.Minute, 13 * time.Hour} {
		start := at(8, 6, 0, 0)
		sessions := []model.Session{closed(start, start.Add(elapsed))}
		snap := status.Calculate(sessions, workday, day, at(8, 23, 0, 0))
		if elapsed >= workday.Target {
			if snap.Remaining != 0 {
				t.Errorf("elapsed %v: Remaining = %v, want 0", elapsed, snap.Remaining)
			}
			if snap.Overtime != elapsed-workday.Target {
				t.Errorf("elapsed %v: Overtime = %v, want %v", elapsed, snap.Overtime, elapsed-workday.Target)
			}
		} else {
			if snap.Overtime != 0 {
				t.Errorf("elapsed %v: Overtime = %v, want 0", elapsed, snap.Overtime)
			}
			if snap.Remaining != workday.Target-elapsed {
				t.Errorf("elapsed %v: Remaining = %v, want %v", elapsed, snap.Remaining, workday.Target-elapsed)
			}
		}
	}
}

func TestCalculateOvertimePercentages(t *testing.T) {
	sessions := []model.Session{closed(at(8, 6, 0, 0), at(8, 19, 0, 0))}
	snap := status.Calculate(sessions, workday, at(8, 0, 0, 0), at(8, 20, 0, 0))
	if snap.Overtime != 5*time.Hour {
		t.Fatalf("Overtime = %v, want 5h", snap.Overtime)
	}
	if snap.PercentOvertime != 62.5 {
		t.Errorf("PercentOvertime = %v, want 62.5", snap.PercentOvertime)
	}
	if snap.PercentOvertimeBuffer != 250 {
		t.Errorf("PercentOvertimeBuffer = %v, want 250", snap.PercentOvertimeBuffer)
	}
	if snap.UntilMax != 0 {
		t.Errorf("UntilMax = %v, want 0", snap.UntilMax)
	}
	if got := status.Clamp(snap.PercentElapsed); got != 100 {
		t.Errorf("Clamp(%v) = %v, want 100", snap.PercentElapsed, got)
	}
}

func TestCalculateOpenSessionFromPreviousDay(t *testing.T) {
	sessions := []model.Session{{Start: at(7, 22, 0, 0)}}
	now := at(8, 9, 0, 0)
	snap := status.Calculate(sessions, workday, now, now)
	if snap.Elapsed != 0 || snap.Tracking || snap.HasData {
		t.Errorf("snapshot = %+v, want nothing attributed to today", snap)
	}
	if snap.ProjectedEnd != nil {
		t.Errorf("ProjectedEnd = %v, want nil", snap.ProjectedEnd)
	}
}

func TestCalculatePastDayCapsOpenSession(t *testing.T) {
	sessions := []model.Session{{Start: at(7, 20, 0, 0)}}
	snap := status.Calculate(sessions, workday, at(7, 0, 0, 0), at(8, 9, 0, 0))
	if want := 3*time.Hour + 59*time.Minute + 59*time.Second; snap.Elapsed != want {
		t.Errorf("Elapsed = %v, want %v", snap.Elapsed, want)
	}
	if !snap.Tracking {
		t.Error("Tracking = false, want true")
	}
	if snap.ProjectedEnd != nil {
		t.Errorf("ProjectedEnd = %v, want nil for a past day", snap.ProjectedEnd)
	}
}

func TestCalculateZeroTarget(t *testing.T) {
	sessions := []model.Session{closed(at(8, 9, 0, 0), at(8, 10, 0, 0))}
	snap := status.Calculate(sessions, model.Workday{}, at(8, 0, 0, 0), at(8, 12, 0, 0))
	if snap.PercentElapsed != 0 || snap.PercentOvertime != 0 {
		t.Errorf("percentages = %v/%v, want 0 with zero target", snap.PercentElapsed, snap.PercentOvertime)
	}
	if snap.Overtime != time.Hour {
		t.Errorf("Overtime = %v, want 1h", snap.Overtime)
	}
}
