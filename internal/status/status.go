// Package status derives the live workday status from reconstructed sessions.
// Calculate is pure: it never reads the clock or the log itself.
package status

import (
	"time"

	"github.com/Tiliavir/worklog/internal/model"
	"github.com/Tiliavir/worklog/internal/timecalc"
)

// Snapshot is the status of one calendar day at a given instant.
type Snapshot struct {
	Date     time.Time
	Tracking bool
	HasData  bool
	Sessions int

	Elapsed   time.Duration
	Remaining time.Duration
	Overtime  time.Duration
	UntilMax  time.Duration

	// Percentages relative to the workday target. PercentOvertime is not capped.
	PercentElapsed   float64
	PercentRemaining float64
	PercentOvertime  float64
	// PercentOvertimeBuffer relates overtime to the gap between target and max.
	PercentOvertimeBuffer float64

	// ProjectedEnd is nil unless the day is today, a session is running and
	// time remains.
	ProjectedEnd *time.Time

	Workday model.Workday
}

// Calculate computes the status of day from the given sessions. Sessions that
// did not start on day are ignored, including an open one that began earlier.
// An open session is measured up to now, or to the end of day if day is over.
func Calculate(sessions []model.Session, workday model.Workday, day, now time.Time) Snapshot {
	snap := Snapshot{
		Date:    timecalc.StartOfDay(day),
		Workday: workday,
	}

	sentinel := now
	if end := timecalc.EndOfDay(day); now.After(end) {
		sentinel = end
	}

	for _, s := range sessions {
		if !timecalc.SameDay(s.Start, day) {
			continue
		}
		snap.HasData = true
		snap.Sessions++
		if s.Open() {
			snap.Tracking = true
			if sentinel.After(s.Start) {
				snap.Elapsed += sentinel.Sub(s.Start)
			}
			continue
		}
		snap.Elapsed += s.Duration(now)
	}

	snap.Remaining = clamp(workday.Target - snap.Elapsed)
	snap.Overtime = clamp(snap.Elapsed - workday.Target)
	snap.UntilMax = clamp(workday.Max - snap.Elapsed)

	snap.PercentElapsed = percent(snap.Elapsed, workday.Target)
	snap.PercentRemaining = percent(snap.Remaining, workday.Target)
	snap.PercentOvertime = percent(snap.Overtime, workday.Target)
	snap.PercentOvertimeBuffer = percent(snap.Overtime, workday.Max-workday.Target)

	if snap.Tracking && snap.Remaining > 0 && timecalc.SameDay(now, day) {
		end := now.Add(snap.Remaining)
		snap.ProjectedEnd = &end
	}
	return snap
}

func clamp(d time.Duration) time.Duration {
	if d < 0 {
		return 0
	}
	return d
}

func percent(part, whole time.Duration) float64 {
	if whole <= 0 {
		return 0
	}
	return float64(part) / float64(whole) * 100
}

// Clamp bounds a percentage to [0, 100] for display.
func Clamp(p float64) float64 {
	switch {
	case p < 0:
		return 0
	case p > 100:
		return 100
	}
	return p
}
