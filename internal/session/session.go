// Package session folds an ordered sequence of start/stop records into work
// sessions. File order is taken as chronological order; nothing is re-sorted.
package session

import (
	"time"

	"github.com/Tiliavir/worklog/internal/model"
	"github.com/Tiliavir/worklog/internal/timecalc"
)

// Result is the outcome of a single pass over the records.
type Result struct {
	// Sessions holds the closed sessions in log order.
	Sessions []model.Session
	// Open is the trailing session without a stop, if any.
	Open *model.Session
	// OpenRecord is the start record of Open.
	OpenRecord *model.Record
	// Defects holds DanglingStart and OrphanStop problems met on the way.
	Defects []model.Defect
	// Closed holds the records behind Sessions, index for index.
	Closed []Pair
}

// Pair links a closed session back to the records it was built from.
type Pair struct {
	Start model.Record
	Stop  model.Record
}

// Reconstruct walks records left to right, keeping a single pending start.
func Reconstruct(records []model.Record) Result {
	var res Result
	var pending *model.Record

	for i := range records {
		rec := records[i]
		switch rec.Kind {
		case model.Start:
			if pending != nil {
				next := rec
				res.Defects = append(res.Defects, model.Defect{
					Kind:   model.DanglingStart,
					Date:   pending.Date(),
					Record: *pending,
					Other:  &next,
				})
			}
			pending = &rec
		case model.Stop:
			if pending == nil {
				res.Defects = append(res.Defects, model.Defect{
					Kind:   model.OrphanStop,
					Date:   rec.Date(),
					Record: rec,
				})
				continue
			}
			stop := rec.Timestamp
			res.Sessions = append(res.Sessions, model.Session{Start: pending.Timestamp, Stop: &stop})
			res.Closed = append(res.Closed, Pair{Start: *pending, Stop: rec})
			pending = nil
		}
	}

	if pending != nil {
		res.Open = &model.Session{Start: pending.Timestamp}
		res.OpenRecord = pending
	}
	return res
}

// All returns the closed sessions followed by the open one, oldest first.
func (r Result) All() []model.Session {
	all := make([]model.Session, 0, len(r.Sessions)+1)
	all = append(all, r.Sessions...)
	if r.Open != nil {
		all = append(all, *r.Open)
	}
	return all
}

// OnDay returns the sessions (closed and open) whose start falls on day.
func (r Result) OnDay(day time.Time) []model.Session {
	var out []model.Session
	for _, s := range r.All() {
		if timecalc.SameDay(s.Start, day) {
			out = append(out, s)
		}
	}
	return out
}

// Latest returns up to limit sessions, most recent first. A limit <= 0
// returns every session.
func (r Result) Latest(limit int) []model.Session {
	all := r.All()
	out := make([]model.Session, 0, len(all))
	for i := len(all) - 1; i >= 0; i-- {
		if limit > 0 && len(out) == limit {
			break
		}
		out = append(out, all[i])
	}
	return out
}

// Day is the set of sessions attributed to one calendar date.
type Day struct {
	Date     string
	Sessions []model.Session
}

// ByDay groups sessions by the date of their start, preserving order. A
// session that runs past midnight stays with its start day.
func ByDay(sessions []model.Session) []Day {
	var days []Day
	index := map[string]int{}
	for _, s := range sessions {
		key := s.Date()
		i, ok := index[key]
		if !ok {
			i = len(days)
			index[key] = i
			days = append(days, Day{Date: key})
		}
		days[i].Sessions = append(days[i].Sessions, s)
	}
	return days
}

// Total sums the session durations, measuring open sessions up to now.
func Total(sessions []model.Session, now time.Time) time.Duration {
	var total time.Duration
	for _, s := range sessions {
		total += s.Duration(now)
	}
	return total
}
