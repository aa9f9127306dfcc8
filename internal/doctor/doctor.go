// Package doctor checks a work log for structural problems.
package doctor

import (
	"sort"

	"github.com/Tiliavir/worklog/internal/model"
	"github.com/Tiliavir/worklog/internal/session"
)

// Validate returns every defect found in records, ordered by log line. A
// clean log yields an empty slice. Any date whose last record is a start
// without a stop gets a MissingStop, the running session included.
func Validate(records []model.Record) []model.Defect {
	res := session.Reconstruct(records)
	c := collector{missingStop: map[string]bool{}, missingStart: map[string]bool{}}

	for _, d := range res.Defects {
		c.defects = append(c.defects, d)
		if d.Kind == model.DanglingStart && d.Other != nil && d.Other.Date() != d.Date {
			// Superseded on a later day, so that day never got its stop.
			c.addMissingStop(d.Record)
		}
	}

	for _, p := range res.Closed {
		if p.Start.Date() != p.Stop.Date() {
			c.addMissingStop(p.Start)
			c.addMissingStart(p.Stop)
		}
	}

	if res.OpenRecord != nil {
		c.addMissingStop(*res.OpenRecord)
	}

	for i := 1; i < len(records); i++ {
		prev, cur := records[i-1], records[i]
		if cur.Timestamp.Before(prev.Timestamp) {
			later := cur
			c.defects = append(c.defects, model.Defect{
				Kind:   model.NonChronological,
				Date:   cur.Date(),
				Record: prev,
				Other:  &later,
			})
		}
	}

	sort.SliceStable(c.defects, func(i, j int) bool {
		return c.defects[i].Line() < c.defects[j].Line()
	})
	if c.defects == nil {
		return []model.Defect{}
	}
	return c.defects
}

type collector struct {
	defects      []model.Defect
	missingStop  map[string]bool
	missingStart map[string]bool
}

func (c *collector) addMissingStop(start model.Record) {
	date := start.Date()
	if c.missingStop[date] {
		return
	}
	c.missingStop[date] = true
	c.defects = append(c.defects, model.Defect{Kind: model.MissingStop, Date: date, Record: start})
}

func (c *collector) addMissingStart(stop model.Record) {
	date := stop.Date()
	if c.missingStart[date] {
		return
	}
	c.missingStart[date] = true
	c.defects = append(c.defects, model.Defect{Kind: model.MissingStart, Date: date, Record: stop})
}
