package model

import "time"

// Session is one work interval reconstructed from a start record and an
// optional stop record. Stop is nil while the session is still running.
type Session struct {
	Start time.Time  `json:"start" yaml:"start"`
	Stop  *time.Time `json:"stop" yaml:"stop"`
}

// Open reports whether the session has no stop yet.
func (s Session) Open() bool {
	return s.Stop == nil
}

// Duration returns stop - start, or now - start for an open session.
func (s Session) Duration(now time.Time) time.Duration {
	if s.Stop == nil {
		return now.Sub(s.Start)
	}
	return s.Stop.Sub(s.Start)
}

// Date returns the calendar day the session is attributed to.
func (s Session) Date() string {
	return s.Start.Format(DateLayout)
}

// Workday holds the configured nominal and soft-cap working time per day.
type Workday struct {
	Target time.Duration
	Max    time.Duration
}
