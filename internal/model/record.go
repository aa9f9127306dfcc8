package model

import (
	"fmt"
	"time"
)

// Kind is the type of a logged event.
type Kind string

const (
	Start Kind = "start"
	Stop  Kind = "stop"
)

// ParseKind converts a stored token into a Kind.
func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case Start, Stop:
		return Kind(s), nil
	}
	return "", fmt.Errorf("unknown record kind %q", s)
}

// Record is a single start or stop event in the work log.
type Record struct {
	Kind      Kind      `json:"kind" yaml:"kind"`
	Timestamp time.Time `json:"timestamp" yaml:"timestamp"`
	// Line is the 1-based position in the log file; 0 for records not yet stored.
	Line int `json:"line,omitempty" yaml:"line,omitempty"`
}

// Date returns the calendar day of the record as YYYY-MM-DD.
func (r Record) Date() string {
	return r.Timestamp.Format(DateLayout)
}

func (r Record) String() string {
	return fmt.Sprintf("%s %s", r.Kind, r.Timestamp.Format(DateTimeLayout))
}

const (
	DateLayout     = "2006-01-02"
	TimeLayout     = "15:04:05"
	DateTimeLayout = DateLayout + " " + TimeLayout
)
