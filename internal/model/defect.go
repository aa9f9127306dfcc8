package model

import "fmt"

// DefectKind enumerates the structural problems a work log can contain.
type DefectKind string

const (
	MissingStop      DefectKind = "missing_stop"
	MissingStart     DefectKind = "missing_start"
	OrphanStop       DefectKind = "orphan_stop"
	DanglingStart    DefectKind = "dangling_start"
	NonChronological DefectKind = "non_chronological"
)

// Defect is a single structural inconsistency found in the record sequence.
// Record is the offending record; Other is set for NonChronological (the
// record that goes back in time) and for DanglingStart (the start that
// superseded Record).
type Defect struct {
	Kind   DefectKind `json:"kind" yaml:"kind"`
	Date   string     `json:"date" yaml:"date"`
	Record Record     `json:"record" yaml:"record"`
	Other  *Record    `json:"other,omitempty" yaml:"other,omitempty"`
}

// Line returns the log line the defect is anchored to.
func (d Defect) Line() int {
	if d.Kind == NonChronological && d.Other != nil {
		return d.Other.Line
	}
	return d.Record.Line
}

// Message renders a one-line human readable description.
func (d Defect) Message() string {
	switch d.Kind {
	case MissingStop:
		return fmt.Sprintf("Date %s has no stop entry (start at %s).", d.Date, d.Record.Timestamp.Format(TimeLayout))
	case MissingStart:
		return fmt.Sprintf("Date %s has no start entry before stop at %s.", d.Date, d.Record.Timestamp.Format(TimeLayout))
	case OrphanStop:
		return fmt.Sprintf("Stop at %s has no matching start.", d.Record.Timestamp.Format(DateTimeLayout))
	case DanglingStart:
		return fmt.Sprintf("Start at %s has no stop entry before the next start.", d.Record.Timestamp.Format(DateTimeLayout))
	case NonChronological:
		if d.Other == nil {
			return fmt.Sprintf("Entry %s is out of order.", d.Record)
		}
		return fmt.Sprintf("Entry %s (line %d) is earlier than %s (line %d).", d.Other, d.Other.Line, d.Record, d.Record.Line)
	}
	return string(d.Kind)
}
