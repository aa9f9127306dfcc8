package storage

import "fmt"

// CorruptRecordError reports a stored line that does not match the
// date|time|kind layout.
type CorruptRecordError struct {
	Path   string
	Line   int
	Text   string
	Reason string
}

func (e *CorruptRecordError) Error() string {
	return fmt.Sprintf("corrupt record in %s line %d (%q): %s", e.Path, e.Line, e.Text, e.Reason)
}

// StoreWriteError reports a failure to append to or lock the log file.
type StoreWriteError struct {
	Path string
	Op   string
	Err  error
}

func (e *StoreWriteError) Error() string {
	return fmt.Sprintf("storage error %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *StoreWriteError) Unwrap() error {
	return e.Err
}
